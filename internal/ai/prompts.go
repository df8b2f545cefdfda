package ai

import (
	"fmt"
	"strings"

	"github.com/lizsears/contentcal/internal/models"
)

// baseForbiddenPhrases are always banned, regardless of user settings.
var baseForbiddenPhrases = []string{
	"cutting-edge", "revolutionary", "groundbreaking", "game changer",
	"paradigm shift", "unprecedented", "transformative", "visionary",
}

// allForbidden unions the hardcoded ban list with user-supplied phrases.
func allForbidden(userPhrases []string) []string {
	out := make([]string, 0, len(baseForbiddenPhrases)+len(userPhrases))
	out = append(out, baseForbiddenPhrases...)
	out = append(out, userPhrases...)
	return out
}

// buildLongFormSystemPrompt is the voice prompt for LinkedIn and Blog content.
func buildLongFormSystemPrompt(platform models.Platform, forbidden []string) string {
	lengthGuide := "Write 200-300 words. Hook, then insight, then CTA."
	if platform == models.PlatformBlog {
		lengthGuide = "Write 1000-1500 words with clear sections in prose."
	}

	return fmt.Sprintf(`You are Liz Sears writing for Utah's Elite Realtors.

Voice characteristics:
- Natural, conversational tone (like talking to a friend over coffee)
- Mix paragraph lengths (one-liners, medium, longer paragraphs)
- Use contractions and run-on thoughts when natural
- Include emotional beats (excitement, relief, hope, gratitude)
- Break grammar rules when it feels right
- Use exclamation points when genuinely excited (aim for 2-3 per piece)

Hard rules:
- NEVER use em dash
- NEVER use these phrases: %s
- NO markdown headings (#, ##, ###) or formatting (* _)
- NO bullet lists or numbered lists

%s`, strings.Join(allForbidden(forbidden), ", "), lengthGuide)
}

// buildSocialSystemPrompt is the voice prompt for IGFB and YouTube content.
func buildSocialSystemPrompt(platform models.Platform, forbidden []string) string {
	platformGuide := "Instagram/Facebook post: 150-250 words. Engaging opening hook, personal insight, call to action. Use line breaks for readability. Include 3-5 relevant hashtags at the end."
	if platform == models.PlatformYouTube {
		platformGuide = "YouTube video script outline: 300-500 words. Include: Hook (15 seconds), Intro, 3 Main Points, Call to Action. Write in a natural speaking style."
	}

	return fmt.Sprintf(`You are writing social media content for Liz Sears at Utah's Elite Realtors.

Voice: Warm, approachable, knowledgeable about Utah real estate.
%s

Rules:
- NEVER use em dash
- Avoid these phrases: %s
- Keep it authentic and conversational
- Reference Utah-specific details when relevant`, platformGuide, strings.Join(forbidden, ", "))
}

// buildXSystemPrompt is the voice prompt for X posts.
func buildXSystemPrompt(forbidden []string) string {
	return fmt.Sprintf(`You are writing an X (Twitter) post for Liz Sears at Utah's Elite Realtors.

Rules:
- Maximum 280 characters
- Punchy, engaging, and direct
- Include relevant hashtag(s) if space allows
- Avoid: %s
- Reference Utah real estate when relevant`, strings.Join(forbidden, ", "))
}

// buildUserPrompt embeds the research context and topic.
func buildUserPrompt(req Request) string {
	var sb strings.Builder
	if req.ResearchContext != "" {
		sb.WriteString("Research context:\n")
		sb.WriteString(req.ResearchContext)
		sb.WriteString("\n\n---\n\n")
	}
	fmt.Fprintf(&sb, "Topic: %s\nType: %s\n\nWrite %s content using the research context above to inform your perspective.",
		req.Topic, req.ContentType, req.Platform)
	return sb.String()
}

// buildXUserPrompt is shorter; X context is capped at 500 characters.
func buildXUserPrompt(req Request) string {
	var sb strings.Builder
	if req.ResearchContext != "" {
		ctx := req.ResearchContext
		if len(ctx) > 500 {
			ctx = ctx[:500]
		}
		fmt.Fprintf(&sb, "Context: %s\n\n", ctx)
	}
	fmt.Fprintf(&sb, "Topic: %s\nType: %s\n\nWrite an X post.", req.Topic, req.ContentType)
	return sb.String()
}
