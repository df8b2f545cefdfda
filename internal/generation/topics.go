package generation

import (
	"math/rand"

	"github.com/lizsears/contentcal/internal/models"
)

// topicSeeds is the idea pool each content type draws from.
var topicSeeds = map[models.ContentType][]string{
	models.TypeLocal: {
		"Hidden gem restaurants in Salt Lake Valley",
		"Best hiking trails near Utah neighborhoods",
		"Local events this weekend in Utah County",
		"New businesses opening in the Wasatch Front",
		"Utah seasonal activities families love",
	},
	models.TypeMarket: {
		"Utah housing market update and trends",
		"Interest rate impact on Utah buyers",
		"Salt Lake County vs Utah County market comparison",
		"First-time buyer opportunities in Utah",
		"Inventory trends in the Wasatch Front",
	},
	models.TypeEducational: {
		"Home inspection tips for Utah buyers",
		"Understanding Utah property taxes",
		"How to prepare your Utah home for winter",
		"Mortgage pre-approval process explained",
		"What to know about HOAs in Utah",
	},
	models.TypePersonal: {
		"Why I love being a Utah realtor",
		"A day in my life as a real estate agent",
		"Lessons learned from my recent closings",
		"My favorite Utah neighborhoods and why",
		"What clients teach me about homeownership",
	},
	models.TypePromotional: {
		"New listing spotlight in the Salt Lake area",
		"Open house this weekend",
		"Just sold celebration",
		"Client testimonial and success story",
		"Why work with Utah's Elite Realtors",
	},
	models.TypeProfessional: {
		"Negotiation strategies that work in Utah",
		"How I help sellers maximize their home value",
		"The importance of local market knowledge",
		"Behind the scenes of a real estate transaction",
		"Professional development in real estate",
	},
	models.TypeCommunity: {
		"Supporting local Utah charities and events",
		"Neighborhood spotlight and community features",
		"Utah school district updates for families",
		"Local business partnerships and recommendations",
		"Community safety tips and resources",
	},
	models.TypeReflection: {
		"Grateful for another week helping Utah families",
		"Sunday thoughts on the meaning of home",
		"Looking back at this week's wins",
		"What home means to different people",
		"The journey of finding your perfect home",
	},
	models.TypeInsight: {
		"Real estate technology trends in 2026",
		"How remote work is changing Utah housing",
		"Sustainability in Utah real estate",
		"The future of homebuying in Utah",
		"Investment property insights for Utah",
	},
	models.TypeGuide: {
		"Step-by-step guide to buying in Utah",
		"Complete guide to selling your Utah home",
		"Moving to Utah: everything you need to know",
		"Utah relocation guide for remote workers",
		"First-time homebuyer roadmap",
	},
	models.TypeSafety: {
		"Home safety checklist for Utah seasons",
		"Wildfire preparedness for Utah homeowners",
		"Winter storm preparation for your home",
		"Home security tips for Utah families",
		"Earthquake readiness in the Wasatch Front",
	},
}

// pickTopic draws a pseudo-random topic for the content type, falling back to
// the Local pool for an unknown type.
func pickTopic(contentType models.ContentType) string {
	seeds, ok := topicSeeds[contentType]
	if !ok {
		seeds = topicSeeds[models.TypeLocal]
	}
	return seeds[rand.Intn(len(seeds))]
}
