// Package content describes the page documents behind the public site:
// default templates, section ownership, normalization and field schemas.
package content

import (
	"encoding/json"
	"slices"
)

// Page keys served by the content API.
const (
	PageHome         = "home"
	PageAbout        = "about"
	PageServices     = "services"
	PagePricing      = "pricing"
	PagePortfolio    = "portfolio"
	PageTeams        = "teams"
	PageNews         = "news"
	PageContactInfo  = "contact-info"
	PageHowItWorks   = "how-it-works"
	PageTestimonials = "testimonials"
	PageBlogSettings = "blog-settings"
)

var pages = []string{
	PageHome,
	PageAbout,
	PageServices,
	PagePricing,
	PagePortfolio,
	PageTeams,
	PageNews,
	PageContactInfo,
	PageHowItWorks,
	PageTestimonials,
	PageBlogSettings,
}

// Pages returns every known page key.
func Pages() []string {
	return slices.Clone(pages)
}

// IsKnownPage reports whether page is served by the content API.
func IsKnownPage(page string) bool {
	return slices.Contains(pages, page)
}

// Document maps section names to their JSON values.
type Document map[string]json.RawMessage
