package editor

import "github.com/retouchlab/internal/content"

type template = func() map[string]interface{}

func faqTemplate() map[string]interface{} {
	return map[string]interface{}{
		"question": "New Question",
		"answer":   "Answer to the new question.",
	}
}

func planTemplate() map[string]interface{} {
	return map[string]interface{}{
		"title":       "New Plan",
		"price":       "",
		"period":      "per image",
		"description": "",
		"features":    []interface{}{},
		"popular":     false,
		"buttonText":  "Order Now",
	}
}

func cardTemplate() map[string]interface{} {
	return map[string]interface{}{"title": "New Item", "description": "", "image": ""}
}

func memberTemplate() map[string]interface{} {
	return map[string]interface{}{
		"name":   "New Member",
		"role":   "",
		"bio":    "",
		"image":  "",
		"social": map[string]interface{}{},
	}
}

func testimonialTemplate() map[string]interface{} {
	return map[string]interface{}{"name": "New Client", "role": "", "quote": "", "rating": 5, "image": ""}
}

func logoTemplate() map[string]interface{} {
	return map[string]interface{}{"name": "New Logo", "image": ""}
}

func stepTemplate() map[string]interface{} {
	return map[string]interface{}{"title": "New Step", "description": "", "image": ""}
}

func featureTemplate() map[string]interface{} {
	return map[string]interface{}{"text": ""}
}

func statTemplate() map[string]interface{} {
	return map[string]interface{}{"label": "", "value": ""}
}

func portfolioItemTemplate() map[string]interface{} {
	return map[string]interface{}{"title": "", "category": "", "image": ""}
}

func comparisonTemplate() map[string]interface{} {
	return map[string]interface{}{"title": "", "beforeImage": "", "afterImage": ""}
}

func hoursTemplate() map[string]interface{} {
	return map[string]interface{}{"day": "", "hours": ""}
}

func socialTemplate() map[string]interface{} {
	return map[string]interface{}{"platform": "", "url": ""}
}

var sectionTemplates = map[content.Ref]map[string]template{
	{Page: content.PageHome, Section: "faq"}:              {"items": faqTemplate},
	{Page: content.PageServices, Section: "faq"}:          {"items": faqTemplate},
	{Page: content.PagePricing, Section: "faq"}:           {"items": faqTemplate},
	{Page: content.PageHome, Section: "services"}:         {"items": cardTemplate},
	{Page: content.PageHome, Section: "sponsors"}:         {"logos": logoTemplate},
	{Page: content.PageHome, Section: "about"}:            {"features": featureTemplate},
	{Page: content.PageAbout, Section: "mission"}:         {"features": cardTemplate},
	{Page: content.PageAbout, Section: "stats"}:           {"items": statTemplate},
	{Page: content.PageServices, Section: "list"}:         {"items": cardTemplate},
	{Page: content.PageServices, Section: "process"}:      {"steps": stepTemplate},
	{Page: content.PagePricing, Section: "plans"}:         {"plans": planTemplate},
	{Page: content.PagePortfolio, Section: "items"}:       {"items": portfolioItemTemplate},
	{Page: content.PagePortfolio, Section: "comparisons"}: {"items": comparisonTemplate},
	{Page: content.PageTeams, Section: "members"}:         {"members": memberTemplate},
	{Page: content.PageTestimonials, Section: "items"}:    {"items": testimonialTemplate},
	{Page: content.PageHowItWorks, Section: "steps"}:      {"steps": stepTemplate},
	{Page: content.PageContactInfo, Section: "hours"}:     {"items": hoursTemplate},
	{Page: content.PageContactInfo, Section: "social"}:    {"items": socialTemplate},
}

// TemplatesFor returns the new-item templates of page/section.
func TemplatesFor(page, section string) map[string]template {
	out := map[string]template{}
	for key, tmpl := range sectionTemplates[content.Ref{Page: page, Section: section}] {
		out[key] = tmpl
	}
	return out
}
