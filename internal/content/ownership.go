package content

import (
	"net/url"
	"sort"
)

// Ref points at a section inside a page document.
type Ref struct {
	Page    string
	Section string
}

// Path returns the content API path serving the referenced section.
func (r Ref) Path() string {
	return "/api/content/" + url.PathEscape(r.Page) + "?section=" + url.QueryEscape(r.Section)
}

// ownership lists sections that are displayed on one page but edited and
// stored on another.
var ownership = map[Ref]Ref{
	{Page: PageServices, Section: "pricing"}:   {Page: PagePricing, Section: "plans"},
	{Page: PageHome, Section: "testimonials"}:  {Page: PageTestimonials, Section: "items"},
	{Page: PageAbout, Section: "testimonials"}: {Page: PageTestimonials, Section: "items"},
	{Page: PageAbout, Section: "sponsors"}:     {Page: PageHome, Section: "sponsors"},
	{Page: PageServices, Section: "sponsors"}:  {Page: PageHome, Section: "sponsors"},
}

// Owner returns the canonical location of page/section when another
// document owns it.
func Owner(page, section string) (Ref, bool) {
	owner, ok := ownership[Ref{Page: page, Section: section}]
	return owner, ok
}

// ForeignSections lists the sections of page that are owned elsewhere.
func ForeignSections(page string) []string {
	var names []string
	for ref := range ownership {
		if ref.Page == page {
			names = append(names, ref.Section)
		}
	}
	sort.Strings(names)
	return names
}
