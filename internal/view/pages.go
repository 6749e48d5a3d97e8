package view

import (
	"sort"

	"github.com/retouchlab/internal/content"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Page data mirrors the section names of each content document so a
// document can be decoded into it directly.

type HomeData struct {
	Banner       content.Banner                    `json:"banner"`
	Services     content.List[content.Card]        `json:"services"`
	About        content.TextBlock                 `json:"about"`
	Sponsors     content.Sponsors                  `json:"sponsors"`
	FAQ          content.List[content.FAQItem]     `json:"faq"`
	CTA          content.TextBlock                 `json:"cta"`
	Testimonials content.List[content.Testimonial] `json:"testimonials"`
}

type AboutData struct {
	Hero         content.Hero                      `json:"hero"`
	Story        content.TextBlock                 `json:"story"`
	Mission      content.TextBlock                 `json:"mission"`
	Stats        content.List[content.Card]        `json:"stats"`
	Testimonials content.List[content.Testimonial] `json:"testimonials"`
	Sponsors     content.Sponsors                  `json:"sponsors"`
}

type ServicesData struct {
	Hero     content.Hero                  `json:"hero"`
	List     content.List[content.Card]    `json:"list"`
	Process  content.Steps                 `json:"process"`
	FAQ      content.List[content.FAQItem] `json:"faq"`
	Pricing  content.PlanList              `json:"pricing"`
	Sponsors content.Sponsors              `json:"sponsors"`
}

type PricingData struct {
	Hero  content.Hero                  `json:"hero"`
	Plans content.PlanList              `json:"plans"`
	FAQ   content.List[content.FAQItem] `json:"faq"`
}

type PortfolioData struct {
	Hero        content.Hero                        `json:"hero"`
	Categories  content.List[content.Category]      `json:"categories"`
	Items       content.List[content.PortfolioItem] `json:"items"`
	Comparisons content.List[content.Comparison]    `json:"comparisons"`
	// Filter is the active category filter from the query string.
	Filter string `json:"-"`
}

type TeamData struct {
	Hero    content.Hero `json:"hero"`
	Members content.Team `json:"members"`
}

type HowItWorksData struct {
	Hero  content.Hero  `json:"hero"`
	Steps content.Steps `json:"steps"`
}

type BlogData struct {
	Hero     content.Hero
	Settings content.BlogSettings
	Articles []content.Article
}

type ArticleData struct {
	Article  content.Article
	HTML     string
	Settings content.BlogSettings
}

type MapEmbed struct {
	EmbedURL string `json:"embedUrl"`
}

type ContactData struct {
	Details content.ContactDetails             `json:"details"`
	Hours   content.List[content.OpeningHours] `json:"hours"`
	Social  content.List[content.SocialLink]   `json:"social"`
	Map     MapEmbed                           `json:"map"`
}

func HomePage(cfg PageConfig, data HomeData) g.Node {
	b := data.Banner
	return Layout(cfg,
		Section(
			Class("banner"),
			P(Class("section-subtitle"), g.Text(b.Subtitle)),
			H1(g.Text(b.Title)),
			g.If(b.Description != "", P(g.Text(b.Description))),
			g.If(b.ButtonText != "", A(Class("button"), Href(linkOr(b.ButtonLink, "/contact")), g.Text(b.ButtonText))),
			image(b.Images.MainImage, b.Title, "banner-main"),
			Div(
				Class("banner-thumbs"),
				g.Group(g.Map(b.Images.SmallImages, func(ref content.ImageRef) g.Node {
					return image(ref, b.Title, "banner-thumb")
				})),
			),
		),
		cards("services", data.Services),
		textBlock("about", data.About),
		testimonials(data.Testimonials),
		sponsors(data.Sponsors),
		faq(data.FAQ),
		textBlock("cta", data.CTA),
	)
}

func AboutPage(cfg PageConfig, data AboutData) g.Node {
	return Layout(cfg,
		hero(data.Hero),
		textBlock("story", data.Story),
		textBlock("mission", data.Mission),
		cards("stats", data.Stats),
		testimonials(data.Testimonials),
		sponsors(data.Sponsors),
	)
}

func ServicesPage(cfg PageConfig, data ServicesData) g.Node {
	return Layout(cfg,
		hero(data.Hero),
		cards("services", data.List),
		steps("process", data.Process),
		plans(data.Pricing),
		sponsors(data.Sponsors),
		faq(data.FAQ),
	)
}

func PricingPage(cfg PageConfig, data PricingData) g.Node {
	return Layout(cfg,
		hero(data.Hero),
		plans(data.Plans),
		faq(data.FAQ),
	)
}

func PortfolioPage(cfg PageConfig, data PortfolioData) g.Node {
	filter := data.Filter
	if filter == "" {
		filter = "all"
	}
	var items []content.PortfolioItem
	for _, item := range data.Items.Items {
		if filter == "all" || item.Category == filter {
			items = append(items, item)
		}
	}

	return Layout(cfg,
		hero(data.Hero),
		Nav(
			Class("portfolio-filters"),
			g.Group(g.Map(data.Categories.Items, func(cat content.Category) g.Node {
				return A(
					Href("/portfolio?category="+cat.Filter),
					g.If(cat.Filter == filter, Class("active")),
					g.Text(cat.Name),
				)
			})),
		),
		Div(
			Class("portfolio-grid"),
			g.Group(g.Map(items, func(item content.PortfolioItem) g.Node {
				return Div(
					Class("portfolio-item"),
					g.Attr("data-category", item.Category),
					image(item.Image, item.Title, ""),
					P(g.Text(item.Title)),
				)
			})),
		),
		g.If(len(data.Comparisons.Items) > 0, Section(
			ID("comparisons"),
			sectionHeading(data.Comparisons.Title, data.Comparisons.Subtitle),
			g.Group(g.Map(data.Comparisons.Items, comparison)),
		)),
	)
}

func TeamPage(cfg PageConfig, data TeamData) g.Node {
	return Layout(cfg,
		hero(data.Hero),
		Section(
			ID("team"),
			sectionHeading(data.Members.Title, data.Members.Subtitle),
			Div(
				Class("team"),
				g.Group(g.Map(data.Members.Members, teamMember)),
			),
		),
	)
}

func teamMember(m content.TeamMember) g.Node {
	platforms := make([]string, 0, len(m.Social))
	for platform := range m.Social {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)

	return Div(
		Class("member"),
		image(m.Image, m.Name, "avatar"),
		H3(g.Text(m.Name)),
		g.If(m.Role != "", P(Class("role"), g.Text(m.Role))),
		g.If(m.Bio != "", P(g.Text(m.Bio))),
		Div(
			Class("social"),
			g.Group(g.Map(platforms, func(platform string) g.Node {
				return socialLink(platform, m.Social[platform])
			})),
		),
	)
}

func HowItWorksPage(cfg PageConfig, data HowItWorksData) g.Node {
	return Layout(cfg,
		hero(data.Hero),
		steps("steps", data.Steps),
	)
}

func BlogPage(cfg PageConfig, data BlogData) g.Node {
	return Layout(cfg,
		hero(data.Hero),
		Section(
			Class("articles"),
			g.If(len(data.Articles) == 0, P(g.Text("No articles yet."))),
			g.Group(g.Map(data.Articles, func(a content.Article) g.Node {
				return Div(
					Class("article-card"),
					image(a.Image, a.Title, ""),
					g.If(a.Category != "", Span(Class("category"), g.Text(a.Category))),
					H3(A(Href("/blog/"+a.Slug), g.Text(a.Title))),
					articleMeta(a, data.Settings),
					g.If(a.Excerpt != "", P(g.Text(a.Excerpt))),
				)
			})),
		),
	)
}

func ArticlePage(cfg PageConfig, data ArticleData) g.Node {
	a := data.Article
	return Layout(cfg,
		Section(
			Class("article"),
			A(Href("/blog"), g.Text("Back to blog")),
			H1(g.Text(a.Title)),
			articleMeta(a, data.Settings),
			image(a.Image, a.Title, "article-cover"),
			Div(Class("article-body"), g.Raw(data.HTML)),
			g.If(len(a.Tags) > 0, Ul(
				Class("tags"),
				g.Group(g.Map(a.Tags, func(tag string) g.Node { return Li(g.Text(tag)) })),
			)),
		),
	)
}

func articleMeta(a content.Article, settings content.BlogSettings) g.Node {
	showAuthor := settings.ShowAuthor && a.Author != ""
	showDate := settings.ShowDate && a.Date != ""
	if !showAuthor && !showDate {
		return nil
	}
	return P(
		Class("article-meta"),
		g.If(showAuthor, Span(Class("author"), g.Text(a.Author))),
		g.If(showAuthor && showDate, g.Text(" · ")),
		g.If(showDate, Span(Class("date"), g.Text(a.Date))),
	)
}

func ContactPage(cfg PageConfig, data ContactData) g.Node {
	d := data.Details
	return Layout(cfg,
		Section(
			ID("contact"),
			H1(g.Text("Contact Us")),
			Ul(
				Class("contact-details"),
				g.If(d.Email != "", Li(A(Href("mailto:"+d.Email), g.Text(d.Email)))),
				g.If(d.Phone != "", Li(A(Href("tel:"+d.Phone), g.Text(d.Phone)))),
				g.If(d.Address != "", Li(g.Text(d.Address))),
				g.If(d.Website != "", Li(A(Href(d.Website), g.Text(d.Website)))),
			),
			g.If(len(data.Hours.Items) > 0, Div(
				Class("hours"),
				H2(g.Text("Opening Hours")),
				g.Group(g.Map(data.Hours.Items, func(h content.OpeningHours) g.Node {
					return P(Strong(g.Text(h.Day)), g.Text(" "+h.Hours))
				})),
			)),
			Div(
				Class("social"),
				g.Group(g.Map(data.Social.Items, func(s content.SocialLink) g.Node {
					return socialLink(s.Platform, s.URL)
				})),
			),
			g.If(data.Map.EmbedURL != "", IFrame(
				Src(data.Map.EmbedURL),
				g.Attr("title", "Map"),
				g.Attr("loading", "lazy"),
			)),
		),
	)
}

func NotFoundPage(cfg PageConfig, message string) g.Node {
	if message == "" {
		message = "The page you are looking for does not exist."
	}
	cfg.Title = "Not Found"
	return Layout(cfg,
		Section(
			Class("not-found"),
			H1(g.Text("404")),
			P(g.Text(message)),
			A(Href("/"), g.Text("Back to home")),
		),
	)
}
