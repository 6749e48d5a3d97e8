package view

import (
	"strings"

	"github.com/retouchlab/internal/content"
	"github.com/retouchlab/internal/slider"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func image(ref content.ImageRef, alt, class string) g.Node {
	if strings.TrimSpace(ref.URL) == "" {
		return nil
	}
	return Img(Src(ref.URL), Alt(alt), g.If(class != "", Class(class)), g.Attr("loading", "lazy"))
}

func sectionHeading(title, subtitle string) g.Node {
	return g.Group([]g.Node{
		g.If(subtitle != "", P(Class("section-subtitle"), g.Text(subtitle))),
		g.If(title != "", H2(g.Text(title))),
	})
}

func hero(h content.Hero) g.Node {
	return Section(
		Class("hero"),
		H1(g.Text(h.Title)),
		g.If(h.Subtitle != "", P(g.Text(h.Subtitle))),
		image(h.Image, h.Title, "hero-image"),
	)
}

func textBlock(id string, block content.TextBlock) g.Node {
	return Section(
		ID(id),
		sectionHeading(block.Title, block.Subtitle),
		g.If(block.Description != "", P(g.Text(block.Description))),
		image(block.Image, block.Title, ""),
		g.If(len(block.Features) > 0, Ul(
			Class("features"),
			g.Group(g.Map(block.Features, func(f content.Card) g.Node {
				return Li(
					g.If(f.Title != "", Strong(g.Text(f.Title))),
					g.If(f.Text != "", g.Text(f.Text)),
					g.If(f.Description != "", P(g.Text(f.Description))),
				)
			})),
		)),
		g.If(block.ButtonText != "", A(Class("button"), Href(linkOr(block.ButtonLink, "/contact")), g.Text(block.ButtonText))),
	)
}

func cards(id string, list content.List[content.Card]) g.Node {
	return Section(
		ID(id),
		sectionHeading(list.Title, list.Subtitle),
		Div(
			Class("cards"),
			g.Group(g.Map(list.Items, card)),
		),
	)
}

func card(c content.Card) g.Node {
	return Div(
		Class("card"),
		image(c.Image, c.Title, ""),
		g.If(c.Title != "", H3(g.Text(c.Title))),
		g.If(c.Label != "", P(Class("card-label"), g.Text(c.Label))),
		g.If(c.Value != "", P(Class("card-value"), g.Text(c.Value.String()))),
		g.If(c.Description != "", P(g.Text(c.Description))),
		g.If(c.Price != "", P(Class("price"), g.Text(c.Price.String()))),
		g.If(len(c.Features) > 0, Ul(g.Group(g.Map(c.Features, func(f content.Text) g.Node {
			return Li(g.Text(f.String()))
		})))),
	)
}

func steps(id string, s content.Steps) g.Node {
	return Section(
		ID(id),
		sectionHeading(s.Title, s.Subtitle),
		Div(
			Class("steps"),
			g.Group(g.Map(s.Steps, card)),
		),
	)
}

func faq(list content.List[content.FAQItem]) g.Node {
	if len(list.Items) == 0 {
		return nil
	}
	return Section(
		ID("faq"),
		sectionHeading(list.Title, list.Subtitle),
		Div(
			Class("faq"),
			g.Group(g.Map(list.Items, func(item content.FAQItem) g.Node {
				return Div(
					Class("faq-item"),
					H3(g.Text(item.Question)),
					P(g.Text(item.Answer)),
				)
			})),
		),
	)
}

func sponsors(s content.Sponsors) g.Node {
	if len(s.Logos) == 0 {
		return nil
	}
	return Section(
		ID("sponsors"),
		sectionHeading(s.Title, ""),
		Div(
			Class("logos"),
			g.Group(g.Map(s.Logos, func(logo content.Logo) g.Node {
				if logo.Image.URL == "" {
					return Span(g.Text(logo.Name))
				}
				return image(logo.Image, logo.Name, "logo")
			})),
		),
	)
}

func testimonials(list content.List[content.Testimonial]) g.Node {
	if len(list.Items) == 0 {
		return nil
	}
	return Section(
		ID("testimonials"),
		sectionHeading(list.Title, list.Subtitle),
		Div(
			Class("testimonials"),
			g.Group(g.Map(list.Items, func(t content.Testimonial) g.Node {
				return Div(
					Class("testimonial"),
					image(t.Image, t.Name, "avatar"),
					P(Class("quote"), g.Text(t.Quote)),
					P(Strong(g.Text(t.Name)), g.If(t.Role != "", g.Text(", "+t.Role))),
					g.If(t.Rating != "", g.Attr("data-rating", t.Rating.String())),
				)
			})),
		),
	)
}

func plans(list content.PlanList) g.Node {
	return Section(
		ID("pricing"),
		sectionHeading(list.Title, list.Subtitle),
		Div(
			Class("plans"),
			g.Group(g.Map(list.Plans, func(p content.Plan) g.Node {
				class := "plan"
				if p.Popular {
					class += " popular"
				}
				return Div(
					Class(class),
					g.If(p.Popular, Span(Class("badge"), g.Text("Most Popular"))),
					H3(g.Text(p.Title)),
					P(Class("price"), g.Text(p.Price.String()), g.If(p.Period != "", Span(g.Text(" "+p.Period)))),
					g.If(p.Description != "", P(g.Text(p.Description))),
					Ul(g.Group(g.Map(p.Features, func(f content.Text) g.Node {
						return Li(g.Text(f.String()))
					}))),
					A(Class("button"), Href("/contact"), g.Text(linkOr(p.ButtonText, "Order Now"))),
				)
			})),
		),
	)
}

// comparison renders a before/after pair with the divider at its initial
// position.
func comparison(c content.Comparison) g.Node {
	s := slider.New()
	return Div(
		Class("comparison"),
		g.Attr("data-position", s.HandleLeft()),
		g.If(c.Title != "", H3(g.Text(c.Title))),
		Div(
			Class("comparison-frame"),
			g.Attr("style", "position:relative;overflow:hidden"),
			image(c.BeforeImage, c.Title+" before", "comparison-before"),
			Div(
				Class("comparison-after"),
				g.Attr("style", "position:absolute;inset:0;clip-path:"+s.ClipPath()),
				image(c.AfterImage, c.Title+" after", ""),
			),
			Div(
				Class("comparison-handle"),
				g.Attr("style", "position:absolute;top:0;bottom:0;left:"+s.HandleLeft()),
			),
			Input(
				Type("range"),
				g.Attr("min", "0"),
				g.Attr("max", "100"),
				Value("50"),
				g.Attr("aria-label", "Reveal after image"),
			),
		),
	)
}

func linkOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
