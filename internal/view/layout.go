// Package view renders the public site and admin pages with gomponents.
package view

import (
	"io"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type PageConfig struct {
	Title       string
	Description string
	SiteName    string
	Path        string
}

type navLink struct {
	Href  string
	Label string
}

var navLinks = []navLink{
	{"/", "Home"},
	{"/about", "About"},
	{"/services", "Services"},
	{"/pricing", "Pricing"},
	{"/portfolio", "Portfolio"},
	{"/team", "Team"},
	{"/how-it-works", "How It Works"},
	{"/blog", "Blog"},
	{"/contact", "Contact"},
}

// Render writes node to w.
func Render(w io.Writer, node g.Node) error {
	return node.Render(w)
}

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.SiteName == "" {
		config.SiteName = "RetouchLab"
	}
	title := config.SiteName
	if config.Title != "" {
		title = config.Title + " | " + config.SiteName
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(title)),
				g.If(config.Description != "", Meta(Name("description"), Content(config.Description))),
			),
			Body(
				topbar(config),
				Main(g.Group(content)),
				Footer(
					Class("site-footer"),
					P(g.Textf("© %s", config.SiteName)),
				),
			),
		),
	})
}

func topbar(config PageConfig) g.Node {
	return Header(
		Class("site-header"),
		A(Href("/"), Class("site-logo"), g.Text(config.SiteName)),
		Nav(
			Ul(
				g.Group(g.Map(navLinks, func(link navLink) g.Node {
					return Li(
						A(
							Href(link.Href),
							g.If(link.Href == config.Path, Class("active")),
							g.Text(link.Label),
						),
					)
				})),
			),
		),
	)
}
