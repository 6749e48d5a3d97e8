package view

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type DashboardSection struct {
	Name    string
	Version int64
	// EditedAt is set for sections stored on another page.
	EditedAt string
}

type DashboardPageEntry struct {
	Page     string
	Sections []DashboardSection
}

type DashboardAsset struct {
	URL    string
	Folder string
	Width  int
	Height int
}

type DashboardData struct {
	Username string
	Pages    []DashboardPageEntry
	Assets   []DashboardAsset
}

func LoginPage(cfg PageConfig, username, errMsg string) g.Node {
	cfg.Title = "Sign in"
	return Layout(cfg,
		Section(
			Class("admin-login"),
			H1(g.Text("Admin sign in")),
			g.If(errMsg != "", P(Class("error"), g.Text(errMsg))),
			g.El("form",
				Method("post"),
				Action("/admin/login"),
				Input(Type("text"), Name("username"), Value(username), Placeholder("Username"), Required()),
				Input(Type("password"), Name("password"), Placeholder("Password"), Required()),
				Button(Type("submit"), g.Text("Sign in")),
			),
		),
	)
}

func DashboardPage(cfg PageConfig, data DashboardData) g.Node {
	cfg.Title = "Dashboard"
	return Layout(cfg,
		Section(
			Class("admin-dashboard"),
			H1(g.Text("Content")),
			g.If(data.Username != "", P(g.Textf("Signed in as %s", data.Username), g.Text(" "), A(Href("/admin/logout"), g.Text("Sign out")))),
			g.Group(g.Map(data.Pages, func(entry DashboardPageEntry) g.Node {
				return Div(
					Class("admin-page"),
					H2(g.Text(entry.Page)),
					Ul(g.Group(g.Map(entry.Sections, func(s DashboardSection) g.Node {
						if s.EditedAt != "" {
							return Li(g.Text(s.Name+" "), A(Href(s.EditedAt), g.Text("edited elsewhere")))
						}
						return Li(
							A(Href("/api/content/"+entry.Page+"?section="+s.Name), g.Text(s.Name)),
							g.Textf(" v%d", s.Version),
						)
					}))),
				)
			})),
			g.If(len(data.Assets) > 0, Div(
				Class("admin-media"),
				H2(g.Text("Media")),
				g.Group(g.Map(data.Assets, func(a DashboardAsset) g.Node {
					return Div(
						Class("asset"),
						Img(Src(a.URL), Alt(a.Folder), g.Attr("loading", "lazy")),
						P(g.Textf("%s %dx%d", a.Folder, a.Width, a.Height)),
					)
				})),
			)),
		),
	)
}
