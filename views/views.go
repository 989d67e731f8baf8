// Package views renders the public and admin pages as gomponents trees.
// The root package maps its storage types onto the small prop structs
// here, so views stay free of database concerns.
package views

import (
	"strings"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

// Site carries site-wide branding into every layout.
type Site struct {
	Name        string
	URL         string
	Description string
}

// PageMeta is the resolved per-page head metadata, after manual/stored/
// derived precedence has been applied by the caller.
type PageMeta struct {
	Title       string
	Description string
	Keywords    []string
	Canonical   string
	OGType      string
	OGImage     string
	NoIndex     bool
	NoFollow    bool
	JSONLD      string
}

// Post is the view model for a blog post.
type Post struct {
	ID          int64
	Title       string
	Slug        string
	Excerpt     string
	ContentHTML string
	Image       string
	Author      string
	Category    string
	Tags        []string
	Status      string
	Date        string
	Views       int64
}

// Card is a generic image+title view model shared by gallery items,
// services, and collection pieces.
type Card struct {
	Title       string
	Description string
	Image       string
	Category    string
	Featured    bool
}

func robotsContent(m PageMeta) string {
	var parts []string
	if m.NoIndex {
		parts = append(parts, "noindex")
	}
	if m.NoFollow {
		parts = append(parts, "nofollow")
	}
	return strings.Join(parts, ", ")
}

// Layout wraps page content with the shared head and chrome.
func Layout(site Site, meta PageMeta, children ...g.Node) g.Node {
	pageTitle := meta.Title
	if pageTitle == "" {
		pageTitle = site.Name
	}
	desc := meta.Description
	if desc == "" {
		desc = site.Description
	}
	return Doctype(
		HTML(
			Lang("ar"),
			g.Attr("dir", "rtl"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(g.Text(pageTitle)),
				g.If(desc != "", Meta(Name("description"), Content(desc))),
				g.If(len(meta.Keywords) > 0, Meta(Name("keywords"), Content(strings.Join(meta.Keywords, ", ")))),
				g.If(robotsContent(meta) != "", Meta(Name("robots"), Content(robotsContent(meta)))),
				g.If(meta.Canonical != "", Link(Rel("canonical"), Href(meta.Canonical))),
				Meta(g.Attr("property", "og:title"), Content(pageTitle)),
				g.If(desc != "", Meta(g.Attr("property", "og:description"), Content(desc))),
				g.If(meta.OGType != "", Meta(g.Attr("property", "og:type"), Content(meta.OGType))),
				g.If(meta.Canonical != "", Meta(g.Attr("property", "og:url"), Content(meta.Canonical))),
				g.If(meta.OGImage != "", Meta(g.Attr("property", "og:image"), Content(meta.OGImage))),
				Link(Rel("stylesheet"), Href("/public/css/main.css")),
				g.If(meta.JSONLD != "", Script(Type("application/ld+json"), g.Raw(meta.JSONLD))),
			),
			Body(
				siteHeader(site),
				Main(Class("container"), g.Group(children)),
				siteFooter(site),
			),
		),
	)
}

func siteHeader(site Site) g.Node {
	return Nav(Class("nav"),
		Div(Class("brand"), A(Href("/"), g.Text(site.Name))),
		Div(Class("nav-links"),
			A(Href("/"), g.Text("الرئيسية")),
			A(Href("/collection"), g.Text("التشكيلة")),
			A(Href("/blog"), g.Text("المدونة")),
		),
	)
}

func siteFooter(site Site) g.Node {
	return Footer(Class("footer"),
		P(g.Textf("© %s", site.Name)),
	)
}

// NotFound is the styled 404 page.
func NotFound(site Site) g.Node {
	return Layout(site, PageMeta{Title: "404 | " + site.Name},
		Section(Class("error-page"),
			H1(g.Text("404")),
			P(g.Text("الصفحة غير موجودة")),
			A(Href("/"), g.Text("العودة للرئيسية")),
		),
	)
}

// ServerError is the styled 500 page.
func ServerError(site Site) g.Node {
	return Layout(site, PageMeta{Title: "500 | " + site.Name},
		Section(Class("error-page"),
			H1(g.Text("500")),
			P(g.Text("حدث خطأ، حاول مرة أخرى")),
			A(Href("/"), g.Text("العودة للرئيسية")),
		),
	)
}
