package views

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

// Home is the public landing page: hero, services, gallery, featured
// collection pieces, and the latest posts.
func Home(site Site, meta PageMeta, content map[string]string, services, gallery, featured []Card, posts []Post) g.Node {
	return Layout(site, meta,
		Section(Class("hero"),
			g.If(content["hero_bg"] != "", Img(Class("hero-bg"), Src(content["hero_bg"]), Alt(""))),
			H1(g.Text(site.Name)),
			g.If(site.Description != "", P(g.Text(site.Description))),
			g.If(content["hero_main"] != "", Img(Class("hero-main"), Src(content["hero_main"]), Alt(site.Name))),
		),
		Section(Class("services"),
			H2(g.Text("خدماتنا")),
			Div(Class("grid"), g.Group(g.Map(services, cardNode))),
		),
		Section(Class("gallery"),
			H2(g.Text("معرض الأعمال")),
			Div(Class("grid"), g.Group(g.Map(gallery, cardNode))),
		),
		g.If(len(featured) > 0,
			Section(Class("collection"),
				H2(g.Text("التشكيلة المميزة")),
				Div(Class("grid"), g.Group(g.Map(featured, cardNode))),
			),
		),
		g.If(len(posts) > 0,
			Section(Class("latest-posts"),
				H2(g.Text("من المدونة")),
				Div(Class("grid"), g.Group(g.Map(posts, postCard))),
			),
		),
	)
}

func cardNode(c Card) g.Node {
	return Div(Class("card"),
		Img(Src(c.Image), Alt(c.Title)),
		g.If(c.Title != "", H3(g.Text(c.Title))),
		g.If(c.Description != "", P(g.Text(c.Description))),
	)
}

func postCard(p Post) g.Node {
	return Article(Class("post-card"),
		A(Href("/blog/"+p.Slug),
			Img(Src(p.Image), Alt(p.Title)),
			H3(g.Text(p.Title)),
		),
		P(g.Text(p.Excerpt)),
		Span(Class("post-date"), g.Text(p.Date)),
	)
}

// BlogIndex lists published posts, optionally filtered by category.
func BlogIndex(site Site, meta PageMeta, posts []Post, categories []string, active string) g.Node {
	return Layout(site, meta,
		Section(Class("blog-index"),
			H1(g.Text("المدونة")),
			g.If(len(categories) > 0,
				Div(Class("categories"),
					A(Href("/blog"), g.If(active == "", Class("active")), g.Text("الكل")),
					g.Group(g.Map(categories, func(cat string) g.Node {
						return A(Href("/blog?category="+cat), g.If(active == cat, Class("active")), g.Text(cat))
					})),
				),
			),
			Div(Class("grid"), g.Group(g.Map(posts, postCard))),
		),
	)
}

// PostPage renders a single published post with its related posts.
func PostPage(site Site, meta PageMeta, post Post, related []Post) g.Node {
	return Layout(site, meta,
		Article(Class("post"),
			H1(g.Text(post.Title)),
			Div(Class("post-meta"),
				Span(g.Text(post.Author)),
				Span(g.Text(post.Date)),
				Span(g.Text(post.Category)),
			),
			Img(Class("post-image"), Src(post.Image), Alt(post.Title)),
			// Post content is admin-authored HTML.
			Div(Class("post-content"), g.Raw(post.ContentHTML)),
			g.If(len(post.Tags) > 0,
				Div(Class("tags"), g.Group(g.Map(post.Tags, func(t string) g.Node {
					return Span(Class("tag"), g.Text(t))
				}))),
			),
		),
		g.If(len(related) > 0,
			Section(Class("related"),
				H2(g.Text("مقالات ذات صلة")),
				Div(Class("grid"), g.Group(g.Map(related, postCard))),
			),
		),
	)
}
