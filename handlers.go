package atelier

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/khayata/atelier/views"
)

const (
	homePostLimit    = 3
	relatedPostLimit = 3
)

// --- view-model mapping ---

func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
	}
}

func postView(p BlogPost) views.Post {
	return views.Post{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		ContentHTML: p.Content,
		Image:       p.Image,
		Author:      p.Author,
		Category:    p.Category,
		Tags:        p.Tags,
		Status:      p.Status,
		Date:        p.CreatedAt.Format("2006-01-02"),
		Views:       p.Views,
	}
}

func postViews(posts []BlogPost) []views.Post {
	out := make([]views.Post, len(posts))
	for i, p := range posts {
		out[i] = postView(p)
	}
	return out
}

func metaView(m PageMeta, jsonLD string) views.PageMeta {
	return views.PageMeta{
		Title:       m.Title,
		Description: m.Description,
		Keywords:    m.Keywords,
		Canonical:   m.URL,
		OGType:      m.OGType,
		OGImage:     m.OGImage,
		NoIndex:     m.NoIndex,
		NoFollow:    m.NoFollow,
		JSONLD:      jsonLD,
	}
}

// --- public pages ---

func (a *App) handleHome(c echo.Context) error {
	content, err := a.Store.SiteContentMap()
	if err != nil {
		return err
	}
	services, err := a.Store.ListServices()
	if err != nil {
		return err
	}
	gallery, err := a.Store.ListGallery()
	if err != nil {
		return err
	}
	featured, err := a.Store.ListCollectionItems("", true)
	if err != nil {
		return err
	}
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	if len(posts) > homePostLimit {
		posts = posts[:homePostLimit]
	}

	serviceCards := make([]views.Card, len(services))
	for i, s := range services {
		serviceCards[i] = views.Card{Title: s.Title, Image: s.Image}
	}
	galleryCards := make([]views.Card, len(gallery))
	for i, it := range gallery {
		galleryCards[i] = views.Card{Title: it.Title, Image: it.Image, Category: it.Category}
	}
	featuredCards := make([]views.Card, len(featured))
	for i, it := range featured {
		featuredCards[i] = views.Card{Title: it.Title, Description: it.Description, Image: it.Image, Category: it.Category, Featured: it.IsFeatured}
	}

	meta := views.PageMeta{
		Title:       a.Config.Name,
		Description: a.Config.Description,
		Canonical:   BuildURL(a.Config.URL),
		OGType:      "website",
		JSONLD:      WebsiteJsonLD(a.Config),
	}
	return Render(c, views.Home(a.site(), meta, content, serviceCards, galleryCards, featuredCards, postViews(posts)))
}

func (a *App) handleBlogIndex(c echo.Context) error {
	category := c.QueryParam("category")
	posts, err := a.Cache.ListPosts(category)
	if err != nil {
		return err
	}
	categories, err := a.Cache.ListCategories()
	if err != nil {
		return err
	}
	meta := views.PageMeta{
		Title:       "المدونة | " + a.Config.Name,
		Description: a.Config.Description,
		Canonical:   BuildURL(a.Config.URL, "blog"),
		OGType:      "website",
	}
	return Render(c, views.BlogIndex(a.site(), meta, postViews(posts), categories, category))
}

// handlePostPage renders a published post. The same triple-decode
// fallback as the API applies, since the slug may be Arabic and arrive
// over-encoded. Public page reads count as views.
func (a *App) handlePostPage(c echo.Context) error {
	post, err := a.findPublishedBySlug(c.Param("slug"))
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		}
		return err
	}
	if err := a.Store.IncrementViews(post.ID); err == nil {
		post.Views++
	}
	published, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	related := RelatedPosts(post, published, relatedPostLimit)

	meta := metaView(ResolveMeta(post, a.Config), BlogPostingJsonLD(post, a.Config))
	return Render(c, views.PostPage(a.site(), meta, postView(post), postViews(related)))
}

// findPublishedBySlug looks up a published post by raw slug, then one
// URL decode, then two. First match wins.
func (a *App) findPublishedBySlug(slug string) (BlogPost, error) {
	candidates := []string{slug}
	if dec, err := url.QueryUnescape(slug); err == nil && dec != slug {
		candidates = append(candidates, dec)
		if dec2, err := url.QueryUnescape(dec); err == nil && dec2 != dec {
			candidates = append(candidates, dec2)
		}
	}
	for _, cand := range candidates {
		p, err := a.Store.GetPostBySlug(cand, true)
		if err == ErrNotFound {
			continue
		}
		return p, err
	}
	return BlogPost{}, ErrNotFound
}

// handleRobots generates robots.txt dynamically using the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}
