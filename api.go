package atelier

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// postInput is the create/update payload for blog posts. AutoSEO is a
// pointer so an absent field can default to true without clobbering an
// explicit false.
type postInput struct {
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	Image           string     `json:"image"`
	Author          string     `json:"author"`
	Category        string     `json:"category"`
	Tags            []string   `json:"tags"`
	Status          string     `json:"status"`
	AutoSEO         *bool      `json:"autoSEO"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	MetaKeywords    []string   `json:"metaKeywords"`
	ManualSEO       *ManualSEO `json:"manualSEO"`
}

func errJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// --- blog ---

// handleListBlog lists posts. Draft posts are only included for callers
// holding a valid admin token; the role parameter alone is not trusted.
func (a *App) handleListBlog(c echo.Context) error {
	includeDrafts := c.QueryParam("role") == "admin" && a.isAdmin(c)
	posts, err := a.Store.ListPosts(includeDrafts, c.QueryParam("category"))
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []BlogPost{}
	}
	return c.JSON(http.StatusOK, posts)
}

// handleCreateBlog creates a post, deriving the slug and meta fields per
// the write-time policy before persisting.
func (a *App) handleCreateBlog(c echo.Context) error {
	var in postInput
	if err := c.Bind(&in); err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	p := postFromInput(in)
	if p.Author == "" {
		p.Author = "Admin"
	}
	if p.Category == "" {
		p.Category = "General"
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	p.AutoSEO = in.AutoSEO == nil || *in.AutoSEO
	if err := validatePost(p); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}

	slug, err := a.Store.resolveNewSlug(in.Slug, p.Title)
	if err != nil {
		return err
	}
	p.Slug = slug
	applyAutoSEO(&p)

	// The unique index is the backstop for the check-then-insert race:
	// a constraint failure gets one retry with a timestamp suffix.
	if err := a.Store.InsertPost(&p); err != nil {
		if !isUniqueViolation(err) {
			return err
		}
		p.Slug = timestampSlug(slug)
		if err := a.Store.InsertPost(&p); err != nil {
			if isUniqueViolation(err) {
				return errJSON(c, http.StatusConflict, ErrDuplicateSlug.Error())
			}
			return err
		}
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusCreated, p)
}

// handleGetBlog fetches a post by ID (admin-facing; drafts included).
func (a *App) handleGetBlog(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid id")
	}
	p, err := a.Store.GetPostByID(id)
	if err != nil {
		if err == ErrNotFound {
			return errJSON(c, http.StatusNotFound, "Post not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// handleUpdateBlog rewrites a post. A user-chosen slug is never silently
// overwritten; the slug regenerates only when the title changed and no
// explicit slug was supplied.
func (a *App) handleUpdateBlog(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid id")
	}
	existing, err := a.Store.GetPostByID(id)
	if err != nil {
		if err == ErrNotFound {
			return errJSON(c, http.StatusNotFound, "Post not found")
		}
		return err
	}

	var in postInput
	if err := c.Bind(&in); err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	p := postFromInput(in)
	p.ID = existing.ID
	p.Views = existing.Views
	p.CreatedAt = existing.CreatedAt
	if p.Author == "" {
		p.Author = existing.Author
	}
	if p.Category == "" {
		p.Category = existing.Category
	}
	if p.Status == "" {
		p.Status = existing.Status
	}
	p.AutoSEO = existing.AutoSEO
	if in.AutoSEO != nil {
		p.AutoSEO = *in.AutoSEO
	}
	if err := validatePost(p); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}

	slug, err := a.Store.resolveUpdateSlug(existing, in.Slug, p.Title)
	if err != nil {
		if err == ErrDuplicateSlug {
			return errJSON(c, http.StatusConflict, err.Error())
		}
		return err
	}
	p.Slug = slug
	applyAutoSEO(&p)

	if err := a.Store.UpdatePost(&p); err != nil {
		if isUniqueViolation(err) {
			return errJSON(c, http.StatusConflict, ErrDuplicateSlug.Error())
		}
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, p)
}

// handleDeleteBlog removes a post. Hard delete, no cascade.
func (a *App) handleDeleteBlog(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid id")
	}
	if err := a.Store.DeletePost(id); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted successfully"})
}

// handleGetBlogBySlug is the public fetch. Some clients over-encode
// non-ASCII slugs, so the lookup tries the raw value, then one URL
// decode, then a second. Each public hit bumps views.
func (a *App) handleGetBlogBySlug(c echo.Context) error {
	p, err := a.findPublishedBySlug(c.Param("slug"))
	if err != nil {
		if err == ErrNotFound {
			return errJSON(c, http.StatusNotFound, "Post not found")
		}
		return err
	}
	if err := a.Store.IncrementViews(p.ID); err == nil {
		p.Views++
	}
	return c.JSON(http.StatusOK, p)
}

func postFromInput(in postInput) BlogPost {
	return BlogPost{
		Title:           strings.TrimSpace(in.Title),
		Excerpt:         strings.TrimSpace(in.Excerpt),
		Content:         in.Content,
		Image:           strings.TrimSpace(in.Image),
		Author:          strings.TrimSpace(in.Author),
		Category:        strings.TrimSpace(in.Category),
		Tags:            FilterEmpty(in.Tags),
		Status:          strings.TrimSpace(in.Status),
		MetaTitle:       strings.TrimSpace(in.MetaTitle),
		MetaDescription: strings.TrimSpace(in.MetaDescription),
		MetaKeywords:    FilterEmpty(in.MetaKeywords),
		ManualSEO:       in.ManualSEO,
	}
}

// --- collection showcase ---

func (a *App) handleListCollections(c echo.Context) error {
	items, err := a.Store.ListCollectionItems(c.QueryParam("category"), c.QueryParam("featured") == "true")
	if err != nil {
		return err
	}
	if items == nil {
		items = []CollectionItem{}
	}
	return c.JSON(http.StatusOK, items)
}

func (a *App) handleCreateCollection(c echo.Context) error {
	var it CollectionItem
	if err := c.Bind(&it); err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := validateCollectionItem(it); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if err := a.Store.InsertCollectionItem(&it); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, it)
}

func (a *App) handleUpdateCollection(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid id")
	}
	var it CollectionItem
	if err := c.Bind(&it); err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	it.ID = id
	if err := validateCollectionItem(it); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if err := a.Store.UpdateCollectionItem(&it); err != nil {
		if err == ErrNotFound {
			return errJSON(c, http.StatusNotFound, "Item not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, it)
}

func (a *App) handleDeleteCollection(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid id")
	}
	if err := a.Store.DeleteCollectionItem(id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted successfully"})
}

// --- gallery ---

func (a *App) handleListGallery(c echo.Context) error {
	items, err := a.Store.ListGallery()
	if err != nil {
		return err
	}
	if items == nil {
		items = []GalleryItem{}
	}
	return c.JSON(http.StatusOK, items)
}

func (a *App) handleCreateGallery(c echo.Context) error {
	var it GalleryItem
	if err := c.Bind(&it); err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := validateGalleryItem(it); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if err := a.Store.InsertGalleryItem(&it); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, it)
}

func (a *App) handleDeleteGallery(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid id")
	}
	if err := a.Store.DeleteGalleryItem(id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted successfully"})
}

// --- services ---

func (a *App) handleListServices(c echo.Context) error {
	services, err := a.Store.ListServices()
	if err != nil {
		return err
	}
	if services == nil {
		services = []Service{}
	}
	return c.JSON(http.StatusOK, services)
}

func (a *App) handleCreateService(c echo.Context) error {
	var svc Service
	if err := c.Bind(&svc); err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := validateService(svc); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if err := a.Store.InsertService(&svc); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, svc)
}

func (a *App) handleDeleteService(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid id")
	}
	if err := a.Store.DeleteService(id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted successfully"})
}

// --- site content ---

func (a *App) handleListSiteContent(c echo.Context) error {
	entries, err := a.Store.ListSiteContent()
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []SiteContentEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

func (a *App) handleUpsertSiteContent(c echo.Context) error {
	var e SiteContentEntry
	if err := c.Bind(&e); err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := validateSiteContent(e); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if err := a.Store.UpsertSiteContent(&e); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}
