package atelier

import "time"

// Post statuses. Anything else is rejected before a write.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// CollectionCategories are the accepted values for CollectionItem.Category.
var CollectionCategories = []string{"jalabiya", "ihram", "alteration", "women", "prayer_ihram", "uniform"}

// BlogPost is the core content type. Content is stored as HTML markup.
// Meta fields are persisted at write time, not recomputed on read.
type BlogPost struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	Status    string    `json:"status"`
	Views     int64     `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	AutoSEO         bool       `json:"autoSEO"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	MetaKeywords    []string   `json:"metaKeywords"`
	ManualSEO       *ManualSEO `json:"manualSEO,omitempty"`
}

// ManualSEO is an optional per-post override block. When present it wins
// over both stored and derived meta fields at render time.
type ManualSEO struct {
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	OGImage      string   `json:"ogImage,omitempty"`
	CanonicalURL string   `json:"canonicalUrl,omitempty"`
	NoIndex      bool     `json:"noIndex,omitempty"`
	NoFollow     bool     `json:"noFollow,omitempty"`
}

// Published reports whether the post is publicly visible.
func (p BlogPost) Published() bool {
	return p.Status == StatusPublished
}

// GalleryItem is a showcase image on the public site.
type GalleryItem struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	Category  string    `json:"category"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Service is a tailoring service advertised on the home page.
type Service struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CollectionItem is a piece in the collection showcase.
type CollectionItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SiteContentEntry is a key/value row driving editable site copy and
// imagery (e.g. key "hero_bg"). Upserted by key.
type SiteContentEntry struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Label     string    `json:"label"`
	Type      string    `json:"type"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AdminUser is the single privileged account. The first submitted login
// credentials seed it when the table is empty.
type AdminUser struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Image holds metadata for an uploaded, processed image.
type Image struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int    `json:"size"`
	UploadedAt   string `json:"uploadedAt"`
}

// PageMeta carries resolved per-page SEO metadata into the <head> of a
// rendered page, after manual/stored/derived precedence is applied.
type PageMeta struct {
	Title       string
	Description string
	Keywords    []string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	OGImage     string
	NoIndex     bool
	NoFollow    bool
}
