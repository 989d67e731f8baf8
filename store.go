package atelier

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database and provides CRUD operations for every
// content collection: posts, gallery, services, collection showcase,
// site content, admin users, and uploaded image metadata.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, runs schema migrations, and seeds the default
// content rows when the collections are empty. Seeding happens here, once
// at startup, so concurrent first requests can never double-seed.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write access, busy timeout so writers wait
	// instead of failing with SQLITE_BUSY, synchronous=NORMAL is safe
	// under WAL; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	if err := s.seedDefaults(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    slug TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    content TEXT NOT NULL,
    image TEXT NOT NULL,
    author TEXT NOT NULL DEFAULT 'Admin',
    category TEXT NOT NULL DEFAULT 'General',
    tags TEXT NOT NULL DEFAULT '[]',
    status TEXT NOT NULL DEFAULT 'draft',
    views INTEGER NOT NULL DEFAULT 0,
    auto_seo INTEGER NOT NULL DEFAULT 1,
    meta_title TEXT NOT NULL DEFAULT '',
    meta_description TEXT NOT NULL DEFAULT '',
    meta_keywords TEXT NOT NULL DEFAULT '[]',
    manual_seo TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_posts_slug ON posts(slug);

CREATE TABLE IF NOT EXISTS gallery_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL DEFAULT '',
    image TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT 'general',
    sort_order INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS services (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    image TEXT NOT NULL,
    sort_order INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS collection_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    category TEXT NOT NULL,
    image TEXT NOT NULL,
    is_featured INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS site_content (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    key TEXT NOT NULL UNIQUE,
    value TEXT NOT NULL,
    label TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT 'image',
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS admin_users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'admin',
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

// --- time and JSON column helpers ---

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func encodeStrings(vals []string) string {
	if vals == nil {
		vals = []string{}
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// decodeStrings never returns nil so empty lists serialize as [] in
// API responses, not null.
func decodeStrings(s string) []string {
	out := []string{}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return []string{}
	}
	return out
}

func encodeManualSEO(m *ManualSEO) sql.NullString {
	if m == nil {
		return sql.NullString{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

func decodeManualSEO(ns sql.NullString) *ManualSEO {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	var m ManualSEO
	if err := json.Unmarshal([]byte(ns.String), &m); err != nil {
		return nil
	}
	return &m
}

// --- posts ---

const postColumns = `id, title, slug, excerpt, content, image, author, category, tags, status, views,
	auto_seo, meta_title, meta_description, meta_keywords, manual_seo, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (BlogPost, error) {
	var p BlogPost
	var tags, keywords, created, updated string
	var autoSEO int
	var manual sql.NullString
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Image, &p.Author,
		&p.Category, &tags, &p.Status, &p.Views, &autoSEO, &p.MetaTitle, &p.MetaDescription,
		&keywords, &manual, &created, &updated)
	if err != nil {
		return BlogPost{}, err
	}
	p.Tags = decodeStrings(tags)
	p.MetaKeywords = decodeStrings(keywords)
	p.AutoSEO = autoSEO == 1
	p.ManualSEO = decodeManualSEO(manual)
	p.CreatedAt = parseTime(created)
	p.UpdatedAt = parseTime(updated)
	return p, nil
}

// InsertPost inserts a new post and fills in its assigned ID and
// timestamps. The slug must already be resolved; a unique-index violation
// surfaces to the caller for the disambiguate-and-retry policy.
func (s *Store) InsertPost(p *BlogPost) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	autoSEO := 0
	if p.AutoSEO {
		autoSEO = 1
	}
	res, err := s.db.Exec(`INSERT INTO posts
		(title, slug, excerpt, content, image, author, category, tags, status, views,
		 auto_seo, meta_title, meta_description, meta_keywords, manual_seo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.Image, p.Author, p.Category,
		encodeStrings(p.Tags), p.Status, autoSEO, p.MetaTitle, p.MetaDescription,
		encodeStrings(p.MetaKeywords), encodeManualSEO(p.ManualSEO),
		formatTime(now), formatTime(now))
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

// UpdatePost rewrites a post by ID and bumps its updated timestamp.
// The views counter is not touched here.
func (s *Store) UpdatePost(p *BlogPost) error {
	now := time.Now().UTC()
	p.UpdatedAt = now
	autoSEO := 0
	if p.AutoSEO {
		autoSEO = 1
	}
	res, err := s.db.Exec(`UPDATE posts SET
		title = ?, slug = ?, excerpt = ?, content = ?, image = ?, author = ?, category = ?,
		tags = ?, status = ?, auto_seo = ?, meta_title = ?, meta_description = ?,
		meta_keywords = ?, manual_seo = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.Image, p.Author, p.Category,
		encodeStrings(p.Tags), p.Status, autoSEO, p.MetaTitle, p.MetaDescription,
		encodeStrings(p.MetaKeywords), encodeManualSEO(p.ManualSEO), formatTime(now), p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost removes a post by ID. Hard delete, no cascade.
func (s *Store) DeletePost(id int64) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	return err
}

// GetPostByID returns a post regardless of status (admin reads).
func (s *Store) GetPostByID(id int64) (BlogPost, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
}

// GetPostBySlug returns a post by exact slug. When publishedOnly is set,
// drafts are invisible and the lookup reports ErrNotFound for them.
func (s *Store) GetPostBySlug(slug string, publishedOnly bool) (BlogPost, error) {
	q := `SELECT ` + postColumns + ` FROM posts WHERE slug = ?`
	if publishedOnly {
		q += ` AND status = 'published'`
	}
	return scanPost(s.db.QueryRow(q, slug))
}

// ListPosts returns posts ordered by creation time descending. Drafts are
// included only when includeDrafts is set; category filters when non-empty.
func (s *Store) ListPosts(includeDrafts bool, category string) ([]BlogPost, error) {
	q := `SELECT ` + postColumns + ` FROM posts`
	var conds []string
	var args []any
	if !includeDrafts {
		conds = append(conds, `status = 'published'`)
	}
	if category != "" {
		conds = append(conds, `category = ?`)
		args = append(args, category)
	}
	for i, c := range conds {
		if i == 0 {
			q += ` WHERE ` + c
		} else {
			q += ` AND ` + c
		}
	}
	q += ` ORDER BY created_at DESC, id DESC`
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// SlugExists reports whether another post already owns the slug.
func (s *Store) SlugExists(slug string, excludeID int64) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&n)
	return n > 0, err
}

// IncrementViews bumps the views counter atomically in the store, so
// concurrent public reads cannot lose updates.
func (s *Store) IncrementViews(id int64) error {
	_, err := s.db.Exec(`UPDATE posts SET views = views + 1 WHERE id = ?`, id)
	return err
}

// --- gallery ---

// ListGallery returns all gallery items ordered by their explicit order.
func (s *Store) ListGallery() ([]GalleryItem, error) {
	rows, err := s.db.Query(`SELECT id, title, image, category, sort_order, created_at, updated_at
		FROM gallery_items ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []GalleryItem
	for rows.Next() {
		var it GalleryItem
		var created, updated string
		if err := rows.Scan(&it.ID, &it.Title, &it.Image, &it.Category, &it.Order, &created, &updated); err != nil {
			return nil, err
		}
		it.CreatedAt = parseTime(created)
		it.UpdatedAt = parseTime(updated)
		items = append(items, it)
	}
	return items, rows.Err()
}

// InsertGalleryItem inserts a gallery item and fills in its ID.
func (s *Store) InsertGalleryItem(it *GalleryItem) error {
	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now
	if it.Category == "" {
		it.Category = "general"
	}
	res, err := s.db.Exec(`INSERT INTO gallery_items (title, image, category, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		it.Title, it.Image, it.Category, it.Order, formatTime(now), formatTime(now))
	if err != nil {
		return err
	}
	it.ID, err = res.LastInsertId()
	return err
}

// DeleteGalleryItem removes a gallery item by ID.
func (s *Store) DeleteGalleryItem(id int64) error {
	_, err := s.db.Exec(`DELETE FROM gallery_items WHERE id = ?`, id)
	return err
}

// --- services ---

// ListServices returns all services ordered by their explicit order.
func (s *Store) ListServices() ([]Service, error) {
	rows, err := s.db.Query(`SELECT id, title, image, sort_order, created_at, updated_at
		FROM services ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		var svc Service
		var created, updated string
		if err := rows.Scan(&svc.ID, &svc.Title, &svc.Image, &svc.Order, &created, &updated); err != nil {
			return nil, err
		}
		svc.CreatedAt = parseTime(created)
		svc.UpdatedAt = parseTime(updated)
		services = append(services, svc)
	}
	return services, rows.Err()
}

// InsertService inserts a service and fills in its ID.
func (s *Store) InsertService(svc *Service) error {
	now := time.Now().UTC()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	res, err := s.db.Exec(`INSERT INTO services (title, image, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		svc.Title, svc.Image, svc.Order, formatTime(now), formatTime(now))
	if err != nil {
		return err
	}
	svc.ID, err = res.LastInsertId()
	return err
}

// DeleteService removes a service by ID.
func (s *Store) DeleteService(id int64) error {
	_, err := s.db.Exec(`DELETE FROM services WHERE id = ?`, id)
	return err
}

// --- collection showcase ---

// ListCollectionItems returns showcase items newest first, optionally
// filtered by category and the featured flag.
func (s *Store) ListCollectionItems(category string, featuredOnly bool) ([]CollectionItem, error) {
	q := `SELECT id, title, description, category, image, is_featured, created_at, updated_at FROM collection_items`
	var conds []string
	var args []any
	if category != "" && category != "all" {
		conds = append(conds, `category = ?`)
		args = append(args, category)
	}
	if featuredOnly {
		conds = append(conds, `is_featured = 1`)
	}
	for i, c := range conds {
		if i == 0 {
			q += ` WHERE ` + c
		} else {
			q += ` AND ` + c
		}
	}
	q += ` ORDER BY created_at DESC, id DESC`
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CollectionItem
	for rows.Next() {
		var it CollectionItem
		var featured int
		var created, updated string
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.Category, &it.Image, &featured, &created, &updated); err != nil {
			return nil, err
		}
		it.IsFeatured = featured == 1
		it.CreatedAt = parseTime(created)
		it.UpdatedAt = parseTime(updated)
		items = append(items, it)
	}
	return items, rows.Err()
}

// InsertCollectionItem inserts a showcase item and fills in its ID.
func (s *Store) InsertCollectionItem(it *CollectionItem) error {
	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now
	featured := 0
	if it.IsFeatured {
		featured = 1
	}
	res, err := s.db.Exec(`INSERT INTO collection_items (title, description, category, image, is_featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.Title, it.Description, it.Category, it.Image, featured, formatTime(now), formatTime(now))
	if err != nil {
		return err
	}
	it.ID, err = res.LastInsertId()
	return err
}

// UpdateCollectionItem rewrites a showcase item by ID.
func (s *Store) UpdateCollectionItem(it *CollectionItem) error {
	now := time.Now().UTC()
	it.UpdatedAt = now
	featured := 0
	if it.IsFeatured {
		featured = 1
	}
	res, err := s.db.Exec(`UPDATE collection_items SET title = ?, description = ?, category = ?, image = ?, is_featured = ?, updated_at = ?
		WHERE id = ?`,
		it.Title, it.Description, it.Category, it.Image, featured, formatTime(now), it.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCollectionItem removes a showcase item by ID.
func (s *Store) DeleteCollectionItem(id int64) error {
	_, err := s.db.Exec(`DELETE FROM collection_items WHERE id = ?`, id)
	return err
}

// --- site content ---

// ListSiteContent returns every key/value content row.
func (s *Store) ListSiteContent() ([]SiteContentEntry, error) {
	rows, err := s.db.Query(`SELECT id, key, value, label, type, updated_at FROM site_content ORDER BY key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []SiteContentEntry
	for rows.Next() {
		var e SiteContentEntry
		var updated string
		if err := rows.Scan(&e.ID, &e.Key, &e.Value, &e.Label, &e.Type, &updated); err != nil {
			return nil, err
		}
		e.UpdatedAt = parseTime(updated)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SiteContentMap returns the content rows keyed for template lookups.
func (s *Store) SiteContentMap() (map[string]string, error) {
	entries, err := s.ListSiteContent()
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Value
	}
	return m, nil
}

// UpsertSiteContent inserts or updates a content row by key. The unique
// index on key makes the upsert atomic.
func (s *Store) UpsertSiteContent(e *SiteContentEntry) error {
	now := time.Now().UTC()
	e.UpdatedAt = now
	if e.Type == "" {
		e.Type = "image"
	}
	_, err := s.db.Exec(`INSERT INTO site_content (key, value, label, type, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, label = excluded.label,
			type = excluded.type, updated_at = excluded.updated_at`,
		e.Key, e.Value, e.Label, e.Type, formatTime(now))
	if err != nil {
		return err
	}
	return s.db.QueryRow(`SELECT id FROM site_content WHERE key = ?`, e.Key).Scan(&e.ID)
}

// --- admin users ---

// CountAdmins returns the number of admin accounts.
func (s *Store) CountAdmins() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM admin_users`).Scan(&n)
	return n, err
}

// GetAdminByEmail returns the admin account with the given email.
func (s *Store) GetAdminByEmail(email string) (AdminUser, error) {
	var u AdminUser
	var created string
	err := s.db.QueryRow(`SELECT id, email, password_hash, role, created_at FROM admin_users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &created)
	if err != nil {
		return AdminUser{}, err
	}
	u.CreatedAt = parseTime(created)
	return u, nil
}

// InsertAdmin creates an admin account.
func (s *Store) InsertAdmin(u *AdminUser) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	if u.Role == "" {
		u.Role = "admin"
	}
	res, err := s.db.Exec(`INSERT INTO admin_users (email, password_hash, role, created_at) VALUES (?, ?, ?, ?)`,
		u.Email, u.PasswordHash, u.Role, formatTime(now))
	if err != nil {
		return err
	}
	u.ID, err = res.LastInsertId()
	return err
}

// --- uploaded images ---

// ListImages returns uploaded image metadata, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at
		FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// SaveImage records metadata for an uploaded image.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
