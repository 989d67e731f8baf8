package atelier

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_atelier.db")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s, func() { s.Close() }
}

func TestNewStore(t *testing.T) {
	// Exercises driver registration and schema setup on a fresh path.
	path := filepath.Join(t.TempDir(), "fresh.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer s.Close()

	if _, err := s.CountAdmins(); err != nil {
		t.Fatalf("query on fresh store failed: %v", err)
	}
}

func testPost(title string) BlogPost {
	return BlogPost{
		Title:    title,
		Slug:     Slugify(title),
		Excerpt:  "An excerpt about " + title,
		Content:  "<p>Content about " + title + "</p>",
		Image:    "/siteimages/test.webp",
		Author:   "Admin",
		Category: "General",
		Status:   StatusPublished,
		AutoSEO:  true,
	}
}

func TestInsertAndGetPost(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	p := testPost("First Post")
	p.Tags = []string{"tailoring", "fabric"}
	p.MetaTitle = "First Post"
	p.MetaKeywords = []string{"tailoring"}
	p.ManualSEO = &ManualSEO{Title: "Override", NoIndex: true}

	if err := s.InsertPost(&p); err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("InsertPost should assign an ID")
	}

	got, err := s.GetPostByID(p.ID)
	if err != nil {
		t.Fatalf("GetPostByID failed: %v", err)
	}
	if got.Title != p.Title {
		t.Errorf("Title = %q, want %q", got.Title, p.Title)
	}
	if got.Slug != "First-Post" {
		t.Errorf("Slug = %q, want %q", got.Slug, "First-Post")
	}
	if len(got.Tags) != 2 || got.Tags[0] != "tailoring" || got.Tags[1] != "fabric" {
		t.Errorf("Tags = %v, want [tailoring fabric]", got.Tags)
	}
	if !got.AutoSEO {
		t.Error("AutoSEO should round-trip as true")
	}
	if got.ManualSEO == nil || got.ManualSEO.Title != "Override" || !got.ManualSEO.NoIndex {
		t.Errorf("ManualSEO = %+v, want title Override with noIndex", got.ManualSEO)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps should be set on insert")
	}
}

func TestPostEmptyListsRoundTrip(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	p := testPost("Bare Post")
	p.AutoSEO = false
	if err := s.InsertPost(&p); err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}

	got, err := s.GetPostByID(p.ID)
	if err != nil {
		t.Fatalf("GetPostByID failed: %v", err)
	}
	// Empty lists stay [] so they serialize as [] in responses, not null.
	if got.Tags == nil {
		t.Error("Tags should be an empty slice, not nil")
	}
	if got.MetaKeywords == nil {
		t.Error("MetaKeywords should be an empty slice, not nil")
	}
	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal post: %v", err)
	}
	if strings.Contains(string(b), `"tags":null`) || strings.Contains(string(b), `"metaKeywords":null`) {
		t.Errorf("post serializes empty lists as null: %s", b)
	}
}

func TestGetPostBySlugPublishedOnly(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	draft := testPost("Hidden Draft")
	draft.Status = StatusDraft
	if err := s.InsertPost(&draft); err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}

	// Published-only lookup must not see the draft.
	if _, err := s.GetPostBySlug(draft.Slug, true); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for draft, got %v", err)
	}

	// Unrestricted lookup sees it.
	got, err := s.GetPostBySlug(draft.Slug, false)
	if err != nil {
		t.Fatalf("GetPostBySlug failed: %v", err)
	}
	if got.Published() {
		t.Error("Published() should be false for a draft")
	}
}

func TestListPostsFilters(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	posts := []BlogPost{
		testPost("Jalabiya Guide"),
		testPost("Fabric Care"),
		testPost("Draft Notes"),
	}
	posts[0].Category = "Jalabiya"
	posts[1].Category = "Fabric"
	posts[2].Status = StatusDraft
	for i := range posts {
		if err := s.InsertPost(&posts[i]); err != nil {
			t.Fatalf("InsertPost failed: %v", err)
		}
	}

	got, err := s.ListPosts(false, "")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("published count = %d, want 2", len(got))
	}

	got, err = s.ListPosts(true, "")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("all count = %d, want 3", len(got))
	}
	// Newest first.
	if got[0].Title != "Draft Notes" {
		t.Errorf("first post = %q, want newest", got[0].Title)
	}

	got, err = s.ListPosts(false, "Fabric")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 1 || got[0].Category != "Fabric" {
		t.Errorf("category filter returned %v", got)
	}
}

func TestUpdatePost(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	p := testPost("Before")
	if err := s.InsertPost(&p); err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}

	p.Title = "After"
	p.Tags = []string{"updated"}
	if err := s.UpdatePost(&p); err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}

	got, err := s.GetPostByID(p.ID)
	if err != nil {
		t.Fatalf("GetPostByID failed: %v", err)
	}
	if got.Title != "After" {
		t.Errorf("Title = %q, want %q", got.Title, "After")
	}
	if len(got.Tags) != 1 || got.Tags[0] != "updated" {
		t.Errorf("Tags = %v, want [updated]", got.Tags)
	}
}

func TestUpdatePostNotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	p := testPost("Ghost")
	p.ID = 9999
	if err := s.UpdatePost(&p); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePost(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	p := testPost("To Delete")
	if err := s.InsertPost(&p); err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}
	if err := s.DeletePost(p.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if _, err := s.GetPostByID(p.ID); err != ErrNotFound {
		t.Errorf("post should be gone, got err: %v", err)
	}

	// Deleting a nonexistent post is not an error.
	if err := s.DeletePost(9999); err != nil {
		t.Errorf("DeletePost on nonexistent should not error, got: %v", err)
	}
}

func TestIncrementViews(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	p := testPost("Counted")
	if err := s.InsertPost(&p); err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}

	if err := s.IncrementViews(p.ID); err != nil {
		t.Fatalf("IncrementViews failed: %v", err)
	}
	if err := s.IncrementViews(p.ID); err != nil {
		t.Fatalf("IncrementViews failed: %v", err)
	}

	got, err := s.GetPostByID(p.ID)
	if err != nil {
		t.Fatalf("GetPostByID failed: %v", err)
	}
	if got.Views != 2 {
		t.Errorf("Views = %d, want 2", got.Views)
	}
}

func TestSlugExists(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	p := testPost("Unique Title")
	if err := s.InsertPost(&p); err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}

	exists, err := s.SlugExists(p.Slug, 0)
	if err != nil {
		t.Fatalf("SlugExists failed: %v", err)
	}
	if !exists {
		t.Error("SlugExists should report the inserted slug")
	}

	// Excluding the owner makes the slug free again.
	exists, err = s.SlugExists(p.Slug, p.ID)
	if err != nil {
		t.Fatalf("SlugExists failed: %v", err)
	}
	if exists {
		t.Error("SlugExists should ignore the excluded post")
	}
}

func TestDuplicateSlugRejectedByIndex(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	p1 := testPost("Same Slug")
	if err := s.InsertPost(&p1); err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}
	p2 := testPost("Same Slug")
	err := s.InsertPost(&p2)
	if err == nil {
		t.Fatal("second insert with the same slug should fail")
	}
	if !isUniqueViolation(err) {
		t.Errorf("expected a unique violation, got %v", err)
	}
}

func TestSeedDefaults(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	gallery, err := s.ListGallery()
	if err != nil {
		t.Fatalf("ListGallery failed: %v", err)
	}
	if len(gallery) != len(defaultGallery) {
		t.Errorf("gallery count = %d, want %d", len(gallery), len(defaultGallery))
	}

	services, err := s.ListServices()
	if err != nil {
		t.Fatalf("ListServices failed: %v", err)
	}
	if len(services) != len(defaultServices) {
		t.Errorf("services count = %d, want %d", len(services), len(defaultServices))
	}
	if services[0].Title != "أزياء الحج والعمرة" {
		t.Errorf("first service = %q, want seeded Arabic title", services[0].Title)
	}

	content, err := s.SiteContentMap()
	if err != nil {
		t.Fatalf("SiteContentMap failed: %v", err)
	}
	if _, ok := content["hero_bg"]; !ok {
		t.Error("seeded site content should include hero_bg")
	}

	// Seeding is idempotent across restarts.
	if err := s.seedDefaults(); err != nil {
		t.Fatalf("seedDefaults failed: %v", err)
	}
	gallery, err = s.ListGallery()
	if err != nil {
		t.Fatalf("ListGallery failed: %v", err)
	}
	if len(gallery) != len(defaultGallery) {
		t.Errorf("re-seed changed gallery count to %d", len(gallery))
	}
}

func TestUpsertSiteContent(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	e := SiteContentEntry{Key: "hero_bg", Value: "/siteimages/new-bg.webp", Label: "Hero background image"}
	if err := s.UpsertSiteContent(&e); err != nil {
		t.Fatalf("UpsertSiteContent failed: %v", err)
	}
	if e.ID == 0 {
		t.Error("upsert should resolve the row ID")
	}

	content, err := s.SiteContentMap()
	if err != nil {
		t.Fatalf("SiteContentMap failed: %v", err)
	}
	if content["hero_bg"] != "/siteimages/new-bg.webp" {
		t.Errorf("hero_bg = %q, want updated value", content["hero_bg"])
	}

	// Still one row per key.
	entries, err := s.ListSiteContent()
	if err != nil {
		t.Fatalf("ListSiteContent failed: %v", err)
	}
	seen := 0
	for _, entry := range entries {
		if entry.Key == "hero_bg" {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("hero_bg rows = %d, want 1", seen)
	}
}

func TestCollectionItemCRUD(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	it := CollectionItem{
		Title:       "Royal Jalabiya",
		Description: "Hand-stitched jalabiya",
		Category:    "jalabiya",
		Image:       "/siteimages/royal.webp",
		IsFeatured:  true,
	}
	if err := s.InsertCollectionItem(&it); err != nil {
		t.Fatalf("InsertCollectionItem failed: %v", err)
	}

	featured, err := s.ListCollectionItems("", true)
	if err != nil {
		t.Fatalf("ListCollectionItems failed: %v", err)
	}
	if len(featured) != 1 || !featured[0].IsFeatured {
		t.Errorf("featured = %v, want one featured item", featured)
	}

	// "all" behaves like no category filter.
	all, err := s.ListCollectionItems("all", false)
	if err != nil {
		t.Fatalf("ListCollectionItems failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("all count = %d, want 1", len(all))
	}

	it.IsFeatured = false
	it.Title = "Updated Jalabiya"
	if err := s.UpdateCollectionItem(&it); err != nil {
		t.Fatalf("UpdateCollectionItem failed: %v", err)
	}
	featured, err = s.ListCollectionItems("", true)
	if err != nil {
		t.Fatalf("ListCollectionItems failed: %v", err)
	}
	if len(featured) != 0 {
		t.Errorf("featured count after update = %d, want 0", len(featured))
	}

	if err := s.DeleteCollectionItem(it.ID); err != nil {
		t.Fatalf("DeleteCollectionItem failed: %v", err)
	}
	all, err = s.ListCollectionItems("", false)
	if err != nil {
		t.Fatalf("ListCollectionItems failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("count after delete = %d, want 0", len(all))
	}
}

func TestAdminUsers(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	n, err := s.CountAdmins()
	if err != nil {
		t.Fatalf("CountAdmins failed: %v", err)
	}
	if n != 0 {
		t.Errorf("fresh store admins = %d, want 0", n)
	}

	u := AdminUser{Email: "owner@example.com", PasswordHash: "hash"}
	if err := s.InsertAdmin(&u); err != nil {
		t.Fatalf("InsertAdmin failed: %v", err)
	}
	if u.Role != "admin" {
		t.Errorf("Role = %q, want default admin", u.Role)
	}

	got, err := s.GetAdminByEmail("owner@example.com")
	if err != nil {
		t.Fatalf("GetAdminByEmail failed: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("ID = %d, want %d", got.ID, u.ID)
	}

	if _, err := s.GetAdminByEmail("nobody@example.com"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
