package atelier

import (
	"testing"
	"time"
)

func TestPostCacheServesAndInvalidates(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	cache := NewPostCache(s, time.Minute)

	p := testPost("Cached Post")
	if err := s.InsertPost(&p); err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}

	posts, err := cache.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("cached count = %d, want 1", len(posts))
	}

	// A write behind the cache's back is invisible until invalidation.
	p2 := testPost("Second Post")
	if err := s.InsertPost(&p2); err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}
	posts, err = cache.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("stale read count = %d, want 1 before invalidation", len(posts))
	}

	cache.Invalidate()
	posts, err = cache.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("fresh read count = %d, want 2", len(posts))
	}
}

func TestPostCacheExcludesDrafts(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	cache := NewPostCache(s, time.Minute)

	draft := testPost("Draft Only")
	draft.Status = StatusDraft
	if err := s.InsertPost(&draft); err != nil {
		t.Fatalf("InsertPost failed: %v", err)
	}

	posts, err := cache.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("cache served %d drafts, want 0", len(posts))
	}
	if _, err := cache.GetPost(draft.Slug); err != ErrNotFound {
		t.Errorf("GetPost for a draft should be ErrNotFound, got %v", err)
	}
}

func TestPostCacheCategories(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	cache := NewPostCache(s, time.Minute)

	posts := []struct{ title, category string }{
		{"Jalabiya One", "Jalabiya"},
		{"Fabric Care", "Fabric"},
		{"Jalabiya Two", "Jalabiya"},
	}
	for _, tp := range posts {
		p := testPost(tp.title)
		p.Category = tp.category
		if err := s.InsertPost(&p); err != nil {
			t.Fatalf("InsertPost failed: %v", err)
		}
	}

	categories, err := cache.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("categories = %v, want 2 distinct", categories)
	}

	filtered, err := cache.ListPosts("Fabric")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(filtered) != 1 {
		t.Errorf("Fabric posts = %d, want 1", len(filtered))
	}
}
