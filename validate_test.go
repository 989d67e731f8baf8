package atelier

import "testing"

func TestValidatePost(t *testing.T) {
	p := testPost("Valid Post")
	if err := validatePost(p); err != nil {
		t.Errorf("valid post rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*BlogPost)
		field  string
	}{
		{"missing title", func(p *BlogPost) { p.Title = "  " }, "title"},
		{"missing excerpt", func(p *BlogPost) { p.Excerpt = "" }, "excerpt"},
		{"missing content", func(p *BlogPost) { p.Content = "" }, "content"},
		{"missing image", func(p *BlogPost) { p.Image = "" }, "image"},
		{"bad status", func(p *BlogPost) { p.Status = "archived" }, "status"},
	}
	for _, tt := range tests {
		p := testPost("Valid Post")
		tt.mutate(&p)
		err := validatePost(p)
		ve, ok := err.(*ValidationError)
		if !ok {
			t.Errorf("%s: expected ValidationError, got %v", tt.name, err)
			continue
		}
		if ve.Field != tt.field {
			t.Errorf("%s: field = %q, want %q", tt.name, ve.Field, tt.field)
		}
	}
}

func TestValidateCollectionItem(t *testing.T) {
	it := CollectionItem{
		Title:       "Royal Jalabiya",
		Description: "Hand-stitched",
		Category:    "jalabiya",
		Image:       "/siteimages/royal.webp",
	}
	if err := validateCollectionItem(it); err != nil {
		t.Errorf("valid item rejected: %v", err)
	}

	it.Category = "not-a-category"
	err := validateCollectionItem(it)
	ve, ok := err.(*ValidationError)
	if !ok || ve.Field != "category" {
		t.Errorf("expected category ValidationError, got %v", err)
	}
}

func TestValidateGalleryAndService(t *testing.T) {
	if err := validateGalleryItem(GalleryItem{Image: "/x.webp"}); err != nil {
		t.Errorf("gallery item with image should pass: %v", err)
	}
	if err := validateGalleryItem(GalleryItem{Title: "No Image"}); err == nil {
		t.Error("gallery item without image should fail")
	}

	if err := validateService(Service{Title: "خياطة", Image: "/x.webp"}); err != nil {
		t.Errorf("valid service rejected: %v", err)
	}
	if err := validateService(Service{Image: "/x.webp"}); err == nil {
		t.Error("service without title should fail")
	}
}

func TestValidateSiteContent(t *testing.T) {
	e := SiteContentEntry{Key: "hero_bg", Value: "/x.webp", Label: "Hero"}
	if err := validateSiteContent(e); err != nil {
		t.Errorf("valid entry rejected: %v", err)
	}
	e.Key = ""
	if err := validateSiteContent(e); err == nil {
		t.Error("entry without key should fail")
	}
}
