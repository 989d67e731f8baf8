package atelier

import "strings"

// Validation runs before any store write, independent of the schema's own
// constraints, so a bad payload never turns into an opaque driver error.

func validatePost(p BlogPost) error {
	if strings.TrimSpace(p.Title) == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if strings.TrimSpace(p.Excerpt) == "" {
		return &ValidationError{Field: "excerpt", Reason: "is required"}
	}
	if strings.TrimSpace(p.Content) == "" {
		return &ValidationError{Field: "content", Reason: "is required"}
	}
	if strings.TrimSpace(p.Image) == "" {
		return &ValidationError{Field: "image", Reason: "is required"}
	}
	if p.Status != StatusDraft && p.Status != StatusPublished {
		return &ValidationError{Field: "status", Reason: "must be draft or published"}
	}
	return nil
}

func validateCollectionItem(item CollectionItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if strings.TrimSpace(item.Description) == "" {
		return &ValidationError{Field: "description", Reason: "is required"}
	}
	if strings.TrimSpace(item.Image) == "" {
		return &ValidationError{Field: "image", Reason: "is required"}
	}
	for _, c := range CollectionCategories {
		if item.Category == c {
			return nil
		}
	}
	return &ValidationError{Field: "category", Reason: "must be one of " + strings.Join(CollectionCategories, ", ")}
}

func validateGalleryItem(item GalleryItem) error {
	if strings.TrimSpace(item.Image) == "" {
		return &ValidationError{Field: "image", Reason: "is required"}
	}
	return nil
}

func validateService(svc Service) error {
	if strings.TrimSpace(svc.Title) == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if strings.TrimSpace(svc.Image) == "" {
		return &ValidationError{Field: "image", Reason: "is required"}
	}
	return nil
}

func validateSiteContent(entry SiteContentEntry) error {
	if strings.TrimSpace(entry.Key) == "" {
		return &ValidationError{Field: "key", Reason: "is required"}
	}
	if strings.TrimSpace(entry.Value) == "" {
		return &ValidationError{Field: "value", Reason: "is required"}
	}
	if strings.TrimSpace(entry.Label) == "" {
		return &ValidationError{Field: "label", Reason: "is required"}
	}
	return nil
}
