package atelier

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Characters that survive slugification: word characters, whitespace,
// hyphens, and the Arabic block. Arabic letters are kept verbatim so
// Arabic-titled posts get Arabic slugs, with no transliteration.
var (
	slugDropRe   = regexp.MustCompile(`[^\w\s\x{0600}-\x{06FF}-]`)
	slugSpaceRe  = regexp.MustCompile(`[\s_]+`)
	slugHyphenRe = regexp.MustCompile(`-+`)
)

// Slugify converts a title to a URL-safe slug. It never fails: the worst
// case is an empty string, which callers must treat as "no usable slug".
func Slugify(title string) string {
	s := strings.TrimSpace(title)
	s = slugDropRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugHyphenRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// timestampSlug disambiguates a taken slug (or stands in for an empty one)
// by appending the current time in milliseconds.
func timestampSlug(base string) string {
	ms := time.Now().UnixMilli()
	if base == "" {
		return fmt.Sprintf("post-%d", ms)
	}
	return fmt.Sprintf("%s-%d", base, ms)
}

// resolveNewSlug picks the slug for a post being created. An explicit slug
// wins over derivation; a collision in the store gets a timestamp suffix.
// The unique index on posts.slug remains the backstop for races; the
// create handler retries once on a constraint violation.
func (s *Store) resolveNewSlug(explicit, title string) (string, error) {
	slug := strings.TrimSpace(explicit)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return timestampSlug(""), nil
	}
	exists, err := s.SlugExists(slug, 0)
	if err != nil {
		return "", err
	}
	if exists {
		return timestampSlug(slug), nil
	}
	return slug, nil
}

// resolveUpdateSlug picks the slug for a post being updated. An explicit
// slug is never overwritten; the slug is regenerated only when the title
// changed and no explicit slug was supplied.
func (s *Store) resolveUpdateSlug(existing BlogPost, explicit, newTitle string) (string, error) {
	if slug := strings.TrimSpace(explicit); slug != "" {
		if slug == existing.Slug {
			return slug, nil
		}
		exists, err := s.SlugExists(slug, existing.ID)
		if err != nil {
			return "", err
		}
		if exists {
			return "", ErrDuplicateSlug
		}
		return slug, nil
	}
	if newTitle == existing.Title {
		return existing.Slug, nil
	}
	slug := Slugify(newTitle)
	if slug == "" {
		return existing.Slug, nil
	}
	if slug == existing.Slug {
		return slug, nil
	}
	exists, err := s.SlugExists(slug, existing.ID)
	if err != nil {
		return "", err
	}
	if exists {
		return timestampSlug(slug), nil
	}
	return slug, nil
}
