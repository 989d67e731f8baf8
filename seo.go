package atelier

import (
	"regexp"
	"strings"
)

const (
	metaTitleMax       = 60
	metaDescriptionMax = 160
	metaKeywordsMax    = 10
	keywordMinLen      = 5
)

// SEOMeta is the output of DeriveSEO.
type SEOMeta struct {
	Title       string
	Description string
	Keywords    []string
}

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	metaSpaceRe  = regexp.MustCompile(`\s+`)
	keywordSepRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

// DeriveSEO computes meta fields from post content. It is deterministic:
// same inputs always produce the same outputs.
func DeriveSEO(title, content, excerpt string) SEOMeta {
	return SEOMeta{
		Title:       truncateAtWord(collapseSpace(title), metaTitleMax),
		Description: deriveDescription(content, excerpt),
		Keywords:    extractKeywords(title, content),
	}
}

func deriveDescription(content, excerpt string) string {
	src := collapseSpace(excerpt)
	if src == "" {
		src = collapseSpace(StripHTML(content))
	}
	return truncateAtWord(src, metaDescriptionMax)
}

// StripHTML removes markup tags, leaving the text content.
func StripHTML(s string) string {
	return htmlTagRe.ReplaceAllString(s, " ")
}

func collapseSpace(s string) string {
	return strings.TrimSpace(metaSpaceRe.ReplaceAllString(s, " "))
}

// truncateAtWord cuts s to at most max runes, preferring the last word
// boundary inside the limit. The hard limit always holds.
func truncateAtWord(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ")
}

// extractKeywords picks significant words (above a length threshold) from
// the title and the stripped content, deduplicated in first-seen order and
// capped. Words are lowercased so dedup is case-insensitive.
func extractKeywords(title, content string) []string {
	text := title + " " + StripHTML(content)
	seen := make(map[string]struct{})
	var out []string
	for _, w := range keywordSepRe.Split(text, -1) {
		w = strings.ToLower(strings.TrimSpace(w))
		if len([]rune(w)) < keywordMinLen {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
		if len(out) == metaKeywordsMax {
			break
		}
	}
	return out
}

// applyAutoSEO fills meta fields the caller left empty, but only when
// autoSEO is on. Explicitly provided values always win over derived ones.
func applyAutoSEO(p *BlogPost) {
	if !p.AutoSEO {
		return
	}
	derived := DeriveSEO(p.Title, p.Content, p.Excerpt)
	if p.MetaTitle == "" {
		p.MetaTitle = derived.Title
	}
	if p.MetaDescription == "" {
		p.MetaDescription = derived.Description
	}
	if len(p.MetaKeywords) == 0 {
		p.MetaKeywords = derived.Keywords
	}
}

// ResolveMeta applies render-time precedence for a post page:
// manualSEO overrides win over stored meta, which already won over
// derivation at write time. Falls back to raw post fields last.
func ResolveMeta(p BlogPost, cfg SiteConfig) PageMeta {
	meta := PageMeta{
		Title:       p.MetaTitle,
		Description: p.MetaDescription,
		Keywords:    p.MetaKeywords,
		URL:         BuildURL(cfg.URL, "blog", p.Slug),
		OGType:      "article",
		OGImage:     p.Image,
	}
	if meta.Title == "" {
		meta.Title = truncateAtWord(collapseSpace(p.Title), metaTitleMax)
	}
	if meta.Description == "" {
		meta.Description = deriveDescription(p.Content, p.Excerpt)
	}
	if m := p.ManualSEO; m != nil {
		if m.Title != "" {
			meta.Title = m.Title
		}
		if m.Description != "" {
			meta.Description = m.Description
		}
		if len(m.Keywords) > 0 {
			meta.Keywords = m.Keywords
		}
		if m.OGImage != "" {
			meta.OGImage = m.OGImage
		}
		if m.CanonicalURL != "" {
			meta.URL = m.CanonicalURL
		}
		meta.NoIndex = m.NoIndex
		meta.NoFollow = m.NoFollow
	}
	return meta
}
