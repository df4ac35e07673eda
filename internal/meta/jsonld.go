package meta

import (
	"encoding/json"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
)

// SerializeInline serializes a value for embedding in an inline <script>
// block. `<`, `>`, `&`, U+2028 and U+2029 are always escaped to prevent
// script-context breakout; this is part of the output contract, not
// optional hardening.
func SerializeInline(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}
	r := strings.NewReplacer(
		"<", `\u003c`,
		">", `\u003e`,
		"&", `\u0026`,
		" ", `\u2028`,
		" ", `\u2029`,
	)
	return r.Replace(string(data))
}

// articleStructuredData builds the schema.org Article payload for post
// pages.
func (e *Engine) articleStructuredData(front content.Front, locale, canonicalURL, imageURL string) string {
	structured := map[string]any{
		"@context":         "https://schema.org",
		"@type":            "Article",
		"headline":         front.Title,
		"description":      front.Description,
		"author":           map[string]any{"@type": "Person", "name": e.author},
		"inLanguage":       locale,
		"mainEntityOfPage": canonicalURL,
	}

	if front.Date != "" {
		structured["datePublished"] = front.Date
	}
	if front.Updated != "" {
		structured["dateModified"] = front.Updated
	}
	if imageURL != "" {
		structured["image"] = []string{imageURL}
	}
	if section := e.articleSection(front, locale); section != "" {
		structured["articleSection"] = section
	}
	if keywords := keywordsOrTags(front); len(keywords) > 0 {
		structured["keywords"] = keywords
	}

	return SerializeInline(structured)
}

// articleSection resolves the locale-specific display name of the page's
// category via the translation dictionary, falling back to the category
// slug.
func (e *Engine) articleSection(front content.Front, locale string) string {
	if front.Category == "" {
		return ""
	}
	return e.locales.T(locale, "categories."+front.Category, front.Category)
}

// keywordsOrTags prefers explicit keywords over the tag labels.
func keywordsOrTags(front content.Front) []string {
	if len(front.Keywords) > 0 {
		return front.Keywords
	}
	return front.TagsRaw
}

// websiteStructuredData builds the schema.org WebSite payload for the home
// template.
func (e *Engine) websiteStructuredData(locale, canonicalURL string) string {
	structured := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        e.locales.T(locale, "site.title", e.author),
		"description": e.locales.T(locale, "site.description", ""),
		"url":         canonicalURL,
		"inLanguage":  locale,
		"publisher":   map[string]any{"@type": "Person", "name": e.author},
	}
	return SerializeInline(structured)
}

// webPageStructuredData builds the schema.org WebPage payload for plain
// pages.
func (e *Engine) webPageStructuredData(front content.Front, locale, canonicalURL string) string {
	structured := map[string]any{
		"@context":         "https://schema.org",
		"@type":            "WebPage",
		"headline":         front.Title,
		"description":      front.Description,
		"author":           map[string]any{"@type": "Person", "name": e.author},
		"inLanguage":       locale,
		"mainEntityOfPage": canonicalURL,
	}
	if keywords := keywordsOrTags(front); len(keywords) > 0 {
		structured["keywords"] = keywords
	}
	return SerializeInline(structured)
}
