package meta

import (
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/i18n"
)

// OpenGraph is the og: block of a rendered page.
type OpenGraph struct {
	Title       string
	Description string
	Type        string
	URL         string
	Image       string
	Locale      string
	AltLocales  []string
}

// Twitter is the twitter: card block of a rendered page.
type Twitter struct {
	Card        string
	Title       string
	Description string
	Image       string
	URL         string
}

// PageMeta is the per-page SEO payload consumed by the layout renderer.
// Transient: built per page render, never persisted.
type PageMeta struct {
	Title          string
	Description    string
	Robots         string
	Canonical      string
	Alternates     map[string]string
	AlternateLinks []AlternateLink
	OG             OpenGraph
	Twitter        Twitter
	StructuredData string
}

// BuildPageMeta assembles the SEO payload for one page.
func (e *Engine) BuildPageMeta(front content.Front, locale, slug string) PageMeta {
	canonicalURL := e.CanonicalURL(front, locale, slug)

	title := front.MetaTitle
	if title == "" {
		title = front.Title
	}
	if title == "" {
		title = "Untitled"
	}

	bc, _ := e.locales.Build(locale)
	ogLocale := front.OGLocale
	if ogLocale == "" {
		ogLocale = bc.OGLocale
	}
	if ogLocale == "" {
		ogLocale = e.locales.Culture(locale)
	}

	image := e.ResolveURL(coverOrDefault(front.Cover, e.defaultImage))
	alternates := e.BuildAlternateURLMap(front, locale, canonicalURL)

	isArticle := front.Template == "post" ||
		front.Type == "article" || front.Type == "guide" || front.Type == "post"

	structured := ""
	switch {
	case isArticle:
		structured = e.articleStructuredData(front, locale, canonicalURL, image)
	case front.Template == "home":
		structured = e.websiteStructuredData(locale, canonicalURL)
	case front.Template == "page":
		structured = e.webPageStructuredData(front, locale, canonicalURL)
	}

	ogType := front.OGType
	if ogType == "" {
		if isArticle {
			ogType = "article"
		} else {
			ogType = "website"
		}
	}

	ogTitle := front.OGTitle
	if ogTitle == "" {
		ogTitle = title
	}
	twitterTitle := front.TwitterTitle
	if twitterTitle == "" {
		twitterTitle = title
	}
	twitterCard := front.TwitterCard
	if twitterCard == "" {
		twitterCard = "summary_large_image"
	}
	robots := front.Robots
	if robots == "" {
		robots = "index,follow"
	}

	return PageMeta{
		Title:          title,
		Description:    front.Description,
		Robots:         robots,
		Canonical:      canonicalURL,
		Alternates:     alternates,
		AlternateLinks: e.AlternateLinks(alternates),
		OG: OpenGraph{
			Title:       ogTitle,
			Description: front.Description,
			Type:        ogType,
			URL:         canonicalURL,
			Image:       image,
			Locale:      ogLocale,
			AltLocales:  e.ogAltLocales(front, locale, bc),
		},
		Twitter: Twitter{
			Card:        twitterCard,
			Title:       twitterTitle,
			Description: front.Description,
			Image:       image,
			URL:         canonicalURL,
		},
		StructuredData: structured,
	}
}

// ogAltLocales resolves the og:locale:alternate values: explicit front
// matter list, then the locale build config, then the cultures of every
// other supported locale. Duplicates and blanks are dropped.
func (e *Engine) ogAltLocales(front content.Front, locale string, bc i18n.BuildConfig) []string {
	source := front.OGAltLocales
	if len(source) == 0 {
		source = bc.AltLocales
	}
	if len(source) == 0 {
		for _, code := range e.locales.Supported() {
			if code != locale {
				source = append(source, e.locales.Culture(code))
			}
		}
	}

	seen := map[string]bool{}
	out := make([]string, 0, len(source))
	for _, item := range source {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		out = append(out, trimmed)
	}
	return out
}

func coverOrDefault(cover, fallback string) string {
	if strings.TrimSpace(cover) != "" {
		return cover
	}
	return fallback
}
