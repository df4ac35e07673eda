// Package pagination slices collection buckets into listing pages with
// stable slug arithmetic and prev/next links.
package pagination

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/collections"
	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/i18n"
	"git.home.luguber.info/inful/sitebuilder/internal/meta"
)

// Listing is one generated listing page.
type Listing struct {
	Key        string
	Lang       string
	Items      []collections.Entry
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
	Type       string
	Flags      collections.TypeFlags

	// Slug is the page's own output slug; Canonical the explicit canonical
	// override carried into page k>1, empty when the page has none.
	Slug      string
	Canonical string

	EmptyMessage string
	Heading      string
}

// Engine computes page slugs and slices buckets. Page size falls back to
// 5 when unset or non-positive.
type Engine struct {
	pageSize int
	segments map[string]string
	locales  *i18n.Service
	urls     *meta.Engine
}

// NewEngine builds a pagination engine from the site configuration.
func NewEngine(cfg config.PaginationConfig, locales *i18n.Service, urls *meta.Engine) *Engine {
	size := cfg.PageSize
	if size <= 0 {
		size = 5
	}
	segments := cfg.Segment
	if segments == nil {
		segments = map[string]string{}
	}
	return &Engine{pageSize: size, segments: segments, locales: locales, urls: urls}
}

// PageSize returns the effective page size.
func (e *Engine) PageSize() int { return e.pageSize }

// Segment resolves the pagination slug label for a locale: the locale's
// configured label, the default locale's label, the literal "page".
func (e *Engine) Segment(locale string) string {
	if seg := e.segments[locale]; seg != "" {
		return seg
	}
	if seg := e.segments[e.locales.Default()]; seg != "" {
		return seg
	}
	return "page"
}

// TotalPages is max(1, ceil(count/pageSize)); empty buckets still render
// one page.
func (e *Engine) TotalPages(count int) int {
	if count <= 0 {
		return 1
	}
	return (count + e.pageSize - 1) / e.pageSize
}

// PageSlug computes the output slug of page k: the base slug unchanged
// for page 1, `base/{segment}-{k}` beyond.
func (e *Engine) PageSlug(base, locale string, page int) string {
	if page <= 1 {
		return base
	}
	base = strings.TrimRight(base, "/")
	suffix := fmt.Sprintf("%s-%d", e.Segment(locale), page)
	if base == "" {
		return suffix
	}
	return base + "/" + suffix
}

// PageCanonical carries an explicit canonical override into page k>1 by
// suffixing it with the pagination segment. Page 1 and pages without an
// explicit canonical keep the value unchanged.
func (e *Engine) PageCanonical(canonical, locale string, page int) string {
	if canonical == "" || page <= 1 {
		return canonical
	}
	return strings.TrimRight(canonical, "/") +
		fmt.Sprintf("/%s-%d/", e.Segment(locale), page)
}

// Paginate slices one bucket into its listing pages.
func (e *Engine) Paginate(key, locale string, items []collections.Entry, front content.Front, fallbackType string) []Listing {
	total := e.TotalPages(len(items))
	resolved := collections.ResolveType(front, items, fallbackType)
	flags := collections.FlagsFor(resolved)

	heading := front.ListHeading
	if heading == "" {
		heading = front.Title
	}
	empty := e.emptyMessage(front.ListingEmpty, locale)

	pages := make([]Listing, 0, total)
	for page := 1; page <= total; page++ {
		start := (page - 1) * e.pageSize
		end := start + e.pageSize
		if start > len(items) {
			start = len(items)
		}
		if end > len(items) {
			end = len(items)
		}

		listing := Listing{
			Key:          key,
			Lang:         locale,
			Items:        items[start:end],
			Page:         page,
			TotalPages:   total,
			HasPrev:      page > 1,
			HasNext:      page < total,
			Type:         resolved,
			Flags:        flags,
			Slug:         e.PageSlug(front.Slug, locale, page),
			Canonical:    e.PageCanonical(front.Canonical, locale, page),
			EmptyMessage: empty,
			Heading:      heading,
		}

		if listing.HasPrev {
			listing.PrevURL = e.urls.ContentURL("", locale, e.PageSlug(front.Slug, locale, page-1))
		}
		if listing.HasNext {
			listing.NextURL = e.urls.ContentURL("", locale, e.PageSlug(front.Slug, locale, page+1))
		}

		pages = append(pages, listing)
	}
	return pages
}

// emptyMessage resolves the "no items" text: plain string, the locale's
// entry, the default locale's entry.
func (e *Engine) emptyMessage(empty content.ListingEmpty, locale string) string {
	if empty.Text != "" {
		return empty.Text
	}
	if msg := empty.ByLocale[locale]; msg != "" {
		return msg
	}
	return empty.ByLocale[e.locales.Default()]
}
