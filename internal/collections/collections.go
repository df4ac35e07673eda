// Package collections folds eligible content files into locale-scoped
// collection buckets (home, category, tag, series), the content index
// used for cross-references, and the footer tag/policy lists. Everything
// is built once per build and read-only afterwards.
package collections

import (
	"log/slog"
	"sort"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/format"
	"git.home.luguber.info/inful/sitebuilder/internal/i18n"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/meta"
)

// Entry is one collection bucket member: a content summary tagged with
// the bucket type that produced it. The same file can appear in several
// buckets as independent entries.
type Entry struct {
	content.Summary
	Type        string
	SeriesTitle string
}

// Set holds every collection bucket, keyed by locale then bucket key.
type Set struct {
	buckets map[string]map[string][]Entry
	locales *i18n.Service
}

// Build runs the single aggregation pass over the store. Each eligible
// file contributes to its locale's home bucket (featured posts), its
// category bucket, one bucket per tag, and its series bucket.
func Build(store *content.Store, locales *i18n.Service, urls *meta.Engine) *Set {
	set := &Set{
		buckets: map[string]map[string][]Entry{},
		locales: locales,
	}

	for _, file := range store.Files() {
		if !file.Eligible() {
			continue
		}

		front := file.Front
		locale := localeOf(front, locales)

		summary := file.Summary()
		summary.Canonical = urls.ContentURL(front.Canonical, locale, front.Slug)

		if file.PostTemplate() && front.Featured {
			set.add(locale, "home", Entry{Summary: summary, Type: "home"})
		}
		if front.Category != "" {
			set.add(locale, front.Category, Entry{Summary: summary, Type: "category"})
		}
		for _, tag := range front.Tags {
			set.add(locale, tag, Entry{Summary: summary, Type: "tag"})
		}
		if front.Series != "" {
			set.add(locale, front.Series, Entry{
				Summary:     summary,
				Type:        "series",
				SeriesTitle: front.SeriesTitle,
			})
		}
	}

	for locale, buckets := range set.buckets {
		for key, items := range buckets {
			deduped := Dedupe(items)
			set.sortBucket(locale, deduped)
			buckets[key] = deduped
		}
	}

	slog.Debug("Collections built", logfields.Count(len(set.buckets)))
	return set
}

func (s *Set) add(locale, key string, entry Entry) {
	if s.buckets[locale] == nil {
		s.buckets[locale] = map[string][]Entry{}
	}
	s.buckets[locale][key] = append(s.buckets[locale][key], entry)
}

// Bucket returns the entries of one bucket, nil when absent.
func (s *Set) Bucket(locale, key string) []Entry {
	return s.buckets[locale][key]
}

// Buckets returns every bucket of one locale. The returned map is shared;
// callers must not mutate it.
func (s *Set) Buckets(locale string) map[string][]Entry {
	return s.buckets[locale]
}

// Keys returns the bucket keys of one locale in lexical order.
func (s *Set) Keys(locale string) []string {
	buckets := s.buckets[locale]
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Dedupe collapses duplicate ids within one bucket. The first occurrence
// keeps its position; a later duplicate replaces it in place only when
// the later entry carries a series title and the earlier one does not.
// Entries without an id are never deduplicated. Idempotent.
func Dedupe(items []Entry) []Entry {
	out := make([]Entry, 0, len(items))
	byID := map[string]int{}

	for _, item := range items {
		if item.ID == "" {
			out = append(out, item)
			continue
		}
		if at, seen := byID[item.ID]; seen {
			if item.SeriesTitle != "" && out[at].SeriesTitle == "" {
				out[at] = item
			}
			continue
		}
		byID[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}

// sortBucket orders entries newest first, ties broken by locale-collated
// title comparison. Unparseable dates sort as epoch zero, last.
func (s *Set) sortBucket(locale string, items []Entry) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := format.SortTime(items[i].Date), format.SortTime(items[j].Date)
		if a != b {
			return a > b
		}
		return s.locales.Compare(locale, items[i].Title, items[j].Title) < 0
	})
}

func localeOf(front content.Front, locales *i18n.Service) string {
	if front.Lang != "" {
		return front.Lang
	}
	return locales.Default()
}
