package collections

import (
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/i18n"
	"git.home.luguber.info/inful/sitebuilder/internal/meta"
)

// IndexEntry is one locale-specific view of a content id.
type IndexEntry struct {
	ID        string
	Lang      string
	Title     string
	Canonical string
}

// Index resolves content ids to their per-locale titles and URLs,
// independent of which collection bucket produced them.
type Index map[string]map[string]IndexEntry

// BuildIndex maps every eligible file with an id by id and locale.
func BuildIndex(store *content.Store, locales *i18n.Service, urls *meta.Engine) Index {
	index := Index{}
	for _, file := range store.Files() {
		if !file.Eligible() || file.Front.ID == "" {
			continue
		}

		front := file.Front
		locale := localeOf(front, locales)
		if index[front.ID] == nil {
			index[front.ID] = map[string]IndexEntry{}
		}
		index[front.ID][locale] = IndexEntry{
			ID:        front.ID,
			Lang:      locale,
			Title:     front.Title,
			Canonical: urls.ContentURL(front.Canonical, locale, front.Slug),
		}
	}
	return index
}

// Resolve looks up an id for a locale, falling back to the default locale
// and then to any available locale.
func (ix Index) Resolve(id, locale, defaultLocale string) (IndexEntry, bool) {
	byLocale, ok := ix[id]
	if !ok {
		return IndexEntry{}, false
	}
	if entry, ok := byLocale[locale]; ok {
		return entry, true
	}
	if entry, ok := byLocale[defaultLocale]; ok {
		return entry, true
	}
	for _, entry := range byLocale {
		return entry, true
	}
	return IndexEntry{}, false
}

// SeriesItem is one slot of a series navigation listing.
type SeriesItem struct {
	ID          string
	Title       string
	URL         string
	Current     bool
	Placeholder bool
}

// SeriesListing resolves a page's related id list into ordered navigation
// slots. Blank ids stay as placeholder slots; the entry matching the
// current page is marked. Unresolvable ids fall back to the raw id as
// title with no URL.
func SeriesListing(related []string, currentID, locale, defaultLocale string, index Index) []SeriesItem {
	if len(related) == 0 {
		return nil
	}

	items := make([]SeriesItem, 0, len(related))
	for _, id := range related {
		if id == "" {
			items = append(items, SeriesItem{Placeholder: true})
			continue
		}

		item := SeriesItem{ID: id, Title: id, Current: id == currentID}
		if entry, ok := index.Resolve(id, locale, defaultLocale); ok {
			if entry.Title != "" {
				item.Title = entry.Title
			}
			item.URL = entry.Canonical
		}
		items = append(items, item)
	}
	return items
}
