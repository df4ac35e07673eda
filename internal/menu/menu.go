// Package menu derives per-locale navigation item lists from content
// files.
package menu

import (
	"sort"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/i18n"
	"git.home.luguber.info/inful/sitebuilder/internal/meta"
)

// Item is one navigation entry.
type Item struct {
	Key   string
	Label string
	URL   string
	Order int
}

// Menus holds the navigation list of every locale. Built once per build,
// read-only afterwards.
type Menus struct {
	byLocale map[string][]Item
}

// Build collects eligible, non-hidden files into per-locale menus sorted
// by explicit order then collated label. Items without an explicit order
// sort last.
func Build(store *content.Store, locales *i18n.Service, urls *meta.Engine) *Menus {
	menus := &Menus{byLocale: map[string][]Item{}}

	for _, file := range store.Files() {
		if !file.Eligible() || file.Front.HiddenFromMenu {
			continue
		}

		front := file.Front
		locale := front.Lang
		if locale == "" {
			locale = locales.Default()
		}

		key := front.ID
		if key == "" {
			key = front.Slug
		}
		menus.byLocale[locale] = append(menus.byLocale[locale], Item{
			Key:   key,
			Label: front.MenuLabel,
			URL:   urls.ContentURL(front.Canonical, locale, front.Slug),
			Order: front.MenuOrder,
		})
	}

	for locale, items := range menus.byLocale {
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Order != items[j].Order {
				return items[i].Order < items[j].Order
			}
			return locales.Compare(locale, items[i].Label, items[j].Label) < 0
		})
	}
	return menus
}

// Items returns the menu of one locale, nil when absent.
func (m *Menus) Items(locale string) []Item { return m.byLocale[locale] }

// ActiveKey resolves which menu item a page activates: the page's id,
// else its slug, when either matches an item key; otherwise the first
// item of the locale's menu stands in as the home/default item.
func ActiveKey(front content.Front, items []Item) string {
	for _, candidate := range []string{front.ID, front.Slug} {
		if candidate == "" {
			continue
		}
		for _, item := range items {
			if item.Key == candidate {
				return candidate
			}
		}
	}
	if len(items) > 0 {
		return items[0].Key
	}
	return ""
}
