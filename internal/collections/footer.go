package collections

import (
	"sort"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/i18n"
	"git.home.luguber.info/inful/sitebuilder/internal/meta"
)

// FooterTag is one footer tag-cloud entry.
type FooterTag struct {
	Key   string
	Count int
}

// FooterTags ranks a locale's tag buckets by entry count, ties broken by
// collated key, capped at limit. A non-positive limit disables the cap.
func (s *Set) FooterTags(locale string, limit int) []FooterTag {
	counts := map[string]int{}
	for key, entries := range s.buckets[locale] {
		for _, entry := range entries {
			if entry.Type == "tag" {
				counts[key]++
			}
		}
	}

	tags := make([]FooterTag, 0, len(counts))
	for key, count := range counts {
		tags = append(tags, FooterTag{Key: key, Count: count})
	}
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return s.locales.Compare(locale, tags[i].Key, tags[j].Key) < 0
	})

	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}

// FooterPolicy is one footer policy link.
type FooterPolicy struct {
	Label string
	URL   string
}

// FooterPolicies collects a locale's policy pages (category "policy"),
// sorted by collated label.
func FooterPolicies(store *content.Store, locales *i18n.Service, urls *meta.Engine, locale string) []FooterPolicy {
	var policies []FooterPolicy
	for _, file := range store.Files() {
		if !file.Eligible() || file.Front.Category != "policy" {
			continue
		}
		front := file.Front
		if localeOf(front, locales) != locale {
			continue
		}
		policies = append(policies, FooterPolicy{
			Label: front.MenuLabel,
			URL:   urls.ContentURL(front.Canonical, locale, front.Slug),
		})
	}

	sort.SliceStable(policies, func(i, j int) bool {
		return locales.Compare(locale, policies[i].Label, policies[j].Label) < 0
	})
	return policies
}
