package feeds

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/collections"
	"git.home.luguber.info/inful/sitebuilder/internal/format"
)

// SitemapEntry is one <url> element. LastMod is empty when no parseable
// date exists.
type SitemapEntry struct {
	Loc     string
	LastMod string
}

// ContentEntries yields one sitemap entry per eligible content file and,
// when paging inclusion is enabled, one per subsequent page of every
// collection/home-templated listing.
func (b *Builder) ContentEntries() []SitemapEntry {
	var entries []SitemapEntry
	for _, file := range b.store.Files() {
		if !file.Eligible() {
			continue
		}

		front := file.Front
		locale := front.Lang
		if locale == "" {
			locale = b.locales.Default()
		}

		updated := front.Updated
		if updated == "" {
			updated = front.Date
		}
		baseLastmod := format.LastMod(updated)

		entries = append(entries, SitemapEntry{
			Loc:     b.urls.CanonicalURL(front, locale, front.Slug),
			LastMod: baseLastmod,
		})

		if !b.cfg.SEO.IncludePaging {
			continue
		}
		if front.Template != "collection" && front.Template != "home" {
			continue
		}

		key := collections.ResolveListingKey(front)
		items := b.set.Bucket(locale, key)
		total := b.pages.TotalPages(len(items))
		if total <= 1 {
			continue
		}

		listingLastmod := latestLastMod(items)
		if listingLastmod == "" {
			listingLastmod = baseLastmod
		}

		baseSlug := strings.TrimRight(front.Slug, "/")
		for page := 2; page <= total; page++ {
			pageSlug := b.pages.PageSlug(baseSlug, locale, page)
			override := b.pages.PageCanonical(front.Canonical, locale, page)
			entries = append(entries, SitemapEntry{
				Loc:     b.urls.ResolveURL(b.urls.ContentURL(override, locale, pageSlug)),
				LastMod: listingLastmod,
			})
		}
	}
	return entries
}

// DynamicCollectionEntries yields one sitemap entry per configured
// dynamic collection page whose bucket contains a matching entry type.
func (b *Builder) DynamicCollectionEntries() []SitemapEntry {
	var entries []SitemapEntry

	configKeys := make([]string, 0, len(b.cfg.Content.Collections))
	for key := range b.cfg.Content.Collections {
		configKeys = append(configKeys, key)
	}
	sort.Strings(configKeys)

	for _, configKey := range configKeys {
		collection := b.cfg.Content.Collections[configKey]
		types := collections.TrimTypes(collection.Types)
		if len(types) == 0 {
			continue
		}

		for _, locale := range b.locales.Supported() {
			pattern := collection.SlugPattern[locale]
			for _, key := range b.set.Keys(locale) {
				items := b.set.Bucket(locale, key)
				if len(items) == 0 || !collections.AnyTypeMatch(items, types) {
					continue
				}

				slug := key
				switch {
				case strings.Contains(pattern, "{{key}}"):
					slug = strings.ReplaceAll(pattern, "{{key}}", key)
				case pattern != "":
					slug = pattern
				}

				entries = append(entries, SitemapEntry{
					Loc:     b.urls.ResolveURL(b.urls.ContentURL("", locale, slug)),
					LastMod: latestLastMod(items),
				})
			}
		}
	}
	return entries
}

// FeedEntries yields one sitemap entry per locale feed, stamped with the
// newest entry's date.
func (b *Builder) FeedEntries() []SitemapEntry {
	var entries []SitemapEntry
	for _, locale := range b.locales.Supported() {
		newest := b.Entries(locale, 1)
		if len(newest) == 0 {
			continue
		}
		entries = append(entries, SitemapEntry{
			Loc:     b.FeedURL(locale),
			LastMod: format.LastMod(newest[0].Date),
		})
	}
	return entries
}

// Merge deduplicates sitemap entries by exact location, keeping the
// later parseable lastmod; entries without a parseable date never
// displace an existing one. The result is sorted by location.
func Merge(entries []SitemapEntry) []SitemapEntry {
	byLoc := map[string]SitemapEntry{}
	for _, entry := range entries {
		if entry.Loc == "" {
			continue
		}
		existing, seen := byLoc[entry.Loc]
		if !seen {
			byLoc[entry.Loc] = entry
			continue
		}

		incoming, incomingOK := format.ParseDate(entry.LastMod)
		current, currentOK := format.ParseDate(existing.LastMod)
		if incomingOK && (!currentOK || incoming.After(current)) {
			byLoc[entry.Loc] = entry
		}
	}

	merged := make([]SitemapEntry, 0, len(byLoc))
	for _, entry := range byLoc {
		merged = append(merged, entry)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Loc < merged[j].Loc })
	return merged
}

// MergedEntries combines the three sitemap sources and deduplicates.
func (b *Builder) MergedEntries() []SitemapEntry {
	combined := b.ContentEntries()
	if b.cfg.SEO.IncludeCollections {
		combined = append(combined, b.DynamicCollectionEntries()...)
	}
	combined = append(combined, b.FeedEntries()...)
	return Merge(combined)
}

// Sitemap renders the merged urlset document. ok is false when there is
// nothing to write.
func (b *Builder) Sitemap() (string, bool) {
	merged := b.MergedEntries()
	if len(merged) == 0 {
		return "", false
	}
	return RenderSitemap(merged), true
}

// RenderSitemap serializes sitemap entries as a urlset document.
func RenderSitemap(merged []SitemapEntry) string {
	var xml strings.Builder
	xml.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	xml.WriteString(`<?xml-stylesheet type="text/xsl" href="/assets/sitemap.xsl"?>` + "\n")
	xml.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, entry := range merged {
		xml.WriteString("  <url>\n")
		fmt.Fprintf(&xml, "    <loc>%s</loc>\n", format.EscapeXML(entry.Loc))
		if entry.LastMod != "" {
			fmt.Fprintf(&xml, "    <lastmod>%s</lastmod>\n", format.EscapeXML(entry.LastMod))
		}
		xml.WriteString("  </url>\n")
	}
	xml.WriteString("</urlset>\n")
	return xml.String()
}

// latestLastMod finds the newest parseable item date of a bucket.
func latestLastMod(items []collections.Entry) string {
	var latest time.Time
	found := false
	for _, item := range items {
		if ts, ok := format.ParseDate(item.Date); ok {
			if !found || ts.After(latest) {
				latest = ts
				found = true
			}
		}
	}
	if !found {
		return ""
	}
	return format.LastModTime(latest)
}
