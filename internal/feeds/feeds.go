// Package feeds emits the RSS feeds, the merged sitemap and robots.txt.
// It runs last in the build, consuming the fully populated collection
// set.
package feeds

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/collections"
	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/format"
	"git.home.luguber.info/inful/sitebuilder/internal/i18n"
	"git.home.luguber.info/inful/sitebuilder/internal/meta"
	"git.home.luguber.info/inful/sitebuilder/internal/pagination"
)

// Builder derives feed and sitemap documents from the loaded store and
// the derived collection set.
type Builder struct {
	cfg     *config.Config
	locales *i18n.Service
	urls    *meta.Engine
	store   *content.Store
	set     *collections.Set
	pages   *pagination.Engine
}

// NewBuilder wires a feed builder.
func NewBuilder(cfg *config.Config, locales *i18n.Service, urls *meta.Engine, store *content.Store, set *collections.Set, pages *pagination.Engine) *Builder {
	return &Builder{cfg: cfg, locales: locales, urls: urls, store: store, set: set, pages: pages}
}

// Entry is one RSS item before serialization.
type Entry struct {
	Title       string
	Description string
	Link        string
	GUID        string
	Date        string
	Category    string
}

// Entries collects a locale's published post-template files as feed
// entries, newest first, capped at limit when positive.
func (b *Builder) Entries(locale string, limit int) []Entry {
	var entries []Entry
	for _, file := range b.store.Files() {
		if !file.Eligible() || !file.PostTemplate() {
			continue
		}
		front := file.Front
		lang := front.Lang
		if lang == "" {
			lang = b.locales.Default()
		}
		if lang != locale {
			continue
		}

		link := b.urls.CanonicalURL(front, locale, front.Slug)
		entries = append(entries, Entry{
			Title:       front.Title,
			Description: front.Description,
			Link:        link,
			GUID:        link,
			Date:        front.Date,
			Category:    front.CategoryRaw,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return format.SortTime(entries[i].Date) > format.SortTime(entries[j].Date)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// FeedPath is the output-relative path of a locale's feed file.
func (b *Builder) FeedPath(locale string) string {
	if locale == b.locales.Default() {
		return "feed.xml"
	}
	return locale + "/feed.xml"
}

// FeedURL is the absolute URL of a locale's feed.
func (b *Builder) FeedURL(locale string) string {
	return b.urls.ResolveURL("/" + b.FeedPath(locale))
}

// Feed renders one locale's RSS document. ok is false when the locale
// has no eligible entries and no feed should be written.
func (b *Builder) Feed(locale string, now time.Time) (string, bool) {
	entries := b.Entries(locale, b.cfg.Content.FeedLimit)
	if len(entries) == 0 {
		return "", false
	}

	siteTitle := b.locales.T(locale, "site.title", b.cfg.Identity.Author)
	siteDescription := b.locales.T(locale, "site.description", "")

	channelLink := b.cfg.Identity.URL
	if bc, ok := b.locales.Build(locale); ok && bc.Canonical != "" {
		channelLink = bc.Canonical
	}
	languageCode := strings.ReplaceAll(b.locales.Culture(locale), "_", "-")

	var xml strings.Builder
	xml.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	xml.WriteString(`<?xml-stylesheet type="text/xsl" href="/assets/rss.xsl"?>` + "\n")
	xml.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">` + "\n")
	xml.WriteString("  <channel>\n")
	fmt.Fprintf(&xml, "    <title>%s</title>\n", format.EscapeXML(siteTitle))
	fmt.Fprintf(&xml, "    <link>%s</link>\n", format.EscapeXML(channelLink))
	fmt.Fprintf(&xml, "    <description>%s</description>\n", format.EscapeXML(siteDescription))
	fmt.Fprintf(&xml, "    <language>%s</language>\n", format.EscapeXML(languageCode))
	fmt.Fprintf(&xml, "    <lastBuildDate>%s</lastBuildDate>\n", format.RSSDateTime(now))
	fmt.Fprintf(&xml, "    <atom:link href=%q rel=\"self\" type=\"application/rss+xml\"/>\n", b.FeedURL(locale))
	for _, code := range b.locales.Supported() {
		if code == locale {
			continue
		}
		fmt.Fprintf(&xml, "    <atom:link href=%q rel=\"alternate\" hreflang=%q type=\"application/rss+xml\"/>\n",
			b.FeedURL(code), code)
	}

	for _, entry := range entries {
		b.writeItem(&xml, entry)
	}

	xml.WriteString("  </channel>\n")
	xml.WriteString("</rss>\n")
	return xml.String(), true
}

func (b *Builder) writeItem(xml *strings.Builder, entry Entry) {
	xml.WriteString("  <item>\n")
	fmt.Fprintf(xml, "    <title>%s</title>\n", format.EscapeXML(entry.Title))
	fmt.Fprintf(xml, "    <link>%s</link>\n", format.EscapeXML(entry.Link))
	fmt.Fprintf(xml, "    <guid isPermaLink=\"true\">%s</guid>\n", format.EscapeXML(entry.GUID))
	if entry.Date != "" {
		fmt.Fprintf(xml, "    <pubDate>%s</pubDate>\n", format.RSSDate(entry.Date))
	}
	if description := strings.TrimSpace(entry.Description); description != "" {
		fmt.Fprintf(xml, "    <description><![CDATA[ %s ]]></description>\n", description)
	}
	if author := b.authorField(); author != "" {
		fmt.Fprintf(xml, "    <author>%s</author>\n", format.EscapeXML(author))
	}
	if entry.Category != "" {
		fmt.Fprintf(xml, "    <category>%s</category>\n", format.EscapeXML(entry.Category))
	}
	xml.WriteString("  </item>\n")
}

// authorField renders the RSS author value: "email (name)" when both are
// configured, else whichever is present.
func (b *Builder) authorField() string {
	email := b.cfg.Identity.Email
	name := b.cfg.Identity.Author
	switch {
	case email != "" && name != "":
		return fmt.Sprintf("%s (%s)", email, name)
	case email != "":
		return email
	default:
		return name
	}
}
