package site

import (
	"fmt"
	"sort"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/collections"
	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/format"
	"git.home.luguber.info/inful/sitebuilder/internal/menu"
	"git.home.luguber.info/inful/sitebuilder/internal/meta"
	"git.home.luguber.info/inful/sitebuilder/internal/pagination"
)

// renderPage renders one output page through its template and layout and
// writes it. A missing template or layout aborts the build.
func (b *Builder) renderPage(front content.Front, locale, slug, body string, listing *pagination.Listing) error {
	templateBody, err := b.templates.Get(front.Template)
	if err != nil {
		return err
	}

	heading := front.ListHeading
	if heading == "" {
		heading = front.Title
	}

	pageContent := replacePlaceholders(templateBody, map[string]string{
		"content":      body,
		"heading":      heading,
		"items":        b.listingHTML(listing),
		"pagination":   paginationHTML(listing),
		"series":       b.seriesHTML(front, locale),
		"readingTime":  readingTimeHTML(front.ReadingTime),
		"emptyMessage": emptyMessageOf(listing),
	})

	pm := b.urls.BuildPageMeta(front, locale, slug)
	layoutBody, err := b.layouts.Get(front.Layout)
	if err != nil {
		return err
	}

	page := replacePlaceholders(layoutBody, map[string]string{
		"lang":    b.langAttr(locale),
		"title":   format.EscapeXML(pm.Title),
		"meta":    metaBlock(pm),
		"menu":    b.menuHTML(front, locale),
		"footer":  b.footerHTML(locale),
		"content": pageContent,
	})

	final, err := b.transform.Apply(page)
	if err != nil {
		return fmt.Errorf("transform %s: %w", slug, err)
	}

	rel := b.outputPath(front.Canonical, locale, slug)
	if err := b.writeOutput(rel, final); err != nil {
		return err
	}
	b.generated[rel] = true
	b.recorder.IncPagesRendered(front.Template)
	return nil
}

// renderDynamicCollections generates the configured tag/category/series
// index pages from the collection buckets.
func (b *Builder) renderDynamicCollections() error {
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

		templateName := strings.TrimSpace(collection.Template)
		if templateName == "" {
			templateName = "category"
		}

		for _, locale := range b.locales.Supported() {
			pattern := collection.SlugPattern[locale]
			titleSuffix := strings.TrimSpace(
				b.locales.T(locale, "seo.collections."+configKey+".titleSuffix", ""))

			for _, key := range b.set.Keys(locale) {
				items := b.set.Bucket(locale, key)
				if len(items) == 0 || !collections.AnyTypeMatch(items, types) {
					continue
				}

				slug := patternSlug(pattern, key)
				displayKey := key
				if configKey == "series" {
					if title := seriesDisplayTitle(items); title != "" {
						displayKey = title
					}
				}
				title := displayKey
				if titleSuffix != "" {
					title = displayKey + " | " + titleSuffix
				}

				front := content.Front{
					Title:       title,
					MetaTitle:   title,
					Slug:        slug,
					Template:    templateName,
					Layout:      "default",
					ListKey:     key,
					ListHeading: title,
					Alternate:   b.pairedAlternates(collection, key, locale),
				}
				if configKey == "series" {
					front.Title = displayKey
					front.Series = key
					front.SeriesTitle = displayKey
				}

				listing := pagination.Listing{
					Key:        key,
					Lang:       locale,
					Items:      items,
					Page:       1,
					TotalPages: 1,
					Type:       collections.ResolveType(front, items, ""),
					Heading:    title,
				}
				listing.Flags = collections.FlagsFor(listing.Type)

				if err := b.renderPage(front, locale, slug, "", &listing); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// pairedAlternates maps a bucket key to its configured cross-locale
// counterparts, yielding per-locale URL overrides.
func (b *Builder) pairedAlternates(collection config.CollectionConfig, key, locale string) content.Alternate {
	pair, ok := collection.Pairs[key]
	if !ok {
		return content.Alternate{}
	}

	overrides := map[string]string{}
	for _, code := range b.locales.Supported() {
		if code == locale {
			continue
		}
		altKey := strings.TrimSpace(pair[code])
		if altKey == "" {
			continue
		}
		altSlug := patternSlug(collection.SlugPattern[code], altKey)
		overrides[code] = b.urls.ContentURL("", code, altSlug)
	}
	if len(overrides) == 0 {
		return content.Alternate{}
	}
	return content.Alternate{Locales: overrides}
}

func patternSlug(pattern, key string) string {
	switch {
	case strings.Contains(pattern, "{{key}}"):
		return strings.ReplaceAll(pattern, "{{key}}", key)
	case pattern != "":
		return pattern
	}
	return key
}

// seriesDisplayTitle surfaces the series title carried by any entry.
func seriesDisplayTitle(items []collections.Entry) string {
	for _, item := range items {
		if title := strings.TrimSpace(item.SeriesTitle); title != "" {
			return title
		}
	}
	return ""
}

func (b *Builder) langAttr(locale string) string {
	if bc, ok := b.locales.Build(locale); ok && bc.LangAttr != "" {
		return bc.LangAttr
	}
	return locale
}

// outputPath maps a page to its output-relative file path via the same
// canonical precedence as its URL.
func (b *Builder) outputPath(canonical, locale, slug string) string {
	rel := strings.Trim(b.urls.ContentURL(canonical, locale, slug), "/")
	if rel == "" {
		return "index.html"
	}
	return rel + "/index.html"
}

// metaBlock renders the head metadata of one page.
func metaBlock(pm meta.PageMeta) string {
	var sb strings.Builder
	esc := format.EscapeXML

	if pm.Description != "" {
		fmt.Fprintf(&sb, "<meta name=\"description\" content=\"%s\">\n", esc(pm.Description))
	}
	fmt.Fprintf(&sb, "<meta name=\"robots\" content=\"%s\">\n", esc(pm.Robots))
	fmt.Fprintf(&sb, "<link rel=\"canonical\" href=\"%s\" data-canonical>\n", esc(pm.Canonical))
	for _, link := range pm.AlternateLinks {
		fmt.Fprintf(&sb, "<link rel=\"alternate\" hreflang=\"%s\" href=\"%s\">\n", esc(link.Hreflang), esc(link.URL))
	}
	if u, ok := pm.Alternates["default"]; ok {
		fmt.Fprintf(&sb, "<link rel=\"alternate\" hreflang=\"x-default\" href=\"%s\">\n", esc(u))
	}

	fmt.Fprintf(&sb, "<meta property=\"og:title\" content=\"%s\">\n", esc(pm.OG.Title))
	if pm.OG.Description != "" {
		fmt.Fprintf(&sb, "<meta property=\"og:description\" content=\"%s\">\n", esc(pm.OG.Description))
	}
	fmt.Fprintf(&sb, "<meta property=\"og:type\" content=\"%s\">\n", esc(pm.OG.Type))
	fmt.Fprintf(&sb, "<meta property=\"og:url\" content=\"%s\" data-og-url>\n", esc(pm.OG.URL))
	if pm.OG.Image != "" {
		fmt.Fprintf(&sb, "<meta property=\"og:image\" content=\"%s\">\n", esc(pm.OG.Image))
	}
	fmt.Fprintf(&sb, "<meta property=\"og:locale\" content=\"%s\" data-og-locale>\n", esc(pm.OG.Locale))
	for _, alt := range pm.OG.AltLocales {
		fmt.Fprintf(&sb, "<meta property=\"og:locale:alternate\" content=\"%s\" data-og-locale-alt>\n", esc(alt))
	}

	fmt.Fprintf(&sb, "<meta name=\"twitter:card\" content=\"%s\">\n", esc(pm.Twitter.Card))
	fmt.Fprintf(&sb, "<meta name=\"twitter:title\" content=\"%s\">\n", esc(pm.Twitter.Title))
	if pm.Twitter.Description != "" {
		fmt.Fprintf(&sb, "<meta name=\"twitter:description\" content=\"%s\">\n", esc(pm.Twitter.Description))
	}
	if pm.Twitter.Image != "" {
		fmt.Fprintf(&sb, "<meta name=\"twitter:image\" content=\"%s\">\n", esc(pm.Twitter.Image))
	}
	fmt.Fprintf(&sb, "<meta name=\"twitter:url\" content=\"%s\" data-twitter-url>\n", esc(pm.Twitter.URL))

	if pm.StructuredData != "" {
		fmt.Fprintf(&sb, "<script type=\"application/ld+json\">%s</script>\n", pm.StructuredData)
	}
	return sb.String()
}

func (b *Builder) menuHTML(front content.Front, locale string) string {
	items := b.menus.Items(locale)
	if len(items) == 0 {
		return ""
	}
	active := menu.ActiveKey(front, items)

	var sb strings.Builder
	sb.WriteString(`<nav class="menu">`)
	for _, item := range items {
		class := ""
		if item.Key == active {
			class = ` class="active"`
		}
		fmt.Fprintf(&sb, `<a href="%s"%s>%s</a>`, format.EscapeXML(item.URL), class, format.EscapeXML(item.Label))
	}
	sb.WriteString("</nav>")
	return sb.String()
}

func (b *Builder) footerHTML(locale string) string {
	var sb strings.Builder

	tags := b.set.FooterTags(locale, b.cfg.SEO.FooterTagCount)
	if len(tags) > 0 {
		sb.WriteString(`<ul class="footer-tags">`)
		for _, tag := range tags {
			fmt.Fprintf(&sb, `<li><a href="%s">%s</a> (%d)</li>`,
				format.EscapeXML(b.urls.ContentURL("", locale, tag.Key)),
				format.EscapeXML(tag.Key), tag.Count)
		}
		sb.WriteString("</ul>")
	}

	policies := collections.FooterPolicies(b.store, b.locales, b.urls, locale)
	if len(policies) > 0 {
		sb.WriteString(`<ul class="footer-policies">`)
		for _, policy := range policies {
			fmt.Fprintf(&sb, `<li><a href="%s">%s</a></li>`,
				format.EscapeXML(policy.URL), format.EscapeXML(policy.Label))
		}
		sb.WriteString("</ul>")
	}
	return sb.String()
}

func (b *Builder) listingHTML(listing *pagination.Listing) string {
	if listing == nil {
		return ""
	}
	if len(listing.Items) == 0 {
		if listing.EmptyMessage == "" {
			return ""
		}
		return fmt.Sprintf(`<p class="listing-empty">%s</p>`, format.EscapeXML(listing.EmptyMessage))
	}

	var sb strings.Builder
	sb.WriteString(`<ul class="listing">`)
	for _, item := range listing.Items {
		sb.WriteString("<li>")
		fmt.Fprintf(&sb, `<a href="%s">%s</a>`, format.EscapeXML(item.Canonical), format.EscapeXML(item.Title))
		if item.DateDisplay != "" {
			fmt.Fprintf(&sb, `<time datetime="%s">%s</time>`, format.EscapeXML(item.Date), format.EscapeXML(item.DateDisplay))
		}
		if item.Description != "" {
			fmt.Fprintf(&sb, `<p>%s</p>`, format.EscapeXML(item.Description))
		}
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
	return sb.String()
}

func paginationHTML(listing *pagination.Listing) string {
	if listing == nil || listing.TotalPages <= 1 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<nav class="pagination">`)
	if listing.HasPrev {
		fmt.Fprintf(&sb, `<a rel="prev" href="%s">&larr;</a>`, format.EscapeXML(listing.PrevURL))
	}
	fmt.Fprintf(&sb, "<span>%d / %d</span>", listing.Page, listing.TotalPages)
	if listing.HasNext {
		fmt.Fprintf(&sb, `<a rel="next" href="%s">&rarr;</a>`, format.EscapeXML(listing.NextURL))
	}
	sb.WriteString("</nav>")
	return sb.String()
}

func (b *Builder) seriesHTML(front content.Front, locale string) string {
	items := collections.SeriesListing(front.Related, front.ID, locale, b.locales.Default(), b.index)
	if len(items) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<ol class="series-nav">`)
	for _, item := range items {
		switch {
		case item.Placeholder:
			sb.WriteString(`<li class="placeholder"></li>`)
		case item.Current:
			fmt.Fprintf(&sb, `<li class="current">%s</li>`, format.EscapeXML(item.Title))
		case item.URL != "":
			fmt.Fprintf(&sb, `<li><a href="%s">%s</a></li>`, format.EscapeXML(item.URL), format.EscapeXML(item.Title))
		default:
			fmt.Fprintf(&sb, `<li>%s</li>`, format.EscapeXML(item.Title))
		}
	}
	sb.WriteString("</ol>")
	return sb.String()
}

func readingTimeHTML(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return fmt.Sprintf(`<span class="reading-time">%d min</span>`, minutes)
}

func emptyMessageOf(listing *pagination.Listing) string {
	if listing == nil {
		return ""
	}
	return format.EscapeXML(listing.EmptyMessage)
}

// replacePlaceholders substitutes the fixed {{name}} marker set layouts
// and templates are written against. Unknown markers pass through
// untouched.
func replacePlaceholders(tmpl string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
