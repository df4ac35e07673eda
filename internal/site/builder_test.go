package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/i18n"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
)

const testLocales = `
default: en
supported: [en, tr]
cultures:
  en: en_US
  tr: tr_TR
build:
  en:
    canonical: "https://example.com/"
    langAttr: en
    metaLanguage: English
    ogLocale: en_US
    altLocale: [tr_TR]
  tr:
    canonical: "https://example.com/tr/"
    langAttr: tr
    metaLanguage: Turkish
    ogLocale: tr_TR
    altLocale: [en_US]
`

const defaultLayout = `<!DOCTYPE html>
<html lang="{{lang}}">
<head>
<title>{{title}}</title>
{{meta}}
<link rel="stylesheet" href="/output.css">
</head>
<body>{{menu}}{{content}}{{footer}}</body>
</html>
`

var testTemplates = map[string]string{
	"page.html":       `<main>{{content}}</main>`,
	"post.html":       `<article>{{content}}{{readingTime}}{{series}}</article>`,
	"collection.html": `<h1>{{heading}}</h1>{{items}}{{pagination}}{{emptyMessage}}`,
	"category.html":   `<h1>{{heading}}</h1>{{items}}`,
}

var testContent = map[string]string{
	"about.md": `---
id: about
slug: about
title: About
template: page
status: published
show: true
order: 1
---
The about page.
`,
	"blog.md": `---
slug: blog
title: Blog
listKey: Life
listHeading: All Posts
template: collection
status: published
show: true
order: 2
---
`,
	"winter.md": `---
id: winter
slug: blog/winter
title: Winter Notes
template: post
status: published
category: Life
tags: [go]
date: "2024-01-01"
description: Cold season notes
---
Winter body.
`,
	"summer.md": `---
id: summer
slug: blog/summer
title: Summer Notes
template: post
status: published
category: Life
date: "2024-06-01"
description: Warm season notes
---
Summer body.
`,
}

func writeFixtures(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
}

func testSite(t *testing.T, contentFiles map[string]string, mutate func(*config.Config)) (*Builder, string) {
	t.Helper()
	root := t.TempDir()

	localePath := filepath.Join(root, "i18n.yaml")
	require.NoError(t, os.WriteFile(localePath, []byte(testLocales), 0o644))
	locales, err := i18n.Load(localePath)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Identity.URL = "https://example.com"
	cfg.Identity.Author = "Jane Doe"
	cfg.Identity.Email = "jane@example.com"
	cfg.SEO.IncludePaging = true
	cfg.SEO.IncludeCollections = true
	cfg.Paths.Content = filepath.Join(root, "content")
	cfg.Paths.Layouts = filepath.Join(root, "layouts")
	cfg.Paths.Templates = filepath.Join(root, "templates")
	cfg.Paths.Static = filepath.Join(root, "static")
	cfg.Paths.Output = filepath.Join(root, "dist")

	writeFixtures(t, cfg.Paths.Content, contentFiles)
	writeFixtures(t, cfg.Paths.Layouts, map[string]string{"default.html": defaultLayout})
	writeFixtures(t, cfg.Paths.Templates, testTemplates)

	if mutate != nil {
		mutate(cfg)
	}
	return New(cfg, locales, nil), cfg.Paths.Output
}

func readOutput(t *testing.T, out, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestBuild_RendersContentPages(t *testing.T) {
	b, out := testSite(t, testContent, nil)
	require.NoError(t, b.Build())

	about := readOutput(t, out, "about/index.html")
	require.Contains(t, about, "<title>About</title>")
	require.Contains(t, about, "The about page.")
	require.Contains(t, about, `rel="canonical" href="https://example.com/about/"`)
	require.Contains(t, about, `property="og:url"`)

	post := readOutput(t, out, "blog/winter/index.html")
	require.Contains(t, post, "Winter body.")
	require.Contains(t, post, `name="description" content="Cold season notes"`)
}

func TestBuild_MenuMarksActivePage(t *testing.T) {
	b, out := testSite(t, testContent, nil)
	require.NoError(t, b.Build())

	about := readOutput(t, out, "about/index.html")
	require.Contains(t, about, `class="active"`)
	require.Contains(t, about, `href="/about/"`)
	require.Contains(t, about, `href="/blog/"`)
}

func TestBuild_PaginatesListings(t *testing.T) {
	b, out := testSite(t, testContent, func(cfg *config.Config) {
		cfg.Content.Pagination.PageSize = 1
	})
	require.NoError(t, b.Build())

	first := readOutput(t, out, "blog/index.html")
	require.Contains(t, first, "Summer Notes")
	require.NotContains(t, first, "Winter Notes")
	require.Contains(t, first, `rel="next"`)
	require.Contains(t, first, "All Posts")

	second := readOutput(t, out, "blog/page-2/index.html")
	require.Contains(t, second, "Winter Notes")
	require.Contains(t, second, `rel="prev"`)
	require.Contains(t, second, `href="/blog/"`)
}

func TestBuild_VersionsAssetReferences(t *testing.T) {
	b, out := testSite(t, testContent, nil)
	require.NoError(t, b.Build())

	about := readOutput(t, out, "about/index.html")
	require.Contains(t, about, "/output.css?v="+b.Version())
}

func TestBuild_WritesFeedSitemapAndRobots(t *testing.T) {
	b, out := testSite(t, testContent, nil)
	require.NoError(t, b.Build())

	feed := readOutput(t, out, "feed.xml")
	require.Contains(t, feed, "<rss")
	require.Contains(t, feed, "Summer Notes")
	require.Contains(t, feed, "<language>en-US</language>")

	// No Turkish posts, so no Turkish feed.
	_, err := os.Stat(filepath.Join(out, "tr", "feed.xml"))
	require.True(t, os.IsNotExist(err))

	sitemap := readOutput(t, out, "sitemap.xml")
	require.Contains(t, sitemap, "<loc>https://example.com/about/</loc>")
	require.Contains(t, sitemap, "<loc>https://example.com/blog/winter/</loc>")
	require.Contains(t, sitemap, "<loc>https://example.com/feed.xml</loc>")

	robots := readOutput(t, out, "robots.txt")
	require.Contains(t, robots, "User-agent: *")
	require.Contains(t, robots, "Allow: /")
	require.Contains(t, robots, "Sitemap: https://example.com/sitemap.xml")
}

func TestBuild_SitemapIncludesListingPages(t *testing.T) {
	b, out := testSite(t, testContent, func(cfg *config.Config) {
		cfg.Content.Pagination.PageSize = 1
	})
	require.NoError(t, b.Build())

	sitemap := readOutput(t, out, "sitemap.xml")
	require.Contains(t, sitemap, "<loc>https://example.com/blog/page-2/</loc>")
}

func TestBuild_DynamicCollectionPages(t *testing.T) {
	b, out := testSite(t, testContent, func(cfg *config.Config) {
		cfg.Content.Collections = map[string]config.CollectionConfig{
			"tags": {
				Types:       []string{"tag"},
				SlugPattern: map[string]string{"en": "tags/{{key}}"},
			},
		}
	})
	require.NoError(t, b.Build())

	tagPage := readOutput(t, out, "tags/go/index.html")
	require.Contains(t, tagPage, "Winter Notes")
	require.NotContains(t, tagPage, "Summer Notes")

	sitemap := readOutput(t, out, "sitemap.xml")
	require.Contains(t, sitemap, "<loc>https://example.com/tags/go/</loc>")
}

func TestBuild_StaticCopiesAreLocalized(t *testing.T) {
	b, out := testSite(t, testContent, func(cfg *config.Config) {
		writeFixtures(t, cfg.Paths.Static, map[string]string{
			"index.html": `<!DOCTYPE html>
<html lang="en">
<head>
<link rel="canonical" href="https://example.com/" data-canonical>
<meta property="og:locale" content="en_US" data-og-locale>
</head>
<body>Static home</body>
</html>`,
			"extra.html": `<html><head></head><body><a href="~/about/">about</a></body></html>`,
		})
	})
	require.NoError(t, b.Build())

	home := readOutput(t, out, "index.html")
	require.Contains(t, home, `lang="en"`)
	require.Contains(t, home, "Static home")

	localized := readOutput(t, out, "tr/index.html")
	require.Contains(t, localized, `lang="tr"`)
	require.Contains(t, localized, `href="https://example.com/tr/"`)
	require.Contains(t, localized, `content="tr_TR"`)

	extra := readOutput(t, out, "extra.html")
	require.Contains(t, extra, `href="/about/"`)
}

func TestBuild_SkipsUnpublishedContent(t *testing.T) {
	files := map[string]string{}
	for name, body := range testContent {
		files[name] = body
	}
	files["draft.md"] = `---
slug: draft-post
title: Draft Post
template: post
status: draft
---
Not ready.
`
	b, out := testSite(t, files, nil)
	require.NoError(t, b.Build())

	_, err := os.Stat(filepath.Join(out, "draft-post", "index.html"))
	require.True(t, os.IsNotExist(err))
}

func TestBuild_MissingTemplateFails(t *testing.T) {
	files := map[string]string{
		"odd.md": `---
slug: odd
title: Odd
template: gallery
status: published
---
body
`,
	}
	b, _ := testSite(t, files, nil)
	err := b.Build()
	require.Error(t, err)
	require.ErrorIs(t, err, render.ErrTemplateNotFound)
}

func TestBuild_MissingStaticDirIsFine(t *testing.T) {
	b, _ := testSite(t, testContent, nil)
	require.NoError(t, b.Build())
}
