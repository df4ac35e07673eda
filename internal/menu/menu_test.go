package menu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/i18n"
	"git.home.luguber.info/inful/sitebuilder/internal/meta"
)

const testLocales = `
default: en
supported: [en]
cultures:
  en: en_US
build:
  en:
    canonical: "https://example.com/"
`

func testServices(t *testing.T) (*i18n.Service, *meta.Engine) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "i18n.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testLocales), 0o644))
	locales, err := i18n.Load(path)
	require.NoError(t, err)
	return locales, meta.NewEngine("https://example.com", "Jane Doe", "", locales)
}

func loadStore(t *testing.T, files map[string]string) *content.Store {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	store, err := content.Load(dir, content.Options{})
	require.NoError(t, err)
	return store
}

func TestBuild_OrderThenLabel(t *testing.T) {
	locales, urls := testServices(t)
	store := loadStore(t, map[string]string{
		"about.md": `---
id: about
lang: en
slug: about
title: About
status: published
show: true
order: 2
---
body
`,
		"home.md": `---
id: home
lang: en
slug: ""
title: Home
status: published
show: true
order: 1
---
body
`,
		"blog.md": `---
id: blog
lang: en
slug: blog
title: Blog
status: published
show: true
---
body
`,
	})

	items := Build(store, locales, urls).Items("en")
	require.Len(t, items, 3)
	require.Equal(t, "home", items[0].Key)
	require.Equal(t, "about", items[1].Key)
	require.Equal(t, "blog", items[2].Key, "unset order sorts last")
	require.Equal(t, "/about/", items[1].URL)
}

func TestBuild_HiddenAndDraftExcluded(t *testing.T) {
	locales, urls := testServices(t)
	store := loadStore(t, map[string]string{
		"hidden.md": `---
id: hidden
lang: en
slug: hidden
title: Hidden
status: published
---
body
`,
		"draft.md": `---
id: draft
lang: en
slug: draft
title: Draft
status: draft
show: true
---
body
`,
	})

	require.Empty(t, Build(store, locales, urls).Items("en"))
}

func TestBuild_LabelTieBreakIsCollated(t *testing.T) {
	locales, urls := testServices(t)
	store := loadStore(t, map[string]string{
		"b.md": `---
id: b
lang: en
slug: b
title: Beta
status: published
show: true
order: 1
---
body
`,
		"a.md": `---
id: a
lang: en
slug: a
title: Alpha
status: published
show: true
order: 1
---
body
`,
	})

	items := Build(store, locales, urls).Items("en")
	require.Equal(t, "a", items[0].Key)
	require.Equal(t, "b", items[1].Key)
}

func TestActiveKey(t *testing.T) {
	items := []Item{{Key: "home"}, {Key: "about"}, {Key: "blog"}}

	require.Equal(t, "about", ActiveKey(content.Front{ID: "about"}, items))
	require.Equal(t, "blog", ActiveKey(content.Front{ID: "unknown", Slug: "blog"}, items))
	require.Equal(t, "home", ActiveKey(content.Front{ID: "unknown", Slug: "unknown"}, items), "first item is the default active item")
	require.Equal(t, "", ActiveKey(content.Front{}, nil))
}
