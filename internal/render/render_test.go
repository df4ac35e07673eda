package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/i18n"
)

func TestMarkdown_GFM(t *testing.T) {
	md := NewMarkdown()

	out, err := Markdown(md, "# Title\n\nSome ~~old~~ text with [a link](/about).\n")
	require.NoError(t, err)
	require.Contains(t, out, "<h1>Title</h1>")
	require.Contains(t, out, "<del>old</del>")
	require.Contains(t, out, `<a href="/about">a link</a>`)
}

func TestRegistry_MissingDirYieldsEmpty(t *testing.T) {
	reg, err := LoadLayouts(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Equal(t, 0, reg.Count())
}

func TestRegistry_GetAndNotFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.html"), []byte("<main>{{content}}</main>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	reg, err := LoadLayouts(dir)
	require.NoError(t, err)
	require.Equal(t, 1, reg.Count())
	require.True(t, reg.Has("default"))

	body, err := reg.Get("default")
	require.NoError(t, err)
	require.Contains(t, body, "{{content}}")

	_, err = reg.Get("missing")
	require.ErrorIs(t, err, ErrLayoutNotFound)
}

func TestRegistry_TemplateSentinelIsDistinct(t *testing.T) {
	reg, err := LoadTemplates(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)

	_, err = reg.Get("post")
	require.ErrorIs(t, err, ErrTemplateNotFound)
	require.NotErrorIs(t, err, ErrLayoutNotFound)
}

func TestTransformer_VersionTokenAndVirtualRoot(t *testing.T) {
	tr := NewTransformer("abc123")
	src := `<!DOCTYPE html><html><head>
<link rel="stylesheet" href="/output.css">
<script src="/output.js?v=stale"></script>
<link rel="icon" href="~/assets/icon.png">
</head><body><img src="~/assets/photo.jpg"><a href="/about">About</a></body></html>`

	out, err := tr.Apply(src)
	require.NoError(t, err)
	require.Contains(t, out, `href="/output.css?v=abc123"`)
	require.Contains(t, out, `src="/output.js?v=abc123"`, "stale version replaced")
	require.Contains(t, out, `href="/assets/icon.png"`)
	require.Contains(t, out, `src="/assets/photo.jpg"`)
	require.Contains(t, out, `href="/about"`, "unrelated links untouched")
	require.NotContains(t, out, "~/")
}

func TestApplyLanguageMetadata(t *testing.T) {
	bc := i18n.BuildConfig{
		Canonical:    "https://example.com/tr/",
		LangAttr:     "tr",
		MetaLanguage: "Turkish",
		OGLocale:     "tr_TR",
		AltLocales:   []string{"en_US"},
	}

	src := `<!DOCTYPE html><html lang="en"><head>
<meta name="language" content="English">
<link rel="canonical" href="https://example.com/" data-canonical>
<meta property="og:url" content="https://example.com/" data-og-url>
<meta name="twitter:url" content="https://example.com/" data-twitter-url>
<meta property="og:locale" content="en_US" data-og-locale>
<meta property="og:locale:alternate" content="de_DE" data-og-locale-alt>
</head><body></body></html>`

	out, err := ApplyLanguageMetadata(src, bc)
	require.NoError(t, err)
	require.Contains(t, out, `<html lang="tr">`)
	require.Contains(t, out, `content="Turkish"`)
	require.Contains(t, out, `href="https://example.com/tr/" data-canonical`)
	require.Contains(t, out, `<meta property="og:url" content="https://example.com/tr/" data-og-url`)
	require.Contains(t, out, `<meta name="twitter:url" content="https://example.com/tr/" data-twitter-url`)
	require.Contains(t, out, `<meta property="og:locale" content="tr_TR" data-og-locale`)
	require.Contains(t, out, `<meta property="og:locale:alternate" content="en_US" data-og-locale-alt`)
	require.NotContains(t, out, "de_DE", "stale alternates are replaced")
}

func TestApplyLanguageMetadata_NoAnchorAppendsToHead(t *testing.T) {
	bc := i18n.BuildConfig{LangAttr: "en", AltLocales: []string{"tr_TR"}}
	out, err := ApplyLanguageMetadata(`<!DOCTYPE html><html><head><title>x</title></head><body></body></html>`, bc)
	require.NoError(t, err)
	require.Contains(t, out, `content="tr_TR"`)
}
