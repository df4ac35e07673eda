package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/format"
)

func writeContent(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoad_MissingDirectory_YieldsEmptyStore(t *testing.T) {
	store, err := Load(filepath.Join(t.TempDir(), "nope"), Options{})
	require.NoError(t, err)
	require.Zero(t, store.Count())
}

func TestLoad_SkipsNonMarkdownAndDirectories(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "a.md", "---\nstatus: published\n---\nbody\n")
	writeContent(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	store, err := Load(dir, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, store.Count())
}

func TestLoad_InvalidFrontMatter_KeepsFileInert(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "broken.md", "---\nstatus: published\n# no closing delimiter\n")

	store, err := Load(dir, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, store.Count())

	file := store.Files()[0]
	require.False(t, file.Valid)
	require.False(t, file.Eligible())
}

func TestParseFront_SafeDefaults(t *testing.T) {
	f := ParseFront(map[string]any{}, "~/assets/share.png")
	require.Equal(t, "page", f.Template)
	require.Equal(t, "default", f.Layout)
	require.Equal(t, "~/assets/share.png", f.Cover)
	require.Equal(t, format.OrderMax, f.MenuOrder)
	require.True(t, f.HiddenFromMenu)
	require.False(t, f.Featured)
}

func TestParseFront_SlugifiesTaxonomy(t *testing.T) {
	f := ParseFront(map[string]any{
		"category": "Yaşam & Öğrenme",
		"tags":     []any{"Teknik Notlar", " Go "},
		"series":   "My Series",
	}, "")
	require.Equal(t, "yasam-ogrenme", f.Category)
	require.Equal(t, "Yaşam & Öğrenme", f.CategoryRaw)
	require.Equal(t, []string{"teknik-notlar", "go"}, f.Tags)
	require.Equal(t, "my-series", f.Series)
	require.Equal(t, "My Series", f.SeriesTitle, "seriesTitle falls back to raw series")
}

func TestParseFront_SeriesTitleRequiresSeries(t *testing.T) {
	f := ParseFront(map[string]any{"seriesTitle": "Orphan"}, "")
	require.Empty(t, f.SeriesTitle)
}

func TestParseFront_MenuLabelPrecedence(t *testing.T) {
	require.Equal(t, "Custom", ParseFront(map[string]any{"menu": "Custom", "title": "T", "id": "x"}, "").MenuLabel)
	require.Equal(t, "T", ParseFront(map[string]any{"title": "T", "id": "x"}, "").MenuLabel)
	require.Equal(t, "x", ParseFront(map[string]any{"id": "x"}, "").MenuLabel)
	require.Equal(t, "s", ParseFront(map[string]any{"slug": "s"}, "").MenuLabel)
}

func TestParseFront_AlternateShapes(t *testing.T) {
	single := ParseFront(map[string]any{"alternate": "/en/about/"}, "")
	require.Equal(t, "/en/about/", single.Alternate.URL)

	mapped := ParseFront(map[string]any{"alternate": map[string]any{"en": "/en/about/", "de": ""}}, "")
	require.Equal(t, map[string]string{"en": "/en/about/"}, mapped.Alternate.Locales)

	require.True(t, ParseFront(map[string]any{}, "").Alternate.IsZero())
}

func TestParseFront_RelatedKeepsPlaceholders(t *testing.T) {
	f := ParseFront(map[string]any{"related": []any{"one", "", "three"}}, "")
	require.Equal(t, []string{"one", "", "three"}, f.Related)
}

func TestFile_EligibilityPredicate(t *testing.T) {
	published := &File{Valid: true, Front: Front{Status: "published"}}
	draft := &File{Valid: true, Front: Front{Status: "draft"}}
	invalid := &File{Valid: false, Front: Front{Status: "published"}}

	require.True(t, published.Eligible())
	require.False(t, draft.Eligible())
	require.False(t, invalid.Eligible())
}
