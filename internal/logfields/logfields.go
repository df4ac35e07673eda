package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyLocale     = "locale"
	KeySlug       = "slug"
	KeyCollection = "collection"
	KeyTemplate   = "template"
	KeyPage       = "page"
	KeyPath       = "path"
	KeyCount      = "count"
	KeyStage      = "stage"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Locale(code string) slog.Attr    { return slog.String(KeyLocale, code) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Collection(key string) slog.Attr { return slog.String(KeyCollection, key) }
func Template(name string) slog.Attr  { return slog.String(KeyTemplate, name) }
func Page(n int) slog.Attr            { return slog.Int(KeyPage, n) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
