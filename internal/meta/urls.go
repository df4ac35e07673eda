// Package meta resolves canonical and alternate URLs and builds the
// per-page SEO payload (Open Graph, Twitter, JSON-LD). Everything here is
// a pure function of front matter, locale and configuration.
package meta

import (
	"net/url"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/i18n"
)

// Engine resolves URLs and page metadata against one site configuration.
type Engine struct {
	baseURL      string
	author       string
	defaultImage string
	locales      *i18n.Service
}

// NewEngine builds a meta engine. baseURL is the absolute site root.
func NewEngine(baseURL, author, defaultImage string, locales *i18n.Service) *Engine {
	return &Engine{
		baseURL:      strings.TrimRight(baseURL, "/"),
		author:       author,
		defaultImage: defaultImage,
		locales:      locales,
	}
}

// BaseURL returns the configured site base URL without a trailing slash.
func (e *Engine) BaseURL() string { return e.baseURL }

// ResolveURL turns a front matter URL value into an absolute URL.
//
// Empty values resolve to the site base URL; http(s) URLs pass through;
// values starting with the virtual-root marker `~/` or an absolute path
// are prefixed with the base URL; anything else is treated as relative to
// the base URL. Every result goes through trailing-slash normalization.
func (e *Engine) ResolveURL(value string) string {
	var raw string
	switch {
	case value == "":
		raw = e.baseURL
	case strings.HasPrefix(value, "http://"), strings.HasPrefix(value, "https://"):
		raw = value
	case strings.HasPrefix(value, "~/"):
		raw = e.baseURL + "/" + value[2:]
	case strings.HasPrefix(value, "/"):
		raw = e.baseURL + value
	default:
		raw = e.baseURL + "/" + value
	}
	return normalizeAbsolute(raw)
}

// normalizeAbsolute collapses duplicate slashes and applies
// trailing-slash normalization to the path portion of an absolute URL,
// preserving query and fragment.
func normalizeAbsolute(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Path = NormalizePath(collapseSlashes(u.Path))
	return u.String()
}

// NormalizePath gives a path a trailing slash unless it already has one,
// its final segment is file-like (contains a dot) or its final segment is
// the virtual-root marker.
func NormalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if strings.HasSuffix(p, "/") {
		return p
	}
	seg := p[strings.LastIndex(p, "/")+1:]
	if strings.Contains(seg, ".") || seg == "~" {
		return p
	}
	return p + "/"
}

// collapseSlashes collapses duplicate slashes within a bare path. It
// must never see a full URL; query and fragment are handled outside the
// path portion.
func collapseSlashes(p string) string {
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

// DefaultCanonical computes the canonical URL for a locale and slug when
// the front matter declares none: the locale's configured canonical base
// plus the cleaned slug plus a trailing slash.
func (e *Engine) DefaultCanonical(locale, slug string) string {
	cleaned := strings.Trim(slug, "/")

	base := ""
	if bc, ok := e.locales.Build(locale); ok {
		base = bc.Canonical
	}
	if base == "" {
		base = e.ResolveURL(e.locales.HomePath(locale))
	}

	base = strings.TrimRight(base, "/") + "/"
	if cleaned == "" {
		return base
	}
	return base + cleaned + "/"
}

// CanonicalURL applies the canonical precedence: explicit front matter
// canonical first, the default canonical otherwise.
func (e *Engine) CanonicalURL(front content.Front, locale, slug string) string {
	if front.Canonical != "" {
		return e.ResolveURL(front.Canonical)
	}
	return e.ResolveURL(e.DefaultCanonical(locale, slug))
}

// ContentURL builds the site-relative URL for a content page, preferring
// an explicit canonical (reduced to its path) over the default canonical.
func (e *Engine) ContentURL(canonical, locale, slug string) string {
	if locale == "" {
		locale = e.locales.Default()
	}

	if trimmed := strings.TrimSpace(canonical); trimmed != "" {
		if rel := canonicalRelativePath(trimmed); rel != "" {
			return NormalizePath(collapseSlashes("/" + rel))
		}
		return trimmed
	}

	if rel := canonicalRelativePath(e.DefaultCanonical(locale, slug)); rel != "" {
		return NormalizePath(collapseSlashes("/" + rel))
	}

	path := "/"
	if slug != "" {
		path = "/" + slug
	}
	if locale != e.locales.Default() {
		path = "/" + locale + path
	}
	return NormalizePath(collapseSlashes(path))
}

// canonicalRelativePath reduces a canonical value (absolute URL, ~/ path
// or plain path) to a bare relative path, or "" when nothing remains.
func canonicalRelativePath(value string) string {
	path := value
	switch {
	case strings.HasPrefix(path, "~/"):
		path = path[2:]
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		if u, err := url.Parse(path); err == nil {
			path = u.Path
		}
	}
	return strings.Trim(strings.TrimSpace(path), "/")
}
