package meta

import (
	"git.home.luguber.info/inful/sitebuilder/internal/content"
)

// AlternateLink is one hreflang link of a rendered page.
type AlternateLink struct {
	Lang     string
	Hreflang string
	URL      string
}

// PickFallbackAlternateLang infers the locale a single-string alternate
// override applies to: the only supported locale when there is one, the
// default locale when the page is not in it, the first other supported
// locale otherwise. Returns "" when no locale is supported.
func (e *Engine) PickFallbackAlternateLang(locale string) string {
	supported := e.locales.Supported()
	if len(supported) == 0 {
		return ""
	}
	if len(supported) == 1 {
		return supported[0]
	}
	if locale != "" && locale != e.locales.Default() {
		return e.locales.Default()
	}
	for _, code := range supported {
		if code != locale {
			return code
		}
	}
	return ""
}

// normalizeAlternateOverrides resolves a page's alternate override into a
// locale-keyed URL map. Overrides naming unsupported locales are dropped.
func (e *Engine) normalizeAlternateOverrides(alternate content.Alternate, locale string) map[string]string {
	overrides := map[string]string{}

	if alternate.URL != "" {
		fallback := e.PickFallbackAlternateLang(locale)
		if fallback != "" {
			overrides[fallback] = e.ResolveURL(alternate.URL)
		}
		return overrides
	}

	for code, value := range alternate.Locales {
		if !e.locales.IsSupported(code) {
			continue
		}
		overrides[code] = e.ResolveURL(value)
	}
	return overrides
}

// BuildAlternateURLMap resolves one URL per supported locale for a page,
// plus a "default" key mirroring the page's own canonical URL.
//
// Resolution order per locale: the page's canonical for its own locale, an
// explicit override, the locale's configured canonical base, a constructed
// `/` or `/{code}/` fallback.
func (e *Engine) BuildAlternateURLMap(front content.Front, locale, canonicalURL string) map[string]string {
	overrides := e.normalizeAlternateOverrides(front.Alternate, locale)
	result := make(map[string]string, len(e.locales.Supported())+1)

	for _, code := range e.locales.Supported() {
		if code == locale {
			result[code] = canonicalURL
			continue
		}
		if override, ok := overrides[code]; ok {
			result[code] = override
			continue
		}
		if bc, ok := e.locales.Build(code); ok && bc.Canonical != "" {
			result[code] = bc.Canonical
			continue
		}
		result[code] = e.ResolveURL(e.locales.HomePath(code))
	}

	result["default"] = canonicalURL
	return result
}

// AlternateLinks flattens an alternate URL map into the ordered hreflang
// link list templates iterate over.
func (e *Engine) AlternateLinks(alternates map[string]string) []AlternateLink {
	if alternates == nil {
		return nil
	}

	links := make([]AlternateLink, 0, len(e.locales.Supported()))
	for _, code := range e.locales.Supported() {
		u := alternates[code]
		if u == "" {
			u = alternates["default"]
		}
		links = append(links, AlternateLink{Lang: code, Hreflang: code, URL: u})
	}
	return links
}
