package collections

import (
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/format"
)

// ResolveListingKey picks the collection bucket a listing page renders:
// listKey, slug, category, id, first non-empty value slugified. Empty
// when none qualify.
func ResolveListingKey(front content.Front) string {
	for _, candidate := range []string{front.ListKey, front.Slug, front.CategoryRaw, front.ID} {
		if slug := format.Slugify(candidate); slug != "" {
			return slug
		}
	}
	return ""
}

// ResolveType resolves a listing page's collection type by trying an
// ordered list of strategies, each total and side-effect free: explicit
// front matter fields, the first typed bucket entry, then the caller's
// fallback.
func ResolveType(front content.Front, bucket []Entry, fallback string) string {
	strategies := []func() string{
		func() string { return front.CollectionType },
		func() string { return front.ListType },
		func() string { return front.Type },
		func() string {
			for _, entry := range bucket {
				if entry.Type != "" {
					return entry.Type
				}
			}
			return ""
		},
		func() string { return fallback },
	}
	for _, strategy := range strategies {
		if resolved := strategy(); resolved != "" {
			return resolved
		}
	}
	return ""
}

// TypeFlags are the mutually exclusive convenience flags derived from a
// resolved collection type.
type TypeFlags struct {
	IsTag      bool
	IsCategory bool
	IsAuthor   bool
	IsSeries   bool
	IsHome     bool
}

// TrimTypes normalizes a configured type filter, dropping blank values.
func TrimTypes(types []string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// AnyTypeMatch reports whether any bucket entry carries one of the
// filter types.
func AnyTypeMatch(entries []Entry, types []string) bool {
	for _, entry := range entries {
		for _, t := range types {
			if entry.Type == t {
				return true
			}
		}
	}
	return false
}

// FlagsFor derives the flag set from one resolved type value.
func FlagsFor(resolved string) TypeFlags {
	switch resolved {
	case "tag":
		return TypeFlags{IsTag: true}
	case "category":
		return TypeFlags{IsCategory: true}
	case "author":
		return TypeFlags{IsAuthor: true}
	case "series":
		return TypeFlags{IsSeries: true}
	case "home":
		return TypeFlags{IsHome: true}
	}
	return TypeFlags{}
}
