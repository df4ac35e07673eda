// Package format holds the small value-coercion and text helpers shared by
// the content, collection and feed layers. Everything here is pure.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// OrderMax sorts menu items without an explicit order last.
const OrderMax = math.MaxInt32

// Letters that survive NFD decomposition with no combining marks to strip.
var slugFold = map[rune]string{
	'ß': "ss",
	'Ø': "o", 'ø': "o",
	'Æ': "ae", 'æ': "ae",
	'Đ': "d", 'đ': "d",
	'Ł': "l", 'ł': "l",
}

var slugNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lowercases, folds diacritics and collapses everything outside
// [a-z0-9] into single dashes.
func Slugify(value string) string {
	if value == "" {
		return ""
	}

	folded, _, err := transform.String(slugNormalizer, value)
	if err != nil {
		folded = value
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if mapped, ok := slugFold[r]; ok {
			b.WriteString(mapped)
			continue
		}
		b.WriteRune(r)
	}

	var out strings.Builder
	out.Grow(b.Len())
	dash := false
	for _, r := range strings.ToLower(b.String()) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out.WriteRune(r)
			dash = false
			continue
		}
		if !dash && out.Len() > 0 {
			out.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(out.String(), "-")
}

// EscapeXML escapes the five XML special characters for element content and
// attribute values in feeds and the sitemap.
func EscapeXML(value string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(value)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseDate parses the loose date shapes front matter carries. ok is false
// when the value is empty or unparseable; callers treat that as epoch/absent.
func ParseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortTime maps a raw date to its sort key. Unparseable dates sort as epoch 0.
func SortTime(value string) int64 {
	t, ok := ParseDate(value)
	if !ok {
		return 0
	}
	return t.UnixMilli()
}

// RSSDate renders an RFC 1123 pubDate in UTC. Unparseable input falls back
// to the current time, matching channel-level lastBuildDate behavior.
func RSSDate(value string) string {
	t, ok := ParseDate(value)
	if !ok {
		t = time.Now()
	}
	return RSSDateTime(t)
}

// RSSDateTime renders a known-good timestamp as an RFC 1123 pubDate in UTC.
func RSSDateTime(t time.Time) string {
	return t.UTC().Format("Mon, 02 Jan 2006 15:04:05 GMT")
}

// LastMod renders a sitemap lastmod date (YYYY-MM-DD), or "" when the value
// does not parse so the element is omitted.
func LastMod(value string) string {
	t, ok := ParseDate(value)
	if !ok {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// LastModTime renders a known-good timestamp as a sitemap lastmod date.
func LastModTime(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DisplayDate renders a human-readable date for templates ("02 January 2006").
// Unparseable values pass through verbatim so authors can see the problem.
func DisplayDate(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	t, ok := ParseDate(value)
	if !ok {
		return value
	}
	return t.Format("02 January 2006")
}

// Boolean coerces YAML booleans and the string forms "true"/"false".
func Boolean(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true
		case "false", "":
			return false
		}
		return true
	case nil:
		return false
	case int:
		return v != 0
	case float64:
		return v != 0
	}
	return true
}

// Order coerces a numeric menu order; anything non-numeric sorts last.
func Order(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return int(n)
		}
	}
	return OrderMax
}

// ReadingTime rounds a numeric minute estimate; non-positive or non-numeric
// values collapse to zero.
func ReadingTime(value any) int {
	var n float64
	switch v := value.(type) {
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case float64:
		n = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if n <= 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int(math.Round(n))
}

// StringValue coerces an arbitrary front matter value to a trimmed string.
func StringValue(value any) string {
	s, _ := value.(string)
	return strings.TrimSpace(s)
}

// NormalizeStringArray keeps the trimmed, non-empty strings of a YAML list.
// A comma-separated string is accepted as the scalar form of the same list.
func NormalizeStringArray(value any) []string {
	var raw []string
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	case []string:
		raw = v
	case string:
		raw = strings.Split(v, ",")
	default:
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
