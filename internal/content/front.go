package content

import (
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/format"
)

// Alternate is a per-page alternate-URL override. Front matter accepts
// either a single string (applied to one inferred fallback locale) or a
// map keyed by locale code.
type Alternate struct {
	URL     string
	Locales map[string]string
}

// IsZero reports whether no override was provided.
func (a Alternate) IsZero() bool {
	return a.URL == "" && len(a.Locales) == 0
}

// ListingEmpty is the "no items" message of a listing page, either a plain
// string or localized per locale code.
type ListingEmpty struct {
	Text     string
	ByLocale map[string]string
}

// Front is the typed view of a content file's front matter. All optional
// fields are validated and defaulted once at load time so downstream code
// never re-checks shapes.
type Front struct {
	ID             string
	Lang           string
	Slug           string
	Canonical      string
	Title          string
	MetaTitle      string
	Template       string
	Type           string
	Status         string
	Category       string
	CategoryRaw    string
	Tags           []string
	TagsRaw        []string
	Series         string
	SeriesTitle    string
	Date           string
	Updated        string
	Description    string
	Cover          string
	CoverAlt       string
	CoverCaption   string
	ReadingTime    int
	MenuLabel      string
	HiddenFromMenu bool
	MenuOrder      int
	Layout         string
	Featured       bool

	Robots       string
	OGTitle      string
	OGType       string
	OGLocale     string
	OGAltLocales []string
	TwitterCard  string
	TwitterTitle string
	Keywords     []string

	ListKey        string
	ListHeading    string
	CollectionType string
	ListType       string
	ListingEmpty   ListingEmpty
	Alternate      Alternate
	Related        []string
}

// ParseFront builds the typed front matter from a raw field map.
// defaultImage fills the cover when the page declares none.
func ParseFront(fields map[string]any, defaultImage string) Front {
	f := Front{
		ID:           format.StringValue(fields["id"]),
		Lang:         format.StringValue(fields["lang"]),
		Slug:         format.StringValue(fields["slug"]),
		Canonical:    format.StringValue(fields["canonical"]),
		Title:        format.StringValue(fields["title"]),
		MetaTitle:    format.StringValue(fields["metaTitle"]),
		Type:         lower(fields["type"]),
		Status:       lower(fields["status"]),
		CategoryRaw:  format.StringValue(fields["category"]),
		Date:         format.StringValue(fields["date"]),
		Updated:      format.StringValue(fields["updated"]),
		Description:  format.StringValue(fields["description"]),
		CoverAlt:     format.StringValue(fields["coverAlt"]),
		CoverCaption: format.StringValue(fields["coverCaption"]),
		ReadingTime:  format.ReadingTime(fields["readingTime"]),
		MenuOrder:    format.Order(fields["order"]),
		Featured:     format.Boolean(fields["featured"]),
		Robots:       format.StringValue(fields["robots"]),
		OGTitle:      format.StringValue(fields["ogTitle"]),
		OGType:       format.StringValue(fields["ogType"]),
		OGLocale:     format.StringValue(fields["ogLocale"]),
		OGAltLocales: format.NormalizeStringArray(fields["ogAltLocale"]),
		TwitterCard:  format.StringValue(fields["twitterCard"]),
		TwitterTitle: format.StringValue(fields["twitterTitle"]),
		Keywords:     format.NormalizeStringArray(fields["keywords"]),

		ListKey:        format.StringValue(fields["listKey"]),
		ListHeading:    format.StringValue(fields["listHeading"]),
		CollectionType: lower(fields["collectionType"]),
		ListType:       lower(fields["listType"]),
	}

	f.Template = lower(fields["template"])
	if f.Template == "" {
		f.Template = "page"
	}
	f.Layout = format.StringValue(fields["layout"])
	if f.Layout == "" {
		f.Layout = "default"
	}

	f.Category = format.Slugify(f.CategoryRaw)
	f.TagsRaw = format.NormalizeStringArray(fields["tags"])
	f.Tags = make([]string, 0, len(f.TagsRaw))
	for _, tag := range f.TagsRaw {
		if slug := format.Slugify(tag); slug != "" {
			f.Tags = append(f.Tags, slug)
		}
	}

	seriesRaw := format.StringValue(fields["series"])
	f.Series = format.Slugify(seriesRaw)
	if seriesRaw != "" {
		f.SeriesTitle = format.StringValue(fields["seriesTitle"])
		if f.SeriesTitle == "" {
			f.SeriesTitle = seriesRaw
		}
	}

	f.Cover = format.StringValue(fields["cover"])
	if f.Cover == "" {
		f.Cover = defaultImage
	}

	f.MenuLabel = f.Title
	if menu := format.StringValue(fields["menu"]); menu != "" {
		f.MenuLabel = menu
	}
	if f.MenuLabel == "" {
		if f.ID != "" {
			f.MenuLabel = f.ID
		} else {
			f.MenuLabel = f.Slug
		}
	}
	f.HiddenFromMenu = !format.Boolean(fields["show"])

	f.ListingEmpty = parseListingEmpty(fields["listingEmpty"])
	f.Alternate = parseAlternate(fields["alternate"])
	f.Related = parseRelated(fields["related"])

	return f
}

func lower(value any) string {
	return strings.ToLower(format.StringValue(value))
}

func parseListingEmpty(value any) ListingEmpty {
	switch v := value.(type) {
	case string:
		return ListingEmpty{Text: format.StringValue(v)}
	case map[string]any:
		byLocale := map[string]string{}
		for code, raw := range v {
			if s := format.StringValue(raw); s != "" {
				byLocale[code] = s
			}
		}
		return ListingEmpty{ByLocale: byLocale}
	}
	return ListingEmpty{}
}

func parseAlternate(value any) Alternate {
	switch v := value.(type) {
	case string:
		return Alternate{URL: format.StringValue(v)}
	case map[string]any:
		locales := map[string]string{}
		for code, raw := range v {
			if s := format.StringValue(raw); s != "" {
				locales[code] = s
			}
		}
		return Alternate{Locales: locales}
	}
	return Alternate{}
}

// parseRelated keeps blank entries: a blank related id renders as a
// placeholder slot in series navigation.
func parseRelated(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, _ := item.(string)
		out = append(out, trimSpace(s))
	}
	return out
}

func trimSpace(s string) string {
	return format.StringValue(s)
}
