package render

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/sitebuilder/internal/i18n"
)

// Transformer applies the build-wide output HTML rewrites: asset version
// tokens on the bundled stylesheet/script and virtual-root references.
type Transformer struct {
	version string
}

// NewTransformer builds a transformer stamping version on asset URLs.
func NewTransformer(version string) *Transformer {
	return &Transformer{version: version}
}

var versionedAssets = []string{"/output.css", "/output.js"}

// Apply rewrites every href/src attribute of the document: `~/` roots
// become site-absolute paths and the bundled assets gain the version
// query, replacing any stale one.
func (t *Transformer) Apply(src string) (string, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		for i, attr := range n.Attr {
			if attr.Key == "href" || attr.Key == "src" {
				n.Attr[i].Val = t.rewriteRef(attr.Val)
			}
		}
	})

	return renderDoc(doc)
}

func (t *Transformer) rewriteRef(value string) string {
	if strings.HasPrefix(value, "~/") {
		value = "/" + value[2:]
	}
	path, _, _ := strings.Cut(value, "?")
	for _, asset := range versionedAssets {
		if path == asset {
			return asset + "?v=" + t.version
		}
	}
	return value
}

// ApplyLanguageMetadata localizes a shared static HTML document for one
// locale: the html lang attribute, the language meta, the canonical/
// og:url/twitter:url links marked with data-* attributes, the og:locale
// meta, and the og:locale:alternate set (existing alternates are
// replaced).
func ApplyLanguageMetadata(src string, bc i18n.BuildConfig) (string, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var anchor *html.Node
	var head *html.Node
	var stale []*html.Node

	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.DataAtom {
		case atom.Html:
			if bc.LangAttr != "" {
				setAttr(n, "lang", bc.LangAttr)
			}
		case atom.Head:
			head = n
		case atom.Meta:
			switch {
			case attrVal(n, "name") == "language":
				if bc.MetaLanguage != "" {
					setAttr(n, "content", bc.MetaLanguage)
				}
			case attrVal(n, "property") == "og:url" && hasAttr(n, "data-og-url"):
				setAttr(n, "content", bc.Canonical)
			case attrVal(n, "name") == "twitter:url" && hasAttr(n, "data-twitter-url"):
				setAttr(n, "content", bc.Canonical)
			case attrVal(n, "property") == "og:locale" && hasAttr(n, "data-og-locale"):
				setAttr(n, "content", bc.OGLocale)
				anchor = n
			case hasAttr(n, "data-og-locale-alt"):
				stale = append(stale, n)
			}
		case atom.Link:
			if attrVal(n, "rel") == "canonical" && hasAttr(n, "data-canonical") {
				setAttr(n, "href", bc.Canonical)
			}
		}
	})

	for _, n := range stale {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}

	insertAlternateLocaleMeta(anchor, head, bc.AltLocales)
	return renderDoc(doc)
}

// insertAlternateLocaleMeta places one og:locale:alternate meta per
// locale directly after the og:locale anchor, or at the end of head when
// no anchor exists.
func insertAlternateLocaleMeta(anchor, head *html.Node, locales []string) {
	if len(locales) == 0 {
		return
	}

	newMeta := func(locale string) *html.Node {
		return &html.Node{
			Type:     html.ElementNode,
			Data:     "meta",
			DataAtom: atom.Meta,
			Attr: []html.Attribute{
				{Key: "property", Val: "og:locale:alternate"},
				{Key: "content", Val: locale},
				{Key: "data-og-locale-alt", Val: ""},
			},
		}
	}

	switch {
	case anchor != nil && anchor.Parent != nil:
		after := anchor
		for _, locale := range locales {
			node := newMeta(locale)
			anchor.Parent.InsertBefore(node, after.NextSibling)
			after = node
		}
	case head != nil:
		for _, locale := range locales {
			head.AppendChild(newMeta(locale))
		}
	}
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, fn)
	}
}

func renderDoc(doc *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

func attrVal(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, value string) {
	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}
