package config

import (
	"fmt"
	"os"
)

const starterConfig = `# Site configuration
identity:
  author: "Jane Doe"
  email: "jane@example.com"
  url: "https://example.com"
  themeColor: "#5a8df0"

seo:
  defaultImage: "~/assets/share.png"
  includeCollections: true
  includePaging: true
  footerTagCount: 8

content:
  pagination:
    pageSize: 5
    segment:
      en: page
      tr: sayfa
  collections:
    tags:
      template: category
      types: [tag]
      slugPattern:
        en: "tag/{{key}}"
        tr: "etiket/{{key}}"
  feedLimit: 50

robots:
  allow: ["/"]
  disallow: []

paths:
  content: src/content
  layouts: src/layouts
  templates: src/templates
  static: src/static
  output: dist
`

// Init writes a starter configuration file. Existing files are preserved
// unless force is set.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", path)
		}
	}

	// #nosec G306 -- configuration files are not secrets
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("write configuration %s: %w", path, err)
	}
	return nil
}
