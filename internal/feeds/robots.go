package feeds

import "strings"

// RobotsTxt renders robots.txt from the configured allow/disallow lists
// with a sitemap pointer.
func (b *Builder) RobotsTxt() string {
	base := strings.TrimRight(b.cfg.Identity.URL, "/")

	lines := []string{"User-agent: *"}
	for _, path := range b.cfg.Robots.Allow {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			lines = append(lines, "Allow: "+trimmed)
		}
	}
	for _, path := range b.cfg.Robots.Disallow {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			lines = append(lines, "Disallow: "+trimmed)
		}
	}

	lines = append(lines, "", "Sitemap: "+base+"/sitemap.xml", "")
	return strings.Join(lines, "\n")
}
