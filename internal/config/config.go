// Package config loads the site-level build configuration from YAML.
//
// Missing files and missing sections fall back to safe defaults; the build
// never fails because a config knob is absent.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root site configuration.
type Config struct {
	Identity IdentityConfig `yaml:"identity"`
	SEO      SEOConfig      `yaml:"seo"`
	Content  ContentConfig  `yaml:"content"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Build    BuildConfig    `yaml:"build"`
	Robots   RobotsConfig   `yaml:"robots"`
	Paths    PathsConfig    `yaml:"paths"`
}

// IdentityConfig carries the site identity used in meta tags and feeds.
type IdentityConfig struct {
	Author     string `yaml:"author"`
	Email      string `yaml:"email"`
	URL        string `yaml:"url"`
	ThemeColor string `yaml:"themeColor"`
}

// SEOConfig carries SEO fallbacks and sitemap inclusion toggles.
type SEOConfig struct {
	DefaultImage       string `yaml:"defaultImage"`
	IncludeCollections bool   `yaml:"includeCollections"`
	IncludePaging      bool   `yaml:"includePaging"`
	FooterTagCount     int    `yaml:"footerTagCount"`
}

// ContentConfig carries pagination defaults and dynamic collection definitions.
type ContentConfig struct {
	Pagination  PaginationConfig            `yaml:"pagination"`
	Collections map[string]CollectionConfig `yaml:"collections"`
	FeedLimit   int                         `yaml:"feedLimit"`
}

// PaginationConfig sets the listing page size and per-locale slug segments.
type PaginationConfig struct {
	PageSize int               `yaml:"pageSize"`
	Segment  map[string]string `yaml:"segment"`
}

// CollectionConfig defines one dynamically generated collection page family
// (tag/category/series index pages).
type CollectionConfig struct {
	Template    string                       `yaml:"template"`
	SlugPattern map[string]string            `yaml:"slugPattern"`
	Types       []string                     `yaml:"types"`
	Pairs       map[string]map[string]string `yaml:"pairs"`
}

// MarkdownConfig carries Markdown renderer options.
type MarkdownConfig struct {
	Highlight bool `yaml:"highlight"`
}

// BuildConfig carries build pipeline flags.
type BuildConfig struct {
	Minify bool `yaml:"minify"`
	Debug  bool `yaml:"debug"`
}

// RobotsConfig carries robots.txt directives.
type RobotsConfig struct {
	Allow    []string `yaml:"allow"`
	Disallow []string `yaml:"disallow"`
}

// PathsConfig points at the source and output trees.
type PathsConfig struct {
	Content   string `yaml:"content"`
	Layouts   string `yaml:"layouts"`
	Templates string `yaml:"templates"`
	Static    string `yaml:"static"`
	Output    string `yaml:"output"`
}

// Default returns the built-in configuration used when no file is present.
func Default() *Config {
	return &Config{
		Identity: IdentityConfig{
			URL:        "http://localhost:3000",
			ThemeColor: "#5a8df0",
		},
		SEO: SEOConfig{
			FooterTagCount: 8,
		},
		Content: ContentConfig{
			Pagination: PaginationConfig{
				PageSize: 5,
				Segment:  map[string]string{},
			},
			Collections: map[string]CollectionConfig{},
			FeedLimit:   50,
		},
		Robots: RobotsConfig{
			Allow: []string{"/"},
		},
		Paths: PathsConfig{
			Content:   "src/content",
			Layouts:   "src/layouts",
			Templates: "src/templates",
			Static:    "src/static",
			Output:    "dist",
		},
	}
}

// Load reads a site configuration file, applies defaults for absent values
// and overlays environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read site config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse site config %s: %w", path, err)
	}

	normalize(cfg)
	applyEnv(cfg)
	return cfg, nil
}

func normalize(cfg *Config) {
	if cfg.SEO.FooterTagCount <= 0 {
		cfg.SEO.FooterTagCount = 8
	}
	if cfg.Content.Pagination.PageSize <= 0 {
		cfg.Content.Pagination.PageSize = 5
	}
	if cfg.Content.Pagination.Segment == nil {
		cfg.Content.Pagination.Segment = map[string]string{}
	}
	if cfg.Content.Collections == nil {
		cfg.Content.Collections = map[string]CollectionConfig{}
	}
	if cfg.Content.FeedLimit <= 0 {
		cfg.Content.FeedLimit = 50
	}
	if cfg.Identity.URL == "" {
		cfg.Identity.URL = "http://localhost:3000"
	}
	if len(cfg.Robots.Allow) == 0 && len(cfg.Robots.Disallow) == 0 {
		cfg.Robots.Allow = []string{"/"}
	}
	defaults := Default().Paths
	if cfg.Paths.Content == "" {
		cfg.Paths.Content = defaults.Content
	}
	if cfg.Paths.Layouts == "" {
		cfg.Paths.Layouts = defaults.Layouts
	}
	if cfg.Paths.Templates == "" {
		cfg.Paths.Templates = defaults.Templates
	}
	if cfg.Paths.Static == "" {
		cfg.Paths.Static = defaults.Static
	}
	if cfg.Paths.Output == "" {
		cfg.Paths.Output = defaults.Output
	}
}
