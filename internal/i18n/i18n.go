// Package i18n exposes the locale service: the default and supported
// locales, per-locale build configuration, translation lookup and
// locale-aware string collation.
package i18n

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// BuildConfig is the per-locale output configuration.
type BuildConfig struct {
	Canonical    string   `yaml:"canonical"`
	LangAttr     string   `yaml:"langAttr"`
	MetaLanguage string   `yaml:"metaLanguage"`
	OGLocale     string   `yaml:"ogLocale"`
	AltLocales   []string `yaml:"altLocale"`
}

type fileSchema struct {
	Default      string                    `yaml:"default"`
	Supported    []string                  `yaml:"supported"`
	Cultures     map[string]string         `yaml:"cultures"`
	Build        map[string]BuildConfig    `yaml:"build"`
	Translations map[string]map[string]any `yaml:"translations"`
}

// Service resolves everything locale-dependent during a build.
type Service struct {
	defaultLocale string
	supported     []string
	cultures      map[string]string
	build         map[string]BuildConfig
	dictionaries  map[string]map[string]string
	collators     map[string]*collate.Collator
}

// Load reads the locale configuration file. A missing file yields a
// single-locale English service so a build can always proceed.
func Load(path string) (*Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newService(fileSchema{Default: "en", Supported: []string{"en"}}), nil
		}
		return nil, fmt.Errorf("read locale config %s: %w", path, err)
	}

	var schema fileSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parse locale config %s: %w", path, err)
	}
	if schema.Default == "" {
		schema.Default = "en"
	}
	if len(schema.Supported) == 0 {
		schema.Supported = []string{schema.Default}
	}
	return newService(schema), nil
}

func newService(schema fileSchema) *Service {
	s := &Service{
		defaultLocale: schema.Default,
		supported:     schema.Supported,
		cultures:      schema.Cultures,
		build:         schema.Build,
		dictionaries:  map[string]map[string]string{},
		collators:     map[string]*collate.Collator{},
	}
	if s.cultures == nil {
		s.cultures = map[string]string{}
	}
	if s.build == nil {
		s.build = map[string]BuildConfig{}
	}
	for code, tree := range schema.Translations {
		dict := map[string]string{}
		flatten("", tree, dict)
		s.dictionaries[code] = dict
	}
	for _, code := range s.supported {
		tag := language.Make(strings.ReplaceAll(s.Culture(code), "_", "-"))
		s.collators[code] = collate.New(tag)
	}
	return s
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for key, value := range tree {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(full, v, out)
		case string:
			out[full] = v
		default:
			out[full] = fmt.Sprint(v)
		}
	}
}

// Default returns the default locale code.
func (s *Service) Default() string { return s.defaultLocale }

// Supported returns the supported locale codes in configuration order.
func (s *Service) Supported() []string { return s.supported }

// IsSupported reports whether code is a configured locale.
func (s *Service) IsSupported(code string) bool {
	for _, c := range s.supported {
		if c == code {
			return true
		}
	}
	return false
}

// Culture returns the BCP-47/culture code for a locale, falling back to the
// locale code itself.
func (s *Service) Culture(code string) string {
	if culture, ok := s.cultures[code]; ok && culture != "" {
		return culture
	}
	return code
}

// Build returns the per-locale build configuration.
func (s *Service) Build(code string) (BuildConfig, bool) {
	bc, ok := s.build[code]
	return bc, ok
}

// T looks up a translation key for a locale, returning fallback when the
// key is absent.
func (s *Service) T(locale, key, fallback string) string {
	if dict, ok := s.dictionaries[locale]; ok {
		if value, ok := dict[key]; ok && value != "" {
			return value
		}
	}
	return fallback
}

// Dictionary returns the flattened translation map for a locale.
func (s *Service) Dictionary(locale string) map[string]string {
	if dict, ok := s.dictionaries[locale]; ok {
		return dict
	}
	return map[string]string{}
}

// Compare compares two strings under the locale's collation rules.
func (s *Service) Compare(locale, a, b string) int {
	if c, ok := s.collators[locale]; ok {
		return c.CompareString(a, b)
	}
	return strings.Compare(a, b)
}

// HomePath returns the site-relative home path for a locale.
func (s *Service) HomePath(code string) string {
	if code == "" || code == s.defaultLocale {
		return "/"
	}
	return "/" + code + "/"
}
