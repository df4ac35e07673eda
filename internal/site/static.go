package site

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
)

// staticStage copies static HTML into the output tree, rewriting asset
// references on the way. The root index.html fans out into one localized
// copy per supported locale; all copies are written before the stage
// returns, so later stages always see a complete output tree.
func (b *Builder) staticStage() error {
	root := b.cfg.Paths.Static
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("No static directory, skipping", logfields.Path(root))
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if b.generated[rel] {
			slog.Debug("Static file shadowed by generated page, skipping", logfields.Path(rel))
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		transformed, err := b.transform.Apply(string(raw))
		if err != nil {
			return err
		}

		if rel == "index.html" {
			return b.writeLocalizedIndexes(transformed)
		}
		return b.writeOutput(rel, transformed)
	})
}

// writeLocalizedIndexes writes one language-adjusted copy of the root
// index per supported locale, sequentially.
func (b *Builder) writeLocalizedIndexes(src string) error {
	for _, locale := range b.locales.Supported() {
		bc, _ := b.locales.Build(locale)
		localized, err := render.ApplyLanguageMetadata(src, bc)
		if err != nil {
			return err
		}

		rel := "index.html"
		if locale != b.locales.Default() {
			rel = locale + "/index.html"
		}
		if b.generated[rel] {
			continue
		}
		if err := b.writeOutput(rel, localized); err != nil {
			return err
		}
	}
	return nil
}

// writeOutput writes one output-relative file, creating parent
// directories as needed.
func (b *Builder) writeOutput(rel, content string) error {
	path := filepath.Join(b.cfg.Paths.Output, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
