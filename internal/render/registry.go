package render

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// ErrLayoutNotFound aborts the build when a page names a layout that was
// never loaded. Missing source directories are tolerated; a missing named
// definition is not.
var ErrLayoutNotFound = errors.New("layout not found")

// ErrTemplateNotFound is the template counterpart of ErrLayoutNotFound.
var ErrTemplateNotFound = errors.New("template not found")

// Registry holds named HTML definitions loaded from one directory.
type Registry struct {
	kind     string
	notFound error
	entries  map[string]string
}

// LoadLayouts reads every .html file under dir into a layout registry.
// A missing directory yields an empty registry.
func LoadLayouts(dir string) (*Registry, error) {
	return load(dir, "layout", ErrLayoutNotFound)
}

// LoadTemplates reads every .html file under dir into a template
// registry. A missing directory yields an empty registry.
func LoadTemplates(dir string) (*Registry, error) {
	return load(dir, "template", ErrTemplateNotFound)
}

func load(dir, kind string, notFound error) (*Registry, error) {
	reg := &Registry{kind: kind, notFound: notFound, entries: map[string]string{}}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("Definition directory missing, continuing with zero items",
				logfields.Path(dir))
			return reg, nil
		}
		return nil, fmt.Errorf("read %s directory %s: %w", kind, dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s file %s: %w", kind, path, err)
		}
		name := strings.TrimSuffix(entry.Name(), ".html")
		reg.entries[name] = string(raw)
	}

	slog.Debug("Definitions loaded", logfields.Count(len(reg.entries)))
	return reg, nil
}

// Get resolves a definition by name. An unknown name returns the
// registry's not-found sentinel wrapped with the name; callers treat
// that as fatal.
func (r *Registry) Get(name string) (string, error) {
	if body, ok := r.entries[name]; ok {
		return body, nil
	}
	return "", fmt.Errorf("%s %q: %w", r.kind, name, r.notFound)
}

// Has reports whether a definition exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Count returns the number of loaded definitions.
func (r *Registry) Count() int { return len(r.entries) }
