// Package content loads the flat directory of Markdown source files into
// immutable, typed ContentFile values. Files whose front matter fails to
// parse are retained with Valid=false and stay inert in every derived
// structure.
package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/format"
	"git.home.luguber.info/inful/sitebuilder/internal/frontmatter"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// File is one parsed Markdown source. Immutable after load.
type File struct {
	Front      Front
	Fields     map[string]any
	Body       string
	SourcePath string
	Valid      bool
}

// Published reports a published status.
func (f *File) Published() bool { return f.Front.Status == "published" }

// Draft reports a draft status.
func (f *File) Draft() bool { return f.Front.Status == "draft" }

// PostTemplate reports whether the file renders with the post template.
func (f *File) PostTemplate() bool { return f.Front.Template == "post" }

// Eligible reports whether the file may contribute to collections, menus,
// the content index, feeds and the sitemap.
func (f *File) Eligible() bool { return f.Valid && f.Published() && !f.Draft() }

// Summary is the read-projection of a file used for collection membership
// and cross-references. Canonical is filled by the caller that knows the
// URL scheme.
type Summary struct {
	ID           string
	Title        string
	Date         string
	Description  string
	Cover        string
	CoverAlt     string
	CoverCaption string
	ReadingTime  int
	DateDisplay  string
	Canonical    string
}

// Summary builds the read-projection of the file.
func (f *File) Summary() Summary {
	return Summary{
		ID:           f.Front.ID,
		Title:        f.Front.Title,
		Date:         f.Front.Date,
		Description:  f.Front.Description,
		Cover:        f.Front.Cover,
		CoverAlt:     f.Front.CoverAlt,
		CoverCaption: f.Front.CoverCaption,
		ReadingTime:  f.Front.ReadingTime,
		DateDisplay:  format.DisplayDate(f.Front.Date),
	}
}

// Store holds every loaded content file in source order.
type Store struct {
	files []*File
}

// Options tunes content loading.
type Options struct {
	// DefaultImage fills a page's cover when the front matter has none.
	DefaultImage string
}

// Load reads every .md file directly under dir. A missing directory yields
// an empty store, not an error.
func Load(dir string, opts Options) (*Store, error) {
	store := &Store{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("Content directory missing, continuing with zero items", logfields.Path(dir))
			return store, nil
		}
		return nil, fmt.Errorf("read content directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read content file %s: %w", path, err)
		}

		store.files = append(store.files, loadFile(path, raw, opts))
	}

	slog.Info("Content files loaded", logfields.Count(len(store.files)))
	return store, nil
}

func loadFile(path string, raw []byte, opts Options) *File {
	fields := map[string]any{}
	body := raw
	valid := false

	fm, rest, _, err := frontmatter.Split(raw)
	if err == nil {
		if parsed, perr := frontmatter.Parse(fm); perr == nil {
			fields = parsed
			body = rest
			valid = true
		} else {
			err = perr
		}
	}
	if err != nil {
		slog.Warn("Invalid front matter, file excluded from derived structures",
			logfields.Path(path), logfields.Error(err))
	}

	return &File{
		Front:      ParseFront(fields, opts.DefaultImage),
		Fields:     fields,
		Body:       string(body),
		SourcePath: path,
		Valid:      valid,
	}
}

// Files returns the loaded files in source order.
func (s *Store) Files() []*File { return s.files }

// Count returns the number of loaded files.
func (s *Store) Count() int { return len(s.files) }
