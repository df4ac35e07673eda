// Package site orchestrates a full build: load content and definitions,
// derive collections/menus/index, render pages, copy localized static
// HTML, and emit feeds, the sitemap and robots.txt. The Builder owns all
// derived state explicitly; nothing lives in package variables, so
// multiple builds can run isolated in one process.
package site

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/sitebuilder/internal/collections"
	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/feeds"
	"git.home.luguber.info/inful/sitebuilder/internal/i18n"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/menu"
	"git.home.luguber.info/inful/sitebuilder/internal/meta"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/pagination"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
)

// Builder runs one site build.
type Builder struct {
	cfg      *config.Config
	locales  *i18n.Service
	recorder metrics.Recorder
	version  string

	store     *content.Store
	urls      *meta.Engine
	set       *collections.Set
	menus     *menu.Menus
	index     collections.Index
	pager     *pagination.Engine
	feeds     *feeds.Builder
	layouts   *render.Registry
	templates *render.Registry
	markdown  goldmark.Markdown
	transform *render.Transformer

	// generated tracks output-relative paths written by the render stage
	// so the static copy stage never overwrites a generated page.
	generated map[string]bool
}

// New wires a builder. A nil recorder disables metrics.
func New(cfg *config.Config, locales *i18n.Service, recorder metrics.Recorder) *Builder {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	version := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return &Builder{
		cfg:       cfg,
		locales:   locales,
		recorder:  recorder,
		version:   version,
		markdown:  render.NewMarkdown(),
		transform: render.NewTransformer(version),
		generated: map[string]bool{},
	}
}

// Version returns the build's asset version token.
func (b *Builder) Version() string { return b.version }

// Build runs every stage in order. The first failing stage aborts the
// build; there is no partial recovery.
func (b *Builder) Build() error {
	start := time.Now()
	stages := []struct {
		name string
		fn   func() error
	}{
		{"load", b.loadStage},
		{"derive", b.deriveStage},
		{"render", b.renderStage},
		{"static", b.staticStage},
		{"feeds", b.feedStage},
		{"sitemap", b.sitemapStage},
	}

	for _, stage := range stages {
		stageStart := time.Now()
		if err := stage.fn(); err != nil {
			return fmt.Errorf("%s stage: %w", stage.name, err)
		}
		b.recorder.ObserveStageDuration(stage.name, time.Since(stageStart))
		slog.Debug("Stage complete", logfields.Stage(stage.name))
	}

	b.recorder.ObserveBuildDuration(time.Since(start))
	slog.Info("Build complete", logfields.Count(len(b.generated)))
	return nil
}

func (b *Builder) loadStage() error {
	store, err := content.Load(b.cfg.Paths.Content, content.Options{
		DefaultImage: b.cfg.SEO.DefaultImage,
	})
	if err != nil {
		return err
	}
	b.store = store

	if b.layouts, err = render.LoadLayouts(b.cfg.Paths.Layouts); err != nil {
		return err
	}
	if b.templates, err = render.LoadTemplates(b.cfg.Paths.Templates); err != nil {
		return err
	}

	b.urls = meta.NewEngine(b.cfg.Identity.URL, b.cfg.Identity.Author, b.cfg.SEO.DefaultImage, b.locales)
	return nil
}

func (b *Builder) deriveStage() error {
	b.set = collections.Build(b.store, b.locales, b.urls)
	b.menus = menu.Build(b.store, b.locales, b.urls)
	b.index = collections.BuildIndex(b.store, b.locales, b.urls)
	b.pager = pagination.NewEngine(b.cfg.Content.Pagination, b.locales, b.urls)
	b.feeds = feeds.NewBuilder(b.cfg, b.locales, b.urls, b.store, b.set, b.pager)
	return nil
}

func (b *Builder) renderStage() error {
	for _, file := range b.store.Files() {
		if !file.Valid {
			b.recorder.IncFilesSkipped("invalid")
			continue
		}
		if !file.Published() || file.Draft() {
			b.recorder.IncFilesSkipped("unpublished")
			slog.Debug("Skipping unpublished file", logfields.Path(file.SourcePath))
			continue
		}

		if err := b.renderFile(file); err != nil {
			return err
		}
	}
	return b.renderDynamicCollections()
}

func (b *Builder) renderFile(file *content.File) error {
	front := file.Front
	locale := front.Lang
	if locale == "" {
		locale = b.locales.Default()
	}

	body, err := render.Markdown(b.markdown, file.Body)
	if err != nil {
		return fmt.Errorf("render %s: %w", file.SourcePath, err)
	}

	if front.Template == "collection" || front.Template == "home" {
		return b.renderListingPages(front, locale, body)
	}
	return b.renderPage(front, locale, front.Slug, body, nil)
}

// renderListingPages renders every page of a collection/home listing.
func (b *Builder) renderListingPages(front content.Front, locale, body string) error {
	key := collections.ResolveListingKey(front)
	items := b.set.Bucket(locale, key)

	for _, listing := range b.pager.Paginate(key, locale, items, front, "") {
		pageFront := front
		pageFront.Slug = listing.Slug
		pageFront.Canonical = listing.Canonical

		if err := b.renderPage(pageFront, locale, listing.Slug, body, &listing); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) feedStage() error {
	now := time.Now()
	for _, locale := range b.locales.Supported() {
		xml, ok := b.feeds.Feed(locale, now)
		if !ok {
			slog.Debug("No feed entries for locale, skipping", logfields.Locale(locale))
			continue
		}
		if err := b.writeOutput(b.feeds.FeedPath(locale), xml); err != nil {
			return err
		}
		b.recorder.IncFeedsWritten()
	}
	return nil
}

func (b *Builder) sitemapStage() error {
	entries := b.feeds.MergedEntries()
	if len(entries) > 0 {
		if err := b.writeOutput("sitemap.xml", feeds.RenderSitemap(entries)); err != nil {
			return err
		}
		b.recorder.AddSitemapEntries(len(entries))
	}
	return b.writeOutput("robots.txt", b.feeds.RobotsTxt())
}
