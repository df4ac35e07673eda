package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once           sync.Once
	stageDuration  *prom.HistogramVec
	buildDuration  prom.Histogram
	pagesRendered  *prom.CounterVec
	feedsWritten   prom.Counter
	filesSkipped   *prom.CounterVec
	sitemapEntries prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics
// (idempotent). A nil registry gets a private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "sitebuilder",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "sitebuilder",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.pagesRendered = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "pages_rendered_total",
			Help:      "Rendered pages by template",
		}, []string{"template"})
		pr.feedsWritten = prom.NewCounter(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "feeds_written_total",
			Help:      "RSS feeds written",
		})
		pr.filesSkipped = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "files_skipped_total",
			Help:      "Content files excluded from output by reason",
		}, []string{"reason"})
		pr.sitemapEntries = prom.NewCounter(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "sitemap_entries_total",
			Help:      "Entries written to the sitemap",
		})
		reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.pagesRendered,
			pr.feedsWritten, pr.filesSkipped, pr.sitemapEntries)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPagesRendered(template string) {
	if p == nil || p.pagesRendered == nil {
		return
	}
	p.pagesRendered.WithLabelValues(template).Inc()
}

func (p *PrometheusRecorder) IncFeedsWritten() {
	if p == nil || p.feedsWritten == nil {
		return
	}
	p.feedsWritten.Inc()
}

func (p *PrometheusRecorder) IncFilesSkipped(reason string) {
	if p == nil || p.filesSkipped == nil {
		return
	}
	p.filesSkipped.WithLabelValues(reason).Inc()
}

func (p *PrometheusRecorder) AddSitemapEntries(n int) {
	if p == nil || p.sitemapEntries == nil {
		return
	}
	p.sitemapEntries.Add(float64(n))
}
