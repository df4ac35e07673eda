package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("derive", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncPagesRendered("post")
	pr.IncFeedsWritten()
	pr.IncFilesSkipped("draft")
	pr.AddSitemapEntries(12)
	// Basic scrape to ensure metrics encode without panic
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
}

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("derive", time.Second)
	r.ObserveBuildDuration(time.Second)
	r.IncPagesRendered("post")
	r.IncFeedsWritten()
	r.IncFilesSkipped("draft")
	r.AddSitemapEntries(1)
}
