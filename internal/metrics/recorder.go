// Package metrics provides observability hooks for build metrics using
// the Null Object pattern: components hold a Recorder and default to
// NoopRecorder, so metrics can be activated by injecting the Prometheus
// implementation without code changes.
package metrics

import "time"

// Recorder defines the observability hooks of a site build.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncPagesRendered(template string)
	IncFeedsWritten()
	IncFilesSkipped(reason string)
	AddSitemapEntries(n int)
}

// NoopRecorder is the default Recorder; every method does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncPagesRendered(string)                    {}
func (NoopRecorder) IncFeedsWritten()                           {}
func (NoopRecorder) IncFilesSkipped(string)                     {}
func (NoopRecorder) AddSitemapEntries(int)                      {}
