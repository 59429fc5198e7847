package observability

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/jonathan/cv-mission-extractor/internal/analysis"
)

// LogSink reports analysis progress as structured log events.
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink returns a sink logging through logger.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{log: logger}
}

func (s *LogSink) OnPage(n int) {
	s.log.Trace().Int("page", n).Msg("page")
}

func (s *LogSink) OnSectionFound(name string) {
	s.log.Debug().Str("section", name).Msg("section found")
}

func (s *LogSink) OnStrategyResult(tag string, count int) {
	s.log.Debug().Str("strategy", tag).Int("candidates", count).Msg("strategy result")
}

func (s *LogSink) OnWarning(w *analysis.ExtractionWarning) {
	s.log.Warn().Str("strategy", w.Strategy).Err(w.Cause).Msg(w.Message)
}

func (s *LogSink) OnComplete(sum analysis.Summary) {
	s.log.Info().
		Str("consultant", sum.Consultant).
		Str("section", sum.Section).
		Int("missions", sum.Missions).
		Int("verified", sum.VerifiedMissions).
		Int("warnings", sum.Warnings).
		Msg("analysis complete")
}

// Collector keeps warnings and summaries for printing once an analysis is done.
// It is safe for concurrent use.
type Collector struct {
	analysis.NopSink

	mu        sync.Mutex
	warnings  []*analysis.ExtractionWarning
	summaries []analysis.Summary
}

func (c *Collector) OnWarning(w *analysis.ExtractionWarning) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, w)
}

func (c *Collector) OnComplete(sum analysis.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summaries = append(c.summaries, sum)
}

// Warnings returns the warnings collected so far.
func (c *Collector) Warnings() []*analysis.ExtractionWarning {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*analysis.ExtractionWarning(nil), c.warnings...)
}

// Summaries returns the completion summaries collected so far.
func (c *Collector) Summaries() []analysis.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]analysis.Summary(nil), c.summaries...)
}
