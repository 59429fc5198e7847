package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-mission-extractor/internal/analysis"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(zerolog.New(&buf).Level(zerolog.DebugLevel))

	sink.OnPage(1)
	sink.OnSectionFound("missions")
	sink.OnStrategyResult("pattern", 2)
	sink.OnWarning(&analysis.ExtractionWarning{Strategy: "blocks", Message: "block skipped", Cause: errors.New("bad block")})
	sink.OnComplete(analysis.Summary{Consultant: "Jean Test", Missions: 2})

	lines := decodeLines(t, &buf)
	// The page event is below debug level
	require.Len(t, lines, 4)
	assert.Equal(t, "missions", lines[0]["section"])
	assert.Equal(t, "pattern", lines[1]["strategy"])
	assert.Equal(t, float64(2), lines[1]["candidates"])
	assert.Equal(t, "warn", lines[2]["level"])
	assert.Equal(t, "bad block", lines[2]["error"])
	assert.Equal(t, "block skipped", lines[2]["message"])
	assert.Equal(t, "Jean Test", lines[3]["consultant"])
	assert.Equal(t, "analysis complete", lines[3]["message"])
}

func TestCollector_WithAnalyzer(t *testing.T) {
	var buf bytes.Buffer
	collector := &Collector{}
	sink := analysis.MultiSink{collector, NewLogSink(zerolog.New(&buf))}
	a := analysis.NewAnalyzer(nil, analysis.Options{Sink: sink, MaxInputBytes: 40})

	_, err := a.AnalyzeCVContent("2023-01-01 - En cours: Consultant senior chez BNP Paribas.", "")
	require.NoError(t, err)

	require.Len(t, collector.Warnings(), 1)
	assert.Equal(t, "input", collector.Warnings()[0].Strategy)
	require.Len(t, collector.Summaries(), 1)
	assert.Equal(t, 1, collector.Summaries()[0].Warnings)
	assert.Contains(t, buf.String(), "analysis complete")
}
