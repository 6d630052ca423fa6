package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/aggregator"
	"github.com/rs/zerolog"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

// Summary aggregates a batch run.
type Summary struct {
	Total            int            `json:"total"`
	Succeeded        int            `json:"succeeded"`
	Failed           int            `json:"failed"`
	MeanOverallScore float64        `json:"mean_overall_score"`
	Sentiments       map[string]int `json:"sentiment_distribution"`
	Resolved         int            `json:"resolved"`
	Escalations      int            `json:"escalations"`
	FallbackMessages int            `json:"fallback_messages"`
}

type Writer struct {
	out     io.Writer
	format  string
	encoder *json.Encoder
	scores  []float64
	summary Summary
	logger  *zerolog.Logger
}

func NewWriter(out io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	switch format {
	case FormatJSONL, FormatSummary:
	default:
		return nil, fmt.Errorf("unsupported output format %q (supported: %s, %s)", format, FormatJSONL, FormatSummary)
	}

	return &Writer{
		out:     out,
		format:  format,
		encoder: json.NewEncoder(out),
		summary: Summary{Sentiments: map[string]int{}},
		logger:  logger,
	}, nil
}

// Write records a result; in jsonl format it is written immediately.
func (w *Writer) Write(result Result) error {
	w.accumulate(result)

	if w.format != FormatJSONL {
		return nil
	}
	if err := w.encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to write result %s: %w", result.ID, err)
	}
	return nil
}

func (w *Writer) accumulate(result Result) {
	w.summary.Total++
	if result.Analysis == nil {
		w.summary.Failed++
		return
	}

	a := result.Analysis
	w.summary.Succeeded++
	w.summary.Sentiments[string(a.Sentiment)]++
	w.summary.FallbackMessages += a.FallbackCount
	if a.Resolution {
		w.summary.Resolved++
	}
	if a.EscalationNeeded {
		w.summary.Escalations++
	}
	w.scores = append(w.scores, a.OverallScore)
}

// Summary returns the statistics of everything written so far.
func (w *Writer) Summary() Summary {
	s := w.summary
	s.MeanOverallScore = aggregator.Round(aggregator.Mean(w.scores), 3)

	s.Sentiments = make(map[string]int, len(w.summary.Sentiments))
	for k, v := range w.summary.Sentiments {
		s.Sentiments[k] = v
	}
	return s
}

// WriteSummary writes the summary as indented JSON to out.
func (w *Writer) WriteSummary(out io.Writer) error {
	data, err := json.MarshalIndent(w.Summary(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// Close flushes the summary in summary format.
func (w *Writer) Close() error {
	if w.format != FormatSummary {
		return nil
	}

	s := w.Summary()
	w.logger.Info().
		Int("total", s.Total).
		Int("failed", s.Failed).
		Float64("mean_overall", s.MeanOverallScore).
		Msg("Batch summary")
	return w.WriteSummary(w.out)
}
