package batch

import (
	"context"
	"sync"

	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/models"
	"github.com/rs/zerolog"
)

type Analyzer interface {
	AnalyzeConversation(transcript models.Transcript) (models.AnalysisResult, error)
}

// Result is one output line.
type Result struct {
	ID         string                 `json:"id"`
	LineNumber int                    `json:"line"`
	Analysis   *models.AnalysisResult `json:"analysis,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

type Processor struct {
	analyzer Analyzer
	workers  int
	logger   *zerolog.Logger
}

func NewProcessor(analyzer Analyzer, workers int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		analyzer: analyzer,
		workers:  workers,
		logger:   logger,
	}
}

// Process analyzes records on a worker pool. Results arrive in completion
// order; the channel closes when every record is done or ctx is cancelled.
func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan Result {
	jobs := make(chan InputRecord)
	results := make(chan Result, p.workers)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				select {
				case <-ctx.Done():
					return
				case results <- p.analyze(record):
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			if ctx.Err() != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case jobs <- record:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func (p *Processor) analyze(record InputRecord) Result {
	result := Result{ID: record.ID(), LineNumber: record.LineNumber}
	if record.Error != nil {
		result.Error = record.Error.Error()
		return result
	}

	analysis, err := p.analyzer.AnalyzeConversation(record.Request.Messages)
	if err != nil {
		p.logger.Warn().Err(err).Str("id", result.ID).Int("line", record.LineNumber).Msg("Analysis failed")
		result.Error = err.Error()
		return result
	}

	result.Analysis = &analysis
	return result
}
