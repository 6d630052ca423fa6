package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/models"
	"github.com/rs/zerolog"
)

const maxLineBytes = 4 << 20

// InputRecord is one parsed line of a JSONL input file.
type InputRecord struct {
	LineNumber int
	Request    models.AnalysisRequest
	Error      error
}

// ID names the record in results: the conversation id, then the request id,
// then the line number.
func (r InputRecord) ID() string {
	switch {
	case r.Request.ConversationID != "":
		return r.Request.ConversationID
	case r.Request.RequestID != "":
		return r.Request.RequestID
	default:
		return fmt.Sprintf("line-%d", r.LineNumber)
	}
}

type Reader struct {
	source io.Reader
	logger *zerolog.Logger
}

func NewReader(source io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		source: source,
		logger: logger,
	}
}

// ReadAll streams records until EOF or ctx is cancelled. Blank lines are
// skipped; malformed lines are emitted with Error set.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.source)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

		lineNumber := 0
		for scanner.Scan() {
			lineNumber++

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record := InputRecord{LineNumber: lineNumber}
			if err := json.Unmarshal([]byte(line), &record.Request); err != nil {
				record.Error = fmt.Errorf("line %d: %w", lineNumber, err)
				r.logger.Warn().Int("line", lineNumber).Err(err).Msg("Failed to parse record")
			} else if record.Request.Messages == nil {
				record.Error = fmt.Errorf("line %d: missing messages", lineNumber)
			}

			select {
			case <-ctx.Done():
				return
			case out <- record:
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Int("line", lineNumber).Msg("Failed to read input")
			select {
			case <-ctx.Done():
			case out <- InputRecord{LineNumber: lineNumber + 1, Error: fmt.Errorf("read input: %w", err)}:
			}
		}
	}()

	return out
}
