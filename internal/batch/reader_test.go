package batch

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

const validLine = `{"conversation_id":"c-1","messages":[{"sender":"user","message":"Hi"},{"sender":"ai","message":"Hello, how can I help?"}]}`

func TestReader_InvalidFile(t *testing.T) {
	file := strings.NewReader("invalid file content")

	reader := NewReader(file, newTestLogger())
	ctx := context.Background()
	ch := reader.ReadAll(ctx)

	count := 0
	for record := range ch {
		count++
		if record.Error == nil {
			t.Errorf("expected parse error for invalid JSON, but got none")
		}
	}
	if count != 1 {
		t.Errorf("expected 1 record, got %d", count)
	}
}

func TestReader_ValidFile(t *testing.T) {
	inputFile := validLine + `
  {"request_id":"r-2","messages":[{"sender":"user","text":"Where is my order?"}]}`

	file := strings.NewReader(inputFile)

	ctx := context.Background()
	reader := NewReader(file, newTestLogger())

	ch := reader.ReadAll(ctx)
	var records []InputRecord
	for record := range ch {
		records = append(records, record)
		if record.Error != nil {
			t.Errorf("Error reading the conversation record. Got: %s", record.Error)
		}
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 conversation records. Got: %d", len(records))
	}
	if records[0].ID() != "c-1" {
		t.Errorf("expected id c-1, got %s", records[0].ID())
	}
	if records[1].ID() != "r-2" {
		t.Errorf("expected id r-2, got %s", records[1].ID())
	}
	if records[1].Request.Messages[0].Text != "Where is my order?" {
		t.Errorf("expected text alias to be decoded, got %q", records[1].Request.Messages[0].Text)
	}
}

func TestReader_MissingMessages(t *testing.T) {
	reader := NewReader(strings.NewReader(`{"conversation_id":"c-1"}`), newTestLogger())

	for record := range reader.ReadAll(context.Background()) {
		if record.Error == nil {
			t.Errorf("expected error for record without messages")
		}
	}
}

func TestReader_ContextCancellation(t *testing.T) {
	// Large input with many lines
	var lines []string
	for i := 0; i < 100; i++ {
		lines = append(lines, validLine)
	}
	file := strings.NewReader(strings.Join(lines, "\n"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := NewReader(file, newTestLogger())

	ch := reader.ReadAll(ctx)
	count := 0
	for range ch {
		count++
		if count == 5 {
			cancel() // Cancel after 5 records
			break
		}
	}

	// Should have stopped early
	if count >= 100 {
		t.Errorf("expected early cancellation, but read all records")
	}
}

func TestReader_LineNumbers(t *testing.T) {
	inputFile := validLine + `

{"invalid json}
{"messages":[]}`

	file := strings.NewReader(inputFile)
	reader := NewReader(file, newTestLogger())

	ch := reader.ReadAll(context.Background())
	records := []InputRecord{}
	for record := range ch {
		records = append(records, record)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	// Check line numbers
	if records[0].LineNumber != 1 {
		t.Errorf("first record should be line 1, got %d", records[0].LineNumber)
	}
	if records[1].LineNumber != 3 {
		t.Errorf("error record should be line 3, got %d", records[1].LineNumber)
	}
	if records[2].LineNumber != 4 {
		t.Errorf("third record should be line 4, got %d", records[2].LineNumber)
	}
	if records[2].ID() != "line-4" {
		t.Errorf("anonymous record should be named by line, got %s", records[2].ID())
	}
}
