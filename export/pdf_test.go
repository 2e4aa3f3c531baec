package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"wallestreet/research"
)

func TestDefaultPDFName(t *testing.T) {
	name := DefaultPDFName(time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC))
	if name != "research-results-2025-03-14.pdf" {
		t.Errorf("DefaultPDFName = %q", name)
	}
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")

	if err := WritePDF(sampleBundle(), path); err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PDF file is empty")
	}
}

func TestWritePDFManyResponses(t *testing.T) {
	// Enough responses to force pagination past the first page.
	bundle := &research.ResultBundle{
		Query:       "analyze AAPL MSFT GOOGL TSLA NVDA",
		GeneratedAt: time.Now(),
	}
	for i := 0; i < 40; i++ {
		bundle.Responses = append(bundle.Responses, research.Response{
			Agent:   fmt.Sprintf("Agent %d", i),
			Content: "TICK: BULLISH - a reasoning string long enough to wrap across several rendered lines when split against the page width used by the writer",
			Points:  []string{"Signal: BULLISH", "Confidence: 50%"},
		})
	}

	path := filepath.Join(t.TempDir(), "long.pdf")
	if err := WritePDF(bundle, path); err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PDF file is empty")
	}
}
