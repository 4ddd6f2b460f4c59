package extract

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Jen866/cvapp/internal/models"
)

// fakeExtractor returns a profile derived from the document name, or fails
// for names containing "bad"
type fakeExtractor struct {
	calls int
}

func (f *fakeExtractor) Extract(_ context.Context, fileName, text string) (models.CandidateProfile, error) {
	f.calls++
	if strings.Contains(fileName, "bad") {
		return models.CandidateProfile{}, fmt.Errorf("unreadable")
	}
	return models.CandidateProfile{
		FileName: fileName,
		FullName: strings.ToUpper(text),
	}, nil
}

// TestProcessDocuments tests batch extraction order and caching
func TestProcessDocuments(t *testing.T) {
	fake := &fakeExtractor{}
	svc := NewService(fake)

	docs := []Document{
		{FileName: "a.pdf", Text: "alpha"},
		{FileName: "b.pdf", Text: "beta"},
	}

	rows, err := svc.ProcessDocuments(context.Background(), docs)
	if err != nil {
		t.Fatalf("ProcessDocuments() failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if fake.calls != 2 {
		t.Errorf("Expected 2 extractor calls, got %d", fake.calls)
	}

	// Rows keep upload order and header width
	if rows[0][0] != "a.pdf" || rows[1][0] != "b.pdf" {
		t.Errorf("Rows out of order: %q, %q", rows[0][0], rows[1][0])
	}
	for i, row := range rows {
		if len(row) != len(models.ResultHeaders) {
			t.Errorf("Row %d has width %d, want %d", i, len(row), len(models.ResultHeaders))
		}
	}

	headers, cached, ok := svc.LastResult()
	if !ok {
		t.Fatal("Expected a cached result after extraction")
	}
	if len(headers) != len(models.ResultHeaders) {
		t.Errorf("Expected %d cached headers, got %d", len(models.ResultHeaders), len(headers))
	}
	if len(cached) != 2 {
		t.Errorf("Expected 2 cached rows, got %d", len(cached))
	}
}

// TestProcessDocuments_Empty tests that an empty batch is rejected
func TestProcessDocuments_Empty(t *testing.T) {
	svc := NewService(&fakeExtractor{})

	if _, err := svc.ProcessDocuments(context.Background(), nil); err == nil {
		t.Error("Expected error for empty batch")
	}
	if _, _, ok := svc.LastResult(); ok {
		t.Error("Expected no cached result before any extraction")
	}
}

// TestProcessDocuments_FailureLeavesCacheUntouched tests that a failed batch
// does not clobber the previous result
func TestProcessDocuments_FailureLeavesCacheUntouched(t *testing.T) {
	svc := NewService(&fakeExtractor{})
	ctx := context.Background()

	if _, err := svc.ProcessDocuments(ctx, []Document{{FileName: "ok.pdf", Text: "x"}}); err != nil {
		t.Fatalf("ProcessDocuments() failed: %v", err)
	}

	if _, err := svc.ProcessDocuments(ctx, []Document{{FileName: "bad.pdf", Text: "y"}}); err == nil {
		t.Fatal("Expected error for failing extractor")
	}

	_, rows, ok := svc.LastResult()
	if !ok || len(rows) != 1 || rows[0][0] != "ok.pdf" {
		t.Errorf("Previous result should survive a failed batch, got ok=%v rows=%v", ok, rows)
	}
}

// TestProcessDocument tests the single-file path and its one-row cache
func TestProcessDocument(t *testing.T) {
	svc := NewService(&fakeExtractor{})

	profile, err := svc.ProcessDocument(context.Background(), Document{FileName: "solo.pdf", Text: "solo"})
	if err != nil {
		t.Fatalf("ProcessDocument() failed: %v", err)
	}
	if profile.FullName != "SOLO" {
		t.Errorf("Expected extractor output, got %q", profile.FullName)
	}

	_, rows, ok := svc.LastResult()
	if !ok || len(rows) != 1 {
		t.Fatalf("Expected one cached row, got ok=%v rows=%d", ok, len(rows))
	}
	if rows[0][0] != "solo.pdf" {
		t.Errorf("Expected cached row for solo.pdf, got %q", rows[0][0])
	}
}

// TestLastResult_ReturnsCopies tests that callers cannot mutate the cache
func TestLastResult_ReturnsCopies(t *testing.T) {
	svc := NewService(&fakeExtractor{})

	if _, err := svc.ProcessDocuments(context.Background(), []Document{{FileName: "a.pdf", Text: "x"}}); err != nil {
		t.Fatalf("ProcessDocuments() failed: %v", err)
	}

	_, rows, _ := svc.LastResult()
	rows[0][0] = "tampered"

	_, again, _ := svc.LastResult()
	if again[0][0] != "a.pdf" {
		t.Errorf("Cache was mutated through a returned copy: %q", again[0][0])
	}
}
