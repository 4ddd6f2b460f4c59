package extract

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/Jen866/cvapp/internal/models"
)

// Document is one CV ready for field extraction
type Document struct {
	FileName string
	Text     string
}

// Service runs the extractor over uploaded documents and keeps the last
// result in memory. Results are replaced wholesale on each new extraction;
// nothing is persisted.
type Service struct {
	extractor Extractor

	mu      sync.RWMutex
	headers []string
	rows    [][]string
}

// NewService creates a new extraction service
func NewService(extractor Extractor) *Service {
	return &Service{
		extractor: extractor,
	}
}

// ProcessDocuments extracts a profile from every document, in input order.
// The combined table replaces the previously cached result.
func (s *Service) ProcessDocuments(ctx context.Context, documents []Document) ([][]string, error) {
	if len(documents) == 0 {
		return nil, fmt.Errorf("no documents to process")
	}

	rows := make([][]string, 0, len(documents))
	for i, doc := range documents {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		log.Printf("Extracting %d/%d: %s", i+1, len(documents), doc.FileName)

		profile, err := s.extractor.Extract(ctx, doc.FileName, doc.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", doc.FileName, err)
		}

		rows = append(rows, profile.Row())
	}

	s.mu.Lock()
	s.headers = append([]string(nil), models.ResultHeaders...)
	s.rows = rows
	s.mu.Unlock()

	return rows, nil
}

// ProcessDocument extracts a single profile and caches it as a one-row table
func (s *Service) ProcessDocument(ctx context.Context, doc Document) (models.CandidateProfile, error) {
	profile, err := s.extractor.Extract(ctx, doc.FileName, doc.Text)
	if err != nil {
		return models.CandidateProfile{}, fmt.Errorf("failed to extract %s: %w", doc.FileName, err)
	}

	s.mu.Lock()
	s.headers = append([]string(nil), models.ResultHeaders...)
	s.rows = [][]string{profile.Row()}
	s.mu.Unlock()

	return profile, nil
}

// LastResult returns a copy of the most recent extraction table. ok is false
// before any extraction has succeeded in this process.
func (s *Service) LastResult() (headers []string, rows [][]string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.rows) == 0 {
		return nil, nil, false
	}

	headers = append([]string(nil), s.headers...)
	rows = make([][]string, len(s.rows))
	for i, row := range s.rows {
		rows[i] = append([]string(nil), row...)
	}

	return headers, rows, true
}
