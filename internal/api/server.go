package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Jen866/cvapp/internal/config"
	"github.com/Jen866/cvapp/internal/export"
	"github.com/Jen866/cvapp/internal/extract"
	"github.com/Jen866/cvapp/internal/ingestion"
	"github.com/Jen866/cvapp/internal/models"
)

const maxUploadBytes = 32 << 20 // 32 MB

// Exporter appends extraction rows to a spreadsheet and returns its URL
type Exporter interface {
	Export(ctx context.Context, rows [][]string) (string, error)
}

// Server handles HTTP requests
type Server struct {
	cfg      *config.Config
	service  *extract.Service
	files    *ingestion.FileHandler
	exporter Exporter

	// extractText converts PDF bytes to plain text; swapped out in tests
	extractText func(data []byte) (string, error)
}

// NewServer creates a new API server. exporter may be nil when no spreadsheet
// is configured; the export endpoint then reports a configuration error.
func NewServer(cfg *config.Config, service *extract.Service, files *ingestion.FileHandler, exporter Exporter) *Server {
	return &Server{
		cfg:         cfg,
		service:     service,
		files:       files,
		exporter:    exporter,
		extractText: ingestion.ExtractText,
	}
}

// Router returns the HTTP router
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("POST /export", s.handleExport)
	mux.HandleFunc("GET /export.xlsx", s.handleExportXLSX)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return s.loggingMiddleware(mux)
}

// handleIndex serves the upload page for the configured mode
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Mode:     s.cfg.Mode,
		Multi:    s.cfg.Mode == config.ModeMulti,
		MaxFiles: s.cfg.MaxFiles,
		Headers:  models.ResultHeaders,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Printf("Failed to render page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// handleHealth provides a health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// handleUpload processes a single-CV extraction and responds with the
// field-name to value map
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to parse form: %v", err))
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		s.respondError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	if len(files) > 1 {
		s.respondError(w, http.StatusBadRequest, "exactly one file is expected")
		return
	}

	doc, err := s.readDocument(files[0])
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := s.service.ProcessDocument(r.Context(), doc)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, profile.OrderedFields())
}

// handleExtract processes a batch of CVs and responds with one row per file
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to parse form: %v", err))
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		s.respondError(w, http.StatusBadRequest, "no files uploaded")
		return
	}
	if len(files) > s.cfg.MaxFiles {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("at most %d files are allowed", s.cfg.MaxFiles))
		return
	}

	documents := make([]extract.Document, 0, len(files))
	for _, fileHeader := range files {
		doc, err := s.readDocument(fileHeader)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		documents = append(documents, doc)
	}

	rows, err := s.service.ProcessDocuments(r.Context(), documents)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, models.ExtractResponse{Rows: rows})
}

// readDocument validates one uploaded file and extracts its text. A copy of
// the raw upload is kept in the uploads directory.
func (s *Server) readDocument(fileHeader *multipart.FileHeader) (extract.Document, error) {
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".pdf" {
		return extract.Document{}, fmt.Errorf("unsupported file type %q: only PDF files are accepted", ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return extract.Document{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return extract.Document{}, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	if !ingestion.IsPDF(data) {
		return extract.Document{}, fmt.Errorf("%s is not a valid PDF file", fileHeader.Filename)
	}

	if _, err := s.files.SaveUploadedFile(fileHeader.Filename, bytes.NewReader(data)); err != nil {
		// The stored copy is auxiliary; extraction proceeds without it
		log.Printf("Failed to save upload %s: %v", fileHeader.Filename, err)
	}

	text, err := s.extractText(data)
	if err != nil {
		return extract.Document{}, fmt.Errorf("failed to extract text from %s: %w", fileHeader.Filename, err)
	}

	return extract.Document{
		FileName: fileHeader.Filename,
		Text:     text,
	}, nil
}

// handleExport appends the posted rows to the configured spreadsheet and
// responds with its URL
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		s.respondError(w, http.StatusInternalServerError, "Server configuration error. Check logs.")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	rows, err := normalizeExportPayload(body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid or empty data.")
		return
	}

	sheetURL, err := s.exporter.Export(r.Context(), rows)
	if err != nil {
		log.Printf("Sheet export failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Export process failed: %v", err))
		return
	}

	s.respondJSON(w, http.StatusOK, models.ExportResponse{SheetURL: sheetURL})
}

// normalizeExportPayload accepts either the {headers, rows} shape or a bare
// field map (the single-file page caches the map it rendered) and returns the
// spreadsheet rows to append
func normalizeExportPayload(body []byte) ([][]string, error) {
	var req models.ExportRequest
	if err := json.Unmarshal(body, &req); err == nil && len(req.Rows) > 0 {
		for _, row := range req.Rows {
			if len(row) == 0 {
				return nil, fmt.Errorf("empty row in export payload")
			}
		}
		return req.Rows, nil
	}

	var fields map[string]string
	if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
		// One candidate: align the map to the fixed header order
		row := make([]string, len(models.ResultHeaders))
		for i, h := range models.ResultHeaders {
			row[i] = fields[h]
		}
		return [][]string{row}, nil
	}

	return nil, fmt.Errorf("export payload is not rows or a field map")
}

// handleExportXLSX serves the last extraction result as an XLSX download
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	headers, rows, ok := s.service.LastResult()
	if !ok {
		s.respondError(w, http.StatusNotFound, "no extraction result available yet")
		return
	}

	data, err := export.ExcelBytes(headers, rows)
	if err != nil {
		log.Printf("XLSX export failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to build workbook")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="candidates.xlsx"`)
	w.Write(data)
}

// respondJSON sends a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}

// respondError sends an error response
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
