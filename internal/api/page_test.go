package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/Jen866/cvapp/internal/config"
)

func renderPage(t *testing.T, mode string) (*goquery.Document, string) {
	t.Helper()

	s := newTestServer(t, mode, nil)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("Expected HTML, got %q", ct)
	}

	html := rec.Body.String()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to parse page: %v", err)
	}
	return doc, html
}

// TestIndexPage_MultiMode tests the batch variant of the form
func TestIndexPage_MultiMode(t *testing.T) {
	doc, _ := renderPage(t, config.ModeMulti)

	input := doc.Find("input#cv-input")
	if input.Length() != 1 {
		t.Fatal("Expected one file input")
	}
	if accept, _ := input.Attr("accept"); accept != ".pdf" {
		t.Errorf("Expected accept='.pdf', got %q", accept)
	}
	if _, multiple := input.Attr("multiple"); !multiple {
		t.Error("Multi mode input should accept multiple files")
	}

	if doc.Find("button#submit-btn").Length() != 1 {
		t.Error("Expected the extract button")
	}

	exportBtn := doc.Find("button#export-btn")
	if exportBtn.Length() != 1 {
		t.Fatal("Expected the export button")
	}
	if _, hidden := exportBtn.Attr("hidden"); !hidden {
		t.Error("Export button must start hidden")
	}

	link := doc.Find("a#download-link")
	if href, _ := link.Attr("href"); href != "/export.xlsx" {
		t.Errorf("Expected download link to /export.xlsx, got %q", href)
	}
	if _, hidden := link.Attr("hidden"); !hidden {
		t.Error("Download link must start hidden")
	}
}

// TestIndexPage_SingleMode tests the one-file variant of the form
func TestIndexPage_SingleMode(t *testing.T) {
	doc, html := renderPage(t, config.ModeSingle)

	input := doc.Find("input#cv-input")
	if input.Length() != 1 {
		t.Fatal("Expected one file input")
	}
	if _, multiple := input.Attr("multiple"); multiple {
		t.Error("Single mode input must not accept multiple files")
	}

	// The script must target the single-file endpoint for this mode
	if !strings.Contains(html, `"single"`) {
		t.Error("Expected the page to carry the single mode flag")
	}
	if !strings.Contains(html, "/upload") {
		t.Error("Expected the page to reference /upload")
	}
}

// TestIndexPage_CarriesHeaders tests that the fixed header list reaches the
// renderer script
func TestIndexPage_CarriesHeaders(t *testing.T) {
	_, html := renderPage(t, config.ModeMulti)

	for _, header := range []string{"Full Name", "Years of Experience", "Certifications"} {
		if !strings.Contains(html, header) {
			t.Errorf("Expected page to carry header %q", header)
		}
	}
}

// TestIndexPage_NotFoundElsewhere tests that unknown paths are not swallowed
// by the page handler
func TestIndexPage_NotFoundElsewhere(t *testing.T) {
	s := newTestServer(t, config.ModeMulti, nil)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", rec.Code)
	}
}
