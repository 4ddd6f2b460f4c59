package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileHandler(t *testing.T) {
	fh := NewFileHandler("test_uploads")
	if fh == nil {
		t.Fatal("Expected non-nil FileHandler")
	}

	if fh.uploadsDir != "test_uploads" {
		t.Errorf("Expected uploadsDir 'test_uploads', got '%s'", fh.uploadsDir)
	}
}

func TestSaveUploadedFile(t *testing.T) {
	tmpDir := t.TempDir()
	fh := NewFileHandler(tmpDir)

	content := strings.NewReader("Test CV content")
	path, err := fh.SaveUploadedFile("test_cv.pdf", content)
	if err != nil {
		t.Fatalf("Failed to save file: %v", err)
	}

	if filepath.Dir(path) != tmpDir {
		t.Errorf("Expected file under %s, got %s", tmpDir, path)
	}
	if !strings.HasSuffix(path, "_test_cv.pdf") {
		t.Errorf("Expected stored name to keep the original filename, got %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "Test CV content" {
		t.Errorf("Expected content 'Test CV content', got '%s'", string(data))
	}
}

// TestSaveUploadedFile_UniqueNames tests that two uploads with the same
// filename never overwrite each other
func TestSaveUploadedFile_UniqueNames(t *testing.T) {
	tmpDir := t.TempDir()
	fh := NewFileHandler(tmpDir)

	first, err := fh.SaveUploadedFile("cv.pdf", strings.NewReader("first"))
	if err != nil {
		t.Fatalf("Failed to save first file: %v", err)
	}

	second, err := fh.SaveUploadedFile("cv.pdf", strings.NewReader("second"))
	if err != nil {
		t.Fatalf("Failed to save second file: %v", err)
	}

	if first == second {
		t.Fatalf("Expected distinct paths, both were %s", first)
	}

	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("Failed to read first file: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("First upload was overwritten: %q", string(data))
	}
}

// TestSaveUploadedFile_StripsDirectories tests that client-supplied paths
// cannot escape the uploads directory
func TestSaveUploadedFile_StripsDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	fh := NewFileHandler(tmpDir)

	path, err := fh.SaveUploadedFile("../../etc/cv.pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Failed to save file: %v", err)
	}

	if filepath.Dir(path) != tmpDir {
		t.Errorf("Expected file under %s, got %s", tmpDir, path)
	}
}

func TestClearUploads(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "uploads")
	os.MkdirAll(tmpDir, 0755)
	os.WriteFile(filepath.Join(tmpDir, "test.pdf"), []byte("test"), 0644)

	fh := NewFileHandler(tmpDir)
	if err := fh.ClearUploads(); err != nil {
		t.Fatalf("Failed to clear uploads: %v", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read directory: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty directory, got %d entries", len(entries))
	}
}
