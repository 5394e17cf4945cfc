package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestExtract(t *testing.T) {
	var gotFilename string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		json.NewEncoder(w).Encode(map[string]string{"text": "extracted text"})
	}))
	defer srv.Close()

	e := NewHTTPExtractor(srv.URL, time.Minute)
	text, err := e.Extract(context.Background(), writeTempFile(t, "scan.pdf", "%PDF"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "extracted text" {
		t.Errorf("text = %q", text)
	}
	if gotFilename != "scan.pdf" {
		t.Errorf("uploaded filename = %q", gotFilename)
	}
}

func TestExtractServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"error": "unreadable scan"})
	}))
	defer srv.Close()

	e := NewHTTPExtractor(srv.URL, time.Minute)
	_, err := e.Extract(context.Background(), writeTempFile(t, "scan.pdf", "%PDF"))
	if err == nil || !strings.Contains(err.Error(), "unreadable scan") {
		t.Errorf("err = %v, want service error surfaced", err)
	}
}

func TestExtractHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := NewHTTPExtractor(srv.URL, time.Minute)
	_, err := e.Extract(context.Background(), writeTempFile(t, "scan.pdf", "%PDF"))
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Errorf("err = %v, want status code in error", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	e := NewHTTPExtractor("http://127.0.0.1:0", time.Minute)
	if _, err := e.Extract(context.Background(), "/no/such/file.pdf"); err == nil {
		t.Error("expected error for missing file")
	}
}
