package docstore

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

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("document bytes"))
	}))
	defer srv.Close()

	c := New("", time.Minute)
	dest := filepath.Join(t.TempDir(), "doc.pdf")
	if err := c.Download(context.Background(), srv.URL+"/remote.php/doc.pdf", dest); err != nil {
		t.Fatalf("Download: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != "document bytes" {
		t.Errorf("downloaded content = %q", data)
	}
}

func TestDownloadNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := New("", time.Minute)
	dest := filepath.Join(t.TempDir(), "doc.pdf")
	err := c.Download(context.Background(), srv.URL+"/missing.pdf", dest)
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("err = %v, want status code in error", err)
	}
}

func TestUpload(t *testing.T) {
	var gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotName = header.Filename
		json.NewEncoder(w).Encode(map[string]string{"link": "/remote.php/solutions/hw1.pdf"})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "hw1.pdf")
	if err := os.WriteFile(path, []byte("%PDF"), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	c := New(srv.URL, time.Minute)
	link, err := c.Upload(context.Background(), path, "hw1.pdf")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if link != "/remote.php/solutions/hw1.pdf" {
		t.Errorf("link = %q", link)
	}
	if gotName != "hw1.pdf" {
		t.Errorf("uploaded filename = %q", gotName)
	}
}

func TestUploadWithoutEndpoint(t *testing.T) {
	c := New("", time.Minute)
	if _, err := c.Upload(context.Background(), "/tmp/x.pdf", "x.pdf"); err == nil {
		t.Error("expected error without a configured upload endpoint")
	}
}

func TestUploadServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"error": "quota exceeded"})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "hw1.pdf")
	if err := os.WriteFile(path, []byte("%PDF"), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	c := New(srv.URL, time.Minute)
	_, err := c.Upload(context.Background(), path, "hw1.pdf")
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("err = %v, want service error surfaced", err)
	}
}
