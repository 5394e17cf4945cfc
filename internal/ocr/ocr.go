package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Extractor produces page-ordered plain text from a document or image file.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// HTTPExtractor calls an external OCR service over HTTP. The service accepts
// a multipart upload and responds with {"text": "..."}.
type HTTPExtractor struct {
	client   *http.Client
	endpoint string
	timeout  time.Duration
}

// NewHTTPExtractor creates an OCR client for the given endpoint.
func NewHTTPExtractor(endpoint string, timeout time.Duration) *HTTPExtractor {
	return &HTTPExtractor{
		client:   &http.Client{},
		endpoint: endpoint,
		timeout:  timeout,
	}
}

type extractResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

// Extract uploads the file to the OCR service and returns the extracted text.
func (e *HTTPExtractor) Extract(ctx context.Context, path string) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for OCR: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("build OCR request: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("build OCR request: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("build OCR request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("build OCR request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR service call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("OCR service returned %d: %s", resp.StatusCode, string(data))
	}

	var out extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode OCR response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("OCR service error: %s", out.Error)
	}
	return out.Text, nil
}
