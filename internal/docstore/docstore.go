package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

// Client talks to the external document store. Documents are referenced by
// opaque URIs (shareable links) recorded in the metadata store.
type Client struct {
	client    *http.Client
	uploadURL string
	timeout   time.Duration
}

// New creates a document store client. uploadURL is the endpoint that
// accepts multipart uploads and returns a shareable link.
func New(uploadURL string, timeout time.Duration) *Client {
	return &Client{
		client:    &http.Client{},
		uploadURL: uploadURL,
		timeout:   timeout,
	}
}

// Download fetches the document behind the URI into dest.
func (c *Client) Download(ctx context.Context, uri, dest string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("document download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("document download returned %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create download target: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write downloaded document: %w", err)
	}
	return nil
}

type uploadResponse struct {
	Link  string `json:"link"`
	Error string `json:"error"`
}

// Upload stores the file under the given name and returns its shareable link.
func (c *Client) Upload(ctx context.Context, path, name string) (string, error) {
	if c.uploadURL == "" {
		return "", fmt.Errorf("document store upload endpoint not configured")
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open upload file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("document upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("document upload returned %d: %s", resp.StatusCode, string(data))
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("document upload error: %s", out.Error)
	}
	return out.Link, nil
}
