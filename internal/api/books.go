package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"libshelf/internal/borrow"

	"github.com/google/uuid"
)

type bookListEnvelope struct {
	Status string `json:"status"`
	Data   struct {
		Books []*borrow.Book `json:"books"`
	} `json:"data"`
}

// ListBooks fetches the catalog, optionally filtered by a search query.
// Rack lookup rides on the returned Book.Rack field.
func (c *Client) ListBooks(ctx context.Context, query string) ([]*borrow.Book, error) {
	path := "/books"
	if query != "" {
		path += "?search=" + url.QueryEscape(query)
	}
	var env bookListEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data.Books, nil
}

// UploadResource posts a digital resource (notes, scanned material) as
// multipart form data and returns the server-assigned resource ID.
func (c *Client) UploadResource(ctx context.Context, title, path string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("title is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open resource: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("title", title); err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("failed to read resource: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/digital-resources", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return "", newError(resp.StatusCode, data)
	}

	var env struct {
		Data struct {
			Resource struct {
				ID string `json:"id"`
			} `json:"resource"`
		} `json:"data"`
	}
	if err := unmarshalJSON(data, &env); err != nil {
		return "", err
	}
	return env.Data.Resource.ID, nil
}
