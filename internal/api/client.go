package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pdf-chat/internal/logger"
)

const (
	logModule = "api"

	jsonContentType = "application/json"
	pdfContentType  = "application/pdf"

	// Fallback messages when the backend gives no "error" field
	uploadFailed = "Upload failed"
	askFailed    = "Ask failed"
)

// Client handles communication with the PDF question-answering backend
type Client struct {
	baseURL       string
	httpClient    *http.Client
	healthTimeout time.Duration
	log           logger.Logger
}

// NewClient creates a new backend client. A zero timeout disables the
// per-request deadline.
func NewClient(baseURL string, timeout, healthTimeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		healthTimeout: healthTimeout,
		log:           log,
	}
}

// BaseURL returns the backend address the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Upload sends the given PDF files as a multipart form and returns the
// session identifier issued by the backend.
func (c *Client) Upload(ctx context.Context, paths []string) (string, error) {
	body, contentType, err := buildUploadForm(paths)
	if err != nil {
		return "", err
	}

	var uploadResp UploadResponse
	if err := c.post(ctx, "/upload", contentType, body, &uploadResp, uploadFailed); err != nil {
		return "", err
	}

	if uploadResp.SessionID == "" {
		return "", errors.New("upload response did not include a session_id")
	}
	return uploadResp.SessionID, nil
}

// Ask submits a question scoped to the given session
func (c *Client) Ask(ctx context.Context, sessionID, question string) (*AskResponse, error) {
	jsonData, err := json.Marshal(AskRequest{SessionID: sessionID, Question: question})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var askResp AskResponse
	if err := c.post(ctx, "/ask", jsonContentType, bytes.NewReader(jsonData), &askResp, askFailed); err != nil {
		return nil, err
	}
	return &askResp, nil
}

// Reset clears the server-side history of the session. Only transport
// failures are reported; the response status is logged but not checked.
func (c *Client) Reset(ctx context.Context, sessionID string) error {
	jsonData, err := json.Marshal(ResetRequest{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/reset", jsonContentType, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		c.log.Warn(logModule, "reset returned non-success status", map[string]interface{}{
			"status": statusText(resp.StatusCode),
		})
	}
	return nil
}

// HealthCheck verifies that the backend is reachable
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, "/health", "", nil)
	if err != nil {
		return fmt.Errorf("backend is unreachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("failed to parse health response: %w", err)
	}
	if health.Status != "ok" {
		return fmt.Errorf("backend reported status %q", health.Status)
	}
	return nil
}

// post sends a request and decodes a successful JSON body into out.
// Non-success responses become *Error.
func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader, out interface{}, fallback string) error {
	resp, err := c.do(ctx, http.MethodPost, path, contentType, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(resp.StatusCode, data, fallback)
		c.log.Warn(logModule, "backend returned an error", map[string]interface{}{
			"path":    path,
			"status":  statusText(resp.StatusCode),
			"message": apiErr.Message,
		})
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// do executes a request against the backend, tagging it with a request id
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", jsonContentType)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error(logModule, "request failed", map[string]interface{}{
			"method":     method,
			"path":       path,
			"request_id": requestID,
			"error":      err,
		})
		return nil, fmt.Errorf("request failed: %w", err)
	}

	c.log.Debug(logModule, "request completed", map[string]interface{}{
		"method":      method,
		"path":        path,
		"request_id":  requestID,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return resp, nil
}

// buildUploadForm writes every file into a multipart body under the
// repeatable "files" field.
func buildUploadForm(paths []string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, path := range paths {
		if err := addFilePart(w, path); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func addFilePart(w *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, filepath.Base(path)))
	h.Set("Content-Type", pdfContentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create form part for %s: %w", path, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}
