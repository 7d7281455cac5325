// Package http implements the evaluation client against the backend's REST API.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/grantview"
)

// Compile-time interface verification.
var _ grantview.EvaluationService = (*Client)(nil)

// maxErrorBody bounds how much of an error response is read for its detail.
const maxErrorBody = 64 << 10

// Client talks to the evaluation backend. Every method is a single request;
// nothing is retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the backend at baseURL, such as
// "http://localhost:8000".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("backend URL %q must be an absolute http(s) URL", baseURL)
	}

	c := &Client{
		baseURL:    u.String(),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// Health is the backend's health check response.
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	MongoDB string `json:"mongodb"`
}

// Ping calls the backend's health check.
func (c *Client) Ping(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, "ping", http.MethodGet, "/", nil, "", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Submit uploads the document as the multipart field "file" and returns the
// new evaluation's id.
func (c *Client) Submit(ctx context.Context, doc grantview.Document) (string, error) {
	if !doc.Allowed() {
		return "", fmt.Errorf("submit %s: %w", doc.Name, grantview.ErrUnsupportedFileType)
	}

	body, contentType, err := multipartBody(doc)
	if err != nil {
		return "", fmt.Errorf("submit %s: %w", doc.Name, err)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, "submit", http.MethodPost, "/api/evaluations", body, contentType, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", errors.New("submit: backend response has no id")
	}
	return created.ID, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func multipartBody(doc grantview.Document) (*bytes.Buffer, string, error) {
	f, err := os.Open(doc.Path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(doc.Name)))
	h.Set("Content-Type", doc.MIMEType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf, mw.FormDataContentType(), nil
}

// FetchEvaluation returns the evaluation with the given id. A missing record
// or a malformed id yields an error matching grantview.ErrNotFound.
func (c *Client) FetchEvaluation(ctx context.Context, id string) (*grantview.Evaluation, error) {
	if id == "" {
		return nil, fmt.Errorf("fetch evaluation: empty id: %w", grantview.ErrNotFound)
	}
	var e grantview.Evaluation
	if err := c.do(ctx, "fetch evaluation", http.MethodGet, evaluationPath(id), nil, "", &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEvaluations returns all evaluations, newest first.
func (c *Client) ListEvaluations(ctx context.Context) ([]grantview.Evaluation, error) {
	var list []grantview.Evaluation
	if err := c.do(ctx, "list evaluations", http.MethodGet, "/api/evaluations", nil, "", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// FetchSettings returns the backend's settings. The backend reports defaults
// when none have been saved.
func (c *Client) FetchSettings(ctx context.Context) (*grantview.Settings, error) {
	var s grantview.Settings
	if err := c.do(ctx, "fetch settings", http.MethodGet, "/api/settings", nil, "", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSettings sends the fields present in patch and returns the stored settings.
// Invalid patches are rejected without a request.
func (c *Client) SaveSettings(ctx context.Context, patch grantview.SettingsPatch) (*grantview.Settings, error) {
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	data, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	var s grantview.Settings
	if err := c.do(ctx, "save settings", http.MethodPut, "/api/settings", bytes.NewReader(data), "application/json", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ReportURL returns where the report for id can be downloaded. It makes no request.
func (c *Client) ReportURL(_ context.Context, id string) (string, error) {
	if id == "" {
		return "", errors.New("report url: empty id")
	}
	return c.baseURL + evaluationPath(id) + "/download", nil
}

// DownloadReport streams the report for id into w and returns the file name
// from the Content-Disposition header.
func (c *Client) DownloadReport(ctx context.Context, id string, w io.Writer) (string, error) {
	const op = "download report"
	if id == "" {
		return "", fmt.Errorf("%s: empty id: %w", op, grantview.ErrNotFound)
	}

	resp, err := c.send(ctx, op, http.MethodGet, evaluationPath(id)+"/download", nil, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return reportFilename(resp.Header.Get("Content-Disposition"), id), nil
}

func reportFilename(disposition, id string) string {
	if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
		return params["filename"]
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return "grant_evaluation_" + id + ".pdf"
}

func evaluationPath(id string) string {
	return "/api/evaluations/" + url.PathEscape(id)
}

// do sends a request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	resp, err := c.send(ctx, op, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// send performs the request and converts non-2xx responses into errors.
// The caller closes the body of a successful response.
func (c *Client) send(ctx context.Context, op, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		resp, err := c.roundTrip(ctx, op, method, path, body, contentType)
		if err != nil {
			cancel()
			return nil, err
		}
		resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
		return resp, nil
	}
	return c.roundTrip(ctx, op, method, path, body, contentType)
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("backend request failed",
			slog.String("op", op),
			slog.String("method", method),
			slog.String("path", path),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.logger.Debug("backend request",
		slog.String("op", op),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, responseError(op, resp)
	}
	return resp, nil
}

// responseError converts an error response into a RequestError. Lookups that
// find nothing, including malformed ids, also match grantview.ErrNotFound.
func responseError(op string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	reqErr := &grantview.RequestError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Detail:     errorDetail(data),
	}

	notFound := resp.StatusCode == http.StatusNotFound ||
		(resp.StatusCode == http.StatusBadRequest && resp.Request != nil && resp.Request.Method == http.MethodGet)
	if notFound {
		return fmt.Errorf("%w: %w", grantview.ErrNotFound, reqErr)
	}
	return reqErr
}

// errorDetail extracts the "detail" field of an error body. Validation errors
// carry a list there, which is kept as raw JSON.
func errorDetail(data []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return strings.TrimSpace(string(data))
	}
	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}
	return string(body.Detail)
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
