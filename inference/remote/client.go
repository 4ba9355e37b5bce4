// Package remote - Detection source backed by an HTTP inference service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/nvr-ai/wastewatch/waste"
)

const defaultTimeout = 30 * time.Second

// Client posts images to an inference service and returns its detections.
//
// The service accepts a multipart upload in field "file" at POST <base>/predict and answers
// {"detections":[{"label":"...","confidence":0.9,"bbox":[x,y,w,h]}]}.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

var _ waste.Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. The client is used as given and never modified.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithTimeout sets the per-request timeout. Zero or less disables it.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.timeout = d
	}
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type detection struct {
	Label      string     `json:"label"`
	Confidence float64    `json:"confidence"`
	BBox       waste.BBox `json:"bbox"`
}

// withTimeout bounds ctx by the client's per-request timeout.
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// Detect uploads img as JPEG and decodes the service response.
func (c *Client) Detect(ctx context.Context, img image.Image) ([]waste.RawDetection, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "image.jpg")
	if err != nil {
		return nil, errors.Wrap(err, "create form file")
	}
	if err := imaging.Encode(part, img, imaging.JPEG, imaging.JPEGQuality(95)); err != nil {
		return nil, errors.Wrap(err, "encode image")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "close multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", body)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Errorf("inference failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var result struct {
		Detections []detection `json:"detections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "decode response")
	}

	out := make([]waste.RawDetection, 0, len(result.Detections))
	for _, d := range result.Detections {
		out = append(out, waste.RawDetection{Label: d.Label, Confidence: d.Confidence, Box: d.BBox})
	}
	return out, nil
}

// CheckHealth checks that the service is reachable.
func (c *Client) CheckHealth(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("inference service unhealthy: %d", resp.StatusCode)
	}
	return nil
}

// Close drops idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
