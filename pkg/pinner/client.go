// Package pinner stages artifacts on IPFS through a Pinata-compatible
// pinning API.
package pinner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/veridlabs/biomint-middleware/internal/metrics"
	"github.com/veridlabs/biomint-middleware/pkg/config"
)

const (
	pinFileEndpoint = "/pinning/pinFileToIPFS"
	pinJSONEndpoint = "/pinning/pinJSONToIPFS"

	headerAPIKey    = "pinata_api_key"
	headerAPISecret = "pinata_secret_api_key"
)

// StagingError wraps a pin failure with the label of the artifact that
// failed to stage.
type StagingError struct {
	Artifact string
	Err      error
}

func (e *StagingError) Error() string {
	return fmt.Sprintf("failed to stage artifact %q: %v", e.Artifact, e.Err)
}

func (e *StagingError) Unwrap() error {
	return e.Err
}

// Client pins content to IPFS via the Pinata HTTP API. Pins are not retried
// internally; a failed pin aborts the caller's request.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

// NewClient creates a pinning client from configuration.
func NewClient(cfg *config.PinataConfig) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// PinFile uploads content as a multipart file and returns its CID. The name
// doubles as the artifact label on errors.
func (c *Client) PinFile(ctx context.Context, name string, content io.Reader) (string, error) {
	start := time.Now()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", &StagingError{Artifact: name, Err: err}
	}
	if _, err = io.Copy(part, content); err != nil {
		return "", &StagingError{Artifact: name, Err: fmt.Errorf("failed to read content: %w", err)}
	}
	if err = writer.Close(); err != nil {
		return "", &StagingError{Artifact: name, Err: err}
	}

	cid, err := c.pin(ctx, pinFileEndpoint, writer.FormDataContentType(), &body)
	if err != nil {
		return "", &StagingError{Artifact: name, Err: err}
	}

	metrics.PinDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	return cid, nil
}

// PinJSON pins a JSON document and returns its CID.
func (c *Client) PinJSON(ctx context.Context, name string, document any) (string, error) {
	start := time.Now()

	payload, err := json.Marshal(document)
	if err != nil {
		return "", &StagingError{Artifact: name, Err: fmt.Errorf("failed to encode document: %w", err)}
	}

	cid, err := c.pin(ctx, pinJSONEndpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", &StagingError{Artifact: name, Err: err}
	}

	metrics.PinDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	return cid, nil
}

func (c *Client) pin(ctx context.Context, endpoint, contentType string, body io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerAPISecret, c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("pin service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var parsed pinResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode pin response: %w", err)
	}
	if parsed.IpfsHash == "" {
		return "", fmt.Errorf("pin response missing IpfsHash")
	}

	return parsed.IpfsHash, nil
}
