package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/net/http/httpguts"
)

const (
	EnvBaseURL     = "AEGIS_SERVER_URL"
	EnvAPIKey      = "AEGIS_API_KEY"
	EnvUserID      = "AEGIS_USER_ID"
	DefaultBaseURL = "https://api.aegis-os.dev"
)

const (
	headerContentType = "Content-Type"
	headerAPIKey      = "X-API-Key"
	headerUserID      = "X-User-ID"
	contentTypeJSON   = "application/json"
)

const (
	defaultUserAgent   = "aegis-sdk-go/1.0.0"
	defaultHTTPTimeout = 30 * time.Second
)

// Method is the HTTP verb used for an API call. Only the verbs the Aegis
// API actually uses are accepted; anything else is rejected at dispatch.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodDelete Method = http.MethodDelete
)

// Config controls how the client contacts the Aegis OS API.
type Config struct {
	// BaseURL is the API root. Falls back to $AEGIS_SERVER_URL, then
	// DefaultBaseURL.
	BaseURL string
	// APIKey is sent as the X-API-Key header on every request.
	// Falls back to $AEGIS_API_KEY.
	APIKey string
	// UserID is sent as the X-User-ID header on every request.
	// Falls back to $AEGIS_USER_ID.
	UserID string
	// UserAgent overrides the default User-Agent string.
	UserAgent string
	// HTTPTimeout bounds each request end to end. Zero means the default.
	HTTPTimeout time.Duration
	// CACertPath optionally pins the server CA.
	CACertPath string
	// InsecureSkipVerify disables TLS certificate verification. Development
	// only.
	InsecureSkipVerify bool
}

// Client is a thin handle over the Aegis OS HTTP API. Every method issues a
// single request and returns the response body as unparsed text regardless
// of HTTP status; callers inspect the body for application-level outcomes.
// A Client is immutable after construction and safe for concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
}

// New constructs a client from the provided configuration. No network I/O
// takes place; the only failure modes are an unusable base URL or an
// unreadable CA certificate.
func New(cfg Config) (*Client, error) {
	normalized, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}

	httpClient, err := buildHTTPClient(normalized)
	if err != nil {
		return nil, err
	}

	return &Client{
		config:     normalized,
		httpClient: httpClient,
	}, nil
}

func normalizeConfig(cfg Config) (Config, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = strings.TrimSpace(os.Getenv(EnvBaseURL))
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return Config{}, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsedURL.Scheme == "" {
		parsedURL.Scheme = "https"
	}
	if parsedURL.Host == "" {
		return Config{}, fmt.Errorf("base URL must include host")
	}
	scheme := strings.ToLower(parsedURL.Scheme)
	if scheme != "https" && scheme != "http" {
		return Config{}, fmt.Errorf("unsupported base URL scheme: %s", scheme)
	}
	cfg.BaseURL = strings.TrimRight(parsedURL.String(), "/")

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(EnvAPIKey)
	}
	if cfg.UserID == "" {
		cfg.UserID = os.Getenv(EnvUserID)
	}

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if strings.TrimSpace(cfg.CACertPath) != "" {
		if _, err := os.Stat(cfg.CACertPath); err != nil {
			return Config{}, fmt.Errorf("failed to access CA certificate: %w", err)
		}
	}

	return cfg, nil
}

func buildHTTPClient(cfg Config) (*http.Client, error) {
	baseTransport, ok := http.DefaultTransport.(*http.Transport)
	var transport *http.Transport
	if ok {
		transport = baseTransport.Clone()
	} else {
		transport = &http.Transport{}
	}
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
	if strings.TrimSpace(cfg.CACertPath) != "" {
		caBytes, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caBytes) {
			return nil, fmt.Errorf("failed to parse CA certificate")
		}
		tlsConfig.RootCAs = pool
	}
	if cfg.InsecureSkipVerify {
		tlsConfig.InsecureSkipVerify = true
	}
	transport.TLSClientConfig = tlsConfig
	return &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: transport,
	}, nil
}

// BaseURL exposes the normalized API root the client talks to.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Clone returns an independent handle sharing the underlying transport.
func (c *Client) Clone() *Client {
	clone := *c
	return &clone
}

func (c *Client) apiURL(endpoint string) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.config.BaseURL + endpoint
}

// do dispatches a single API call. The payload, when non-nil, is marshaled
// to JSON. The response body is returned verbatim for any HTTP status; the
// Aegis API reports application errors in the body, not the status line.
func (c *Client) do(ctx context.Context, method Method, endpoint string, body any) (string, error) {
	switch method {
	case MethodGet, MethodPost, MethodDelete:
	default:
		return "", fmt.Errorf("unsupported method %q", string(method))
	}

	// Reject header values the transport would refuse before the request
	// is built, so a bad key never reaches the wire in any form.
	if !httpguts.ValidHeaderFieldValue(c.config.APIKey) {
		return "", fmt.Errorf("invalid %s header value", headerAPIKey)
	}
	if !httpguts.ValidHeaderFieldValue(c.config.UserID) {
		return "", fmt.Errorf("invalid %s header value", headerUserID)
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, string(method), c.apiURL(endpoint), reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(headerContentType, contentTypeJSON)
	req.Header.Set(headerAPIKey, c.config.APIKey)
	req.Header.Set(headerUserID, c.config.UserID)
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to contact server: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read server response: %w", err)
	}
	return string(respBody), nil
}
