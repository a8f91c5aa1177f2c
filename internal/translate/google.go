package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/sweep/internal/common"
)

const defaultGoogleEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleConfig configures the Google translation client.
type GoogleConfig struct {
	Endpoint string
	Source   string
	Timeout  time.Duration
}

// GoogleClient implements Translator against the public Google Translate
// endpoint used by browser extensions.
type GoogleClient struct {
	httpClient *http.Client
	endpoint   string
	source     string
}

// NewGoogleClient creates a new Google translation client.
func NewGoogleClient(cfg GoogleConfig) *GoogleClient {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultGoogleEndpoint
	}

	source := cfg.Source
	if source == "" {
		source = "auto"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &GoogleClient{
		endpoint: endpoint,
		source:   source,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Translate sends text to the service and returns the translation.
func (c *GoogleClient) Translate(ctx context.Context, text, targetLang string) (Result, error) {
	if targetLang == "" {
		targetLang = DefaultTargetLanguage
	}

	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", c.source)
	params.Set("tl", targetLang)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, &common.RetryableError{Err: fmt.Errorf("request failed: %w", err), Retryable: true}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return Result{}, fmt.Errorf("translate API (status %d): %w", resp.StatusCode, common.ErrRateLimit)
	case resp.StatusCode >= http.StatusInternalServerError:
		return Result{}, &common.RetryableError{
			Err:       fmt.Errorf("translate API error (status %d): %s", resp.StatusCode, string(body)),
			Retryable: true,
		}
	case resp.StatusCode != http.StatusOK:
		return Result{}, &common.RetryableError{
			Err:       fmt.Errorf("translate API error (status %d): %s", resp.StatusCode, string(body)),
			Retryable: false,
		}
	}

	translated, err := parseGoogleResponse(body)
	if err != nil {
		return Result{}, &common.RetryableError{Err: err, Retryable: false}
	}

	return Result{Original: text, Translated: translated}, nil
}

// parseGoogleResponse extracts the translated text from the nested-array
// payload: [[["translated","original",...], ...], ...].
func parseGoogleResponse(body []byte) (string, error) {
	var payload []any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if len(payload) == 0 {
		return "", ErrUnexpectedResponse
	}

	segments, ok := payload[0].([]any)
	if !ok {
		return "", ErrUnexpectedResponse
	}

	var b strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			return "", ErrUnexpectedResponse
		}
		text, ok := parts[0].(string)
		if !ok {
			return "", ErrUnexpectedResponse
		}
		b.WriteString(text)
	}

	translated := strings.TrimSpace(b.String())
	if translated == "" {
		return "", ErrEmptyTranslation
	}
	return translated, nil
}
