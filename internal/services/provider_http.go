package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/tropicaldog17/zakat/internal/errors"
)

const defaultProviderTimeout = 10 * time.Second

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return &http.Client{Timeout: timeout}
}

// getJSON performs a GET and decodes the body into dest with numbers kept as
// json.Number. Transport errors and non-2xx statuses are classified by
// statusError; undecodable bodies are ErrMalformedResponse.
func getJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.Unavailable(provider, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return apperrors.Unavailable(provider, fmt.Errorf("failed to fetch: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return statusError(provider, resp.StatusCode, fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(dest); err != nil {
		return apperrors.Malformed(provider, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// statusError maps a non-2xx status to an error kind. Client errors other
// than auth, timeout and rate limiting reject this request only, so they are
// ErrUnsupported and leave the provider's breaker alone.
func statusError(provider string, status int, err error) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusRequestTimeout, http.StatusTooManyRequests:
		return apperrors.Unavailable(provider, err)
	}
	if status >= 400 && status < 500 {
		return apperrors.Unsupported(provider, err)
	}
	return apperrors.Unavailable(provider, err)
}

// toDecimal converts a decoded JSON scalar to a decimal.
func toDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case json.Number:
		return decimal.NewFromString(t.String())
	case string:
		return decimal.NewFromString(t)
	case float64:
		return decimal.NewFromFloat(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int64:
		return decimal.NewFromInt(t), nil
	default:
		return decimal.Zero, fmt.Errorf("value is not a number: %T", v)
	}
}
