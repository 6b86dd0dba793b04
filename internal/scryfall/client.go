package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/vmaia/cardswipe/internal/logger"
)

const (
	// Scryfall asks clients to keep 50-100ms between requests.
	rateLimitDelay = 100 * time.Millisecond
	userAgent      = "cardswipe/1.0"
)

// ErrNoMatch is returned when the random-card endpoint finds no card for
// the given filter (Scryfall answers 404).
var ErrNoMatch = errors.New("scryfall: no card matches the filter")

// Client talks to the Scryfall API with rate limiting and bounded timeouts.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logger.Logger
}

// New creates a Scryfall client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		log:        logger.Default().WithPrefix("scryfall"),
	}
}

// RandomCard fetches one uniformly random booster-legal card, optionally
// constrained to a set code.
func (c *Client) RandomCard(ctx context.Context, setCode string) (*Card, error) {
	q := "is:booster"
	if setCode != "" {
		q += " e:" + setCode
	}
	reqURL := fmt.Sprintf("%s/cards/random?q=%s", c.baseURL, url.QueryEscape(q))

	var card Card
	if err := c.get(ctx, reqURL, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// Sets fetches the full set catalog.
func (c *Client) Sets(ctx context.Context) ([]Set, error) {
	var out setList
	if err := c.get(ctx, c.baseURL+"/sets", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) get(ctx context.Context, reqURL string, result any) error {
	log := logger.FromContext(ctx).WithPrefix("scryfall")

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	log.Debug("fetching: %s", reqURL)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			log.Error("failed to decode response: %v", err)
			return err
		}
		return nil
	case http.StatusNotFound:
		return ErrNoMatch
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return fmt.Errorf("scryfall status %d: %s", resp.StatusCode, string(body))
	}
}
