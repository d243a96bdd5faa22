package torn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://api.torn.com"

type Client struct {
	apiKey       string
	baseURL      string
	cacheTTL     time.Duration
	client       *http.Client
	itemsCache   *cachedItems
	cacheMutex   sync.Mutex
	apiCallCount int64
	apiCallMutex sync.Mutex
}

type Item struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	BuyPrice    int64   `json:"buy_price"`
	SellPrice   int64   `json:"sell_price"`
	MarketValue float64 `json:"market_value"`
	Circulation int64   `json:"circulation"`
	Tradeable   bool    `json:"tradeable"`
}

type ItemsResponse struct {
	Items map[string]Item `json:"items"`
	Error *APIError       `json:"error,omitempty"`
}

// APIError is the error object Torn returns with a 200 status.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("torn api error %d: %s", e.Code, e.Message)
}

// Transient reports whether the same request may succeed later: unknown,
// rate-limit, IP block, API disabled, key change/read, daily limit,
// temporary and backend errors. Key and request problems are permanent.
func (e *APIError) Transient() bool {
	switch e.Code {
	case 0, 5, 8, 9, 11, 12, 14, 15, 17:
		return true
	default:
		return false
	}
}

type cachedItems struct {
	items     map[string]Item
	timestamp time.Time
}

type Option func(*Client)

// WithBaseURL points the client at a different API host.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithCacheTTL sets how long the full item list is reused. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cacheTTL = ttl }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		baseURL:  DefaultBaseURL,
		cacheTTL: time.Hour,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IncrementAPICall safely increments the API call counter
func (c *Client) IncrementAPICall() {
	c.apiCallMutex.Lock()
	c.apiCallCount++
	c.apiCallMutex.Unlock()
}

// GetAPICallCount returns the current API call count
func (c *Client) GetAPICallCount() int64 {
	c.apiCallMutex.Lock()
	defer c.apiCallMutex.Unlock()
	return c.apiCallCount
}

// GetItems returns every item keyed by Torn item ID.
func (c *Client) GetItems(ctx context.Context) (map[string]Item, error) {
	c.cacheMutex.Lock()
	cached := c.itemsCache
	c.cacheMutex.Unlock()
	if cached != nil && c.cacheTTL > 0 && time.Since(cached.timestamp) < c.cacheTTL {
		log.Debug().Int("items", len(cached.items)).Msg("Using cached Torn items")
		return cached.items, nil
	}

	url := fmt.Sprintf("%s/torn/?selections=items&key=%s", c.baseURL, c.apiKey)
	result, err := c.fetchItems(ctx, url)
	if err != nil {
		return nil, err
	}

	c.cacheMutex.Lock()
	c.itemsCache = &cachedItems{items: result.Items, timestamp: time.Now()}
	c.cacheMutex.Unlock()

	log.Debug().
		Int("items", len(result.Items)).
		Int64("api_calls", c.GetAPICallCount()).
		Msg("Fetched Torn items")
	return result.Items, nil
}

func (c *Client) fetchItems(ctx context.Context, url string) (*ItemsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Increment API call counter
	c.IncrementAPICall()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result ItemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &result, nil
}
