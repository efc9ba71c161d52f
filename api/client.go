// Package api implements the typed HTTP client for currencyapi.com.
// Every operation builds a URL from the fixed v3 base, issues a single
// GET and decodes the JSON body into a generic Response. Nothing is
// retried, cached or validated locally, the remote service is the sole
// validator of argument values.
package api

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/malusev998/currencyapi"
)

const defaultUserAgent = "currencyapi-go/1.0"

type (
	// Config controls client construction. Only APIKey is required,
	// URL and Client exist so tests can point the client at a local
	// server.
	Config struct {
		APIKey    string
		UserAgent string
		URL       string
		Client    *http.Client
	}

	// settings is created once at construction and never mutated, it
	// is shared read-only by every request.
	settings struct {
		apiKey    string
		userAgent string
		baseURL   string
	}

	// Client is safe for concurrent use, the underlying http.Client
	// handles connection pooling across simultaneous calls.
	Client struct {
		client   *http.Client
		settings *settings
	}

	param struct {
		key   string
		value string
	}
)

// New creates a client for the given API key with default settings.
func New(apiKey string) (*Client, error) {
	return NewClient(Config{APIKey: apiKey})
}

func NewClient(config Config) (*Client, error) {
	if config.APIKey == "" {
		return nil, ErrClientConstruction
	}

	userAgent := config.UserAgent

	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	baseURL := config.URL

	if baseURL == "" {
		baseURL = BaseURL
	}

	client := config.Client

	if client == nil {
		client = &http.Client{}
	}

	return &Client{
		client: client,
		settings: &settings{
			apiKey:    config.APIKey,
			userAgent: userAgent,
			baseURL:   baseURL,
		},
	}, nil
}

// Status fetches the account status and remaining quota.
func (c *Client) Status(ctx context.Context) (*currencyapi.Response, error) {
	return c.request(ctx, "status", nil)
}

// Currencies fetches the list of supported currencies.
func (c *Client) Currencies(ctx context.Context) (*currencyapi.Response, error) {
	return c.request(ctx, "currencies", nil)
}

// Latest fetches the latest rates from baseCurrency to the given
// comma-separated target currencies.
func (c *Client) Latest(ctx context.Context, baseCurrency, currencies string) (*currencyapi.Response, error) {
	return c.request(ctx, "latest", []param{
		{"base_currency", baseCurrency},
		{"currencies", currencies},
	})
}

// Historical fetches rates for a past date (YYYY-MM-DD). The date
// format is not checked locally, a malformed one surfaces as a remote
// error.
func (c *Client) Historical(ctx context.Context, baseCurrency, date, currencies string) (*currencyapi.Response, error) {
	return c.request(ctx, "historical", []param{
		{"base_currency", baseCurrency},
		{"date", date},
		{"currencies", currencies},
	})
}

// Convert converts value from baseCurrency into the target currencies
// at the rates of the given date.
func (c *Client) Convert(ctx context.Context, baseCurrency, date string, value float64, currencies string) (*currencyapi.Response, error) {
	return c.request(ctx, "convert", []param{
		{"base_currency", baseCurrency},
		{"date", date},
		{"value", decimal.NewFromFloat(value).String()},
		{"currencies", currencies},
	})
}

// Range fetches rates over a datetime interval at the requested
// accuracy. Accuracy is an opaque remote-defined value and is passed
// through verbatim.
func (c *Client) Range(ctx context.Context, baseCurrency, datetimeStart, datetimeEnd, accuracy, currencies string) (*currencyapi.Response, error) {
	return c.request(ctx, "range", []param{
		{"base_currency", baseCurrency},
		{"datetime_start", datetimeStart},
		{"datetime_end", datetimeEnd},
		{"accuracy", accuracy},
		{"currencies", currencies},
	})
}

// request performs the shared operation template: build the URL with
// the API key, append the operation parameters in order, GET, read the
// whole body and decode it. The sole suspension point is the network
// round-trip, cancellation comes from ctx.
func (c *Client) request(ctx context.Context, path string, params []param) (*currencyapi.Response, error) {
	u, err := buildURL(c.settings.baseURL, c.settings.apiKey, path)

	if err != nil {
		return nil, err
	}

	for _, p := range params {
		AppendQuery(u, p.key, p.value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)

	if err != nil {
		return nil, &RequestError{Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.settings.userAgent)

	res, err := c.client.Do(req)

	if err != nil {
		return nil, &RequestError{Err: err}
	}

	defer res.Body.Close()

	body, err := ioutil.ReadAll(res.Body)

	if err != nil {
		return nil, &RequestError{Err: err}
	}

	var response currencyapi.Response

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &ResponseParsingError{Body: string(body)}
	}

	return &response, nil
}
