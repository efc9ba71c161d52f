// Package fetchers adapts the api client to the currencyapi.Fetcher
// interface consumed by the service and storage layers.
package fetchers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/malusev998/currencyapi"
)

var (
	ErrFetcherNotFound = errors.New("fetcher is not found")
	ErrMalformedRate   = errors.New("malformed rate in response data")
)

type (
	BaseConfig struct {
		Ctx context.Context
		URL string
	}

	CurrencyAPIConfig struct {
		BaseConfig
		APIKey       string
		BaseCurrency string
		// Date switches the fetcher from latest to historical rates
		// when set (YYYY-MM-DD).
		Date string
	}
)

func NewFetcher(provider currencyapi.Provider, config interface{}) (currencyapi.Fetcher, error) {
	switch provider {
	case currencyapi.CurrencyAPIProvider:
		return NewCurrencyAPIFetcher(config.(CurrencyAPIConfig))
	}

	return nil, ErrFetcherNotFound
}

// rateValue extracts a numeric rate from one data entry. The API
// documents entries as {"code": ..., "value": ...} objects but has
// been seen returning bare numbers and stringified numbers, so all
// three forms are accepted.
func rateValue(entry interface{}) (float64, bool) {
	switch v := entry.(type) {
	case float64:
		return v, true
	case string:
		value, err := strconv.ParseFloat(v, 64)
		return value, err == nil
	case map[string]interface{}:
		return rateValue(v["value"])
	}

	return 0, false
}

// fetchedAt prefers the response's own timestamp over local time.
func fetchedAt(res *currencyapi.Response) time.Time {
	if raw, ok := res.Meta["last_updated_at"].(string); ok {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t
		}
	}

	return time.Now()
}

func flattenRates(baseCurrency string, res *currencyapi.Response) ([]currencyapi.Rate, error) {
	createdAt := fetchedAt(res)
	rates := make([]currencyapi.Rate, 0, len(res.Data))

	for code, entry := range res.Data {
		value, ok := rateValue(entry)

		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMalformedRate, code)
		}

		rates = append(rates, currencyapi.Rate{
			From:      baseCurrency,
			To:        code,
			Provider:  currencyapi.CurrencyAPIProvider,
			Value:     value,
			CreatedAt: createdAt,
		})
	}

	return rates, nil
}
