package fetchers

import (
	"context"
	"strings"

	"github.com/malusev998/currencyapi"
	"github.com/malusev998/currencyapi/api"
)

type CurrencyAPIFetcher struct {
	client       *api.Client
	ctx          context.Context
	baseCurrency string
	date         string
}

func NewCurrencyAPIFetcher(config CurrencyAPIConfig) (*CurrencyAPIFetcher, error) {
	client, err := api.NewClient(api.Config{
		APIKey: config.APIKey,
		URL:    config.URL,
	})

	if err != nil {
		return nil, err
	}

	ctx := config.Ctx

	if ctx == nil {
		ctx = context.Background()
	}

	baseCurrency := config.BaseCurrency

	if baseCurrency == "" {
		baseCurrency = "USD"
	}

	return &CurrencyAPIFetcher{
		client:       client,
		ctx:          ctx,
		baseCurrency: baseCurrency,
		date:         config.Date,
	}, nil
}

// Fetch retrieves rates for the given target currency codes and
// flattens the response into storable rates. One remote call covers
// all requested currencies.
func (f *CurrencyAPIFetcher) Fetch(currenciesToFetch []string) ([]currencyapi.Rate, error) {
	currencies := strings.Join(currenciesToFetch, ",")

	var res *currencyapi.Response
	var err error

	if f.date != "" {
		res, err = f.client.Historical(f.ctx, f.baseCurrency, f.date, currencies)
	} else {
		res, err = f.client.Latest(f.ctx, f.baseCurrency, currencies)
	}

	if err != nil {
		return nil, err
	}

	return flattenRates(f.baseCurrency, res)
}
