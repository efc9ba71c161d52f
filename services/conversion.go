package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/malusev998/currencyapi"
)

var (
	ErrRateNotFound      = errors.New("rate for the currency is not found in storage")
	ErrNoStorageProvided = errors.New("no storage provided")
	ErrTimeRanOut        = errors.New("time has run out")
)

type (
	// ConversionService converts values using rates already persisted
	// by Service.Save, without touching the remote API.
	ConversionService struct {
		Ctx      context.Context
		Storages []currencyapi.Storage
	}

	fetchedRates struct {
		rates []currencyapi.RateWithID
		error error
	}
)

func (c ConversionService) Convert(from, to string, provider currencyapi.Provider, value float64, date time.Time) (float64, error) {
	decimalValue := decimal.NewFromFloat(value)
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	if len(c.Storages) == 0 {
		return 0, ErrNoStorageProvided
	}

	// Optimization when there is only one storage provider
	if len(c.Storages) == 1 {
		rates, err := c.Storages[0].GetByDateAndProvider(from, to, provider, startOfDay, date, 1, 1)

		if err != nil {
			return 0, err
		}

		if len(rates) == 0 {
			return 0, ErrRateNotFound
		}

		return convert(decimalValue, rates[0].Value), nil
	}

	// With more storage providers the first one that answers wins.
	ratesChannel := make(chan fetchedRates, len(c.Storages))

	for _, storage := range c.Storages {
		go func(storage currencyapi.Storage) {
			rates, err := storage.GetByDateAndProvider(from, to, provider, startOfDay, date, 1, 1)
			ratesChannel <- fetchedRates{
				rates: rates,
				error: err,
			}
		}(storage)
	}

	ctx := c.Ctx

	if ctx == nil {
		ctx = context.Background()
	}

	select {
	case <-ctx.Done():
		return 0, ErrTimeRanOut

	case data := <-ratesChannel:
		if data.error != nil {
			return 0, data.error
		}

		if len(data.rates) == 0 {
			return 0, ErrRateNotFound
		}

		return convert(decimalValue, data.rates[0].Value), nil
	}
}

func convert(value decimal.Decimal, rate float64) float64 {
	result, _ := value.Mul(decimal.NewFromFloat(rate)).Round(6).Float64()

	return result
}
