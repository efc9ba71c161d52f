package currencyapi

import "time"

type Storage interface {
	Store([]Rate) ([]RateWithID, error)
	Get(from, to string, page, perPage int64) ([]RateWithID, error)
	GetByProvider(from, to string, provider Provider, page, perPage int64) ([]RateWithID, error)
	GetByDate(from, to string, start, end time.Time, page, perPage int64) ([]RateWithID, error)
	GetByDateAndProvider(from, to string, provider Provider, start, end time.Time, page, perPage int64) ([]RateWithID, error)
	GetStorageProviderName() string
	Migrate() error
	Drop() error
	Close() error
}
