package currencyapi

import "time"

type (
	Service interface {
		Save(currenciesToFetch []string) (map[string][]RateWithID, error)
	}

	Conversion interface {
		Convert(from, to string, provider Provider, value float64, date time.Time) (float64, error)
	}
)
