package currencyapi

type (
	Fetcher interface {
		Fetch(currenciesToFetch []string) ([]Rate, error)
	}
)
