package currencyapi

import (
	"fmt"
	"strings"
)

// Provider names the source a rate was fetched from. Stored rows keep
// the provider so rates from future sources stay distinguishable.
type Provider string

const (
	CurrencyAPIProvider Provider = "CurrencyAPI"
	EmptyProvider       Provider = ""
)

func ConvertToProvidersFromStringSlice(strings []string) ([]Provider, error) {
	providers := make([]Provider, 0, len(strings))

	for _, str := range strings {
		provider, err := ConvertToProviderFromString(str)
		if err != nil {
			return nil, err
		}

		providers = append(providers, provider)
	}

	return providers, nil
}

func ConvertToProviderFromString(str string) (Provider, error) {
	switch strings.ToLower(str) {
	case "currencyapi":
		return CurrencyAPIProvider, nil
	}

	return "", fmt.Errorf("value %s is not valid Provider", str)
}

func (p *Provider) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}

	provider, err := ConvertToProviderFromString(str)

	if err != nil {
		return err
	}

	*p = provider

	return nil
}

func (p Provider) MarshalYAML() (interface{}, error) {
	return string(p), nil
}
