package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/malusev998/currencyapi"
)

type (
	Provider string

	// IDGenerator produces primary keys for backends without a
	// server-side generator.
	IDGenerator interface {
		Generate() []byte
	}

	BaseConfig struct {
		Ctx     context.Context
		Migrate bool
	}

	MySQLConfig struct {
		BaseConfig
		ConnectionString string
		TableName        string
		IDGenerator      IDGenerator
	}

	MongoDBConfig struct {
		BaseConfig
		ConnectionString string
		Database         string
		Collection       string
	}
)

const (
	MySQL   Provider = "mysql"
	MongoDB Provider = "mongodb"
)

var (
	ErrStorageNotFound       = errors.New("storage is not found")
	ErrMalformedCurrencyPair = errors.New("malformed currency pair in storage")
)

// splitCurrencyPair splits a stored FROM_TO value. Rows only ever get
// written in that form, but hand-edited rows reach the read path too.
func splitCurrencyPair(combined string) (string, string, error) {
	pair := strings.Split(combined, "_")

	if len(pair) != 2 {
		return "", "", fmt.Errorf("%w: %s", ErrMalformedCurrencyPair, combined)
	}

	return pair[0], pair[1], nil
}

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
	case "mysql":
		return MySQL, nil
	case "mongodb":
		return MongoDB, nil
	}

	return "", fmt.Errorf("value %s is not valid Provider", str)
}

func NewStorage(provider Provider, config interface{}) (currencyapi.Storage, error) {
	switch provider {
	case MySQL:
		return NewMySQLStorage(config.(MySQLConfig))
	case MongoDB:
		return NewMongoStorage(config.(MongoDBConfig))
	}

	return nil, ErrStorageNotFound
}
