package storage_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/currencyapi/storage"
)

func TestConvertToProviderFromString(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	values := []struct {
		value    string
		expected storage.Provider
		err      error
	}{
		{"mysql", storage.MySQL, nil},
		{"MySQL", storage.MySQL, nil},
		{"mongodb", storage.MongoDB, nil},
		{"not-valid-value", storage.Provider(""), errors.New("value not-valid-value is not valid Provider")},
	}

	for _, value := range values {
		provider, err := storage.ConvertToProviderFromString(value.value)
		assert.Equal(value.expected, provider)
		assert.Equal(value.err, err)
	}
}

func TestConvertToProvidersFromStringSlice(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	providers, err := storage.ConvertToProvidersFromStringSlice([]string{"mysql", "mongodb"})

	assert.Nil(err)
	assert.Equal([]storage.Provider{storage.MySQL, storage.MongoDB}, providers)

	providers, err = storage.ConvertToProvidersFromStringSlice([]string{"bolt"})

	assert.Nil(providers)
	assert.NotNil(err)
}

func TestNewStorageUnknownProvider(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	st, err := storage.NewStorage(storage.Provider("redis"), nil)

	assert.Nil(st)
	assert.Equal(storage.ErrStorageNotFound, err)
}
