package services_test

import (
	"errors"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/bxcodec/faker/v3"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/malusev998/currencyapi"
	"github.com/malusev998/currencyapi/services"
)

type (
	MockFetcher struct {
		mock.Mock
	}

	MockStorage struct {
		mock.Mock
		name string
	}
)

func (m *MockFetcher) Fetch(currenciesToFetch []string) ([]currencyapi.Rate, error) {
	args := m.Called(currenciesToFetch)

	if rates, ok := args.Get(0).([]currencyapi.Rate); ok {
		return rates, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockStorage) Store(rates []currencyapi.Rate) ([]currencyapi.RateWithID, error) {
	args := m.Called(rates)

	if stored, ok := args.Get(0).([]currencyapi.RateWithID); ok {
		return stored, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockStorage) Get(from, to string, page, perPage int64) ([]currencyapi.RateWithID, error) {
	args := m.Called(from, to, page, perPage)

	return args.Get(0).([]currencyapi.RateWithID), args.Error(1)
}

func (m *MockStorage) GetByProvider(from, to string, provider currencyapi.Provider, page, perPage int64) ([]currencyapi.RateWithID, error) {
	args := m.Called(from, to, provider, page, perPage)

	return args.Get(0).([]currencyapi.RateWithID), args.Error(1)
}

func (m *MockStorage) GetByDate(from, to string, start, end time.Time, page, perPage int64) ([]currencyapi.RateWithID, error) {
	args := m.Called(from, to, start, end, page, perPage)

	return args.Get(0).([]currencyapi.RateWithID), args.Error(1)
}

func (m *MockStorage) GetByDateAndProvider(from, to string, provider currencyapi.Provider, start, end time.Time, page, perPage int64) ([]currencyapi.RateWithID, error) {
	args := m.Called(from, to, provider, start, end, page, perPage)

	if rates, ok := args.Get(0).([]currencyapi.RateWithID); ok {
		return rates, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockStorage) GetStorageProviderName() string {
	return m.name
}

func (m *MockStorage) Migrate() error { return nil }
func (m *MockStorage) Drop() error    { return nil }
func (m *MockStorage) Close() error   { return nil }

func randomRates(count int) []currencyapi.Rate {
	rates := make([]currencyapi.Rate, 0, count)

	for i := 0; i < count; i++ {
		rates = append(rates, currencyapi.Rate{
			From:      "USD",
			To:        faker.Currency(),
			Provider:  currencyapi.CurrencyAPIProvider,
			Value:     float64(i) + 0.5,
			CreatedAt: time.Now(),
		})
	}

	return rates
}

func withIDs(rates []currencyapi.Rate) []currencyapi.RateWithID {
	stored := make([]currencyapi.RateWithID, 0, len(rates))

	for _, rate := range rates {
		stored = append(stored, currencyapi.RateWithID{
			Rate: rate,
			ID:   faker.UUIDHyphenated(),
		})
	}

	return stored
}

func TestServiceSave(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	codes := []string{"EUR", "RSD"}
	rates := randomRates(2)
	stored := withIDs(rates)

	fetcher := &MockFetcher{}
	fetcher.On("Fetch", codes).Return(rates, nil)

	mysqlStorage := &MockStorage{name: "mysql"}
	mysqlStorage.On("Store", rates).Return(stored, nil)

	mongoStorage := &MockStorage{name: "mongodb"}
	mongoStorage.On("Store", rates).Return(stored, nil)

	service := services.Service{
		Fetcher: fetcher,
		Storage: []currencyapi.Storage{mysqlStorage, mongoStorage},
	}

	data, err := service.Save(codes)

	assert.Nil(err)
	assert.Len(data, 2)
	assert.Equal(stored, data["mysql"])
	assert.Equal(stored, data["mongodb"])

	fetcher.AssertExpectations(t)
	mysqlStorage.AssertExpectations(t)
	mongoStorage.AssertExpectations(t)
}

func TestServiceSaveFetchError(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	fetchErr := errors.New("fetch failed")

	fetcher := &MockFetcher{}
	fetcher.On("Fetch", mock.Anything).Return(nil, fetchErr)

	service := services.Service{
		Fetcher: fetcher,
		Storage: []currencyapi.Storage{&MockStorage{name: "mysql"}},
	}

	data, err := service.Save([]string{"EUR"})

	assert.Nil(data)
	assert.Equal(fetchErr, err)
}

func TestServiceSaveAllStoragesFailing(t *testing.T) {
	assert := require.New(t)

	rates := randomRates(1)
	storeErr := errors.New("store failed")

	fetcher := &MockFetcher{}
	fetcher.On("Fetch", mock.Anything).Return(rates, nil)

	storages := make([]currencyapi.Storage, 0, 3)

	for i := 0; i < 3; i++ {
		failingStorage := &MockStorage{name: fmt.Sprintf("storage-%d", i)}
		failingStorage.On("Store", rates).Return(nil, storeErr)
		storages = append(storages, failingStorage)
	}

	before := runtime.NumGoroutine()

	service := services.Service{
		Fetcher: fetcher,
		Storage: storages,
	}

	data, err := service.Save([]string{"EUR"})

	assert.Nil(data)
	assert.Equal(storeErr, err)

	// Only the first error is consumed, the remaining goroutines must
	// still be able to send theirs and exit.
	deadline := time.Now().Add(time.Second)

	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	assert.LessOrEqual(runtime.NumGoroutine(), before)
}

func TestServiceSaveStoreError(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	rates := randomRates(1)
	storeErr := errors.New("store failed")

	fetcher := &MockFetcher{}
	fetcher.On("Fetch", mock.Anything).Return(rates, nil)

	failingStorage := &MockStorage{name: "mysql"}
	failingStorage.On("Store", rates).Return(nil, storeErr)

	service := services.Service{
		Fetcher: fetcher,
		Storage: []currencyapi.Storage{failingStorage},
	}

	data, err := service.Save([]string{"EUR"})

	assert.Nil(data)
	assert.Equal(storeErr, err)
}
