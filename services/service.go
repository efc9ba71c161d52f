package services

import (
	"sync"

	"github.com/malusev998/currencyapi"
)

// Service fetches rates once and persists them into every configured
// storage concurrently.
type Service struct {
	Fetcher currencyapi.Fetcher
	Storage []currencyapi.Storage
}

func saveToStorage(
	wg *sync.WaitGroup,
	rates []currencyapi.Rate,
	data *map[string][]currencyapi.RateWithID,
	storage currencyapi.Storage,
	errorChannel chan<- error,
	mutex sync.Locker,
) {
	defer wg.Done()
	stored, err := storage.Store(rates)

	if err != nil {
		errorChannel <- err
		return
	}

	mutex.Lock()
	(*data)[storage.GetStorageProviderName()] = stored
	mutex.Unlock()
}

func (s Service) Save(currenciesToFetch []string) (map[string][]currencyapi.RateWithID, error) {
	var wg sync.WaitGroup
	mutex := &sync.RWMutex{}

	fetchedRates, err := s.Fetcher.Fetch(currenciesToFetch)
	if err != nil {
		return nil, err
	}

	// Buffered so every failing storage can send its error and exit
	// even though only the first one is consumed.
	errorChannel := make(chan error, len(s.Storage))
	data := make(map[string][]currencyapi.RateWithID)

	wg.Add(len(s.Storage))
	for _, storage := range s.Storage {
		go saveToStorage(&wg, fetchedRates, &data, storage, errorChannel, mutex)
	}

	go func(wg *sync.WaitGroup, errorChannel chan error) {
		wg.Wait()
		close(errorChannel)
	}(&wg, errorChannel)

	if err, more := <-errorChannel; more {
		return nil, err
	}

	return data, nil
}
