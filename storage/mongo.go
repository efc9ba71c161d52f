package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/malusev998/currencyapi"
)

type mongoRate struct {
	ID        primitive.ObjectID `bson:"_id"`
	Currency  string             `bson:"currency"`
	Provider  string             `bson:"provider"`
	Rate      float64            `bson:"rate"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type mongoStorage struct {
	ctx        context.Context
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoStorage(config MongoDBConfig) (currencyapi.Storage, error) {
	ctx := config.Ctx

	if ctx == nil {
		ctx = context.Background()
	}

	client, err := mongo.NewClient(options.Client().ApplyURI(config.ConnectionString))

	if err != nil {
		return nil, err
	}

	if err := client.Connect(ctx); err != nil {
		return nil, err
	}

	storage := &mongoStorage{
		ctx:        ctx,
		client:     client,
		collection: client.Database(config.Database).Collection(config.Collection),
	}

	if config.Migrate {
		if err := storage.Migrate(); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}

	return storage, nil
}

func (m *mongoStorage) Store(rates []currencyapi.Rate) ([]currencyapi.RateWithID, error) {
	// InsertMany rejects an empty document list.
	if len(rates) == 0 {
		return []currencyapi.RateWithID{}, nil
	}

	documents := make([]interface{}, 0, len(rates))

	for i, rate := range rates {
		if rate.CreatedAt.IsZero() {
			rates[i].CreatedAt = time.Now()
			rate.CreatedAt = rates[i].CreatedAt
		}

		documents = append(documents, bson.M{
			"currency":  fmt.Sprintf("%s_%s", rate.From, rate.To),
			"provider":  string(rate.Provider),
			"rate":      rate.Value,
			"createdAt": rate.CreatedAt,
		})
	}

	result, err := m.collection.InsertMany(m.ctx, documents)

	if err != nil {
		return nil, err
	}

	stored := make([]currencyapi.RateWithID, 0, len(rates))

	for i, rate := range rates {
		stored = append(stored, currencyapi.RateWithID{
			Rate: rate,
			ID:   result.InsertedIDs[i],
		})
	}

	return stored, nil
}

func (m *mongoStorage) Get(from, to string, page, perPage int64) ([]currencyapi.RateWithID, error) {
	return m.GetByDateAndProvider(from, to, currencyapi.EmptyProvider, time.Time{}, time.Now(), page, perPage)
}

func (m *mongoStorage) GetByProvider(from, to string, provider currencyapi.Provider, page, perPage int64) ([]currencyapi.RateWithID, error) {
	return m.GetByDateAndProvider(from, to, provider, time.Time{}, time.Now(), page, perPage)
}

func (m *mongoStorage) GetByDate(from, to string, start, end time.Time, page, perPage int64) ([]currencyapi.RateWithID, error) {
	return m.GetByDateAndProvider(from, to, currencyapi.EmptyProvider, start, end, page, perPage)
}

func (m *mongoStorage) GetByDateAndProvider(from, to string, provider currencyapi.Provider, start, end time.Time, page, perPage int64) ([]currencyapi.RateWithID, error) {
	filter := bson.M{
		"currency": fmt.Sprintf("%s_%s", from, to),
		"createdAt": bson.M{
			"$gte": start,
			"$lte": end,
		},
	}

	if provider != currencyapi.EmptyProvider {
		filter["provider"] = string(provider)
	}

	skip := (page - 1) * perPage
	sort := bson.D{{Key: "createdAt", Value: -1}}

	cursor, err := m.collection.Find(m.ctx, filter, &options.FindOptions{
		Limit: &perPage,
		Skip:  &skip,
		Sort:  sort,
	})

	if err != nil {
		return nil, err
	}

	defer cursor.Close(m.ctx)

	rates := make([]currencyapi.RateWithID, 0, perPage)

	for cursor.Next(m.ctx) {
		var document mongoRate

		if err := cursor.Decode(&document); err != nil {
			return nil, err
		}

		fromCurrency, toCurrency, err := splitCurrencyPair(document.Currency)

		if err != nil {
			return nil, err
		}

		rates = append(rates, currencyapi.RateWithID{
			Rate: currencyapi.Rate{
				From:      fromCurrency,
				To:        toCurrency,
				Provider:  currencyapi.Provider(document.Provider),
				Value:     document.Rate,
				CreatedAt: document.CreatedAt,
			},
			ID: document.ID,
		})
	}

	return rates, cursor.Err()
}

func (m *mongoStorage) GetStorageProviderName() string {
	return string(MongoDB)
}

func (m *mongoStorage) Migrate() error {
	_, err := m.collection.Indexes().CreateOne(m.ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "currency", Value: 1},
			{Key: "provider", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	})

	return err
}

func (m *mongoStorage) Drop() error {
	return m.collection.Drop(m.ctx)
}

func (m *mongoStorage) Close() error {
	return m.client.Disconnect(m.ctx)
}
