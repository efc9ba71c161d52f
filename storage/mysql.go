package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/malusev998/currencyapi"
)

// MySQLTimeFormat is the DATETIME layout used for both inserts and
// range filters.
const MySQLTimeFormat = "2006-01-02 15:04:05"

type uuidGenerator struct{}

func (uuidGenerator) Generate() []byte {
	return []byte(uuid.New().String())
}

type mysqlStorage struct {
	ctx         context.Context
	db          *sql.DB
	tableName   string
	idGenerator IDGenerator
}

func NewMySQLStorage(config MySQLConfig) (currencyapi.Storage, error) {
	db, err := sql.Open("mysql", config.ConnectionString)

	if err != nil {
		return nil, err
	}

	ctx := config.Ctx

	if ctx == nil {
		ctx = context.Background()
	}

	storage := NewMySQLStorageWithDB(ctx, db, config.TableName, config.IDGenerator)

	if config.Migrate {
		if err := storage.Migrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return storage, nil
}

// NewMySQLStorageWithDB wraps an already opened database handle, used
// by callers owning the connection lifecycle and by tests.
func NewMySQLStorageWithDB(ctx context.Context, db *sql.DB, tableName string, idGenerator IDGenerator) currencyapi.Storage {
	if idGenerator == nil {
		idGenerator = uuidGenerator{}
	}

	return &mysqlStorage{
		ctx:         ctx,
		db:          db,
		tableName:   tableName,
		idGenerator: idGenerator,
	}
}

func (m *mysqlStorage) Store(rates []currencyapi.Rate) ([]currencyapi.RateWithID, error) {
	tx, err := m.db.Begin()

	if err != nil {
		return nil, err
	}

	stmt, err := tx.PrepareContext(
		m.ctx,
		fmt.Sprintf("INSERT INTO %s(id, currency, provider, rate, created_at) VALUES(?,?,?,?,?);", m.tableName),
	)

	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	stored := make([]currencyapi.RateWithID, 0, len(rates))

	for _, rate := range rates {
		if rate.CreatedAt.IsZero() {
			rate.CreatedAt = time.Now()
		}

		id := string(m.idGenerator.Generate())
		combinedCurrency := fmt.Sprintf("%s_%s", rate.From, rate.To)

		_, err = stmt.ExecContext(
			m.ctx,
			id,
			combinedCurrency,
			string(rate.Provider),
			rate.Value,
			rate.CreatedAt.Format(MySQLTimeFormat),
		)

		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}

		stored = append(stored, currencyapi.RateWithID{
			Rate: rate,
			ID:   id,
		})
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	return stored, nil
}

func (m *mysqlStorage) Get(from, to string, page, perPage int64) ([]currencyapi.RateWithID, error) {
	return m.GetByDateAndProvider(from, to, currencyapi.EmptyProvider, time.Time{}, time.Now(), page, perPage)
}

func (m *mysqlStorage) GetByProvider(from, to string, provider currencyapi.Provider, page, perPage int64) ([]currencyapi.RateWithID, error) {
	return m.GetByDateAndProvider(from, to, provider, time.Time{}, time.Now(), page, perPage)
}

func (m *mysqlStorage) GetByDate(from, to string, start, end time.Time, page, perPage int64) ([]currencyapi.RateWithID, error) {
	return m.GetByDateAndProvider(from, to, currencyapi.EmptyProvider, start, end, page, perPage)
}

func (m *mysqlStorage) GetByDateAndProvider(from, to string, provider currencyapi.Provider, start, end time.Time, page, perPage int64) ([]currencyapi.RateWithID, error) {
	query := fmt.Sprintf(
		"SELECT id, currency, provider, rate, created_at FROM %s WHERE currency = ? AND created_at >= ? AND created_at <= ?",
		m.tableName,
	)
	args := []interface{}{
		fmt.Sprintf("%s_%s", from, to),
		start.Format(MySQLTimeFormat),
		end.Format(MySQLTimeFormat),
	}

	if provider != currencyapi.EmptyProvider {
		query += " AND provider = ?"
		args = append(args, string(provider))
	}

	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?;"
	args = append(args, perPage, (page-1)*perPage)

	rows, err := m.db.QueryContext(m.ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	rates := make([]currencyapi.RateWithID, 0, perPage)

	for rows.Next() {
		var id, combinedCurrency, storedProvider, createdAt string
		var rate float64

		if err := rows.Scan(&id, &combinedCurrency, &storedProvider, &rate, &createdAt); err != nil {
			return nil, err
		}

		fromCurrency, toCurrency, err := splitCurrencyPair(combinedCurrency)

		if err != nil {
			return nil, err
		}

		createdAtTime, err := time.Parse(MySQLTimeFormat, createdAt)

		if err != nil {
			return nil, err
		}

		rates = append(rates, currencyapi.RateWithID{
			Rate: currencyapi.Rate{
				From:      fromCurrency,
				To:        toCurrency,
				Provider:  currencyapi.Provider(storedProvider),
				Value:     rate,
				CreatedAt: createdAtTime,
			},
			ID: id,
		})
	}

	return rates, rows.Err()
}

func (m *mysqlStorage) GetStorageProviderName() string {
	return string(MySQL)
}

func (m *mysqlStorage) Migrate() error {
	_, err := m.db.ExecContext(m.ctx, fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s(
			id CHAR(36) NOT NULL,
			currency VARCHAR(20) NOT NULL,
			provider VARCHAR(30) NOT NULL,
			rate DOUBLE NOT NULL,
			created_at DATETIME NOT NULL,
			PRIMARY KEY (id),
			INDEX search_index (currency, provider, created_at)
		);`,
		m.tableName,
	))

	return err
}

func (m *mysqlStorage) Drop() error {
	_, err := m.db.ExecContext(m.ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", m.tableName))

	return err
}

func (m *mysqlStorage) Close() error {
	return m.db.Close()
}
