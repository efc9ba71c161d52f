package cmd

import (
	"context"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"

	"github.com/malusev998/currencyapi"
	"github.com/malusev998/currencyapi/api"
	"github.com/malusev998/currencyapi/fetchers"
	"github.com/malusev998/currencyapi/storage"
)

func newClient() (*api.Client, error) {
	return api.NewClient(api.Config{
		APIKey:    viper.GetString("api_key"),
		UserAgent: viper.GetString("user_agent"),
	})
}

func getMysqlDSN(config map[string]string) string {
	mysqlDriverConfig := mysql.NewConfig()
	mysqlDriverConfig.User = config["user"]
	mysqlDriverConfig.Passwd = config["password"]
	mysqlDriverConfig.Addr = config["addr"]
	mysqlDriverConfig.Net = "tcp"
	mysqlDriverConfig.DBName = config["db"]

	return mysqlDriverConfig.FormatDSN()
}

func storageConfig(ctx context.Context, provider storage.Provider) interface{} {
	base := storage.BaseConfig{
		Ctx:     ctx,
		Migrate: viper.GetBool("migrate"),
	}

	switch provider {
	case storage.MySQL:
		config := viper.GetStringMapString("databases.mysql")

		return storage.MySQLConfig{
			BaseConfig:       base,
			ConnectionString: getMysqlDSN(config),
			TableName:        config["table"],
		}
	case storage.MongoDB:
		config := viper.GetStringMapString("databases.mongodb")

		return storage.MongoDBConfig{
			BaseConfig:       base,
			ConnectionString: config["uri"],
			Database:         config["database"],
			Collection:       config["collection"],
		}
	}

	return nil
}

func createStorages(ctx context.Context) ([]currencyapi.Storage, error) {
	providers, err := storage.ConvertToProvidersFromStringSlice(viper.GetStringSlice("storage"))

	if err != nil {
		return nil, err
	}

	storages := make([]currencyapi.Storage, 0, len(providers))

	for _, provider := range providers {
		st, err := storage.NewStorage(provider, storageConfig(ctx, provider))

		if err != nil {
			closeStorages(storages)
			return nil, err
		}

		storages = append(storages, st)
	}

	return storages, nil
}

func closeStorages(storages []currencyapi.Storage) {
	for _, st := range storages {
		_ = st.Close()
	}
}

func createFetcher(ctx context.Context) (currencyapi.Fetcher, error) {
	return fetchers.NewFetcher(currencyapi.CurrencyAPIProvider, fetchers.CurrencyAPIConfig{
		BaseConfig: fetchers.BaseConfig{
			Ctx: ctx,
		},
		APIKey:       viper.GetString("api_key"),
		BaseCurrency: viper.GetString("base_currency"),
	})
}
