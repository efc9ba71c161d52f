package cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	rootCmd = &cobra.Command{
		Use:     "currencyapi",
		Short:   "currencyapi.com client and exchange rate fetcher",
		Version: "v1.0.0",
	}
	debug      bool
	configFile string
)

func Execute(ctx context.Context) error {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug flag")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./config.yml", "Path to config file")
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(
		status(),
		currencies(),
		latest(),
		historical(),
		convert(),
		rateRange(),
		fetch(),
	)

	return rootCmd.ExecuteContext(ctx)
}

func initConfig() {
	absolutePath, _ := filepath.Abs(configFile)

	viper.SetConfigFile(absolutePath)
	viper.SetEnvPrefix("CURRENCYAPI")
	viper.AutomaticEnv()

	// The config file is optional, the API key alone can come from
	// the CURRENCYAPI_API_KEY environment variable.
	_ = viper.ReadInConfig()
}
