package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/malusev998/currencyapi"
	"github.com/malusev998/currencyapi/services"
)

func handleRateSave(service currencyapi.Service, logger *logrus.Logger) error {
	data, err := service.Save(viper.GetStringSlice("currencies"))

	if err != nil {
		return err
	}

	if !debug {
		return nil
	}

	for storageName, rates := range data {
		for _, rate := range rates {
			logger.WithFields(logrus.Fields{
				"storage":  storageName,
				"currency": rate.From + "_" + rate.To,
				"rate":     rate.Value,
				"id":       rate.ID,
			}).Info("rate saved")
		}
	}

	return nil
}

func fetch() *cobra.Command {
	var standalone bool
	var after time.Duration

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch rates from currencyapi.com and persist them",
	}

	fetchCmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger := logrus.New()
		logger.SetOutput(cmd.OutOrStdout())

		ctx := cmd.Context()

		fetcher, err := createFetcher(ctx)

		if err != nil {
			return err
		}

		storages, err := createStorages(ctx)

		if err != nil {
			return err
		}

		defer closeStorages(storages)

		service := services.Service{
			Fetcher: fetcher,
			Storage: storages,
		}

		if err := handleRateSave(service, logger); err != nil {
			if !standalone {
				return err
			}

			logger.WithError(err).Error("saving rates failed")
		}

		if !standalone {
			return nil
		}

		for {
			select {
			case <-time.After(after):
				if err := handleRateSave(service, logger); err != nil {
					logger.WithError(err).Error("saving rates failed")
				}
			case <-ctx.Done():
				return nil
			}
		}
	}

	fetchCmd.Flags().BoolVar(&standalone, "standalone", false, "Start up a long running fetching service")
	fetchCmd.Flags().DurationVar(&after, "after", time.Hour, "Fetching interval for the standalone process")

	return fetchCmd
}
