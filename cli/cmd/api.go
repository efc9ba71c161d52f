package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/malusev998/currencyapi"
)

func printResponse(cmd *cobra.Command, res *currencyapi.Response) error {
	out, err := json.MarshalIndent(res, "", "  ")

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return err
}

func status() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show account status and remaining quota",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()

			if err != nil {
				return err
			}

			res, err := client.Status(cmd.Context())

			if err != nil {
				return err
			}

			return printResponse(cmd, res)
		},
	}
}

func currencies() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List currencies supported by the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()

			if err != nil {
				return err
			}

			res, err := client.Currencies(cmd.Context())

			if err != nil {
				return err
			}

			return printResponse(cmd, res)
		},
	}
}

func latest() *cobra.Command {
	var baseCurrency string
	var targetCurrencies []string

	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Fetch the latest exchange rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()

			if err != nil {
				return err
			}

			res, err := client.Latest(cmd.Context(), baseCurrency, strings.Join(targetCurrencies, ","))

			if err != nil {
				return err
			}

			return printResponse(cmd, res)
		},
	}

	cmd.Flags().StringVar(&baseCurrency, "base-currency", "USD", "Base currency code")
	cmd.Flags().StringSliceVar(&targetCurrencies, "currencies", nil, "Target currency codes")

	return cmd
}

func historical() *cobra.Command {
	var baseCurrency, date string
	var targetCurrencies []string

	cmd := &cobra.Command{
		Use:   "historical",
		Short: "Fetch exchange rates for a past date",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()

			if err != nil {
				return err
			}

			res, err := client.Historical(cmd.Context(), baseCurrency, date, strings.Join(targetCurrencies, ","))

			if err != nil {
				return err
			}

			return printResponse(cmd, res)
		},
	}

	cmd.Flags().StringVar(&baseCurrency, "base-currency", "USD", "Base currency code")
	cmd.Flags().StringVar(&date, "date", "", "Date for the rates (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&targetCurrencies, "currencies", nil, "Target currency codes")

	return cmd
}

func convert() *cobra.Command {
	var baseCurrency, date string
	var value float64
	var targetCurrencies []string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a value into the target currencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()

			if err != nil {
				return err
			}

			res, err := client.Convert(cmd.Context(), baseCurrency, date, value, strings.Join(targetCurrencies, ","))

			if err != nil {
				return err
			}

			return printResponse(cmd, res)
		},
	}

	cmd.Flags().StringVar(&baseCurrency, "base-currency", "USD", "Base currency code")
	cmd.Flags().StringVar(&date, "date", "", "Date for the conversion rates (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&value, "value", 1, "Value to convert")
	cmd.Flags().StringSliceVar(&targetCurrencies, "currencies", nil, "Target currency codes")

	return cmd
}

func rateRange() *cobra.Command {
	var baseCurrency, start, end, accuracy string
	var targetCurrencies []string

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Fetch exchange rates over a datetime interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()

			if err != nil {
				return err
			}

			res, err := client.Range(cmd.Context(), baseCurrency, start, end, accuracy, strings.Join(targetCurrencies, ","))

			if err != nil {
				return err
			}

			return printResponse(cmd, res)
		},
	}

	cmd.Flags().StringVar(&baseCurrency, "base-currency", "USD", "Base currency code")
	cmd.Flags().StringVar(&start, "start", "", "Interval start (RFC 3339)")
	cmd.Flags().StringVar(&end, "end", "", "Interval end (RFC 3339)")
	cmd.Flags().StringVar(&accuracy, "accuracy", "day", "Rate accuracy (passed through to the API)")
	cmd.Flags().StringSliceVar(&targetCurrencies, "currencies", nil, "Target currency codes")

	return cmd
}
