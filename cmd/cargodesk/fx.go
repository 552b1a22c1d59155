package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cargodesk/cargodesk/internal/app"
	"github.com/cargodesk/cargodesk/internal/exchangerate"
)

func newFXCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fx",
		Short: "Query the exchange-rate provider directly",
	}

	latest := &cobra.Command{
		Use:   "latest [BASE]",
		Short: "Print the latest rates, bypassing the cache",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			base := cfg.FXBaseCurrency
			if len(args) == 1 {
				base = strings.ToUpper(args[0])
			}
			client := exchangerate.NewClient(cfg.FXAPIURL, cfg.FXAPIKey, app.NewLogger(cfg))
			rates := client.Latest(cmd.Context(), base)

			codes := make([]string, 0, len(rates.Rates))
			for code := range rates.Rates {
				codes = append(codes, code)
			}
			sort.Strings(codes)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "base %s, %s (%s)\n", rates.Base, rates.Date, rates.Source)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, code := range codes {
				fmt.Fprintf(tw, "%s\t%s\n", code, strconv.FormatFloat(rates.Rates[code], 'f', -1, 64))
			}
			return tw.Flush()
		},
	}

	convert := &cobra.Command{
		Use:   "convert AMOUNT FROM TO",
		Short: "Convert an amount using the latest rates",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("amount: %w", err)
			}
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			client := exchangerate.NewClient(cfg.FXAPIURL, cfg.FXAPIKey, app.NewLogger(cfg))
			svc := exchangerate.NewService(client, nil, cfg.FXBaseCurrency, 0, app.NewLogger(cfg))
			conv, err := svc.Convert(cmd.Context(), amount, args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f %s = %.2f %s (rate %g, %s %s)\n",
				conv.Amount, conv.From, conv.Result, conv.To, conv.Rate, conv.Source, conv.Date)
			return nil
		},
	}

	cmd.AddCommand(latest, convert)
	return cmd
}
