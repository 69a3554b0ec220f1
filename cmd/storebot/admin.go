package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the remote catalog feed into the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		n, err := a.catalog.Sync(cmd.Context())
		if err != nil {
			return fmt.Errorf("catalog sync: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "synced %d items\n", n)
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:       "report [daily|monthly]",
	Short:     "Print order count and revenue for a trailing window",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(domain.PeriodDaily), string(domain.PeriodMonthly)},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		period := domain.PeriodDaily
		if len(args) == 1 {
			period = domain.ParsePeriod(args[0])
		}
		s, err := a.repo.ReportSummary(cmd.Context(), period)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d orders, $%s\n", period, s.OrderCount, s.Revenue.StringFixed(2))
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		fmt.Fprintf(cmd.OutOrStdout(), "database %s is up to date\n", a.cfg.DBPath)
		return nil
	},
}
