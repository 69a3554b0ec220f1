package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd runs the bot server when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "storebot",
	Short: "Multilingual storefront chat bot",
	Long: `storebot serves a Telegram storefront: catalog browsing, cart,
checkout with phone and address, quote requests and admin commands.

Configuration is read from the environment (TELEGRAM_BOT_TOKEN, PLAN,
SHEET_URL, ADMINS, DATA_DB_FILE, ...).`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
