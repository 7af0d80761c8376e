package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/stockroom/core/cmd/stockroom/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stockroom",
		Short: "Stockroom inventory ledger",
		Long:  `Stockroom is an item-quantity ledger with JSON-file persistence, exposed over a CLI and an HTTP API.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewDemoCommand())
	rootCmd.AddCommand(commands.NewAddCommand())
	rootCmd.AddCommand(commands.NewRemoveCommand())
	rootCmd.AddCommand(commands.NewReportCommand())
	rootCmd.AddCommand(commands.NewLowStockCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
