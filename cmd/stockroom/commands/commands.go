package commands

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stockroom/core/internal/adapters/repository"
	"github.com/stockroom/core/internal/application/services"
	"github.com/stockroom/core/internal/domain/inventory"
	"github.com/stockroom/core/internal/infrastructure/config"
	"github.com/stockroom/core/internal/infrastructure/logger"
	"github.com/stockroom/core/internal/infrastructure/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Stockroom HTTP server",
		Long:  "Start the Stockroom HTTP server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewDemoCommand creates the demo command
func NewDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the inventory demonstration routine",
		Long:  "Add and remove a few items, save, reload and print the resulting report",
		Run: func(cmd *cobra.Command, args []string) {
			runDemo()
		},
	}
}

// NewAddCommand creates the add command
func NewAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <item> <quantity>",
		Short: "Add quantity to an item",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				log.Fatalf("Quantity must be an integer: %v", err)
			}

			ctx, svc, appLogger := mustService()
			defer appLogger.Close()

			if err := svc.LoadInventory(ctx); err != nil {
				log.Fatalf("Failed to load inventory: %v", err)
			}
			rec, err := svc.AddItem(ctx, args[0], qty)
			if err != nil {
				log.Fatalf("Failed to add item: %v", err)
			}
			if err := svc.SaveInventory(ctx); err != nil {
				log.Fatalf("Failed to save inventory: %v", err)
			}

			fmt.Printf("%s: %d -> %d\n", rec.Item, rec.Previous, rec.Current)
		},
	}
}

// NewRemoveCommand creates the remove command
func NewRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item> <quantity>",
		Short: "Remove quantity from an item",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				log.Fatalf("Quantity must be an integer: %v", err)
			}

			ctx, svc, appLogger := mustService()
			defer appLogger.Close()

			if err := svc.LoadInventory(ctx); err != nil {
				log.Fatalf("Failed to load inventory: %v", err)
			}
			rec, err := svc.RemoveItem(ctx, args[0], qty)
			if err != nil {
				log.Fatalf("Failed to remove item: %v", err)
			}
			if err := svc.SaveInventory(ctx); err != nil {
				log.Fatalf("Failed to save inventory: %v", err)
			}

			fmt.Printf("%s: %d -> %d\n", rec.Item, rec.Previous, rec.Current)
		},
	}
}

// NewReportCommand creates the report command
func NewReportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the holdings report",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, svc, appLogger := mustService()
			defer appLogger.Close()

			if err := svc.LoadInventory(ctx); err != nil {
				log.Fatalf("Failed to load inventory: %v", err)
			}

			fmt.Print(svc.Report(ctx))
		},
	}
}

// NewLowStockCommand creates the low-stock command
func NewLowStockCommand() *cobra.Command {
	lowCmd := &cobra.Command{
		Use:   "low",
		Short: "List items whose quantity is below the threshold",
		Run: func(cmd *cobra.Command, args []string) {
			threshold, _ := cmd.Flags().GetInt("threshold")

			ctx, svc, appLogger := mustService()
			defer appLogger.Close()

			if err := svc.LoadInventory(ctx); err != nil {
				log.Fatalf("Failed to load inventory: %v", err)
			}

			items, err := svc.ListLowStock(ctx, threshold)
			if err != nil {
				log.Fatalf("Failed to list low stock: %v", err)
			}

			if len(items) == 0 {
				fmt.Printf("No items below %d\n", threshold)
				return
			}
			for _, item := range items {
				fmt.Println(item)
			}
		},
	}

	lowCmd.Flags().Int("threshold", inventory.DefaultLowStockThreshold, "Low-stock threshold")
	return lowCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Stockroom version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Stockroom Core v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	store := repository.NewFileStore(cfg.Inventory.File)
	svc := services.NewInventoryService(store, nil, appLogger)

	// Pick up whatever the inventory file already holds; a missing file just
	// means we start empty.
	if err := svc.LoadInventory(context.Background()); err != nil {
		appLogger.Fatal("Failed to load inventory", "error", err)
	}

	srv, err := server.New(cfg, svc, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting Stockroom server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"inventory_file", cfg.Inventory.File,
	)

	if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		appLogger.Fatal("Server failed to start", "error", err)
	}
}

// runDemo replays the canonical walkthrough: stock two items, remove part of
// one, persist, reload, and print the report. Errors are reported at this
// level; the ledger itself never terminates the process.
func runDemo() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	ctx := context.Background()
	store := repository.NewFileStore(cfg.Inventory.File)
	journal := inventory.NewJournal()
	svc := services.NewInventoryService(store, journal, appLogger)

	if _, err := svc.AddItem(ctx, "apple", 10); err != nil {
		log.Fatalf("Failed to add apples: %v", err)
	}
	if _, err := svc.RemoveItem(ctx, "apple", 3); err != nil {
		log.Fatalf("Failed to remove apples: %v", err)
	}
	if _, err := svc.AddItem(ctx, "banana", 5); err != nil {
		log.Fatalf("Failed to add bananas: %v", err)
	}

	if err := svc.SaveInventory(ctx); err != nil {
		log.Fatalf("Failed to save inventory: %v", err)
	}
	if err := svc.LoadInventory(ctx); err != nil {
		log.Fatalf("Failed to load inventory: %v", err)
	}

	fmt.Print(svc.Report(ctx))

	fmt.Println("Changes:")
	for _, rec := range journal.Records() {
		fmt.Printf("  %s %s: %d -> %d\n", rec.Operation, rec.Item, rec.Previous, rec.Current)
	}
}

// mustService wires config, logger, store and service for the one-shot CLI
// commands, exiting on any setup failure.
func mustService() (context.Context, *services.InventoryService, *logger.Logger) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	store := repository.NewFileStore(cfg.Inventory.File)
	svc := services.NewInventoryService(store, nil, appLogger)

	return context.Background(), svc, appLogger
}
