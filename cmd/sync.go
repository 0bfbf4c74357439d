package cmd

import (
	"context"
	"fmt"
	"log"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/logger"
	"catalog-sync/feature/catalog"
	catalogmodels "catalog-sync/feature/catalog/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncSuppliers []string
	syncLimit     int
)

// syncCmd runs a one-shot ingestion without starting the server.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a one-shot catalog sync",
	Long: `Fetches the configured supplier feeds, normalizes the records and
persists them, then prints a per-supplier report. Without --supplier all
suppliers run; --limit bounds each supplier's batch for test runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		if err := database.Migrate(db, catalogmodels.All()...); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}

		svc := catalog.NewService(db, cfg.Feeds, logg)
		report, err := svc.Sync(context.Background(), syncSuppliers, syncLimit)
		if err != nil {
			return err
		}

		failed := 0
		for _, s := range report.Suppliers {
			if s.FeedError != "" {
				failed++
				logg.Error("Supplier feed failed",
					zap.String("supplier", s.Supplier),
					zap.String("error", s.FeedError),
				)
				continue
			}
			logg.Info("Supplier synced",
				zap.String("supplier", s.Supplier),
				zap.Int("fetched", s.Fetched),
				zap.Int("saved", s.Saved),
				zap.Int("created", s.Created),
				zap.Int("updated", s.Updated),
				zap.Int("skipped", s.Skipped),
				zap.Int("errored", s.Errored),
			)
		}

		if failed == len(report.Suppliers) {
			return fmt.Errorf("all %d supplier feeds failed", failed)
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().StringArrayVar(&syncSuppliers, "supplier", nil,
		"supplier to sync (repeatable); all suppliers when omitted")
	syncCmd.Flags().IntVar(&syncLimit, "limit", 0,
		"max records per supplier (0 = no limit)")
	RootCmd.AddCommand(syncCmd)
}
