package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/metalscrape/backend/config"
	"github.com/metalscrape/backend/internal/app"
	"github.com/metalscrape/backend/internal/platform/logger"
	"github.com/metalscrape/backend/internal/usecase"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scrape",
		Short: "Collect product listings and prices from the vendor site",
		Long: `Scrape every (material, shape) category listed on the vendor site, price
each product at every offered length and save the bundles to the configured
catalog store.

Examples:
  scrape                                   # Every category
  scrape --material Steel --shape "Flat Bar"
  scrape --limit 10                        # At most 10 variations per category
  scrape --skip-existing                   # Resume an interrupted run`,
		RunE:         runScrape,
		SilenceUsage: true,
	}

	rootCmd.Flags().Int("limit", 0, "max variations priced per category (0 = all)")
	rootCmd.Flags().StringSlice("material", nil, "only scrape these materials")
	rootCmd.Flags().StringSlice("shape", nil, "only scrape these shapes")
	rootCmd.Flags().Bool("skip-existing", false, "skip categories already in the catalog store")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	materials, _ := cmd.Flags().GetStringSlice("material")
	shapes, _ := cmd.Flags().GetStringSlice("shape")
	skipExisting, _ := cmd.Flags().GetBool("skip-existing")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := app.OpenStore(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	defer closeStore()

	quoteCache, closeCache, err := app.OpenCache(ctx, cfg.Cache, log)
	if err != nil {
		return err
	}
	defer closeCache()

	vendorClient := app.NewVendorClient(cfg.Vendor, log)
	pricing := usecase.NewPricingService(quoteCache, vendorClient, usecase.PricingServiceConfig{
		CacheTTL: cfg.Cache.TTL,
		Quantity: cfg.Vendor.Quantity,
	}, log)
	ingestion := usecase.NewIngestionService(vendorClient, pricing, store, usecase.IngestionConfig{
		Workers: cfg.Vendor.Workers,
		Limit:   limit,
	}, log)

	targets := app.IngestTargets(vendorClient.BaseURL(), materials, shapes)
	if len(targets) == 0 {
		return fmt.Errorf("no categories match material=%v shape=%v", materials, shapes)
	}
	if skipExisting {
		selected := len(targets)
		if targets, err = app.PendingTargets(ctx, store, targets); err != nil {
			return err
		}
		log.Info("Skipping stored categories", "skipped", selected-len(targets))
	}

	log.Info("Starting scrape",
		"categories", len(targets),
		"workers", cfg.Vendor.Workers,
		"limit", limit,
		"store", cfg.Store.Type)

	return ingestion.IngestAll(ctx, targets)
}
