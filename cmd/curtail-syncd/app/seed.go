package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/curtail-dev/curtail-sync-server/internal/config"
	"github.com/curtail-dev/curtail-sync-server/internal/db"
	"github.com/curtail-dev/curtail-sync-server/internal/links"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample redirect records",
	Long: `Seed the database with a handful of sample redirect records for
development and manual testing. Existing slugs are skipped.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	if err := seedCmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}
}

// seedRecord is one sample redirect inserted by the seed command.
type seedRecord struct {
	slug      string
	targetURL string
	expiresIn time.Duration
}

var seedRecords = []seedRecord{
	{slug: "docs", targetURL: "https://docs.curtail.dev"},
	{slug: "blog", targetURL: "https://curtail.dev/blog"},
	{slug: "status", targetURL: "https://status.curtail.dev"},
	{slug: "summer-sale", targetURL: "https://curtail.dev/promo/summer", expiresIn: 30 * 24 * time.Hour},
	{slug: "beta-signup", targetURL: "https://curtail.dev/beta", expiresIn: 90 * 24 * time.Hour},
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := db.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// The seed command has no running sync engine; a throwaway tracker
	// satisfies the store's mutation hook.
	store, err := links.NewStore(pool, noopDirtyMarker{})
	if err != nil {
		return fmt.Errorf("failed to create link store: %w", err)
	}

	existing, err := store.ListRedirects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list existing records: %w", err)
	}
	existingSlugs := make(map[string]bool, len(existing))
	for _, rec := range existing {
		existingSlugs[rec.Slug] = true
	}

	created := 0
	for _, seed := range seedRecords {
		if existingSlugs[seed.slug] {
			slog.Info("Skipping existing slug", "slug", seed.slug)
			continue
		}

		var expiresAt *time.Time
		if seed.expiresIn > 0 {
			t := time.Now().UTC().Add(seed.expiresIn)
			expiresAt = &t
		}

		rec, err := store.Create(ctx, seed.slug, seed.targetURL, expiresAt)
		if err != nil {
			return fmt.Errorf("failed to seed record %q: %w", seed.slug, err)
		}
		slog.Info("Seeded redirect record", "slug", rec.Slug, "id", rec.ID)
		created++
	}

	slog.Info("Seeding complete", "created", created, "skipped", len(seedRecords)-created)
	return nil
}

// noopDirtyMarker satisfies links.DirtyMarker for offline commands.
type noopDirtyMarker struct{}

func (noopDirtyMarker) MarkDirty() {}
