package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jengzang/health-insights-go/internal/database"
	"github.com/jengzang/health-insights-go/internal/fixtures"
	"github.com/jengzang/health-insights-go/internal/repository"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the JSON fixture directory into SQLite",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		store, err := fixtures.LoadDir(ctx, cfg.Fixtures.Dir)
		if err != nil {
			return eris.Wrap(err, "import: load json fixtures")
		}

		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.NewMigrationManager(db).RunMigrations(ctx); err != nil {
			return err
		}
		if err := repository.NewFixtureRepository(db).Save(ctx, store); err != nil {
			return eris.Wrap(err, "import: save fixtures")
		}

		zap.L().Info("import complete",
			zap.String("dir", cfg.Fixtures.Dir),
			zap.String("database", cfg.Database.Path),
			zap.Int("districts", len(store.Districts)),
			zap.Int("facilities", len(store.Facilities)),
			zap.Int("hotspots", len(store.Hotspots)),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
