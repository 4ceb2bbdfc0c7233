package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jengzang/health-insights-go/internal/config"
	"github.com/jengzang/health-insights-go/internal/database"
	"github.com/jengzang/health-insights-go/internal/fixtures"
	"github.com/jengzang/health-insights-go/internal/models"
	"github.com/jengzang/health-insights-go/internal/repository"
	"github.com/jengzang/health-insights-go/internal/view"
)

// loadStore reads the fixtures from the configured source
func loadStore(ctx context.Context, c *config.Config) (*fixtures.Store, error) {
	var (
		store *fixtures.Store
		err   error
	)

	switch c.Fixtures.Source {
	case config.SourceSQLite:
		store, err = loadFromDatabase(ctx, c.Database.Path)
	default:
		store, err = fixtures.LoadDir(ctx, c.Fixtures.Dir)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "load fixtures from %s", c.Fixtures.Source)
	}

	zap.L().Info("fixtures loaded",
		zap.String("source", c.Fixtures.Source),
		zap.Int("districts", len(store.Districts)),
		zap.Int("facilities", len(store.Facilities)),
		zap.Int("candidates", len(store.Candidates)),
		zap.Int("hotspots", len(store.Hotspots)),
		zap.Int("bmi_points", len(store.BMI)),
	)
	return store, nil
}

func loadFromDatabase(ctx context.Context, path string) (*fixtures.Store, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := database.NewMigrationManager(db).RunMigrations(ctx); err != nil {
		return nil, err
	}
	return repository.NewFixtureRepository(db).Load(ctx)
}

func mapConfig(c *config.Config) view.MapConfig {
	m := view.DefaultMapConfig()
	m.Center = models.LatLng{c.Map.CenterLat, c.Map.CenterLng}
	if c.Map.Zoom > 0 {
		m.Zoom = c.Map.Zoom
	}
	return m
}
