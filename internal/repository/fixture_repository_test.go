package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/health-insights-go/internal/database"
	"github.com/jengzang/health-insights-go/internal/fixtures"
	"github.com/jengzang/health-insights-go/internal/models"
)

func newTestRepository(t *testing.T) *FixtureRepository {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() }) //nolint:errcheck
	require.NoError(t, database.NewMigrationManager(db).RunMigrations(context.Background()))
	return NewFixtureRepository(db)
}

func loadFixtures(t *testing.T) *fixtures.Store {
	t.Helper()
	s, err := fixtures.LoadDir(context.Background(), "../fixtures/testdata")
	require.NoError(t, err)
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	want := loadFixtures(t)

	require.NoError(t, repo.Save(ctx, want))
	got, err := repo.Load(ctx)
	require.NoError(t, err)

	require.Len(t, got.Districts, len(want.Districts))
	for i := range want.Districts {
		assert.Equal(t, want.Districts[i].Name, got.Districts[i].Name)
		assert.Equal(t, want.Districts[i].Population, got.Districts[i].Population)
	}
	assert.Equal(t, want.Summaries(), got.Summaries())

	assert.Equal(t, want.Facilities, got.Facilities)
	assert.Equal(t, want.Candidates, got.Candidates)
	assert.Equal(t, want.CancerTypes, got.CancerTypes)
	assert.Equal(t, want.AgeGroups, got.AgeGroups)
	assert.Equal(t, want.DistrictScreening, got.DistrictScreening)
	assert.Equal(t, want.Hotspots, got.Hotspots)
	assert.Equal(t, want.Demographics, got.Demographics)
	assert.Equal(t, want.Campaigns, got.Campaigns)
	assert.Equal(t, want.BMI, got.BMI)

	// boundaries survive the EWKB round trip
	assert.Equal(t, "Al Danah", got.DistrictAt(24.4869, 54.3702))
	assert.Equal(t, "Yas Island", got.DistrictAt(24.4999, 54.6050))
}

func TestSaveReplacesRows(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, loadFixtures(t)))

	small := fixtures.NewStore(fixtures.Collections{
		Facilities: []models.Facility{
			{ID: "f1", Name: "Only Clinic", Category: models.FacilityClinic, Position: models.LatLng{24.4, 54.4}},
		},
	})
	require.NoError(t, repo.Save(ctx, small))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Districts)
	assert.Empty(t, got.Hotspots)
	require.Len(t, got.Facilities, 1)
	assert.Equal(t, models.FacilityClinic, got.Facilities[0].Category)
	assert.Equal(t, "", got.Facilities[0].District)
}

func TestLoadEmptyDatabase(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Districts)
	assert.Empty(t, got.Candidates)
	assert.Empty(t, got.BMI)
}

func TestSaveCancelledContext(t *testing.T) {
	repo := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, loadFixtures(t))
	assert.Error(t, err)
}
