package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/health-insights-go/internal/fixtures"
	"github.com/jengzang/health-insights-go/internal/models"
	"github.com/jengzang/health-insights-go/internal/shell"
	"github.com/jengzang/health-insights-go/internal/view"
)

func testComposer(t *testing.T) *view.Composer {
	t.Helper()
	store, err := fixtures.LoadDir(context.Background(), "../../internal/fixtures/testdata")
	require.NoError(t, err)
	catalog, err := view.DefaultCatalog()
	require.NoError(t, err)
	return view.NewComposer(store, catalog, view.DefaultMapConfig())
}

func TestBuildSnapshotCancer(t *testing.T) {
	snap, err := buildSnapshot(testComposer(t), snapshotOptions{
		View:        "cancer",
		CancerTypes: []string{"Breast"},
		AgeGroups:   []string{"40-49"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ViewCancer, snap.View)
	require.NotNil(t, snap.Sidebar.Cancer)
	assert.Len(t, snap.Sidebar.Cancer.Eligible, 2)
}

func TestBuildSnapshotHotspot(t *testing.T) {
	snap, err := buildSnapshot(testComposer(t), snapshotOptions{
		View:            "hotspots",
		HotspotCategory: "screening",
		Hotspot:         "screening_hotspot_1",
	})
	require.NoError(t, err)
	require.NotNil(t, snap.Sidebar.Hotspots)
	require.NotNil(t, snap.Sidebar.Hotspots.Detail)
	assert.Equal(t, "screening_hotspot_1", snap.Sidebar.Hotspots.Detail.Hotspot.ID)
}

func TestBuildSnapshotRejectsInvalidOptions(t *testing.T) {
	c := testComposer(t)

	_, err := buildSnapshot(c, snapshotOptions{View: "settings"})
	assert.Error(t, err)

	// districts are not selectable in the hotspots view
	_, err = buildSnapshot(c, snapshotOptions{View: "hotspots", District: "Al Danah"})
	assert.Error(t, err)
}

func TestSnapshotEventsLayers(t *testing.T) {
	events := snapshotEvents(models.ViewSummary, snapshotOptions{
		ShowLayers: []string{"parks"},
		HideLayers: []string{"bmiHeatmap"},
	})
	require.Len(t, events, 2)
	assert.Equal(t, shell.EventSetLayer, events[0].Type)
	assert.True(t, *events[0].Visible)
	assert.False(t, *events[1].Visible)
}

func TestWriteCharts(t *testing.T) {
	snap, err := buildSnapshot(testComposer(t), snapshotOptions{View: "summary"})
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, writeCharts(snap, dir))

	require.NotEmpty(t, snap.Charts)
	_, err = os.Stat(filepath.Join(dir, view.ChartGender+".png"))
	assert.NoError(t, err)
}
