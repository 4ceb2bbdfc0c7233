package view

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/health-insights-go/internal/filter"
	"github.com/jengzang/health-insights-go/internal/fixtures"
	"github.com/jengzang/health-insights-go/internal/models"
)

func newComposer(t *testing.T) *Composer {
	t.Helper()
	s, err := fixtures.LoadDir(context.Background(), "../fixtures/testdata")
	require.NoError(t, err)
	c, err := DefaultCatalog()
	require.NoError(t, err)
	return NewComposer(s, c, DefaultMapConfig())
}

func markerIDs(t *testing.T, l Layer) []string {
	t.Helper()
	data, ok := l.Data.(MarkerData)
	require.True(t, ok, "layer %s is not a marker layer", l.ID)
	ids := make([]string, 0, len(data.Markers))
	for _, m := range data.Markers {
		ids = append(ids, m.ID)
	}
	return ids
}

func mustLayer(t *testing.T, snap Snapshot, id string) Layer {
	t.Helper()
	l, ok := snap.Layer(id)
	require.True(t, ok, "missing layer %s", id)
	return l
}

func TestSummaryDefault(t *testing.T) {
	c := newComposer(t)
	st := filter.Default(models.ViewSummary, c.Catalog().Defaults())

	snap := c.Compose(st)
	assert.Equal(t, models.ViewSummary, snap.View)
	assert.Equal(t, "Geospatial Public Health Insights", snap.Title)
	assert.Equal(t, models.LatLng{24.4869, 54.3702}, snap.Viewport.Center)
	assert.Equal(t, 11, snap.Viewport.Zoom)
	assert.Nil(t, snap.Viewport.Bounds)

	require.Len(t, snap.Layers, len(c.Catalog().Layers))
	for i, e := range c.Catalog().Layers {
		assert.Equal(t, e.ID, snap.Layers[i].ID)
		assert.Equal(t, e.Kind, snap.Layers[i].Data.Kind())
		assert.Equal(t, e.Default, snap.Layers[i].Visible, e.ID)
	}

	heat := mustLayer(t, snap, "bmiHeatmap")
	assert.Equal(t, 4, heat.Data.Len())
	assert.Equal(t, 25.0, heat.Style.Radius)

	assert.ElementsMatch(t, []string{"hospital_1", "hospital_2", "hospital_3", "hospital_4"},
		markerIDs(t, mustLayer(t, snap, "hospitals")))
	assert.Equal(t, []string{"pharmacy_1"}, markerIDs(t, mustLayer(t, snap, "otherFacilities")))

	// every district is covered by some campaign
	assert.Equal(t, 3, mustLayer(t, snap, "campaigns").Data.Len())

	side := snap.Sidebar.Summary
	require.NotNil(t, side)
	assert.Nil(t, snap.Sidebar.Cancer)
	assert.Equal(t, "Abu Dhabi (Overall)", side.Region)
	assert.Equal(t, "Al Danah", side.Demographics.District)
	assert.Empty(t, side.DemographicsMessage)
	assert.Len(t, side.Campaigns, 2)
	assert.Len(t, snap.Charts, 3)
	assert.Len(t, snap.LayerControl, 6)
}

func TestSummaryDistrictSelected(t *testing.T) {
	c := newComposer(t)
	st := filter.Default(models.ViewSummary, c.Catalog().Defaults())
	st.SetDistrict("Al Bateen")

	snap := c.Compose(st)

	boundaries := mustLayer(t, snap, "districtBoundaries")
	assert.Equal(t, ClickSelectDistrict, boundaries.OnClick)
	data := boundaries.Data.(ChoroplethData)
	require.Len(t, data.Features, 3)
	for _, f := range data.Features {
		if f.Name == "Al Bateen" {
			assert.True(t, f.Selected)
			assert.Equal(t, "#4338CA", f.Style.Color)
			assert.Equal(t, 3.0, f.Style.Weight)
			assert.Equal(t, 0.3, f.Style.FillOpacity)
		} else {
			assert.False(t, f.Selected)
			assert.Equal(t, "#3B82F6", f.Style.Color)
			assert.Equal(t, 0.1, f.Style.FillOpacity)
		}
		assert.NotNil(t, f.Geometry)
	}

	// summary markers ignore the district
	assert.Len(t, markerIDs(t, mustLayer(t, snap, "hospitals")), 4)

	side := snap.Sidebar.Summary
	assert.Equal(t, "Al Bateen", side.Region)
	assert.Equal(t, 6400, side.Demographics.Density)
	require.Len(t, side.Campaigns, 1)
	assert.Equal(t, "campaign_2", side.Campaigns[0].ID)
	require.NotNil(t, snap.Viewport.Bounds)
}

func TestSummaryMissingDemographics(t *testing.T) {
	c := newComposer(t)
	st := filter.Default(models.ViewSummary, c.Catalog().Defaults())
	st.SetDistrict("Yas Island")

	snap := c.Compose(st)
	side := snap.Sidebar.Summary
	assert.False(t, side.Demographics.Found)
	assert.Equal(t, "No demographic data available for Yas Island.", side.DemographicsMessage)
	assert.NotNil(t, snap.Charts)
	assert.Empty(t, snap.Charts)
}

func TestCancerDefaults(t *testing.T) {
	c := newComposer(t)
	snap := c.Compose(filter.Default(models.ViewCancer, nil))

	assert.Equal(t, "Early Detection for Cancer", snap.Title)
	require.Len(t, snap.Layers, 2)
	assert.ElementsMatch(t,
		[]string{"hospital_1", "hospital_2", "hospital_3", "hospital_4", "screening_1", "screening_2"},
		markerIDs(t, mustLayer(t, snap, LayerFacilities)))

	side := snap.Sidebar.Cancer
	require.NotNil(t, side)
	assert.Equal(t, CancerSummary{TotalEligible: 3, Area: "All Areas", CancerTypes: "All Types", AgeGroups: "All Ages"}, side.Summary)
	assert.Equal(t, "Select filters to identify eligible individuals for early cancer detection.", side.Hint)
	assert.Empty(t, side.EmptyMessage)
	assert.Equal(t, []string{}, side.Selection.CancerTypes)

	ch, ok := snap.Chart(ChartEligible)
	require.True(t, ok)
	assert.Equal(t, []string{"Breast", "Colorectal"}, ch.Labels)
	assert.Equal(t, []float64{2, 1}, ch.Values)
}

func TestCancerScenario(t *testing.T) {
	c := newComposer(t)
	st := filter.Default(models.ViewCancer, nil)
	st.SetCancerTypes([]string{"Breast"})
	st.SetAgeGroups([]string{"40-49"})

	side := c.Compose(st).Sidebar.Cancer
	var ids []string
	for _, e := range side.Eligible {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"p1", "p2"}, ids)
	assert.Equal(t, "Breast", side.Summary.CancerTypes)
	assert.Equal(t, "40-49", side.Summary.AgeGroups)
	assert.Equal(t, "Showing eligible individuals for Breast in age groups 40-49 across all areas.", side.Hint)

	st.SetDistrict("Al Danah")
	side = c.Compose(st).Sidebar.Cancer
	assert.Equal(t, 1, side.Summary.TotalEligible)
	assert.Equal(t, "Al Danah", side.Summary.Area)
	assert.Equal(t, "Showing eligible individuals for Breast in age groups 40-49 in Al Danah.", side.Hint)
}

func TestCancerEmptyDistrict(t *testing.T) {
	c := newComposer(t)
	st := filter.Default(models.ViewCancer, nil)
	st.SetDistrict("Yas Island")

	snap := c.Compose(st)
	facilities := mustLayer(t, snap, LayerFacilities)
	assert.Equal(t, 0, facilities.Data.Len())
	assert.True(t, facilities.Visible)

	side := snap.Sidebar.Cancer
	assert.NotNil(t, side.Eligible)
	assert.Empty(t, side.Eligible)
	assert.Equal(t, "No eligible individuals found with the current filters.", side.EmptyMessage)
	assert.Empty(t, side.Participation)
}

func TestHotspotPlaceholder(t *testing.T) {
	c := newComposer(t)
	snap := c.Compose(filter.Default(models.ViewHotspots, nil))

	side := snap.Sidebar.Hotspots
	require.NotNil(t, side)
	assert.Nil(t, side.Detail)
	assert.Equal(t,
		"Click on any obesity hotspot on the map to view detailed insights and nearby facilities.",
		side.Placeholder)
	// the fixtures hold an air-quality hotspot, so Other is offered too
	require.Len(t, side.Categories, 3)
	assert.True(t, side.Categories[0].Active)
	assert.Equal(t, models.HotspotOther, side.Categories[2].Value)

	circles := mustLayer(t, snap, LayerHotspots)
	assert.Equal(t, ClickSelectHotspot, circles.OnClick)
	assert.Equal(t, 1, circles.Data.Len())

	facilities := mustLayer(t, snap, LayerFacilities)
	assert.False(t, facilities.Visible)
	assert.Equal(t, 0, facilities.Data.Len())
}

func TestHotspotSelected(t *testing.T) {
	c := newComposer(t)
	h, ok := c.Store().Hotspot("obesity_hotspot_1")
	require.True(t, ok)

	st := filter.Default(models.ViewHotspots, nil)
	st.SelectHotspot(h)
	snap := c.Compose(st)

	assert.Equal(t, h.Position, snap.Viewport.Center)

	facilities := mustLayer(t, snap, LayerFacilities)
	assert.True(t, facilities.Visible)
	assert.ElementsMatch(t, []string{"hospital_1", "hospital_2", "clinic_1"}, markerIDs(t, facilities))
	for _, m := range facilities.Data.(MarkerData).Markers {
		require.NotNil(t, m.DistanceMeters)
		assert.Equal(t, "Al Danah", m.District)
	}

	for _, f := range mustLayer(t, snap, LayerDistricts).Data.(ChoroplethData).Features {
		assert.Equal(t, f.Name == "Al Danah", f.Selected, f.Name)
	}

	side := snap.Sidebar.Hotspots
	assert.Empty(t, side.Placeholder)
	require.NotNil(t, side.Detail)
	assert.Equal(t, "HIGH", side.Detail.RiskLabel)
	assert.Equal(t, "#EF4444", side.Detail.RiskColor)
	assert.Len(t, side.Detail.Facilities, 3)
	assert.Empty(t, side.Detail.FacilitiesMessage)
	assert.Equal(t, "Increase physical activity programs in this area", side.Detail.RecommendedActions[0])
}

func TestHotspotWithoutFacilities(t *testing.T) {
	c := newComposer(t)
	h, ok := c.Store().Hotspot("air_hotspot_1")
	require.True(t, ok)

	st := filter.Default(models.ViewHotspots, nil)
	st.SetHotspotCategory(models.HotspotOther)
	st.SelectHotspot(h)
	snap := c.Compose(st)

	assert.False(t, mustLayer(t, snap, LayerFacilities).Visible)
	detail := snap.Sidebar.Hotspots.Detail
	require.NotNil(t, detail)
	assert.Equal(t, "No relevant facilities found in this area.", detail.FacilitiesMessage)
	assert.Equal(t, "UNKNOWN", detail.RiskLabel)
	assert.Equal(t, []string{}, detail.RecommendedActions)
}

func unrecognizedHotspotComposer(t *testing.T) *Composer {
	t.Helper()
	store := fixtures.NewStore(fixtures.Collections{
		Hotspots: []models.Hotspot{{
			ID:        "diabetes_1",
			Name:      "Diabetes Watch",
			Position:  models.LatLng{24.48, 54.37},
			Radius:    300,
			Category:  models.ParseHotspotCategory("diabetes"),
			RiskLevel: models.ParseRiskLevel("severe"),
		}},
	})
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	return NewComposer(store, catalog, DefaultMapConfig())
}

func findCircle(l Layer, id string) (Circle, bool) {
	data, ok := l.Data.(CircleData)
	if !ok {
		return Circle{}, false
	}
	for _, c := range data.Circles {
		if c.ID == id {
			return c, true
		}
	}
	return Circle{}, false
}

func TestUnrecognizedHotspotRenderedInSummary(t *testing.T) {
	c := unrecognizedHotspotComposer(t)
	st := filter.Default(models.ViewSummary, c.Catalog().Defaults())
	for _, e := range c.Catalog().Layers {
		st.SetLayer(e.ID, true)
	}
	snap := c.Compose(st)

	var rendered []string
	for _, l := range snap.Layers {
		if _, ok := findCircle(l, "diabetes_1"); ok {
			rendered = append(rendered, l.ID)
		}
	}
	assert.Equal(t, []string{"otherHotspots"}, rendered)

	circle, _ := findCircle(mustLayer(t, snap, "otherHotspots"), "diabetes_1")
	assert.Equal(t, models.HotspotOther, circle.Category)
	assert.Equal(t, models.RiskUnknown, circle.RiskLevel)
	assert.Equal(t, models.RiskUnknown.Color(), circle.Style.Color)
	assert.Equal(t, "#3B82F6", circle.Style.FillColor)
}

func TestUnrecognizedHotspotRenderedInHotspotView(t *testing.T) {
	c := unrecognizedHotspotComposer(t)
	st := filter.Default(models.ViewHotspots, nil)

	snap := c.Compose(st)
	side := snap.Sidebar.Hotspots
	require.Len(t, side.Categories, 3)
	assert.Equal(t, models.HotspotOther, side.Categories[2].Value)
	assert.Equal(t, 0, mustLayer(t, snap, LayerHotspots).Data.Len())

	st.SetHotspotCategory(models.HotspotOther)
	snap = c.Compose(st)
	circle, ok := findCircle(mustLayer(t, snap, LayerHotspots), "diabetes_1")
	require.True(t, ok)
	assert.Equal(t, models.RiskUnknown.Color(), circle.Style.Color)

	h, ok := c.Store().Hotspot("diabetes_1")
	require.True(t, ok)
	st.SelectHotspot(h)
	detail := c.Compose(st).Sidebar.Hotspots.Detail
	require.NotNil(t, detail)
	assert.Equal(t, "UNKNOWN", detail.RiskLabel)
	assert.Equal(t, models.RiskUnknown.Color(), detail.RiskColor)
	assert.Equal(t, []string{}, detail.RecommendedActions)
	assert.Equal(t, "No relevant facilities found in this area.", detail.FacilitiesMessage)
}

func TestSnapshotJSON(t *testing.T) {
	c := newComposer(t)
	for _, v := range models.Views {
		data, err := json.Marshal(c.Compose(filter.Default(v, c.Catalog().Defaults())))
		require.NoError(t, err, v)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, string(v), decoded["view"])
		assert.NotEmpty(t, decoded["layers"])
	}
}

func TestComposeIsPure(t *testing.T) {
	c := newComposer(t)
	st := filter.Default(models.ViewCancer, nil)
	st.SetCancerTypes([]string{"Colorectal"})
	before := st.Clone()

	a := c.Compose(st)
	b := c.Compose(st)
	assert.Equal(t, a, b)
	assert.Equal(t, before, st)
}
