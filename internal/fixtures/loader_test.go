package fixtures

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/health-insights-go/internal/models"
)

func loadTestdata(t *testing.T) *Store {
	t.Helper()
	s, err := LoadDir(context.Background(), "testdata")
	require.NoError(t, err)
	return s
}

func TestLoadDir(t *testing.T) {
	s := loadTestdata(t)

	assert.Len(t, s.Districts, 3)
	assert.Len(t, s.Facilities, 10)
	assert.Len(t, s.Candidates, 5)
	assert.Len(t, s.Hotspots, 3)
	assert.Len(t, s.Demographics, 2)
	assert.Len(t, s.Campaigns, 2)
	assert.Len(t, s.BMI, 4)
	assert.Equal(t, []string{"Breast", "Colorectal"}, s.CancerTypes)
	assert.Equal(t, []string{"40-49", "50-59"}, s.AgeGroups)
	assert.Len(t, s.DistrictScreening, 2)

	assert.Equal(t, "Al Danah", s.Districts[0].Name)
	assert.Equal(t, 120000, s.Districts[0].Population)
	assert.NotNil(t, s.Districts[0].Boundary)
}

func TestLoadDirCategories(t *testing.T) {
	s := loadTestdata(t)

	byID := map[string]models.Facility{}
	for _, f := range s.Facilities {
		byID[f.ID] = f
	}

	// "category" and "type" keys are both accepted
	assert.Equal(t, models.FacilityScreening, byID["screening_1"].Category)
	assert.Equal(t, models.FacilityScreening, byID["screening_2"].Category)
	// Unknown categories fall into the "other" bucket instead of being dropped
	assert.Equal(t, models.FacilityOther, byID["pharmacy_1"].Category)

	h, ok := s.Hotspot("air_hotspot_1")
	require.True(t, ok)
	assert.Equal(t, models.HotspotOther, h.Category)
	assert.Equal(t, models.RiskUnknown, h.RiskLevel)
	assert.Equal(t, "#3B82F6", h.RiskLevel.Color())
}

func TestLoadDirInfersDistrict(t *testing.T) {
	s := loadTestdata(t)

	for _, f := range s.Facilities {
		if f.ID == "pharmacy_1" {
			assert.Equal(t, "Yas Island", f.District)
		}
	}
	h, ok := s.Hotspot("air_hotspot_1")
	require.True(t, ok)
	assert.Equal(t, "Yas Island", h.District)

	// Al Bateen is stored with clockwise winding
	assert.Equal(t, "Al Bateen", s.DistrictAt(24.4639, 54.3346))
	assert.Equal(t, "", s.DistrictAt(0, 0))
}

func TestLoadDirDemographicsMarkedFound(t *testing.T) {
	s := loadTestdata(t)
	for _, d := range s.Demographics {
		assert.True(t, d.Found, d.District)
	}
}

func TestSummaries(t *testing.T) {
	s := loadTestdata(t)

	sums := s.Summaries()
	require.Len(t, sums, 3)
	assert.Equal(t, "Al Danah", sums[0].Name)
	assert.InDelta(t, 24.4869, sums[0].Center.Lat(), 1e-3)
	assert.InDelta(t, 54.3702, sums[0].Center.Lng(), 1e-3)
	assert.Less(t, sums[0].Bounds[0].Lat(), sums[0].Bounds[1].Lat())
}

func TestLoadFSOptionalFiles(t *testing.T) {
	fsys := fstest.MapFS{
		DistrictsFile:    {Data: []byte(`{"type":"FeatureCollection","features":[]}`)},
		FacilitiesFile:   {Data: []byte(`[]`)},
		ScreeningFile:    {Data: []byte(`{"cancer_types":[],"age_groups":[],"eligible_individuals":[]}`)},
		HotspotsFile:     {Data: []byte(`[]`)},
		DemographicsFile: {Data: []byte(`[]`)},
	}

	s, err := LoadFS(context.Background(), fsys)
	require.NoError(t, err)
	assert.Empty(t, s.Campaigns)
	assert.Empty(t, s.BMI)
}

func TestLoadFSHeatmapOnlyBMI(t *testing.T) {
	fsys := fstest.MapFS{
		DistrictsFile:    {Data: []byte(`{"type":"FeatureCollection","features":[]}`)},
		FacilitiesFile:   {Data: []byte(`[]`)},
		ScreeningFile:    {Data: []byte(`{}`)},
		HotspotsFile:     {Data: []byte(`[]`)},
		DemographicsFile: {Data: []byte(`[]`)},
		BMIFile:          {Data: []byte(`{"heatmap":[[24.5,54.4,0.7]]}`)},
	}

	s, err := LoadFS(context.Background(), fsys)
	require.NoError(t, err)
	require.Len(t, s.BMI, 1)
	assert.InDelta(t, 0.7, s.BMI[0].Intensity, 1e-9)
}

func TestLoadFSErrors(t *testing.T) {
	base := func() fstest.MapFS {
		return fstest.MapFS{
			DistrictsFile:    {Data: []byte(`{"type":"FeatureCollection","features":[]}`)},
			FacilitiesFile:   {Data: []byte(`[]`)},
			ScreeningFile:    {Data: []byte(`{}`)},
			HotspotsFile:     {Data: []byte(`[]`)},
			DemographicsFile: {Data: []byte(`[]`)},
		}
	}

	t.Run("missing required file", func(t *testing.T) {
		fsys := base()
		delete(fsys, HotspotsFile)
		_, err := LoadFS(context.Background(), fsys)
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		fsys := base()
		fsys[FacilitiesFile] = &fstest.MapFile{Data: []byte(`[{`)}
		_, err := LoadFS(context.Background(), fsys)
		assert.Error(t, err)
	})

	t.Run("unnamed district", func(t *testing.T) {
		fsys := base()
		fsys[DistrictsFile] = &fstest.MapFile{Data: []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[54.4,24.5]}}]}`)}
		_, err := LoadFS(context.Background(), fsys)
		assert.Error(t, err)
	})

	t.Run("cancelled while reading", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		_, err := LoadFS(ctx, cancelOnOpen{FS: base(), cancel: cancel})
		require.Error(t, err)
		assert.True(t, eris.Is(err, context.Canceled), err.Error())
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := LoadFS(ctx, base())
		assert.Error(t, err)
	})
}

// cancelOnOpen cancels the load as soon as the first file is opened
type cancelOnOpen struct {
	fs.FS
	cancel context.CancelFunc
}

func (c cancelOnOpen) Open(name string) (fs.File, error) {
	c.cancel()
	return c.FS.Open(name)
}

func TestNewStoreSkipsBadBoundary(t *testing.T) {
	s := NewStore(Collections{
		Districts: []models.District{{Name: "Nowhere"}},
	})
	_, ok := s.Boundary("Nowhere")
	assert.False(t, ok)
	assert.Equal(t, "", s.DistrictAt(24.5, 54.4))
}
