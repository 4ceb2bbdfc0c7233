package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jengzang/health-insights-go/internal/models"
)

// Fixture file names inside the fixture directory
const (
	DistrictsFile    = "district_boundaries.json"
	FacilitiesFile   = "healthcare_facilities.json"
	ScreeningFile    = "cancer_screening.json"
	HotspotsFile     = "hotspots.json"
	DemographicsFile = "demographics.json"
	CampaignsFile    = "health_campaigns.json"
	BMIFile          = "bmi_data.json"
)

// facilityRecord accepts the category under either "category" or "type"
type facilityRecord struct {
	ID          string        `json:"id"`
	Position    models.LatLng `json:"position"`
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Type        string        `json:"type"`
	District    string        `json:"district"`
	Description string        `json:"description"`
}

type hotspotRecord struct {
	ID           string        `json:"id"`
	Position     models.LatLng `json:"position"`
	Radius       float64       `json:"radius"`
	Category     string        `json:"category"`
	Type         string        `json:"type"`
	Name         string        `json:"name"`
	Insights     []string      `json:"insights"`
	RiskLevel    string        `json:"riskLevel"`
	RiskLevelAlt string        `json:"risk_level"`
	District     string        `json:"district"`
}

type bmiDocument struct {
	Points  []models.BMIPoint     `json:"points"`
	Heatmap []models.HeatmapPoint `json:"heatmap"`
}

// maxReaders bounds the fixture files decoded at once
const maxReaders = 4

// LoadDir loads every fixture file from a directory
func LoadDir(ctx context.Context, dir string) (*Store, error) {
	return LoadFS(ctx, os.DirFS(dir))
}

// LoadFS loads every fixture file from fsys concurrently and assembles a Store.
// Campaigns and BMI samples are optional; every other file is required.
func LoadFS(ctx context.Context, fsys fs.FS) (*Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "fixtures: load")
	}

	var c Collections
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxReaders)
	// each reader gives up once a sibling has failed or ctx is cancelled
	read := func(fn func() error) {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return eris.Wrap(err, "fixtures: load")
			}
			return fn()
		})
	}

	read(func() error {
		d, err := loadDistricts(fsys)
		c.Districts = d
		return err
	})
	read(func() error {
		f, err := loadFacilities(fsys)
		c.Facilities = f
		return err
	})
	read(func() error {
		return readJSON(fsys, ScreeningFile, &c.Screening)
	})
	read(func() error {
		h, err := loadHotspots(fsys)
		c.Hotspots = h
		return err
	})
	read(func() error {
		return readJSON(fsys, DemographicsFile, &c.Demographics)
	})
	read(func() error {
		return readOptionalJSON(fsys, CampaignsFile, &c.Campaigns)
	})
	read(func() error {
		b, err := loadBMI(fsys)
		c.BMI = b
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "fixtures: load")
	}

	s := NewStore(c)
	zap.L().Info("fixtures loaded",
		zap.Int("districts", len(s.Districts)),
		zap.Int("facilities", len(s.Facilities)),
		zap.Int("candidates", len(s.Candidates)),
		zap.Int("hotspots", len(s.Hotspots)),
		zap.Int("demographics", len(s.Demographics)),
		zap.Int("campaigns", len(s.Campaigns)),
		zap.Int("bmi_points", len(s.BMI)),
	)
	return s, nil
}

func readJSON(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return eris.Wrapf(err, "fixtures: read %s", name)
	}
	return decodeJSON(name, data, v)
}

func readOptionalJSON(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		zap.L().Debug("fixtures: optional file missing", zap.String("file", name))
		return nil
	}
	if err != nil {
		return eris.Wrapf(err, "fixtures: read %s", name)
	}
	return decodeJSON(name, data, v)
}

func decodeJSON(name string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return eris.Wrapf(err, "fixtures: decode %s", name)
	}
	return nil
}

func loadDistricts(fsys fs.FS) ([]models.District, error) {
	var fc geojson.FeatureCollection
	if err := readJSON(fsys, DistrictsFile, &fc); err != nil {
		return nil, err
	}

	districts := make([]models.District, 0, len(fc.Features))
	for i, f := range fc.Features {
		name, _ := f.Properties["name"].(string)
		if name == "" {
			return nil, eris.Errorf("fixtures: district feature %d has no name", i)
		}
		districts = append(districts, models.District{
			Name:       name,
			Population: intProperty(f.Properties["population"]),
			Boundary:   f.Geometry,
		})
	}
	return districts, nil
}

func intProperty(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	case int:
		return n
	}
	return 0
}

func loadFacilities(fsys fs.FS) ([]models.Facility, error) {
	var records []facilityRecord
	if err := readJSON(fsys, FacilitiesFile, &records); err != nil {
		return nil, err
	}

	facilities := make([]models.Facility, 0, len(records))
	for _, r := range records {
		category := r.Category
		if category == "" {
			category = r.Type
		}
		facilities = append(facilities, models.Facility{
			ID:          r.ID,
			Position:    r.Position,
			Name:        r.Name,
			Category:    models.ParseFacilityCategory(category),
			District:    r.District,
			Description: r.Description,
		})
	}
	return facilities, nil
}

func loadHotspots(fsys fs.FS) ([]models.Hotspot, error) {
	var records []hotspotRecord
	if err := readJSON(fsys, HotspotsFile, &records); err != nil {
		return nil, err
	}

	hotspots := make([]models.Hotspot, 0, len(records))
	for _, r := range records {
		category := r.Category
		if category == "" {
			category = r.Type
		}
		risk := r.RiskLevel
		if risk == "" {
			risk = r.RiskLevelAlt
		}
		insights := r.Insights
		if insights == nil {
			insights = []string{}
		}
		hotspots = append(hotspots, models.Hotspot{
			ID:        r.ID,
			Position:  r.Position,
			Radius:    r.Radius,
			Category:  models.ParseHotspotCategory(category),
			Name:      r.Name,
			Insights:  insights,
			RiskLevel: models.ParseRiskLevel(risk),
			District:  r.District,
		})
	}
	return hotspots, nil
}

func loadBMI(fsys fs.FS) ([]models.BMIPoint, error) {
	var doc bmiDocument
	if err := readOptionalJSON(fsys, BMIFile, &doc); err != nil {
		return nil, err
	}
	if len(doc.Points) > 0 {
		return doc.Points, nil
	}

	// Older fixtures only carry the [lat, lng, intensity] triples
	points := make([]models.BMIPoint, 0, len(doc.Heatmap))
	for _, h := range doc.Heatmap {
		points = append(points, models.BMIPoint{Lat: h[0], Lng: h[1], Intensity: h[2]})
	}
	return points, nil
}
