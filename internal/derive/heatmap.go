package derive

import (
	"sort"

	"github.com/jengzang/health-insights-go/internal/fixtures"
	"github.com/jengzang/health-insights-go/internal/models"
	"github.com/jengzang/health-insights-go/internal/spatial"
	"github.com/jengzang/health-insights-go/internal/stats"
)

// HeatPoints returns the BMI samples inside the filter's bounding box as
// heatmap triples. A nil bound on any side leaves that side open.
func HeatPoints(s *fixtures.Store, f models.HeatmapFilter) []models.HeatmapPoint {
	out := []models.HeatmapPoint{}
	for _, p := range s.BMI {
		if !inBox(p, f) {
			continue
		}
		out = append(out, models.HeatmapPoint{p.Lat, p.Lng, p.Intensity})
	}
	return out
}

// AggregateHeat averages BMI intensities per s2 cell at level. Points are
// returned at the cell center, ordered by cell token.
func AggregateHeat(s *fixtures.Store, f models.HeatmapFilter, level int) []models.HeatmapPoint {
	type cell struct {
		sum   float64
		count int
	}
	cells := map[string]*cell{}
	for _, p := range s.BMI {
		if !inBox(p, f) {
			continue
		}
		token := spatial.CellToken(p.Lat, p.Lng, level)
		c, ok := cells[token]
		if !ok {
			c = &cell{}
			cells[token] = c
		}
		c.sum += p.Intensity
		c.count++
	}

	tokens := make([]string, 0, len(cells))
	for token := range cells {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	out := make([]models.HeatmapPoint, 0, len(tokens))
	for _, token := range tokens {
		c := cells[token]
		lat, lng := spatial.CellCenter(token)
		out = append(out, models.HeatmapPoint{lat, lng, c.sum / float64(c.count)})
	}
	return out
}

// Heatmap builds the heatmap API response. level 0 returns raw samples.
func Heatmap(s *fixtures.Store, f models.HeatmapFilter, level int) models.HeatmapResponse {
	var points []models.HeatmapPoint
	if level > 0 {
		points = AggregateHeat(s, f, level)
	} else {
		points = HeatPoints(s, f)
	}

	resp := models.HeatmapResponse{
		Points: points,
		Count:  len(points),
		Metric: "bmi_intensity",
	}
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p[2]
		if i == 0 || p[2] > resp.MaxValue {
			resp.MaxValue = p[2]
		}
		if i == 0 || p[2] < resp.MinValue {
			resp.MinValue = p[2]
		}
	}
	resp.Mean = stats.Mean(values)
	resp.Breaks = stats.Quartiles(values)
	return resp
}

func inBox(p models.BMIPoint, f models.HeatmapFilter) bool {
	if f.MinLat != nil && p.Lat < *f.MinLat {
		return false
	}
	if f.MaxLat != nil && p.Lat > *f.MaxLat {
		return false
	}
	if f.MinLon != nil && p.Lng < *f.MinLon {
		return false
	}
	if f.MaxLon != nil && p.Lng > *f.MaxLon {
		return false
	}
	return p.Intensity >= f.MinIntensity
}
