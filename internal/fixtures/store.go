package fixtures

import (
	"go.uber.org/zap"

	"github.com/jengzang/health-insights-go/internal/models"
	"github.com/jengzang/health-insights-go/internal/spatial"
)

// Store holds every fixture collection. It is built once at startup and never mutated.
type Store struct {
	Districts         []models.District
	Facilities        []models.Facility
	Candidates        []models.ScreeningCandidate
	CancerTypes       []string
	AgeGroups         []string
	DistrictScreening []models.DistrictScreening
	Hotspots          []models.Hotspot
	Demographics      []models.DemographicProfile
	Campaigns         []models.Campaign
	BMI               []models.BMIPoint

	boundaries map[string]*spatial.Boundary
}

// Collections is the raw material a Store is assembled from
type Collections struct {
	Districts    []models.District
	Facilities   []models.Facility
	Screening    models.ScreeningData
	Hotspots     []models.Hotspot
	Demographics []models.DemographicProfile
	Campaigns    []models.Campaign
	BMI          []models.BMIPoint
}

// NewStore indexes district boundaries and fills in missing district membership
// of facilities and hotspots by point-in-boundary lookup.
func NewStore(c Collections) *Store {
	s := &Store{
		Districts:         c.Districts,
		Facilities:        append([]models.Facility(nil), c.Facilities...),
		Candidates:        c.Screening.EligibleIndividuals,
		CancerTypes:       c.Screening.CancerTypes,
		AgeGroups:         c.Screening.AgeGroups,
		DistrictScreening: c.Screening.DistrictScreening,
		Hotspots:          append([]models.Hotspot(nil), c.Hotspots...),
		Demographics:      append([]models.DemographicProfile(nil), c.Demographics...),
		Campaigns:         c.Campaigns,
		BMI:               c.BMI,
		boundaries:        make(map[string]*spatial.Boundary, len(c.Districts)),
	}

	for _, d := range s.Districts {
		if d.Boundary == nil {
			continue
		}
		b, err := spatial.NewBoundary(d.Boundary)
		if err != nil {
			zap.L().Warn("fixtures: skipping district boundary",
				zap.String("district", d.Name), zap.Error(err))
			continue
		}
		s.boundaries[d.Name] = b
	}

	for i := range s.Facilities {
		f := &s.Facilities[i]
		if f.District == "" {
			f.District = s.DistrictAt(f.Position.Lat(), f.Position.Lng())
		}
	}
	for i := range s.Hotspots {
		h := &s.Hotspots[i]
		if h.District == "" {
			h.District = s.DistrictAt(h.Position.Lat(), h.Position.Lng())
		}
	}
	for i := range s.Demographics {
		s.Demographics[i].Found = true
	}

	return s
}

// Boundary returns the prepared boundary of a district
func (s *Store) Boundary(district string) (*spatial.Boundary, bool) {
	b, ok := s.boundaries[district]
	return b, ok
}

// DistrictAt returns the first district whose boundary contains the point, or "" if none does
func (s *Store) DistrictAt(lat, lng float64) string {
	for _, d := range s.Districts {
		if b, ok := s.boundaries[d.Name]; ok && b.Contains(lat, lng) {
			return d.Name
		}
	}
	return ""
}

// Hotspot returns the hotspot with the given id
func (s *Store) Hotspot(id string) (models.Hotspot, bool) {
	for _, h := range s.Hotspots {
		if h.ID == id {
			return h, true
		}
	}
	return models.Hotspot{}, false
}

// Summaries returns the API view of every district in fixture order
func (s *Store) Summaries() []models.DistrictSummary {
	out := make([]models.DistrictSummary, 0, len(s.Districts))
	for _, d := range s.Districts {
		sum := models.DistrictSummary{Name: d.Name, Population: d.Population}
		if b, ok := s.boundaries[d.Name]; ok {
			lat, lng := b.Center()
			sum.Center = models.LatLng{lat, lng}
			swLat, swLng, neLat, neLng := b.Bounds()
			sum.Bounds = [2]models.LatLng{{swLat, swLng}, {neLat, neLng}}
		}
		out = append(out, sum)
	}
	return out
}
