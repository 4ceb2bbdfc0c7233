// Package derive holds the pure functions that turn fixtures plus a filter
// state into the record subsets and aggregates a view displays. Nothing here
// mutates its inputs or fails; unmatched keys degrade to empty results.
package derive

import (
	"sort"

	"github.com/jengzang/health-insights-go/internal/filter"
	"github.com/jengzang/health-insights-go/internal/fixtures"
	"github.com/jengzang/health-insights-go/internal/models"
	"github.com/jengzang/health-insights-go/internal/spatial"
)

// Options are the values the filter controls offer
type Options struct {
	Districts   []string `json:"districts"`
	CancerTypes []string `json:"cancer_types"`
	AgeGroups   []string `json:"age_groups"`
}

// BuildOptions derives the option lists from the fixtures. They do not depend on filter state.
func BuildOptions(s *fixtures.Store) Options {
	var districts, cancerTypes, ageGroups ordered

	for _, d := range s.Districts {
		districts.add(d.Name)
	}
	for _, f := range s.Facilities {
		districts.add(f.District)
	}
	for _, d := range s.Demographics {
		districts.add(d.District)
	}

	for _, v := range s.CancerTypes {
		cancerTypes.add(v)
	}
	for _, v := range s.AgeGroups {
		ageGroups.add(v)
	}
	for _, c := range s.Candidates {
		cancerTypes.add(c.EligibleFor)
		ageGroups.add(c.AgeGroup)
	}

	return Options{
		Districts:   districts.list(),
		CancerTypes: cancerTypes.list(),
		AgeGroups:   ageGroups.list(),
	}
}

// ordered collects distinct non-empty strings in first-seen order
type ordered struct {
	seen   map[string]bool
	values []string
}

func (o *ordered) add(v string) {
	if v == "" {
		return
	}
	if o.seen == nil {
		o.seen = map[string]bool{}
	}
	if o.seen[v] {
		return
	}
	o.seen[v] = true
	o.values = append(o.values, v)
}

func (o *ordered) list() []string {
	if o.values == nil {
		return []string{}
	}
	return o.values
}

// EligibleCandidates returns the unscreened candidates matching the district,
// cancer type and age group dimensions of st. An unset dimension imposes no
// constraint. Screened candidates are always excluded.
func EligibleCandidates(s *fixtures.Store, st *filter.State) []models.ScreeningCandidate {
	out := []models.ScreeningCandidate{}
	for _, c := range s.Candidates {
		if c.Screened {
			continue
		}
		if st.District != "" && c.District != st.District {
			continue
		}
		if !st.CancerTypes.Matches(c.EligibleFor) {
			continue
		}
		if !st.AgeGroups.Matches(c.AgeGroup) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CancerAllowlist is the facility allowlist of the cancer detection view
var CancerAllowlist = []models.FacilityCategory{models.FacilityScreening, models.FacilityHospital}

// HotspotAllowlist returns the facility categories relevant to a hotspot category
func HotspotAllowlist(c models.HotspotCategory) []models.FacilityCategory {
	switch c {
	case models.HotspotObesity:
		return []models.FacilityCategory{models.FacilityGym, models.FacilityPark, models.FacilityHospital, models.FacilityClinic}
	case models.HotspotScreening:
		return []models.FacilityCategory{models.FacilityHospital, models.FacilityScreening, models.FacilityClinic}
	case models.HotspotOther:
		return []models.FacilityCategory{}
	}
	return []models.FacilityCategory{}
}

// FilterFacilities returns the facilities whose category is in allow and, when
// district is set, that belong to the district. Order of allow is irrelevant.
func FilterFacilities(s *fixtures.Store, allow []models.FacilityCategory, district string) []models.Facility {
	allowed := make(map[models.FacilityCategory]bool, len(allow))
	for _, c := range allow {
		allowed[c] = true
	}

	out := []models.Facility{}
	for _, f := range s.Facilities {
		if !allowed[f.Category] {
			continue
		}
		if district != "" && f.District != district {
			continue
		}
		out = append(out, f)
	}
	return out
}

// FilterHotspots returns the hotspots of one category
func FilterHotspots(s *fixtures.Store, c models.HotspotCategory) []models.Hotspot {
	out := []models.Hotspot{}
	for _, h := range s.Hotspots {
		if h.Category == c {
			out = append(out, h)
		}
	}
	return out
}

// Demographics returns the profile to display. With no district the first
// fixture record is used. A district without a record, or an empty fixture,
// yields the empty profile with Found=false.
func Demographics(s *fixtures.Store, district string) models.DemographicProfile {
	if district == "" {
		if len(s.Demographics) == 0 {
			return models.EmptyProfile("")
		}
		return s.Demographics[0]
	}
	for _, d := range s.Demographics {
		if d.District == district {
			return d
		}
	}
	return models.EmptyProfile(district)
}

// CampaignsFor returns the campaigns running in district, or every campaign when district is empty
func CampaignsFor(s *fixtures.Store, district string) []models.Campaign {
	out := []models.Campaign{}
	for _, c := range s.Campaigns {
		if district == "" || c.Covers(district) {
			out = append(out, c)
		}
	}
	return out
}

// NearbyFacilities returns the facilities in the hotspot's district that match
// the allowlist of its category, nearest first
func NearbyFacilities(s *fixtures.Store, h models.Hotspot) []models.NearbyFacility {
	if h.District == "" {
		return []models.NearbyFacility{}
	}

	facilities := FilterFacilities(s, HotspotAllowlist(h.Category), h.District)
	out := make([]models.NearbyFacility, 0, len(facilities))
	for _, f := range facilities {
		out = append(out, models.NearbyFacility{
			Facility: f,
			DistanceMeters: spatial.HaversineDistance(
				h.Position.Lat(), h.Position.Lng(), f.Position.Lat(), f.Position.Lng()),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceMeters < out[j].DistanceMeters
	})
	return out
}

// Participation returns screening participation for district, or every district when empty
func Participation(s *fixtures.Store, district string) []models.DistrictScreening {
	out := []models.DistrictScreening{}
	for _, d := range s.DistrictScreening {
		if district == "" || d.District == district {
			out = append(out, d)
		}
	}
	return out
}
