package service

import (
	"github.com/rotisserie/eris"

	"github.com/jengzang/health-insights-go/internal/derive"
	"github.com/jengzang/health-insights-go/internal/filter"
	"github.com/jengzang/health-insights-go/internal/fixtures"
	"github.com/jengzang/health-insights-go/internal/models"
)

const defaultPageSize = 50

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = eris.New("service: not found")

// DashboardService answers the stateless fixture queries
type DashboardService struct {
	store *fixtures.Store
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store *fixtures.Store) *DashboardService {
	return &DashboardService{store: store}
}

// Options returns the filter option lists
func (s *DashboardService) Options() derive.Options {
	return derive.BuildOptions(s.store)
}

// Districts returns every district without geometry
func (s *DashboardService) Districts() []models.DistrictSummary {
	return s.store.Summaries()
}

// District returns one district summary
func (s *DashboardService) District(name string) (models.DistrictSummary, error) {
	for _, d := range s.store.Summaries() {
		if d.Name == name {
			return d, nil
		}
	}
	return models.DistrictSummary{}, eris.Wrapf(ErrNotFound, "district %q", name)
}

// Facilities returns the facilities matching the category allowlist and district.
// No category means every category.
func (s *DashboardService) Facilities(f models.FacilityFilter) []models.Facility {
	allow := models.FacilityCategories
	if len(f.Categories) > 0 {
		allow = make([]models.FacilityCategory, 0, len(f.Categories))
		for _, c := range f.Categories {
			allow = append(allow, models.ParseFacilityCategory(c))
		}
	}
	return derive.FilterFacilities(s.store, allow, f.District)
}

// Eligible returns one page of unscreened candidates matching the filter
func (s *DashboardService) Eligible(f models.EligibleFilter) models.EligiblePage {
	st := filter.Default(models.ViewCancer, nil)
	st.SetDistrict(f.District)
	st.SetCancerTypes(f.CancerTypes)
	st.SetAgeGroups(f.AgeGroups)
	all := derive.EligibleCandidates(s.store, st)

	page, size := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}

	start := len(all)
	if page-1 <= len(all)/size {
		start = min((page-1)*size, len(all))
	}
	end := start + min(size, len(all)-start)

	return models.EligiblePage{
		Items:    all[start:end],
		Total:    len(all),
		Page:     page,
		PageSize: size,
	}
}

// Participation returns screening participation rates
func (s *DashboardService) Participation(district string) []models.DistrictScreening {
	return derive.Participation(s.store, district)
}

// Hotspots returns the hotspots of one category, or all of them when the category is empty
func (s *DashboardService) Hotspots(f models.HotspotFilter) []models.Hotspot {
	if f.Category == "" {
		out := make([]models.Hotspot, len(s.store.Hotspots))
		copy(out, s.store.Hotspots)
		return out
	}
	return derive.FilterHotspots(s.store, models.ParseHotspotCategory(f.Category))
}

// HotspotDetail returns a hotspot with the relevant facilities of its district
func (s *DashboardService) HotspotDetail(id string) (models.Hotspot, []models.NearbyFacility, error) {
	h, ok := s.store.Hotspot(id)
	if !ok {
		return models.Hotspot{}, nil, eris.Wrapf(ErrNotFound, "hotspot %q", id)
	}
	return h, derive.NearbyFacilities(s.store, h), nil
}

// Demographics returns the demographic profile of a district
func (s *DashboardService) Demographics(district string) models.DemographicProfile {
	return derive.Demographics(s.store, district)
}

// Campaigns returns the campaigns running in a district
func (s *DashboardService) Campaigns(district string) []models.Campaign {
	return derive.CampaignsFor(s.store, district)
}

// Heatmap returns BMI heat points, aggregated to s2 cells when a level is given
func (s *DashboardService) Heatmap(f models.HeatmapFilter) models.HeatmapResponse {
	return derive.Heatmap(s.store, f, f.Level)
}

// Locate returns the district whose boundary contains the point
func (s *DashboardService) Locate(lat, lng float64) (models.DistrictSummary, error) {
	name := s.store.DistrictAt(lat, lng)
	if name == "" {
		return models.DistrictSummary{}, eris.Wrapf(ErrNotFound, "no district at %.5f,%.5f", lat, lng)
	}
	return s.District(name)
}
