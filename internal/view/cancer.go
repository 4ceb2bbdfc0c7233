package view

import (
	"fmt"
	"strings"

	"github.com/jengzang/health-insights-go/internal/derive"
	"github.com/jengzang/health-insights-go/internal/filter"
	"github.com/jengzang/health-insights-go/internal/models"
)

// Layer ids outside the catalog
const (
	LayerDistricts  = "districtBoundaries"
	LayerFacilities = "facilities"
	LayerHotspots   = "hotspots"
)

const noEligibleMessage = "No eligible individuals found with the current filters."

// CancerSidebar is the cancer detection view panel
type CancerSidebar struct {
	Options       derive.Options              `json:"options"`
	Selection     CancerSelection             `json:"selection"`
	Eligible      []models.ScreeningCandidate `json:"eligible"`
	EmptyMessage  string                      `json:"empty_message,omitempty"`
	Summary       CancerSummary               `json:"summary"`
	Participation []models.DistrictScreening  `json:"participation"`
	Hint          string                      `json:"hint"`
}

// CancerSelection echoes the active filter values
type CancerSelection struct {
	District    string   `json:"district"`
	CancerTypes []string `json:"cancer_types"`
	AgeGroups   []string `json:"age_groups"`
}

// CancerSummary is the summary box under the eligible list
type CancerSummary struct {
	TotalEligible int    `json:"total_eligible"`
	Area          string `json:"area"`
	CancerTypes   string `json:"cancer_types"`
	AgeGroups     string `json:"age_groups"`
}

func (c *Composer) cancer(st *filter.State) Snapshot {
	eligible := derive.EligibleCandidates(c.store, st)
	opts := derive.BuildOptions(c.store)

	snap := Snapshot{
		View:     models.ViewCancer,
		Viewport: c.viewport(st.District, nil),
		Layers: []Layer{
			{
				ID:      LayerDistricts,
				Name:    "District Boundaries",
				Kind:    KindChoropleth,
				Visible: true,
				Style:   districtStyle(false),
				OnClick: ClickSelectDistrict,
				Data:    c.districts(st.District, nil, districtStyle),
			},
			{
				ID:      LayerFacilities,
				Name:    "Screening Facilities",
				Kind:    KindMarkers,
				Visible: true,
				Data:    markersOf(derive.FilterFacilities(c.store, derive.CancerAllowlist, st.District)),
			},
		},
		Charts: []models.Chart{EligibleChart(opts.CancerTypes, eligible)},
	}

	types := st.CancerTypes.Values()
	ages := st.AgeGroups.Values()
	side := &CancerSidebar{
		Options: opts,
		Selection: CancerSelection{
			District:    st.District,
			CancerTypes: types,
			AgeGroups:   ages,
		},
		Eligible: eligible,
		Summary: CancerSummary{
			TotalEligible: len(eligible),
			Area:          orDefault(st.District, "All Areas"),
			CancerTypes:   orDefault(strings.Join(types, ", "), "All Types"),
			AgeGroups:     orDefault(strings.Join(ages, ", "), "All Ages"),
		},
		Participation: derive.Participation(c.store, st.District),
		Hint:          cancerHint(st.District, types, ages),
	}
	if len(eligible) == 0 {
		side.EmptyMessage = noEligibleMessage
	}
	snap.Sidebar.Cancer = side
	return snap
}

func cancerHint(district string, types, ages []string) string {
	if len(types) == 0 && len(ages) == 0 {
		return "Select filters to identify eligible individuals for early cancer detection."
	}
	where := "across all areas"
	if district != "" {
		where = "in " + district
	}
	return fmt.Sprintf("Showing eligible individuals for %s in age groups %s %s.",
		orDefault(strings.Join(types, ", "), "all cancer types"),
		orDefault(strings.Join(ages, ", "), "all ages"),
		where)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
