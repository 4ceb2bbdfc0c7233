package view

import (
	"fmt"
	"strings"

	"github.com/jengzang/health-insights-go/internal/derive"
	"github.com/jengzang/health-insights-go/internal/filter"
	"github.com/jengzang/health-insights-go/internal/models"
)

const noFacilitiesMessage = "No relevant facilities found in this area."

var recommendedActions = map[models.HotspotCategory][]string{
	models.HotspotObesity: {
		"Increase physical activity programs in this area",
		"Promote healthy eating initiatives at local schools",
		"Develop community fitness challenges",
	},
	models.HotspotScreening: {
		"Organize mobile screening events in this area",
		"Conduct targeted awareness campaigns",
		"Provide transportation assistance to screening centers",
	},
}

// HotspotSidebar is the hotspot view panel
type HotspotSidebar struct {
	Category    models.HotspotCategory `json:"category"`
	Categories  []CategoryOption       `json:"categories"`
	Placeholder string                 `json:"placeholder,omitempty"`
	Detail      *HotspotDetail         `json:"detail,omitempty"`
}

// CategoryOption is one button of the hotspot category selector
type CategoryOption struct {
	Value  models.HotspotCategory `json:"value"`
	Label  string                 `json:"label"`
	Active bool                   `json:"active"`
}

// HotspotDetail describes the selected hotspot
type HotspotDetail struct {
	Hotspot            models.Hotspot          `json:"hotspot"`
	RiskLabel          string                  `json:"risk_label"`
	RiskColor          string                  `json:"risk_color"`
	Facilities         []models.NearbyFacility `json:"facilities"`
	FacilitiesMessage  string                  `json:"facilities_message,omitempty"`
	RecommendedActions []string                `json:"recommended_actions"`
}

func (c *Composer) hotspots(st *filter.State) Snapshot {
	selected := st.SelectedHotspot
	highlight, selectedID := "", ""
	nearby := []models.NearbyFacility{}
	if selected != nil {
		highlight, selectedID = selected.District, selected.ID
		nearby = derive.NearbyFacilities(c.store, *selected)
	}
	facilities := nearbyMarkersOf(nearby)

	snap := Snapshot{
		View:     models.ViewHotspots,
		Viewport: c.viewport("", selected),
		Layers: []Layer{
			{
				ID:      LayerDistricts,
				Name:    "District Boundaries",
				Kind:    KindChoropleth,
				Visible: true,
				Style:   districtStyle(false),
				Data:    c.districts(highlight, nil, districtStyle),
			},
			{
				ID:      LayerHotspots,
				Name:    st.HotspotCategory.Label() + " Hotspots",
				Kind:    KindCircles,
				Visible: true,
				OnClick: ClickSelectHotspot,
				Data:    circlesOf(derive.FilterHotspots(c.store, st.HotspotCategory), selectedID),
			},
			{
				ID:      LayerFacilities,
				Name:    "Nearby Facilities",
				Kind:    KindMarkers,
				Visible: facilities.Len() > 0,
				Data:    facilities,
			},
		},
	}

	side := &HotspotSidebar{Category: st.HotspotCategory}
	for _, cat := range c.hotspotCategories() {
		side.Categories = append(side.Categories, CategoryOption{
			Value:  cat,
			Label:  cat.Label() + " Hotspots",
			Active: cat == st.HotspotCategory,
		})
	}

	if selected == nil {
		side.Placeholder = fmt.Sprintf(
			"Click on any %s hotspot on the map to view detailed insights and nearby facilities.",
			st.HotspotCategory)
	} else {
		actions := recommendedActions[selected.Category]
		if actions == nil {
			actions = []string{}
		}
		side.Detail = &HotspotDetail{
			Hotspot:            *selected,
			RiskLabel:          strings.ToUpper(string(selected.RiskLevel)),
			RiskColor:          selected.RiskLevel.Color(),
			Facilities:         nearby,
			RecommendedActions: actions,
		}
		if len(nearby) == 0 {
			side.Detail.FacilitiesMessage = noFacilitiesMessage
		}
	}
	snap.Sidebar.Hotspots = side
	return snap
}

// hotspotCategories lists the selectable categories. Other is offered only
// when the fixtures hold hotspots that fell back to it.
func (c *Composer) hotspotCategories() []models.HotspotCategory {
	cats := []models.HotspotCategory{models.HotspotObesity, models.HotspotScreening}
	if len(derive.FilterHotspots(c.store, models.HotspotOther)) > 0 {
		cats = append(cats, models.HotspotOther)
	}
	return cats
}
