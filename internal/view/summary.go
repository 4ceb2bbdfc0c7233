package view

import (
	"fmt"

	"github.com/jengzang/health-insights-go/internal/derive"
	"github.com/jengzang/health-insights-go/internal/filter"
	"github.com/jengzang/health-insights-go/internal/models"
)

// SummarySidebar is the summary view panel
type SummarySidebar struct {
	Region              string                    `json:"region"`
	Demographics        models.DemographicProfile `json:"demographics"`
	DemographicsMessage string                    `json:"demographics_message,omitempty"`
	Campaigns           []models.Campaign         `json:"campaigns"`
	CampaignsMessage    string                    `json:"campaigns_message,omitempty"`
}

func (c *Composer) summary(st *filter.State) Snapshot {
	snap := Snapshot{
		View:         models.ViewSummary,
		Viewport:     c.viewport(st.District, st.SelectedHotspot),
		Layers:       make([]Layer, 0, len(c.catalog.Layers)),
		LayerControl: c.catalog.Groups(st.LayerVisible),
	}

	selectedHotspot := ""
	if st.SelectedHotspot != nil {
		selectedHotspot = st.SelectedHotspot.ID
	}

	for _, e := range c.catalog.Layers {
		l := Layer{ID: e.ID, Name: e.Name, Kind: e.Kind, Visible: st.LayerVisible(e.ID)}
		switch e.Source {
		case SourceBMI:
			l.Style = heatStyle()
			l.Data = HeatData{Points: derive.HeatPoints(c.store, models.HeatmapFilter{})}
		case SourceDistricts:
			l.OnClick = ClickSelectDistrict
			l.Style = districtStyle(false)
			l.Data = c.districts(st.District, nil, districtStyle)
		case SourceCampaigns:
			l.OnClick = ClickSelectDistrict
			l.Style = campaignStyle(false)
			l.Data = c.districts(st.District, c.campaignCovered, campaignStyle)
		case SourceFacilities:
			// Summary markers are not restricted to the selected district
			cat := models.ParseFacilityCategory(e.Filter)
			l.Data = markersOf(derive.FilterFacilities(c.store, []models.FacilityCategory{cat}, ""))
		case SourceHotspots:
			l.OnClick = ClickSelectHotspot
			l.Data = circlesOf(derive.FilterHotspots(c.store, models.ParseHotspotCategory(e.Filter)), selectedHotspot)
		}
		snap.Layers = append(snap.Layers, l)
	}

	profile := derive.Demographics(c.store, st.District)
	side := &SummarySidebar{
		Region:       c.cfg.RegionLabel,
		Demographics: profile,
		Campaigns:    derive.CampaignsFor(c.store, st.District),
	}
	if st.District != "" {
		side.Region = st.District
	}
	if profile.Found {
		snap.Charts = DemographicCharts(profile)
	} else {
		side.DemographicsMessage = fmt.Sprintf("No demographic data available for %s.", side.Region)
	}
	if len(side.Campaigns) == 0 {
		side.CampaignsMessage = "No active health campaigns in this area."
	}
	snap.Sidebar.Summary = side
	return snap
}

func (c *Composer) campaignCovered(d models.District) bool {
	for _, camp := range c.store.Campaigns {
		if camp.Covers(d.Name) {
			return true
		}
	}
	return false
}
