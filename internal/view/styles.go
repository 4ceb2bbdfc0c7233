package view

import "github.com/jengzang/health-insights-go/internal/models"

const (
	colorDistrict         = "#3B82F6"
	colorDistrictSelected = "#4338CA"
	colorCampaign         = "#10B981"
)

func districtStyle(selected bool) Style {
	if selected {
		return Style{Color: colorDistrictSelected, Weight: 3, Opacity: 0.7, FillOpacity: 0.3}
	}
	return Style{Color: colorDistrict, Weight: 1, Opacity: 0.7, FillOpacity: 0.1}
}

func campaignStyle(selected bool) Style {
	s := Style{Color: colorCampaign, FillColor: colorCampaign, Weight: 1, Opacity: 0.8, FillOpacity: 0.15}
	if selected {
		s.Weight = 3
		s.FillOpacity = 0.35
	}
	return s
}

func heatStyle() Style {
	return Style{
		Radius: 25,
		Blur:   15,
		Max:    1.0,
		Gradient: map[string]string{
			"0.4":  "blue",
			"0.65": "lime",
			"0.9":  "red",
		},
	}
}

func hotspotStyle(r models.RiskLevel) Style {
	return Style{Color: r.Color(), FillColor: r.Color(), FillOpacity: 0.3, Weight: 2}
}
