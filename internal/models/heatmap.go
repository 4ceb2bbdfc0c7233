package models

// BMIPoint represents a single BMI sample from the fixture
type BMIPoint struct {
	Lat       float64 `json:"lat"`       // Latitude
	Lng       float64 `json:"lng"`       // Longitude
	BMI       float64 `json:"bmi"`       // Raw BMI value
	Intensity float64 `json:"intensity"` // Normalized 0-1
}

// HeatmapPoint represents a single point in the heatmap as [lat, lng, intensity]
type HeatmapPoint [3]float64

// HeatmapResponse represents the heatmap API response
type HeatmapResponse struct {
	Points   []HeatmapPoint `json:"points"`
	Count    int            `json:"count"`
	MaxValue float64        `json:"max_value"`
	MinValue float64        `json:"min_value"`
	Mean     float64        `json:"mean"`
	Breaks   [3]float64     `json:"breaks"` // intensity quartiles for the legend
	Metric   string         `json:"metric"`
}
