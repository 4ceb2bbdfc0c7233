package models

// Hotspot represents a risk-flagged circular area
type Hotspot struct {
	ID        string          `json:"id"`
	Position  LatLng          `json:"position"`
	Radius    float64         `json:"radius"` // Meters
	Category  HotspotCategory `json:"category"`
	Name      string          `json:"name"`
	Insights  []string        `json:"insights"`
	RiskLevel RiskLevel       `json:"risk_level"`
	District  string          `json:"district"`
}
