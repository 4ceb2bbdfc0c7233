package models

// Facility represents a healthcare or public-infrastructure point of interest
type Facility struct {
	ID          string           `json:"id"`
	Position    LatLng           `json:"position"`
	Name        string           `json:"name"`
	Category    FacilityCategory `json:"category"`
	District    string           `json:"district"`
	Description string           `json:"description,omitempty"`
}

// NearbyFacility is a facility annotated with its distance from a reference point
type NearbyFacility struct {
	Facility
	DistanceMeters float64 `json:"distance_meters"`
}
