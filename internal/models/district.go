package models

import "github.com/twpayne/go-geom"

// LatLng is a [lat, lng] pair as stored in the fixtures
type LatLng [2]float64

// Lat returns the latitude
func (p LatLng) Lat() float64 { return p[0] }

// Lng returns the longitude
func (p LatLng) Lng() float64 { return p[1] }

// District represents an administrative boundary. Name is the join key across all fixtures.
type District struct {
	Name       string `json:"name"`
	Population int    `json:"population"`

	// Boundary is the polygon read from the GeoJSON feature collection
	Boundary geom.T `json:"-"`
}

// DistrictSummary is the API view of a district without its geometry
type DistrictSummary struct {
	Name       string    `json:"name"`
	Population int       `json:"population"`
	Center     LatLng    `json:"center"`
	Bounds     [2]LatLng `json:"bounds"` // south-west, north-east
}
