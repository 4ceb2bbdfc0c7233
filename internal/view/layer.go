package view

import (
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/jengzang/health-insights-go/internal/models"
)

// LayerKind tells the renderer which widget draws a layer
type LayerKind string

const (
	KindChoropleth LayerKind = "choropleth"
	KindMarkers    LayerKind = "markers"
	KindHeat       LayerKind = "heat"
	KindCircles    LayerKind = "circles"
)

// ClickAction is the event a layer emits when one of its features is clicked
type ClickAction string

const (
	ClickNone           ClickAction = ""
	ClickSelectDistrict ClickAction = "select_district"
	ClickSelectHotspot  ClickAction = "select_hotspot"
)

// Style carries the Leaflet-style options of a layer or feature
type Style struct {
	Color       string            `json:"color,omitempty"`
	FillColor   string            `json:"fillColor,omitempty"`
	Weight      float64           `json:"weight,omitempty"`
	Opacity     float64           `json:"opacity,omitempty"`
	FillOpacity float64           `json:"fillOpacity,omitempty"`
	Radius      float64           `json:"radius,omitempty"`
	Blur        float64           `json:"blur,omitempty"`
	Max         float64           `json:"max,omitempty"`
	Gradient    map[string]string `json:"gradient,omitempty"`
}

// Layer is one renderable map layer. Data matches Kind.
type Layer struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Kind    LayerKind   `json:"kind"`
	Visible bool        `json:"visible"`
	Style   Style       `json:"style"`
	OnClick ClickAction `json:"on_click,omitempty"`
	Data    LayerData   `json:"data"`
}

// LayerData is the payload of a layer
type LayerData interface {
	Kind() LayerKind
	Len() int
}

// ChoroplethData is a set of styled district polygons
type ChoroplethData struct {
	Features []BoundaryFeature `json:"features"`
}

// BoundaryFeature is one district polygon with its own style
type BoundaryFeature struct {
	Name       string            `json:"name"`
	Population int               `json:"population"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Style      Style             `json:"style"`
	Selected   bool              `json:"selected"`
}

// MarkerData is a set of point markers
type MarkerData struct {
	Markers []Marker `json:"markers"`
}

// Marker is one facility pin
type Marker struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Description    string                  `json:"description,omitempty"`
	Category       models.FacilityCategory `json:"category"`
	District       string                  `json:"district,omitempty"`
	Position       models.LatLng           `json:"position"`
	Icon           string                  `json:"icon"`
	DistanceMeters *float64                `json:"distance_meters,omitempty"`
}

// HeatData is a weighted point cloud
type HeatData struct {
	Points []models.HeatmapPoint `json:"points"`
}

// CircleData is a set of hotspot circles
type CircleData struct {
	Circles []Circle `json:"circles"`
}

// Circle is one hotspot, drawn as a radius around its centre
type Circle struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Category  models.HotspotCategory `json:"category"`
	Center    models.LatLng          `json:"center"`
	Radius    float64                `json:"radius"`
	RiskLevel models.RiskLevel       `json:"risk_level"`
	Insights  []string               `json:"insights"`
	District  string                 `json:"district,omitempty"`
	Style     Style                  `json:"style"`
	Selected  bool                   `json:"selected"`
}

func (ChoroplethData) Kind() LayerKind { return KindChoropleth }
func (d ChoroplethData) Len() int      { return len(d.Features) }
func (MarkerData) Kind() LayerKind     { return KindMarkers }
func (d MarkerData) Len() int          { return len(d.Markers) }
func (HeatData) Kind() LayerKind       { return KindHeat }
func (d HeatData) Len() int            { return len(d.Points) }
func (CircleData) Kind() LayerKind     { return KindCircles }
func (d CircleData) Len() int          { return len(d.Circles) }

func markersOf(facilities []models.Facility) MarkerData {
	out := MarkerData{Markers: make([]Marker, 0, len(facilities))}
	for _, f := range facilities {
		out.Markers = append(out.Markers, markerOf(f))
	}
	return out
}

func markerOf(f models.Facility) Marker {
	return Marker{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		District:    f.District,
		Position:    f.Position,
		Icon:        f.Category.Icon(),
	}
}

func nearbyMarkersOf(facilities []models.NearbyFacility) MarkerData {
	out := MarkerData{Markers: make([]Marker, 0, len(facilities))}
	for _, f := range facilities {
		m := markerOf(f.Facility)
		d := f.DistanceMeters
		m.DistanceMeters = &d
		out.Markers = append(out.Markers, m)
	}
	return out
}

func circlesOf(hotspots []models.Hotspot, selected string) CircleData {
	out := CircleData{Circles: make([]Circle, 0, len(hotspots))}
	for _, h := range hotspots {
		insights := h.Insights
		if insights == nil {
			insights = []string{}
		}
		out.Circles = append(out.Circles, Circle{
			ID:        h.ID,
			Name:      h.Name,
			Category:  h.Category,
			Center:    h.Position,
			Radius:    h.Radius,
			RiskLevel: h.RiskLevel,
			Insights:  insights,
			District:  h.District,
			Style:     hotspotStyle(h.RiskLevel),
			Selected:  h.ID == selected,
		})
	}
	return out
}
