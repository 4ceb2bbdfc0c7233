// Package view turns a filter state into the layers, sidebar content and
// charts of one dashboard view. Composition is read-only over the store.
package view

import (
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/jengzang/health-insights-go/internal/filter"
	"github.com/jengzang/health-insights-go/internal/fixtures"
	"github.com/jengzang/health-insights-go/internal/models"
)

// MapConfig holds the base map settings shared by every view
type MapConfig struct {
	Center      models.LatLng
	Zoom        int
	RegionLabel string // Shown when no district is selected
}

// DefaultMapConfig returns the Abu Dhabi base map
func DefaultMapConfig() MapConfig {
	return MapConfig{
		Center:      models.LatLng{24.4869, 54.3702},
		Zoom:        11,
		RegionLabel: "Abu Dhabi (Overall)",
	}
}

// Viewport is the map camera
type Viewport struct {
	Center models.LatLng     `json:"center"`
	Zoom   int               `json:"zoom"`
	Bounds *[2]models.LatLng `json:"bounds,omitempty"` // Frame of the selected district
}

// Snapshot is everything the frontend needs to draw one view
type Snapshot struct {
	View         models.View         `json:"view"`
	Title        string              `json:"title"`
	Viewport     Viewport            `json:"viewport"`
	Layers       []Layer             `json:"layers"`
	LayerControl []models.LayerGroup `json:"layer_control,omitempty"`
	Sidebar      Sidebar             `json:"sidebar"`
	Charts       []models.Chart      `json:"charts"`
}

// Chart returns the chart with the given id
func (s Snapshot) Chart(id string) (models.Chart, bool) {
	for _, c := range s.Charts {
		if c.ID == id {
			return c, true
		}
	}
	return models.Chart{}, false
}

// Layer returns the layer with the given id
func (s Snapshot) Layer(id string) (Layer, bool) {
	for _, l := range s.Layers {
		if l.ID == id {
			return l, true
		}
	}
	return Layer{}, false
}

// Sidebar holds the panel of the active view; exactly one field is set
type Sidebar struct {
	Summary  *SummarySidebar `json:"summary,omitempty"`
	Cancer   *CancerSidebar  `json:"cancer,omitempty"`
	Hotspots *HotspotSidebar `json:"hotspots,omitempty"`
}

// Composer builds snapshots over one store and catalog
type Composer struct {
	store   *fixtures.Store
	catalog *Catalog
	cfg     MapConfig
	shapes  map[string]*geojson.Geometry
}

// NewComposer encodes the district boundaries once for reuse across snapshots
func NewComposer(store *fixtures.Store, catalog *Catalog, cfg MapConfig) *Composer {
	c := &Composer{
		store:   store,
		catalog: catalog,
		cfg:     cfg,
		shapes:  make(map[string]*geojson.Geometry, len(store.Districts)),
	}
	for _, d := range store.Districts {
		if d.Boundary == nil {
			continue
		}
		g, err := geojson.Encode(d.Boundary)
		if err != nil {
			zap.L().Warn("view: cannot encode district boundary",
				zap.String("district", d.Name), zap.Error(err))
			continue
		}
		c.shapes[d.Name] = g
	}
	return c
}

// Compose is a convenience for a one-off snapshot with the default map
func Compose(store *fixtures.Store, catalog *Catalog, st *filter.State) Snapshot {
	return NewComposer(store, catalog, DefaultMapConfig()).Compose(st)
}

// Catalog returns the layer catalog
func (c *Composer) Catalog() *Catalog { return c.catalog }

// Store returns the fixture store
func (c *Composer) Store() *fixtures.Store { return c.store }

// Compose renders the view named by st.View. An unknown view falls back to the summary.
func (c *Composer) Compose(st *filter.State) Snapshot {
	var snap Snapshot
	switch st.View {
	case models.ViewCancer:
		snap = c.cancer(st)
	case models.ViewHotspots:
		snap = c.hotspots(st)
	default:
		snap = c.summary(st)
	}
	snap.Title = snap.View.Title()
	if snap.Charts == nil {
		snap.Charts = []models.Chart{}
	}
	return snap
}

// viewport pans to a selected hotspot, otherwise frames the selected district
func (c *Composer) viewport(district string, hotspot *models.Hotspot) Viewport {
	vp := Viewport{Center: c.cfg.Center, Zoom: c.cfg.Zoom}
	if hotspot != nil {
		vp.Center = hotspot.Position
		return vp
	}
	if district == "" {
		return vp
	}
	if b, ok := c.store.Boundary(district); ok {
		swLat, swLng, neLat, neLng := b.Bounds()
		vp.Bounds = &[2]models.LatLng{{swLat, swLng}, {neLat, neLng}}
	}
	return vp
}

// districts builds a choropleth of every district, highlighting selected
func (c *Composer) districts(selected string, include func(models.District) bool, style func(bool) Style) ChoroplethData {
	out := ChoroplethData{Features: []BoundaryFeature{}}
	for _, d := range c.store.Districts {
		if include != nil && !include(d) {
			continue
		}
		g, ok := c.shapes[d.Name]
		if !ok {
			continue
		}
		isSelected := selected != "" && d.Name == selected
		out.Features = append(out.Features, BoundaryFeature{
			Name:       d.Name,
			Population: d.Population,
			Geometry:   g,
			Style:      style(isSelected),
			Selected:   isSelected,
		})
	}
	return out
}
