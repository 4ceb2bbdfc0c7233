package filter

import (
	"github.com/jengzang/health-insights-go/internal/models"
)

// State is the selection state of one mounted view. It is created when the view
// mounts, mutated by user events, and discarded when the user switches views.
// Setters perform no validation; callers pass values taken from the option lists.
type State struct {
	View            models.View            `json:"view"`
	District        string                 `json:"district"` // "" means all districts
	CancerTypes     TagSet                 `json:"cancer_types"`
	AgeGroups       TagSet                 `json:"age_groups"`
	HotspotCategory models.HotspotCategory `json:"hotspot_category"`
	SelectedHotspot *models.Hotspot        `json:"selected_hotspot"`
	Layers          map[string]bool        `json:"layers"`
}

// Default returns the initial state of a view. layerDefaults seeds the layer
// visibility map and is copied.
func Default(view models.View, layerDefaults map[string]bool) *State {
	layers := make(map[string]bool, len(layerDefaults))
	for id, on := range layerDefaults {
		layers[id] = on
	}
	return &State{
		View:            view,
		HotspotCategory: models.HotspotObesity,
		Layers:          layers,
	}
}

// Clone returns a deep copy of the state
func (s *State) Clone() *State {
	c := *s
	c.CancerTypes = NewTagSet(s.CancerTypes.values...)
	c.AgeGroups = NewTagSet(s.AgeGroups.values...)
	if s.SelectedHotspot != nil {
		h := *s.SelectedHotspot
		h.Insights = append([]string(nil), s.SelectedHotspot.Insights...)
		c.SelectedHotspot = &h
	}
	c.Layers = make(map[string]bool, len(s.Layers))
	for id, on := range s.Layers {
		c.Layers[id] = on
	}
	return &c
}

// SetDistrict selects a district; "" clears the district filter
func (s *State) SetDistrict(name string) {
	s.District = name
}

// ClearDistrict removes the district filter
func (s *State) ClearDistrict() {
	s.District = ""
}

// SetCancerTypes replaces the cancer type selection
func (s *State) SetCancerTypes(values []string) {
	s.CancerTypes = NewTagSet(values...)
}

// SetAgeGroups replaces the age group selection
func (s *State) SetAgeGroups(values []string) {
	s.AgeGroups = NewTagSet(values...)
}

// ToggleCancerType adds or removes one cancer type
func (s *State) ToggleCancerType(v string) {
	s.CancerTypes.Toggle(v)
}

// ToggleAgeGroup adds or removes one age group
func (s *State) ToggleAgeGroup(v string) {
	s.AgeGroups.Toggle(v)
}

// SetHotspotCategory switches the active hotspot category. A selected hotspot
// of another category is cleared since it is no longer on the map.
func (s *State) SetHotspotCategory(c models.HotspotCategory) {
	s.HotspotCategory = c
	if s.SelectedHotspot != nil && s.SelectedHotspot.Category != c {
		s.SelectedHotspot = nil
	}
}

// SelectHotspot records the hotspot the user clicked
func (s *State) SelectHotspot(h models.Hotspot) {
	s.SelectedHotspot = &h
}

// ClearHotspot removes the hotspot selection
func (s *State) ClearHotspot() {
	s.SelectedHotspot = nil
}

// ToggleLayer flips the visibility of a layer. Unknown ids start from hidden.
func (s *State) ToggleLayer(id string) {
	if s.Layers == nil {
		s.Layers = map[string]bool{}
	}
	s.Layers[id] = !s.Layers[id]
}

// SetLayer sets the visibility of a layer
func (s *State) SetLayer(id string, visible bool) {
	if s.Layers == nil {
		s.Layers = map[string]bool{}
	}
	s.Layers[id] = visible
}

// LayerVisible reports whether a layer is toggled on
func (s *State) LayerVisible(id string) bool {
	return s.Layers[id]
}
