package shell

import (
	"github.com/rotisserie/eris"

	"github.com/jengzang/health-insights-go/internal/models"
)

// EventType names a user interaction
type EventType string

// Map widget events
const (
	EventDistrictClick EventType = "district_click"
	EventHotspotClick  EventType = "hotspot_click"
)

// Control events
const (
	EventClearDistrict      EventType = "clear_district"
	EventClearHotspot       EventType = "clear_hotspot"
	EventSetCancerTypes     EventType = "set_cancer_types"
	EventSetAgeGroups       EventType = "set_age_groups"
	EventToggleCancerType   EventType = "toggle_cancer_type"
	EventToggleAgeGroup     EventType = "toggle_age_group"
	EventApplyFilters       EventType = "apply_filters"
	EventSetHotspotCategory EventType = "set_hotspot_category"
	EventToggleLayer        EventType = "toggle_layer"
	EventSetLayer           EventType = "set_layer"
)

var (
	ErrUnknownEvent    = eris.New("shell: unknown event")
	ErrEventNotAllowed = eris.New("shell: event not available in this view")
	ErrUnknownHotspot  = eris.New("shell: unknown hotspot")
	ErrMissingValue    = eris.New("shell: event needs a value")
)

// Event is one interaction posted by the frontend
type Event struct {
	Type        EventType `json:"type" binding:"required"`
	Value       string    `json:"value,omitempty"`
	Values      []string  `json:"values,omitempty"`
	Visible     *bool     `json:"visible,omitempty"`
	CancerTypes []string  `json:"cancer_types,omitempty"`
	AgeGroups   []string  `json:"age_groups,omitempty"`
}

// allowed lists the events each view reacts to
var allowed = map[models.View]map[EventType]bool{
	models.ViewSummary: {
		EventDistrictClick: true,
		EventClearDistrict: true,
		EventHotspotClick:  true,
		EventClearHotspot:  true,
		EventToggleLayer:   true,
		EventSetLayer:      true,
	},
	models.ViewCancer: {
		EventDistrictClick:    true,
		EventClearDistrict:    true,
		EventSetCancerTypes:   true,
		EventSetAgeGroups:     true,
		EventToggleCancerType: true,
		EventToggleAgeGroup:   true,
		EventApplyFilters:     true,
	},
	models.ViewHotspots: {
		EventHotspotClick:       true,
		EventClearHotspot:       true,
		EventSetHotspotCategory: true,
	},
}

func known(t EventType) bool {
	for _, events := range allowed {
		if events[t] {
			return true
		}
	}
	return false
}

// Allowed reports whether view reacts to events of type t
func Allowed(view models.View, t EventType) bool {
	return allowed[view][t]
}
