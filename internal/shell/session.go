package shell

import (
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/jengzang/health-insights-go/internal/filter"
	"github.com/jengzang/health-insights-go/internal/fixtures"
	"github.com/jengzang/health-insights-go/internal/models"
)

// Session is one dashboard tab. It owns the filter state of the mounted view;
// the mutex serializes events arriving on concurrent requests.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	state    *filter.State
	defaults map[string]bool
	updated  time.Time
}

// NewSession mounts the summary view
func NewSession(id string, layerDefaults map[string]bool) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		state:     filter.Default(models.ViewSummary, layerDefaults),
		defaults:  layerDefaults,
		updated:   now,
	}
}

// View returns the mounted view
func (s *Session) View() models.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.View
}

// State returns a copy of the current filter state
func (s *Session) State() *filter.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// UpdatedAt returns the time of the last state change
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updated
}

// Switch mounts view with a fresh default state. Switching to the mounted
// view is a no-op and reports false.
func (s *Session) Switch(view models.View) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.View == view {
		return false
	}
	s.state = filter.Default(view, s.defaults)
	s.updated = time.Now()
	return true
}

// Apply maps an event onto the filter state setters. Hotspot clicks are
// resolved against store. On error the state is left unchanged.
func (s *Session) Apply(store *fixtures.Store, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !known(ev.Type) {
		return eris.Wrapf(ErrUnknownEvent, "type %q", ev.Type)
	}
	if !Allowed(s.state.View, ev.Type) {
		return eris.Wrapf(ErrEventNotAllowed, "%s in %s view", ev.Type, s.state.View)
	}

	st := s.state
	switch ev.Type {
	case EventDistrictClick:
		if ev.Value == "" {
			return eris.Wrap(ErrMissingValue, string(ev.Type))
		}
		st.SetDistrict(ev.Value)
	case EventClearDistrict:
		st.ClearDistrict()
	case EventHotspotClick:
		h, ok := store.Hotspot(ev.Value)
		if !ok {
			return eris.Wrapf(ErrUnknownHotspot, "id %q", ev.Value)
		}
		if st.View == models.ViewHotspots && h.Category != st.HotspotCategory {
			return eris.Wrapf(ErrUnknownHotspot, "%q is not a %s hotspot", ev.Value, st.HotspotCategory)
		}
		st.SelectHotspot(h)
	case EventClearHotspot:
		st.ClearHotspot()
	case EventSetCancerTypes:
		st.SetCancerTypes(ev.Values)
	case EventSetAgeGroups:
		st.SetAgeGroups(ev.Values)
	case EventToggleCancerType:
		if ev.Value == "" {
			return eris.Wrap(ErrMissingValue, string(ev.Type))
		}
		st.ToggleCancerType(ev.Value)
	case EventToggleAgeGroup:
		if ev.Value == "" {
			return eris.Wrap(ErrMissingValue, string(ev.Type))
		}
		st.ToggleAgeGroup(ev.Value)
	case EventApplyFilters:
		st.SetDistrict(ev.Value)
		st.SetCancerTypes(ev.CancerTypes)
		st.SetAgeGroups(ev.AgeGroups)
	case EventSetHotspotCategory:
		st.SetHotspotCategory(models.ParseHotspotCategory(ev.Value))
	case EventToggleLayer:
		if ev.Value == "" {
			return eris.Wrap(ErrMissingValue, string(ev.Type))
		}
		st.ToggleLayer(ev.Value)
	case EventSetLayer:
		if ev.Value == "" || ev.Visible == nil {
			return eris.Wrap(ErrMissingValue, string(ev.Type))
		}
		st.SetLayer(ev.Value, *ev.Visible)
	}
	s.updated = time.Now()
	return nil
}
