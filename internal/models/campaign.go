package models

// Campaign represents a public health campaign
type Campaign struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	StartDate   string   `json:"startDate"` // YYYY-MM-DD
	EndDate     string   `json:"endDate"`   // YYYY-MM-DD
	Districts   []string `json:"districts,omitempty"`
	Type        string   `json:"type"`
}

// Covers reports whether the campaign runs in the district.
// A campaign without a district list runs everywhere.
func (c Campaign) Covers(district string) bool {
	if len(c.Districts) == 0 {
		return true
	}
	for _, d := range c.Districts {
		if d == district {
			return true
		}
	}
	return false
}
