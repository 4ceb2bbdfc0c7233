package models

// LayerToggle is one checkbox of the layer control panel
type LayerToggle struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
	Category    string `json:"category"`
}

// LayerGroup is a titled group of layer toggles
type LayerGroup struct {
	Category string        `json:"category"`
	Layers   []LayerToggle `json:"layers"`
}
