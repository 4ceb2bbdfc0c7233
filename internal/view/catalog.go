package view

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/jengzang/health-insights-go/internal/models"
)

//go:embed layers.yaml
var defaultCatalog []byte

// Layer sources understood by the summary composer
const (
	SourceBMI        = "bmi"
	SourceDistricts  = "districts"
	SourceFacilities = "facilities"
	SourceCampaigns  = "campaigns"
	SourceHotspots   = "hotspots"
)

// CatalogEntry declares one toggleable summary layer
type CatalogEntry struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Category    string    `yaml:"category"`
	Kind        LayerKind `yaml:"kind"`
	Source      string    `yaml:"source"`
	Filter      string    `yaml:"filter"`
	Default     bool      `yaml:"default"`
}

// Catalog is the ordered list of summary layers
type Catalog struct {
	Layers []CatalogEntry `yaml:"layers"`
}

// DefaultCatalog parses the catalog embedded in the binary
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog decodes and validates a YAML layer catalog
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrap(err, "view: parse layer catalog")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool, len(c.Layers))
	for i, l := range c.Layers {
		if l.ID == "" {
			return eris.Errorf("view: catalog layer %d has no id", i)
		}
		if seen[l.ID] {
			return eris.Errorf("view: duplicate catalog layer %q", l.ID)
		}
		seen[l.ID] = true

		var want LayerKind
		switch l.Source {
		case SourceBMI:
			want = KindHeat
		case SourceDistricts, SourceCampaigns:
			want = KindChoropleth
		case SourceFacilities:
			want = KindMarkers
		case SourceHotspots:
			want = KindCircles
		default:
			return eris.Errorf("view: layer %q has unknown source %q", l.ID, l.Source)
		}
		if l.Kind != want {
			return eris.Errorf("view: layer %q of source %s must be %s, got %q", l.ID, l.Source, want, l.Kind)
		}
	}
	return nil
}

// Entry returns the catalog entry with the given id
func (c *Catalog) Entry(id string) (CatalogEntry, bool) {
	for _, l := range c.Layers {
		if l.ID == id {
			return l, true
		}
	}
	return CatalogEntry{}, false
}

// Defaults returns the initial visibility of every layer
func (c *Catalog) Defaults() map[string]bool {
	out := make(map[string]bool, len(c.Layers))
	for _, l := range c.Layers {
		out[l.ID] = l.Default
	}
	return out
}

// Groups returns the layer control, grouped by category in order of first appearance
func (c *Catalog) Groups(visible func(id string) bool) []models.LayerGroup {
	groups := []models.LayerGroup{}
	index := map[string]int{}
	for _, l := range c.Layers {
		i, ok := index[l.Category]
		if !ok {
			i = len(groups)
			index[l.Category] = i
			groups = append(groups, models.LayerGroup{Category: l.Category, Layers: []models.LayerToggle{}})
		}
		groups[i].Layers = append(groups[i].Layers, models.LayerToggle{
			ID:          l.ID,
			Name:        l.Name,
			Description: l.Description,
			Active:      visible(l.ID),
			Category:    l.Category,
		})
	}
	return groups
}
