package models

// View identifies one of the three top-level dashboard views
type View string

const (
	ViewSummary  View = "summary"
	ViewCancer   View = "cancer"
	ViewHotspots View = "hotspots"
)

// Views lists the views in navigation order
var Views = []View{ViewSummary, ViewCancer, ViewHotspots}

// ParseView returns the view named s
func ParseView(s string) (View, bool) {
	switch View(s) {
	case ViewSummary, ViewCancer, ViewHotspots:
		return View(s), true
	}
	return "", false
}

// Title returns the header title of the view
func (v View) Title() string {
	switch v {
	case ViewSummary:
		return "Geospatial Public Health Insights"
	case ViewCancer:
		return "Early Detection for Cancer"
	case ViewHotspots:
		return "Hotspots and High-Risk Insights"
	}
	return ""
}
