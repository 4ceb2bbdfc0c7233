package models

import "strings"

// FacilityCategory is the closed set of point-of-interest categories
type FacilityCategory string

const (
	FacilityHospital  FacilityCategory = "hospital"
	FacilityClinic    FacilityCategory = "clinic"
	FacilityGym       FacilityCategory = "gym"
	FacilityPark      FacilityCategory = "park"
	FacilityScreening FacilityCategory = "screening"
	FacilityOther     FacilityCategory = "other"
)

// FacilityCategories lists every facility category in display order
var FacilityCategories = []FacilityCategory{
	FacilityHospital,
	FacilityClinic,
	FacilityGym,
	FacilityPark,
	FacilityScreening,
	FacilityOther,
}

// ParseFacilityCategory maps a fixture value to a category, falling back to FacilityOther
func ParseFacilityCategory(s string) FacilityCategory {
	switch FacilityCategory(strings.ToLower(strings.TrimSpace(s))) {
	case FacilityHospital:
		return FacilityHospital
	case FacilityClinic:
		return FacilityClinic
	case FacilityGym:
		return FacilityGym
	case FacilityPark:
		return FacilityPark
	case FacilityScreening:
		return FacilityScreening
	default:
		return FacilityOther
	}
}

// Icon returns the marker icon path for the category
func (c FacilityCategory) Icon() string {
	switch c {
	case FacilityHospital:
		return "/icons/hospital.png"
	case FacilityClinic:
		return "/icons/clinic.png"
	case FacilityGym:
		return "/icons/gym.png"
	case FacilityPark:
		return "/icons/park.png"
	case FacilityScreening:
		return "/icons/screening.png"
	case FacilityOther:
		return "/icons/marker-default.png"
	}
	return "/icons/marker-default.png"
}

// HotspotCategory is the risk type a hotspot was flagged for
type HotspotCategory string

const (
	HotspotObesity   HotspotCategory = "obesity"
	HotspotScreening HotspotCategory = "screening"
	HotspotOther     HotspotCategory = "other"
)

// ParseHotspotCategory maps a fixture value to a category, falling back to HotspotOther
func ParseHotspotCategory(s string) HotspotCategory {
	switch HotspotCategory(strings.ToLower(strings.TrimSpace(s))) {
	case HotspotObesity:
		return HotspotObesity
	case HotspotScreening:
		return HotspotScreening
	default:
		return HotspotOther
	}
}

// Label returns the human readable name of the category
func (c HotspotCategory) Label() string {
	switch c {
	case HotspotObesity:
		return "Obesity"
	case HotspotScreening:
		return "Screening"
	case HotspotOther:
		return "Other"
	}
	return "Other"
}

// RiskLevel is the ordinal risk of a hotspot. It only drives color and weight.
type RiskLevel string

const (
	RiskHigh    RiskLevel = "high"
	RiskMedium  RiskLevel = "medium"
	RiskLow     RiskLevel = "low"
	RiskUnknown RiskLevel = "unknown"
)

// ParseRiskLevel maps a fixture value to a risk level, falling back to RiskUnknown
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(strings.ToLower(strings.TrimSpace(s))) {
	case RiskHigh:
		return RiskHigh
	case RiskMedium:
		return RiskMedium
	case RiskLow:
		return RiskLow
	default:
		return RiskUnknown
	}
}

// Color returns the fill color used for circles and markers of this risk level
func (r RiskLevel) Color() string {
	switch r {
	case RiskHigh:
		return "#EF4444" // red
	case RiskMedium:
		return "#F59E0B" // amber
	case RiskLow:
		return "#10B981" // green
	case RiskUnknown:
		return "#3B82F6" // blue
	}
	return "#3B82F6"
}

// Weight returns the heat/stroke weight for the risk level
func (r RiskLevel) Weight() float64 {
	switch r {
	case RiskHigh:
		return 1.0
	case RiskMedium:
		return 0.6
	case RiskLow:
		return 0.3
	case RiskUnknown:
		return 0.1
	}
	return 0.1
}
