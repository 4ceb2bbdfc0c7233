package models

// FacilityFilter represents filter parameters for querying facilities
type FacilityFilter struct {
	Categories []string `form:"category"` // hospital, clinic, gym, park, screening, other
	District   string   `form:"district"`
}

// EligibleFilter represents filter parameters for querying eligible screening candidates
type EligibleFilter struct {
	District    string   `form:"district"`
	CancerTypes []string `form:"cancerType"` // Breast, Colorectal, Lung, ...
	AgeGroups   []string `form:"ageGroup"`   // 18-25, 26-34, ...
	Page        int      `form:"page" binding:"omitempty,min=1"`
	PageSize    int      `form:"pageSize" binding:"omitempty,min=1,max=500"`
}

// HotspotFilter represents filter parameters for querying hotspots
type HotspotFilter struct {
	Category string `form:"category"` // obesity, screening, other; empty for all
}

// DistrictFilter represents a single optional district parameter
type DistrictFilter struct {
	District string `form:"district"`
}

// HeatmapFilter represents filter parameters for the BMI heatmap. A nil bound leaves that side open.
type HeatmapFilter struct {
	MinLat       *float64 `form:"minLat" binding:"omitempty,min=-90,max=90"`
	MaxLat       *float64 `form:"maxLat" binding:"omitempty,min=-90,max=90"`
	MinLon       *float64 `form:"minLon" binding:"omitempty,min=-180,max=180"`
	MaxLon       *float64 `form:"maxLon" binding:"omitempty,min=-180,max=180"`
	MinIntensity float64  `form:"minIntensity" binding:"omitempty,min=0,max=1"`
	Level        int      `form:"level" binding:"omitempty,min=1,max=30"` // s2 cell level; 0 returns raw samples
}

// PointQuery is a single coordinate
type PointQuery struct {
	Lat *float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lng *float64 `form:"lng" binding:"required,min=-180,max=180"`
}
