package models

// Split is a two-way percentage split
type Split struct {
	National int `json:"national"`
	Expat    int `json:"expat"`
}

// GenderSplit is a male/female percentage split
type GenderSplit struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

// AgeBucket is one bar of the age histogram
type AgeBucket struct {
	Label string `json:"label"`
	Value int    `json:"value"` // Percent
}

// DemographicProfile represents the demographics of one district
type DemographicProfile struct {
	District           string      `json:"district"`
	Population         int         `json:"population"`
	Density            int         `json:"density"` // People per km²
	NationalVsExpat    Split       `json:"nationalVsExpat"`
	GenderDistribution GenderSplit `json:"genderDistribution"`
	AgeGroups          []AgeBucket `json:"ageGroups"`

	// Found is false when the profile is the empty default rather than a fixture record
	Found bool `json:"found"`
}

// EmptyProfile returns the profile shown when no fixture record matches
func EmptyProfile(district string) DemographicProfile {
	return DemographicProfile{
		District:  district,
		AgeGroups: []AgeBucket{},
		Found:     false,
	}
}
