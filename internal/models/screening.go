package models

// ScreeningCandidate represents an individual eligible for a cancer screening test.
// Whether the candidate is currently "eligible" is derived, not stored.
type ScreeningCandidate struct {
	ID            string  `json:"id"`
	District      string  `json:"district"`
	AgeGroup      string  `json:"age_group"`
	EligibleFor   string  `json:"eligible_for"` // cancer type
	Screened      bool    `json:"screened"`
	ScreeningDate *string `json:"screening_date"`
}

// DistrictScreening holds screening participation rates for one district
type DistrictScreening struct {
	District             string             `json:"district"`
	OverallParticipation float64            `json:"overall_participation"` // 0-1
	EligibleCount        int                `json:"eligible_count"`
	ScreenedCount        int                `json:"screened_count"`
	CancerTypes          map[string]float64 `json:"cancer_types"` // participation by cancer type
	AgeGroups            map[string]float64 `json:"age_groups"`   // participation by age group
}

// ScreeningData is the cancer screening fixture document
type ScreeningData struct {
	CancerTypes         []string             `json:"cancer_types"`
	AgeGroups           []string             `json:"age_groups"`
	EligibleIndividuals []ScreeningCandidate `json:"eligible_individuals"`
	DistrictScreening   []DistrictScreening  `json:"district_screening"`
}

// EligiblePage is one page of eligible candidates
type EligiblePage struct {
	Items    []ScreeningCandidate `json:"items"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}
