package view

import (
	"github.com/jengzang/health-insights-go/internal/models"
)

// Chart ids
const (
	ChartNationality = "nationality"
	ChartGender      = "gender"
	ChartAge         = "age"
	ChartEligible    = "eligible"
)

// DemographicCharts returns the nationality, gender and age charts of a profile
func DemographicCharts(p models.DemographicProfile) []models.Chart {
	age := models.Chart{
		ID:     ChartAge,
		Title:  "Population by Age Group",
		Kind:   models.ChartBar,
		Labels: make([]string, 0, len(p.AgeGroups)),
		Values: make([]float64, 0, len(p.AgeGroups)),
		Colors: []string{"#8B5CF6"},
	}
	for _, b := range p.AgeGroups {
		age.Labels = append(age.Labels, b.Label)
		age.Values = append(age.Values, float64(b.Value))
	}

	return []models.Chart{
		{
			ID:     ChartNationality,
			Title:  "Nationality Distribution",
			Kind:   models.ChartDoughnut,
			Labels: []string{"National", "Expatriate"},
			Values: []float64{float64(p.NationalVsExpat.National), float64(p.NationalVsExpat.Expat)},
			Colors: []string{"#4F46E5", "#10B981"},
		},
		{
			ID:     ChartGender,
			Title:  "Gender Distribution",
			Kind:   models.ChartDoughnut,
			Labels: []string{"Male", "Female"},
			Values: []float64{float64(p.GenderDistribution.Male), float64(p.GenderDistribution.Female)},
			Colors: []string{"#3B82F6", "#EC4899"},
		},
		age,
	}
}

// EligibleChart counts eligible candidates per cancer type, in option order
func EligibleChart(types []string, eligible []models.ScreeningCandidate) models.Chart {
	counts := make(map[string]int, len(types))
	for _, c := range eligible {
		counts[c.EligibleFor]++
	}
	ch := models.Chart{
		ID:     ChartEligible,
		Title:  "Eligible Individuals by Cancer Type",
		Kind:   models.ChartBar,
		Labels: make([]string, 0, len(types)),
		Values: make([]float64, 0, len(types)),
		Colors: []string{"#2563EB"},
	}
	for _, t := range types {
		ch.Labels = append(ch.Labels, t)
		ch.Values = append(ch.Values, float64(counts[t]))
	}
	return ch
}
