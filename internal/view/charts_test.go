package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/health-insights-go/internal/models"
)

func TestDemographicCharts(t *testing.T) {
	p := models.DemographicProfile{
		NationalVsExpat:    models.Split{National: 20, Expat: 80},
		GenderDistribution: models.GenderSplit{Male: 60, Female: 40},
		AgeGroups:          []models.AgeBucket{{Label: "0-14", Value: 15}, {Label: "15-24", Value: 0}},
	}

	charts := DemographicCharts(p)
	require.Len(t, charts, 3)

	assert.Equal(t, ChartNationality, charts[0].ID)
	assert.Equal(t, []float64{20, 80}, charts[0].Values)
	assert.Equal(t, []string{"#4F46E5", "#10B981"}, charts[0].Colors)

	assert.Equal(t, []string{"Male", "Female"}, charts[1].Labels)
	assert.Equal(t, []string{"#3B82F6", "#EC4899"}, charts[1].Colors)

	assert.Equal(t, models.ChartBar, charts[2].Kind)
	assert.Equal(t, []string{"0-14", "15-24"}, charts[2].Labels)
	assert.Equal(t, []float64{15, 0}, charts[2].Values)
}

func TestEligibleChart(t *testing.T) {
	ch := EligibleChart([]string{"Breast", "Lung"}, []models.ScreeningCandidate{
		{EligibleFor: "Lung"}, {EligibleFor: "Lung"}, {EligibleFor: "Cervical"},
	})
	assert.Equal(t, []string{"Breast", "Lung"}, ch.Labels)
	assert.Equal(t, []float64{0, 2}, ch.Values)
}
