package domain

import (
	"slices"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// VillageStatus is the monitored status of one village.
type VillageStatus struct {
	Name       string   `json:"name"`
	Cases      int      `json:"cases"`
	Risk       RiskTier `json:"risk"`
	Population int      `json:"population"`
}

// WeeklyTrend is one point of the weekly case/alert series.
type WeeklyTrend struct {
	Week   string `json:"week"`
	Cases  int    `json:"cases"`
	Alerts int    `json:"alerts"`
}

// SymptomShare is the share of reported cases presenting a symptom.
type SymptomShare struct {
	Name    string `json:"name"`
	Percent int    `json:"percent"`
}

// SourceCases is the number of cases attributed to a water source.
type SourceCases struct {
	Source string `json:"source"`
	Cases  int    `json:"cases"`
}

// KPI is a headline figure on the dashboard.
type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Note  string `json:"note"`
	Trend string `json:"trend"` // "up", "down", "stable"
}

// Dashboard is the static analytics snapshot.
type Dashboard struct {
	AsOf            time.Time       `json:"as_of"`
	KPIs            []KPI           `json:"kpis"`
	Villages        []VillageStatus `json:"villages"`
	WeeklyTrends    []WeeklyTrend   `json:"weekly_trends"`
	SymptomShares   []SymptomShare  `json:"symptom_shares"`
	WaterSourceData []SourceCases   `json:"water_source_cases"`
}

var villageStatuses = []VillageStatus{
	{Name: "Guwahati Rural", Cases: 12, Risk: TierMedium, Population: 2500},
	{Name: "Dibrugarh", Cases: 8, Risk: TierLow, Population: 1800},
	{Name: "Jorhat", Cases: 15, Risk: TierHigh, Population: 3200},
	{Name: "Silchar", Cases: 6, Risk: TierLow, Population: 1500},
	{Name: "Tezpur", Cases: 11, Risk: TierMedium, Population: 2100},
	{Name: "Nagaon", Cases: 18, Risk: TierHigh, Population: 2800},
}

var weeklyTrends = []WeeklyTrend{
	{Week: "Wk 1", Cases: 15, Alerts: 2},
	{Week: "Wk 2", Cases: 23, Alerts: 3},
	{Week: "Wk 3", Cases: 18, Alerts: 1},
	{Week: "Wk 4", Cases: 31, Alerts: 5},
	{Week: "Wk 5", Cases: 27, Alerts: 4},
	{Week: "Wk 6", Cases: 22, Alerts: 2},
}

var symptomShares = []SymptomShare{
	{Name: "Diarrhea", Percent: 35},
	{Name: "Vomiting", Percent: 28},
	{Name: "Fever", Percent: 22},
	{Name: "Dehydration", Percent: 15},
}

var sourceCases = []SourceCases{
	{Source: "Well Water", Cases: 25},
	{Source: "River/Stream", Cases: 20},
	{Source: "Pond/Lake", Cases: 12},
	{Source: "Treated Water", Cases: 3},
}

// NewDashboard returns the dashboard snapshot stamped with asOf. Totals are
// derived from the village series.
func NewDashboard(asOf time.Time) Dashboard {
	totalCases, totalPop, highRisk := 0, 0, 0
	for _, v := range villageStatuses {
		totalCases += v.Cases
		totalPop += v.Population
		if v.Risk == TierHigh {
			highRisk++
		}
	}

	return Dashboard{
		AsOf: asOf,
		KPIs: []KPI{
			{Label: "Total Cases", Value: strconv.Itoa(totalCases), Note: "+12% this week", Trend: "up"},
			{Label: "High Risk Areas", Value: strconv.Itoa(highRisk) + " villages", Note: "Requiring attention", Trend: "up"},
			{Label: "Population Monitored", Value: message.NewPrinter(language.English).Sprintf("%d", totalPop), Note: "Active monitoring", Trend: "stable"},
			{Label: "Alert Rate", Value: "15%", Note: "−3% improvement", Trend: "down"},
		},
		Villages:        slices.Clone(villageStatuses),
		WeeklyTrends:    slices.Clone(weeklyTrends),
		SymptomShares:   slices.Clone(symptomShares),
		WaterSourceData: slices.Clone(sourceCases),
	}
}

// Stat is one headline figure on the homepage.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Feature describes one section of the application.
type Feature struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	CTA         string `json:"cta"`
}

// Overview is the homepage summary.
type Overview struct {
	Name     string    `json:"name"`
	Stats    []Stat    `json:"stats"`
	Features []Feature `json:"features"`
}

// NewOverview returns the homepage summary.
func NewOverview() Overview {
	return Overview{
		Name: "HealthWatch NE",
		Stats: []Stat{
			{Label: "Total Reports", Value: "47"},
			{Label: "Active Alerts", Value: "3"},
			{Label: "Healthy Villages", Value: "12"},
			{Label: "Risk Level", Value: string(TierMedium)},
		},
		Features: []Feature{
			{ID: "calculator", Label: "Risk Calculator", Description: "Assess your household's water-borne disease risk based on symptoms and environment.", CTA: "Check your risk"},
			{ID: "dashboard", Label: "Live Dashboard", Description: "Real-time community health trends, village data, and outbreak patterns.", CTA: "View data"},
			{ID: "awareness", Label: "Health Tips", Description: "Prevention guides, ORS preparation, and disease information in English & Assamese.", CTA: "Learn more"},
			{ID: "report", Label: "Report a Case", Description: "Submit illness reports to help health authorities respond quickly.", CTA: "Report now"},
		},
	}
}
