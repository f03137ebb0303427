package models

import "time"

const (
	RiskLevelHigh     = "High"
	RiskLevelModerate = "Moderate"
	RiskLevelElevated = "Elevated"
	RiskLevelLow      = "Low"
)

const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
)

// RiskAssessment holds per-condition risk percentages, each clamped to
// [0,100], with the step-function label for each channel.
type RiskAssessment struct {
	DiabetesRisk      int       `json:"diabetes_risk"`
	DiabetesLevel     string    `json:"diabetes_level"`
	HeartDiseaseRisk  int       `json:"heart_disease_risk"`
	HeartDiseaseLevel string    `json:"heart_disease_level"`
	CancerRisk        int       `json:"cancer_risk"`
	CancerLevel       string    `json:"cancer_level"`
	LastUpdated       time.Time `json:"last_updated"`
}

type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}
