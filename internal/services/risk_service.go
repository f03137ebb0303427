package services

import (
	"time"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
)

// AssessRisk derives per-condition risk percentages from a health profile.
// Each channel accumulates points independently and is clamped to [0,100].
// A nil profile yields no assessment.
func AssessRisk(profile *models.HealthProfile) *models.RiskAssessment {
	if profile == nil {
		return nil
	}

	diabetes := 0
	heart := 0
	cancer := 0

	bmi := profile.BMI
	if bmi >= 30 {
		diabetes += 40
		heart += 30
		cancer += 10
	} else if bmi >= 25 {
		diabetes += 25
		heart += 20
	}

	switch stringValue(profile.SmokingStatus) {
	case models.SmokingSmoker:
		heart += 35
		cancer += 30
	case models.SmokingFormerSmoker:
		heart += 15
		cancer += 10
	}

	if stringValue(profile.FamilyHistory) == models.FamilyHistoryYes {
		diabetes += 15
		heart += 20
	}

	if profile.SaltIntake > 5 {
		heart += 10
	}
	if profile.StressScore > 5 {
		diabetes += 5
		heart += 10
	}
	if profile.SleepDuration < 7 {
		diabetes += 5
		heart += 5
	}

	diabetes = clampRisk(diabetes)
	heart = clampRisk(heart)
	cancer = clampRisk(cancer)

	return &models.RiskAssessment{
		DiabetesRisk:      diabetes,
		DiabetesLevel:     RiskLevel(diabetes),
		HeartDiseaseRisk:  heart,
		HeartDiseaseLevel: RiskLevel(heart),
		CancerRisk:        cancer,
		CancerLevel:       RiskLevel(cancer),
		LastUpdated:       time.Now().UTC(),
	}
}

// RiskLevel labels a risk percentage: >=50 High, >=30 Moderate,
// >=15 Elevated, otherwise Low.
func RiskLevel(risk int) string {
	switch {
	case risk >= 50:
		return models.RiskLevelHigh
	case risk >= 30:
		return models.RiskLevelModerate
	case risk >= 15:
		return models.RiskLevelElevated
	default:
		return models.RiskLevelLow
	}
}

func clampRisk(risk int) int {
	if risk < 0 {
		return 0
	}
	if risk > 100 {
		return 100
	}
	return risk
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func floatValue(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

func intValue(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}
