package services

import (
	"testing"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
)

func strPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func highRiskProfile() *models.HealthProfile {
	return &models.HealthProfile{
		BMI:           32,
		SmokingStatus: strPtr(models.SmokingSmoker),
		FamilyHistory: strPtr(models.FamilyHistoryYes),
		SaltIntake:    8,
		StressScore:   7,
		SleepDuration: 6,
	}
}

func TestAssessRiskScenario(t *testing.T) {
	assessment := AssessRisk(highRiskProfile())
	if assessment == nil {
		t.Fatal("expected an assessment")
	}

	// diabetes: 40 (bmi) + 15 (family) + 5 (stress) + 5 (sleep)
	if assessment.DiabetesRisk != 65 {
		t.Errorf("expected diabetes risk 65, got %d", assessment.DiabetesRisk)
	}
	if assessment.DiabetesLevel != models.RiskLevelHigh {
		t.Errorf("expected diabetes level High, got %s", assessment.DiabetesLevel)
	}

	// heart: 30 + 35 + 20 + 10 + 10 + 5 = 110, clamped to 100
	if assessment.HeartDiseaseRisk != 100 {
		t.Errorf("expected heart disease risk clamped to 100, got %d", assessment.HeartDiseaseRisk)
	}
	if assessment.HeartDiseaseLevel != models.RiskLevelHigh {
		t.Errorf("expected heart disease level High, got %s", assessment.HeartDiseaseLevel)
	}

	// cancer: 10 (bmi) + 30 (smoker)
	if assessment.CancerRisk != 40 {
		t.Errorf("expected cancer risk 40, got %d", assessment.CancerRisk)
	}
	if assessment.CancerLevel != models.RiskLevelModerate {
		t.Errorf("expected cancer level Moderate, got %s", assessment.CancerLevel)
	}
}

func TestAssessRiskStaysWithinBounds(t *testing.T) {
	profiles := []*models.HealthProfile{
		{},
		highRiskProfile(),
		{BMI: 27, SmokingStatus: strPtr(models.SmokingFormerSmoker), SleepDuration: 8},
		{BMI: 50, SmokingStatus: strPtr(models.SmokingSmoker), FamilyHistory: strPtr(models.FamilyHistoryYes), SaltIntake: 20, StressScore: 10},
	}

	for _, profile := range profiles {
		assessment := AssessRisk(profile)
		for name, risk := range map[string]int{
			"diabetes": assessment.DiabetesRisk,
			"heart":    assessment.HeartDiseaseRisk,
			"cancer":   assessment.CancerRisk,
		} {
			if risk < 0 || risk > 100 {
				t.Errorf("%s risk %d out of [0,100]", name, risk)
			}
		}
	}
}

func TestAssessRiskNilProfile(t *testing.T) {
	if AssessRisk(nil) != nil {
		t.Fatal("expected nil assessment for nil profile")
	}
}

func TestAssessRiskDeterministic(t *testing.T) {
	first := AssessRisk(highRiskProfile())
	second := AssessRisk(highRiskProfile())

	if first.DiabetesRisk != second.DiabetesRisk ||
		first.HeartDiseaseRisk != second.HeartDiseaseRisk ||
		first.CancerRisk != second.CancerRisk {
		t.Errorf("expected identical assessments, got %+v and %+v", first, second)
	}
}

func TestRiskLevelBoundaries(t *testing.T) {
	cases := []struct {
		risk int
		want string
	}{
		{50, models.RiskLevelHigh},
		{49, models.RiskLevelModerate},
		{30, models.RiskLevelModerate},
		{29, models.RiskLevelElevated},
		{15, models.RiskLevelElevated},
		{14, models.RiskLevelLow},
		{0, models.RiskLevelLow},
		{100, models.RiskLevelHigh},
	}

	for _, tc := range cases {
		if got := RiskLevel(tc.risk); got != tc.want {
			t.Errorf("RiskLevel(%d) = %s, want %s", tc.risk, got, tc.want)
		}
	}
}
