package services

import (
	"testing"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
)

func TestGenerateRecommendationsAllRulesTrigger(t *testing.T) {
	profile := &models.HealthProfile{
		BMI:           27,
		SmokingStatus: strPtr(models.SmokingSmoker),
		SaltIntake:    8,
		SleepDuration: 5,
	}

	recs := GenerateRecommendations(profile)
	wantTitles := []string{
		"Weight Management",
		"Smoking Cessation",
		"Reduce Salt Intake",
		"Improve Sleep",
		"Regular Check-ups",
	}
	if len(recs) != len(wantTitles) {
		t.Fatalf("expected %d recommendations, got %d", len(wantTitles), len(recs))
	}
	for i, want := range wantTitles {
		if recs[i].Title != want {
			t.Errorf("recommendation %d: expected %q, got %q", i, want, recs[i].Title)
		}
	}
	if recs[1].Priority != models.PriorityCritical {
		t.Errorf("expected smoking cessation to be critical, got %s", recs[1].Priority)
	}
}

func TestGenerateRecommendationsHealthyProfile(t *testing.T) {
	profile := &models.HealthProfile{
		BMI:           22,
		SmokingStatus: strPtr(models.SmokingNonSmoker),
		SaltIntake:    3,
		SleepDuration: 8,
	}

	recs := GenerateRecommendations(profile)
	if len(recs) != 1 {
		t.Fatalf("expected only the check-up recommendation, got %d", len(recs))
	}
	if recs[0].Title != "Regular Check-ups" || recs[0].Priority != models.PriorityHigh {
		t.Errorf("unexpected trailing recommendation: %+v", recs[0])
	}
}

func TestGenerateRecommendationsNilProfile(t *testing.T) {
	if GenerateRecommendations(nil) != nil {
		t.Fatal("expected nil recommendations for nil profile")
	}
}
