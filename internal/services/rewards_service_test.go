package services

import (
	"testing"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
)

func healthyAccrualProfile() *models.HealthProfile {
	return &models.HealthProfile{
		BMI:           22,
		SmokingStatus: strPtr(models.SmokingNonSmoker),
		SleepDuration: 8,
		SaltIntake:    3,
		StressScore:   2,
	}
}

func TestComputeRewardsFullAccrual(t *testing.T) {
	state := ComputeRewards(healthyAccrualProfile(), 0)

	if state.Points != 425 {
		t.Errorf("expected 425 points, got %d", state.Points)
	}
	if state.Level != models.LevelBronze {
		t.Errorf("expected Bronze at 425 points, got %s", state.Level)
	}
	if state.Progress != 85 {
		t.Errorf("expected progress 85, got %d", state.Progress)
	}
	if state.NextLevel == nil || *state.NextLevel != models.LevelSilver {
		t.Errorf("expected next level Silver, got %v", state.NextLevel)
	}
	if state.NextLevelPoints == nil || *state.NextLevelPoints != 500 {
		t.Errorf("expected next level at 500 points, got %v", state.NextLevelPoints)
	}
}

func TestComputeRewardsAddsToExistingBalance(t *testing.T) {
	state := ComputeRewards(healthyAccrualProfile(), 200)
	if state.Points != 625 {
		t.Errorf("expected 625 points, got %d", state.Points)
	}
	if state.Level != models.LevelSilver {
		t.Errorf("expected Silver at 625 points, got %s", state.Level)
	}
}

func TestAccrualItemsSkipUnsetBMI(t *testing.T) {
	profile := healthyAccrualProfile()
	profile.BMI = 0

	for _, item := range AccrualItems(profile) {
		if item.Name == "Healthy BMI" {
			t.Fatal("expected no BMI award when BMI has not been computed")
		}
	}
}

func TestLevelForPointsThresholds(t *testing.T) {
	cases := []struct {
		points int
		want   string
	}{
		{0, models.LevelBronze},
		{499, models.LevelBronze},
		{500, models.LevelSilver},
		{999, models.LevelSilver},
		{1000, models.LevelGold},
		{1999, models.LevelGold},
		{2000, models.LevelPlatinum},
		{5000, models.LevelPlatinum},
	}

	for _, tc := range cases {
		if got := LevelForPoints(tc.points); got != tc.want {
			t.Errorf("LevelForPoints(%d) = %s, want %s", tc.points, got, tc.want)
		}
	}
}

func TestLevelProgressFloorsPercent(t *testing.T) {
	progress, nextLevel, nextPoints := LevelProgress(999)
	if progress != 99 {
		t.Errorf("expected floored progress 99, got %d", progress)
	}
	if nextLevel == nil || *nextLevel != models.LevelGold {
		t.Errorf("expected next level Gold, got %v", nextLevel)
	}
	if nextPoints == nil || *nextPoints != 1000 {
		t.Errorf("expected next threshold 1000, got %v", nextPoints)
	}
}

func TestLevelProgressPlatinumIsTerminal(t *testing.T) {
	progress, nextLevel, nextPoints := LevelProgress(2400)
	if progress != 100 {
		t.Errorf("expected progress 100 at Platinum, got %d", progress)
	}
	if nextLevel != nil || nextPoints != nil {
		t.Errorf("expected no next level at Platinum, got %v / %v", nextLevel, nextPoints)
	}
}
