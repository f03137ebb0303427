package services

import (
	"fmt"
	"time"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
)

// AnalyzeLifestyle rates the four lifestyle categories against the
// recommended thresholds (7h sleep, 5g salt, stress 5, non-smoker).
func AnalyzeLifestyle(profile *models.HealthProfile) *models.LifestyleReport {
	if profile == nil {
		return nil
	}

	report := &models.LifestyleReport{LastUpdated: time.Now().UTC()}

	if profile.SleepDuration >= 7 {
		report.Sleep = models.LifestyleRating{
			Score:          models.LifestyleGood,
			Value:          fmt.Sprintf("%g hours/night", profile.SleepDuration),
			Recommendation: "Maintain your healthy sleep habits",
		}
	} else {
		report.Sleep = models.LifestyleRating{
			Score:          models.LifestyleNeedsImprovement,
			Value:          fmt.Sprintf("%g hours/night", profile.SleepDuration),
			Recommendation: "Aim for 7-9 hours of sleep per night",
		}
	}

	if profile.SaltIntake <= 5 {
		report.Diet = models.LifestyleRating{
			Score:          models.LifestyleGood,
			Value:          fmt.Sprintf("%gg salt/day", profile.SaltIntake),
			Recommendation: "Your salt intake is within recommended limits",
		}
	} else {
		report.Diet = models.LifestyleRating{
			Score:          models.LifestyleNeedsImprovement,
			Value:          fmt.Sprintf("%gg salt/day", profile.SaltIntake),
			Recommendation: "Try to reduce salt intake to less than 5g per day",
		}
	}

	report.Smoking = smokingRating(stringValue(profile.SmokingStatus))

	if profile.StressScore <= 5 {
		report.Stress = models.LifestyleRating{
			Score:          models.LifestyleGood,
			Value:          fmt.Sprintf("%d/10", profile.StressScore),
			Recommendation: "Your stress levels are well managed",
		}
	} else {
		report.Stress = models.LifestyleRating{
			Score:          models.LifestyleNeedsImprovement,
			Value:          fmt.Sprintf("%d/10", profile.StressScore),
			Recommendation: "Consider stress-reduction techniques like meditation or exercise",
		}
	}

	return report
}

func smokingRating(status string) models.LifestyleRating {
	switch status {
	case models.SmokingNonSmoker:
		return models.LifestyleRating{
			Score:          models.LifestyleGood,
			Value:          "Non-smoker",
			Recommendation: "Great job not smoking!",
		}
	case models.SmokingFormerSmoker:
		return models.LifestyleRating{
			Score:          models.LifestyleHighRisk,
			Value:          "Former smoker",
			Recommendation: "Consider programs to prevent relapse",
		}
	default:
		return models.LifestyleRating{
			Score:          models.LifestyleHighRisk,
			Value:          "Current smoker",
			Recommendation: "Quitting smoking would significantly improve your health",
		}
	}
}
