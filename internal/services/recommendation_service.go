package services

import "github.com/Mareme10tech/VitalShieldBack/internal/models"

// GenerateRecommendations evaluates the recommendation rules in a fixed
// order; any subset may trigger, and the annual check-up recommendation is
// always appended last.
func GenerateRecommendations(profile *models.HealthProfile) []models.Recommendation {
	if profile == nil {
		return nil
	}

	recs := make([]models.Recommendation, 0, 5)

	if profile.BMI >= 25 {
		recs = append(recs, models.Recommendation{
			Title:       "Weight Management",
			Description: "Consider a balanced diet and regular exercise to reach a healthy BMI",
			Priority:    models.PriorityHigh,
		})
	}
	if stringValue(profile.SmokingStatus) == models.SmokingSmoker {
		recs = append(recs, models.Recommendation{
			Title:       "Smoking Cessation",
			Description: "Quitting smoking can significantly reduce your health risks",
			Priority:    models.PriorityCritical,
		})
	}
	if profile.SaltIntake > 5 {
		recs = append(recs, models.Recommendation{
			Title:       "Reduce Salt Intake",
			Description: "Aim for less than 5g of salt per day to lower blood pressure risk",
			Priority:    models.PriorityMedium,
		})
	}
	if profile.SleepDuration < 7 {
		recs = append(recs, models.Recommendation{
			Title:       "Improve Sleep",
			Description: "Aim for 7-9 hours of quality sleep per night",
			Priority:    models.PriorityMedium,
		})
	}

	recs = append(recs, models.Recommendation{
		Title:       "Regular Check-ups",
		Description: "Schedule annual health screenings with your doctor",
		Priority:    models.PriorityHigh,
	})

	return recs
}
