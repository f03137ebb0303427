package models

import "time"

// OnboardingForm is the profile under construction during the wizard.
// Lifestyle sliders start at the same defaults the profile columns use.
type OnboardingForm struct {
	FirstName                string  `json:"first_name"`
	LastName                 string  `json:"last_name"`
	Email                    string  `json:"email"`
	Phone                    string  `json:"phone"`
	Age                      int     `json:"age"`
	HeightCM                 float64 `json:"height_cm"`
	WeightKG                 float64 `json:"weight_kg"`
	BMI                      float64 `json:"bmi"`
	SaltIntake               float64 `json:"salt_intake"`
	StressScore              int     `json:"stress_score"`
	SleepDuration            float64 `json:"sleep_duration"`
	FamilyHistory            string  `json:"family_history"`
	SmokingStatus            string  `json:"smoking_status"`
	VitalityConsent          bool    `json:"vitality_consent"`
	DataProcessingConsent    bool    `json:"data_processing_consent"`
	HealthScreeningReminders bool    `json:"health_screening_reminders"`
}

type OnboardingSession struct {
	UserID              int64          `json:"user_id"`
	ActiveStep          int            `json:"active_step"`
	IsProcessing        bool           `json:"is_processing"`
	Form                OnboardingForm `json:"form"`
	ProcessingStartedAt *time.Time     `json:"-"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}
