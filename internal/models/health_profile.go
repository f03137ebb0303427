package models

import "time"

const (
	FamilyHistoryYes = "yes"
	FamilyHistoryNo  = "no"

	SmokingNonSmoker    = "non-smoker"
	SmokingSmoker       = "smoker"
	SmokingFormerSmoker = "former-smoker"
)

const (
	LevelBronze   = "Bronze"
	LevelSilver   = "Silver"
	LevelGold     = "Gold"
	LevelPlatinum = "Platinum"
)

// HealthProfile is the persisted per-user health record. BMI is always
// derived from height and weight; it is never accepted from a client.
type HealthProfile struct {
	ID                       int64      `json:"id"`
	UserID                   int64      `json:"user_id"`
	FirstName                *string    `json:"first_name"`
	LastName                 *string    `json:"last_name"`
	Phone                    *string    `json:"phone"`
	Age                      *int       `json:"age"`
	HeightCM                 *float64   `json:"height_cm"`
	WeightKG                 *float64   `json:"weight_kg"`
	BMI                      float64    `json:"bmi"`
	SaltIntake               float64    `json:"salt_intake"`
	StressScore              int        `json:"stress_score"`
	SleepDuration            float64    `json:"sleep_duration"`
	FamilyHistory            *string    `json:"family_history"`
	SmokingStatus            *string    `json:"smoking_status"`
	VitalityConsent          bool       `json:"vitality_consent"`
	DataProcessingConsent    bool       `json:"data_processing_consent"`
	HealthScreeningReminders bool       `json:"health_screening_reminders"`
	Points                   int        `json:"points"`
	Level                    string     `json:"level"`
	AccrualGrantedAt         *time.Time `json:"-"`
	OnboardingComplete       bool       `json:"onboarding_complete"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}
