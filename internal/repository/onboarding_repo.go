package repository

import (
	"context"
	"time"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
)

const onboardingColumns = `user_id, active_step, first_name, last_name, email, phone, age,
	height_cm, weight_kg, bmi, salt_intake, stress_score, sleep_duration,
	family_history, smoking_status, vitality_consent, data_processing_consent,
	health_screening_reminders, processing_started_at, created_at, updated_at`

type OnboardingRepository struct {
	db DBTX
}

func NewOnboardingRepository(db DBTX) *OnboardingRepository {
	return &OnboardingRepository{db: db}
}

func (r *OnboardingRepository) Get(ctx context.Context, userID int64) (*models.OnboardingSession, error) {
	query := `SELECT ` + onboardingColumns + ` FROM onboarding_sessions WHERE user_id = $1`
	var session models.OnboardingSession
	err := r.db.QueryRow(ctx, query, userID).Scan(sessionFields(&session)...)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *OnboardingRepository) Create(ctx context.Context, userID int64, form models.OnboardingForm) (*models.OnboardingSession, error) {
	query := `
		INSERT INTO onboarding_sessions (
			user_id, first_name, last_name, email, phone, age,
			height_cm, weight_kg, bmi, salt_intake, stress_score, sleep_duration,
			family_history, smoking_status, vitality_consent, data_processing_consent,
			health_screening_reminders
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + onboardingColumns
	var session models.OnboardingSession
	err := r.db.QueryRow(ctx, query,
		userID,
		form.FirstName,
		form.LastName,
		form.Email,
		form.Phone,
		form.Age,
		form.HeightCM,
		form.WeightKG,
		form.BMI,
		form.SaltIntake,
		form.StressScore,
		form.SleepDuration,
		form.FamilyHistory,
		form.SmokingStatus,
		form.VitalityConsent,
		form.DataProcessingConsent,
		form.HealthScreeningReminders,
	).Scan(sessionFields(&session)...)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *OnboardingRepository) UpdateForm(ctx context.Context, userID int64, form models.OnboardingForm) error {
	query := `
		UPDATE onboarding_sessions
		SET first_name = $1,
			last_name = $2,
			email = $3,
			phone = $4,
			age = $5,
			height_cm = $6,
			weight_kg = $7,
			bmi = $8,
			salt_intake = $9,
			stress_score = $10,
			sleep_duration = $11,
			family_history = $12,
			smoking_status = $13,
			vitality_consent = $14,
			data_processing_consent = $15,
			health_screening_reminders = $16,
			updated_at = NOW()
		WHERE user_id = $17
	`
	_, err := r.db.Exec(ctx, query,
		form.FirstName,
		form.LastName,
		form.Email,
		form.Phone,
		form.Age,
		form.HeightCM,
		form.WeightKG,
		form.BMI,
		form.SaltIntake,
		form.StressScore,
		form.SleepDuration,
		form.FamilyHistory,
		form.SmokingStatus,
		form.VitalityConsent,
		form.DataProcessingConsent,
		form.HealthScreeningReminders,
		userID,
	)
	return err
}

func (r *OnboardingRepository) SetStep(ctx context.Context, userID int64, step int) error {
	query := `UPDATE onboarding_sessions SET active_step = $1, updated_at = NOW() WHERE user_id = $2`
	_, err := r.db.Exec(ctx, query, step, userID)
	return err
}

func (r *OnboardingRepository) StartProcessing(ctx context.Context, userID int64, at time.Time) error {
	query := `UPDATE onboarding_sessions SET processing_started_at = $1, updated_at = NOW() WHERE user_id = $2`
	_, err := r.db.Exec(ctx, query, at, userID)
	return err
}

// FinishProcessing clears the pending marker and lands on the given step.
func (r *OnboardingRepository) FinishProcessing(ctx context.Context, userID int64, step int) error {
	query := `
		UPDATE onboarding_sessions
		SET processing_started_at = NULL, active_step = $1, updated_at = NOW()
		WHERE user_id = $2
	`
	_, err := r.db.Exec(ctx, query, step, userID)
	return err
}

func (r *OnboardingRepository) Delete(ctx context.Context, userID int64) error {
	query := `DELETE FROM onboarding_sessions WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func sessionFields(s *models.OnboardingSession) []any {
	return []any{
		&s.UserID,
		&s.ActiveStep,
		&s.Form.FirstName,
		&s.Form.LastName,
		&s.Form.Email,
		&s.Form.Phone,
		&s.Form.Age,
		&s.Form.HeightCM,
		&s.Form.WeightKG,
		&s.Form.BMI,
		&s.Form.SaltIntake,
		&s.Form.StressScore,
		&s.Form.SleepDuration,
		&s.Form.FamilyHistory,
		&s.Form.SmokingStatus,
		&s.Form.VitalityConsent,
		&s.Form.DataProcessingConsent,
		&s.Form.HealthScreeningReminders,
		&s.ProcessingStartedAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	}
}
