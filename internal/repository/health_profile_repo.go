package repository

import (
	"context"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
)

const healthProfileColumns = `id, user_id, first_name, last_name, phone, age, height_cm, weight_kg, bmi,
	salt_intake, stress_score, sleep_duration, family_history, smoking_status,
	vitality_consent, data_processing_consent, health_screening_reminders,
	points, level, accrual_granted_at, onboarding_complete, created_at, updated_at`

type HealthProfileRepository struct {
	db DBTX
}

func NewHealthProfileRepository(db DBTX) *HealthProfileRepository {
	return &HealthProfileRepository{db: db}
}

func (r *HealthProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO health_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *HealthProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.HealthProfile, error) {
	query := `SELECT ` + healthProfileColumns + ` FROM health_profiles WHERE user_id = $1`
	return r.scanProfile(ctx, query, userID)
}

func (r *HealthProfileRepository) GetByUserIDForUpdate(ctx context.Context, userID int64) (*models.HealthProfile, error) {
	query := `SELECT ` + healthProfileColumns + ` FROM health_profiles WHERE user_id = $1 FOR UPDATE`
	return r.scanProfile(ctx, query, userID)
}

type CompleteOnboardingInput struct {
	FirstName                string
	LastName                 string
	Phone                    string
	Age                      int
	HeightCM                 float64
	WeightKG                 float64
	BMI                      float64
	SaltIntake               float64
	StressScore              int
	SleepDuration            float64
	FamilyHistory            string
	SmokingStatus            string
	VitalityConsent          bool
	DataProcessingConsent    bool
	HealthScreeningReminders bool
}

// CompleteOnboarding finalizes the profile from a finished onboarding
// session. Points and level always reset to their initial values here;
// accrual is granted later, exactly once, by the rewards service.
func (r *HealthProfileRepository) CompleteOnboarding(ctx context.Context, userID int64, input CompleteOnboardingInput) (*models.HealthProfile, error) {
	query := `
		UPDATE health_profiles
		SET first_name = $1,
			last_name = $2,
			phone = $3,
			age = $4,
			height_cm = $5,
			weight_kg = $6,
			bmi = $7,
			salt_intake = $8,
			stress_score = $9,
			sleep_duration = $10,
			family_history = $11,
			smoking_status = $12,
			vitality_consent = $13,
			data_processing_consent = $14,
			health_screening_reminders = $15,
			points = 0,
			level = 'Bronze',
			onboarding_complete = TRUE,
			updated_at = NOW()
		WHERE user_id = $16
		RETURNING ` + healthProfileColumns
	var profile models.HealthProfile
	err := r.db.QueryRow(ctx, query,
		input.FirstName,
		input.LastName,
		input.Phone,
		input.Age,
		input.HeightCM,
		input.WeightKG,
		input.BMI,
		input.SaltIntake,
		input.StressScore,
		input.SleepDuration,
		input.FamilyHistory,
		input.SmokingStatus,
		input.VitalityConsent,
		input.DataProcessingConsent,
		input.HealthScreeningReminders,
		userID,
	).Scan(profileFields(&profile)...)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type UpdateHealthProfileInput struct {
	FirstName                *string
	LastName                 *string
	Phone                    *string
	Age                      *int
	HeightCM                 *float64
	WeightKG                 *float64
	BMI                      *float64
	SaltIntake               *float64
	StressScore              *int
	SleepDuration            *float64
	FamilyHistory            *string
	SmokingStatus            *string
	VitalityConsent          *bool
	HealthScreeningReminders *bool
}

func (r *HealthProfileRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateHealthProfileInput) (*models.HealthProfile, error) {
	query := `
		UPDATE health_profiles
		SET first_name = COALESCE($1, first_name),
			last_name = COALESCE($2, last_name),
			phone = COALESCE($3, phone),
			age = COALESCE($4, age),
			height_cm = COALESCE($5, height_cm),
			weight_kg = COALESCE($6, weight_kg),
			bmi = COALESCE($7, bmi),
			salt_intake = COALESCE($8, salt_intake),
			stress_score = COALESCE($9, stress_score),
			sleep_duration = COALESCE($10, sleep_duration),
			family_history = COALESCE($11, family_history),
			smoking_status = COALESCE($12, smoking_status),
			vitality_consent = COALESCE($13, vitality_consent),
			health_screening_reminders = COALESCE($14, health_screening_reminders),
			updated_at = NOW()
		WHERE user_id = $15
		RETURNING ` + healthProfileColumns
	var profile models.HealthProfile
	err := r.db.QueryRow(ctx, query,
		req.FirstName,
		req.LastName,
		req.Phone,
		req.Age,
		req.HeightCM,
		req.WeightKG,
		req.BMI,
		req.SaltIntake,
		req.StressScore,
		req.SleepDuration,
		req.FamilyHistory,
		req.SmokingStatus,
		req.VitalityConsent,
		req.HealthScreeningReminders,
		userID,
	).Scan(profileFields(&profile)...)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddPoints applies a point delta and returns the resulting balance.
func (r *HealthProfileRepository) AddPoints(ctx context.Context, userID int64, delta int) (int, error) {
	query := `
		UPDATE health_profiles
		SET points = points + $1, updated_at = NOW()
		WHERE user_id = $2
		RETURNING points
	`
	var points int
	if err := r.db.QueryRow(ctx, query, delta, userID).Scan(&points); err != nil {
		return 0, err
	}
	return points, nil
}

func (r *HealthProfileRepository) SetLevel(ctx context.Context, userID int64, level string) error {
	query := `UPDATE health_profiles SET level = $1, updated_at = NOW() WHERE user_id = $2`
	_, err := r.db.Exec(ctx, query, level, userID)
	return err
}

func (r *HealthProfileRepository) MarkAccrualGranted(ctx context.Context, userID int64) error {
	query := `UPDATE health_profiles SET accrual_granted_at = NOW(), updated_at = NOW() WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *HealthProfileRepository) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT user_id,
			   TRIM(CONCAT(COALESCE(first_name, ''), ' ', COALESCE(last_name, ''))),
			   points, level
		FROM health_profiles
		WHERE onboarding_complete = TRUE
		ORDER BY points DESC, user_id ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(&entry.UserID, &entry.Name, &entry.Points, &entry.Level); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *HealthProfileRepository) scanProfile(ctx context.Context, query string, userID int64) (*models.HealthProfile, error) {
	var profile models.HealthProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(profileFields(&profile)...)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func profileFields(p *models.HealthProfile) []any {
	return []any{
		&p.ID,
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Phone,
		&p.Age,
		&p.HeightCM,
		&p.WeightKG,
		&p.BMI,
		&p.SaltIntake,
		&p.StressScore,
		&p.SleepDuration,
		&p.FamilyHistory,
		&p.SmokingStatus,
		&p.VitalityConsent,
		&p.DataProcessingConsent,
		&p.HealthScreeningReminders,
		&p.Points,
		&p.Level,
		&p.AccrualGrantedAt,
		&p.OnboardingComplete,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}
