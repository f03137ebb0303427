package repository

import (
	"context"
	"errors"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
	"github.com/jackc/pgx/v5"
)

type StreakRepository struct {
	db DBTX
}

func NewStreakRepository(db DBTX) *StreakRepository {
	return &StreakRepository{db: db}
}

// Get returns a zero streak for users with no streak row yet.
func (r *StreakRepository) Get(ctx context.Context, userID int64) (models.Streak, error) {
	var streak models.Streak
	err := r.db.QueryRow(ctx, `SELECT current, longest FROM streaks WHERE user_id = $1`, userID).
		Scan(&streak.Current, &streak.Longest)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Streak{}, nil
	}
	if err != nil {
		return models.Streak{}, err
	}
	return streak, nil
}

func (r *StreakRepository) Increment(ctx context.Context, userID int64) (models.Streak, error) {
	query := `
		INSERT INTO streaks (user_id, current, longest)
		VALUES ($1, 1, 1)
		ON CONFLICT (user_id)
		DO UPDATE SET current = streaks.current + 1,
			longest = GREATEST(streaks.longest, streaks.current + 1),
			updated_at = NOW()
		RETURNING current, longest
	`
	var streak models.Streak
	if err := r.db.QueryRow(ctx, query, userID).Scan(&streak.Current, &streak.Longest); err != nil {
		return models.Streak{}, err
	}
	return streak, nil
}
