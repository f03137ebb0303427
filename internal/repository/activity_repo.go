package repository

import (
	"context"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
)

type ActivityRepository struct {
	db DBTX
}

func NewActivityRepository(db DBTX) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, userID int64, name string, points int) (*models.Activity, error) {
	query := `
		INSERT INTO activities (user_id, name, points)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, points, created_at
	`
	var activity models.Activity
	err := r.db.QueryRow(ctx, query, userID, name, points).
		Scan(&activity.ID, &activity.UserID, &activity.Name, &activity.Points, &activity.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *ActivityRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]models.Activity, error) {
	query := `
		SELECT id, user_id, name, points, created_at
		FROM activities
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var activity models.Activity
		if err := rows.Scan(
			&activity.ID,
			&activity.UserID,
			&activity.Name,
			&activity.Points,
			&activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

func (r *ActivityRepository) CountByUserID(ctx context.Context, userID int64) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM activities WHERE user_id = $1`, userID).Scan(&total)
	return total, err
}
