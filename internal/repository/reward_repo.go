package repository

import (
	"context"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
)

type RewardRepository struct {
	db DBTX
}

func NewRewardRepository(db DBTX) *RewardRepository {
	return &RewardRepository{db: db}
}

func (r *RewardRepository) GetByID(ctx context.Context, rewardID int64) (*models.Reward, error) {
	query := `SELECT id, name, points_cost, level FROM rewards WHERE id = $1`
	var reward models.Reward
	err := r.db.QueryRow(ctx, query, rewardID).
		Scan(&reward.ID, &reward.Name, &reward.PointsCost, &reward.Level)
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *RewardRepository) ListForUser(ctx context.Context, userID int64) ([]models.Reward, error) {
	query := `
		SELECT rw.id, rw.name, rw.points_cost, rw.level,
			   COALESCE(ur.redeemed, FALSE), ur.redeemed_at
		FROM rewards rw
		LEFT JOIN user_rewards ur ON ur.reward_id = rw.id AND ur.user_id = $1
		ORDER BY rw.points_cost
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rewards []models.Reward
	for rows.Next() {
		var reward models.Reward
		if err := rows.Scan(
			&reward.ID,
			&reward.Name,
			&reward.PointsCost,
			&reward.Level,
			&reward.Redeemed,
			&reward.RedeemedAt,
		); err != nil {
			return nil, err
		}
		rewards = append(rewards, reward)
	}
	return rewards, rows.Err()
}

// MarkRedeemed flips a reward to redeemed exactly once; false means it was
// already redeemed.
func (r *RewardRepository) MarkRedeemed(ctx context.Context, userID, rewardID int64) (bool, error) {
	query := `
		INSERT INTO user_rewards (user_id, reward_id, redeemed, redeemed_at)
		VALUES ($1, $2, TRUE, NOW())
		ON CONFLICT (user_id, reward_id)
		DO UPDATE SET redeemed = TRUE, redeemed_at = NOW()
		WHERE user_rewards.redeemed = FALSE
	`
	tag, err := r.db.Exec(ctx, query, userID, rewardID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
