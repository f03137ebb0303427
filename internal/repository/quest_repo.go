package repository

import (
	"context"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
)

type QuestRepository struct {
	db DBTX
}

func NewQuestRepository(db DBTX) *QuestRepository {
	return &QuestRepository{db: db}
}

func (r *QuestRepository) GetByID(ctx context.Context, questID int64) (*models.Quest, error) {
	query := `SELECT id, name, description, points, difficulty FROM quests WHERE id = $1`
	var quest models.Quest
	err := r.db.QueryRow(ctx, query, questID).
		Scan(&quest.ID, &quest.Name, &quest.Description, &quest.Points, &quest.Difficulty)
	if err != nil {
		return nil, err
	}
	return &quest, nil
}

func (r *QuestRepository) ListForUser(ctx context.Context, userID int64) ([]models.Quest, error) {
	query := `
		SELECT q.id, q.name, q.description, q.points, q.difficulty,
			   COALESCE(uq.completed, FALSE), uq.completed_at
		FROM quests q
		LEFT JOIN user_quests uq ON uq.quest_id = q.id AND uq.user_id = $1
		ORDER BY q.id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quests []models.Quest
	for rows.Next() {
		var quest models.Quest
		if err := rows.Scan(
			&quest.ID,
			&quest.Name,
			&quest.Description,
			&quest.Points,
			&quest.Difficulty,
			&quest.Completed,
			&quest.CompletedAt,
		); err != nil {
			return nil, err
		}
		quests = append(quests, quest)
	}
	return quests, rows.Err()
}

// MarkCompleted records a quest completion exactly once. It reports false
// when the quest was already completed for this user.
func (r *QuestRepository) MarkCompleted(ctx context.Context, userID, questID int64) (bool, error) {
	query := `
		INSERT INTO user_quests (user_id, quest_id, completed, completed_at)
		VALUES ($1, $2, TRUE, NOW())
		ON CONFLICT (user_id, quest_id)
		DO UPDATE SET completed = TRUE, completed_at = NOW()
		WHERE user_quests.completed = FALSE
	`
	tag, err := r.db.Exec(ctx, query, userID, questID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
