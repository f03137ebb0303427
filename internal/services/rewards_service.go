package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
	"github.com/Mareme10tech/VitalShieldBack/internal/repository"
	eventws "github.com/Mareme10tech/VitalShieldBack/internal/websocket"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrQuestNotFound      = errors.New("quest not found")
	ErrQuestCompleted     = errors.New("quest already completed")
	ErrRewardNotFound     = errors.New("reward not found")
	ErrRewardRedeemed     = errors.New("reward already redeemed")
	ErrInsufficientPoints = errors.New("insufficient points")
)

const (
	levelSilverThreshold   = 500
	levelGoldThreshold     = 1000
	levelPlatinumThreshold = 2000
)

// AccrualItem is a one-time point award earned by healthy onboarding answers.
type AccrualItem struct {
	Name   string
	Points int
}

// AccrualItems lists the awards a profile qualifies for. BMI only counts
// when it has actually been computed.
func AccrualItems(profile *models.HealthProfile) []AccrualItem {
	if profile == nil {
		return nil
	}

	var items []AccrualItem
	if profile.BMI > 0 && profile.BMI <= 24.9 {
		items = append(items, AccrualItem{Name: "Healthy BMI", Points: 100})
	}
	if stringValue(profile.SmokingStatus) == models.SmokingNonSmoker {
		items = append(items, AccrualItem{Name: "Non-smoker", Points: 150})
	}
	if profile.SleepDuration >= 7 {
		items = append(items, AccrualItem{Name: "Good sleep habits", Points: 50})
	}
	if profile.SaltIntake <= 5 {
		items = append(items, AccrualItem{Name: "Low salt intake", Points: 75})
	}
	if profile.StressScore <= 5 {
		items = append(items, AccrualItem{Name: "Managed stress levels", Points: 50})
	}
	return items
}

// LevelForPoints maps a point balance onto a membership level.
func LevelForPoints(points int) string {
	switch {
	case points >= levelPlatinumThreshold:
		return models.LevelPlatinum
	case points >= levelGoldThreshold:
		return models.LevelGold
	case points >= levelSilverThreshold:
		return models.LevelSilver
	default:
		return models.LevelBronze
	}
}

// LevelProgress reports percentage progress toward the next level and what
// that level is. Platinum members are always at 100 with no next level.
func LevelProgress(points int) (progress int, nextLevel *string, nextLevelPoints *int) {
	level := LevelForPoints(points)
	if level == models.LevelPlatinum {
		return 100, nil, nil
	}

	var next string
	var threshold int
	switch level {
	case models.LevelBronze:
		next, threshold = models.LevelSilver, levelSilverThreshold
	case models.LevelSilver:
		next, threshold = models.LevelGold, levelGoldThreshold
	default:
		next, threshold = models.LevelPlatinum, levelPlatinumThreshold
	}

	progress = points * 100 / threshold
	return progress, &next, &threshold
}

// ComputeRewards derives the rewards summary for a completed profile given
// the user's existing point balance. Points for healthy onboarding answers
// are added on top of the balance; streaks, quests and rewards are filled in
// by the caller from storage.
func ComputeRewards(profile *models.HealthProfile, existingPoints int) models.RewardsState {
	points := existingPoints
	for _, item := range AccrualItems(profile) {
		points += item.Points
	}

	progress, nextLevel, nextLevelPoints := LevelProgress(points)
	return models.RewardsState{
		Points:          points,
		Level:           LevelForPoints(points),
		Progress:        progress,
		NextLevel:       nextLevel,
		NextLevelPoints: nextLevelPoints,
	}
}

// QuestCompletion reports the outcome of completing a quest.
type QuestCompletion struct {
	Quest     models.Quest  `json:"quest"`
	Points    int           `json:"points"`
	Level     string        `json:"level"`
	LeveledUp bool          `json:"leveled_up"`
	Streak    models.Streak `json:"streak"`
}

// RedemptionResult reports the outcome of redeeming a reward.
type RedemptionResult struct {
	Reward models.Reward `json:"reward"`
	Points int           `json:"points"`
	Level  string        `json:"level"`
}

// eventPublisher pushes dashboard events to connected clients. Nil is fine;
// events are best-effort.
type eventPublisher interface {
	Publish(userID int64, event eventws.Event)
}

// RewardsService owns point balances, quest and reward redemption, streaks
// and the activity feed. Mutations run in a transaction holding the user's
// profile row lock so concurrent requests cannot double-spend.
type RewardsService struct {
	db           *pgxpool.Pool
	profileRepo  *repository.HealthProfileRepository
	questRepo    *repository.QuestRepository
	rewardRepo   *repository.RewardRepository
	activityRepo *repository.ActivityRepository
	streakRepo   *repository.StreakRepository
	events       eventPublisher
}

func NewRewardsService(
	db *pgxpool.Pool,
	profileRepo *repository.HealthProfileRepository,
	questRepo *repository.QuestRepository,
	rewardRepo *repository.RewardRepository,
	activityRepo *repository.ActivityRepository,
	streakRepo *repository.StreakRepository,
	events eventPublisher,
) *RewardsService {
	return &RewardsService{
		db:           db,
		profileRepo:  profileRepo,
		questRepo:    questRepo,
		rewardRepo:   rewardRepo,
		activityRepo: activityRepo,
		streakRepo:   streakRepo,
		events:       events,
	}
}

// GetRewards returns the user's rewards dashboard. The first call after
// onboarding completes grants the one-time accrual for healthy answers.
func (s *RewardsService) GetRewards(ctx context.Context, userID int64) (*models.RewardsState, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	if profile.OnboardingComplete && profile.AccrualGrantedAt == nil {
		profile, err = s.grantAccrual(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	quests, err := s.questRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list quests: %w", err)
	}
	rewards, err := s.rewardRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	streak, err := s.streakRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load streak: %w", err)
	}

	progress, nextLevel, nextLevelPoints := LevelProgress(profile.Points)
	return &models.RewardsState{
		Points:          profile.Points,
		Level:           profile.Level,
		Progress:        progress,
		NextLevel:       nextLevel,
		NextLevelPoints: nextLevelPoints,
		Streak:          streak,
		Quests:          quests,
		Rewards:         rewards,
	}, nil
}

// grantAccrual awards the onboarding accrual exactly once, re-checking the
// grant marker under the row lock in case two requests race here.
func (s *RewardsService) grantAccrual(ctx context.Context, userID int64) (*models.HealthProfile, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin accrual: %w", err)
	}
	defer tx.Rollback(ctx)

	profileRepo := repository.NewHealthProfileRepository(tx)
	activityRepo := repository.NewActivityRepository(tx)

	profile, err := profileRepo.GetByUserIDForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lock profile: %w", err)
	}
	if profile.AccrualGrantedAt != nil {
		return profile, tx.Commit(ctx)
	}

	total := 0
	for _, item := range AccrualItems(profile) {
		if _, err := activityRepo.Create(ctx, userID, item.Name, item.Points); err != nil {
			return nil, fmt.Errorf("record accrual activity: %w", err)
		}
		total += item.Points
	}

	points := profile.Points
	if total > 0 {
		points, err = profileRepo.AddPoints(ctx, userID, total)
		if err != nil {
			return nil, fmt.Errorf("add accrual points: %w", err)
		}
	}
	level := LevelForPoints(points)
	if level != profile.Level {
		if err := profileRepo.SetLevel(ctx, userID, level); err != nil {
			return nil, fmt.Errorf("set level: %w", err)
		}
	}
	if err := profileRepo.MarkAccrualGranted(ctx, userID); err != nil {
		return nil, fmt.Errorf("mark accrual granted: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit accrual: %w", err)
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

// CompleteQuest marks a quest done for the user, awards its points, extends
// the streak and records the activity. Completing the same quest twice fails
// with ErrQuestCompleted.
func (s *RewardsService) CompleteQuest(ctx context.Context, userID, questID int64) (*QuestCompletion, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin quest completion: %w", err)
	}
	defer tx.Rollback(ctx)

	profileRepo := repository.NewHealthProfileRepository(tx)
	questRepo := repository.NewQuestRepository(tx)
	activityRepo := repository.NewActivityRepository(tx)
	streakRepo := repository.NewStreakRepository(tx)

	profile, err := profileRepo.GetByUserIDForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lock profile: %w", err)
	}

	quest, err := questRepo.GetByID(ctx, questID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrQuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load quest: %w", err)
	}

	done, err := questRepo.MarkCompleted(ctx, userID, questID)
	if err != nil {
		return nil, fmt.Errorf("mark quest completed: %w", err)
	}
	if !done {
		return nil, ErrQuestCompleted
	}

	points, err := profileRepo.AddPoints(ctx, userID, quest.Points)
	if err != nil {
		return nil, fmt.Errorf("add quest points: %w", err)
	}
	level := LevelForPoints(points)
	leveledUp := level != profile.Level
	if leveledUp {
		if err := profileRepo.SetLevel(ctx, userID, level); err != nil {
			return nil, fmt.Errorf("set level: %w", err)
		}
	}

	streak, err := streakRepo.Increment(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("increment streak: %w", err)
	}
	if _, err := activityRepo.Create(ctx, userID, "Completed: "+quest.Name, quest.Points); err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit quest completion: %w", err)
	}

	if s.events != nil {
		s.events.Publish(userID, eventws.Event{
			Type:   eventws.EventQuestCompleted,
			Name:   quest.Name,
			Points: quest.Points,
			Level:  level,
		})
		if leveledUp {
			s.events.Publish(userID, eventws.Event{Type: eventws.EventLevelUp, Level: level})
		}
	}

	quest.Completed = true
	return &QuestCompletion{
		Quest:     *quest,
		Points:    points,
		Level:     level,
		LeveledUp: leveledUp,
		Streak:    streak,
	}, nil
}

// RedeemReward spends points on a reward. The balance can never go negative;
// redemption is refused when points are short and a reward redeems only once.
func (s *RewardsService) RedeemReward(ctx context.Context, userID, rewardID int64) (*RedemptionResult, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin redemption: %w", err)
	}
	defer tx.Rollback(ctx)

	profileRepo := repository.NewHealthProfileRepository(tx)
	rewardRepo := repository.NewRewardRepository(tx)
	activityRepo := repository.NewActivityRepository(tx)

	profile, err := profileRepo.GetByUserIDForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lock profile: %w", err)
	}

	reward, err := rewardRepo.GetByID(ctx, rewardID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRewardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load reward: %w", err)
	}

	if profile.Points < reward.PointsCost {
		return nil, ErrInsufficientPoints
	}

	done, err := rewardRepo.MarkRedeemed(ctx, userID, rewardID)
	if err != nil {
		return nil, fmt.Errorf("mark reward redeemed: %w", err)
	}
	if !done {
		return nil, ErrRewardRedeemed
	}

	points, err := profileRepo.AddPoints(ctx, userID, -reward.PointsCost)
	if err != nil {
		return nil, fmt.Errorf("deduct points: %w", err)
	}
	level := LevelForPoints(points)
	if level != profile.Level {
		if err := profileRepo.SetLevel(ctx, userID, level); err != nil {
			return nil, fmt.Errorf("set level: %w", err)
		}
	}
	if _, err := activityRepo.Create(ctx, userID, "Redeemed: "+reward.Name, -reward.PointsCost); err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit redemption: %w", err)
	}

	if s.events != nil {
		s.events.Publish(userID, eventws.Event{
			Type:   eventws.EventRewardRedeemed,
			Name:   reward.Name,
			Points: -reward.PointsCost,
			Level:  level,
		})
	}

	reward.Redeemed = true
	return &RedemptionResult{Reward: *reward, Points: points, Level: level}, nil
}

// ListActivities returns a page of the user's activity feed, newest first.
func (s *RewardsService) ListActivities(ctx context.Context, userID int64, limit, offset int) ([]models.Activity, int, error) {
	activities, err := s.activityRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}
	total, err := s.activityRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}
	return activities, total, nil
}

// Leaderboard ranks completed profiles by point balance.
func (s *RewardsService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	return s.profileRepo.Leaderboard(ctx, limit)
}
