package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
	"github.com/Mareme10tech/VitalShieldBack/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

var (
	testDBOnce sync.Once
	testDBPool *pgxpool.Pool
	testDBErr  error
)

func integrationTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	testDBOnce.Do(func() {
		_ = godotenv.Load(".env")
		_ = godotenv.Load(filepath.Join("..", "..", ".env"))

		dbURL := os.Getenv("DB_URL")
		if dbURL == "" {
			testDBErr = fmt.Errorf("DB_URL is not set")
			return
		}

		cfg, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			testDBErr = err
			return
		}

		testDBPool, testDBErr = pgxpool.NewWithConfig(context.Background(), cfg)
		if testDBErr != nil {
			return
		}
		testDBErr = testDBPool.Ping(context.Background())
	})

	if testDBErr != nil {
		t.Skipf("skipping integration test: %v", testDBErr)
	}
	return testDBPool
}

func newIntegrationRewardsService(pool *pgxpool.Pool) *RewardsService {
	return NewRewardsService(
		pool,
		repository.NewHealthProfileRepository(pool),
		repository.NewQuestRepository(pool),
		repository.NewRewardRepository(pool),
		repository.NewActivityRepository(pool),
		repository.NewStreakRepository(pool),
		nil,
	)
}

func createOnboardedUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool) int64 {
	t.Helper()

	userRepo := repository.NewUserRepository(pool)
	user := &models.User{
		Email:        fmt.Sprintf("rewards-test-%d@example.com", time.Now().UnixNano()),
		PasswordHash: "test-hash",
	}
	if err := userRepo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	profileRepo := repository.NewHealthProfileRepository(pool)
	if err := profileRepo.CreateEmpty(ctx, user.ID); err != nil {
		t.Fatalf("CreateEmpty profile: %v", err)
	}
	if _, err := profileRepo.CompleteOnboarding(ctx, user.ID, repository.CompleteOnboardingInput{
		FirstName:             "Test",
		LastName:              "User",
		Age:                   30,
		HeightCM:              180,
		WeightKG:              72,
		BMI:                   22.2,
		SaltIntake:            3,
		StressScore:           2,
		SleepDuration:         8,
		FamilyHistory:         models.FamilyHistoryNo,
		SmokingStatus:         models.SmokingNonSmoker,
		DataProcessingConsent: true,
	}); err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}

	return user.ID
}

func createTestQuest(t *testing.T, ctx context.Context, pool *pgxpool.Pool, points int) int64 {
	t.Helper()

	var questID int64
	err := pool.QueryRow(ctx,
		`INSERT INTO quests (name, description, points, difficulty) VALUES ($1, '', $2, 'Easy') RETURNING id`,
		fmt.Sprintf("Test Quest %d", time.Now().UnixNano()), points,
	).Scan(&questID)
	if err != nil {
		t.Fatalf("insert quest: %v", err)
	}
	return questID
}

func createTestReward(t *testing.T, ctx context.Context, pool *pgxpool.Pool, cost int) int64 {
	t.Helper()

	var rewardID int64
	err := pool.QueryRow(ctx,
		`INSERT INTO rewards (name, points_cost, level) VALUES ($1, $2, 'Bronze') RETURNING id`,
		fmt.Sprintf("Test Reward %d", time.Now().UnixNano()), cost,
	).Scan(&rewardID)
	if err != nil {
		t.Fatalf("insert reward: %v", err)
	}
	return rewardID
}

func cleanupRewardsTestData(t *testing.T, ctx context.Context, pool *pgxpool.Pool, userID, questID, rewardID int64) {
	t.Helper()

	if _, err := pool.Exec(ctx, "DELETE FROM users WHERE id = $1", userID); err != nil {
		t.Fatalf("cleanup user: %v", err)
	}
	if questID != 0 {
		if _, err := pool.Exec(ctx, "DELETE FROM quests WHERE id = $1", questID); err != nil {
			t.Fatalf("cleanup quest: %v", err)
		}
	}
	if rewardID != 0 {
		if _, err := pool.Exec(ctx, "DELETE FROM rewards WHERE id = $1", rewardID); err != nil {
			t.Fatalf("cleanup reward: %v", err)
		}
	}
}

func TestGetRewardsGrantsAccrualExactlyOnce(t *testing.T) {
	pool := integrationTestPool(t)
	ctx := context.Background()
	service := newIntegrationRewardsService(pool)

	userID := createOnboardedUser(t, ctx, pool)
	defer cleanupRewardsTestData(t, ctx, pool, userID, 0, 0)

	first, err := service.GetRewards(ctx, userID)
	if err != nil {
		t.Fatalf("GetRewards: %v", err)
	}
	// Healthy BMI 100 + non-smoker 150 + sleep 50 + salt 75 + stress 50
	if first.Points != 425 {
		t.Fatalf("expected 425 accrued points, got %d", first.Points)
	}
	if first.Level != models.LevelBronze {
		t.Fatalf("expected Bronze, got %s", first.Level)
	}

	second, err := service.GetRewards(ctx, userID)
	if err != nil {
		t.Fatalf("GetRewards second call: %v", err)
	}
	if second.Points != 425 {
		t.Fatalf("expected accrual granted once, got %d points on second read", second.Points)
	}
}

func TestCompleteQuestAwardsOnce(t *testing.T) {
	pool := integrationTestPool(t)
	ctx := context.Background()
	service := newIntegrationRewardsService(pool)

	userID := createOnboardedUser(t, ctx, pool)
	questID := createTestQuest(t, ctx, pool, 200)
	defer cleanupRewardsTestData(t, ctx, pool, userID, questID, 0)

	result, err := service.CompleteQuest(ctx, userID, questID)
	if err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}
	if result.Points != 200 {
		t.Fatalf("expected 200 points after quest, got %d", result.Points)
	}
	if result.Streak.Current != 1 || result.Streak.Longest != 1 {
		t.Fatalf("expected streak 1/1, got %+v", result.Streak)
	}

	if _, err := service.CompleteQuest(ctx, userID, questID); !errors.Is(err, ErrQuestCompleted) {
		t.Fatalf("expected ErrQuestCompleted on repeat, got %v", err)
	}

	state, err := service.GetRewards(ctx, userID)
	if err != nil {
		t.Fatalf("GetRewards: %v", err)
	}
	// 200 quest points + 425 accrual granted on the read
	if state.Points != 625 {
		t.Fatalf("expected 625 points, got %d", state.Points)
	}
}

func TestRedeemRewardRejectsInsufficientPoints(t *testing.T) {
	pool := integrationTestPool(t)
	ctx := context.Background()
	service := newIntegrationRewardsService(pool)

	userID := createOnboardedUser(t, ctx, pool)
	rewardID := createTestReward(t, ctx, pool, 500)
	defer cleanupRewardsTestData(t, ctx, pool, userID, 0, rewardID)

	// grant the 425-point accrual
	before, err := service.GetRewards(ctx, userID)
	if err != nil {
		t.Fatalf("GetRewards: %v", err)
	}
	if before.Points != 425 {
		t.Fatalf("expected 425 points before redemption, got %d", before.Points)
	}

	if _, err := service.RedeemReward(ctx, userID, rewardID); !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}

	after, err := service.GetRewards(ctx, userID)
	if err != nil {
		t.Fatalf("GetRewards after rejection: %v", err)
	}
	if after.Points != 425 {
		t.Fatalf("expected points unchanged at 425, got %d", after.Points)
	}
	for _, reward := range after.Rewards {
		if reward.ID == rewardID && reward.Redeemed {
			t.Fatal("expected reward to remain unredeemed")
		}
	}
}

func TestRedeemRewardDeductsAndMarksRedeemed(t *testing.T) {
	pool := integrationTestPool(t)
	ctx := context.Background()
	service := newIntegrationRewardsService(pool)

	userID := createOnboardedUser(t, ctx, pool)
	rewardID := createTestReward(t, ctx, pool, 300)
	defer cleanupRewardsTestData(t, ctx, pool, userID, 0, rewardID)

	if _, err := service.GetRewards(ctx, userID); err != nil {
		t.Fatalf("GetRewards: %v", err)
	}

	result, err := service.RedeemReward(ctx, userID, rewardID)
	if err != nil {
		t.Fatalf("RedeemReward: %v", err)
	}
	if result.Points != 125 {
		t.Fatalf("expected 125 points after redemption, got %d", result.Points)
	}

	if _, err := service.RedeemReward(ctx, userID, rewardID); !errors.Is(err, ErrRewardRedeemed) {
		t.Fatalf("expected ErrRewardRedeemed on repeat, got %v", err)
	}
}
