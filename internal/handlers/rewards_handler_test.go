package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
	"github.com/Mareme10tech/VitalShieldBack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubRewardsService struct {
	state        *models.RewardsState
	stateErr     error
	completion   *services.QuestCompletion
	completeErr  error
	redemption   *services.RedemptionResult
	redeemErr    error
	activities   []models.Activity
	total        int
	listErr      error
	leaderboard  []models.LeaderboardEntry
	lastQuestID  int64
	lastRewardID int64
	lastLimit    int
	lastOffset   int
}

func (s *stubRewardsService) GetRewards(_ context.Context, _ int64) (*models.RewardsState, error) {
	return s.state, s.stateErr
}

func (s *stubRewardsService) CompleteQuest(_ context.Context, _ int64, questID int64) (*services.QuestCompletion, error) {
	s.lastQuestID = questID
	return s.completion, s.completeErr
}

func (s *stubRewardsService) RedeemReward(_ context.Context, _ int64, rewardID int64) (*services.RedemptionResult, error) {
	s.lastRewardID = rewardID
	return s.redemption, s.redeemErr
}

func (s *stubRewardsService) ListActivities(_ context.Context, _ int64, limit, offset int) ([]models.Activity, int, error) {
	s.lastLimit = limit
	s.lastOffset = offset
	return s.activities, s.total, s.listErr
}

func (s *stubRewardsService) Leaderboard(_ context.Context, limit int) ([]models.LeaderboardEntry, error) {
	s.lastLimit = limit
	return s.leaderboard, nil
}

func newRewardsTestApp(service *stubRewardsService) *fiber.App {
	handler := NewRewardsHandler(service)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "7")
		return c.Next()
	})
	app.Get("/api/v1/rewards", handler.GetRewards)
	app.Post("/api/v1/rewards/quests/:id/complete", handler.CompleteQuest)
	app.Post("/api/v1/rewards/:id/redeem", handler.RedeemReward)
	app.Get("/api/v1/rewards/activities", handler.ListActivities)
	app.Get("/api/v1/rewards/leaderboard", handler.Leaderboard)
	return app
}

func TestGetRewardsReturnsState(t *testing.T) {
	silver := models.LevelSilver
	threshold := 500
	service := &stubRewardsService{
		state: &models.RewardsState{
			Points:          425,
			Level:           models.LevelBronze,
			Progress:        85,
			NextLevel:       &silver,
			NextLevelPoints: &threshold,
		},
	}
	app := newRewardsTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/rewards", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body models.RewardsState
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Points != 425 || body.Level != models.LevelBronze {
		t.Errorf("unexpected state %+v", body)
	}
}

func TestCompleteQuestMapsConflict(t *testing.T) {
	service := &stubRewardsService{completeErr: services.ErrQuestCompleted}
	app := newRewardsTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/rewards/quests/3/complete", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	if service.lastQuestID != 3 {
		t.Errorf("expected quest id 3, got %d", service.lastQuestID)
	}
}

func TestCompleteQuestReturnsResult(t *testing.T) {
	service := &stubRewardsService{
		completion: &services.QuestCompletion{
			Quest:  models.Quest{ID: 3, Name: "Sleep Warrior", Points: 150, Completed: true},
			Points: 575,
			Level:  models.LevelSilver,
			Streak: models.Streak{Current: 2, Longest: 4},
		},
	}
	app := newRewardsTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/rewards/quests/3/complete", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body services.QuestCompletion
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Points != 575 || body.Streak.Current != 2 {
		t.Errorf("unexpected completion %+v", body)
	}
}

func TestCompleteQuestRejectsBadID(t *testing.T) {
	app := newRewardsTestApp(&stubRewardsService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/rewards/quests/abc/complete", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRedeemRewardMapsInsufficientPoints(t *testing.T) {
	service := &stubRewardsService{redeemErr: services.ErrInsufficientPoints}
	app := newRewardsTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/rewards/2/redeem", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "Insufficient points" {
		t.Errorf("unexpected error %q", body["error"])
	}
}

func TestRedeemRewardMapsAlreadyRedeemed(t *testing.T) {
	service := &stubRewardsService{redeemErr: services.ErrRewardRedeemed}
	app := newRewardsTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/rewards/2/redeem", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestListActivitiesCapsLimit(t *testing.T) {
	service := &stubRewardsService{activities: []models.Activity{}, total: 0}
	app := newRewardsTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/rewards/activities?page=2&limit=500", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastLimit != maxPageLimit {
		t.Errorf("expected limit capped at %d, got %d", maxPageLimit, service.lastLimit)
	}
	if service.lastOffset != maxPageLimit {
		t.Errorf("expected offset %d for page 2, got %d", maxPageLimit, service.lastOffset)
	}
}

func TestLeaderboardReturnsEntries(t *testing.T) {
	service := &stubRewardsService{
		leaderboard: []models.LeaderboardEntry{
			{UserID: 1, Name: "Sam Lee", Points: 900, Level: models.LevelSilver},
		},
	}
	app := newRewardsTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/rewards/leaderboard", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Leaderboard) != 1 || body.Leaderboard[0].Points != 900 {
		t.Errorf("unexpected leaderboard %+v", body.Leaderboard)
	}
}
