package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
	"github.com/Mareme10tech/VitalShieldBack/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type rewardsApplicationService interface {
	GetRewards(ctx context.Context, userID int64) (*models.RewardsState, error)
	CompleteQuest(ctx context.Context, userID, questID int64) (*services.QuestCompletion, error)
	RedeemReward(ctx context.Context, userID, rewardID int64) (*services.RedemptionResult, error)
	ListActivities(ctx context.Context, userID int64, limit, offset int) ([]models.Activity, int, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}

type RewardsHandler struct {
	rewards rewardsApplicationService
}

func NewRewardsHandler(rewards rewardsApplicationService) *RewardsHandler {
	return &RewardsHandler{rewards: rewards}
}

func (h *RewardsHandler) GetRewards(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	state, err := h.rewards.GetRewards(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		log.Printf("rewards get: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch rewards"})
	}

	return c.JSON(state)
}

func (h *RewardsHandler) CompleteQuest(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	questID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid quest id"})
	}

	result, err := h.rewards.CompleteQuest(c.Context(), userID, questID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuestNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quest not found"})
		case errors.Is(err, services.ErrQuestCompleted):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Quest already completed"})
		case errors.Is(err, pgx.ErrNoRows):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		log.Printf("quest complete: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to complete quest"})
	}

	return c.JSON(result)
}

func (h *RewardsHandler) RedeemReward(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	rewardID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reward id"})
	}

	result, err := h.rewards.RedeemReward(c.Context(), userID, rewardID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRewardNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reward not found"})
		case errors.Is(err, services.ErrRewardRedeemed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Reward already redeemed"})
		case errors.Is(err, services.ErrInsufficientPoints):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Insufficient points"})
		case errors.Is(err, pgx.ErrNoRows):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		log.Printf("reward redeem: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to redeem reward"})
	}

	return c.JSON(result)
}

func (h *RewardsHandler) ListActivities(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	activities, total, err := h.rewards.ListActivities(c.Context(), userID, limit, (page-1)*limit)
	if err != nil {
		log.Printf("activities list: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch activities"})
	}

	return c.JSON(fiber.Map{
		"activities": activities,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *RewardsHandler) Leaderboard(c *fiber.Ctx) error {
	if _, err := parseUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	entries, err := h.rewards.Leaderboard(c.Context(), limit)
	if err != nil {
		log.Printf("leaderboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	return c.JSON(fiber.Map{"leaderboard": entries})
}
