package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
	"github.com/Mareme10tech/VitalShieldBack/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type riskProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.HealthProfile, error)
}

// RiskHandler serves the derived views over a profile: the risk assessment
// with recommendations, and the lifestyle report. A missing or incomplete
// profile means no assessment, not an error.
type RiskHandler struct {
	profileRepo riskProfileStore
}

func NewRiskHandler(profileRepo riskProfileStore) *RiskHandler {
	return &RiskHandler{profileRepo: profileRepo}
}

func (h *RiskHandler) GetRiskAssessment(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("risk profile load: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch profile"})
	}
	if profile == nil || !profile.OnboardingComplete {
		return c.JSON(fiber.Map{"assessment": nil, "recommendations": nil})
	}

	return c.JSON(fiber.Map{
		"assessment":      services.AssessRisk(profile),
		"recommendations": services.GenerateRecommendations(profile),
	})
}

func (h *RiskHandler) GetLifestyleReport(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("lifestyle profile load: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch profile"})
	}
	if profile == nil || !profile.OnboardingComplete {
		return c.JSON(fiber.Map{"report": nil})
	}

	return c.JSON(fiber.Map{"report": services.AnalyzeLifestyle(profile)})
}
