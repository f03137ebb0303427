package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
	"github.com/Mareme10tech/VitalShieldBack/internal/repository"
	"github.com/Mareme10tech/VitalShieldBack/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type profileApplicationService interface {
	GetProfile(ctx context.Context, userID int64) (*models.HealthProfile, error)
	UpdateProfile(ctx context.Context, userID int64, input repository.UpdateHealthProfileInput) (*models.HealthProfile, error)
}

type ProfileHandler struct {
	profiles profileApplicationService
}

func NewProfileHandler(profiles profileApplicationService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type updateProfileRequest struct {
	FirstName                *string  `json:"first_name"`
	LastName                 *string  `json:"last_name"`
	Phone                    *string  `json:"phone"`
	Age                      *int     `json:"age"`
	HeightCM                 *float64 `json:"height_cm"`
	WeightKG                 *float64 `json:"weight_kg"`
	SaltIntake               *float64 `json:"salt_intake"`
	StressScore              *int     `json:"stress_score"`
	SleepDuration            *float64 `json:"sleep_duration"`
	FamilyHistory            *string  `json:"family_history"`
	SmokingStatus            *string  `json:"smoking_status"`
	VitalityConsent          *bool    `json:"vitality_consent"`
	HealthScreeningReminders *bool    `json:"health_screening_reminders"`
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.profiles.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		log.Printf("profile get: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{
		"profile":      profile,
		"bmi_category": services.BMICategory(profile.BMI),
	})
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateProfileUpdateRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.profiles.UpdateProfile(c.Context(), userID, repository.UpdateHealthProfileInput{
		FirstName:                req.FirstName,
		LastName:                 req.LastName,
		Phone:                    req.Phone,
		Age:                      req.Age,
		HeightCM:                 req.HeightCM,
		WeightKG:                 req.WeightKG,
		SaltIntake:               req.SaltIntake,
		StressScore:              req.StressScore,
		SleepDuration:            req.SleepDuration,
		FamilyHistory:            req.FamilyHistory,
		SmokingStatus:            req.SmokingStatus,
		VitalityConsent:          req.VitalityConsent,
		HealthScreeningReminders: req.HealthScreeningReminders,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		log.Printf("profile update: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":      profile,
		"bmi_category": services.BMICategory(profile.BMI),
	})
}
