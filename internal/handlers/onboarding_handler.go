package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
	"github.com/Mareme10tech/VitalShieldBack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type onboardingApplicationService interface {
	Get(ctx context.Context, userID int64) (*models.OnboardingSession, error)
	UpdateForm(ctx context.Context, userID int64, input services.OnboardingFormInput) (*models.OnboardingSession, error)
	Next(ctx context.Context, userID int64) (*models.OnboardingSession, error)
	Back(ctx context.Context, userID int64) (*models.OnboardingSession, error)
	Complete(ctx context.Context, userID int64) (*models.HealthProfile, error)
}

type OnboardingHandler struct {
	onboarding onboardingApplicationService
}

func NewOnboardingHandler(onboarding onboardingApplicationService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding}
}

func (h *OnboardingHandler) GetSession(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	session, err := h.onboarding.Get(c.Context(), userID)
	if err != nil {
		log.Printf("onboarding get: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load onboarding session"})
	}

	return c.JSON(sessionResponse(session))
}

func (h *OnboardingHandler) UpdateForm(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req services.OnboardingFormInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateOnboardingFormInput(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	session, err := h.onboarding.UpdateForm(c.Context(), userID, req)
	if err != nil {
		if errors.Is(err, services.ErrProcessing) {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"error": "Onboarding is processing"})
		}
		log.Printf("onboarding update: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to update onboarding session"})
	}

	return c.JSON(sessionResponse(session))
}

func (h *OnboardingHandler) Next(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	session, err := h.onboarding.Next(c.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStepIncomplete):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrProcessing):
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"error": "Onboarding is processing"})
		}
		log.Printf("onboarding next: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to advance onboarding"})
	}

	return c.JSON(sessionResponse(session))
}

func (h *OnboardingHandler) Back(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	session, err := h.onboarding.Back(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrProcessing) {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"error": "Onboarding is processing"})
		}
		log.Printf("onboarding back: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to step back"})
	}

	return c.JSON(sessionResponse(session))
}

func (h *OnboardingHandler) Complete(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.onboarding.Complete(c.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProcessing):
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"error": "Onboarding is processing"})
		case errors.Is(err, services.ErrNotComplete):
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Onboarding is not at the final step"})
		case errors.Is(err, services.ErrConsentRequired):
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Data processing consent is required"})
		}
		log.Printf("onboarding complete: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to complete onboarding"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func sessionResponse(session *models.OnboardingSession) fiber.Map {
	return fiber.Map{
		"session":      session,
		"bmi_category": services.BMICategory(session.Form.BMI),
	}
}
