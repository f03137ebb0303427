package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
	"github.com/Mareme10tech/VitalShieldBack/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type stubProfileService struct {
	profile   *models.HealthProfile
	getErr    error
	updateErr error
	lastInput repository.UpdateHealthProfileInput
}

func (s *stubProfileService) GetProfile(_ context.Context, _ int64) (*models.HealthProfile, error) {
	return s.profile, s.getErr
}

func (s *stubProfileService) UpdateProfile(_ context.Context, _ int64, input repository.UpdateHealthProfileInput) (*models.HealthProfile, error) {
	s.lastInput = input
	return s.profile, s.updateErr
}

func newProfileTestApp(service *stubProfileService) *fiber.App {
	handler := NewProfileHandler(service)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "7")
		return c.Next()
	})
	app.Get("/api/v1/profile", handler.GetProfile)
	app.Put("/api/v1/profile", handler.UpdateProfile)
	return app
}

func TestGetProfileNotFound(t *testing.T) {
	app := newProfileTestApp(&stubProfileService{getErr: pgx.ErrNoRows})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetProfileIncludesBMICategory(t *testing.T) {
	app := newProfileTestApp(&stubProfileService{
		profile: &models.HealthProfile{UserID: 7, BMI: 31.2, Level: models.LevelBronze},
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		BMICategory string `json:"bmi_category"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.BMICategory != "Obese" {
		t.Errorf("expected Obese, got %q", body.BMICategory)
	}
}

func TestUpdateProfileRejectsInvalidSmokingStatus(t *testing.T) {
	service := &stubProfileService{profile: &models.HealthProfile{}}
	app := newProfileTestApp(service)

	payload := bytes.NewBufferString(`{"smoking_status": "sometimes"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateProfilePassesFieldsThrough(t *testing.T) {
	service := &stubProfileService{profile: &models.HealthProfile{UserID: 7, BMI: 24.7}}
	app := newProfileTestApp(service)

	payload := bytes.NewBufferString(`{"weight_kg": 80, "stress_score": 4}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastInput.WeightKG == nil || *service.lastInput.WeightKG != 80 {
		t.Errorf("expected weight 80 in input, got %v", service.lastInput.WeightKG)
	}
	if service.lastInput.StressScore == nil || *service.lastInput.StressScore != 4 {
		t.Errorf("expected stress 4 in input, got %v", service.lastInput.StressScore)
	}
	if service.lastInput.FirstName != nil {
		t.Errorf("expected untouched fields to stay nil, got %v", service.lastInput.FirstName)
	}
}
