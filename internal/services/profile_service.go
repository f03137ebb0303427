package services

import (
	"context"
	"fmt"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
	"github.com/Mareme10tech/VitalShieldBack/internal/repository"
)

type profileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.HealthProfile, error)
	UpdatePartial(ctx context.Context, userID int64, input repository.UpdateHealthProfileInput) (*models.HealthProfile, error)
}

// ProfileService reads and partially updates health profiles. BMI is derived
// server-side whenever height or weight changes.
type ProfileService struct {
	profiles profileStore
}

func NewProfileService(profiles profileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*models.HealthProfile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// UpdateProfile applies the partial update. When height or weight is in the
// input, BMI is recomputed against the stored value of the other measurement.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, input repository.UpdateHealthProfileInput) (*models.HealthProfile, error) {
	input.BMI = nil

	if input.HeightCM != nil || input.WeightKG != nil {
		current, err := s.profiles.GetByUserID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
		height := floatValue(current.HeightCM)
		weight := floatValue(current.WeightKG)
		if input.HeightCM != nil {
			height = *input.HeightCM
		}
		if input.WeightKG != nil {
			weight = *input.WeightKG
		}
		bmi := CalculateBMI(height, weight)
		input.BMI = &bmi
	}

	return s.profiles.UpdatePartial(ctx, userID, input)
}
