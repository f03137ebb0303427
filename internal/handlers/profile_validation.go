package handlers

import "strings"

func validateProfileUpdateRequest(req updateProfileRequest) string {
	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) == "" {
		return "first_name must not be empty"
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) == "" {
		return "last_name must not be empty"
	}
	if req.Age != nil && (*req.Age <= 0 || *req.Age > 120) {
		return "age must be between 1 and 120"
	}
	if req.HeightCM != nil && *req.HeightCM <= 0 {
		return "height_cm must be greater than 0"
	}
	if req.WeightKG != nil && *req.WeightKG <= 0 {
		return "weight_kg must be greater than 0"
	}
	if req.SaltIntake != nil && (*req.SaltIntake < 0 || *req.SaltIntake > 70) {
		return "salt_intake must be between 0 and 70"
	}
	if req.StressScore != nil && (*req.StressScore < 0 || *req.StressScore > 10) {
		return "stress_score must be between 0 and 10"
	}
	if req.SleepDuration != nil && (*req.SleepDuration < 0 || *req.SleepDuration > 24) {
		return "sleep_duration must be between 0 and 24"
	}
	if req.FamilyHistory != nil {
		if err := validateFamilyHistory(*req.FamilyHistory); err != "" {
			return err
		}
	}
	if req.SmokingStatus != nil {
		if err := validateSmokingStatus(*req.SmokingStatus); err != "" {
			return err
		}
	}
	return ""
}
