package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/Mareme10tech/VitalShieldBack/internal/models"
	"github.com/Mareme10tech/VitalShieldBack/internal/repository"
	eventws "github.com/Mareme10tech/VitalShieldBack/internal/websocket"
	"github.com/jackc/pgx/v5"
)

// Wizard steps. Transitions are strictly linear and bounded.
const (
	StepWelcome       = 0
	StepPersonalInfo  = 1
	StepHealthProfile = 2
	StepLifestyle     = 3
	StepAISetup       = 4
	StepComplete      = 5
)

const defaultProcessingDelay = 3 * time.Second

var (
	ErrStepIncomplete  = errors.New("step incomplete")
	ErrProcessing      = errors.New("onboarding is processing")
	ErrNotComplete     = errors.New("onboarding not at final step")
	ErrConsentRequired = errors.New("data processing consent required")
)

type onboardingStore interface {
	Get(ctx context.Context, userID int64) (*models.OnboardingSession, error)
	Create(ctx context.Context, userID int64, form models.OnboardingForm) (*models.OnboardingSession, error)
	UpdateForm(ctx context.Context, userID int64, form models.OnboardingForm) error
	SetStep(ctx context.Context, userID int64, step int) error
	StartProcessing(ctx context.Context, userID int64, at time.Time) error
	FinishProcessing(ctx context.Context, userID int64, step int) error
	Delete(ctx context.Context, userID int64) error
}

type onboardingProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.HealthProfile, error)
	CompleteOnboarding(ctx context.Context, userID int64, input repository.CompleteOnboardingInput) (*models.HealthProfile, error)
}

type onboardingAccountStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// OnboardingService drives the onboarding wizard: one persisted session per
// user, linear step transitions gated by validation, and a simulated
// processing phase between the AI setup step and completion.
type OnboardingService struct {
	sessions onboardingStore
	profiles onboardingProfileStore
	users    onboardingAccountStore
	events   eventPublisher
	delay    time.Duration
	now      func() time.Time
}

func NewOnboardingService(
	sessions onboardingStore,
	profiles onboardingProfileStore,
	users onboardingAccountStore,
	events eventPublisher,
	delay time.Duration,
) *OnboardingService {
	if delay <= 0 {
		delay = defaultProcessingDelay
	}
	return &OnboardingService{
		sessions: sessions,
		profiles: profiles,
		users:    users,
		events:   events,
		delay:    delay,
		now:      time.Now,
	}
}

// Get returns the user's session, creating one seeded from any existing
// profile data on first access.
func (s *OnboardingService) Get(ctx context.Context, userID int64) (*models.OnboardingSession, error) {
	session, err := s.sessions.Get(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		session, err = s.start(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return s.resolveProcessing(ctx, session)
}

func (s *OnboardingService) start(ctx context.Context, userID int64) (*models.OnboardingSession, error) {
	form := models.OnboardingForm{
		SaltIntake:               5,
		StressScore:              5,
		SleepDuration:            7,
		HealthScreeningReminders: true,
	}

	if user, err := s.users.GetByID(ctx, userID); err == nil {
		form.Email = user.Email
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("load account: %w", err)
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile != nil {
		prefillForm(&form, profile)
	}

	return s.sessions.Create(ctx, userID, form)
}

func prefillForm(form *models.OnboardingForm, profile *models.HealthProfile) {
	form.FirstName = stringValue(profile.FirstName)
	form.LastName = stringValue(profile.LastName)
	form.Phone = stringValue(profile.Phone)
	form.Age = intValue(profile.Age)
	form.HeightCM = floatValue(profile.HeightCM)
	form.WeightKG = floatValue(profile.WeightKG)
	form.BMI = CalculateBMI(form.HeightCM, form.WeightKG)
	form.FamilyHistory = stringValue(profile.FamilyHistory)
	form.SmokingStatus = stringValue(profile.SmokingStatus)
	if profile.SaltIntake > 0 {
		form.SaltIntake = profile.SaltIntake
	}
	if profile.StressScore > 0 {
		form.StressScore = profile.StressScore
	}
	if profile.SleepDuration > 0 {
		form.SleepDuration = profile.SleepDuration
	}
	form.VitalityConsent = profile.VitalityConsent
	form.DataProcessingConsent = profile.DataProcessingConsent
	form.HealthScreeningReminders = profile.HealthScreeningReminders
}

// OnboardingFormInput carries a partial form update; nil fields are left
// unchanged. BMI is derived, never accepted from the client.
type OnboardingFormInput struct {
	FirstName                *string  `json:"first_name"`
	LastName                 *string  `json:"last_name"`
	Email                    *string  `json:"email"`
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
	DataProcessingConsent    *bool    `json:"data_processing_consent"`
	HealthScreeningReminders *bool    `json:"health_screening_reminders"`
}

// UpdateForm merges the input into the session form and recomputes BMI.
// Updates are refused while the processing phase is pending.
func (s *OnboardingService) UpdateForm(ctx context.Context, userID int64, input OnboardingFormInput) (*models.OnboardingSession, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.IsProcessing {
		return nil, ErrProcessing
	}

	form := session.Form
	if input.FirstName != nil {
		form.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		form.LastName = *input.LastName
	}
	if input.Email != nil {
		form.Email = *input.Email
	}
	if input.Phone != nil {
		form.Phone = *input.Phone
	}
	if input.Age != nil {
		form.Age = *input.Age
	}
	if input.HeightCM != nil {
		form.HeightCM = *input.HeightCM
	}
	if input.WeightKG != nil {
		form.WeightKG = *input.WeightKG
	}
	if input.SaltIntake != nil {
		form.SaltIntake = *input.SaltIntake
	}
	if input.StressScore != nil {
		form.StressScore = *input.StressScore
	}
	if input.SleepDuration != nil {
		form.SleepDuration = *input.SleepDuration
	}
	if input.FamilyHistory != nil {
		form.FamilyHistory = *input.FamilyHistory
	}
	if input.SmokingStatus != nil {
		form.SmokingStatus = *input.SmokingStatus
	}
	if input.VitalityConsent != nil {
		form.VitalityConsent = *input.VitalityConsent
	}
	if input.DataProcessingConsent != nil {
		form.DataProcessingConsent = *input.DataProcessingConsent
	}
	if input.HealthScreeningReminders != nil {
		form.HealthScreeningReminders = *input.HealthScreeningReminders
	}
	form.BMI = CalculateBMI(form.HeightCM, form.WeightKG)

	if err := s.sessions.UpdateForm(ctx, userID, form); err != nil {
		return nil, fmt.Errorf("save form: %w", err)
	}
	session.Form = form
	return session, nil
}

// Next advances one step when the current step validates. Advancing from the
// AI setup step starts the processing phase instead of moving immediately;
// the session lands on the final step once the delay has elapsed.
func (s *OnboardingService) Next(ctx context.Context, userID int64) (*models.OnboardingSession, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.IsProcessing {
		return nil, ErrProcessing
	}
	if session.ActiveStep >= StepComplete {
		return session, nil
	}

	if msg := ValidateStep(session.ActiveStep, session.Form); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrStepIncomplete, msg)
	}

	if session.ActiveStep == StepAISetup {
		startedAt := s.now()
		if err := s.sessions.StartProcessing(ctx, userID, startedAt); err != nil {
			return nil, fmt.Errorf("start processing: %w", err)
		}
		session.ProcessingStartedAt = &startedAt
		session.IsProcessing = true
		return session, nil
	}

	if err := s.sessions.SetStep(ctx, userID, session.ActiveStep+1); err != nil {
		return nil, fmt.Errorf("advance step: %w", err)
	}
	session.ActiveStep++
	return session, nil
}

// Back retreats one step; a no-op at the first step.
func (s *OnboardingService) Back(ctx context.Context, userID int64) (*models.OnboardingSession, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.IsProcessing {
		return nil, ErrProcessing
	}
	if session.ActiveStep <= StepWelcome {
		return session, nil
	}

	if err := s.sessions.SetStep(ctx, userID, session.ActiveStep-1); err != nil {
		return nil, fmt.Errorf("retreat step: %w", err)
	}
	session.ActiveStep--
	return session, nil
}

// Complete finalizes the health profile from the finished session. Only
// valid on the last step with data processing consent given. The session is
// kept when the profile save fails so completion can be retried.
func (s *OnboardingService) Complete(ctx context.Context, userID int64) (*models.HealthProfile, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.IsProcessing {
		return nil, ErrProcessing
	}
	if session.ActiveStep != StepComplete {
		return nil, ErrNotComplete
	}
	if !session.Form.DataProcessingConsent {
		return nil, ErrConsentRequired
	}

	form := session.Form
	profile, err := s.profiles.CompleteOnboarding(ctx, userID, repository.CompleteOnboardingInput{
		FirstName:                form.FirstName,
		LastName:                 form.LastName,
		Phone:                    form.Phone,
		Age:                      form.Age,
		HeightCM:                 form.HeightCM,
		WeightKG:                 form.WeightKG,
		BMI:                      CalculateBMI(form.HeightCM, form.WeightKG),
		SaltIntake:               form.SaltIntake,
		StressScore:              form.StressScore,
		SleepDuration:            form.SleepDuration,
		FamilyHistory:            form.FamilyHistory,
		SmokingStatus:            form.SmokingStatus,
		VitalityConsent:          form.VitalityConsent,
		DataProcessingConsent:    form.DataProcessingConsent,
		HealthScreeningReminders: form.HealthScreeningReminders,
	})
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	if err := s.sessions.Delete(ctx, userID); err != nil {
		log.Printf("onboarding: delete session for user %d: %v", userID, err)
	}
	if s.events != nil {
		s.events.Publish(userID, eventws.Event{Type: eventws.EventOnboardingComplete})
	}
	return profile, nil
}

// resolveProcessing settles a pending processing phase: still within the
// delay the session reports processing, afterwards it lands on the final
// step.
func (s *OnboardingService) resolveProcessing(ctx context.Context, session *models.OnboardingSession) (*models.OnboardingSession, error) {
	if session.ProcessingStartedAt == nil {
		return session, nil
	}
	if s.now().Before(session.ProcessingStartedAt.Add(s.delay)) {
		session.IsProcessing = true
		return session, nil
	}

	if err := s.sessions.FinishProcessing(ctx, session.UserID, StepComplete); err != nil {
		return nil, fmt.Errorf("finish processing: %w", err)
	}
	session.ProcessingStartedAt = nil
	session.IsProcessing = false
	session.ActiveStep = StepComplete
	return session, nil
}

// CalculateBMI computes weight / height² (height in meters), rounded to one
// decimal. Zero when either measurement is absent.
func CalculateBMI(heightCM, weightKG float64) float64 {
	if heightCM <= 0 || weightKG <= 0 {
		return 0
	}
	meters := heightCM / 100
	return math.Round(weightKG/(meters*meters)*10) / 10
}

// BMICategory labels a BMI value using the standard cut-offs.
func BMICategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return ""
	case bmi < 18.5:
		return "Underweight"
	case bmi <= 24.9:
		return "Normal"
	case bmi <= 29.9:
		return "Overweight"
	default:
		return "Obese"
	}
}

// ValidateStep reports why the given step cannot be left yet; empty means
// the step is complete. Steps without required fields always validate.
func ValidateStep(step int, form models.OnboardingForm) string {
	switch step {
	case StepPersonalInfo:
		if strings.TrimSpace(form.FirstName) == "" {
			return "first name is required"
		}
		if strings.TrimSpace(form.LastName) == "" {
			return "last name is required"
		}
		if strings.TrimSpace(form.Email) == "" {
			return "email is required"
		}
		if form.Age <= 0 {
			return "age is required"
		}
	case StepHealthProfile:
		if form.HeightCM <= 0 {
			return "height is required"
		}
		if form.WeightKG <= 0 {
			return "weight is required"
		}
		if form.FamilyHistory == "" {
			return "family history is required"
		}
		if form.SmokingStatus == "" {
			return "smoking status is required"
		}
	case StepLifestyle:
		if !form.DataProcessingConsent {
			return "data processing consent is required"
		}
	}
	return ""
}
