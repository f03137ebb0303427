package routes

import (
	"github.com/Mareme10tech/VitalShieldBack/internal/config"
	"github.com/Mareme10tech/VitalShieldBack/internal/handlers"
	"github.com/Mareme10tech/VitalShieldBack/internal/middleware"
	"github.com/Mareme10tech/VitalShieldBack/internal/repository"
	"github.com/Mareme10tech/VitalShieldBack/internal/services"
	eventws "github.com/Mareme10tech/VitalShieldBack/internal/websocket"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewHealthProfileRepository(db)
	onboardingRepo := repository.NewOnboardingRepository(db)
	questRepo := repository.NewQuestRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	streakRepo := repository.NewStreakRepository(db)

	eventHub := eventws.NewHub()
	go eventHub.Run()

	onboardingService := services.NewOnboardingService(
		onboardingRepo, profileRepo, userRepo, eventHub, cfg.ProcessingDelay)
	profileService := services.NewProfileService(profileRepo)
	rewardsService := services.NewRewardsService(
		db, profileRepo, questRepo, rewardRepo, activityRepo, streakRepo, eventHub)

	authHandler := handlers.NewAuthHandler(db, userRepo, profileRepo, cfg.JWTSecret)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService)
	profileHandler := handlers.NewProfileHandler(profileService)
	riskHandler := handlers.NewRiskHandler(profileRepo)
	rewardsHandler := handlers.NewRewardsHandler(rewardsService)
	eventsHandler := handlers.NewEventsHandler(eventHub, cfg.JWTSecret)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	onboarding := authProtected.Group("/onboarding")
	onboarding.Get("", onboardingHandler.GetSession)
	onboarding.Put("", onboardingHandler.UpdateForm)
	onboarding.Post("/next", onboardingHandler.Next)
	onboarding.Post("/back", onboardingHandler.Back)
	onboarding.Post("/complete", onboardingHandler.Complete)

	authProtected.Get("/profile", profileHandler.GetProfile)
	authProtected.Put("/profile", profileHandler.UpdateProfile)

	authProtected.Get("/risk", riskHandler.GetRiskAssessment)
	authProtected.Get("/lifestyle", riskHandler.GetLifestyleReport)

	rewards := authProtected.Group("/rewards")
	rewards.Get("", rewardsHandler.GetRewards)
	rewards.Post("/quests/:id/complete", rewardsHandler.CompleteQuest)
	rewards.Post("/:id/redeem", rewardsHandler.RedeemReward)
	rewards.Get("/activities", rewardsHandler.ListActivities)
	rewards.Get("/leaderboard", rewardsHandler.Leaderboard)

	api.Use("/v1/ws", eventsHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(eventsHandler.HandleWebSocket))

	return registerDocsRoutes(app, cfg)
}
