package v1

import (
	"log"

	"diary-rooms/internal/config"
	"diary-rooms/internal/database"
	"diary-rooms/internal/delivery/http/handler"
	"diary-rooms/internal/delivery/http/middleware"
	"diary-rooms/internal/infrastructure/cache"
	"diary-rooms/internal/pkg/jwt"
	"diary-rooms/internal/repository"
	"diary-rooms/internal/usecase"
	"diary-rooms/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, redis *cache.Redis, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	communityRepo := repository.NewPostgresCommunityRepository(db)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := usecase.NewUserUsecase(userRepo, communityRepo)
	communityUC := usecase.NewCommunityUsecase(communityRepo, redis, cfg.Community.Categories, logger)
	rankingUC := usecase.NewRecommendationUsecase(
		communityUC,
		userRepo,
		cfg.Community.Categories,
		cfg.Community.RecommendedLimit,
		cfg.Community.TrendingLimit,
	)
	membershipUC := usecase.NewMembershipUsecase(communityRepo, redis, ws.Notifier{})

	authHandler := handler.NewAuthHandler(authUC)
	userHandler := handler.NewUserHandler(userUC)
	communityHandler := handler.NewCommunityHandler(communityUC, rankingUC, membershipUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	// The profile also answers at /auth/me for clients that keep all
	// identity calls under one prefix.
	protected.Get("/auth/me", userHandler.Me)

	usersGroup := protected.Group("/users")
	userHandler.RegisterRoutes(usersGroup)

	communitiesGroup := protected.Group("/communities")
	communityHandler.RegisterRoutes(communitiesGroup)
}
