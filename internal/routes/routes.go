package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/repositories"
	"inventory-system/internal/services"
	"inventory-system/pkg/config"
	"inventory-system/pkg/middleware"
	"inventory-system/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	userRepo := repositories.NewUserRepository(dbConn)
	placementRepo := repositories.NewPlacementRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	inventaireRepo := repositories.NewInventaireRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	placementService := services.NewPlacementService(placementRepo, logger)
	inventaireService := services.NewInventaireService(
		inventaireRepo, userRepo, equipmentRepo, placementService, cacheRepo, cfg.Cache.StatsTTL, logger,
	)
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, cfg, logger)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authService, logger)
	runInventaireRouter(secureGroup, inventaireService, logger, authMW)
	runInventaireMobileRouter(secureGroup, inventaireService, logger)

	logger.Info("InitRouter: Создание маршрутов завершено")
}
