package routes

import (
	"inventory-system/internal/controllers"
	"inventory-system/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Мобильные маршруты: каждый пользователь видит только свои инвентаризации.
func runInventaireMobileRouter(secureGroup *echo.Group, inventaireService services.InventaireServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewInventaireMobileController(inventaireService, logger)

	group := secureGroup.Group("/mobile/inventaires")
	{
		group.GET("", ctrl.GetMyInventaires)
		group.GET("/stats", ctrl.GetMyStats)
		group.GET("/:id", ctrl.FindMyInventaire)
		group.POST("", ctrl.CreateMyInventaire)
		group.PUT("/:id", ctrl.UpdateMyInventaire)
		group.PUT("/:id/status", ctrl.UpdateMyInventaireStatus)
	}
}
