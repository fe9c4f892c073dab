package routes

import (
	"inventory-system/internal/controllers"
	"inventory-system/internal/services"
	"inventory-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Админские маршруты: полный доступ ко всем инвентаризациям.
func runInventaireRouter(secureGroup *echo.Group, inventaireService services.InventaireServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	ctrl := controllers.NewInventaireController(inventaireService, logger)

	group := secureGroup.Group("/inventaires", authMW.RequireAdmin)
	{
		group.GET("", ctrl.GetInventaires)
		group.GET("/deleted", ctrl.GetDeletedInventaires)
		group.GET("/count", ctrl.CountInventaires)
		group.GET("/count/user/:userId", ctrl.CountInventairesByUser)
		group.GET("/name/:name", ctrl.GetInventairesByName)
		group.GET("/user/:userId", ctrl.GetInventairesByUser)
		group.GET("/placement/:placementType/:placementId", ctrl.GetInventairesByPlacement)
		group.GET("/export", ctrl.ExportInventaires)
		group.GET("/:id", ctrl.FindInventaire)
		group.POST("", ctrl.CreateInventaire)
		group.PUT("/:id", ctrl.UpdateInventaire)
		group.DELETE("/:id", ctrl.DeleteInventaire)
		group.PATCH("/undelete/:id", ctrl.UndeleteInventaire)
		group.PATCH("/recalculate-equipment/:id", ctrl.RecalculateEquipment)
	}
}
