package controllers

import (
	"net/http"
	"strconv"

	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	"inventory-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InventaireMobileController — маршруты мобильного клиента. Все операции
// ограничены записями текущего исполнителя.
type InventaireMobileController struct {
	inventaireService services.InventaireServiceInterface
	logger            *zap.Logger
}

func NewInventaireMobileController(inventaireService services.InventaireServiceInterface, logger *zap.Logger) *InventaireMobileController {
	return &InventaireMobileController{inventaireService: inventaireService, logger: logger}
}

func (c *InventaireMobileController) GetMyInventaires(ctx echo.Context) error {
	list, err := c.inventaireService.GetMyInventaires(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Мои инвентаризации успешно получены", http.StatusOK)
}

func (c *InventaireMobileController) FindMyInventaire(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID"), c.logger)
	}
	res, err := c.inventaireService.FindMyInventaire(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Инвентаризация успешно найдена", http.StatusOK)
}

func (c *InventaireMobileController) GetMyStats(ctx echo.Context) error {
	stats, err := c.inventaireService.GetMyInventaireStats(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "Статистика успешно получена", http.StatusOK)
}

func (c *InventaireMobileController) CreateMyInventaire(ctx echo.Context) error {
	var dto dto.CreateMyInventaireDTO
	if err := ctx.Bind(&dto); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&dto); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.inventaireService.CreateMyInventaire(ctx.Request().Context(), dto)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Инвентаризация успешно создана", http.StatusCreated)
}

func (c *InventaireMobileController) UpdateMyInventaire(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID"), c.logger)
	}
	var dto dto.UpdateInventaireDTO
	if err := ctx.Bind(&dto); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&dto); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.inventaireService.UpdateMyInventaire(ctx.Request().Context(), id, dto)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Инвентаризация успешно обновлена", http.StatusOK)
}

func (c *InventaireMobileController) UpdateMyInventaireStatus(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID"), c.logger)
	}
	var dto dto.UpdateInventaireStatusDTO
	if err := ctx.Bind(&dto); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&dto); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.inventaireService.UpdateMyInventaireStatus(ctx.Request().Context(), id, dto.Status)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статус успешно обновлён", http.StatusOK)
}
