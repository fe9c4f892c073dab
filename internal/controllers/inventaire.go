package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	"inventory-system/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type InventaireController struct {
	inventaireService services.InventaireServiceInterface
	logger            *zap.Logger
}

func NewInventaireController(inventaireService services.InventaireServiceInterface, logger *zap.Logger) *InventaireController {
	return &InventaireController{inventaireService: inventaireService, logger: logger}
}

func (c *InventaireController) GetInventaires(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	list, total, err := c.inventaireService.GetInventaires(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Инвентаризации успешно получены", http.StatusOK, total)
}

func (c *InventaireController) FindInventaire(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID"), c.logger)
	}
	res, err := c.inventaireService.FindInventaire(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Инвентаризация успешно найдена", http.StatusOK)
}

func (c *InventaireController) GetInventairesByName(ctx echo.Context) error {
	name := ctx.Param("name")
	list, err := c.inventaireService.GetInventairesByName(ctx.Request().Context(), name)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Инвентаризации успешно получены", http.StatusOK)
}

func (c *InventaireController) GetInventairesByUser(ctx echo.Context) error {
	userID, err := strconv.ParseUint(ctx.Param("userId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID пользователя"), c.logger)
	}
	list, err := c.inventaireService.GetInventairesByUser(ctx.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Инвентаризации пользователя успешно получены", http.StatusOK)
}

func (c *InventaireController) GetInventairesByPlacement(ctx echo.Context) error {
	placementType := ctx.Param("placementType")
	placementID, err := strconv.ParseUint(ctx.Param("placementId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID размещения"), c.logger)
	}
	list, err := c.inventaireService.GetInventairesByPlacement(ctx.Request().Context(), placementType, placementID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Инвентаризации по размещению успешно получены", http.StatusOK)
}

func (c *InventaireController) GetDeletedInventaires(ctx echo.Context) error {
	list, err := c.inventaireService.GetDeletedInventaires(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Удалённые инвентаризации успешно получены", http.StatusOK)
}

func (c *InventaireController) CountInventaires(ctx echo.Context) error {
	count, err := c.inventaireService.CountInventaires(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]uint64{"count": count}, "Количество инвентаризаций получено", http.StatusOK)
}

func (c *InventaireController) CountInventairesByUser(ctx echo.Context) error {
	userID, err := strconv.ParseUint(ctx.Param("userId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID пользователя"), c.logger)
	}
	count, err := c.inventaireService.CountInventairesByUser(ctx.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]uint64{"count": count}, "Количество инвентаризаций пользователя получено", http.StatusOK)
}

func (c *InventaireController) CreateInventaire(ctx echo.Context) error {
	var dto dto.CreateInventaireDTO
	if err := ctx.Bind(&dto); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&dto); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.inventaireService.CreateInventaire(ctx.Request().Context(), dto)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Инвентаризация успешно создана", http.StatusCreated)
}

func (c *InventaireController) UpdateInventaire(ctx echo.Context) error {
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
	res, err := c.inventaireService.UpdateInventaire(ctx.Request().Context(), id, dto)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Инвентаризация успешно обновлена", http.StatusOK)
}

func (c *InventaireController) DeleteInventaire(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID"), c.logger)
	}
	if err := c.inventaireService.SoftDeleteInventaire(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Инвентаризация успешно удалена", http.StatusOK)
}

func (c *InventaireController) UndeleteInventaire(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID"), c.logger)
	}
	res, err := c.inventaireService.UndeleteInventaire(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Инвентаризация успешно восстановлена", http.StatusOK)
}

func (c *InventaireController) RecalculateEquipment(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID"), c.logger)
	}
	count, err := c.inventaireService.RecalculateEquipmentCount(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]int{"total_equipment": count}, "Счётчик оборудования пересчитан", http.StatusOK)
}

var exportHeaders = []string{
	"ID", "Название", "Статус", "Дата начала", "Исполнитель", "Тип размещения",
	"ID размещения", "Оборудование", "Приоритет", "Тип инвентаризации", "Создана", "Обновлена",
}

func exportRow(item dto.InventaireDTO) []interface{} {
	return []interface{}{
		item.IDInventaire, item.Name, item.Status, item.StartDate, item.AssociatedTo,
		item.PlacementType, item.IDPlacement, item.TotalEquipment, item.Priority,
		item.InventoryType, item.CreatedAt, item.UpdatedAt,
	}
}

// ExportInventaires выгружает все активные инвентаризации в XLSX.
func (c *InventaireController) ExportInventaires(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter.Page = 1
	filter.Limit = 100000 // Выгружаем все для экспорта
	filter.Offset = 0

	list, _, err := c.inventaireService.GetInventaires(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	f := excelize.NewFile()
	sheet := "Инвентаризации"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &exportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "L1", style)

	for i, item := range list {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := exportRow(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "F", 18)
	f.SetColWidth(sheet, "K", "L", 22)

	fileName := fmt.Sprintf("inventaires_%s_%s.xlsx", time.Now().Format("2006-01-02"), uuid.NewString()[:8])
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
