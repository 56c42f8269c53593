package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Lotes-api/internal/application/dto"
	"github.com/jhoicas/Lotes-api/internal/application/inventory"
	"github.com/jhoicas/Lotes-api/internal/domain"
)

// StockHandler maneja las peticiones HTTP del motor de stock: entradas con
// lote, salidas (FEFO y simple), ajustes y consultas.
type StockHandler struct {
	engine *inventory.StockUseCase
	query  *inventory.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(engine *inventory.StockUseCase, query *inventory.QueryUseCase) *StockHandler {
	return &StockHandler{engine: engine, query: query}
}

// AddStock registra una entrada de stock como lote nuevo.
// POST /api/stock/receipts
func (h *StockHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, mov, err := h.engine.AddStockWithLot(c.Context(), inventory.AddStockInput{
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		LotNumber:   in.LotNumber,
		ExpiryDate:  in.ExpiryDate,
		Notes:       in.Notes,
		ProcessedBy: in.ProcessedBy,
	})
	recordOperation("add_stock", err)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"lot":      dto.ToLotResponse(lot),
		"movement": dto.ToMovementResponse(mov),
	})
}

// RemoveStockFefo registra una salida asignada por FEFO.
// POST /api/stock/issues/fefo
func (h *StockHandler) RemoveStockFefo(c *fiber.Ctx) error {
	var in dto.RemoveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	selections, movements, err := h.engine.RemoveStockFefo(c.Context(), in.ProductID, in.Quantity, in.ProcessedBy)
	recordOperation("remove_stock_fefo", err)
	if err != nil {
		return mapDomainError(c, err)
	}
	resp := dto.FefoRemovalResponse{}
	for _, sel := range selections {
		resp.Consumptions = append(resp.Consumptions, dto.ToLotConsumptionDTO(sel))
	}
	for _, mov := range movements {
		resp.Movements = append(resp.Movements, dto.ToMovementResponse(mov))
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RemoveStock registra una salida simple sin atribución a lotes (solo
// productos que no manejan lotes).
// POST /api/stock/issues
func (h *StockHandler) RemoveStock(c *fiber.Ctx) error {
	var in dto.RemoveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.engine.RemoveStock(c.Context(), in.ProductID, in.Quantity, in.ProcessedBy)
	recordOperation("remove_stock", err)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"movement": dto.ToMovementResponse(mov)})
}

// AdjustStock fija el agregado de un producto sin lotes y registra el delta.
// POST /api/stock/adjustments
func (h *StockHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.engine.AdjustStock(c.Context(), in.ProductID, in.NewQuantity, in.ProcessedBy, in.Notes)
	recordOperation("adjust_stock", err)
	if err != nil {
		return mapDomainError(c, err)
	}
	if mov == nil {
		// Sin delta no hay movimiento que registrar.
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"movement": dto.ToMovementResponse(mov)})
}

// GetLotsByProduct devuelve todos los lotes del producto (incluidos los
// agotados) en orden FEFO.
// GET /api/products/:id/lots
func (h *StockHandler) GetLotsByProduct(c *fiber.Ctx) error {
	lots, err := h.query.GetLotsByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, lot := range lots {
		out = append(out, dto.ToLotResponse(lot))
	}
	return c.JSON(fiber.Map{"total": len(out), "lots": out})
}

// GetRecentMovements devuelve los últimos movimientos.
// GET /api/stock/movements?limit=50
func (h *StockHandler) GetRecentMovements(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	movements, err := h.query.GetRecentMovements(c.Context(), limit)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.ToMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// GetExpiringLots devuelve los lotes abiertos que vencen pronto.
// GET /api/stock/expiring?days=30&limit=50
func (h *StockHandler) GetExpiringLots(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "30"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	lots, err := h.query.GetExpiringLots(c.Context(), days, limit)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, lot := range lots {
		out = append(out, dto.ToLotResponse(lot))
	}
	return c.JSON(fiber.Map{"total": len(out), "lots": out})
}

// GetStatistics devuelve el resumen agregado del inventario.
// GET /api/stock/statistics
func (h *StockHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.query.GetInventoryStatistics(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ToStatisticsResponse(stats))
}

// mapDomainError traduce errores de dominio a códigos HTTP.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidCost),
		errors.Is(err, domain.ErrInvalidLotNumber),
		errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateLot):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_LOT", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrLotTracked):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOT_TRACKED", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		insufficientStockTotal.Inc()
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrLockTimeout):
		lockTimeoutsTotal.Inc()
		return c.Status(fiber.StatusLocked).JSON(dto.ErrorResponse{Code: "LOCK_TIMEOUT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
