package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Lotes-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Lotes-api/internal/domain/inventory"
	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

// AddStockRequest body para POST /api/stock/receipts.
type AddStockRequest struct {
	ProductID   string          `json:"product_id"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	LotNumber   string          `json:"lot_number"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	ProcessedBy string          `json:"processed_by"`
}

// RemoveStockRequest body para las salidas (FEFO y simple).
type RemoveStockRequest struct {
	ProductID   string `json:"product_id"`
	Quantity    int64  `json:"quantity"`
	ProcessedBy string `json:"processed_by"`
}

// AdjustStockRequest body para POST /api/stock/adjustments.
type AdjustStockRequest struct {
	ProductID   string `json:"product_id"`
	NewQuantity int64  `json:"new_quantity"`
	Notes       string `json:"notes,omitempty"`
	ProcessedBy string `json:"processed_by"`
}

// LotResponse representación de un lote en la API.
type LotResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	LotNumber         string          `json:"lot_number"`
	QuantityReceived  int64           `json:"quantity_received"`
	QuantityRemaining int64           `json:"quantity_remaining"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	ReceivedDate      time.Time       `json:"received_date"`
	Notes             string          `json:"notes,omitempty"`
}

// MovementResponse representación de un movimiento en la API.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	LotID       *string         `json:"lot_id,omitempty"`
	Kind        string          `json:"kind"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Timestamp   time.Time       `json:"timestamp"`
	ProcessedBy string          `json:"processed_by,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// LotConsumptionDTO una toma sobre un lote dentro de una salida FEFO.
type LotConsumptionDTO struct {
	LotID     string          `json:"lot_id"`
	LotNumber string          `json:"lot_number"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// FefoRemovalResponse resultado de una salida FEFO: qué lotes se consumieron
// y los movimientos emitidos.
type FefoRemovalResponse struct {
	Consumptions []LotConsumptionDTO `json:"consumptions"`
	Movements    []MovementResponse  `json:"movements"`
}

// StatisticsResponse resumen agregado del inventario.
type StatisticsResponse struct {
	TotalValue         decimal.Decimal `json:"total_value"`
	LowStockCount      int64           `json:"low_stock_count"`
	TodayMovementCount int64           `json:"today_movement_count"`
	AccuracyRatio      decimal.Decimal `json:"accuracy_ratio"`
}

// ToLotResponse mapea la entidad Lot a su representación de API.
func ToLotResponse(lot *entity.Lot) LotResponse {
	return LotResponse{
		ID:                lot.ID,
		ProductID:         lot.ProductID,
		LotNumber:         lot.LotNumber,
		QuantityReceived:  lot.QuantityReceived,
		QuantityRemaining: lot.QuantityRemaining,
		UnitCost:          lot.UnitCost,
		ExpiryDate:        lot.ExpiryDate,
		ReceivedDate:      lot.ReceivedDate,
		Notes:             lot.Notes,
	}
}

// ToMovementResponse mapea la entidad StockMovement a su representación de API.
func ToMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		LotID:       m.LotID,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		TotalCost:   m.TotalCost(),
		Timestamp:   m.Timestamp,
		ProcessedBy: m.ProcessedBy,
		Notes:       m.Notes,
	}
}

// ToLotConsumptionDTO mapea una selección del asignador FEFO.
func ToLotConsumptionDTO(sel domaininv.LotSelection) LotConsumptionDTO {
	return LotConsumptionDTO{
		LotID:     sel.LotID,
		LotNumber: sel.LotNumber,
		Quantity:  sel.Quantity,
		UnitCost:  sel.UnitCost,
	}
}

// ToStatisticsResponse mapea las estadísticas del repositorio.
func ToStatisticsResponse(s *repository.InventoryStatistics) StatisticsResponse {
	return StatisticsResponse{
		TotalValue:         s.TotalValue.Round(2),
		LowStockCount:      s.LowStockCount,
		TodayMovementCount: s.TodayMovementCount,
		AccuracyRatio:      s.AccuracyRatio,
	}
}
