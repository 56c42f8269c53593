package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// InventoryStatistics es el resumen agregado del inventario para el panel.
type InventoryStatistics struct {
	TotalValue         decimal.Decimal // Σ (restante × costo unitario) sobre todos los lotes
	LowStockCount      int64           // productos con stock bajo el mínimo
	TodayMovementCount int64           // movimientos registrados hoy
	AccuracyRatio      decimal.Decimal // fracción de productos cuyo agregado cuadra con sus lotes
}

// StatsRepository consultas de solo lectura para estadísticas de inventario.
type StatsRepository interface {
	GetInventoryStatistics(ctx context.Context) (*InventoryStatistics, error)
}
