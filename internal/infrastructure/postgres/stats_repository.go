package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura para el resumen de inventario.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// GetInventoryStatistics calcula en una sola pasada:
//   - total_value: Σ (restante × costo unitario) sobre todos los lotes
//   - low_stock_count: productos con agregado bajo su mínimo configurado
//   - today_movement_count: movimientos registrados hoy
//   - accuracy_ratio: fracción de productos con lotes cuyo agregado cuadra
//     con la suma de restantes de sus lotes (control del invariante
//     agregado = Σ lotes; 1.0 significa inventario cuadrado)
func (r *StatsRepo) GetInventoryStatistics(ctx context.Context) (*repository.InventoryStatistics, error) {
	const query = `
	WITH lot_totals AS (
	    SELECT product_id,
	           SUM(quantity_remaining)             AS remaining,
	           SUM(quantity_remaining * unit_cost) AS value
	    FROM lots
	    GROUP BY product_id
	)
	SELECT
	    COALESCE((SELECT SUM(value) FROM lot_totals), 0)                       AS total_value,
	    (SELECT COUNT(*) FROM products
	      WHERE minimum_stock > 0 AND current_stock < minimum_stock)           AS low_stock_count,
	    (SELECT COUNT(*) FROM stock_movements
	      WHERE timestamp >= date_trunc('day', now()))                         AS today_movement_count,
	    (SELECT COUNT(*) FROM products p
	      JOIN lot_totals lt ON lt.product_id = p.id
	      WHERE p.current_stock = lt.remaining)                                AS accurate_count,
	    (SELECT COUNT(*) FROM products p
	      JOIN lot_totals lt ON lt.product_id = p.id)                          AS tracked_count`

	var (
		stats         repository.InventoryStatistics
		accurateCount int64
		trackedCount  int64
	)
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalValue,
		&stats.LowStockCount,
		&stats.TodayMovementCount,
		&accurateCount,
		&trackedCount,
	)
	if err != nil {
		return nil, fmt.Errorf("get inventory statistics: %w", err)
	}

	// Sin productos con lotes el inventario se considera cuadrado.
	stats.AccuracyRatio = decimal.NewFromInt(1)
	if trackedCount > 0 {
		stats.AccuracyRatio = decimal.NewFromInt(accurateCount).
			Div(decimal.NewFromInt(trackedCount)).Round(4)
	}
	return &stats, nil
}
