package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Lotes-api/internal/domain"
	"github.com/jhoicas/Lotes-api/internal/domain/entity"
	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

const (
	defaultMovementLimit = 50
	maxMovementLimit     = 500
)

// QueryUseCase consultas de solo lectura del motor de stock: lotes por
// producto, movimientos recientes, lotes por vencer y estadísticas.
// Usa repositorios atados al pool (fuera de transacción).
type QueryUseCase struct {
	productRepo repository.ProductRepository
	lotRepo     repository.LotRepository
	movRepo     repository.StockMovementRepository
	statsRepo   repository.StatsRepository
}

// NewQueryUseCase construye el caso de uso de lectura.
func NewQueryUseCase(
	productRepo repository.ProductRepository,
	lotRepo repository.LotRepository,
	movRepo repository.StockMovementRepository,
	statsRepo repository.StatsRepository,
) *QueryUseCase {
	return &QueryUseCase{
		productRepo: productRepo,
		lotRepo:     lotRepo,
		movRepo:     movRepo,
		statsRepo:   statsRepo,
	}
}

// GetLotsByProduct devuelve todos los lotes del producto en orden FEFO,
// incluidos los agotados (historial de costos y auditoría).
func (uc *QueryUseCase) GetLotsByProduct(ctx context.Context, productID string) ([]*entity.Lot, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.lotRepo.ListByProduct(productID)
}

// GetRecentMovements devuelve los últimos movimientos (timestamp descendente).
// limit <= 0 usa el valor por defecto; se acota al máximo permitido.
func (uc *QueryUseCase) GetRecentMovements(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	if limit > maxMovementLimit {
		limit = maxMovementLimit
	}
	return uc.movRepo.ListRecent(limit)
}

// GetExpiringLots devuelve los lotes abiertos que vencen dentro de los
// próximos days días, los primeros en vencer primero.
func (uc *QueryUseCase) GetExpiringLots(ctx context.Context, days int, limit int) ([]*entity.Lot, error) {
	if days <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	deadline := time.Now().AddDate(0, 0, days)
	return uc.lotRepo.ListExpiringBefore(deadline, limit)
}

// GetInventoryStatistics devuelve el resumen agregado del inventario.
func (uc *QueryUseCase) GetInventoryStatistics(ctx context.Context) (*repository.InventoryStatistics, error) {
	stats, err := uc.statsRepo.GetInventoryStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("estadísticas de inventario: %w", err)
	}
	return stats, nil
}
