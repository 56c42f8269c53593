package repository

import (
	"time"

	"github.com/jhoicas/Lotes-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos.
// El log es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListRecent(limit int) ([]*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// SumByProduct suma las cantidades firmadas del producto; debe coincidir
	// con el agregado CurrentStock entre operaciones.
	SumByProduct(productID string) (int64, error)
}
