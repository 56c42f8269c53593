package repository

import (
	"time"

	"github.com/jhoicas/Lotes-api/internal/domain/entity"
)

// LotRepository define el puerto de persistencia para lotes.
// Los lotes nunca se borran; las salidas solo debitan QuantityRemaining.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	GetByProductAndNumber(productID, lotNumber string) (*entity.Lot, error)
	// ListByProduct devuelve todos los lotes del producto (incluidos los
	// agotados, para auditoría) en orden FEFO.
	ListByProduct(productID string) ([]*entity.Lot, error)
	// ListOpenByProduct devuelve los lotes con QuantityRemaining > 0.
	ListOpenByProduct(productID string) ([]*entity.Lot, error)
	// CountByProduct cuenta los lotes del producto (incluidos los agotados).
	CountByProduct(productID string) (int64, error)
	// ListExpiringBefore devuelve los lotes abiertos que vencen antes de la fecha.
	ListExpiringBefore(deadline time.Time, limit int) ([]*entity.Lot, error)
	// DebitRemaining resta quantity de QuantityRemaining del lote.
	DebitRemaining(lotID string, quantity int64) error
}
