package repository

import "github.com/jhoicas/Lotes-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE); usar
	// dentro de una transacción antes de tocar lotes o agregado.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock fija el agregado CurrentStock del producto.
	UpdateStock(id string, currentStock int64) error
}
