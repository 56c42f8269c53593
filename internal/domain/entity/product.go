package entity

import "time"

// Product representa un producto del catálogo con su stock agregado.
// CurrentStock es una caché desnormalizada: siempre igual a la suma de
// QuantityRemaining de sus lotes (invariante del motor; los productos sin
// lotes llevan el agregado directamente vía salidas/ajustes simples).
type Product struct {
	ID           string
	SKU          string
	Name         string
	CurrentStock int64
	MinimumStock int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock indica si el stock actual está por debajo del mínimo configurado.
func (p *Product) IsLowStock() bool {
	return p.MinimumStock > 0 && p.CurrentStock < p.MinimumStock
}
