package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot representa una partida recibida de un producto: una cantidad con un
// mismo costo unitario y (opcionalmente) una fecha de vencimiento.
// Se crea en la entrada de stock y solo muta QuantityRemaining en las salidas.
// Nunca se borra: un lote agotado (QuantityRemaining = 0) se conserva como
// historial de costos y auditoría.
type Lot struct {
	ID                string
	ProductID         string
	LotNumber         string // único por producto
	QuantityReceived  int64
	QuantityRemaining int64
	UnitCost          decimal.Decimal // fijado en la recepción
	ExpiryDate        *time.Time      // nil = sin vencimiento
	ReceivedDate      time.Time
	Notes             string
	CreatedAt         time.Time
}

// IsExhausted indica si el lote ya no tiene unidades disponibles.
func (l *Lot) IsExhausted() bool {
	return l.QuantityRemaining <= 0
}

// ExpiresBefore indica si el lote vence antes de la fecha dada.
// Un lote sin vencimiento nunca vence.
func (l *Lot) ExpiresBefore(t time.Time) bool {
	return l.ExpiryDate != nil && l.ExpiryDate.Before(t)
}
