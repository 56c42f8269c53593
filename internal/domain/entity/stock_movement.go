package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementKindRECEIPT    = "RECEIPT"    // entrada (alta de lote)
	MovementKindISSUE      = "ISSUE"      // salida
	MovementKindADJUSTMENT = "ADJUSTMENT" // ajuste manual
)

// StockMovement representa un movimiento de stock (entrada, salida o ajuste).
// El log de movimientos es append-only e inmutable: es la única pista de
// auditoría, y la suma de Quantity por producto debe coincidir con el
// agregado CurrentStock del producto.
type StockMovement struct {
	ID          string
	ProductID   string
	LotID       *string // nil para movimientos sin lote atribuido
	Kind        string  // RECEIPT, ISSUE, ADJUSTMENT
	Quantity    int64   // positivo entradas, negativo salidas
	UnitCost    decimal.Decimal
	Timestamp   time.Time
	ProcessedBy string
	Notes       string
}

// TotalCost devuelve el costo total atribuido al movimiento (cantidad × costo unitario).
func (m *StockMovement) TotalCost() decimal.Decimal {
	return decimal.NewFromInt(m.Quantity).Mul(m.UnitCost)
}
