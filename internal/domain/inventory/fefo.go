// Package inventory contiene los servicios de dominio puros del motor de
// stock; en particular el asignador FEFO (First-Expired-First-Out).
package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Lotes-api/internal/domain/entity"
)

// LotSelection es una toma de unidades sobre un lote concreto.
// UnitCost es el costo del lote, para atribución exacta de COGS.
type LotSelection struct {
	LotID     string
	LotNumber string
	Quantity  int64
	UnitCost  decimal.Decimal
}

// FefoResult es el resultado del asignador: o bien una asignación completa
// (Shortfall == 0), o bien ninguna selección y el faltante reportado.
type FefoResult struct {
	Selections []LotSelection
	Allocated  int64
	Available  int64
	Shortfall  int64
}

// Satisfied indica si la asignación cubre la cantidad requerida.
func (r FefoResult) Satisfied() bool {
	return r.Shortfall == 0
}

// SelectForFefo decide de qué lotes tomar requiredQuantity unidades según la
// política FEFO. Función pura: no toca los lotes recibidos ni hace I/O.
//
// Orden total (determinista): vencimiento ascendente con los lotes sin
// vencimiento al final, luego fecha de recepción ascendente, luego ID.
// Se toma min(restante, faltante) de cada lote en ese orden.
//
// Todo-o-nada: si los lotes no alcanzan, no se propone ninguna selección y
// Shortfall lleva el faltante; el caller decide no aplicar nada parcial.
func SelectForFefo(lots []*entity.Lot, requiredQuantity int64) FefoResult {
	result := FefoResult{}

	candidates := make([]*entity.Lot, 0, len(lots))
	for _, lot := range lots {
		if lot.QuantityRemaining > 0 {
			candidates = append(candidates, lot)
			result.Available += lot.QuantityRemaining
		}
	}

	if requiredQuantity <= 0 {
		return result
	}
	if result.Available < requiredQuantity {
		result.Shortfall = requiredQuantity - result.Available
		return result
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return fefoBefore(candidates[i], candidates[j])
	})

	needed := requiredQuantity
	for _, lot := range candidates {
		if needed == 0 {
			break
		}
		take := lot.QuantityRemaining
		if take > needed {
			take = needed
		}
		result.Selections = append(result.Selections, LotSelection{
			LotID:     lot.ID,
			LotNumber: lot.LotNumber,
			Quantity:  take,
			UnitCost:  lot.UnitCost,
		})
		result.Allocated += take
		needed -= take
	}
	return result
}

// fefoBefore implementa el orden FEFO: (vencimiento asc, nil al final,
// recepción asc, ID asc).
func fefoBefore(a, b *entity.Lot) bool {
	switch {
	case a.ExpiryDate != nil && b.ExpiryDate == nil:
		return true
	case a.ExpiryDate == nil && b.ExpiryDate != nil:
		return false
	case a.ExpiryDate != nil && b.ExpiryDate != nil && !a.ExpiryDate.Equal(*b.ExpiryDate):
		return a.ExpiryDate.Before(*b.ExpiryDate)
	}
	if !a.ReceivedDate.Equal(b.ReceivedDate) {
		return a.ReceivedDate.Before(b.ReceivedDate)
	}
	return a.ID < b.ID
}
