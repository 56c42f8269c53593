package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Lotes-api/internal/domain/entity"
	"github.com/jhoicas/Lotes-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func lote(id, numero string, restante int64, costo float64, vence *time.Time, recibido time.Time) *entity.Lot {
	return &entity.Lot{
		ID:                id,
		ProductID:         "p1",
		LotNumber:         numero,
		QuantityReceived:  restante,
		QuantityRemaining: restante,
		UnitCost:          decimal.NewFromFloat(costo),
		ExpiryDate:        vence,
		ReceivedDate:      recibido,
	}
}

func fecha(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SelectForFefo
// ──────────────────────────────────────────────────────────────────────────────

// Caso base: con A (10 und, vence 2025-01-01, recibido primero) y B (5 und,
// vence 2025-02-01), una salida de 12 toma 10 de A y 2 de B, con el costo
// de cada lote en su selección.
func TestSelectForFefo_OrdenPorVencimiento(t *testing.T) {
	recibido := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	a := lote("lot-a", "LOT-A", 10, 2.50, fecha(2025, 1, 1), recibido)
	b := lote("lot-b", "LOT-B", 5, 3.00, fecha(2025, 2, 1), recibido.Add(24*time.Hour))

	// El orden de entrada no importa: el asignador ordena.
	res := inventory.SelectForFefo([]*entity.Lot{b, a}, 12)

	require.True(t, res.Satisfied())
	require.Len(t, res.Selections, 2)
	assert.Equal(t, int64(12), res.Allocated)
	assert.Equal(t, int64(15), res.Available)

	assert.Equal(t, "lot-a", res.Selections[0].LotID)
	assert.Equal(t, int64(10), res.Selections[0].Quantity)
	assert.True(t, res.Selections[0].UnitCost.Equal(decimal.NewFromFloat(2.50)))

	assert.Equal(t, "lot-b", res.Selections[1].LotID)
	assert.Equal(t, int64(2), res.Selections[1].Quantity)
	assert.True(t, res.Selections[1].UnitCost.Equal(decimal.NewFromFloat(3.00)))
}

// Faltante: todo-o-nada. Con 15 disponibles y 16 solicitadas no se propone
// ninguna selección y se reporta el faltante.
func TestSelectForFefo_FaltanteSinSeleccionParcial(t *testing.T) {
	recibido := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	a := lote("lot-a", "LOT-A", 10, 2.50, fecha(2025, 1, 1), recibido)
	b := lote("lot-b", "LOT-B", 5, 3.00, fecha(2025, 2, 1), recibido)

	res := inventory.SelectForFefo([]*entity.Lot{a, b}, 16)

	assert.False(t, res.Satisfied())
	assert.Empty(t, res.Selections)
	assert.Equal(t, int64(1), res.Shortfall)
	assert.Equal(t, int64(15), res.Available)
	assert.Equal(t, int64(0), res.Allocated)
}

// Los lotes sin vencimiento van al final del orden FEFO.
func TestSelectForFefo_SinVencimientoAlFinal(t *testing.T) {
	recibido := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	sinVence := lote("lot-n", "LOT-N", 10, 1.00, nil, recibido)
	conVence := lote("lot-v", "LOT-V", 10, 1.00, fecha(2026, 12, 31), recibido.Add(time.Hour))

	res := inventory.SelectForFefo([]*entity.Lot{sinVence, conVence}, 12)

	require.True(t, res.Satisfied())
	require.Len(t, res.Selections, 2)
	assert.Equal(t, "lot-v", res.Selections[0].LotID)
	assert.Equal(t, int64(10), res.Selections[0].Quantity)
	assert.Equal(t, "lot-n", res.Selections[1].LotID)
	assert.Equal(t, int64(2), res.Selections[1].Quantity)
}

// Desempate con el mismo vencimiento: primero por fecha de recepción y
// luego por ID, para que la asignación sea determinista.
func TestSelectForFefo_DesempateRecepcionYLuegoID(t *testing.T) {
	vence := fecha(2025, 6, 1)
	r1 := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	r2 := time.Date(2024, 10, 2, 0, 0, 0, 0, time.UTC)

	primero := lote("lot-2", "LOT-2", 5, 1.00, vence, r1)
	segundo := lote("lot-1", "LOT-1", 5, 1.00, vence, r2)
	// Misma recepción que "segundo": desempata el ID.
	tercero := lote("lot-3", "LOT-3", 5, 1.00, vence, r2)

	res := inventory.SelectForFefo([]*entity.Lot{tercero, segundo, primero}, 15)

	require.True(t, res.Satisfied())
	require.Len(t, res.Selections, 3)
	assert.Equal(t, "lot-2", res.Selections[0].LotID) // recibido antes
	assert.Equal(t, "lot-1", res.Selections[1].LotID) // ID menor
	assert.Equal(t, "lot-3", res.Selections[2].LotID)
}

// Misma entrada, misma salida: el asignador es determinista.
func TestSelectForFefo_Determinista(t *testing.T) {
	recibido := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	lots := []*entity.Lot{
		lote("lot-c", "LOT-C", 7, 1.10, fecha(2025, 3, 1), recibido),
		lote("lot-a", "LOT-A", 4, 1.20, fecha(2025, 1, 1), recibido),
		lote("lot-b", "LOT-B", 9, 1.30, fecha(2025, 2, 1), recibido),
	}

	primera := inventory.SelectForFefo(lots, 15)
	segunda := inventory.SelectForFefo(lots, 15)

	require.Equal(t, primera.Selections, segunda.Selections)
	assert.Equal(t, primera.Allocated, segunda.Allocated)
}

// Los lotes agotados no participan de la asignación.
func TestSelectForFefo_IgnoraLotesAgotados(t *testing.T) {
	recibido := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	agotado := lote("lot-x", "LOT-X", 10, 1.00, fecha(2025, 1, 1), recibido)
	agotado.QuantityRemaining = 0
	vivo := lote("lot-y", "LOT-Y", 8, 1.00, fecha(2025, 2, 1), recibido)

	res := inventory.SelectForFefo([]*entity.Lot{agotado, vivo}, 8)

	require.True(t, res.Satisfied())
	require.Len(t, res.Selections, 1)
	assert.Equal(t, "lot-y", res.Selections[0].LotID)
	assert.Equal(t, int64(8), res.Available)
}

// Cantidad requerida cero o negativa: no hay nada que asignar.
func TestSelectForFefo_CantidadNoPositiva(t *testing.T) {
	recibido := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	lots := []*entity.Lot{lote("lot-a", "LOT-A", 5, 1.00, nil, recibido)}

	res := inventory.SelectForFefo(lots, 0)
	assert.Empty(t, res.Selections)
	assert.True(t, res.Satisfied())

	res = inventory.SelectForFefo(lots, -3)
	assert.Empty(t, res.Selections)
	assert.Equal(t, int64(0), res.Allocated)
}
