package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/Lotes-api/internal/application/inventory"
	"github.com/jhoicas/Lotes-api/internal/domain"
	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

type fakeStatsRepo struct {
	stats repository.InventoryStatistics
}

func (r *fakeStatsRepo) GetInventoryStatistics(ctx context.Context) (*repository.InventoryStatistics, error) {
	cp := r.stats
	return &cp, nil
}

func newQuery(store *fakeStore, stats *fakeStatsRepo) *appinv.QueryUseCase {
	return appinv.NewQueryUseCase(
		&fakeProductRepo{store},
		&fakeLotRepo{store},
		&fakeMovementRepo{store},
		stats,
	)
}

// Los lotes agotados siguen visibles en la consulta por producto (auditoría).
func TestGetLotsByProduct_IncluyeAgotados(t *testing.T) {
	store := newFakeStore()
	seedProduct(t, store, "p1")
	engine := newEngine(store)
	ctx := context.Background()

	_, _, err := engine.AddStockWithLot(ctx, appinv.AddStockInput{
		ProductID: "p1", Quantity: 5, UnitCost: decimal.NewFromInt(1),
		LotNumber: "LOT-1", ExpiryDate: expira(2025, 1, 1),
	})
	require.NoError(t, err)
	_, _, err = engine.RemoveStockFefo(ctx, "p1", 5, "tester")
	require.NoError(t, err)

	query := newQuery(store, &fakeStatsRepo{})
	lots, err := query.GetLotsByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, int64(0), lots[0].QuantityRemaining)
	assert.Equal(t, int64(5), lots[0].QuantityReceived)

	_, err = query.GetLotsByProduct(ctx, "desconocido")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El límite de movimientos recientes se normaliza: por defecto y tope máximo.
func TestGetRecentMovements_NormalizaLimite(t *testing.T) {
	store := newFakeStore()
	seedProduct(t, store, "p1")
	engine := newEngine(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := engine.AdjustStock(ctx, "p1", int64(10*(i+1)), "tester", "")
		require.NoError(t, err)
	}

	query := newQuery(store, &fakeStatsRepo{})

	movements, err := query.GetRecentMovements(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, movements, 3)

	movements, err = query.GetRecentMovements(ctx, 2)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	// El más reciente primero.
	assert.Equal(t, int64(10), movements[0].Quantity)
}

func TestGetExpiringLots_ValidaDias(t *testing.T) {
	store := newFakeStore()
	seedProduct(t, store, "p1")
	engine := newEngine(store)
	ctx := context.Background()

	pronto := time.Now().AddDate(0, 0, 10)
	lejos := time.Now().AddDate(1, 0, 0)
	_, _, err := engine.AddStockWithLot(ctx, appinv.AddStockInput{
		ProductID: "p1", Quantity: 5, UnitCost: decimal.NewFromInt(1),
		LotNumber: "PRONTO", ExpiryDate: &pronto,
	})
	require.NoError(t, err)
	_, _, err = engine.AddStockWithLot(ctx, appinv.AddStockInput{
		ProductID: "p1", Quantity: 5, UnitCost: decimal.NewFromInt(1),
		LotNumber: "LEJOS", ExpiryDate: &lejos,
	})
	require.NoError(t, err)

	query := newQuery(store, &fakeStatsRepo{})

	lots, err := query.GetExpiringLots(ctx, 30, 0)
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, "PRONTO", lots[0].LotNumber)

	_, err = query.GetExpiringLots(ctx, 0, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetInventoryStatistics_Delega(t *testing.T) {
	stats := &fakeStatsRepo{stats: repository.InventoryStatistics{
		TotalValue:         decimal.NewFromFloat(123.45),
		LowStockCount:      2,
		TodayMovementCount: 7,
		AccuracyRatio:      decimal.NewFromInt(1),
	}}
	query := newQuery(newFakeStore(), stats)

	got, err := query.GetInventoryStatistics(context.Background())
	require.NoError(t, err)
	assert.True(t, got.TotalValue.Equal(decimal.NewFromFloat(123.45)))
	assert.Equal(t, int64(2), got.LowStockCount)
	assert.Equal(t, int64(7), got.TodayMovementCount)
}
