// Package inventory contiene los casos de uso del motor de stock por lotes:
// entradas con lote, salidas FEFO, salidas simples y ajustes, todos
// transaccionales y serializados por producto.
package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Lotes-api/internal/domain"
	"github.com/jhoicas/Lotes-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Lotes-api/internal/domain/inventory"
	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

// StockUseCase orquesta las operaciones mutadoras del motor de stock.
// Cada operación valida antes de bloquear, adquiere la sección exclusiva del
// producto (ProductGuard) y aplica todos sus cambios dentro de una sola
// transacción (TxRunner): o se confirma todo o no se ve nada.
type StockUseCase struct {
	txRunner TxRunner
	guard    *ProductGuard
}

// NewStockUseCase construye el caso de uso. Las dependencias llegan por
// constructor; no hay estado global.
func NewStockUseCase(txRunner TxRunner, guard *ProductGuard) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, guard: guard}
}

// AddStockInput entrada para AddStockWithLot.
type AddStockInput struct {
	ProductID   string
	Quantity    int64
	UnitCost    decimal.Decimal
	LotNumber   string
	ExpiryDate  *time.Time // nil = sin vencimiento
	Notes       string
	ProcessedBy string
}

// AddStockWithLot registra una entrada de stock como un lote nuevo:
// crea el lote con QuantityRemaining = Quantity, suma Quantity al agregado
// del producto y deja un movimiento RECEIPT que referencia al lote.
//
// Un (producto, número de lote) repetido se rechaza con ErrDuplicateLot;
// la unicidad la respalda además un índice único en la base.
func (uc *StockUseCase) AddStockWithLot(ctx context.Context, in AddStockInput) (*entity.Lot, *entity.StockMovement, error) {
	if in.Quantity <= 0 {
		return nil, nil, domain.ErrInvalidQuantity
	}
	if in.UnitCost.IsNegative() {
		return nil, nil, domain.ErrInvalidCost
	}
	in.LotNumber = strings.TrimSpace(in.LotNumber)
	if in.LotNumber == "" {
		return nil, nil, domain.ErrInvalidLotNumber
	}
	if in.ProductID == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	release, err := uc.guard.Acquire(ctx, in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	now := time.Now()
	var lot *entity.Lot
	var mov *entity.StockMovement

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		lotRepo repository.LotRepository,
		movRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		existing, err := lotRepo.GetByProductAndNumber(in.ProductID, in.LotNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateLot
		}

		lot = &entity.Lot{
			ID:                uuid.New().String(),
			ProductID:         in.ProductID,
			LotNumber:         in.LotNumber,
			QuantityReceived:  in.Quantity,
			QuantityRemaining: in.Quantity,
			UnitCost:          in.UnitCost,
			ExpiryDate:        in.ExpiryDate,
			ReceivedDate:      now,
			Notes:             in.Notes,
			CreatedAt:         now,
		}
		if err := lotRepo.Create(lot); err != nil {
			return err
		}

		mov = &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   in.ProductID,
			LotID:       &lot.ID,
			Kind:        entity.MovementKindRECEIPT,
			Quantity:    in.Quantity,
			UnitCost:    in.UnitCost,
			Timestamp:   now,
			ProcessedBy: in.ProcessedBy,
			Notes:       in.Notes,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		return productRepo.UpdateStock(in.ProductID, product.CurrentStock+in.Quantity)
	})
	if err != nil {
		return nil, nil, err
	}
	return lot, mov, nil
}

// RemoveStockFefo registra una salida asignada por FEFO: toma la foto de los
// lotes abiertos dentro de la transacción, decide con el asignador puro y, si
// alcanza, debita cada lote consumido, debita el agregado y deja un movimiento
// ISSUE por lote con el costo de ese lote (atribución exacta de COGS).
//
// Si no alcanza, falla con InsufficientStockError y no aplica nada parcial.
func (uc *StockUseCase) RemoveStockFefo(ctx context.Context, productID string, quantity int64, processedBy string) ([]domaininv.LotSelection, []*entity.StockMovement, error) {
	if quantity <= 0 {
		return nil, nil, domain.ErrInvalidQuantity
	}
	if productID == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	release, err := uc.guard.Acquire(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	now := time.Now()
	var selections []domaininv.LotSelection
	var movements []*entity.StockMovement

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		lotRepo repository.LotRepository,
		movRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		lots, err := lotRepo.ListOpenByProduct(productID)
		if err != nil {
			return err
		}

		result := domaininv.SelectForFefo(lots, quantity)
		if !result.Satisfied() {
			return &domain.InsufficientStockError{Requested: quantity, Available: result.Available}
		}

		for _, sel := range result.Selections {
			if err := lotRepo.DebitRemaining(sel.LotID, sel.Quantity); err != nil {
				return err
			}
			lotID := sel.LotID
			mov := &entity.StockMovement{
				ID:          uuid.New().String(),
				ProductID:   productID,
				LotID:       &lotID,
				Kind:        entity.MovementKindISSUE,
				Quantity:    -sel.Quantity,
				UnitCost:    sel.UnitCost,
				Timestamp:   now,
				ProcessedBy: processedBy,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			movements = append(movements, mov)
		}
		selections = result.Selections
		return productRepo.UpdateStock(productID, product.CurrentStock-quantity)
	})
	if err != nil {
		return nil, nil, err
	}
	return selections, movements, nil
}

// RemoveStock registra una salida simple, sin atribución a lotes: debita el
// agregado y deja un único movimiento ISSUE con lote nulo.
//
// Solo aplica a productos que no manejan lotes: si el producto tiene algún
// lote (aunque esté agotado) la operación falla con ErrLotTracked, porque una
// salida sin debitar lotes rompería la consistencia agregado/lotes.
func (uc *StockUseCase) RemoveStock(ctx context.Context, productID string, quantity int64, processedBy string) (*entity.StockMovement, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}

	release, err := uc.guard.Acquire(ctx, productID)
	if err != nil {
		return nil, err
	}
	defer release()

	now := time.Now()
	var mov *entity.StockMovement

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		lotRepo repository.LotRepository,
		movRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		lotCount, err := lotRepo.CountByProduct(productID)
		if err != nil {
			return err
		}
		if lotCount > 0 {
			return domain.ErrLotTracked
		}
		if product.CurrentStock < quantity {
			return &domain.InsufficientStockError{Requested: quantity, Available: product.CurrentStock}
		}

		mov = &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   productID,
			Kind:        entity.MovementKindISSUE,
			Quantity:    -quantity,
			UnitCost:    decimal.Zero, // sin lote no hay base de costo
			Timestamp:   now,
			ProcessedBy: processedBy,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		return productRepo.UpdateStock(productID, product.CurrentStock-quantity)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// AdjustStock fija el agregado de un producto sin lotes en newQuantity y deja
// un movimiento ADJUSTMENT con el delta firmado. Mismo resguardo que
// RemoveStock: un producto con lotes no admite ajustes directos del agregado.
func (uc *StockUseCase) AdjustStock(ctx context.Context, productID string, newQuantity int64, processedBy, notes string) (*entity.StockMovement, error) {
	if newQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}

	release, err := uc.guard.Acquire(ctx, productID)
	if err != nil {
		return nil, err
	}
	defer release()

	now := time.Now()
	var mov *entity.StockMovement

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		lotRepo repository.LotRepository,
		movRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		lotCount, err := lotRepo.CountByProduct(productID)
		if err != nil {
			return err
		}
		if lotCount > 0 {
			return domain.ErrLotTracked
		}

		delta := newQuantity - product.CurrentStock
		if delta == 0 {
			return nil
		}
		mov = &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   productID,
			Kind:        entity.MovementKindADJUSTMENT,
			Quantity:    delta,
			UnitCost:    decimal.Zero,
			Timestamp:   now,
			ProcessedBy: processedBy,
			Notes:       notes,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		return productRepo.UpdateStock(productID, newQuantity)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}
