package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser un entero positivo")
	ErrInvalidCost       = errors.New("el costo unitario no puede ser negativo")
	ErrInvalidLotNumber  = errors.New("el número de lote no puede estar vacío")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrDuplicateLot      = errors.New("ya existe un lote con ese número para el producto")
	ErrLotTracked        = errors.New("el producto maneja lotes: usar salida FEFO")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrLockTimeout       = errors.New("no se pudo adquirir el bloqueo del producto a tiempo")
)

// InsufficientStockError detalla una salida rechazada por falta de stock.
// errors.Is(err, ErrInsufficientStock) devuelve true para este error.
type InsufficientStockError struct {
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: solicitado %d, disponible %d", e.Requested, e.Available)
}

// Is permite comparar contra el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
