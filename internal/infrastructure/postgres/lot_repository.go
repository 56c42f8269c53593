package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Lotes-api/internal/domain"
	"github.com/jhoicas/Lotes-api/internal/domain/entity"
	"github.com/jhoicas/Lotes-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación del puerto LotRepository sobre PostgreSQL
// (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `id, product_id, lot_number, quantity_received, quantity_remaining, unit_cost, expiry_date, received_date, notes, created_at`

// Orden FEFO: vencimiento ascendente con NULL al final, recepción ascendente, ID.
const fefoOrder = ` ORDER BY expiry_date ASC NULLS LAST, received_date ASC, id ASC`

// Create persiste un lote nuevo. El índice único (product_id, lot_number)
// respalda la política de rechazo de lotes duplicados.
func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (id, product_id, lot_number, quantity_received, quantity_remaining, unit_cost, expiry_date, received_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	notes := (*string)(nil)
	if lot.Notes != "" {
		notes = &lot.Notes
	}
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ProductID, lot.LotNumber,
		lot.QuantityReceived, lot.QuantityRemaining, lot.UnitCost,
		lot.ExpiryDate, lot.ReceivedDate, notes, lot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateLot
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get lot")
}

// GetByProductAndNumber obtiene un lote por producto y número de lote.
func (r *LotRepo) GetByProductAndNumber(productID, lotNumber string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE product_id = $1 AND lot_number = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, lotNumber), "get lot by number")
}

// ListByProduct devuelve todos los lotes del producto (incluidos los
// agotados) en orden FEFO.
func (r *LotRepo) ListByProduct(productID string) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE product_id = $1` + fefoOrder
	return r.list(query, "list lots by product", productID)
}

// ListOpenByProduct devuelve los lotes con unidades disponibles, en orden FEFO.
func (r *LotRepo) ListOpenByProduct(productID string) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE product_id = $1 AND quantity_remaining > 0` + fefoOrder
	return r.list(query, "list open lots", productID)
}

// CountByProduct cuenta los lotes del producto (incluidos los agotados).
func (r *LotRepo) CountByProduct(productID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM lots WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count lots: %w", err)
	}
	return n, nil
}

// ListExpiringBefore devuelve lotes abiertos que vencen antes de deadline,
// los primeros en vencer primero.
func (r *LotRepo) ListExpiringBefore(deadline time.Time, limit int) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots
		WHERE quantity_remaining > 0 AND expiry_date IS NOT NULL AND expiry_date < $1
		ORDER BY expiry_date ASC, received_date ASC, id ASC
		LIMIT $2`
	return r.list(query, "list expiring lots", deadline, limit)
}

// DebitRemaining resta quantity del restante del lote. El WHERE protege la
// no-negatividad: si no afecta filas, el débito dejaría el lote en negativo.
func (r *LotRepo) DebitRemaining(lotID string, quantity int64) error {
	query := `
		UPDATE lots SET quantity_remaining = quantity_remaining - $2
		WHERE id = $1 AND quantity_remaining >= $2`
	cmd, err := r.q.Exec(context.Background(), query, lotID, quantity)
	if err != nil {
		return fmt.Errorf("debit lot: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("debit lot %s: %w", lotID, domain.ErrInsufficientStock)
	}
	return nil
}

func (r *LotRepo) list(query, op string, args ...any) ([]*entity.Lot, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, lot)
	}
	return list, rows.Err()
}

func (r *LotRepo) scanOne(row pgx.Row, op string) (*entity.Lot, error) {
	lot, err := scanLot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lot, nil
}

func scanLot(row pgx.Row) (*entity.Lot, error) {
	var l entity.Lot
	var notes *string
	err := row.Scan(
		&l.ID, &l.ProductID, &l.LotNumber,
		&l.QuantityReceived, &l.QuantityRemaining, &l.UnitCost,
		&l.ExpiryDate, &l.ReceivedDate, &notes, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if notes != nil {
		l.Notes = *notes
	}
	return &l, nil
}
