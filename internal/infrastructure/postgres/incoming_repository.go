package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

var _ repository.IncomingRepository = (*IncomingRepo)(nil)

// IncomingRepo implementación de IncomingRepository sobre PostgreSQL (usable con pool o tx).
type IncomingRepo struct {
	q Querier
}

// NewIncomingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIncomingRepository(q Querier) *IncomingRepo {
	return &IncomingRepo{q: q}
}

const incomingColumns = `id, incoming_number, customer_id, material_id, quantity, unit_price, total_price, incoming_date, notes, created_at, updated_at`

func scanIncoming(row interface{ Scan(...any) error }) (*entity.Incoming, error) {
	var in entity.Incoming
	err := row.Scan(&in.ID, &in.IncomingNumber, &in.CustomerID, &in.MaterialID, &in.Quantity, &in.UnitPrice,
		&in.TotalPrice, &in.IncomingDate, &in.Notes, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// LastNumber implementa repository.NumberScanner.
func (r *IncomingRepo) LastNumber(ctx context.Context, dayPrefix string) (string, error) {
	return lastNumber(ctx, r.q, "incomings", "incoming_number", dayPrefix)
}

// Create persiste la entrada. Número repetido -> domain.ErrDuplicate.
func (r *IncomingRepo) Create(ctx context.Context, in *entity.Incoming) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO incomings (`+incomingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		in.ID, in.IncomingNumber, in.CustomerID, in.MaterialID, in.Quantity, in.UnitPrice,
		in.TotalPrice, in.IncomingDate, in.Notes, in.CreatedAt, in.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert incoming: %w", err)
	}
	return nil
}

func (r *IncomingRepo) get(ctx context.Context, id, suffix string) (*entity.Incoming, error) {
	in, err := scanIncoming(r.q.QueryRow(ctx, `SELECT `+incomingColumns+` FROM incomings WHERE id = $1`+suffix, id))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get incoming: %w", err)
	}
	return in, nil
}

// GetByID obtiene una entrada por ID. nil si no existe.
func (r *IncomingRepo) GetByID(ctx context.Context, id string) (*entity.Incoming, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate obtiene la entrada bloqueando la fila.
func (r *IncomingRepo) GetForUpdate(ctx context.Context, id string) (*entity.Incoming, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

// List devuelve todas las entradas, más recientes primero.
func (r *IncomingRepo) List(ctx context.Context) ([]*entity.Incoming, error) {
	rows, err := r.q.Query(ctx, `SELECT `+incomingColumns+` FROM incomings ORDER BY created_at DESC, incoming_number DESC`)
	if err != nil {
		return nil, fmt.Errorf("list incomings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Incoming
	for rows.Next() {
		in, err := scanIncoming(rows)
		if err != nil {
			return nil, fmt.Errorf("scan incoming: %w", err)
		}
		list = append(list, in)
	}
	return list, rows.Err()
}

// Update reemplaza los datos de la entrada.
func (r *IncomingRepo) Update(ctx context.Context, in *entity.Incoming) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE incomings SET incoming_number = $2, customer_id = $3, material_id = $4, quantity = $5, unit_price = $6,
			total_price = $7, incoming_date = $8, notes = $9, updated_at = $10
		WHERE id = $1`,
		in.ID, in.IncomingNumber, in.CustomerID, in.MaterialID, in.Quantity, in.UnitPrice,
		in.TotalPrice, in.IncomingDate, in.Notes, in.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update incoming: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la entrada.
func (r *IncomingRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "incomings", id)
}

// CountByCustomer cuenta entradas del cliente.
func (r *IncomingRepo) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	return countBy(ctx, r.q, "incomings", "customer_id", customerID)
}

// CountByMaterial cuenta entradas del material.
func (r *IncomingRepo) CountByMaterial(ctx context.Context, materialID string) (int, error) {
	return countBy(ctx, r.q, "incomings", "material_id", materialID)
}
