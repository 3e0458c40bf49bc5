package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador de consecutivos en number_sequences. Dentro de la tx de la transición
// la fila queda bloqueada hasta el commit: dos transiciones del mismo prefijo se serializan
// y un rollback devuelve el número.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Increment suma 1 al contador. ok=false si no existe aún.
func (r *SequenceRepo) Increment(ctx context.Context, prefix, day string) (int, bool, error) {
	var v int
	err := r.q.QueryRow(ctx, `
		UPDATE number_sequences SET last_value = last_value + 1
		WHERE prefix = $1 AND day = $2
		RETURNING last_value`, prefix, day).Scan(&v)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("increment sequence: %w", err)
	}
	return v, true, nil
}

// Init crea el contador en seed+1; si otra transacción lo creó antes, lo incrementa.
func (r *SequenceRepo) Init(ctx context.Context, prefix, day string, seed int) (int, error) {
	var v int
	err := r.q.QueryRow(ctx, `
		INSERT INTO number_sequences (prefix, day, last_value) VALUES ($1, $2, $3 + 1)
		ON CONFLICT (prefix, day) DO UPDATE SET last_value = number_sequences.last_value + 1
		RETURNING last_value`, prefix, day, seed).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("init sequence: %w", err)
	}
	return v, nil
}

// Raise lleva el contador a GREATEST(last_value, seq) si ya existe.
func (r *SequenceRepo) Raise(ctx context.Context, prefix, day string, seq int) error {
	_, err := r.q.Exec(ctx, `
		UPDATE number_sequences SET last_value = GREATEST(last_value, $3)
		WHERE prefix = $1 AND day = $2`, prefix, day, seq)
	if err != nil {
		return fmt.Errorf("raise sequence: %w", err)
	}
	return nil
}
