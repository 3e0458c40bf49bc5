package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// lastNumber devuelve el mayor número (orden lexicográfico) que empieza con dayPrefix, o "".
func lastNumber(ctx context.Context, q Querier, table, column, dayPrefix string) (string, error) {
	var n string
	err := q.QueryRow(ctx, `
		SELECT `+column+` FROM `+table+`
		WHERE `+column+` LIKE $1 || '%'
		ORDER BY `+column+` DESC
		LIMIT 1`, dayPrefix).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last %s: %w", column, err)
	}
	return n, nil
}

// countBy cuenta filas de table con column = id (chequeos de integridad antes de borrar maestros).
func countBy(ctx context.Context, q Querier, table, column, id string) (int, error) {
	var n int
	err := q.QueryRow(ctx, `SELECT count(*) FROM `+table+` WHERE `+column+` = $1`, id).Scan(&n)
	if err != nil {
		if isInvalidText(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count %s by %s: %w", table, column, err)
	}
	return n, nil
}
