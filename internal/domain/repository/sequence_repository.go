package repository

import "context"

// SequenceRepository mantiene un contador atómico por (prefijo, día) para los consecutivos.
// Dentro de una transacción el incremento queda bloqueado hasta Commit/Rollback.
type SequenceRepository interface {
	// Increment suma 1 al contador existente. ok=false si aún no hay contador para (prefix, day).
	Increment(ctx context.Context, prefix, day string) (value int, ok bool, err error)
	// Init crea el contador en seed+1; si otra transacción lo creó primero, lo incrementa.
	Init(ctx context.Context, prefix, day string, seed int) (int, error)
	// Raise lleva un contador existente al menos hasta seq (números asignados a mano).
	// Sin contador no hace nada: la siembra posterior ya lee el último número de la tabla.
	Raise(ctx context.Context, prefix, day string, seq int) error
}
