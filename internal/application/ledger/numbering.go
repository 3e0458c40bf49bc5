package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/superindo-api/internal/domain/numbering"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

// ScannerFor devuelve el repositorio que contiene los números del prefijo.
func ScannerFor(repos repository.Repositories, prefix string) (repository.NumberScanner, error) {
	switch prefix {
	case numbering.PrefixIncoming:
		return repos.Incomings, nil
	case numbering.PrefixProduction:
		return repos.Productions, nil
	case numbering.PrefixInvoice:
		return repos.Invoices, nil
	}
	return nil, fmt.Errorf("numbering: prefijo desconocido %q", prefix)
}

// LastSequence devuelve la secuencia del último número existente del día (0 si no hay).
func LastSequence(ctx context.Context, repos repository.Repositories, prefix string, at time.Time) (int, error) {
	scanner, err := ScannerFor(repos, prefix)
	if err != nil {
		return 0, err
	}
	last, err := scanner.LastNumber(ctx, numbering.DayPrefix(prefix, at))
	if err != nil {
		return 0, fmt.Errorf("last %s number: %w", prefix, err)
	}
	seq, _ := numbering.ParseSequence(last, prefix, at)
	return seq, nil
}

// ScanNumberGenerator toma el último número del día en la tabla de la transacción y suma 1.
// Dos transiciones concurrentes pueden leer el mismo último número; la restricción única
// de la tabla rechaza a la segunda.
type ScanNumberGenerator struct{}

// Next implementa NumberGenerator.
func (ScanNumberGenerator) Next(ctx context.Context, repos repository.Repositories, prefix string, at time.Time) (string, error) {
	seq, err := LastSequence(ctx, repos, prefix, at)
	if err != nil {
		return "", err
	}
	return numbering.Format(prefix, at, seq+1)
}

// Observe no hace nada: el número ya queda en la tabla que lee Next.
func (ScanNumberGenerator) Observe(context.Context, repository.Repositories, string, string) error {
	return nil
}

// CounterNumberGenerator usa el contador (prefijo, día) de SequenceRepository dentro de la tx.
// La primera vez del día se siembra con el último número existente.
type CounterNumberGenerator struct{}

// Next implementa NumberGenerator.
func (CounterNumberGenerator) Next(ctx context.Context, repos repository.Repositories, prefix string, at time.Time) (string, error) {
	day := numbering.Day(at)
	seq, ok, err := repos.Sequences.Increment(ctx, prefix, day)
	if err != nil {
		return "", fmt.Errorf("increment sequence %s%s: %w", prefix, day, err)
	}
	if !ok {
		seed, err := LastSequence(ctx, repos, prefix, at)
		if err != nil {
			return "", err
		}
		if seq, err = repos.Sequences.Init(ctx, prefix, day, seed); err != nil {
			return "", fmt.Errorf("init sequence %s%s: %w", prefix, day, err)
		}
	}
	return numbering.Format(prefix, at, seq)
}

// Observe adelanta el contador del día del número si este tiene el formato del prefijo.
func (CounterNumberGenerator) Observe(ctx context.Context, repos repository.Repositories, prefix, number string) error {
	day, seq, ok := numbering.Split(number, prefix)
	if !ok {
		return nil
	}
	if err := repos.Sequences.Raise(ctx, prefix, day, seq); err != nil {
		return fmt.Errorf("raise sequence %s%s: %w", prefix, day, err)
	}
	return nil
}
