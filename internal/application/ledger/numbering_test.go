package ledger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/superindo-api/internal/application/ledger"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/numbering"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

func (f *fixture) seedIncoming(t *testing.T, number string) {
	t.Helper()
	require.NoError(t, f.repos.Incomings.Create(context.Background(), &entity.Incoming{
		ID: uuid.NewString(), IncomingNumber: number, CustomerID: f.customerID, MaterialID: f.materialID,
	}))
}

func (f *fixture) next(t *testing.T, gen ledger.NumberGenerator, prefix string) (string, error) {
	t.Helper()
	var out string
	err := f.store.Run(context.Background(), func(repos repository.Repositories) error {
		n, err := gen.Next(context.Background(), repos, prefix, f.now)
		out = n
		return err
	})
	return out, err
}

func TestCounterNumberGenerator_SiembraDesdeElUltimoExistente(t *testing.T) {
	f := newFixture(t, "0", "0")
	f.seedIncoming(t, "IN202507210005")
	f.seedIncoming(t, "IN202507200042") // otro día

	gen := ledger.CounterNumberGenerator{}
	n, err := f.next(t, gen, numbering.PrefixIncoming)
	require.NoError(t, err)
	assert.Equal(t, "IN202507210006", n)

	n, err = f.next(t, gen, numbering.PrefixIncoming)
	require.NoError(t, err)
	assert.Equal(t, "IN202507210007", n)

	n, err = f.next(t, gen, numbering.PrefixInvoice)
	require.NoError(t, err)
	assert.Equal(t, "INV202507210001", n)
}

func TestScanNumberGenerator_UsaElUltimoNumero(t *testing.T) {
	f := newFixture(t, "0", "0")
	gen := ledger.ScanNumberGenerator{}

	n, err := f.next(t, gen, numbering.PrefixIncoming)
	require.NoError(t, err)
	assert.Equal(t, "IN202507210001", n)

	f.seedIncoming(t, n)
	n, err = f.next(t, gen, numbering.PrefixIncoming)
	require.NoError(t, err)
	assert.Equal(t, "IN202507210002", n)
}

func TestCounterNumberGenerator_ObserveSoloSube(t *testing.T) {
	f := newFixture(t, "0", "0")
	gen := ledger.CounterNumberGenerator{}
	ctx := context.Background()

	n, err := f.next(t, gen, numbering.PrefixIncoming)
	require.NoError(t, err)
	assert.Equal(t, "IN202507210001", n)

	require.NoError(t, f.store.Run(ctx, func(repos repository.Repositories) error {
		for _, number := range []string{"IN202507210010", "IN202507210004", "IN-LEGACY-9", "INV202507210050"} {
			if err := gen.Observe(ctx, repos, numbering.PrefixIncoming, number); err != nil {
				return err
			}
		}
		return nil
	}))

	n, err = f.next(t, gen, numbering.PrefixIncoming)
	require.NoError(t, err)
	assert.Equal(t, "IN202507210011", n)
}

func TestNumberGenerator_SecuenciaAgotada(t *testing.T) {
	f := newFixture(t, "0", "0")
	f.seedIncoming(t, "IN202507219999")

	for _, gen := range []ledger.NumberGenerator{ledger.ScanNumberGenerator{}, ledger.CounterNumberGenerator{}} {
		_, err := f.next(t, gen, numbering.PrefixIncoming)
		assert.ErrorIs(t, err, numbering.ErrSequenceExhausted)
	}
}

func TestNumberGenerator_PrefijoDesconocido(t *testing.T) {
	f := newFixture(t, "0", "0")
	_, err := f.next(t, ledger.ScanNumberGenerator{}, "XX")
	assert.Error(t, err)
}
