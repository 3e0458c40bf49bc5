package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/superindo-api/internal/application/ledger"
	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

func TestStockLedger_HasEnoughStock(t *testing.T) {
	f := newFixture(t, "100", "0")
	ctx := context.Background()
	ref := domain.MaterialRef(f.materialID)

	err := f.store.Run(ctx, func(repos repository.Repositories) error {
		led := ledger.NewStockLedger(repos, f.now)
		for _, q := range []string{"0.01", "99.99", "100"} {
			ok, err := led.HasEnoughStock(ctx, ref, dec(q))
			require.NoError(t, err)
			assert.True(t, ok, q)
		}
		ok, err := led.HasEnoughStock(ctx, ref, dec("100.01"))
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func TestStockLedger_AddReduceRegistraMovimientos(t *testing.T) {
	f := newFixture(t, "10", "0")
	ctx := context.Background()
	ref := domain.MaterialRef(f.materialID)

	err := f.store.Run(ctx, func(repos repository.Repositories) error {
		led := ledger.NewStockLedger(repos, f.now).For(entity.MovementSourceIncoming, "src-1", "IN202507210001")
		require.NoError(t, led.AddStock(ctx, ref, dec("5.5"), entity.MovementReasonCreate))
		require.NoError(t, led.ReduceStock(ctx, ref, dec("3"), entity.MovementReasonDelete))
		require.NoError(t, led.AdjustStock(ctx, ref, dec("-2.5"), entity.MovementReasonUpdate))
		assert.Len(t, led.Movements(), 3)
		return nil
	})
	require.NoError(t, err)
	assertDecimal(t, "10", f.stock(t, ref))

	moves := f.store.Movements()
	require.Len(t, moves, 3)
	assertDecimal(t, "5.5", moves[0].Quantity)
	assertDecimal(t, "15.5", moves[0].BalanceAfter)
	assertDecimal(t, "-3", moves[1].Quantity)
	assertDecimal(t, "12.5", moves[1].BalanceAfter)
	assertDecimal(t, "-2.5", moves[2].Quantity)
	assertDecimal(t, "10", moves[2].BalanceAfter)
	assert.Equal(t, "IN202507210001", moves[0].SourceNumber)
	assert.Equal(t, entity.MovementSourceIncoming, moves[0].SourceType)
}

func TestStockLedger_ReduceInsuficienteNoCambiaSaldo(t *testing.T) {
	f := newFixture(t, "10", "0")
	ctx := context.Background()
	ref := domain.MaterialRef(f.materialID)

	err := f.store.Run(ctx, func(repos repository.Repositories) error {
		led := ledger.NewStockLedger(repos, f.now)
		err := led.ReduceStock(ctx, ref, dec("20"), entity.MovementReasonCreate)
		var ise *domain.InsufficientStockError
		require.True(t, errors.As(err, &ise))
		assertDecimal(t, "10", ise.Available)
		assertDecimal(t, "20", ise.Required)
		item, _ := led.Item(ctx, ref)
		assertDecimal(t, "10", item.StockQuantity)
		assert.Empty(t, led.Movements())
		return nil
	})
	require.NoError(t, err)
}

func TestStockLedger_LockArticulosInexistentes(t *testing.T) {
	f := newFixture(t, "10", "0")
	ctx := context.Background()

	err := f.store.Run(ctx, func(repos repository.Repositories) error {
		led := ledger.NewStockLedger(repos, f.now)
		return led.Lock(ctx, domain.ProductRef("no-existe"), domain.MaterialRef("tampoco"), domain.MaterialRef(f.materialID))
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "material_id")
	assert.Contains(t, verr.Fields, "product_id")
}

func TestStockLedger_CantidadNegativaEsInvalida(t *testing.T) {
	f := newFixture(t, "10", "0")
	ctx := context.Background()

	err := f.store.Run(ctx, func(repos repository.Repositories) error {
		return ledger.NewStockLedger(repos, f.now).AddStock(ctx, domain.MaterialRef(f.materialID), dec("-1"), entity.MovementReasonCreate)
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assertDecimal(t, "10", f.stock(t, domain.MaterialRef(f.materialID)))
}
