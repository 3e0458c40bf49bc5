package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
	"github.com/jhoicas/superindo-api/internal/infrastructure/memory"
)

func TestRun_RollbackDescartaCambios(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repos := store.Repositories()
	require.NoError(t, repos.Materials.Create(ctx, &entity.Material{ID: "m1", Name: "Harina", Code: "MAT-1", StockQuantity: decimal.NewFromInt(5)}))

	boom := errors.New("boom")
	err := store.Run(ctx, func(tx repository.Repositories) error {
		if err := tx.Stock.SetQuantity(ctx, domain.MaterialRef("m1"), decimal.NewFromInt(99), time.Now()); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	m, err := repos.Materials.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, m.StockQuantity.Equal(decimal.NewFromInt(5)))
}

func TestRun_CommitPublicaCambios(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repos := store.Repositories()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Pan", Code: "PRD-1"}))

	err := store.Run(ctx, func(tx repository.Repositories) error {
		return tx.Stock.SetQuantity(ctx, domain.ProductRef("p1"), decimal.NewFromInt(7), time.Now())
	})
	require.NoError(t, err)

	item, err := repos.Stock.GetForUpdate(ctx, domain.ProductRef("p1"))
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.True(t, item.StockQuantity.Equal(decimal.NewFromInt(7)))
}

func TestMaterials_CodigoUnicoYUpdateNoTocaStock(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repositories()
	require.NoError(t, repos.Materials.Create(ctx, &entity.Material{ID: "m1", Name: "Harina", Code: "MAT-1", StockQuantity: decimal.NewFromInt(10)}))

	err := repos.Materials.Create(ctx, &entity.Material{ID: "m2", Name: "Azúcar", Code: "MAT-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, repos.Materials.Update(ctx, &entity.Material{ID: "m1", Name: "Harina 000", Code: "MAT-1", StockQuantity: decimal.Zero}))
	m, _ := repos.Materials.GetByID(ctx, "m1")
	assert.Equal(t, "Harina 000", m.Name)
	assert.True(t, m.StockQuantity.Equal(decimal.NewFromInt(10)))
}

func TestLastNumber_SoloDelPrefijoDelDia(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repositories()
	for _, n := range []string{"IN202507210001", "IN202507210003", "IN202507200009"} {
		require.NoError(t, repos.Incomings.Create(ctx, &entity.Incoming{ID: n, IncomingNumber: n}))
	}
	last, err := repos.Incomings.LastNumber(ctx, "IN20250721")
	require.NoError(t, err)
	assert.Equal(t, "IN202507210003", last)

	last, err = repos.Invoices.LastNumber(ctx, "INV20250721")
	require.NoError(t, err)
	assert.Empty(t, last)
}
