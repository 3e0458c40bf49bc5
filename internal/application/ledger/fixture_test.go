package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/superindo-api/internal/application/ledger"
	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
	"github.com/jhoicas/superindo-api/internal/infrastructure/memory"
)

var day = time.Date(2025, 7, 21, 10, 30, 0, 0, time.UTC)

type recordingPublisher struct {
	mu    sync.Mutex
	calls [][]*entity.StockMovement
}

func (p *recordingPublisher) Publish(_ context.Context, m []*entity.StockMovement) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, m)
	return nil
}

type fixture struct {
	store      *memory.Store
	repos      repository.Repositories
	events     *recordingPublisher
	now        time.Time
	customerID string
	materialID string
	productID  string
}

func newFixture(t *testing.T, materialStock, productStock string) *fixture {
	t.Helper()
	store := memory.New()
	f := &fixture{
		store:      store,
		repos:      store.Repositories(),
		events:     &recordingPublisher{},
		now:        day,
		customerID: uuid.NewString(),
	}
	ctx := context.Background()
	require.NoError(t, f.repos.Customers.Create(ctx, &entity.Customer{ID: f.customerID, Name: "PT Sumber Rejeki", IsActive: true}))
	f.materialID = f.addMaterial(t, "Tepung Terigu", "MAT-001", materialStock)
	f.productID = f.addProduct(t, "Roti Tawar", "PRD-001", productStock)
	return f
}

func (f *fixture) addMaterial(t *testing.T, name, code, stock string) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, f.repos.Materials.Create(context.Background(), &entity.Material{
		ID: id, Name: name, Code: code, Unit: "kg", StockQuantity: decimal.RequireFromString(stock), IsActive: true,
	}))
	return id
}

func (f *fixture) addProduct(t *testing.T, name, code, stock string) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, f.repos.Products.Create(context.Background(), &entity.Product{
		ID: id, Name: name, Code: code, Unit: "pcs", StockQuantity: decimal.RequireFromString(stock), IsActive: true,
	}))
	return id
}

func (f *fixture) deps() ledger.Deps {
	return ledger.Deps{
		Tx:     f.store,
		Reads:  f.repos,
		Events: f.events,
		Clock:  func() time.Time { return f.now },
	}
}

func (f *fixture) stock(t *testing.T, ref domain.ItemRef) decimal.Decimal {
	t.Helper()
	item, err := f.repos.Stock.GetForUpdate(context.Background(), ref)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item.StockQuantity
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
