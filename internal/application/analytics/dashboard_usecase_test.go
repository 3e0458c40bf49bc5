package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/superindo-api/internal/application/analytics"
	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
	"github.com/jhoicas/superindo-api/internal/infrastructure/memory"
)

var now = time.Date(2025, 7, 21, 15, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedStore(t *testing.T) (*memory.Store, repository.Repositories) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	repos := store.Repositories()
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "c1", Name: "PT Sumber Rejeki"}))
	require.NoError(t, repos.Materials.Create(ctx, &entity.Material{ID: "m1", Name: "Tepung", Code: "MAT-1", Unit: "kg", StockQuantity: d("4"), UnitPrice: d("2")}))
	require.NoError(t, repos.Materials.Create(ctx, &entity.Material{ID: "m2", Name: "Gula", Code: "MAT-2", Unit: "kg", StockQuantity: d("50")}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Roti", Code: "PRD-1", Unit: "pcs", StockQuantity: d("9.5")}))

	yesterday := now.AddDate(0, 0, -1)
	require.NoError(t, repos.Incomings.Create(ctx, &entity.Incoming{
		ID: "i1", IncomingNumber: "IN202507200001", CustomerID: "c1", MaterialID: "m1",
		Quantity: d("10"), UnitPrice: d("3"), TotalPrice: d("30"), CreatedAt: yesterday,
	}))
	require.NoError(t, repos.Incomings.Create(ctx, &entity.Incoming{
		ID: "i2", IncomingNumber: "IN202507210001", CustomerID: "c1", MaterialID: "m2",
		Quantity: d("5"), UnitPrice: d("2.5"), TotalPrice: d("12.5"), CreatedAt: now.Add(-time.Hour),
	}))
	require.NoError(t, repos.Productions.Create(ctx, &entity.Production{
		ID: "pr1", ProductionNumber: "PR202507210001", MaterialID: "m1", ProductID: "p1",
		MaterialQuantityUsed: d("1"), ProductQuantityProduced: d("1"), CreatedAt: now.Add(-30 * time.Minute),
	}))
	require.NoError(t, repos.Invoices.Create(ctx, &entity.Invoice{
		ID: "v1", InvoiceNumber: "INV202507210001", CustomerID: "c1", ProductID: "p1",
		Quantity: d("2"), UnitPrice: d("7.25"), TotalPrice: d("14.5"), Status: entity.InvoiceStatusDraft,
		CreatedAt: now.Add(-10 * time.Minute),
	}))
	return store, repos
}

func TestGetStats(t *testing.T) {
	store, repos := seedStore(t)
	uc := analytics.NewDashboardUseCase(store.Dashboard(), repos.Movements, d("10"), func() time.Time { return now })

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalCustomers)
	assert.Equal(t, 2, stats.TotalMaterials)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 1, stats.TodayIncomings, "la entrada de ayer no cuenta")
	assert.Equal(t, 1, stats.TodayProductions)
	assert.Equal(t, 1, stats.TodayInvoices)
	assert.True(t, stats.TotalIncomingValue.Equal(d("42.5")))
	assert.True(t, stats.TotalInvoiceValue.Equal(d("14.5")))
	assert.Equal(t, 1, stats.LowStockMaterials)
	assert.Equal(t, 1, stats.LowStockProducts)
	assert.Equal(t, "2025-07-21", stats.Date)
}

type failingDashboard struct {
	repository.DashboardRepository
}

func (failingDashboard) GetMasterCounts(context.Context) (repository.MasterCounts, error) {
	return repository.MasterCounts{}, errors.New("db caída")
}

func (failingDashboard) GetTransactionCounts(context.Context, time.Time, time.Time) (repository.TransactionCounts, error) {
	return repository.TransactionCounts{}, nil
}

func (failingDashboard) GetTotals(context.Context) (repository.TransactionTotals, error) {
	return repository.TransactionTotals{}, nil
}

func (failingDashboard) GetLowStockCounts(context.Context, decimal.Decimal) (repository.LowStockCounts, error) {
	return repository.LowStockCounts{}, nil
}

func TestGetStats_PropagatesRepositoryError(t *testing.T) {
	uc := analytics.NewDashboardUseCase(failingDashboard{}, nil, d("10"), nil)
	_, err := uc.GetStats(context.Background())
	assert.ErrorContains(t, err, "db caída")
}

func TestGetStockReport(t *testing.T) {
	store, repos := seedStore(t)
	uc := analytics.NewDashboardUseCase(store.Dashboard(), repos.Movements, d("10"), nil)

	report, err := uc.GetStockReport(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Materials, 2)
	require.Len(t, report.Products, 1)
	assert.Equal(t, "Gula", report.Materials[0].Name)
	assert.Equal(t, "PRD-1", report.Products[0].Code)
	assert.True(t, report.Products[0].StockQuantity.Equal(d("9.5")))
}

func TestRecentActivities(t *testing.T) {
	store, repos := seedStore(t)
	uc := analytics.NewDashboardUseCase(store.Dashboard(), repos.Movements, d("10"), nil)

	list, err := uc.RecentActivities(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 4)

	assert.Equal(t, "invoice", list[0].Type)
	assert.Equal(t, "Invoice INV202507210001 to PT Sumber Rejeki", list[0].Description)
	assert.Equal(t, "Production PR202507210001: Tepung → Roti", list[1].Description)
	assert.Nil(t, list[1].Amount)
	assert.Equal(t, "Incoming IN202507210001 from PT Sumber Rejeki", list[2].Description)
	require.NotNil(t, list[2].Amount)
	assert.True(t, list[2].Amount.Equal(d("12.5")))
	assert.Equal(t, "Incoming IN202507200001 from PT Sumber Rejeki", list[3].Description)
}

func TestListMovements_ValidatesKind(t *testing.T) {
	store, repos := seedStore(t)
	uc := analytics.NewDashboardUseCase(store.Dashboard(), repos.Movements, d("10"), nil)

	_, err := uc.ListMovements(context.Background(), domain.ItemKind("widget"), "m1", 0)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "kind")
}

func TestListMovements_NewestFirstWithLimit(t *testing.T) {
	store, repos := seedStore(t)
	ctx := context.Background()
	for i, q := range []string{"1", "2", "3"} {
		require.NoError(t, repos.Movements.Create(ctx, &entity.StockMovement{
			ID: q, ItemKind: domain.ItemMaterial, ItemID: "m1", Quantity: d(q),
			SourceType: entity.MovementSourceIncoming, Reason: entity.MovementReasonCreate,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		}))
	}
	uc := analytics.NewDashboardUseCase(store.Dashboard(), repos.Movements, d("10"), nil)

	list, err := uc.ListMovements(ctx, domain.ItemMaterial, "m1", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "3", list[0].ID)
	assert.Equal(t, "2", list[1].ID)
}
