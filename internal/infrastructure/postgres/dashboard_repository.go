package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el dashboard y el reporte de stock.
// Cada método es una sola consulta; el caso de uso las lanza en paralelo sobre el pool.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador (normalmente sobre el pool).
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// GetMasterCounts cuenta clientes, materiales y productos.
func (r *DashboardRepo) GetMasterCounts(ctx context.Context) (repository.MasterCounts, error) {
	var out repository.MasterCounts
	err := r.q.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM customers),
			(SELECT count(*) FROM materials),
			(SELECT count(*) FROM products)`).Scan(&out.Customers, &out.Materials, &out.Products)
	if err != nil {
		return out, fmt.Errorf("master counts: %w", err)
	}
	return out, nil
}

// GetTransactionCounts cuenta transacciones creadas en [from, to).
func (r *DashboardRepo) GetTransactionCounts(ctx context.Context, from, to time.Time) (repository.TransactionCounts, error) {
	var out repository.TransactionCounts
	err := r.q.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM incomings   WHERE created_at >= $1 AND created_at < $2),
			(SELECT count(*) FROM productions WHERE created_at >= $1 AND created_at < $2),
			(SELECT count(*) FROM invoices    WHERE created_at >= $1 AND created_at < $2)`,
		from, to).Scan(&out.Incomings, &out.Productions, &out.Invoices)
	if err != nil {
		return out, fmt.Errorf("transaction counts: %w", err)
	}
	return out, nil
}

// GetTotals suma total_price de entradas y facturas.
func (r *DashboardRepo) GetTotals(ctx context.Context) (repository.TransactionTotals, error) {
	var out repository.TransactionTotals
	err := r.q.QueryRow(ctx, `
		SELECT
			(SELECT COALESCE(SUM(total_price), 0) FROM incomings),
			(SELECT COALESCE(SUM(total_price), 0) FROM invoices)`).Scan(&out.IncomingValue, &out.InvoiceValue)
	if err != nil {
		return out, fmt.Errorf("totals: %w", err)
	}
	return out, nil
}

// GetLowStockCounts cuenta artículos con stock_quantity < threshold.
func (r *DashboardRepo) GetLowStockCounts(ctx context.Context, threshold decimal.Decimal) (repository.LowStockCounts, error) {
	var out repository.LowStockCounts
	err := r.q.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM materials WHERE stock_quantity < $1),
			(SELECT count(*) FROM products  WHERE stock_quantity < $1)`,
		threshold).Scan(&out.Materials, &out.Products)
	if err != nil {
		return out, fmt.Errorf("low stock counts: %w", err)
	}
	return out, nil
}

// ListStockLevels devuelve id, nombre, código, stock y unidad de todos los artículos del tipo.
func (r *DashboardRepo) ListStockLevels(ctx context.Context, kind domain.ItemKind) ([]*entity.StockItem, error) {
	table, err := stockTable(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, `SELECT id, name, code, unit, stock_quantity, unit_price, updated_at FROM `+table+` ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("stock levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		it := entity.StockItem{Kind: kind}
		if err := rows.Scan(&it.ID, &it.Name, &it.Code, &it.Unit, &it.StockQuantity, &it.UnitPrice, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListRecentActivities devuelve las últimas perKind entradas, producciones y facturas (por created_at).
func (r *DashboardRepo) ListRecentActivities(ctx context.Context, perKind int) ([]repository.Activity, error) {
	rows, err := r.q.Query(ctx, `
		(SELECT 'incoming', i.id, i.incoming_number, c.name, m.name, '', i.total_price, i.created_at
		   FROM incomings i
		   JOIN customers c ON c.id = i.customer_id
		   JOIN materials m ON m.id = i.material_id
		  ORDER BY i.created_at DESC LIMIT $1)
		UNION ALL
		(SELECT 'production', p.id, p.production_number, '', m.name, pr.name, NULL, p.created_at
		   FROM productions p
		   JOIN materials m ON m.id = p.material_id
		   JOIN products pr ON pr.id = p.product_id
		  ORDER BY p.created_at DESC LIMIT $1)
		UNION ALL
		(SELECT 'invoice', v.id, v.invoice_number, c.name, '', pr.name, v.total_price, v.created_at
		   FROM invoices v
		   JOIN customers c ON c.id = v.customer_id
		   JOIN products pr ON pr.id = v.product_id
		  ORDER BY v.created_at DESC LIMIT $1)
		ORDER BY 8 DESC`, perKind)
	if err != nil {
		return nil, fmt.Errorf("recent activities: %w", err)
	}
	defer rows.Close()
	var list []repository.Activity
	for rows.Next() {
		var a repository.Activity
		var amount decimal.NullDecimal
		if err := rows.Scan(&a.Type, &a.ID, &a.Number, &a.CustomerName, &a.MaterialName, &a.ProductName, &amount, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		if amount.Valid {
			a.Amount = &amount.Decimal
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
