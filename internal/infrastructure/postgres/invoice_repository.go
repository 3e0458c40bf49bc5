package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, invoice_number, customer_id, product_id, quantity, unit_price, total_price, invoice_date, due_date, status, notes, created_at, updated_at`

func scanInvoice(row interface{ Scan(...any) error }) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &inv.ProductID, &inv.Quantity, &inv.UnitPrice,
		&inv.TotalPrice, &inv.InvoiceDate, &inv.DueDate, &inv.Status, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// LastNumber implementa repository.NumberScanner.
func (r *InvoiceRepo) LastNumber(ctx context.Context, dayPrefix string) (string, error) {
	return lastNumber(ctx, r.q, "invoices", "invoice_number", dayPrefix)
}

// Create persiste la factura. Número repetido -> domain.ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		inv.ID, inv.InvoiceNumber, inv.CustomerID, inv.ProductID, inv.Quantity, inv.UnitPrice,
		inv.TotalPrice, inv.InvoiceDate, inv.DueDate, inv.Status, inv.Notes, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) get(ctx context.Context, id, suffix string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`+suffix, id))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetByID obtiene una factura por ID. nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate obtiene la factura bloqueando la fila.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

// List devuelve todas las facturas, más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC, invoice_number DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Update reemplaza los datos de la factura.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE invoices SET invoice_number = $2, customer_id = $3, product_id = $4, quantity = $5, unit_price = $6,
			total_price = $7, invoice_date = $8, due_date = $9, status = $10, notes = $11, updated_at = $12
		WHERE id = $1`,
		inv.ID, inv.InvoiceNumber, inv.CustomerID, inv.ProductID, inv.Quantity, inv.UnitPrice,
		inv.TotalPrice, inv.InvoiceDate, inv.DueDate, inv.Status, inv.Notes, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update invoice status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la factura.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "invoices", id)
}

// CountByCustomer cuenta facturas del cliente.
func (r *InvoiceRepo) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	return countBy(ctx, r.q, "invoices", "customer_id", customerID)
}

// CountByProduct cuenta facturas del producto.
func (r *InvoiceRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	return countBy(ctx, r.q, "invoices", "product_id", productID)
}
