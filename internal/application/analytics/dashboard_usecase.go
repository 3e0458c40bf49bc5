// Package analytics contiene los casos de uso de solo lectura: estadísticas del
// dashboard, reporte de stock e historial de movimientos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/superindo-api/internal/application/dto"
	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

const (
	defaultMovementLimit = 100
	activitiesPerKind    = 5
	activitiesLimit      = 10
)

// DashboardUseCase genera las estadísticas del dashboard y los reportes de stock.
//
// Fuente de datos: DashboardRepository (consultas read-only) y StockMovementRepository.
type DashboardUseCase struct {
	repo      repository.DashboardRepository
	movements repository.StockMovementRepository
	threshold decimal.Decimal
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso. threshold es el umbral de stock bajo (stock < threshold).
func NewDashboardUseCase(repo repository.DashboardRepository, movements repository.StockMovementRepository, threshold decimal.Decimal, now func() time.Time) *DashboardUseCase {
	if now == nil {
		now = time.Now
	}
	return &DashboardUseCase{repo: repo, movements: movements, threshold: threshold, now: now}
}

// GetStats construye DashboardStatsDTO.
//
// Cuatro llamadas en paralelo:
//  1. GetMasterCounts             → clientes, materiales, productos
//  2. GetTransactionCounts(hoy)   → entradas, producciones, facturas de hoy
//  3. GetTotals                   → valor total de entradas y facturas
//  4. GetLowStockCounts(umbral)   → materiales y productos con stock bajo
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)

	type mastersResult struct {
		v   repository.MasterCounts
		err error
	}
	type todayResult struct {
		v   repository.TransactionCounts
		err error
	}
	type totalsResult struct {
		v   repository.TransactionTotals
		err error
	}
	type lowResult struct {
		v   repository.LowStockCounts
		err error
	}

	mastersCh := make(chan mastersResult, 1)
	todayCh := make(chan todayResult, 1)
	totalsCh := make(chan totalsResult, 1)
	lowCh := make(chan lowResult, 1)

	go func() {
		v, err := uc.repo.GetMasterCounts(ctx)
		mastersCh <- mastersResult{v, err}
	}()
	go func() {
		v, err := uc.repo.GetTransactionCounts(ctx, todayStart, todayEnd)
		todayCh <- todayResult{v, err}
	}()
	go func() {
		v, err := uc.repo.GetTotals(ctx)
		totalsCh <- totalsResult{v, err}
	}()
	go func() {
		v, err := uc.repo.GetLowStockCounts(ctx, uc.threshold)
		lowCh <- lowResult{v, err}
	}()

	masters := <-mastersCh
	today := <-todayCh
	totals := <-totalsCh
	low := <-lowCh

	if masters.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de maestros: %w", masters.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: transacciones de hoy: %w", today.err)
	}
	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales: %w", totals.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	return &dto.DashboardStatsDTO{
		TotalCustomers:     masters.v.Customers,
		TotalMaterials:     masters.v.Materials,
		TotalProducts:      masters.v.Products,
		TodayIncomings:     today.v.Incomings,
		TodayProductions:   today.v.Productions,
		TodayInvoices:      today.v.Invoices,
		TotalIncomingValue: totals.v.IncomingValue.Round(2),
		TotalInvoiceValue:  totals.v.InvoiceValue.Round(2),
		LowStockMaterials:  low.v.Materials,
		LowStockProducts:   low.v.Products,
		LowStockThreshold:  uc.threshold,
		Date:               todayStart.Format(dto.DateLayout),
	}, nil
}

// GetStockReport devuelve el stock de todos los materiales y productos.
func (uc *DashboardUseCase) GetStockReport(ctx context.Context) (*dto.StockReportDTO, error) {
	materials, err := uc.repo.ListStockLevels(ctx, domain.ItemMaterial)
	if err != nil {
		return nil, fmt.Errorf("reporte de stock: materiales: %w", err)
	}
	products, err := uc.repo.ListStockLevels(ctx, domain.ItemProduct)
	if err != nil {
		return nil, fmt.Errorf("reporte de stock: productos: %w", err)
	}
	return &dto.StockReportDTO{
		Materials: toStockLevels(materials),
		Products:  toStockLevels(products),
	}, nil
}

// ListMovements devuelve el historial de stock de un artículo, más reciente primero.
// limit <= 0 usa el valor por defecto.
func (uc *DashboardUseCase) ListMovements(ctx context.Context, kind domain.ItemKind, id string, limit int) ([]dto.StockMovementDTO, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("kind", "must be one of: material product")
	}
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	list, err := uc.movements.ListByItem(ctx, domain.ItemRef{Kind: kind, ID: id}, limit)
	if err != nil {
		return nil, fmt.Errorf("movimientos de stock: %w", err)
	}
	out := make([]dto.StockMovementDTO, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementDTO(m))
	}
	return out, nil
}

// RecentActivities devuelve las últimas 10 transacciones (5 por tipo como máximo), más recientes primero.
func (uc *DashboardUseCase) RecentActivities(ctx context.Context) ([]dto.ActivityDTO, error) {
	list, err := uc.repo.ListRecentActivities(ctx, activitiesPerKind)
	if err != nil {
		return nil, fmt.Errorf("actividad reciente: %w", err)
	}
	if len(list) > activitiesLimit {
		list = list[:activitiesLimit]
	}
	out := make([]dto.ActivityDTO, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ActivityDTO{
			Type:        a.Type,
			ID:          a.ID,
			Description: describeActivity(a),
			Date:        a.CreatedAt,
			Amount:      a.Amount,
		})
	}
	return out, nil
}

func describeActivity(a repository.Activity) string {
	switch a.Type {
	case entity.MovementSourceIncoming:
		return fmt.Sprintf("Incoming %s from %s", a.Number, a.CustomerName)
	case entity.MovementSourceProduction:
		return fmt.Sprintf("Production %s: %s → %s", a.Number, a.MaterialName, a.ProductName)
	case entity.MovementSourceInvoice:
		return fmt.Sprintf("Invoice %s to %s", a.Number, a.CustomerName)
	}
	return a.Number
}

func toStockLevels(items []*entity.StockItem) []dto.StockLevelDTO {
	out := make([]dto.StockLevelDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.StockLevelDTO{
			ID:            it.ID,
			Name:          it.Name,
			Code:          it.Code,
			StockQuantity: it.StockQuantity,
			Unit:          it.Unit,
		})
	}
	return out
}

func toMovementDTO(m *entity.StockMovement) dto.StockMovementDTO {
	return dto.StockMovementDTO{
		ID:           m.ID,
		ItemKind:     string(m.ItemKind),
		ItemID:       m.ItemID,
		Quantity:     m.Quantity,
		BalanceAfter: m.BalanceAfter,
		SourceType:   m.SourceType,
		SourceID:     m.SourceID,
		SourceNumber: m.SourceNumber,
		Reason:       m.Reason,
		CreatedAt:    m.CreatedAt,
	}
}
