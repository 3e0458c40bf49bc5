package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

type dashboardRepo struct{ v *view }

func (r *dashboardRepo) GetMasterCounts(_ context.Context) (out repository.MasterCounts, err error) {
	err = r.v.do(func(st *state) error {
		out = repository.MasterCounts{Customers: len(st.customers), Materials: len(st.materials), Products: len(st.products)}
		return nil
	})
	return out, err
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func (r *dashboardRepo) GetTransactionCounts(_ context.Context, from, to time.Time) (out repository.TransactionCounts, err error) {
	err = r.v.do(func(st *state) error {
		for _, in := range st.incomings {
			if inRange(in.CreatedAt, from, to) {
				out.Incomings++
			}
		}
		for _, p := range st.productions {
			if inRange(p.CreatedAt, from, to) {
				out.Productions++
			}
		}
		for _, inv := range st.invoices {
			if inRange(inv.CreatedAt, from, to) {
				out.Invoices++
			}
		}
		return nil
	})
	return out, err
}

func (r *dashboardRepo) GetTotals(_ context.Context) (out repository.TransactionTotals, err error) {
	err = r.v.do(func(st *state) error {
		out.IncomingValue, out.InvoiceValue = decimal.Zero, decimal.Zero
		for _, in := range st.incomings {
			out.IncomingValue = out.IncomingValue.Add(in.TotalPrice)
		}
		for _, inv := range st.invoices {
			out.InvoiceValue = out.InvoiceValue.Add(inv.TotalPrice)
		}
		return nil
	})
	return out, err
}

func (r *dashboardRepo) GetLowStockCounts(_ context.Context, threshold decimal.Decimal) (out repository.LowStockCounts, err error) {
	err = r.v.do(func(st *state) error {
		for _, m := range st.materials {
			if m.StockQuantity.LessThan(threshold) {
				out.Materials++
			}
		}
		for _, p := range st.products {
			if p.StockQuantity.LessThan(threshold) {
				out.Products++
			}
		}
		return nil
	})
	return out, err
}

func (r *dashboardRepo) ListStockLevels(_ context.Context, kind domain.ItemKind) (out []*entity.StockItem, err error) {
	err = r.v.do(func(st *state) error {
		switch kind {
		case domain.ItemMaterial:
			for id := range st.materials {
				out = append(out, stockItem(st, domain.MaterialRef(id)))
			}
		case domain.ItemProduct:
			for id := range st.products {
				out = append(out, stockItem(st, domain.ProductRef(id)))
			}
		default:
			return fmt.Errorf("tipo de artículo desconocido %q", kind)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

func (r *dashboardRepo) ListRecentActivities(_ context.Context, perKind int) (out []repository.Activity, err error) {
	err = r.v.do(func(st *state) error {
		var incomings, productions, invoices []repository.Activity
		for _, in := range st.incomings {
			amount := in.TotalPrice
			incomings = append(incomings, repository.Activity{
				Type: entity.MovementSourceIncoming, ID: in.ID, Number: in.IncomingNumber,
				CustomerName: st.customers[in.CustomerID].Name, MaterialName: st.materials[in.MaterialID].Name,
				Amount: &amount, CreatedAt: in.CreatedAt,
			})
		}
		for _, p := range st.productions {
			productions = append(productions, repository.Activity{
				Type: entity.MovementSourceProduction, ID: p.ID, Number: p.ProductionNumber,
				MaterialName: st.materials[p.MaterialID].Name, ProductName: st.products[p.ProductID].Name,
				CreatedAt: p.CreatedAt,
			})
		}
		for _, inv := range st.invoices {
			amount := inv.TotalPrice
			invoices = append(invoices, repository.Activity{
				Type: entity.MovementSourceInvoice, ID: inv.ID, Number: inv.InvoiceNumber,
				CustomerName: st.customers[inv.CustomerID].Name, ProductName: st.products[inv.ProductID].Name,
				Amount: &amount, CreatedAt: inv.CreatedAt,
			})
		}
		for _, list := range [][]repository.Activity{incomings, productions, invoices} {
			sortActivities(list)
			if len(list) > perKind {
				list = list[:perKind]
			}
			out = append(out, list...)
		}
		sortActivities(out)
		return nil
	})
	return out, err
}

func sortActivities(list []repository.Activity) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].Number > list[j].Number
	})
}
