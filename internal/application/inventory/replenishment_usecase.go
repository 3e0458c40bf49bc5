// Package inventory contiene los casos de uso de planificación de stock (reposición).
package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/superindo-api/internal/application/dto"
	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

// idealFactor stock ideal = umbral × 1.5.
var idealFactor = decimal.NewFromFloat(1.5)

// ReplenishmentUseCase genera la lista de reposición: materiales y productos con stock
// por debajo del umbral de stock bajo, con la cantidad sugerida para volver al stock ideal.
type ReplenishmentUseCase struct {
	repo      repository.DashboardRepository
	threshold decimal.Decimal
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(repo repository.DashboardRepository, threshold decimal.Decimal) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{repo: repo, threshold: threshold}
}

// GenerateReplenishmentList devuelve los artículos con stock < umbral, ordenados por mayor
// déficit; a igual déficit, materiales primero (bloquean producción) y luego por código.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	idealStock := uc.threshold.Mul(idealFactor).Round(2)

	var suggestions []dto.ReplenishmentSuggestionDTO
	for _, kind := range []domain.ItemKind{domain.ItemMaterial, domain.ItemProduct} {
		items, err := uc.repo.ListStockLevels(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("reposición: stock de %s: %w", kind, err)
		}
		for _, it := range items {
			if !it.StockQuantity.LessThan(uc.threshold) {
				continue
			}
			suggestions = append(suggestions, suggestion(it, uc.threshold, idealStock))
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		defA := a.Threshold.Sub(a.CurrentStock)
		defB := b.Threshold.Sub(b.CurrentStock)
		if !defA.Equal(defB) {
			return defA.GreaterThan(defB)
		}
		if a.Kind != b.Kind {
			return a.Kind == string(domain.ItemMaterial)
		}
		return a.Code < b.Code
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	if suggestions == nil {
		suggestions = []dto.ReplenishmentSuggestionDTO{}
	}
	return suggestions, nil
}

func suggestion(it *entity.StockItem, threshold, idealStock decimal.Decimal) dto.ReplenishmentSuggestionDTO {
	qty := idealStock.Sub(it.StockQuantity)
	if qty.IsNegative() {
		qty = decimal.Zero
	}
	return dto.ReplenishmentSuggestionDTO{
		Kind:               string(it.Kind),
		ID:                 it.ID,
		Code:               it.Code,
		Name:               it.Name,
		Unit:               it.Unit,
		CurrentStock:       it.StockQuantity,
		Threshold:          threshold,
		IdealStock:         idealStock,
		SuggestedOrderQty:  qty,
		UnitPrice:          it.UnitPrice,
		EstimatedOrderCost: qty.Mul(it.UnitPrice).Round(2),
	}
}
