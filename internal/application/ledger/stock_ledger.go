package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/inventory"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

// StockLedger es el único punto que muta stock_quantity de materiales y productos.
// Vive dentro de una transacción: bloquea cada artículo la primera vez que lo toca,
// calcula el saldo con las reglas de domain/inventory, lo persiste y deja un StockMovement.
type StockLedger struct {
	stock     repository.StockRepository
	movements repository.StockMovementRepository
	now       time.Time

	locked   map[domain.ItemRef]*entity.StockItem
	source   movementSource
	recorded []*entity.StockMovement
}

type movementSource struct {
	kind   string
	id     string
	number string
}

// NewStockLedger construye el libro atado a los repositorios de una transacción.
func NewStockLedger(repos repository.Repositories, now time.Time) *StockLedger {
	return &StockLedger{
		stock:     repos.Stock,
		movements: repos.Movements,
		now:       now,
		locked:    make(map[domain.ItemRef]*entity.StockItem),
	}
}

// Now instante de la transición (created_at de los movimientos).
func (l *StockLedger) Now() time.Time { return l.now }

// For fija la transacción origen de los movimientos siguientes.
func (l *StockLedger) For(sourceType, sourceID, sourceNumber string) *StockLedger {
	l.source = movementSource{kind: sourceType, id: sourceID, number: sourceNumber}
	return l
}

// Lock bloquea los artículos en orden fijo (materiales antes que productos, luego por ID)
// para que dos transiciones concurrentes no se bloqueen mutuamente.
// Los artículos inexistentes se reportan juntos como *domain.ValidationError.
func (l *StockLedger) Lock(ctx context.Context, refs ...domain.ItemRef) error {
	pending := make([]domain.ItemRef, 0, len(refs))
	seen := make(map[domain.ItemRef]bool, len(refs))
	for _, r := range refs {
		if _, ok := l.locked[r]; ok || seen[r] {
			continue
		}
		seen[r] = true
		pending = append(pending, r)
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].Kind != pending[j].Kind {
			return pending[i].Kind == domain.ItemMaterial
		}
		return pending[i].ID < pending[j].ID
	})

	verr := &domain.ValidationError{}
	for _, r := range pending {
		item, err := l.stock.GetForUpdate(ctx, r)
		if err != nil {
			return fmt.Errorf("lock %s %s: %w", r.Kind, r.ID, err)
		}
		if item == nil {
			verr.Add(r.Field(), "selected "+string(r.Kind)+" does not exist")
			continue
		}
		l.locked[r] = item
	}
	return verr.OrNil()
}

// Item devuelve el artículo bloqueado con su saldo actual dentro de la transacción.
func (l *StockLedger) Item(ctx context.Context, ref domain.ItemRef) (*entity.StockItem, error) {
	if item, ok := l.locked[ref]; ok {
		return item, nil
	}
	if err := l.Lock(ctx, ref); err != nil {
		return nil, err
	}
	return l.locked[ref], nil
}

// HasEnoughStock indica si el artículo tiene al menos qty.
func (l *StockLedger) HasEnoughStock(ctx context.Context, ref domain.ItemRef, qty decimal.Decimal) (bool, error) {
	item, err := l.Item(ctx, ref)
	if err != nil {
		return false, err
	}
	return inventory.HasEnoughStock(item.StockQuantity, qty), nil
}

// EnsureAvailable es HasEnoughStock que devuelve *domain.InsufficientStockError en lugar de false.
func (l *StockLedger) EnsureAvailable(ctx context.Context, ref domain.ItemRef, qty decimal.Decimal) error {
	item, err := l.Item(ctx, ref)
	if err != nil {
		return err
	}
	_, err = inventory.ReduceStock(ref, item.StockQuantity, qty)
	return err
}

// AddStock suma qty (>= 0) al artículo.
func (l *StockLedger) AddStock(ctx context.Context, ref domain.ItemRef, qty decimal.Decimal, reason string) error {
	if qty.IsNegative() {
		return fmt.Errorf("%w: cantidad negativa %s", domain.ErrInvalidInput, qty)
	}
	item, err := l.Item(ctx, ref)
	if err != nil {
		return err
	}
	return l.write(ctx, item, inventory.AddStock(item.StockQuantity, qty), qty, reason)
}

// ReduceStock resta qty (>= 0) o devuelve *domain.InsufficientStockError sin tocar el saldo.
func (l *StockLedger) ReduceStock(ctx context.Context, ref domain.ItemRef, qty decimal.Decimal, reason string) error {
	if qty.IsNegative() {
		return fmt.Errorf("%w: cantidad negativa %s", domain.ErrInvalidInput, qty)
	}
	item, err := l.Item(ctx, ref)
	if err != nil {
		return err
	}
	balance, err := inventory.ReduceStock(ref, item.StockQuantity, qty)
	if err != nil {
		return err
	}
	return l.write(ctx, item, balance, qty.Neg(), reason)
}

// AdjustStock aplica un delta con signo; los deltas negativos se validan como ReduceStock.
func (l *StockLedger) AdjustStock(ctx context.Context, ref domain.ItemRef, delta decimal.Decimal, reason string) error {
	item, err := l.Item(ctx, ref)
	if err != nil {
		return err
	}
	balance, err := inventory.ApplyDelta(ref, item.StockQuantity, delta)
	if err != nil {
		return err
	}
	return l.write(ctx, item, balance, delta, reason)
}

// Movements devuelve los movimientos registrados en esta transacción.
func (l *StockLedger) Movements() []*entity.StockMovement {
	return l.recorded
}

func (l *StockLedger) write(ctx context.Context, item *entity.StockItem, balance, delta decimal.Decimal, reason string) error {
	// Delta cero: no hay mutación que registrar.
	if delta.IsZero() {
		return nil
	}
	ref := item.Ref()
	if err := l.stock.SetQuantity(ctx, ref, balance, l.now); err != nil {
		return fmt.Errorf("set stock %s %s: %w", ref.Kind, ref.ID, err)
	}
	item.StockQuantity = balance
	item.UpdatedAt = l.now

	mv := &entity.StockMovement{
		ID:           uuid.New().String(),
		ItemKind:     ref.Kind,
		ItemID:       ref.ID,
		Quantity:     delta,
		BalanceAfter: balance,
		SourceType:   l.source.kind,
		SourceID:     l.source.id,
		SourceNumber: l.source.number,
		Reason:       reason,
		CreatedAt:    l.now,
	}
	if err := l.movements.Create(ctx, mv); err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	l.recorded = append(l.recorded, mv)
	return nil
}
