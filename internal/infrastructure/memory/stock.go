package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
)

type stockRepo struct{ v *view }

// GetForUpdate en memoria no necesita bloqueo de fila: Run ya serializa las transacciones.
func (r *stockRepo) GetForUpdate(_ context.Context, ref domain.ItemRef) (out *entity.StockItem, err error) {
	err = r.v.do(func(st *state) error {
		out = stockItem(st, ref)
		return nil
	})
	return out, err
}

func (r *stockRepo) SetQuantity(_ context.Context, ref domain.ItemRef, qty decimal.Decimal, at time.Time) error {
	return r.v.do(func(st *state) error {
		switch ref.Kind {
		case domain.ItemMaterial:
			m, ok := st.materials[ref.ID]
			if !ok {
				return domain.ErrNotFound
			}
			m.StockQuantity, m.UpdatedAt = qty, at
			st.materials[ref.ID] = m
		case domain.ItemProduct:
			p, ok := st.products[ref.ID]
			if !ok {
				return domain.ErrNotFound
			}
			p.StockQuantity, p.UpdatedAt = qty, at
			st.products[ref.ID] = p
		default:
			return fmt.Errorf("tipo de artículo desconocido %q", ref.Kind)
		}
		return nil
	})
}

func stockItem(st *state, ref domain.ItemRef) *entity.StockItem {
	switch ref.Kind {
	case domain.ItemMaterial:
		if m, ok := st.materials[ref.ID]; ok {
			return &entity.StockItem{Kind: ref.Kind, ID: m.ID, Name: m.Name, Code: m.Code, Unit: m.Unit, StockQuantity: m.StockQuantity, UnitPrice: m.UnitPrice, UpdatedAt: m.UpdatedAt}
		}
	case domain.ItemProduct:
		if p, ok := st.products[ref.ID]; ok {
			return &entity.StockItem{Kind: ref.Kind, ID: p.ID, Name: p.Name, Code: p.Code, Unit: p.Unit, StockQuantity: p.StockQuantity, UnitPrice: p.UnitPrice, UpdatedAt: p.UpdatedAt}
		}
	}
	return nil
}

type movementRepo struct{ v *view }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.v.do(func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

// ListByItem devuelve los movimientos del artículo del más reciente al más antiguo.
func (r *movementRepo) ListByItem(_ context.Context, ref domain.ItemRef, limit int) (out []*entity.StockMovement, err error) {
	err = r.v.do(func(st *state) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if m.ItemKind != ref.Kind || m.ItemID != ref.ID {
				continue
			}
			out = append(out, &m)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}

// Movements devuelve todo el historial en orden de inserción (tests).
func (s *Store) Movements() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.StockMovement(nil), s.st.movements...)
}

type sequenceRepo struct{ v *view }

func (r *sequenceRepo) Increment(_ context.Context, prefix, day string) (value int, ok bool, err error) {
	err = r.v.do(func(st *state) error {
		cur, exists := st.sequences[prefix+day]
		if !exists {
			return nil
		}
		value, ok = cur+1, true
		st.sequences[prefix+day] = value
		return nil
	})
	return value, ok, err
}

func (r *sequenceRepo) Raise(_ context.Context, prefix, day string, seq int) error {
	return r.v.do(func(st *state) error {
		if cur, exists := st.sequences[prefix+day]; exists && cur < seq {
			st.sequences[prefix+day] = seq
		}
		return nil
	})
}

func (r *sequenceRepo) Init(_ context.Context, prefix, day string, seed int) (value int, err error) {
	err = r.v.do(func(st *state) error {
		cur, exists := st.sequences[prefix+day]
		if exists {
			value = cur + 1
		} else {
			value = seed + 1
		}
		st.sequences[prefix+day] = value
		return nil
	})
	return value, err
}
