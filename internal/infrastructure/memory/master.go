package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
)

type customerRepo struct{ v *view }

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.customers[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *customerRepo) GetByID(_ context.Context, id string) (out *entity.Customer, err error) {
	err = r.v.do(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) List(_ context.Context) (out []*entity.Customer, err error) {
	err = r.v.do(func(st *state) error {
		for _, c := range st.customers {
			c := c
			out = append(out, &c)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

func (r *customerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.customers[c.ID]; !ok {
			return domain.ErrNotFound
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *customerRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.customers[id]; !ok {
			return domain.ErrNotFound
		}
		for _, in := range st.incomings {
			if in.CustomerID == id {
				return domain.ErrConflict
			}
		}
		for _, inv := range st.invoices {
			if inv.CustomerID == id {
				return domain.ErrConflict
			}
		}
		delete(st.customers, id)
		return nil
	})
}

type materialRepo struct{ v *view }

func (r *materialRepo) Create(_ context.Context, m *entity.Material) error {
	return r.v.do(func(st *state) error {
		for _, o := range st.materials {
			if o.ID == m.ID || o.Code == m.Code {
				return domain.ErrDuplicate
			}
		}
		st.materials[m.ID] = *m
		return nil
	})
}

func (r *materialRepo) GetByID(_ context.Context, id string) (out *entity.Material, err error) {
	err = r.v.do(func(st *state) error {
		if m, ok := st.materials[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *materialRepo) GetByCode(_ context.Context, code string) (out *entity.Material, err error) {
	err = r.v.do(func(st *state) error {
		for _, m := range st.materials {
			if m.Code == code {
				m := m
				out = &m
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *materialRepo) List(_ context.Context) (out []*entity.Material, err error) {
	err = r.v.do(func(st *state) error {
		for _, m := range st.materials {
			m := m
			out = append(out, &m)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

// Update no toca stock_quantity.
func (r *materialRepo) Update(_ context.Context, m *entity.Material) error {
	return r.v.do(func(st *state) error {
		cur, ok := st.materials[m.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for _, o := range st.materials {
			if o.ID != m.ID && o.Code == m.Code {
				return domain.ErrDuplicate
			}
		}
		next := *m
		next.StockQuantity = cur.StockQuantity
		st.materials[m.ID] = next
		return nil
	})
}

func (r *materialRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.materials[id]; !ok {
			return domain.ErrNotFound
		}
		for _, in := range st.incomings {
			if in.MaterialID == id {
				return domain.ErrConflict
			}
		}
		for _, p := range st.productions {
			if p.MaterialID == id {
				return domain.ErrConflict
			}
		}
		delete(st.materials, id)
		return nil
	})
}

type productRepo struct{ v *view }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.do(func(st *state) error {
		for _, o := range st.products {
			if o.ID == p.ID || o.Code == p.Code {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id string) (out *entity.Product, err error) {
	err = r.v.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *productRepo) GetByCode(_ context.Context, code string) (out *entity.Product, err error) {
	err = r.v.do(func(st *state) error {
		for _, p := range st.products {
			if p.Code == code {
				p := p
				out = &p
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *productRepo) List(_ context.Context) (out []*entity.Product, err error) {
	err = r.v.do(func(st *state) error {
		for _, p := range st.products {
			p := p
			out = append(out, &p)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.do(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for _, o := range st.products {
			if o.ID != p.ID && o.Code == p.Code {
				return domain.ErrDuplicate
			}
		}
		next := *p
		next.StockQuantity = cur.StockQuantity
		st.products[p.ID] = next
		return nil
	})
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, p := range st.productions {
			if p.ProductID == id {
				return domain.ErrConflict
			}
		}
		for _, inv := range st.invoices {
			if inv.ProductID == id {
				return domain.ErrConflict
			}
		}
		delete(st.products, id)
		return nil
	})
}
