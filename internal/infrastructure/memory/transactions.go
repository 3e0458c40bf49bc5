package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
)

func lastWithPrefix(numbers []string, dayPrefix string) string {
	last := ""
	for _, n := range numbers {
		if strings.HasPrefix(n, dayPrefix) && n > last {
			last = n
		}
	}
	return last
}

type incomingRepo struct{ v *view }

func (r *incomingRepo) LastNumber(_ context.Context, dayPrefix string) (last string, err error) {
	err = r.v.do(func(st *state) error {
		nums := make([]string, 0, len(st.incomings))
		for _, in := range st.incomings {
			nums = append(nums, in.IncomingNumber)
		}
		last = lastWithPrefix(nums, dayPrefix)
		return nil
	})
	return last, err
}

func (r *incomingRepo) Create(_ context.Context, in *entity.Incoming) error {
	return r.v.do(func(st *state) error {
		for _, o := range st.incomings {
			if o.ID == in.ID || o.IncomingNumber == in.IncomingNumber {
				return domain.ErrDuplicate
			}
		}
		st.incomings[in.ID] = *in
		return nil
	})
}

func (r *incomingRepo) GetByID(_ context.Context, id string) (out *entity.Incoming, err error) {
	err = r.v.do(func(st *state) error {
		if in, ok := st.incomings[id]; ok {
			out = &in
		}
		return nil
	})
	return out, err
}

func (r *incomingRepo) GetForUpdate(ctx context.Context, id string) (*entity.Incoming, error) {
	return r.GetByID(ctx, id)
}

func (r *incomingRepo) List(_ context.Context) (out []*entity.Incoming, err error) {
	err = r.v.do(func(st *state) error {
		for _, in := range st.incomings {
			in := in
			out = append(out, &in)
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].IncomingNumber > out[j].IncomingNumber
		})
		return nil
	})
	return out, err
}

func (r *incomingRepo) Update(_ context.Context, in *entity.Incoming) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.incomings[in.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, o := range st.incomings {
			if o.ID != in.ID && o.IncomingNumber == in.IncomingNumber {
				return domain.ErrDuplicate
			}
		}
		st.incomings[in.ID] = *in
		return nil
	})
}

func (r *incomingRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.incomings[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.incomings, id)
		return nil
	})
}

func (r *incomingRepo) CountByCustomer(_ context.Context, customerID string) (n int, err error) {
	err = r.v.do(func(st *state) error {
		for _, in := range st.incomings {
			if in.CustomerID == customerID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *incomingRepo) CountByMaterial(_ context.Context, materialID string) (n int, err error) {
	err = r.v.do(func(st *state) error {
		for _, in := range st.incomings {
			if in.MaterialID == materialID {
				n++
			}
		}
		return nil
	})
	return n, err
}

type productionRepo struct{ v *view }

func (r *productionRepo) LastNumber(_ context.Context, dayPrefix string) (last string, err error) {
	err = r.v.do(func(st *state) error {
		nums := make([]string, 0, len(st.productions))
		for _, p := range st.productions {
			nums = append(nums, p.ProductionNumber)
		}
		last = lastWithPrefix(nums, dayPrefix)
		return nil
	})
	return last, err
}

func (r *productionRepo) Create(_ context.Context, p *entity.Production) error {
	return r.v.do(func(st *state) error {
		for _, o := range st.productions {
			if o.ID == p.ID || o.ProductionNumber == p.ProductionNumber {
				return domain.ErrDuplicate
			}
		}
		st.productions[p.ID] = *p
		return nil
	})
}

func (r *productionRepo) GetByID(_ context.Context, id string) (out *entity.Production, err error) {
	err = r.v.do(func(st *state) error {
		if p, ok := st.productions[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *productionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Production, error) {
	return r.GetByID(ctx, id)
}

func (r *productionRepo) List(_ context.Context) (out []*entity.Production, err error) {
	err = r.v.do(func(st *state) error {
		for _, p := range st.productions {
			p := p
			out = append(out, &p)
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].ProductionNumber > out[j].ProductionNumber
		})
		return nil
	})
	return out, err
}

func (r *productionRepo) Update(_ context.Context, p *entity.Production) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.productions[p.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, o := range st.productions {
			if o.ID != p.ID && o.ProductionNumber == p.ProductionNumber {
				return domain.ErrDuplicate
			}
		}
		st.productions[p.ID] = *p
		return nil
	})
}

func (r *productionRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.productions[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.productions, id)
		return nil
	})
}

func (r *productionRepo) CountByMaterial(_ context.Context, materialID string) (n int, err error) {
	err = r.v.do(func(st *state) error {
		for _, p := range st.productions {
			if p.MaterialID == materialID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *productionRepo) CountByProduct(_ context.Context, productID string) (n int, err error) {
	err = r.v.do(func(st *state) error {
		for _, p := range st.productions {
			if p.ProductID == productID {
				n++
			}
		}
		return nil
	})
	return n, err
}

type invoiceRepo struct{ v *view }

func (r *invoiceRepo) LastNumber(_ context.Context, dayPrefix string) (last string, err error) {
	err = r.v.do(func(st *state) error {
		nums := make([]string, 0, len(st.invoices))
		for _, inv := range st.invoices {
			nums = append(nums, inv.InvoiceNumber)
		}
		last = lastWithPrefix(nums, dayPrefix)
		return nil
	})
	return last, err
}

func (r *invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	return r.v.do(func(st *state) error {
		for _, o := range st.invoices {
			if o.ID == inv.ID || o.InvoiceNumber == inv.InvoiceNumber {
				return domain.ErrDuplicate
			}
		}
		st.invoices[inv.ID] = *inv
		return nil
	})
}

func (r *invoiceRepo) GetByID(_ context.Context, id string) (out *entity.Invoice, err error) {
	err = r.v.do(func(st *state) error {
		if inv, ok := st.invoices[id]; ok {
			out = &inv
		}
		return nil
	})
	return out, err
}

func (r *invoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *invoiceRepo) List(_ context.Context) (out []*entity.Invoice, err error) {
	err = r.v.do(func(st *state) error {
		for _, inv := range st.invoices {
			inv := inv
			out = append(out, &inv)
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].InvoiceNumber > out[j].InvoiceNumber
		})
		return nil
	})
	return out, err
}

func (r *invoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.invoices[inv.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, o := range st.invoices {
			if o.ID != inv.ID && o.InvoiceNumber == inv.InvoiceNumber {
				return domain.ErrDuplicate
			}
		}
		st.invoices[inv.ID] = *inv
		return nil
	})
}

func (r *invoiceRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.v.do(func(st *state) error {
		inv, ok := st.invoices[id]
		if !ok {
			return domain.ErrNotFound
		}
		inv.Status = status
		st.invoices[id] = inv
		return nil
	})
}

func (r *invoiceRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.invoices[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.invoices, id)
		return nil
	})
}

func (r *invoiceRepo) CountByCustomer(_ context.Context, customerID string) (n int, err error) {
	err = r.v.do(func(st *state) error {
		for _, inv := range st.invoices {
			if inv.CustomerID == customerID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *invoiceRepo) CountByProduct(_ context.Context, productID string) (n int, err error) {
	err = r.v.do(func(st *state) error {
		for _, inv := range st.invoices {
			if inv.ProductID == productID {
				n++
			}
		}
		return nil
	})
	return n, err
}
