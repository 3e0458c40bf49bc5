// Package memory implementa los puertos de repositorio en memoria.
// Run serializa las transacciones y trabaja sobre una copia del estado que solo
// se publica si fn no devuelve error (rollback = descartar la copia).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

type state struct {
	customers   map[string]entity.Customer
	materials   map[string]entity.Material
	products    map[string]entity.Product
	incomings   map[string]entity.Incoming
	productions map[string]entity.Production
	invoices    map[string]entity.Invoice
	movements   []entity.StockMovement
	sequences   map[string]int
}

func newState() *state {
	return &state{
		customers:   map[string]entity.Customer{},
		materials:   map[string]entity.Material{},
		products:    map[string]entity.Product{},
		incomings:   map[string]entity.Incoming{},
		productions: map[string]entity.Production{},
		invoices:    map[string]entity.Invoice{},
		sequences:   map[string]int{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.materials {
		c.materials[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.incomings {
		c.incomings[k] = v
	}
	for k, v := range s.productions {
		c.productions[k] = v
	}
	for k, v := range s.invoices {
		c.invoices[k] = v
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	c.movements = append([]entity.StockMovement(nil), s.movements...)
	return c
}

// Store estado en memoria compartido por todos los repositorios.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState()}
}

// view da acceso al estado: directo al confirmado (con lock por llamada) o a la copia de una tx.
type view struct {
	store *Store
	tx    *state
}

func (v *view) do(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

func reposFor(v *view) repository.Repositories {
	return repository.Repositories{
		Customers:   &customerRepo{v: v},
		Materials:   &materialRepo{v: v},
		Products:    &productRepo{v: v},
		Stock:       &stockRepo{v: v},
		Movements:   &movementRepo{v: v},
		Incomings:   &incomingRepo{v: v},
		Productions: &productionRepo{v: v},
		Invoices:    &invoiceRepo{v: v},
		Sequences:   &sequenceRepo{v: v},
	}
}

// Repositories devuelve repositorios sobre el estado confirmado (fuera de transacción).
func (s *Store) Repositories() repository.Repositories {
	return reposFor(&view{store: s})
}

// Dashboard devuelve el repositorio de consultas del dashboard.
func (s *Store) Dashboard() repository.DashboardRepository {
	return &dashboardRepo{v: &view{store: s}}
}

// Run ejecuta fn con repositorios sobre una copia del estado; la copia reemplaza
// al estado confirmado solo si fn termina sin error.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.st.clone()
	if err := fn(reposFor(&view{tx: tx})); err != nil {
		return err
	}
	s.st = tx
	return nil
}
