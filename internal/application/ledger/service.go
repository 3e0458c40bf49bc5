package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/superindo-api/internal/application/dto"
	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
	"github.com/jhoicas/superindo-api/pkg/logger"
)

// Deps dependencias comunes de los casos de uso de transiciones.
type Deps struct {
	Tx      TxRunner
	Reads   repository.Repositories // atado al pool; lecturas fuera de transacción
	Numbers NumberGenerator         // nil = CounterNumberGenerator
	Events  EventPublisher          // nil = NopPublisher
	Clock   Clock                   // nil = time.Now
	Log     *logger.Logger          // nil = logger.Nop()
}

type service struct {
	tx      TxRunner
	reads   repository.Repositories
	numbers NumberGenerator
	events  EventPublisher
	clock   Clock
	log     *logger.Logger
	name    string
}

func newService(d Deps, component string) service {
	s := service{tx: d.Tx, reads: d.Reads, numbers: d.Numbers, events: d.Events, clock: d.Clock, log: d.Log, name: component}
	if s.numbers == nil {
		s.numbers = CounterNumberGenerator{}
	}
	if s.events == nil {
		s.events = NopPublisher{}
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

// logFor usa el logger de la petición (request_id) si ctx lo trae.
func (s *service) logFor(ctx context.Context) *logger.Logger {
	return logger.FromContext(ctx, s.log).Component(s.name)
}

// run ejecuta fn en una transacción con un StockLedger nuevo y, tras el commit,
// publica los movimientos registrados.
func (s *service) run(ctx context.Context, op string, fn func(repos repository.Repositories, led *StockLedger) error) error {
	now := s.clock()
	var moves []*entity.StockMovement
	err := s.tx.Run(ctx, func(repos repository.Repositories) error {
		led := NewStockLedger(repos, now)
		if err := fn(repos, led); err != nil {
			return err
		}
		moves = led.Movements()
		return nil
	})
	log := s.logFor(ctx)
	if err != nil {
		logFailure(log, op, err)
		return err
	}
	if len(moves) > 0 {
		if perr := s.events.Publish(ctx, moves); perr != nil {
			log.Warn().Err(perr).Str("op", op).Int("movements", len(moves)).Msg("no se pudieron publicar los movimientos de stock")
		}
	}
	return nil
}

func logFailure(log *logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrConflict):
		log.Warn().Err(err).Str("op", op).Msg("transición rechazada")
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNotFound):
		log.Debug().Err(err).Str("op", op).Msg("transición inválida")
	default:
		log.Error().Err(err).Str("op", op).Msg("transición fallida")
	}
}

// assignNumber respeta el número enviado por el cliente; si viene vacío lo genera.
func (s *service) assignNumber(ctx context.Context, repos repository.Repositories, prefix, requested string, at time.Time) (string, error) {
	if n := strings.TrimSpace(requested); n != "" {
		if err := s.numbers.Observe(ctx, repos, prefix, n); err != nil {
			return "", err
		}
		return n, nil
	}
	return s.numbers.Next(ctx, repos, prefix, at)
}

// renumber aplica en un update el número enviado por el cliente, si cambia.
func (s *service) renumber(ctx context.Context, repos repository.Repositories, prefix, requested string, current *string) error {
	n := strings.TrimSpace(requested)
	if n == "" || n == *current {
		return nil
	}
	if err := s.numbers.Observe(ctx, repos, prefix, n); err != nil {
		return err
	}
	*current = n
	return nil
}

// numberTaken traduce la violación de unicidad del consecutivo a error de validación del campo.
func numberTaken(err error, field string) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.NewValidationError(field, "has already been taken")
	}
	return err
}

func requireCustomer(ctx context.Context, repos repository.Repositories, id string) (*entity.Customer, error) {
	c, err := repos.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewValidationError("customer_id", "selected customer does not exist")
	}
	return c, nil
}

func parseDate(ve *domain.ValidationError, field, s string) time.Time {
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		ve.Add(field, "must be a date ("+dto.DateLayout+")")
	}
	return t
}

func formatDate(t time.Time) string {
	return t.Format(dto.DateLayout)
}

func customerSummary(c *entity.Customer) *dto.CustomerSummary {
	if c == nil {
		return nil
	}
	return &dto.CustomerSummary{ID: c.ID, Name: c.Name}
}

func itemSummary(it *entity.StockItem) *dto.ItemSummary {
	if it == nil {
		return nil
	}
	return &dto.ItemSummary{ID: it.ID, Name: it.Name, Code: it.Code, Unit: it.Unit, StockQuantity: it.StockQuantity}
}

func materialSummary(m *entity.Material) *dto.ItemSummary {
	if m == nil {
		return nil
	}
	return &dto.ItemSummary{ID: m.ID, Name: m.Name, Code: m.Code, Unit: m.Unit, StockQuantity: m.StockQuantity}
}

func productSummary(p *entity.Product) *dto.ItemSummary {
	if p == nil {
		return nil
	}
	return &dto.ItemSummary{ID: p.ID, Name: p.Name, Code: p.Code, Unit: p.Unit, StockQuantity: p.StockQuantity}
}

// lookups carga maestros para armar listados sin una consulta por fila.
type lookups struct {
	customers map[string]*entity.Customer
	materials map[string]*entity.Material
	products  map[string]*entity.Product
}

func (s *service) loadLookups(ctx context.Context, customers, materials, products bool) (*lookups, error) {
	l := &lookups{
		customers: map[string]*entity.Customer{},
		materials: map[string]*entity.Material{},
		products:  map[string]*entity.Product{},
	}
	if customers {
		list, err := s.reads.Customers.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range list {
			l.customers[c.ID] = c
		}
	}
	if materials {
		list, err := s.reads.Materials.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, m := range list {
			l.materials[m.ID] = m
		}
	}
	if products {
		list, err := s.reads.Products.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			l.products[p.ID] = p
		}
	}
	return l, nil
}
