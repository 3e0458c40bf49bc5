package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/superindo-api/internal/application/dto"
	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
	"github.com/jhoicas/superindo-api/pkg/validation"
)

// CustomerUseCase casos de uso para clientes (proveedores de entradas y compradores de facturas).
type CustomerUseCase struct {
	repos repository.Repositories
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repos repository.Repositories) *CustomerUseCase {
	return &CustomerUseCase{repos: repos}
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		ContactPerson: in.ContactPerson,
		IsActive:      isActive(in.IsActive),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repos.Customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repos.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

// List lista todos los clientes ordenados por nombre.
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := uc.repos.Customers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

// Update reemplaza los datos del cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	c, err := uc.repos.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = in.Name
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.ContactPerson = in.ContactPerson
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now()
	if err := uc.repos.Customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Delete elimina el cliente si no tiene entradas ni facturas.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.repos.Customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	blocked := &domain.ReferentialIntegrityError{Entity: "customer", ID: id, Dependents: []string{"incoming", "invoices"}}
	incomings, err := uc.repos.Incomings.CountByCustomer(ctx, id)
	if err != nil {
		return fmt.Errorf("count incomings: %w", err)
	}
	invoices, err := uc.repos.Invoices.CountByCustomer(ctx, id)
	if err != nil {
		return fmt.Errorf("count invoices: %w", err)
	}
	if incomings > 0 || invoices > 0 {
		return blocked
	}
	if err := uc.repos.Customers.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return blocked
		}
		return err
	}
	return nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		ContactPerson: c.ContactPerson,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
