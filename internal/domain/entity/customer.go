package entity

import "time"

// Customer representa un cliente (proveedor de materia prima en entradas, comprador en facturas).
type Customer struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Address       string
	ContactPerson string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
