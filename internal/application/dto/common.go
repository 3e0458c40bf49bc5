package dto

// ErrorResponse cuerpo de error HTTP. Errors lleva el detalle por campo en errores de validación.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// DateLayout formato de fechas de negocio en requests y responses.
const DateLayout = "2006-01-02"
