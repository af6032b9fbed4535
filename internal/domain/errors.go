package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPersistence       = errors.New("error de persistencia")
)

// FieldError describe un campo inválido de la entrada.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message,omitempty"`
}

// ValidationError agrupa los campos inválidos de una petición. No se intenta persistir nada.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError construye un ValidationError de un solo campo.
func NewValidationError(field, rule, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule, Message: message}}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Rule)
	}
	return ErrInvalidInput.Error() + " (" + strings.Join(parts, ", ") + ")"
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NotFoundError indica que la entidad referenciada no existe.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InsufficientStockError se retorna antes de cualquier mutación cuando una salida supera el stock.
type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	name := e.ItemID
	if e.ItemName != "" {
		name = e.ItemName
	}
	return fmt.Sprintf("stock insuficiente para %s: solicitado %s, disponible %s",
		name, e.Requested.String(), e.Available.String())
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// PersistenceError envuelve el error del almacén (inalcanzable o escritura rechazada).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
