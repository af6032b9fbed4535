package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MovementType indica el sentido del movimiento sobre el stock.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  MovementType = "IN"  // entrada: suma al stock
	MovementTypeOUT MovementType = "OUT" // salida: resta del stock
)

// ParseMovementType normaliza el token sin distinguir mayúsculas ("in", "Out", ...).
func ParseMovementType(s string) (MovementType, bool) {
	t := MovementType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case MovementTypeIN, MovementTypeOUT:
		return t, true
	}
	return "", false
}

// Movement es un registro inmutable de cambio de cantidad sobre un ítem.
// Quantity siempre es positiva; el signo lo da Type.
type Movement struct {
	ID           string
	ItemID       string
	Type         MovementType
	Quantity     decimal.Decimal
	Notes        string
	PricePerUnit *decimal.Decimal
	Reference    string // id de corrida de producción o documento de envío, si aplica
	CreatedAt    time.Time
}

// Signed devuelve la cantidad con signo según el tipo.
func (m *Movement) Signed() decimal.Decimal {
	if t, _ := ParseMovementType(string(m.Type)); t == MovementTypeOUT {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// Clone devuelve una copia independiente.
func (m *Movement) Clone() *Movement {
	if m == nil {
		return nil
	}
	c := *m
	if m.PricePerUnit != nil {
		p := *m.PricePerUnit
		c.PricePerUnit = &p
	}
	return &c
}
