package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

func TestInsufficientStockError_IsSentinel(t *testing.T) {
	err := fmt.Errorf("aplicar salida: %w", &domain.InsufficientStockError{
		ItemID:    "item-1",
		Requested: decimal.NewFromInt(10),
		Available: decimal.NewFromInt(3),
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	var ise *domain.InsufficientStockError
	assert.True(t, errors.As(err, &ise))
	assert.Equal(t, "item-1", ise.ItemID)
	assert.Contains(t, err.Error(), "solicitado 10, disponible 3")
}

func TestPersistenceError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &domain.PersistenceError{Op: "insert movement", Err: cause}

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "insert movement: connection refused", err.Error())
}

func TestValidationError_Message(t *testing.T) {
	err := domain.NewValidationError("quantity", "gt", "debe ser mayor que 0")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "quantity: gt")
}

func TestNotFoundError(t *testing.T) {
	err := &domain.NotFoundError{Entity: "item", ID: "abc"}
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, `item "abc" no encontrado`, err.Error())
}
