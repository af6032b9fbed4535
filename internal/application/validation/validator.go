// Package validation valida los DTOs de entrada con etiquetas `validate` y traduce los
// fallos a *domain.ValidationError con el nombre JSON de cada campo.
package validation

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		// decimal.Decimal se valida como número (gt=0, gte=0, ...).
		v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
			if d, ok := f.Interface().(decimal.Decimal); ok {
				return decimalAsFloat(d)
			}
			return nil
		}, decimal.Decimal{})
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		validate = v
	})
	return validate
}

// decimalAsFloat conserva el signo cuando el valor es demasiado pequeño para un float64.
func decimalAsFloat(d decimal.Decimal) float64 {
	f := d.InexactFloat64()
	if f == 0 && !d.IsZero() {
		return math.Copysign(math.SmallestNonzeroFloat64, float64(d.Sign()))
	}
	return f
}

// Struct valida s y devuelve nil o un *domain.ValidationError.
func Struct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError("body", "invalid", err.Error())
	}
	out := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, domain.FieldError{
			Field:   fieldPath(fe),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

// fieldPath quita el nombre del struct raíz: "CreateShipmentRequest.items[0].quantity" → "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo requerido"
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "gte":
		return "debe ser mayor o igual que " + fe.Param()
	case "min":
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	case "oneof":
		return "valores permitidos: " + fe.Param()
	case "uuid4", "uuid":
		return "debe ser un UUID"
	}
	return "valor inválido"
}
