package entity

import "strings"

// Category clasifica un ítem almacenable.
type Category string

const (
	CategoryRawMaterial     Category = "raw_material"     // materia prima
	CategoryFinishedProduct Category = "finished_product" // producto terminado
)

// Valid indica si la categoría es una de las conocidas.
func (c Category) Valid() bool {
	return c == CategoryRawMaterial || c == CategoryFinishedProduct
}

// ParseCategory acepta el token sin distinguir mayúsculas.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}
