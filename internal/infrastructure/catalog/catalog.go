// Package catalog lee catálogos XML de ítems y recetas y los carga en el ledger.
//
// Formato:
//
//	<catalogo>
//	  <item nombre="Resina PP" categoria="raw_material" unidad="kg" stock="250" precio="4.5"/>
//	  <item nombre="Bolsa 30x40" categoria="finished_product" peso="0.012" precio_venta="0.35"/>
//	  <receta producto="Bolsa 30x40" materia="Resina PP" cantidad="0.013"/>
//	</catalogo>
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// Catalog contenido de un archivo de catálogo.
type Catalog struct {
	Items   []dto.CreateItemRequest
	Recipes []dto.CreateRecipeLineRequest
}

// Parse decodifica el XML. Acepta UTF-8 e ISO-8859-1.
func Parse(r io.Reader) (*Catalog, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("catálogo: leer XML: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "catalogo" {
		return nil, errors.New("catálogo: se esperaba el elemento raíz <catalogo>")
	}

	cat := &Catalog{}
	for i, el := range root.SelectElements("item") {
		in := dto.CreateItemRequest{
			Name:     el.SelectAttrValue("nombre", ""),
			Category: el.SelectAttrValue("categoria", ""),
			UnitType: el.SelectAttrValue("unidad", ""),
		}
		var err error
		if in.InitialStock, err = decimalAttr(el, "stock"); err != nil {
			return nil, fmt.Errorf("catálogo: item %d: %w", i+1, err)
		}
		if in.PricePerUnit, err = optionalDecimalAttr(el, "precio"); err != nil {
			return nil, fmt.Errorf("catálogo: item %d: %w", i+1, err)
		}
		if in.WeightPerUnit, err = optionalDecimalAttr(el, "peso"); err != nil {
			return nil, fmt.Errorf("catálogo: item %d: %w", i+1, err)
		}
		if in.SellingPrice, err = optionalDecimalAttr(el, "precio_venta"); err != nil {
			return nil, fmt.Errorf("catálogo: item %d: %w", i+1, err)
		}
		if in.LowStockThreshold, err = optionalDecimalAttr(el, "umbral"); err != nil {
			return nil, fmt.Errorf("catálogo: item %d: %w", i+1, err)
		}
		cat.Items = append(cat.Items, in)
	}
	for i, el := range root.SelectElements("receta") {
		qty, err := decimalAttr(el, "cantidad")
		if err != nil {
			return nil, fmt.Errorf("catálogo: receta %d: %w", i+1, err)
		}
		cat.Recipes = append(cat.Recipes, dto.CreateRecipeLineRequest{
			FinishedProduct:  dto.ItemRefRequest{Name: el.SelectAttrValue("producto", "")},
			RawMaterial:      dto.ItemRefRequest{Name: el.SelectAttrValue("materia", "")},
			RequiredQuantity: qty,
			UnitType:         el.SelectAttrValue("unidad", ""),
		})
	}
	return cat, nil
}

func decimalAttr(el *etree.Element, key string) (decimal.Decimal, error) {
	v := strings.TrimSpace(el.SelectAttrValue(key, ""))
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("atributo %s=%q: %w", key, v, err)
	}
	return d, nil
}

func optionalDecimalAttr(el *etree.Element, key string) (*decimal.Decimal, error) {
	if el.SelectAttr(key) == nil {
		return nil, nil
	}
	d, err := decimalAttr(el, key)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ItemCreator crea ítems con su stock inicial.
type ItemCreator interface {
	Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error)
}

// RecipeAdder agrega líneas de receta.
type RecipeAdder interface {
	Add(ctx context.Context, in dto.CreateRecipeLineRequest) (*dto.RecipeLineResponse, error)
}

// Result conteo de lo aplicado. Los duplicados se omiten sin error para que la carga sea repetible.
type Result struct {
	ItemsCreated   int
	ItemsSkipped   int
	RecipesCreated int
	RecipesSkipped int
}

// Apply carga primero los ítems y luego las recetas. Se detiene en el primer error que no sea duplicado.
func Apply(ctx context.Context, cat *Catalog, items ItemCreator, recipes RecipeAdder) (Result, error) {
	var res Result
	for _, in := range cat.Items {
		if _, err := items.Create(ctx, in); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				res.ItemsSkipped++
				continue
			}
			return res, fmt.Errorf("item %q: %w", in.Name, err)
		}
		res.ItemsCreated++
	}
	for _, in := range cat.Recipes {
		if _, err := recipes.Add(ctx, in); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				res.RecipesSkipped++
				continue
			}
			return res, fmt.Errorf("receta %q/%q: %w", in.FinishedProduct.Name, in.RawMaterial.Name, err)
		}
		res.RecipesCreated++
	}
	return res, nil
}
