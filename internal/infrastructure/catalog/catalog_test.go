package catalog_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/catalog"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<catalogo>
  <item nombre="Resina PP" categoria="raw_material" unidad="kg" stock="250" precio="4.5"/>
  <item nombre="Pigmento" categoria="raw_material" stock="10" precio="12"/>
  <item nombre="Bolsa 30x40" categoria="finished_product" peso="0.012" precio_venta="0.35"/>
  <receta producto="Bolsa 30x40" materia="Resina PP" cantidad="0.013"/>
  <receta producto="Bolsa 30x40" materia="Pigmento" cantidad="0.001"/>
</catalogo>`

func TestParse(t *testing.T) {
	cat, err := catalog.Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, cat.Items, 3)
	require.Len(t, cat.Recipes, 2)

	assert.Equal(t, "Resina PP", cat.Items[0].Name)
	assert.True(t, decimal.NewFromInt(250).Equal(cat.Items[0].InitialStock))
	require.NotNil(t, cat.Items[0].PricePerUnit)
	assert.Equal(t, "4.5", cat.Items[0].PricePerUnit.String())
	assert.Nil(t, cat.Items[0].WeightPerUnit)

	require.NotNil(t, cat.Items[2].WeightPerUnit)
	assert.Equal(t, "0.012", cat.Items[2].WeightPerUnit.String())
	assert.Equal(t, "Pigmento", cat.Recipes[1].RawMaterial.Name)
}

func TestParse_ISO88591(t *testing.T) {
	raw := `<?xml version="1.0" encoding="ISO-8859-1"?><catalogo><item nombre="Jarrón" categoria="finished_product"/></catalogo>`
	encoded, err := charmap.ISO8859_1.NewEncoder().String(raw)
	require.NoError(t, err)

	cat, err := catalog.Parse(bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)
	require.Len(t, cat.Items, 1)
	assert.Equal(t, "Jarrón", cat.Items[0].Name)
}

func TestParse_Errores(t *testing.T) {
	_, err := catalog.Parse(strings.NewReader(`<inventario/>`))
	assert.ErrorContains(t, err, "catalogo")

	_, err = catalog.Parse(strings.NewReader(`<catalogo><item nombre="X" categoria="raw_material" stock="mucho"/></catalogo>`))
	assert.ErrorContains(t, err, "stock")
}

func TestApply_EsRepetible(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repos()
	log := logger.Nop()
	ratio := decimal.RequireFromString("0.1")
	movements := inventory.NewRegisterMovementUseCase(store, repos, log)
	resolver := inventory.NewResolveItemUseCase(store, movements, ratio, log)
	items := usecase.NewItemUseCase(store, repos, movements, ratio)
	recipes := usecase.NewRecipeUseCase(store, repos, resolver)

	cat, err := catalog.Parse(strings.NewReader(sample))
	require.NoError(t, err)

	ctx := context.Background()
	res, err := catalog.Apply(ctx, cat, items, recipes)
	require.NoError(t, err)
	assert.Equal(t, catalog.Result{ItemsCreated: 3, RecipesCreated: 2}, res)

	res, err = catalog.Apply(ctx, cat, items, recipes)
	require.NoError(t, err)
	assert.Equal(t, catalog.Result{ItemsSkipped: 3, RecipesSkipped: 2}, res)

	resina, err := repos.Items.GetByName(ctx, entity.CategoryRawMaterial, "Resina PP")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(250).Equal(resina.CurrentStock))
}
