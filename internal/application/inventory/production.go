package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

const productionNote = "Producción"

// ItemRef referencia un ítem por ID o, si ID está vacío, por nombre (find-or-create).
type ItemRef struct {
	ID   string
	Name string
}

func (r ItemRef) empty() bool {
	return strings.TrimSpace(r.ID) == "" && strings.TrimSpace(r.Name) == ""
}

// SingleMaterial modo de producción con una sola materia prima.
type SingleMaterial struct {
	RawMaterial ItemRef
	Quantity    decimal.Decimal // cantidad total consumida (>= 0)
}

// RecipeMode modo de producción guiado por la receta del producto terminado.
// Overrides reemplaza la cantidad planificada de un material (clave = id del material).
type RecipeMode struct {
	Overrides map[string]decimal.Decimal
}

// ProductionInput entrada de una corrida. Debe venir exactamente uno de Single o Recipe.
type ProductionInput struct {
	FinishedProduct  ItemRef
	ProducedQuantity decimal.Decimal
	Single           *SingleMaterial
	Recipe           *RecipeMode
}

// ProductionResult corrida persistida con nombres para mostrar.
type ProductionResult struct {
	Run                  *entity.ProductionRun
	FinishedProductName  string
	FinishedProductStock decimal.Decimal
	MaterialNames        map[string]string
}

// ProductionUseCase ejecuta corridas de producción: consumo de materias primas, entrada del
// producto terminado y cálculo de merma, todo en una sola transacción.
type ProductionUseCase struct {
	txRunner  TxRunner
	movements *RegisterMovementUseCase
	resolver  *ResolveItemUseCase
	log       *logger.Logger
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(txRunner TxRunner, movements *RegisterMovementUseCase, resolver *ResolveItemUseCase, log *logger.Logger) *ProductionUseCase {
	return &ProductionUseCase{txRunner: txRunner, movements: movements, resolver: resolver, log: log.Named("production")}
}

func (in ProductionInput) validate() error {
	verr := &domain.ValidationError{}
	add := func(field, rule, msg string) {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: field, Rule: rule, Message: msg})
	}
	if in.FinishedProduct.empty() {
		add("finished_product", "required", "producto terminado requerido")
	}
	if !in.ProducedQuantity.IsPositive() {
		add("produced_quantity", "gt", "la cantidad producida debe ser mayor que 0")
	}
	switch {
	case in.Single != nil && in.Recipe != nil, in.Single == nil && in.Recipe == nil:
		add("mode", "exclusive", "indique exactamente uno de single o recipe")
	case in.Single != nil:
		if in.Single.RawMaterial.empty() {
			add("raw_material", "required", "materia prima requerida")
		}
		if in.Single.Quantity.IsNegative() {
			add("raw_material_quantity", "gte", "la cantidad consumida no puede ser negativa")
		}
	default:
		for id, q := range in.Recipe.Overrides {
			if q.IsNegative() {
				add("overrides."+id, "gte", "la cantidad real no puede ser negativa")
			}
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// RunProduction registra la corrida. Si cualquier paso falla (p. ej. stock insuficiente en una
// línea) no queda ningún movimiento, ítem auto-creado ni registro de corrida.
func (uc *ProductionUseCase) RunProduction(ctx context.Context, in ProductionInput) (*ProductionResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var res *ProductionResult
	err := uc.txRunner.Run(ctx, func(tx Repos) error {
		var runErr error
		res, runErr = uc.runInTx(ctx, tx, in)
		return runErr
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("finished_product", in.FinishedProduct.ID+in.FinishedProduct.Name).
			Str("produced", in.ProducedQuantity.String()).Msg("corrida de producción abortada")
		return nil, err
	}
	uc.log.Info().Str("run_id", res.Run.ID).Str("mode", string(res.Run.Mode)).
		Str("finished_product_id", res.Run.FinishedProductID).
		Str("waste", res.Run.WasteQuantity.String()).Msg("corrida de producción registrada")
	return res, nil
}

func (uc *ProductionUseCase) runInTx(ctx context.Context, tx Repos, in ProductionInput) (*ProductionResult, error) {
	produced := in.ProducedQuantity
	fp, err := uc.resolver.ResolveRefInTx(ctx, tx, in.FinishedProduct, entity.CategoryFinishedProduct, decimal.Zero, produced)
	if err != nil {
		return nil, err
	}

	run := &entity.ProductionRun{
		ID:                      uuid.New().String(),
		FinishedProductID:       fp.ID,
		FinishedProductQuantity: produced,
		CreatedAt:               time.Now().UTC(),
	}
	names := make(map[string]string)

	switch {
	case in.Single != nil:
		qty := in.Single.Quantity
		rm, err := uc.resolver.ResolveRefInTx(ctx, tx, in.Single.RawMaterial, entity.CategoryRawMaterial, qty, qty)
		if err != nil {
			return nil, err
		}
		if qty.IsPositive() {
			if _, err := uc.movements.ApplyInTx(ctx, tx, rm.ID, entity.MovementTypeOUT, qty, productionNote, nil, run.ID); err != nil {
				return nil, err
			}
		}
		names[rm.ID] = rm.Name
		run.Mode = entity.ProductionModeSingle
		run.RawMaterialID = rm.ID
		run.RawMaterialQuantity = qty
		run.Lines = []entity.ProductionLine{{RunID: run.ID, RawMaterialID: rm.ID, PlannedQuantity: qty, ActualQuantity: qty}}
	default:
		lines, err := uc.consumeRecipe(ctx, tx, fp, produced, in.Recipe.Overrides, run.ID, names)
		if err != nil {
			return nil, err
		}
		run.Mode = entity.ProductionModeRecipe
		run.Lines = lines
		for _, l := range lines {
			run.RawMaterialQuantity = run.RawMaterialQuantity.Add(l.ActualQuantity)
		}
	}

	fin, err := uc.movements.ApplyInTx(ctx, tx, fp.ID, entity.MovementTypeIN, produced, productionNote, nil, run.ID)
	if err != nil {
		return nil, err
	}

	waste := inventory.ComputeWaste(run.RawMaterialQuantity, produced, fp.Weight())
	run.TheoreticalOutputWeight = waste.TheoreticalOutputWeight
	if run.Mode == entity.ProductionModeSingle {
		run.WasteQuantity = waste.WasteQuantity
		run.WastePercentage = waste.WastePercentage
		run.ClampedWasteQuantity = waste.ClampedWasteQuantity
		run.ClampedWastePercentage = waste.ClampedWastePercentage
	}
	if err := tx.Runs.Create(ctx, run); err != nil {
		return nil, err
	}
	return &ProductionResult{
		Run:                  run,
		FinishedProductName:  fp.Name,
		FinishedProductStock: fin.Item.CurrentStock,
		MaterialNames:        names,
	}, nil
}

// consumeRecipe escala la receta por la cantidad producida, aplica los overrides y registra un
// OUT por material. El primer material sin stock suficiente aborta la corrida.
func (uc *ProductionUseCase) consumeRecipe(
	ctx context.Context,
	tx Repos,
	fp *entity.Item,
	produced decimal.Decimal,
	overrides map[string]decimal.Decimal,
	runID string,
	names map[string]string,
) ([]entity.ProductionLine, error) {
	recipe, err := tx.Recipes.ListByFinishedProduct(ctx, fp.ID)
	if err != nil {
		return nil, err
	}
	if len(recipe) == 0 {
		return nil, domain.NewValidationError("recipe", "required", "el producto "+fp.Name+" no tiene receta")
	}
	planned := inventory.ScaleRecipe(recipe, produced)
	for id := range overrides {
		if _, ok := planned[id]; !ok {
			return nil, domain.NewValidationError("overrides."+id, "in_recipe", "el material no pertenece a la receta")
		}
	}

	lines := make([]entity.ProductionLine, 0, len(planned))
	seen := make(map[string]bool, len(planned))
	for _, rl := range recipe {
		if seen[rl.RawMaterialID] {
			continue
		}
		seen[rl.RawMaterialID] = true
		actual := planned[rl.RawMaterialID]
		if q, ok := overrides[rl.RawMaterialID]; ok {
			actual = q
		}
		if actual.IsPositive() {
			res, err := uc.movements.ApplyInTx(ctx, tx, rl.RawMaterialID, entity.MovementTypeOUT, actual, productionNote, nil, runID)
			if err != nil {
				return nil, err
			}
			names[rl.RawMaterialID] = res.Item.Name
		} else if rm, err := tx.Items.GetByID(ctx, rl.RawMaterialID); err == nil && rm != nil {
			names[rm.ID] = rm.Name
		}
		lines = append(lines, entity.ProductionLine{
			RunID:           runID,
			RawMaterialID:   rl.RawMaterialID,
			PlannedQuantity: planned[rl.RawMaterialID],
			ActualQuantity:  actual,
		})
	}
	return lines, nil
}
