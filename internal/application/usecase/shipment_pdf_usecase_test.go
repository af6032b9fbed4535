package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

type captureGenerator struct {
	doc   *entity.ShippingDocument
	lines []usecase.ShippingLineForPDF
	err   error
}

func (g *captureGenerator) GenerateShippingNote(_ context.Context, doc *entity.ShippingDocument, lines []usecase.ShippingLineForPDF) ([]byte, error) {
	g.doc, g.lines = doc, lines
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func TestDownloadShipmentPDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.items.Create(ctx, dto.CreateItemRequest{Name: "Bolsa", Category: "finished_product", InitialStock: dec("50")})
	require.NoError(t, err)
	doc, err := f.ship.RunShipment(ctx, appinventory.ShipmentInput{
		CustomerName: "Acme",
		DocNumber:    "SD/001 A",
		Lines:        []appinventory.ShipmentLine{{ProductID: p.ID, Quantity: dec("20")}},
	})
	require.NoError(t, err)

	gen := &captureGenerator{}
	uc := usecase.NewShipmentPDFUseCase(f.repos.Shipping, f.repos.Items, gen)
	out, name, err := uc.DownloadShipmentPDF(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Equal(t, "envio_SD_001_A.pdf", name)
	require.Len(t, gen.lines, 1)
	assert.Equal(t, "Bolsa", gen.lines[0].ProductName)
	assert.True(t, dec("20").Equal(gen.lines[0].Quantity))
}

func TestDownloadShipmentPDF_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := usecase.NewShipmentPDFUseCase(f.repos.Shipping, f.repos.Items, &captureGenerator{})
	_, _, err := uc.DownloadShipmentPDF(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	p, err := f.items.Create(ctx, dto.CreateItemRequest{Name: "Bolsa", Category: "finished_product", InitialStock: dec("5")})
	require.NoError(t, err)
	doc, err := f.ship.RunShipment(ctx, appinventory.ShipmentInput{
		CustomerName: "Acme", DocNumber: "SD-2",
		Lines: []appinventory.ShipmentLine{{ProductID: p.ID, Quantity: dec("1")}},
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	uc = usecase.NewShipmentPDFUseCase(f.repos.Shipping, f.repos.Items, &captureGenerator{err: boom})
	_, _, err = uc.DownloadShipmentPDF(ctx, doc.ID)
	require.ErrorIs(t, err, boom)
}
