package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/warehouse-ledger/internal/application/inventory"
	"github.com/jhoicas/warehouse-ledger/internal/application/ports"
	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
)

type capturingGenerator struct {
	report ports.MovementReport
}

func (g *capturingGenerator) GenerateMovementReport(_ context.Context, r ports.MovementReport) ([]byte, error) {
	g.report = r
	return []byte("%PDF-fake"), nil
}

func TestHistory_ListaConRangoDeFechas(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	for _, q := range []int{1, 2, 3} {
		_, err := f.engine.ApplyMovement(ctx, appinv.MovementInput{ItemID: "item", Type: entity.MovementTypeIN, Quantity: q})
		require.NoError(t, err)
	}
	uc := appinv.NewHistoryUseCase(f.store.Items(), f.store.Movements(), f.store.Storage(), nil)

	res, err := uc.ListMovements(ctx, "item", nil, nil, 2, 0)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, 3, res.Page.Total)
	assert.Equal(t, 3, res.Items[0].Quantity, "más reciente primero")
	assert.Equal(t, 13, res.Items[0].QuantityBefore)
	assert.Equal(t, 16, res.Items[0].QuantityAfter)

	future := time.Now().Add(time.Hour)
	res, err = uc.ListMovements(ctx, "item", &future, nil, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	_, err = uc.ListMovements(ctx, "nope", nil, nil, 10, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistory_ReportePDF(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	_, err := f.engine.ApplyMovement(ctx, appinv.MovementInput{
		ItemID: "item", Type: entity.MovementTypeTRANSFER, Quantity: 2,
		FromStorageUnitID: "unit-a", ToStorageUnitID: "unit-b",
	})
	require.NoError(t, err)

	gen := &capturingGenerator{}
	uc := appinv.NewHistoryUseCase(f.store.Items(), f.store.Movements(), f.store.Storage(), gen)

	pdf, name, err := uc.MovementReportPDF(ctx, "item")
	require.NoError(t, err)
	assert.Equal(t, "movements-item.pdf", name)
	assert.Equal(t, "%PDF-fake", string(pdf))
	require.Len(t, gen.report.Movements, 1)
	assert.Equal(t, "Sede / Bodega / B", gen.report.UnitNames["unit-b"])
	assert.Equal(t, "Taladro", gen.report.Item.Name)

	_, _, err = uc.MovementReportPDF(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = appinv.NewHistoryUseCase(f.store.Items(), f.store.Movements(), f.store.Storage(), nil).
		MovementReportPDF(ctx, "item")
	assert.Error(t, err)
}
