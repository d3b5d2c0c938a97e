// Package pdf genera el reporte PDF del historial de movimientos de un ítem.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del ítem + SKU  │  Cantidad actual + Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  UBICACIÓN: Sede / Área / Unidad   |   Precio               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Cant | Antes→Después | Origen | ...   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de movimientos incluidos                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/warehouse-ledger/internal/application/ports"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// MarotoReportGenerator implementa ports.MovementReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

var _ ports.MovementReportGenerator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateMovementReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateMovementReport(_ context.Context, r ports.MovementReport) ([]byte, error) {
	if r.Item == nil {
		return nil, fmt.Errorf("pdf: reporte sin ítem")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Movement history - "+r.Item.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(locationRow(r))
	if sku := r.Item.SKUValue(); sku != "" {
		m.AddRows(row.New(14).Add(
			col.New(4).Add(code.NewBar(sku, props.Barcode{Percent: 90})),
			col.New(8),
		))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(r.Movements) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No movements recorded", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for _, mov := range r.Movements {
		m.AddRows(movementRow(mov, r.UnitNames))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d movements, newest first", len(r.Movements)), props.Text{
			Size: 7, Color: colorGray, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r ports.MovementReport) core.Row {
	qtyColor := colorPrimary
	if r.Item.MinStock != nil && r.Item.Quantity <= *r.Item.MinStock {
		qtyColor = colorAlert
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.Item.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SKU: "+nonEmpty(r.Item.SKUValue(), "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("MOVEMENT HISTORY", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Quantity: %d", r.Item.Quantity), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7, Color: qtyColor,
			}),
			text.New("Generated: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func locationRow(r ports.MovementReport) core.Row {
	price := "-"
	if r.Item.Price != nil {
		price = "$" + r.Item.Price.StringFixed(2)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("STORAGE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Price: %s",
				unitName(r.UnitNames, &r.Item.StorageUnitID), price,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow cabecera con fondo azul simulado.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("Type", 2, align.Left),
		h("Qty", 1, align.Right),
		h("Before → After", 2, align.Center),
		h("From", 2, align.Left),
		h("To", 2, align.Left),
		h("Notes", 1, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func movementRow(m *entity.Movement, names map[string]string) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(7).Add(
		cell(m.MovementDate.Format("02/01/2006 15:04"), 2, align.Left),
		cell(string(m.Type), 2, align.Left),
		cell(fmt.Sprintf("%d", m.Quantity), 1, align.Right),
		cell(fmt.Sprintf("%d → %d", m.QuantityBefore, m.QuantityAfter), 2, align.Center),
		cell(unitName(names, m.FromStorageUnitID), 2, align.Left),
		cell(unitName(names, m.ToStorageUnitID), 2, align.Left),
		cell(nonEmpty(m.Notes, m.Reason), 1, align.Left),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func unitName(names map[string]string, id *string) string {
	if id == nil || *id == "" {
		return "-"
	}
	if n, ok := names[*id]; ok {
		return n
	}
	return *id
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
