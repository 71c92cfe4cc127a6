// Package pdf implementa la representación impresa del listado de
// movimientos de inventario. El motor entrega la salida de List sin
// transformar; todo el formato vive acá.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO: Movimientos de inventario + fecha de emisión        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por documento:                                              │
//	│    CABECERA: Nro | Tipo | Sucursal/Depósito | Fecha | Total  │
//	│    TABLA: Línea | Artículo | Cantidad | Costo | Importe      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: total general ML                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/application/movement"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain/entity"
)

var _ movement.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator implementa movement.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	printer *message.Printer
}

// NewMarotoReportGenerator construye el generador con formato numérico en
// español (separador de miles con punto).
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{printer: message.NewPrinter(language.Spanish)}
}

// MovementListPDF genera el PDF del listado y devuelve sus bytes.
func (g *MarotoReportGenerator) MovementListPDF(_ context.Context, docs []*entity.MovementDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Movimientos de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.titleRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	total := decimal.Zero
	for _, doc := range docs {
		m.AddRows(g.headerRow(doc))
		if len(doc.Lines) > 0 {
			m.AddRows(g.tableHeaderRow())
			for _, l := range doc.Lines {
				m.AddRows(g.lineRow(l))
			}
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		total = total.Add(doc.TotalLocal)
	}

	m.AddRows(g.footerRow(len(docs), total))

	result, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar reporte de movimientos: %w", err)
	}
	return result.GetBytes(), nil
}

func (g *MarotoReportGenerator) amount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return g.printer.Sprintf("%.2f", f)
}

func (g *MarotoReportGenerator) titleRow() core.Row {
	return row.New(10).Add(
		col.New(8).Add(text.New("Movimientos de inventario", props.Text{
			Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
		})),
		col.New(4).Add(text.New("Emitido: "+time.Now().Format("2006-01-02 15:04"), props.Text{
			Size: 8, Align: align.Right, Color: colorGray,
		})),
	)
}

func (g *MarotoReportGenerator) headerRow(doc *entity.MovementDocument) core.Row {
	left := fmt.Sprintf("N° %d — %s", doc.DocumentNumber, doc.TransactionTypeName)
	center := fmt.Sprintf("%s / %s", doc.BranchName, doc.WarehouseName)
	right := fmt.Sprintf("%s   Total ML: %s", doc.DocumentDate.Format("2006-01-02"), g.amount(doc.TotalLocal))
	return row.New(7).Add(
		col.New(5).Add(text.New(left, props.Text{Size: 9, Style: fontstyle.Bold})),
		col.New(3).Add(text.New(center, props.Text{Size: 8})),
		col.New(4).Add(text.New(right, props.Text{Size: 8, Align: align.Right})),
	)
}

func (g *MarotoReportGenerator) tableHeaderRow() core.Row {
	header := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Style: fontstyle.Bold, Color: colorGray}))
	}
	return row.New(5).Add(
		header("Línea", 1),
		header("Artículo", 5),
		header("Cantidad", 2),
		header("Costo ML", 2),
		header("Importe ML", 2),
	)
}

func (g *MarotoReportGenerator) lineRow(l entity.MovementLine) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a}))
	}
	return row.New(5).Add(
		cell(fmt.Sprintf("%d", l.LineNumber), 1, align.Left),
		cell(fmt.Sprintf("%s — %s", l.ItemCode, l.ItemName), 5, align.Left),
		cell(g.amount(l.Quantity), 2, align.Right),
		cell(g.amount(l.UnitCostLocal), 2, align.Right),
		cell(g.amount(l.AmountLocal), 2, align.Right),
	)
}

func (g *MarotoReportGenerator) footerRow(count int, total decimal.Decimal) core.Row {
	return row.New(8).Add(
		col.New(8).Add(text.New(fmt.Sprintf("%d documentos", count), props.Text{Size: 8, Color: colorGray})),
		col.New(4).Add(text.New("Total general ML: "+g.amount(total), props.Text{
			Size: 10, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary,
		})),
	)
}
