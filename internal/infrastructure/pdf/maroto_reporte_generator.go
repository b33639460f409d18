// Package pdf implementa la generación de los reportes imprimibles de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA general: Producto | Código | Cantidad | Tipo | Fecha  │
//	│  TABLA ventas:  Producto | Código | Fecha | Cant | P.U | Tot │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades movidas / TOTAL VENDIDO                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/sistema-inventario/internal/application/reports"
	"github.com/jhoicas/sistema-inventario/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReporteGenerator implementa reports.ReportePDFGenerator usando Maroto v2.
type MarotoReporteGenerator struct{}

// NewMarotoReporteGenerator construye el generador.
func NewMarotoReporteGenerator() *MarotoReporteGenerator { return &MarotoReporteGenerator{} }

// GenerateReportePDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReporteGenerator) GenerateReportePDF(_ context.Context, data *reports.ReporteData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(data.Titulo, true).
		WithAuthor("Sistema Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if data.EsVenta {
		m.AddRows(ventasHeaderRow())
		for _, r := range ventasDetailRows(data.Movimientos) {
			m.AddRows(r)
		}
	} else {
		m.AddRows(generalHeaderRow())
		for _, r := range generalDetailRows(data.Movimientos) {
			m.AddRows(r)
		}
	}

	if len(data.Movimientos) == 0 {
		m.AddRows(emptyRow())
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del reporte (izq) y fecha de generación (der).
func headerRow(data *reports.ReporteData) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(data.Titulo, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Sistema de Inventario", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado:", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(data.GeneradoEn.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

// generalHeaderRow: cabecera de la tabla de movimientos generales.
func generalHeaderRow() core.Row {
	return row.New(8).Add(
		th("Producto", 4, align.Left),
		th("Código", 2, align.Left),
		th("Cantidad", 2, align.Center),
		th("Tipo", 2, align.Center),
		th("Fecha", 2, align.Right),
	)
}

// generalDetailRows: una fila por asiento, con el tipo en etiqueta legible.
func generalDetailRows(movimientos []*entity.Movimiento) []core.Row {
	result := make([]core.Row, 0, len(movimientos))
	for _, m := range movimientos {
		result = append(result, row.New(7).Add(
			td(m.ProductoNombre, 4, align.Left),
			td(m.ProductoCodigo, 2, align.Left),
			td(strconv.FormatInt(m.Cantidad, 10), 2, align.Center),
			td(etiquetaTipo(m.Tipo), 2, align.Center),
			td(m.Fecha.Format("02/01/2006"), 2, align.Right),
		))
	}
	return result
}

// ventasHeaderRow: cabecera de la tabla de ventas (incluye dinero).
func ventasHeaderRow() core.Row {
	return row.New(8).Add(
		th("Producto", 3, align.Left),
		th("Código", 2, align.Left),
		th("Fecha", 2, align.Center),
		th("Cant.", 1, align.Center),
		th("Precio U.", 2, align.Right),
		th("Total", 2, align.Right),
	)
}

// ventasDetailRows: una fila por venta con precio unitario y total de línea.
func ventasDetailRows(movimientos []*entity.Movimiento) []core.Row {
	result := make([]core.Row, 0, len(movimientos))
	for _, m := range movimientos {
		result = append(result, row.New(7).Add(
			td(m.ProductoNombre, 3, align.Left),
			td(m.ProductoCodigo, 2, align.Left),
			td(m.Fecha.Format("02/01/2006"), 2, align.Center),
			td(strconv.FormatInt(m.Cantidad, 10), 1, align.Center),
			td("$"+formatMoney(m.PrecioUnitarioVenta.StringFixed(0)), 2, align.Right),
			td("$"+formatMoney(m.TotalVenta().StringFixed(0)), 2, align.Right),
		))
	}
	return result
}

// emptyRow: aviso cuando el período no tiene movimientos.
func emptyRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Sin movimientos en el período seleccionado.", props.Text{
			Size: 9, Align: align.Center, Color: colorGray, Top: 3,
		}),
	))
}

// totalsRow: bloque de totales alineado a la derecha.
// Los reportes de ventas muestran el total en dinero; los generales, solo unidades.
func totalsRow(data *reports.ReporteData) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 6,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 6,
		})
	}

	labels := col.New(4).Add(label("Unidades movidas:"))
	values := col.New(4).Add(value(strconv.FormatInt(data.TotalUnidades, 10)))
	if data.EsVenta {
		labels.Add(grandLabel("TOTAL VENDIDO:"))
		values.Add(grandValue("$" + formatMoney(data.TotalVendido.StringFixed(0))))
	}

	return row.New(16).Add(
		col.New(4), // espacio izquierdo
		labels,
		values,
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func th(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorPrimary, Top: 2, Left: 1, Right: 1,
	}))
}

func td(s string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(s, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

// etiquetaTipo traduce el tipo de movimiento a la etiqueta impresa.
func etiquetaTipo(tipo string) string {
	switch tipo {
	case entity.MovimientoNuevoProducto:
		return "Nuevo"
	case entity.MovimientoIngreso:
		return "Ingreso"
	case entity.MovimientoVenta:
		return "Venta"
	case entity.MovimientoSalida:
		return "Salida"
	}
	return tipo
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
