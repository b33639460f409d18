package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sistema-inventario/internal/application/reports"
	"github.com/jhoicas/sistema-inventario/internal/domain/entity"
)

func TestGenerateReportePDF_Ventas(t *testing.T) {
	gen := NewMarotoReporteGenerator()

	data := &reports.ReporteData{
		Titulo:  "Reporte de Ventas del Día 2026-08-31",
		EsVenta: true,
		Movimientos: []*entity.Movimiento{
			{
				ProductoID:          1,
				Tipo:                entity.MovimientoVenta,
				Cantidad:            3,
				PrecioUnitarioVenta: decimal.NewFromInt(12000),
				Fecha:               time.Date(2026, 8, 31, 10, 30, 0, 0, time.Local),
				ProductoNombre:      "Café Tostado 500g",
				ProductoCodigo:      "7701234567890",
			},
		},
		TotalUnidades: 3,
		TotalVendido:  decimal.NewFromInt(36000),
		GeneradoEn:    time.Now(),
	}

	out, err := gen.GenerateReportePDF(context.Background(), data)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "el documento debe ser un PDF válido")
}

func TestGenerateReportePDF_General(t *testing.T) {
	gen := NewMarotoReporteGenerator()

	data := &reports.ReporteData{
		Titulo: "Reporte Diario General 2026-09-01",
		Movimientos: []*entity.Movimiento{
			{Tipo: entity.MovimientoIngreso, Cantidad: 10, Fecha: time.Now(), ProductoNombre: "Tornillo", ProductoCodigo: "A-1"},
			{Tipo: entity.MovimientoSalida, Cantidad: 2, Fecha: time.Now(), ProductoNombre: "Tuerca", ProductoCodigo: "A-2"},
		},
		TotalUnidades: 12,
		GeneradoEn:    time.Now(),
	}

	out, err := gen.GenerateReportePDF(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateReportePDF_SinMovimientos(t *testing.T) {
	gen := NewMarotoReporteGenerator()

	out, err := gen.GenerateReportePDF(context.Background(), &reports.ReporteData{
		Titulo:     "Reporte Mensual General Enero 2026",
		GeneradoEn: time.Now(),
	})
	require.NoError(t, err, "un período vacío genera el PDF con el aviso y totales en cero")
	assert.NotEmpty(t, out)
}

func TestEtiquetaTipo(t *testing.T) {
	assert.Equal(t, "Nuevo", etiquetaTipo(entity.MovimientoNuevoProducto))
	assert.Equal(t, "Ingreso", etiquetaTipo(entity.MovimientoIngreso))
	assert.Equal(t, "Venta", etiquetaTipo(entity.MovimientoVenta))
	assert.Equal(t, "Salida", etiquetaTipo(entity.MovimientoSalida))
	assert.Equal(t, "otro", etiquetaTipo("otro"), "tipo desconocido se imprime tal cual")
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":       "0",
		"999":     "999",
		"1000":    "1.000",
		"25000":   "25.000",
		"1000000": "1.000.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in), "formatMoney(%q)", in)
	}
}
