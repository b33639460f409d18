// Package analytics contiene el caso de uso del dashboard del inventario:
// KPIs del día, productos por agotarse y la serie de movimientos de 30 días.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/sistema-inventario/internal/application/dto"
	"github.com/jhoicas/sistema-inventario/internal/domain/entity"
	"github.com/jhoicas/sistema-inventario/internal/domain/repository"
)

const (
	umbralStockBajo  = 15 // un bien con stock < 15 aparece en el widget
	topStockBajo     = 5
	topVendidosHoy   = 5
	diasGraficoSerie = 30
)

// DashboardUseCase construye el resumen del dashboard.
//
// Fuente de datos: ReporteRepository (consultas read-only). No toca las tablas
// directamente; todo agregado vacío vale cero.
type DashboardUseCase struct {
	reporteRepo repository.ReporteRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reporteRepo repository.ReporteRepository) *DashboardUseCase {
	return &DashboardUseCase{reporteRepo: reporteRepo}
}

// GetSummary arma el DashboardSummaryDTO.
//
// Las cinco consultas se lanzan en paralelo:
//  1. CountProductos
//  2. TotalesPeriodo(hoy, venta)        → unidades y dinero vendidos hoy
//  3. StockBajo(15, top 5)
//  4. TopMovidos(venta, hoy, top 5)
//  5. UnidadesPorTipo(últimos 30 días)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	hoyInicio := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	hoyFin := hoyInicio.Add(24*time.Hour - time.Nanosecond)
	serieInicio := hoyInicio.AddDate(0, 0, -diasGraficoSerie)

	type countResult struct {
		n   int64
		err error
	}
	type totalesResult struct {
		t   repository.TotalesPeriodo
		err error
	}
	type stockBajoResult struct {
		items []*entity.Producto
		err   error
	}
	type topResult struct {
		items []repository.ProductoMovido
		err   error
	}
	type serieResult struct {
		items []repository.TotalPorTipo
		err   error
	}

	countCh := make(chan countResult, 1)
	ventasCh := make(chan totalesResult, 1)
	stockCh := make(chan stockBajoResult, 1)
	topCh := make(chan topResult, 1)
	serieCh := make(chan serieResult, 1)

	go func() {
		n, err := uc.reporteRepo.CountProductos(ctx)
		countCh <- countResult{n, err}
	}()
	go func() {
		t, err := uc.reporteRepo.TotalesPeriodo(ctx, hoyInicio, hoyFin, entity.MovimientoVenta)
		ventasCh <- totalesResult{t, err}
	}()
	go func() {
		items, err := uc.reporteRepo.StockBajo(ctx, umbralStockBajo, topStockBajo)
		stockCh <- stockBajoResult{items, err}
	}()
	go func() {
		items, err := uc.reporteRepo.TopMovidos(ctx, entity.MovimientoVenta, hoyInicio, hoyFin, topVendidosHoy)
		topCh <- topResult{items, err}
	}()
	go func() {
		items, err := uc.reporteRepo.UnidadesPorTipo(ctx, serieInicio, hoyFin)
		serieCh <- serieResult{items, err}
	}()

	count := <-countCh
	ventas := <-ventasCh
	stock := <-stockCh
	top := <-topCh
	serie := <-serieCh

	if count.err != nil {
		return nil, fmt.Errorf("dashboard: total de productos: %w", count.err)
	}
	if ventas.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", ventas.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", stock.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: más vendidos de hoy: %w", top.err)
	}
	if serie.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos por tipo: %w", serie.err)
	}

	stockBajo := make([]dto.StockBajoDTO, 0, len(stock.items))
	for _, p := range stock.items {
		stockBajo = append(stockBajo, dto.StockBajoDTO{ProductoID: p.ID, Nombre: p.Nombre, Stock: p.Stock})
	}
	masVendidos := make([]dto.ProductoMovidoDTO, 0, len(top.items))
	for _, p := range top.items {
		masVendidos = append(masVendidos, dto.ProductoMovidoDTO{ProductoID: p.ProductoID, Nombre: p.Nombre, Cantidad: p.Cantidad})
	}
	porTipo := make([]dto.TotalPorTipoDTO, 0, len(serie.items))
	for _, t := range serie.items {
		porTipo = append(porTipo, dto.TotalPorTipoDTO{Tipo: t.Tipo, Cantidad: t.Cantidad})
	}

	return &dto.DashboardSummaryDTO{
		TotalProductos:      count.n,
		UnidadesVendidasHoy: ventas.t.Unidades,
		DineroVendidoHoy:    ventas.t.Total.Round(2),
		StockBajo:           stockBajo,
		MasVendidosHoy:      masVendidos,
		MovimientosPorTipo:  porTipo,
	}, nil
}
