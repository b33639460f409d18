package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/sistema-inventario/internal/application/dto"
	"github.com/jhoicas/sistema-inventario/internal/domain"
	"github.com/jhoicas/sistema-inventario/internal/domain/entity"
	"github.com/jhoicas/sistema-inventario/internal/domain/repository"
)

// MovimientoUseCase consulta y administración del libro de movimientos.
// Los movimientos son inmutables; solo un administrador puede eliminarlos.
type MovimientoUseCase struct {
	repo         repository.MovimientoRepository
	productoRepo repository.ProductoRepository
}

// NewMovimientoUseCase construye el caso de uso.
func NewMovimientoUseCase(repo repository.MovimientoRepository, productoRepo repository.ProductoRepository) *MovimientoUseCase {
	return &MovimientoUseCase{repo: repo, productoRepo: productoRepo}
}

// ListInput filtros del listado del libro.
type ListInput struct {
	Search      string
	FechaInicio *time.Time
	FechaFin    *time.Time
	Tipo        string
	Limit       int
	Offset      int
}

// List devuelve el libro filtrado, más recientes primero. Rechaza fechas futuras
// (a nivel de día: hoy es válido) y ajusta fecha fin anterior a fecha inicio al
// propio inicio.
func (uc *MovimientoUseCase) List(ctx context.Context, in ListInput) (*dto.MovimientoListResponse, error) {
	hoy := time.Now()
	if in.FechaInicio != nil && diaFuturo(*in.FechaInicio, hoy) {
		return nil, domain.ErrInvalidInput
	}
	if in.FechaFin != nil && diaFuturo(*in.FechaFin, hoy) {
		return nil, domain.ErrInvalidInput
	}
	if in.FechaInicio != nil && in.FechaFin != nil && in.FechaFin.Before(*in.FechaInicio) {
		in.FechaFin = in.FechaInicio
	}
	if in.Tipo != "" && !entity.TipoMovimientoValido(in.Tipo) {
		return nil, domain.ErrInvalidInput
	}

	list, err := uc.repo.List(ctx, repository.MovimientoFilter{
		Search:      in.Search,
		FechaInicio: in.FechaInicio,
		FechaFin:    in.FechaFin,
		Tipo:        in.Tipo,
		Limit:       in.Limit,
		Offset:      in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovimientoResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovimientoResponse(m))
	}
	return &dto.MovimientoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Delete elimina un movimiento puntual del libro.
func (uc *MovimientoUseCase) Delete(ctx context.Context, id int64) error {
	mov, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if mov == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// DeleteByProducto vacía el historial de un producto y devuelve cuántos asientos
// se eliminaron. Es el paso previo obligatorio para poder borrar el producto.
func (uc *MovimientoUseCase) DeleteByProducto(ctx context.Context, productoID int64) (int64, error) {
	producto, err := uc.productoRepo.GetByID(ctx, productoID)
	if err != nil {
		return 0, err
	}
	if producto == nil {
		return 0, domain.ErrNotFound
	}
	return uc.repo.DeleteByProducto(ctx, productoID)
}

// diaFuturo compara solo la fecha calendario: cualquier instante de hoy,
// incluido el último (el handler extiende fecha_fin a las 23:59:59), no es futuro.
func diaFuturo(t, ahora time.Time) bool {
	ty, tm, td := t.Date()
	ay, am, ad := ahora.Date()
	dia := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	diaHoy := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	return dia.After(diaHoy)
}

func toMovimientoResponse(m *entity.Movimiento) dto.MovimientoResponse {
	return dto.MovimientoResponse{
		ID:                  m.ID,
		ProductoID:          m.ProductoID,
		ProductoNombre:      m.ProductoNombre,
		ProductoCodigo:      m.ProductoCodigo,
		Tipo:                m.Tipo,
		Cantidad:            m.Cantidad,
		PrecioUnitarioVenta: m.PrecioUnitarioVenta,
		Fecha:               m.Fecha,
	}
}
