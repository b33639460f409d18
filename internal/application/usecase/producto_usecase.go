package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sistema-inventario/internal/application/dto"
	"github.com/jhoicas/sistema-inventario/internal/application/inventory"
	"github.com/jhoicas/sistema-inventario/internal/domain"
	"github.com/jhoicas/sistema-inventario/internal/domain/entity"
	"github.com/jhoicas/sistema-inventario/internal/domain/repository"
)

// ProductoUseCase casos de uso CRUD para el catálogo de productos.
// El stock de un bien solo cambia aquí en la creación (stock inicial) y en la
// edición administrativa; el resto pasa por el motor de movimientos.
type ProductoUseCase struct {
	repo           repository.ProductoRepository
	movimientoRepo repository.MovimientoRepository
	txRunner       inventory.TxRunner
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(
	repo repository.ProductoRepository,
	movimientoRepo repository.MovimientoRepository,
	txRunner inventory.TxRunner,
) *ProductoUseCase {
	return &ProductoUseCase{repo: repo, movimientoRepo: movimientoRepo, txRunner: txRunner}
}

// Create valida y persiste un producto nuevo. Un servicio siempre entra con stock 0.
// Si es un bien con stock inicial > 0 registra un movimiento nuevo_producto en la
// misma transacción que el INSERT del producto.
func (uc *ProductoUseCase) Create(ctx context.Context, userID string, in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	codigo := strings.TrimSpace(in.CodigoBarras)
	if nombre == "" || codigo == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Tipo != entity.TipoBien && in.Tipo != entity.TipoServicio {
		return nil, domain.ErrInvalidInput
	}
	if in.Tipo == entity.TipoBien && in.Precio == nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	exists, err := uc.repo.ExistsCodigoBarras(ctx, codigo, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	stock := in.Stock
	if in.Tipo == entity.TipoServicio {
		stock = 0
	}
	activo := true
	if in.Activo != nil {
		activo = *in.Activo
	}
	now := time.Now()
	producto := &entity.Producto{
		Nombre:       nombre,
		Descripcion:  in.Descripcion,
		Precio:       toNullDecimal(in.Precio),
		Tipo:         in.Tipo,
		Stock:        stock,
		CodigoBarras: codigo,
		Activo:       activo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(
		productoRepo repository.ProductoRepository,
		movimientoRepo repository.MovimientoRepository,
	) error {
		if err := productoRepo.Create(ctx, producto); err != nil {
			return err
		}
		if producto.Tipo == entity.TipoBien && producto.Stock > 0 {
			mov := &entity.Movimiento{
				ProductoID: producto.ID,
				Tipo:       entity.MovimientoNuevoProducto,
				Cantidad:   producto.Stock,
				Fecha:      now,
				CreatedBy:  userID,
			}
			return movimientoRepo.Create(ctx, mov)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (uc *ProductoUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}
	return toProductoResponse(producto), nil
}

// GetByCodigoBarras obtiene un producto por código de barras. (nil, nil) si no existe.
func (uc *ProductoUseCase) GetByCodigoBarras(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByCodigoBarras(ctx, codigo)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}
	return toProductoResponse(producto), nil
}

// Update edita los campos permitidos de un producto. Cambiar el tipo a servicio
// fuerza stock a 0; el código de barras debe seguir siendo único.
func (uc *ProductoUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}

	if in.Nombre != nil {
		nombre := strings.TrimSpace(*in.Nombre)
		if nombre == "" {
			return nil, domain.ErrInvalidInput
		}
		producto.Nombre = nombre
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.Precio != nil {
		producto.Precio = decimal.NullDecimal{Decimal: *in.Precio, Valid: true}
	}
	if in.Tipo != nil {
		if *in.Tipo != entity.TipoBien && *in.Tipo != entity.TipoServicio {
			return nil, domain.ErrInvalidInput
		}
		producto.Tipo = *in.Tipo
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		producto.Stock = *in.Stock
	}
	if in.CodigoBarras != nil {
		codigo := strings.TrimSpace(*in.CodigoBarras)
		if codigo == "" {
			return nil, domain.ErrInvalidInput
		}
		exists, err := uc.repo.ExistsCodigoBarras(ctx, codigo, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
		producto.CodigoBarras = codigo
	}
	if in.Activo != nil {
		producto.Activo = *in.Activo
	}
	if producto.Tipo == entity.TipoServicio {
		producto.Stock = 0
	}
	if producto.Tipo == entity.TipoBien && !producto.Precio.Valid {
		return nil, domain.ErrInvalidInput
	}
	producto.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// List busca productos por nombre o código de barras, con paginación.
func (uc *ProductoUseCase) List(ctx context.Context, search string, limit, offset int) (*dto.ProductoListResponse, error) {
	list, err := uc.repo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductoResponse(p))
	}
	return &dto.ProductoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto sin movimientos. Política: si el producto tiene
// movimientos la eliminación se bloquea (ErrProductoConMovimientos); primero
// debe vaciarse su historial con MovimientoUseCase.DeleteByProducto.
func (uc *ProductoUseCase) Delete(ctx context.Context, id int64) error {
	producto, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNotFound
	}
	count, err := uc.movimientoRepo.CountByProducto(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrProductoConMovimientos
	}
	return uc.repo.Delete(ctx, id)
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	var precio *decimal.Decimal
	if p.Precio.Valid {
		v := p.Precio.Decimal
		precio = &v
	}
	return &dto.ProductoResponse{
		ID:           p.ID,
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		Precio:       precio,
		Tipo:         p.Tipo,
		Stock:        p.Stock,
		CodigoBarras: p.CodigoBarras,
		Activo:       p.Activo,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
