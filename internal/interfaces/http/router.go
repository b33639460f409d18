package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sistema-inventario/internal/application/analytics"
	"github.com/jhoicas/sistema-inventario/internal/application/auth"
	"github.com/jhoicas/sistema-inventario/internal/application/inventory"
	"github.com/jhoicas/sistema-inventario/internal/application/reports"
	"github.com/jhoicas/sistema-inventario/internal/application/usecase"
	"github.com/jhoicas/sistema-inventario/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductoUC   *usecase.ProductoUseCase
	MovimientoUC *usecase.MovimientoUseCase
	StockUC      *inventory.StockUseCase
	DashboardUC  *analytics.DashboardUseCase
	ReporteUC    *reports.ReporteUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	soloAdmin := RequireRole(entity.RolAdmin)

	// Productos (protegido; editar y eliminar solo admin)
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Post("/", productoHandler.Create)
	productos.Get("/", productoHandler.List)
	productos.Get("/codigo/:codigo", productoHandler.GetByCodigoBarras)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", soloAdmin, productoHandler.Update)
	productos.Delete("/:id", soloAdmin, productoHandler.Delete)

	// Operaciones de stock (protegido)
	inventario := protected.Group("/inventario")
	inventarioHandler := NewInventarioHandler(deps.StockUC)
	inventario.Post("/reingreso", inventarioHandler.Reingreso)
	inventario.Post("/venta", inventarioHandler.Venta)
	inventario.Post("/salida", inventarioHandler.Salida)

	// Libro de movimientos (solo admin)
	movimientos := protected.Group("/movimientos")
	movimientoHandler := NewMovimientoHandler(deps.MovimientoUC)
	movimientos.Get("/", soloAdmin, movimientoHandler.List)
	movimientos.Delete("/producto/:id", soloAdmin, movimientoHandler.DeleteByProducto)
	movimientos.Delete("/:id", soloAdmin, movimientoHandler.Delete)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)

	// Reportes (protegido)
	reportes := protected.Group("/reportes")
	reporteHandler := NewReporteHandler(deps.ReporteUC)
	reportes.Get("/pdf", reporteHandler.PDF)
	reportes.Get("/totales", reporteHandler.Totales)
	reportes.Get("/valor-inventario", reporteHandler.ValorInventario)
}
