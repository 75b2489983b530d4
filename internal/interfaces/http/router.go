package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Nodes       *inventory.NodeRegistry
	Movements   *inventory.MovementUseCase
	Balances    *inventory.BalanceUseCase
	Reports     *inventory.BalanceReportUseCase
	WarehouseUC *usecase.WarehouseUseCase
	LocationUC  *usecase.LocationUseCase
	SupplierUC  *usecase.SupplierUseCase
	CustomerUC  *usecase.CustomerUseCase
	JWTSecret   string
	Logger      *logger.Logger
}

// Router registra las rutas de la API. Todo /api exige Bearer Token;
// las escrituras además requieren rol admin o bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	canWrite := RequireRole(RoleAdmin, RoleBodeguero)

	// Registro de nodos
	nodes := api.Group("/nodes")
	nodeHandler := NewNodeHandler(deps.Nodes, log)
	nodes.Get("/", nodeHandler.List)
	nodes.Post("/", canWrite, nodeHandler.CreateVirtual)
	nodes.Post("/bootstrap", canWrite, nodeHandler.Bootstrap)
	nodes.Get("/:id", nodeHandler.GetByID)

	// Libro de movimientos y saldos
	inv := api.Group("/inventory")
	movementHandler := NewMovementHandler(deps.Movements, log)
	inv.Post("/movements", canWrite, movementHandler.Create)
	inv.Get("/movements", movementHandler.List)
	inv.Put("/movements/:id", canWrite, movementHandler.Update)
	inv.Delete("/movements/:id", canWrite, movementHandler.Delete)
	inv.Get("/movement-events/:id", movementHandler.GetEvent)
	inv.Post("/movement-events/:id/post", canWrite, movementHandler.Post)
	inv.Post("/movement-events/:id/cancel", canWrite, movementHandler.Cancel)

	balanceHandler := NewBalanceHandler(deps.Balances, deps.Reports, log)
	inv.Get("/balances", balanceHandler.List)
	inv.Get("/balances/export", balanceHandler.Export)

	// Entidades que se reflejan como nodos
	crud := []struct {
		path string
		h    crudHandler
	}{
		{"/warehouses", NewWarehouseHandler(deps.WarehouseUC, log)},
		{"/locations", NewLocationHandler(deps.LocationUC, log)},
		{"/suppliers", NewSupplierHandler(deps.SupplierUC, log)},
		{"/customers", NewCustomerHandler(deps.CustomerUC, log)},
	}
	for _, r := range crud {
		g := api.Group(r.path)
		g.Post("/", canWrite, r.h.Create)
		g.Get("/", r.h.List)
		g.Get("/:id", r.h.GetByID)
		g.Put("/:id", canWrite, r.h.Update)
		g.Delete("/:id", canWrite, r.h.Delete)
	}
}

type crudHandler interface {
	Create(c *fiber.Ctx) error
	List(c *fiber.Ctx) error
	GetByID(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}
