package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/documents"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Documents *documents.DocumentUseCase
	Reports   *documents.ReportUseCase
	Exports   *documents.ExportUseCase
	Employees *documents.EmployeeUseCase
	Logger    *logger.Logger
	JWTSecret string
}

// Router registra las rutas de la API. Todas requieren Bearer Token de un empleado activo.
//   - storekeeper: entradas, salidas y cambios de estado.
//   - director: inventarios, reportes de ocupación y exportaciones.
//   - ambos: consultas.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret), RequireActiveEmployee(deps.Employees))

	readers := RequireRole(entity.RoleDirector, entity.RoleStorekeeper)
	storekeeper := RequireRole(entity.RoleStorekeeper)
	director := RequireRole(entity.RoleDirector)

	employeeHandler := NewEmployeeHandler(deps.Employees, log)
	api.Get("/me", employeeHandler.Me)

	docs := NewDocumentHandler(deps.Documents, deps.Exports, log)

	// Entradas de mercancía
	receipts := api.Group("/goods-receipts")
	receipts.Post("/", storekeeper, docs.Create(entity.KindGoodsReceipt))
	receipts.Get("/", readers, docs.List(entity.KindGoodsReceipt))
	receipts.Get("/:id", readers, docs.Get(entity.KindGoodsReceipt))
	receipts.Post("/:id/lines", storekeeper, docs.AddLine(entity.KindGoodsReceipt))
	receipts.Put("/:id/assign-locations", storekeeper, docs.AssignLocations)
	receipts.Put("/:id/lines/:lineId/location", storekeeper, docs.AssignLocation)

	// Salidas de mercancía
	issues := api.Group("/goods-issues")
	issues.Post("/", storekeeper, docs.Create(entity.KindGoodsIssue))
	issues.Get("/", readers, docs.List(entity.KindGoodsIssue))
	issues.Get("/:id", readers, docs.Get(entity.KindGoodsIssue))
	issues.Post("/:id/lines", storekeeper, docs.AddLine(entity.KindGoodsIssue))

	// Documentos de foto del libro
	inventories := api.Group("/inventory-documents")
	inventories.Post("/", director, docs.Create(entity.KindInventory))
	inventories.Get("/", readers, docs.List(entity.KindInventory))
	inventories.Get("/:id", readers, docs.Get(entity.KindInventory))

	reports := api.Group("/storage-reports")
	reports.Post("/", director, docs.Create(entity.KindStorageReport))
	reports.Get("/", readers, docs.List(entity.KindStorageReport))
	reports.Get("/:id", readers, docs.Get(entity.KindStorageReport))

	// Cualquier tipo
	all := api.Group("/documents")
	all.Get("/", readers, docs.List(""))
	all.Get("/export.xlsx", director, docs.ExportXLSX)
	all.Get("/:id", readers, docs.Get(""))
	all.Get("/:id/pdf", director, docs.PDF)
	all.Put("/:id/status", storekeeper, docs.Transition)

	// Libro de saldos
	inv := NewInventoryHandler(deps.Reports, deps.Exports, log)
	invGroup := api.Group("/inventory")
	invGroup.Get("/balances", readers, inv.Balances)
	invGroup.Get("/low-stock", readers, inv.LowStock)
	invGroup.Get("/frequent-products", readers, inv.FrequentProducts)
	invGroup.Get("/racks", readers, inv.Racks)
	invGroup.Get("/export.xlsx", director, inv.ExportXLSX)
}
