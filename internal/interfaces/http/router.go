package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/analytics"
	"github.com/jhoicas/Bodega-api/internal/application/auth"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/packing"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockChange *inventory.StockChangeUseCase
	Ledger      *inventory.LedgerUseCase
	Sync        *inventory.SyncUseCase
	TxUC        *usecase.TransactionUseCase
	ApplyScan   *packing.ApplyScanUseCase
	ImportUC    *packing.ImportUseCase
	BoxRepo     repository.PackingBoxRepository
	BatchUC     *usecase.BatchUseCase
	Report      *analytics.BatchReportUseCase
	AuthUC      *auth.UseCase
	JWTSecret   string
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
	supervisors := RequireRole(entity.RoleAdmin, entity.RoleSupervisor)

	// Inventario: cambios de stock, ledger, proyección y log (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockChange, deps.Ledger, deps.Sync, deps.TxUC)
	invGroup.Post("/stock-changes", inventoryHandler.ReportStockChange)
	invGroup.Get("/allocations", inventoryHandler.ListAllocations)
	invGroup.Get("/allocations/:location/:sku", inventoryHandler.GetAllocation)
	invGroup.Get("/expected/:location", inventoryHandler.ListExpected)
	invGroup.Get("/expected/:location/:sku", inventoryHandler.GetExpected)
	invGroup.Get("/transactions", inventoryHandler.ListTransactions)
	invGroup.Patch("/transactions/:id/status", supervisors, inventoryHandler.UpdateTransactionStatus)

	// Packing: escaneos e imports (protegido)
	packGroup := protected.Group("/packing")
	packingHandler := NewPackingHandler(deps.ApplyScan, deps.ImportUC, deps.BoxRepo)
	packGroup.Post("/scan", packingHandler.Scan)
	packGroup.Get("/batches/:batchId/boxes", packingHandler.ListBoxes)
	packGroup.Post("/batches/:batchId/import", supervisors, packingHandler.Import)
	packGroup.Post("/batches/:batchId/import-mapped", supervisors, packingHandler.ImportMapped)

	// Lotes de producción (protegido)
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC, deps.Report)
	batches.Post("/", supervisors, batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Post("/:id/activate", supervisors, batchHandler.Activate)
	batches.Post("/:id/complete", supervisors, batchHandler.Complete)
	batches.Get("/:id/packing-report", batchHandler.PackingReport)
}
