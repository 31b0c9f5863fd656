package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcsalazar/abasto-api/internal/application/analytics"
	"github.com/jcsalazar/abasto-api/internal/application/auth"
	"github.com/jcsalazar/abasto-api/internal/application/inventory"
	"github.com/jcsalazar/abasto-api/internal/application/ledger"
	"github.com/jcsalazar/abasto-api/internal/application/purchase"
	"github.com/jcsalazar/abasto-api/internal/application/request"
	"github.com/jcsalazar/abasto-api/internal/application/usecase"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	UnitUC      *usecase.UnitUseCase
	ItemUC      *usecase.ItemUseCase
	BudgetUC    *ledger.BudgetUseCase
	MovementUC  *ledger.MovementUseCase
	InventoryUC *inventory.UseCase
	PurchaseUC  *purchase.UseCase
	PDFUC       *purchase.PDFUseCase
	QuotationUC *purchase.QuotationUseCase
	RequestUC   *request.UseCase
	DashboardUC *analytics.DashboardUseCase
	StockRepo   repository.StockRepository
	MovRepo     repository.StockMovementRepository
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

	// Units
	units := protected.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Get("/", unitHandler.List)
	units.Get("/distribution-centers", unitHandler.ListDistributionCenters)
	units.Get("/:id", unitHandler.GetByID)
	units.Post("/", RequireCapability(ActionManageCatalog), unitHandler.Create)
	units.Put("/:id", RequireCapability(ActionManageCatalog), unitHandler.Update)

	// Items
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/", RequireCapability(ActionManageCatalog), itemHandler.Create)
	items.Put("/:id", RequireCapability(ActionManageCatalog), itemHandler.Update)

	// Budgets
	budgets := protected.Group("/budgets")
	budgetHandler := NewBudgetHandler(deps.BudgetUC)
	budgets.Post("/", RequireCapability(ActionManageBudget), budgetHandler.Create)
	budgets.Post("/income", RequireCapability(ActionManageBudget), budgetHandler.RecordIncome)
	budgets.Post("/debit", RequireCapability(ActionManageBudget), budgetHandler.ManualDebit)
	budgets.Get("/:unit_id/available", budgetHandler.Available)
	budgets.Get("/:unit_id", budgetHandler.ListByUnit)

	// Stock y movimientos
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.MovementUC, deps.StockRepo, deps.MovRepo)
	stock.Post("/movements", RequireCapability(ActionMoveStock), stockHandler.RegisterMovement)
	stock.Get("/movements", stockHandler.ListMovements)
	stock.Get("/:unit_id", stockHandler.ListByUnit)

	// Inventario individualizado
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Post("/", RequireCapability(ActionManageInventory), inventoryHandler.MoveToInventory)
	inv.Post("/:id/return", RequireCapability(ActionManageInventory), inventoryHandler.ReturnToStock)
	inv.Post("/:id/events", RequireCapability(ActionManageInventory), inventoryHandler.RegisterEvent)
	inv.Get("/:id/events", inventoryHandler.ListEvents)
	inv.Get("/unit/:unit_id", inventoryHandler.ListByUnit)

	// Compras
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.PDFUC)
	purchases.Post("/", RequireCapability(ActionManagePurchase), purchaseHandler.Create)
	purchases.Get("/unit/:unit_id", purchaseHandler.ListByUnit)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Get("/:id/pdf", purchaseHandler.GetOrderPDF)
	purchases.Put("/:id/status", RequireCapability(ActionManagePurchase), purchaseHandler.ChangeStatus)
	purchases.Put("/:id/items/:item_id/price", RequireCapability(ActionManagePurchase), purchaseHandler.SetItemPrice)
	purchases.Post("/:id/finalize", RequireCapability(ActionFinalizePurchase), purchaseHandler.Finalize)

	// Cotizaciones
	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	quotations.Post("/", RequireCapability(ActionManagePurchase), quotationHandler.Create)
	quotations.Post("/:id/responses", RequireCapability(ActionManagePurchase), quotationHandler.AddResponse)
	quotations.Get("/:id/responses", quotationHandler.ListResponses)
	quotations.Post("/responses/:response_id/select", RequireCapability(ActionManagePurchase), quotationHandler.Select)
	quotations.Post("/responses/:response_id/deselect", RequireCapability(ActionManagePurchase), quotationHandler.Deselect)

	// Solicitudes internas
	requests := protected.Group("/requests")
	requestHandler := NewRequestHandler(deps.RequestUC)
	requests.Post("/", RequireCapability(ActionCreateRequest), requestHandler.Create)
	requests.Get("/unit/:unit_id", requestHandler.ListByUnit)
	requests.Get("/cd/:unit_id", requestHandler.ListByCD)
	requests.Get("/:id", requestHandler.GetByID)
	requests.Put("/:id/status", RequireCapability(ActionManageRequest), requestHandler.ChangeStatus)
	requests.Post("/:id/approve", RequireCapability(ActionManageRequest), requestHandler.Approve)
	requests.Post("/:id/send", RequireCapability(ActionManageRequest), requestHandler.Send)
	requests.Post("/:id/receive", RequireCapability(ActionCreateRequest), requestHandler.Receive)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", RequireCapability(ActionViewDashboard), dashboardHandler.GetDashboard)
}
