package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Marketplace-api/internal/application/auth"
	"github.com/jhoicas/Marketplace-api/internal/application/ledger"
	"github.com/jhoicas/Marketplace-api/internal/application/qa"
	"github.com/jhoicas/Marketplace-api/internal/application/usecase"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	LedgerUC    *ledger.LedgerUseCase
	CheckoutUC  *ledger.CheckoutUseCase
	ReportUC    *ledger.ReportUseCase
	QAUC        *qa.QAUseCase
	DashboardUC *usecase.DashboardUseCase
	OrderRepo   repository.OrderRepository
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

	// Catálogo (público: solo productos aprobados)
	productHandler := NewProductHandler(deps.ProductUC)
	api.Get("/catalog", productHandler.SearchCatalog)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; escritura solo vendedores)
	products := protected.Group("/products")
	products.Get("/:id", productHandler.GetByID)
	sellerProducts := products.Group("/", RequireRole(entity.RoleSeller, entity.RoleAdmin))
	sellerProducts.Post("/", productHandler.Create)
	sellerProducts.Get("/", productHandler.ListMine)
	sellerProducts.Put("/:id", productHandler.Update)
	sellerProducts.Delete("/:id", productHandler.Delete)

	// Inventory: libro de stock, alertas y reporte (vendedores y admin)
	invGroup := protected.Group("/inventory", RequireRole(entity.RoleSeller, entity.RoleAdmin))
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.ReportUC, deps.ProductUC)
	invGroup.Post("/deductions", inventoryHandler.Deduct)
	invGroup.Post("/additions", inventoryHandler.Add)
	invGroup.Post("/adjustments", inventoryHandler.Adjust)
	invGroup.Post("/reservations", inventoryHandler.Reserve)
	invGroup.Post("/releases", inventoryHandler.Release)
	invGroup.Get("/products/:id/ledger", inventoryHandler.GetLedgerByProduct)
	invGroup.Get("/products/:id/ledger/report", inventoryHandler.LedgerReport)
	invGroup.Get("/ledger", RequireRole(entity.RoleAdmin), inventoryHandler.GetRecent)
	invGroup.Get("/alerts", inventoryHandler.ListAlerts)
	invGroup.Post("/alerts/:id/ack", inventoryHandler.AcknowledgeAlert)

	// QA: flujo de aprobación de productos
	qaGroup := protected.Group("/qa")
	qaHandler := NewQAHandler(deps.QAUC)
	qaGroup.Post("/submissions", RequireRole(entity.RoleSeller), qaHandler.Submit)
	qaGroup.Post("/assessments/:id/sample", RequireRole(entity.RoleSeller), qaHandler.SubmitSample)
	qaGroup.Post("/assessments/:id/resubmit", RequireRole(entity.RoleSeller), qaHandler.Resubmit)
	qaGroup.Post("/assessments/:id/approve-for-sample", RequireRole(entity.RoleAdmin), qaHandler.ApproveForSample)
	qaGroup.Post("/assessments/:id/pass", RequireRole(entity.RoleAdmin), qaHandler.PassQualityCheck)
	qaGroup.Post("/assessments/:id/reject", RequireRole(entity.RoleAdmin), qaHandler.Reject)
	qaGroup.Post("/assessments/:id/request-revision", RequireRole(entity.RoleAdmin), qaHandler.RequestRevision)
	qaGroup.Get("/assessments", RequireRole(entity.RoleAdmin), qaHandler.ListByStatus)
	qaGroup.Get("/products/:id/assessment", RequireRole(entity.RoleSeller, entity.RoleAdmin), qaHandler.GetByProduct)

	// Orders: checkout y consulta (compradores)
	orders := protected.Group("/orders", RequireRole(entity.RoleBuyer))
	orderHandler := NewOrderHandler(deps.CheckoutUC, deps.OrderRepo)
	orders.Post("/checkout", orderHandler.Checkout)
	orders.Get("/", orderHandler.ListMine)
	orders.Get("/:id", orderHandler.GetByID)

	// Dashboard del vendedor
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", RequireRole(entity.RoleSeller), dashboardHandler.GetSellerDashboard)
}
