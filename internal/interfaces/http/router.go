package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Optica-api/internal/application/auth"
	"github.com/jhoicas/Optica-api/internal/application/expense"
	"github.com/jhoicas/Optica-api/internal/application/inventory"
	"github.com/jhoicas/Optica-api/internal/application/patient"
	"github.com/jhoicas/Optica-api/internal/application/sales"
	"github.com/jhoicas/Optica-api/internal/application/shift"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

// RouterDeps dependencias para registrar rutas.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ShiftUC       *shift.LedgerUseCase
	OrderUC       *sales.OrderUseCase
	PaymentUC     *sales.PaymentUseCase
	InventoryUC   *inventory.UseCase
	PurchaseUC    *inventory.PurchaseUseCase
	Replenishment *inventory.ReplenishmentUseCase
	ExpenseUC     *expense.UseCase
	PatientUC     *patient.UseCase
	JWTSecret     string
	MetricsPath   string // vacío = sin /metrics
}

// Router registra las rutas en la app Fiber. Auth pública; el resto protegido por JWT.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsPath != "" {
		app.Get(deps.MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	users := protected.Group("/users", RequirePermission(entity.PermUsersManage))
	users.Post("/", authHandler.Register)
	users.Get("/", authHandler.ListUsers)
	users.Get("/:id", authHandler.GetUser)
	users.Put("/:id/permissions", RequireRole(entity.RoleAdmin), authHandler.SetPermissions)

	shiftHandler := NewShiftHandler(deps.ShiftUC)
	shifts := protected.Group("/shifts")
	shifts.Post("/", shiftHandler.Start)
	shifts.Get("/", shiftHandler.List)
	shifts.Get("/current", shiftHandler.Current)
	shifts.Get("/:id", shiftHandler.Get)
	shifts.Post("/:id/pause", shiftHandler.Pause)
	shifts.Post("/:id/resume", shiftHandler.Resume)
	shifts.Post("/:id/end", shiftHandler.End)
	shifts.Get("/:id/summary", shiftHandler.Summary)
	shifts.Get("/:id/report", shiftHandler.Report)

	orderHandler := NewOrderHandler(deps.OrderUC, deps.PaymentUC)
	orders := protected.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.Find)
	orders.Get("/:id", orderHandler.Get)
	orders.Post("/:id/items", orderHandler.AddItem)
	orders.Put("/:id/items/:itemId", orderHandler.UpdateItem)
	orders.Delete("/:id/items/:itemId", orderHandler.RemoveItem)
	orders.Put("/:id/discount", RequirePermission(entity.PermOrdersDiscount), orderHandler.ApplyDiscount)
	orders.Put("/:id/status", orderHandler.ChangeStatus)
	orders.Post("/:id/abandon", RequirePermission(entity.PermOrdersAbandon), orderHandler.Abandon)
	orders.Post("/:id/payments", orderHandler.RecordPayment)
	orders.Get("/:id/payments", orderHandler.ListPayments)

	patientHandler := NewPatientHandler(deps.PatientUC)
	patients := protected.Group("/patients")
	patients.Post("/", patientHandler.Create)
	patients.Get("/", patientHandler.Search)
	patients.Get("/:id", patientHandler.Get)

	productHandler := NewProductHandler(deps.InventoryUC)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	invHandler := NewInventoryHandler(deps.InventoryUC, deps.Replenishment)
	inv := protected.Group("/inventory")
	inv.Get("/low-stock", invHandler.GetLowStock)
	inv.Post("/items", invHandler.CreateItem)
	inv.Get("/items", invHandler.ListItems)
	inv.Get("/items/:id", invHandler.GetItem)
	inv.Post("/items/:id/adjustments", invHandler.AdjustStock)
	inv.Get("/items/:id/movements", invHandler.ListMovements)

	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases := protected.Group("/purchase-orders")
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.Get)
	purchases.Post("/:id/receive", purchaseHandler.Receive)
	purchases.Post("/:id/cancel", purchaseHandler.Cancel)

	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses := protected.Group("/expenses")
	expenses.Post("/", expenseHandler.Record)
	expenses.Get("/", expenseHandler.List)
	expenses.Post("/categories", expenseHandler.CreateCategory)
	expenses.Get("/categories", expenseHandler.ListCategories)
}
