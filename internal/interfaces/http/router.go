package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/pkg/jwt"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	PricingUC  *usecase.PricingUseCase
	JobCostUC  *usecase.JobCostUseCase
	OrderUC    *usecase.OrderUseCase
	OrderDocUC *usecase.OrderDocumentUseCase
	InsightUC  *usecase.InsightUseCase
	JWTSecret  string
	Logger     *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", LoggerMiddleware(deps.Logger))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (Bearer Token con company_id y rol)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole())

	admin := RequireRole(jwt.RoleAdmin)
	sales := RequireRole(jwt.RoleAdmin, jwt.RoleAdvisor)
	purchasing := RequireRole(jwt.RoleAdmin, jwt.RoleBuyer)
	lineEditors := RequireRole(jwt.RoleAdmin, jwt.RoleAdvisor, jwt.RoleBuyer)

	protected.Post("/users", admin, authHandler.CreateUser)

	// Precios
	pricingHandler := NewPricingHandler(deps.PricingUC)
	protected.Get("/parts/:id/price", pricingHandler.Quote)
	protected.Get("/parts/:id/prices", pricingHandler.PriceSheet)

	// Costeo de plasma
	jobHandler := NewJobHandler(deps.JobCostUC)
	protected.Post("/jobs/calculate", sales, jobHandler.Calculate)

	// Órdenes
	orderHandler := NewOrderHandler(deps.OrderUC, deps.OrderDocUC)
	orders := protected.Group("/orders")
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/pdf", orderHandler.Document)
	orders.Post("/:id/lines", lineEditors, orderHandler.AddLine)
	orders.Patch("/:id/lines/:lineId", lineEditors, orderHandler.UpdateLine)
	orders.Delete("/:id/lines/:lineId", lineEditors, orderHandler.RemoveLine)
	orders.Post("/:id/lines/:lineId/warranty", sales, orderHandler.ToggleWarranty)
	orders.Post("/:id/lines/:lineId/core-returned", sales, orderHandler.ToggleCoreReturned)
	orders.Post("/:id/lines/:lineId/receive", purchasing, orderHandler.Receive)
	orders.Post("/:id/invoice", sales, orderHandler.Invoice)
	orders.Post("/:id/close", lineEditors, orderHandler.Close)
	orders.Post("/:id/recalculate", lineEditors, orderHandler.Recalculate)

	// Devoluciones y garantías
	insightHandler := NewInsightHandler(deps.InsightUC)
	protected.Get("/returns/:id/insight", purchasing, insightHandler.ReturnInsight)
	protected.Get("/warranty-claims/:id/insight", purchasing, insightHandler.WarrantyClaimInsight)
	protected.Get("/insights/returns", purchasing, insightHandler.ReturnsReport)
	protected.Get("/insights/warranty-claims", purchasing, insightHandler.WarrantyClaimsReport)
}
