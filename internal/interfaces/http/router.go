package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Vitrina-api/internal/application/auth"
	"github.com/jhoicas/Vitrina-api/internal/application/billing"
	"github.com/jhoicas/Vitrina-api/internal/application/sales"
	"github.com/jhoicas/Vitrina-api/internal/application/store"
	"github.com/jhoicas/Vitrina-api/internal/application/usecase"
	"github.com/jhoicas/Vitrina-api/internal/domain/subscription"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	TenantUC   *usecase.TenantUseCase
	ProductUC  *usecase.ProductUseCase
	SupplierUC *usecase.SupplierUseCase
	CustomerUC *usecase.CustomerUseCase
	CampaignUC *usecase.CampaignUseCase
	ReportUC   *usecase.ReportUseCase
	SalesUC    *sales.UseCase
	BookletUC  *sales.BookletUseCase
	StoreUC    *store.UseCase
	BillingUC  *billing.UseCase
	Events     eventParser
	JWTSecret  string
}

// Router registra las rutas de la API.
//
// Tres superficies:
//   - Pública: auth, vitrina por slug, visitas y el webhook de facturación.
//   - Protegida starter: productos, proveedores, ventas y reportes.
//   - Protegida premium: clientes, campañas, cuotas y gestión de la vitrina.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Vitrina pública por slug (anónimo)
	storeHandler := NewStoreHandler(deps.StoreUC)
	api.Get("/s/:slug", storeHandler.PublicBySlug)
	api.Post("/s/:slug/visit", storeHandler.RegisterVisit)

	// Webhook de facturación (público, autenticado por firma)
	billingHandler := NewBillingHandler(deps.BillingUC, deps.Events)
	api.Post("/billing/webhook", billingHandler.Webhook)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Cuenta (protegido, sin gating: siempre accesible aunque la suscripción venza)
	tenantHandler := NewTenantHandler(deps.TenantUC)
	protected.Get("/me", tenantHandler.Me)
	protected.Patch("/me/tutorial", tenantHandler.Tutorial)
	protected.Get("/me/entitlement", billingHandler.Entitlement)

	// Billing (protegido, sin gating: un tenant vencido debe poder suscribirse)
	billingGroup := protected.Group("/billing")
	billingGroup.Post("/subscribe", billingHandler.Subscribe)
	billingGroup.Post("/portal", billingHandler.Portal)

	// Products (protegido, starter)
	products := protected.Group("/products", RequireFeature(subscription.FeatureProducts))
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Suppliers (protegido, starter)
	suppliers := protected.Group("/suppliers", RequireFeature(subscription.FeatureSuppliers))
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Sales (protegido, starter; el plan de cuotas dentro de la venta exige premium
	// y lo valida el caso de uso)
	saleHandler := NewSaleHandler(deps.SalesUC, deps.BookletUC)
	salesGroup := protected.Group("/sales", RequireFeature(subscription.FeatureMovements))
	salesGroup.Post("/", saleHandler.Create)
	// El carné de pagos solo existe para ventas a cuotas, que son premium.
	salesGroup.Get("/:id/booklet", RequireFeature(subscription.FeatureInstallments), saleHandler.Booklet)

	// Reports (protegido, starter)
	reports := protected.Group("/reports", RequireFeature(subscription.FeatureReports))
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/summary", reportHandler.Summary)

	// Customers (protegido, premium)
	customers := protected.Group("/customers", RequireFeature(subscription.FeatureCustomers))
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Get("/:id/installments", saleHandler.ListInstallmentsByCustomer)

	// Installments (protegido, premium)
	installments := protected.Group("/installments", RequireFeature(subscription.FeatureInstallments))
	installments.Post("/:id/pay", saleHandler.PayInstallment)

	// Campaigns (protegido, premium)
	campaigns := protected.Group("/campaigns", RequireFeature(subscription.FeatureCampaigns))
	campaignHandler := NewCampaignHandler(deps.CampaignUC)
	campaigns.Post("/", campaignHandler.Create)
	campaigns.Get("/", campaignHandler.List)
	campaigns.Get("/:id", campaignHandler.GetByID)
	campaigns.Put("/:id", campaignHandler.Update)
	campaigns.Delete("/:id", campaignHandler.Delete)

	// Store management (protegido, premium)
	storeGroup := protected.Group("/store", RequireFeature(subscription.FeatureStorefront))
	storeGroup.Get("/", storeHandler.Mine)
	storeGroup.Put("/", storeHandler.Upsert)
	storeGroup.Get("/stats", storeHandler.Stats)
}
