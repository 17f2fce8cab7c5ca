package routes

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/handlers"
	"ayana_shop/internal/logging"
	"ayana_shop/internal/metrics"
	"ayana_shop/internal/middleware"
	"ayana_shop/internal/services"
)

// Handlers contrôleurs montés sur le routeur
type Handlers struct {
	View     *handlers.View
	Home     *handlers.HomeHandler
	Products *handlers.ProductHandler
	Cart     *handlers.CartHandler
	Payment  *handlers.PaymentHandler
	Orders   *handlers.OrderHandler
	Reports  *handlers.ReportHandler
	Account  *handlers.AccountHandler
	External *handlers.ExternalLoginHandler // nil: pas de connexion externe
}

type Options struct {
	JWTSecret   []byte
	CORSOrigins []string
	Templates   *template.Template
	Metrics     *metrics.Metrics // nil: pas de /metrics
	Auditor     services.Auditor
	Limiter     *middleware.IPRateLimiter // nil: pas de limite sur Identity
	Health      gin.HandlerFunc
	Log         logrus.FieldLogger
}

// New routeur complet de la boutique
func New(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	RegisterRoutes(r, h, opts)
	return r
}

func RegisterRoutes(r *gin.Engine, h Handlers, opts Options) {
	if opts.Auditor == nil {
		opts.Auditor = services.LogAuditor{Log: opts.Log}
	}
	if opts.Templates != nil {
		r.SetHTMLTemplate(opts.Templates)
	}

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(logging.AccessLog(opts.Log))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", opts.Metrics.Handler())
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Authenticate(opts.JWTSecret, opts.Log))

	health := opts.Health
	if health == nil {
		health = func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) }
	}
	r.GET("/health", health)

	// Pages publiques
	r.GET("/", h.Home.Index)
	home := r.Group("/Home")
	{
		home.GET("/Index", h.Home.Index)
		home.GET("/Privacy", h.Home.Static("home_privacy.html"))
		home.GET("/Help", h.Home.Static("home_help.html"))
		home.GET("/DeliveryPolicy", h.Home.Static("home_delivery_policy.html"))
		home.GET("/AboutUs", h.Home.Static("home_about_us.html"))
		home.GET("/SignIn", h.Home.Static("home_sign_in.html"))
		home.GET("/Subscription", h.Home.Static("home_subscription.html"))
		home.GET("/CategoryView", h.Home.CategoryView)
		home.GET("/Error", h.Home.Error)
	}

	products := r.Group("/Products")
	{
		products.GET("", h.Products.Index)
		products.GET("/Index", h.Products.Index)
		products.GET("/Details/:id", h.Products.Details)
		products.GET("/SearchResult", h.Products.SearchResult)
		products.GET("/PopularSearches", h.Products.PopularSearches)
		products.GET("/Sort", h.Products.Sort)
	}

	// Employés uniquement
	staff := products.Group("", middleware.RequireEmployee)
	{
		staff.GET("/Create", h.Products.CreateForm)
		staff.POST("/Create", middleware.AuditFailures(opts.Auditor, "create", "product"), h.Products.Create)
		staff.GET("/Edit/:id", h.Products.EditForm)
		staff.POST("/Edit/:id", middleware.AuditFailures(opts.Auditor, "edit", "product"), h.Products.Edit)
		staff.POST("/EditNameAndPrice/:id", middleware.AuditFailures(opts.Auditor, "edit", "product"), h.Products.EditNameAndPrice)
		staff.GET("/Delete/:id", h.Products.DeleteForm)
		staff.POST("/Delete/:id", middleware.AuditFailures(opts.Auditor, "delete", "product"), h.Products.Delete)
	}

	reports := r.Group("/Reports", middleware.RequireEmployee)
	{
		reports.GET("", h.Reports.Index)
		reports.GET("/Index", h.Reports.Index)
		reports.GET("/CreateReport", middleware.AuditFailures(opts.Auditor, "generate", "report"), h.Reports.CreateReport)
	}

	// AddToCart gère lui-même les invités (vue d'erreur et non redirection)
	r.GET("/DtoRequests/AddToCart", h.Cart.AddToCart)

	// Clients connectés
	dto := r.Group("/DtoRequests", middleware.RequireAuth)
	{
		dto.GET("/Cart", h.Cart.Cart)
		dto.GET("/RemoveItem", h.Cart.RemoveItem)
		dto.GET("/ApplyDiscount", h.Cart.ApplyDiscount)
		dto.POST("/OrderCreate", h.Payment.OrderCreate)
		dto.GET("/ThankYou", h.Payment.ThankYou)
		dto.GET("/SubscriptionOrder", h.Payment.SubscriptionOrder)
		dto.POST("/SubscriptionCreate", h.Payment.SubscriptionCreate)
	}

	orders := r.Group("/Orders", middleware.RequireAuth)
	{
		orders.GET("/UserOrders", h.Orders.UserOrders)
		orders.POST("/Edit", h.Orders.Edit)
		orders.GET("/ActiveOrders", h.Orders.ActiveOrders)
		orders.POST("/CancelOrder", h.Orders.CancelOrder)
	}

	identity := r.Group("/Identity/Account")
	if opts.Limiter != nil {
		identity.Use(opts.Limiter.Middleware())
	}
	{
		identity.GET("/Register", h.Account.RegisterForm)
		identity.POST("/Register", h.Account.Register)
		identity.GET("/RegisterConfirmation", h.Account.RegisterConfirmationForm)
		identity.POST("/RegisterConfirmation", h.Account.RegisterConfirmation)
		identity.POST("/ResendCode", h.Account.ResendCode)
		identity.GET("/Login", h.Account.LoginForm)
		identity.POST("/Login", h.Account.Login)
		identity.POST("/Logout", h.Account.Logout)
		if h.External != nil {
			identity.GET("/ExternalLogin/:provider", h.External.Begin)
			identity.GET("/ExternalLogin/:provider/callback", h.External.Callback)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		h.View.Error(c, http.StatusNotFound, "Page not found.")
	})
}
