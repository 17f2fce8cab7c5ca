package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/cache"
	"ayana_shop/internal/config"
	"ayana_shop/internal/database"
	"ayana_shop/internal/handlers"
	"ayana_shop/internal/metrics"
	"ayana_shop/internal/middleware"
	"ayana_shop/internal/repository"
	"ayana_shop/internal/routes"
	"ayana_shop/internal/services"
	"ayana_shop/internal/views"
)

type application struct {
	router   *gin.Engine
	job      *services.InactivityMailJob
	accounts *services.AccountService
}

// wire assemble dépôts, services et handlers. Elastic, MinIO, Scylla et Stripe sont optionnels.
func wire(cfg config.Config, clients *database.Clients, log *logrus.Logger) (*application, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	db, rdb := clients.Postgres, clients.Redis
	clock := services.Clock(time.Now)
	m := metrics.New()

	// Dépôts
	products := repository.NewProductRepository(db)
	orders := repository.NewOrderRepository(db)
	payments := repository.NewPaymentRepository(db)
	sales := repository.NewSalesRepository(db)
	discounts := repository.NewDiscountRepository(db)
	subs := repository.NewSubscriptionRepository(db)
	reports := repository.NewReportRepository(db)
	users := repository.NewUserRepository(db)

	// Adaptateurs optionnels, laissés à nil (interface) s'ils ne sont pas configurés
	var index services.ProductIndex
	if clients.Elastic != nil {
		index = services.NewElasticIndex(clients.Elastic, cfg.Elastic.Index)
	}
	var storage services.ObjectStorage
	if clients.MinIO != nil {
		storage = services.NewMinIOStorage(clients.MinIO, cfg.MinIO.UseSSL)
	}
	var gateway services.PaymentGateway
	if cfg.Stripe.SecretKey != "" {
		gateway = services.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.Currency)
		log.Info("✅ Stripe initialisé")
	} else {
		log.Warn("⚠️ Clé Stripe absente, paiement par carte désactivé")
	}
	var auditor services.Auditor = services.LogAuditor{Log: log}
	if clients.Scylla != nil {
		scylla, err := services.NewScyllaAuditor(clients.Scylla, log)
		if err != nil {
			log.WithError(err).Warn("⚠️ Table d'audit indisponible, audit dans les logs")
		} else {
			auditor = scylla
		}
	}

	// Services
	emails := services.NewEmailService(services.NewSMTPMailer(cfg.SMTP), cache.NewVerificationCodes(rdb), m.MailsSent, log)
	carts := services.NewCartService(cache.NewCartStore(rdb), products)
	verifier := services.NewDiscountVerifierProxy(services.NewDBDiscountVerifier(discounts, log), cache.NewDiscountCache(rdb), log)
	catalog := services.NewCatalogService(products, index, log)
	checkout := services.NewCheckoutService(services.CheckoutDeps{
		Carts:    carts,
		Orders:   orders,
		Payments: payments,
		Sales:    sales,
		Verifier: verifier,
		Gateway:  gateway,
		Emails:   emails,
		Clock:    clock,
		Placed:   m.OrdersPlaced,
		Log:      log,
	})
	orderSvc := services.NewOrderService(orders, payments, sales, clock, log)
	subSvc := services.NewSubscriptionService(subs, payments, clock, log)
	editor := services.NewProductEditor(products, index, storage, cfg.MinIO.ImageBucket, auditor, log)
	reportSvc := services.NewReportService(services.NewReportFactory(sales, clock), reports, storage,
		cfg.MinIO.ReportBucket, auditor, clock, log)
	accounts := services.NewAccountService(users, cache.NewLoginAttempts(rdb), emails, cfg.JWTSecret, clock, log)
	customers := services.NewCustomerService(users, clock, cfg.InactivityMail.After)
	job := services.NewInactivityMailJob(customers, emails, cfg.InactivityMail.Schedule, cfg.BaseURL, log)

	// Handlers
	secure := cfg.IsProduction()
	view := handlers.NewView(handlers.NewFlash([]byte(cfg.SessionSecret), secure), log)
	cart := handlers.NewCartHandler(view, carts, checkout)
	h := routes.Handlers{
		View:     view,
		Home:     handlers.NewHomeHandler(view, catalog, orderSvc),
		Products: handlers.NewProductHandler(view, catalog, editor, log),
		Cart:     cart,
		Payment:  handlers.NewPaymentHandler(view, cart, checkout, orderSvc, subSvc, accounts, cfg.Company, log),
		Orders:   handlers.NewOrderHandler(view, orderSvc),
		Reports:  handlers.NewReportHandler(view, reportSvc),
		Account:  handlers.NewAccountHandler(view, accounts, secure, log),
	}
	if handlers.SetupProviders(cfg, log) {
		h.External = handlers.NewExternalLoginHandler(view, accounts, secure, log)
	}

	tmpl, err := views.Templates()
	if err != nil {
		return nil, err
	}

	router := routes.New(h, routes.Options{
		JWTSecret:   []byte(cfg.JWTSecret),
		CORSOrigins: cfg.CORSOrigins,
		Templates:   tmpl,
		Metrics:     m,
		Auditor:     auditor,
		Limiter:     middleware.NewIPRateLimiter(middleware.IdentityRate, middleware.IdentityBurst),
		Health:      health(clients),
		Log:         log,
	})

	return &application{router: router, job: job, accounts: accounts}, nil
}

func health(clients *database.Clients) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		status := gin.H{"postgres": "ok", "redis": "ok"}
		code := http.StatusOK
		if err := clients.Postgres.PingContext(ctx); err != nil {
			status["postgres"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		if err := clients.Redis.Ping(ctx).Err(); err != nil {
			status["redis"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}
