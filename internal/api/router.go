package api

import (
	"log/slog"
	"net/http"
	"time"

	_ "welfare-ledger/docs"
	"welfare-ledger/internal/api/handler"
	mw "welfare-ledger/internal/api/middleware"
	"welfare-ledger/internal/config"
	"welfare-ledger/internal/domain/account"
	"welfare-ledger/internal/domain/customer"
	"welfare-ledger/internal/domain/ledger"
	"welfare-ledger/internal/domain/loan"
	"welfare-ledger/internal/domain/seniority"
	"welfare-ledger/internal/domain/subscription"
	"welfare-ledger/internal/domain/trash"
	"welfare-ledger/internal/export"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Services bundles everything the HTTP layer talks to.
type Services struct {
	Accounts      account.Service
	Customers     customer.Service
	Loans         loan.LoanService
	Subscriptions subscription.Service
	Ledger        ledger.Service
	Seniority     seniority.Service
	Trash         trash.Service
	Export        export.Service
	Tokens        mw.TokenVerifier
	DeepLinks     handler.DeepLinkDeliverer
	BridgeSocket  http.Handler
}

func SetupRouter(svc Services, rateLimiter *mw.RateLimiterMiddleware, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, rateLimiter, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	authHandler := handler.NewAuthHandler(svc.Accounts, logger)
	bridgeHandler := handler.NewBridgeHandler(svc.DeepLinks, svc.BridgeSocket, logger)

	// The socket outlives any request timeout and binds to an account through its session token.
	router.Get("/bridge/ws", bridgeHandler.Connect)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5))
		r.Use(middleware.Timeout(60 * time.Second))

		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(mw.AuthMiddleware(cfg.Server.Auth, svc.Tokens, logger))

			r.Get("/auth/me", authHandler.Me)
			r.Put("/auth/password", authHandler.ChangePassword)

			setupCustomerRoutes(r, svc, logger)
			setupLoanRoutes(r, svc, logger)
			setupSubscriptionRoutes(r, svc, logger)
			setupAdminRoutes(r, svc, authHandler, bridgeHandler, logger)
		})
	})

	return router
}

func setupMiddleware(router *chi.Mux, rateLimiter *mw.RateLimiterMiddleware, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	if rateLimiter != nil {
		router.Use(rateLimiter.Middleware)
	}
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupCustomerRoutes(r chi.Router, svc Services, logger *slog.Logger) {
	h := handler.NewCustomerHandler(svc.Customers, svc.Trash, logger)
	subs := handler.NewSubscriptionHandler(svc.Subscriptions, svc.Trash, logger)

	r.Route("/customers", func(r chi.Router) {
		r.With(mw.RequireAdmin).Post("/", h.CreateCustomer)
		r.With(mw.RequireAdmin).Get("/", h.ListCustomers)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", h.GetCustomer)
			r.Get("/subscriptions/total", subs.CustomerTotal)
			r.With(mw.RequireAdmin).Put("/", h.UpdateCustomer)
			r.With(mw.RequireAdmin).Delete("/", h.DeleteCustomer)
		})
	})
}

func setupLoanRoutes(r chi.Router, svc Services, logger *slog.Logger) {
	h := handler.NewLoanHandler(svc.Loans, svc.Trash, logger)
	exports := handler.NewExportHandler(svc.Export, svc.Loans, logger)

	r.Route("/loans", func(r chi.Router) {
		r.With(mw.RequireAdmin).Post("/", h.CreateLoan)
		r.Get("/", h.ListLoans)
		r.Route("/{loanID}", func(r chi.Router) {
			r.Get("/", h.GetLoan)
			r.Get("/summary", h.Summary)
			r.Get("/installments", h.ListInstallments)
			r.Get("/statement.pdf", exports.LoanStatement)
			r.With(mw.RequireAdmin).Put("/", h.UpdateLoan)
			r.With(mw.RequireAdmin).Delete("/", h.DeleteLoan)
			r.With(mw.RequireAdmin).Post("/installments", h.RecordInstallment)
		})
	})
	r.With(mw.RequireAdmin).Delete("/installments/{installmentID}", h.DeleteInstallment)
}

func setupSubscriptionRoutes(r chi.Router, svc Services, logger *slog.Logger) {
	h := handler.NewSubscriptionHandler(svc.Subscriptions, svc.Trash, logger)

	r.Route("/subscriptions", func(r chi.Router) {
		r.Get("/", h.ListSubscriptions)
		r.Get("/{subscriptionID}", h.GetSubscription)
		r.With(mw.RequireAdmin).Post("/", h.RecordSubscription)
		r.With(mw.RequireAdmin).Delete("/{subscriptionID}", h.DeleteSubscription)
	})
}

func setupAdminRoutes(r chi.Router, svc Services, authHandler *handler.AuthHandler, bridgeHandler *handler.BridgeHandler, logger *slog.Logger) {
	entries := handler.NewDataEntryHandler(svc.Ledger, svc.Trash, logger)
	senior := handler.NewSeniorityHandler(svc.Seniority, logger)
	trashHandler := handler.NewTrashHandler(svc.Trash, logger)
	exports := handler.NewExportHandler(svc.Export, svc.Loans, logger)

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAdmin)

		r.Post("/admin/users", authHandler.CreateUser)
		r.Post("/admin/users/{accountID}/reset-password", authHandler.ResetPassword)

		r.Route("/data-entries", func(r chi.Router) {
			r.Post("/", entries.AddEntry)
			r.Get("/", entries.ListEntries)
			r.Get("/balance", entries.Balance)
			r.Get("/{entryID}", entries.GetEntry)
			r.Delete("/{entryID}", entries.DeleteEntry)
		})

		r.Route("/seniority", func(r chi.Router) {
			r.Get("/", senior.ListEntries)
			r.Post("/", senior.Enqueue)
			r.Get("/eligibility/{customerID}", senior.Eligibility)
			r.Put("/{entryID}/review", senior.Review)
			r.Delete("/{entryID}", senior.Remove)
		})

		r.Route("/trash/{kind}", func(r chi.Router) {
			r.Get("/", trashHandler.List)
			r.Post("/{id}/restore", trashHandler.Restore)
			r.Delete("/{id}", trashHandler.Purge)
		})

		r.Get("/exports/{dataset}", exports.Export)
		r.Post("/bridge/devices/{deviceID}/deeplinks", bridgeHandler.DeliverDeepLink)
	})
}
