package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/apexitsupply/apex-backend/api/controllers"
	"github.com/apexitsupply/apex-backend/api/middleware"
	admin "github.com/apexitsupply/apex-backend/internal/admins"
	"github.com/apexitsupply/apex-backend/internal/contact"
	"github.com/apexitsupply/apex-backend/internal/newsletter"
	product "github.com/apexitsupply/apex-backend/internal/products"
	quote "github.com/apexitsupply/apex-backend/internal/quotes"
	"github.com/apexitsupply/apex-backend/pkg/config"
	"github.com/apexitsupply/apex-backend/pkg/db"
	"github.com/apexitsupply/apex-backend/pkg/logger"
	"github.com/apexitsupply/apex-backend/pkg/metrics"
	"github.com/apexitsupply/apex-backend/pkg/redis"
)

// Deps carries the infrastructure handles the router needs beyond the
// domain services.
type Deps struct {
	DB          db.Pinger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	deps Deps,
	productService product.Service,
	quoteService quote.Service,
	contactService contact.Service,
	newsletterService newsletter.Service,
	adminService admin.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewRateLimitPolicy(
		"login",
		cfg.RateLimit.LoginWindow,
		cfg.RateLimit.LoginIPLimit,
		cfg.RateLimit.LoginEmailLimit,
	)
	quotePolicy := middleware.NewRateLimitPolicy(
		"quote",
		cfg.RateLimit.QuoteWindow,
		cfg.RateLimit.QuoteIPLimit,
		cfg.RateLimit.QuoteEmailLimit,
	)
	newsletterPolicy := middleware.NewRateLimitPolicy(
		"newsletter",
		cfg.RateLimit.NewsletterWindow,
		cfg.RateLimit.NewsletterIPLimit,
		cfg.RateLimit.NewsletterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessChecks(deps)))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	// Public storefront surface.
	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(productService, logg))
		r.Get("/search", controllers.SearchProducts(productService, logg))
		r.Get("/categories", controllers.ListProductCategories(productService, logg))
		r.Get("/category/{category}", controllers.ListProductsByCategory(productService, logg))
		r.Get("/featured", controllers.ListFeaturedProducts(productService, logg))
		r.Get("/{productID}", controllers.GetProduct(productService, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.With(middleware.RateLimit(quotePolicy, deps.Redis, logg)).
			Post("/quote-request", controllers.SubmitQuoteRequest(quoteService, productService, logg))
		r.Post("/contact", controllers.SubmitContactMessage(contactService, logg))
		r.Post("/callback-request", controllers.SubmitCallbackRequest(contactService, logg))
		r.With(middleware.RateLimit(newsletterPolicy, deps.Redis, logg)).
			Post("/newsletter", controllers.SubscribeNewsletter(newsletterService, logg))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.With(middleware.RateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AdminLogin(adminService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.Idempotency(deps.Redis, logg))

			r.Get("/profile", controllers.AdminProfile(adminService, logg))
			r.Get("/dashboard", controllers.AdminDashboard(quoteService, productService, logg))

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateProduct(productService, logg))
				r.Patch("/{productID}", controllers.AdminUpdateProduct(productService, logg))
				r.Delete("/{productID}", controllers.AdminDeleteProduct(productService, logg))
			})

			r.Route("/quotes", func(r chi.Router) {
				r.Get("/", controllers.AdminListQuotes(quoteService, logg))
				r.Get("/{quoteID}", controllers.AdminGetQuote(quoteService, logg))
				r.Patch("/{quoteID}/status", controllers.AdminUpdateQuoteStatus(quoteService, logg))
				r.Delete("/{quoteID}", controllers.AdminDeleteQuote(quoteService, logg))
			})

			r.Get("/contact-messages", controllers.AdminListContactMessages(contactService, logg))

			r.Route("/subscribers", func(r chi.Router) {
				r.Get("/", controllers.AdminListSubscribers(newsletterService, logg))
				r.Get("/export", controllers.AdminExportSubscribers(newsletterService, logg))
			})
		})
	})

	return r
}

func readinessChecks(deps Deps) map[string]controllers.Pinger {
	checks := map[string]controllers.Pinger{
		"database": nil,
		"redis":    nil,
	}
	if deps.DB != nil {
		checks["database"] = deps.DB
	}
	if deps.Redis != nil {
		checks["redis"] = deps.Redis
	}
	return checks
}
