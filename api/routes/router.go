package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lakeshoremuseum/museum-backend/api/controllers"
	"github.com/lakeshoremuseum/museum-backend/api/middleware"
	authsvc "github.com/lakeshoremuseum/museum-backend/internal/auth"
	checkoutsvc "github.com/lakeshoremuseum/museum-backend/internal/checkout"
	"github.com/lakeshoremuseum/museum-backend/internal/giftshop"
	"github.com/lakeshoremuseum/museum-backend/internal/membership"
	"github.com/lakeshoremuseum/museum-backend/internal/receipts"
	"github.com/lakeshoremuseum/museum-backend/internal/tickets"
	"github.com/lakeshoremuseum/museum-backend/pkg/config"
	"github.com/lakeshoremuseum/museum-backend/pkg/db"
	"github.com/lakeshoremuseum/museum-backend/pkg/logger"
	pkgredis "github.com/lakeshoremuseum/museum-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *db.Client
	Redis       *pkgredis.Client
	Metrics     prometheus.Gatherer
	AuthService authsvc.Service
	Checkout    checkoutsvc.Service
	Tickets     *tickets.Repository
	GiftShop    *giftshop.Repository
	Memberships *membership.Repository
	Receipts    *receipts.Repository
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	now := time.Now

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.Login(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg), middleware.Idempotency(deps.Redis, logg)).
			Post("/register", controllers.Register(deps.AuthService, logg))
		r.With(middleware.RequireAuth(cfg.JWT, logg)).
			Get("/me", controllers.Me(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ticket_types", controllers.ListTicketTypes(deps.Tickets, logg))
		r.Get("/gift_products", controllers.ListGiftProducts(deps.GiftShop, logg))
		r.Get("/memberships/plans", controllers.ListMembershipPlans(deps.Memberships, logg))

		r.With(middleware.RequireAuth(cfg.JWT, logg)).
			Get("/memberships/user/{userID}", controllers.GetUserMemberships(deps.Memberships, logg, now))

		r.With(middleware.RequireAuth(cfg.JWT, logg)).
			Get("/receipts", controllers.ListReceipts(deps.Receipts, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg.JWT, logg))
			r.Post("/cart/quote", controllers.QuoteCart(deps.Checkout, logg))
			r.Get("/receipts/{receiptID}", controllers.GetReceipt(deps.Receipts, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Idempotency(deps.Redis, logg))
				r.Post("/transactions/gift-shop-checkout", controllers.GiftShopCheckout(deps.Checkout, logg))
				r.Post("/transactions/combined-checkout", controllers.CombinedCheckout(deps.Checkout, logg))
				r.Post("/transactions/membership-checkout", controllers.MembershipCheckout(deps.Checkout, logg))
			})
		})
	})

	return r
}
