package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/farmtofork-backend/api/controllers"
	"github.com/angelmondragon/farmtofork-backend/api/middleware"
	"github.com/angelmondragon/farmtofork-backend/api/responses"
	"github.com/angelmondragon/farmtofork-backend/internal/inventory"
	"github.com/angelmondragon/farmtofork-backend/internal/orders"
	"github.com/angelmondragon/farmtofork-backend/internal/products"
	"github.com/angelmondragon/farmtofork-backend/internal/users"
	"github.com/angelmondragon/farmtofork-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/farmtofork-backend/pkg/errors"
	"github.com/angelmondragon/farmtofork-backend/pkg/logger"
	"github.com/angelmondragon/farmtofork-backend/pkg/metrics"
)

type rateLimiterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Params carries everything the router wires into handlers. Redis and RateStore may be nil.
type Params struct {
	Config           *config.Config
	Logger           *logger.Logger
	DB               controllers.Pinger
	Redis            controllers.Pinger
	RateStore        rateLimiterStore
	Gatherer         prometheus.Gatherer
	HTTPMetrics      *metrics.HTTPMetrics
	UserService      users.Service
	ProductService   products.Service
	InventoryService inventory.Service
	OrderService     orders.Service
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "method not allowed"))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": p.DB,
			"redis":    p.Redis,
		}))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", controllers.UserRegister(p.UserService, logg))
			r.With(middleware.LoginRateLimit(cfg.AuthRateLimit, p.RateStore, logg)).
				Post("/login", controllers.UserLogin(p.UserService, logg))
			r.Get("/", controllers.UserList(p.UserService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(p.ProductService, logg))
			r.Post("/", controllers.ProductCreate(p.ProductService, logg))
			r.Get("/{id}", controllers.ProductGet(p.ProductService, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(p.InventoryService, logg))
			r.Post("/", controllers.InventoryAdd(p.InventoryService, logg))
			r.Get("/owner/{ownerId}", controllers.InventoryByOwner(p.InventoryService, logg))
			r.Put("/{id}", controllers.InventoryUpdate(p.InventoryService, logg))
			r.Delete("/{id}", controllers.InventoryDelete(p.InventoryService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderCreate(p.OrderService, logg))
			r.Get("/", controllers.OrderList(p.OrderService, logg))
			r.Get("/customer/{customerId}", controllers.OrderListByCustomer(p.OrderService, logg))
			r.Get("/{id}", controllers.OrderGet(p.OrderService, logg))
			r.Put("/{id}/status", controllers.OrderUpdateStatus(p.OrderService, logg))
			r.Delete("/{id}", controllers.OrderDelete(p.OrderService, logg))
		})
	})

	return r
}
