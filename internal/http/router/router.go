package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"service-rider-platform/internal/auth"
	"service-rider-platform/internal/http/handlers"
	mw "service-rider-platform/internal/http/middleware"
	"service-rider-platform/internal/http/middleware/ratelimit"
	"service-rider-platform/internal/logx"
)

const defaultRequestTimeout = 15 * time.Second

// Deps are the handlers and settings the router mounts.
type Deps struct {
	Logger         logx.Logger
	Base           *handlers.Handlers
	Riders         *handlers.RiderHandler
	Deliveries     *handlers.DeliveryHandler
	Transitions    *handlers.TransitionHandler
	RateLimit      *ratelimit.Middleware
	JWTSecret      string
	RequestTimeout time.Duration
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = logx.Nop()
	}
	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	limiter := d.RateLimit
	if limiter == nil {
		limiter = ratelimit.New(logger, nil, nil)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(mw.Observability(logger, nil))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.NotFound(d.Base.NotFound)
	r.MethodNotAllowed(d.Base.MethodNotAllowed)

	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(d.JWTSecret, logger))
		r.Use(limiter.Handler())

		// long-lived, so outside the request timeout
		r.Get("/deliveries/stream", d.Deliveries.Stream)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(timeout))

			r.Get("/deliveries/new", d.Deliveries.New)
			r.Get("/deliveries/active", d.Deliveries.Active)
			r.Get("/deliveries/completed", d.Deliveries.Completed)
			r.Get("/orders/{orderID}/deliveries", d.Deliveries.ForOrder)

			r.Route("/deliveries/{orderID}/{supplierID}/transitions", func(r chi.Router) {
				r.Post("/", d.Transitions.Apply)
				r.Get("/", d.Transitions.History)
			})

			r.Route("/riders", func(r chi.Router) {
				r.Get("/", d.Riders.List)
				r.Get("/{id}", d.Riders.GetByID)
				r.With(mw.RequireRole(auth.RoleAdmin)).Post("/", d.Riders.Create)
				r.With(mw.RequireRole(auth.RoleAdmin)).Patch("/", d.Riders.Update)
			})
		})
	})

	return r
}
