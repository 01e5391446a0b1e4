// Package kernel assembles the HTTP handler: global middleware, services,
// controllers and routes.
package kernel

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storerating/app/controllers"
	"github.com/shashiranjanraj/storerating/app/repositories"
	"github.com/shashiranjanraj/storerating/app/routes"
	"github.com/shashiranjanraj/storerating/app/services"
	"github.com/shashiranjanraj/storerating/config"
	"github.com/shashiranjanraj/storerating/pkg/auth"
	"github.com/shashiranjanraj/storerating/pkg/cache"
	"github.com/shashiranjanraj/storerating/pkg/event"
	"github.com/shashiranjanraj/storerating/pkg/logger"
	"github.com/shashiranjanraj/storerating/pkg/metrics"
	"github.com/shashiranjanraj/storerating/pkg/middleware"
	"github.com/shashiranjanraj/storerating/pkg/reqid"
	"github.com/shashiranjanraj/storerating/pkg/response"
	"github.com/shashiranjanraj/storerating/pkg/router"
)

// Deps are the long-lived resources the kernel wires into the app.
type Deps struct {
	DB *gorm.DB
	// Cache backs token revocation. Defaults to an in-memory store.
	Cache cache.Store
	// Events receives domain events. Defaults to a dispatcher with the
	// metrics and logging listeners attached.
	Events *event.Dispatcher
}

type HTTPKernel struct {
	router *router.Router
}

func NewHTTPKernel(deps Deps) *HTTPKernel {
	if deps.Cache == nil {
		deps.Cache = cache.NewMemory()
	}
	if deps.Events == nil {
		deps.Events = NewEvents()
	}

	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics, outermost for accurate total latency
	//  2. Request ID, injected before anything logs
	//  3. Logger, tags the request logger with request_id
	//  4. Recovery, catches panics and logs them with the request id
	//  5. CORS
	//  6. Rate limiter, rejects abusers early
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(config.RateLimitPerMinute(), time.Minute, config.TrustedProxies()...))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Handle("/metrics", "metrics", metrics.Handler())

	revocations := auth.NewRevocations(deps.Cache)

	users := repositories.NewUserRepository(deps.DB)
	stores := repositories.NewStoreRepository(deps.DB)
	ratings := repositories.NewRatingRepository(deps.DB)

	routes.RegisterAPI(r, routes.Controllers{
		Auth:   controllers.NewAuthController(services.NewAuthService(users, revocations, deps.Events)),
		Admin:  controllers.NewAdminController(services.NewAdminService(users, stores, ratings, deps.Events)),
		Owner:  controllers.NewOwnerController(services.NewOwnerService(stores, ratings, deps.Events)),
		User:   controllers.NewUserController(services.NewRatingService(stores, ratings, deps.Events)),
		Health: controllers.NewHealthController(deps.DB),
	}, middleware.Authenticate(revocations, users))

	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Router exposes the route table (route:list).
func (k *HTTPKernel) Router() *router.Router {
	return k.router
}

// NewEvents returns a dispatcher that counts every domain event in
// Prometheus and logs it.
func NewEvents() *event.Dispatcher {
	d := event.NewDispatcher()
	d.ListenAll(func(ctx context.Context, e event.Event) {
		metrics.DomainEvents.WithLabelValues(e.Name).Inc()

		args := make([]any, 0, 2+2*len(e.Fields))
		args = append(args, "event", e.Name)
		for k, v := range e.Fields {
			args = append(args, k, v)
		}
		logger.WithCtx(ctx).Info("domain event", args...)
	})
	return d
}
