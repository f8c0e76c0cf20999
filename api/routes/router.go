package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/pawhaven-backend/api/controllers"
	"github.com/angelmondragon/pawhaven-backend/api/middleware"
	"github.com/angelmondragon/pawhaven-backend/internal/adoptions"
	"github.com/angelmondragon/pawhaven-backend/internal/auth"
	"github.com/angelmondragon/pawhaven-backend/internal/entities"
	"github.com/angelmondragon/pawhaven-backend/internal/pets"
	"github.com/angelmondragon/pawhaven-backend/internal/users"
	"github.com/angelmondragon/pawhaven-backend/pkg/config"
	"github.com/angelmondragon/pawhaven-backend/pkg/logger"
	"github.com/angelmondragon/pawhaven-backend/pkg/metrics"
	"github.com/angelmondragon/pawhaven-backend/pkg/redis"
)

// Params carries everything the router wires into handlers. Redis, Registry
// and Policy are optional.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    *redis.Client
	Registry *prometheus.Registry
	Policy   middleware.Policy

	Auth      auth.Service
	Users     users.Service
	Entities  entities.Service
	Pets      pets.Service
	Adoptions adoptions.Service
}

func NewRouter(p Params) http.Handler {
	cfg, logg := p.Config, p.Logger

	registry := p.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	policy := p.Policy
	if policy == nil {
		policy = middleware.AllowAll
	}

	checks := map[string]controllers.Pinger{"db": p.DB}
	var rateStore middleware.RateLimitStore
	if p.Redis != nil {
		checks["redis"] = p.Redis
		rateStore = p.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(metrics.NewHTTPMetrics(registry)),
	)

	loginPolicy := middleware.AuthRateLimitPolicy{
		Name:       "login",
		Window:     cfg.AuthRateLimit.LoginWindow,
		IPLimit:    cfg.AuthRateLimit.LoginIPLimit,
		EmailLimit: cfg.AuthRateLimit.LoginEmailLimit,
	}
	signupPolicy := middleware.AuthRateLimitPolicy{
		Name:       "signup",
		Window:     cfg.AuthRateLimit.SignupWindow,
		IPLimit:    cfg.AuthRateLimit.SignupIPLimit,
		EmailLimit: cfg.AuthRateLimit.SignupEmailLimit,
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, checks, logg))
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(signupPolicy, rateStore, logg)).Post("/signup", controllers.AuthSignup(p.Auth, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.AuthLogin(p.Auth, logg))
			r.With(middleware.RequireAuth(logg)).Get("/me", controllers.AuthMe(p.Auth, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.UsersList(p.Users, logg))
			r.Get("/user/{userId}", controllers.UserEntities(p.Users, logg))
		})

		r.Route("/entities", func(r chi.Router) {
			r.Get("/", controllers.EntitiesList(p.Entities, logg))
			r.With(middleware.Authorize(policy, middleware.ActionEntityDelete, logg)).Delete("/", controllers.EntitiesDelete(p.Entities, logg))
			r.Get("/{userId}", controllers.EntitiesByUser(p.Entities, logg))
		})

		r.Route("/pets", func(r chi.Router) {
			r.Get("/", controllers.PetsSearch(p.Pets, logg))
			r.With(middleware.Authorize(policy, middleware.ActionPetCreate, logg)).Post("/", controllers.PetsCreate(p.Pets, logg))
			r.Get("/user/{userId}", controllers.PetsByUser(p.Pets, logg))
			r.Get("/{id}", controllers.PetsGet(p.Pets, logg))
			r.With(middleware.Authorize(policy, middleware.ActionPetUpdate, logg)).Put("/{id}", controllers.PetsUpdate(p.Pets, logg))
			r.With(middleware.Authorize(policy, middleware.ActionPetDelete, logg)).Delete("/{id}", controllers.PetsDelete(p.Pets, logg))
		})

		r.Route("/adoptions", func(r chi.Router) {
			r.Get("/", controllers.AdoptionsList(p.Adoptions, logg))
			r.With(middleware.Authorize(policy, middleware.ActionAdoptionSubmit, logg)).Post("/", controllers.AdoptionsSubmit(p.Adoptions, logg))
			r.With(middleware.Authorize(policy, middleware.ActionAdoptionUpdate, logg)).Patch("/{id}/status", controllers.AdoptionsUpdateStatus(p.Adoptions, logg))
		})
	})

	return r
}
