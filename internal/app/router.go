package app

import (
	"net/http"

	"sprintboard/internal/config"
	"sprintboard/internal/handlers"
	"sprintboard/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Services struct {
	Auth       handlers.AuthService
	Workspaces handlers.WorkspaceService
	Sprints    handlers.SprintService
	Tasks      handlers.TaskService
	Health     handlers.HealthChecker
}

// NewRouter mounts the REST API under /api and the health check at /health.
func NewRouter(cfg *config.Config, svc Services) http.Handler {
	authHandler := handlers.NewAuthHandler(svc.Auth)
	workspaceHandler := handlers.NewWorkspaceHandler(svc.Workspaces)
	sprintHandler := handlers.NewSprintHandler(svc.Sprints)
	taskHandler := handlers.NewTaskHandler(svc.Tasks)
	healthHandler := handlers.HealthHandler{Repository: svc.Health, RepositoryType: cfg.Repository.Type}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if cfg.Server.RateLimit > 0 {
		r.Use(middleware.RateLimit(cfg.Server.RateLimit))
	}

	r.Get("/health", healthHandler.HealthCheck) // GET /health

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.Login) // POST /api/login

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(svc.Auth))

			r.Post("/logout", authHandler.Logout) // POST /api/logout

			r.Get("/workspaces", workspaceHandler.List)    // GET /api/workspaces
			r.Post("/workspaces", workspaceHandler.Create) // POST /api/workspaces

			r.Route("/workspaces/{slug}", func(r chi.Router) {
				r.Get("/", workspaceHandler.Get)               // GET /api/workspaces/{slug}
				r.Patch("/", workspaceHandler.Update)          // PATCH /api/workspaces/{slug}
				r.Post("/members", workspaceHandler.AddMember) // POST /api/workspaces/{slug}/members

				r.Get("/sprints", sprintHandler.List)          // GET /api/workspaces/{slug}/sprints
				r.Post("/sprints", sprintHandler.Create)       // POST /api/workspaces/{slug}/sprints
				r.Get("/sprints/{id}", sprintHandler.Get)      // GET /api/workspaces/{slug}/sprints/{id}
				r.Patch("/sprints/{id}", sprintHandler.Update) // PATCH /api/workspaces/{slug}/sprints/{id}

				r.Get("/tasks", taskHandler.List)           // GET /api/workspaces/{slug}/tasks?sprint_id=
				r.Post("/tasks", taskHandler.Create)        // POST /api/workspaces/{slug}/tasks
				r.Get("/tasks/{id}", taskHandler.Get)       // GET /api/workspaces/{slug}/tasks/{id}
				r.Put("/tasks/{id}", taskHandler.Update)    // PUT /api/workspaces/{slug}/tasks/{id}
				r.Delete("/tasks/{id}", taskHandler.Delete) // DELETE /api/workspaces/{slug}/tasks/{id}
			})
		})
	})

	return otelhttp.NewHandler(r, "sprintboard-api")
}
