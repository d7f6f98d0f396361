package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/taskmanager-api/internal/api"
	"github.com/phrazzld/taskmanager-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// Every route is served with and without a trailing slash.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.TraceMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.CORS(app.config.Server.AllowedOrigins))
	if app.metrics != nil {
		r.Use(app.metrics.Middleware)
	}

	r.NotFound(api.NotFound)

	taskHandler := api.NewTaskHandler(app.taskService)
	basePath := "/" + strings.Trim(app.config.Server.BasePath, "/")

	r.Get("/health", api.Health(app.taskService))
	if app.metrics != nil {
		r.Method(http.MethodGet, "/metrics", app.metrics.Handler())
	}

	r.Route(basePath, func(r chi.Router) {
		r.Get("/", api.APIRoot(basePath))

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.GetTask)
				r.Put("/", taskHandler.UpdateTask)
				r.Patch("/", taskHandler.PartialUpdateTask)
				r.Delete("/", taskHandler.DeleteTask)
			})
		})
	})

	return r
}
