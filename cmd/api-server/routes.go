package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/protomem/people-registry/internal/model"
)

func (app *application) routes() http.Handler {
	mux := chi.NewRouter()

	mux.NotFound(app.notFound)
	mux.MethodNotAllowed(app.methodNotAllowed)

	mux.Use(app.traceID)
	mux.Use(app.logAccess)
	mux.Use(app.recoverPanic)
	mux.Use(app.instrument)

	mux.Use(app.CORS)

	mux.Get("/api/v1/status", app.handleStatus)
	mux.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	mux.Post("/api/v1/auth/login", app.handleLogin)

	mux.Group(func(mux chi.Router) {
		mux.Use(app.authenticate)

		mux.Group(func(mux chi.Router) {
			mux.Use(app.requireRole(model.RoleUser, model.RoleManager))

			mux.Get("/api/v1/people", app.handleListPeople)
			mux.Get("/api/v1/people/{personId}", app.handleGetPerson)
			mux.Get("/api/v1/people/{personId}/photo", app.handleGetActivePhoto)
			mux.Get("/api/v1/people/{personId}/photos", app.handleListPhotoHistory)

			mux.Get("/api/v1/users", app.handleListUsers)
			mux.Get("/api/v1/users/{userId}", app.handleGetUser)
		})

		mux.Group(func(mux chi.Router) {
			mux.Use(app.requireRole(model.RoleManager))

			mux.Post("/api/v1/people", app.handleCreatePerson)
			mux.Put("/api/v1/people/{personId}", app.handleUpdatePerson)
			mux.Delete("/api/v1/people/{personId}", app.handleDeletePerson)

			mux.Post("/api/v1/users", app.handleCreateUser)
			mux.Put("/api/v1/users/{userId}", app.handleUpdateUser)
			mux.Delete("/api/v1/users/{userId}", app.handleDeleteUser)
		})
	})

	app.logger.Debug("routes configured", "routes", chiRoutesToStrings(mux.Routes()))

	return mux
}

func chiRoutesToStrings(routes []chi.Route) []string {
	parsedRoutes := make([]string, 0, len(routes))
	for _, route := range routes {
		parsedRoutes = append(parsedRoutes, route.Pattern)
	}
	return parsedRoutes
}
