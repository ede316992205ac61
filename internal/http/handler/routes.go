package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"projectapi/internal/http/middleware"
	"projectapi/internal/service"
)

// Dependencies are the collaborators the routes are built from.
type Dependencies struct {
	DB       *sql.DB
	Files    service.FileService
	Projects service.ProjectService
	Limiters middleware.Limiters
	// Metrics is served at /metrics when set.
	Metrics prometheus.Gatherer
	Log     logrus.FieldLogger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Dependencies) {
	log := d.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	lim := d.Limiters
	if lim.Basic == nil || lim.Strict == nil || lim.Upload == nil {
		lim = middleware.NewLimiters(false, nil)
	}

	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Metrics != nil {
		app.Get("/metrics", Metrics(d.Metrics))
	}

	app.Get("/files", ListFiles(d.Files, log))
	app.Get("/files/thumbnails", ListThumbnails(d.Files, log))
	app.Post("/files/thumbnail", lim.Upload, UploadThumbnail(d.Files, log))
	app.Delete("/files/thumbnail", lim.Strict, DeleteThumbnails(d.Files, log))

	app.Get("/projects", ListProjects(d.Projects, log))
	app.Post("/project", lim.Basic, CreateProject(d.Projects, log))
	app.Delete("/project", lim.Strict, DeleteProjects(d.Projects, log))
	app.Get("/project/:id", GetProject(d.Projects, log))
	app.Put("/project/:id", lim.Basic, UpdateProject(d.Projects, log))
}
