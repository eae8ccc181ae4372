package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pravaah/app"
	"pravaah/domain/access"
	"pravaah/internal"
	"pravaah/internal/session"
	"pravaah/ports"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App is the dashboard web application.
type App struct {
	router    *chi.Mux
	templates *template.Template

	sessions *session.Store
	policy   *access.Policy

	analysis *app.AnalysisService
	whatIf   *app.WhatIfService
	reports  *app.ReportService
	stations *app.StationService

	citizenReports ports.CitizenReportRepository
	alertRepo      ports.AlertRepository
	registry       ports.PredictorRegistry

	hub    *Hub
	logger *internal.Logger
}

// Deps carries everything the UI needs wired in.
type Deps struct {
	Sessions       *session.Store
	Policy         *access.Policy
	Analysis       *app.AnalysisService
	WhatIf         *app.WhatIfService
	Reports        *app.ReportService
	Stations       *app.StationService
	CitizenReports ports.CitizenReportRepository
	AlertRepo      ports.AlertRepository
	Registry       ports.PredictorRegistry
	Hub            *Hub
	Logger         *internal.Logger
}

// NewApp creates the dashboard application.
func NewApp(deps Deps) (*App, error) {
	if deps.Logger == nil {
		deps.Logger = internal.DefaultLogger
	}

	funcMap := template.FuncMap{
		"label": func(r access.Role) string { return r.Label() },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:         chi.NewRouter(),
		templates:      templates,
		sessions:       deps.Sessions,
		policy:         deps.Policy,
		analysis:       deps.Analysis,
		whatIf:         deps.WhatIf,
		reports:        deps.Reports,
		stations:       deps.Stations,
		citizenReports: deps.CitizenReports,
		alertRepo:      deps.AlertRepo,
		registry:       deps.Registry,
		hub:            deps.Hub,
		logger:         deps.Logger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// Router exposes the HTTP handler for the server shell.
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", http.StripPrefix("/", staticFS))
}

func (a *App) setupRoutes() {
	// Session lifecycle
	a.router.Get("/", a.handleRoleSelect)
	a.router.Post("/session", a.handleStartSession)
	a.router.Post("/session/end", a.handleEndSession)

	// Authenticated dashboard
	a.router.Group(func(r chi.Router) {
		r.Use(a.withSession)

		r.Get("/views/{view}", a.handleView)

		// Detection and public views
		r.Post("/api/detect", a.requireView(access.ViewUploadDetect, a.handleDetect))
		r.Get("/api/nearby", a.requireView(access.ViewNearby, a.handleNearby))
		r.Get("/api/stations/{id}/summary", a.requireView(access.ViewNearby, a.handleStationSummary))
		r.Get("/api/advisory", a.requireView(access.ViewUploadDetect, a.handleAdvisory))
		r.Post("/api/citizen-reports", a.requireAction(access.ActionSubmitReport, a.handleSubmitCitizenReport))

		// Analysis views
		r.Post("/api/spectral", a.requireView(access.ViewSpectralLab, a.handleSpectral))
		r.Post("/api/wqi", a.requireView(access.ViewRiverHealth, a.handleWQI))
		r.Post("/api/river-assessment", a.requireAction(access.ActionRunBatchAnalysis, a.handleRiverAssessment))
		r.Post("/api/whatif", a.requireAction(access.ActionRunWhatIf, a.handleWhatIf))

		// Alerts and reports
		r.Get("/api/alerts", a.requireView(access.ViewAlerts, a.handleAlerts))
		r.Get("/reports/download", a.requireAction(access.ActionExportReport, a.handleReportDownload))

		// Admin surfaces
		r.Get("/api/thresholds", a.requireView(access.ViewThresholds, a.handleGetThresholds))
		r.Post("/api/thresholds", a.requireAction(access.ActionManageThresholds, a.handleUpdateThresholds))
		r.Get("/api/citizen-reports", a.requireView(access.ViewUserReports, a.handleListCitizenReports))
		r.Get("/api/status", a.requireView(access.ViewSystemStatus, a.handleSystemStatus))
	})

	// Live alert push
	if a.hub != nil {
		a.router.Get("/ws/alerts", a.hub.HandleWS)
	}
}
