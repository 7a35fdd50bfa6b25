package routes

import (
	"net/http"

	"github.com/livingprogress/mentorme/internal/app"
	"github.com/livingprogress/mentorme/internal/handler"
	"github.com/livingprogress/mentorme/internal/metrics"
	"github.com/livingprogress/mentorme/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	goal := handler.NewGoalHandler(app.GoalService, app.GoalWorkflow)
	program := handler.NewProgramHandler(app.ProgramService, app.GoalWorkflow)
	mentor := handler.NewMentorHandler(app.MentorService)
	mentee := handler.NewMenteeHandler(app.MenteeService)
	document := handler.NewDocumentHandler(app.DocumentService, app.Cfg.DocumentMaxUploadSize)

	mux := http.NewServeMux()

	// ============================================================================
	// OPERATIONS
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	// ============================================================================
	// GOALS
	// ============================================================================

	mux.HandleFunc("GET /goals", goal.Search)
	mux.HandleFunc("POST /goals", goal.Create)
	mux.HandleFunc("GET /goals/{id}", goal.Get)
	mux.HandleFunc("PUT /goals/{id}", goal.Update)
	mux.HandleFunc("DELETE /goals/{id}", goal.Delete)

	// Documents
	mux.HandleFunc("GET /goals/{id}/documents", document.List)
	mux.HandleFunc("POST /goals/{id}/documents", document.Upload)
	mux.HandleFunc("DELETE /documents/{id}", document.Delete)

	// ============================================================================
	// PROGRAMS
	// ============================================================================

	mux.HandleFunc("GET /programs", program.Search)
	mux.HandleFunc("POST /programs", program.Create)
	mux.HandleFunc("GET /programs/{id}", program.Get)
	mux.HandleFunc("PUT /programs/{id}", program.Update)
	mux.HandleFunc("DELETE /programs/{id}", program.Delete)
	mux.HandleFunc("POST /programs/{id}/recompute", program.Recompute)

	// ============================================================================
	// PEOPLE
	// ============================================================================

	mux.HandleFunc("GET /mentors", mentor.Search)
	mux.HandleFunc("POST /mentors", mentor.Create)
	mux.HandleFunc("GET /mentors/{id}", mentor.Get)
	mux.HandleFunc("PUT /mentors/{id}", mentor.Update)
	mux.HandleFunc("DELETE /mentors/{id}", mentor.Delete)

	mux.HandleFunc("GET /mentees", mentee.Search)
	mux.HandleFunc("POST /mentees", mentee.Create)
	mux.HandleFunc("GET /mentees/{id}", mentee.Get)
	mux.HandleFunc("PUT /mentees/{id}", mentee.Update)
	mux.HandleFunc("DELETE /mentees/{id}", mentee.Delete)

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// GET only, so known paths called with another method still get 405
	mux.HandleFunc("GET /{path...}", handler.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestID, // Request id first so every later log line carries it
		middleware.Recover,
		middleware.RequestLogging,
		middleware.RateLimitWrites(app.Cfg.RateLimitWrites, app.Cfg.RateLimitWindow),
	)

	return handler
}
