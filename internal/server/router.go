package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/handlers"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/metrics"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/middleware"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
)

// Handlers bundles the API handlers the router wires up.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Users     *handlers.UserHandler
	Templates *handlers.TemplateHandler
	Cases     *handlers.CaseHandler
	Documents *handlers.DocumentHandler
}

// NewRouter registers all portal routes. Uses Go 1.22+ method routing; path
// parameters are read with r.PathValue in the handlers.
func NewRouter(h Handlers, am *middleware.AuthMiddleware, cors middleware.CORSConfig) http.Handler {
	mux := http.NewServeMux()

	authed := am.RequireAuth
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return am.RequireAuth(am.RequireRole(models.RoleAdmin)(next))
	}

	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, metrics.Instrument(pattern, fn))
	}

	// Authentication
	handle("POST /api/v1/auth/login", h.Auth.Login)
	handle("POST /api/v1/auth/register", h.Auth.Register)
	handle("POST /api/v1/auth/refresh", h.Auth.Refresh)
	handle("POST /api/v1/auth/logout", h.Auth.Logout)
	handle("GET /api/v1/auth/me", authed(h.Auth.Me))

	// User management (staff only)
	handle("POST /api/v1/users", admin(h.Users.CreateUser))
	handle("GET /api/v1/users/{id}", admin(h.Users.GetUser))
	handle("PATCH /api/v1/users/{id}", admin(h.Users.UpdateUser))
	handle("DELETE /api/v1/users/{id}", admin(h.Users.DeleteUser))
	handle("GET /api/v1/clients", admin(h.Users.ListClients))
	handle("GET /api/v1/clients/{id}/cases", authed(h.Cases.ListClientCases))

	// Templates (staff only)
	handle("GET /api/v1/templates", admin(h.Templates.ListTemplates))
	handle("POST /api/v1/templates", admin(h.Templates.CreateTemplate))
	handle("GET /api/v1/templates/{id}", admin(h.Templates.GetTemplate))
	handle("DELETE /api/v1/templates/{id}", admin(h.Templates.DeleteTemplate))
	handle("POST /api/v1/templates/{id}/steps", admin(h.Templates.AddTemplateStep))
	handle("DELETE /api/v1/templates/{id}/steps/{stepID}", admin(h.Templates.DeleteTemplateStep))

	// Cases: reads are available to clients (scoped to their own cases in
	// the service layer), mutations are staff only.
	handle("GET /api/v1/cases", authed(h.Cases.ListCases))
	handle("POST /api/v1/cases", admin(h.Cases.CreateCase))
	handle("GET /api/v1/cases/{id}", authed(h.Cases.GetCase))
	handle("DELETE /api/v1/cases/{id}", admin(h.Cases.DeleteCase))
	handle("PATCH /api/v1/cases/{id}/title", admin(h.Cases.UpdateCaseTitle))
	handle("PATCH /api/v1/cases/{id}/status", admin(h.Cases.UpdateCaseStatus))
	handle("GET /api/v1/cases/{id}/timeline", authed(h.Cases.Timeline))
	handle("POST /api/v1/cases/{id}/transform", admin(h.Cases.TransformToJudicial))

	// Steps
	handle("POST /api/v1/cases/{id}/steps", admin(h.Cases.AddStep))
	handle("PATCH /api/v1/cases/{id}/steps/{stepID}", admin(h.Cases.UpdateStep))
	handle("DELETE /api/v1/steps/{stepID}", admin(h.Cases.DeleteStep))

	// Documents: clients may attach to and list their own cases.
	handle("POST /api/v1/cases/{id}/documents", authed(h.Documents.AddDocument))
	handle("GET /api/v1/cases/{id}/documents", authed(h.Documents.ListDocuments))
	handle("DELETE /api/v1/documents/{id}", admin(h.Documents.DeleteDocument))

	// Operational endpoints
	mux.HandleFunc("GET /healthz", handlers.HealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.RequestID(middleware.CORS(cors)(mux))
}
