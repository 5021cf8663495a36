// Package handlers exposes the portal's REST API. Handlers decode requests,
// call the service layer and translate sentinel errors into HTTP statuses;
// all authorization decisions live in the services.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/httputil"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/middleware"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/repository"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/service"
)

// HealthCheck handles GET /healthz.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// actorFrom rebuilds the service-layer actor from the authenticated request
// context set by the auth middleware.
func actorFrom(r *http.Request) service.Actor {
	return service.Actor{
		ID:   middleware.GetUserID(r.Context()),
		Role: middleware.GetRole(r.Context()),
	}
}

// writeServiceError maps service and repository sentinel errors to HTTP
// statuses. Unknown errors log and return 500 without leaking details.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		httputil.WriteError(w, http.StatusForbidden, "operation not allowed")
	case errors.Is(err, service.ErrInvalidCredentials):
		httputil.WriteError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrValidation):
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSystemTemplate):
		httputil.WriteError(w, http.StatusConflict, "system templates cannot be deleted")
	case errors.Is(err, repository.ErrUserExists):
		httputil.WriteError(w, http.StatusConflict, "a user with this name already exists")
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrTemplateNotFound),
		errors.Is(err, repository.ErrCaseNotFound),
		errors.Is(err, repository.ErrStepNotFound),
		errors.Is(err, repository.ErrDocumentNotFound):
		httputil.WriteError(w, http.StatusNotFound, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
