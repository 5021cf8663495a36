package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/httputil"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/middleware"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/service"
)

type TemplateHandler struct {
	templates *service.TemplateService
}

func NewTemplateHandler(templates *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// ListTemplates handles GET /api/v1/templates.
func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.ListTemplates(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, templates)
}

// GetTemplate handles GET /api/v1/templates/{id}.
func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.templates.GetTemplate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tmpl)
}

// CreateTemplate handles POST /api/v1/templates.
func (h *TemplateHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tmpl, err := h.templates.CreateTemplate(r.Context(), middleware.GetRole(r.Context()), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, tmpl)
}

// DeleteTemplate handles DELETE /api/v1/templates/{id}.
func (h *TemplateHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.templates.DeleteTemplate(r.Context(), middleware.GetRole(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddTemplateStep handles POST /api/v1/templates/{id}/steps.
func (h *TemplateHandler) AddTemplateStep(w http.ResponseWriter, r *http.Request) {
	var req models.AddTemplateStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tmpl, err := h.templates.AddStep(r.Context(), middleware.GetRole(r.Context()), r.PathValue("id"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, tmpl)
}

// DeleteTemplateStep handles DELETE /api/v1/templates/{id}/steps/{stepID}.
func (h *TemplateHandler) DeleteTemplateStep(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.templates.DeleteStep(r.Context(), middleware.GetRole(r.Context()),
		r.PathValue("id"), r.PathValue("stepID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tmpl)
}
