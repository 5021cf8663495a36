package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/httputil"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/service"
)

type CaseHandler struct {
	cases *service.CaseService
}

func NewCaseHandler(cases *service.CaseService) *CaseHandler {
	return &CaseHandler{cases: cases}
}

// CreateCase handles POST /api/v1/cases.
func (h *CaseHandler) CreateCase(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.cases.AddCase(r.Context(), actorFrom(r), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, c)
}

// ListCases handles GET /api/v1/cases. Admins see everything; clients see
// their own cases only.
func (h *CaseHandler) ListCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.cases.ListCases(r.Context(), actorFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cases)
}

// ListClientCases handles GET /api/v1/clients/{id}/cases.
func (h *CaseHandler) ListClientCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.cases.ListCasesByClient(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cases)
}

// GetCase handles GET /api/v1/cases/{id}.
func (h *CaseHandler) GetCase(w http.ResponseWriter, r *http.Request) {
	c, err := h.cases.GetCase(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

// UpdateCaseTitle handles PATCH /api/v1/cases/{id}/title.
func (h *CaseHandler) UpdateCaseTitle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCaseTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.cases.UpdateCaseTitle(r.Context(), actorFrom(r), r.PathValue("id"), req.Title); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateCaseStatus handles PATCH /api/v1/cases/{id}/status.
func (h *CaseHandler) UpdateCaseStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCaseStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.cases.UpdateCaseStatus(r.Context(), actorFrom(r), r.PathValue("id"), req.Status); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCase handles DELETE /api/v1/cases/{id}.
func (h *CaseHandler) DeleteCase(w http.ResponseWriter, r *http.Request) {
	if err := h.cases.DeleteCase(r.Context(), actorFrom(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateStep handles PATCH /api/v1/cases/{id}/steps/{stepID}.
func (h *CaseHandler) UpdateStep(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.cases.UpdateStep(r.Context(), actorFrom(r), r.PathValue("id"), r.PathValue("stepID"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

// AddStep handles POST /api/v1/cases/{id}/steps.
func (h *CaseHandler) AddStep(w http.ResponseWriter, r *http.Request) {
	var req models.AddStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.cases.AddStep(r.Context(), actorFrom(r), r.PathValue("id"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

// DeleteStep handles DELETE /api/v1/steps/{stepID}. The owning case is
// resolved from the step id.
func (h *CaseHandler) DeleteStep(w http.ResponseWriter, r *http.Request) {
	c, err := h.cases.DeleteStep(r.Context(), actorFrom(r), r.PathValue("stepID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

// Timeline handles GET /api/v1/cases/{id}/timeline.
func (h *CaseHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	tl, err := h.cases.Timeline(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tl)
}

// TransformToJudicial handles POST /api/v1/cases/{id}/transform.
func (h *CaseHandler) TransformToJudicial(w http.ResponseWriter, r *http.Request) {
	c, err := h.cases.TransformToJudicial(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, c)
}
