package api

import (
	"encoding/json"
	"net/http"

	"github.com/Madhuram99/ATS-SYSTEM/internal/mailer"
	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
)

// TemplateHandler holds email template and sending route handlers.
type TemplateHandler struct {
	svc *mailer.Service
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(svc *mailer.Service) *TemplateHandler {
	return &TemplateHandler{svc: svc}
}

// List handles GET /api/templates.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListTemplates(r.Context())
	if err != nil {
		writeError(w, "list templates", err)
		return
	}
	if items == nil {
		items = []models.EmailTemplate{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": items})
}

// Get handles GET /api/templates/{id}.
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	t, err := h.svc.GetTemplate(r.Context(), id)
	if err != nil {
		writeError(w, "get template", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Create handles POST /api/templates.
//
//	@Summary		Create an email template
//	@Tags			templates
//	@Accept			json
//	@Produce		json
//	@Param			body	body		mailer.TemplateInput	true	"Template to create"
//	@Success		201		{object}	models.EmailTemplate
//	@Failure		422		{object}	validationResponse
//	@Security		BearerAuth
//	@Router			/templates [post]
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in mailer.TemplateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	t, err := h.svc.CreateTemplate(r.Context(), in)
	if err != nil {
		writeError(w, "create template", err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// Update handles PUT /api/templates/{id}.
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in mailer.TemplateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	t, err := h.svc.UpdateTemplate(r.Context(), id, in)
	if err != nil {
		writeError(w, "update template", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// SendEmail handles POST /api/candidates/{id}/email.
//
//	@Summary		Render a template and email it to a candidate
//	@Tags			templates
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Candidate ID"
//	@Param			body	body		mailer.SendInput	true	"Template reference or ad-hoc subject/body"
//	@Success		200		{object}	mailer.Message
//	@Failure		404		{object}	errResponse
//	@Failure		422		{object}	validationResponse
//	@Failure		502		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/candidates/{id}/email [post]
func (h *TemplateHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in mailer.SendInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	msg, err := h.svc.SendToCandidate(r.Context(), id, in)
	if err != nil {
		writeError(w, "send email", err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}
