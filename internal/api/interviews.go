package api

import (
	"encoding/json"
	"net/http"

	"github.com/Madhuram99/ATS-SYSTEM/internal/annotations"
	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
)

// AnnotationHandler holds note and interview route handlers.
type AnnotationHandler struct {
	svc *annotations.Service
}

// NewAnnotationHandler creates a new AnnotationHandler.
func NewAnnotationHandler(svc *annotations.Service) *AnnotationHandler {
	return &AnnotationHandler{svc: svc}
}

// AddNote handles POST /api/candidates/{id}/notes.
//
//	@Summary		Append a recruiter note to a candidate
//	@Tags			annotations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Candidate ID"
//	@Param			body	body		annotations.NoteInput	true	"Note to append"
//	@Success		201		{object}	models.Note
//	@Failure		404		{object}	errResponse
//	@Failure		422		{object}	validationResponse
//	@Security		BearerAuth
//	@Router			/candidates/{id}/notes [post]
func (h *AnnotationHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in annotations.NoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	note, err := h.svc.AddNote(r.Context(), id, in)
	if err != nil {
		writeError(w, "add note", err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// ListNotes handles GET /api/candidates/{id}/notes.
func (h *AnnotationHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	notes, err := h.svc.ListNotes(r.Context(), id)
	if err != nil {
		writeError(w, "list notes", err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

// Schedule handles POST /api/candidates/{id}/interviews.
//
//	@Summary		Schedule an interview for a candidate
//	@Tags			annotations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Candidate ID"
//	@Param			body	body		annotations.InterviewInput	true	"Interview to schedule"
//	@Success		201		{object}	models.Interview
//	@Failure		404		{object}	errResponse
//	@Failure		422		{object}	validationResponse
//	@Security		BearerAuth
//	@Router			/candidates/{id}/interviews [post]
func (h *AnnotationHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in annotations.InterviewInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	iv, stage, err := h.svc.ScheduleInterview(r.Context(), id, in)
	if err != nil {
		writeError(w, "schedule interview", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"interview":   iv,
		"stage":       stage,
		"stage_label": stage.Label(),
	})
}

// ListInterviews handles GET /api/candidates/{id}/interviews.
func (h *AnnotationHandler) ListInterviews(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	items, err := h.svc.ListInterviews(r.Context(), id)
	if err != nil {
		writeError(w, "list interviews", err)
		return
	}
	if items == nil {
		items = []models.Interview{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"interviews": items})
}

// SetStatus handles POST /api/interviews/{id}/status.
//
//	@Summary		Update the lifecycle status of an interview
//	@Tags			annotations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Interview ID"
//	@Param			body	body		InterviewStatusRequest	true	"New status"
//	@Success		200		{object}	models.Interview
//	@Failure		404		{object}	errResponse
//	@Failure		422		{object}	validationResponse
//	@Security		BearerAuth
//	@Router			/interviews/{id}/status [post]
func (h *AnnotationHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req InterviewStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	iv, err := h.svc.SetStatus(r.Context(), id, models.InterviewStatus(req.Status))
	if err != nil {
		writeError(w, "set interview status", err)
		return
	}
	writeJSON(w, http.StatusOK, iv)
}
