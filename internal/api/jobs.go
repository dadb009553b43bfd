package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Madhuram99/ATS-SYSTEM/internal/catalog"
	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
)

// JobHandler holds job catalog route handlers.
type JobHandler struct {
	svc *catalog.Service
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(svc *catalog.Service) *JobHandler {
	return &JobHandler{svc: svc}
}

// idParam parses the {id} URL parameter as an int64. A second return of
// false means the response has already been written.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return 0, false
	}
	return id, true
}

// List handles GET /api/jobs.
//
//	@Summary		List job postings with optional status filter
//	@Tags			jobs
//	@Produce		json
//	@Param			status	query		string	false	"Filter by status"	Enums(draft, published, closed)
//	@Success		200		{object}	JobListResponse
//	@Failure		422		{object}	validationResponse
//	@Security		BearerAuth
//	@Router			/jobs [get]
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	status := models.JobStatus(r.URL.Query().Get("status"))
	jobs, err := h.svc.List(r.Context(), status)
	if err != nil {
		writeError(w, "list jobs", err)
		return
	}
	if jobs == nil {
		jobs = []models.JobPosting{}
	}
	writeJSON(w, http.StatusOK, JobListResponse{Jobs: jobs})
}

// Get handles GET /api/jobs/{id}.
//
//	@Summary		Get a job posting with its candidates
//	@Tags			jobs
//	@Produce		json
//	@Param			id	path		int	true	"Job ID"
//	@Success		200	{object}	JobDetail
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/jobs/{id} [get]
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	detail, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, "get job", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Create handles POST /api/jobs.
//
//	@Summary		Create a job posting
//	@Tags			jobs
//	@Accept			json
//	@Produce		json
//	@Param			body	body		catalog.JobInput	true	"Job to create"
//	@Success		201		{object}	models.JobPosting
//	@Failure		422		{object}	validationResponse
//	@Security		BearerAuth
//	@Router			/jobs [post]
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req struct {
		catalog.JobInput
		CreatedBy string `json:"created_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	job, err := h.svc.Create(r.Context(), req.JobInput, req.CreatedBy)
	if err != nil {
		writeError(w, "create job", err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

// Update handles PUT /api/jobs/{id}.
//
//	@Summary		Update a job posting
//	@Tags			jobs
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Job ID"
//	@Param			body	body		catalog.JobInput	true	"Updated fields"
//	@Success		200		{object}	models.JobPosting
//	@Failure		404		{object}	errResponse
//	@Failure		422		{object}	validationResponse
//	@Security		BearerAuth
//	@Router			/jobs/{id} [put]
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var in catalog.JobInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	job, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, "update job", err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// Delete handles DELETE /api/jobs/{id}.
//
//	@Summary		Delete a job posting and its candidates
//	@Tags			jobs
//	@Param			id	path	int	true	"Job ID"
//	@Success		204	"Job deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/jobs/{id} [delete]
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, "delete job", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
