package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
	"github.com/Madhuram99/ATS-SYSTEM/internal/pipeline"
	"github.com/Madhuram99/ATS-SYSTEM/internal/store"
)

const maxResumeBytes = 10 << 20 // 10 MB

// CandidateHandler holds pipeline route handlers.
type CandidateHandler struct {
	svc *pipeline.Service
}

// NewCandidateHandler creates a new CandidateHandler.
func NewCandidateHandler(svc *pipeline.Service) *CandidateHandler {
	return &CandidateHandler{svc: svc}
}

// List handles GET /api/candidates.
//
//	@Summary		List candidates with filtering and pagination
//	@Tags			candidates
//	@Produce		json
//	@Param			stage	query		string	false	"Filter by pipeline stage"
//	@Param			job_id	query		int		false	"Filter by job"
//	@Param			q		query		string	false	"Search names, email and skills"
//	@Param			limit	query		int		false	"Page size"
//	@Param			offset	query		int		false	"Page offset"
//	@Success		200		{object}	CandidateListResponse
//	@Security		BearerAuth
//	@Router			/candidates [get]
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jobID, _ := strconv.ParseInt(q.Get("job_id"), 10, 64)
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	f := store.CandidateFilter{
		Stage:  models.Stage(q.Get("stage")),
		JobID:  jobID,
		Query:  q.Get("q"),
		Limit:  limit,
		Offset: offset,
	}
	items, total, err := h.svc.ListCandidates(r.Context(), f)
	if err != nil {
		writeError(w, "list candidates", err)
		return
	}
	if items == nil {
		items = []models.Candidate{}
	}
	writeJSON(w, http.StatusOK, CandidateListResponse{Candidates: items, Total: total})
}

// Create handles POST /api/candidates.
//
//	@Summary		Create a candidate with skills, education and experience
//	@Tags			candidates
//	@Accept			json
//	@Produce		json
//	@Param			body	body		pipeline.CandidateInput	true	"Candidate to create"
//	@Success		201		{object}	models.Candidate
//	@Failure		422		{object}	validationResponse
//	@Security		BearerAuth
//	@Router			/candidates [post]
func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var in pipeline.CandidateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	cand, err := h.svc.CreateCandidate(r.Context(), in)
	if err != nil {
		writeError(w, "create candidate", err)
		return
	}
	writeJSON(w, http.StatusCreated, cand)
}

// Get handles GET /api/candidates/{id}.
//
//	@Summary		Get a candidate with all sub-records, notes and interviews
//	@Tags			candidates
//	@Produce		json
//	@Param			id	path		int	true	"Candidate ID"
//	@Success		200	{object}	CandidateDetail
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/candidates/{id} [get]
func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	detail, err := h.svc.GetCandidate(r.Context(), id)
	if err != nil {
		writeError(w, "get candidate", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Transition handles POST /api/candidates/{id}/stage.
//
//	@Summary		Move a candidate to another pipeline stage
//	@Tags			candidates
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"Candidate ID"
//	@Param			body	body		StageRequest	true	"Target stage"
//	@Success		200		{object}	StageResponse
//	@Failure		404		{object}	errResponse
//	@Failure		422		{object}	validationResponse
//	@Security		BearerAuth
//	@Router			/candidates/{id}/stage [post]
func (h *CandidateHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req StageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	cand, label, err := h.svc.TransitionStage(r.Context(), id, models.Stage(req.Stage))
	if err != nil {
		writeError(w, "transition stage", err)
		return
	}
	writeJSON(w, http.StatusOK, StageResponse{Candidate: cand, Label: label})
}

// UploadResume handles POST /api/candidates/{id}/resume
// (multipart/form-data, field "resume").
//
//	@Summary		Upload a candidate's resume
//	@Tags			candidates
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		int		true	"Candidate ID"
//	@Param			resume	formData	file	true	"Resume file"
//	@Success		201		{object}	ResumeUploadResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/candidates/{id}/resume [post]
func (h *CandidateHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxResumeBytes)
	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'resume' field in multipart form"))
		return
	}
	defer file.Close()

	path, err := h.svc.AttachResume(r.Context(), id, header.Filename, file)
	if err != nil {
		writeError(w, "upload resume", err)
		return
	}
	writeJSON(w, http.StatusCreated, ResumeUploadResponse{ResumePath: path, Size: header.Size})
}

// AddSkill handles POST /api/candidates/{id}/skills.
func (h *CandidateHandler) AddSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in pipeline.SkillInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	skill, err := h.svc.AddSkill(r.Context(), id, in)
	if err != nil {
		writeError(w, "add skill", err)
		return
	}
	writeJSON(w, http.StatusCreated, skill)
}

// UpdateSkill handles PUT /api/skills/{id}.
func (h *CandidateHandler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in pipeline.SkillInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	skill, err := h.svc.UpdateSkill(r.Context(), id, in)
	if err != nil {
		writeError(w, "update skill", err)
		return
	}
	writeJSON(w, http.StatusOK, skill)
}

// AddEducation handles POST /api/candidates/{id}/education.
func (h *CandidateHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in pipeline.EducationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	edu, err := h.svc.AddEducation(r.Context(), id, in)
	if err != nil {
		writeError(w, "add education", err)
		return
	}
	writeJSON(w, http.StatusCreated, edu)
}

// UpdateEducation handles PUT /api/education/{id}.
func (h *CandidateHandler) UpdateEducation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in pipeline.EducationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	edu, err := h.svc.UpdateEducation(r.Context(), id, in)
	if err != nil {
		writeError(w, "update education", err)
		return
	}
	writeJSON(w, http.StatusOK, edu)
}

// AddExperience handles POST /api/candidates/{id}/experience.
func (h *CandidateHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in pipeline.ExperienceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	exp, err := h.svc.AddExperience(r.Context(), id, in)
	if err != nil {
		writeError(w, "add experience", err)
		return
	}
	writeJSON(w, http.StatusCreated, exp)
}

// UpdateExperience handles PUT /api/experience/{id}.
func (h *CandidateHandler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in pipeline.ExperienceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	exp, err := h.svc.UpdateExperience(r.Context(), id, in)
	if err != nil {
		writeError(w, "update experience", err)
		return
	}
	writeJSON(w, http.StatusOK, exp)
}
