package api

import (
	"github.com/Madhuram99/ATS-SYSTEM/internal/catalog"
	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
	"github.com/Madhuram99/ATS-SYSTEM/internal/pipeline"
)

// JobListResponse wraps a job listing.
type JobListResponse struct {
	Jobs []models.JobPosting `json:"jobs" validate:"required"`
}

// JobDetail is the full job response type (aliased from the domain layer).
type JobDetail = catalog.JobDetail

// CandidateListResponse wraps a paginated candidate listing.
type CandidateListResponse struct {
	Candidates []models.Candidate `json:"candidates" validate:"required"`
	Total      int                `json:"total" example:"42" validate:"required"`
}

// CandidateDetail is the full candidate response type (aliased from the domain layer).
type CandidateDetail = pipeline.CandidateDetail

// StageRequest is the request body for a stage transition.
type StageRequest struct {
	Stage string `json:"stage" example:"interview" validate:"required"`
}

// StageResponse is returned after a stage transition or interview scheduling
// that moved the candidate.
type StageResponse struct {
	Candidate *models.Candidate `json:"candidate" validate:"required"`
	Label     string            `json:"stage_label" example:"Technical Assessment" validate:"required"`
}

// InterviewStatusRequest updates the lifecycle status of an interview.
type InterviewStatusRequest struct {
	Status string `json:"status" example:"completed" validate:"required"`
}

// ResumeUploadResponse is returned after a successful resume upload.
type ResumeUploadResponse struct {
	ResumePath string `json:"resume_path" example:"resumes/3f1a9b.pdf" validate:"required"`
	Size       int64  `json:"size" example:"12345" validate:"required"`
}
