// Package catalog manages job postings, the leaf entities of the
// applicant-tracking domain.
package catalog

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Madhuram99/ATS-SYSTEM/internal/apperr"
	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
	"github.com/Madhuram99/ATS-SYSTEM/internal/store"
)

// Service exposes job posting operations.
type Service struct {
	db *store.DB
}

// NewService creates a new catalog service.
func NewService(db *store.DB) *Service {
	return &Service{db: db}
}

// JobInput carries the editable fields of a job posting.
type JobInput struct {
	Title            string           `json:"title"`
	Department       string           `json:"department"`
	Location         string           `json:"location"`
	Description      string           `json:"description"`
	Requirements     string           `json:"requirements"`
	Responsibilities string           `json:"responsibilities"`
	Status           models.JobStatus `json:"status"`
	SalaryMin        int64            `json:"salary_min"`
	SalaryMax        int64            `json:"salary_max"`
}

// Validate checks field constraints, including the status enumeration and
// salary range ordering.
func (in JobInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Status, validation.Required,
			validation.In(models.JobStatusDraft, models.JobStatusPublished, models.JobStatusClosed)),
		validation.Field(&in.SalaryMin, validation.Min(0)),
		validation.Field(&in.SalaryMax, validation.Min(0), validation.By(func(any) error {
			if in.SalaryMax > 0 && in.SalaryMax < in.SalaryMin {
				return validation.NewError("validation_salary_range", "must not be below salary_min")
			}
			return nil
		})),
	)
	return apperr.FromValidation(err)
}

// Create inserts a job posting attributed to createdBy.
func (s *Service) Create(_ context.Context, in JobInput, createdBy string) (*models.JobPosting, error) {
	if in.Status == "" {
		in.Status = models.JobStatusDraft
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	job := &models.JobPosting{
		Title:            in.Title,
		Department:       in.Department,
		Location:         in.Location,
		Description:      in.Description,
		Requirements:     in.Requirements,
		Responsibilities: in.Responsibilities,
		Status:           in.Status,
		SalaryMin:        in.SalaryMin,
		SalaryMax:        in.SalaryMax,
		CreatedBy:        createdBy,
	}
	if err := s.db.CreateJob(job); err != nil {
		return nil, err
	}
	return job, nil
}

// JobDetail is a job posting together with its applicants.
type JobDetail struct {
	models.JobPosting
	Candidates []models.Candidate `json:"candidates"`
}

// Get returns one job posting with its candidates, newest application first.
func (s *Service) Get(_ context.Context, id int64) (*JobDetail, error) {
	job, err := s.db.GetJob(id)
	if err != nil {
		return nil, err
	}
	candidates, err := s.db.ListCandidatesByJob(id)
	if err != nil {
		return nil, err
	}
	if candidates == nil {
		candidates = []models.Candidate{}
	}
	return &JobDetail{JobPosting: *job, Candidates: candidates}, nil
}

// List returns job postings, optionally filtered by status. An unknown
// status value is a validation error rather than an empty result.
func (s *Service) List(_ context.Context, status models.JobStatus) ([]models.JobPosting, error) {
	if status != "" && !status.Valid() {
		return nil, apperr.NewValidation("status", "must be one of draft, published, closed")
	}
	return s.db.ListJobs(status)
}

// Update overwrites a job posting's editable fields.
func (s *Service) Update(_ context.Context, id int64, in JobInput) (*models.JobPosting, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	job, err := s.db.GetJob(id)
	if err != nil {
		return nil, err
	}
	job.Title = in.Title
	job.Department = in.Department
	job.Location = in.Location
	job.Description = in.Description
	job.Requirements = in.Requirements
	job.Responsibilities = in.Responsibilities
	job.Status = in.Status
	job.SalaryMin = in.SalaryMin
	job.SalaryMax = in.SalaryMax
	if err := s.db.UpdateJob(job); err != nil {
		return nil, err
	}
	return job, nil
}

// Delete removes a job posting; its candidates and their sub-records are
// removed by the store's cascade rules.
func (s *Service) Delete(_ context.Context, id int64) error {
	return s.db.DeleteJob(id)
}
