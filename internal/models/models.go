// Package models defines the domain types for the applicant-tracking service.
package models

import "time"

// JobStatus is the publication state of a job posting.
type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusPublished JobStatus = "published"
	JobStatusClosed    JobStatus = "closed"
)

// Valid reports whether s is a member of the job status enumeration.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusDraft, JobStatusPublished, JobStatusClosed:
		return true
	}
	return false
}

// JobPosting is an open position that candidates apply to.
type JobPosting struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Department       string    `json:"department"`
	Location         string    `json:"location"`
	Description      string    `json:"description"`
	Requirements     string    `json:"requirements"`
	Responsibilities string    `json:"responsibilities"`
	Status           JobStatus `json:"status"`
	SalaryMin        int64     `json:"salary_min"`
	SalaryMax        int64     `json:"salary_max"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Candidate is an applicant tracked through the pipeline. Email is unique
// across all candidates; every candidate references exactly one job.
type Candidate struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	ResumePath  string    `json:"resume_path,omitempty"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	JobID       int64     `json:"job_id"`
	Stage       Stage     `json:"stage"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Skill is a candidate-owned skill row.
type Skill struct {
	ID              int64  `json:"id"`
	CandidateID     int64  `json:"candidate_id"`
	Skill           string `json:"skill"`
	YearsExperience int    `json:"years_experience"`
}

// Education is a candidate-owned education row. Dates are ISO dates
// (YYYY-MM-DD); ToDate is empty for ongoing studies.
type Education struct {
	ID           int64  `json:"id"`
	CandidateID  int64  `json:"candidate_id"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	FromDate     string `json:"from_date"`
	ToDate       string `json:"to_date,omitempty"`
}

// WorkExperience is a candidate-owned employment history row.
type WorkExperience struct {
	ID          int64  `json:"id"`
	CandidateID int64  `json:"candidate_id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	FromDate    string `json:"from_date"`
	ToDate      string `json:"to_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Note is an immutable recruiter annotation on a candidate. There is no
// edit or delete path once a note is written.
type Note struct {
	ID          int64     `json:"id"`
	CandidateID int64     `json:"candidate_id"`
	Author      string    `json:"author"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// InterviewStatus is the lifecycle state of a scheduled interview.
type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
	InterviewCancelled InterviewStatus = "cancelled"
)

// Valid reports whether s is a member of the interview status enumeration.
func (s InterviewStatus) Valid() bool {
	switch s {
	case InterviewScheduled, InterviewCompleted, InterviewCancelled:
		return true
	}
	return false
}

// Interview is a scheduled conversation between a candidate and a set of
// interviewer identities supplied by the caller.
type Interview struct {
	ID           int64           `json:"id"`
	CandidateID  int64           `json:"candidate_id"`
	JobID        int64           `json:"job_id"`
	Interviewers []string        `json:"interviewers"`
	ScheduledAt  time.Time       `json:"scheduled_at"`
	Duration     int             `json:"duration"` // minutes
	Location     string          `json:"location,omitempty"`
	Status       InterviewStatus `json:"status"`
	Notes        string          `json:"notes,omitempty"`
}

// TemplateType classifies an email template by use case.
type TemplateType string

const (
	TemplateApplicationReceived TemplateType = "application_received"
	TemplateInterviewInvitation TemplateType = "interview_invitation"
	TemplateRejection           TemplateType = "rejection"
	TemplateOffer               TemplateType = "offer"
)

// Valid reports whether t is a member of the template type enumeration.
func (t TemplateType) Valid() bool {
	switch t {
	case TemplateApplicationReceived, TemplateInterviewInvitation, TemplateRejection, TemplateOffer:
		return true
	}
	return false
}

// EmailTemplate is a stored subject/body pair with substitution
// placeholders such as {{candidate.first_name}} and {{job.title}}.
type EmailTemplate struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Type      TemplateType `json:"type"`
	Subject   string       `json:"subject"`
	Body      string       `json:"body"`
	CreatedBy string       `json:"created_by"`
	CreatedAt time.Time    `json:"created_at"`
}
