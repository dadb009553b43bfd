// Package annotations manages recruiter notes and interview scheduling.
// Authorship is always passed in explicitly; there is no ambient
// logged-in-user lookup at this layer.
package annotations

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Madhuram99/ATS-SYSTEM/internal/apperr"
	"github.com/Madhuram99/ATS-SYSTEM/internal/events"
	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
	"github.com/Madhuram99/ATS-SYSTEM/internal/store"
)

// Service exposes note and interview operations.
type Service struct {
	db     *store.DB
	broker events.Publisher
}

// NewService creates a new annotations service. broker may be nil.
func NewService(db *store.DB, broker events.Publisher) *Service {
	return &Service{db: db, broker: broker}
}

// NoteInput is a note submission.
type NoteInput struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

func (in NoteInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Author, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Content, validation.Required),
	)
}

// AddNote appends a note to a candidate. Notes are append-only.
func (s *Service) AddNote(_ context.Context, candidateID int64, in NoteInput) (*models.Note, error) {
	if err := apperr.FromValidation(in.Validate()); err != nil {
		return nil, err
	}
	if _, err := s.db.GetCandidate(candidateID); err != nil {
		return nil, err
	}
	note := &models.Note{CandidateID: candidateID, Author: in.Author, Content: in.Content}
	if err := s.db.CreateNote(note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotes returns a candidate's notes, newest first.
func (s *Service) ListNotes(_ context.Context, candidateID int64) ([]models.Note, error) {
	if _, err := s.db.GetCandidate(candidateID); err != nil {
		return nil, err
	}
	return s.db.ListNotes(candidateID)
}

// InterviewInput is an interview scheduling submission. JobID may be zero,
// in which case the candidate's own job is used.
type InterviewInput struct {
	JobID        int64     `json:"job_id"`
	Interviewers []string  `json:"interviewers"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Duration     int       `json:"duration"`
	Location     string    `json:"location"`
	Notes        string    `json:"notes"`
}

func (in InterviewInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Interviewers, validation.Required,
			validation.Each(validation.Required, validation.Length(1, 200))),
		validation.Field(&in.ScheduledAt, validation.Required),
		validation.Field(&in.Duration, validation.Required, validation.Min(1), validation.Max(480)),
		validation.Field(&in.Location, validation.Length(0, 200)),
	)
}

// ScheduleInterview validates the submission (the scheduled time must not
// be in the past at the submission instant), persists the interview and
// its interviewer set in one transaction, and applies the one-way stage
// nudge. It returns the interview and the candidate's stage afterwards.
func (s *Service) ScheduleInterview(_ context.Context, candidateID int64, in InterviewInput) (*models.Interview, models.Stage, error) {
	if err := apperr.FromValidation(in.Validate()); err != nil {
		return nil, "", err
	}
	if in.ScheduledAt.Before(time.Now()) {
		return nil, "", apperr.NewValidation("scheduled_at", "interview cannot be scheduled in the past")
	}

	candidate, err := s.db.GetCandidate(candidateID)
	if err != nil {
		return nil, "", err
	}
	jobID := in.JobID
	if jobID == 0 {
		jobID = candidate.JobID
	} else if _, err := s.db.GetJob(jobID); err != nil {
		return nil, "", err
	}

	iv := &models.Interview{
		CandidateID:  candidateID,
		JobID:        jobID,
		Interviewers: in.Interviewers,
		ScheduledAt:  in.ScheduledAt,
		Duration:     in.Duration,
		Location:     in.Location,
		Notes:        in.Notes,
	}
	stage, err := s.db.CreateInterview(iv)
	if err != nil {
		return nil, "", err
	}

	if s.broker != nil {
		s.broker.Publish(events.InterviewEvent(iv.ID, candidateID))
		if stage != candidate.Stage {
			s.broker.Publish(events.CandidateEvent("stage", candidateID, string(stage)))
		}
	}
	return iv, stage, nil
}

// SetStatus moves an interview to completed or cancelled.
func (s *Service) SetStatus(_ context.Context, interviewID int64, status models.InterviewStatus) (*models.Interview, error) {
	if !status.Valid() {
		return nil, apperr.NewValidation("status", "unknown interview status")
	}
	if err := s.db.UpdateInterviewStatus(interviewID, status); err != nil {
		return nil, err
	}
	return s.db.GetInterview(interviewID)
}

// ListInterviews returns a candidate's interviews.
func (s *Service) ListInterviews(_ context.Context, candidateID int64) ([]models.Interview, error) {
	if _, err := s.db.GetCandidate(candidateID); err != nil {
		return nil, err
	}
	return s.db.ListInterviews(candidateID)
}
