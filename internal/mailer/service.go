// Package mailer renders email templates against candidate context and
// hands the result to an SMTP transport.
package mailer

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Madhuram99/ATS-SYSTEM/internal/apperr"
	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
	"github.com/Madhuram99/ATS-SYSTEM/internal/store"
)

// Service manages templates and sends rendered mail to candidates.
type Service struct {
	db     *store.DB
	sender Sender
}

func NewService(db *store.DB, sender Sender) *Service {
	return &Service{db: db, sender: sender}
}

// TemplateInput is the payload for creating or updating a template.
type TemplateInput struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	CreatedBy string `json:"created_by"`
}

func (in TemplateInput) Validate() error {
	return apperr.FromValidation(validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Type, validation.Required, validation.By(validTemplateType)),
		validation.Field(&in.Subject, validation.Required, validation.Length(1, 500)),
		validation.Field(&in.Body, validation.Required),
	))
}

func validTemplateType(value any) error {
	s, _ := value.(string)
	if !models.TemplateType(s).Valid() {
		return validation.NewError("validation_template_type", "must be a known template type")
	}
	return nil
}

// CreateTemplate validates and stores a new template.
func (s *Service) CreateTemplate(_ context.Context, in TemplateInput) (*models.EmailTemplate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t := &models.EmailTemplate{
		Name:      in.Name,
		Type:      models.TemplateType(in.Type),
		Subject:   in.Subject,
		Body:      in.Body,
		CreatedBy: in.CreatedBy,
	}
	if err := s.db.CreateTemplate(t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetTemplate returns one template by ID.
func (s *Service) GetTemplate(_ context.Context, id int64) (*models.EmailTemplate, error) {
	return s.db.GetTemplate(id)
}

// ListTemplates returns all templates.
func (s *Service) ListTemplates(_ context.Context) ([]models.EmailTemplate, error) {
	return s.db.ListTemplates()
}

// UpdateTemplate validates and overwrites an existing template.
func (s *Service) UpdateTemplate(_ context.Context, id int64, in TemplateInput) (*models.EmailTemplate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t, err := s.db.GetTemplate(id)
	if err != nil {
		return nil, err
	}
	t.Name = in.Name
	t.Type = models.TemplateType(in.Type)
	t.Subject = in.Subject
	t.Body = in.Body
	if err := s.db.UpdateTemplate(t); err != nil {
		return nil, err
	}
	return t, nil
}

// SendInput describes one outbound email. Either TemplateID picks a stored
// template, which is rendered before sending, or Subject/Body carry an
// ad-hoc message that is sent as-is.
type SendInput struct {
	TemplateID int64  `json:"template_id,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Body       string `json:"body,omitempty"`
}

func (in SendInput) Validate() error {
	if in.TemplateID != 0 {
		return nil
	}
	return apperr.FromValidation(validation.ValidateStruct(&in,
		validation.Field(&in.Subject, validation.Required.Error("required when no template is given")),
		validation.Field(&in.Body, validation.Required.Error("required when no template is given")),
	))
}

// SendToCandidate delivers one email to the candidate. A stored template
// is rendered against the candidate and their job; ad-hoc subject/body are
// sent verbatim, placeholders included. A transport failure surfaces as
// apperr.ErrDeliveryFailed; nothing is retried here.
func (s *Service) SendToCandidate(_ context.Context, candidateID int64, in SendInput) (*Message, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	cand, err := s.db.GetCandidate(candidateID)
	if err != nil {
		return nil, err
	}

	subject, body := in.Subject, in.Body
	if in.TemplateID != 0 {
		t, err := s.db.GetTemplate(in.TemplateID)
		if err != nil {
			return nil, err
		}
		job, err := s.db.GetJob(cand.JobID)
		if err != nil {
			return nil, fmt.Errorf("mailer: load job for candidate %d: %w", candidateID, err)
		}
		rctx := RenderContext{Candidate: cand, Job: job}
		subject = Render(t.Subject, rctx)
		body = Render(t.Body, rctx)
	}

	msg := Message{
		To:      []string{cand.Email},
		Subject: subject,
		Body:    body,
	}
	if err := s.sender.Send(msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
