// Package pipeline implements the candidate pipeline core: candidate
// records, their owned sub-records, and the stage-transition rules.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Madhuram99/ATS-SYSTEM/internal/apperr"
	"github.com/Madhuram99/ATS-SYSTEM/internal/events"
	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
	"github.com/Madhuram99/ATS-SYSTEM/internal/resumes"
	"github.com/Madhuram99/ATS-SYSTEM/internal/store"
)

const isoDate = "2006-01-02"

// Service coordinates candidate persistence, resume storage and event
// publication.
type Service struct {
	db     *store.DB
	blobs  resumes.Provider
	broker events.Publisher
}

// NewService creates a new pipeline service. broker may be nil when no
// event stream is wanted (tests, MCP mode).
func NewService(db *store.DB, blobs resumes.Provider, broker events.Publisher) *Service {
	return &Service{db: db, blobs: blobs, broker: broker}
}

func (s *Service) publish(e events.Event) {
	if s.broker != nil {
		s.broker.Publish(e)
	}
}

// SkillInput is one skill row in a candidate submission.
type SkillInput struct {
	Skill           string `json:"skill"`
	YearsExperience int    `json:"years_experience"`
}

func (in SkillInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Skill, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.YearsExperience, validation.Min(0), validation.Max(80)),
	)
}

// EducationInput is one education row in a candidate submission.
type EducationInput struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	FromDate     string `json:"from_date"`
	ToDate       string `json:"to_date"`
}

func (in EducationInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Institution, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Degree, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.FromDate, validation.Required, validation.Date(isoDate)),
		validation.Field(&in.ToDate, validation.Date(isoDate)),
	)
}

// ExperienceInput is one work-experience row in a candidate submission.
type ExperienceInput struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	FromDate    string `json:"from_date"`
	ToDate      string `json:"to_date"`
	Description string `json:"description"`
}

func (in ExperienceInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Company, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Position, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.FromDate, validation.Required, validation.Date(isoDate)),
		validation.Field(&in.ToDate, validation.Date(isoDate)),
	)
}

// CandidateInput is a full candidate submission: the candidate fields plus
// zero or more sub-record rows, committed all-or-nothing.
type CandidateInput struct {
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	CoverLetter string            `json:"cover_letter"`
	JobID       int64             `json:"job_id"`
	Stage       models.Stage      `json:"stage"`
	Skills      []SkillInput      `json:"skills"`
	Education   []EducationInput  `json:"education"`
	Experience  []ExperienceInput `json:"experience"`
}

// Validate checks the candidate fields and every sub-record row. Row errors
// are keyed by their collection and index, e.g. "skills[1]".
func (in CandidateInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Phone, validation.Length(0, 20)),
		validation.Field(&in.JobID, validation.Required, validation.Min(1)),
	)
	if err != nil {
		return apperr.FromValidation(err)
	}
	if in.Stage != "" && !in.Stage.Valid() {
		return apperr.NewValidation("stage", "unknown stage")
	}
	for i, row := range in.Skills {
		if err := row.Validate(); err != nil {
			return rowError("skills", i, err)
		}
	}
	for i, row := range in.Education {
		if err := row.Validate(); err != nil {
			return rowError("education", i, err)
		}
	}
	for i, row := range in.Experience {
		if err := row.Validate(); err != nil {
			return rowError("experience", i, err)
		}
	}
	return nil
}

func rowError(collection string, index int, err error) error {
	ve, ok := apperr.FromValidation(err).(*apperr.ValidationError)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(ve.Fields))
	for field, msg := range ve.Fields {
		fields[fmt.Sprintf("%s[%d].%s", collection, index, field)] = msg
	}
	return &apperr.ValidationError{Fields: fields}
}

// CreateCandidate validates the submission, checks the referenced job
// exists, and commits the candidate plus all sub-records atomically.
// A duplicate email surfaces as a recoverable field validation error.
func (s *Service) CreateCandidate(_ context.Context, in CandidateInput) (*models.Candidate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.db.GetJob(in.JobID); err != nil {
		return nil, err
	}

	c := &models.Candidate{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Phone:       in.Phone,
		CoverLetter: in.CoverLetter,
		JobID:       in.JobID,
		Stage:       in.Stage,
	}
	skills := make([]models.Skill, len(in.Skills))
	for i, row := range in.Skills {
		skills[i] = models.Skill{Skill: row.Skill, YearsExperience: row.YearsExperience}
	}
	education := make([]models.Education, len(in.Education))
	for i, row := range in.Education {
		education[i] = models.Education{
			Institution:  row.Institution,
			Degree:       row.Degree,
			FieldOfStudy: row.FieldOfStudy,
			FromDate:     row.FromDate,
			ToDate:       row.ToDate,
		}
	}
	experience := make([]models.WorkExperience, len(in.Experience))
	for i, row := range in.Experience {
		experience[i] = models.WorkExperience{
			Company:     row.Company,
			Position:    row.Position,
			FromDate:    row.FromDate,
			ToDate:      row.ToDate,
			Description: row.Description,
		}
	}

	if err := s.db.CreateCandidate(c, skills, education, experience); err != nil {
		if errors.Is(err, apperr.ErrDuplicateEmail) {
			return nil, apperr.NewValidation("email", "a candidate with this email already exists")
		}
		return nil, err
	}

	s.publish(events.CandidateEvent("created", c.ID, string(c.Stage)))
	return c, nil
}

// CandidateDetail is a candidate with every owned collection attached.
type CandidateDetail struct {
	models.Candidate
	StageLabel string                  `json:"stage_label"`
	Skills     []models.Skill          `json:"skills"`
	Education  []models.Education      `json:"education"`
	Experience []models.WorkExperience `json:"experience"`
	Notes      []models.Note           `json:"notes"`
	Interviews []models.Interview      `json:"interviews"`
}

// GetCandidate returns a candidate with sub-records, notes and interviews.
func (s *Service) GetCandidate(_ context.Context, id int64) (*CandidateDetail, error) {
	c, err := s.db.GetCandidate(id)
	if err != nil {
		return nil, err
	}
	detail := &CandidateDetail{Candidate: *c, StageLabel: c.Stage.Label()}
	if detail.Skills, err = s.db.ListSkills(id); err != nil {
		return nil, err
	}
	if detail.Education, err = s.db.ListEducation(id); err != nil {
		return nil, err
	}
	if detail.Experience, err = s.db.ListExperience(id); err != nil {
		return nil, err
	}
	if detail.Notes, err = s.db.ListNotes(id); err != nil {
		return nil, err
	}
	if detail.Interviews, err = s.db.ListInterviews(id); err != nil {
		return nil, err
	}
	if detail.Skills == nil {
		detail.Skills = []models.Skill{}
	}
	if detail.Education == nil {
		detail.Education = []models.Education{}
	}
	if detail.Experience == nil {
		detail.Experience = []models.WorkExperience{}
	}
	if detail.Notes == nil {
		detail.Notes = []models.Note{}
	}
	if detail.Interviews == nil {
		detail.Interviews = []models.Interview{}
	}
	return detail, nil
}

// ListCandidates returns candidates matching the filter plus a total count.
func (s *Service) ListCandidates(_ context.Context, f store.CandidateFilter) ([]models.Candidate, int, error) {
	if f.Stage != "" && !f.Stage.Valid() {
		return nil, 0, apperr.NewValidation("stage", "unknown stage")
	}
	return s.db.ListCandidates(f)
}

// TransitionStage overwrites the candidate's stage. Membership of the
// enumeration is the only rule: any stage is reachable from any stage by
// direct update, matching the original pipeline's behavior. The returned
// label is the human-readable acknowledgement ("Technical Assessment").
func (s *Service) TransitionStage(_ context.Context, id int64, stage models.Stage) (*models.Candidate, string, error) {
	if !stage.Valid() {
		return nil, "", apperr.NewValidation("stage", "unknown stage")
	}
	if err := s.db.UpdateStage(id, stage); err != nil {
		return nil, "", err
	}
	c, err := s.db.GetCandidate(id)
	if err != nil {
		return nil, "", err
	}
	s.publish(events.CandidateEvent("stage", c.ID, string(c.Stage)))
	return c, stage.Label(), nil
}

// AttachResume stores an uploaded resume blob under a generated unique
// name and records the path on the candidate.
func (s *Service) AttachResume(_ context.Context, id int64, filename string, r io.Reader) (string, error) {
	if _, err := s.db.GetCandidate(id); err != nil {
		return "", err
	}
	name := resumes.UniqueName(filename)
	if _, err := s.blobs.Save(name, r); err != nil {
		return "", err
	}
	path := "resumes/" + name
	if err := s.db.SetResumePath(id, path); err != nil {
		// Candidate vanished between the check and the update; drop the blob.
		_ = s.blobs.Remove(name)
		return "", err
	}
	return path, nil
}

// AddSkill appends a skill row to an existing candidate.
func (s *Service) AddSkill(_ context.Context, candidateID int64, in SkillInput) (*models.Skill, error) {
	if err := apperr.FromValidation(in.Validate()); err != nil {
		return nil, err
	}
	if _, err := s.db.GetCandidate(candidateID); err != nil {
		return nil, err
	}
	skill := &models.Skill{CandidateID: candidateID, Skill: in.Skill, YearsExperience: in.YearsExperience}
	if err := s.db.AddSkill(skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// UpdateSkill overwrites an existing skill row.
func (s *Service) UpdateSkill(_ context.Context, id int64, in SkillInput) (*models.Skill, error) {
	if err := apperr.FromValidation(in.Validate()); err != nil {
		return nil, err
	}
	skill, err := s.db.GetSkill(id)
	if err != nil {
		return nil, err
	}
	skill.Skill = in.Skill
	skill.YearsExperience = in.YearsExperience
	if err := s.db.UpdateSkill(skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// AddEducation appends an education row to an existing candidate.
func (s *Service) AddEducation(_ context.Context, candidateID int64, in EducationInput) (*models.Education, error) {
	if err := apperr.FromValidation(in.Validate()); err != nil {
		return nil, err
	}
	if _, err := s.db.GetCandidate(candidateID); err != nil {
		return nil, err
	}
	edu := &models.Education{
		CandidateID:  candidateID,
		Institution:  in.Institution,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		FromDate:     in.FromDate,
		ToDate:       in.ToDate,
	}
	if err := s.db.AddEducation(edu); err != nil {
		return nil, err
	}
	return edu, nil
}

// UpdateEducation overwrites an existing education row.
func (s *Service) UpdateEducation(_ context.Context, id int64, in EducationInput) (*models.Education, error) {
	if err := apperr.FromValidation(in.Validate()); err != nil {
		return nil, err
	}
	edu, err := s.db.GetEducation(id)
	if err != nil {
		return nil, err
	}
	edu.Institution = in.Institution
	edu.Degree = in.Degree
	edu.FieldOfStudy = in.FieldOfStudy
	edu.FromDate = in.FromDate
	edu.ToDate = in.ToDate
	if err := s.db.UpdateEducation(edu); err != nil {
		return nil, err
	}
	return edu, nil
}

// AddExperience appends a work-experience row to an existing candidate.
func (s *Service) AddExperience(_ context.Context, candidateID int64, in ExperienceInput) (*models.WorkExperience, error) {
	if err := apperr.FromValidation(in.Validate()); err != nil {
		return nil, err
	}
	if _, err := s.db.GetCandidate(candidateID); err != nil {
		return nil, err
	}
	exp := &models.WorkExperience{
		CandidateID: candidateID,
		Company:     in.Company,
		Position:    in.Position,
		FromDate:    in.FromDate,
		ToDate:      in.ToDate,
		Description: in.Description,
	}
	if err := s.db.AddExperience(exp); err != nil {
		return nil, err
	}
	return exp, nil
}

// UpdateExperience overwrites an existing work-experience row.
func (s *Service) UpdateExperience(_ context.Context, id int64, in ExperienceInput) (*models.WorkExperience, error) {
	if err := apperr.FromValidation(in.Validate()); err != nil {
		return nil, err
	}
	exp, err := s.db.GetExperience(id)
	if err != nil {
		return nil, err
	}
	exp.Company = in.Company
	exp.Position = in.Position
	exp.FromDate = in.FromDate
	exp.ToDate = in.ToDate
	exp.Description = in.Description
	if err := s.db.UpdateExperience(exp); err != nil {
		return nil, err
	}
	return exp, nil
}
