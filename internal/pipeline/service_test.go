package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Madhuram99/ATS-SYSTEM/internal/apperr"
	"github.com/Madhuram99/ATS-SYSTEM/internal/events"
	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
	"github.com/Madhuram99/ATS-SYSTEM/internal/store"
	"github.com/Madhuram99/ATS-SYSTEM/internal/testutil"
)

type capturePublisher struct {
	published []events.Event
}

func (p *capturePublisher) Publish(e events.Event) {
	p.published = append(p.published, e)
}

func testService(t *testing.T) (*Service, *capturePublisher, int64) {
	t.Helper()
	db := testutil.TestDB(t)
	blobs := testutil.TestResumes(t)
	pub := &capturePublisher{}
	svc := NewService(db, blobs, pub)

	job := &models.JobPosting{Title: "SRE", Status: models.JobStatusPublished}
	if err := db.CreateJob(job); err != nil {
		t.Fatal(err)
	}
	return svc, pub, job.ID
}

func validInput(jobID int64, email string) CandidateInput {
	return CandidateInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		JobID:     jobID,
	}
}

func TestCreateCandidateAllOrNothing(t *testing.T) {
	svc, _, jobID := testService(t)
	ctx := context.Background()

	in := validInput(jobID, "ada@example.com")
	in.Skills = []SkillInput{{Skill: "Go", YearsExperience: 3}, {Skill: "SQL"}}
	in.Education = []EducationInput{{Institution: "Cambridge", Degree: "BA", FromDate: "1835-09-01"}}
	in.Experience = []ExperienceInput{{Company: "Analytical Engines", Position: "Programmer", FromDate: "1842-01-01"}}

	c, err := svc.CreateCandidate(ctx, in)
	if err != nil {
		t.Fatalf("CreateCandidate: %v", err)
	}
	if c.Stage != models.StageNew {
		t.Errorf("stage = %q, want new", c.Stage)
	}

	detail, err := svc.GetCandidate(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(detail.Skills) + len(detail.Education) + len(detail.Experience); got != 4 {
		t.Errorf("sub-records = %d, want 4", got)
	}
}

func TestCreateCandidateInvalidRowCommitsNothing(t *testing.T) {
	svc, _, jobID := testService(t)
	ctx := context.Background()

	in := validInput(jobID, "ada@example.com")
	in.Skills = []SkillInput{{Skill: "Go"}, {Skill: ""}} // second row invalid

	_, err := svc.CreateCandidate(ctx, in)
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if _, ok := ve.Fields["skills[1].skill"]; !ok {
		t.Errorf("fields = %v, want skills[1].skill key", ve.Fields)
	}

	_, total, err := svc.ListCandidates(ctx, listAll())
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Errorf("candidate count = %d, want 0", total)
	}
}

func TestCreateCandidateDuplicateEmailIsFieldError(t *testing.T) {
	svc, _, jobID := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateCandidate(ctx, validInput(jobID, "dup@example.com")); err != nil {
		t.Fatal(err)
	}

	in := validInput(jobID, "dup@example.com")
	in.Skills = []SkillInput{{Skill: "Go"}}
	_, err := svc.CreateCandidate(ctx, in)
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if !strings.Contains(ve.Fields["email"], "already exists") {
		t.Errorf("email field message = %q", ve.Fields["email"])
	}

	_, total, _ := svc.ListCandidates(ctx, listAll())
	if total != 1 {
		t.Errorf("candidate count = %d, want 1", total)
	}
}

func TestCreateCandidateUnknownJob(t *testing.T) {
	svc, _, _ := testService(t)
	_, err := svc.CreateCandidate(context.Background(), validInput(9999, "x@example.com"))
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTransitionStage(t *testing.T) {
	svc, pub, jobID := testService(t)
	ctx := context.Background()

	c, err := svc.CreateCandidate(ctx, validInput(jobID, "ada@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	updated, label, err := svc.TransitionStage(ctx, c.ID, models.StageTechnical)
	if err != nil {
		t.Fatalf("TransitionStage: %v", err)
	}
	if updated.Stage != models.StageTechnical {
		t.Errorf("stage = %q", updated.Stage)
	}
	if label != "Technical Assessment" {
		t.Errorf("label = %q, want Technical Assessment", label)
	}

	// Any stage is reachable from any stage, including moving backwards.
	if _, _, err := svc.TransitionStage(ctx, c.ID, models.StageScreening); err != nil {
		t.Errorf("backward transition should be allowed: %v", err)
	}

	var stageEvents int
	for _, e := range pub.published {
		if e.Type == "candidate.stage" {
			stageEvents++
		}
	}
	if stageEvents != 2 {
		t.Errorf("stage events = %d, want 2", stageEvents)
	}
}

func TestTransitionStageUnknownValue(t *testing.T) {
	svc, _, jobID := testService(t)
	ctx := context.Background()
	c, err := svc.CreateCandidate(ctx, validInput(jobID, "ada@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	_, _, err = svc.TransitionStage(ctx, c.ID, "paused")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}

	detail, _ := svc.GetCandidate(ctx, c.ID)
	if detail.Stage != models.StageNew {
		t.Errorf("stage = %q, should be untouched", detail.Stage)
	}
}

func TestAttachResume(t *testing.T) {
	svc, _, jobID := testService(t)
	ctx := context.Background()
	c, err := svc.CreateCandidate(ctx, validInput(jobID, "ada@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	path, err := svc.AttachResume(ctx, c.ID, "Ada Lovelace.pdf", strings.NewReader("pdf"))
	if err != nil {
		t.Fatalf("AttachResume: %v", err)
	}
	if !strings.HasPrefix(path, "resumes/") || !strings.HasSuffix(path, ".pdf") {
		t.Errorf("path = %q", path)
	}
	if strings.Contains(path, "Ada") {
		t.Errorf("original filename should not leak into %q", path)
	}

	detail, _ := svc.GetCandidate(ctx, c.ID)
	if detail.ResumePath != path {
		t.Errorf("resume_path = %q, want %q", detail.ResumePath, path)
	}
}

func TestSubRecordAddAndEdit(t *testing.T) {
	svc, _, jobID := testService(t)
	ctx := context.Background()
	c, err := svc.CreateCandidate(ctx, validInput(jobID, "ada@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	skill, err := svc.AddSkill(ctx, c.ID, SkillInput{Skill: "Go", YearsExperience: 2})
	if err != nil {
		t.Fatalf("AddSkill: %v", err)
	}
	if _, err := svc.UpdateSkill(ctx, skill.ID, SkillInput{Skill: "Go", YearsExperience: 4}); err != nil {
		t.Fatalf("UpdateSkill: %v", err)
	}

	edu, err := svc.AddEducation(ctx, c.ID, EducationInput{Institution: "MIT", Degree: "BSc", FromDate: "2010-09-01"})
	if err != nil {
		t.Fatalf("AddEducation: %v", err)
	}
	if _, err := svc.UpdateEducation(ctx, edu.ID, EducationInput{Institution: "MIT", Degree: "MSc", FromDate: "2010-09-01"}); err != nil {
		t.Fatalf("UpdateEducation: %v", err)
	}

	exp, err := svc.AddExperience(ctx, c.ID, ExperienceInput{Company: "ACME", Position: "Dev", FromDate: "2015-01-01"})
	if err != nil {
		t.Fatalf("AddExperience: %v", err)
	}
	if _, err := svc.UpdateExperience(ctx, exp.ID, ExperienceInput{Company: "ACME", Position: "Lead", FromDate: "2015-01-01"}); err != nil {
		t.Fatalf("UpdateExperience: %v", err)
	}

	detail, _ := svc.GetCandidate(ctx, c.ID)
	if detail.Skills[0].YearsExperience != 4 {
		t.Errorf("skill years = %d, want 4", detail.Skills[0].YearsExperience)
	}
	if detail.Education[0].Degree != "MSc" {
		t.Errorf("degree = %q, want MSc", detail.Education[0].Degree)
	}
	if detail.Experience[0].Position != "Lead" {
		t.Errorf("position = %q, want Lead", detail.Experience[0].Position)
	}
}

func TestSubRecordBadDate(t *testing.T) {
	svc, _, jobID := testService(t)
	ctx := context.Background()
	c, err := svc.CreateCandidate(ctx, validInput(jobID, "ada@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.AddEducation(ctx, c.ID, EducationInput{Institution: "MIT", Degree: "BSc", FromDate: "not-a-date"})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func listAll() store.CandidateFilter { return store.CandidateFilter{} }
