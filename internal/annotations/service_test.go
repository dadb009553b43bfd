package annotations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Madhuram99/ATS-SYSTEM/internal/apperr"
	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
	"github.com/Madhuram99/ATS-SYSTEM/internal/store"
	"github.com/Madhuram99/ATS-SYSTEM/internal/testutil"
)

func testService(t *testing.T) (*Service, *store.DB, *models.Candidate) {
	t.Helper()
	db := testutil.TestDB(t)
	svc := NewService(db, nil)

	job := &models.JobPosting{Title: "SRE", Status: models.JobStatusPublished}
	if err := db.CreateJob(job); err != nil {
		t.Fatal(err)
	}
	c := &models.Candidate{FirstName: "Ada", LastName: "L", Email: "ada@example.com", JobID: job.ID}
	if err := db.CreateCandidate(c, nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	return svc, db, c
}

func TestAddNote(t *testing.T) {
	svc, db, c := testService(t)

	note, err := svc.AddNote(context.Background(), c.ID, NoteInput{Author: "recruiter@example.com", Content: "strong"})
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if note.ID == 0 || note.CreatedAt.IsZero() {
		t.Errorf("note not fully populated: %+v", note)
	}

	notes, err := db.ListNotes(c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 1 || notes[0].Author != "recruiter@example.com" {
		t.Errorf("notes = %+v", notes)
	}
}

func TestAddNoteMissingFields(t *testing.T) {
	svc, _, c := testService(t)

	_, err := svc.AddNote(context.Background(), c.ID, NoteInput{Author: "", Content: "x"})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if _, ok := ve.Fields["author"]; !ok {
		t.Errorf("fields = %v, want author", ve.Fields)
	}
}

func TestScheduleInterviewNudges(t *testing.T) {
	svc, _, c := testService(t)

	iv, stage, err := svc.ScheduleInterview(context.Background(), c.ID, InterviewInput{
		Interviewers: []string{"alice", "bob"},
		ScheduledAt:  time.Now().Add(24 * time.Hour),
		Duration:     60,
		Location:     "Room 4",
	})
	if err != nil {
		t.Fatalf("ScheduleInterview: %v", err)
	}
	if stage != models.StageInterview {
		t.Errorf("stage = %q, want interview", stage)
	}
	if iv.Status != models.InterviewScheduled {
		t.Errorf("status = %q", iv.Status)
	}
	if iv.JobID != c.JobID {
		t.Errorf("job defaulting failed, job = %d", iv.JobID)
	}
}

func TestScheduleInterviewNoDowngrade(t *testing.T) {
	svc, db, c := testService(t)
	if err := db.UpdateStage(c.ID, models.StageTechnical); err != nil {
		t.Fatal(err)
	}

	_, stage, err := svc.ScheduleInterview(context.Background(), c.ID, InterviewInput{
		Interviewers: []string{"alice"},
		ScheduledAt:  time.Now().Add(time.Hour),
		Duration:     30,
	})
	if err != nil {
		t.Fatal(err)
	}
	if stage != models.StageTechnical {
		t.Errorf("stage = %q, want technical (no downgrade)", stage)
	}
}

func TestScheduleInterviewInPast(t *testing.T) {
	svc, db, c := testService(t)

	_, _, err := svc.ScheduleInterview(context.Background(), c.ID, InterviewInput{
		Interviewers: []string{"alice"},
		ScheduledAt:  time.Now().Add(-time.Hour),
		Duration:     30,
	})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if _, ok := ve.Fields["scheduled_at"]; !ok {
		t.Errorf("fields = %v, want scheduled_at", ve.Fields)
	}

	// No interview may persist, and the stage stays untouched.
	interviews, err := db.ListInterviews(c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(interviews) != 0 {
		t.Errorf("interviews = %d, want 0", len(interviews))
	}
	got, _ := db.GetCandidate(c.ID)
	if got.Stage != models.StageNew {
		t.Errorf("stage = %q, want new", got.Stage)
	}
}

func TestScheduleInterviewRequiresInterviewers(t *testing.T) {
	svc, _, c := testService(t)

	_, _, err := svc.ScheduleInterview(context.Background(), c.ID, InterviewInput{
		ScheduledAt: time.Now().Add(time.Hour),
		Duration:    30,
	})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if _, ok := ve.Fields["interviewers"]; !ok {
		t.Errorf("fields = %v, want interviewers", ve.Fields)
	}
}

func TestSetStatus(t *testing.T) {
	svc, _, c := testService(t)
	ctx := context.Background()

	iv, _, err := svc.ScheduleInterview(ctx, c.ID, InterviewInput{
		Interviewers: []string{"alice"},
		ScheduledAt:  time.Now().Add(time.Hour),
		Duration:     30,
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.SetStatus(ctx, iv.ID, models.InterviewCompleted)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.Status != models.InterviewCompleted {
		t.Errorf("status = %q", updated.Status)
	}

	if _, err := svc.SetStatus(ctx, iv.ID, "postponed"); err == nil {
		t.Error("unknown status should be rejected")
	}
	if _, err := svc.SetStatus(ctx, 9999, models.InterviewCancelled); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
