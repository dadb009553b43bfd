package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Madhuram99/ATS-SYSTEM/internal/annotations"
	"github.com/Madhuram99/ATS-SYSTEM/internal/apperr"
	"github.com/Madhuram99/ATS-SYSTEM/internal/catalog"
	"github.com/Madhuram99/ATS-SYSTEM/internal/mailer"
	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
	"github.com/Madhuram99/ATS-SYSTEM/internal/pipeline"
	"github.com/Madhuram99/ATS-SYSTEM/internal/store"
	"github.com/Madhuram99/ATS-SYSTEM/internal/testutil"
)

type fakeSender struct {
	sent []mailer.Message
	err  error
}

func (f *fakeSender) Send(msg mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type testEnv struct {
	router http.Handler
	db     *store.DB
	sender *fakeSender
}

// newTestEnv sets up a temp database, resume store, services, and a router
// shaped like the one the server mounts: API under /api, resume files at
// /resumes/{filename}.
func newTestEnv(t *testing.T, authToken string) *testEnv {
	t.Helper()

	db := testutil.TestDB(t)
	blobs := testutil.TestResumes(t)
	sender := &fakeSender{}

	svcs := Services{
		Catalog:     catalog.NewService(db),
		Pipeline:    pipeline.NewService(db, blobs, nil),
		Annotations: annotations.NewService(db, nil),
		Mailer:      mailer.NewService(db, sender),
	}
	enabled := authToken != ""

	r := chi.NewRouter()
	r.Mount("/api", NewRouter(svcs, enabled, authToken, nil))
	r.Get("/resumes/{filename}", NewResumeHandler(blobs).ServeFile)

	return &testEnv{router: r, db: db, sender: sender}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedJob(t *testing.T) int64 {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/jobs", map[string]any{
		"title":      "Backend Engineer",
		"department": "Engineering",
		"location":   "Remote",
		"status":     "published",
		"created_by": "riley",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("seed job status = %d, body = %s", w.Code, w.Body.String())
	}
	var job models.JobPosting
	_ = json.Unmarshal(w.Body.Bytes(), &job)
	return job.ID
}

func (e *testEnv) seedCandidate(t *testing.T, jobID int64, email string) int64 {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/candidates", map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      email,
		"job_id":     jobID,
		"skills":     []map[string]any{{"skill": "Go", "years_experience": 5}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("seed candidate status = %d, body = %s", w.Code, w.Body.String())
	}
	var cand models.Candidate
	_ = json.Unmarshal(w.Body.Bytes(), &cand)
	return cand.ID
}

func TestCreateAndGetCandidate(t *testing.T) {
	env := newTestEnv(t, "")
	jobID := env.seedJob(t)
	candID := env.seedCandidate(t, jobID, "ada@example.com")

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/candidates/%d", candID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, body = %s", w.Code, w.Body.String())
	}
	var detail CandidateDetail
	_ = json.Unmarshal(w.Body.Bytes(), &detail)
	if detail.Stage != models.StageNew {
		t.Errorf("stage = %q, want new", detail.Stage)
	}
	if detail.StageLabel != "New" {
		t.Errorf("stage_label = %q", detail.StageLabel)
	}
	if len(detail.Skills) != 1 || detail.Skills[0].Skill != "Go" {
		t.Errorf("skills = %+v", detail.Skills)
	}
}

func TestCreateCandidateDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, "")
	jobID := env.seedJob(t)
	env.seedCandidate(t, jobID, "dup@example.com")

	w := env.do(t, http.MethodPost, "/api/candidates", map[string]any{
		"first_name": "Grace",
		"last_name":  "Hopper",
		"email":      "dup@example.com",
		"job_id":     jobID,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("duplicate create = %d, want 422, body = %s", w.Code, w.Body.String())
	}
	var resp validationResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if _, ok := resp.Fields["email"]; !ok {
		t.Errorf("fields = %v, want email key", resp.Fields)
	}
}

func TestCreateCandidateInvalidSubRecordRollsBack(t *testing.T) {
	env := newTestEnv(t, "")
	jobID := env.seedJob(t)

	w := env.do(t, http.MethodPost, "/api/candidates", map[string]any{
		"first_name": "Grace",
		"last_name":  "Hopper",
		"email":      "grace@example.com",
		"job_id":     jobID,
		"skills":     []map[string]any{{"skill": ""}},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if _, total, err := env.db.ListCandidates(store.CandidateFilter{}); err != nil || total != 0 {
		t.Errorf("candidates after failed create = %d (err %v), want 0", total, err)
	}
}

func TestStageTransition(t *testing.T) {
	env := newTestEnv(t, "")
	jobID := env.seedJob(t)
	candID := env.seedCandidate(t, jobID, "ada@example.com")

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/candidates/%d/stage", candID),
		StageRequest{Stage: "technical"})
	if w.Code != http.StatusOK {
		t.Fatalf("transition status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp StageResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Candidate.Stage != models.StageTechnical {
		t.Errorf("stage = %q", resp.Candidate.Stage)
	}
	if resp.Label != "Technical Assessment" {
		t.Errorf("label = %q", resp.Label)
	}

	// Unknown stage is rejected.
	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/candidates/%d/stage", candID),
		StageRequest{Stage: "limbo"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown stage = %d, want 422", w.Code)
	}
}

func TestStageTransitionUnknownCandidate(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(t, http.MethodPost, "/api/candidates/9999/stage", StageRequest{Stage: "offer"})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestScheduleInterviewNudgesStage(t *testing.T) {
	env := newTestEnv(t, "")
	jobID := env.seedJob(t)
	candID := env.seedCandidate(t, jobID, "ada@example.com")

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/candidates/%d/interviews", candID), map[string]any{
		"interviewers":     []string{"sam", "lee"},
		"scheduled_at":     time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"duration":         60,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("schedule status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Stage      models.Stage `json:"stage"`
		StageLabel string       `json:"stage_label"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Stage != models.StageInterview {
		t.Errorf("stage = %q, want interview", resp.Stage)
	}
}

func TestScheduleInterviewInPast(t *testing.T) {
	env := newTestEnv(t, "")
	jobID := env.seedJob(t)
	candID := env.seedCandidate(t, jobID, "ada@example.com")

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/candidates/%d/interviews", candID), map[string]any{
		"interviewers":     []string{"sam"},
		"scheduled_at":     time.Now().Add(-time.Hour).Format(time.RFC3339),
		"duration":         60,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body = %s", w.Code, w.Body.String())
	}
	var resp validationResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if _, ok := resp.Fields["scheduled_at"]; !ok {
		t.Errorf("fields = %v, want scheduled_at key", resp.Fields)
	}
}

func TestAddNote(t *testing.T) {
	env := newTestEnv(t, "")
	jobID := env.seedJob(t)
	candID := env.seedCandidate(t, jobID, "ada@example.com")

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/candidates/%d/notes", candID),
		annotations.NoteInput{Author: "riley", Content: "strong systems background"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add note = %d, body = %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/candidates/%d/notes", candID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list notes = %d", w.Code)
	}
	var resp struct {
		Notes []models.Note `json:"notes"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Notes) != 1 || resp.Notes[0].Author != "riley" {
		t.Errorf("notes = %+v", resp.Notes)
	}

	// Missing author is rejected.
	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/candidates/%d/notes", candID),
		annotations.NoteInput{Content: "anonymous"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("missing author = %d, want 422", w.Code)
	}
}

func TestResumeUploadAndServe(t *testing.T) {
	env := newTestEnv(t, "")
	jobID := env.seedJob(t)
	candID := env.seedCandidate(t, jobID, "ada@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("resume", "cv.pdf")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write([]byte("%PDF-1.4 fake resume"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/candidates/%d/resume", candID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body = %s", w.Code, w.Body.String())
	}
	var up ResumeUploadResponse
	_ = json.Unmarshal(w.Body.Bytes(), &up)
	if !strings.HasPrefix(up.ResumePath, "resumes/") || !strings.HasSuffix(up.ResumePath, ".pdf") {
		t.Fatalf("resume_path = %q", up.ResumePath)
	}

	// Stored file is served back at its public path.
	w = env.do(t, http.MethodGet, "/"+up.ResumePath, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("serve status = %d", w.Code)
	}
	if got := w.Body.String(); got != "%PDF-1.4 fake resume" {
		t.Errorf("served body = %q", got)
	}
}

func TestResumeServeRejectsTraversal(t *testing.T) {
	env := newTestEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/resumes/..%2F..%2Fetc%2Fpasswd", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSendEmailRendersAndDelivers(t *testing.T) {
	env := newTestEnv(t, "")
	jobID := env.seedJob(t)
	candID := env.seedCandidate(t, jobID, "ada@example.com")

	w := env.do(t, http.MethodPost, "/api/templates", mailer.TemplateInput{
		Name:    "Invite",
		Type:    "interview_invitation",
		Subject: "Interview for {{job.title}}",
		Body:    "Hello {{candidate.first_name}}",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create template = %d, body = %s", w.Code, w.Body.String())
	}
	var tpl models.EmailTemplate
	_ = json.Unmarshal(w.Body.Bytes(), &tpl)

	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/candidates/%d/email", candID),
		mailer.SendInput{TemplateID: tpl.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("send status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(env.sender.sent) != 1 {
		t.Fatalf("sent %d messages", len(env.sender.sent))
	}
	msg := env.sender.sent[0]
	if msg.Subject != "Interview for Backend Engineer" || msg.Body != "Hello Ada" {
		t.Errorf("rendered = %+v", msg)
	}
}

func TestSendEmailTransportFailure(t *testing.T) {
	env := newTestEnv(t, "")
	jobID := env.seedJob(t)
	candID := env.seedCandidate(t, jobID, "ada@example.com")
	env.sender.err = apperr.ErrDeliveryFailed

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/candidates/%d/email", candID),
		mailer.SendInput{Subject: "Hi", Body: "there"})
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502, body = %s", w.Code, w.Body.String())
	}
}

func TestCandidateListFilters(t *testing.T) {
	env := newTestEnv(t, "")
	jobID := env.seedJob(t)
	env.seedCandidate(t, jobID, "ada@example.com")
	otherID := env.seedCandidate(t, jobID, "grace@example.com")

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/candidates/%d/stage", otherID),
		StageRequest{Stage: "offer"})
	if w.Code != http.StatusOK {
		t.Fatalf("transition = %d", w.Code)
	}

	w = env.do(t, http.MethodGet, "/api/candidates?stage=offer", nil)
	var resp CandidateListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 1 || len(resp.Candidates) != 1 {
		t.Fatalf("filtered = %+v", resp)
	}
	if resp.Candidates[0].ID != otherID {
		t.Errorf("got candidate %d", resp.Candidates[0].ID)
	}
}

func TestJobDelete(t *testing.T) {
	env := newTestEnv(t, "")
	jobID := env.seedJob(t)
	candID := env.seedCandidate(t, jobID, "ada@example.com")

	w := env.do(t, http.MethodDelete, fmt.Sprintf("/api/jobs/%d", jobID), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", w.Code)
	}

	// Candidates are removed with the job.
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/candidates/%d", candID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("candidate after job delete = %d, want 404", w.Code)
	}
}

func TestAuthDisabledMode(t *testing.T) {
	env := newTestEnv(t, "")
	w := env.do(t, http.MethodGet, "/api/jobs", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 without auth", w.Code)
	}
}

func TestAuthTokenMode(t *testing.T) {
	env := newTestEnv(t, "sekret")

	// No header.
	w := env.do(t, http.MethodGet, "/api/jobs", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no header = %d, want 401", w.Code)
	}

	// Wrong token.
	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong token = %d, want 401", rec.Code)
	}

	// Correct token.
	req = httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.Header.Set("Authorization", "Bearer sekret")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token = %d, want 200", rec.Code)
	}
}
