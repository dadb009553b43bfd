package mailer

import (
	"testing"

	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
)

func testContext() RenderContext {
	return RenderContext{
		Candidate: &models.Candidate{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Stage:     models.StageTechnical,
		},
		Job: &models.JobPosting{
			Title:      "Backend Engineer",
			Department: "Engineering",
			Location:   "Remote",
		},
	}
}

func TestRenderSubstitutesKnownPlaceholders(t *testing.T) {
	got := Render("Hello {{candidate.first_name}}", testContext())
	if got != "Hello Ada" {
		t.Fatalf("rendered %q", got)
	}
}

func TestRenderAllPaths(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"{{candidate.first_name}} {{candidate.last_name}}", "Ada Lovelace"},
		{"{{candidate.email}}", "ada@example.com"},
		{"{{candidate.stage}}", "Technical Assessment"},
		{"{{job.title}} in {{job.department}} ({{job.location}})", "Backend Engineer in Engineering (Remote)"},
	}
	ctx := testContext()
	for _, tc := range cases {
		if got := Render(tc.in, ctx); got != tc.want {
			t.Errorf("Render(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderLeavesUnknownPlaceholdersVerbatim(t *testing.T) {
	got := Render("Hi {{candidate.nickname}}, re {{job.title}}", testContext())
	want := "Hi {{candidate.nickname}}, re Backend Engineer"
	if got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}

func TestRenderToleratesWhitespaceInsideBraces(t *testing.T) {
	got := Render("Hello {{ candidate.first_name }}", testContext())
	if got != "Hello Ada" {
		t.Fatalf("rendered %q", got)
	}
}

func TestRenderWithoutJobContext(t *testing.T) {
	ctx := testContext()
	ctx.Job = nil
	got := Render("{{candidate.email}} / {{job.title}}", ctx)
	if got != "ada@example.com / {{job.title}}" {
		t.Fatalf("rendered %q", got)
	}
}
