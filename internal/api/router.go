package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Madhuram99/ATS-SYSTEM/internal/annotations"
	"github.com/Madhuram99/ATS-SYSTEM/internal/catalog"
	"github.com/Madhuram99/ATS-SYSTEM/internal/mailer"
	"github.com/Madhuram99/ATS-SYSTEM/internal/pipeline"
)

// Services bundles the domain services the router dispatches to.
type Services struct {
	Catalog     *catalog.Service
	Pipeline    *pipeline.Service
	Annotations *annotations.Service
	Mailer      *mailer.Service
}

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svcs Services, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	jh := NewJobHandler(svcs.Catalog)
	ch := NewCandidateHandler(svcs.Pipeline)
	ah := NewAnnotationHandler(svcs.Annotations)
	th := NewTemplateHandler(svcs.Mailer)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Job catalog.
	r.Get("/jobs", jh.List)
	r.Post("/jobs", jh.Create)
	r.Get("/jobs/{id}", jh.Get)
	r.Put("/jobs/{id}", jh.Update)
	r.Delete("/jobs/{id}", jh.Delete)

	// Candidate pipeline.
	r.Get("/candidates", ch.List)
	r.Post("/candidates", ch.Create)
	r.Get("/candidates/{id}", ch.Get)
	r.Post("/candidates/{id}/stage", ch.Transition)
	r.Post("/candidates/{id}/resume", ch.UploadResume)

	// Candidate sub-records.
	r.Post("/candidates/{id}/skills", ch.AddSkill)
	r.Put("/skills/{id}", ch.UpdateSkill)
	r.Post("/candidates/{id}/education", ch.AddEducation)
	r.Put("/education/{id}", ch.UpdateEducation)
	r.Post("/candidates/{id}/experience", ch.AddExperience)
	r.Put("/experience/{id}", ch.UpdateExperience)

	// Notes and interviews.
	r.Get("/candidates/{id}/notes", ah.ListNotes)
	r.Post("/candidates/{id}/notes", ah.AddNote)
	r.Get("/candidates/{id}/interviews", ah.ListInterviews)
	r.Post("/candidates/{id}/interviews", ah.Schedule)
	r.Post("/interviews/{id}/status", ah.SetStatus)

	// Email templates and sending.
	r.Get("/templates", th.List)
	r.Post("/templates", th.Create)
	r.Get("/templates/{id}", th.Get)
	r.Put("/templates/{id}", th.Update)
	r.Post("/candidates/{id}/email", th.SendEmail)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
