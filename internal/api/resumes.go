package api

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/Madhuram99/ATS-SYSTEM/internal/resumes"
)

// ResumeHandler serves stored resume files.
type ResumeHandler struct {
	blobs *resumes.FS
}

// NewResumeHandler creates a handler over the resume blob store.
func NewResumeHandler(blobs *resumes.FS) *ResumeHandler {
	return &ResumeHandler{blobs: blobs}
}

// ServeFile handles GET /resumes/{filename}. Stored names are generated
// server-side, so anything that fails the name check is a client error.
func (h *ResumeHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	abs, err := h.blobs.Abs(filename)
	if err != nil {
		http.Error(w, "invalid filename", http.StatusBadRequest)
		return
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}
