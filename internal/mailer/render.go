package mailer

import (
	"regexp"
	"strings"

	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
)

// placeholderRe matches {{ dotted.path }} placeholders with optional
// surrounding whitespace.
var placeholderRe = regexp.MustCompile(`\{\{\s*([a-z_]+\.[a-z_]+)\s*\}\}`)

// RenderContext is the fixed substitution context for template rendering.
// Only the documented candidate.* and job.* paths are exposed; there is no
// arbitrary attribute traversal.
type RenderContext struct {
	Candidate *models.Candidate
	Job       *models.JobPosting
}

func (c RenderContext) lookup() map[string]string {
	vars := make(map[string]string, 8)
	if c.Candidate != nil {
		vars["candidate.first_name"] = c.Candidate.FirstName
		vars["candidate.last_name"] = c.Candidate.LastName
		vars["candidate.email"] = c.Candidate.Email
		vars["candidate.stage"] = c.Candidate.Stage.Label()
	}
	if c.Job != nil {
		vars["job.title"] = c.Job.Title
		vars["job.department"] = c.Job.Department
		vars["job.location"] = c.Job.Location
	}
	return vars
}

// Render substitutes the known placeholders in text. Unknown placeholders
// are left verbatim so a typo is visible in the outgoing mail preview
// instead of silently vanishing.
func Render(text string, ctx RenderContext) string {
	vars := ctx.lookup()
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(strings.Trim(match, "{}"))
		if value, ok := vars[path]; ok {
			return value
		}
		return match
	})
}
