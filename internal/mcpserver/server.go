// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes recruiting pipeline tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Madhuram99/ATS-SYSTEM/internal/annotations"
	"github.com/Madhuram99/ATS-SYSTEM/internal/catalog"
	"github.com/Madhuram99/ATS-SYSTEM/internal/models"
	"github.com/Madhuram99/ATS-SYSTEM/internal/pipeline"
	"github.com/Madhuram99/ATS-SYSTEM/internal/store"
)

// Server wraps the MCP server with recruiting tools.
type Server struct {
	mcp         *server.MCPServer
	catalog     *catalog.Service
	pipeline    *pipeline.Service
	annotations *annotations.Service
}

// New creates a new MCP server with all tools registered.
func New(cat *catalog.Service, pipe *pipeline.Service, ann *annotations.Service) *Server {
	s := &Server{catalog: cat, pipeline: pipe, annotations: ann}

	s.mcp = server.NewMCPServer(
		"ATS",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_jobs",
		mcp.WithDescription("List job postings, optionally filtered by status (draft, published, closed)."),
		mcp.WithString("status", mcp.Description("Optional status filter")),
	), s.listJobs)

	s.mcp.AddTool(mcp.NewTool("list_candidates",
		mcp.WithDescription("List candidates, optionally filtered by pipeline stage, job id, or a free-text query over names, email and skills."),
		mcp.WithString("stage", mcp.Description("Optional pipeline stage filter")),
		mcp.WithString("job_id", mcp.Description("Optional job id filter")),
		mcp.WithString("query", mcp.Description("Optional free-text search")),
	), s.listCandidates)

	s.mcp.AddTool(mcp.NewTool("get_candidate",
		mcp.WithDescription("Read a candidate's full profile: skills, education, experience, notes and interviews."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Candidate id")),
	), s.getCandidate)

	s.mcp.AddTool(mcp.NewTool("transition_stage",
		mcp.WithDescription("Move a candidate to another pipeline stage. "+
			"Stages MUST come from the pipeline stage contract; read it first via "+
			"the get_stage_contract tool or the ats://pipeline-stages resource."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Candidate id")),
		mcp.WithString("stage", mcp.Required(), mcp.Description("Target stage identifier (e.g. interview, offer, rejected)")),
	), s.transitionStage)

	s.mcp.AddTool(mcp.NewTool("add_note",
		mcp.WithDescription("Append a recruiter note to a candidate. Notes are immutable once added."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Candidate id")),
		mcp.WithString("author", mcp.Required(), mcp.Description("Note author")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Note text")),
	), s.addNote)

	s.mcp.AddTool(mcp.NewTool("get_stage_contract",
		mcp.WithDescription("Returns the canonical pipeline stage contract. "+
			"Call this before transitioning candidates to ensure valid stage names."),
	), s.getStageContract)

	// Resource: pipeline stage contract.
	s.mcp.AddResource(
		mcp.NewResource("ats://pipeline-stages", "Pipeline Stage Contract",
			mcp.WithResourceDescription("Canonical pipeline stages and their transition rules."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readStageContractResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func requireID(req mcp.CallToolRequest) (int64, error) {
	raw, err := req.RequireString("id")
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", raw)
	}
	return id, nil
}

func (s *Server) listJobs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := req.GetString("status", "")
	jobs, err := s.catalog.List(ctx, models.JobStatus(status))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(jobs, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listCandidates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jobID, _ := strconv.ParseInt(req.GetString("job_id", ""), 10, 64)
	f := store.CandidateFilter{
		Stage: models.Stage(req.GetString("stage", "")),
		JobID: jobID,
		Query: req.GetString("query", ""),
	}
	items, total, err := s.pipeline.ListCandidates(ctx, f)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(map[string]any{"candidates": items, "total": total}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getCandidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.pipeline.GetCandidate(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: candidate %d", id)), nil
	}
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) transitionStage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	stage, err := req.RequireString("stage")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cand, label, err := s.pipeline.TransitionStage(ctx, id, models.Stage(stage))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("candidate %d moved to %s (%s)", cand.ID, cand.Stage, label)), nil
}

func (s *Server) addNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.annotations.AddNote(ctx, id, annotations.NoteInput{Author: author, Content: content})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("note %d added to candidate %d", note.ID, id)), nil
}

func (s *Server) getStageContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(PipelineStageContract), nil
}

func (s *Server) readStageContractResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ats://pipeline-stages",
			MIMEType: "text/markdown",
			Text:     PipelineStageContract,
		},
	}, nil
}
