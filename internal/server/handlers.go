package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rmoreno/cadet/internal/geometry"
	"github.com/rmoreno/cadet/internal/jobs"
	"github.com/rmoreno/cadet/internal/parser"
	"github.com/rmoreno/cadet/internal/plan"
	"github.com/rmoreno/cadet/internal/store"
)

// minInstructionRunes is the minimum length of a usable instruction.
const minInstructionRunes = 3

type instructionRequest struct {
	Instruction string `json:"instruction"`
	UseAI       bool   `json:"use_ai"`
}

type generateRequest struct {
	Instruction string `json:"instruction"`
	UseAI       bool   `json:"use_ai"`
	ExportSTL   bool   `json:"export_stl"`
	ExportOBJ   bool   `json:"export_obj"`
}

type parseResponse struct {
	SchemaVersion    string           `json:"schema_version"`
	Source           parser.Source    `json:"source"`
	Plan             []string         `json:"plan"`
	ParsedParameters parser.Command   `json:"parsed_parameters"`
	Operations       []parser.Command `json:"operations"`
}

type generateResponse struct {
	Source  parser.Source `json:"source"`
	Summary string        `json:"summary"`
	STLURL  string        `json:"stl_url,omitempty"`
	OBJURL  string        `json:"obj_url,omitempty"`
}

// decodeInstruction reads and validates the request body. It writes the
// error response itself and reports whether the caller should proceed.
func decodeInstruction(w http.ResponseWriter, r *http.Request, dst interface{ instruction() string }) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	text := strings.TrimSpace(dst.instruction())
	if utf8.RuneCountInString(text) < minInstructionRunes {
		writeError(w, http.StatusBadRequest, "instruction must be at least 3 characters")
		return false
	}
	return true
}

func (req *instructionRequest) instruction() string { return req.Instruction }
func (req *generateRequest) instruction() string    { return req.Instruction }

func (s *Server) handleProcessInstruction(w http.ResponseWriter, r *http.Request) {
	s.processInstruction(w, r, true)
}

func (s *Server) handleDryRun(w http.ResponseWriter, r *http.Request) {
	s.processInstruction(w, r, false)
}

func (s *Server) processInstruction(w http.ResponseWriter, r *http.Request, persist bool) {
	var req instructionRequest
	if !decodeInstruction(w, r, &req) {
		return
	}

	useAI := s.useAI && req.UseAI
	commands := s.interp.ParseAll(r.Context(), req.Instruction, useAI)
	primary := commands[0]

	var steps []string
	for _, cmd := range commands {
		steps = append(steps, plan.Render(cmd)...)
	}

	if persist && s.history != nil {
		for _, cmd := range commands {
			if _, err := s.history.Save(r.Context(), req.Instruction, cmd); err != nil {
				s.logger.Error("failed to save command", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "failed to save command")
				return
			}
		}
	}

	writeJSON(w, http.StatusOK, parseResponse{
		SchemaVersion:    SchemaVersion,
		Source:           primary.Source,
		Plan:             steps,
		ParsedParameters: primary,
		Operations:       commands,
	})
}

func (s *Server) handleGenerateModel(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeInstruction(w, r, &req) {
		return
	}

	useAI := s.useAI && req.UseAI
	cmd := s.interp.Parse(r.Context(), req.Instruction, useAI)

	mesh, err := geometry.Build(cmd)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build model: %v", err))
		return
	}

	resp := generateResponse{
		Source:  cmd.Source,
		Summary: strings.Join(plan.Render(cmd), "; "),
	}

	if req.ExportSTL {
		name, err := s.exporter.Export(mesh, geometry.FormatSTL, "model")
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to export STL: %v", err))
			return
		}
		resp.STLURL = "/outputs/" + name
	}
	if req.ExportOBJ {
		name, err := s.exporter.Export(mesh, geometry.FormatOBJ, "model")
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to export OBJ: %v", err))
			return
		}
		resp.OBJURL = "/outputs/" + name
	}

	writeJSON(w, http.StatusOK, resp)
}

type createJobRequest struct {
	Instruction string `json:"instruction"`
	UseAI       bool   `json:"use_ai"`
	Format      string `json:"format"`
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Instruction)) < minInstructionRunes {
		writeError(w, http.StatusBadRequest, "instruction must be at least 3 characters")
		return
	}

	format := geometry.FormatSTL
	if req.Format != "" {
		var err error
		if format, err = geometry.ParseFormat(req.Format); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	useAI := s.useAI && req.UseAI
	cmd := s.interp.Parse(r.Context(), req.Instruction, useAI)

	job := s.tracker.Start(req.Instruction, string(format), s.buildWork(cmd, format))

	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": job.ID})
}

// buildWork returns the work func that builds and exports the model for
// a background job.
func (s *Server) buildWork(cmd parser.Command, format geometry.Format) jobs.WorkFunc {
	return func(ctx context.Context) (string, error) {
		mesh, err := geometry.Build(cmd)
		if err != nil {
			return "", err
		}
		return s.exporter.Export(mesh, format, "model")
	}
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, err := s.tracker.Get(id)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"jobs": s.tracker.List()})
}

func (s *Server) handleListOutputs(w http.ResponseWriter, r *http.Request) {
	files, err := s.exporter.ListOutputs()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list outputs")
		return
	}
	if files == nil {
		files = []geometry.OutputFile{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"files": files})
}

func (s *Server) handleDownloadOutput(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "file")
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		writeError(w, http.StatusBadRequest, "invalid file name")
		return
	}

	path := filepath.Join(s.exporter.Dir(), name)
	http.ServeFile(w, r, path)
}

func (s *Server) handleListCommands(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := s.history.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list commands", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list commands")
		return
	}
	if records == nil {
		records = []store.CommandRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"commands": records})
}
