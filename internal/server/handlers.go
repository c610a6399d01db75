package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jonathan/resume-parser/internal/types"
)

// maxUploadBytes caps resume uploads at 16 MiB
const maxUploadBytes = 16 << 20

// UploadResponse is the response for a successful /upload_resume call
type UploadResponse struct {
	Status      string                 `json:"status"`
	CandidateID string                 `json:"candidate_id"`
	Parsed      *types.CandidateRecord `json:"parsed"`
}

// ErrorResponse is the degraded response for an unexpected failure
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// handleUploadResume accepts a multipart resume upload, runs the extraction
// pipeline, and stores the result. The pipeline cannot fail, so the only
// error paths here are a bad request and a storage failure; the latter is
// reported as a degraded {status: error} body rather than an HTTP error.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Status:  "error",
			Message: "missing or invalid file upload",
		})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Status:  "error",
			Message: "failed to read uploaded file",
		})
		return
	}

	filename := header.Filename
	if filename == "" {
		filename = "uploaded_file"
	}

	rec := s.parser.Parse(r.Context(), data, filename)

	candidateID, err := s.store.InsertCandidate(r.Context(), rec, filename)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", filename).Msg("failed to store candidate")
		s.writeJSON(w, http.StatusOK, ErrorResponse{
			Status:  "error",
			Message: "failed to store parsed resume",
		})
		return
	}

	s.writeJSON(w, http.StatusOK, UploadResponse{
		Status:      "success",
		CandidateID: candidateID.String(),
		Parsed:      rec,
	})
}

// handleListCandidates returns all stored candidates, newest first
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.store.ListCandidates(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list candidates")
		s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Status:  "error",
			Message: "failed to list candidates",
		})
		return
	}

	s.writeJSON(w, http.StatusOK, candidates)
}

// handleHealth reports database connectivity
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "db-error"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}
