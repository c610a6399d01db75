package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-parser/internal/db"
	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/jonathan/resume-parser/internal/types"
)

// stubStore implements CandidateStore in memory
type stubStore struct {
	insertErr  error
	listErr    error
	pingErr    error
	inserted   []*types.CandidateRecord
	candidates []db.Candidate
}

func (s *stubStore) InsertCandidate(_ context.Context, rec *types.CandidateRecord, _ string) (uuid.UUID, error) {
	if s.insertErr != nil {
		return uuid.Nil, s.insertErr
	}
	s.inserted = append(s.inserted, rec)
	return uuid.New(), nil
}

func (s *stubStore) ListCandidates(_ context.Context) ([]db.Candidate, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.candidates, nil
}

func (s *stubStore) Ping(_ context.Context) error {
	return s.pingErr
}

// stubParser runs the real fallback extractor so upload tests exercise a
// genuine record shape without a model dependency
type stubParser struct{}

func (stubParser) Parse(_ context.Context, data []byte, _ string) *types.CandidateRecord {
	return parsing.FallbackExtract(string(data))
}

func newTestServer(store *stubStore) *Server {
	return New(Config{Port: 0}, store, stubParser{}, zerolog.Nop())
}

func multipartBody(t *testing.T, fieldName, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestHandleUploadResume_Success(t *testing.T) {
	store := &stubStore{}
	server := newTestServer(store)

	body, contentType := multipartBody(t, "file", "resume.txt", "John Doe\njohn@x.com")
	req := httptest.NewRequest(http.MethodPost, "/upload_resume", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	server.handleUploadResume(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.CandidateID)
	require.NotNil(t, resp.Parsed)
	require.NotNil(t, resp.Parsed.FullName)
	assert.Equal(t, "John Doe", *resp.Parsed.FullName)
	require.NotNil(t, resp.Parsed.Email)
	assert.Equal(t, "john@x.com", *resp.Parsed.Email)

	require.Len(t, store.inserted, 1)
}

func TestHandleUploadResume_MissingFile(t *testing.T) {
	server := newTestServer(&stubStore{})

	body, contentType := multipartBody(t, "document", "resume.txt", "content")
	req := httptest.NewRequest(http.MethodPost, "/upload_resume", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	server.handleUploadResume(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
}

func TestHandleUploadResume_StoreFailureIsDegradedError(t *testing.T) {
	store := &stubStore{insertErr: errors.New("connection reset")}
	server := newTestServer(store)

	body, contentType := multipartBody(t, "file", "resume.txt", "Jane\njane@x.com")
	req := httptest.NewRequest(http.MethodPost, "/upload_resume", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	server.handleUploadResume(w, req)

	// Storage failures surface as a degraded body, not an HTTP error
	require.Equal(t, http.StatusOK, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.NotContains(t, resp.Message, "connection reset", "internal detail must not leak to clients")
}

func TestHandleUploadResume_EmptyFileStillSucceeds(t *testing.T) {
	store := &stubStore{}
	server := newTestServer(store)

	body, contentType := multipartBody(t, "file", "empty.txt", "")
	req := httptest.NewRequest(http.MethodPost, "/upload_resume", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	server.handleUploadResume(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	require.NotNil(t, resp.Parsed)
	assert.Nil(t, resp.Parsed.FullName)
	assert.NotNil(t, resp.Parsed.Skills)
}

func TestHandleListCandidates(t *testing.T) {
	name := "Jane"
	store := &stubStore{candidates: []db.Candidate{
		{ID: uuid.New(), FullName: &name, ResumeFileName: "jane.pdf"},
	}}
	server := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/candidates", nil)
	w := httptest.NewRecorder()

	server.handleListCandidates(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var candidates []db.Candidate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &candidates))
	require.Len(t, candidates, 1)
	assert.Equal(t, "jane.pdf", candidates[0].ResumeFileName)
}

func TestHandleListCandidates_StoreError(t *testing.T) {
	server := newTestServer(&stubStore{listErr: errors.New("db down")})

	req := httptest.NewRequest(http.MethodGet, "/candidates", nil)
	w := httptest.NewRecorder()

	server.handleListCandidates(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name     string
		pingErr  error
		expected string
	}{
		{"Healthy", nil, "ok"},
		{"Database down", errors.New("no route to host"), "db-error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(&stubStore{pingErr: tt.pingErr})

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()

			server.handleHealth(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expected, resp["status"])
		})
	}
}

func TestWithCORS(t *testing.T) {
	server := New(Config{
		Port:           0,
		AllowedOrigins: []string{"http://localhost:3000"},
	}, &stubStore{}, stubParser{}, zerolog.Nop())

	handler := server.withCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Allowed origin echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/candidates", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("Unknown origin gets no CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/candidates", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/upload_resume", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Preflight from disallowed origin rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/upload_resume", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
