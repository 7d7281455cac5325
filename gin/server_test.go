package gin_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	ginlib "github.com/gin-gonic/gin"

	"github.com/fwojciec/grantview"
	"github.com/fwojciec/grantview/fixture"
	"github.com/fwojciec/grantview/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	ginlib.SetMode(ginlib.TestMode)
	os.Exit(m.Run())
}

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func newServer(opts ...gin.Option) *gin.Server {
	opts = append([]gin.Option{gin.WithSeed(7), gin.WithClock(func() time.Time { return fixedNow })}, opts...)
	return gin.NewServer(opts...)
}

func upload(t *testing.T, h http.Handler, name string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/evaluations", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServer_CreateAndFetch(t *testing.T) {
	t.Parallel()

	s := newServer()
	h := s.Handler()

	rec := upload(t, h, "proposal.pdf", []byte("%PDF-1.4 test"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created grantview.Evaluation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "proposal.pdf", created.FileName)
	assert.Equal(t, int64(len("%PDF-1.4 test")), created.FileSize)
	assert.True(t, created.Decision.Valid())
	assert.True(t, fixedNow.Equal(created.CreatedAt.Time))

	rec = get(h, "/api/evaluations/"+created.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched grantview.Evaluation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.OverallScore, fetched.OverallScore)
}

func TestServer_RejectsUnsupportedExtension(t *testing.T) {
	t.Parallel()

	rec := upload(t, newServer().Handler(), "notes.txt", []byte("hello"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid file type")
}

func TestServer_SubmitFailure(t *testing.T) {
	t.Parallel()

	s := newServer(gin.WithSubmitFailure(true))
	h := s.Handler()

	rec := upload(t, h, "proposal.pdf", []byte("%PDF"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	s.SetSubmitFailure(false)
	rec = upload(t, h, "proposal.pdf", []byte("%PDF"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_GetEvaluationErrors(t *testing.T) {
	t.Parallel()

	h := newServer().Handler()

	rec := get(h, "/api/evaluations/not-an-id")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid evaluation ID format")

	rec = get(h, "/api/evaluations/6f1c2e9b-1e8a-4012-8456-789abcdef012")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Evaluation not found"}`, rec.Body.String())
}

func TestServer_SeededEvaluationWithCustomID(t *testing.T) {
	t.Parallel()

	h := newServer(gin.WithEvaluations(fixture.Evaluation(fixture.WithID("ev_123")))).Handler()

	rec := get(h, "/api/evaluations/ev_123")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"decision":"REVISE"`)
}

func TestServer_ListNewestFirst(t *testing.T) {
	t.Parallel()

	older := fixture.Evaluation(fixture.WithID("ev_old"), fixture.WithCreatedAt(fixedNow.Add(-time.Hour)))
	newer := fixture.Evaluation(fixture.WithID("ev_new"), fixture.WithCreatedAt(fixedNow))
	h := newServer(gin.WithEvaluations(older, newer)).Handler()

	rec := get(h, "/api/evaluations")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []grantview.Evaluation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "ev_new", list[0].ID)
	assert.Equal(t, "ev_old", list[1].ID)
}

func TestServer_Download(t *testing.T) {
	t.Parallel()

	e := fixture.Evaluation(fixture.WithID("665f1c2e9b1e8a0012345678"), fixture.WithFile("proposal.pdf", 10))
	h := newServer(gin.WithEvaluations(e)).Handler()

	rec := get(h, "/api/evaluations/"+e.ID+"/download")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=grant_evaluation_proposal_665f1c2e.pdf", rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-1.4"))
	assert.Contains(t, rec.Body.String(), "REVISE 8.4/10")
}

func TestReportFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "grant_evaluation_grant_abc12345.pdf",
		gin.ReportFilename(grantview.Evaluation{ID: "abc1234567", FileName: "grant.docx"}))
	assert.Equal(t, "grant_evaluation_report_ev1.pdf",
		gin.ReportFilename(grantview.Evaluation{ID: "ev1"}))
}

func TestServer_Settings(t *testing.T) {
	t.Parallel()

	s := newServer()
	h := s.Handler()

	t.Run("defaults before any save", func(t *testing.T) {
		rec := get(h, "/api/settings")
		require.Equal(t, http.StatusOK, rec.Code)

		var got grantview.Settings
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int64(50000), got.MaxBudget)
		assert.Equal(t, int64(1000), got.ChunkSize)
		assert.Empty(t, got.ID)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{"max_budget": 750000}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got grantview.Settings
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int64(750000), got.MaxBudget)
		assert.Equal(t, int64(1000), got.ChunkSize)
		assert.NotEmpty(t, got.ID)
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{"chunk_size": 0}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestServer_HealthAndRequestCount(t *testing.T) {
	t.Parallel()

	s := newServer()
	h := s.Handler()

	rec := get(h, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.Equal(t, int64(1), s.Requests())
}
