// Package gin implements an in-memory stand-in for the evaluation backend.
//
// It serves the same routes as the real service and answers with fixture
// evaluations, so the client and the terminal UI can be exercised without the
// scoring pipeline. It is never used by the client itself.
package gin

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	ginlib "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fwojciec/grantview"
	"github.com/fwojciec/grantview/fixture"
)

// Server holds the stand-in backend's state.
type Server struct {
	mu          sync.Mutex
	evaluations map[string]grantview.Evaluation
	settings    *grantview.Settings
	rand        *rand.Rand

	latency         time.Duration
	failSubmissions atomic.Bool
	requests        atomic.Int64
	now             func() time.Time
	logger          *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLatency delays every submission, imitating the scoring pipeline.
func WithLatency(d time.Duration) Option {
	return func(s *Server) {
		s.latency = d
	}
}

// WithSubmitFailure makes every submission fail with a server error.
func WithSubmitFailure(fail bool) Option {
	return func(s *Server) {
		s.failSubmissions.Store(fail)
	}
}

// WithEvaluations seeds stored evaluations.
func WithEvaluations(evaluations ...grantview.Evaluation) Option {
	return func(s *Server) {
		for _, e := range evaluations {
			s.evaluations[e.ID] = e
		}
	}
}

// WithSettings seeds the stored settings.
func WithSettings(settings grantview.Settings) Option {
	return func(s *Server) {
		s.settings = &settings
	}
}

// WithSeed makes generated scores reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Server) {
		s.rand = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithClock sets the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a stand-in backend.
func NewServer(opts ...Option) *Server {
	s := &Server{
		evaluations: make(map[string]grantview.Evaluation),
		rand:        rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// SetSubmitFailure toggles failing submissions at runtime.
func (s *Server) SetSubmitFailure(fail bool) {
	s.failSubmissions.Store(fail)
}

// Requests returns how many requests have been served.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

// Evaluation returns a stored evaluation.
func (s *Server) Evaluation(id string) (grantview.Evaluation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.evaluations[id]
	return e, ok
}

// Handler returns the HTTP handler serving the backend routes.
func (s *Server) Handler() http.Handler {
	r := ginlib.New()
	r.Use(ginlib.Recovery(), s.countRequests, s.logRequests)

	r.GET("/", s.handleHealth)
	r.POST("/api/evaluations", s.handleCreateEvaluation)
	r.GET("/api/evaluations", s.handleListEvaluations)
	r.GET("/api/evaluations/:id", s.handleGetEvaluation)
	r.GET("/api/evaluations/:id/download", s.handleDownload)
	r.GET("/api/settings", s.handleGetSettings)
	r.PUT("/api/settings", s.handleUpdateSettings)

	return r
}

func (s *Server) countRequests(c *ginlib.Context) {
	s.requests.Add(1)
	c.Next()
}

func (s *Server) logRequests(c *ginlib.Context) {
	start := time.Now()
	c.Next()
	s.logger.Info("request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", time.Since(start)))
}

func (s *Server) handleHealth(c *ginlib.Context) {
	c.JSON(http.StatusOK, ginlib.H{
		"status":  "healthy",
		"service": "Grant Evaluator API",
		"version": "1.0.0",
		"mongodb": "in-memory",
	})
}

func detail(c *ginlib.Context, status int, msg string) {
	c.JSON(status, ginlib.H{"detail": msg})
}

func (s *Server) handleCreateEvaluation(c *ginlib.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		detail(c, http.StatusUnprocessableEntity, "field required: file")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" && ext != ".docx" {
		detail(c, http.StatusBadRequest, "Invalid file type. Allowed: .pdf, .docx")
		return
	}

	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-c.Request.Context().Done():
			return
		}
	}

	if s.failSubmissions.Load() {
		detail(c, http.StatusInternalServerError, "Evaluation failed: simulated failure")
		return
	}

	s.mu.Lock()
	e := fixture.Evaluation(
		fixture.WithID(uuid.NewString()),
		fixture.WithFile(file.Filename, file.Size),
		fixture.WithRandomScore(s.rand),
		fixture.WithCreatedAt(s.now().UTC()),
	)
	s.evaluations[e.ID] = e
	s.mu.Unlock()

	c.JSON(http.StatusOK, e)
}

func (s *Server) handleListEvaluations(c *ginlib.Context) {
	s.mu.Lock()
	list := make([]grantview.Evaluation, 0, len(s.evaluations))
	for _, e := range s.evaluations {
		list = append(list, e)
	}
	s.mu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt.Time) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt.Time)
	})
	c.JSON(http.StatusOK, list)
}

// lookup resolves the :id parameter, writing the error response when it fails.
func (s *Server) lookup(c *ginlib.Context) (grantview.Evaluation, bool) {
	id := c.Param("id")
	e, ok := s.Evaluation(id)
	if ok {
		return e, true
	}
	if _, err := uuid.Parse(id); err != nil {
		detail(c, http.StatusBadRequest, "Invalid evaluation ID format")
		return grantview.Evaluation{}, false
	}
	detail(c, http.StatusNotFound, "Evaluation not found")
	return grantview.Evaluation{}, false
}

func (s *Server) handleGetEvaluation(c *ginlib.Context) {
	if e, ok := s.lookup(c); ok {
		c.JSON(http.StatusOK, e)
	}
}

func (s *Server) handleDownload(c *ginlib.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+ReportFilename(e))
	c.Header("Access-Control-Expose-Headers", "Content-Disposition")
	c.Data(http.StatusOK, "application/pdf", reportPDF(e))
}

// ReportFilename is the download name of an evaluation's report:
// grant_evaluation_<document stem>_<first 8 characters of the id>.pdf.
func ReportFilename(e grantview.Evaluation) string {
	stem := e.FileName
	if stem == "" {
		stem = "report"
	}
	stem = strings.ReplaceAll(stem, ".pdf", "")
	stem = strings.ReplaceAll(stem, ".docx", "")
	id := e.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("grant_evaluation_%s_%s.pdf", stem, id)
}

// reportPDF renders a one-page PDF naming the document and its decision.
func reportPDF(e grantview.Evaluation) []byte {
	text := fmt.Sprintf("Grant Evaluation: %s - %s %s", e.FileName, e.Decision, grantview.FormatOverallScore(e.OverallScore))
	text = strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(text)
	stream := fmt.Sprintf("BT /F1 14 Tf 72 720 Td (%s) Tj ET", text)
	return []byte(fmt.Sprintf("%%PDF-1.4\n"+
		"1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj\n"+
		"2 0 obj << /Type /Pages /Kids [3 0 R] /Count 1 >> endobj\n"+
		"3 0 obj << /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >> endobj\n"+
		"4 0 obj << /Length %d >> stream\n%s\nendstream endobj\n"+
		"5 0 obj << /Type /Font /Subtype /Type1 /BaseFont /Helvetica >> endobj\n"+
		"trailer << /Root 1 0 R >>\n%%%%EOF\n", len(stream), stream))
}

func (s *Server) currentSettings() grantview.Settings {
	if s.settings != nil {
		return *s.settings
	}
	d := grantview.DefaultSettings()
	now := grantview.Timestamp{Time: s.now().UTC()}
	d.CreatedAt, d.UpdatedAt = now, now
	return d
}

func (s *Server) handleGetSettings(c *ginlib.Context) {
	s.mu.Lock()
	settings := s.currentSettings()
	s.mu.Unlock()
	c.JSON(http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(c *ginlib.Context) {
	var patch grantview.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := patch.Validate(); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	updated := patch.Apply(s.currentSettings())
	now := grantview.Timestamp{Time: s.now().UTC()}
	if updated.ID == "" {
		updated.ID = uuid.NewString()
		updated.CreatedAt = now
	}
	updated.UpdatedAt = now
	s.settings = &updated
	s.mu.Unlock()

	c.JSON(http.StatusOK, updated)
}
