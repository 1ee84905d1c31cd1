package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/importer"
	"github.com/jonathan/resume-builder/internal/interview"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/rendering/pdf"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/tailoring"
	"github.com/jonathan/resume-builder/internal/types"
)

// PDFEncoder prints a PDF-target document.
type PDFEncoder interface {
	Encode(ctx context.Context, doc *rendering.Document) ([]byte, error)
}

// JobFetcher retrieves job posting text by URL.
type JobFetcher interface {
	JobDescription(ctx context.Context, url string) (*fetch.Posting, error)
}

// ExportLog records exported documents.
type ExportLog interface {
	RecordExport(ctx context.Context, ownerID string, in db.ExportInput) (*db.Export, error)
	ListExports(ctx context.Context, ownerID string, limit int) ([]db.Export, error)
}

// Deps are the collaborators a Server routes requests to. Nil optional fields fall
// back to defaults in newServer.
type Deps struct {
	Sessions   *session.Manager
	Templates  *rendering.Registry
	PDF        PDFEncoder
	Importer   *importer.Importer
	Tailor     *tailoring.Service
	Interviews *interview.Responder
	Jobs       JobFetcher
	Exports    storage.ExportStore
	ExportLog  ExportLog // optional
	Auth       func(http.Handler) http.Handler
	Limiter    *ratelimit.Limiter

	DefaultTemplate string
	AITimeout       time.Duration
	MaxUploadBytes  int
}

// sessionSweepInterval is how often idle workspaces are evicted.
const sessionSweepInterval = 10 * time.Minute

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	deps       Deps
	db         *db.DB
	llmClient  llm.Client
	closeOnce  sync.Once
}

// New creates a server from the application configuration, connecting the database,
// AI client and export store it names.
func New(ctx context.Context, cfg config.Config, authCfg *config.AuthConfig) (*Server, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	templates := rendering.DefaultRegistry()
	if err := checkTemplates(ctx, templates, cfg.DefaultTemplate); err != nil {
		return nil, err
	}

	var (
		database *db.DB
		repo     session.DraftRepository
	)
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, err
		}
		repo = database
	} else {
		log.Println("[SERVER] DATABASE_URL not set; drafts are kept in memory")
	}

	var client llm.Client
	if cfg.APIKey != "" {
		client, err = llm.NewClient(ctx, llm.ConfigFromEnv(), cfg.APIKey)
		if err != nil {
			if database != nil {
				database.Close()
			}
			return nil, fmt.Errorf("failed to create AI client: %w", err)
		}
	} else {
		log.Println("[SERVER] GEMINI_API_KEY not set; import, tailoring and interview are unavailable")
	}

	var exports storage.ExportStore = storage.NopStore{}
	if cfg.Export.Enabled() {
		s3Store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    cfg.Export.Bucket,
			Region:    cfg.Export.Region,
			Endpoint:  cfg.Export.Endpoint,
			AccessKey: cfg.Export.AccessKeyID,
			SecretKey: cfg.Export.SecretAccessKey,
		})
		if err != nil {
			if database != nil {
				database.Close()
			}
			return nil, err
		}
		exports = s3Store
	}

	auth := middleware.StaticOwner(config.LocalOwner)
	if !authCfg.Disabled {
		auth = middleware.AuthMiddleware(NewVerifier(authCfg))
	} else {
		log.Printf("[SERVER] Authentication disabled; every request acts as %q", config.LocalOwner)
	}

	imp := importer.New(client, cfg.MaxUploadBytes)
	imp.Verbose = cfg.Verbose
	responder := interview.NewResponder(client, nil)
	responder.Timeout = timeout
	responder.Verbose = cfg.Verbose
	encoder := pdf.NewChromeEncoder(cfg.ChromePath, 0)
	encoder.Verbose = cfg.Verbose

	sessions := session.NewManager(repo)
	sessions.StartSweeper(sessionSweepInterval)

	deps := Deps{
		Sessions:   sessions,
		Templates:  templates,
		PDF:        encoder,
		Importer:   imp,
		Tailor:     tailoring.NewService(client),
		Interviews: responder,
		Jobs: fetch.NewJobFetcher(&fetch.JobFetcherConfig{
			Renderer: fetch.BrowserRenderer(cfg.ChromePath, fetch.DefaultTimeout, cfg.Verbose),
			Verbose:  cfg.Verbose,
		}),
		Exports:         exports,
		Auth:            auth,
		Limiter:         ratelimit.NewLimiter(ratelimit.LoadConfig()),
		DefaultTemplate: cfg.DefaultTemplate,
		AITimeout:       timeout,
		MaxUploadBytes:  cfg.MaxUploadBytes,
	}
	if database != nil {
		deps.ExportLog = database
	}

	s := newServer(deps)
	s.db = database
	s.llmClient = client
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // interview streams and PDF printing
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// checkTemplates fails when the default template is unknown or any template cannot
// lay out the sample resume.
func checkTemplates(ctx context.Context, templates *rendering.Registry, defaultTemplate string) error {
	if defaultTemplate != "" && !templates.Has(defaultTemplate) {
		return &rendering.TemplateNotFoundError{ID: defaultTemplate}
	}
	if err := templates.Verify(ctx, rendering.SampleResume()); err != nil {
		return fmt.Errorf("template registry failed verification: %w", err)
	}
	return nil
}

// newServer builds the router over deps.
func newServer(deps Deps) *Server {
	if deps.Sessions == nil {
		deps.Sessions = session.NewManager(nil)
	}
	if deps.Templates == nil {
		deps.Templates = rendering.DefaultRegistry()
	}
	if deps.Interviews == nil {
		deps.Interviews = interview.NewResponder(nil, nil)
	}
	if deps.Importer == nil {
		deps.Importer = importer.New(nil, 0)
	}
	if deps.Tailor == nil {
		deps.Tailor = tailoring.NewService(nil)
	}
	if deps.Jobs == nil {
		deps.Jobs = fetch.NewJobFetcher(nil)
	}
	if deps.PDF == nil {
		deps.PDF = pdf.NewChromeEncoder("", 0)
	}
	if deps.Exports == nil {
		deps.Exports = storage.NopStore{}
	}
	if deps.Auth == nil {
		deps.Auth = middleware.StaticOwner(config.LocalOwner)
	}
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}
	if deps.DefaultTemplate == "" {
		deps.DefaultTemplate = config.DefaultTemplate
	}
	if deps.AITimeout <= 0 {
		deps.AITimeout = config.DefaultAITimeout
	}

	s := &Server{deps: deps}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /templates", s.handleListTemplates)
	mux.HandleFunc("GET /personas", s.handleListPersonas)

	// Draft editing
	mux.Handle("GET /draft", s.protected(s.handleGetDraft))
	mux.Handle("DELETE /draft", s.protected(s.handleResetDraft))
	mux.Handle("PATCH /draft/personal", s.protected(s.handleSetPersonal))
	mux.Handle("POST /draft/experience", s.protected(s.handleAddExperience))
	mux.Handle("PATCH /draft/experience/{id}", s.protected(s.handleUpdateExperience))
	mux.Handle("DELETE /draft/experience/{id}", s.protected(s.handleRemoveExperience))
	mux.Handle("PUT /draft/skills", s.protected(s.handleSetSkills))
	mux.Handle("PUT /draft/final-thoughts", s.protected(s.handleSetFinalThoughts))
	mux.Handle("PUT /draft/template", s.protected(s.handleSetTemplate))

	// AI collaborators
	mux.Handle("POST /import", s.protected(s.handleImport))
	mux.Handle("POST /tailor", s.protected(s.handleTailor))

	// Rendering
	mux.Handle("GET /preview", s.protected(s.handlePreview))
	mux.Handle("GET /export", s.protected(s.handleExport))
	mux.Handle("GET /exports", s.protected(s.handleListExports))

	// Interview practice
	mux.Handle("GET /interview", s.protected(s.handleGetInterview))
	mux.Handle("POST /interview/messages", s.protected(s.handleInterviewMessage))
	mux.Handle("DELETE /interview", s.protected(s.handleClearInterview))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	return s
}

// Handler returns the root HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully. The caller
// releases resources with Close.
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

// Close releases the rate limiter, session sweeper, AI client and database. Calls
// after the first do nothing.
func (s *Server) Close() {
	s.closeOnce.Do(s.release)
}

func (s *Server) release() {
	if s.deps.Limiter != nil {
		s.deps.Limiter.Stop()
	}
	s.deps.Sessions.Stop()
	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
}

// protected wraps h with the authentication middleware.
func (s *Server) protected(h http.HandlerFunc) http.Handler {
	return s.deps.Auth(h)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.deps.Limiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "storage": "memory"}
	if s.db != nil {
		status["storage"] = "postgres"
		if err := s.db.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["error"] = err.Error()
			s.jsonResponse(w, http.StatusServiceUnavailable, status)
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, status)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to its status code and writes it.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[SERVER] %d: %v", status, err)
	}
	s.errorResponse(w, status, err.Error())
}

// workspace resolves the caller's workspace, writing the error response on failure.
func (s *Server) workspace(w http.ResponseWriter, r *http.Request) (*session.Workspace, bool) {
	ownerID, err := middleware.GetOwnerID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	ws, err := s.deps.Sessions.Workspace(r.Context(), ownerID)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return ws, true
}

// decodeJSON reads a JSON request body into v, rejecting unknown fields and bodies
// over 1 MiB.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return &ErrValidation{Field: "body", Message: fmt.Sprintf("invalid request body: %v", err), cause: err}
	}
	return nil
}

// templateID returns the template to render d with.
func (s *Server) templateID(d types.ResumeDraft, override string) string {
	switch {
	case override != "":
		return override
	case d.TemplateID != "":
		return d.TemplateID
	default:
		return s.deps.DefaultTemplate
	}
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds() + 0.999)
		response["retry_after"] = secs
		w.Header().Set("Retry-After", fmt.Sprintf("%d", secs))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
