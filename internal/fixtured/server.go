package fixtured

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/iamaray/fixturegen/pkg/fixture"
	"github.com/iamaray/fixturegen/pkg/fixture/generator"
	"github.com/iamaray/fixturegen/pkg/fixture/httpx"
)

// Server wraps the catalog and HTTP server
type Server struct {
	catalog *Catalog
	mux     *http.ServeMux
	http    *http.Server
}

// NewServer creates a new fixture service server
func NewServer(cfg Config) (*Server, error) {
	catalog, err := NewCatalog(cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		catalog: catalog,
		mux:     http.NewServeMux(),
	}
	s.setupRoutes()

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	return s, nil
}

func (s *Server) setupRoutes() {
	// Fixture APIs
	s.mux.HandleFunc("POST /api/fixtures", httpx.Wrap(s.handleUpload))
	s.mux.HandleFunc("GET /api/fixtures", httpx.Wrap(s.handleFixtureList))
	s.mux.HandleFunc("GET /api/fixtures/{fixtureID}", httpx.Wrap(s.handleFixtureGet))
	s.mux.HandleFunc("GET /api/fixtures/{fixtureID}/download", httpx.Wrap(s.handleFixtureDownload))
	s.mux.HandleFunc("DELETE /api/fixtures/{fixtureID}", httpx.Wrap(s.handleFixtureDelete))
	s.mux.HandleFunc("POST /api/fixtures/generate", httpx.Wrap(s.handleGenerate))

	// Generators and status
	s.mux.HandleFunc("GET /api/generators", httpx.Wrap(s.handleGeneratorList))
	s.mux.HandleFunc("GET /api/status", httpx.Wrap(s.handleStatus))
	s.mux.HandleFunc("GET /health", httpx.Wrap(s.handleHealth))
}

// Handler returns the full middleware-wrapped handler
func (s *Server) Handler() http.Handler {
	return versionGate(logRequests(s.mux))
}

// versionGate rejects requests from clients with an incompatible major version
func versionGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v := r.Header.Get(fixture.VersionHeader); v != "" {
			ok, err := fixture.IsCompatibleVersion(v, fixture.Version)
			if err != nil || !ok {
				httpx.Error(w, http.StatusBadRequest, fixture.CompatibilityError(v, fixture.Version))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// logRequests logs one line per request at debug level
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *Server) handleFixtureList(w http.ResponseWriter, r *http.Request) error {
	resp := fixture.ListResponse{
		Fixtures: s.catalog.ListFixtures(),
	}

	httpx.JSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) handleFixtureGet(w http.ResponseWriter, r *http.Request) error {
	fixtureID := r.PathValue("fixtureID")

	m := s.catalog.GetFixture(fixtureID)
	if m == nil {
		httpx.Error(w, http.StatusNotFound, "fixture not found")
		return nil
	}

	httpx.JSON(w, http.StatusOK, m)
	return nil
}

func (s *Server) handleFixtureDownload(w http.ResponseWriter, r *http.Request) error {
	fixtureID := r.PathValue("fixtureID")

	m := s.catalog.GetFixture(fixtureID)
	if m == nil {
		httpx.Error(w, http.StatusNotFound, "fixture not found")
		return nil
	}

	f, err := os.Open(m.StoredPath)
	if err != nil {
		if os.IsNotExist(err) {
			httpx.Error(w, http.StatusGone, fixture.ErrFixtureMissing.Error())
			return nil
		}
		return err
	}
	defer f.Close()

	w.Header().Set("Content-Type", m.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", m.Filename))
	http.ServeContent(w, r, m.Filename, m.CreatedAt, f)
	return nil
}

func (s *Server) handleFixtureDelete(w http.ResponseWriter, r *http.Request) error {
	fixtureID := r.PathValue("fixtureID")

	if err := s.catalog.DeleteFixture(fixtureID); err != nil {
		if errors.Is(err, fixture.ErrFixtureNotFound) {
			httpx.Error(w, http.StatusNotFound, err.Error())
			return nil
		}
		return err
	}

	resp := fixture.DeleteResponse{
		Success: true,
		Message: "fixture deleted",
	}

	httpx.JSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) error {
	var req fixture.GenerateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return nil
	}

	if !generator.Exists(req.Generator) {
		httpx.Error(w, http.StatusBadRequest, fmt.Sprintf("unknown generator: %s", req.Generator))
		return nil
	}

	m, err := s.catalog.GenerateFixture(req)
	if err != nil {
		return err
	}

	httpx.JSON(w, http.StatusCreated, m)
	return nil
}

func (s *Server) handleGeneratorList(w http.ResponseWriter, r *http.Request) error {
	names := generator.List()
	sort.Strings(names)

	resp := fixture.GeneratorListResponse{}
	for _, name := range names {
		g, err := generator.Get(name)
		if err != nil {
			continue
		}
		resp.Generators = append(resp.Generators, fixture.GeneratorInfo{
			Name:        name,
			Description: g.Description(),
			DefaultRows: g.DefaultRows(),
		})
	}

	httpx.JSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) error {
	httpx.JSON(w, http.StatusOK, s.catalog.Status())
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) error {
	httpx.JSON(w, http.StatusOK, fixture.HealthResponse{
		Status:  "ok",
		Version: fixture.Version,
	})
	return nil
}

// Start runs the HTTP server until Shutdown is called
func (s *Server) Start() error {
	slog.Info("fixture service listening", "addr", s.http.Addr)

	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// GetCatalog returns the underlying catalog (for testing/CLI)
func (s *Server) GetCatalog() *Catalog {
	return s.catalog
}

// Close closes the server and cleans up resources
func (s *Server) Close() error {
	return s.catalog.Close()
}
