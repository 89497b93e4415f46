// Package stub serves a local stand-in for the dbt sync server. It answers
// the same endpoints with canned, well-formed bodies so the CLI and client
// can be exercised without a dbt project. It is a fixture, not a linter.
package stub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/dbtsync/pkg/client"
)

// Server is the stub sync server.
type Server struct {
	port   int
	logger *slog.Logger
}

// Config holds configuration for the stub server.
type Config struct {
	Port   int
	Logger *slog.Logger
}

// NewServer creates a stub server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{port: cfg.Port, logger: logger}
}

// Handler returns the HTTP routes. Split out from Serve so tests can mount
// it on an httptest server.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
	)

	r.Get("/health", s.handleHealth)
	r.Post("/lint", s.handleLint)
	r.Post("/format", s.handleFormat)
	r.Post("/compile", s.handleCompile)
	r.Post("/reset", s.handleReset)

	return r
}

// Serve starts the stub server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting stub sync server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleLint(w http.ResponseWriter, r *http.Request) {
	sql := sourceSQL(r)
	s.logger.Debug("lint request", "bytes", len(sql), "sql_path", r.URL.Query().Get("sql_path"))
	s.writeJSON(w, client.RunResult{
		ColumnNames: []string{"line", "line_pos", "code", "description"},
		Rows:        findings(sql),
		RawSQL:      sql,
		CompiledSQL: sql,
	})
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	sql := sourceSQL(r)
	s.logger.Debug("format request", "bytes", len(sql))
	s.writeJSON(w, client.CompileResult{Result: strings.TrimSpace(sql) + "\n"})
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	sql := sourceSQL(r)
	s.logger.Debug("compile request", "bytes", len(sql))
	s.writeJSON(w, client.CompileResult{Result: sql})
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.logger.Debug("reset request")
	s.writeJSON(w, client.ResetResult{Result: "project re-parsed"})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// sourceSQL returns the SQL for the request: the body in text mode, or a
// placeholder naming the file in path mode, where the real server would
// read the file itself.
func sourceSQL(r *http.Request) string {
	body, _ := io.ReadAll(r.Body)
	sql := string(body)
	if sql == "" {
		if p := r.URL.Query().Get("sql_path"); p != "" {
			sql = "-- " + p
		}
	}
	return sql
}

// findings produces deterministic canned diagnostics so there is something
// to render during development.
func findings(sql string) [][]any {
	var rows [][]any
	lower := strings.ToLower(sql)
	if strings.Contains(lower, "select *") {
		rows = append(rows, []any{1, 8, "L044", "Query produces an unknown number of result columns."})
	}
	if strings.Contains(sql, "select") {
		rows = append(rows, []any{1, 1, "L010", "Keywords must be consistently upper case."})
	}
	return rows
}
