// Package api serves task aggregates over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fieldtasks/internal/loader"
	"fieldtasks/internal/model"
)

// TaskReader is the read side the server needs.
type TaskReader interface {
	GetTask(ctx context.Context, taskID string) (model.TaskAggregate, error)
	JobTasks(ctx context.Context, jobID string) ([]model.TaskAggregate, error)
}

// Server routes HTTP requests to the task reader.
type Server struct {
	tasks  TaskReader
	log    *zap.Logger
	router *mux.Router
}

func New(tasks TaskReader, gatherer prometheus.Gatherer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{tasks: tasks, log: log, router: mux.NewRouter()}

	s.router.HandleFunc("/tasks/{id}", s.handleGetTask).Methods(http.MethodGet)
	s.router.HandleFunc("/jobs/{jobID}/tasks", s.handleJobTasks).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	if gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	agg, err := s.tasks.GetTask(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

func (s *Server) handleJobTasks(w http.ResponseWriter, r *http.Request) {
	aggs, err := s.tasks.JobTasks(r.Context(), mux.Vars(r)["jobID"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if aggs == nil {
		aggs = []model.TaskAggregate{}
	}
	writeJSON(w, http.StatusOK, aggs)
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, loader.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, loader.ErrStorage):
		status = http.StatusServiceUnavailable
	}
	if status != http.StatusNotFound {
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
