// Package server exposes the pipeline over HTTP.
//
// All endpoints exchange graphs in the pkg/graph wire format. Cyclic inputs
// are rejected with 422 and the witness walk, so API clients get the same
// diagnostics the CLI prints.
package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/toposcope/toposcope/pkg/errors"
	"github.com/toposcope/toposcope/pkg/graph"
	"github.com/toposcope/toposcope/pkg/pipeline"
	"github.com/toposcope/toposcope/pkg/store"
	"github.com/toposcope/toposcope/pkg/topo"
)

// maxBodyBytes bounds request bodies; graphs beyond this are rejected early.
const maxBodyBytes = 8 << 20

// Server handles the HTTP API. Store is optional; when nil the /v1/graphs
// endpoints respond 404.
type Server struct {
	runner *pipeline.Runner
	store  *store.Store
	logger *log.Logger
}

// New creates a Server. store may be nil to run without persistence.
func New(runner *pipeline.Runner, st *store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/sort", s.handleSort)
		r.Post("/closure", s.handleTransform(pipeline.TransformClosure))
		r.Post("/reduction", s.handleTransform(pipeline.TransformReduction))
		r.Post("/transpose", s.handleTransform(pipeline.TransformTranspose))
		r.Post("/lengths", s.handleLengths)
		r.Post("/paths", s.handlePaths)

		if s.store != nil {
			r.Route("/graphs", func(r chi.Router) {
				r.Get("/", s.handleList)
				r.Put("/{name}", s.handleSave)
				r.Get("/{name}", s.handleLoad)
				r.Delete("/{name}", s.handleDelete)
			})
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sortResponse carries the normalized graph plus its topological order.
type sortResponse struct {
	Graph graph.Graph `json:"graph"`
	Order []string    `json:"order"`
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	g, ok := s.readGraph(w, r)
	if !ok {
		return
	}
	out, order, err := s.runner.Normalize(g)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sortResponse{Graph: out, Order: order})
}

func (s *Server) handleTransform(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := s.readGraph(w, r)
		if !ok {
			return
		}
		out, err := s.runner.Transform(r.Context(), g, name)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, out)
	}
}

// lengthsRequest asks for path lengths from Source. Metric is "shortest"
// (default) or "longest".
type lengthsRequest struct {
	Graph  graph.Graph `json:"graph"`
	Source string      `json:"source"`
	Metric string      `json:"metric"`
}

func (s *Server) handleLengths(w http.ResponseWriter, r *http.Request) {
	var req lengthsRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	switch req.Metric {
	case "", "shortest", "longest":
	default:
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "unknown metric %q", req.Metric))
		return
	}
	lengths, err := s.runner.Lengths(req.Graph, req.Source, req.Metric == "longest")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, lengths)
}

// pathsRequest asks for every simple path From -> To.
type pathsRequest struct {
	Graph graph.Graph `json:"graph"`
	From  string      `json:"from"`
	To    string      `json:"to"`
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	var req pathsRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	paths, err := s.runner.Paths(req.Graph, req.From, req.To)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if paths == nil {
		paths = [][]string{}
	}
	s.writeJSON(w, http.StatusOK, paths)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	g, ok := s.readGraph(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "name")
	if err := s.store.Save(r.Context(), name, g); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"name": name})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readGraph decodes a wire-format graph request body.
func (s *Server) readGraph(w http.ResponseWriter, r *http.Request) (graph.Graph, bool) {
	var g graph.Graph
	ok := s.readJSON(w, r, &g)
	return g, ok
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request body"))
		return false
	}
	return true
}

// errorResponse is the uniform error payload. Witness is set only for
// GRAPH_CYCLE failures.
type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	Witness []string    `json:"witness,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{
		Code:    errors.GetCode(err),
		Message: errors.UserMessage(err),
	}
	if resp.Code == "" {
		resp.Code = errors.ErrCodeInternal
	}

	var cyc *topo.CycleError[string]
	if stderrors.As(err, &cyc) {
		resp.Witness = cyc.Walk
	}

	s.writeJSON(w, statusFor(resp.Code), resp)
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidName, errors.ErrCodeInvalidVertex,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeGraphNotFound,
		errors.ErrCodeVertexNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeGraphCycle:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("write response: %v", err)
	}
}
