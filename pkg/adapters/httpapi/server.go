// Package httpapi exposes the engine over HTTP for its two collaborators:
// the tree editor (validate before persisting, publish) and the transcript
// pipeline (start node, per-step resolution, trail persistence).
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/arborlab/arbor"
	"github.com/arborlab/arbor/internal/codec"
	"github.com/arborlab/arbor/internal/presentation/graph"
	"github.com/arborlab/arbor/internal/validator"
	"github.com/arborlab/arbor/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the engine into chi routes.
type Server struct {
	engine  *arbor.Engine
	logger  *slog.Logger
	metrics *Metrics
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine *arbor.Engine, logger *slog.Logger) http.Handler {
	s := &Server{
		engine:  engine,
		logger:  logger,
		metrics: NewMetrics(),
	}

	r := chi.NewRouter()

	r.Post("/validate", s.handleValidate)
	r.Put("/tree", s.handlePublish)
	r.Get("/tree", s.handleGetTree)
	r.Get("/tree/graph.mmd", s.handleGraph)
	r.Get("/start", s.handleStart)
	r.Get("/nodes", s.handleListNodes)
	r.Get("/nodes/{id}", s.handleGetNode)
	r.Post("/resolve", s.handleResolve)

	r.Get("/trails", s.handleListTrails)
	r.Get("/trails/{id}", s.handleGetTrail)
	r.Put("/trails/{id}", s.handlePutTrail)
	r.Delete("/trails/{id}", s.handleDeleteTrail)

	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ValidationResult is the response body for /validate and failed /tree puts.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Kind  string `json:"kind,omitempty"`
	Error string `json:"error,omitempty"`
}

// errorKind maps the load-time error taxonomy to a wire label.
func errorKind(err error) string {
	var parseErr *domain.ParseError
	var structErr *domain.StructuralError
	var cycleErr *domain.CycleError
	var unreachableErr *domain.UnreachableNodesError

	switch {
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &structErr):
		return "structural"
	case errors.As(err, &cycleErr):
		return "cycle"
	case errors.As(err, &unreachableErr):
		return "unreachable"
	default:
		return "unknown"
	}
}

// handleValidate checks a candidate document without touching the active
// tree. The editor calls this before persisting.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	result := ValidationResult{Valid: true}
	tree, err := codec.Decode(body)
	if err == nil {
		err = validator.ValidateTree(tree)
	}
	if err != nil {
		result = ValidationResult{Valid: false, Kind: errorKind(err), Error: err.Error()}
	}

	writeJSON(w, http.StatusOK, result)
}

// handlePublish validates the document and, on success, makes it the active
// tree. Failure leaves the previous tree in effect.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	loadErr := s.engine.LoadBytes(body)
	s.metrics.observeLoad(loadErr)
	if loadErr != nil {
		s.logger.Warn("tree publish rejected", "err", loadErr)
		writeJSON(w, http.StatusUnprocessableEntity,
			ValidationResult{Valid: false, Kind: errorKind(loadErr), Error: loadErr.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ValidationResult{Valid: true})
}

func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := s.engine.Tree()
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	tree, err := s.engine.Tree()
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(tree))
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	node, err := s.engine.StartNode()
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

func (s *Server) handleListNodes(w http.ResponseWriter, r *http.Request) {
	ids, err := s.engine.ListNodes()
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"nodes": ids})
}

func (s *Server) handleGetNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	node, ok := s.engine.Node(id)
	if !ok {
		http.Error(w, fmt.Sprintf("node %q not found", id), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

// ResolveRequest asks for the next node given a current node and a free-text
// response from the answering oracle.
type ResolveRequest struct {
	NodeID   string `json:"nodeId"`
	Response string `json:"response"`
}

// ResolveResponse carries the decision. Done is true when the walk cannot
// proceed: the node is terminal or fell through with no default.
type ResolveResponse struct {
	NextNodeID string       `json:"nextNodeId,omitempty"`
	NextNode   *domain.Node `json:"nextNode,omitempty"`
	Done       bool         `json:"done"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	node, ok := s.engine.Node(req.NodeID)
	if !ok {
		http.Error(w, fmt.Sprintf("node %q not found", req.NodeID), http.StatusNotFound)
		return
	}

	nextID := s.engine.Resolve(node, req.Response)
	if nextID == "" {
		s.metrics.observeResolve(node.Type, "none")
		writeJSON(w, http.StatusOK, ResolveResponse{Done: true})
		return
	}

	s.metrics.observeResolve(node.Type, "next")
	resp := ResolveResponse{NextNodeID: nextID}
	if next, ok := s.engine.Node(nextID); ok {
		resp.NextNode = &next
		resp.Done = next.IsTerminal()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListTrails(w http.ResponseWriter, r *http.Request) {
	store := s.engine.Trails()
	if store == nil {
		http.Error(w, "no trail store configured", http.StatusNotImplemented)
		return
	}
	ids, err := store.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"trails": ids})
}

func (s *Server) handleGetTrail(w http.ResponseWriter, r *http.Request) {
	store := s.engine.Trails()
	if store == nil {
		http.Error(w, "no trail store configured", http.StatusNotImplemented)
		return
	}
	trail, err := store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrTrailNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, trail)
}

func (s *Server) handlePutTrail(w http.ResponseWriter, r *http.Request) {
	store := s.engine.Trails()
	if store == nil {
		http.Error(w, "no trail store configured", http.StatusNotImplemented)
		return
	}
	var trail domain.Trail
	if err := json.NewDecoder(r.Body).Decode(&trail); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	trail.ID = chi.URLParam(r, "id")
	if err := store.Save(r.Context(), &trail); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTrail(w http.ResponseWriter, r *http.Request) {
	store := s.engine.Trails()
	if store == nil {
		http.Error(w, "no trail store configured", http.StatusNotImplemented)
		return
	}
	if err := store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
