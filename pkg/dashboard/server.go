// Package dashboard serves the ecosystem over HTTP: JSON endpoints for
// stats, listing, search and graph data, CSV upload endpoints that return
// the import report, a D3 force-directed view, and Prometheus metrics.
package dashboard

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/ecosystem"
	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/graph"
	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/importer"
)

const (
	defaultGraphLimit = 200
	maxReportErrors   = 50
	maxUploadBytes    = 16 << 20
)

// Server exposes the repository and importer over HTTP.
type Server struct {
	repo graph.Repository
	imp  *importer.Importer
	log  *logrus.Logger
	mux  *http.ServeMux
}

func NewServer(repo graph.Repository, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	s := &Server{
		repo: repo,
		imp:  importer.New(repo, log),
		log:  log,
		mux:  http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /", s.handleGraphPage)
	s.mux.HandleFunc("GET /api/stats", s.handleStats)
	s.mux.HandleFunc("GET /api/entities", s.handleEntities)
	s.mux.HandleFunc("GET /api/search", s.handleSearch)
	s.mux.HandleFunc("GET /api/graph", s.handleGraphData)
	s.mux.HandleFunc("GET /api/template", s.handleTemplate)
	s.mux.HandleFunc("POST /api/import/entities", s.handleImportEntities)
	s.mux.HandleFunc("POST /api/import/relationships", s.handleImportRelationships)
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

// Handler returns the HTTP handler tree.
func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.WithField("addr", addr).Info("dashboard listening")
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Error("write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleGraphPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data, err := s.repo.GraphData(r.Context(), defaultGraphLimit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	page, err := RenderGraphPage(data)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.repo.Stats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func entityKindParam(r *http.Request) (ecosystem.EntityKind, bool) {
	kind := ecosystem.EntityKind(r.URL.Query().Get("type"))
	_, ok := ecosystem.EntityDescriptorFor(kind)
	return kind, ok
}

func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	kind, ok := entityKindParam(r)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "unknown entity type")
		return
	}
	refs, err := s.repo.ListByType(r.Context(), kind)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, refs)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	kind, ok := entityKindParam(r)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "unknown entity type")
		return
	}
	term := r.URL.Query().Get("q")
	if term == "" {
		s.writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	refs, err := s.repo.SearchByName(r.Context(), kind, term)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, refs)
}

func (s *Server) handleGraphData(w http.ResponseWriter, r *http.Request) {
	limit := defaultGraphLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	data, err := s.repo.GraphData(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		out  []byte
		err  error
		name string
	)
	switch {
	case q.Get("entity") != "":
		name = q.Get("entity")
		out, err = importer.EntityTemplate(ecosystem.EntityKind(name))
	case q.Get("relationship") != "":
		name = q.Get("relationship")
		out, err = importer.RelationshipTemplate(ecosystem.RelationshipKind(name))
	default:
		s.writeError(w, http.StatusBadRequest, "specify entity or relationship")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`_template.csv"`)
	w.Write(out)
}

// uploadBody accepts either a multipart form with a "file" field or a raw
// CSV body. Multipart parsing is only attempted for multipart requests so
// a malformed form never leaves a half-consumed body behind.
func (s *Server) uploadBody(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		return r.Body, nil
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, err
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, errors.New(`multipart upload requires a "file" field`)
	}
	return f, nil
}

func capReport(report *importer.Report) *importer.Report {
	if len(report.Errors) > maxReportErrors {
		report.Errors = report.Errors[:maxReportErrors]
	}
	return report
}

func (s *Server) handleImportEntities(w http.ResponseWriter, r *http.Request) {
	kind, ok := entityKindParam(r)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "unknown entity type")
		return
	}
	body, err := s.uploadBody(w, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer body.Close()
	report := s.imp.ImportEntities(r.Context(), body, kind)
	s.writeJSON(w, http.StatusOK, capReport(report))
}

func (s *Server) handleImportRelationships(w http.ResponseWriter, r *http.Request) {
	kind := ecosystem.RelationshipKind(r.URL.Query().Get("type"))
	if _, ok := ecosystem.RelationshipDescriptorFor(kind); !ok {
		s.writeError(w, http.StatusBadRequest, "unknown relationship type")
		return
	}
	body, err := s.uploadBody(w, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer body.Close()
	report := s.imp.ImportRelationships(r.Context(), body, kind)
	s.writeJSON(w, http.StatusOK, capReport(report))
}
