// Package twin is an in-memory stand-in for the entity API. It follows the same contract as the
// real service, including its habit of reporting an unknown ID as a 500 error, so that the
// contract tests can be run and tested without a deployment.
package twin

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xyzbank/entity-contract-tests/servicedef"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// DefaultPerPage is the page size used when a get-all request asks for a page but not a size.
const DefaultPerPage = 10

// Logger is the subset of framework.Logger that the twin needs.
type Logger interface {
	Printf(message string, args ...interface{})
}

// Options configures a Server. The zero value uses the default endpoints and answers updates
// with 204.
type Options struct {
	Endpoints servicedef.Endpoints

	// UpdateReturnsBody makes updates answer with 200 and the updated entity instead of 204.
	UpdateReturnsBody bool

	Logger Logger
}

// Server serves the entity API from a Store.
type Server struct {
	store   *Store
	options Options
	router  chi.Router
}

// NewServer creates a Server. If store is nil, a new empty store is used.
func NewServer(store *Store, options Options) *Server {
	if store == nil {
		store = NewStore()
	}
	if options.Endpoints == (servicedef.Endpoints{}) {
		options.Endpoints = servicedef.DefaultEndpoints()
	}
	s := &Server{store: store, options: options}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	if options.Logger != nil {
		r.Use(s.requestLog)
	}
	ep := options.Endpoints
	r.Post(ep.Create, s.createEntity)
	r.Get(idPattern(ep.Get), s.getEntity)
	for _, p := range bothForms(ep.GetAll) {
		r.Get(p, s.getAllEntities)
	}
	r.Patch(idPattern(ep.Update), s.updateEntity)
	r.Delete(idPattern(ep.Delete), s.deleteEntity)
	s.router = r
	return s
}

// Store returns the server's store.
func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) createEntity(w http.ResponseWriter, r *http.Request) {
	req, ok := readRequest(w, r)
	if !ok {
		return
	}
	e := s.store.Create(req)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(strconv.Itoa(e.ID)))
}

func (s *Server) getEntity(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}
	e, found := s.store.Get(id)
	if !found {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) getAllEntities(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	items := s.store.List(q.matches)
	writeJSON(w, http.StatusOK, servicedef.EntityList{Entity: q.paginate(items)})
}

func (s *Server) updateEntity(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}
	req, ok := readRequest(w, r)
	if !ok {
		return
	}
	e, found := s.store.Replace(id, req)
	if !found {
		notFound(w)
		return
	}
	if s.options.UpdateReturnsBody {
		writeJSON(w, http.StatusOK, e)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteEntity(w http.ResponseWriter, r *http.Request) {
	id, ok := readID(w, r)
	if !ok {
		return
	}
	if !s.store.Delete(id) {
		notFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.options.Logger.Printf("%s %s [%s] %d (%s)", r.Method, r.URL.RequestURI(),
			chimw.GetReqID(r.Context()), ww.Status(), time.Since(start))
	})
}

func readRequest(w http.ResponseWriter, r *http.Request) (servicedef.EntityRequest, bool) {
	var req servicedef.EntityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return req, false
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return req, false
	}
	return req, true
}

func readID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, servicedef.NotFoundMessage)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, servicedef.ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func idPattern(prefix string) string {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + "{id}"
}

func bothForms(path string) []string {
	trimmed := strings.TrimSuffix(path, "/")
	if trimmed == "" || trimmed == path {
		return []string{path}
	}
	return []string{path, trimmed}
}
