// Package web serves the checklist to browsers: a JSON API for intents and a
// websocket that streams render instructions.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"

	"checklist/internal/checklist"
	"checklist/internal/model"
	"checklist/internal/store"

	"github.com/charmbracelet/log"
)

//go:embed templates/*.html static/*.js static/*.css
var assetsFS embed.FS

const maxBodyBytes = 64 * 1024

type ServerConfig struct {
	Addr   string
	Logger *log.Logger
}

type Server struct {
	cfg     ServerConfig
	session *checklist.Session
	hub     *hub
	tmpl    *template.Template
	log     *log.Logger
}

// NewServer attaches the server's hub to s as its renderer.
func NewServer(cfg ServerConfig, s *checklist.Session) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	if s == nil {
		return nil, errors.New("web: nil session")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	tmpl, err := template.ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:     cfg,
		session: s,
		hub:     newHub(logger.WithPrefix("web")),
		tmpl:    tmpl,
		log:     logger.WithPrefix("web"),
	}
	s.Attach(srv.hub)
	return srv, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /static/app.js", s.handleStatic("static/app.js", "text/javascript; charset=utf-8"))
	mux.HandleFunc("GET /static/app.css", s.handleStatic("static/app.css", "text/css; charset=utf-8"))
	mux.HandleFunc("GET /ws", s.handleWS)

	mux.HandleFunc("GET /api/items", s.handleList)
	mux.HandleFunc("POST /api/items", s.handleAdd)
	mux.HandleFunc("POST /api/items/{id}/toggle", s.handleToggle)
	mux.HandleFunc("PUT /api/items/{id}/title", s.handleRename)
	mux.HandleFunc("PUT /api/items/{id}/status", s.handleSetStatus)
	mux.HandleFunc("DELETE /api/items/{id}", s.handleRemove)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type homeVM struct {
	Items []model.Item
	Done  int
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	items := s.session.Items()
	vm := homeVM{Items: items}
	for _, it := range items {
		if it.Done() {
			vm.Done++
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", vm); err != nil {
		s.log.Error("render home", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleStatic(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := assetsFS.ReadFile(path)
		if err != nil || len(b) == 0 {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(b)
	}
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": s.session.Items()})
}

type titleBody struct {
	Title string `json:"title"`
}

type statusBody struct {
	Status *bool `json:"status"`
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var body titleBody
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	it, err := s.session.Add(r.Context(), body.Title)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"data": it})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	res, err := s.session.Toggle(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": res})
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	var body titleBody
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	it, err := s.session.Rename(r.Context(), r.PathValue("id"), body.Title)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": it})
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	var body statusBody
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	if body.Status == nil {
		s.writeError(w, badRequestError{msg: "missing status"})
		return
	}
	res, err := s.session.SetStatus(r.Context(), r.PathValue("id"), *body.Status)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": res})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	res, err := s.session.Remove(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": res})
}

type badRequestError struct{ msg string }

func (e badRequestError) Error() string { return e.msg }

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return badRequestError{msg: "invalid json body: " + err.Error()}
	}
	return nil
}

func statusFor(err error) (int, string) {
	var bad badRequestError
	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, checklist.ErrEmptyTitle):
		return http.StatusBadRequest, "empty_title"
	case store.IsNotFound(err):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, store.ErrCapacityExhausted):
		return http.StatusConflict, "capacity_exhausted"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"code": code, "message": err.Error()},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
