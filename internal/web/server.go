package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/yuzeguitarist/loveqr/internal/config"
	"github.com/yuzeguitarist/loveqr/internal/heart"
	"github.com/yuzeguitarist/loveqr/internal/qr"
)

type Server struct {
	Config     *config.Config
	Encoder    qr.Encoder
	Compositor *heart.Compositor
	Log        *zap.Logger
	level      qr.Level
}

func NewServer(cfg *config.Config, log *zap.Logger) (*Server, error) {
	enc, err := cfg.Encoder()
	if err != nil {
		return nil, err
	}
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		Config:     cfg,
		Encoder:    enc,
		Compositor: cfg.Compositor(),
		Log:        log,
		level:      lvl,
	}, nil
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.indexPage).Methods("GET", "HEAD")
	r.HandleFunc("/healthz", s.healthz).Methods("GET")

	// the short alias is what the original worker exposed
	r.HandleFunc("/api/love-qr", s.loveQR).Methods("GET", "HEAD")
	r.HandleFunc("/love-qr", s.loveQR).Methods("GET", "HEAD")

	r.NotFoundHandler = http.HandlerFunc(notFound)
	return Chain(r, s.Log)
}

func (s *Server) indexPage(w http.ResponseWriter, r *http.Request) {
	b, err := FS.ReadFile("templates/index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("content-type", "text/html; charset=utf-8")
	_, _ = w.Write(b)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"status": "ok", "encoder": s.Encoder.Name()})
}

func (s *Server) loveQR(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	img, err := s.Compositor.Render(s.Encoder, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	h := w.Header()
	h.Set("content-type", "image/svg+xml")
	h.Set("cache-control", "public, max-age=3600")
	h.Set("access-control-allow-origin", "*")
	_, _ = w.Write(img.Bytes())
}

// parseRequest applies defaults for absent or empty query parameters.
func (s *Server) parseRequest(r *http.Request) (heart.Request, error) {
	q := r.URL.Query()
	req := heart.Request{
		Text:   firstNonEmpty(q.Get("text"), q.Get("data"), s.Config.DefaultText),
		Size:   s.Config.DefaultSize,
		Format: firstNonEmpty(q.Get("format"), heart.FormatSVG),
		Level:  s.level,
	}
	if v := strings.TrimSpace(q.Get("size")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("%w: size must be a positive integer, got %q", heart.ErrParameter, v)
		}
		req.Size = n
	}
	if v := q.Get("level"); v != "" {
		lvl, err := qr.ParseLevel(v)
		if err != nil {
			return req, fmt.Errorf("%w: %v", heart.ErrParameter, err)
		}
		req.Level = lvl
	}
	return req, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := "internal"
	switch {
	case errors.Is(err, heart.ErrParameter):
		kind = "parameter"
	case errors.Is(err, qr.ErrEncoding):
		kind = "encoding"
	}
	s.Log.Warn("love-qr failed",
		zap.String("kind", kind),
		zap.String("uri", r.RequestURI),
		zap.Error(err),
	)
	w.Header().Set("content-type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte("Error: " + err.Error()))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("content-type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("Not Found"))
}

// ---- helpers ----

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("content-type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
