package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/chapterly"
	"github.com/google/uuid"
	"github.com/rs/cors"
)

// Server defaults.
const (
	DefaultAddr            = ":8080"
	DefaultRequestTimeout  = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

// Server exposes a chapterly.Reader over HTTP.
type Server struct {
	ln     net.Listener
	server *http.Server

	// Bind address for the server's listener.
	Addr string

	// AllowedOrigins for CORS. Empty allows all origins.
	AllowedOrigins []string

	// RequestTimeout bounds a single read, including fetch and translation.
	RequestTimeout time.Duration

	Reader chapterly.Reader
	Logger *slog.Logger
}

// NewServer returns a new Server with default settings.
func NewServer() *Server {
	return &Server{
		Addr:           DefaultAddr,
		RequestTimeout: DefaultRequestTimeout,
		Logger:         slog.New(slog.DiscardHandler),
	}
}

// Handler returns the routed handler wrapped with CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/read", s.handleRead)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	origins := s.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		ExposedHeaders: []string{"ETag", "X-Request-ID"},
		MaxAge:         300,
	})
	return c.Handler(mux)
}

// Open begins listening on the bind address and serves in the background.
func (s *Server) Open() (err error) {
	if s.Reader == nil {
		return chapterly.Errorf(chapterly.EINVALID, "server reader required")
	}
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("http server stopped", "err", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the server, waiting for in-flight reads.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// readResponse is the JSON body of a successful read.
// NextURL is null when there is no next chapter.
type readResponse struct {
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	NextURL      *string `json:"nextUrl"`
	CurrentURL   string  `json:"currentUrl"`
	IsTranslated bool    `json:"isTranslated"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	begin := time.Now()
	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)

	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		s.writeError(w, r, requestID, chapterly.Errorf(chapterly.EINVALID, "url is required"))
		return
	}

	ctx := r.Context()
	if s.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.RequestTimeout)
		defer cancel()
	}

	doc, err := s.Reader.Read(ctx, rawURL)
	if err != nil {
		s.writeError(w, r, requestID, err)
		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64String(doc.Title+"\x00"+doc.Content), 16) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	resp := readResponse{
		Title:        doc.Title,
		Content:      doc.Content,
		CurrentURL:   doc.CurrentURL,
		IsTranslated: doc.IsTranslated,
	}
	if doc.HasNext() {
		next := doc.NextURL
		resp.NextURL = &next
	}

	writeJSON(w, http.StatusOK, resp)
	s.Logger.Info("http request",
		"request_id", requestID,
		"url", rawURL,
		"status", http.StatusOK,
		"duration", time.Since(begin),
	)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// writeError maps an application error code to a status code and writes
// the message. Internal error details are logged, never returned.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, requestID string, err error) {
	code, message := chapterly.ErrorCode(err), chapterly.ErrorMessage(err)

	status := ErrorStatusCode(code)
	if code == chapterly.EINTERNAL {
		message = "internal error"
	}

	s.Logger.Error("http error",
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
		"url", r.URL.Query().Get("url"),
		"status", status,
		"err", err,
	)

	writeJSON(w, status, errorResponse{Error: message})
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	switch code {
	case chapterly.EINVALID:
		return http.StatusBadRequest
	case chapterly.ENOTFOUND:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
