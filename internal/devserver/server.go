package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// ErrListen reports that the server could not bind its address.
var ErrListen = errors.New("failed to listen")

const shutdownTimeout = 5 * time.Second

// Server serves a directory and the live-reload endpoint.
type Server struct {
	Addr string
	Dir  string
	Hub  *Hub // nil disables live reload
}

// Handler returns the HTTP handler: the reload websocket when a hub is
// set, and the static files with caching disabled.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.Hub != nil {
		mux.Handle(ReloadPath, s.Hub)
	}
	mux.Handle("/", noCache(http.FileServer(http.Dir(s.Dir))))
	return mux
}

// noCache makes browsers revalidate every file so a reload shows the new
// build. The header is set when the status is written, since http.FileServer
// clears Cache-Control on error responses.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&noStoreWriter{ResponseWriter: w}, r)
	})
}

type noStoreWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *noStoreWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.Header().Set("Cache-Control", "no-store")
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *noStoreWriter) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(p)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *noStoreWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Listen binds the address. It is split from Serve so callers can report a
// busy port before printing the server URL.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrListen, s.Addr, err)
	}
	return ln, nil
}

// Serve handles connections on ln until ctx is done, then shuts down
// gracefully and disconnects reload clients.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	if s.Hub != nil {
		s.Hub.Close()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
