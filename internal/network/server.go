package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// CellSummary describes one placed tile.
type CellSummary struct {
	Slot int     `json:"slot"`
	Q    int     `json:"q"`
	R    int     `json:"r"`
	X    float32 `json:"x"`
	Z    float32 `json:"z"`
}

// FieldSummary is the static description of the field served at /field.
type FieldSummary struct {
	Shape       string        `json:"shape"`
	Radius      int           `json:"radius"`
	Orientation string        `json:"orientation"`
	TileSize    float64       `json:"tile_size"`
	TileHeight  float32       `json:"tile_height"`
	Cells       []CellSummary `json:"cells"`
}

// Server serves the viewer websocket and the field description.
type Server struct {
	hub      *Hub
	summary  FieldSummary
	opts     ViewerOptions
	log      *zap.Logger
	router   *mux.Router
	upgrader websocket.Upgrader
}

// NewServer creates a server publishing through hub.
func NewServer(hub *Hub, summary FieldSummary, opts ViewerOptions, log *zap.Logger) *Server {
	s := &Server{
		hub:     hub,
		summary: summary,
		opts:    opts,
		log:     log,
		router:  mux.NewRouter(),
	}

	s.router.HandleFunc("/ws", s.serveWebsocket).Methods(http.MethodGet)
	s.router.HandleFunc("/field", s.serveField).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.serveHealth).Methods(http.MethodGet)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down. Open
// websockets are closed through their request contexts.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errs := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error.
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	v := newViewer(conn, s.hub, s.opts)
	if err := v.Serve(r.Context()); err != nil {
		v.log.Debug("viewer disconnected", zap.Error(err))
	}
}

func (s *Server) serveField(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.summary)
}

func (s *Server) serveHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"status":  "ok",
		"viewers": s.hub.Len(),
		"tiles":   len(s.summary.Cells),
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}
