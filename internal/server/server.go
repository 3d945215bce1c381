package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
)

// Start implements Server.
func (s *implServer) Start(ctx context.Context) error {
	s.baseCtx = ctx

	httpS := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.httpS = httpS
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Relay listening on http://%s (websocket path %s)", displayAddr(s.cfg.Addr()), s.cfg.Path)
		if err := httpS.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Handler implements Server.
func (s *implServer) Handler() http.Handler {
	return s.handler
}

// Shutdown implements Server.
func (s *implServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shuttingDown = true
	httpS := s.httpS
	conns := make([]*conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	var shutdownErr error
	if httpS != nil {
		if err := httpS.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("http shutdown: %w", err)
		}
	}

	for _, c := range conns {
		c.close()
	}

	done := make(chan struct{})
	go func() {
		s.connWG.Wait()
		s.stopWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info(ctx, "Relay stopped")
	case <-ctx.Done():
		s.logger.Warn(ctx, "Gave up waiting for %d connections", len(conns))
		if shutdownErr == nil {
			shutdownErr = ctx.Err()
		}
	}
	return shutdownErr
}

func (s *implServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.closing() {
		http.Error(w, "relay is shutting down", http.StatusServiceUnavailable)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.Warn(r.Context(), "WebSocket upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}

	c := newConn(uuid.NewString(), ws)
	ctx := logger.WithConnID(s.baseCtx, c.id)

	// Registration and the WaitGroup add happen under mu so Shutdown either
	// sees this connection or this handler sees shuttingDown.
	s.mu.Lock()
	if s.shuttingDown {
		s.mu.Unlock()
		ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "relay is shutting down"),
			time.Now().Add(writeWait))
		ws.Close()
		return
	}
	s.conns[c] = struct{}{}
	s.connWG.Add(2)
	s.mu.Unlock()

	if err := s.relay.OnConnect(ctx, c.id); err != nil {
		s.logger.Error(ctx, "Register session: %v", err)
		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
		s.connWG.Add(-2)
		ws.Close()
		return
	}

	go func() {
		defer s.connWG.Done()
		s.writePump(ctx, c)
	}()
	go func() {
		defer s.connWG.Done()
		s.readPump(ctx, c)

		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
	}()
}

func (s *implServer) closing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shuttingDown
}

func (s *implServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	n := len(s.conns)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":      "ok",
		"connections": n,
	})
}

// checkOrigin accepts requests without an Origin header (non-browser clients)
// and browsers whose origin is listed in allowed_origins. "*" allows all.
func (s *implServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	s.logger.Warn(r.Context(), "Rejected origin %q", origin)
	return false
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
