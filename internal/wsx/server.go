// path: internal/wsx/server.go
// Package wsx is the authoritative match server: WebSocket transport,
// rooms, clocks and the client protocol.
package wsx

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
)

const uriWS = "/ws"

// Server wires the HTTP layer to the hub.
type Server struct {
	hub      *Hub
	router   *way.Router
	upgrader websocket.Upgrader
	srvMu    sync.Mutex
	srv      *http.Server
}

func NewServer() *Server {
	s := &Server{
		hub: NewHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1 << 12,
			WriteBufferSize: 1 << 12,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", uriWS, s.handleWS)
	s.router.HandleFunc("GET", "/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return s
}

func (s *Server) Hub() *Hub { return s.hub }

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Listen starts the HTTP server and blocks until shutdown.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	log.Infof("listening on %s", addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// handleWS upgrades the connection and assigns the ephemeral socket id.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("websocket upgrade: %v", err)
		return
	}
	c := newClient(newSocketID(), s.hub, conn)
	log.Debugf("socket %s connected", c.id)
	go c.writePump()
	c.readPump()
}
