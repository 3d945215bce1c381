package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/nguyentantai21042004/meeting-scribe/internal/config"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/relay"
)

type implServer struct {
	cfg      config.ServerConfig
	relay    relay.Relay
	logger   logger.Logger
	upgrader websocket.Upgrader
	handler  http.Handler

	baseCtx context.Context

	mu           sync.Mutex
	conns        map[*conn]struct{}
	httpS        *http.Server
	shuttingDown bool

	// conns tracks pump goroutines, stops tracks in-flight stop handlers.
	connWG sync.WaitGroup
	stopWG sync.WaitGroup
}

// New creates a Server for the relay.
func New(cfg config.ServerConfig, r relay.Relay, log logger.Logger) Server {
	s := &implServer{
		cfg:     cfg,
		relay:   r,
		logger:  log,
		baseCtx: context.Background(),
		conns:   make(map[*conn]struct{}),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	path := cfg.Path
	if path == "" {
		path = "/ws"
	}
	mux := http.NewServeMux()
	mux.HandleFunc(path, s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	s.handler = mux

	return s
}
