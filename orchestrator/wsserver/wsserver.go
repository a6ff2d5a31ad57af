// Package wsserver exposes an orchestrator run's StageEvent stream to
// browser observers over a websocket, reusing gorilla/websocket exactly
// the way the teacher's server.go broadcast mesh frames to connected
// clients — generalized here from whole-mesh JSON frames to StageEvent
// JSON frames, and from a single global planet to one broadcaster per
// run (spec.md 4.9).
package wsserver

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/gomgom50/aethelgard-worldgen/orchestrator"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wireEvent is the JSON wire shape of an orchestrator.StageEvent.
type wireEvent struct {
	Stage      string  `json:"stage"`
	State      string  `json:"state"`
	TilesDone  int     `json:"tilesDone"`
	TilesTotal int     `json:"tilesTotal"`
	ElapsedMS  float64 `json:"elapsedMs"`
}

// Broadcaster fans a single StageEvent channel out to every connected
// websocket client, matching server.go's clients map + per-connection
// mutex pattern (a websocket.Conn is not safe for concurrent writers).
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
	log     *logrus.Logger
}

// New creates a Broadcaster. log may be nil.
func New(log *logrus.Logger) *Broadcaster {
	if log == nil {
		log = logrus.New()
	}
	return &Broadcaster{clients: make(map[*websocket.Conn]*sync.Mutex), log: log}
}

// Handler upgrades an HTTP request to a websocket connection and
// registers it as a broadcast target until the client disconnects.
func (b *Broadcaster) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	b.mu.Lock()
	b.clients[conn] = connMutex
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		delete(b.clients, conn)
		b.mu.Unlock()
	}()

	// Drain inbound frames (pause/resume/cancel control messages, spec.md
	// 6) until the connection closes; the broadcaster itself is
	// write-only toward this goroutine.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Run drains events from ch and broadcasts each to every connected
// client until ch is closed.
func (b *Broadcaster) Run(ch <-chan orchestrator.StageEvent) {
	for ev := range ch {
		b.broadcast(ev)
	}
}

func (b *Broadcaster) broadcast(ev orchestrator.StageEvent) {
	wire := wireEvent{
		Stage:      ev.Stage,
		State:      ev.State.String(),
		TilesDone:  ev.TilesDone,
		TilesTotal: ev.TilesTotal,
		ElapsedMS:  float64(ev.Elapsed.Microseconds()) / 1000,
	}
	payload, err := json.Marshal(wire)
	if err != nil {
		b.log.WithError(err).Warn("failed to marshal stage event")
		return
	}

	b.mu.RLock()
	var stale []*websocket.Conn
	for conn, mutex := range b.clients {
		mutex.Lock()
		writeErr := conn.WriteMessage(websocket.TextMessage, payload)
		mutex.Unlock()
		if writeErr != nil {
			stale = append(stale, conn)
		}
	}
	b.mu.RUnlock()

	if len(stale) > 0 {
		b.mu.Lock()
		for _, conn := range stale {
			conn.Close()
			delete(b.clients, conn)
		}
		b.mu.Unlock()
	}
}
