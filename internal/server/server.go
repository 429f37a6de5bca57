// Package server streams simulation frames to browser clients over
// websockets and accepts their control messages. The solver runs in a single
// loop goroutine; client commands cross into it through a channel, so the
// grid is never touched from a connection handler.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"floodsim/internal/core"
	"floodsim/internal/sims/flood"
)

// Options configure a streaming session.
type Options struct {
	// FrameRate is how many frames per second are simulated and broadcast.
	FrameRate int
	// Speed is the initial number of solver substeps per frame.
	Speed int
}

// Frame is one broadcast snapshot of the simulation.
type Frame struct {
	Type        string      `json:"type"`
	Step        int64       `json:"step"`
	SimTime     float64     `json:"sim_time"`
	TotalVolume float64     `json:"total_volume"`
	MaxDepth    float32     `json:"max_depth"`
	GridSize    int         `json:"grid_size"`
	CellSize    float32     `json:"cell_size"`
	Speed       int         `json:"speed"`
	Depth       []float32   `json:"depth"`
	Storms      []StormInfo `json:"storms"`
}

// StormInfo describes one active rain region for client-side display.
type StormInfo struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Rain   float32 `json:"rain"`
}

// RainCommand drops a burst of water on a region of the grid.
type RainCommand struct {
	Col    float32 `json:"col"`
	Row    float32 `json:"row"`
	Radius float32 `json:"radius"`
	Amount float32 `json:"amount"`
}

// controlMessage is the wire form of a client command. Fields are pointers so
// absent keys stay distinguishable from zero values.
type controlMessage struct {
	Speed *int         `json:"speed,omitempty"`
	Rain  *RainCommand `json:"rain,omitempty"`
	Reset *bool        `json:"reset,omitempty"`
}

// Server owns a flood session and the set of connected clients.
type Server struct {
	world *flood.World
	storm *flood.Storm
	timer *core.FixedStep
	speed int

	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex

	commands chan controlMessage
}

// New constructs a Server around an already warmed-up session.
func New(world *flood.World, storm *flood.Storm, opts Options) *Server {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 10
	}
	if opts.Speed <= 0 {
		opts.Speed = 4
	}
	return &Server{
		world: world,
		storm: storm,
		timer: core.NewFixedStep(opts.FrameRate),
		speed: opts.Speed,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:  make(map[*websocket.Conn]*sync.Mutex),
		commands: make(chan controlMessage, 64),
	}
}

// Handler returns the HTTP mux: the websocket endpoint plus a JSON metadata
// endpoint for non-streaming consumers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/meta", s.handleMeta)
	return mux
}

// Run drives the simulation loop until the context is canceled: each tick it
// applies queued commands, advances the solver and broadcasts a frame.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.timer.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.drainCommands()
			s.stepFrame()
			s.broadcast(s.snapshot())
		}
	}
}

func (s *Server) drainCommands() {
	for {
		select {
		case cmd := <-s.commands:
			s.apply(cmd)
		default:
			return
		}
	}
}

func (s *Server) apply(cmd controlMessage) {
	if cmd.Speed != nil {
		speed := *cmd.Speed
		if speed < 1 {
			speed = 1
		}
		if speed > 64 {
			speed = 64
		}
		s.speed = speed
	}
	if cmd.Rain != nil {
		s.world.AddRainRegion(cmd.Rain.Col, cmd.Rain.Row, cmd.Rain.Radius, cmd.Rain.Amount)
	}
	if cmd.Reset != nil && *cmd.Reset {
		s.world.Reset()
	}
}

func (s *Server) stepFrame() {
	dt := s.world.Dt()
	for i := 0; i < s.speed; i++ {
		if s.storm != nil {
			s.storm.Update(s.world, dt)
		}
		s.world.Step(dt)
	}
}

// snapshot builds a frame from the current state. The depth buffer is copied
// so the broadcast does not race the next step.
func (s *Server) snapshot() Frame {
	depth := s.world.DepthField()
	copied := make([]float32, len(depth))
	copy(copied, depth)

	var storms []StormInfo
	if s.storm != nil {
		for _, c := range s.storm.Cells() {
			storms = append(storms, StormInfo{X: c.X, Y: c.Y, Radius: c.Radius, Rain: c.Rain})
		}
	}

	return Frame{
		Type:        "frame",
		Step:        s.world.Steps(),
		SimTime:     s.world.SimTime(),
		TotalVolume: s.world.TotalVolume(),
		MaxDepth:    s.world.MaxDepth(),
		GridSize:    s.world.GridSize(),
		CellSize:    s.world.CellSize(),
		Speed:       s.speed,
		Depth:       copied,
		Storms:      storms,
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("websocket upgrade error:", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	s.mu.Lock()
	s.clients[conn] = connMutex
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
	}()

	// Read loop: parse control messages and hand them to the sim loop. A
	// full command queue drops the message rather than blocking the reader.
	for {
		var msg controlMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("websocket read error:", err)
			}
			return
		}
		select {
		case s.commands <- msg:
		default:
			log.Println("command queue full, dropping message")
		}
	}
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	// Only immutable session facts are served here; live state goes out on
	// the websocket from the sim loop.
	meta := struct {
		GridSize int     `json:"grid_size"`
		CellSize float32 `json:"cell_size"`
		Dt       float32 `json:"dt"`
	}{
		GridSize: s.world.GridSize(),
		CellSize: s.world.CellSize(),
		Dt:       s.world.Dt(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(meta); err != nil {
		log.Println("meta encode error:", err)
	}
}

func (s *Server) broadcast(frame Frame) {
	s.mu.RLock()
	var failed []*websocket.Conn
	for conn, mutex := range s.clients {
		mutex.Lock()
		err := conn.WriteJSON(frame)
		mutex.Unlock()
		if err != nil {
			log.Println("websocket write error:", err)
			conn.Close()
			failed = append(failed, conn)
		}
	}
	s.mu.RUnlock()

	if len(failed) > 0 {
		s.mu.Lock()
		for _, conn := range failed {
			delete(s.clients, conn)
		}
		s.mu.Unlock()
	}
}
