// Package api provides the HTTP and WebSocket server for the scanner.
// Scans run as fire-and-forget background tasks keyed by id; clients poll
// the task endpoint or listen for scan events on the socket.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/somewisecrack/omnispread/internal/data"
	"github.com/somewisecrack/omnispread/internal/metrics"
	"github.com/somewisecrack/omnispread/internal/scanner"
	"github.com/somewisecrack/omnispread/pkg/types"
)

// ScanTask tracks one background scan.
type ScanTask struct {
	ID      string
	Status  types.ScanStatus
	Tickers []string
	Started time.Time
	Results []types.ScanResult
	Error   string
	cancel  context.CancelFunc
}

// TaskView is the JSON shape of a task returned to clients.
type TaskView struct {
	TaskID  string             `json:"task_id"`
	Status  types.ScanStatus   `json:"status"`
	Started int64              `json:"started,omitempty"`
	Results []types.ScanResult `json:"results"`
	Error   string             `json:"error,omitempty"`
}

// Server is the HTTP/WebSocket API server.
type Server struct {
	mu         sync.RWMutex
	logger     *zap.Logger
	config     *types.ServerConfig
	scanCfg    types.ScanConfig
	provider   data.Provider
	recorder   *metrics.Recorder
	router     *mux.Router
	httpServer *http.Server
	upgrader   websocket.Upgrader
	clients    map[string]*Client
	tasks      map[string]*ScanTask
}

// NewServer creates the API server.
func NewServer(logger *zap.Logger, config *types.ServerConfig, scanCfg types.ScanConfig, provider data.Provider, rec *metrics.Recorder) *Server {
	server := &Server{
		logger:   logger,
		config:   config,
		scanCfg:  scanCfg,
		provider: provider,
		recorder: rec,
		router:   mux.NewRouter(),
		clients:  make(map[string]*Client),
		tasks:    make(map[string]*ScanTask),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for development
			},
		},
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/v1/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/api/v1/presets", s.handlePresets).Methods("GET")

	s.router.HandleFunc("/api/v1/scan", s.handleStartScan).Methods("POST")
	s.router.HandleFunc("/api/v1/scan/{id}", s.handleGetScan).Methods("GET")
	s.router.HandleFunc("/api/v1/scan/{id}/cancel", s.handleCancelScan).Methods("POST")

	s.router.HandleFunc(s.config.WebSocketPath, s.handleWebSocket)
}

// Router exposes the configured handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(s.router)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("starting API server", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the server and cancels running scans.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	for _, task := range s.tasks {
		if task.Status == types.ScanProcessing && task.cancel != nil {
			task.cancel()
		}
	}
	for _, client := range s.clients {
		client.Conn.Close()
	}
	s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Presets)
}

func (s *Server) handleStartScan(w http.ResponseWriter, r *http.Request) {
	var req types.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	tickers := ResolveTickers(req.Tickers, req.Preset)
	if len(tickers) < 2 {
		http.Error(w, "need at least 2 tickers", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	task := &ScanTask{
		ID:      uuid.New().String(),
		Status:  types.ScanProcessing,
		Tickers: tickers,
		Started: time.Now(),
		cancel:  cancel,
	}

	s.mu.Lock()
	s.tasks[task.ID] = task
	s.mu.Unlock()

	go s.runScan(ctx, task)

	s.logger.Info("scan started",
		zap.String("task_id", task.ID),
		zap.Int("tickers", len(tickers)))
	writeJSON(w, http.StatusAccepted, map[string]string{"task_id": task.ID})
}

func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	view := s.taskSnapshot(id)
	if view == nil {
		writeJSON(w, http.StatusOK, TaskView{
			TaskID:  id,
			Status:  types.ScanNotFound,
			Results: []types.ScanResult{},
		})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleCancelScan(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.cancelTask(id) {
		http.Error(w, "scan not found or not running", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"task_id": id, "status": "cancelled"})
}

// runScan executes one scan task end to end.
func (s *Server) runScan(ctx context.Context, task *ScanTask) {
	sc := scanner.New(s.logger, s.scanCfg, s.recorder)
	sc.OnProgress = func(phase string, done, total int) {
		s.broadcast(&Message{
			ID:     uuid.New().String(),
			Type:   "event",
			Method: "scan:progress",
			Payload: map[string]interface{}{
				"task_id": task.ID,
				"phase":   phase,
				"done":    done,
				"total":   total,
			},
			Timestamp: time.Now().UnixMilli(),
		})
	}

	results, err := s.scanOnce(ctx, sc, task.Tickers)

	s.mu.Lock()
	switch {
	case ctx.Err() != nil:
		task.Status = types.ScanCancelled
	case err != nil:
		task.Status = types.ScanFailed
		task.Error = err.Error()
	default:
		task.Status = types.ScanCompleted
		task.Results = results
	}
	status := task.Status
	s.mu.Unlock()

	if err != nil && ctx.Err() == nil {
		s.logger.Error("scan failed", zap.String("task_id", task.ID), zap.Error(err))
	} else {
		s.logger.Info("scan finished",
			zap.String("task_id", task.ID),
			zap.String("status", string(status)),
			zap.Int("results", len(results)))
	}

	s.broadcast(&Message{
		ID:     uuid.New().String(),
		Type:   "event",
		Method: "scan:complete",
		Payload: map[string]interface{}{
			"task_id": task.ID,
			"status":  status,
			"results": len(results),
		},
		Timestamp: time.Now().UnixMilli(),
	})
}

func (s *Server) scanOnce(ctx context.Context, sc *scanner.Scanner, tickers []string) ([]types.ScanResult, error) {
	panel, err := s.provider.FetchPanel(ctx, tickers)
	if err != nil {
		return nil, fmt.Errorf("fetching prices: %w", err)
	}
	sectors, err := s.provider.FetchSectors(ctx, tickers)
	if err != nil {
		return nil, fmt.Errorf("fetching sectors: %w", err)
	}
	return sc.Scan(ctx, panel, sectors)
}

// taskSnapshot returns a copy of the task safe for serialization, or nil
// when the id is unknown.
func (s *Server) taskSnapshot(id string) *TaskView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil
	}
	results := task.Results
	if results == nil {
		results = []types.ScanResult{}
	}
	return &TaskView{
		TaskID:  task.ID,
		Status:  task.Status,
		Started: task.Started.Unix(),
		Results: results,
		Error:   task.Error,
	}
}

// cancelTask cancels a processing task. Returns false when the id is
// unknown or the task already finished.
func (s *Server) cancelTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.Status != types.ScanProcessing || task.cancel == nil {
		return false
	}
	task.cancel()
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
