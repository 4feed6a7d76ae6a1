// Package daemon provides the local HTTP API for the cost model.
package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/vaporcalc/internal/model"
	"github.com/theirongolddev/vaporcalc/internal/store"
)

// maxBodyBytes caps the size of a compute request body.
const maxBodyBytes = 1 << 20

// errOverflow reports a computation whose figures exceed float64 range.
var errOverflow = errors.New("outputs overflow: amounts are too large to compute")

// ScenarioSource is the read side of the scenario store.
type ScenarioSource interface {
	List() ([]store.Summary, error)
	Load(name string) (store.Scenario, error)
	Count() (int, error)
}

// Config controls the daemon runtime behavior.
type Config struct {
	Addr         string
	EventsBuffer int
	ProfitMargin float64
	Scenarios    ScenarioSource // optional
}

// Result is the response body of a computation.
type Result struct {
	Inputs  model.Inputs        `json:"inputs"`
	Outputs model.Outputs       `json:"outputs"`
	Chart   []model.ScenarioBar `json:"chart"`
}

// Event is emitted for every computation served.
type Event struct {
	ID        int64         `json:"id"`
	Type      string        `json:"type"`
	Timestamp time.Time     `json:"timestamp"`
	Source    string        `json:"source"`
	Outputs   model.Outputs `json:"outputs"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt        time.Time `json:"started_at"`
	UptimeSec        int64     `json:"uptime_sec"`
	ComputeCount     int64     `json:"compute_count"`
	ProfitMargin     float64   `json:"profit_margin"`
	LastComputeAt    time.Time `json:"last_compute_at,omitempty"`
	EventCount       int       `json:"event_count"`
	SubscriberCount  int       `json:"subscriber_count"`
	ScenariosEnabled bool      `json:"scenarios_enabled"`
	ScenarioCount    int       `json:"scenario_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config

	mu            sync.RWMutex
	startedAt     time.Time
	lastComputeAt time.Time
	computeCount  int64
	nextEventID   int64
	events        []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.ProfitMargin < 0 || cfg.ProfitMargin >= 1 {
		cfg.ProfitMargin = model.DefaultProfitMargin
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the API routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("POST /v1/compute", s.handleCompute)
	mux.HandleFunc("GET /v1/defaults", s.handleDefaults)
	mux.HandleFunc("GET /v1/events", s.handleEvents)
	mux.HandleFunc("GET /v1/stream", s.handleStream)
	mux.HandleFunc("GET /v1/scenarios", s.handleScenarios)
	mux.HandleFunc("GET /v1/scenarios/{name}", s.handleScenario)
	return mux
}

// Run serves the HTTP API until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Printf("vaporcalc api listening on %s", s.cfg.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("daemon http server: %w", err)
	}
}

// compute runs the model and records an event for the computation.
// Overflowed results are neither counted nor published.
func (s *Service) compute(in model.Inputs, source string) (Result, error) {
	out := model.ComputeWithMargin(in, s.cfg.ProfitMargin)
	if !out.Finite() {
		return Result{}, errOverflow
	}
	now := time.Now()

	s.mu.Lock()
	s.computeCount++
	s.lastComputeAt = now
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      "compute",
		Timestamp: now,
		Source:    source,
		Outputs:   out,
	}
	s.mu.Unlock()

	s.publishEvent(ev)

	return Result{Inputs: in, Outputs: out, Chart: model.ChartData(in, out)}, nil
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:        s.startedAt,
		UptimeSec:        int64(time.Since(s.startedAt).Seconds()),
		ComputeCount:     s.computeCount,
		ProfitMargin:     s.cfg.ProfitMargin,
		LastComputeAt:    s.lastComputeAt,
		EventCount:       len(s.events),
		SubscriberCount:  len(s.subs),
		ScenariosEnabled: s.cfg.Scenarios != nil,
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	st := s.snapshotStatus()
	if s.cfg.Scenarios != nil {
		n, err := s.cfg.Scenarios.Count()
		if err != nil {
			log.Printf("vaporcalc api: counting scenarios: %v", err)
		}
		st.ScenarioCount = n
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Service) handleCompute(w http.ResponseWriter, r *http.Request) {
	var in model.Inputs
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid inputs: %v", err))
		return
	}

	s.writeCompute(w, in, "request")
}

func (s *Service) handleDefaults(w http.ResponseWriter, _ *http.Request) {
	s.writeCompute(w, model.DefaultInputs(), "defaults")
}

func (s *Service) writeCompute(w http.ResponseWriter, in model.Inputs, source string) {
	res, err := s.compute(in, source)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleScenarios(w http.ResponseWriter, _ *http.Request) {
	if s.cfg.Scenarios == nil {
		writeError(w, http.StatusNotFound, "scenario store not enabled")
		return
	}
	list, err := s.cfg.Scenarios.List()
	if err != nil {
		log.Printf("vaporcalc api: listing scenarios: %v", err)
		writeError(w, http.StatusInternalServerError, "listing scenarios failed")
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Service) handleScenario(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Scenarios == nil {
		writeError(w, http.StatusNotFound, "scenario store not enabled")
		return
	}
	name := r.PathValue("name")
	sc, err := s.cfg.Scenarios.Load(name)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.Printf("vaporcalc api: loading scenario %q: %v", name, err)
		writeError(w, http.StatusInternalServerError, "loading scenario failed")
		return
	}
	s.writeCompute(w, sc.Inputs, "scenario:"+sc.Name)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	writeSSE(w, Event{Type: "hello", Timestamp: time.Now()})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

// writeJSON encodes v before committing the status so an encoding
// failure still reaches the client as a 500.
func writeJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Printf("vaporcalc api: encoding response: %v", err)
		buf.Reset()
		buf.WriteString(`{"error":"encoding response failed"}` + "\n")
		code = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("vaporcalc api: encoding %s event: %v", ev.Type, err)
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
