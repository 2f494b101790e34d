// Package api exposes the lamp over HTTP: the original query-parameter
// endpoints, a JSON state endpoint, health probes and a small control
// page.
package api

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/keyraphi/led-spot/internal/agent"
	"github.com/keyraphi/led-spot/internal/colorspace"
	"github.com/keyraphi/led-spot/internal/easing"
	"github.com/keyraphi/led-spot/internal/spotlight"
	"github.com/keyraphi/led-spot/pkg/health"
)

//go:embed static/index.html
var indexHTML []byte

// Server wires the HTTP surface to the agent
type Server struct {
	agent  *agent.Agent
	health *health.Checker
	logger *slog.Logger
}

// NewServer creates a new API server
func NewServer(a *agent.Agent, checker *health.Checker, logger *slog.Logger) *Server {
	return &Server{
		agent:  a,
		health: checker,
		logger: logger,
	}
}

// Handler returns the HTTP handler with all routes registered
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/rgb", s.handleSetRGB)
	mux.HandleFunc("/kelvin", s.handleSetKelvin)
	mux.HandleFunc("/wheel", s.handleSetWheelMode)
	mux.HandleFunc("/cycle", s.handleSetCycleMode)
	mux.HandleFunc("/setCycleDuration", s.handleSetCycleDuration)
	mux.HandleFunc("/setCycleEasing", s.handleSetCycleEasing)
	mux.HandleFunc("/setTransitionDuration", s.handleSetTransitionDuration)
	mux.HandleFunc("/setTransitionEasing", s.handleSetTransitionEasing)

	mux.HandleFunc("/color", s.handleGetColor)
	mux.HandleFunc("/preset", s.handleApplyPreset)

	if s.health != nil {
		mux.HandleFunc("/health", s.health.HandlerFunc())
		mux.HandleFunc("/ready", s.health.ReadyHandlerFunc())
	}

	mux.HandleFunc("/", s.handleIndex)

	return mux
}

func (s *Server) handleSetRGB(w http.ResponseWriter, r *http.Request) {
	red := intArg(r, "r", 0)
	green := intArg(r, "g", 0)
	blue := intArg(r, "b", 0)

	s.agent.SetRGB(red, green, blue)
	respondOK(w)
}

func (s *Server) handleSetKelvin(w http.ResponseWriter, r *http.Request) {
	kelvin := floatArg(r, "kelvin", 6500.0)
	brightness := floatArg(r, "brightness", 1.0)

	s.agent.SetColorTemperature(kelvin, brightness)
	respondOK(w)
}

func (s *Server) handleSetWheelMode(w http.ResponseWriter, r *http.Request) {
	period := floatArg(r, "period", 10.0)
	direction := spotlight.ParseDirection(r.URL.Query().Get("direction"))

	s.agent.StartWheel(period, direction)
	respondOK(w)
}

func (s *Server) handleSetCycleMode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("colors") {
		http.Error(w, "Missing colors parameter", http.StatusBadRequest)
		return
	}

	colors := parseColorList(q.Get("colors"))
	if len(colors) == 0 {
		http.Error(w, "No valid colors", http.StatusBadRequest)
		return
	}
	random := strings.EqualFold(q.Get("random"), "true")

	s.agent.StartCycle(colors, random)
	respondOK(w)
}

func (s *Server) handleSetCycleDuration(w http.ResponseWriter, r *http.Request) {
	s.agent.SetCycleDuration(floatArg(r, "duration", 2.0))
	respondOK(w)
}

func (s *Server) handleSetCycleEasing(w http.ResponseWriter, r *http.Request) {
	s.agent.SetCycleEasing(easing.FromString(stringArg(r, "easing", "linear")))
	respondOK(w)
}

func (s *Server) handleSetTransitionDuration(w http.ResponseWriter, r *http.Request) {
	s.agent.SetTransitionDuration(floatArg(r, "duration", 0.2))
	respondOK(w)
}

func (s *Server) handleSetTransitionEasing(w http.ResponseWriter, r *http.Request) {
	s.agent.SetTransitionEasing(easing.FromString(stringArg(r, "easing", "cubic-in-out")))
	respondOK(w)
}

// colorResponse is the JSON document served on /color
type colorResponse struct {
	Color         string `json:"color"`
	R             uint8  `json:"r"`
	G             uint8  `json:"g"`
	B             uint8  `json:"b"`
	Mode          string `json:"mode"`
	Daylight      bool   `json:"daylight"`
	OverrideUntil string `json:"override_until,omitempty"`
}

func (s *Server) handleGetColor(w http.ResponseWriter, r *http.Request) {
	state := s.agent.Snapshot()

	response := colorResponse{
		Color:    state.Color.Hex(),
		R:        state.Color.R,
		G:        state.Color.G,
		B:        state.Color.B,
		Mode:     state.Mode.String(),
		Daylight: state.Daylight,
	}
	if !state.OverrideUntil.IsZero() {
		response.OverrideUntil = state.OverrideUntil.Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("Failed to encode color response", "error", err)
	}
}

func (s *Server) handleApplyPreset(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "Missing name parameter", http.StatusBadRequest)
		return
	}

	if err := s.agent.ApplyPreset(name); err != nil {
		if errors.Is(err, agent.ErrUnknownPreset) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	respondOK(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(indexHTML); err != nil {
		s.logger.Error("Failed to write index page", "error", err)
	}
}

func respondOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "OK")
}

// intArg reads an integer query parameter, with a default value
func intArg(r *http.Request, name string, defaultValue int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// floatArg reads a float query parameter, with a default value
func floatArg(r *http.Request, name string, defaultValue float64) float64 {
	if v := r.URL.Query().Get(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// stringArg reads a string query parameter, with a default value
func stringArg(r *http.Request, name, defaultValue string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return defaultValue
}

// parseColorList parses a comma-separated list of hex colors.
// Entries that do not parse are skipped.
func parseColorList(list string) []colorspace.RGB {
	parts := strings.Split(list, ",")
	colors := make([]colorspace.RGB, 0, len(parts))
	for _, part := range parts {
		c, err := colorspace.ParseHex(part)
		if err != nil {
			continue
		}
		colors = append(colors, c)
	}
	return colors
}
