package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"i4.energy/across/hc08ctl/at"
	"i4.energy/across/hc08ctl/hc08"
)

// Device is the part of a module handle the server uses. Every hc08 mode
// handle implements it.
type Device interface {
	Mode() hc08.Mode
	QueryMode() (hc08.Mode, error)
	Version() (string, error)
	Parameters() (at.Parameters, error)
	SetName(name string) error
}

// Server handles incoming HTTP requests for inspecting the configured
// module. Requests are serialized, as the module handles one command at a time.
type Server struct {
	Logger *slog.Logger
	Device Device

	mu sync.Mutex
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /parameters", s.handleParameters)
	mux.HandleFunc("PUT /name", s.handleName)
	mux.ServeHTTP(w, r)
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) sendJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// Status is what the module reports about itself.
type Status struct {
	// Mode is the mode of the handle the server holds.
	Mode string `json:"mode"`
	// ModuleMode is the mode the module reports; it differs from Mode after
	// a partially failed transition.
	ModuleMode string `json:"module_mode"`
	Version    string `json:"version"`
}

func readStatus(d Device) (Status, error) {
	version, err := d.Version()
	if err != nil {
		return Status{}, err
	}
	m, err := d.QueryMode()
	if err != nil {
		return Status{}, err
	}
	return Status{
		Mode:       d.Mode().String(),
		ModuleMode: m.String(),
		Version:    version,
	}, nil
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status, err := readStatus(s.Device)
	s.mu.Unlock()
	if err != nil {
		s.Logger.Error("Failed to read status", "error", err)
		s.sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.sendJSON(w, status)
}

func (s *Server) handleParameters(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	params, err := s.Device.Parameters()
	s.mu.Unlock()
	if err != nil {
		s.Logger.Error("Failed to read parameters", "error", err)
		s.sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.sendJSON(w, params)
}

// handleName changes the advertised device name
func (s *Server) handleName(w http.ResponseWriter, r *http.Request) {
	type NameRequest struct {
		Name string `json:"name"`
	}

	var req NameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		s.sendError(w, "'name' field is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err := s.Device.SetName(req.Name)
	s.mu.Unlock()
	if err != nil {
		s.Logger.Error("Failed to set name", "error", err, "name", req.Name)
		s.sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.Logger.Info("Name changed", "name", req.Name)
	w.WriteHeader(http.StatusOK)
}
