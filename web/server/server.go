package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-sphere-tracer/pkg/log"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// Server serves scene previews over HTTP
type Server struct {
	port   int
	mux    *http.ServeMux
	logger log.Logger
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{
		port:   port,
		mux:    http.NewServeMux(),
		logger: log.New("server"),
	}

	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/image", s.handleImage)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// Handler exposes the request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on the configured port until the server fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Noticef("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest holds the parameters shared by every render endpoint
type RenderRequest struct {
	Scene      string // Built-in scene ID
	Width      int    // Image width; height follows the scene's aspect ratio
	Samples    int    // Samples per pixel
	MaxDepth   int    // Maximum ray bounces
	Seed       int64
	Workers    int
	Integrator string
}

// parseCommonSceneParams parses the scene and image parameters
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = scene.DefaultSceneID
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, 2000); err != nil {
		return err
	}
	if req.Samples, err = parseIntParam(query, "spp", 50, 1, 10000); err != nil {
		return err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", 50, 1, 1000); err != nil {
		return err
	}
	return nil
}

// parseRenderRequest parses every render parameter
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, 256); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)
	req.Integrator = query.Get("integrator")
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sceneSummary is the JSON form of a catalog entry
type sceneSummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Objects     int    `json:"objects"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Samples     int    `json:"samples"`
}

// handleScenes lists the built-in scenes with their recommended settings
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	var scenes []sceneSummary
	for _, info := range scene.List() {
		scenes = append(scenes, sceneSummary{
			ID:          info.ID,
			DisplayName: info.DisplayName,
			Description: info.Description,
			Objects:     info.Objects,
			Width:       info.Width,
			Height:      info.Height,
			Samples:     info.Samples,
		})
	}
	s.writeJSON(w, http.StatusOK, scenes)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Errorf("encoding response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
