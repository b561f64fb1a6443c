package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "frame", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// FrameUpdate carries the finished image and its statistics
type FrameUpdate struct {
	ImageData    string `json:"imageData"` // Base64 encoded PNG
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	TotalSamples int    `json:"totalSamples"`
	Workers      int    `json:"workers"`
	ElapsedMs    int64  `json:"elapsedMs"`
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Camera    *renderer.Camera
	Raytracer *renderer.Raytracer
}

var contentTypes = map[string]string{
	output.FormatPNG: "image/png",
	output.FormatPPM: "image/x-portable-pixmap",
}

// handleRender renders a scene and streams progress followed by the frame via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	events := make(chan SSEEvent, 100)
	written := make(chan struct{})
	go func() {
		s.writeSSEEvents(ctx, w, events)
		close(written)
	}()
	defer func() {
		close(events)
		<-written
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		events <- SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)}
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	forwarded := make(chan struct{})
	go func() {
		s.streamConsoleMessages(consoleChan, events)
		close(forwarded)
	}()

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	frame, err := s.renderFrame(ctx, req, NewWebLogger(renderID, consoleChan))
	close(consoleChan)
	<-forwarded

	if err != nil {
		events <- SSEEvent{Type: "error", Data: err.Error()}
		return
	}

	data, err := json.Marshal(frame)
	if err != nil {
		events <- SSEEvent{Type: "error", Data: err.Error()}
		return
	}
	events <- SSEEvent{Type: "frame", Data: string(data)}
	events <- SSEEvent{Type: "complete", Data: "Rendering completed"}
}

// renderFrame renders req to a PNG and packages it as a frame update
func (s *Server) renderFrame(ctx context.Context, req *RenderRequest, logger core.Logger) (*FrameUpdate, error) {
	pipeline, err := s.setupRenderingPipeline(req, logger)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	stats, err := pipeline.Raytracer.Render(ctx, pipeline.Scene.World, output.NewPNGWriter(&buf))
	if err != nil {
		return nil, fmt.Errorf("rendering failed: %w", err)
	}

	return &FrameUpdate{
		ImageData:    base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:        stats.Width,
		Height:       stats.Height,
		TotalSamples: stats.TotalSamples,
		Workers:      stats.Workers,
		ElapsedMs:    stats.Elapsed.Milliseconds(),
	}, nil
}

// handleImage renders a scene and responds with the encoded image
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = output.FormatPNG
	}

	var buf bytes.Buffer
	frame, err := output.NewFrameWriter(format, &buf)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pipeline, err := s.setupRenderingPipeline(req, nil)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := pipeline.Raytracer.Render(r.Context(), pipeline.Scene.World, frame); err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Warningf("writing image response: %v", err)
	}
}

// setupRenderingPipeline creates and configures the scene and raytracer
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sceneObj, err := scene.Lookup(req.Scene)
	if err != nil {
		return nil, err
	}

	config := sceneObj.Camera
	config.ImageWidth = req.Width
	config.SamplesPerPixel = req.Samples
	config.MaxDepth = req.MaxDepth

	camera, err := renderer.NewCamera(config)
	if err != nil {
		return nil, err
	}

	integratorInst, err := integrator.New(req.Integrator, sceneObj.Background)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = s.logger
	}
	raytracer := renderer.NewRaytracer(camera, integratorInst, logger)
	raytracer.SetRenderConfig(renderer.RenderConfig{Workers: req.Workers, Seed: req.Seed})

	width, height := camera.ImageSize()
	if width*height > 800*600 && req.Samples > 100 {
		s.logger.Warningf("large image with high samples may render slowly")
	}

	return &RenderingPipeline{
		Scene:     sceneObj,
		Camera:    camera,
		Raytracer: raytracer,
	}, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents writes every event from a single goroutine until events is closed.
// Events arriving after the client disconnects are drained and discarded.
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, events <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for event := range events {
		if ctx.Err() != nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			s.logger.Debugf("client went away: %v", err)
			continue
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages as SSE events until consoleChan is closed
func (s *Server) streamConsoleMessages(consoleChan <-chan ConsoleMessage, events chan<- SSEEvent) {
	for msg := range consoleChan {
		data, err := json.Marshal(msg)
		if err != nil {
			s.logger.Errorf("marshaling console message: %v", err)
			continue
		}
		events <- SSEEvent{Type: "console", Data: string(data)}
	}
}
