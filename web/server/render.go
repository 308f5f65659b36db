package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-raycast-tracer/pkg/bmp"
	"github.com/df07/go-raycast-tracer/pkg/framebuffer"
	"github.com/df07/go-raycast-tracer/pkg/integrator"
	"github.com/df07/go-raycast-tracer/pkg/loaders"
	"github.com/df07/go-raycast-tracer/pkg/renderer"
	"github.com/df07/go-raycast-tracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string // Scene id (e.g., "cornell-box" or "file:room")
	Renderer string // "direct" or "path"
	Width    int    // Image width
	Height   int    // Image height
	Samples  int    // Samples per pixel
	Bounces  int    // Maximum bounces per path
	Seed     int    // Scene and sampling seed
	Gamma    float64
	Format   string // "bmp", "png" or "json"
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int64   `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	Shaded         int     `json:"shaded"`
	Escaped        int     `json:"escaped"`
	Emitted        int     `json:"emitted"`
	Exhausted      int     `json:"exhausted"`
	Workers        int     `json:"workers"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

// RenderResponse is the body of a format=json render
type RenderResponse struct {
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene:    query.Get("scene"),
		Renderer: query.Get("renderer"),
		Format:   query.Get("format"),
	}
	if req.Scene == "" {
		req.Scene = "default"
	}
	if req.Renderer == "" {
		req.Renderer = "direct"
	}
	if req.Renderer != "direct" && req.Renderer != "path" {
		return nil, fmt.Errorf("renderer must be direct or path, got: %s", req.Renderer)
	}
	if req.Format == "" {
		req.Format = "png"
	}
	if req.Format != "bmp" && req.Format != "png" && req.Format != "json" {
		return nil, fmt.Errorf("format must be bmp, png or json, got: %s", req.Format)
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 225, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 1, 1, 10000); err != nil {
		return nil, err
	}
	if req.Bounces, err = parseIntParam(query, "bounces", integrator.DefaultMaxBounces, 1, 1000); err != nil {
		return nil, err
	}
	if req.Seed, err = parseIntParam(query, "seed", 42, 0, 1<<30); err != nil {
		return nil, err
	}
	if req.Gamma, err = parseFloatParam(query, "gamma", integrator.DefaultGamma, 0.1, 5); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// loadScene resolves a scene id, reporting whether a failure was the client's fault
func (s *Server) loadScene(id string, seed int64) (*scene.Scene, int, error) {
	sceneObj, err := loaders.LoadSceneID(id, s.sceneDir, seed)
	if err != nil {
		if errors.Is(err, scene.ErrUnknownScene) {
			return nil, http.StatusNotFound, err
		}
		return nil, http.StatusBadRequest, err
	}
	return sceneObj, http.StatusOK, nil
}

// handleRender renders a scene to completion and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, status, err := s.loadScene(req.Scene, int64(req.Seed))
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	// Renders are CPU bound; wait for a slot or give up with the client
	if err := s.renderSlots.Acquire(r.Context(), 1); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Server busy: "+err.Error())
		return
	}
	defer s.renderSlots.Release(1)

	config := renderer.DefaultConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.SamplesPerPixel = req.Samples
	config.MaxBounces = req.Bounces
	config.Seed = int64(req.Seed)
	config.Gamma = req.Gamma

	var integ integrator.Integrator = integrator.NewDirectIntegrator()
	if req.Renderer == "path" {
		integ = integrator.NewPathTracingIntegrator(req.Bounces)
	}

	renderID := fmt.Sprintf("render-%d", s.renderCount.Add(1))
	console := NewConsole(renderID, 16)

	startTime := time.Now()
	buf, stats, err := renderer.NewRaytracer(sceneObj, config, console).Render(r.Context(), integ)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	switch req.Format {
	case "bmp":
		s.writeImage(w, "image/bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, buf) })
	case "png":
		s.writeImage(w, "image/png", func(b *bytes.Buffer) error { return png.Encode(b, buf.ToRGBA()) })
	case "json":
		imageData, err := imageToBase64PNG(buf)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, RenderResponse{
			Scene:     sceneObj.Name,
			Width:     buf.Width,
			Height:    buf.Height,
			ImageData: imageData,
			Stats: Stats{
				TotalPixels:    stats.TotalPixels,
				TotalSamples:   int64(stats.TotalSamples),
				AverageSamples: stats.AverageSamples,
				Shaded:         stats.Shaded,
				Escaped:        stats.Escaped,
				Emitted:        stats.Emitted,
				Exhausted:      stats.Exhausted,
				Workers:        stats.Workers,
				ElapsedMs:      time.Since(startTime).Milliseconds(),
			},
			Console: console.Messages(),
		})
	}
}

// writeImage encodes into memory first so an encoding failure can still be reported
func (s *Server) writeImage(w http.ResponseWriter, contentType string, encode func(*bytes.Buffer) error) {
	var b bytes.Buffer
	if err := encode(&b); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b.Bytes()); err != nil {
		log.Printf("Error writing image: %v", err)
	}
}

// imageToBase64PNG converts a buffer to base64-encoded PNG
func imageToBase64PNG(buf *framebuffer.Buffer) (string, error) {
	var b bytes.Buffer
	if err := png.Encode(&b, buf.ToRGBA()); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b.Bytes()), nil
}
