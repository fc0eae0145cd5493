package http

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templatesFS embed.FS

// LayerRenderer produces a freshly styled marker layer. Every call fetches
// the feed again and, when a sink is configured, republishes the layer.
type LayerRenderer interface {
	sharedobs.ReadinessChecker
	Render(ctx context.Context) (domain.MarkerLayer, error)
}

// MapOptions configures the base layers of the map page.
type MapOptions struct {
	StreetTileURL string
	TopoTileURL   string
}

type mapPageData struct {
	Title         string
	StreetTileURL string
	TopoTileURL   string
	MarkersURL    string
	Legend        []domain.LegendRow
}

// Server serves the map page, its data endpoints, and the health,
// readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	renderer   LayerRenderer
	legend     []domain.LegendRow
	page       *template.Template
	opts       MapOptions
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /, /api/markers, /api/legend,
// /healthz, /readyz, and /metrics routes.
func NewServer(addr string, renderer LayerRenderer, legend *domain.LegendRenderer, opts MapOptions, logger *slog.Logger) (*Server, error) {
	page, err := template.ParseFS(templatesFS, "templates/map.html")
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		renderer: renderer,
		legend:   legend.Rows(),
		page:     page,
		opts:     opts,
		logger:   logger,
	}

	mux.HandleFunc("GET /{$}", s.handleMap)
	mux.HandleFunc("GET /api/markers", s.handleMarkers)
	mux.HandleFunc("GET /api/legend", s.handleLegend)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(renderer))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s, nil
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleMap(w http.ResponseWriter, _ *http.Request) {
	data := mapPageData{
		Title:         "Earthquakes, Past Week",
		StreetTileURL: s.opts.StreetTileURL,
		TopoTileURL:   s.opts.TopoTileURL,
		MarkersURL:    "/api/markers",
		Legend:        s.legend,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("render map page failed", "error", err)
		http.Error(w, "template render failed", http.StatusInternalServerError)
	}
}

func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	layer, err := s.renderer.Render(r.Context())
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusBadGateway, map[string]string{
			"status": "feed unavailable",
			"error":  err.Error(),
		})
		return
	}

	data, err := json.Marshal(markerCollection(layer))
	if err != nil {
		s.logger.Error("encode markers failed", "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "encode markers"})
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleLegend(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.legend)
}
