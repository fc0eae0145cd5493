package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "github.com/couchcryptid/quake-map-service/internal/adapter/http"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testStreetTiles = "https://street.example.test/{z}/{x}/{y}.png"
	testTopoTiles   = "https://topo.example.test/{z}/{x}/{y}.png"
)

type mockRenderer struct {
	layer    domain.MarkerLayer
	err      error
	readyErr error
}

func (m *mockRenderer) CheckReadiness(_ context.Context) error { return m.readyErr }

func (m *mockRenderer) Render(_ context.Context) (domain.MarkerLayer, error) {
	return m.layer, m.err
}

func bayAreaLayer() domain.MarkerLayer {
	f := domain.SeismicFeature{ID: "nc75012345", Magnitude: 5.0, DepthKm: 45.0, Place: "Bay Area", Lon: -122.4, Lat: 37.8}
	return domain.MarkerLayer{
		GeneratedAt: time.Date(2024, time.June, 10, 6, 0, 0, 0, time.UTC),
		Markers:     []domain.Marker{domain.NewMarker(f, domain.NewFeatureStyler(true).Style(f))},
		Skipped:     []domain.ParseIssue{{Index: 1, ID: "ak1", Reason: "missing or non-numeric magnitude"}},
	}
}

func newTestServer(t *testing.T, r *mockRenderer) *httpadapter.Server {
	t.Helper()
	srv, err := httpadapter.NewServer(":0", r, domain.DefaultLegend(), httpadapter.MapOptions{
		StreetTileURL: testStreetTiles,
		TopoTileURL:   testTopoTiles,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return srv
}

func get(srv *httpadapter.Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	rec := get(newTestServer(t, &mockRenderer{}), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := get(newTestServer(t, &mockRenderer{}), "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := get(newTestServer(t, &mockRenderer{readyErr: fmt.Errorf("not ready yet")}), "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := get(newTestServer(t, &mockRenderer{}), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestMarkersReturnsGeoJSON(t *testing.T) {
	rec := get(newTestServer(t, &mockRenderer{layer: bayAreaLayer()}), "/api/markers")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	fc, err := geojson.UnmarshalFeatureCollection(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	f := fc.Features[0]
	assert.Equal(t, "nc75012345", f.ID)
	assert.Equal(t, orb.Point{-122.4, 37.8}, f.Geometry)
	assert.Equal(t, 25.0, f.Properties.MustFloat64("radius"))
	assert.Equal(t, "#ddbf5c", f.Properties.MustString("fillColor"))
	assert.Equal(t, "#000", f.Properties.MustString("color"))
	assert.Equal(t, 1.0, f.Properties.MustFloat64("weight"))
	assert.Equal(t, 0.8, f.Properties.MustFloat64("fillOpacity"))
	assert.Equal(t, "<h3>Bay Area</h3><hr><p>Magnitude: 5<br>Depth: 45</p>", f.Properties.MustString("popupHtml"))
	assert.Equal(t, "2024-06-10T06:00:00Z", fc.ExtraMembers.MustString("generated_at"))
	assert.Equal(t, 1.0, fc.ExtraMembers.MustFloat64("skipped"))
}

func TestMarkersReturns502OnFeedFailure(t *testing.T) {
	rec := get(newTestServer(t, &mockRenderer{err: errors.New("feed error: status 500")}), "/api/markers")

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "feed unavailable", body["status"])
	assert.Contains(t, body["error"], "500")
}

func TestLegendMatchesDomainLegend(t *testing.T) {
	rec := get(newTestServer(t, &mockRenderer{}), "/api/legend")

	require.Equal(t, http.StatusOK, rec.Code)

	var rows []domain.LegendRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Equal(t, domain.DefaultLegend().Rows(), rows)
}

func TestMapPage(t *testing.T) {
	rec := get(newTestServer(t, &mockRenderer{}), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "leaflet")
	assert.Contains(t, body, "street.example.test")
	assert.Contains(t, body, "topo.example.test")
	assert.Contains(t, body, `"Street Map"`)
	assert.Contains(t, body, `"Topographic Map"`)
	assert.Contains(t, body, `"Earthquakes"`)
	assert.Contains(t, body, "collapsed: false")
	assert.Contains(t, body, `position: "bottomright"`)
	assert.Contains(t, body, "#f82720")
	assert.Contains(t, body, "api")
	assert.Contains(t, body, "radius: Math.max(0, p.radius)")
}

func TestMarkersKeepNegativeRadius(t *testing.T) {
	f := domain.SeismicFeature{ID: "hv7300", Magnitude: -0.4, DepthKm: -1.6, Lon: -155.2, Lat: 19.4}
	layer := domain.MarkerLayer{
		GeneratedAt: time.Date(2024, time.June, 10, 6, 0, 0, 0, time.UTC),
		Markers:     []domain.Marker{domain.NewMarker(f, domain.NewFeatureStyler(true).Style(f))},
	}
	rec := get(newTestServer(t, &mockRenderer{layer: layer}), "/api/markers")

	require.Equal(t, http.StatusOK, rec.Code)
	fc, err := geojson.UnmarshalFeatureCollection(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, -2.0, fc.Features[0].Properties.MustFloat64("radius"))
}

func TestUnknownPathIs404(t *testing.T) {
	rec := get(newTestServer(t, &mockRenderer{}), "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
