package http

import (
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// markerCollection converts a rendered layer into GeoJSON. Style keys use the
// Leaflet path option names so the page can pass them straight to circleMarker.
func markerCollection(layer domain.MarkerLayer) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range layer.Markers {
		f := geojson.NewFeature(orb.Point{m.Lon, m.Lat})
		if m.ID != "" {
			f.ID = m.ID
		}
		f.Properties = geojson.Properties{
			"radius":      m.Radius,
			"fillColor":   m.FillColor,
			"color":       m.StrokeColor,
			"weight":      m.StrokeWeight,
			"opacity":     m.Opacity,
			"fillOpacity": m.FillOpacity,
			"popupHtml":   m.PopupHTML,
			"mag":         m.Magnitude,
			"depth":       m.DepthKm,
		}
		if !m.Time.IsZero() {
			f.Properties["time"] = m.Time.Format(time.RFC3339)
		}
		if m.URL != "" {
			f.Properties["url"] = m.URL
		}
		fc.Append(f)
	}
	fc.ExtraMembers = geojson.Properties{
		"generated_at": layer.GeneratedAt.Format(time.RFC3339),
		"skipped":      len(layer.Skipped),
	}
	return fc
}
