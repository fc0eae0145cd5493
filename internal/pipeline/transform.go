package pipeline

import (
	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// StyleFeatures turns parsed features into markers in feed order. Each
// feature is styled independently, so the result for one never depends on
// its neighbours.
func StyleFeatures(styler domain.Styler, features []domain.SeismicFeature) []domain.Marker {
	markers := make([]domain.Marker, 0, len(features))
	for _, f := range features {
		markers = append(markers, domain.NewMarker(f, styler.Style(f)))
	}
	return markers
}
