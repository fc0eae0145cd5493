package domain

import "time"

// SeismicFeature is one earthquake parsed from the feed. The styling
// functions only read Magnitude, DepthKm, and Place; the remaining fields
// are carried through to the map unchanged.
type SeismicFeature struct {
	ID        string    `json:"id,omitempty"`
	Magnitude float64   `json:"magnitude"`
	DepthKm   float64   `json:"depth_km"`
	Place     string    `json:"place"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Time      time.Time `json:"time,omitempty"`
	URL       string    `json:"url,omitempty"`
}

// MarkerStyle is the visual encoding derived from a feature.
type MarkerStyle struct {
	Radius    float64 `json:"radius"`
	FillColor string  `json:"fill_color"`
	PopupHTML string  `json:"popup_html"`
}

// Fixed stroke and opacity settings shared by every circle marker.
const (
	StrokeColor  = "#000"
	StrokeWeight = 1
	Opacity      = 1.0
	FillOpacity  = 0.8
)

// Marker is everything the map needs to draw one circle marker.
type Marker struct {
	ID           string    `json:"id,omitempty"`
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
	Radius       float64   `json:"radius"`
	FillColor    string    `json:"fill_color"`
	StrokeColor  string    `json:"stroke_color"`
	StrokeWeight int       `json:"stroke_weight"`
	Opacity      float64   `json:"opacity"`
	FillOpacity  float64   `json:"fill_opacity"`
	PopupHTML    string    `json:"popup_html"`
	Magnitude    float64   `json:"magnitude"`
	DepthKm      float64   `json:"depth_km"`
	Time         time.Time `json:"time,omitempty"`
	URL          string    `json:"url,omitempty"`
}

// NewMarker combines a feature's position with its computed style.
func NewMarker(f SeismicFeature, s MarkerStyle) Marker {
	return Marker{
		ID:           f.ID,
		Lat:          f.Lat,
		Lon:          f.Lon,
		Radius:       s.Radius,
		FillColor:    s.FillColor,
		StrokeColor:  StrokeColor,
		StrokeWeight: StrokeWeight,
		Opacity:      Opacity,
		FillOpacity:  FillOpacity,
		PopupHTML:    s.PopupHTML,
		Magnitude:    f.Magnitude,
		DepthKm:      f.DepthKm,
		Time:         f.Time,
		URL:          f.URL,
	}
}

// MarkerLayer is the result of one render pass over the feed.
type MarkerLayer struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Markers     []Marker     `json:"markers"`
	Skipped     []ParseIssue `json:"skipped,omitempty"`
}

// NewMarkerLayer stamps a set of markers with the current time.
func NewMarkerLayer(markers []Marker, skipped []ParseIssue) MarkerLayer {
	return MarkerLayer{
		GeneratedAt: clock.Now().UTC(),
		Markers:     markers,
		Skipped:     skipped,
	}
}
