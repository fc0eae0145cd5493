package domain

import (
	"html"
	"strconv"
)

// radiusScale converts magnitude to a marker radius in pixels.
const radiusScale = 5

// DepthBand maps every depth up to and including MaxDepthKm to Color.
type DepthBand struct {
	MaxDepthKm float64
	Color      string
}

// depthBands is ordered shallow to deep. Depths beyond the last bound use
// deepestColor.
var depthBands = []DepthBand{
	{MaxDepthKm: 10, Color: "#84fd6c"},
	{MaxDepthKm: 30, Color: "#bfd16e"},
	{MaxDepthKm: 50, Color: "#ddbf5c"},
	{MaxDepthKm: 70, Color: "#e79b37"},
	{MaxDepthKm: 90, Color: "#ec7141"},
}

const deepestColor = "#f82720"

// DepthBands returns a copy of the band table used by ColorFor.
func DepthBands() []DepthBand {
	out := make([]DepthBand, len(depthBands))
	copy(out, depthBands)
	return out
}

// Palette returns every color ColorFor can produce, shallow to deep.
func Palette() []string {
	out := make([]string, 0, len(depthBands)+1)
	for _, b := range depthBands {
		out = append(out, b.Color)
	}
	return append(out, deepestColor)
}

// RadiusFor scales magnitude linearly. Zero and negative magnitudes pass
// through unchanged; the renderer decides what to do with them.
func RadiusFor(magnitude float64) float64 {
	return magnitude * radiusScale
}

// ColorFor returns the fill color of the first band whose upper bound is
// >= depthKm. Boundary depths belong to the shallower band.
func ColorFor(depthKm float64) string {
	i := BandIndex(depthKm)
	if i == len(depthBands) {
		return deepestColor
	}
	return depthBands[i].Color
}

// BandIndex returns the position of depthKm in Palette.
func BandIndex(depthKm float64) int {
	for i, b := range depthBands {
		if depthKm <= b.MaxDepthKm {
			return i
		}
	}
	return len(depthBands)
}

// DescribeFeature builds the popup fragment. place is embedded verbatim.
func DescribeFeature(magnitude, depthKm float64, place string) string {
	return "<h3>" + place + "</h3><hr><p>Magnitude: " + FormatNumber(magnitude) +
		"<br>Depth: " + FormatNumber(depthKm) + "</p>"
}

// FormatNumber renders v in its shortest decimal form: 5.0 -> "5", 6.1 -> "6.1".
// It never switches to exponent notation.
func FormatNumber(v float64) string {
	if v == 0 {
		// drop the sign of negative zero
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Styler derives the visual encoding for a feature.
type Styler interface {
	Style(f SeismicFeature) MarkerStyle
}

// FeatureStyler is the default Styler.
type FeatureStyler struct {
	// EscapePlace HTML-escapes the place name before it goes into the popup.
	// Feed text is not trusted.
	EscapePlace bool
}

// NewFeatureStyler returns a styler; escapePlace controls popup escaping.
func NewFeatureStyler(escapePlace bool) *FeatureStyler {
	return &FeatureStyler{EscapePlace: escapePlace}
}

func (s *FeatureStyler) Style(f SeismicFeature) MarkerStyle {
	place := f.Place
	if s.EscapePlace {
		place = html.EscapeString(place)
	}
	return MarkerStyle{
		Radius:    RadiusFor(f.Magnitude),
		FillColor: ColorFor(f.DepthKm),
		PopupHTML: DescribeFeature(f.Magnitude, f.DepthKm, place),
	}
}
