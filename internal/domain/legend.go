package domain

// LegendBoundaries are the lower edges of the legend rows.
var LegendBoundaries = []float64{-10, 10, 30, 50, 70, 90}

// LegendRow is one swatch and its depth range label.
type LegendRow struct {
	Color string `json:"color"`
	Label string `json:"label"`
}

// LegendRenderer turns a boundary list into display rows. It holds no
// reference to a map or page; callers attach the rows wherever they draw.
type LegendRenderer struct {
	boundaries []float64
	color      func(depthKm float64) string
}

// NewLegendRenderer builds a renderer over boundaries using color for swatches.
func NewLegendRenderer(boundaries []float64, color func(depthKm float64) string) *LegendRenderer {
	b := make([]float64, len(boundaries))
	copy(b, boundaries)
	return &LegendRenderer{boundaries: b, color: color}
}

// DefaultLegend is the legend for ColorFor's band table.
func DefaultLegend() *LegendRenderer {
	return NewLegendRenderer(LegendBoundaries, ColorFor)
}

// Rows returns one row per boundary. The swatch samples one kilometre
// below the boundary so it lands inside the band that starts there.
func (l *LegendRenderer) Rows() []LegendRow {
	rows := make([]LegendRow, 0, len(l.boundaries))
	for i, low := range l.boundaries {
		label := FormatNumber(low) + "+"
		if i+1 < len(l.boundaries) {
			label = FormatNumber(low) + "–" + FormatNumber(l.boundaries[i+1])
		}
		rows = append(rows, LegendRow{
			Color: l.color(low + 1),
			Label: label,
		})
	}
	return rows
}
