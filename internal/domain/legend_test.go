package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLegend_Rows(t *testing.T) {
	rows := DefaultLegend().Rows()

	want := []LegendRow{
		{Color: "#84fd6c", Label: "-10–10"},
		{Color: "#bfd16e", Label: "10–30"},
		{Color: "#ddbf5c", Label: "30–50"},
		{Color: "#e79b37", Label: "50–70"},
		{Color: "#ec7141", Label: "70–90"},
		{Color: "#f82720", Label: "90+"},
	}
	assert.Equal(t, want, rows)
}

func TestDefaultLegend_ConsistentWithColorFor(t *testing.T) {
	rows := DefaultLegend().Rows()
	require.Len(t, rows, len(LegendBoundaries))

	for i, low := range LegendBoundaries {
		assert.Equal(t, ColorFor(low+1), rows[i].Color, "boundary %v", low)
	}
}

func TestLegendRenderer_CustomColor(t *testing.T) {
	var sampled []float64
	l := NewLegendRenderer([]float64{0, 5}, func(d float64) string {
		sampled = append(sampled, d)
		return "#fff"
	})

	rows := l.Rows()

	assert.Equal(t, []float64{1, 6}, sampled)
	assert.Equal(t, []LegendRow{{Color: "#fff", Label: "0–5"}, {Color: "#fff", Label: "5+"}}, rows)
}

func TestLegendRenderer_CopiesBoundaries(t *testing.T) {
	bounds := []float64{1, 2}
	l := NewLegendRenderer(bounds, ColorFor)
	bounds[0] = 100

	assert.Equal(t, "1–2", l.Rows()[0].Label)
}

func TestLegendRenderer_Empty(t *testing.T) {
	assert.Empty(t, NewLegendRenderer(nil, ColorFor).Rows())
}
