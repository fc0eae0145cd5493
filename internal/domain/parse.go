package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// ErrInvalidFeed is returned when a payload is not a GeoJSON FeatureCollection.
var ErrInvalidFeed = errors.New("invalid feature collection")

// ParseIssue describes a feature that was left out of the render.
type ParseIssue struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// ParseFeatureCollection extracts seismic features from a USGS-style GeoJSON
// document. Features without a numeric magnitude or depth are skipped and
// reported; the rest are returned in feed order.
//
// The document is walked with gjson rather than decoded into a GeoJSON
// geometry type because the depth lives in the third coordinate, which
// 2D point types drop.
func ParseFeatureCollection(data []byte) ([]SeismicFeature, []ParseIssue, error) {
	if !gjson.ValidBytes(data) {
		return nil, nil, fmt.Errorf("parse feed: %w: malformed JSON", ErrInvalidFeed)
	}
	features := gjson.GetBytes(data, "features")
	if !features.IsArray() {
		return nil, nil, fmt.Errorf("parse feed: %w: missing features array", ErrInvalidFeed)
	}

	var (
		out    []SeismicFeature
		issues []ParseIssue
		index  int
	)
	features.ForEach(func(_, f gjson.Result) bool {
		feature, reason := parseFeature(f)
		if reason != "" {
			issues = append(issues, ParseIssue{Index: index, ID: f.Get("id").String(), Reason: reason})
		} else {
			out = append(out, feature)
		}
		index++
		return true
	})
	return out, issues, nil
}

// parseFeature returns a non-empty reason when the feature cannot be styled.
func parseFeature(f gjson.Result) (SeismicFeature, string) {
	mag := f.Get("properties.mag")
	if mag.Type != gjson.Number {
		return SeismicFeature{}, "missing or non-numeric magnitude"
	}
	coords := f.Get("geometry.coordinates")
	depth := coords.Get("2")
	if depth.Type != gjson.Number {
		return SeismicFeature{}, "missing or non-numeric depth"
	}

	feature := SeismicFeature{
		ID:        f.Get("id").String(),
		Magnitude: mag.Float(),
		DepthKm:   depth.Float(),
		Place:     f.Get("properties.place").String(),
		Lon:       coords.Get("0").Float(),
		Lat:       coords.Get("1").Float(),
		URL:       f.Get("properties.url").String(),
	}
	if ms := f.Get("properties.time"); ms.Type == gjson.Number {
		feature.Time = time.UnixMilli(ms.Int()).UTC()
	}
	return feature, ""
}
