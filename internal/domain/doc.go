// Package domain styles USGS earthquake features for display on a map.
//
// # Data Source
//
// Features come from the USGS earthquake summary feeds, e.g.
// https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson.
// Each element of "features" carries:
//
//	properties.mag          magnitude (may be null or negative)
//	properties.place        human readable location, e.g. "10km SSE of Ridgecrest, CA"
//	properties.time         origin time, epoch milliseconds
//	geometry.coordinates    [longitude, latitude, depth_km]
//
// Small events measured on local scales can have negative magnitudes. They
// are kept as-is; RadiusFor does not clamp.
//
// # Visual Encoding
//
// Radius is magnitude * 5. Fill color is a step function of depth with
// closed upper bounds, so a depth exactly on a bound takes the shallower color:
//
//	depth <= 10 km   #84fd6c
//	depth <= 30 km   #bfd16e
//	depth <= 50 km   #ddbf5c
//	depth <= 70 km   #e79b37
//	depth <= 90 km   #ec7141
//	deeper           #f82720
//
// The legend is drawn from boundaries -10, 10, 30, 50, 70, 90. Each swatch
// uses ColorFor(boundary + 1), the color of the band starting at that
// boundary. See [LegendRenderer].
//
// # Popups
//
// [DescribeFeature] embeds the place name without escaping. [FeatureStyler]
// escapes it first when EscapePlace is set, which is the service default.
//
// Numbers go through [FormatNumber], which never uses exponent notation:
// 1e-7 renders "0.0000001" and 1e21 renders "1000000000000000000000", where a
// browser's Number.toString would print "1e-7" and "1e+21". Real magnitudes
// and depths never reach either range.
package domain
