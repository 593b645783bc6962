// Package chart reads chromosome contours and their identifiers from a
// digitized karyotype report chart. The chart prints the 24 identifiers
// (1-22, X, Y) in four fixed rows; the identifier of every chromosome body
// contour is recovered purely from this spatial layout.
package chart

import (
	"karyotype-reader/pkg/geometry"
)

// labelRowCount is the number of printed identifier rows on a chart.
const labelRowCount = 4

// chromoIDs is the canonical identifier sequence in chart row-major order.
var chromoIDs = [...]string{
	"1", "2", "3", "4", "5",
	"6", "7", "8", "9", "10", "11", "12",
	"13", "14", "15", "16", "17", "18",
	"19", "20", "21", "22", "X", "Y",
}

// Record describes one traced contour and its derived shape descriptors.
// ChromoID/ChromoIndex stay unassigned until classification; a merge replaces
// Contour wholesale and recomputes every descriptor.
type Record struct {
	// Index is assigned at extraction time and stays stable and unique for
	// the lifetime of one chart analysis.
	Index int `json:"index"`

	Contour     geometry.Contour     `json:"contour"`
	Area        float64              `json:"area"`
	Bounding    geometry.RectInt     `json:"bounding"`
	MinAreaRect geometry.RotatedRect `json:"min_area_rect"`
	Centroid    geometry.PointInt    `json:"centroid"`

	// ChromoID is "1".."22", "X" or "Y"; empty until assigned.
	// ChromoIndex is the 0-23 position in the canonical sequence; -1 until
	// assigned. The two are always set together.
	ChromoID    string `json:"chromo_id,omitempty"`
	ChromoIndex int    `json:"chromo_index"`

	// DistanceToLabel is the centroid distance to the matched label,
	// populated only for chromosome body contours.
	DistanceToLabel float64 `json:"distance_to_label,omitempty"`
}

// Assigned reports whether the record has received a chromosome identifier.
func (r *Record) Assigned() bool {
	return r.ChromoIndex >= 0
}

// BuildRecords computes shape descriptors for every raw contour, preserving
// input order as the stable record index.
func BuildRecords(contours []geometry.Contour) []*Record {
	records := make([]*Record, len(contours))
	for i, c := range contours {
		mar := geometry.MinAreaRect(c)
		records[i] = &Record{
			Index:       i,
			Contour:     c,
			Area:        c.Area(),
			Bounding:    c.BoundingRect(),
			MinAreaRect: mar,
			Centroid:    centroidOf(c, mar),
			ChromoIndex: -1,
		}
	}
	return records
}

// centroidOf returns the area-moment centroid of a contour, truncated to
// integer pixels. A degenerate contour (zero enclosed area, e.g. a one-pixel
// sliver) has no moment centroid; the center of its minimum-area rectangle
// stands in.
func centroidOf(c geometry.Contour, mar geometry.RotatedRect) geometry.PointInt {
	m := c.Moments()
	if m.M00 != 0 {
		return geometry.PointInt{
			X: int(m.M10 / m.M00),
			Y: int(m.M01 / m.M00),
		}
	}
	return geometry.PointInt{X: int(mar.Center.X), Y: int(mar.Center.Y)}
}

// Row groups records sharing one printed chart row. CY is the representative
// vertical centroid of the row's labels. Label rows are ordered left to
// right; body rows keep discovery order until sorted by the classifier.
type Row struct {
	CY      int       `json:"cy"`
	Records []*Record `json:"records"`
}
