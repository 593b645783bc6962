package chart

import "fmt"

// Params holds the tunable thresholds for reading one karyotype chart.
// Values are passed explicitly into each analysis; there is no process-wide
// configuration state.
type Params struct {
	// BinThreshold is the intensity threshold used when binarizing the
	// chart before contour tracing. Charts are near-white paper, so the
	// default sits just below pure white.
	BinThreshold int `json:"bin_threshold"`

	// Label character contour area range. Chromosome bodies are larger,
	// noise specks are smaller; only label digits fall in between.
	MinLabelArea int `json:"min_label_area"`
	MaxLabelArea int `json:"max_label_area"`

	// LabelYTolerance is the vertical scatter allowed between centroids of
	// label characters on the same printed row, in pixels.
	LabelYTolerance int `json:"label_y_tolerance"`

	// RowLabelMin/RowLabelMax bound the plausible number of label character
	// contours in one row. Groups outside this range are noise clusters.
	RowLabelMin int `json:"row_label_min"`
	RowLabelMax int `json:"row_label_max"`

	// LabelXTolerance collapses multi-stroke digits: label character
	// centroids closer than this horizontally belong to one printed label.
	LabelXTolerance int `json:"label_x_tolerance"`

	// TotalIDs is the number of chromosome identifiers on the chart.
	TotalIDs int `json:"total_ids"`

	// RowCounts is the expected number of printed labels per row, top to
	// bottom: 1-5, 6-12, 13-18, 19-22+X+Y.
	RowCounts [labelRowCount]int `json:"row_counts"`

	// SmallPieceRatio is the largest area ratio (fragment area over main
	// body area) at which a same-identifier contour is still considered a
	// broken-off fragment to be merged back.
	SmallPieceRatio float64 `json:"small_piece_ratio"`
}

// DefaultParams returns chart reading parameters tuned for 600dpi karyotype
// report scans. Label area bounds carry a small margin around the measured
// character sizes (17-76 px²).
func DefaultParams() Params {
	return Params{
		BinThreshold:    253,
		MinLabelArea:    15,
		MaxLabelArea:    80,
		LabelYTolerance: 4,
		RowLabelMin:     5,
		RowLabelMax:     12,
		// Strokes of one label sit ~11px apart; labels of neighboring
		// chromosomes are far wider apart than 40px.
		LabelXTolerance: 40,
		TotalIDs:        24,
		RowCounts:       [labelRowCount]int{5, 7, 6, 6},
		SmallPieceRatio: 0.4,
	}
}

// Validate checks that the parameters describe a consistent chart layout.
func (p Params) Validate() error {
	if p.TotalIDs != len(chromoIDs) {
		return fmt.Errorf("total ids %d does not match the %d canonical identifiers", p.TotalIDs, len(chromoIDs))
	}
	sum := 0
	for _, n := range p.RowCounts {
		if n < 1 {
			return fmt.Errorf("row counts %v contain a non-positive entry", p.RowCounts)
		}
		sum += n
	}
	if sum != p.TotalIDs {
		return fmt.Errorf("row counts %v sum to %d, want %d", p.RowCounts, sum, p.TotalIDs)
	}
	if p.MinLabelArea >= p.MaxLabelArea {
		return fmt.Errorf("label area range [%d, %d] is empty", p.MinLabelArea, p.MaxLabelArea)
	}
	if p.SmallPieceRatio <= 0 || p.SmallPieceRatio >= 1 {
		return fmt.Errorf("small piece ratio %g outside (0, 1)", p.SmallPieceRatio)
	}
	return nil
}
