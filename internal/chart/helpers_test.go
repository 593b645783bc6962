package chart

import (
	"testing"

	"github.com/rs/zerolog"

	"karyotype-reader/pkg/geometry"
)

// Synthetic chart geometry used across the tests. Labels are 6x6 blobs
// (area 36, inside the default 15-80 character range), chromosome bodies are
// 20x40 blobs (area 800). Label rows sit at y = 200, 400, 600, 800 with the
// canonical 5/7/6/6 labels per row, 120px apart horizontally.

var testRowYs = [labelRowCount]int{200, 400, 600, 800}

func rect(x, y, w, h int) geometry.Contour {
	return geometry.Contour{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}
}

// labelAt returns a label character blob centered on (cx, cy).
func labelAt(cx, cy int) geometry.Contour {
	return rect(cx-3, cy-3, 6, 6)
}

// bodyAt returns a chromosome body blob centered on (cx, cy).
func bodyAt(cx, cy int) geometry.Contour {
	return rect(cx-10, cy-20, 20, 40)
}

// labelX returns the horizontal center of label column col (0-based).
func labelX(col int) int {
	return 100 + col*120
}

// labelFixture lays out a well-formed label grid: four rows with the
// expected per-row counts.
func labelFixture(p Params) []geometry.Contour {
	var contours []geometry.Contour
	for row, count := range p.RowCounts {
		for col := 0; col < count; col++ {
			contours = append(contours, labelAt(labelX(col), testRowYs[row]))
		}
	}
	return contours
}

func testChart(t *testing.T, p Params) *Chart {
	t.Helper()
	c, err := New("testdata/L2311245727.001.K.TIF", p, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}
