package chart

import (
	"errors"
	"testing"

	"karyotype-reader/pkg/geometry"
)

func TestResolveLabelRows(t *testing.T) {
	p := DefaultParams()
	c := testChart(t, p)

	rows, members, err := c.resolveLabelRows(BuildRecords(labelFixture(p)))
	if err != nil {
		t.Fatalf("resolveLabelRows: %v", err)
	}

	if len(rows) != labelRowCount {
		t.Fatalf("got %d rows, want %d", len(rows), labelRowCount)
	}
	for i, row := range rows {
		if len(row.Records) != p.RowCounts[i] {
			t.Errorf("row %d holds %d labels, want %d", i+1, len(row.Records), p.RowCounts[i])
		}
		if row.CY != testRowYs[i] {
			t.Errorf("row %d cy = %d, want %d", i+1, row.CY, testRowYs[i])
		}
	}
	if len(members) != p.TotalIDs {
		t.Errorf("label member set has %d entries, want %d", len(members), p.TotalIDs)
	}

	// Identifier assignment follows row-major chart order and covers the
	// canonical set exactly once.
	seen := make(map[string]int)
	idx := 0
	for _, row := range rows {
		for _, r := range row.Records {
			if r.ChromoID != chromoIDs[idx] || r.ChromoIndex != idx {
				t.Errorf("label %d assigned %q/%d, want %q/%d", idx, r.ChromoID, r.ChromoIndex, chromoIDs[idx], idx)
			}
			seen[r.ChromoID]++
			idx++
		}
	}
	for _, id := range chromoIDs {
		if seen[id] != 1 {
			t.Errorf("identifier %q assigned %d times, want once", id, seen[id])
		}
	}
}

func TestResolveLabelRowsVerticalScatter(t *testing.T) {
	p := DefaultParams()
	c := testChart(t, p)

	// Strokes of one printed row scatter within the vertical tolerance.
	contours := labelFixture(p)
	contours[0] = labelAt(labelX(0), testRowYs[0]+2)
	contours[1] = labelAt(labelX(1), testRowYs[0]-2)

	rows, _, err := c.resolveLabelRows(BuildRecords(contours))
	if err != nil {
		t.Fatalf("resolveLabelRows: %v", err)
	}
	if len(rows[0].Records) != p.RowCounts[0] {
		t.Errorf("top row holds %d labels, want %d", len(rows[0].Records), p.RowCounts[0])
	}
}

func TestResolveLabelRowsCollapsesStrokes(t *testing.T) {
	p := DefaultParams()
	c := testChart(t, p)

	// A two-digit label extracted as two strokes 5px apart must collapse
	// to a single label entry.
	contours := labelFixture(p)
	x := labelX(p.RowCounts[1] - 1)
	contours = append(contours, labelAt(x+5, testRowYs[1]))

	rows, members, err := c.resolveLabelRows(BuildRecords(contours))
	if err != nil {
		t.Fatalf("resolveLabelRows: %v", err)
	}
	if got := len(rows[1].Records); got != p.RowCounts[1] {
		t.Errorf("second row holds %d labels after collapse, want %d", got, p.RowCounts[1])
	}
	// The collapsed-away stroke still counts as a label member so the
	// classifier won't treat it as a chromosome body.
	if len(members) != p.TotalIDs+1 {
		t.Errorf("label member set has %d entries, want %d", len(members), p.TotalIDs+1)
	}
}

func TestResolveLabelRowsRowCountGate(t *testing.T) {
	p := DefaultParams()
	c := testChart(t, p)

	// Only three distinguishable vertical clusters: must fail, not proceed.
	var contours []geometry.Contour
	for row := 0; row < 3; row++ {
		for col := 0; col < p.RowCounts[row]; col++ {
			contours = append(contours, labelAt(labelX(col), testRowYs[row]))
		}
	}

	_, _, err := c.resolveLabelRows(BuildRecords(contours))
	var layoutErr *LayoutError
	if !errors.As(err, &layoutErr) {
		t.Fatalf("got %v, want LayoutError", err)
	}
	if layoutErr.Row != 0 || layoutErr.Found != 3 || layoutErr.Expected != labelRowCount {
		t.Errorf("LayoutError = %+v, want row count 3 vs %d", layoutErr, labelRowCount)
	}
}

func TestResolveLabelRowsPerRowCountMismatch(t *testing.T) {
	p := DefaultParams()
	c := testChart(t, p)

	// One extra well-separated label in row 3.
	contours := labelFixture(p)
	contours = append(contours, labelAt(labelX(p.RowCounts[2]), testRowYs[2]))

	_, _, err := c.resolveLabelRows(BuildRecords(contours))
	var layoutErr *LayoutError
	if !errors.As(err, &layoutErr) {
		t.Fatalf("got %v, want LayoutError", err)
	}
	if layoutErr.Row != 3 || layoutErr.Found != p.RowCounts[2]+1 || layoutErr.Expected != p.RowCounts[2] {
		t.Errorf("LayoutError = %+v, want row 3 with %d vs %d", layoutErr, p.RowCounts[2]+1, p.RowCounts[2])
	}
}

func TestResolveLabelRowsDiscardsNoiseClusters(t *testing.T) {
	p := DefaultParams()
	c := testChart(t, p)

	// Two specks in the label area range far above the chart form a group
	// below the per-row minimum and must be discarded, not counted as a
	// fifth row.
	contours := labelFixture(p)
	contours = append(contours, labelAt(100, 50), labelAt(300, 50))

	rows, _, err := c.resolveLabelRows(BuildRecords(contours))
	if err != nil {
		t.Fatalf("resolveLabelRows: %v", err)
	}
	if len(rows) != labelRowCount {
		t.Errorf("got %d rows, want %d", len(rows), labelRowCount)
	}
}
