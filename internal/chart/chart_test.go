package chart

import (
	"testing"

	"github.com/rs/zerolog"

	"karyotype-reader/pkg/geometry"
)

func TestNewParsesFilenameMetadata(t *testing.T) {
	c, err := New("/scans/L2311245727.001.K.TIF", DefaultParams(), zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.CaseID != "L2311245727" || c.PictureID != "001" || c.ImageType != "K" {
		t.Errorf("metadata = %s/%s/%s, want L2311245727/001/K", c.CaseID, c.PictureID, c.ImageType)
	}
}

func TestNewRejectsMalformedFilename(t *testing.T) {
	if _, err := New("/scans/chart.png", DefaultParams(), zerolog.Nop()); err == nil {
		t.Error("New accepted a filename without case metadata")
	}
	if _, err := New("", DefaultParams(), zerolog.Nop()); err == nil {
		t.Error("New accepted an empty path")
	}
}

func TestNewRejectsInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.RowCounts[0] = 6 // sums to 25, not 24
	if _, err := New("a.b.K.TIF", p, zerolog.Nop()); err == nil {
		t.Error("New accepted inconsistent row counts")
	}
}

// TestAnalyzeFullChart runs the whole pipeline over a synthetic chart:
// 24 correctly placed labels (5/7/6/6), two bodies per autosome and one each
// for X and Y, with one chromosome-21 body split into a main branch and a
// 1:5-area fragment. The analysis must resolve every label, classify every
// body, and perform exactly one merge.
func TestAnalyzeFullChart(t *testing.T) {
	p := DefaultParams()
	c := testChart(t, p)

	contours := labelFixture(p)

	bodies := 0
	addBody := func(col, row, dx int) {
		contours = append(contours, bodyAt(labelX(col)+dx, testRowYs[row]-80))
		bodies++
	}
	idx := 0
	for row := 0; row < labelRowCount; row++ {
		for col := 0; col < p.RowCounts[row]; col++ {
			switch chromoIDs[idx] {
			case "X", "Y":
				addBody(col, row, 0)
			case "21":
				// Main branch pair, plus a broken-off fragment
				// beside the right homolog (160/800 area ratio).
				addBody(col, row, -20)
				addBody(col, row, 20)
				contours = append(contours, rect(labelX(col)+35, testRowYs[row]-110, 16, 10))
				bodies++
			default:
				addBody(col, row, -20)
				addBody(col, row, 20)
			}
			idx++
		}
	}

	result, err := c.Analyze(contours)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// Labels: the canonical 24 identifiers, each exactly once.
	labelSeen := make(map[string]int)
	for _, row := range result.Labels {
		for _, r := range row.Records {
			labelSeen[r.ChromoID]++
		}
	}
	if len(labelSeen) != p.TotalIDs {
		t.Errorf("%d distinct label identifiers, want %d", len(labelSeen), p.TotalIDs)
	}
	for id, n := range labelSeen {
		if n != 1 {
			t.Errorf("label %q resolved %d times", id, n)
		}
	}

	// Bodies: one merge happened, so one record fewer than body contours.
	total := 0
	perID := make(map[string]int)
	for i, row := range result.Chromosomes {
		top := 0
		if i > 0 {
			top = result.Chromosomes[i-1].CY
		}
		for _, r := range row.Records {
			total++
			perID[r.ChromoID]++
			if !r.Assigned() {
				t.Errorf("record %d has no identifier", r.Index)
			}
			if r.Centroid.Y <= top || r.Centroid.Y > row.CY {
				t.Errorf("record %d at cy=%d outside its row band (%d, %d]", r.Index, r.Centroid.Y, top, row.CY)
			}
		}
	}
	if total != bodies-1 {
		t.Errorf("%d final records, want %d (one merge)", total, bodies-1)
	}

	for _, id := range chromoIDs {
		want := 2
		if id == "X" || id == "Y" {
			want = 1
		}
		if perID[id] != want {
			t.Errorf("identifier %q carried by %d records, want %d", id, perID[id], want)
		}
	}

	// The merged chromosome-21 body absorbed its fragment's area.
	bodyArea := bodyAt(0, 0).Area()
	var areas21 []float64
	for _, row := range result.Chromosomes {
		for _, r := range row.Records {
			if r.ChromoID == "21" {
				areas21 = append(areas21, r.Area)
			}
		}
	}
	if len(areas21) != 2 {
		t.Fatalf("chromosome 21 has %d records, want 2", len(areas21))
	}
	foundMerged := false
	for _, a := range areas21 {
		if a > bodyArea {
			foundMerged = true
		}
		if a < bodyArea {
			t.Errorf("chromosome 21 record area %v below the main branch area %v", a, bodyArea)
		}
	}
	if !foundMerged {
		t.Error("no chromosome 21 record grew past the plain body area; merge did not happen")
	}
}

// TestAnalyzeDegenerateContour checks the descriptor fallback end to end: a
// zero-area sliver gets its centroid from the min-area rectangle center and
// still classifies like any other candidate.
func TestAnalyzeDegenerateContour(t *testing.T) {
	p := DefaultParams()
	c := testChart(t, p)

	contours := labelFixture(p)
	// A horizontal one-pixel sliver above the "1" label.
	sliver := geometry.Contour{{X: 90, Y: 120}, {X: 110, Y: 120}}
	contours = append(contours, sliver)

	result, err := c.Analyze(contours)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	var rec *Record
	for _, row := range result.Chromosomes {
		for _, r := range row.Records {
			if r.Area == 0 {
				rec = r
			}
		}
	}
	if rec == nil {
		t.Fatal("degenerate sliver not classified")
	}
	if rec.Centroid != (geometry.PointInt{X: 100, Y: 120}) {
		t.Errorf("sliver centroid = %+v, want min-area rect center (100, 120)", rec.Centroid)
	}
	if rec.ChromoID != "1" {
		t.Errorf("sliver assigned %q, want 1", rec.ChromoID)
	}
}
