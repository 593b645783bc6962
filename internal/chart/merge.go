package chart

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"karyotype-reader/pkg/geometry"
)

// mergeFragments collapses spurious fragmentation: a chromosome whose
// extraction split it into a main body plus small disjoint pieces gets those
// pieces spliced back into the body. Two same-identifier contours of
// comparable size are left alone — they are not a fragment and a body.
//
// Merges mutate the surviving record in place; absorbed records are removed
// from their rows only after every row has been processed.
func (c *Chart) mergeFragments(rows []Row) []Row {
	p := c.params
	absorbed := make(map[int]bool)

	for _, row := range rows {
		for _, id := range identifiersOf(row.Records) {
			var group []*Record
			for _, r := range row.Records {
				if r.ChromoID == id {
					group = append(group, r)
				}
			}
			if len(group) <= 1 {
				continue
			}

			areas := make([]float64, len(group))
			for i, r := range group {
				areas[i] = r.Area
			}
			maxArea := floats.Max(areas)
			// The size disparity must be large enough to read as
			// "fragment vs. main body"; otherwise the contours are
			// genuinely separate pieces of comparable size.
			if floats.Min(areas)/maxArea > p.SmallPieceRatio {
				continue
			}

			var pieces, mains []*Record
			for _, r := range group {
				if r.Area/maxArea < p.SmallPieceRatio {
					pieces = append(pieces, r)
				} else {
					mains = append(mains, r)
				}
			}

			for _, piece := range pieces {
				c.mergePiece(piece, mains)
				absorbed[piece.Index] = true
			}
		}
	}

	if len(absorbed) == 0 {
		return rows
	}
	c.log.Debug().Int("count", len(absorbed)).Msg("fragments merged")

	out := make([]Row, len(rows))
	for i, row := range rows {
		kept := make([]*Record, 0, len(row.Records))
		for _, r := range row.Records {
			if !absorbed[r.Index] {
				kept = append(kept, r)
			}
		}
		out[i] = Row{CY: row.CY, Records: kept}
	}
	return out
}

// mergePiece splices a small fragment into the nearest main-branch contour at
// their closest boundary points and refreshes the survivor's descriptors.
func (c *Chart) mergePiece(piece *Record, mains []*Record) {
	minDist := math.Inf(1)
	var nearest *Record
	pi, mi := 0, 0
	for _, main := range mains {
		d, ip, im := geometry.ClosestPoints(piece.Contour, main.Contour)
		if d < minDist {
			minDist = d
			nearest = main
			pi, mi = ip, im
		}
	}

	merged := geometry.Splice(piece.Contour, nearest.Contour, pi, mi)
	mar := geometry.MinAreaRect(merged)
	nearest.Contour = merged
	nearest.Area = merged.Area()
	nearest.Bounding = merged.BoundingRect()
	nearest.MinAreaRect = mar
	nearest.Centroid = centroidOf(merged, mar)
}

// identifiersOf lists the distinct chromosome identifiers of a row in first
// appearance order.
func identifiersOf(recs []*Record) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range recs {
		if !seen[r.ChromoID] {
			seen[r.ChromoID] = true
			ids = append(ids, r.ChromoID)
		}
	}
	return ids
}
