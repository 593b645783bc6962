package chart

import (
	"sort"
)

// resolveLabelRows identifies the printed identifier labels among all traced
// contours and assigns the canonical chromosome identifiers by layout: rows
// top to bottom, labels left to right.
//
// Returned alongside the four rows is the set of record indices recognized as
// label character strokes, including strokes collapsed away as parts of a
// multi-digit label; the classifier must exclude all of them from the body
// candidates.
func (c *Chart) resolveLabelRows(records []*Record) ([]Row, map[int]bool, error) {
	p := c.params

	// Only label digits fall inside the character area range; chromosome
	// bodies and noise specks are filtered out here.
	var chars []*Record
	for _, r := range records {
		if r.Area > float64(p.MinLabelArea) && r.Area < float64(p.MaxLabelArea) {
			chars = append(chars, r)
		}
	}

	// Group by exact vertical centroid first. Key order follows first
	// appearance so the tolerance merge below stays deterministic.
	byCY := make(map[int][]*Record)
	var keys []int
	for _, r := range chars {
		if _, ok := byCY[r.Centroid.Y]; !ok {
			keys = append(keys, r.Centroid.Y)
		}
		byCY[r.Centroid.Y] = append(byCY[r.Centroid.Y], r)
	}

	// Merge groups whose centroids sit within the row tolerance. Strokes
	// of one printed row scatter a few pixels vertically (the dot of an
	// "i"-like stroke, sub-strokes of multi-digit numbers).
	absorbed := make(map[int]bool)
	var rows []Row
	for _, key := range keys {
		if absorbed[key] {
			continue
		}
		group := append([]*Record(nil), byCY[key]...)
		for _, other := range keys {
			if other == key || absorbed[other] {
				continue
			}
			if abs(key-other) <= p.LabelYTolerance {
				group = append(group, byCY[other]...)
				absorbed[other] = true
			}
		}
		// A plausible label row holds between RowLabelMin and
		// RowLabelMax character strokes; anything else is an accidental
		// grouping or a noise cluster.
		if len(group) >= p.RowLabelMin && len(group) <= p.RowLabelMax {
			rows = append(rows, Row{CY: key, Records: group})
		}
	}

	if len(rows) != labelRowCount {
		return nil, nil, &LayoutError{Path: c.Path, Found: len(rows), Expected: labelRowCount}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].CY < rows[j].CY })

	// Every surviving stroke is a label character, collapsed or not.
	members := make(map[int]bool)
	for _, row := range rows {
		for _, r := range row.Records {
			members[r.Index] = true
		}
	}

	// Left to right within each row, then collapse the separate strokes of
	// one multi-digit label ("10", "22") into a single entry.
	for i := range rows {
		recs := rows[i].Records
		sort.Slice(recs, func(a, b int) bool { return recs[a].Centroid.X < recs[b].Centroid.X })
		rows[i].Records = collapseStrokes(recs, p.LabelXTolerance)
	}

	for i, row := range rows {
		if len(row.Records) != p.RowCounts[i] {
			return nil, nil, &LayoutError{Path: c.Path, Row: i + 1, Found: len(row.Records), Expected: p.RowCounts[i]}
		}
	}

	// Identifiers follow fixed row-major chart order.
	idx := 0
	for _, row := range rows {
		for _, r := range row.Records {
			r.ChromoID = chromoIDs[idx]
			r.ChromoIndex = idx
			idx++
		}
	}

	return rows, members, nil
}

// collapseStrokes keeps one record per printed label: a record survives only
// when its horizontal centroid clears the tolerance from the last kept
// record. Records must already be sorted by horizontal centroid.
func collapseStrokes(recs []*Record, tolerance int) []*Record {
	var kept []*Record
	for _, r := range recs {
		if len(kept) == 0 || abs(r.Centroid.X-kept[len(kept)-1].Centroid.X) > tolerance {
			kept = append(kept, r)
		}
	}
	return kept
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
