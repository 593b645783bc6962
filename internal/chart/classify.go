package chart

import (
	"math"
	"sort"
)

// classifyBodies assigns every non-label contour the identifier of its
// nearest label. Candidates are first bucketed into vertical bands bounded by
// the four label row centroids (bodies sit between their row's label line and
// the line above), then matched to the closest label of the same band by
// centroid distance.
func (c *Chart) classifyBodies(records []*Record, labelRows []Row, labelMembers map[int]bool) []Row {
	bands := make([]Row, len(labelRows))
	for i, lr := range labelRows {
		bands[i] = Row{CY: lr.CY}
	}

	dropped := 0
	for _, r := range records {
		if labelMembers[r.Index] {
			continue
		}
		top := 0
		placed := false
		for i, lr := range labelRows {
			if r.Centroid.Y > top && r.Centroid.Y <= lr.CY {
				bands[i].Records = append(bands[i].Records, r)
				placed = true
				break
			}
			top = lr.CY
		}
		// Anything below the last label row is off-chart noise.
		if !placed {
			dropped++
		}
	}
	if dropped > 0 {
		c.log.Debug().Int("count", dropped).Msg("contours below last label row dropped")
	}

	for i := range bands {
		labels := labelRows[i].Records
		for _, body := range bands[i].Records {
			minDist := math.Inf(1)
			var nearest *Record
			// First strictly-smallest distance wins; labels are in
			// stable left-to-right order.
			for _, lab := range labels {
				if d := body.Centroid.Distance(lab.Centroid); d < minDist {
					minDist = d
					nearest = lab
				}
			}
			body.ChromoID = nearest.ChromoID
			body.ChromoIndex = nearest.ChromoIndex
			body.DistanceToLabel = minDist
		}

		recs := bands[i].Records
		sort.Slice(recs, func(a, b int) bool { return recs[a].Centroid.X < recs[b].Centroid.X })
	}

	return bands
}
