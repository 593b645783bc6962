package geometry

import "math"

// Contour is an ordered, closed sequence of integer points describing the
// outer boundary of a connected image region. The closing edge from the last
// point back to the first is implicit.
type Contour []PointInt

// Moments holds the zeroth and first polygon moments of a contour.
// M00 is the signed area; the area-moment centroid is (M10/M00, M01/M00).
type Moments struct {
	M00 float64
	M10 float64
	M01 float64
}

// Moments computes the polygon moments via Green's theorem, walking the
// closed boundary edge by edge.
func (c Contour) Moments() Moments {
	var m Moments
	n := len(c)
	if n < 3 {
		return m
	}
	for i := 0; i < n; i++ {
		p0 := c[i]
		p1 := c[(i+1)%n]
		cross := float64(p0.X)*float64(p1.Y) - float64(p1.X)*float64(p0.Y)
		m.M00 += cross
		m.M10 += float64(p0.X+p1.X) * cross
		m.M01 += float64(p0.Y+p1.Y) * cross
	}
	m.M00 /= 2
	m.M10 /= 6
	m.M01 /= 6
	return m
}

// Area returns the enclosed area of the contour (signed-area magnitude).
func (c Contour) Area() float64 {
	return math.Abs(c.Moments().M00)
}

// BoundingRect returns the axis-aligned bounding rectangle of the contour.
func (c Contour) BoundingRect() RectInt {
	if len(c) == 0 {
		return RectInt{}
	}
	minX, minY := c[0].X, c[0].Y
	maxX, maxY := minX, minY
	for _, p := range c[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return RectInt{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX + 1,
		Height: maxY - minY + 1,
	}
}

// MinAreaRect returns the minimum-area rotated rectangle enclosing the
// contour, found by rotating calipers over the convex hull: the optimal
// rectangle has one side collinear with a hull edge, so testing every edge
// orientation is exhaustive.
func MinAreaRect(c Contour) RotatedRect {
	if len(c) == 0 {
		return RotatedRect{}
	}

	pts := make([]Point2D, len(c))
	for i, p := range c {
		pts[i] = p.ToFloat()
	}
	hull := ConvexHull(pts)

	if len(hull) == 1 {
		return RotatedRect{Center: hull[0]}
	}
	if len(hull) == 2 {
		dx := hull[1].X - hull[0].X
		dy := hull[1].Y - hull[0].Y
		return RotatedRect{
			Center: Point2D{X: (hull[0].X + hull[1].X) / 2, Y: (hull[0].Y + hull[1].Y) / 2},
			Width:  math.Hypot(dx, dy),
			Angle:  math.Atan2(dy, dx) * 180 / math.Pi,
		}
	}

	best := RotatedRect{}
	bestArea := math.Inf(1)
	n := len(hull)
	for i := 0; i < n; i++ {
		e := hull[(i+1)%n]
		dx := e.X - hull[i].X
		dy := e.Y - hull[i].Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		ux, uy := dx/length, dy/length

		// Project all hull points onto the edge direction and its normal
		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			u := p.X*ux + p.Y*uy
			v := -p.X*uy + p.Y*ux
			minU = math.Min(minU, u)
			maxU = math.Max(maxU, u)
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}

		w := maxU - minU
		h := maxV - minV
		if area := w * h; area < bestArea {
			bestArea = area
			cu := (minU + maxU) / 2
			cv := (minV + maxV) / 2
			best = RotatedRect{
				Center: Point2D{X: cu*ux - cv*uy, Y: cu*uy + cv*ux},
				Width:  w,
				Height: h,
				Angle:  math.Atan2(dy, dx) * 180 / math.Pi,
			}
		}
	}
	return best
}

// ClosestPoints finds the pair of boundary points minimizing the distance
// between two contours. Returns the distance and the index of the closest
// point on each contour. Exhaustive scan; contour sizes here are small.
func ClosestPoints(a, b Contour) (float64, int, int) {
	minDist := math.Inf(1)
	ia, ib := 0, 0
	for i, pa := range a {
		for j, pb := range b {
			if d := pa.Distance(pb); d < minDist {
				minDist = d
				ia, ib = i, j
			}
		}
	}
	return minDist, ia, ib
}

// Splice joins a small contour into a main contour at the given closest-point
// pair, producing a single closed boundary. The main boundary is followed to
// its junction point, the full small loop is traversed starting and ending at
// its junction point, then the main boundary resumes.
func Splice(small, main Contour, si, mi int) Contour {
	merged := make(Contour, 0, len(main)+len(small)+2)
	merged = append(merged, main[:mi+1]...)
	merged = append(merged, small[si:]...)
	merged = append(merged, small[:si+1]...)
	merged = append(merged, main[mi:]...)
	return merged
}
