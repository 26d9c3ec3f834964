package gamemath

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Polygon is a convex polygon given by its vertices in order. Either winding
// is accepted.
type Polygon []mgl64.Vec2

// Rect returns the axis-aligned rectangle with top-left corner (x, y).
func Rect(x, y, w, h float64) Polygon {
	return Polygon{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}

// Transformed returns p rotated by angle and then moved by offset. The
// result is written into dst when it has enough capacity.
func (p Polygon) Transformed(dst Polygon, offset mgl64.Vec2, angle float64) Polygon {
	dst = dst[:0]
	for _, v := range p {
		dst = append(dst, Rotate(v, angle).Add(offset))
	}
	return dst
}

// Translated returns p moved by offset, written into dst.
func (p Polygon) Translated(dst Polygon, offset mgl64.Vec2) Polygon {
	dst = dst[:0]
	for _, v := range p {
		dst = append(dst, v.Add(offset))
	}
	return dst
}

// Bounds returns the min and max corners of the polygon's bounding box.
func (p Polygon) Bounds() (min, max mgl64.Vec2) {
	if len(p) == 0 {
		return
	}
	min, max = p[0], p[0]
	for _, v := range p[1:] {
		min[0] = math.Min(min[0], v[0])
		min[1] = math.Min(min[1], v[1])
		max[0] = math.Max(max[0], v[0])
		max[1] = math.Max(max[1], v[1])
	}
	return
}

// Project returns the interval covered by p on axis.
func (p Polygon) Project(axis mgl64.Vec2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range p {
		d := v.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return
}

// Support returns the average of the vertices furthest along dir. Averaging
// ties puts the point of a flat face in its middle.
func (p Polygon) Support(dir mgl64.Vec2) mgl64.Vec2 {
	const tieEpsilon = 1e-6

	best := math.Inf(-1)
	for _, v := range p {
		best = math.Max(best, v.Dot(dir))
	}

	var sum mgl64.Vec2
	n := 0
	for _, v := range p {
		if v.Dot(dir) >= best-tieEpsilon {
			sum = sum.Add(v)
			n++
		}
	}
	if n == 0 {
		return mgl64.Vec2{}
	}
	return sum.Mul(1 / float64(n))
}

// Separation runs the separating axis test between a and b. It returns the
// unit normal pointing from b toward a and the signed distance along it:
// positive when the polygons are apart, negative when they overlap, in which
// case moving a by normal*(-distance) separates them.
func Separation(a, b Polygon) (normal mgl64.Vec2, distance float64) {
	distance = math.Inf(-1)
	test := func(edges Polygon) {
		for i := range edges {
			edge := edges[(i+1)%len(edges)].Sub(edges[i])
			axis := Normalized(Perp(edge))
			if IsZero(axis) {
				continue
			}
			aLo, aHi := a.Project(axis)
			bLo, bHi := b.Project(axis)

			if d := aLo - bHi; d > distance {
				distance, normal = d, axis
			}
			if d := bLo - aHi; d > distance {
				distance, normal = d, axis.Mul(-1)
			}
		}
	}
	test(a)
	test(b)
	return normal, distance
}

// Overlaps reports whether a and b intersect with positive area.
func Overlaps(a, b Polygon) bool {
	_, d := Separation(a, b)
	return d < 0
}

// ConvexHull returns the convex hull of points in counter-clockwise order
// using the monotone chain algorithm. points is reordered in place.
func ConvexHull(points Polygon) Polygon {
	if len(points) < 3 {
		return append(Polygon(nil), points...)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i][0] != points[j][0] {
			return points[i][0] < points[j][0]
		}
		return points[i][1] < points[j][1]
	})

	cross := func(o, a, b mgl64.Vec2) float64 {
		return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
	}

	hull := make(Polygon, 0, 2*len(points))
	for _, p := range points {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(points) - 2; i >= 0; i-- {
		p := points[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// Swept returns the convex hull covering p over a translation by motion.
func Swept(p Polygon, motion mgl64.Vec2) Polygon {
	points := make(Polygon, 0, 2*len(p))
	points = append(points, p...)
	for _, v := range p {
		points = append(points, v.Add(motion))
	}
	return ConvexHull(points)
}

// SegmentIntersection returns the fraction along segment a0->a1 at which it
// crosses the polygon boundary when entering, with the face normal there.
// ok is false when the segment misses. A segment starting inside reports 0
// with a zero normal.
func SegmentIntersection(a0, a1 mgl64.Vec2, p Polygon) (t float64, normal mgl64.Vec2, ok bool) {
	// Cyrus-Beck clipping against the polygon's outward edge normals.
	if len(p) < 3 {
		return 0, mgl64.Vec2{}, false
	}
	center := mgl64.Vec2{}
	for _, v := range p {
		center = center.Add(v)
	}
	center = center.Mul(1 / float64(len(p)))

	dir := a1.Sub(a0)
	tEnter, tExit := 0.0, 1.0
	for i := range p {
		edge := p[(i+1)%len(p)].Sub(p[i])
		n := Normalized(Perp(edge))
		if IsZero(n) {
			continue
		}
		if n.Dot(center.Sub(p[i])) > 0 {
			n = n.Mul(-1)
		}
		num := n.Dot(p[i].Sub(a0))
		den := n.Dot(dir)
		if den == 0 {
			if num < 0 {
				return 0, mgl64.Vec2{}, false
			}
			continue
		}
		tt := num / den
		if den < 0 {
			if tt > tEnter {
				tEnter, normal = tt, n
			}
		} else if tt < tExit {
			tExit = tt
		}
		if tEnter > tExit {
			return 0, mgl64.Vec2{}, false
		}
	}
	return tEnter, normal, true
}
