// Package envelope provides interpolation over a set of control points,
// primarily used for amplitude and frequency shaping.
package envelope

import "sort"

// Point is a single envelope control point. Curve bends the segment
// towards the next point: 0 is linear, positive values bulge up,
// negative values bulge down.
type Point struct {
	Time  float64
	Value float64
	Curve float64
}

// Envelope is a set of points sorted by time.
type Envelope struct {
	points []Point
}

// New returns an envelope with the provided points.
func New(points ...Point) *Envelope {
	e := &Envelope{}
	for _, p := range points {
		e.AddPoint(p)
	}
	return e
}

// AddPoint inserts a point keeping the set sorted by time.
func (e *Envelope) AddPoint(p Point) {
	e.points = append(e.points, p)
	sort.SliceStable(e.points, func(i, j int) bool {
		return e.points[i].Time < e.points[j].Time
	})
}

// At returns the envelope value for the given time. Values before the
// first point and after the last one are clamped. An envelope with less
// than two points has no meaningful interpolation and yields 0.
func (e *Envelope) At(time float64) float64 {
	if len(e.points) <= 1 {
		return 0
	}
	if time <= e.points[0].Time {
		return e.points[0].Value
	}
	if time >= e.points[len(e.points)-1].Time {
		return e.points[len(e.points)-1].Value
	}
	for i := 1; i < len(e.points); i++ {
		if time <= e.points[i].Time {
			return e.points[i-1].Value + interpolate(time, e.points[i-1], e.points[i])
		}
	}
	return 0
}

// interpolate returns the offset from start value at the given time
// following a quadratic bezier curve between the points.
func interpolate(time float64, start, end Point) float64 {
	timePos := time - start.Time
	duration := end.Time - start.Time
	gradientValue := end.Value - start.Value
	if gradientValue == 0 {
		return 0
	}
	halfGradient := gradientValue * 0.5
	y2 := halfGradient + start.Curve*halfGradient
	percTime := timePos / duration
	ya := bezier(0, y2, percTime)
	yb := bezier(y2, gradientValue, percTime)
	return bezier(ya, yb, percTime)
}

func bezier(n1, n2, perc float64) float64 {
	return (n2-n1)*perc + n1
}
