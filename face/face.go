// Package face computes analog clock-face geometry: numeral anchor
// positions on the dial and rotation angles for the hour, minute and
// second hands. All functions are pure; rendering is left to the caller.
package face

import (
	"fmt"
	"math"
	"time"

	"github.com/nholloway/clockface/timeutil"
)

// Default logical dimensions: a 100x100 unit face with numerals placed
// on a 39.5-unit radius.
const (
	DefaultSize   = 100.0
	DefaultRadius = 39.5
)

// Point is a position in the face's logical coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Extent is the rendered width and height of a numeral label, as
// measured by the rendering surface.
type Extent struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Angles bundles the hand rotations for one displayed timestamp,
// in degrees clockwise from 12 o'clock.
type Angles struct {
	Hour   float64 `json:"hour"`
	Minute float64 `json:"minute"`
	Second float64 `json:"second"`
}

// Face describes the logical dial: a square of edge Size with numerals
// placed on a circle of the given Radius around the center.
type Face struct {
	Size   float64
	Radius float64
}

// Default returns a Face with the default logical dimensions.
func Default() Face {
	return Face{Size: DefaultSize, Radius: DefaultRadius}
}

// Center returns the logical center of the dial.
func (f Face) Center() Point {
	return Point{X: f.Size / 2, Y: f.Size / 2}
}

// HourAngle returns the dial angle in degrees for an hour numeral,
// with hour 3 at 0 degrees (right) and hour 12 at -90 (top). The value
// is not normalized; use NormalizeAngle for a [0,360) representation.
// Hours outside 1..12 are a contract violation and panic.
func HourAngle(hour int) float64 {
	mustHour(hour)
	return float64(hour)*30 - 90
}

// HourPoint returns the raw anchor point for an hour numeral on the
// placement circle.
func (f Face) HourPoint(hour int) Point {
	rad := HourAngle(hour) * math.Pi / 180
	c := f.Center()
	return Point{
		X: c.X + f.Radius*math.Cos(rad),
		Y: c.Y + f.Radius*math.Sin(rad),
	}
}

// HourAnchor returns the anchor point for an hour numeral adjusted for
// the label's rendered extent. The raw point is pulled inward by a
// fraction of the label size proportional to how far it sits from the
// dial's inner offset, so far-side numerals visually center on the
// placement circle instead of overhanging it. This is a heuristic, not
// exact text centering.
func (f Face) HourAnchor(hour int, label Extent) Point {
	p := f.HourPoint(hour)
	innerOffset := f.Size/2 - f.Radius + 1
	innerDiameter := 2 * f.Radius
	return Point{
		X: p.X - (p.X-innerOffset)/innerDiameter*label.W,
		Y: p.Y - (p.Y-innerOffset)/innerDiameter*label.H,
	}
}

// Anchors returns the adjusted anchor points for all twelve numerals;
// index i holds the anchor for hour i+1.
func (f Face) Anchors(label Extent) [12]Point {
	var out [12]Point
	for h := 1; h <= 12; h++ {
		out[h-1] = f.HourAnchor(h, label)
	}
	return out
}

// SecondAngle returns the second-hand rotation: 6 degrees per second.
func SecondAngle(second float64) float64 {
	return NormalizeAngle(second * 6)
}

// MinuteAngle returns the minute-hand rotation: 6 degrees per minute
// with a smooth 0.1 degree-per-second sweep.
func MinuteAngle(minute, second float64) float64 {
	return NormalizeAngle(minute*6 + second*0.1)
}

// HourHandAngle returns the hour-hand rotation: 30 degrees per hour
// with a smooth half-degree-per-minute sweep.
func HourHandAngle(hour, minute float64) float64 {
	return NormalizeAngle(hour*30 + minute/2)
}

// HandAngles computes all three hand rotations for a timestamp.
func HandAngles(t time.Time) Angles {
	h, m, s := timeutil.Clock12(t)
	return Angles{
		Hour:   HourHandAngle(float64(h%12), float64(m)),
		Minute: MinuteAngle(float64(m), float64(s)),
		Second: SecondAngle(float64(s)),
	}
}

// NormalizeAngle maps an angle in degrees to [0,360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func mustHour(hour int) {
	if hour < 1 || hour > 12 {
		panic(fmt.Sprintf("face: hour %d out of range 1..12", hour))
	}
}
