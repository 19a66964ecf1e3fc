package face

import (
	"math"
	"testing"
	"time"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestHourAngle(t *testing.T) {
	for h := 1; h <= 12; h++ {
		want := float64(h)*30 - 90
		if got := HourAngle(h); got != want {
			t.Errorf("HourAngle(%d) = %v, want %v", h, got, want)
		}
	}

	// Cardinal positions.
	if got := HourAngle(12); got != 270 {
		t.Errorf("HourAngle(12) = %v, want 270 (-90 mod 360)", got)
	}
	if got := HourAngle(3); got != 0 {
		t.Errorf("HourAngle(3) = %v, want 0", got)
	}
	if got := HourAngle(6); got != 90 {
		t.Errorf("HourAngle(6) = %v, want 90", got)
	}
	if got := HourAngle(9); got != 180 {
		t.Errorf("HourAngle(9) = %v, want 180", got)
	}
}

func TestHourAngle_OutOfRangePanics(t *testing.T) {
	for _, hour := range []int{0, 13, -1, 24} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("HourAngle(%d) did not panic", hour)
				}
			}()
			HourAngle(hour)
		}()
	}
}

func TestHourPoint_CardinalPositions(t *testing.T) {
	f := Default()

	cases := []struct {
		hour int
		want Point
	}{
		{12, Point{50, 10.5}},
		{3, Point{89.5, 50}},
		{6, Point{50, 89.5}},
		{9, Point{10.5, 50}},
	}

	for _, tc := range cases {
		got := f.HourPoint(tc.hour)
		if !almostEqual(got.X, tc.want.X) || !almostEqual(got.Y, tc.want.Y) {
			t.Errorf("HourPoint(%d) = (%v, %v), want (%v, %v)", tc.hour, got.X, got.Y, tc.want.X, tc.want.Y)
		}
	}
}

func TestHourPoint_AllOnPlacementCircle(t *testing.T) {
	f := Default()
	c := f.Center()

	for h := 1; h <= 12; h++ {
		p := f.HourPoint(h)
		dist := math.Hypot(p.X-c.X, p.Y-c.Y)
		if !almostEqual(dist, f.Radius) {
			t.Errorf("HourPoint(%d) is %v units from center, want %v", h, dist, f.Radius)
		}
	}
}

func TestHourPoint_Idempotent(t *testing.T) {
	f := Default()
	for h := 1; h <= 12; h++ {
		first := f.HourPoint(h)
		second := f.HourPoint(h)
		if first != second {
			t.Errorf("HourPoint(%d) not pure: %v then %v", h, first, second)
		}
	}
}

func TestHourAnchor(t *testing.T) {
	f := Default()
	label := Extent{W: 10, H: 8}

	// Hour 3 sits diametrically opposite the inner offset on the x axis,
	// so its anchor is pulled left by nearly the full label width.
	raw3 := f.HourPoint(3)
	adj3 := f.HourAnchor(3, label)
	if pull := raw3.X - adj3.X; pull < 9.5 || pull > 10 {
		t.Errorf("hour 3 pulled left by %v, want nearly full width 10", pull)
	}

	// Hour 9 sits next to the inner offset and is barely adjusted.
	raw9 := f.HourPoint(9)
	adj9 := f.HourAnchor(9, label)
	if shift := math.Abs(adj9.X - raw9.X); shift > 0.2 {
		t.Errorf("hour 9 shifted by %v, want near zero", shift)
	}

	// Every anchor follows the interpolation formula exactly.
	innerOffset := f.Size/2 - f.Radius + 1
	innerDiameter := 2 * f.Radius
	for h := 1; h <= 12; h++ {
		raw := f.HourPoint(h)
		got := f.HourAnchor(h, label)
		wantX := raw.X - (raw.X-innerOffset)/innerDiameter*label.W
		wantY := raw.Y - (raw.Y-innerOffset)/innerDiameter*label.H
		if !almostEqual(got.X, wantX) || !almostEqual(got.Y, wantY) {
			t.Errorf("HourAnchor(%d) = (%v, %v), want (%v, %v)", h, got.X, got.Y, wantX, wantY)
		}
	}
}

func TestHourAnchor_ZeroExtentUnchanged(t *testing.T) {
	f := Default()
	for h := 1; h <= 12; h++ {
		raw := f.HourPoint(h)
		adj := f.HourAnchor(h, Extent{})
		if !almostEqual(raw.X, adj.X) || !almostEqual(raw.Y, adj.Y) {
			t.Errorf("HourAnchor(%d) with zero extent moved (%v, %v) -> (%v, %v)", h, raw.X, raw.Y, adj.X, adj.Y)
		}
	}
}

func TestAnchors(t *testing.T) {
	f := Default()
	label := Extent{W: 6, H: 6}
	anchors := f.Anchors(label)

	for h := 1; h <= 12; h++ {
		want := f.HourAnchor(h, label)
		if anchors[h-1] != want {
			t.Errorf("Anchors()[%d] = %v, want %v", h-1, anchors[h-1], want)
		}
	}
}

func TestSecondAngle(t *testing.T) {
	if got := SecondAngle(0); got != 0 {
		t.Errorf("SecondAngle(0) = %v, want 0", got)
	}
	if got := SecondAngle(15); got != 90 {
		t.Errorf("SecondAngle(15) = %v, want 90", got)
	}
	if got := SecondAngle(45); got != 270 {
		t.Errorf("SecondAngle(45) = %v, want 270", got)
	}

	// Strictly increasing over [0,60).
	for s := 0; s < 59; s++ {
		if SecondAngle(float64(s)) >= SecondAngle(float64(s+1)) {
			t.Errorf("SecondAngle not increasing at s=%d", s)
		}
	}

	// s and s+60 are equivalent modulo 360.
	for _, s := range []float64{0, 1, 30, 59.5} {
		if got, want := SecondAngle(s+60), SecondAngle(s); !almostEqual(got, want) {
			t.Errorf("SecondAngle(%v) = %v, want %v", s+60, got, want)
		}
	}
}

func TestMinuteAngle(t *testing.T) {
	if got := MinuteAngle(30, 0); got != 180 {
		t.Errorf("MinuteAngle(30, 0) = %v, want 180", got)
	}
	// The second sweep adds 0.1 degree per second.
	if got := MinuteAngle(30, 15); !almostEqual(got, 181.5) {
		t.Errorf("MinuteAngle(30, 15) = %v, want 181.5", got)
	}
}

func TestHourHandAngle(t *testing.T) {
	if got := HourHandAngle(3, 0); got != 90 {
		t.Errorf("HourHandAngle(3, 0) = %v, want 90", got)
	}
	// The minute sweep adds half a degree per minute.
	if got := HourHandAngle(3, 30); !almostEqual(got, 105) {
		t.Errorf("HourHandAngle(3, 30) = %v, want 105", got)
	}
	if got := HourHandAngle(12, 0); got != 0 {
		t.Errorf("HourHandAngle(12, 0) = %v, want 0 after normalization", got)
	}
}

func TestHandAngles(t *testing.T) {
	cases := []struct {
		name string
		t    time.Time
		want Angles
	}{
		{
			name: "half past three",
			t:    time.Date(2026, 8, 31, 15, 30, 15, 0, time.UTC),
			want: Angles{Hour: 105, Minute: 181.5, Second: 90},
		},
		{
			name: "noon",
			t:    time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
			want: Angles{Hour: 0, Minute: 0, Second: 0},
		},
		{
			name: "quarter to seven",
			t:    time.Date(2026, 8, 31, 6, 45, 30, 0, time.UTC),
			want: Angles{Hour: 202.5, Minute: 273, Second: 180},
		},
	}

	for _, tc := range cases {
		got := HandAngles(tc.t)
		if !almostEqual(got.Hour, tc.want.Hour) ||
			!almostEqual(got.Minute, tc.want.Minute) ||
			!almostEqual(got.Second, tc.want.Second) {
			t.Errorf("%s: HandAngles = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.Defaults()

	f := cfg.Face()
	if f.Size != DefaultSize || f.Radius != DefaultRadius {
		t.Fatalf("Face from zero config = %+v, want defaults", f)
	}
}
