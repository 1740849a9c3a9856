package timesync

import (
	"errors"
	"math"
	"testing"
)

func TestFitPair(t *testing.T) {
	tr := FitPair(Point{X: 0, Y: 10}, Point{X: 8, Y: 18})
	if math.Abs(tr.Slope-1) > 1e-9 || math.Abs(tr.Offset-10) > 1e-9 {
		t.Errorf("transform = %+v, want slope 1 offset 10", tr)
	}

	// PAL -> NTSC style stretch.
	tr = FitPair(Point{X: 100, Y: 104.2}, Point{X: 1000, Y: 1042})
	if math.Abs(tr.Slope-1.042) > 1e-6 {
		t.Errorf("slope = %f, want 1.042", tr.Slope)
	}
	if math.Abs(tr.Apply(500)-521) > 1e-6 {
		t.Errorf("apply(500) = %f, want 521", tr.Apply(500))
	}
}

func TestFitPairCoincidentX(t *testing.T) {
	tr := FitPair(Point{X: 5, Y: 1}, Point{X: 5, Y: 9})
	if tr != Identity() {
		t.Errorf("coincident x should yield identity, got %+v", tr)
	}
}

func TestFitRecoversNoisyLine(t *testing.T) {
	// y = 1.04*x + 7 with bounded noise; exact anchors at the extremes.
	const a, b, delta = 1.04, 7.0, 0.05
	noise := []float64{0, 0.04, -0.03, 0.02, 0}
	points := make([]Point, len(noise))
	xs := []float64{0, 100, 200, 300, 400}
	for i, x := range xs {
		points[i] = Point{X: x, Y: a*x + b + noise[i]}
	}

	tr, err := Fit(points)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if math.Abs(tr.Slope-a) > delta {
		t.Errorf("slope = %f, want %f within %f", tr.Slope, a, delta)
	}
	if math.Abs(tr.Offset-b) > delta {
		t.Errorf("offset = %f, want %f within %f", tr.Offset, b, delta)
	}
}

func TestFitRejectsNonPositiveSlope(t *testing.T) {
	_, err := Fit([]Point{{X: 0, Y: 10}, {X: 10, Y: 0}})
	if !errors.Is(err, ErrNonPositiveSlope) {
		t.Fatalf("expected ErrNonPositiveSlope, got %v", err)
	}
}

func TestFitFewPoints(t *testing.T) {
	tr, err := Fit([]Point{{X: 1, Y: 2}})
	if err != nil || tr != Identity() {
		t.Errorf("single point should yield identity, got %+v err=%v", tr, err)
	}
}
