package geom

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestIntersectTwoLines(t *testing.T) {
	cases := []struct {
		a0, a1, b0, b1 Point
		expected       Point
	}{
		{NewPoint(0, 0), NewPoint(1, 1), NewPoint(0, 2), NewPoint(2, 0), NewPoint(1, 1)},
		{NewPoint(3, -5), NewPoint(3, 5), NewPoint(0, 0), NewPoint(1, 2), NewPoint(3, 6)},
		{NewPoint(0, 0), NewPoint(1, 2), NewPoint(3, -5), NewPoint(3, 5), NewPoint(3, 6)},
		{NewPoint(0, 1), NewPoint(10, 1), NewPoint(4, 0), NewPoint(4, 8), NewPoint(4, 1)},
	}
	for _, c := range cases {
		answer, err := IntersectTwoLines(c.a0, c.a1, c.b0, c.b1)
		if err != nil {
			t.Error(err)
			continue
		}
		if Distance(answer, c.expected) > eps {
			t.Errorf("Wrong answer: %v, correct answer: %v", answer, c.expected)
		}
	}
}

func TestIntersectParallelLines(t *testing.T) {
	_, err := IntersectTwoLines(NewPoint(0, 0), NewPoint(1, 1), NewPoint(0, 1), NewPoint(1, 2))
	if !errors.Is(err, ErrParallelLines) {
		t.Errorf("Expected ErrParallelLines, got %v", err)
	}
	_, err = IntersectTwoLines(NewPoint(0, 0), NewPoint(0, 1), NewPoint(1, 1), NewPoint(1, 2))
	if !errors.Is(err, ErrParallelLines) {
		t.Errorf("Expected ErrParallelLines for vertical lines, got %v", err)
	}
}

func TestTransit(t *testing.T) {
	p := NewPoint(2, 1)
	o := NewPoint(8, -2)
	if v := TransitXAxisIntercept(p, o); math.Abs(v-4) > eps {
		t.Errorf("Intercept: %v", v)
	}
	if v := TransitXAxisIntercept(NewPoint(6, -1), o); math.Abs(v-4) > eps {
		t.Errorf("Intercept from the observer's side: %v", v)
	}
	if v := TransitBearing(p, o); math.Abs(v-Degrees(math.Atan2(-3, 6))) > eps {
		t.Errorf("Bearing: %v", v)
	}
	if v := TransitDistance(p, o); math.Abs(v-math.Sqrt(45)) > eps {
		t.Errorf("Distance: %v", v)
	}
	if v := TransitDistanceToXAxis(p, o); math.Abs(v-math.Sqrt(45)/3) > eps {
		t.Errorf("Distance to x axis: %v", v)
	}
	if v := TransitXAxisError(p, o, 0.6, 0.3); math.Abs(v-0.5) > eps {
		t.Errorf("Error on x axis: %v", v)
	}
}

func TestTransitObserverOnAxis(t *testing.T) {
	o := NewPoint(1234.5, 0)
	for _, p := range []Point{NewPoint(0, 400), NewPoint(2000, -300), NewPoint(-50, 10)} {
		if v := TransitXAxisIntercept(p, o); math.Abs(v-o.X) > eps {
			t.Errorf("Intercept for %v: %v, correct answer: %v", p, v, o.X)
		}
	}
}

func TestTransitLineHelpers(t *testing.T) {
	past := TransitLinePastObserver(NewPoint(0, 0), NewPoint(3, 4), NewPoint(6, 8), 5)
	if Distance(past, NewPoint(9, 12)) > eps {
		t.Errorf("Line past observer: %v", past)
	}
	from, to, bearing := TransitPointWithError(NewPoint(0, 0), NewPoint(10, 0), 1)
	if Distance(from, NewPoint(0, 1)) > eps || Distance(to, NewPoint(10, 1)) > eps || math.Abs(bearing) > eps {
		t.Errorf("Shifted line: %v -> %v at %v", from, to, bearing)
	}
}

func TestInterpolate(t *testing.T) {
	xs := []float64{4, 8, 12, 16}
	ys := []float64{8, 16, 24, 32}
	cases := [][2]float64{
		{4, 8}, {8, 16}, {6, 12}, {2, 4}, {0, 0}, {16, 32}, {18, 36}, {20, 40},
	}
	for _, c := range cases {
		answer, err := Interpolate(xs, ys, c[0])
		if err != nil {
			t.Error(err)
			continue
		}
		if math.Abs(answer-c[1]) > eps {
			t.Errorf("Interpolate(%v): %v, correct answer: %v", c[0], answer, c[1])
		}
	}
	if _, err := Interpolate(xs, ys[:2], 1); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
	if _, err := Interpolate([]float64{1}, []float64{1}, 2); !errors.Is(err, ErrCannotExtrapolate) {
		t.Errorf("Expected ErrCannotExtrapolate, got %v", err)
	}
	if v, err := Interpolate([]float64{1}, []float64{7}, 1); err != nil || v != 7 {
		t.Errorf("Single exact sample: %v, %v", v, err)
	}
}
