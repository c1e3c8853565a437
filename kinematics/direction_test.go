package kinematics

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

const eps = 0.00001

func TestFlip(t *testing.T) {
	cases := map[ErrorDirection]ErrorDirection{
		Min: Max,
		Mid: Mid,
		Max: Min,
	}
	for in, expected := range cases {
		if got := Flip(in); got != expected {
			t.Errorf("Flip(%s) = %s, correct answer: %s", in, got, expected)
		}
		if got := Flip(Flip(in)); got != in {
			t.Errorf("Flip(Flip(%s)) = %s", in, got)
		}
	}
}

func TestDirections(t *testing.T) {
	dirs := Directions()
	if len(dirs) != 3 || dirs[0] != Min || dirs[1] != Mid || dirs[2] != Max {
		t.Errorf("Unexpected directions %v", dirs)
	}
	signs := []float64{-1, 0, 1}
	for i, dir := range dirs {
		if dir.Sign() != signs[i] {
			t.Errorf("%s.Sign() = %v, correct answer: %v", dir, dir.Sign(), signs[i])
		}
	}
	if Mid.String() != "MID" || ErrorDirection(7).String() != "ErrorDirection(7)" {
		t.Error("Unexpected String()")
	}
	if ErrorDirection(2).Valid() {
		t.Error("ErrorDirection(2) must be invalid")
	}
}

func TestEvaluator(t *testing.T) {
	ev := Evaluator{TimeError: 0.5}
	linear := func(x float64) (float64, error) { return 2 * x, nil }
	cases := []struct {
		dir      ErrorDirection
		err      float64
		expected float64
	}{
		{Mid, 1.0, 20.0},
		{Max, 1.0, 22.0},
		{Min, 1.0, 18.0},
		{Max, 0.0, 21.0},
		{Min, 0.0, 19.0},
	}
	for _, c := range cases {
		got, err := ev.Apply(linear, 10, c.dir, c.err)
		if err != nil {
			t.Error(err)
			continue
		}
		if math.Abs(got-c.expected) > eps {
			t.Errorf("Apply(%s, err=%v) = %v, correct answer: %v", c.dir, c.err, got, c.expected)
		}
	}
	// A decreasing function takes the other neighbour
	decreasing := func(x float64) (float64, error) { return -x, nil }
	got, _ := ev.Apply(decreasing, 10, Max, 0)
	if math.Abs(got-(-9.5)) > eps {
		t.Errorf("Apply(decreasing, Max) = %v, correct answer: %v", got, -9.5)
	}
	got, _ = ev.Apply(decreasing, 10, Min, 0)
	if math.Abs(got-(-10.5)) > eps {
		t.Errorf("Apply(decreasing, Min) = %v, correct answer: %v", got, -10.5)
	}
}

func TestEvaluatorErrors(t *testing.T) {
	ev := Evaluator{TimeError: 0.5}
	identity := func(x float64) (float64, error) { return x, nil }
	if _, err := ev.Apply(identity, 0, Max, -1); !errors.Is(err, ErrNegativeError) {
		t.Errorf("Expected ErrNegativeError, got %v", err)
	}
	// Mid never looks at the error term
	if _, err := ev.Apply(identity, 0, Mid, -1); err != nil {
		t.Errorf("Unexpected error for Mid: %v", err)
	}
	if _, err := ev.Apply(identity, 0, ErrorDirection(3), 1); !errors.Is(err, ErrBadDirection) {
		t.Errorf("Expected ErrBadDirection, got %v", err)
	}
}
