package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func approx(t *testing.T, got, want float64, field string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %.9f, want %.9f", field, got, want)
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		in   mgl64.Vec2
		want mgl64.Vec2
	}{
		{"finite", mgl64.Vec2{0.5, -0.25}, mgl64.Vec2{0.5, -0.25}},
		{"nan_x", mgl64.Vec2{math.NaN(), 1}, mgl64.Vec2{}},
		{"inf_y", mgl64.Vec2{0, math.Inf(-1)}, mgl64.Vec2{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SanitizeVec2(c.in); got != c.want {
				t.Fatalf("SanitizeVec2(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestClampMagnitude2(t *testing.T) {
	got := ClampMagnitude2(mgl64.Vec2{30, 40}, 10)
	approx(t, got[0], 6, "x")
	approx(t, got[1], 8, "y")

	inside := mgl64.Vec2{3, 4}
	if got := ClampMagnitude2(inside, 10); got != inside {
		t.Fatalf("inside radius changed: %v", got)
	}
	if got := ClampMagnitude2(inside, 0); got != (mgl64.Vec2{}) {
		t.Fatalf("zero radius = %v, want zero", got)
	}
}

func TestLookRotationFacesDirection(t *testing.T) {
	dirs := []mgl64.Vec3{
		{0, 0, 1},
		{1, 0, 0},
		{-1, 0, 0},
		{0, 0, -1},
		{1, 5, 1},
	}
	for _, d := range dirs {
		q := LookRotation(d)
		f := q.Rotate(Forward)
		want := Flatten(d)
		for i := 0; i < 3; i++ {
			approx(t, f[i], want[i], "forward")
		}
	}
	if q := LookRotation(mgl64.Vec3{0, 1, 0}); q != mgl64.QuatIdent() {
		t.Fatalf("vertical direction should yield identity, got %v", q)
	}
}

func TestSlerpShortestArc(t *testing.T) {
	a := YawRotation(math.Pi * 0.9)
	b := YawRotation(-math.Pi * 0.9)
	mid := Slerp(a, b, 0.5)
	approx(t, math.Abs(Yaw(mid)), math.Pi, "yaw")

	if got := Slerp(a, b, 2); math.Abs(got.Dot(b)) < 1-1e-9 {
		t.Fatalf("t>1 should land on target, got %v", got)
	}
}
