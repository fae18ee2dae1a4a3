package mirror

import (
	"math/rand"
	"testing"

	"github.com/Faultbox/shapemirror/pkg/geom"
)

func TestClassifySides(t *testing.T) {
	points := []geom.Vec3{
		{X: -1},
		{X: -0.5, Y: 2},
		{X: 0},
		{X: 0.00005},
		{X: 0.5},
		{X: 1, Z: -3},
	}
	part := Classify(points, geom.AxisX, 0.0001)

	wantLeft := []int{0, 1}
	wantCenter := []int{2, 3}
	wantRight := []int{4, 5}
	if !equalInts(part.Left, wantLeft) {
		t.Errorf("Left = %v, want %v", part.Left, wantLeft)
	}
	if !equalInts(part.Center, wantCenter) {
		t.Errorf("Center = %v, want %v", part.Center, wantCenter)
	}
	if !equalInts(part.Right, wantRight) {
		t.Errorf("Right = %v, want %v", part.Right, wantRight)
	}
}

func TestClassifyOtherAxis(t *testing.T) {
	points := []geom.Vec3{{X: 5, Y: -1}, {X: -5, Y: 1}, {Y: 0}}
	part := Classify(points, geom.AxisY, 0.0001)

	if !equalInts(part.Left, []int{0}) || !equalInts(part.Right, []int{1}) || !equalInts(part.Center, []int{2}) {
		t.Errorf("Y-axis partition wrong: %+v", part)
	}
}

// Every vertex must land in exactly one group.
func TestClassifyExhaustiveAndDisjoint(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	points := make([]geom.Vec3, 1000)
	for i := range points {
		points[i] = geom.Vec3{
			X: (r.Float64() - 0.5) * 2,
			Y: r.Float64(),
			Z: r.Float64(),
		}
	}
	// Force some exact-center and near-center vertices.
	points[0] = geom.Vec3{X: 0}
	points[1] = geom.Vec3{X: 0.00009}
	points[2] = geom.Vec3{X: -0.00009}

	part := Classify(points, geom.AxisX, 0.0001)

	if got := len(part.Left) + len(part.Right) + len(part.Center); got != len(points) {
		t.Fatalf("|L|+|R|+|C| = %d, want %d", got, len(points))
	}
	seen := make(map[int]bool, len(points))
	for _, group := range [][]int{part.Left, part.Right, part.Center} {
		for _, i := range group {
			if seen[i] {
				t.Fatalf("vertex %d appears in two groups", i)
			}
			seen[i] = true
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
