package octree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Faultbox/shapemirror/pkg/geom"
)

func randomPoints(r *rand.Rand, n int, scale float64) []geom.Vec3 {
	points := make([]geom.Vec3, n)
	for i := range points {
		points[i] = geom.Vec3{
			X: (r.Float64() - 0.5) * scale,
			Y: (r.Float64() - 0.5) * scale,
			Z: (r.Float64() - 0.5) * scale,
		}
	}
	return points
}

// bruteNearest is the reference answer the octree must reproduce.
func bruteNearest(points []geom.Vec3, q geom.Vec3, maxDist float64) (float64, int, bool) {
	best := math.Inf(1)
	bestIdx := 0
	found := false
	for i, p := range points {
		d := p.Distance(q)
		if d < best && d <= maxDist {
			best = d
			bestIdx = i
			found = true
		}
	}
	return best, bestIdx, found
}

func TestFindNearestEmpty(t *testing.T) {
	tree := New(nil, nil)
	if _, _, ok := tree.FindNearest(geom.Vec3{}, math.Inf(1)); ok {
		t.Error("empty octree reported a nearest point")
	}
}

func TestFindNearestSinglePoint(t *testing.T) {
	p := geom.Vec3{X: 1.5, Y: -2, Z: 0.25}
	tree := New([]geom.Vec3{p}, []int{42})

	dist, label, ok := tree.FindNearest(p, 0.001)
	if !ok || label != 42 || dist != 0 {
		t.Errorf("FindNearest(self) = %v, %d, %v; want 0, 42, true", dist, label, ok)
	}

	// A query far beyond maxDist finds nothing.
	if _, _, ok := tree.FindNearest(geom.Vec3{X: 100}, 1.0); ok {
		t.Error("query outside maxDist reported a point")
	}
}

func TestInsertIncremental(t *testing.T) {
	tree := New(nil, nil)
	r := rand.New(rand.NewSource(7))
	points := randomPoints(r, 50, 4)
	for i, p := range points {
		tree.Insert(p, i)
	}
	if tree.Len() != 50 {
		t.Fatalf("Len() = %d, want 50", tree.Len())
	}

	for i, p := range points {
		dist, label, ok := tree.FindNearest(p, 1e-9)
		if !ok || label != i || dist != 0 {
			t.Fatalf("point %d not found at distance 0: got %v, %d, %v", i, dist, label, ok)
		}
	}
}

// Every stored point must be found at distance zero regardless of the
// subdivision parameters.
func TestContainedPointAlwaysFound(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	points := randomPoints(r, 300, 10)

	params := []struct{ maxPoints, maxDepth int }{
		{1, 2},
		{2, 20},
		{10, 10},
		{100, 1},
	}
	for _, prm := range params {
		tree := NewTuned(points, nil, prm.maxPoints, prm.maxDepth)
		for i, p := range points {
			dist, label, ok := tree.FindNearest(p, math.Inf(1))
			if !ok || label != i || dist != 0 {
				t.Fatalf("maxPoints=%d maxDepth=%d: point %d got %v, %d, %v",
					prm.maxPoints, prm.maxDepth, i, dist, label, ok)
			}
		}
	}
}

// The octree search must agree with a brute-force scan on distance and label
// for arbitrary queries and bounds.
func TestFindNearestMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(23))

	for _, n := range []int{1, 5, 30, 500} {
		points := randomPoints(r, n, 6)
		tree := New(points, nil)

		for q := 0; q < 200; q++ {
			query := geom.Vec3{
				X: (r.Float64() - 0.5) * 8,
				Y: (r.Float64() - 0.5) * 8,
				Z: (r.Float64() - 0.5) * 8,
			}
			maxDist := math.Inf(1)
			if q%3 == 0 {
				maxDist = r.Float64() * 2
			}

			wantDist, wantLabel, wantOK := bruteNearest(points, query, maxDist)
			gotDist, gotLabel, gotOK := tree.FindNearest(query, maxDist)

			if gotOK != wantOK {
				t.Fatalf("n=%d query %v maxDist %v: found=%v, want %v",
					n, query, maxDist, gotOK, wantOK)
			}
			if !wantOK {
				continue
			}
			if gotLabel != wantLabel || math.Abs(gotDist-wantDist) > 1e-12 {
				t.Fatalf("n=%d query %v: got (%v, %d), want (%v, %d)",
					n, query, gotDist, gotLabel, wantDist, wantLabel)
			}
		}
	}
}

// Clustered points drive deep subdivision; the depth cap must keep the tree
// functional with overfull leaves.
func TestDepthCapWithClusteredPoints(t *testing.T) {
	points := make([]geom.Vec3, 100)
	for i := range points {
		points[i] = geom.Vec3{X: 1e-9 * float64(i)}
	}
	// One distant point so the root cube is not degenerate.
	points = append(points, geom.Vec3{X: 5, Y: 5, Z: 5})

	tree := NewTuned(points, nil, 2, 3)
	for i, p := range points {
		dist, label, ok := tree.FindNearest(p, math.Inf(1))
		if !ok || dist != 0 {
			t.Fatalf("clustered point %d not found at distance 0", i)
		}
		if points[label] != p {
			t.Fatalf("clustered point %d resolved to a different coordinate", i)
		}
	}
}

func TestLabelsSlice(t *testing.T) {
	points := []geom.Vec3{{X: -1}, {X: 1}}
	tree := New(points, []int{10, 20})

	_, label, ok := tree.FindNearest(geom.Vec3{X: 0.9}, 0.5)
	if !ok || label != 20 {
		t.Errorf("FindNearest = %d, %v; want 20, true", label, ok)
	}
}
