// Package octree implements a point octree with bounded nearest-neighbor search.
//
// Points carry an integer label (typically a vertex index). The tree is built
// fresh per query batch and discarded; there is no delete or update.
package octree

import (
	"math"

	"github.com/Faultbox/shapemirror/pkg/geom"
)

const (
	// DefaultMaxPoints is the number of entries a leaf holds before it subdivides.
	DefaultMaxPoints = 10
	// DefaultMaxDepth caps subdivision; leaves at this depth grow unbounded.
	DefaultMaxDepth = 10
)

// node is a cube of space, either a leaf holding labeled points or eight
// child octants covering its volume.
type node struct {
	center   geom.Vec3
	size     float64 // half-width of the cube
	depth    int
	points   []geom.Vec3
	labels   []int
	children []*node // nil for leaves, exactly 8 otherwise
}

// Octree indexes labeled 3D points for nearest-point queries.
type Octree struct {
	root      *node
	maxPoints int
	maxDepth  int
}

// New builds an octree over points, sizing the root from a bounding-box pass.
// labels[i] tags points[i]; a nil labels slice tags each point with its index.
func New(points []geom.Vec3, labels []int) *Octree {
	return NewTuned(points, labels, DefaultMaxPoints, DefaultMaxDepth)
}

// NewTuned is New with explicit subdivision parameters.
func NewTuned(points []geom.Vec3, labels []int, maxPoints, maxDepth int) *Octree {
	if maxPoints < 1 {
		maxPoints = DefaultMaxPoints
	}
	if maxDepth < 0 {
		maxDepth = DefaultMaxDepth
	}
	t := &Octree{maxPoints: maxPoints, maxDepth: maxDepth}
	if len(points) == 0 {
		return t
	}

	min := points[0]
	max := points[0]
	for _, p := range points[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
		max.Z = math.Max(max.Z, p.Z)
	}

	center := min.Add(max).Scale(0.5)
	extent := math.Max(max.X-min.X, math.Max(max.Y-min.Y, max.Z-min.Z))
	// Small buffer so boundary points land strictly inside the root cube.
	size := extent / 2 * 1.01
	if size <= 0 {
		size = 1.0
	}

	t.root = &node{center: center, size: size}
	for i, p := range points {
		label := i
		if labels != nil {
			label = labels[i]
		}
		t.insert(t.root, p, label)
	}
	return t
}

// Insert adds a labeled point. On an empty tree the root becomes a
// unit-half-width cube centered on the point; prefer New when the full point
// set is known up front so the root is sized from its bounding box.
func (t *Octree) Insert(p geom.Vec3, label int) {
	if t.root == nil {
		t.root = &node{center: p, size: 1.0}
	}
	t.insert(t.root, p, label)
}

// Len reports the number of stored points.
func (t *Octree) Len() int {
	return count(t.root)
}

func count(n *node) int {
	if n == nil {
		return 0
	}
	if n.children == nil {
		return len(n.points)
	}
	total := 0
	for _, c := range n.children {
		total += count(c)
	}
	return total
}

// octant returns the child index containing p: bit 2 for x, bit 1 for y,
// bit 0 for z, set iff the coordinate is >= the node center.
func (n *node) octant(p geom.Vec3) int {
	idx := 0
	if p.X >= n.center.X {
		idx |= 4
	}
	if p.Y >= n.center.Y {
		idx |= 2
	}
	if p.Z >= n.center.Z {
		idx |= 1
	}
	return idx
}

func (t *Octree) insert(n *node, p geom.Vec3, label int) {
	for n.children != nil {
		n = n.children[n.octant(p)]
	}
	n.points = append(n.points, p)
	n.labels = append(n.labels, label)
	if len(n.points) > t.maxPoints && n.depth < t.maxDepth {
		t.subdivide(n)
	}
}

// subdivide splits a leaf into 8 octants and redistributes its points.
func (t *Octree) subdivide(n *node) {
	half := n.size / 2
	n.children = make([]*node, 8)
	for i := range n.children {
		c := n.center
		if i&4 != 0 {
			c.X += half
		} else {
			c.X -= half
		}
		if i&2 != 0 {
			c.Y += half
		} else {
			c.Y -= half
		}
		if i&1 != 0 {
			c.Z += half
		} else {
			c.Z -= half
		}
		n.children[i] = &node{center: c, size: half, depth: n.depth + 1}
	}

	points := n.points
	labels := n.labels
	n.points = nil
	n.labels = nil
	for i, p := range points {
		t.insert(n.children[n.octant(p)], p, labels[i])
	}
}

// FindNearest returns the stored point closest to query within maxDist.
// ok is false when no stored point qualifies.
func (t *Octree) FindNearest(query geom.Vec3, maxDist float64) (dist float64, label int, ok bool) {
	if t.root == nil {
		return 0, 0, false
	}
	return t.search(t.root, query, maxDist)
}

// search is a branch-and-bound descent: the octant containing the query is
// searched first to tighten the bound, then siblings only when the distance
// lower bound to their cube beats the current best.
func (t *Octree) search(n *node, query geom.Vec3, maxDist float64) (float64, int, bool) {
	if n.children == nil {
		bestSq := math.Inf(1)
		bestLabel := 0
		found := false
		limitSq := maxDist * maxDist
		for i, p := range n.points {
			d := p.DistanceSquared(query)
			if d < bestSq && d <= limitSq {
				bestSq = d
				bestLabel = n.labels[i]
				found = true
			}
		}
		if !found {
			return 0, 0, false
		}
		return math.Sqrt(bestSq), bestLabel, true
	}

	oct := n.octant(query)
	best, bestLabel, found := t.search(n.children[oct], query, maxDist)
	if found && best < maxDist {
		maxDist = best
	}

	for i, child := range n.children {
		if i == oct {
			continue
		}
		if child.lowerBound(query) >= maxDist {
			continue
		}
		if d, l, ok := t.search(child, query, maxDist); ok && (!found || d < best) {
			best, bestLabel, found = d, l, true
			maxDist = d
		}
	}
	return best, bestLabel, found
}

// lowerBound returns the minimum possible distance from query to any point
// inside the node's cube: per-axis overhang beyond the half-width, zero on
// axes where the query lies within the cube's extent.
func (n *node) lowerBound(query geom.Vec3) float64 {
	sum := 0.0
	if d := math.Abs(query.X-n.center.X) - n.size; d > 0 {
		sum += d * d
	}
	if d := math.Abs(query.Y-n.center.Y) - n.size; d > 0 {
		sum += d * d
	}
	if d := math.Abs(query.Z-n.center.Z) - n.size; d > 0 {
		sum += d * d
	}
	return math.Sqrt(sum)
}
