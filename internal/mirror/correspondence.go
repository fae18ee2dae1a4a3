package mirror

import (
	"sort"

	"github.com/Faultbox/shapemirror/pkg/geom"
	"github.com/Faultbox/shapemirror/pkg/octree"
)

// Direction selects which side of the symmetry plane is the source.
type Direction int

const (
	// LeftToRight mirrors the negative side onto the positive side.
	LeftToRight Direction = iota
	// RightToLeft mirrors the positive side onto the negative side.
	RightToLeft
)

func (d Direction) String() string {
	if d == RightToLeft {
		return "right-to-left"
	}
	return "left-to-right"
}

// ToSide returns "L" or "R" for the side the direction writes to.
func (d Direction) ToSide() string {
	if d == RightToLeft {
		return "L"
	}
	return "R"
}

// Correspondence is a bidirectional vertex mapping for one mirror direction,
// built against the rest pose and a tolerance. It is immutable after build
// and safe to share across goroutines.
type Correspondence struct {
	Direction Direction
	Source    []int // source-side vertex indices, ascending
	Target    []int // target-side vertex indices, ascending

	// Forward maps source index to target index and carries the identity
	// entries for center vertices. Inverse maps target to source and
	// excludes the identities.
	Forward map[int]int
	Inverse map[int]int

	// Unmapped lists source vertices with no partner: nothing on the target
	// side within tolerance of their mirrored position, or displaced by a
	// later source vertex that claimed the same nearest target.
	Unmapped []int
}

// BuildCorrespondence matches every source-side vertex to its nearest
// target-side vertex across the symmetry plane, within opts.Tolerance.
//
// Center vertices map to themselves. Sources are processed in ascending
// index order; when two sources resolve to the same nearest target the later
// one wins and the earlier is reported in Unmapped.
func BuildCorrespondence(points []geom.Vec3, dir Direction, part Partition, opts Options) *Correspondence {
	opts = opts.withDefaults()

	source, target := part.Left, part.Right
	if dir == RightToLeft {
		source, target = part.Right, part.Left
	}

	corr := &Correspondence{
		Direction: dir,
		Source:    source,
		Target:    target,
		Forward:   make(map[int]int, len(source)+len(part.Center)),
		Inverse:   make(map[int]int, len(source)),
	}

	for _, i := range part.Center {
		corr.Forward[i] = i
	}

	targetPoints := make([]geom.Vec3, len(target))
	for i, idx := range target {
		targetPoints[i] = points[idx]
	}
	index := octree.NewTuned(targetPoints, target, opts.MaxPoints, opts.MaxDepth)

	claimed := make(map[int]int, len(source)) // target index -> source index
	for _, src := range source {
		query := opts.Axis.Flip(points[src])
		_, tgt, ok := index.FindNearest(query, opts.Tolerance)
		if !ok {
			corr.Unmapped = append(corr.Unmapped, src)
			continue
		}
		if prev, dup := claimed[tgt]; dup {
			// Later source wins; the displaced mapping is surfaced rather
			// than silently dropped.
			delete(corr.Forward, prev)
			corr.Unmapped = append(corr.Unmapped, prev)
		}
		claimed[tgt] = src
		corr.Forward[src] = tgt
	}

	for src, tgt := range corr.Forward {
		if src != tgt {
			corr.Inverse[tgt] = src
		}
	}

	sort.Ints(corr.Unmapped)
	return corr
}

// Mapped returns the number of source vertices with a target partner.
func (c *Correspondence) Mapped() int {
	return len(c.Inverse)
}
