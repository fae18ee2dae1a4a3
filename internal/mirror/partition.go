// Package mirror implements the spatial vertex-mirroring engine: side
// classification, octree-backed vertex correspondence, L/R name detection,
// and shape-key / raw-mesh mirroring built on top of them.
package mirror

import "github.com/Faultbox/shapemirror/pkg/geom"

// Partition groups vertex indices by their side of the symmetry plane.
// Every vertex lands in exactly one of the three slices.
type Partition struct {
	Left   []int // mirror-axis coordinate < 0
	Right  []int // mirror-axis coordinate > 0
	Center []int // |coordinate| < center tolerance
}

// Classify partitions the rest-pose vertices along the mirror axis. Vertices
// within centerEps of the plane are center; otherwise the coordinate sign
// decides the side. Indices appear in ascending order in each slice.
func Classify(points []geom.Vec3, axis geom.Axis, centerEps float64) Partition {
	var part Partition
	for i, p := range points {
		c := axis.Component(p)
		switch {
		case c < centerEps && c > -centerEps:
			part.Center = append(part.Center, i)
		case c < 0:
			part.Left = append(part.Left, i)
		default:
			part.Right = append(part.Right, i)
		}
	}
	return part
}
