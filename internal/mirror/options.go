package mirror

import "github.com/Faultbox/shapemirror/pkg/geom"

// Options configures the mirroring engine. Start from DefaultOptions and
// override fields; zero numeric fields fall back to the defaults.
type Options struct {
	// Axis is the coordinate axis perpendicular to the symmetry plane.
	Axis geom.Axis

	// Tolerance is the maximum distance between a vertex and its claimed
	// mirror partner.
	Tolerance float64

	// CenterTolerance is the half-width of the band of vertices treated as
	// lying on the symmetry plane.
	CenterTolerance float64

	// DeformEpsilon is the displacement magnitude below which a vertex
	// counts as untouched by a shape key.
	DeformEpsilon float64

	// MaxPoints and MaxDepth tune octree subdivision.
	MaxPoints int
	MaxDepth  int

	// FaultTolerant allows raw-mesh forcing to proceed when some source
	// vertices have no partner within tolerance. When false, any unmapped
	// vertex aborts the operation before mutation.
	FaultTolerant bool

	// SnapCenter forces center-band vertices exactly onto the symmetry
	// plane during raw-mesh forcing.
	SnapCenter bool

	// TagFailed records unmapped source vertices in the mesh vertex group
	// named FailedGroupName after raw-mesh forcing.
	TagFailed bool
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		Axis:            geom.AxisX,
		Tolerance:       0.001,
		CenterTolerance: 0.0001,
		DeformEpsilon:   0.0001,
		MaxPoints:       10,
		MaxDepth:        10,
		FaultTolerant:   true,
		SnapCenter:      true,
		TagFailed:       true,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Tolerance <= 0 {
		o.Tolerance = def.Tolerance
	}
	if o.CenterTolerance <= 0 {
		o.CenterTolerance = def.CenterTolerance
	}
	if o.DeformEpsilon <= 0 {
		o.DeformEpsilon = def.DeformEpsilon
	}
	if o.MaxPoints <= 0 {
		o.MaxPoints = def.MaxPoints
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = def.MaxDepth
	}
	return o
}
