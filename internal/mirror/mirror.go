package mirror

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/shapemirror/internal/logger"
	"github.com/Faultbox/shapemirror/pkg/shapekey"
)

// FailedGroupName is the vertex group raw-mesh forcing tags with the source
// vertices it could not mirror.
const FailedGroupName = "Mirror_Failed_Vertices"

// ErrUnmappedVertices is returned by fault-intolerant forcing when any
// source vertex has no partner within tolerance. The mesh is left untouched.
var ErrUnmappedVertices = errors.New("vertices could not be mirrored within tolerance")

// KeyResult reports one shape-key mirroring operation.
type KeyResult struct {
	SourceKey string
	NewKey    string
	Direction Direction
	Mirrored  int   // target vertices that received a mirrored displacement
	Sources   int   // source-side vertex count
	Unmapped  []int // source vertices with no partner within tolerance
}

// ForceResult reports one raw-mesh forcing operation.
type ForceResult struct {
	Direction Direction
	Mirrored  int   // target vertices overwritten with mirrored positions
	Snapped   int   // center vertices forced onto the symmetry plane
	Failed    []int // source vertices with no partner within tolerance
}

// MirrorKey synthesizes the opposite-side version of the named shape key.
// The direction and the new key's name come from the key's naming
// convention; a name with no detected side falls back to mirroring
// right-to-left under the name "<key>_Mirror".
func MirrorKey(m *shapekey.Mesh, keyName string, opts Options) (*KeyResult, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	key := m.Key(keyName)
	if key == nil {
		return nil, fmt.Errorf("no shape key named %q", keyName)
	}
	opts = opts.withDefaults()

	pat := DetectSide(keyName)
	dir := RightToLeft
	if pat.From == SideLeft {
		dir = LeftToRight
	}
	if pat.Ambiguous() {
		logger.Warn("no side convention in key name, mirroring right-to-left",
			zap.String("key", keyName))
	}
	newName := MirrorName(keyName, pat, nameSet(m))

	part := Classify(m.Basis, opts.Axis, opts.CenterTolerance)
	corr := BuildCorrespondence(m.Basis, dir, part, opts)

	return applyKeyMirror(m, key, newName, corr, opts)
}

// applyKeyMirror writes a new shape key from an existing correspondence. The
// new key starts as a copy of the basis and only target-side vertices with a
// non-trivial mirrored displacement are overwritten.
func applyKeyMirror(m *shapekey.Mesh, key *shapekey.Key, newName string, corr *Correspondence, opts Options) (*KeyResult, error) {
	newKey, err := m.AddKeyFromBasis(newName)
	if err != nil {
		return nil, err
	}

	mirrored := 0
	for _, tgt := range corr.Target {
		src, ok := corr.Inverse[tgt]
		if !ok {
			continue
		}
		d := m.Displacement(key, src)
		if d.Length() < opts.DeformEpsilon {
			continue
		}
		newKey.Points[tgt] = m.Basis[tgt].Add(opts.Axis.Flip(d))
		mirrored++
	}

	res := &KeyResult{
		SourceKey: key.Name,
		NewKey:    newName,
		Direction: corr.Direction,
		Mirrored:  mirrored,
		Sources:   len(corr.Source),
		Unmapped:  corr.Unmapped,
	}
	logger.Info("mirrored shape key",
		zap.String("source", key.Name),
		zap.String("new", newName),
		zap.String("direction", corr.Direction.String()),
		zap.Int("mirrored", mirrored),
		zap.Int("unmapped", len(corr.Unmapped)))
	return res, nil
}

// ForceSymmetry overwrites every matched target-side rest-pose vertex with
// the reflection of its source partner, making the mesh perfectly symmetric
// across the plane. Under fault-intolerant options any unmapped source
// vertex aborts before a single coordinate is written.
func ForceSymmetry(m *shapekey.Mesh, dir Direction, opts Options) (*ForceResult, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	part := Classify(m.Basis, opts.Axis, opts.CenterTolerance)
	corr := BuildCorrespondence(m.Basis, dir, part, opts)

	res := &ForceResult{Direction: dir, Failed: corr.Unmapped}
	if !opts.FaultTolerant && len(corr.Unmapped) > 0 {
		return res, fmt.Errorf("%w: %d of %d source vertices",
			ErrUnmappedVertices, len(corr.Unmapped), len(corr.Source))
	}

	for _, src := range corr.Source {
		tgt, ok := corr.Forward[src]
		if !ok {
			continue
		}
		m.Basis[tgt] = opts.Axis.Flip(m.Basis[src])
		res.Mirrored++
	}

	if opts.SnapCenter {
		for _, i := range part.Center {
			m.Basis[i] = opts.Axis.WithComponent(m.Basis[i], 0)
			res.Snapped++
		}
	}

	if opts.TagFailed {
		m.TagGroup(FailedGroupName, corr.Unmapped)
	}

	logger.Info("forced mesh symmetry",
		zap.String("direction", dir.String()),
		zap.Int("mirrored", res.Mirrored),
		zap.Int("snapped", res.Snapped),
		zap.Int("failed", len(res.Failed)))
	return res, nil
}

func nameSet(m *shapekey.Mesh) map[string]bool {
	set := make(map[string]bool, len(m.Keys))
	for _, k := range m.Keys {
		set[k.Name] = true
	}
	return set
}
