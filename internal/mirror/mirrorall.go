package mirror

import (
	"go.uber.org/zap"

	"github.com/Faultbox/shapemirror/internal/logger"
	"github.com/Faultbox/shapemirror/pkg/shapekey"
)

// AllResult reports a MirrorAllMissing run.
type AllResult struct {
	Created []KeyResult
	Skipped []string // keys whose opposite side already existed
}

// MirrorAllMissing mirrors every shape key that lacks an opposite-side
// counterpart. Keys with a detected L/R convention mirror in their named
// direction and are skipped when the clean opposite name already exists.
// Keys with no detected side are mirrored in whichever direction moves more
// vertices, under the name "<key>_Mirror_<side>".
func MirrorAllMissing(m *shapekey.Mesh, opts Options) (*AllResult, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	part := Classify(m.Basis, opts.Axis, opts.CenterTolerance)

	// The correspondence depends only on the rest pose, so one per
	// direction covers every key.
	corrs := map[Direction]*Correspondence{}
	corrFor := func(dir Direction) *Correspondence {
		if c, ok := corrs[dir]; ok {
			return c
		}
		c := BuildCorrespondence(m.Basis, dir, part, opts)
		corrs[dir] = c
		return c
	}

	// Snapshot the keys before creating any, so new keys are not reprocessed.
	todo := make([]*shapekey.Key, len(m.Keys))
	copy(todo, m.Keys)
	existing := nameSet(m)

	var sided []*shapekey.Key
	var ambiguous []*shapekey.Key
	patterns := make(map[string]SidePattern, len(todo))
	for _, key := range todo {
		pat := DetectSide(key.Name)
		patterns[key.Name] = pat
		if pat.Ambiguous() {
			ambiguous = append(ambiguous, key)
		} else {
			sided = append(sided, key)
		}
	}

	res := &AllResult{}

	for _, key := range sided {
		pat := patterns[key.Name]
		// The clean opposite name, ignoring collisions: if it exists the
		// key already has its mirror.
		expected := MirrorName(key.Name, pat, nil)
		if m.HasKey(expected) {
			res.Skipped = append(res.Skipped, key.Name)
			continue
		}

		dir := RightToLeft
		if pat.From == SideLeft {
			dir = LeftToRight
		}
		newName := MirrorName(key.Name, pat, existing)
		kr, err := applyKeyMirror(m, key, newName, corrFor(dir), opts)
		if err != nil {
			return nil, err
		}
		existing[newName] = true
		res.Created = append(res.Created, *kr)
	}

	for _, key := range ambiguous {
		if createdThisRun(res.Created, key.Name) {
			res.Skipped = append(res.Skipped, key.Name)
			continue
		}

		dir := bestDirection(m, key, corrFor(LeftToRight), corrFor(RightToLeft), opts)
		corr := corrFor(dir)

		newName := key.Name + "_Mirror_" + dir.ToSide()
		if existing[newName] {
			newName = probeName(newName, existing)
		}

		kr, err := applyKeyMirror(m, key, newName, corr, opts)
		if err != nil {
			return nil, err
		}
		existing[newName] = true
		res.Created = append(res.Created, *kr)
	}

	logger.Info("mirror all missing finished",
		zap.Int("created", len(res.Created)),
		zap.Int("skipped", len(res.Skipped)))
	return res, nil
}

// bestDirection guesses the mirror direction for a key with no side in its
// name: the direction whose mapped source vertices carry more non-trivial
// displacement wins, ties going right-to-left.
func bestDirection(m *shapekey.Mesh, key *shapekey.Key, ltr, rtl *Correspondence, opts Options) Direction {
	left := countDeformed(m, key, ltr, opts)
	right := countDeformed(m, key, rtl, opts)
	logger.Debug("direction guess for ambiguous key",
		zap.String("key", key.Name),
		zap.Int("leftToRight", left),
		zap.Int("rightToLeft", right))
	if left > right {
		return LeftToRight
	}
	return RightToLeft
}

// countDeformed counts mapped source vertices the key actually displaces.
func countDeformed(m *shapekey.Mesh, key *shapekey.Key, corr *Correspondence, opts Options) int {
	n := 0
	for _, tgt := range corr.Target {
		src, ok := corr.Inverse[tgt]
		if !ok {
			continue
		}
		if m.Displacement(key, src).Length() > opts.DeformEpsilon {
			n++
		}
	}
	return n
}

func createdThisRun(created []KeyResult, name string) bool {
	for _, kr := range created {
		if kr.NewKey == name {
			return true
		}
	}
	return false
}
