package mirror

import (
	"testing"

	"github.com/Faultbox/shapemirror/pkg/geom"
	"github.com/Faultbox/shapemirror/pkg/shapekey"
)

func TestMirrorAllMissingSidedKeys(t *testing.T) {
	m := lineMesh()
	addKey(t, m, "SmileL", map[int]geom.Vec3{0: {Y: 1}})
	addKey(t, m, "SmileR", map[int]geom.Vec3{4: {Y: 1}})
	addKey(t, m, "Frown_L", map[int]geom.Vec3{1: {Y: -1}})

	opts := DefaultOptions()
	opts.Tolerance = 0.01
	res, err := MirrorAllMissing(m, opts)
	if err != nil {
		t.Fatalf("MirrorAllMissing: %v", err)
	}

	// SmileL and SmileR already mirror each other; only Frown_L is missing
	// its counterpart.
	if len(res.Created) != 1 {
		t.Fatalf("Created = %+v, want exactly one", res.Created)
	}
	kr := res.Created[0]
	if kr.SourceKey != "Frown_L" || kr.NewKey != "Frown_R" {
		t.Errorf("created %q from %q, want Frown_R from Frown_L", kr.NewKey, kr.SourceKey)
	}
	if len(res.Skipped) != 2 {
		t.Errorf("Skipped = %v, want SmileL and SmileR", res.Skipped)
	}

	frownR := m.Key("Frown_R")
	if frownR == nil {
		t.Fatal("Frown_R not added")
	}
	want := m.Basis[3].Add(geom.Vec3{Y: -1})
	if frownR.Points[3] != want {
		t.Errorf("Frown_R.Points[3] = %v, want %v", frownR.Points[3], want)
	}
}

func TestMirrorAllMissingAmbiguousPicksBusierSide(t *testing.T) {
	m := lineMesh()
	// Deformation lives on the right side, so the guess must mirror
	// right-to-left and name the result for the left side.
	addKey(t, m, "Puff", map[int]geom.Vec3{3: {Z: 1}, 4: {Z: 1}})

	opts := DefaultOptions()
	opts.Tolerance = 0.01
	res, err := MirrorAllMissing(m, opts)
	if err != nil {
		t.Fatalf("MirrorAllMissing: %v", err)
	}

	if len(res.Created) != 1 {
		t.Fatalf("Created = %+v, want exactly one", res.Created)
	}
	kr := res.Created[0]
	if kr.NewKey != "Puff_Mirror_L" {
		t.Errorf("NewKey = %q, want Puff_Mirror_L", kr.NewKey)
	}
	if kr.Direction != RightToLeft {
		t.Errorf("Direction = %v, want right-to-left", kr.Direction)
	}

	created := m.Key("Puff_Mirror_L")
	if created.Points[0] != m.Basis[0].Add(geom.Vec3{Z: 1}) {
		t.Errorf("Points[0] = %v", created.Points[0])
	}
	if created.Points[1] != m.Basis[1].Add(geom.Vec3{Z: 1}) {
		t.Errorf("Points[1] = %v", created.Points[1])
	}
}

func TestMirrorAllMissingAmbiguousLeftSide(t *testing.T) {
	m := lineMesh()
	addKey(t, m, "Twitch", map[int]geom.Vec3{0: {Y: 0.5}, 1: {Y: 0.5}})

	opts := DefaultOptions()
	opts.Tolerance = 0.01
	res, err := MirrorAllMissing(m, opts)
	if err != nil {
		t.Fatalf("MirrorAllMissing: %v", err)
	}

	if len(res.Created) != 1 || res.Created[0].NewKey != "Twitch_Mirror_R" {
		t.Fatalf("Created = %+v, want Twitch_Mirror_R", res.Created)
	}
	if res.Created[0].Direction != LeftToRight {
		t.Errorf("Direction = %v, want left-to-right", res.Created[0].Direction)
	}
}

// A key with zero deformation everywhere ties at 0:0 and goes right-to-left.
func TestMirrorAllMissingAmbiguousTie(t *testing.T) {
	m := lineMesh()
	addKey(t, m, "Still", nil)

	opts := DefaultOptions()
	opts.Tolerance = 0.01
	res, err := MirrorAllMissing(m, opts)
	if err != nil {
		t.Fatalf("MirrorAllMissing: %v", err)
	}
	if len(res.Created) != 1 || res.Created[0].Direction != RightToLeft {
		t.Fatalf("Created = %+v, want one right-to-left key", res.Created)
	}
	if res.Created[0].NewKey != "Still_Mirror_L" {
		t.Errorf("NewKey = %q, want Still_Mirror_L", res.Created[0].NewKey)
	}
}

func TestMirrorAllMissingNameCollision(t *testing.T) {
	m := lineMesh()
	addKey(t, m, "Puff", map[int]geom.Vec3{3: {Z: 1}})
	addKey(t, m, "Puff_Mirror_L", nil)

	opts := DefaultOptions()
	opts.Tolerance = 0.01
	res, err := MirrorAllMissing(m, opts)
	if err != nil {
		t.Fatalf("MirrorAllMissing: %v", err)
	}

	var names []string
	for _, kr := range res.Created {
		names = append(names, kr.NewKey)
	}
	// Puff collides with the existing Puff_Mirror_L and probes to _1;
	// Puff_Mirror_L itself is ambiguous and gets its own mirror.
	if !m.HasKey("Puff_Mirror_L_1") {
		t.Errorf("expected probed name Puff_Mirror_L_1, created %v", names)
	}
}

func TestMirrorAllMissingEmptyMesh(t *testing.T) {
	m := &shapekey.Mesh{Name: "empty"}
	if _, err := MirrorAllMissing(m, DefaultOptions()); err == nil {
		t.Error("expected error for mesh without basis")
	}
}
