// Package shapekey models meshes with named shape keys.
//
// A Mesh owns a basis (rest pose) and zero or more keys. Each key stores
// absolute vertex positions; the displacement a key applies to a vertex is
// its position minus the basis position at the same index. Vertex identity
// is the index into the basis slice and is stable across all keys.
package shapekey

import (
	"errors"
	"fmt"

	"github.com/Faultbox/shapemirror/pkg/geom"
)

// ErrNoBasis reports a mesh without rest-pose geometry. Every mirroring
// operation requires a basis.
var ErrNoBasis = errors.New("mesh has no basis geometry")

// Key is one named deformation: absolute vertex positions plus the blend
// weight the host would apply.
type Key struct {
	Name   string
	Value  float64
	Points []geom.Vec3
}

// Mesh is a vertex set with shape keys and named vertex groups.
type Mesh struct {
	Name   string
	Basis  []geom.Vec3
	Keys   []*Key
	Groups map[string][]int
}

// VertexCount returns the number of vertices in the basis.
func (m *Mesh) VertexCount() int {
	return len(m.Basis)
}

// Validate checks the hard preconditions for any mirroring operation:
// a non-empty basis and every key covering exactly the basis vertices.
func (m *Mesh) Validate() error {
	if len(m.Basis) == 0 {
		return ErrNoBasis
	}
	for _, k := range m.Keys {
		if len(k.Points) != len(m.Basis) {
			return fmt.Errorf("key %q has %d points, mesh has %d vertices",
				k.Name, len(k.Points), len(m.Basis))
		}
	}
	return nil
}

// Key returns the key with the given name, or nil.
func (m *Mesh) Key(name string) *Key {
	for _, k := range m.Keys {
		if k.Name == name {
			return k
		}
	}
	return nil
}

// HasKey reports whether a key with the given name exists.
func (m *Mesh) HasKey(name string) bool {
	return m.Key(name) != nil
}

// KeyNames returns the key names in order.
func (m *Mesh) KeyNames() []string {
	names := make([]string, len(m.Keys))
	for i, k := range m.Keys {
		names[i] = k.Name
	}
	return names
}

// AddKeyFromBasis appends a new key whose positions copy the basis, so it
// starts with zero displacement everywhere. The name must be unused.
func (m *Mesh) AddKeyFromBasis(name string) (*Key, error) {
	if len(m.Basis) == 0 {
		return nil, ErrNoBasis
	}
	if m.HasKey(name) {
		return nil, fmt.Errorf("key %q already exists", name)
	}
	k := &Key{Name: name, Points: make([]geom.Vec3, len(m.Basis))}
	copy(k.Points, m.Basis)
	m.Keys = append(m.Keys, k)
	return k, nil
}

// Displacement returns the offset key k applies to vertex i relative to the
// basis.
func (m *Mesh) Displacement(k *Key, i int) geom.Vec3 {
	return k.Points[i].Sub(m.Basis[i])
}

// ResetVertices restores the listed vertices to their basis positions in the
// named keys. An empty keyNames slice addresses every key. It returns the
// number of keys touched.
func (m *Mesh) ResetVertices(keyNames []string, verts []int) int {
	keys := m.Keys
	if len(keyNames) > 0 {
		keys = keys[:0:0]
		for _, name := range keyNames {
			if k := m.Key(name); k != nil {
				keys = append(keys, k)
			}
		}
	}
	for _, k := range keys {
		for _, v := range verts {
			if v >= 0 && v < len(k.Points) && v < len(m.Basis) {
				k.Points[v] = m.Basis[v]
			}
		}
	}
	return len(keys)
}

// TagGroup replaces the named vertex group with the given indices, removing
// the group entirely when verts is empty.
func (m *Mesh) TagGroup(name string, verts []int) {
	if len(verts) == 0 {
		delete(m.Groups, name)
		return
	}
	if m.Groups == nil {
		m.Groups = make(map[string][]int)
	}
	group := make([]int, len(verts))
	copy(group, verts)
	m.Groups[name] = group
}
