package shapekey

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Faultbox/shapemirror/pkg/geom"
)

// meshDoc is the JSON wire form of a Mesh. Coordinates are [x, y, z] triples
// to keep exported files compact.
type meshDoc struct {
	Name     string           `json:"name,omitempty"`
	Vertices [][3]float64     `json:"vertices"`
	Keys     []keyDoc         `json:"keys,omitempty"`
	Groups   map[string][]int `json:"groups,omitempty"`
}

type keyDoc struct {
	Name   string       `json:"name"`
	Value  float64      `json:"value,omitempty"`
	Points [][3]float64 `json:"points"`
}

func toTriples(points []geom.Vec3) [][3]float64 {
	out := make([][3]float64, len(points))
	for i, p := range points {
		out[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return out
}

func fromTriples(triples [][3]float64) []geom.Vec3 {
	out := make([]geom.Vec3, len(triples))
	for i, t := range triples {
		out[i] = geom.Vec3{X: t[0], Y: t[1], Z: t[2]}
	}
	return out
}

// WriteMesh writes the mesh as an indented JSON document.
func WriteMesh(path string, m *Mesh) error {
	doc := meshDoc{
		Name:     m.Name,
		Vertices: toTriples(m.Basis),
		Groups:   m.Groups,
	}
	for _, k := range m.Keys {
		doc.Keys = append(doc.Keys, keyDoc{
			Name:   k.Name,
			Value:  k.Value,
			Points: toTriples(k.Points),
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadMesh reads a JSON mesh document and validates it.
func ReadMesh(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc meshDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing mesh %s: %w", path, err)
	}

	m := &Mesh{
		Name:   doc.Name,
		Basis:  fromTriples(doc.Vertices),
		Groups: doc.Groups,
	}
	for _, k := range doc.Keys {
		m.Keys = append(m.Keys, &Key{
			Name:   k.Name,
			Value:  k.Value,
			Points: fromTriples(k.Points),
		})
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("mesh %s: %w", path, err)
	}
	return m, nil
}

// SaveValues writes a weight snapshot as a flat name-to-float JSON object.
func SaveValues(path string, vals Values) error {
	data, err := json.MarshalIndent(vals, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadValues reads a weight snapshot written by SaveValues.
func LoadValues(path string) (Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var vals Values
	if err := json.Unmarshal(data, &vals); err != nil {
		return nil, fmt.Errorf("parsing values %s: %w", path, err)
	}
	return vals, nil
}
