package shapekey

// Values is a snapshot of key weights by name. It replaces the host-side
// clipboard: callers copy a snapshot from one mesh and paste it into another
// as an explicit value, with no shared state in between.
type Values map[string]float64

// CopyValues snapshots the weight of every key.
func (m *Mesh) CopyValues() Values {
	vals := make(Values, len(m.Keys))
	for _, k := range m.Keys {
		vals[k.Name] = k.Value
	}
	return vals
}

// CutValues snapshots every key weight and zeroes the originals.
func (m *Mesh) CutValues() Values {
	vals := m.CopyValues()
	for _, k := range m.Keys {
		k.Value = 0
	}
	return vals
}

// PasteValues applies snapshot weights to keys with matching names and
// returns how many keys were set. Names absent from the mesh are ignored.
func (m *Mesh) PasteValues(vals Values) int {
	applied := 0
	for _, k := range m.Keys {
		if v, ok := vals[k.Name]; ok {
			k.Value = v
			applied++
		}
	}
	return applied
}
