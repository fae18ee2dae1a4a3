package geom

import "fmt"

// Axis identifies the coordinate axis the symmetry plane is perpendicular to.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ParseAxis converts "x", "y" or "z" (case-insensitive) to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return AxisX, fmt.Errorf("invalid axis %q (want x, y or z)", s)
}

func (a Axis) String() string {
	switch a {
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "x"
}

// Component returns the coordinate of v along the axis.
func (a Axis) Component(v Vec3) float64 {
	switch a {
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	}
	return v.X
}

// WithComponent returns v with its coordinate along the axis replaced by c.
func (a Axis) WithComponent(v Vec3, c float64) Vec3 {
	switch a {
	case AxisY:
		v.Y = c
	case AxisZ:
		v.Z = c
	default:
		v.X = c
	}
	return v
}

// Flip returns v with its coordinate along the axis negated. This is the
// reflection across the symmetry plane at axis coordinate 0.
func (a Axis) Flip(v Vec3) Vec3 {
	return a.WithComponent(v, -a.Component(v))
}
