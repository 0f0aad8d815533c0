package model

import (
	"math"

	"gonum.org/v1/gonum/unit"
)

// Sag is a surface-height profile z(x, y) relative to the surface's
// local tangent plane at the vertex.
type Sag interface {
	// Depth returns the sag at the given point on the tangent plane.
	Depth(x, y unit.Length) unit.Length
}

// SphericalSag is a spherical profile with the given radius of
// curvature. A negative radius curves toward −z.
type SphericalSag struct {
	Radius unit.Length
}

func (s SphericalSag) Depth(x, y unit.Length) unit.Length {
	r := float64(s.Radius)
	if r == 0 {
		return 0
	}
	c := 1 / r
	rho2 := float64(x)*float64(x) + float64(y)*float64(y)
	return unit.Length(c * rho2 / (1 + math.Sqrt(1-c*c*rho2)))
}

// CylindricalSag is a cylindrical profile curved along x only, the
// shape of the tall narrow feed optics.
type CylindricalSag struct {
	Radius unit.Length
}

func (s CylindricalSag) Depth(x, _ unit.Length) unit.Length {
	r := float64(s.Radius)
	if r == 0 {
		return 0
	}
	c := 1 / r
	x2 := float64(x) * float64(x)
	return unit.Length(c * x2 / (1 + math.Sqrt(1-c*c*x2)))
}
