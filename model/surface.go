package model

import "gonum.org/v1/gonum/unit"

// Vec2 is a pair of physical lengths, used for aperture half-widths and
// pixel pitches.
type Vec2 struct {
	X unit.Length
	Y unit.Length
}

// Material is the reflectance physics attached to an optical surface.
// Efficiency evaluates the power reflectance at every wavelength in one
// call for a fixed incidence angle measured from the surface normal.
type Material interface {
	Efficiency(wavelength []unit.Length, incidence unit.Angle) ([]float64, error)
}

// Surface is the positioned, optionally shaped surface descriptor
// handed to the raytracing engine. Absent facets are nil / false; a
// front aperture, for example, is a bare plane with only a name and a
// transformation.
type Surface struct {
	Name string

	// Sag is the surface-height profile; nil means a flat plane.
	Sag Sag

	// Material is the optical coating; nil means no interaction model.
	Material Material

	// Aperture is the clear aperture; ApertureMechanical is the larger
	// substrate outline used for mounting and vignetting analysis.
	Aperture           Aperture
	ApertureMechanical Aperture

	// Rulings describes a diffraction grating's groove model.
	Rulings Rulings

	// Sensor is populated only for imaging detectors.
	Sensor *ImagingSensor

	IsFieldStop bool
	IsPupilStop bool

	Transformation Transform
}
