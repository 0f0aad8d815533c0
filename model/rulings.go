package model

import "gonum.org/v1/gonum/unit"

// Rulings is a diffraction grating's groove spacing and profile model,
// carried through to the raytracing engine untouched.
type Rulings interface {
	// Spacing returns the local groove spacing at a point on the
	// grating surface.
	Spacing(x, y unit.Length) unit.Length
}

// ConstantRulings are uniformly spaced straight grooves.
type ConstantRulings struct {
	// Period is the centre-to-centre groove spacing.
	Period unit.Length

	// DiffractionOrder selects the order the engine traces.
	DiffractionOrder int
}

func (r ConstantRulings) Spacing(_, _ unit.Length) unit.Length {
	return r.Period
}
