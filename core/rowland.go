package core

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/unit"

	"github.com/solarlab/rowland-optics/model"
)

// RowlandMount anchors a component to the Rowland circle: the component
// is pushed out to the circle's radius along +z and then swung around
// the circle's normal (y) by the azimuth. The order matters — the
// rotation acts on the already-translated component, so azimuth 0 sits
// on the optic axis and the whole chain shares one circle centre.
//
// Radius 0 degenerates to every component coincident at the centre,
// which is valid. Azimuths outside [0°, 360°) are accepted and are
// equivalent modulo a full turn.
type RowlandMount struct {
	// Radius is the Rowland circle radius. Must be non-negative.
	Radius unit.Length

	// Azimuth is the component's position angle on the circle,
	// relative to the instrument's optic axis.
	Azimuth unit.Angle
}

func (m RowlandMount) validate() error {
	if m.Radius < 0 {
		return fmt.Errorf("%w: rowland radius %v m is negative", ErrRange, float64(m.Radius))
	}
	return nil
}

// Transform returns the anchor-then-orient map for the mount.
func (m RowlandMount) Transform() model.Transform {
	return model.Compose(
		model.RotationY(m.Azimuth),
		model.Translation(r3.Vec{Z: float64(m.Radius)}),
	)
}
