package core

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/unit"

	"github.com/solarlab/rowland-optics/model"
)

// ErrRange reports a physically-invalid engineering parameter, such as
// a negative Rowland radius.
var ErrRange = errors.New("parameter outside physical range")

// Component is any element of the optical chain that can describe
// itself as a positioned surface.
//
// Both methods are pure: nothing is cached, and every call recomputes
// the result from the current field values, so a component can be
// edited and re-read without an invalidation protocol.
type Component interface {
	// Transformation returns the component's net placement in the
	// instrument's 3-D frame.
	Transformation() model.Transform

	// Surface converts the component into a surface descriptor for the
	// raytracing engine.
	Surface() model.Surface
}

// Pose is the local orientation and offset shared by every component:
// a translation followed by roll, yaw, and pitch, in that order.
type Pose struct {
	// Translation is the physical offset from the component's nominal
	// position, in metres.
	Translation r3.Vec

	// Pitch is the rotation about the x axis (the vector tangent to
	// the Rowland circle).
	Pitch unit.Angle

	// Yaw is the rotation about the y axis (the circle's normal).
	Yaw unit.Angle

	// Roll is the rotation about the z axis (the local optic axis).
	Roll unit.Angle
}

// Transform composes the pose into a single map: translation first,
// then roll, yaw, and pitch.
func (p Pose) Transform() model.Transform {
	return model.Compose(
		model.RotationX(p.Pitch),
		model.RotationY(p.Yaw),
		model.RotationZ(p.Roll),
		model.Translation(p.Translation),
	)
}
