package core

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/solarlab/rowland-optics/model"
)

// FrontAperture is the entrance aperture plate of the instrument: both
// the first optical element and the mechanical interface to the payload
// structure. It has no shape and no material — it is a bare aperture
// plane at its translation.
type FrontAperture struct {
	Name string

	// Translation is the plate's location relative to the rest of the
	// optical system, in metres.
	Translation r3.Vec
}

// NewFrontAperture fills in the default name and returns the component.
func NewFrontAperture(f FrontAperture) *FrontAperture {
	if f.Name == "" {
		f.Name = "front aperture"
	}
	return &f
}

func (f *FrontAperture) Transformation() model.Transform {
	return model.Translation(f.Translation)
}

func (f *FrontAperture) Surface() model.Surface {
	return model.Surface{
		Name:           f.Name,
		Transformation: f.Transformation(),
	}
}
