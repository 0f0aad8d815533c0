package model

import "time"

// ImagingSensor is the geometric description of a pixelated detector
// surface. Readout-electronics behaviour (gain, noise, dark current) is
// modelled by the detector-simulation collaborator, not here.
type ImagingSensor struct {
	Name string

	// PixelPitch is the physical size of one pixel along each axis.
	PixelPitch Vec2

	// AxisX and AxisY name the pixel axes so downstream image arrays
	// can be labelled consistently (e.g. "detector_x", "detector_y").
	AxisX string
	AxisY string

	// NumX and NumY are the pixel counts along each axis.
	NumX int
	NumY int

	ExposureTime time.Duration

	// Material models the light-sensitive layer.
	Material Material

	Transformation Transform
}
