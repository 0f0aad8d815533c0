package core

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/unit"

	"github.com/solarlab/rowland-optics/model"
)

// Detector models the imaging sensor and its camera electronics. Only
// the pixel geometry, exposure time, sensor material, and placement
// affect the surface handed to the raytracing engine; the readout
// fields are carried for the detector-simulation collaborator.
type Detector struct {
	Name         string
	Manufacturer string
	ModelNumber  string
	SerialNumber string

	// PixelPitch is the physical size of one pixel along each axis.
	PixelPitch model.Vec2

	// AxisX and AxisY name the pixel axes of the image arrays.
	AxisX string
	AxisY string

	// NumX and NumY are the pixel counts along each axis.
	NumX int
	NumY int

	// NumOverscan and NumBlank are the per-tap overscan and blank
	// column counts.
	NumOverscan int
	NumBlank    int

	// Material models the light-sensitive layer.
	Material model.Material

	Mount RowlandMount
	Pose  Pose

	// Operating conditions and readout electronics.
	Temperature          unit.Temperature
	GainElectronsPerDN   float64
	ReadoutNoiseDN       float64
	DarkCurrentPerSec    float64
	ChargeDiffusion      unit.Length
	TimedeltaTransfer    time.Duration
	TimedeltaReadout     time.Duration
	TimedeltaExposure    time.Duration
	TimedeltaExposureMin time.Duration
	TimedeltaExposureMax time.Duration
	BitsADC              int
}

// NewDetector validates the mount and fills in the default name.
func NewDetector(d Detector) (*Detector, error) {
	if d.Name == "" {
		d.Name = "detector"
	}
	if err := d.Mount.validate(); err != nil {
		return nil, fmt.Errorf("detector %q: %w", d.Name, err)
	}
	return &d, nil
}

func (d *Detector) Transformation() model.Transform {
	return model.Compose(d.Mount.Transform(), d.Pose.Transform())
}

// Surface describes the detector as an imaging-sensor surface. The
// sensor object owns the pixel geometry, so the surface itself carries
// no sag or aperture.
func (d *Detector) Surface() model.Surface {
	return model.Surface{
		Name: d.Name,
		Sensor: &model.ImagingSensor{
			Name:           d.Name,
			PixelPitch:     d.PixelPitch,
			AxisX:          d.AxisX,
			AxisY:          d.AxisY,
			NumX:           d.NumX,
			NumY:           d.NumY,
			ExposureTime:   d.TimedeltaExposure,
			Material:       d.Material,
			Transformation: d.Transformation(),
		},
		Transformation: d.Transformation(),
	}
}
