package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/unit"

	"github.com/solarlab/rowland-optics/model"
)

// arcsecond in radians.
const arcsec = math.Pi / (180 * 3600)

// AverageSolarAngularRadius is the mean angular radius of the solar
// disk as seen from 1 au, 959.63 arcseconds.
const AverageSolarAngularRadius = unit.Angle(959.63 * arcsec)

// SolarDisk is the nominal scene observed by the spectrograph: the
// whole solar disk, acting as the system's field stop.
type SolarDisk struct {
	Name string

	// Radius is the angular radius of the observed disk. The zero
	// value means unset; NewSolarDisk resolves it to
	// AverageSolarAngularRadius once, at construction.
	Radius unit.Angle

	// Translation is the offset of the disk on the celestial sphere,
	// in metres.
	Translation r3.Vec
}

// NewSolarDisk resolves the default angular radius and name.
func NewSolarDisk(d SolarDisk) *SolarDisk {
	if d.Name == "" {
		d.Name = "solar disk"
	}
	if d.Radius == 0 {
		d.Radius = AverageSolarAngularRadius
	}
	return &d
}

func (d *SolarDisk) Transformation() model.Transform {
	return model.Translation(d.Translation)
}

// Surface bounds the field with a circular stop whose radius is the
// cosine of the angular radius, per the engine's normalized sky-plane
// aperture convention.
func (d *SolarDisk) Surface() model.Surface {
	return model.Surface{
		Name: d.Name,
		Aperture: model.CircularAperture{
			Radius: math.Cos(float64(d.Radius)),
		},
		IsFieldStop:    true,
		Transformation: d.Transformation(),
	}
}
