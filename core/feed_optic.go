package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/unit"

	"github.com/solarlab/rowland-optics/model"
)

// FeedOptic is one of the tall narrow cylindrical mirrors that play the
// role of a traditional spectrograph slit: they demagnify the Sun onto
// a single detector pixel. What sits on the Rowland circle is not the
// optic's vertex but the virtual image of the Sun it forms, so the
// placement re-projects from the vertex through the centre of curvature
// to the thin-lens virtual-image distance radius/2.
type FeedOptic struct {
	Name string

	// Radius is the radius of curvature of the cylindrical surface.
	Radius unit.Length

	// ApertureSubtent is the angular width of the clear aperture as
	// seen from the centre of curvature.
	ApertureSubtent unit.Angle

	// ApertureHeight is the physical height of the clear aperture.
	ApertureHeight unit.Length

	// MarginPolishing is the extra height above and below the clear
	// aperture needed to hold the optic during polishing.
	MarginPolishing unit.Length

	// MarginMounting is the length of the optic buried in its mount.
	MarginMounting unit.Length

	// Material is the reflective coating.
	Material model.Material

	Mount RowlandMount
	Pose  Pose
}

// NewFeedOptic validates the mount and fills in the default name.
func NewFeedOptic(f FeedOptic) (*FeedOptic, error) {
	if f.Name == "" {
		f.Name = "feed optic"
	}
	if err := f.Mount.validate(); err != nil {
		return nil, fmt.Errorf("feed optic %q: %w", f.Name, err)
	}
	return &f, nil
}

// Transformation re-projects the optic around its virtual image:
// translate back to the centre of curvature, undo the azimuth so the
// anchoring swing acts about the image rather than the vertex, apply
// the Rowland anchor and pose, then step forward by the virtual-image
// distance radius/2.
func (f *FeedOptic) Transformation() model.Transform {
	toCentre := model.Translation(r3.Vec{Z: -float64(f.Radius)})
	unswing := model.RotationY(-f.Mount.Azimuth)
	placed := model.Compose(f.Mount.Transform(), f.Pose.Transform())
	toImage := model.Translation(r3.Vec{Z: float64(f.Radius) / 2})
	return model.Compose(toImage, placed, unswing, toCentre)
}

func (f *FeedOptic) Surface() model.Surface {
	halfChord := unit.Length(float64(f.Radius) * math.Sin(float64(f.ApertureSubtent)/2))

	return model.Surface{
		Name:     f.Name,
		Sag:      model.CylindricalSag{Radius: f.Radius},
		Material: f.Material,
		Aperture: model.RectangularAperture{
			HalfWidth: model.Vec2{
				X: halfChord,
				Y: f.ApertureHeight / 2,
			},
		},
		// The substrate is nearly the full half-cylinder wide, and the
		// margins inflate it unevenly in y, so the outline is recentred
		// by the margin difference.
		ApertureMechanical: model.RectangularAperture{
			HalfWidth: model.Vec2{
				X: unit.Length(0.99 * float64(f.Radius)),
				Y: f.ApertureHeight/2 + f.MarginMounting + f.MarginPolishing,
			},
			Offset: model.Vec2{
				Y: f.MarginPolishing - f.MarginMounting,
			},
		},
		Transformation: f.Transformation(),
	}
}
