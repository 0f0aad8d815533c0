package core

import (
	"fmt"

	"github.com/solarlab/rowland-optics/model"
)

// Grating is the concave diffraction grating, the system's pupil stop.
// Sag, material, and rulings are caller-supplied and may each be nil;
// the grating carries them through to the surface untouched.
type Grating struct {
	Name string

	// Sag is the substrate profile, typically spherical with radius
	// −2·rowlandRadius.
	Sag model.Sag

	// WidthClear and WidthMech are the full height and width of the
	// clear aperture and of the substrate.
	WidthClear model.Vec2
	WidthMech  model.Vec2

	// Material is the reflective coating.
	Material model.Material

	// Rulings is the groove spacing and profile model.
	Rulings model.Rulings

	Mount RowlandMount
	Pose  Pose
}

// NewGrating validates the mount and fills in the default name.
func NewGrating(g Grating) (*Grating, error) {
	if g.Name == "" {
		g.Name = "grating"
	}
	if err := g.Mount.validate(); err != nil {
		return nil, fmt.Errorf("grating %q: %w", g.Name, err)
	}
	return &g, nil
}

func (g *Grating) Transformation() model.Transform {
	return model.Compose(g.Mount.Transform(), g.Pose.Transform())
}

func (g *Grating) Surface() model.Surface {
	return model.Surface{
		Name:     g.Name,
		Sag:      g.Sag,
		Material: g.Material,
		Aperture: model.RectangularAperture{
			HalfWidth: model.Vec2{X: g.WidthClear.X / 2, Y: g.WidthClear.Y / 2},
		},
		ApertureMechanical: model.RectangularAperture{
			HalfWidth: model.Vec2{X: g.WidthMech.X / 2, Y: g.WidthMech.Y / 2},
		},
		Rulings:        g.Rulings,
		IsPupilStop:    true,
		Transformation: g.Transformation(),
	}
}
