package core

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/unit"

	"github.com/solarlab/rowland-optics/model"
)

func TestGratingSurfaceCarriesAllFacets(t *testing.T) {
	sag := model.SphericalSag{Radius: mm(-2000)}
	rulings := model.ConstantRulings{Period: unit.Length(1.0 / 3600 * unit.Milli), DiffractionOrder: 1}
	mirror := fakeMaterial{}

	g, err := NewGrating(Grating{
		Sag:        sag,
		WidthClear: model.Vec2{X: mm(100), Y: mm(20)},
		WidthMech:  model.Vec2{X: mm(110), Y: mm(30)},
		Material:   mirror,
		Rulings:    rulings,
		Mount:      RowlandMount{Radius: mm(1000), Azimuth: deg(175)},
	})
	if err != nil {
		t.Fatalf("NewGrating: %v", err)
	}

	s := g.Surface()
	if s.Sag != model.Sag(sag) {
		t.Errorf("sag not carried through: got %+v", s.Sag)
	}
	if s.Material != model.Material(mirror) {
		t.Errorf("material not carried through")
	}
	if s.Rulings != model.Rulings(rulings) {
		t.Errorf("rulings not carried through: got %+v", s.Rulings)
	}

	clear := s.Aperture.(model.RectangularAperture)
	if clear.HalfWidth.X != mm(50) || clear.HalfWidth.Y != mm(10) {
		t.Errorf("clear half-widths = %+v, want 50×10 mm", clear.HalfWidth)
	}
	mech := s.ApertureMechanical.(model.RectangularAperture)
	if mech.HalfWidth.X != mm(55) || mech.HalfWidth.Y != mm(15) {
		t.Errorf("mechanical half-widths = %+v, want 55×15 mm", mech.HalfWidth)
	}

	if !s.IsPupilStop {
		t.Errorf("grating not flagged as pupil stop")
	}
	if s.IsFieldStop {
		t.Errorf("grating flagged as field stop")
	}
	if s.Sensor != nil {
		t.Errorf("grating surface carries a sensor")
	}
}

func TestGratingSitsOnRowlandCircle(t *testing.T) {
	g, err := NewGrating(Grating{
		Mount: RowlandMount{Radius: mm(1000), Azimuth: deg(175)},
	})
	if err != nil {
		t.Fatalf("NewGrating: %v", err)
	}

	az := float64(deg(175))
	want := r3.Vec{X: math.Sin(az), Z: math.Cos(az)}
	closeTo(t, g.Transformation().Apply(r3.Vec{}), want, 1e-12)
}

// fakeMaterial is a stand-in coating for surface plumbing tests.
type fakeMaterial struct{}

func (fakeMaterial) Efficiency(wavelength []unit.Length, _ unit.Angle) ([]float64, error) {
	out := make([]float64, len(wavelength))
	for i := range out {
		out[i] = 1
	}
	return out, nil
}
