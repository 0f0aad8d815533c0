package core

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/solarlab/rowland-optics/model"
)

func TestFrontApertureAtOriginIsIdentityPlane(t *testing.T) {
	f := NewFrontAperture(FrontAperture{})

	if got := f.Transformation(); got != model.Identity() {
		t.Errorf("transformation = %+v, want identity", got)
	}

	s := f.Surface()
	if s.Name != "front aperture" {
		t.Errorf("name = %q, want %q", s.Name, "front aperture")
	}
	if s.Sag != nil {
		t.Errorf("front aperture surface has sag %+v, want none", s.Sag)
	}
	if s.Material != nil {
		t.Errorf("front aperture surface has material, want none")
	}
	if s.Aperture != nil || s.ApertureMechanical != nil {
		t.Errorf("front aperture surface has aperture bounds, want none")
	}
	if s.IsFieldStop || s.IsPupilStop {
		t.Errorf("front aperture flagged as a stop")
	}
}

func TestFrontApertureCarriesTranslation(t *testing.T) {
	f := NewFrontAperture(FrontAperture{Translation: r3.Vec{Z: 2}})
	closeTo(t, f.Surface().Transformation.Apply(r3.Vec{}), r3.Vec{Z: 2}, 0)
}
