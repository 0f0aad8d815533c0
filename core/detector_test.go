package core

import (
	"reflect"
	"testing"
	"time"

	"gonum.org/v1/gonum/unit"

	"github.com/solarlab/rowland-optics/model"
)

func testDetector(t *testing.T) *Detector {
	t.Helper()
	d, err := NewDetector(Detector{
		Manufacturer: "MSFC",
		ModelNumber:  "CCD-230",
		SerialNumber: "007",
		PixelPitch:   model.Vec2{X: unit.Length(15 * unit.Micro), Y: unit.Length(15 * unit.Micro)},
		AxisX:        "detector_x",
		AxisY:        "detector_y",
		NumX:         2048,
		NumY:         2048,
		NumOverscan:  2,
		NumBlank:     8,
		Mount:        RowlandMount{Radius: mm(1000), Azimuth: deg(10)},

		Temperature:          unit.Temperature(233),
		GainElectronsPerDN:   2.5,
		ReadoutNoiseDN:       4,
		DarkCurrentPerSec:    12,
		ChargeDiffusion:      unit.Length(2 * unit.Micro),
		TimedeltaTransfer:    40 * time.Millisecond,
		TimedeltaReadout:     1200 * time.Millisecond,
		TimedeltaExposure:    10 * time.Second,
		TimedeltaExposureMin: 100 * time.Millisecond,
		TimedeltaExposureMax: 100 * time.Second,
		BitsADC:              16,
	})
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}
	return d
}

func TestDetectorSurfaceIsSensorOnly(t *testing.T) {
	d := testDetector(t)
	s := d.Surface()

	if s.Sag != nil {
		t.Errorf("detector surface has sag, want none (pixel geometry lives on the sensor)")
	}
	if s.Aperture != nil || s.ApertureMechanical != nil {
		t.Errorf("detector surface has apertures, want none")
	}
	if s.Rulings != nil {
		t.Errorf("detector surface has rulings, want none")
	}
	if s.IsFieldStop || s.IsPupilStop {
		t.Errorf("detector flagged as a stop")
	}

	if s.Sensor == nil {
		t.Fatalf("detector surface has no sensor")
	}
	if s.Sensor.AxisX != "detector_x" || s.Sensor.AxisY != "detector_y" {
		t.Errorf("sensor axes = %q/%q, want detector_x/detector_y", s.Sensor.AxisX, s.Sensor.AxisY)
	}
	if s.Sensor.NumX != 2048 || s.Sensor.NumY != 2048 {
		t.Errorf("sensor pixel counts = %d×%d, want 2048×2048", s.Sensor.NumX, s.Sensor.NumY)
	}
	if s.Sensor.ExposureTime != 10*time.Second {
		t.Errorf("sensor exposure = %v, want 10 s", s.Sensor.ExposureTime)
	}
	if s.Sensor.Transformation != s.Transformation {
		t.Errorf("sensor transformation differs from surface transformation")
	}
}

// The readout-electronics fields ride along on the component but must
// not leak into the surface geometry.
func TestDetectorElectronicsDoNotAffectSurface(t *testing.T) {
	a := testDetector(t)
	b := testDetector(t)
	b.GainElectronsPerDN = 99
	b.ReadoutNoiseDN = 99
	b.DarkCurrentPerSec = 99
	b.Temperature = unit.Temperature(300)
	b.BitsADC = 12

	if !reflect.DeepEqual(a.Surface(), b.Surface()) {
		t.Errorf("changing readout electronics changed the surface")
	}
}
