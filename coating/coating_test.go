package coating

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/unit"
)

func nm(v float64) unit.Length  { return unit.Length(v * unit.Nano) }
func degA(d float64) unit.Angle { return unit.Angle(d * math.Pi / 180) }

func scanNm(from, to float64, n int) []unit.Length {
	out := make([]unit.Length, n)
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = nm(from + float64(i)*step)
	}
	return out
}

func TestEfficiencyIsPhysical(t *testing.T) {
	design := Design()
	wl := scanNm(120, 600, 49)

	refl, err := design.Efficiency(wl, degA(15))
	if err != nil {
		t.Fatalf("Efficiency: %v", err)
	}
	if len(refl) != len(wl) {
		t.Fatalf("got %d reflectance values for %d wavelengths", len(refl), len(wl))
	}
	for i, r := range refl {
		if r < 0 || r > 1+1e-9 {
			t.Errorf("reflectance[%d] = %v at %v nm, want within [0, 1]", i, r, float64(wl[i])/unit.Nano)
		}
	}
}

func TestEfficiencyIsDeterministic(t *testing.T) {
	design := Design()
	wl := scanNm(150, 400, 11)

	a, err := design.Efficiency(wl, degA(15))
	if err != nil {
		t.Fatalf("Efficiency: %v", err)
	}
	b, err := design.Efficiency(wl, degA(15))
	if err != nil {
		t.Fatalf("Efficiency: %v", err)
	}
	if !floats.Equal(a, b) {
		t.Fatalf("reflectance differs between identical calls: %v vs %v", a, b)
	}
}

func TestRougherInterfacesReflectLess(t *testing.T) {
	smooth := Design()
	rough := Design()
	for i := range rough.Layers {
		rough.Layers[i].InterfaceWidth = nm(8)
	}
	rough.Substrate.InterfaceWidth = nm(8)

	wl := scanNm(120, 600, 13)
	rs, err := smooth.Efficiency(wl, degA(15))
	if err != nil {
		t.Fatalf("Efficiency(smooth): %v", err)
	}
	rr, err := rough.Efficiency(wl, degA(15))
	if err != nil {
		t.Fatalf("Efficiency(rough): %v", err)
	}
	for i := range rs {
		if rr[i] >= rs[i] {
			t.Errorf("at %v nm rough coating reflects %v >= smooth %v", float64(wl[i])/unit.Nano, rr[i], rs[i])
		}
	}
}

func TestEfficiencyRejectsNegativeThickness(t *testing.T) {
	bad := Design()
	bad.Layers[0].Thickness = nm(-5)

	if _, err := bad.Efficiency(scanNm(120, 600, 3), degA(15)); !errors.Is(err, ErrRange) {
		t.Errorf("err = %v, want ErrRange", err)
	}
}

func TestEfficiencyRejectsUnknownChemical(t *testing.T) {
	bad := Design()
	bad.Layers[0].Chemical = "unobtainium"

	if _, err := bad.Efficiency(scanNm(120, 600, 3), degA(15)); !errors.Is(err, ErrInput) {
		t.Errorf("err = %v, want ErrInput", err)
	}
}
