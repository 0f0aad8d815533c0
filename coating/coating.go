// Package coating models the multilayer mirror coatings used by the
// feed optics and grating, and calibrates their as-built layer
// parameters against measured reflectance.
package coating

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/unit"
)

var (
	// ErrRange reports a physically-invalid coating parameter, such as
	// a negative layer thickness.
	ErrRange = errors.New("coating parameter outside physical range")

	// ErrInput reports malformed or empty measurement data.
	ErrInput = errors.New("invalid measurement input")

	// ErrOptimization reports a fit that did not converge within the
	// optimizer's own criteria.
	ErrOptimization = errors.New("coating fit did not converge")
)

// Layer is one material sheet in a coating stack.
type Layer struct {
	// Chemical identifies the layer material, e.g. "MgF2" or "Al".
	Chemical string

	Thickness unit.Length

	// InterfaceWidth is the roughness width of the layer's upper
	// interface.
	InterfaceWidth unit.Length
}

// MultilayerMirror is an ordered stack of layers (first layer outermost)
// on a thick substrate. It implements model.Material.
type MultilayerMirror struct {
	Layers    []Layer
	Substrate Layer
}

// refractiveIndex holds coarse, dispersion-free complex indices
// (n − ik) for the chemicals the designs use. Sufficient for
// calibrating layer thicknesses against relative reflectance; not a
// substitute for tabulated optical constants.
var refractiveIndex = map[string]complex128{
	"MgF2": complex(1.40, -0.003),
	"Al":   complex(0.96, -6.4),
	"SiO2": complex(1.46, 0),
	"Si":   complex(4.15, -0.05),
	"Au":   complex(0.40, -2.8),
}

func (m MultilayerMirror) validate() error {
	check := func(l Layer) error {
		if l.Thickness < 0 {
			return fmt.Errorf("%w: layer %q thickness %v m is negative", ErrRange, l.Chemical, float64(l.Thickness))
		}
		if l.InterfaceWidth < 0 {
			return fmt.Errorf("%w: layer %q interface width %v m is negative", ErrRange, l.Chemical, float64(l.InterfaceWidth))
		}
		if _, ok := refractiveIndex[l.Chemical]; !ok {
			return fmt.Errorf("%w: no optical constants for chemical %q", ErrInput, l.Chemical)
		}
		return nil
	}
	for _, l := range m.Layers {
		if err := check(l); err != nil {
			return err
		}
	}
	return check(m.Substrate)
}

// Efficiency returns the unpolarized power reflectance of the stack at
// every wavelength for the given incidence angle (measured from the
// surface normal). The whole wavelength array is evaluated in one call.
func (m MultilayerMirror) Efficiency(wavelength []unit.Length, incidence unit.Angle) ([]float64, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	// Aggregate roughness over all interfaces for the intensity
	// Debye-Waller damping factor.
	var sigma2 float64
	for _, l := range m.Layers {
		sigma2 += float64(l.InterfaceWidth) * float64(l.InterfaceWidth)
	}
	sigma2 += float64(m.Substrate.InterfaceWidth) * float64(m.Substrate.InterfaceWidth)

	theta0 := float64(incidence)
	cos0 := math.Cos(theta0)

	out := make([]float64, len(wavelength))
	for i, wl := range wavelength {
		lambda := float64(wl)
		if lambda <= 0 {
			return nil, fmt.Errorf("%w: wavelength %v m", ErrRange, lambda)
		}
		r := m.reflectance(lambda, theta0)
		q := 4 * math.Pi * cos0 / lambda
		out[i] = r * math.Exp(-q*q*sigma2)
	}
	return out, nil
}

// reflectance evaluates the stack's smooth-interface unpolarized power
// reflectance at a single wavelength using the thin-film
// characteristic-matrix method.
func (m MultilayerMirror) reflectance(lambda, theta0 float64) float64 {
	n0 := complex(1, 0) // vacuum ambient
	sin0 := complex(math.Sin(theta0), 0)
	k0 := 2 * math.Pi / lambda

	// Snell: cosθ inside a medium of index n.
	cosIn := func(n complex128) complex128 {
		s := n0 * sin0 / n
		return cmplx.Sqrt(1 - s*s)
	}

	nSub := refractiveIndex[m.Substrate.Chemical]
	cos0c := cmplx.Cos(complex(theta0, 0))

	rPol := func(sPol bool) complex128 {
		admittance := func(n complex128) complex128 {
			c := cosIn(n)
			if sPol {
				return n * c
			}
			return n / c
		}

		// Field amplitudes at the substrate, propagated up through the
		// stack from the innermost layer to the outermost.
		b := complex(1, 0)
		c := admittance(nSub)
		for j := len(m.Layers) - 1; j >= 0; j-- {
			l := m.Layers[j]
			n := refractiveIndex[l.Chemical]
			q := admittance(n)
			delta := complex(k0*float64(l.Thickness), 0) * n * cosIn(n)
			cd, sd := cmplx.Cos(delta), cmplx.Sin(delta)
			b, c = b*cd+1i*c*sd/q, 1i*q*b*sd+c*cd
		}

		q0 := n0 * cos0c
		if !sPol {
			q0 = n0 / cos0c
		}
		return (q0*b - c) / (q0*b + c)
	}

	rs := rPol(true)
	rp := rPol(false)
	rs2 := real(rs)*real(rs) + imag(rs)*imag(rs)
	rp2 := real(rp)*real(rp) + imag(rp)*imag(rp)
	return (rs2 + rp2) / 2
}
