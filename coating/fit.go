package coating

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/unit"
)

// FitResult is the calibrated coating and the quality of the fit.
type FitResult struct {
	// Coating is the design template with the fitted parameter vector
	// substituted back in. Chemical identities and layer order are
	// unchanged.
	Coating MultilayerMirror

	// RMS is the final root-mean-square residual between modelled and
	// measured reflectance.
	RMS float64

	// FuncEvaluations counts objective evaluations the optimizer used.
	FuncEvaluations int
}

// Fit calibrates a coating design against a fixed-angle reflectance
// measurement. The free parameters are the first two layer thicknesses
// and a common interface-roughness width shared by every interface, all
// constrained non-negative. The design's nominal values seed the
// search; convergence is whatever the bounded minimizer reports.
func Fit(design MultilayerMirror, m Measurement) (*FitResult, error) {
	if len(m.Wavelength) == 0 {
		return nil, fmt.Errorf("%w: empty measurement set", ErrInput)
	}
	if len(m.Wavelength) != len(m.Reflectance) {
		return nil, fmt.Errorf("%w: %d wavelengths but %d reflectance values",
			ErrInput, len(m.Wavelength), len(m.Reflectance))
	}
	if len(design.Layers) < 2 {
		return nil, fmt.Errorf("%w: design has %d layers, fit needs two free thicknesses",
			ErrInput, len(design.Layers))
	}
	if err := design.validate(); err != nil {
		return nil, err
	}

	// Work in nanometres so the simplex steps are well scaled.
	x0 := []float64{
		float64(design.Layers[0].Thickness) / unit.Nano,
		float64(design.Layers[1].Thickness) / unit.Nano,
		float64(design.Layers[0].InterfaceWidth) / unit.Nano,
	}

	apply := func(x []float64) MultilayerMirror {
		out := design
		out.Layers = make([]Layer, len(design.Layers))
		copy(out.Layers, design.Layers)
		out.Layers[0].Thickness = unit.Length(x[0] * unit.Nano)
		out.Layers[1].Thickness = unit.Length(x[1] * unit.Nano)
		width := unit.Length(x[2] * unit.Nano)
		for i := range out.Layers {
			out.Layers[i].InterfaceWidth = width
		}
		out.Substrate.InterfaceWidth = width
		return out
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			for _, v := range x {
				if v < 0 {
					return math.Inf(1)
				}
			}
			modelled, err := apply(x).Efficiency(m.Wavelength, m.Incidence)
			if err != nil {
				return math.Inf(1)
			}
			return rms(modelled, m.Reflectance)
		},
	}

	result, err := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOptimization, err)
	}
	if err := result.Status.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOptimization, err)
	}
	if math.IsInf(result.F, 0) || math.IsNaN(result.F) {
		return nil, fmt.Errorf("%w: objective did not reach a finite value", ErrOptimization)
	}

	return &FitResult{
		Coating:         apply(result.X),
		RMS:             result.F,
		FuncEvaluations: result.Stats.FuncEvaluations,
	}, nil
}

func rms(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(a)))
}
