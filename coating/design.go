package coating

import "gonum.org/v1/gonum/unit"

// Design returns the as-designed feed-optic coating: a protective
// magnesium fluoride layer over aluminium on a fused-silica substrate,
// tuned for the vacuum-ultraviolet band.
func Design() MultilayerMirror {
	return MultilayerMirror{
		Layers: []Layer{
			{
				Chemical:       "MgF2",
				Thickness:      unit.Length(25 * unit.Nano),
				InterfaceWidth: unit.Length(2 * unit.Nano),
			},
			{
				Chemical:       "Al",
				Thickness:      unit.Length(50 * unit.Nano),
				InterfaceWidth: unit.Length(2 * unit.Nano),
			},
		},
		Substrate: Layer{
			Chemical:       "SiO2",
			Thickness:      unit.Length(3 * unit.Milli),
			InterfaceWidth: unit.Length(2 * unit.Nano),
		},
	}
}
