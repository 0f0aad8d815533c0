// Command coating-fit calibrates the nominal Al/MgF2 coating design
// against a measured reflectance table and prints the fitted layer
// parameters.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/unit"

	"github.com/solarlab/rowland-optics/coating"
	"github.com/solarlab/rowland-optics/internal/logging"
)

func main() {
	measurementPath := flag.String("measurement", "configs/reflectance_al_mgf2.dat", "Path to a two-column reflectance table (wavelength nm, reflectance percent)")
	incidenceDeg := flag.Float64("incidence-deg", 15, "Incidence angle of the measurement, degrees from normal")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	f, err := os.Open(*measurementPath)
	if err != nil {
		log.Error(ctx, "failed to open measurement table", logging.String("path", *measurementPath), logging.Err(err))
		os.Exit(1)
	}
	defer f.Close()

	incidence := unit.Angle(*incidenceDeg * math.Pi / 180)
	m, err := coating.LoadMeasurementTable(f, incidence)
	if err != nil {
		log.Error(ctx, "failed to parse measurement table", logging.String("path", *measurementPath), logging.Err(err))
		os.Exit(1)
	}
	log.Info(ctx, "loaded measurement table",
		logging.String("path", *measurementPath),
		logging.Int("rows", len(m.Wavelength)),
		logging.Float64("incidence_deg", *incidenceDeg),
	)

	result, err := coating.Fit(coating.Design(), *m)
	if err != nil {
		log.Error(ctx, "coating fit failed", logging.Err(err))
		os.Exit(1)
	}

	log.Info(ctx, "coating fit complete",
		logging.Float64("rms", result.RMS),
		logging.Int("func_evaluations", result.FuncEvaluations),
	)

	fmt.Printf("fitted coating (RMS %.3e, %d evaluations):\n", result.RMS, result.FuncEvaluations)
	for _, l := range result.Coating.Layers {
		fmt.Printf("  %-5s thickness %7.2f nm  interface width %5.2f nm\n",
			l.Chemical,
			float64(l.Thickness)/unit.Nano,
			float64(l.InterfaceWidth)/unit.Nano,
		)
	}
	s := result.Coating.Substrate
	fmt.Printf("  %-5s substrate          interface width %5.2f nm\n",
		s.Chemical, float64(s.InterfaceWidth)/unit.Nano)
}
