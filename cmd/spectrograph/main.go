// Command spectrograph loads an instrument configuration and prints the
// derived surface chain as JSON, one positioned surface per component in
// source-to-detector order.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/solarlab/rowland-optics/instrument"
	"github.com/solarlab/rowland-optics/internal/logging"
)

func main() {
	configPath := flag.String("config", "configs/instrument.json", "Path to a JSON instrument configuration")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	f, err := os.Open(*configPath)
	if err != nil {
		log.Error(ctx, "failed to open instrument config", logging.String("path", *configPath), logging.Err(err))
		os.Exit(1)
	}
	defer f.Close()

	ins, summary, err := instrument.Load(f)
	if err != nil {
		log.Error(ctx, "failed to load instrument", logging.String("path", *configPath), logging.Err(err))
		os.Exit(1)
	}
	log.Info(ctx, "loaded instrument",
		logging.String("path", *configPath),
		logging.Int("components", len(summary.ComponentIDs)),
	)

	type surfaceOut struct {
		Name        string     `json:"name"`
		Anchor      [3]float64 `json:"anchor_m"`
		Transform   []float64  `json:"transform"`
		IsFieldStop bool       `json:"is_field_stop,omitempty"`
		IsPupilStop bool       `json:"is_pupil_stop,omitempty"`
	}

	var out []surfaceOut
	for _, s := range ins.Surfaces() {
		anchor := s.Transformation.Apply(r3.Vec{})
		m := s.Transformation.Matrix()
		flat := make([]float64, 0, 16)
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				flat = append(flat, m.At(i, j))
			}
		}
		out = append(out, surfaceOut{
			Name:        s.Name,
			Anchor:      [3]float64{anchor.X, anchor.Y, anchor.Z},
			Transform:   flat,
			IsFieldStop: s.IsFieldStop,
			IsPupilStop: s.IsPupilStop,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Error(ctx, "failed to encode surfaces", logging.Err(err))
		os.Exit(1)
	}
}
