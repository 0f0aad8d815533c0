package instrument

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/unit"

	"github.com/solarlab/rowland-optics/coating"
	"github.com/solarlab/rowland-optics/core"
	"github.com/solarlab/rowland-optics/model"
)

// Summary reports what a config load produced; mainly useful for
// logging from main().
type Summary struct {
	ComponentIDs []string
}

// Internal JSON shapes - unexported so the on-disk format can evolve
// independently of the component structs. Engineering units follow the
// drawing conventions: millimetres, degrees, arcseconds, microns.
type instrumentJSON struct {
	RowlandRadiusMm float64 `json:"rowland_radius_mm"`

	SolarDisk     *solarDiskJSON     `json:"solar_disk"`
	FrontAperture *frontApertureJSON `json:"front_aperture"`
	FeedOptic     *feedOpticJSON     `json:"feed_optic"`
	Grating       *gratingJSON       `json:"grating"`
	Detector      *detectorJSON      `json:"detector"`
}

type vec3JSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type vec2JSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type solarDiskJSON struct {
	RadiusArcsec  float64  `json:"radius_arcsec"`
	TranslationMm vec3JSON `json:"translation_mm"`
}

type frontApertureJSON struct {
	TranslationMm vec3JSON `json:"translation_mm"`
}

type poseJSON struct {
	TranslationMm vec3JSON `json:"translation_mm"`
	PitchDeg      float64  `json:"pitch_deg"`
	YawDeg        float64  `json:"yaw_deg"`
	RollDeg       float64  `json:"roll_deg"`
}

type feedOpticJSON struct {
	Name               string   `json:"name"`
	RadiusMm           float64  `json:"radius_mm"`
	ApertureSubtentDeg float64  `json:"aperture_subtent_deg"`
	ApertureHeightMm   float64  `json:"aperture_height_mm"`
	MarginPolishingMm  float64  `json:"margin_polishing_mm"`
	MarginMountingMm   float64  `json:"margin_mounting_mm"`
	AzimuthDeg         float64  `json:"azimuth_deg"`
	Coating            string   `json:"coating"`
	Pose               poseJSON `json:"pose"`
}

type gratingJSON struct {
	Name               string   `json:"name"`
	SagRadiusMm        float64  `json:"sag_radius_mm"`
	WidthClearMm       vec2JSON `json:"width_clear_mm"`
	WidthMechMm        vec2JSON `json:"width_mech_mm"`
	GrooveDensityPerMm float64  `json:"groove_density_per_mm"`
	DiffractionOrder   int      `json:"diffraction_order"`
	AzimuthDeg         float64  `json:"azimuth_deg"`
	Coating            string   `json:"coating"`
	Pose               poseJSON `json:"pose"`
}

type detectorJSON struct {
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer"`
	ModelNumber  string   `json:"model_number"`
	SerialNumber string   `json:"serial_number"`
	PixelPitchUm vec2JSON `json:"pixel_pitch_um"`
	AxisPixel    struct {
		X string `json:"x"`
		Y string `json:"y"`
	} `json:"axis_pixel"`
	NumPixel struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"num_pixel"`
	NumOverscan int      `json:"num_overscan"`
	NumBlank    int      `json:"num_blank"`
	AzimuthDeg  float64  `json:"azimuth_deg"`
	ExposureMs  float64  `json:"exposure_ms"`
	Pose        poseJSON `json:"pose"`
}

func degrees(d float64) unit.Angle  { return unit.Angle(d * math.Pi / 180) }
func millis(v float64) unit.Length  { return unit.Length(v * unit.Milli) }
func microns(v float64) unit.Length { return unit.Length(v * unit.Micro) }

func (v vec3JSON) metres() r3.Vec {
	return r3.Vec{X: v.X * unit.Milli, Y: v.Y * unit.Milli, Z: v.Z * unit.Milli}
}

func (p poseJSON) pose() core.Pose {
	return core.Pose{
		Translation: p.TranslationMm.metres(),
		Pitch:       degrees(p.PitchDeg),
		Yaw:         degrees(p.YawDeg),
		Roll:        degrees(p.RollDeg),
	}
}

func coatingByName(name string) (model.Material, error) {
	switch name {
	case "":
		return nil, nil
	case "al_mgf2":
		return coating.Design(), nil
	default:
		return nil, fmt.Errorf("%w: unknown coating %q", ErrBadComponent, name)
	}
}

// Load reads a JSON instrument configuration, builds the component
// chain, and registers it in source-to-detector order. Structural
// errors and component validation errors both abort the load.
func Load(r io.Reader) (*Instrument, *Summary, error) {
	var cfg instrumentJSON
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, nil, fmt.Errorf("instrument config: decode failed: %w", err)
	}

	ins := New()
	summary := &Summary{}

	add := func(id string, c core.Component, err error) error {
		if err != nil {
			return err
		}
		if err := ins.Add(id, c); err != nil {
			return err
		}
		summary.ComponentIDs = append(summary.ComponentIDs, id)
		return nil
	}

	rowland := millis(cfg.RowlandRadiusMm)

	if sd := cfg.SolarDisk; sd != nil {
		disk := core.NewSolarDisk(core.SolarDisk{
			Radius:      unit.Angle(sd.RadiusArcsec * math.Pi / (180 * 3600)),
			Translation: sd.TranslationMm.metres(),
		})
		if err := add("solar_disk", disk, nil); err != nil {
			return nil, nil, err
		}
	}

	if fa := cfg.FrontAperture; fa != nil {
		plate := core.NewFrontAperture(core.FrontAperture{
			Translation: fa.TranslationMm.metres(),
		})
		if err := add("front_aperture", plate, nil); err != nil {
			return nil, nil, err
		}
	}

	if fo := cfg.FeedOptic; fo != nil {
		material, err := coatingByName(fo.Coating)
		if err != nil {
			return nil, nil, err
		}
		optic, err := core.NewFeedOptic(core.FeedOptic{
			Name:            fo.Name,
			Radius:          millis(fo.RadiusMm),
			ApertureSubtent: degrees(fo.ApertureSubtentDeg),
			ApertureHeight:  millis(fo.ApertureHeightMm),
			MarginPolishing: millis(fo.MarginPolishingMm),
			MarginMounting:  millis(fo.MarginMountingMm),
			Material:        material,
			Mount:           core.RowlandMount{Radius: rowland, Azimuth: degrees(fo.AzimuthDeg)},
			Pose:            fo.Pose.pose(),
		})
		if err := add("feed_optic", optic, err); err != nil {
			return nil, nil, err
		}
	}

	if gr := cfg.Grating; gr != nil {
		material, err := coatingByName(gr.Coating)
		if err != nil {
			return nil, nil, err
		}
		var sag model.Sag
		if gr.SagRadiusMm != 0 {
			sag = model.SphericalSag{Radius: millis(gr.SagRadiusMm)}
		}
		var rulings model.Rulings
		if gr.GrooveDensityPerMm != 0 {
			rulings = model.ConstantRulings{
				Period:           unit.Length(unit.Milli / gr.GrooveDensityPerMm),
				DiffractionOrder: gr.DiffractionOrder,
			}
		}
		grating, err := core.NewGrating(core.Grating{
			Name:       gr.Name,
			Sag:        sag,
			WidthClear: model.Vec2{X: millis(gr.WidthClearMm.X), Y: millis(gr.WidthClearMm.Y)},
			WidthMech:  model.Vec2{X: millis(gr.WidthMechMm.X), Y: millis(gr.WidthMechMm.Y)},
			Material:   material,
			Rulings:    rulings,
			Mount:      core.RowlandMount{Radius: rowland, Azimuth: degrees(gr.AzimuthDeg)},
			Pose:       gr.Pose.pose(),
		})
		if err := add("grating", grating, err); err != nil {
			return nil, nil, err
		}
	}

	if dt := cfg.Detector; dt != nil {
		detector, err := core.NewDetector(core.Detector{
			Name:              dt.Name,
			Manufacturer:      dt.Manufacturer,
			ModelNumber:       dt.ModelNumber,
			SerialNumber:      dt.SerialNumber,
			PixelPitch:        model.Vec2{X: microns(dt.PixelPitchUm.X), Y: microns(dt.PixelPitchUm.Y)},
			AxisX:             dt.AxisPixel.X,
			AxisY:             dt.AxisPixel.Y,
			NumX:              dt.NumPixel.X,
			NumY:              dt.NumPixel.Y,
			NumOverscan:       dt.NumOverscan,
			NumBlank:          dt.NumBlank,
			Mount:             core.RowlandMount{Radius: rowland, Azimuth: degrees(dt.AzimuthDeg)},
			Pose:              dt.Pose.pose(),
			TimedeltaExposure: msToDuration(dt.ExposureMs),
		})
		if err := add("detector", detector, err); err != nil {
			return nil, nil, err
		}
	}

	return ins, summary, nil
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
