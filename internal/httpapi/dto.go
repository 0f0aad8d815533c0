package httpapi

import (
	"github.com/solarlab/rowland-optics/model"
)

// Wire shapes for the read-only model API. Lengths are metres and the
// transform is the row-major 4×4 homogeneous matrix, so clients can
// consume surfaces without knowing the composition chain that produced
// them.

type surfaceDTO struct {
	Name string `json:"name"`

	Sag      *sagDTO      `json:"sag,omitempty"`
	Aperture *apertureDTO `json:"aperture,omitempty"`
	Mech     *apertureDTO `json:"aperture_mechanical,omitempty"`
	Rulings  *rulingsDTO  `json:"rulings,omitempty"`
	Sensor   *sensorDTO   `json:"sensor,omitempty"`

	HasMaterial bool `json:"has_material"`
	IsFieldStop bool `json:"is_field_stop,omitempty"`
	IsPupilStop bool `json:"is_pupil_stop,omitempty"`

	Transform []float64 `json:"transform"`
}

type sagDTO struct {
	Kind    string  `json:"kind"` // spherical or cylindrical
	RadiusM float64 `json:"radius_m"`
}

type apertureDTO struct {
	Kind string `json:"kind"` // circular or rectangular

	// Circular: the radius is dimensionless for sky-plane apertures.
	Radius float64 `json:"radius,omitempty"`

	// Rectangular, metres.
	HalfWidthX float64 `json:"half_width_x_m,omitempty"`
	HalfWidthY float64 `json:"half_width_y_m,omitempty"`
	OffsetX    float64 `json:"offset_x_m,omitempty"`
	OffsetY    float64 `json:"offset_y_m,omitempty"`
}

type rulingsDTO struct {
	PeriodM          float64 `json:"period_m"`
	DiffractionOrder int     `json:"diffraction_order"`
}

type sensorDTO struct {
	Name         string  `json:"name"`
	PixelPitchXM float64 `json:"pixel_pitch_x_m"`
	PixelPitchYM float64 `json:"pixel_pitch_y_m"`
	AxisX        string  `json:"axis_x"`
	AxisY        string  `json:"axis_y"`
	NumX         int     `json:"num_x"`
	NumY         int     `json:"num_y"`
	ExposureMs   float64 `json:"exposure_ms"`
}

func toSurfaceDTO(s model.Surface) surfaceDTO {
	out := surfaceDTO{
		Name:        s.Name,
		HasMaterial: s.Material != nil,
		IsFieldStop: s.IsFieldStop,
		IsPupilStop: s.IsPupilStop,
		Transform:   flatten(s.Transformation),
	}

	out.Sag = toSagDTO(s.Sag)
	out.Aperture = toApertureDTO(s.Aperture)
	out.Mech = toApertureDTO(s.ApertureMechanical)

	if r, ok := s.Rulings.(model.ConstantRulings); ok {
		out.Rulings = &rulingsDTO{
			PeriodM:          float64(r.Period),
			DiffractionOrder: r.DiffractionOrder,
		}
	}

	if s.Sensor != nil {
		out.Sensor = &sensorDTO{
			Name:         s.Sensor.Name,
			PixelPitchXM: float64(s.Sensor.PixelPitch.X),
			PixelPitchYM: float64(s.Sensor.PixelPitch.Y),
			AxisX:        s.Sensor.AxisX,
			AxisY:        s.Sensor.AxisY,
			NumX:         s.Sensor.NumX,
			NumY:         s.Sensor.NumY,
			ExposureMs:   float64(s.Sensor.ExposureTime.Milliseconds()),
		}
	}

	return out
}

func toSagDTO(sag model.Sag) *sagDTO {
	switch v := sag.(type) {
	case model.SphericalSag:
		return &sagDTO{Kind: "spherical", RadiusM: float64(v.Radius)}
	case model.CylindricalSag:
		return &sagDTO{Kind: "cylindrical", RadiusM: float64(v.Radius)}
	default:
		return nil
	}
}

func toApertureDTO(ap model.Aperture) *apertureDTO {
	switch v := ap.(type) {
	case model.CircularAperture:
		return &apertureDTO{Kind: "circular", Radius: v.Radius}
	case model.RectangularAperture:
		return &apertureDTO{
			Kind:       "rectangular",
			HalfWidthX: float64(v.HalfWidth.X),
			HalfWidthY: float64(v.HalfWidth.Y),
			OffsetX:    float64(v.Offset.X),
			OffsetY:    float64(v.Offset.Y),
		}
	default:
		return nil
	}
}

func flatten(t model.Transform) []float64 {
	m := t.Matrix()
	out := make([]float64, 0, 16)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}
