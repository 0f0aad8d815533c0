package model

// Aperture bounds the region of a surface that interacts with light.
// Implementations are plain data consumed by the raytracing engine.
type Aperture interface {
	isAperture()
}

// CircularAperture is a disk-shaped aperture centred on the surface
// vertex.
//
// Radius is dimensionless: for field stops on the celestial sphere the
// engine uses a normalized sky-plane convention in which the stop
// radius is the cosine of the angular radius of the scene. The formula
// is preserved as-is from the instrument definition; do not generalize
// it to a physical length.
type CircularAperture struct {
	Radius float64
}

func (CircularAperture) isAperture() {}

// RectangularAperture is an axis-aligned rectangular aperture described
// by its half-widths. Offset shifts the aperture relative to the
// surface vertex, which mechanical outlines use when polishing and
// mounting margins inflate the two sides unevenly.
type RectangularAperture struct {
	HalfWidth Vec2
	Offset    Vec2
}

func (RectangularAperture) isAperture() {}
