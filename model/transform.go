package model

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/unit"
)

// Transform is a rigid affine map q = R·p + t in the instrument frame.
// Rot is the 3×3 rotation part (row-major) and Trans the translation
// applied after it. All constructors in this package produce proper
// rotations, and Compose preserves that invariant, so Inverse may use
// the transpose of Rot.
type Transform struct {
	Rot   [3][3]float64
	Trans r3.Vec
}

// Identity returns the transform that maps every point to itself.
func Identity() Transform {
	return Transform{Rot: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Translation returns a pure translation by t (metres).
func Translation(t r3.Vec) Transform {
	out := Identity()
	out.Trans = t
	return out
}

// RotationX returns a right-handed rotation about the x axis.
func RotationX(a unit.Angle) Transform {
	c, s := math.Cos(float64(a)), math.Sin(float64(a))
	return Transform{Rot: [3][3]float64{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	}}
}

// RotationY returns a right-handed rotation about the y axis.
func RotationY(a unit.Angle) Transform {
	c, s := math.Cos(float64(a)), math.Sin(float64(a))
	return Transform{Rot: [3][3]float64{
		{c, 0, s},
		{0, 1, 0},
		{-s, 0, c},
	}}
}

// RotationZ returns a right-handed rotation about the z axis.
func RotationZ(a unit.Angle) Transform {
	c, s := math.Cos(float64(a)), math.Sin(float64(a))
	return Transform{Rot: [3][3]float64{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}}
}

// Apply maps the point p through the transform.
func (t Transform) Apply(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: t.Rot[0][0]*p.X + t.Rot[0][1]*p.Y + t.Rot[0][2]*p.Z + t.Trans.X,
		Y: t.Rot[1][0]*p.X + t.Rot[1][1]*p.Y + t.Rot[1][2]*p.Z + t.Trans.Y,
		Z: t.Rot[2][0]*p.X + t.Rot[2][1]*p.Y + t.Rot[2][2]*p.Z + t.Trans.Z,
	}
}

// ApplyAll maps a batch of points through the transform element-wise.
func (t Transform) ApplyAll(ps []r3.Vec) []r3.Vec {
	out := make([]r3.Vec, len(ps))
	for i, p := range ps {
		out[i] = t.Apply(p)
	}
	return out
}

// ComposeWith returns the function composition t ∘ u: u is applied
// first, then t.
func (t Transform) ComposeWith(u Transform) Transform {
	var out Transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Rot[i][j] = t.Rot[i][0]*u.Rot[0][j] + t.Rot[i][1]*u.Rot[1][j] + t.Rot[i][2]*u.Rot[2][j]
		}
	}
	out.Trans = t.Apply(u.Trans)
	return out
}

// Compose folds the given transforms right-to-left: the last argument
// is applied first. Compose() is the identity.
func Compose(ts ...Transform) Transform {
	out := Identity()
	for _, t := range ts {
		out = out.ComposeWith(t)
	}
	return out
}

// Inverse returns the transform u with u ∘ t = identity.
func (t Transform) Inverse() Transform {
	var out Transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Rot[i][j] = t.Rot[j][i]
		}
	}
	out.Trans = r3.Scale(-1, r3.Vec{
		X: out.Rot[0][0]*t.Trans.X + out.Rot[0][1]*t.Trans.Y + out.Rot[0][2]*t.Trans.Z,
		Y: out.Rot[1][0]*t.Trans.X + out.Rot[1][1]*t.Trans.Y + out.Rot[1][2]*t.Trans.Z,
		Z: out.Rot[2][0]*t.Trans.X + out.Rot[2][1]*t.Trans.Y + out.Rot[2][2]*t.Trans.Z,
	})
	return out
}

// Matrix returns the 4×4 homogeneous form of the transform for
// consumers that want a single matrix per surface.
func (t Transform) Matrix() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		t.Rot[0][0], t.Rot[0][1], t.Rot[0][2], t.Trans.X,
		t.Rot[1][0], t.Rot[1][1], t.Rot[1][2], t.Trans.Y,
		t.Rot[2][0], t.Rot[2][1], t.Rot[2][2], t.Trans.Z,
		0, 0, 0, 1,
	})
}
