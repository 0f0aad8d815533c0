package model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/unit"
)

const tol = 1e-12

func vecsClose(t *testing.T, got, want r3.Vec, eps float64) {
	t.Helper()
	if math.Abs(got.X-want.X) > eps || math.Abs(got.Y-want.Y) > eps || math.Abs(got.Z-want.Z) > eps {
		t.Fatalf("point mismatch: got %+v, want %+v", got, want)
	}
}

func TestIdentityLeavesPointsAlone(t *testing.T) {
	p := r3.Vec{X: 1.5, Y: -2, Z: 7}
	vecsClose(t, Identity().Apply(p), p, 0)
}

func TestRotationY_QuarterTurn(t *testing.T) {
	// +90° about y carries +z onto +x.
	rot := RotationY(unit.Angle(math.Pi / 2))
	got := rot.Apply(r3.Vec{Z: 1})
	vecsClose(t, got, r3.Vec{X: 1}, tol)
}

func TestComposeOrderIsRightToLeft(t *testing.T) {
	// Translate along z, then rotate about y: the rotation must act on
	// the already-translated point. This is the Rowland anchoring order.
	rotate := RotationY(unit.Angle(math.Pi / 2))
	translate := Translation(r3.Vec{Z: 2})

	anchored := Compose(rotate, translate).Apply(r3.Vec{})
	vecsClose(t, anchored, r3.Vec{X: 2}, tol)

	// The opposite order keeps the point on the z axis.
	swapped := Compose(translate, rotate).Apply(r3.Vec{})
	vecsClose(t, swapped, r3.Vec{Z: 2}, tol)
}

func TestInverseRoundTrips(t *testing.T) {
	tr := Compose(
		RotationX(unit.Angle(0.3)),
		RotationY(unit.Angle(-1.1)),
		RotationZ(unit.Angle(2.4)),
		Translation(r3.Vec{X: 1, Y: -2, Z: 3}),
	)
	p := r3.Vec{X: 0.25, Y: 4, Z: -1.75}
	vecsClose(t, tr.Inverse().Apply(tr.Apply(p)), p, 1e-9)
}

func TestAzimuthEquivalentModulo360(t *testing.T) {
	p := r3.Vec{X: 3, Y: 1, Z: 2}
	a := RotationY(unit.Angle(10 * math.Pi / 180)).Apply(p)
	b := RotationY(unit.Angle(370 * math.Pi / 180)).Apply(p)
	vecsClose(t, a, b, 1e-9)
}

func TestApplyAllMatchesApply(t *testing.T) {
	tr := Compose(RotationZ(unit.Angle(0.7)), Translation(r3.Vec{Y: 5}))
	pts := []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}, {X: -2, Y: 3, Z: 0.5}}
	out := tr.ApplyAll(pts)
	if len(out) != len(pts) {
		t.Fatalf("ApplyAll returned %d points, want %d", len(out), len(pts))
	}
	for i := range pts {
		vecsClose(t, out[i], tr.Apply(pts[i]), 0)
	}
}

func TestMatrixAgreesWithApply(t *testing.T) {
	tr := Compose(RotationY(unit.Angle(0.5)), Translation(r3.Vec{X: 1, Z: -4}))
	m := tr.Matrix()

	p := r3.Vec{X: 2, Y: -3, Z: 1}
	want := tr.Apply(p)

	hom := []float64{p.X, p.Y, p.Z, 1}
	var got [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			got[i] += m.At(i, j) * hom[j]
		}
	}
	vecsClose(t, r3.Vec{X: got[0], Y: got[1], Z: got[2]}, want, tol)

	for j := 0; j < 3; j++ {
		if m.At(3, j) != 0 {
			t.Errorf("bottom row element (3,%d) = %v, want 0", j, m.At(3, j))
		}
	}
	if m.At(3, 3) != 1 {
		t.Errorf("bottom-right element = %v, want 1", m.At(3, 3))
	}
}
