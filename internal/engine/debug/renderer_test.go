package debug

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const testEpsilon = 1e-4

func floatNear(got, want float32) bool {
	return math32.Abs(got-want) < testEpsilon
}

func TestRendererCollectAndClear(t *testing.T) {
	r := NewRenderer()
	if !r.Empty() {
		t.Error("fresh renderer not empty")
	}

	r.AddLine(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, Yellow, true)
	r.AddSphere(mgl32.Vec3{0, 1, 0}, 0.5, Green, false)
	r.AddOrientedBox(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}, Red, true)

	if r.Empty() {
		t.Error("renderer empty after collecting primitives")
	}
	if len(r.Lines()) != 1 || len(r.Spheres()) != 1 || len(r.Boxes()) != 1 {
		t.Errorf("collected %d lines, %d spheres, %d boxes, want 1 of each",
			len(r.Lines()), len(r.Spheres()), len(r.Boxes()))
	}

	line := r.Lines()[0]
	if line.To != (mgl32.Vec3{1, 0, 0}) || line.Color != Yellow || !line.DepthTest {
		t.Errorf("line = %+v, want its fields preserved", line)
	}

	r.Clear()
	if !r.Empty() {
		t.Error("renderer not empty after Clear")
	}
}

func TestLineVertices(t *testing.T) {
	r := NewRenderer()
	r.AddLine(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{4, 5, 6}, White, true)

	got := r.LineVertices()
	want := []float32{1, 2, 3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("vertex float count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vertex float %d = %v, want %v", i, got[i], want[i])
		}
	}

	r.AddSphere(mgl32.Vec3{}, 1, White, true)
	r.AddOrientedBox(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}, White, true)

	wantLen := 6 + SphereWireframeVertexCount*3 + BoxWireframeVertexCount*3
	if got := r.LineVertices(); len(got) != wantLen {
		t.Errorf("flattened float count = %d, want %d", len(got), wantLen)
	}
}

func TestGenerateSphereWireframeVertices(t *testing.T) {
	center := mgl32.Vec3{1, 2, 3}
	verts := GenerateSphereWireframeVertices(center, 2)

	if len(verts) != SphereWireframeVertexCount*3 {
		t.Fatalf("float count = %d, want %d", len(verts), SphereWireframeVertexCount*3)
	}
	for i := 0; i < len(verts); i += 3 {
		p := mgl32.Vec3{verts[i], verts[i+1], verts[i+2]}
		if got := p.Sub(center).Len(); !floatNear(got, 2) {
			t.Fatalf("vertex %d at distance %v from the center, want 2", i/3, got)
		}
	}
}

func TestGenerateBoxWireframeVertices(t *testing.T) {
	center := mgl32.Vec3{10, 0, 0}
	half := mgl32.Vec3{1, 2, 3}

	verts := GenerateBoxWireframeVertices(center, mgl32.QuatIdent(), half)
	if len(verts) != BoxWireframeVertexCount*3 {
		t.Fatalf("float count = %d, want %d", len(verts), BoxWireframeVertexCount*3)
	}
	for i := 0; i < len(verts); i += 3 {
		if !floatNear(math32.Abs(verts[i]-10), 1) ||
			!floatNear(math32.Abs(verts[i+1]), 2) ||
			!floatNear(math32.Abs(verts[i+2]), 3) {
			t.Fatalf("vertex %d = (%v, %v, %v), want a corner of the box",
				i/3, verts[i], verts[i+1], verts[i+2])
		}
	}

	// A quarter turn about +Z swaps the X and Y extents.
	rotated := GenerateBoxWireframeVertices(center, mgl32.QuatRotate(math32.Pi/2, mgl32.Vec3{0, 0, 1}), half)
	for i := 0; i < len(rotated); i += 3 {
		if !floatNear(math32.Abs(rotated[i]-10), 2) || !floatNear(math32.Abs(rotated[i+1]), 1) {
			t.Fatalf("rotated vertex %d = (%v, %v, ...), want the X and Y extents swapped",
				i/3, rotated[i], rotated[i+1])
		}
	}
}
