package debug

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// CircleSegments is the number of line segments per wireframe circle.
const CircleSegments = 16

// SphereWireframeVertexCount is the number of vertices for a sphere
// wireframe (3 circles x CircleSegments edges x 2 endpoints).
const SphereWireframeVertexCount = 3 * CircleSegments * 2

// BoxWireframeVertexCount is the number of vertices for a box wireframe
// (12 edges x 2 endpoints).
const BoxWireframeVertexCount = 24

// GenerateSphereWireframeVertices creates line vertices approximating a
// sphere as three axis-aligned circles. Format: [x, y, z] per vertex, two
// vertices per line segment.
func GenerateSphereWireframeVertices(center mgl32.Vec3, radius float32) []float32 {
	vertices := make([]float32, 0, SphereWireframeVertexCount*3)

	appendCircle := func(axisA, axisB mgl32.Vec3) {
		for i := 0; i < CircleSegments; i++ {
			a0 := 2 * math32.Pi * float32(i) / CircleSegments
			a1 := 2 * math32.Pi * float32(i+1) / CircleSegments
			p0 := center.Add(axisA.Mul(radius * math32.Cos(a0))).Add(axisB.Mul(radius * math32.Sin(a0)))
			p1 := center.Add(axisA.Mul(radius * math32.Cos(a1))).Add(axisB.Mul(radius * math32.Sin(a1)))
			vertices = append(vertices, p0.X(), p0.Y(), p0.Z(), p1.X(), p1.Y(), p1.Z())
		}
	}

	appendCircle(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}) // XY plane
	appendCircle(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}) // XZ plane
	appendCircle(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}) // YZ plane
	return vertices
}

// boxEdges pairs corner indices into the 12 edges of a box. Corners are
// indexed by their sign bits: bit 0 = +X, bit 1 = +Y, bit 2 = +Z.
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0}, // -Z face
	{4, 5}, {5, 7}, {7, 6}, {6, 4}, // +Z face
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // connecting edges
}

// GenerateBoxWireframeVertices creates line vertices for the 12 edges of an
// oriented box. Format: [x, y, z] per vertex, two vertices per line segment.
func GenerateBoxWireframeVertices(center mgl32.Vec3, rotation mgl32.Quat, halfExtents mgl32.Vec3) []float32 {
	var corners [8]mgl32.Vec3
	for i := range corners {
		c := mgl32.Vec3{
			halfExtents.X() * sign(i&1 != 0),
			halfExtents.Y() * sign(i&2 != 0),
			halfExtents.Z() * sign(i&4 != 0),
		}
		corners[i] = center.Add(rotation.Rotate(c))
	}

	vertices := make([]float32, 0, BoxWireframeVertexCount*3)
	for _, e := range boxEdges {
		p0, p1 := corners[e[0]], corners[e[1]]
		vertices = append(vertices, p0.X(), p0.Y(), p0.Z(), p1.X(), p1.Y(), p1.Z())
	}
	return vertices
}

func sign(positive bool) float32 {
	if positive {
		return 1
	}
	return -1
}

// LineVertices flattens every collected primitive into line-segment
// vertices, format [x, y, z] per vertex, two vertices per segment. Spheres
// become three-circle wireframes and boxes become their edges; colors and
// depth flags are dropped, matching what a plain line-list vertex buffer
// can carry.
func (r *Renderer) LineVertices() []float32 {
	vertices := make([]float32, 0, len(r.lines)*6)
	for _, l := range r.lines {
		vertices = append(vertices, l.From.X(), l.From.Y(), l.From.Z(), l.To.X(), l.To.Y(), l.To.Z())
	}
	for _, s := range r.spheres {
		vertices = append(vertices, GenerateSphereWireframeVertices(s.Center, s.Radius)...)
	}
	for _, b := range r.boxes {
		vertices = append(vertices, GenerateBoxWireframeVertices(b.Center, b.Rotation, b.HalfExtents)...)
	}
	return vertices
}
