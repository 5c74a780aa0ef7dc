// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Color is an RGBA color with components in [0, 1].
type Color [4]float32

// Colors used by the IK debug overlay: yellow for bones and joints, green
// for targets and direction hints.
var (
	Yellow = Color{1, 1, 0, 1}
	Green  = Color{0, 1, 0, 1}
	Red    = Color{1, 0, 0, 1}
	White  = Color{1, 1, 1, 1}
)

// Line is a world-space line segment.
type Line struct {
	From, To  mgl32.Vec3
	Color     Color
	DepthTest bool
}

// Sphere is a world-space sphere, drawn as a wireframe.
type Sphere struct {
	Center    mgl32.Vec3
	Radius    float32
	Color     Color
	DepthTest bool
}

// Box is an oriented box, drawn as its 12 edges.
type Box struct {
	Center      mgl32.Vec3
	Rotation    mgl32.Quat
	HalfExtents mgl32.Vec3
	Color       Color
	DepthTest   bool
}

// Renderer collects debug primitives for one frame. It performs no drawing
// itself; a graphics backend consumes the primitive lists, or the flattened
// line vertices, after the solvers finish.
type Renderer struct {
	lines   []Line
	spheres []Sphere
	boxes   []Box
}

// NewRenderer creates an empty primitive collector.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// AddLine records a line segment from one world position to another.
func (r *Renderer) AddLine(from, to mgl32.Vec3, color Color, depthTest bool) {
	r.lines = append(r.lines, Line{From: from, To: to, Color: color, DepthTest: depthTest})
}

// AddSphere records a wireframe sphere.
func (r *Renderer) AddSphere(center mgl32.Vec3, radius float32, color Color, depthTest bool) {
	r.spheres = append(r.spheres, Sphere{Center: center, Radius: radius, Color: color, DepthTest: depthTest})
}

// AddOrientedBox records a rotated box by center and half extents.
func (r *Renderer) AddOrientedBox(center mgl32.Vec3, rotation mgl32.Quat, halfExtents mgl32.Vec3, color Color, depthTest bool) {
	r.boxes = append(r.boxes, Box{Center: center, Rotation: rotation, HalfExtents: halfExtents, Color: color, DepthTest: depthTest})
}

// Lines returns the collected line segments.
func (r *Renderer) Lines() []Line { return r.lines }

// Spheres returns the collected spheres.
func (r *Renderer) Spheres() []Sphere { return r.spheres }

// Boxes returns the collected boxes.
func (r *Renderer) Boxes() []Box { return r.boxes }

// Empty reports whether nothing has been collected since the last Clear.
func (r *Renderer) Empty() bool {
	return len(r.lines) == 0 && len(r.spheres) == 0 && len(r.boxes) == 0
}

// Clear drops all collected primitives, keeping capacity for the next frame.
func (r *Renderer) Clear() {
	r.lines = r.lines[:0]
	r.spheres = r.spheres[:0]
	r.boxes = r.boxes[:0]
}
