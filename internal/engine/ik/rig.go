package ik

import (
	"github.com/Faultbox/ikrig/internal/engine/debug"
)

// Rig drives an ordered set of solver components over one skeleton. It owns
// the node cache the components share, so solvers naming the same bone
// converge on one solving state, and it runs the components in registration
// order: solvers that feed others (a spine moving shoulder roots) must be
// registered first.
type Rig struct {
	root       Root
	components []Component
	cache      NodeCache
	settings   Settings

	dirty bool
	valid bool
}

// NewRig creates an empty rig rooted at the given scene entity.
func NewRig(root Root) *Rig {
	return &Rig{
		root:     root,
		settings: DefaultSettings(),
		dirty:    true,
	}
}

// Add registers a component at the end of the solve order.
func (r *Rig) Add(c Component) {
	r.components = append(r.components, c)
	r.dirty = true
}

// Components returns the registered components in solve order.
func (r *Rig) Components() []Component { return r.components }

// Settings returns the rig's solver settings.
func (r *Rig) Settings() Settings { return r.settings }

// SetSettings replaces the rig's solver settings.
func (r *Rig) SetSettings(s Settings) { r.settings = s }

// MarkTopologyDirty schedules a re-initialization before the next solve.
// Call it after renaming, adding, or removing skeleton bones.
func (r *Rig) MarkTopologyDirty() { r.dirty = true }

// Valid reports whether the last initialization bound every component.
func (r *Rig) Valid() bool { return r.valid }

// Initialize rebuilds the shared node cache and binds every component. The
// first component failing to resolve a bone aborts initialization and
// leaves the rig invalid. On success the current scene pose is captured as
// the rest pose and chain lengths are baked from it.
func (r *Rig) Initialize() error {
	r.dirty = false
	r.valid = false
	r.cache = NodeCache{}

	for _, c := range r.components {
		if err := c.Initialize(r.cache); err != nil {
			return err
		}
	}

	for bone, node := range r.cache {
		node.Position = bone.WorldPosition()
		node.Rotation = bone.WorldRotation()
		node.StorePreviousTransform()
		node.UpdateRestPose()
	}
	for _, c := range r.components {
		c.NotifyPositionsReady()
	}

	r.valid = true
	return nil
}

// Solve runs every component once, in order. A dirty rig re-initializes
// first; an invalid rig does nothing until a topology change triggers
// another initialization. Failed initializations were already logged bone
// by bone, so solving stays quiet frame over frame.
func (r *Rig) Solve() {
	if r.dirty {
		_ = r.Initialize()
	}
	if !r.valid {
		return
	}

	for _, c := range r.components {
		c.Solve(r.settings)
	}
}

// DrawDebugGeometry collects every component's debug primitives. Call it
// after Solve; drawing reads node state without mutating it.
func (r *Rig) DrawDebugGeometry(d *debug.Renderer, depthTest bool) {
	for _, c := range r.components {
		c.DrawDebugGeometry(d, depthTest)
	}
}
