package ik

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/ikrig/internal/engine/debug"
	"github.com/Faultbox/ikrig/internal/engine/scene"
	"github.com/Faultbox/ikrig/internal/logger"
)

// Reference directions in the rig root's local frame. Solver direction
// parameters (bend hints, up axes) are expressed relative to these and
// rotated into world space by the root's rotation each solve.
var (
	Forward = mgl32.Vec3{0, 0, 1}
	Up      = mgl32.Vec3{0, 1, 0}
)

var (
	ErrBoneNotFound   = errors.New("bone node not found")
	ErrTargetNotFound = errors.New("target node not found")
	ErrTooFewBones    = errors.New("too few bones in chain")
)

// Settings are the global per-solve options shared by every component of a
// rig.
type Settings struct {
	// ContinuousRotation derives bone rotations from the previous frame
	// instead of the rest pose, trading idempotence for smoothness on
	// fast-moving targets.
	ContinuousRotation bool

	// Tolerance is the end-to-target distance at which iterative chains
	// stop refining.
	Tolerance float32

	// MaxIterations caps iterative chain passes so a solve is always
	// bounded time.
	MaxIterations int
}

// DefaultSettings returns the solver settings used when the host does not
// override them.
func DefaultSettings() Settings {
	return Settings{
		Tolerance:     0.001,
		MaxIterations: 10,
	}
}

// Component is one per-effector solver strategy. A rig drives each
// component once per frame: Initialize binds named bones into the shared
// node cache, NotifyPositionsReady bakes chain lengths once all components
// hold their nodes, Solve runs the pull/solve/push cycle, and
// DrawDebugGeometry issues read-only visualization primitives after a
// solve.
type Component interface {
	Initialize(cache NodeCache) error
	NotifyPositionsReady()
	Solve(settings Settings)
	DrawDebugGeometry(r *debug.Renderer, depthTest bool)
}

// Root is the scene entity a rig hangs off: it resolves bone names among
// its descendants and its rotation defines the frame for direction
// parameters.
type Root interface {
	scene.Transform
	scene.Resolver
}

// boundBone pairs a scene bone with its solving node, in bind order.
type boundBone struct {
	handle scene.Transform
	node   *Node
}

// solverBase carries the bone bindings and the pull/push halves of the
// per-frame protocol shared by every solver component.
type solverBase struct {
	root  Root
	bones []boundBone
}

// reset drops all bindings before a re-initialization.
func (b *solverBase) reset() {
	b.bones = b.bones[:0]
}

// addSolverNode resolves a bone by name and binds its cached solving node.
// Unresolvable names fail the whole initialization and are logged once.
func (b *solverBase) addSolverNode(cache NodeCache, name string) (*Node, error) {
	handle, ok := b.root.FindChild(name)
	if !ok {
		logger.Error("bone node not found", zap.String("bone", name))
		return nil, fmt.Errorf("bind %q: %w", name, ErrBoneNotFound)
	}
	node := cache.Get(handle)
	b.bones = append(b.bones, boundBone{handle: handle, node: node})
	return node, nil
}

// addTargetNode resolves a target by name and registers it in the cache
// without binding it: targets are read fresh from the scene each solve, so
// one component chasing a target another component just moved sees the
// newest position.
func (b *solverBase) addTargetNode(cache NodeCache, name string) (scene.Transform, error) {
	handle, ok := b.root.FindChild(name)
	if !ok {
		logger.Error("target node not found", zap.String("target", name))
		return nil, fmt.Errorf("bind %q: %w", name, ErrTargetNotFound)
	}
	cache.Get(handle)
	return handle, nil
}

// pullTransforms copies the scene's world transforms into the bound nodes
// and snapshots them as the previous transform, clearing dirty flags.
func (b *solverBase) pullTransforms() {
	for _, bone := range b.bones {
		bone.node.Position = bone.handle.WorldPosition()
		bone.node.Rotation = bone.handle.WorldRotation()
		bone.node.StorePreviousTransform()
	}
}

// pushTransforms writes solved transforms back to the scene, only for the
// attributes a solver actually marked dirty, in bind order.
func (b *solverBase) pushTransforms() {
	for _, bone := range b.bones {
		if bone.node.PositionDirty() {
			bone.handle.SetWorldPosition(bone.node.Position)
		}
		if bone.node.RotationDirty() {
			bone.handle.SetWorldRotation(bone.node.Rotation)
		}
	}
}

// worldDirection rotates a root-local direction parameter into world space.
func (b *solverBase) worldDirection(dir mgl32.Vec3) mgl32.Vec3 {
	return b.root.WorldRotation().Rotate(dir)
}
