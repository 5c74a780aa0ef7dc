package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ikrig/internal/config"
)

// BuildSkeleton constructs a bone hierarchy from its configuration and
// returns the root node. Bones attach to their named parent, or directly to
// the root when they name none. The configuration is validated first, so
// duplicate names, unknown parents, and parent cycles fail the build.
func BuildSkeleton(cfg *config.SkeletonConfig) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rootName := cfg.Name
	if rootName == "" {
		rootName = "root"
	}
	root := NewNode(rootName)

	nodes := make(map[string]*Node, len(cfg.Bones))
	for i := range cfg.Bones {
		b := &cfg.Bones[i]
		node := NewNode(b.Name)
		node.SetLocalPosition(mgl32.Vec3{b.Position[0], b.Position[1], b.Position[2]})
		node.SetLocalRotation(EulerDegrees(b.Rotation[0], b.Rotation[1], b.Rotation[2]))
		nodes[b.Name] = node
	}
	for i := range cfg.Bones {
		b := &cfg.Bones[i]
		parent := root
		if b.Parent != "" {
			parent = nodes[b.Parent]
		}
		parent.AddChild(nodes[b.Name])
	}
	return root, nil
}

// EulerDegrees converts XYZ Euler angles in degrees to a rotation.
func EulerDegrees(x, y, z float32) mgl32.Quat {
	return mgl32.AnglesToQuat(
		mgl32.DegToRad(x),
		mgl32.DegToRad(y),
		mgl32.DegToRad(z),
		mgl32.XYZ,
	)
}
