package ik

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ikrig/internal/engine/debug"
	"github.com/Faultbox/ikrig/internal/engine/scene"
	"github.com/Faultbox/ikrig/pkg/math"
)

// thighToHeelDistance solves the thigh-heel-toe triangle for the distance
// between thigh and heel, given the thigh-to-toe and toe-to-heel distances
// and the angle at the heel (radians). When no such triangle exists the leg
// falls back to a full stretch capped at maxDistance.
func thighToHeelDistance(thighToToe, toeToHeel, heelAngle, maxDistance float32) float32 {
	sinHeel := math32.Sin(heelAngle)
	if sinHeel < math.Epsilon {
		return min(thighToToe+toeToHeel, maxDistance)
	}

	thighAngle, ok := math.AmbiguousTriangleAngle(thighToToe, toeToHeel, heelAngle)
	if !ok {
		return min(thighToToe+toeToHeel, maxDistance)
	}

	toeAngle := math32.Pi - heelAngle - thighAngle
	distance := thighToToe * math32.Sin(toeAngle) / sinHeel
	return min(distance, maxDistance)
}

// toeToHeelVector places the heel relative to the toe so the thigh-heel-toe
// triangle honors the heel angle (radians), bending around bendNormal.
func toeToHeelVector(thighPosition, toePosition mgl32.Vec3, toeToHeel, heelAngle, maxDistance float32,
	bendNormal mgl32.Vec3) mgl32.Vec3 {

	thighToToe := toePosition.Sub(thighPosition).Len()
	thighToHeel := thighToHeelDistance(thighToToe, toeToHeel, heelAngle, maxDistance)
	toeAngle := math.TriangleAngle(thighToToe, toeToHeel, thighToHeel)

	toeToThigh := math.SafeNormalize(thighPosition.Sub(toePosition))
	rotation := math.AxisAngle(bendNormal, toeAngle)
	return math.SafeNormalize(rotation.Rotate(toeToThigh)).Mul(toeToHeel)
}

// LegSolver reaches a thigh-calf-heel chain toward a toe target while
// planting the heel-toe foot segment naturally: the heel is placed between
// a straight stance honoring a minimum heel angle and a bent stance from
// solving the combined calf-and-foot length, blended by BendWeight.
type LegSolver struct {
	solverBase

	ThighBoneName string
	CalfBoneName  string
	HeelBoneName  string
	ToeBoneName   string
	TargetName    string

	// MinKneeAngle and MaxKneeAngle limit the knee joint, in degrees.
	MinKneeAngle float32
	MaxKneeAngle float32

	// BendWeight blends the heel placement between the straight stance
	// (0) and the bent stance (1).
	BendWeight float32

	// BendDirection hints which way the knee flexes, in the rig root's
	// frame.
	BendDirection mgl32.Vec3

	// MinHeelAngle keeps the heel from collapsing under the toe, in
	// degrees. Negative means "capture from the rest pose on the next
	// solve".
	MinHeelAngle float32

	legChain    TrigonometricChain
	footSegment Segment
	target      scene.Transform
}

// NewLegSolver creates a leg solver over thigh, calf, heel, and toe bones
// with the default knee range, forward bend hint, and a rest-captured heel
// angle.
func NewLegSolver(root Root, thigh, calf, heel, toe, target string) *LegSolver {
	return &LegSolver{
		solverBase:    solverBase{root: root},
		ThighBoneName: thigh,
		CalfBoneName:  calf,
		HeelBoneName:  heel,
		ToeBoneName:   toe,
		TargetName:    target,
		MinKneeAngle:  0,
		MaxKneeAngle:  180,
		BendWeight:    0,
		BendDirection: Forward,
		MinHeelAngle:  -1,
	}
}

// Initialize resolves the target and the four leg bones.
func (s *LegSolver) Initialize(cache NodeCache) error {
	s.reset()

	target, err := s.addTargetNode(cache, s.TargetName)
	if err != nil {
		return err
	}
	s.target = target

	thigh, err := s.addSolverNode(cache, s.ThighBoneName)
	if err != nil {
		return err
	}
	calf, err := s.addSolverNode(cache, s.CalfBoneName)
	if err != nil {
		return err
	}
	heel, err := s.addSolverNode(cache, s.HeelBoneName)
	if err != nil {
		return err
	}
	toe, err := s.addSolverNode(cache, s.ToeBoneName)
	if err != nil {
		return err
	}

	s.legChain.Initialize(thigh, calf, heel)
	s.footSegment = Segment{Begin: heel, End: toe}
	return nil
}

// NotifyPositionsReady bakes the leg chain and foot segment lengths.
func (s *LegSolver) NotifyPositionsReady() {
	s.legChain.UpdateLengths()
	s.footSegment.UpdateLength()
}

// UpdateMinHeelAngle captures the minimum heel angle from the rest pose of
// the thigh, heel, and toe bones.
func (s *LegSolver) UpdateMinHeelAngle() {
	thigh := s.legChain.BeginNode()
	heel := s.legChain.EndNode()
	toe := s.footSegment.End
	if thigh == nil || heel == nil || toe == nil {
		return
	}

	thighToToe := toe.RestPosition.Sub(thigh.RestPosition)
	heelToThigh := thigh.RestPosition.Sub(heel.RestPosition)
	heelToToe := toe.RestPosition.Sub(heel.RestPosition)

	bendNormal := thighToToe.Cross(s.worldDirection(s.BendDirection)).Mul(-1)
	s.MinHeelAngle = mgl32.RadToDeg(math.SignedAngle(heelToThigh, heelToToe, bendNormal))
}

func (s *LegSolver) ensureInitialized() {
	if s.MinHeelAngle < 0 {
		s.UpdateMinHeelAngle()
	}
	s.BendWeight = mgl32.Clamp(s.BendWeight, 0, 1)
	s.MinKneeAngle = mgl32.Clamp(s.MinKneeAngle, 0, 180)
	s.MaxKneeAngle = mgl32.Clamp(s.MaxKneeAngle, 0, 180)
}

// currentBendDirection reorients the configured bend hint by the swing that
// takes the rest thigh-to-toe direction onto the live thigh-to-target one,
// so the knee keeps bending the same way relative to the whole limb.
func (s *LegSolver) currentBendDirection(toeTargetPosition mgl32.Vec3) mgl32.Vec3 {
	thigh := s.legChain.BeginNode()
	toe := s.footSegment.End

	swing := SwingRotation(thigh.RestPosition, toe.RestPosition, thigh.Position, toeTargetPosition)
	return swing.Rotate(s.worldDirection(s.BendDirection))
}

// footDirectionStraight places the heel for a planted foot: the thigh, heel,
// and toe form a triangle honoring the minimum heel angle.
func (s *LegSolver) footDirectionStraight(toeTargetPosition, currentBendDirection mgl32.Vec3) mgl32.Vec3 {
	thigh := s.legChain.BeginNode()

	thighToToe := toeTargetPosition.Sub(thigh.Position)
	bendNormal := thighToToe.Cross(currentBendDirection)

	return toeToHeelVector(thigh.Position, toeTargetPosition,
		s.footSegment.Length, mgl32.DegToRad(s.MinHeelAngle),
		s.legChain.Reach(mgl32.DegToRad(s.MaxKneeAngle)), bendNormal)
}

// footDirectionBent places the heel as if calf and foot were one bone:
// solve the two-bone chain of thigh length and combined calf-plus-foot
// length, then step back along the last segment by the foot length.
func (s *LegSolver) footDirectionBent(toeTargetPosition, currentBendDirection mgl32.Vec3) mgl32.Vec3 {
	thigh := s.legChain.BeginNode()

	middle, end := SolveTwoBone(thigh.Position,
		s.legChain.FirstLength(), s.legChain.SecondLength()+s.footSegment.Length,
		toeTargetPosition, currentBendDirection,
		mgl32.DegToRad(s.MinKneeAngle), mgl32.DegToRad(s.MaxKneeAngle))
	return math.SafeNormalize(middle.Sub(end)).Mul(s.footSegment.Length)
}

// Solve plants the foot on the toe target.
func (s *LegSolver) Solve(settings Settings) {
	s.pullTransforms()
	s.solveInternal(settings)
	s.pushTransforms()
}

func (s *LegSolver) solveInternal(settings Settings) {
	s.ensureInitialized()

	toeTargetPosition := s.target.WorldPosition()
	heel := s.legChain.EndNode()
	toe := s.footSegment.End

	currentBendDirection := s.currentBendDirection(toeTargetPosition)
	straight := s.footDirectionStraight(toeTargetPosition, currentBendDirection)
	bent := s.footDirectionBent(toeTargetPosition, currentBendDirection)

	toeToHeel := math.InterpolateDirection(straight, bent, s.BendWeight)
	heelTargetPosition := toeTargetPosition.Add(toeToHeel)

	s.legChain.Solve(heelTargetPosition, s.worldDirection(s.BendDirection),
		mgl32.DegToRad(s.MinKneeAngle), mgl32.DegToRad(s.MaxKneeAngle))

	toe.Position = heel.Position.Sub(toeToHeel)
	toe.MarkPositionDirty()
	s.footSegment.UpdateRotationInNodes(settings.ContinuousRotation, true)
}

// DrawDebugGeometry draws the leg chain, the foot segment, and the target.
func (s *LegSolver) DrawDebugGeometry(r *debug.Renderer, depthTest bool) {
	drawTrigChain(r, &s.legChain, depthTest)

	heel := s.legChain.EndNode()
	toe := s.footSegment.End
	if heel != nil && toe != nil {
		drawBone(r, heel.Position, toe.Position, depthTest)
		drawJoint(r, toe.Position, depthTest)
	}
	if s.target != nil {
		drawTarget(r, s.target.WorldPosition(), depthTest)
	}
}
