package vr

import (
	"math"
	"time"
)

// Locomotion defaults.
const (
	DefaultSpeed  = 3.0 // m/s
	MoveDeadZone  = 0.15
	SnapThreshold = 0.6
	SnapCooldown  = 350 * time.Millisecond
	SnapStep      = math.Pi / 4
)

// ReferenceSpace is the host's XRReferenceSpace.
type ReferenceSpace interface {
	// Offset returns a new space displaced by t (getOffsetReferenceSpace).
	Offset(t RigidTransform) ReferenceSpace
}

// XRHost is the slice of the WebXR runtime the locomotion mapper needs.
type XRHost interface {
	// SupportsRigidTransform reports whether XRRigidTransform exists.
	SupportsRigidTransform() bool
	// ReferenceSpace returns the renderer's current reference space.
	ReferenceSpace() (ReferenceSpace, bool)
	SetReferenceSpace(ReferenceSpace)
}

// LocomotionInput is one frame of locomotion input.
type LocomotionInput struct {
	Move Stick
	// TurnX is the secondary stick X; ignored unless HasTurn.
	TurnX   float64
	HasTurn bool
	// Camera is the headset orientation in the base reference space.
	Camera Quat
	Now    time.Duration
	DT     time.Duration
}

// Locomotion accumulates a translation and yaw from thumbstick input and
// installs them as an offset of the base reference space each frame.
type Locomotion struct {
	Speed float64
	// ReprojectOnSnap rotates the accumulated offset with each snap turn so
	// the viewer pivots where they stand instead of around the origin.
	ReprojectOnSnap bool

	offset   Vec3
	yaw      float64
	base     ReferenceSpace
	lastSnap time.Duration
	snapped  bool
}

func NewLocomotion() *Locomotion {
	return &Locomotion{Speed: DefaultSpeed}
}

// Offset returns the accumulated reference-space offset.
func (l *Locomotion) Offset() Vec3 { return l.offset }

// Yaw returns the accumulated yaw in radians.
func (l *Locomotion) Yaw() float64 { return l.yaw }

// Reset clears the offset, the yaw and the captured base space. The snap
// cooldown survives so a held stick does not turn again immediately.
func (l *Locomotion) Reset() {
	l.offset = Vec3{}
	l.yaw = 0
	l.base = nil
}

// Basis returns the horizontal forward and right vectors for the camera
// orientation combined with the accumulated yaw.
func (l *Locomotion) Basis(camera Quat) (forward, right Vec3) {
	heading := QuatFromAxisAngle(Up, l.yaw).Mul(camera)
	f := heading.Rotate(Forward)
	f.Y = 0
	forward = f.Normalize()
	right = Up.Cross(forward).Normalize().Scale(-1)
	return forward, right
}

// Step advances the accumulated state by one frame and returns the
// movement applied. It does not touch the host.
func (l *Locomotion) Step(in LocomotionInput) Vec3 {
	x := deadZone(in.Move.X, MoveDeadZone)
	y := deadZone(in.Move.Y, MoveDeadZone)

	var delta Vec3
	if x != 0 || y != 0 {
		forward, right := l.Basis(in.Camera)
		dir := forward.Scale(y).AddScaled(right, -x)
		delta = dir.Scale(l.Speed * in.DT.Seconds())
		l.offset = l.offset.Add(delta)
	}

	if in.HasTurn && math.Abs(in.TurnX) >= SnapThreshold &&
		(!l.snapped || in.Now-l.lastSnap > SnapCooldown) {
		angle := SnapStep
		if in.TurnX < 0 {
			angle = -SnapStep
		}
		l.yaw += angle
		if l.ReprojectOnSnap {
			l.offset = QuatFromAxisAngle(Up, angle).Rotate(l.offset)
		}
		l.lastSnap = in.Now
		l.snapped = true
	}
	return delta
}

// Transform is the offset applied to the base space, derived from the
// accumulated state alone.
func (l *Locomotion) Transform() RigidTransform {
	return RigidTransform{
		Position:    l.offset,
		Orientation: QuatFromAxisAngle(Up, l.yaw),
	}
}

// Frame runs one locomotion frame against host. Without XRRigidTransform
// support nothing happens; without a base space the state still advances
// but no transform is installed. The returned transform is the one
// installed, if any.
func (l *Locomotion) Frame(host XRHost, in LocomotionInput) (RigidTransform, bool) {
	if host == nil || !host.SupportsRigidTransform() {
		return RigidTransform{}, false
	}

	l.Step(in)

	if l.base == nil {
		base, ok := host.ReferenceSpace()
		if !ok || base == nil {
			return RigidTransform{}, false
		}
		l.base = base
	}

	t := l.Transform()
	host.SetReferenceSpace(l.base.Offset(t))
	return t, true
}
