package vr

import "time"

// Campus preview rotation in the campus screen.
const (
	PreviewDeadZone = 0.12
	PreviewRate     = 0.04 // radians per frame at full deflection
)

// FrameInput is everything the overlay reads in one frame.
type FrameInput struct {
	Now time.Duration
	DT  time.Duration
	// Controllers are the session's input sources.
	Controllers []Controller
	// Pads are browser gamepads without handedness, used when the session
	// exposes no gamepad sources.
	Pads []Gamepad
	// Camera is the headset orientation.
	Camera Quat
	Host   XRHost
}

// FrameOutput summarises the state after a frame.
type FrameOutput struct {
	State       ScreenState
	Section     Section
	CampusIndex int
	Scroll      float64
	PreviewYaw  float64
	ResetToken  uint64
	// Transform is set when locomotion installed a reference space.
	Transform *RigidTransform
	Hovered   *Node
	// Exit asks the host to end the immersive session.
	Exit    bool
	Profile string
}

// SessionConfig tunes a Session.
type SessionConfig struct {
	Speed           float64
	ReprojectOnSnap bool
}

// Session is the per-immersive-session state of the VR overlay. One frame
// loop owns it; it is not safe for concurrent use.
type Session struct {
	profile    InputProfile
	loco       *Locomotion
	selector   *Selector
	coord      *Coordinator
	nav        Navigator
	previewYaw float64

	hoverSlots  int
	lastBack    bool
	lastToken   uint64
	lastState   ScreenState
	lastSection Section
}

func NewSession(cfg SessionConfig) *Session {
	loco := NewLocomotion()
	if cfg.Speed > 0 {
		loco.Speed = cfg.Speed
	}
	loco.ReprojectOnSnap = cfg.ReprojectOnSnap

	s := &Session{
		loco:     loco,
		selector: NewSelector(),
		coord:    NewCoordinator(),
	}
	s.Open(0)
	return s
}

// Open starts a new overlay session with campusCount campuses.
func (s *Session) Open(campusCount int) {
	s.coord.Open(campusCount)
	s.loco.Reset()
	s.nav = Navigator{}
	s.previewYaw = 0
	s.profile = nil
	s.lastBack = false
	s.lastToken = s.coord.ResetToken()
	s.lastState = s.coord.State()
	s.lastSection = s.coord.Section()
}

func (s *Session) Coordinator() *Coordinator { return s.coord }
func (s *Session) Selector() *Selector       { return s.selector }
func (s *Session) Locomotion() *Locomotion   { return s.loco }
func (s *Session) Navigator() *Navigator     { return &s.nav }

// Profile returns the input profile chosen for this session, or nil.
func (s *Session) Profile() InputProfile { return s.profile }

// Select dispatches a select event from controller c to the coordinator.
func (s *Session) Select(c Controller) bool {
	if !c.Tracked {
		return false
	}
	return s.selector.Select(RayFromPose(c.Pose), func(key string, _ *Node) {
		s.coord.HandleKey(key)
	})
}

// Frame runs one overlay frame.
func (s *Session) Frame(in FrameInput) FrameOutput {
	if s.profile == nil {
		s.profile = SelectProfile(in.Controllers, in.Pads)
	}

	var out FrameOutput

	if s.profile != nil {
		right := PickHand(in.Controllers, HandRight)
		back := right != nil && s.profile.BackPressed(right.Gamepad)
		if back && !s.lastBack {
			out.Exit = s.coord.PressBack()
		}
		s.lastBack = back

		switch s.coord.State() {
		case StateScroll:
			navY := s.stick(in, HandLeft).Y
			scrollY := s.stick(in, HandRight).Y
			s.nav.Update(s.coord, navY, scrollY, in.Now, in.DT)
		case StateCampus:
			x := deadZone(s.stick(in, HandRight).X, PreviewDeadZone)
			s.previewYaw += x * PreviewRate
		}
	}

	if token := s.coord.ResetToken(); token != s.lastToken {
		s.loco.Reset()
		s.lastToken = token
	}

	if s.coord.State() == StateTour && s.profile != nil {
		if t, ok := s.loco.Frame(in.Host, s.locomotionInput(in)); ok {
			out.Transform = &t
		}
	}

	s.updateHover(in.Controllers, &out)

	if st, sec := s.coord.State(), s.coord.Section(); st != s.lastState || sec != s.lastSection {
		s.nav.ResetScroll()
		if st != StateCampus {
			s.previewYaw = 0
		}
		s.lastState, s.lastSection = st, sec
	}

	out.State = s.coord.State()
	out.Section = s.coord.Section()
	out.CampusIndex = s.coord.CampusIndex()
	out.Scroll = s.nav.Scroll()
	out.PreviewYaw = s.previewYaw
	out.ResetToken = s.coord.ResetToken()
	if s.profile != nil {
		out.Profile = s.profile.Name()
	}
	return out
}

// updateHover casts one ray per tracked controller, using the controller's
// index as its hover slot. Slots of untracked or vanished controllers are
// cleared. out.Hovered reports the ray controller's hover.
func (s *Session) updateHover(controllers []Controller, out *FrameOutput) {
	primary := RayController(controllers)
	for i := range controllers {
		c := &controllers[i]
		var ray *Ray
		if c.Tracked {
			r := RayFromPose(c.Pose)
			ray = &r
		}
		n := s.selector.UpdateHover(i, ray)
		if c == primary {
			out.Hovered = n
		}
	}
	for i := len(controllers); i < s.hoverSlots; i++ {
		s.selector.UpdateHover(i, nil)
	}
	s.hoverSlots = len(controllers)
}

// stick reads hand's stick through the session profile, preferring
// session input sources over bare browser gamepads.
func (s *Session) stick(in FrameInput, hand Handedness) Stick {
	if c := PickHand(in.Controllers, hand); c != nil {
		return s.profile.Stick(c.Gamepad)
	}
	if pad := PickPad(in.Pads, hand); pad != nil {
		return s.profile.Stick(pad)
	}
	return Stick{}
}

func (s *Session) locomotionInput(in FrameInput) LocomotionInput {
	li := LocomotionInput{Camera: in.Camera, Now: in.Now, DT: in.DT}
	if li.Camera == (Quat{}) {
		li.Camera = IdentityQuat
	}

	li.Move = s.stick(in, HandLeft)
	if li.Move.X == 0 && li.Move.Y == 0 {
		if pad := PickPad(in.Pads, HandLeft); pad != nil {
			li.Move = s.profile.Stick(pad)
		}
	}

	if right := ExactHand(in.Controllers, HandRight); right != nil && len(right.Gamepad.Axes) > 0 {
		li.TurnX, li.HasTurn = s.profile.Stick(right.Gamepad).X, true
	} else if pad := PickPad(in.Pads, HandRight); pad != nil && len(pad.Axes) > 0 {
		li.TurnX, li.HasTurn = s.profile.Stick(pad).X, true
	}
	return li
}
