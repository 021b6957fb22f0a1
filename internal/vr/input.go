package vr

// Handedness of an input source.
type Handedness string

const (
	HandLeft  Handedness = "left"
	HandRight Handedness = "right"
	HandNone  Handedness = "none"
)

// Button is one gamepad button sample.
type Button struct {
	Pressed bool
	Value   float64
}

// Down reports whether the button counts as held.
func (b Button) Down() bool {
	return b.Pressed || b.Value > 0.5
}

// Gamepad is a snapshot of one controller's axes and buttons.
type Gamepad struct {
	Mapping string
	Axes    []float64
	Buttons []Button
}

func (g *Gamepad) axis(i int) float64 {
	if g == nil || i < 0 || i >= len(g.Axes) {
		return 0
	}
	return g.Axes[i]
}

func (g *Gamepad) button(i int) bool {
	if g == nil || i < 0 || i >= len(g.Buttons) {
		return false
	}
	return g.Buttons[i].Down()
}

// Controller is one tracked input source for the current frame.
type Controller struct {
	Handedness Handedness
	Gamepad    *Gamepad
	// Pose is the target-ray pose; only meaningful when Tracked.
	Pose    Pose
	Tracked bool
}

// Stick is a thumbstick reading in [-1, 1]. Positive Y is stick pulled back.
type Stick struct {
	X, Y float64
}

// InputProfile reads the thumbstick and back button for one controller
// mapping. A session picks its profile once, from the first snapshot.
type InputProfile interface {
	Name() string
	Stick(g *Gamepad) Stick
	BackPressed(g *Gamepad) bool
}

// XRStandard is the WebXR "xr-standard" mapping: touchpad on axes 0/1,
// thumbstick on axes 2/3, and the upper face button on 1 or 5 depending on
// the runtime.
type XRStandard struct{}

func (XRStandard) Name() string { return "xr-standard" }

func (XRStandard) Stick(g *Gamepad) Stick {
	if g == nil {
		return Stick{}
	}
	if len(g.Axes) < 4 {
		return Stick{X: g.axis(0), Y: g.axis(1)}
	}
	return Stick{X: g.axis(2), Y: g.axis(3)}
}

func (XRStandard) BackPressed(g *Gamepad) bool {
	return g.button(1) || g.button(5)
}

// Generic covers two-axis pads: stick on axes 0/1, back on button 1.
type Generic struct{}

func (Generic) Name() string { return "generic" }

func (Generic) Stick(g *Gamepad) Stick {
	return Stick{X: g.axis(0), Y: g.axis(1)}
}

func (Generic) BackPressed(g *Gamepad) bool {
	return g.button(1)
}

// SelectProfile picks the mapping from the first controllers seen. It
// returns nil until some controller exposes a gamepad.
func SelectProfile(controllers []Controller, pads []Gamepad) InputProfile {
	seen := false
	check := func(g *Gamepad) bool {
		seen = true
		return g.Mapping == "xr-standard" || len(g.Axes) >= 4
	}
	for _, c := range controllers {
		if c.Gamepad != nil && check(c.Gamepad) {
			return XRStandard{}
		}
	}
	for i := range pads {
		if check(&pads[i]) {
			return XRStandard{}
		}
	}
	if !seen {
		return nil
	}
	return Generic{}
}

// PickHand returns the gamepad controller with the given handedness,
// falling back to the first controller that has a gamepad.
func PickHand(controllers []Controller, hand Handedness) *Controller {
	var first *Controller
	for i := range controllers {
		c := &controllers[i]
		if c.Gamepad == nil {
			continue
		}
		if c.Handedness == hand {
			return c
		}
		if first == nil {
			first = c
		}
	}
	return first
}

// ExactHand is PickHand without the fallback.
func ExactHand(controllers []Controller, hand Handedness) *Controller {
	for i := range controllers {
		if c := &controllers[i]; c.Gamepad != nil && c.Handedness == hand {
			return c
		}
	}
	return nil
}

// PickPad chooses among browser gamepads that carry no handedness: the
// first pad stands for the left hand and the second for the right.
func PickPad(pads []Gamepad, hand Handedness) *Gamepad {
	switch len(pads) {
	case 0:
		return nil
	case 1:
		return &pads[0]
	}
	if hand == HandRight {
		return &pads[1]
	}
	return &pads[0]
}

// RayController returns the controller whose ray drives hover: the
// tracked right hand, else the second tracked controller, else the first.
func RayController(controllers []Controller) *Controller {
	var tracked []*Controller
	for i := range controllers {
		c := &controllers[i]
		if !c.Tracked {
			continue
		}
		if c.Handedness == HandRight {
			return c
		}
		tracked = append(tracked, c)
	}
	switch len(tracked) {
	case 0:
		return nil
	case 1:
		return tracked[0]
	default:
		return tracked[1]
	}
}

func deadZone(v, threshold float64) float64 {
	if v < threshold && v > -threshold {
		return 0
	}
	return v
}
