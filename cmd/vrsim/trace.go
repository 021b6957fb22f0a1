package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/ptit-edu/portal-backend/internal/apiurl"
	"github.com/ptit-edu/portal-backend/internal/vr"
	"gopkg.in/yaml.v3"
)

// Trace is a recorded or hand-written input sequence for one overlay session.
type Trace struct {
	Campuses        []TraceCampus `yaml:"campuses"`
	Speed           float64       `yaml:"speed"`
	ReprojectOnSnap bool          `yaml:"reproject_on_snap"`
	// NoRigidTransform simulates a runtime without XRRigidTransform.
	NoRigidTransform bool `yaml:"no_rigid_transform"`

	Frames []TraceFrame `yaml:"frames"`
}

type TraceCampus struct {
	Name     string `yaml:"name"`
	FileName string `yaml:"file_name"`
}

// TraceFrame is one input snapshot, replayed Repeat times.
type TraceFrame struct {
	DTMillis     int        `yaml:"dt_ms"`
	Repeat       int        `yaml:"repeat"`
	CameraYawDeg float64    `yaml:"camera_yaw_deg"`
	Left         *TracePad  `yaml:"left"`
	Right        *TracePad  `yaml:"right"`
	Pads         []TracePad `yaml:"pads"`
	// Select dispatches a selection key before the frame runs.
	Select string `yaml:"select"`
}

type TracePad struct {
	Mapping string    `yaml:"mapping"`
	Axes    []float64 `yaml:"axes"`
	Back    bool      `yaml:"back"`
}

// LoadTrace reads a YAML trace file.
func LoadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	var t Trace
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse trace %s: %w", path, err)
	}
	return &t, nil
}

// gamepad builds a six-button pad with the back action on button 1.
func (p *TracePad) gamepad() *vr.Gamepad {
	if p == nil {
		return nil
	}
	g := &vr.Gamepad{Mapping: p.Mapping, Axes: p.Axes, Buttons: make([]vr.Button, 6)}
	g.Buttons[1].Pressed = p.Back
	return g
}

func (f TraceFrame) input(now, dt time.Duration, host vr.XRHost) vr.FrameInput {
	in := vr.FrameInput{
		Now:    now,
		DT:     dt,
		Camera: vr.QuatFromAxisAngle(vr.Up, f.CameraYawDeg*math.Pi/180),
		Host:   host,
	}
	hands := []struct {
		pad  *TracePad
		hand vr.Handedness
	}{{f.Left, vr.HandLeft}, {f.Right, vr.HandRight}}
	for _, h := range hands {
		if h.pad == nil {
			continue
		}
		in.Controllers = append(in.Controllers, vr.Controller{
			Handedness: h.hand,
			Gamepad:    h.pad.gamepad(),
			Pose:       vr.Pose{Orientation: vr.IdentityQuat},
			Tracked:    true,
		})
	}
	for i := range f.Pads {
		in.Pads = append(in.Pads, *f.Pads[i].gamepad())
	}
	return in
}

// simHost is an XRHost whose reference spaces are plain transforms.
type simHost struct {
	rigid     bool
	installed *vr.RigidTransform
}

type simSpace struct{ t vr.RigidTransform }

func (s simSpace) Offset(t vr.RigidTransform) vr.ReferenceSpace { return simSpace{t: t} }

func (h *simHost) SupportsRigidTransform() bool { return h.rigid }

func (h *simHost) ReferenceSpace() (vr.ReferenceSpace, bool) { return simSpace{}, true }

func (h *simHost) SetReferenceSpace(s vr.ReferenceSpace) {
	t := s.(simSpace).t
	h.installed = &t
}

// Replay runs t through a fresh session and writes one line per state
// change plus the final pose.
func Replay(t *Trace, baseURL string, w io.Writer) (vr.FrameOutput, error) {
	s := vr.NewSession(vr.SessionConfig{Speed: t.Speed, ReprojectOnSnap: t.ReprojectOnSnap})
	s.Open(len(t.Campuses))
	host := &simHost{rigid: !t.NoRigidTransform}

	var (
		now   time.Duration
		out   vr.FrameOutput
		frame int
		last  = vr.FrameOutput{State: s.Coordinator().State(), Section: s.Coordinator().Section()}
	)
	for _, f := range t.Frames {
		if f.Select != "" && !s.Coordinator().HandleKey(f.Select) {
			fmt.Fprintf(w, "%5d  select %q ignored\n", frame, f.Select)
		}
		dt := 16 * time.Millisecond
		if f.DTMillis > 0 {
			dt = time.Duration(f.DTMillis) * time.Millisecond
		}
		for range max(f.Repeat, 1) {
			now += dt
			out = s.Frame(f.input(now, dt, host))
			frame++

			if out.State != last.State || out.Section != last.Section || out.CampusIndex != last.CampusIndex {
				fmt.Fprintf(w, "%5d  %-6s section=%-12s campus=%d token=%d\n",
					frame, out.State, out.Section, out.CampusIndex, out.ResetToken)
				if out.State == vr.StateTour && out.CampusIndex < len(t.Campuses) {
					c := t.Campuses[out.CampusIndex]
					fmt.Fprintf(w, "       load %s from %s\n", c.Name, apiurl.Public(baseURL, c.FileName))
				}
			}
			last = out
			if out.Exit {
				fmt.Fprintf(w, "%5d  exit requested\n", frame)
				return out, nil
			}
		}
	}

	if host.installed != nil {
		p := host.installed.Position
		fmt.Fprintf(w, "final offset=(%.3f, %.3f, %.3f) yaw=%.1f°\n",
			p.X, p.Y, p.Z, s.Locomotion().Yaw()*180/math.Pi)
	}
	return out, nil
}
