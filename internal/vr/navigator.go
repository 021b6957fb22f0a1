package vr

import "time"

// Navigator tuning for the scroll screen.
const (
	NavDeadZone    = 0.35
	NavCooldown    = 250 * time.Millisecond
	ScrollDeadZone = 0.15
	ScrollSpeed    = 0.65 // m/s of panel travel
)

// Navigator steps sections with one stick and scrolls the content panel
// with the other.
type Navigator struct {
	scroll   float64
	lastStep time.Duration
	stepped  bool
}

// Scroll returns the panel scroll offset in metres, never negative.
func (n *Navigator) Scroll() float64 { return n.scroll }

func (n *Navigator) ResetScroll() { n.scroll = 0 }

// ClampScroll caps the offset at the panel's content height.
func (n *Navigator) ClampScroll(maxScroll float64) {
	n.scroll = min(max(0, n.scroll), max(0, maxScroll))
}

// Update consumes one frame. navY comes from the primary (left) stick and
// scrollY from the secondary; positive Y means stick pulled back, which
// moves to the next section and scrolls down. It reports whether the
// section changed.
func (n *Navigator) Update(c *Coordinator, navY, scrollY float64, now, dt time.Duration) bool {
	changed := false
	stepped := false
	if abs(navY) > NavDeadZone && (!n.stepped || now-n.lastStep > NavCooldown) {
		dir := 1
		if navY < 0 {
			dir = -1
		}
		changed = c.StepSection(dir)
		n.lastStep = now
		n.stepped = true
		n.scroll = 0
		stepped = true
	}

	vy := deadZone(scrollY, ScrollDeadZone)
	if vy == 0 && !stepped {
		vy = deadZone(navY, ScrollDeadZone)
	}
	if vy != 0 {
		n.scroll = max(0, n.scroll+vy*ScrollSpeed*dt.Seconds())
	}
	return changed
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
