package vr

import (
	"strconv"
	"strings"
)

// ScreenState is the overlay screen.
type ScreenState string

const (
	StateScroll ScreenState = "scroll"
	StateCampus ScreenState = "campus"
	StateTour   ScreenState = "tour"
)

// Section is a panel of the scrolling content screen.
type Section string

const (
	SectionIntro        Section = "intro"
	SectionHistory      Section = "history"
	SectionAchievements Section = "achievements"
	SectionPartners     Section = "partners"
	SectionCampus       Section = "campus"
)

// SectionOrder is the order the navigator steps through.
var SectionOrder = []Section{
	SectionIntro, SectionHistory, SectionAchievements, SectionPartners, SectionCampus,
}

// Selection keys carried by interactive nodes.
const (
	KeyNavPrefix  = "nav:"
	KeyCardPrefix = "campus:card:"
	KeyCampusNext = "campus:next"
	KeyCampusPrev = "campus:prev"
	KeyCampusGo   = "campus:enter"
)

// NavKey returns the selection key of a navigation button.
func NavKey(s Section) string { return KeyNavPrefix + string(s) }

// CardKey returns the selection key of the i-th campus card.
func CardKey(i int) string { return KeyCardPrefix + strconv.Itoa(i) }

// Coordinator owns the overlay's screen state, its back stack, the active
// section, the selected campus and the locomotion reset token.
type Coordinator struct {
	state       ScreenState
	history     []ScreenState
	section     Section
	campusIndex int
	campusCount int
	resetToken  uint64
}

func NewCoordinator() *Coordinator {
	c := &Coordinator{}
	c.Open(0)
	return c
}

// Open resets the overlay for a new session. The reset token is kept
// monotonic across sessions.
func (c *Coordinator) Open(campusCount int) {
	c.state = StateScroll
	c.history = c.history[:0]
	c.section = SectionIntro
	c.campusIndex = 0
	c.campusCount = max(0, campusCount)
}

// SetCampusCount updates the campus list size once it has loaded and
// re-clamps the selection.
func (c *Coordinator) SetCampusCount(n int) {
	c.campusCount = max(0, n)
	c.campusIndex = c.clampCampus(c.campusIndex)
}

func (c *Coordinator) State() ScreenState { return c.state }
func (c *Coordinator) Section() Section   { return c.section }
func (c *Coordinator) CampusIndex() int   { return c.campusIndex }
func (c *Coordinator) ResetToken() uint64 { return c.resetToken }
func (c *Coordinator) Depth() int         { return len(c.history) }

// HasCampus reports whether the selection points at a loaded campus.
func (c *Coordinator) HasCampus() bool {
	return c.campusIndex >= 0 && c.campusIndex < c.campusCount
}

// Transition moves to next, pushing the current state. Moving to the
// current state does nothing and reports false.
func (c *Coordinator) Transition(next ScreenState) bool {
	if next == "" || next == c.state {
		return false
	}
	c.history = append(c.history, c.state)
	c.moveTo(next)
	return true
}

// Back pops one level. It reports false when the stack is empty.
func (c *Coordinator) Back() bool {
	n := len(c.history)
	if n == 0 {
		return false
	}
	prev := c.history[n-1]
	c.history = c.history[:n-1]
	c.moveTo(prev)
	return true
}

// moveTo switches state. Entering or leaving the tour bumps the reset
// token so the locomotion offset never outlives a tour.
func (c *Coordinator) moveTo(next ScreenState) {
	if (next == StateTour) != (c.state == StateTour) {
		c.resetToken++
	}
	c.state = next
}

// PressBack handles the controller back action and reports whether the
// host should end the immersive session.
func (c *Coordinator) PressBack() (exit bool) {
	return !c.Back()
}

// SetSection activates s if it is a known section.
func (c *Coordinator) SetSection(s Section) bool {
	for _, known := range SectionOrder {
		if known == s {
			c.section = s
			return true
		}
	}
	return false
}

// StepSection moves dir places along SectionOrder, clamped at both ends.
// It reports whether the section changed.
func (c *Coordinator) StepSection(dir int) bool {
	idx := 0
	for i, s := range SectionOrder {
		if s == c.section {
			idx = i
			break
		}
	}
	next := min(len(SectionOrder)-1, max(0, idx+dir))
	if next == idx {
		return false
	}
	c.section = SectionOrder[next]
	return true
}

// HandleKey applies a selection key. Card keys only act on the scroll
// screen and campus keys only on the campus screen; keys that do not apply
// to the current state, and unknown keys, are ignored and report false.
func (c *Coordinator) HandleKey(key string) bool {
	switch {
	case strings.HasPrefix(key, KeyNavPrefix):
		return c.SetSection(Section(strings.TrimPrefix(key, KeyNavPrefix)))

	case strings.HasPrefix(key, KeyCardPrefix):
		if c.state != StateScroll {
			return false
		}
		idx, err := strconv.Atoi(strings.TrimPrefix(key, KeyCardPrefix))
		if err != nil {
			idx = 0
		}
		c.campusIndex = c.clampCampus(idx)
		c.section = SectionCampus
		c.Transition(StateCampus)
		return true

	case key == KeyCampusNext:
		if c.state != StateCampus {
			return false
		}
		c.campusIndex = c.clampCampus(c.campusIndex + 1)
		return true

	case key == KeyCampusPrev:
		if c.state != StateCampus {
			return false
		}
		c.campusIndex = c.clampCampus(c.campusIndex - 1)
		return true

	case key == KeyCampusGo:
		if c.state != StateCampus || !c.HasCampus() {
			return false
		}
		return c.Transition(StateTour)
	}
	return false
}

func (c *Coordinator) clampCampus(i int) int {
	return min(max(0, i), max(0, c.campusCount-1))
}
