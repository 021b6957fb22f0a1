package vr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNavigatorStepsWithCooldown(t *testing.T) {
	c := NewCoordinator()
	var n Navigator

	assert.True(t, n.Update(c, 0.9, 0, 0, frame))
	assert.Equal(t, SectionHistory, c.Section())
	assert.Zero(t, n.Scroll(), "a step starts the new section at the top")

	assert.False(t, n.Update(c, 0.9, 0, 100*time.Millisecond, frame))
	assert.Equal(t, SectionHistory, c.Section())

	assert.True(t, n.Update(c, 0.9, 0, 300*time.Millisecond, frame))
	assert.Equal(t, SectionAchievements, c.Section())

	assert.True(t, n.Update(c, -0.9, 0, 600*time.Millisecond, frame))
	assert.Equal(t, SectionHistory, c.Section())

	assert.False(t, n.Update(c, 0.3, 0, 2*time.Second, frame), "inside dead zone")
}

func TestNavigatorClampsAtEnds(t *testing.T) {
	c := NewCoordinator()
	var n Navigator
	assert.False(t, n.Update(c, -1, 0, 0, frame))
	assert.Equal(t, SectionIntro, c.Section())
}

func TestNavigatorScroll(t *testing.T) {
	c := NewCoordinator()
	var n Navigator

	n.Update(c, 0, 1, 0, time.Second)
	assert.InDelta(t, ScrollSpeed, n.Scroll(), eps)

	n.Update(c, 0, 0.1, 0, time.Second)
	assert.InDelta(t, ScrollSpeed, n.Scroll(), eps, "scroll dead zone")

	n.Update(c, 0, -1, 0, 2*time.Second)
	assert.Zero(t, n.Scroll(), "never negative")

	n.Update(c, 0, 1, 0, 10*time.Second)
	n.ClampScroll(1.5)
	assert.InDelta(t, 1.5, n.Scroll(), eps)

	n.ResetScroll()
	assert.Zero(t, n.Scroll())
	assert.Equal(t, SectionIntro, c.Section())
}
