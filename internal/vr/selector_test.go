package vr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float64) *AABB {
	return &AABB{Min: Vec3{minX, minY, minZ}, Max: Vec3{maxX, maxY, maxZ}}
}

func TestAABBIntersect(t *testing.T) {
	b := box(-1, -1, -3, 1, 1, -2)
	tests := []struct {
		name   string
		ray    Ray
		want   float64
		wantOK bool
	}{
		{"straight ahead", Ray{Dir: Forward}, 2, true},
		{"pointing away", Ray{Dir: Vec3{0, 0, 1}}, 0, false},
		{"parallel outside slab", Ray{Origin: Vec3{0, 2, 0}, Dir: Forward}, 0, false},
		{"starting inside reports exit", Ray{Origin: Vec3{0, 0, -2.5}, Dir: Forward}, 0.5, true},
		{"diagonal miss", Ray{Dir: Vec3{1, 0, -1}.Normalize()}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := b.Intersect(tt.ray, RayNear, 100)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, eps)
			}
		})
	}

	_, ok := b.Intersect(Ray{Dir: Forward}, RayNear, 1.5)
	assert.False(t, ok, "beyond far limit")
}

// scene is a panel with a keyed card whose unkeyed label sits in front.
func scene() (panel, card, label *Node) {
	panel = NewNode("panel")
	panel.Box = box(-1, -1, -2.1, 1, 1, -1.9)
	card = NewNode("card")
	card.Key = CardKey(1)
	card.Box = box(-0.5, -0.5, -1.9, 0.5, 0.5, -1.8)
	label = NewNode("label")
	label.Box = box(-0.1, -0.1, -1.8, 0.1, 0.1, -1.7)
	panel.Add(card.Add(label))
	return panel, card, label
}

func TestSelectorNearestHit(t *testing.T) {
	panel, _, label := scene()
	s := NewSelector()
	s.Register(panel)

	hit, ok := s.Intersect(Ray{Dir: Forward})
	require.True(t, ok)
	assert.Same(t, label, hit.Node)
	assert.InDelta(t, 1.7, hit.Distance, eps)
	assertVec(t, Vec3{0, 0, -1.7}, hit.Point)

	hit, ok = s.Intersect(Ray{Origin: Vec3{0.8, 0, 0}, Dir: Forward})
	require.True(t, ok)
	assert.Same(t, panel, hit.Node)

	s.Reset()
	_, ok = s.Intersect(Ray{Dir: Forward})
	assert.False(t, ok)
}

func TestSelectorSelectWalksToKeyedAncestor(t *testing.T) {
	panel, card, _ := scene()
	s := NewSelector()
	s.Register(panel)

	var gotKey string
	var gotNode *Node
	ok := s.Select(Ray{Dir: Forward}, func(key string, n *Node) {
		gotKey, gotNode = key, n
	})
	require.True(t, ok)
	assert.Equal(t, CardKey(1), gotKey)
	assert.Same(t, card, gotNode)

	// The panel itself carries no key.
	called := false
	ok = s.Select(Ray{Origin: Vec3{0.8, 0, 0}, Dir: Forward}, func(string, *Node) { called = true })
	assert.False(t, ok)
	assert.False(t, called)
}

func TestSelectorHover(t *testing.T) {
	panel, _, label := scene()
	s := NewSelector()
	s.Register(panel)

	center := Ray{Dir: Forward}
	edge := Ray{Origin: Vec3{0.8, 0, 0}, Dir: Forward}

	assert.Same(t, label, s.UpdateHover(0, &center))
	assert.True(t, label.Hovered)

	assert.Same(t, panel, s.UpdateHover(0, &edge))
	assert.False(t, label.Hovered)
	assert.True(t, panel.Hovered)

	// A second controller on the same node keeps it lit when the first leaves.
	s.UpdateHover(1, &edge)
	assert.Nil(t, s.UpdateHover(0, nil))
	assert.True(t, panel.Hovered)
	assert.Same(t, panel, s.Hovered(1))

	s.UpdateHover(1, nil)
	assert.False(t, panel.Hovered)
}
