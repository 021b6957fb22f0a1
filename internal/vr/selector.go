package vr

import "math"

// RayNear is the minimum hit distance. The far limit is unbounded so
// distant panels stay reachable.
const RayNear = 0.01

// AABB is an axis-aligned box in world space.
type AABB struct {
	Min, Max Vec3
}

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin, Dir Vec3
}

// RayFromPose casts along the pose's -Z axis.
func RayFromPose(p Pose) Ray {
	return Ray{Origin: p.Position, Dir: p.Orientation.Rotate(Forward).Normalize()}
}

// At returns the point at distance t along r.
func (r Ray) At(t float64) Vec3 { return r.Origin.AddScaled(r.Dir, t) }

// Intersect returns the entry distance of r into b within [near, far]. A
// ray starting inside the box reports the exit distance.
func (b AABB) Intersect(r Ray, near, far float64) (float64, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Dir.X, r.Dir.Y, r.Dir.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for i := range 3 {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1, t2 := (lo[i]-origin[i])/dir[i], (hi[i]-origin[i])/dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}

	t := tmin
	if t < near {
		t = tmax
	}
	if t < near || t > far {
		return 0, false
	}
	return t, true
}

// Node is one object of the interactive scene graph. Only nodes with a Box
// can be hit; Key marks the node a select resolves to.
type Node struct {
	Name     string
	Key      string
	Box      *AABB
	Parent   *Node
	Children []*Node
	Hovered  bool
}

func NewNode(name string) *Node {
	return &Node{Name: name}
}

// Add attaches children and returns n for chaining.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		c.Parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// KeyedAncestor walks from n up to the first node carrying a key.
func (n *Node) KeyedAncestor() (*Node, bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Key != "" {
			return cur, true
		}
	}
	return nil, false
}

// Hit is the nearest intersection of a ray.
type Hit struct {
	Node     *Node
	Distance float64
	Point    Vec3
}

// Selector raycasts controller rays against registered targets. Targets
// are re-registered every render pass.
type Selector struct {
	Near, Far float64

	targets []*Node
	hovered map[int]*Node
}

func NewSelector() *Selector {
	return &Selector{Near: RayNear, Far: math.Inf(1), hovered: make(map[int]*Node)}
}

// Reset clears the target list ahead of a render pass. Hover state is kept.
func (s *Selector) Reset() { s.targets = s.targets[:0] }

// Register adds a target; its descendants are tested too.
func (s *Selector) Register(n *Node) {
	if n != nil {
		s.targets = append(s.targets, n)
	}
}

// Targets returns the registered targets.
func (s *Selector) Targets() []*Node { return s.targets }

// Intersect returns the nearest hit among targets and their descendants.
func (s *Selector) Intersect(r Ray) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	found := false

	var visit func(n *Node)
	visit = func(n *Node) {
		if n.Box != nil {
			if t, ok := n.Box.Intersect(r, s.Near, s.Far); ok && t < best.Distance {
				best = Hit{Node: n, Distance: t, Point: r.At(t)}
				found = true
			}
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, n := range s.targets {
		visit(n)
	}
	return best, found
}

// UpdateHover moves controller's hover flag to whatever r hits now. A nil
// ray clears it. The hovered node is returned.
func (s *Selector) UpdateHover(controller int, r *Ray) *Node {
	var next *Node
	if r != nil {
		if hit, ok := s.Intersect(*r); ok {
			next = hit.Node
		}
	}

	prev := s.hovered[controller]
	if prev == next {
		return next
	}
	if next == nil {
		delete(s.hovered, controller)
	} else {
		s.hovered[controller] = next
	}
	if prev != nil {
		prev.Hovered = s.isHovered(prev)
	}
	if next != nil {
		next.Hovered = true
	}
	return next
}

// Hovered returns the node controller currently hovers.
func (s *Selector) Hovered(controller int) *Node { return s.hovered[controller] }

func (s *Selector) isHovered(n *Node) bool {
	for _, h := range s.hovered {
		if h == n {
			return true
		}
	}
	return false
}

// Select resolves a select event on r to the nearest hit's keyed ancestor
// and passes it to handle. It reports whether a key was dispatched.
func (s *Selector) Select(r Ray, handle func(key string, node *Node)) bool {
	hit, ok := s.Intersect(r)
	if !ok {
		return false
	}
	keyed, ok := hit.Node.KeyedAncestor()
	if !ok {
		return false
	}
	handle(keyed.Key, keyed)
	return true
}
