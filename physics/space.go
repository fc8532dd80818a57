// Package physics is a small top-down collision layer over chipmunk. The
// ground plane X/Z maps to chipmunk's X/Y. Heights are tracked here since
// chipmunk is 2D.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/touchmove/common"
)

// Collision categories.
const (
	CategoryGround = 1 << iota
	CategoryWall
	CategoryAgent
	categoryQuery
)

// DefaultSampleDistance is how far a destination may sit from walkable
// ground and still be accepted.
const DefaultSampleDistance = 0.5

const edgeSlop = 1e-6

// Platform is a walkable box. Its footprint spans Min..Max on X/Z and its
// surface is at Top.
type Platform struct {
	Name   string
	Min    mgl64.Vec2
	Max    mgl64.Vec2
	Top    float64
	Layers uint
}

func (p Platform) contains(x, z float64) bool {
	return x >= p.Min[0] && x <= p.Max[0] && z >= p.Min[1] && z <= p.Max[1]
}

// Wall blocks agents on X/Z at every height.
type Wall struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

type Space struct {
	space   *cp.Space
	gravity float64

	platforms []*Platform
	walls     []Wall
	ground    map[*cp.Shape]*Platform
	shapes    []*cp.Shape
	agents    []*Agent
}

func NewSpace(gravity float64) *Space {
	s := &Space{gravity: gravity}
	s.reset()
	return s
}

func (s *Space) reset() {
	s.space = cp.NewSpace()
	s.space.Iterations = 10
	s.space.SetGravity(cp.Vector{})
	s.platforms = nil
	s.walls = nil
	s.shapes = nil
	s.ground = make(map[*cp.Shape]*Platform)
}

// Clear drops all static geometry and agents.
func (s *Space) Clear() {
	for _, a := range s.agents {
		a.space = nil
	}
	s.agents = nil
	s.reset()
}

func (s *Space) Gravity() float64 {
	return s.gravity
}

func (s *Space) SetGravity(g float64) {
	if common.Finite(g) && g >= 0 {
		s.gravity = g
	}
}

// AddPlatform registers a walkable surface. Zero layers mean CategoryGround.
func (s *Space) AddPlatform(p Platform) *Platform {
	p.Min, p.Max = orderCorners(p.Min, p.Max)
	if p.Layers == 0 {
		p.Layers = CategoryGround
	}
	plat := &p
	shape := cp.NewBox2(s.space.StaticBody, footprint(p.Min, p.Max), 0)
	// Ground never collides with agents, it is only queried.
	shape.SetFilter(cp.ShapeFilter{Categories: p.Layers, Mask: categoryQuery})
	s.space.AddShape(shape)
	s.ground[shape] = plat
	s.shapes = append(s.shapes, shape)
	s.platforms = append(s.platforms, plat)
	return plat
}

func (s *Space) AddWall(min, max mgl64.Vec2) {
	min, max = orderCorners(min, max)
	shape := cp.NewBox2(s.space.StaticBody, footprint(min, max), 0)
	shape.SetFriction(0)
	shape.SetFilter(cp.ShapeFilter{Categories: CategoryWall, Mask: CategoryAgent | categoryQuery})
	s.space.AddShape(shape)
	s.shapes = append(s.shapes, shape)
	s.walls = append(s.walls, Wall{Min: min, Max: max})
}

func (s *Space) Platforms() []Platform {
	out := make([]Platform, 0, len(s.platforms))
	for _, p := range s.platforms {
		out = append(out, *p)
	}
	return out
}

func (s *Space) Walls() []Wall {
	return append([]Wall(nil), s.walls...)
}

// GroundBelow returns the highest surface under feet on the given layers
// whose top is no higher than feet.y+lift. Footprint edges count as inside.
func (s *Space) GroundBelow(feet mgl64.Vec3, lift float64, layers uint) (float64, bool) {
	if layers == 0 {
		layers = CategoryGround
	}
	best, found := math.Inf(-1), false
	filter := cp.ShapeFilter{Categories: categoryQuery, Mask: layers}
	// chipmunk drops hits at exactly maxDistance, so pad it and let contains
	// decide the edge.
	s.space.PointQuery(cp.Vector{X: feet[0], Y: feet[2]}, edgeSlop, filter, func(shape *cp.Shape, _ cp.Vector, _ float64, _ cp.Vector, _ interface{}) {
		p, ok := s.ground[shape]
		if !ok || !p.contains(feet[0], feet[2]) || p.Top > feet[1]+lift {
			return
		}
		if p.Top > best {
			best, found = p.Top, true
		}
	}, nil)
	return best, found
}

// ProbeGround casts a ray down from feet+lift with length dist+lift. A
// surface exactly dist below the feet counts as ground.
func (s *Space) ProbeGround(feet mgl64.Vec3, dist, lift float64, layers uint) bool {
	top, ok := s.GroundBelow(feet, lift, layers)
	if !ok {
		return false
	}
	return feet[1]-top <= dist
}

// SampleWalkable snaps p onto the nearest walkable footprint within
// maxDist. The height is taken from p.
func (s *Space) SampleWalkable(p mgl64.Vec3, maxDist float64) (mgl64.Vec3, bool) {
	p = common.SanitizeVec3(p)
	if maxDist <= 0 {
		maxDist = DefaultSampleDistance
	}
	filter := cp.ShapeFilter{Categories: categoryQuery, Mask: CategoryGround}
	info := s.space.PointQueryNearest(cp.Vector{X: p[0], Y: p[2]}, maxDist, filter)
	if info == nil || info.Shape == nil {
		return mgl64.Vec3{}, false
	}
	if info.Distance <= 0 {
		return p, true
	}
	return mgl64.Vec3{info.Point.X, p[1], info.Point.Y}, true
}

// Step moves every agent by dt.
func (s *Space) Step(dt float64) {
	if !common.Finite(dt) || dt <= 0 {
		return
	}
	for _, a := range s.agents {
		a.steer(dt)
	}
	s.space.Step(dt)
	for _, a := range s.agents {
		a.integrateVertical(dt)
	}
}

// Probe is a GroundProbe bound to a moving position.
type Probe struct {
	Space    *Space
	Feet     func() mgl64.Vec3
	Distance float64
	Lift     float64
	Layers   uint
}

// NewProbe builds a probe with the usual 0.1 lift.
func (s *Space) NewProbe(feet func() mgl64.Vec3, dist float64) *Probe {
	return &Probe{Space: s, Feet: feet, Distance: dist, Lift: 0.1, Layers: CategoryGround}
}

func (p *Probe) IsGrounded() bool {
	if p == nil || p.Space == nil || p.Feet == nil {
		return false
	}
	return p.Space.ProbeGround(p.Feet(), p.Distance, p.Lift, p.Layers)
}

func footprint(min, max mgl64.Vec2) cp.BB {
	return cp.BB{L: min[0], B: min[1], R: max[0], T: max[1]}
}

func orderCorners(a, b mgl64.Vec2) (mgl64.Vec2, mgl64.Vec2) {
	return mgl64.Vec2{math.Min(a[0], b[0]), math.Min(a[1], b[1])},
		mgl64.Vec2{math.Max(a[0], b[0]), math.Max(a[1], b[1])}
}
