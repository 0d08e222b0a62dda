package game

import "math"

// Category tags a body for contact and collision filtering.
type Category uint32

const (
	CategoryPenguin Category = 1 << iota
	CategoryDamagedPenguin
	CategoryGround
	CategoryEnemy
	CategoryCoin
	CategoryPowerup

	CategoryAll Category = math.MaxUint32
)

func (c Category) String() string {
	switch c {
	case CategoryPenguin:
		return "penguin"
	case CategoryDamagedPenguin:
		return "damaged_penguin"
	case CategoryGround:
		return "ground"
	case CategoryEnemy:
		return "enemy"
	case CategoryCoin:
		return "coin"
	case CategoryPowerup:
		return "powerup"
	default:
		return "mixed"
	}
}

// Shape is the collision geometry of a body.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeBox
	ShapeEdge // horizontal segment at Y spanning X±HalfW
)

// restitution matches the bounce a knocked enemy gets off Pierre.
const restitution = 0.2

// contactSlop lets a resting body keep touching an edge it sits on.
const contactSlop = 0.5

// Body is a point mass with a simple shape. Positions are y-up world points.
type Body struct {
	X, Y   float64
	VX, VY float64

	Mass              float64
	LinearDamping     float64
	AffectedByGravity bool
	Dynamic           bool
	Enabled           bool

	Shape  Shape
	Radius float64 // circle
	HalfW  float64 // box and edge
	HalfH  float64 // box

	Category      Category
	CollisionMask Category // categories that knock this body around
	ContactMask   Category // categories that raise a contact with this body

	Owner any // sprite that owns the body

	id     int
	fx, fy float64
}

// ApplyForce accumulates a force for the next step (a = F/m).
func (b *Body) ApplyForce(fx, fy float64) {
	b.fx += fx
	b.fy += fy
}

// Stop zeroes velocity and pending forces.
func (b *Body) Stop() {
	b.VX, b.VY = 0, 0
	b.fx, b.fy = 0, 0
}

// bounds returns the axis-aligned extents of the body.
func (b *Body) bounds() (minX, minY, maxX, maxY float64) {
	switch b.Shape {
	case ShapeCircle:
		return b.X - b.Radius, b.Y - b.Radius, b.X + b.Radius, b.Y + b.Radius
	case ShapeEdge:
		return b.X - b.HalfW, b.Y, b.X + b.HalfW, b.Y
	default:
		return b.X - b.HalfW, b.Y - b.HalfH, b.X + b.HalfW, b.Y + b.HalfH
	}
}

// Contact is a pair of bodies that began touching.
type Contact struct {
	A, B *Body
}

type pairKey struct{ a, b int }

func keyOf(a, b *Body) pairKey {
	if a.id < b.id {
		return pairKey{a.id, b.id}
	}
	return pairKey{b.id, a.id}
}

// World integrates bodies and reports contact begins.
type World struct {
	Gravity   float64 // points/s², negative is down
	bodies    []*Body
	touching  map[pairKey]bool
	nextID    int
	OnContact func(Contact)
}

// NewWorld creates a world with the given downward acceleration in points/s².
func NewWorld(gravity float64) *World {
	return &World{
		Gravity:  gravity,
		touching: make(map[pairKey]bool),
	}
}

// Add registers a body and enables it.
func (w *World) Add(b *Body) *Body {
	b.id = w.nextID
	w.nextID++
	b.Enabled = true
	w.bodies = append(w.bodies, b)
	return b
}

// Bodies returns every registered body.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Step advances the world by dt seconds: integrate, resolve collisions,
// then raise a contact for every pair that started overlapping.
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		if !b.Enabled || !b.Dynamic {
			b.fx, b.fy = 0, 0
			continue
		}
		ax, ay := 0.0, 0.0
		if b.Mass > 0 {
			ax, ay = b.fx/b.Mass, b.fy/b.Mass
		}
		if b.AffectedByGravity {
			ay += w.Gravity
		}
		b.VX += ax * dt
		b.VY += ay * dt
		if b.LinearDamping > 0 {
			d := 1 / (1 + b.LinearDamping*dt)
			b.VX *= d
			b.VY *= d
		}
		b.X += b.VX * dt
		b.Y += b.VY * dt
		b.fx, b.fy = 0, 0
	}

	for i, a := range w.bodies {
		if !a.Enabled {
			continue
		}
		for _, b := range w.bodies[i+1:] {
			if !b.Enabled {
				continue
			}
			w.resolvePair(a, b)
		}
	}
}

func (w *World) resolvePair(a, b *Body) {
	nx, ny, depth, hit := overlap(a, b)
	key := keyOf(a, b)
	if !hit {
		delete(w.touching, key)
		return
	}

	// a is pushed along -n, b along +n.
	if depth > 0 {
		if knocks(a, b) {
			separate(a, -nx, -ny, depth, b)
		} else if knocks(b, a) {
			separate(b, nx, ny, depth, a)
		}
	}

	reportable := a.Category&b.ContactMask != 0 || b.Category&a.ContactMask != 0
	if !reportable || w.touching[key] {
		return
	}
	w.touching[key] = true
	if w.OnContact != nil {
		w.OnContact(Contact{A: a, B: b})
	}
}

// Forget drops any contact state held for b, so re-enabling it can begin a
// new contact.
func (w *World) Forget(b *Body) {
	for k := range w.touching {
		if k.a == b.id || k.b == b.id {
			delete(w.touching, k)
		}
	}
}

// knocks reports whether mover is pushed by other.
func knocks(mover, other *Body) bool {
	return mover.Dynamic && mover.CollisionMask&other.Category != 0
}

// separate pushes mover out along (nx, ny) and removes approaching velocity
// relative to other, which is treated as immovable.
func separate(mover *Body, nx, ny, depth float64, other *Body) {
	mover.X += nx * depth
	mover.Y += ny * depth
	rvx, rvy := mover.VX-other.VX, mover.VY-other.VY
	vn := rvx*nx + rvy*ny
	if other.Shape == ShapeEdge {
		vn = mover.VX*nx + mover.VY*ny
		if vn < 0 {
			mover.VX -= vn * nx
			mover.VY -= vn * ny
		}
		return
	}
	if vn < 0 {
		mover.VX -= (1 + restitution) * vn * nx
		mover.VY -= (1 + restitution) * vn * ny
	}
}

// overlap returns the unit normal pointing from a to b, the penetration
// depth and whether the shapes touch.
func overlap(a, b *Body) (nx, ny, depth float64, hit bool) {
	switch {
	case a.Shape == ShapeEdge && b.Shape == ShapeEdge:
		return 0, 0, 0, false
	case a.Shape == ShapeEdge:
		nx, ny, depth, hit = edgeOverlap(a, b)
		return nx, ny, depth, hit
	case b.Shape == ShapeEdge:
		nx, ny, depth, hit = edgeOverlap(b, a)
		return -nx, -ny, depth, hit
	case a.Shape == ShapeCircle && b.Shape == ShapeCircle:
		dx, dy := b.X-a.X, b.Y-a.Y
		dist := math.Hypot(dx, dy)
		rs := a.Radius + b.Radius
		if dist >= rs {
			return 0, 0, 0, false
		}
		if dist == 0 {
			return 0, 1, rs, true
		}
		return dx / dist, dy / dist, rs - dist, true
	case a.Shape == ShapeCircle:
		return circleBox(a, b)
	case b.Shape == ShapeCircle:
		nx, ny, depth, hit = circleBox(b, a)
		return -nx, -ny, depth, hit
	default:
		return boxBox(a, b)
	}
}

// edgeOverlap tests body against a horizontal edge; the normal points from
// the edge toward the body.
func edgeOverlap(edge, body *Body) (nx, ny, depth float64, hit bool) {
	minX, minY, maxX, maxY := body.bounds()
	if maxX < edge.X-edge.HalfW || minX > edge.X+edge.HalfW {
		return 0, 0, 0, false
	}
	if minY > edge.Y+contactSlop || maxY < edge.Y-contactSlop {
		return 0, 0, 0, false
	}
	if body.Y >= edge.Y {
		return 0, 1, math.Max(0, edge.Y-minY), true
	}
	return 0, -1, math.Max(0, maxY-edge.Y), true
}

// circleBox returns the normal from circle c toward box r.
func circleBox(c, r *Body) (nx, ny, depth float64, hit bool) {
	cx := math.Max(r.X-r.HalfW, math.Min(c.X, r.X+r.HalfW))
	cy := math.Max(r.Y-r.HalfH, math.Min(c.Y, r.Y+r.HalfH))
	dx, dy := cx-c.X, cy-c.Y
	dist := math.Hypot(dx, dy)
	if dist >= c.Radius {
		return 0, 0, 0, false
	}
	if dist == 0 {
		// Centre inside the box: push out along the shallower axis.
		ox := r.HalfW - math.Abs(c.X-r.X)
		oy := r.HalfH - math.Abs(c.Y-r.Y)
		if ox < oy {
			return math.Copysign(1, r.X-c.X), 0, ox + c.Radius, true
		}
		return 0, math.Copysign(1, r.Y-c.Y), oy + c.Radius, true
	}
	return dx / dist, dy / dist, c.Radius - dist, true
}

func boxBox(a, b *Body) (nx, ny, depth float64, hit bool) {
	ox := a.HalfW + b.HalfW - math.Abs(b.X-a.X)
	oy := a.HalfH + b.HalfH - math.Abs(b.Y-a.Y)
	if ox <= 0 || oy <= 0 {
		return 0, 0, 0, false
	}
	if ox < oy {
		return math.Copysign(1, b.X-a.X), 0, ox, true
	}
	return 0, math.Copysign(1, b.Y-a.Y), oy, true
}
