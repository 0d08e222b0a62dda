package game

// GameSprite is anything drawn from a texture atlas that reacts to taps.
type GameSprite interface {
	TextureAtlas() string
	InitialSize() (w, h float64)
	OnTap()
}

// EnemyKind selects an enemy's size, body and animation.
type EnemyKind int

const (
	EnemyBat EnemyKind = iota
	EnemyBlade
	EnemyMadFly
)

func (k EnemyKind) String() string {
	switch k {
	case EnemyBat:
		return "bat"
	case EnemyBlade:
		return "blade"
	case EnemyMadFly:
		return "madfly"
	default:
		return "enemy"
	}
}

type enemyDef struct {
	w, h          float64
	frames        []string
	timePerFrame  float64
	shape         Shape
	dynamic       bool
	collisionMask Category
}

var enemyDefs = map[EnemyKind]enemyDef{
	EnemyBat: {
		w: 44, h: 24,
		frames:        []string{"bat", "bat-fly"},
		timePerFrame:  0.12,
		shape:         ShapeCircle,
		dynamic:       true,
		collisionMask: CategoryAll &^ CategoryDamagedPenguin,
	},
	EnemyBlade: {
		w: 185, h: 92,
		frames:        []string{"blade", "blade-2"},
		timePerFrame:  0.07,
		shape:         ShapeBox,
		collisionMask: CategoryAll &^ CategoryDamagedPenguin,
	},
	EnemyMadFly: {
		w: 61, h: 29,
		frames:        []string{"madfly", "madfly-fly"},
		timePerFrame:  0.14,
		shape:         ShapeCircle,
		dynamic:       true,
		collisionMask: CategoryDamagedPenguin,
	},
}

// bladeBodyInset trims the blade box to the visible teeth.
const bladeBodyInset = 0.84

// enemyDamping is the drag a knocked enemy gets.
const enemyDamping = 0.1

// Enemy is a bat, blade or mad fly hovering in place.
type Enemy struct {
	Kind EnemyKind
	Body *Body
	anim FrameAnimation
}

// NewEnemy builds an enemy of kind at (x, y).
func NewEnemy(kind EnemyKind, x, y float64) *Enemy {
	def := enemyDefs[kind]
	b := &Body{
		X:             x,
		Y:             y,
		Mass:          1,
		LinearDamping: enemyDamping,
		Dynamic:       def.dynamic,
		Shape:         def.shape,
		Category:      CategoryEnemy,
		CollisionMask: def.collisionMask,
	}
	if def.shape == ShapeCircle {
		b.Radius = def.w / 2
	} else {
		b.HalfW = def.w / 2 * bladeBodyInset
		b.HalfH = def.h / 2 * bladeBodyInset
	}
	e := &Enemy{
		Kind: kind,
		Body: b,
		anim: FrameAnimation{Frames: def.frames, TimePerFrame: def.timePerFrame},
	}
	b.Owner = e
	return e
}

func (e *Enemy) TextureAtlas() string { return "Enemies" }

func (e *Enemy) InitialSize() (float64, float64) {
	s := enemyDefs[e.Kind]
	return s.w, s.h
}

func (e *Enemy) OnTap() {}

// Texture is the current animation frame.
func (e *Enemy) Texture() string { return e.anim.Frame() }

// Animate advances the looping animation.
func (e *Enemy) Animate(dt float64) { e.anim.Advance(dt) }
