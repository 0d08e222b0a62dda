package game

import (
	"math/rand"

	"github.com/Garsondee/Pierre-Penguin/internal/config"
)

// Parked encounters wait off-screen at this x.
const encounterParkX = -2000

// encounterMember is one sprite of an encounter and its offset from the
// encounter origin.
type encounterMember struct {
	Kind   config.MemberKind
	Body   *Body
	Enemy  *Enemy
	Coin   *Coin
	OffX   float64
	InitY  float64
	Sprite GameSprite
}

// Encounter is an instantiated template.
type Encounter struct {
	Name    string
	Members []*encounterMember
	X       float64
	Placed  bool
}

// EncounterManager recycles a fixed set of encounters along the course.
type EncounterManager struct {
	Encounters []*Encounter
	current    int
	rng        *rand.Rand
}

// NewEncounterManager instantiates every template once.
func NewEncounterManager(templates []config.EncounterTemplate, rng *rand.Rand) *EncounterManager {
	m := &EncounterManager{current: -1, rng: rng}
	for _, t := range templates {
		enc := &Encounter{Name: t.Name}
		for _, mt := range t.Members {
			enc.Members = append(enc.Members, newMember(mt))
		}
		m.Encounters = append(m.Encounters, enc)
	}
	return m
}

func newMember(mt config.MemberTemplate) *encounterMember {
	m := &encounterMember{Kind: mt.Kind, OffX: mt.X, InitY: mt.Y}
	switch mt.Kind {
	case config.KindBat:
		m.Enemy = NewEnemy(EnemyBat, mt.X, mt.Y)
	case config.KindBlade:
		m.Enemy = NewEnemy(EnemyBlade, mt.X, mt.Y)
	case config.KindMadFly:
		m.Enemy = NewEnemy(EnemyMadFly, mt.X, mt.Y)
	case config.KindGoldCoin:
		m.Coin = NewCoin(CoinGold, mt.X, mt.Y)
	default:
		m.Coin = NewCoin(CoinBronze, mt.X, mt.Y)
	}
	if m.Enemy != nil {
		m.Body, m.Sprite = m.Enemy.Body, m.Enemy
	} else {
		m.Body, m.Sprite = m.Coin.Body, m.Coin
	}
	return m
}

// AddEncountersToScene registers every member body with the world and parks
// each encounter off-screen, one above the other.
func (m *EncounterManager) AddEncountersToScene(w *World) {
	for i, enc := range m.Encounters {
		for _, mem := range enc.Members {
			w.Add(mem.Body)
		}
		m.park(enc, float64(i))
	}
}

func (m *EncounterManager) park(enc *Encounter, slot float64) {
	enc.X = encounterParkX
	enc.Placed = false
	for _, mem := range enc.Members {
		mem.Body.X = encounterParkX + mem.OffX
		mem.Body.Y = mem.InitY + slot*1000
		mem.Body.Stop()
		mem.Body.Enabled = false
	}
}

// PlaceNextEncounter picks a template other than the current one, resets
// it and moves it to x. It returns the placed encounter.
func (m *EncounterManager) PlaceNextEncounter(w *World, x float64) *Encounter {
	if len(m.Encounters) == 0 {
		return nil
	}
	next := m.rng.Intn(len(m.Encounters)) // #nosec G404 -- gameplay RNG
	if len(m.Encounters) > 1 {
		for next == m.current {
			next = m.rng.Intn(len(m.Encounters)) // #nosec G404 -- gameplay RNG
		}
	}
	m.current = next

	enc := m.Encounters[next]
	enc.X = x
	enc.Placed = true
	for _, mem := range enc.Members {
		mem.Body.X = x + mem.OffX
		mem.Body.Y = mem.InitY
		mem.Body.Stop()
		mem.Body.Enabled = true
		w.Forget(mem.Body)
		if mem.Coin != nil {
			mem.Coin.Reset()
		}
	}
	return enc
}

// Current returns the most recently placed encounter, or nil.
func (m *EncounterManager) Current() *Encounter {
	if m.current < 0 {
		return nil
	}
	return m.Encounters[m.current]
}

// Enemies returns every enemy in every encounter.
func (m *EncounterManager) Enemies() []*Enemy {
	var out []*Enemy
	for _, enc := range m.Encounters {
		for _, mem := range enc.Members {
			if mem.Enemy != nil {
				out = append(out, mem.Enemy)
			}
		}
	}
	return out
}

// Coins returns every coin in every encounter.
func (m *EncounterManager) Coins() []*Coin {
	var out []*Coin
	for _, enc := range m.Encounters {
		for _, mem := range enc.Members {
			if mem.Coin != nil {
				out = append(out, mem.Coin)
			}
		}
	}
	return out
}

// Animate advances every member's animation.
func (m *EncounterManager) Animate(dt float64) {
	for _, enc := range m.Encounters {
		for _, mem := range enc.Members {
			if mem.Enemy != nil {
				mem.Enemy.Animate(dt)
			} else {
				mem.Coin.Animate(dt)
			}
		}
	}
}
