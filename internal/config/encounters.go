package config

import "fmt"

// MemberKind names a sprite that can appear in an encounter.
type MemberKind string

const (
	KindBat        MemberKind = "bat"
	KindBlade      MemberKind = "blade"
	KindMadFly     MemberKind = "madfly"
	KindBronzeCoin MemberKind = "bronze-coin"
	KindGoldCoin   MemberKind = "gold-coin"
)

// EncounterFile is the top-level document of encounters.yaml.
type EncounterFile struct {
	Encounters []EncounterTemplate `yaml:"encounters"`
}

// EncounterTemplate is a pre-built group of enemies and coins.
type EncounterTemplate struct {
	Name    string           `yaml:"name"`
	Members []MemberTemplate `yaml:"members"`
}

// MemberTemplate places one sprite relative to the encounter origin.
type MemberTemplate struct {
	Kind MemberKind `yaml:"kind"`
	X    float64    `yaml:"x"`
	Y    float64    `yaml:"y"`
}

// Validate checks that the file has at least one non-empty encounter and
// that every member kind is known.
func (f EncounterFile) Validate() error {
	if len(f.Encounters) == 0 {
		return ErrNoEncounters
	}
	for _, e := range f.Encounters {
		if len(e.Members) == 0 {
			return fmt.Errorf("%w: encounter %q has no members", ErrNoEncounters, e.Name)
		}
		for _, m := range e.Members {
			switch m.Kind {
			case KindBat, KindBlade, KindMadFly, KindBronzeCoin, KindGoldCoin:
			default:
				return fmt.Errorf("config: encounter %q: unknown member kind %q", e.Name, m.Kind)
			}
		}
	}
	return nil
}
