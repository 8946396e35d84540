package rules

import (
	"errors"
	"math/rand"
)

// ClassDef defines a standard-rules class loaded from YAML.
type ClassDef struct {
	ID      string   `yaml:"id"`      // Unique identifier stored on characters (e.g., "warrior")
	Name    string   `yaml:"name"`    // Display name (e.g., "Warrior")
	HP      int      `yaml:"hp"`      // Base hit points at level 1
	MP      int      `yaml:"mp"`      // Base mana points at level 1
	Attack  int      `yaml:"attack"`  // Base attack power
	Defence int      `yaml:"defence"` // Base defence value
	Magic   int      `yaml:"magic"`   // Base magic power
	Weight  int      `yaml:"weight"`  // Relative generation frequency
	Actions []string `yaml:"actions"` // Action names this class can use
}

// ClassesFile represents the structure of classes.yaml.
type ClassesFile struct {
	Classes []ClassDef `yaml:"classes"`
}

// ClassRegistry holds loaded class definitions and provides weighted selection.
type ClassRegistry struct {
	classes     []ClassDef
	totalWeight int
}

// NewClassRegistry creates a registry from loaded class definitions.
func NewClassRegistry(classes []ClassDef) *ClassRegistry {
	totalWeight := 0
	for _, c := range classes {
		totalWeight += c.Weight
	}
	return &ClassRegistry{
		classes:     classes,
		totalWeight: totalWeight,
	}
}

// LoadClassRegistry loads and creates a registry from the embedded classes.yaml.
func LoadClassRegistry() (*ClassRegistry, error) {
	file, err := loadData[ClassesFile]("classes.yaml")
	if err != nil {
		return nil, err
	}
	if len(file.Classes) == 0 {
		return nil, errors.New("no classes loaded from classes.yaml")
	}
	return NewClassRegistry(file.Classes), nil
}

// Random selects a class definition using weighted probability.
func (r *ClassRegistry) Random(rng *rand.Rand) *ClassDef {
	if r.totalWeight <= 0 || len(r.classes) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.classes {
		cumulative += r.classes[i].Weight
		if roll < cumulative {
			return &r.classes[i]
		}
	}

	return &r.classes[0]
}

// GetByID returns the class definition with the given ID, or nil if not found.
func (r *ClassRegistry) GetByID(id string) *ClassDef {
	for i := range r.classes {
		if r.classes[i].ID == id {
			return &r.classes[i]
		}
	}
	return nil
}

// Count returns the number of classes in the registry.
func (r *ClassRegistry) Count() int {
	return len(r.classes)
}
