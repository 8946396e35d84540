package rules

import (
	"math/rand"
)

// NamePools holds the word lists names are drawn from.
type NamePools struct {
	First   []string `yaml:"first"`
	Last    []string `yaml:"last"`
	Parties []string `yaml:"parties"`
}

// MustLoadNames loads the embedded name pools. The pools ship with the
// binary, so failing to decode them panics.
func MustLoadNames() NamePools {
	pools, err := loadData[NamePools]("names.yaml")
	if err != nil {
		panic(err)
	}
	return pools
}

// NameGenerator produces character and party names from a shared RNG.
type NameGenerator struct {
	rng   *rand.Rand
	pools NamePools
}

// NewNameGenerator creates a generator over pools.
func NewNameGenerator(rng *rand.Rand, pools NamePools) *NameGenerator {
	return &NameGenerator{rng: rng, pools: pools}
}

// Character returns a "First Last" name.
func (g *NameGenerator) Character() string {
	first := pick(g.rng, g.pools.First, "Nobody")
	last := pick(g.rng, g.pools.Last, "")
	if last == "" {
		return first
	}
	return first + " " + last
}

// Party returns a party name such as "Warband of Thorne".
func (g *NameGenerator) Party() string {
	kind := pick(g.rng, g.pools.Parties, "Party")
	last := pick(g.rng, g.pools.Last, "")
	if last == "" {
		return kind
	}
	return kind + " of " + last
}

func pick(rng *rand.Rand, pool []string, fallback string) string {
	if len(pool) == 0 {
		return fallback
	}
	return pool[rng.Intn(len(pool))]
}
