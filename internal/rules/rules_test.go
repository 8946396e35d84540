package rules

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/samdwyer/skirmish/internal/entity"
)

func TestNewRuleSet(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{SimpleName, SimpleName, false},
		{StandardName, StandardName, false},
		{"chess", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := New(tt.name, rand.New(rand.NewSource(1)))
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownRules) {
					t.Errorf("New(%q) error = %v, want ErrUnknownRules", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q) error = %v", tt.name, err)
			}
			if rs.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", rs.Name(), tt.want)
			}
		})
	}
}

func TestSplitPoints(t *testing.T) {
	got := SplitPoints(10, 4)
	want := []int{3, 3, 2, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SplitPoints(10, 4) = %v, want %v", got, want)
		}
	}
	if SplitPoints(5, 0) != nil {
		t.Error("SplitPoints with no members should be nil")
	}
}

func TestSplitPointsProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		points := rapid.IntRange(0, 500).Draw(t, "points")
		members := rapid.IntRange(1, 12).Draw(t, "members")

		shares := SplitPoints(points, members)
		if len(shares) != members {
			t.Fatalf("got %d shares, want %d", len(shares), members)
		}
		sum := 0
		for i, s := range shares {
			sum += s
			if i > 0 && s > shares[i-1] {
				t.Fatalf("shares not non-increasing: %v", shares)
			}
		}
		if sum != points {
			t.Fatalf("shares sum to %d, want %d", sum, points)
		}
		if shares[0]-shares[members-1] > 1 {
			t.Fatalf("uneven split: %v", shares)
		}
	})
}

func TestNameGenerator(t *testing.T) {
	pools := NamePools{First: []string{"Ada"}, Last: []string{"Lovelace"}, Parties: []string{"Band"}}
	g := NewNameGenerator(rand.New(rand.NewSource(1)), pools)

	if got := g.Character(); got != "Ada Lovelace" {
		t.Errorf("Character() = %q, want %q", got, "Ada Lovelace")
	}
	if got := g.Party(); got != "Band of Lovelace" {
		t.Errorf("Party() = %q, want %q", got, "Band of Lovelace")
	}

	empty := NewNameGenerator(rand.New(rand.NewSource(1)), NamePools{})
	if got := empty.Character(); got != "Nobody" {
		t.Errorf("Character() with empty pools = %q, want %q", got, "Nobody")
	}
}

func TestSimpleGenerateCharacter(t *testing.T) {
	s := NewSimple(rand.New(rand.NewSource(7)))
	c := s.GenerateCharacter(6)

	if got := c.Get("Attack") + c.Get("Defence"); got != 8 {
		t.Errorf("Attack+Defence = %d, want 8", got)
	}
	if got := c.Get(entity.AttrHPTotal); got != 5 {
		t.Errorf("HP/Total = %d, want 5", got)
	}
	if !c.Healthy() {
		t.Error("fresh character should be healthy")
	}

	c.Set("Experience", 3)
	if got := c.Get(entity.AttrHPTotal); got != 11 {
		t.Errorf("HP/Total after experience = %d, want 11", got)
	}
}

func TestSimpleAttack(t *testing.T) {
	s := NewSimple(rand.New(rand.NewSource(1)))
	hero := entity.NewCharacter("Hero")
	slime := entity.NewCharacter("Slime")
	s.Bind(hero)
	s.Bind(slime)
	hero.Set("Attack", 3)
	slime.Set(entity.AttrHPCurrent, 2)

	msg := hero.Perform("Attack", []*entity.Character{slime})
	if !strings.Contains(msg, "Hero attacks Slime for 3 damage.") {
		t.Errorf("Perform() = %q, want attack narrative", msg)
	}
	if !strings.Contains(msg, "Slime falls!") {
		t.Errorf("Perform() = %q, want fall narrative", msg)
	}
	if slime.Alive() {
		t.Error("slime should be dead")
	}
	if got := hero.Get("Experience"); got != 1 {
		t.Errorf("Experience = %d, want 1", got)
	}
}

func TestStandardLoads(t *testing.T) {
	s, err := NewStandard(rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewStandard() error = %v", err)
	}

	if s.Classes().Count() != 4 {
		t.Errorf("Expected 4 classes, got %d", s.Classes().Count())
	}
	if s.Actions().Len() != 10 {
		t.Errorf("Expected 10 actions, got %d", s.Actions().Len())
	}

	bolt, ok := s.Actions().Get("Magic/Bolt")
	if !ok {
		t.Fatal("Magic/Bolt not registered")
	}
	if bolt.Scope != entity.ScopeEnemy || bolt.CostLabel() != "3 MP" {
		t.Errorf("Magic/Bolt = %v %q, want enemy scope costing 3 MP", bolt.Scope, bolt.CostLabel())
	}

	defend, _ := s.Actions().Get("Defend")
	if defend.Filter != entity.FilterOnlyAlive {
		t.Errorf("Defend filter = %q, want onlyAlive", defend.Filter)
	}
}

func TestClassRegistryRandomIsDeterministic(t *testing.T) {
	registry, err := LoadClassRegistry()
	if err != nil {
		t.Fatalf("LoadClassRegistry() error = %v", err)
	}

	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))
	for i := 0; i < 10; i++ {
		a, b := registry.Random(rng1).ID, registry.Random(rng2).ID
		if a != b {
			t.Fatalf("roll %d: %q != %q with same seed", i, a, b)
		}
	}

	if registry.GetByID("wizard") == nil {
		t.Error("wizard not found by ID")
	}
	if registry.GetByID("bard") != nil {
		t.Error("unknown class should be nil")
	}
}

func TestStandardGenerateParty(t *testing.T) {
	s, err := NewStandard(rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewStandard() error = %v", err)
	}

	p := s.GenerateParty(4, 12)
	if p.Len() != 4 {
		t.Fatalf("party size = %d, want 4", p.Len())
	}
	if p.Inventory[PotionItem] != StartingPotions {
		t.Errorf("potions = %d, want %d", p.Inventory[PotionItem], StartingPotions)
	}
	for _, m := range p.Members {
		if !m.Alive() || !m.Healthy() {
			t.Errorf("%s should start alive and healthy", m.Name)
		}
		if m.Get(entity.AttrMPCurrent) != m.Get(entity.AttrMPTotal) {
			t.Errorf("%s should start with full MP", m.Name)
		}
		class := s.Classes().GetByID(m.Class)
		if class == nil {
			t.Fatalf("%s has unknown class %q", m.Name, m.Class)
		}
		if got := m.Actions().Names(); len(got) != len(class.Actions) {
			t.Errorf("%s (%s) actions = %v, want %v", m.Name, m.Class, got, class.Actions)
		}
	}
}

func TestStandardDerivedTotals(t *testing.T) {
	s, err := NewStandard(rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewStandard() error = %v", err)
	}

	c := entity.NewCharacter("Tess")
	c.Class = "cleric"
	c.Set(AttrLevel, 3)
	c.Set(AttrVitality, 20)
	c.Set(AttrSpirit, 10)
	s.Bind(c)

	if got := c.Get(entity.AttrHPTotal); got != 28 {
		t.Errorf("HP/Total = %d, want 28", got)
	}
	if got := c.Get(entity.AttrMPTotal); got != 14 {
		t.Errorf("MP/Total = %d, want 14", got)
	}
	if _, ok := c.Action("Magic/Heal"); !ok {
		t.Error("cleric should know Magic/Heal")
	}
	if _, ok := c.Action("Quake"); ok {
		t.Error("cleric should not know Quake")
	}
}

func TestCalculateDamage(t *testing.T) {
	user := entity.NewCharacter("User")
	user.Set(AttrAttack, 5)
	user.Set(AttrMagic, 4)
	target := entity.NewCharacter("Target")
	target.Set(AttrDefence, 10)

	tests := []struct {
		name string
		def  ActionDef
		want int
	}{
		{"physical minimum", ActionDef{Damage: DamagePhysical, Power: 2}, 1},
		{"magical", ActionDef{Damage: DamageMagical, Power: 6}, 10},
		{"pure", ActionDef{Damage: DamagePure, Power: 4}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateDamage(tt.def, user, target); got != tt.want {
				t.Errorf("CalculateDamage() = %d, want %d", got, tt.want)
			}
		})
	}
}

func standardPair(t *testing.T) (*Standard, *entity.Character, *entity.Character) {
	t.Helper()
	s, err := NewStandard(rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewStandard() error = %v", err)
	}
	mk := func(name string) *entity.Character {
		c := entity.NewCharacter(name)
		c.Set(AttrLevel, 1)
		c.Set(AttrVitality, 20)
		c.Set(AttrSpirit, 10)
		c.Set(AttrAttack, 6)
		c.Set(AttrDefence, 2)
		c.Set(AttrMagic, 4)
		s.Bind(c)
		c.Set(entity.AttrHPCurrent, 20)
		c.Set(entity.AttrMPCurrent, 10)
		return c
	}
	return s, mk("Ann"), mk("Bo")
}

func TestGuardHalvesNextHit(t *testing.T) {
	_, ann, bo := standardPair(t)

	bo.Perform("Defend", []*entity.Character{bo})
	ann.Perform("Attack", []*entity.Character{bo})

	// 2 + 6 - 2 = 6, halved to 3.
	if got := bo.Get(entity.AttrHPCurrent); got != 17 {
		t.Errorf("HP after guarded hit = %d, want 17", got)
	}
	if bo.Get(AttrGuard) != 0 {
		t.Error("guard should be spent after one hit")
	}

	ann.Perform("Attack", []*entity.Character{bo})
	if got := bo.Get(entity.AttrHPCurrent); got != 11 {
		t.Errorf("HP after unguarded hit = %d, want 11", got)
	}
}

func TestHealCapsAtTotal(t *testing.T) {
	_, ann, bo := standardPair(t)
	bo.Set(entity.AttrHPCurrent, 18)

	msg := ann.Perform("Magic/Heal", []*entity.Character{bo})
	if got := bo.Get(entity.AttrHPCurrent); got != 20 {
		t.Errorf("HP after heal = %d, want 20", got)
	}
	if !strings.Contains(msg, "for 2 HP") {
		t.Errorf("Perform() = %q, want capped heal amount", msg)
	}
	if got := ann.Get(entity.AttrMPCurrent); got != 7 {
		t.Errorf("MP after heal = %d, want 7", got)
	}
}

func TestReviveOnlyAffectsTheDead(t *testing.T) {
	_, ann, bo := standardPair(t)

	msg := ann.Perform("Magic/Revive", []*entity.Character{bo})
	if !strings.Contains(msg, "already standing") {
		t.Errorf("Perform() = %q, want already standing", msg)
	}

	ann.Set(entity.AttrMPCurrent, 10)
	bo.Set(entity.AttrHPCurrent, 0)
	ann.Perform("Magic/Revive", []*entity.Character{bo})
	if !bo.Alive() {
		t.Error("revived character should be alive")
	}
	if got := bo.Get(entity.AttrHPCurrent); got != 9 {
		t.Errorf("HP after revive = %d, want 9", got)
	}
}

func TestKillGrantsExperienceAndLevel(t *testing.T) {
	_, ann, bo := standardPair(t)
	ann.Set(AttrExperience, 8)
	bo.Set(entity.AttrHPCurrent, 1)

	msg := ann.Perform("Attack", []*entity.Character{bo})
	if !strings.Contains(msg, "Bo falls!") {
		t.Errorf("Perform() = %q, want fall narrative", msg)
	}
	if !strings.Contains(msg, "Ann reaches level 2!") {
		t.Errorf("Perform() = %q, want level up", msg)
	}
	if got := ann.Get(AttrLevel); got != 2 {
		t.Errorf("Level = %d, want 2", got)
	}
	if got := ann.Get(AttrExperience); got != 3 {
		t.Errorf("Experience = %d, want 3", got)
	}
	if got := ann.Get(entity.AttrHPTotal); got != 24 {
		t.Errorf("HP/Total = %d, want 24", got)
	}
	if bo.Get(entity.AttrHPCurrent) != 0 {
		t.Error("HP should clamp at zero")
	}
}

func TestDrinkPotion(t *testing.T) {
	_, ann, _ := standardPair(t)
	p := entity.NewParty("Band", ann)
	p.AddItem(PotionItem, 1)
	ann.Set(entity.AttrHPCurrent, 5)

	msg, ok := DrinkPotion(p, ann)
	if !ok {
		t.Fatalf("DrinkPotion() = %q, want success", msg)
	}
	if got := ann.Get(entity.AttrHPCurrent); got != 15 {
		t.Errorf("HP after potion = %d, want 15", got)
	}
	if _, ok := DrinkPotion(p, ann); ok {
		t.Error("second potion should fail with an empty inventory")
	}
}

func TestLoadDataErrors(t *testing.T) {
	if _, err := loadData[NamePools]("missing.yaml"); !errors.Is(err, ErrRuleData) {
		t.Errorf("loadData(missing.yaml) error = %v, want ErrRuleData", err)
	}

	// classes.yaml has a top-level key the name pools do not declare.
	_, err := loadData[NamePools]("classes.yaml")
	if !errors.Is(err, ErrRuleData) {
		t.Fatalf("loadData(classes.yaml) error = %v, want ErrRuleData", err)
	}
	if !strings.Contains(err.Error(), "classes") {
		t.Errorf("error %q does not name the unknown key", err)
	}

	pools, err := loadData[NamePools]("names.yaml")
	if err != nil {
		t.Fatalf("loadData(names.yaml): %v", err)
	}
	if len(pools.First) == 0 || len(pools.Parties) == 0 {
		t.Errorf("name pools are empty: %+v", pools)
	}
}
