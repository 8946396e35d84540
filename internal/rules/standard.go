package rules

import (
	"fmt"
	"math/rand"

	"github.com/samdwyer/skirmish/internal/entity"
)

// StandardName is the configuration name of the standard rule set.
const StandardName = "standard"

// Totals grow by these amounts for every level past the first.
const (
	hpPerLevel = 4
	mpPerLevel = 2
)

// StartingPotions is the number of potions a generated party carries.
const StartingPotions = 2

// Standard is the class-based rule set. Classes, actions and names are loaded
// from embedded YAML.
type Standard struct {
	rng     *rand.Rand
	names   *NameGenerator
	classes *ClassRegistry
	defs    map[string]ActionDef
	actions *entity.ActionSet
	byClass map[string]*entity.ActionSet
}

// NewStandard loads the embedded data and creates the standard rule set.
func NewStandard(rng *rand.Rand) (*Standard, error) {
	classes, err := LoadClassRegistry()
	if err != nil {
		return nil, err
	}
	defs, err := LoadActions()
	if err != nil {
		return nil, err
	}

	s := &Standard{
		rng:     rng,
		names:   NewNameGenerator(rng, MustLoadNames()),
		classes: classes,
		defs:    make(map[string]ActionDef, len(defs)),
		actions: entity.NewActionSet(),
		byClass: make(map[string]*entity.ActionSet, classes.Count()),
	}

	for _, def := range defs {
		action, err := toAction(def)
		if err != nil {
			return nil, err
		}
		if err := s.actions.Register(action); err != nil {
			return nil, err
		}
		s.defs[def.Name] = def
	}

	for i := range classes.classes {
		class := &classes.classes[i]
		for _, name := range class.Actions {
			if _, ok := s.defs[name]; !ok {
				return nil, fmt.Errorf("class %s references unknown action %q", class.ID, name)
			}
		}
		s.byClass[class.ID] = s.actions.Subset(class.Actions)
	}

	return s, nil
}

// toAction converts a loaded definition into a shared action binding.
func toAction(def ActionDef) (*entity.Action, error) {
	scope := entity.Scope(def.Scope)
	switch scope {
	case entity.ScopeSelf, entity.ScopeAlly, entity.ScopeParty,
		entity.ScopeEnemy, entity.ScopeEnemies, entity.ScopeEveryone:
	default:
		return nil, fmt.Errorf("action %q has invalid scope %q", def.Name, def.Scope)
	}

	filter := entity.Filter(def.Filter)
	if filter == "" {
		filter = entity.FilterNone
	}

	costs := make([]entity.Cost, len(def.Costs))
	for i, c := range def.Costs {
		costs[i] = entity.Cost{Attribute: c.Attribute, Amount: c.Amount}
	}

	return &entity.Action{
		Name:    def.Name,
		Visible: !def.Hidden,
		Scope:   scope,
		Filter:  filter,
		Costs:   costs,
		Effect:  EffectFor(def),
	}, nil
}

// Name implements RuleSet.
func (s *Standard) Name() string { return StandardName }

// Actions implements RuleSet.
func (s *Standard) Actions() *entity.ActionSet { return s.actions }

// Classes returns the loaded class registry.
func (s *Standard) Classes() *ClassRegistry { return s.classes }

// Bind implements RuleSet. Characters whose class is unknown get every action.
func (s *Standard) Bind(c *entity.Character) {
	c.Derive(entity.AttrHPTotal, func(c *entity.Character) int {
		return c.Get(AttrVitality) + (c.Get(AttrLevel)-1)*hpPerLevel
	})
	c.Derive(entity.AttrMPTotal, func(c *entity.Character) int {
		return c.Get(AttrSpirit) + (c.Get(AttrLevel)-1)*mpPerLevel
	})
	c.Derive(entity.AttrAlive, func(c *entity.Character) int {
		if c.Get(entity.AttrHPCurrent) > 0 {
			return 1
		}
		return 0
	})

	if set, ok := s.byClass[c.Class]; ok {
		c.SetActions(set)
	} else {
		c.SetActions(s.actions)
	}
}

// GenerateCharacter implements RuleSet. The class is rolled by weight and each
// point raises Attack, Defence or Magic by one, or Vitality by two.
func (s *Standard) GenerateCharacter(points int) *entity.Character {
	class := s.classes.Random(s.rng)

	c := entity.NewCharacter(s.names.Character())
	c.Class = class.ID
	c.Set(AttrLevel, 1)
	c.Set(AttrExperience, 0)
	c.Set(AttrAttack, class.Attack)
	c.Set(AttrDefence, class.Defence)
	c.Set(AttrMagic, class.Magic)
	c.Set(AttrVitality, class.HP)
	c.Set(AttrSpirit, class.MP)
	c.Set(AttrGuard, 0)

	for i := 0; i < points; i++ {
		switch s.rng.Intn(4) {
		case 0:
			c.Add(AttrAttack, 1)
		case 1:
			c.Add(AttrDefence, 1)
		case 2:
			c.Add(AttrMagic, 1)
		default:
			c.Add(AttrVitality, 2)
		}
	}

	s.Bind(c)
	c.Set(entity.AttrHPCurrent, c.Get(entity.AttrHPTotal))
	c.Set(entity.AttrMPCurrent, c.Get(entity.AttrMPTotal))
	return c
}

// GenerateParty implements RuleSet.
func (s *Standard) GenerateParty(members, points int) *entity.Party {
	p := entity.NewParty(s.names.Party())
	for _, share := range SplitPoints(points, members) {
		p.Members = append(p.Members, s.GenerateCharacter(share))
	}
	p.AddItem(PotionItem, StartingPotions)
	return p
}

// PotionItem is the inventory key for healing potions.
const PotionItem = "Potion"

// PotionStrength is the HP a potion restores.
const PotionStrength = 10

// DrinkPotion consumes one potion from p to heal c. It returns a narrative and
// whether a potion was used.
func DrinkPotion(p *entity.Party, c *entity.Character) (string, bool) {
	if p.Inventory[PotionItem] <= 0 {
		return "There are no potions left.", false
	}
	if !c.Alive() {
		return c.Name + " is beyond the help of a potion.", false
	}
	p.AddItem(PotionItem, -1)
	healed := heal(c, PotionStrength)
	return fmt.Sprintf("%s drinks a potion and recovers %d HP.", c.Name, healed), true
}
