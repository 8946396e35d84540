package rules

import (
	"fmt"
	"strings"

	"github.com/samdwyer/skirmish/internal/entity"
)

// Standard-rules attribute names beyond the well-known ones.
const (
	AttrLevel      = "Level"
	AttrExperience = "Experience"
	AttrAttack     = "Attack"
	AttrDefence    = "Defence"
	AttrMagic      = "Magic"
	AttrVitality   = "Vitality"
	AttrSpirit     = "Spirit"
	AttrGuard      = "Guard"
)

// EffectFor builds the effect function for a loaded action definition.
func EffectFor(def ActionDef) entity.Effect {
	label := entity.DisplayName(def.Name)
	return func(sources, targets []*entity.Character) string {
		user := sources[0]
		if len(targets) == 0 {
			return user.Name + " uses " + label + ", but nothing happens."
		}
		parts := make([]string, 0, len(targets))
		for _, target := range targets {
			parts = append(parts, resolve(def, label, user, target))
		}
		return strings.Join(parts, " ")
	}
}

// resolve applies def from user to a single target.
func resolve(def ActionDef, label string, user, target *entity.Character) string {
	switch def.Effect {
	case EffectDamage:
		return resolveDamage(def, label, user, target)
	case EffectHeal:
		return resolveHeal(def, user, target)
	case EffectRevive:
		return resolveRevive(def, user, target)
	case EffectGuard:
		target.Set(AttrGuard, 1)
		return target.Name + " braces for the next blow."
	case EffectRestore:
		restored := restoreMP(target, def.Power+user.Get(AttrMagic)/2)
		return fmt.Sprintf("%s recovers %d MP.", target.Name, restored)
	default:
		return user.Name + " uses " + label + "."
	}
}

// CalculateDamage returns the damage def would deal without applying it.
func CalculateDamage(def ActionDef, user, target *entity.Character) int {
	var damage int
	switch def.Damage {
	case DamageMagical:
		damage = def.Power + user.Get(AttrMagic)
	case DamagePure:
		return def.Power
	default:
		damage = def.Power + user.Get(AttrAttack) - target.Get(AttrDefence)
	}
	if damage < 1 {
		damage = 1
	}
	return damage
}

// CalculateHealing returns the healing def would restore without applying it.
func CalculateHealing(def ActionDef, user *entity.Character) int {
	healing := def.Power + user.Get(AttrMagic)
	if healing < 1 {
		healing = 1
	}
	return healing
}

func resolveDamage(def ActionDef, label string, user, target *entity.Character) string {
	damage := CalculateDamage(def, user, target)
	if target.Get(AttrGuard) > 0 {
		damage /= 2
		if damage < 1 {
			damage = 1
		}
		target.Set(AttrGuard, 0)
	}

	wasAlive := target.Alive()
	hp := target.Get(entity.AttrHPCurrent) - damage
	if hp < 0 {
		hp = 0
	}
	target.Set(entity.AttrHPCurrent, hp)

	msg := fmt.Sprintf("%s uses %s on %s for %d damage.", user.Name, label, target.Name, damage)
	if wasAlive && !target.Alive() {
		msg += " " + target.Name + " falls!"
		if user != target {
			msg += grantExperience(user, target.Get(AttrLevel)*5)
		}
	}
	return msg
}

func resolveHeal(def ActionDef, user, target *entity.Character) string {
	if !target.Alive() {
		return target.Name + " is beyond healing."
	}
	healed := heal(target, CalculateHealing(def, user))
	return fmt.Sprintf("%s heals %s for %d HP.", user.Name, target.Name, healed)
}

func resolveRevive(def ActionDef, user, target *entity.Character) string {
	if target.Alive() {
		return target.Name + " is already standing."
	}
	heal(target, CalculateHealing(def, user))
	return user.Name + " revives " + target.Name + "!"
}

// heal raises current HP by amount, capped at the total, and returns the gain.
func heal(c *entity.Character, amount int) int {
	current := c.Get(entity.AttrHPCurrent)
	total := c.Get(entity.AttrHPTotal)
	if current+amount > total {
		amount = total - current
	}
	if amount < 0 {
		amount = 0
	}
	c.Set(entity.AttrHPCurrent, current+amount)
	return amount
}

// restoreMP raises current MP by amount, capped at the total, and returns the gain.
func restoreMP(c *entity.Character, amount int) int {
	current := c.Get(entity.AttrMPCurrent)
	total := c.Get(entity.AttrMPTotal)
	if current+amount > total {
		amount = total - current
	}
	if amount < 0 {
		amount = 0
	}
	c.Set(entity.AttrMPCurrent, current+amount)
	return amount
}

// grantExperience adds xp to c and applies any level ups. The returned text is
// empty or starts with a space so it can be appended to a sentence.
func grantExperience(c *entity.Character, xp int) string {
	if xp < 1 {
		xp = 1
	}
	c.Add(AttrExperience, xp)

	var msg string
	for {
		level := c.Get(AttrLevel)
		if level < 1 {
			level = 1
		}
		threshold := level * 10
		if c.Get(AttrExperience) < threshold {
			break
		}
		c.Add(AttrExperience, -threshold)
		c.Set(AttrLevel, level+1)
		// New totals are derived from Level; grow the current values with them.
		c.Add(entity.AttrHPCurrent, hpPerLevel)
		c.Add(entity.AttrMPCurrent, mpPerLevel)
		msg += fmt.Sprintf(" %s reaches level %d!", c.Name, level+1)
	}
	return msg
}
