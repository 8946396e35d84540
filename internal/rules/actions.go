package rules

// EffectKind represents what an action does to its targets.
type EffectKind string

const (
	EffectDamage  EffectKind = "damage"
	EffectHeal    EffectKind = "heal"
	EffectRevive  EffectKind = "revive"
	EffectGuard   EffectKind = "guard"
	EffectRestore EffectKind = "restore"
)

// DamageType represents how damage is calculated.
type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamageMagical  DamageType = "magical"
	DamagePure     DamageType = "pure"
)

// ActionDef defines a standard-rules action loaded from YAML.
type ActionDef struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Hidden      bool       `yaml:"hidden"`
	Effect      EffectKind `yaml:"effect"`
	Damage      DamageType `yaml:"damage"`
	Scope       string     `yaml:"scope"`
	Filter      string     `yaml:"filter"`
	Power       int        `yaml:"power"`
	Costs       []CostDef  `yaml:"costs"`
}

// CostDef is a resource cost as written in YAML.
type CostDef struct {
	Attribute string `yaml:"attribute"`
	Amount    int    `yaml:"amount"`
}

// ActionsFile represents the structure of actions.yaml.
type ActionsFile struct {
	Actions []ActionDef `yaml:"actions"`
}

// LoadActions loads action definitions from the embedded actions.yaml file.
func LoadActions() ([]ActionDef, error) {
	file, err := loadData[ActionsFile]("actions.yaml")
	if err != nil {
		return nil, err
	}
	return file.Actions, nil
}
