package nit

// Attribute: улучшаемый атрибут нита
type Attribute int

const (
	AttrWeight Attribute = iota
	AttrStrength
	AttrAgility
	AttrToughness
)

func (a Attribute) String() string {
	switch a {
	case AttrWeight:
		return "weight"
	case AttrStrength:
		return "strength"
	case AttrAgility:
		return "agility"
	case AttrToughness:
		return "toughness"
	default:
		return "unknown"
	}
}

// skillOrders: порядок попыток для каждой из трёх равных полос броска
var skillOrders = [3][3]Attribute{
	{AttrStrength, AttrAgility, AttrToughness},
	{AttrAgility, AttrToughness, AttrStrength},
	{AttrToughness, AttrStrength, AttrAgility},
}

// addExperience начисляет опыт. Каждые SkillThreshold единиц временного
// опыта превращаются в улучшение одного атрибута.
func (n *Nit) addExperience(xp int) {
	if xp <= 0 {
		return
	}
	n.experience += xp
	n.temporaryXP += xp

	for n.temporaryXP >= SkillThreshold {
		n.temporaryXP -= SkillThreshold
		n.increaseSkill()
	}
}

// increaseSkill бросает кубик и улучшает первый атрибут, который ещё можно поднять
func (n *Nit) increaseSkill() {
	band := int(n.rng.Float64() * 3)
	if band > 2 {
		band = 2
	}

	for _, attr := range skillOrders[band] {
		if n.attribute(attr) >= MaxAttribute {
			continue
		}
		n.setAttributeUnchecked(attr, n.attribute(attr)+1)
		n.repairWeight()
		n.clampVitals()

		log.Debug("нит %s улучшил %s до %d", n.name, attr, n.attribute(attr))
		n.listener.SkillIncreased(n, attr)
		return
	}
}

// repairWeight поднимает вес до минимума, требуемого инвариантом
func (n *Nit) repairWeight() {
	need := minWeight(n.strength, n.agility)
	if n.weight < need {
		if need > MaxAttribute {
			need = MaxAttribute
		}
		n.weight = need
	}
}

func (n *Nit) attribute(a Attribute) int {
	switch a {
	case AttrWeight:
		return n.weight
	case AttrStrength:
		return n.strength
	case AttrAgility:
		return n.agility
	default:
		return n.toughness
	}
}

func (n *Nit) setAttributeUnchecked(a Attribute, v int) {
	switch a {
	case AttrWeight:
		n.weight = v
	case AttrStrength:
		n.strength = v
	case AttrAgility:
		n.agility = v
	default:
		n.toughness = v
	}
}
