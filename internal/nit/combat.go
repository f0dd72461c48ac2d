package nit

import (
	"fmt"

	"github.com/annel0/nitworld/internal/vec"
)

// Outcome описывает исход защиты от атаки
type Outcome int

const (
	OutcomeDodged Outcome = iota
	OutcomeBlocked
	OutcomeHit
)

// String возвращает имя исхода
func (o Outcome) String() string {
	switch o {
	case OutcomeDodged:
		return "dodged"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeHit:
		return "hit"
	default:
		return "unknown"
	}
}

// CombatStats: атрибуты, участвующие в разрешении боя
type CombatStats struct {
	Strength int
	Agility  int
}

// DodgeChance = 0.20 * defenderAgility / attackerAgility
func DodgeChance(attacker, defender CombatStats) float64 {
	if attacker.Agility <= 0 {
		return 0
	}
	return DodgeFactor * float64(defender.Agility) / float64(attacker.Agility)
}

// BlockChance = 0.25 * (defAgility+defStrength) / (attAgility+attStrength)
func BlockChance(attacker, defender CombatStats) float64 {
	total := attacker.Agility + attacker.Strength
	if total <= 0 {
		return 0
	}
	return BlockFactor * float64(defender.Agility+defender.Strength) / float64(total)
}

// Damage: урон от попадания
func Damage(attacker CombatStats) int {
	return attacker.Strength / DamageDivisor
}

// ResolveDefense определяет исход: сначала уклонение, затем блок, иначе попадание.
// Каждая проверка тянет одно случайное число.
func ResolveDefense(attacker, defender CombatStats, rng Random) Outcome {
	if rng.Float64() < DodgeChance(attacker, defender) {
		return OutcomeDodged
	}
	if rng.Float64() < BlockChance(attacker, defender) {
		return OutcomeBlocked
	}
	return OutcomeHit
}

func (n *Nit) combatStats() CombatStats {
	return CombatStats{Strength: n.strength, Agility: n.agility}
}

// IsEngaged сообщает, атакует ли нит или атакован ли он
func (n *Nit) IsEngaged() bool {
	return n.state == StateAttacking || n.attacked
}

// CanAttack проверяет предусловия атаки
func (n *Nit) CanAttack(target *Nit) bool {
	return n.attackError(target) == nil
}

func (n *Nit) attackError(target *Nit) error {
	switch {
	case target == nil:
		return fmt.Errorf("%w: no target", ErrInvalidTarget)
	case n.terminated:
		return ErrTerminated
	case target == n:
		return fmt.Errorf("%w: %s cannot attack itself", ErrInvalidTarget, n.name)
	case target.terminated:
		return fmt.Errorf("%w: %s is dead", ErrInvalidTarget, target.name)
	case n.IsEngaged():
		return fmt.Errorf("%w: %s is already fighting", ErrBusy, n.name)
	case !n.Cube().IsAdjacentOrSame(target.Cube()):
		return fmt.Errorf("%w: %s is not adjacent", ErrInvalidTarget, target.name)
	case target.IsEngaged():
		return fmt.Errorf("%w: %s is already engaged", ErrInvalidTarget, target.name)
	case n.faction == target.faction:
		return fmt.Errorf("%w: %s belongs to the same faction", ErrInvalidTarget, target.name)
	case target.state == StateFalling:
		return fmt.Errorf("%w: %s is falling", ErrInvalidTarget, target.name)
	}
	return nil
}

// Attack начинает атаку на соседнего нита другой фракции.
// Нарушение предусловий — ошибка вызывающего.
func (n *Nit) Attack(target *Nit) error {
	if err := n.attackError(target); err != nil {
		return err
	}

	n.face(target.position)
	target.face(n.position)

	n.opponent = target
	n.timeToCompletion = AttackDuration
	n.setState(StateAttacking)

	target.attacked = true

	log.Debug("нит %s атакует %s", n.name, target.name)
	return nil
}

// FindEnemy возвращает первого нита, которого можно атаковать прямо сейчас
func (n *Nit) FindEnemy() *Nit {
	for _, other := range n.world.Nits() {
		if n.CanAttack(other) {
			return other
		}
	}
	return nil
}

// controlAttacking отсчитывает время атаки и разрешает её
func (n *Nit) controlAttacking(dt float64) error {
	n.timeToCompletion -= dt
	if n.timeToCompletion > 0 {
		return nil
	}
	n.timeToCompletion = 0

	defender := n.opponent
	if defender == nil || defender.terminated {
		n.opponent = nil
		n.setState(StateEmpty)
		return nil
	}

	n.resolveAttack(defender)
	return nil
}

func (n *Nit) resolveAttack(defender *Nit) {
	outcome := ResolveDefense(n.combatStats(), defender.combatStats(), n.rng)

	switch outcome {
	case OutcomeDodged:
		defender.dodge()
		defender.addExperience(XPPerCombat)
	case OutcomeBlocked:
		defender.addExperience(XPPerCombat)
	case OutcomeHit:
		defender.takeDamage(Damage(n.combatStats()))
		n.addExperience(XPPerCombat)
	}

	defender.attacked = false
	defender.setState(StateEmpty)
	n.opponent = nil
	n.setState(StateEmpty)

	log.Debug("атака %s -> %s: %s (HP защитника %d)", n.name, defender.name, outcome, defender.hitPoints)
	n.listener.AttackResolved(n, defender, outcome)

	if defender.hitPoints == 0 {
		defender.Terminate()
	}
}

// takeDamage вычитает урон с ограничением снизу нулём
func (n *Nit) takeDamage(damage int) {
	n.hitPoints -= damage
	if n.hitPoints < 0 {
		n.hitPoints = 0
	}
	if limit := n.MaxHitPoints(); n.hitPoints > limit {
		n.hitPoints = limit
	}
}

// dodge переносит нита в случайный соседний кубик на том же уровне.
// Кандидаты перебираются в случайном порядке до первого подходящего.
func (n *Nit) dodge() {
	cube := n.Cube()
	candidates := make([]vec.Vec3, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			candidates = append(candidates, cube.Add(vec.Vec3{X: dx, Y: dy}))
		}
	}

	for i := len(candidates) - 1; i > 0; i-- {
		j := n.rng.Intn(i + 1)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}

	for _, c := range candidates {
		if err := n.setPosition(c.Center()); err == nil {
			return
		}
	}
	log.Debug("нит %s: некуда уклониться из %v", n.name, cube)
}
