package nit

import (
	"math"

	"github.com/annel0/nitworld/internal/vec"
	"github.com/go-gl/mathgl/mgl64"
)

// BaseSpeed возвращает скорость по ровной поверхности без учёта спринта
func (n *Nit) BaseSpeed() float64 {
	factor := BaseSpeedFactor
	if n.sprinting {
		factor = SprintSpeedFactor
	}
	return float64(n.strength+n.agility) / (2 * float64(n.TotalWeight())) * factor
}

// CurrentSpeed возвращает текущую скорость: ноль вне движения,
// иначе базовая с поправкой на подъём или спуск.
func (n *Nit) CurrentSpeed() float64 {
	if n.state != StateMoving {
		return 0
	}
	speed := n.BaseSpeed()

	dz := n.shortTerm.Center().Z() - n.position.Z()
	switch {
	case dz > 0:
		speed *= ClimbFactor
	case dz < 0:
		speed *= DescendFactor
	}
	return speed
}

// beginStep начинает движение к соседнему кубику
func (n *Nit) beginStep(next vec.Vec3) {
	n.shortTerm = next
	n.setState(StateMoving)
}

// continueJourney планирует следующий шаг к недостигнутой конечной цели.
// Если путь не найден, цель помечается недостижимой, а задача снимается.
func (n *Nit) continueJourney() error {
	cube := n.Cube()

	// Прерванный посреди шага нит сначала возвращается в центр своего кубика
	if n.position != cube.Center() {
		n.beginStep(cube)
		return nil
	}
	if cube == n.longTerm {
		n.longTermReached = true
		return nil
	}

	next, ok := NewPlanner(n.world, n.kind).NextStep(cube, n.longTerm)
	if !ok {
		log.Debug("нит %s: путь %v -> %v не найден", n.name, cube, n.longTerm)
		n.longTermReached = true
		n.listener.PathFailed(n, n.longTerm)
		if n.task != nil {
			n.interruptTask()
		}
		return nil
	}

	n.beginStep(next)
	return nil
}

// controlMoving продвигает нита к центру ближайшего кубика пути
func (n *Nit) controlMoving(dt float64) error {
	n.updateSprint(dt)

	target := n.shortTerm.Center()
	diff := target.Sub(n.position)
	distance := diff.Len()
	speed := n.CurrentSpeed()

	if distance == 0 || distance < speed*dt {
		return n.arrive(target)
	}

	n.velocity = diff.Mul(speed / distance)
	if err := n.setPosition(n.position.Add(n.velocity.Mul(dt))); err != nil {
		// Кубик под ногами изменился — прекращаем движение
		n.abandonJourney()
		return err
	}
	if n.velocity.X() != 0 || n.velocity.Y() != 0 {
		n.setOrientation(math.Atan2(n.velocity.Y(), n.velocity.X()))
	}
	return nil
}

// arrive ставит нита точно в центр кубика назначения
func (n *Nit) arrive(target mgl64.Vec3) error {
	if err := n.setPosition(target); err != nil {
		n.abandonJourney()
		return err
	}
	n.velocity = mgl64.Vec3{}
	n.addExperience(XPPerStep)

	if n.Cube() == n.longTerm {
		n.longTermReached = true
	}
	if n.longTermReached {
		n.sprinting = false
	}
	n.setState(StateEmpty)
	return nil
}

func (n *Nit) abandonJourney() {
	n.longTermReached = true
	n.sprinting = false
	n.setState(StateEmpty)
}

// updateSprint расходует стамину во время спринта и изредка начинает его
func (n *Nit) updateSprint(dt float64) {
	if n.sprinting {
		n.sprintDrain += dt * SprintStaminaPerSecond
		for n.sprintDrain >= 1 && n.staminaPoints > 0 {
			n.staminaPoints--
			n.sprintDrain--
		}
		if n.staminaPoints <= 0 {
			n.staminaPoints = 0
			n.sprinting = false
			n.sprintDrain = 0
		}
		return
	}

	if n.defaultBehaviour && n.staminaPoints > 0 && n.rng.Float64() < SprintChance {
		n.sprinting = true
	}
}
