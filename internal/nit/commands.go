package nit

import (
	"fmt"

	"github.com/annel0/nitworld/internal/vec"
)

// commandAllowed проверяет общие предусловия команд: нит жив и не в бою
func (n *Nit) commandAllowed() error {
	if n.terminated {
		return ErrTerminated
	}
	if n.IsEngaged() {
		return fmt.Errorf("%w: %s", ErrBusy, n.name)
	}
	return nil
}

// MoveTo задаёт конечную цель движения. Путь строится по шагам:
// каждый раз выбирается следующий соседний кубик.
func (n *Nit) MoveTo(dest vec.Vec3) error {
	if err := n.commandAllowed(); err != nil {
		return err
	}
	if !n.kind.CanStand(n.world, dest) {
		return fmt.Errorf("%w: %s cannot reach %v", ErrInvalidPosition, n.name, dest)
	}

	n.longTerm = dest
	n.longTermReached = false

	// Идущий нит сначала заканчивает текущий шаг
	if n.state == StateMoving {
		return nil
	}
	n.setState(StateEmpty)

	cube := n.Cube()
	if dest == cube {
		n.beginStep(cube)
		return nil
	}
	return n.continueJourney()
}

// MoveToAdjacent перемещает нита в соседний кубик по единичному смещению
func (n *Nit) MoveToAdjacent(dx, dy, dz int) error {
	d := vec.Vec3{X: dx, Y: dy, Z: dz}
	if !d.IsUnitStep() {
		return fmt.Errorf("%w: step %v is not a unit step", ErrInvalidPosition, d)
	}
	return n.MoveTo(n.Cube().Add(d))
}

// StartSprinting включает спринт. Действует только во время движения
// и при ненулевой стамине.
func (n *Nit) StartSprinting() {
	if n.state == StateMoving && n.staminaPoints > 0 {
		n.sprinting = true
	}
}

// StopSprinting выключает спринт
func (n *Nit) StopSprinting() {
	n.sprinting = false
	n.sprintDrain = 0
}

// StartDefaultBehaviour включает поведение по умолчанию
func (n *Nit) StartDefaultBehaviour() {
	n.defaultBehaviour = true
}

// StopDefaultBehaviour выключает поведение по умолчанию
func (n *Nit) StopDefaultBehaviour() {
	n.defaultBehaviour = false
}
