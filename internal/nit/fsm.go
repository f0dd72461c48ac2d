package nit

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// State описывает состояние конечного автомата нита
type State int

const (
	StateEmpty State = iota
	StateMoving
	StateWorking
	StateAttacking
	StateRestingInitial
	StateRestingHP
	StateRestingStamina

	// StateFalling зарезервировано для предметов; ниты в него не переходят
	StateFalling
)

// String возвращает строковое представление состояния
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateMoving:
		return "MOVING"
	case StateWorking:
		return "WORKING"
	case StateAttacking:
		return "ATTACKING"
	case StateRestingInitial:
		return "RESTING_INITIAL"
	case StateRestingHP:
		return "RESTING_HP"
	case StateRestingStamina:
		return "RESTING_STAMINA"
	case StateFalling:
		return "FALLING"
	default:
		return "UNKNOWN"
	}
}

// IsResting сообщает, является ли состояние одним из состояний отдыха
func (s State) IsResting() bool {
	return s == StateRestingInitial || s == StateRestingHP || s == StateRestingStamina
}

func (n *Nit) setState(s State) {
	if n.state == s {
		return
	}
	log.Trace("нит %s: %s -> %s", n.name, n.state, s)
	if s != StateMoving {
		n.velocity = mgl64.Vec3{}
	}
	n.state = s
}

// ValidateTimeStep проверяет, что dt лежит в [0, MaxTimeStep]
func ValidateTimeStep(dt float64) error {
	if math.IsNaN(dt) || dt < 0 || dt > MaxTimeStep {
		return fmt.Errorf("%w: dt=%v", ErrInvalidTime, dt)
	}
	return nil
}

// AdvanceTime продвигает нита на dt секунд.
//
// Порядок разбора (первая подходящая ветка):
//  1. нита атакуют — состояние сбрасывается в EMPTY;
//  2. нит не отдыхал RestInterval секунд — начинается отдых
//     (начатая атака сначала разрешается);
//  3. выполняется процедура текущего состояния.
func (n *Nit) AdvanceTime(dt float64) error {
	if n.terminated {
		return ErrTerminated
	}
	if err := ValidateTimeStep(dt); err != nil {
		return err
	}

	if !n.IsResting() {
		n.timeSinceRest += dt
	}

	if n.attacked {
		n.setState(StateEmpty)
		return nil
	}

	if n.timeSinceRest >= RestInterval && !n.IsResting() && n.state != StateAttacking {
		n.beginRest()
		return nil
	}

	switch n.state {
	case StateRestingInitial, StateRestingHP, StateRestingStamina:
		n.controlResting(dt)
		return nil
	case StateMoving:
		return n.controlMoving(dt)
	case StateWorking:
		return n.controlWorking(dt)
	case StateAttacking:
		return n.controlAttacking(dt)
	default:
		if !n.longTermReached {
			return n.continueJourney()
		}
		return n.controlIdle()
	}
}
