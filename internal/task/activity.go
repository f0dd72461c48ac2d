package task

import (
	"errors"
	"fmt"

	"github.com/annel0/nitworld/internal/nit"
	"github.com/annel0/nitworld/internal/vec"
)

// ErrNoEnemy означает, что рядом нет нита, которого можно атаковать
var ErrNoEnemy = errors.New("no enemy in reach")

// Activity описывает одну команду задачи. Задача общается с нитом только
// через его публичные команды и запросы.
type Activity interface {
	// Start отдаёт ниту команду
	Start(n *nit.Nit) error

	// Done проверяет, что команда выполнена, когда нит снова свободен
	Done(n *nit.Nit) bool

	String() string
}

// MoveTo ведёт нита к кубику
type MoveTo struct {
	Dest vec.Vec3
}

func (a MoveTo) Start(n *nit.Nit) error { return n.MoveTo(a.Dest) }
func (a MoveTo) Done(n *nit.Nit) bool   { return n.Cube() == a.Dest }
func (a MoveTo) String() string         { return fmt.Sprintf("moveTo %v", a.Dest) }

// WorkAt запускает работу над соседним кубиком
type WorkAt struct {
	Target vec.Vec3
}

func (a WorkAt) Start(n *nit.Nit) error { return n.Work(a.Target) }
func (a WorkAt) Done(n *nit.Nit) bool   { return !n.IsWorking() }
func (a WorkAt) String() string         { return fmt.Sprintf("work %v", a.Target) }

// Rest отправляет нита отдыхать
type Rest struct{}

func (Rest) Start(n *nit.Nit) error { return n.Rest() }
func (Rest) Done(n *nit.Nit) bool   { return !n.IsResting() }
func (Rest) String() string         { return "rest" }

// AttackEnemy атакует первого подходящего противника рядом
type AttackEnemy struct{}

func (AttackEnemy) Start(n *nit.Nit) error {
	enemy := n.FindEnemy()
	if enemy == nil {
		return ErrNoEnemy
	}
	return n.Attack(enemy)
}

func (AttackEnemy) Done(n *nit.Nit) bool { return !n.IsAttacking() }
func (AttackEnemy) String() string       { return "attack enemy" }
