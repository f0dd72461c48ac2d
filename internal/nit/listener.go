package nit

import "github.com/annel0/nitworld/internal/vec"

// Listener получает уведомления о значимых событиях движка.
// Вызовы синхронные, внутри тика нита.
type Listener interface {
	AttackResolved(attacker, defender *Nit, outcome Outcome)
	SkillIncreased(n *Nit, attr Attribute)
	PathFailed(n *Nit, destination vec.Vec3)
	Died(n *Nit)
}

// NopListener игнорирует все события
type NopListener struct{}

func (NopListener) AttackResolved(attacker, defender *Nit, outcome Outcome) {}
func (NopListener) SkillIncreased(n *Nit, attr Attribute)                   {}
func (NopListener) PathFailed(n *Nit, destination vec.Vec3)                 {}
func (NopListener) Died(n *Nit)                                             {}

// MultiListener рассылает события нескольким слушателям по порядку
type MultiListener []Listener

func (m MultiListener) AttackResolved(attacker, defender *Nit, outcome Outcome) {
	for _, l := range m {
		l.AttackResolved(attacker, defender, outcome)
	}
}

func (m MultiListener) SkillIncreased(n *Nit, attr Attribute) {
	for _, l := range m {
		l.SkillIncreased(n, attr)
	}
}

func (m MultiListener) PathFailed(n *Nit, destination vec.Vec3) {
	for _, l := range m {
		l.PathFailed(n, destination)
	}
}

func (m MultiListener) Died(n *Nit) {
	for _, l := range m {
		l.Died(n)
	}
}
