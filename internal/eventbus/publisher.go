package eventbus

import (
	"context"
	"time"

	"github.com/annel0/nitworld/internal/nit"
	"github.com/annel0/nitworld/internal/vec"
)

// Типы событий симуляции
const (
	EventAttackResolved = "AttackResolved"
	EventSkillIncreased = "SkillIncreased"
	EventPathFailed     = "PathFailed"
	EventNitDied        = "NitDied"
	EventTickCompleted  = "TickCompleted"
)

// SourceWorld: источник всех событий симуляции
const SourceWorld = "world"

// NitRef: ссылка на нита в полезной нагрузке
type NitRef struct {
	ID      uint64   `json:"id"`
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Faction string   `json:"faction,omitempty"`
	Cube    vec.Vec3 `json:"cube"`
}

type AttackPayload struct {
	Attacker NitRef `json:"attacker"`
	Defender NitRef `json:"defender"`
	Outcome  string `json:"outcome"`
}

type SkillPayload struct {
	Nit       NitRef `json:"nit"`
	Attribute string `json:"attribute"`
	Value     int    `json:"value"`
}

type PathPayload struct {
	Nit         NitRef   `json:"nit"`
	Destination vec.Vec3 `json:"destination"`
}

type DeathPayload struct {
	Nit        NitRef `json:"nit"`
	Experience int    `json:"experience"`
}

type TickPayload struct {
	Tick uint64 `json:"tick"`
	Nits int    `json:"nits"`
}

// IDResolver сопоставляет ниту постоянный идентификатор мира
type IDResolver interface {
	ID(n *nit.Nit) (uint64, bool)
}

// Publisher превращает события движка в конверты шины.
// Реализует nit.Listener; ошибки публикации только логируются.
type Publisher struct {
	bus     EventBus
	ids     IDResolver
	timeout time.Duration
}

var _ nit.Listener = (*Publisher)(nil)

// NewPublisher создаёт издателя событий
func NewPublisher(bus EventBus, ids IDResolver) *Publisher {
	return &Publisher{bus: bus, ids: ids, timeout: time.Second}
}

func (p *Publisher) ref(n *nit.Nit) NitRef {
	r := NitRef{Name: n.Name(), Kind: n.Kind().Name(), Cube: n.Cube()}
	if p.ids != nil {
		r.ID, _ = p.ids.ID(n)
	}
	if f := n.Faction(); f != nil {
		r.Faction = f.Name()
	}
	return r
}

func (p *Publisher) publish(eventType string, priority int, payload interface{}) {
	ev, err := NewEnvelope(SourceWorld, eventType, priority, payload)
	if err != nil {
		log.Warn("событие %s не создано: %v", eventType, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.bus.Publish(ctx, ev); err != nil {
		log.Warn("событие %s не опубликовано: %v", eventType, err)
	}
}

func (p *Publisher) AttackResolved(attacker, defender *nit.Nit, outcome nit.Outcome) {
	p.publish(EventAttackResolved, 3, AttackPayload{
		Attacker: p.ref(attacker),
		Defender: p.ref(defender),
		Outcome:  outcome.String(),
	})
}

func (p *Publisher) SkillIncreased(n *nit.Nit, attr nit.Attribute) {
	value := 0
	switch attr {
	case nit.AttrWeight:
		value = n.Weight()
	case nit.AttrStrength:
		value = n.Strength()
	case nit.AttrAgility:
		value = n.Agility()
	case nit.AttrToughness:
		value = n.Toughness()
	}
	p.publish(EventSkillIncreased, 2, SkillPayload{Nit: p.ref(n), Attribute: attr.String(), Value: value})
}

func (p *Publisher) PathFailed(n *nit.Nit, destination vec.Vec3) {
	p.publish(EventPathFailed, 1, PathPayload{Nit: p.ref(n), Destination: destination})
}

// Died публикуется с высоким приоритетом: при переполненном буфере событие не теряется
func (p *Publisher) Died(n *nit.Nit) {
	p.publish(EventNitDied, 7, DeathPayload{Nit: p.ref(n), Experience: n.Experience()})
}

// TickCompleted сообщает о завершении тика мира
func (p *Publisher) TickCompleted(tick uint64, nits int) {
	p.publish(EventTickCompleted, 0, TickPayload{Tick: tick, Nits: nits})
}
