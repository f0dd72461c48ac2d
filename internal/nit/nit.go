package nit

import (
	"fmt"
	"math"

	"github.com/annel0/nitworld/internal/item"
	"github.com/annel0/nitworld/internal/logging"
	"github.com/annel0/nitworld/internal/vec"
	"github.com/go-gl/mathgl/mgl64"
)

var log = logging.GetNitLogger()

// Attributes: физические атрибуты нита
type Attributes struct {
	Weight    int
	Strength  int
	Agility   int
	Toughness int
}

// Validate проверяет границы атрибутов и инвариант веса
func (a Attributes) Validate() error {
	for name, v := range map[string]int{
		"weight": a.Weight, "strength": a.Strength, "agility": a.Agility, "toughness": a.Toughness,
	} {
		if !validAttribute(v) {
			return fmt.Errorf("%w: %s=%d", ErrInvalidAttribute, name, v)
		}
	}
	if a.Weight < minWeight(a.Strength, a.Agility) {
		return fmt.Errorf("%w: weight %d below (strength+agility)/2", ErrInvalidAttribute, a.Weight)
	}
	return nil
}

// RandomAttributes генерирует атрибуты в начальном диапазоне
func RandomAttributes(rng Random) Attributes {
	span := MaxInitialAttribute - MinInitialAttribute + 1
	a := Attributes{
		Strength:  MinInitialAttribute + rng.Intn(span),
		Agility:   MinInitialAttribute + rng.Intn(span),
		Toughness: MinInitialAttribute + rng.Intn(span),
	}
	low := minWeight(a.Strength, a.Agility)
	if low < MinInitialAttribute {
		low = MinInitialAttribute
	}
	a.Weight = low + rng.Intn(MaxInitialAttribute-low+1)
	return a
}

func validAttribute(v int) bool {
	return v >= MinAttribute && v <= MaxAttribute
}

// minWeight: наименьший вес, удовлетворяющий weight >= (strength+agility)/2
func minWeight(strength, agility int) int {
	return (strength + agility + 1) / 2
}

// Nit представляет автономное существо мира
type Nit struct {
	name     string
	kind     Kind
	faction  *Faction
	world    World
	rng      Random
	listener Listener

	weight, strength, agility, toughness int
	hitPoints, staminaPoints             int

	position    mgl64.Vec3
	velocity    mgl64.Vec3
	orientation float64

	shortTerm       vec.Vec3 // следующий соседний кубик на пути
	longTerm        vec.Vec3 // конечная цель
	longTermReached bool

	workTarget vec.Vec3
	carried    *item.Item

	state            State
	defaultBehaviour bool
	sprinting        bool
	attacked         bool
	opponent         *Nit

	timeToCompletion float64
	timeResting      float64 // накопленное время отдыха, ещё не обращённое в очки
	timeSinceRest    float64
	sprintDrain      float64

	experience  int
	temporaryXP int
	task        Task
	terminated  bool
}

// NewUnit создаёт юнита с явно заданным именем
func NewUnit(w World, name string, cube vec.Vec3, attrs Attributes, rng Random) (*Nit, error) {
	return newNit(w, Unit{}, name, cube, attrs, rng)
}

// NewEnit создаёт энита, имя генерируется автоматически
func NewEnit(w World, cube vec.Vec3, attrs Attributes, rng Random) (*Nit, error) {
	kind := Enit{}
	return newNit(w, kind, kind.GenerateName(rng), cube, attrs, rng)
}

// New создаёт нита указанного вида. Пустое имя заменяется сгенерированным,
// если вид это поддерживает.
func New(w World, kind Kind, name string, cube vec.Vec3, attrs Attributes, rng Random) (*Nit, error) {
	if name == "" {
		name = kind.GenerateName(rng)
	}
	return newNit(w, kind, name, cube, attrs, rng)
}

func newNit(w World, kind Kind, name string, cube vec.Vec3, attrs Attributes, rng Random) (*Nit, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := attrs.Validate(); err != nil {
		return nil, err
	}
	if !kind.CanStand(w, cube) {
		return nil, fmt.Errorf("%w: %s cannot stand at %v", ErrInvalidPosition, kind.Name(), cube)
	}

	n := &Nit{
		name:            name,
		kind:            kind,
		world:           w,
		rng:             rng,
		listener:        NopListener{},
		weight:          attrs.Weight,
		strength:        attrs.Strength,
		agility:         attrs.Agility,
		toughness:       attrs.Toughness,
		position:        cube.Center(),
		orientation:     math.Pi / 2,
		shortTerm:       cube,
		longTerm:        cube,
		longTermReached: true,
		state:           StateEmpty,
	}
	n.hitPoints = n.MaxHitPoints()
	n.staminaPoints = n.MaxStaminaPoints()
	return n, nil
}

// SetListener устанавливает слушателя событий
func (n *Nit) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	n.listener = l
}

// === Запросы ===

func (n *Nit) Name() string            { return n.name }
func (n *Nit) Kind() Kind              { return n.kind }
func (n *Nit) Faction() *Faction       { return n.faction }
func (n *Nit) World() World            { return n.world }
func (n *Nit) Position() mgl64.Vec3    { return n.position }
func (n *Nit) Velocity() mgl64.Vec3    { return n.velocity }
func (n *Nit) Orientation() float64    { return n.orientation }
func (n *Nit) Cube() vec.Vec3          { return vec.FromPosition(n.position) }
func (n *Nit) Weight() int             { return n.weight }
func (n *Nit) Strength() int           { return n.strength }
func (n *Nit) Agility() int            { return n.agility }
func (n *Nit) Toughness() int          { return n.toughness }
func (n *Nit) HitPoints() int          { return n.hitPoints }
func (n *Nit) StaminaPoints() int      { return n.staminaPoints }
func (n *Nit) State() State            { return n.state }
func (n *Nit) Experience() int         { return n.experience }
func (n *Nit) CarriedItem() *item.Item { return n.carried }
func (n *Nit) Task() Task              { return n.task }
func (n *Nit) Opponent() *Nit          { return n.opponent }
func (n *Nit) IsTerminated() bool      { return n.terminated }
func (n *Nit) IsAttacked() bool        { return n.attacked }
func (n *Nit) IsSprinting() bool       { return n.sprinting }
func (n *Nit) DefaultBehaviour() bool  { return n.defaultBehaviour }
func (n *Nit) WorkTarget() vec.Vec3    { return n.workTarget }

func (n *Nit) IsMoving() bool    { return n.state == StateMoving }
func (n *Nit) IsWorking() bool   { return n.state == StateWorking }
func (n *Nit) IsAttacking() bool { return n.state == StateAttacking }
func (n *Nit) IsResting() bool   { return n.state.IsResting() }

// IsIdle сообщает, что нит ничем не занят и никуда не идёт
func (n *Nit) IsIdle() bool {
	return n.state == StateEmpty && n.longTermReached && !n.attacked
}

// LongTermDestination возвращает конечную цель движения и признак её достижения
func (n *Nit) LongTermDestination() (vec.Vec3, bool) {
	return n.longTerm, n.longTermReached
}

// ShortTermDestination возвращает ближайший кубик на пути
func (n *Nit) ShortTermDestination() vec.Vec3 {
	return n.shortTerm
}

// MaxHitPoints вычисляется политикой вида
func (n *Nit) MaxHitPoints() int {
	return n.kind.MaxPoints(n.weight, n.strength, n.toughness)
}

// MaxStaminaPoints совпадает с MaxHitPoints для обоих видов
func (n *Nit) MaxStaminaPoints() int {
	return n.kind.MaxPoints(n.weight, n.strength, n.toughness)
}

// TotalWeight: собственный вес плюс вес переносимого предмета
func (n *Nit) TotalWeight() int {
	if n.carried != nil {
		return n.weight + n.carried.Weight()
	}
	return n.weight
}

// SetTask назначает задачу (nil снимает текущую без уведомления)
func (n *Nit) SetTask(t Task) {
	n.task = t
}

// === Мутаторы атрибутов ===
//
// Все сеттеры отклоняют недопустимое значение ошибкой ErrInvalidAttribute
// и оставляют нита без изменений.

func (n *Nit) SetName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	n.name = name
	return nil
}

func (n *Nit) SetWeight(v int) error {
	if !validAttribute(v) || v < minWeight(n.strength, n.agility) {
		return fmt.Errorf("%w: weight=%d", ErrInvalidAttribute, v)
	}
	n.weight = v
	n.clampVitals()
	return nil
}

func (n *Nit) SetStrength(v int) error {
	if !validAttribute(v) || n.weight < minWeight(v, n.agility) {
		return fmt.Errorf("%w: strength=%d", ErrInvalidAttribute, v)
	}
	n.strength = v
	n.clampVitals()
	return nil
}

func (n *Nit) SetAgility(v int) error {
	if !validAttribute(v) || n.weight < minWeight(n.strength, v) {
		return fmt.Errorf("%w: agility=%d", ErrInvalidAttribute, v)
	}
	n.agility = v
	return nil
}

func (n *Nit) SetToughness(v int) error {
	if !validAttribute(v) {
		return fmt.Errorf("%w: toughness=%d", ErrInvalidAttribute, v)
	}
	n.toughness = v
	n.clampVitals()
	return nil
}

// SetHitPoints устанавливает здоровье в пределах [0, max]; 0 убивает нита
func (n *Nit) SetHitPoints(v int) error {
	if v < 0 || v > n.MaxHitPoints() {
		return fmt.Errorf("%w: hitpoints=%d", ErrInvalidAttribute, v)
	}
	n.hitPoints = v
	if v == 0 {
		n.Terminate()
	}
	return nil
}

// SetStaminaPoints устанавливает стамину в пределах [0, max]
func (n *Nit) SetStaminaPoints(v int) error {
	if v < 0 || v > n.MaxStaminaPoints() {
		return fmt.Errorf("%w: stamina=%d", ErrInvalidAttribute, v)
	}
	n.staminaPoints = v
	return nil
}

func (n *Nit) clampVitals() {
	if limit := n.MaxHitPoints(); n.hitPoints > limit {
		n.hitPoints = limit
	}
	if limit := n.MaxStaminaPoints(); n.staminaPoints > limit {
		n.staminaPoints = limit
	}
}

// setPosition перемещает нита в непрерывную позицию.
// Позиция должна лежать в кубике, где нит может находиться.
func (n *Nit) setPosition(p mgl64.Vec3) error {
	cube := vec.FromPosition(p)
	if !n.kind.CanStand(n.world, cube) {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, cube)
	}
	n.position = p
	return nil
}

// setOrientation нормализует угол в [-π, π]
func (n *Nit) setOrientation(angle float64) {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return
	}
	n.orientation = math.Atan2(math.Sin(angle), math.Cos(angle))
}

// face поворачивает нита к центру кубика
func (n *Nit) face(target mgl64.Vec3) {
	d := target.Sub(n.position)
	if d.X() == 0 && d.Y() == 0 {
		return
	}
	n.setOrientation(math.Atan2(d.Y(), d.X()))
}

// === Жизненный цикл ===

// releaseOpponent снимает незавершённую атаку, освобождая противника
func (n *Nit) releaseOpponent() {
	if n.opponent == nil {
		return
	}
	n.opponent.attacked = false
	n.opponent = nil
	n.timeToCompletion = 0
}

// Terminate необратимо убивает нита: бросает предмет, покидает фракцию и мир.
func (n *Nit) Terminate() {
	if n.terminated {
		return
	}

	if n.carried != nil {
		if err := n.world.AddItem(n.carried, n.Cube()); err != nil {
			log.Warn("нит %s не смог бросить %s: %v", n.name, n.carried, err)
		}
		n.carried = nil
	}

	n.releaseOpponent()
	if n.attacked {
		for _, other := range n.world.Nits() {
			if other.opponent == n {
				other.opponent = nil
				other.setState(StateEmpty)
			}
		}
		n.attacked = false
	}

	if n.task != nil {
		n.interruptTask()
	}
	if n.faction != nil {
		n.faction.Remove(n)
	}
	n.world.RemoveNit(n)

	n.terminated = true
	n.hitPoints = 0
	n.velocity = mgl64.Vec3{}
	n.sprinting = false
	n.state = StateEmpty

	log.Info("нит %s (%s) погиб", n.name, n.kind.Name())
	n.listener.Died(n)
}

func (n *Nit) String() string {
	return fmt.Sprintf("%s[%s %v %s]", n.name, n.kind.Name(), n.Cube(), n.state)
}
