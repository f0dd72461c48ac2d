package task

import (
	"errors"
	"fmt"

	"github.com/annel0/nitworld/internal/logging"
	"github.com/annel0/nitworld/internal/nit"
	"github.com/google/uuid"
)

var log = logging.GetTaskLogger()

// ErrTransient означает, что задача не может продолжаться сейчас; нит снимает её
// и продолжает жить, а планировщик вернёт задачу в очередь.
var ErrTransient = errors.New("transient task failure")

// InterruptPenalty: на столько снижается приоритет прерванной задачи
const InterruptPenalty = 100

// Task представляет последовательность команд с приоритетом.
// Задачей владеет планировщик, нит хранит только ссылку на неё.
type Task struct {
	id         uuid.UUID
	name       string
	priority   int
	activities []Activity

	next    int  // индекс следующей команды
	started bool // команда next отдана и ещё не проверена
	done    bool

	assignee  *nit.Nit
	scheduler *Scheduler
}

// New создаёт задачу из непустого списка команд
func New(name string, priority int, activities ...Activity) (*Task, error) {
	if name == "" {
		return nil, errors.New("task name is empty")
	}
	if len(activities) == 0 {
		return nil, fmt.Errorf("task %s has no activities", name)
	}
	return &Task{
		id:         uuid.New(),
		name:       name,
		priority:   priority,
		activities: activities,
	}, nil
}

func (t *Task) ID() uuid.UUID      { return t.id }
func (t *Task) Name() string       { return t.name }
func (t *Task) Priority() int      { return t.priority }
func (t *Task) Assignee() *nit.Nit { return t.assignee }
func (t *Task) Completed() bool    { return t.done }

// IsAssigned сообщает, выполняет ли задачу какой-нибудь нит
func (t *Task) IsAssigned() bool {
	return t.assignee != nil
}

// Step вызывается нитом, когда он свободен. Проверяет предыдущую команду
// и отдаёт следующую. Неудача оборачивается в восстановимую ошибку.
func (t *Task) Step(n *nit.Nit) error {
	if t.done {
		return nil
	}

	if t.started {
		act := t.activities[t.next]
		if !act.Done(n) {
			return nit.Recoverable(t.name, fmt.Errorf("%w: %s not finished", ErrTransient, act))
		}
		t.started = false
		t.next++
		if t.next == len(t.activities) {
			t.done = true
			log.Debug("задача %s выполнена нитом %s", t.name, n.Name())
			return nil
		}
	}

	act := t.activities[t.next]
	if err := act.Start(n); err != nil {
		return nit.Recoverable(t.name, fmt.Errorf("%w: %s: %w", ErrTransient, act, err))
	}
	// Команда могла сразу прервать задачу (путь не найден), тогда прогресс уже сброшен
	if t.assignee != n {
		return nil
	}
	t.started = true
	return nil
}

// Interrupt освобождает задачу: прогресс сбрасывается, приоритет снижается
func (t *Task) Interrupt(n *nit.Nit) {
	log.Debug("задача %s прервана (нит %s)", t.name, n.Name())
	t.assignee = nil
	t.next = 0
	t.started = false
	t.priority -= InterruptPenalty
}

func (t *Task) String() string {
	return fmt.Sprintf("%s[p=%d %d/%d]", t.name, t.priority, t.next, len(t.activities))
}
