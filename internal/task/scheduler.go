package task

import (
	"fmt"
	"sort"

	"github.com/annel0/nitworld/internal/nit"
)

// Scheduler хранит задачи одной фракции и раздаёт их свободным нитам
type Scheduler struct {
	faction *nit.Faction
	tasks   []*Task
}

// NewScheduler создаёт планировщик фракции
func NewScheduler(f *nit.Faction) *Scheduler {
	return &Scheduler{faction: f}
}

func (s *Scheduler) Faction() *nit.Faction { return s.faction }

// Schedule добавляет задачу в очередь
func (s *Scheduler) Schedule(t *Task) error {
	if t.scheduler != nil {
		return fmt.Errorf("task %s is already scheduled", t.name)
	}
	t.scheduler = s
	s.tasks = append(s.tasks, t)
	return nil
}

// Remove убирает задачу; выполняющий её нит остаётся без задачи
func (s *Scheduler) Remove(t *Task) {
	for i, other := range s.tasks {
		if other != t {
			continue
		}
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		if t.assignee != nil && t.assignee.Task() == nit.Task(t) {
			t.assignee.SetTask(nil)
		}
		t.assignee = nil
		t.scheduler = nil
		return
	}
}

// Tasks возвращает задачи по убыванию приоритета
func (s *Scheduler) Tasks() []*Task {
	out := make([]*Task, len(s.tasks))
	copy(out, s.tasks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].priority > out[j].priority })
	return out
}

// Len возвращает число задач в очереди
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// HighestPriority возвращает свободную задачу с наибольшим приоритетом
func (s *Scheduler) HighestPriority() *Task {
	var best *Task
	for _, t := range s.tasks {
		if t.assignee != nil || t.done {
			continue
		}
		if best == nil || t.priority > best.priority {
			best = t
		}
	}
	return best
}

// Assign убирает выполненные задачи и раздаёт свободные задачи
// свободным нитам фракции с включённым поведением по умолчанию.
// Возвращает число назначенных задач.
func (s *Scheduler) Assign() int {
	s.prune()

	assigned := 0
	for _, n := range s.faction.Members() {
		if n.IsTerminated() || n.Task() != nil || !n.DefaultBehaviour() || !n.IsIdle() {
			continue
		}
		t := s.HighestPriority()
		if t == nil {
			break
		}
		t.assignee = n
		n.SetTask(t)
		assigned++
		log.Debug("задача %s назначена ниту %s", t.name, n.Name())
	}
	return assigned
}

// prune удаляет выполненные задачи и отвязывает задачи от погибших нитов
func (s *Scheduler) prune() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.done {
			t.scheduler = nil
			continue
		}
		if t.assignee != nil && t.assignee.Task() != nit.Task(t) {
			t.assignee = nil
		}
		kept = append(kept, t)
	}
	s.tasks = kept
}
