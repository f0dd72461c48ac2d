package nit

import "errors"

// controlIdle выполняется, когда нит свободен и никуда не идёт.
// Назначенная задача имеет приоритет над поведением по умолчанию.
func (n *Nit) controlIdle() error {
	if n.task != nil {
		return n.runTask()
	}
	if !n.defaultBehaviour {
		return nil
	}

	// Четыре равные полосы: идти, работать, атаковать, отдыхать
	roll := n.rng.Float64()
	switch {
	case roll < 0.25:
		if dest, ok := n.kind.RandomReachable(n.world, n.Cube(), n.rng); ok {
			return n.ignoreIdleError(n.MoveTo(dest))
		}
	case roll < 0.5:
		if nbs := n.world.Neighbours(n.Cube()); len(nbs) > 0 {
			return n.ignoreIdleError(n.Work(nbs[n.rng.Intn(len(nbs))]))
		}
	case roll < 0.75:
		if enemy := n.FindEnemy(); enemy != nil {
			return n.ignoreIdleError(n.Attack(enemy))
		}
	default:
		return n.ignoreIdleError(n.Rest())
	}
	return nil
}

// ignoreIdleError: неудачный случайный выбор просто пропускает тик
func (n *Nit) ignoreIdleError(err error) error {
	if err != nil {
		log.Trace("нит %s: действие по умолчанию отклонено: %v", n.name, err)
	}
	return nil
}

// runTask делает один шаг назначенной задачи.
// Восстановимая ошибка снимает задачу, остальные выходят наружу.
func (n *Nit) runTask() error {
	if n.task.Completed() {
		log.Debug("нит %s выполнил задачу %s", n.name, n.task.Name())
		n.task = nil
		return nil
	}

	err := n.task.Step(n)
	if err == nil {
		return nil
	}

	var taskErr *TaskError
	if errors.As(err, &taskErr) {
		log.Debug("нит %s прерывает задачу %s: %v", n.name, n.task.Name(), taskErr.Err)
		n.interruptTask()
		return nil
	}
	return err
}

// interruptTask отвязывает задачу и сообщает о прерывании её владельцу
func (n *Nit) interruptTask() {
	t := n.task
	if t == nil {
		return
	}
	n.task = nil
	t.Interrupt(n)
}
