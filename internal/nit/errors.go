package nit

import "errors"

// Виды ошибок движка. Конкретные ошибки оборачивают их через %w,
// проверять следует через errors.Is.
var (
	ErrInvalidPosition   = errors.New("invalid position")
	ErrInvalidName       = errors.New("invalid name")
	ErrInvalidTime       = errors.New("invalid time value")
	ErrInvalidTarget     = errors.New("invalid combat target")
	ErrInvalidWorkTarget = errors.New("invalid work target")
	ErrInvalidAttribute  = errors.New("invalid attribute value")
	ErrBusy              = errors.New("nit is engaged in combat")
	ErrFactionFull       = errors.New("faction is full")
	ErrTerminated        = errors.New("nit is terminated")
)

// TaskError помечает ошибку шага задачи как восстановимую: нит снимает
// задачу и продолжает жить. Любая другая ошибка из Task.Step считается
// ошибкой программы и выходит наружу из AdvanceTime.
type TaskError struct {
	Task string
	Err  error
}

func (e *TaskError) Error() string {
	return "task " + e.Task + ": " + e.Err.Error()
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// Recoverable оборачивает err в TaskError
func Recoverable(task string, err error) error {
	if err == nil {
		return nil
	}
	return &TaskError{Task: task, Err: err}
}
