package job

import "fmt"

// StepError reports which step of a job failed.
type StepError struct {
	Index int
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Error is a failed job as reported by Runner.Run.
type Error struct {
	Job string
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("job %s: %s", e.Job, e.Msg)
}
