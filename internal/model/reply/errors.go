package reply

import "fmt"

// ValidationError names the request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("reply: invalid %s: %s", e.Field, e.Message)
}

// GenerationError wraps a failed or timed-out upstream model call.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return "reply: generation failed"
	}
	return fmt.Sprintf("reply: generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PersistenceError wraps an unreachable store or a rejected write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("reply: %s failed", e.Op)
	}
	return fmt.Sprintf("reply: %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
