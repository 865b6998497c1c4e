package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidQuery       = errors.New("invalid query")
	ErrTransient          = errors.New("transient error")
	ErrUnknownCapability  = errors.New("unknown capability")
	ErrMalformedArguments = errors.New("malformed arguments")
)

// LookupError describes a failed dictionary backend call.
// Kind is one of ErrNotFound, ErrInvalidQuery or ErrTransient.
type LookupError struct {
	Op     string
	Query  string
	Status int
	Kind   error
	Err    error
}

func (e *LookupError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q: %v", e.Op, e.Query, e.Kind)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *LookupError) Unwrap() error { return e.Kind }

// FieldError describes a problem with a single tool-call argument.
type FieldError struct {
	Field   string
	Message string
}

// ArgumentError lists everything wrong with the arguments of one tool call.
type ArgumentError struct {
	Capability Capability
	Errors     []FieldError
}

func (e *ArgumentError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("arguments for %s: %s: %s", e.Capability, e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("arguments for %s: %d errors", e.Capability, len(e.Errors))
}

func (e *ArgumentError) Unwrap() error { return ErrMalformedArguments }

// NewArgumentErrors creates an ArgumentError from multiple field errors.
func NewArgumentErrors(c Capability, errs []FieldError) *ArgumentError {
	return &ArgumentError{Capability: c, Errors: errs}
}
