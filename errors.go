package jsonpath

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax indicates the query text violates the JSONPath grammar.
	ErrSyntax = errors.New("jsonpath: syntax error")

	// ErrEvaluation indicates a failure while evaluating a compiled query,
	// always originating from function execution.
	ErrEvaluation = errors.New("jsonpath: evaluation error")

	// ErrRegistration indicates an invalid function descriptor passed to
	// Registry.Register.
	ErrRegistration = errors.New("jsonpath: invalid function registration")
)

// SyntaxError reports the position of the first grammar violation in a query.
// Position is a byte offset into the query text.
type SyntaxError struct {
	Message  string
	Position int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("jsonpath: syntax error at position %d: %s", e.Position, e.Message)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func syntaxErrorf(pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
	}
}

// EvalErrorKind classifies evaluation failures.
type EvalErrorKind int

const (
	ErrUnknownFunction EvalErrorKind = iota
	ErrFunctionArity
	ErrFunctionArgument
	ErrInvalidPattern
	ErrInternal
)

func (k EvalErrorKind) String() string {
	switch k {
	case ErrUnknownFunction:
		return "unknown function"
	case ErrFunctionArity:
		return "wrong number of arguments"
	case ErrFunctionArgument:
		return "invalid function argument"
	case ErrInvalidPattern:
		return "invalid pattern"
	default:
		return "internal error"
	}
}

// EvaluationError aborts a Select call; no partial nodelist is returned.
type EvaluationError struct {
	Kind    EvalErrorKind
	Message string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("jsonpath: evaluation error: %s: %s", e.Kind, e.Message)
}

func (e *EvaluationError) Is(target error) bool {
	return target == ErrEvaluation
}

func evaluationErrorf(kind EvalErrorKind, format string, args ...any) *EvaluationError {
	return &EvaluationError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}
