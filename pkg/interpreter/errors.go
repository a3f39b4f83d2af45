package interpreter

import "fmt"

// RuntimeErrorKind identifies the category of a script runtime failure.
type RuntimeErrorKind int

const (
	ErrUndefinedVariable RuntimeErrorKind = iota
	ErrDivisionByZero
	ErrInvalidOperandType
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case ErrUndefinedVariable:
		return "UndefinedVariable"
	case ErrDivisionByZero:
		return "DivisionByZero"
	case ErrInvalidOperandType:
		return "InvalidOperandType"
	default:
		return fmt.Sprintf("unknown_error_%d", int(k))
	}
}

// RuntimeError aborts a run. Name is set for UndefinedVariable; Detail
// carries the operand description for InvalidOperandType.
type RuntimeError struct {
	Kind   RuntimeErrorKind
	Name   string
	Detail string
}

func (e *RuntimeError) Error() string {
	switch e.Kind {
	case ErrUndefinedVariable:
		return fmt.Sprintf("variable :%s is not defined", e.Name)
	case ErrDivisionByZero:
		return "division by zero"
	case ErrInvalidOperandType:
		return fmt.Sprintf("invalid operand: %s", e.Detail)
	default:
		return e.Kind.String()
	}
}

func undefinedVariable(name string) *RuntimeError {
	return &RuntimeError{Kind: ErrUndefinedVariable, Name: name}
}

func divisionByZero() *RuntimeError {
	return &RuntimeError{Kind: ErrDivisionByZero}
}

func invalidOperand(detail string) *RuntimeError {
	return &RuntimeError{Kind: ErrInvalidOperandType, Detail: detail}
}
