package gen

import (
	"fmt"

	"field-mapper/internal/plan"
)

// FieldError is a failure while producing one target field.
type FieldError struct {
	// Target is the dotted target-field path.
	Target string
	Kind   plan.RuleKind
	// Source is the source path of a RulePath field.
	Source string
	Err    error
}

func (e *FieldError) Error() string {
	var where string

	switch e.Kind {
	case plan.RuleFunc:
		where = "by function"
	case plan.RuleMapper:
		where = "at Mapper"
	case plan.RulePath:
		where = fmt.Sprintf("from source field '%s'", e.Source)
	default:
		where = "at nested field"
	}

	return fmt.Sprintf("Mapping error at field '%s' %s: %v", e.Target, where, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func newFieldError(n *plan.Node, err error) *FieldError {
	return &FieldError{
		Target: n.TargetPath,
		Kind:   n.Kind,
		Source: n.Path.Raw,
		Err:    err,
	}
}

// PanicError carries a value recovered from a panicking field.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprint(e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}
