package engine

import (
	"errors"
	"fmt"
	"strings"

	"exoparam/core/study"
)

var (
	ErrMissingInput      = errors.New("missing input")
	ErrConflictingInputs = errors.New("conflicting inputs")
)

// MissingInputError reports a stage that found none of its qualifying input
// combinations. Alternatives lists the combinations that would have sufficed.
type MissingInputError struct {
	Stage        string
	Field        study.Field
	Alternatives [][]study.Field
}

func (e *MissingInputError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("%s: stage %s cannot determine %s", ErrMissingInput, e.Stage, e.Field)
	if len(e.Alternatives) == 0 {
		return msg
	}
	alts := make([]string, len(e.Alternatives))
	for i, a := range e.Alternatives {
		alts[i] = "{" + joinFields(a) + "}"
	}
	return msg + "; supply one of " + strings.Join(alts, " or ")
}

func (e *MissingInputError) Unwrap() error { return ErrMissingInput }

// ConflictingInputsError reports mutually exclusive inputs supplied together.
type ConflictingInputsError struct {
	Stage  string
	Fields []study.Field
}

func (e *ConflictingInputsError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: stage %s accepts only one of {%s}", ErrConflictingInputs, e.Stage, joinFields(e.Fields))
}

func (e *ConflictingInputsError) Unwrap() error { return ErrConflictingInputs }

func missing(stage string, f study.Field, alts ...[]study.Field) error {
	return &MissingInputError{Stage: stage, Field: f, Alternatives: alts}
}

func conflict(stage string, fields ...study.Field) error {
	return &ConflictingInputsError{Stage: stage, Fields: fields}
}

func joinFields(fs []study.Field) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}
