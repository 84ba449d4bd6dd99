package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrConflict          = errors.New("conflict")
	ErrDispatchExhausted = errors.New("dispatch exhausted")
	ErrTimeout           = errors.New("offer timeout")
	ErrIllegalTransition = errors.New("illegal state transition")
	ErrIncidentClosed    = errors.New("incident closed")
)

// FieldError - нарушение для одного поля отчета
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError - структурированный список нарушений
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("validation error: %s", strings.Join(parts, "; "))
}

// Is позволяет сравнивать через errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Add добавляет нарушение
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// TransitionError оборачивает ErrIllegalTransition с указанием ребра
func TransitionError(from, to IncidentState) error {
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
}
