package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrConflict             = errors.New("uniqueness conflict")
	ErrNotFound             = errors.New("not found")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
)

// ValidationError reports a field value rejected by a format or business rule.
type ValidationError struct {
	Entity  string `json:"entity"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func NewValidationError(entity, field, message string) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %s: %s", e.Entity, e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConflictError reports a collision on a unique field.
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

func NewConflictError(entity, field, value string) *ConflictError {
	return &ConflictError{Entity: entity, Field: field, Value: value}
}

func (e *ConflictError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s with this %s already exists", e.Entity, e.Field)
	}
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

type NotFoundError struct {
	Entity string
	ID     any
}

func NewNotFoundError(entity string, id any) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ReferenceError reports a foreign key pointing at a missing record, or a
// delete blocked because other records still reference the target.
type ReferenceError struct {
	Entity string
	Field  string
	ID     int64
	InUse  bool
}

func NewReferenceError(entity, field string, id int64) *ReferenceError {
	return &ReferenceError{Entity: entity, Field: field, ID: id}
}

func (e *ReferenceError) Error() string {
	if e.InUse {
		return fmt.Sprintf("%s is still referenced by %s", e.Entity, e.Field)
	}
	if e.ID == 0 {
		return fmt.Sprintf("%s %s references a missing record", e.Entity, e.Field)
	}
	return fmt.Sprintf("%s %s references missing record %d", e.Entity, e.Field, e.ID)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrReferentialIntegrity }

// InUseError is returned when a delete is restricted by records that still
// reference the target.
func InUseError(entity, referencedBy string) *ReferenceError {
	return &ReferenceError{Entity: entity, Field: referencedBy, InUse: true}
}
