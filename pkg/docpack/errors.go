// Package docpack provides custom error types for package graph operations.
package docpack

import (
	"fmt"
	"strings"
)

// UnknownContentTypeError indicates that a part name could not be resolved
// to a content type through either an override or an extension default.
type UnknownContentTypeError struct {
	PartName string
}

func (e *UnknownContentTypeError) Error() string {
	return fmt.Sprintf("unknown content type for part '%s'", e.PartName)
}

// NewUnknownContentTypeError creates a new unknown content type error
func NewUnknownContentTypeError(partName string) error {
	return &UnknownContentTypeError{PartName: partName}
}

// ContentTypeConflictError indicates an attempt to re-register an extension
// default with a different content type than the one already registered.
type ContentTypeConflictError struct {
	Extension string
	Existing  string
	Proposed  string
}

func (e *ContentTypeConflictError) Error() string {
	return fmt.Sprintf("content type conflict for extension '%s': '%s' already registered, cannot register '%s'",
		e.Extension, e.Existing, e.Proposed)
}

// NewContentTypeConflictError creates a new content type conflict error
func NewContentTypeConflictError(extension, existing, proposed string) error {
	return &ContentTypeConflictError{
		Extension: extension,
		Existing:  existing,
		Proposed:  proposed,
	}
}

// DuplicatePartError indicates an attempt to add a part under a name that
// already exists in the package.
type DuplicatePartError struct {
	PartName string
}

func (e *DuplicatePartError) Error() string {
	return fmt.Sprintf("part '%s' already exists in package", e.PartName)
}

// NewDuplicatePartError creates a new duplicate part error
func NewDuplicatePartError(partName string) error {
	return &DuplicatePartError{PartName: partName}
}

// DuplicateRelationshipError indicates an attempt to add a relationship with
// an id that already exists within its scope.
type DuplicateRelationshipError struct {
	Scope string
	ID    string
}

func (e *DuplicateRelationshipError) Error() string {
	return fmt.Sprintf("relationship '%s' already exists in scope '%s'", e.ID, e.Scope)
}

// NewDuplicateRelationshipError creates a new duplicate relationship error
func NewDuplicateRelationshipError(scope, id string) error {
	return &DuplicateRelationshipError{Scope: scope, ID: id}
}

// PartNotFoundError indicates a lookup for a part name that is not in the
// package. Callers performing idempotent removal may treat it as already-absent.
type PartNotFoundError struct {
	PartName string
}

func (e *PartNotFoundError) Error() string {
	return fmt.Sprintf("part '%s' not found in package", e.PartName)
}

// NewPartNotFoundError creates a new part not found error
func NewPartNotFoundError(partName string) error {
	return &PartNotFoundError{PartName: partName}
}

// InvariantViolation describes a single structural inconsistency found by the
// package invariant checker.
type InvariantViolation struct {
	Scope   string
	Subject string
	Message string
}

func (v InvariantViolation) String() string {
	if v.Scope != "" {
		return fmt.Sprintf("%s (scope '%s'): %s", v.Subject, v.Scope, v.Message)
	}
	return fmt.Sprintf("%s: %s", v.Subject, v.Message)
}

// InconsistentPackageError indicates that a transformation left the package
// graph in a state that violates its structural invariants. The graph must
// not be saved; the reclassifier rolls back before surfacing this error.
type InconsistentPackageError struct {
	Violations []InvariantViolation
}

func (e *InconsistentPackageError) Error() string {
	if len(e.Violations) == 0 {
		return "inconsistent package"
	}

	if len(e.Violations) == 1 {
		return fmt.Sprintf("inconsistent package: %s", e.Violations[0])
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("inconsistent package, %d violations:", len(e.Violations)))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("  %s", v))
	}
	return strings.Join(parts, "\n")
}

// NewInconsistentPackageError creates a new inconsistent package error
func NewInconsistentPackageError(violations []InvariantViolation) error {
	return &InconsistentPackageError{Violations: violations}
}

// PackageError represents an error during container-level package operations
type PackageError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *PackageError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("package error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("package error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("package error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("package error during %s", e.Operation)
}

func (e *PackageError) Unwrap() error {
	return e.Cause
}

// NewPackageError creates a new package error
func NewPackageError(operation, path string, cause error) error {
	return &PackageError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// IsUnknownContentType checks if an error is an unknown content type error
func IsUnknownContentType(err error) bool {
	_, ok := err.(*UnknownContentTypeError)
	return ok
}

// IsContentTypeConflict checks if an error is a content type conflict error
func IsContentTypeConflict(err error) bool {
	_, ok := err.(*ContentTypeConflictError)
	return ok
}

// IsDuplicatePart checks if an error is a duplicate part error
func IsDuplicatePart(err error) bool {
	_, ok := err.(*DuplicatePartError)
	return ok
}

// IsDuplicateRelationship checks if an error is a duplicate relationship error
func IsDuplicateRelationship(err error) bool {
	_, ok := err.(*DuplicateRelationshipError)
	return ok
}

// IsPartNotFound checks if an error is a part not found error
func IsPartNotFound(err error) bool {
	_, ok := err.(*PartNotFoundError)
	return ok
}

// IsInconsistentPackage checks if an error is an inconsistent package error
func IsInconsistentPackage(err error) bool {
	_, ok := err.(*InconsistentPackageError)
	return ok
}
