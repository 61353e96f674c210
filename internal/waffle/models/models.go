// Package models defines the toggle engine's domain types: the tri-state
// force value and the per-course flag override record.
package models

import (
	"time"

	"github.com/google/uuid"

	id "campus/pkg/domain"
	dErrors "campus/pkg/domain-errors"
)

// ForceState is the tri-state result of an override lookup.
//
// Unset means "no opinion": the caller falls through to the global flag
// store. It is deliberately distinct from ForcedOff — an absent override must
// never be confused with an override that disables the flag.
type ForceState string

const (
	ForcedOn  ForceState = "on"
	ForcedOff ForceState = "off"
	Unset     ForceState = "unset"
)

// ParseForceState validates an externally supplied force value.
func ParseForceState(s string) (ForceState, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "force state cannot be empty")
	}
	st := ForceState(s)
	if !st.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid force state %q: must be 'on', 'off' or 'unset'", s)
	}
	return st, nil
}

// IsValid checks if the force state is one of the supported values.
func (s ForceState) IsValid() bool {
	switch s {
	case ForcedOn, ForcedOff, Unset:
		return true
	}
	return false
}

// Bool returns the forced boolean and whether the state is definite.
// Unset yields (false, false).
func (s ForceState) Bool() (value, definite bool) {
	switch s {
	case ForcedOn:
		return true, true
	case ForcedOff:
		return false, true
	}
	return false, false
}

func (s ForceState) String() string { return string(s) }

// CourseOverride forces a flag on or off for a single course, taking
// precedence over the global flag value for that course.
//
// Invariants:
//   - FlagKey is the namespaced flag key, non-empty
//   - CourseID is a valid, non-zero course key
//   - Force is a valid ForceState
//   - a disabled record behaves as if no override were on file
type CourseOverride struct {
	ID        uuid.UUID    `json:"id"`
	FlagKey   string       `json:"flag_key"`
	CourseID  id.CourseKey `json:"course_id"`
	Force     ForceState   `json:"force"`
	Enabled   bool         `json:"enabled"`
	CreatedBy id.UserID    `json:"created_by"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Effective returns the force state the evaluation path should observe:
// Unset when the record is disabled, the stored state otherwise.
func (o *CourseOverride) Effective() ForceState {
	if !o.Enabled {
		return Unset
	}
	return o.Force
}

// SearchFilter narrows admin listings of override records. Zero-value fields
// match everything.
type SearchFilter struct {
	// CourseID, when non-zero, matches records for that exact course.
	CourseID id.CourseKey
	// Flag, when non-empty, matches records whose flag key contains it.
	Flag string
}
