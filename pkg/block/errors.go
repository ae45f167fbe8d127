package block

import "fmt"

// Constraint identifies the structural rule a value violated.
type Constraint string

// Constraint values reported by builders and validators.
const (
	ConstraintRequired     Constraint = "required"
	ConstraintTooLong      Constraint = "too_long"
	ConstraintTooMany      Constraint = "too_many"
	ConstraintTooFew       Constraint = "too_few"
	ConstraintExclusive    Constraint = "exclusive"
	ConstraintIncompatible Constraint = "incompatible"
	ConstraintBadFormat    Constraint = "bad_format"
	ConstraintOutOfRange   Constraint = "out_of_range"
)

// ValidationError describes a single violated structural constraint.
// Build methods stop at the first violation and report it; they never
// truncate or auto-correct.
type ValidationError struct {
	// Field is the path of the offending field, e.g. "button.text".
	Field string

	// Constraint is the rule that was violated.
	Constraint Constraint

	// Detail is a human-readable elaboration, e.g. "75 character limit, got 80".
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("block: %s: %s", e.Field, e.Constraint)
	}
	return fmt.Sprintf("block: %s: %s (%s)", e.Field, e.Constraint, e.Detail)
}

// UnknownVariantError is returned when decoding a block or element whose
// "type" discriminant is missing or not part of the closed set of known
// kinds. Unrecognized kinds are rejected, never coerced to a default.
type UnknownVariantError struct {
	// Union names the union being decoded: "block", "element" or "context element".
	Union string

	// Type is the unrecognized discriminant value, empty if absent.
	Type string
}

func (e *UnknownVariantError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("block: %s payload has no \"type\" discriminant", e.Union)
	}
	return fmt.Sprintf("block: unknown %s type %q", e.Union, e.Type)
}
