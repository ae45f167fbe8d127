package block

import (
	"fmt"
	"time"
)

// Character limits imposed by the Chatter API.
const (
	maxTextLength            = 3000
	maxButtonTextLength      = 75
	maxActionIDLength        = 255
	maxBlockIDLength         = 255
	maxValueLength           = 2000
	maxURLLength             = 3000
	maxPlaceholderLength     = 150
	maxOptionTextLength      = 75
	maxOptionValueLength     = 150
	maxOptionDescLength      = 75
	maxConfirmTitleLength    = 100
	maxConfirmTextLength     = 300
	maxConfirmLabelLength    = 30
	maxSectionFieldLength    = 2000
	maxHeaderTextLength      = 150
	maxLabelLength           = 2000
	maxHintLength            = 2000
	maxInputLength           = 3000
	maxImageTitleLength      = 2000
	maxAltTextLength         = 2000
	maxViewTitleLength       = 24
	maxViewLabelLength       = 24
	maxPrivateMetadataLength = 3000
	maxCallbackIDLength      = 255

	maxSectionFields   = 10
	maxSelectOptions   = 100
	maxCheckboxOptions = 10
	minOverflowOptions = 2
	maxOverflowOptions = 5
	maxActionsElements = 25
	maxContextElements = 10
	maxViewBlocks      = 100
)

// checkLen validates an optional string field against an inclusive limit.
func checkLen(field, s string, max int) *ValidationError {
	if len(s) > max {
		return &ValidationError{
			Field:      field,
			Constraint: ConstraintTooLong,
			Detail:     fmt.Sprintf("%d character limit, got %d", max, len(s)),
		}
	}
	return nil
}

// checkRequired validates a required string field and its inclusive limit.
func checkRequired(field, s string, max int) *ValidationError {
	if s == "" {
		return &ValidationError{Field: field, Constraint: ConstraintRequired}
	}
	return checkLen(field, s, max)
}

// checkText validates a required text object slot.
func checkText(field string, t Text, max int, plainOnly bool) *ValidationError {
	if t.isZero() || t.Text == "" {
		return &ValidationError{Field: field, Constraint: ConstraintRequired}
	}
	if t.Type != ObjectTypePlainText && t.Type != ObjectTypeMarkdown {
		return &ValidationError{
			Field:      field,
			Constraint: ConstraintBadFormat,
			Detail:     fmt.Sprintf("unknown text object type %q", t.Type),
		}
	}
	if plainOnly && t.Type != ObjectTypePlainText {
		return &ValidationError{
			Field:      field,
			Constraint: ConstraintIncompatible,
			Detail:     "only plain_text is allowed here",
		}
	}
	return checkLen(field, t.Text, max)
}

// checkOptionalText validates a text object slot that may be absent.
func checkOptionalText(field string, t Text, max int, plainOnly bool) *ValidationError {
	if t.isZero() {
		return nil
	}
	return checkText(field, t, max, plainOnly)
}

// checkOptions validates an option list and its count bounds.
func checkOptions(field string, opts []Option, min, max int) *ValidationError {
	if len(opts) < min {
		return &ValidationError{
			Field:      field,
			Constraint: ConstraintTooFew,
			Detail:     fmt.Sprintf("at least %d option(s) required, got %d", min, len(opts)),
		}
	}
	if len(opts) > max {
		return &ValidationError{
			Field:      field,
			Constraint: ConstraintTooMany,
			Detail:     fmt.Sprintf("at most %d options allowed, got %d", max, len(opts)),
		}
	}
	for i, o := range opts {
		if err := o.validate(fmt.Sprintf("%s[%d]", field, i)); err != nil {
			return err
		}
	}
	return nil
}

// checkStyle validates an optional style enumeration value.
func checkStyle(field string, s Style) *ValidationError {
	switch s {
	case StyleDefault, StylePrimary, StyleDanger:
		return nil
	}
	return &ValidationError{
		Field:      field,
		Constraint: ConstraintIncompatible,
		Detail:     fmt.Sprintf("unknown style %q", s),
	}
}

// checkDate validates a YYYY-MM-DD date string.
func checkDate(field, s string) *ValidationError {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return &ValidationError{
			Field:      field,
			Constraint: ConstraintBadFormat,
			Detail:     fmt.Sprintf("%q is not a YYYY-MM-DD date", s),
		}
	}
	return nil
}
