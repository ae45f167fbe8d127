package block

import "fmt"

// ButtonBuilder stages a button element. Each chained call returns a new
// builder value, so a partially configured builder can be reused as a
// template; validation happens once, in Build.
type ButtonBuilder struct {
	el ButtonElement
}

// Button starts a button builder with a plain_text label and an action ID.
func Button(text, actionID string) ButtonBuilder {
	return ButtonBuilder{el: ButtonElement{
		Type:     ElementTypeButton,
		Text:     PlainText(text),
		ActionID: actionID,
	}}
}

// Value attaches an opaque value dispatched with the interaction payload.
func (b ButtonBuilder) Value(v string) ButtonBuilder {
	b.el.Value = v
	return b
}

// URL makes the button open a link. Mutually exclusive with Confirm.
func (b ButtonBuilder) URL(u string) ButtonBuilder {
	b.el.URL = u
	return b
}

// Style sets the button's visual emphasis.
func (b ButtonBuilder) Style(s Style) ButtonBuilder {
	b.el.Style = s
	return b
}

// Confirm attaches a confirmation dialog. Mutually exclusive with URL.
func (b ButtonBuilder) Confirm(d ConfirmDialog) ButtonBuilder {
	b.el.Confirm = &d
	return b
}

// Build validates the accumulated configuration and returns the finished
// element. Cross-field rules (URL/Confirm exclusivity) are only checked
// here, so setter order never matters.
func (b ButtonBuilder) Build() (ButtonElement, error) {
	e := b.el
	if err := checkText("button.text", e.Text, maxButtonTextLength, true); err != nil {
		return ButtonElement{}, err
	}
	if err := checkRequired("button.action_id", e.ActionID, maxActionIDLength); err != nil {
		return ButtonElement{}, err
	}
	if err := checkLen("button.value", e.Value, maxValueLength); err != nil {
		return ButtonElement{}, err
	}
	if err := checkLen("button.url", e.URL, maxURLLength); err != nil {
		return ButtonElement{}, err
	}
	if err := checkStyle("button.style", e.Style); err != nil {
		return ButtonElement{}, err
	}
	if e.URL != "" && e.Confirm != nil {
		return ButtonElement{}, &ValidationError{
			Field:      "button",
			Constraint: ConstraintExclusive,
			Detail:     "url and confirm cannot both be set",
		}
	}
	return e, nil
}

// PlainTextInputBuilder stages a plain_text_input element.
type PlainTextInputBuilder struct {
	el PlainTextInputElement
}

// PlainTextInput starts a plain text input builder.
func PlainTextInput(actionID string) PlainTextInputBuilder {
	return PlainTextInputBuilder{el: PlainTextInputElement{
		Type:     ElementTypePlainTextInput,
		ActionID: actionID,
	}}
}

// Placeholder sets the placeholder shown while the input is empty.
func (b PlainTextInputBuilder) Placeholder(text string) PlainTextInputBuilder {
	p := PlainText(text)
	b.el.Placeholder = &p
	return b
}

// InitialValue pre-fills the input.
func (b PlainTextInputBuilder) InitialValue(v string) PlainTextInputBuilder {
	b.el.InitialValue = v
	return b
}

// Multiline renders the input as a multi-line text area.
func (b PlainTextInputBuilder) Multiline() PlainTextInputBuilder {
	b.el.Multiline = true
	return b
}

// LengthRange bounds the accepted input length, inclusive on both ends.
func (b PlainTextInputBuilder) LengthRange(min, max int) PlainTextInputBuilder {
	b.el.MinLength = min
	b.el.MaxLength = max
	return b
}

// Build validates the accumulated configuration and returns the finished element.
func (b PlainTextInputBuilder) Build() (PlainTextInputElement, error) {
	e := b.el
	if err := checkRequired("plain_text_input.action_id", e.ActionID, maxActionIDLength); err != nil {
		return PlainTextInputElement{}, err
	}
	if e.Placeholder != nil {
		if err := checkText("plain_text_input.placeholder", *e.Placeholder, maxPlaceholderLength, true); err != nil {
			return PlainTextInputElement{}, err
		}
	}
	if e.MinLength < 0 || e.MaxLength < 0 || e.MinLength > maxInputLength || e.MaxLength > maxInputLength {
		return PlainTextInputElement{}, &ValidationError{
			Field:      "plain_text_input.length",
			Constraint: ConstraintOutOfRange,
			Detail:     fmt.Sprintf("length bounds must be within 0..%d", maxInputLength),
		}
	}
	if e.MaxLength > 0 && e.MinLength > e.MaxLength {
		return PlainTextInputElement{}, &ValidationError{
			Field:      "plain_text_input.length",
			Constraint: ConstraintOutOfRange,
			Detail:     fmt.Sprintf("min_length %d exceeds max_length %d", e.MinLength, e.MaxLength),
		}
	}
	return e, nil
}

// StaticSelectBuilder stages a static_select element.
type StaticSelectBuilder struct {
	el StaticSelectElement
}

// StaticSelect starts a static select builder with a plain_text placeholder.
func StaticSelect(actionID, placeholder string) StaticSelectBuilder {
	return StaticSelectBuilder{el: StaticSelectElement{
		Type:        ElementTypeStaticSelect,
		ActionID:    actionID,
		Placeholder: PlainText(placeholder),
	}}
}

// Options appends selectable options.
func (b StaticSelectBuilder) Options(opts ...Option) StaticSelectBuilder {
	b.el.Options = append(b.el.Options[:len(b.el.Options):len(b.el.Options)], opts...)
	return b
}

// InitialOption pre-selects an option; it must be one of the options.
func (b StaticSelectBuilder) InitialOption(o Option) StaticSelectBuilder {
	b.el.InitialOption = &o
	return b
}

// Build validates the accumulated configuration and returns the finished element.
func (b StaticSelectBuilder) Build() (StaticSelectElement, error) {
	e := b.el
	if err := checkRequired("static_select.action_id", e.ActionID, maxActionIDLength); err != nil {
		return StaticSelectElement{}, err
	}
	if err := checkText("static_select.placeholder", e.Placeholder, maxPlaceholderLength, true); err != nil {
		return StaticSelectElement{}, err
	}
	if err := checkOptions("static_select.options", e.Options, 1, maxSelectOptions); err != nil {
		return StaticSelectElement{}, err
	}
	if e.InitialOption != nil && !containsOption(e.Options, *e.InitialOption) {
		return StaticSelectElement{}, &ValidationError{
			Field:      "static_select.initial_option",
			Constraint: ConstraintIncompatible,
			Detail:     fmt.Sprintf("value %q is not among the options", e.InitialOption.Value),
		}
	}
	return e, nil
}

// DatePickerBuilder stages a datepicker element.
type DatePickerBuilder struct {
	el DatePickerElement
}

// DatePicker starts a date picker builder.
func DatePicker(actionID string) DatePickerBuilder {
	return DatePickerBuilder{el: DatePickerElement{
		Type:     ElementTypeDatePicker,
		ActionID: actionID,
	}}
}

// Placeholder sets the placeholder shown before a date is picked.
func (b DatePickerBuilder) Placeholder(text string) DatePickerBuilder {
	p := PlainText(text)
	b.el.Placeholder = &p
	return b
}

// InitialDate pre-selects a date given as YYYY-MM-DD.
func (b DatePickerBuilder) InitialDate(date string) DatePickerBuilder {
	b.el.InitialDate = date
	return b
}

// Build validates the accumulated configuration and returns the finished element.
func (b DatePickerBuilder) Build() (DatePickerElement, error) {
	e := b.el
	if err := checkRequired("datepicker.action_id", e.ActionID, maxActionIDLength); err != nil {
		return DatePickerElement{}, err
	}
	if e.Placeholder != nil {
		if err := checkText("datepicker.placeholder", *e.Placeholder, maxPlaceholderLength, true); err != nil {
			return DatePickerElement{}, err
		}
	}
	if e.InitialDate != "" {
		if err := checkDate("datepicker.initial_date", e.InitialDate); err != nil {
			return DatePickerElement{}, err
		}
	}
	return e, nil
}

// CheckboxesBuilder stages a checkboxes element.
type CheckboxesBuilder struct {
	el CheckboxesElement
}

// Checkboxes starts a checkbox group builder.
func Checkboxes(actionID string) CheckboxesBuilder {
	return CheckboxesBuilder{el: CheckboxesElement{
		Type:     ElementTypeCheckboxes,
		ActionID: actionID,
	}}
}

// Options appends checkbox options.
func (b CheckboxesBuilder) Options(opts ...Option) CheckboxesBuilder {
	b.el.Options = append(b.el.Options[:len(b.el.Options):len(b.el.Options)], opts...)
	return b
}

// InitialOptions pre-checks options; each must be one of the options.
func (b CheckboxesBuilder) InitialOptions(opts ...Option) CheckboxesBuilder {
	b.el.InitialOptions = append(b.el.InitialOptions[:len(b.el.InitialOptions):len(b.el.InitialOptions)], opts...)
	return b
}

// Build validates the accumulated configuration and returns the finished element.
func (b CheckboxesBuilder) Build() (CheckboxesElement, error) {
	e := b.el
	if err := checkRequired("checkboxes.action_id", e.ActionID, maxActionIDLength); err != nil {
		return CheckboxesElement{}, err
	}
	if err := checkOptions("checkboxes.options", e.Options, 1, maxCheckboxOptions); err != nil {
		return CheckboxesElement{}, err
	}
	for _, o := range e.InitialOptions {
		if !containsOption(e.Options, o) {
			return CheckboxesElement{}, &ValidationError{
				Field:      "checkboxes.initial_options",
				Constraint: ConstraintIncompatible,
				Detail:     fmt.Sprintf("value %q is not among the options", o.Value),
			}
		}
	}
	return e, nil
}

// OverflowBuilder stages an overflow menu element.
type OverflowBuilder struct {
	el OverflowElement
}

// Overflow starts an overflow menu builder.
func Overflow(actionID string) OverflowBuilder {
	return OverflowBuilder{el: OverflowElement{
		Type:     ElementTypeOverflow,
		ActionID: actionID,
	}}
}

// Options appends menu options.
func (b OverflowBuilder) Options(opts ...Option) OverflowBuilder {
	b.el.Options = append(b.el.Options[:len(b.el.Options):len(b.el.Options)], opts...)
	return b
}

// Build validates the accumulated configuration and returns the finished element.
func (b OverflowBuilder) Build() (OverflowElement, error) {
	e := b.el
	if err := checkRequired("overflow.action_id", e.ActionID, maxActionIDLength); err != nil {
		return OverflowElement{}, err
	}
	if err := checkOptions("overflow.options", e.Options, minOverflowOptions, maxOverflowOptions); err != nil {
		return OverflowElement{}, err
	}
	return e, nil
}

// Image creates an inline image element. Both the URL and the alt text are
// required, so this is a plain constructor rather than a staged builder.
func Image(imageURL, altText string) (ImageElement, error) {
	e := ImageElement{Type: ElementTypeImage, ImageURL: imageURL, AltText: altText}
	if err := checkRequired("image.image_url", e.ImageURL, maxURLLength); err != nil {
		return ImageElement{}, err
	}
	if err := checkRequired("image.alt_text", e.AltText, maxAltTextLength); err != nil {
		return ImageElement{}, err
	}
	return e, nil
}

// containsOption reports whether opts contains an option with the same value.
func containsOption(opts []Option, o Option) bool {
	for _, candidate := range opts {
		if candidate.Value == o.Value {
			return true
		}
	}
	return false
}
