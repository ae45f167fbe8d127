package block

import "encoding/json"

// ElementType discriminates the closed set of interactive element kinds.
type ElementType string

// Known element types.
const (
	ElementTypeButton         ElementType = "button"
	ElementTypePlainTextInput ElementType = "plain_text_input"
	ElementTypeStaticSelect   ElementType = "static_select"
	ElementTypeDatePicker     ElementType = "datepicker"
	ElementTypeCheckboxes     ElementType = "checkboxes"
	ElementTypeOverflow       ElementType = "overflow"
	ElementTypeImage          ElementType = "image"
)

// Style is the visual emphasis of a button or confirm action.
type Style string

// Button styles. The zero value renders the default appearance.
const (
	StyleDefault Style = ""
	StylePrimary Style = "primary"
	StyleDanger  Style = "danger"
)

// Element is one of the closed set of interactive element kinds. Values are
// produced by builders (or DecodeElement) and must be treated as immutable
// once built.
type Element interface {
	// ElementType returns the kind discriminant serialized as "type".
	ElementType() ElementType
}

// ButtonElement is an interactive button.
type ButtonElement struct {
	Type     ElementType    `json:"type"`
	Text     Text           `json:"text"`
	ActionID string         `json:"action_id,omitempty"`
	Value    string         `json:"value,omitempty"`
	URL      string         `json:"url,omitempty"`
	Style    Style          `json:"style,omitempty"`
	Confirm  *ConfirmDialog `json:"confirm,omitempty"`
}

// ElementType implements Element.
func (e ButtonElement) ElementType() ElementType { return e.Type }

// PlainTextInputElement is a single- or multi-line free text input.
type PlainTextInputElement struct {
	Type         ElementType `json:"type"`
	ActionID     string      `json:"action_id,omitempty"`
	Placeholder  *Text       `json:"placeholder,omitempty"`
	InitialValue string      `json:"initial_value,omitempty"`
	Multiline    bool        `json:"multiline,omitempty"`
	MinLength    int         `json:"min_length,omitempty"`
	MaxLength    int         `json:"max_length,omitempty"`
}

// ElementType implements Element.
func (e PlainTextInputElement) ElementType() ElementType { return e.Type }

// StaticSelectElement is a select menu over a static option list.
type StaticSelectElement struct {
	Type          ElementType `json:"type"`
	ActionID      string      `json:"action_id,omitempty"`
	Placeholder   Text        `json:"placeholder"`
	Options       []Option    `json:"options"`
	InitialOption *Option     `json:"initial_option,omitempty"`
}

// ElementType implements Element.
func (e StaticSelectElement) ElementType() ElementType { return e.Type }

// DatePickerElement lets the user pick a calendar date.
type DatePickerElement struct {
	Type        ElementType `json:"type"`
	ActionID    string      `json:"action_id,omitempty"`
	Placeholder *Text       `json:"placeholder,omitempty"`
	InitialDate string      `json:"initial_date,omitempty"`
}

// ElementType implements Element.
func (e DatePickerElement) ElementType() ElementType { return e.Type }

// CheckboxesElement is a group of checkboxes.
type CheckboxesElement struct {
	Type           ElementType `json:"type"`
	ActionID       string      `json:"action_id,omitempty"`
	Options        []Option    `json:"options"`
	InitialOptions []Option    `json:"initial_options,omitempty"`
}

// ElementType implements Element.
func (e CheckboxesElement) ElementType() ElementType { return e.Type }

// OverflowElement is a context menu of up to five options.
type OverflowElement struct {
	Type     ElementType `json:"type"`
	ActionID string      `json:"action_id,omitempty"`
	Options  []Option    `json:"options"`
}

// ElementType implements Element.
func (e OverflowElement) ElementType() ElementType { return e.Type }

// ImageElement is a non-interactive inline image.
type ImageElement struct {
	Type     ElementType `json:"type"`
	ImageURL string      `json:"image_url"`
	AltText  string      `json:"alt_text"`
}

// ElementType implements Element.
func (e ImageElement) ElementType() ElementType { return e.Type }

// contextElement marks ImageElement as a valid context block element.
func (ImageElement) contextElement() {}

// DecodeElement reads the "type" discriminant of a raw element payload and
// dispatches to the matching kind's decoder. A missing or unrecognized
// discriminant fails with *UnknownVariantError.
func DecodeElement(raw json.RawMessage) (Element, error) {
	var probe struct {
		Type ElementType `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case ElementTypeButton:
		var e ButtonElement
		return decodeInto(raw, &e)
	case ElementTypePlainTextInput:
		var e PlainTextInputElement
		return decodeInto(raw, &e)
	case ElementTypeStaticSelect:
		var e StaticSelectElement
		return decodeInto(raw, &e)
	case ElementTypeDatePicker:
		var e DatePickerElement
		return decodeInto(raw, &e)
	case ElementTypeCheckboxes:
		var e CheckboxesElement
		return decodeInto(raw, &e)
	case ElementTypeOverflow:
		var e OverflowElement
		return decodeInto(raw, &e)
	case ElementTypeImage:
		var e ImageElement
		return decodeInto(raw, &e)
	default:
		return nil, &UnknownVariantError{Union: "element", Type: string(probe.Type)}
	}
}

// decodeInto unmarshals raw into a concrete element and returns it by value,
// so decoded elements compare equal to built ones.
func decodeInto[T Element](raw json.RawMessage, dst *T) (Element, error) {
	if err := json.Unmarshal(raw, dst); err != nil {
		return nil, err
	}
	return *dst, nil
}

// Elements is an ordered element list that deserializes through the
// discriminated element union.
type Elements []Element

// UnmarshalJSON implements json.Unmarshaler.
func (es *Elements) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Elements, 0, len(raws))
	for _, raw := range raws {
		el, err := DecodeElement(raw)
		if err != nil {
			return err
		}
		out = append(out, el)
	}
	*es = out
	return nil
}
