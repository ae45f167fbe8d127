package block

import "fmt"

// SectionBuilder stages a section block.
type SectionBuilder struct {
	b SectionBlock
}

// Section starts a section block builder. At least one of Text/Fields must
// be supplied before Build.
func Section() SectionBuilder {
	return SectionBuilder{b: SectionBlock{Type: BlockTypeSection}}
}

// BlockID sets the block identifier, unique within a containing view.
func (s SectionBuilder) BlockID(id string) SectionBuilder {
	s.b.BlockID = id
	return s
}

// Text sets the section's body text.
func (s SectionBuilder) Text(t Text) SectionBuilder {
	s.b.Text = &t
	return s
}

// Fields appends field texts rendered in a two-column grid.
func (s SectionBuilder) Fields(fields ...Text) SectionBuilder {
	s.b.Fields = append(s.b.Fields[:len(s.b.Fields):len(s.b.Fields)], fields...)
	return s
}

// Accessory attaches an element rendered beside the text.
func (s SectionBuilder) Accessory(el Element) SectionBuilder {
	s.b.Accessory = el
	return s
}

// Build validates the accumulated configuration and returns the finished block.
func (s SectionBuilder) Build() (SectionBlock, error) {
	b := s.b
	if err := checkLen("section.block_id", b.BlockID, maxBlockIDLength); err != nil {
		return SectionBlock{}, err
	}
	if b.Text == nil && len(b.Fields) == 0 {
		return SectionBlock{}, &ValidationError{
			Field:      "section",
			Constraint: ConstraintRequired,
			Detail:     "either text or fields must be set",
		}
	}
	if b.Text != nil {
		if err := checkText("section.text", *b.Text, maxTextLength, false); err != nil {
			return SectionBlock{}, err
		}
	}
	if len(b.Fields) > maxSectionFields {
		return SectionBlock{}, &ValidationError{
			Field:      "section.fields",
			Constraint: ConstraintTooMany,
			Detail:     fmt.Sprintf("at most %d fields allowed, got %d", maxSectionFields, len(b.Fields)),
		}
	}
	for i, f := range b.Fields {
		if err := checkText(fmt.Sprintf("section.fields[%d]", i), f, maxSectionFieldLength, false); err != nil {
			return SectionBlock{}, err
		}
	}
	return b, nil
}

// Divider creates a divider block.
func Divider() DividerBlock {
	return DividerBlock{Type: BlockTypeDivider}
}

// Header creates a header block from plain text.
func Header(text string) (HeaderBlock, error) {
	b := HeaderBlock{Type: BlockTypeHeader, Text: PlainText(text)}
	if err := checkText("header.text", b.Text, maxHeaderTextLength, true); err != nil {
		return HeaderBlock{}, err
	}
	return b, nil
}

// ActionsBuilder stages an actions block.
type ActionsBuilder struct {
	b ActionsBlock
}

// Actions starts an actions block builder.
func Actions() ActionsBuilder {
	return ActionsBuilder{b: ActionsBlock{Type: BlockTypeActions}}
}

// BlockID sets the block identifier.
func (a ActionsBuilder) BlockID(id string) ActionsBuilder {
	a.b.BlockID = id
	return a
}

// Elements appends interactive elements in order.
func (a ActionsBuilder) Elements(els ...Element) ActionsBuilder {
	a.b.Elements = append(a.b.Elements[:len(a.b.Elements):len(a.b.Elements)], els...)
	return a
}

// Build validates the accumulated configuration and returns the finished block.
func (a ActionsBuilder) Build() (ActionsBlock, error) {
	b := a.b
	if err := checkLen("actions.block_id", b.BlockID, maxBlockIDLength); err != nil {
		return ActionsBlock{}, err
	}
	if len(b.Elements) == 0 {
		return ActionsBlock{}, &ValidationError{
			Field:      "actions.elements",
			Constraint: ConstraintTooFew,
			Detail:     "at least one element required",
		}
	}
	if len(b.Elements) > maxActionsElements {
		return ActionsBlock{}, &ValidationError{
			Field:      "actions.elements",
			Constraint: ConstraintTooMany,
			Detail:     fmt.Sprintf("at most %d elements allowed, got %d", maxActionsElements, len(b.Elements)),
		}
	}
	for i, el := range b.Elements {
		if el.ElementType() == ElementTypeImage {
			return ActionsBlock{}, &ValidationError{
				Field:      fmt.Sprintf("actions.elements[%d]", i),
				Constraint: ConstraintIncompatible,
				Detail:     "image elements are not interactive",
			}
		}
	}
	return b, nil
}

// InputBuilder stages an input block.
type InputBuilder struct {
	b InputBlock
}

// Input starts an input block builder with a plain_text label and the
// element collecting the value.
func Input(label string, el Element) InputBuilder {
	return InputBuilder{b: InputBlock{
		Type:    BlockTypeInput,
		Label:   PlainText(label),
		Element: el,
	}}
}

// BlockID sets the block identifier.
func (i InputBuilder) BlockID(id string) InputBuilder {
	i.b.BlockID = id
	return i
}

// Hint sets helper text displayed under the element.
func (i InputBuilder) Hint(text string) InputBuilder {
	h := PlainText(text)
	i.b.Hint = &h
	return i
}

// Optional marks the input as skippable on submit.
func (i InputBuilder) Optional() InputBuilder {
	i.b.Optional = true
	return i
}

// inputCapable lists the element kinds an input block may host.
func inputCapable(t ElementType) bool {
	switch t {
	case ElementTypePlainTextInput, ElementTypeStaticSelect,
		ElementTypeDatePicker, ElementTypeCheckboxes:
		return true
	}
	return false
}

// Build validates the accumulated configuration and returns the finished block.
func (i InputBuilder) Build() (InputBlock, error) {
	b := i.b
	if err := checkLen("input.block_id", b.BlockID, maxBlockIDLength); err != nil {
		return InputBlock{}, err
	}
	if err := checkText("input.label", b.Label, maxLabelLength, true); err != nil {
		return InputBlock{}, err
	}
	if b.Element == nil {
		return InputBlock{}, &ValidationError{Field: "input.element", Constraint: ConstraintRequired}
	}
	if !inputCapable(b.Element.ElementType()) {
		return InputBlock{}, &ValidationError{
			Field:      "input.element",
			Constraint: ConstraintIncompatible,
			Detail:     fmt.Sprintf("%q elements cannot collect input", b.Element.ElementType()),
		}
	}
	if b.Hint != nil {
		if err := checkText("input.hint", *b.Hint, maxHintLength, true); err != nil {
			return InputBlock{}, err
		}
	}
	return b, nil
}

// ContextBuilder stages a context block.
type ContextBuilder struct {
	b ContextBlock
}

// Context starts a context block builder.
func Context() ContextBuilder {
	return ContextBuilder{b: ContextBlock{Type: BlockTypeContext}}
}

// BlockID sets the block identifier.
func (c ContextBuilder) BlockID(id string) ContextBuilder {
	c.b.BlockID = id
	return c
}

// Elements appends text objects and image elements in order.
func (c ContextBuilder) Elements(els ...ContextElement) ContextBuilder {
	c.b.Elements = append(c.b.Elements[:len(c.b.Elements):len(c.b.Elements)], els...)
	return c
}

// Build validates the accumulated configuration and returns the finished block.
func (c ContextBuilder) Build() (ContextBlock, error) {
	b := c.b
	if err := checkLen("context.block_id", b.BlockID, maxBlockIDLength); err != nil {
		return ContextBlock{}, err
	}
	if len(b.Elements) == 0 {
		return ContextBlock{}, &ValidationError{
			Field:      "context.elements",
			Constraint: ConstraintTooFew,
			Detail:     "at least one element required",
		}
	}
	if len(b.Elements) > maxContextElements {
		return ContextBlock{}, &ValidationError{
			Field:      "context.elements",
			Constraint: ConstraintTooMany,
			Detail:     fmt.Sprintf("at most %d elements allowed, got %d", maxContextElements, len(b.Elements)),
		}
	}
	for idx, el := range b.Elements {
		if t, ok := el.(Text); ok {
			if err := checkText(fmt.Sprintf("context.elements[%d]", idx), t, maxTextLength, false); err != nil {
				return ContextBlock{}, err
			}
		}
	}
	return b, nil
}

// ImageBlockBuilder stages a standalone image block.
type ImageBlockBuilder struct {
	b ImageBlock
}

// NewImageBlock starts an image block builder.
func NewImageBlock(imageURL, altText string) ImageBlockBuilder {
	return ImageBlockBuilder{b: ImageBlock{
		Type:     BlockTypeImage,
		ImageURL: imageURL,
		AltText:  altText,
	}}
}

// BlockID sets the block identifier.
func (i ImageBlockBuilder) BlockID(id string) ImageBlockBuilder {
	i.b.BlockID = id
	return i
}

// Title sets a plain_text title rendered above the image.
func (i ImageBlockBuilder) Title(text string) ImageBlockBuilder {
	t := PlainText(text)
	i.b.Title = &t
	return i
}

// Build validates the accumulated configuration and returns the finished block.
func (i ImageBlockBuilder) Build() (ImageBlock, error) {
	b := i.b
	if err := checkLen("image.block_id", b.BlockID, maxBlockIDLength); err != nil {
		return ImageBlock{}, err
	}
	if err := checkRequired("image.image_url", b.ImageURL, maxURLLength); err != nil {
		return ImageBlock{}, err
	}
	if err := checkRequired("image.alt_text", b.AltText, maxAltTextLength); err != nil {
		return ImageBlock{}, err
	}
	if b.Title != nil {
		if err := checkText("image.title", *b.Title, maxImageTitleLength, true); err != nil {
			return ImageBlock{}, err
		}
	}
	return b, nil
}
