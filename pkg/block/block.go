package block

import "encoding/json"

// BlockType discriminates the closed set of layout block kinds.
type BlockType string

// Known block types.
const (
	BlockTypeSection BlockType = "section"
	BlockTypeDivider BlockType = "divider"
	BlockTypeHeader  BlockType = "header"
	BlockTypeActions BlockType = "actions"
	BlockTypeInput   BlockType = "input"
	BlockTypeContext BlockType = "context"
	BlockTypeImage   BlockType = "image"
)

// Block is one of the closed set of layout block kinds. Values are produced
// by builders (or DecodeBlock) and must be treated as immutable once built.
type Block interface {
	// BlockType returns the kind discriminant serialized as "type".
	BlockType() BlockType
}

// ContextElement is an element valid inside a context block: a text object
// or an image element. The union is closed.
type ContextElement interface {
	contextElement()
}

// SectionBlock displays text, an optional field grid, and an optional
// accessory element.
type SectionBlock struct {
	Type      BlockType `json:"type"`
	BlockID   string    `json:"block_id,omitempty"`
	Text      *Text     `json:"text,omitempty"`
	Fields    []Text    `json:"fields,omitempty"`
	Accessory Element   `json:"accessory,omitempty"`
}

// BlockType implements Block.
func (b SectionBlock) BlockType() BlockType { return b.Type }

// UnmarshalJSON implements json.Unmarshaler, routing the accessory through
// the discriminated element union.
func (b *SectionBlock) UnmarshalJSON(data []byte) error {
	type alias SectionBlock
	aux := struct {
		*alias
		Accessory json.RawMessage `json:"accessory,omitempty"`
	}{alias: (*alias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Accessory) > 0 {
		el, err := DecodeElement(aux.Accessory)
		if err != nil {
			return err
		}
		b.Accessory = el
	}
	return nil
}

// DividerBlock is a visual separator.
type DividerBlock struct {
	Type    BlockType `json:"type"`
	BlockID string    `json:"block_id,omitempty"`
}

// BlockType implements Block.
func (b DividerBlock) BlockType() BlockType { return b.Type }

// HeaderBlock displays a large plain_text heading.
type HeaderBlock struct {
	Type    BlockType `json:"type"`
	BlockID string    `json:"block_id,omitempty"`
	Text    Text      `json:"text"`
}

// BlockType implements Block.
func (b HeaderBlock) BlockType() BlockType { return b.Type }

// ActionsBlock holds an ordered row of interactive elements.
type ActionsBlock struct {
	Type     BlockType `json:"type"`
	BlockID  string    `json:"block_id,omitempty"`
	Elements Elements  `json:"elements"`
}

// BlockType implements Block.
func (b ActionsBlock) BlockType() BlockType { return b.Type }

// InputBlock collects a value through a single input-capable element.
type InputBlock struct {
	Type     BlockType `json:"type"`
	BlockID  string    `json:"block_id,omitempty"`
	Label    Text      `json:"label"`
	Element  Element   `json:"element"`
	Hint     *Text     `json:"hint,omitempty"`
	Optional bool      `json:"optional,omitempty"`
}

// BlockType implements Block.
func (b InputBlock) BlockType() BlockType { return b.Type }

// UnmarshalJSON implements json.Unmarshaler, routing the element through
// the discriminated element union.
func (b *InputBlock) UnmarshalJSON(data []byte) error {
	type alias InputBlock
	aux := struct {
		*alias
		Element json.RawMessage `json:"element"`
	}{alias: (*alias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Element) > 0 {
		el, err := DecodeElement(aux.Element)
		if err != nil {
			return err
		}
		b.Element = el
	}
	return nil
}

// ContextBlock displays small contextual text and images.
type ContextBlock struct {
	Type     BlockType        `json:"type"`
	BlockID  string           `json:"block_id,omitempty"`
	Elements []ContextElement `json:"elements"`
}

// BlockType implements Block.
func (b ContextBlock) BlockType() BlockType { return b.Type }

// UnmarshalJSON implements json.Unmarshaler, dispatching each element to
// either a text object or an image element by its discriminant.
func (b *ContextBlock) UnmarshalJSON(data []byte) error {
	type alias ContextBlock
	aux := struct {
		*alias
		Elements []json.RawMessage `json:"elements"`
	}{alias: (*alias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	b.Elements = make([]ContextElement, 0, len(aux.Elements))
	for _, raw := range aux.Elements {
		el, err := decodeContextElement(raw)
		if err != nil {
			return err
		}
		b.Elements = append(b.Elements, el)
	}
	return nil
}

func decodeContextElement(raw json.RawMessage) (ContextElement, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	switch probe.Type {
	case string(ObjectTypePlainText), string(ObjectTypeMarkdown):
		var t Text
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, err
		}
		return t, nil
	case string(ElementTypeImage):
		var e ImageElement
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, &UnknownVariantError{Union: "context element", Type: probe.Type}
	}
}

// ImageBlock displays a standalone image.
type ImageBlock struct {
	Type     BlockType `json:"type"`
	BlockID  string    `json:"block_id,omitempty"`
	ImageURL string    `json:"image_url"`
	AltText  string    `json:"alt_text"`
	Title    *Text     `json:"title,omitempty"`
}

// BlockType implements Block.
func (b ImageBlock) BlockType() BlockType { return b.Type }

// DecodeBlock reads the "type" discriminant of a raw block payload and
// dispatches to the matching kind's decoder. A missing or unrecognized
// discriminant fails with *UnknownVariantError.
func DecodeBlock(raw json.RawMessage) (Block, error) {
	var probe struct {
		Type BlockType `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case BlockTypeSection:
		var b SectionBlock
		return decodeBlockInto(raw, &b)
	case BlockTypeDivider:
		var b DividerBlock
		return decodeBlockInto(raw, &b)
	case BlockTypeHeader:
		var b HeaderBlock
		return decodeBlockInto(raw, &b)
	case BlockTypeActions:
		var b ActionsBlock
		return decodeBlockInto(raw, &b)
	case BlockTypeInput:
		var b InputBlock
		return decodeBlockInto(raw, &b)
	case BlockTypeContext:
		var b ContextBlock
		return decodeBlockInto(raw, &b)
	case BlockTypeImage:
		var b ImageBlock
		return decodeBlockInto(raw, &b)
	default:
		return nil, &UnknownVariantError{Union: "block", Type: string(probe.Type)}
	}
}

func decodeBlockInto[T Block](raw json.RawMessage, dst *T) (Block, error) {
	if err := json.Unmarshal(raw, dst); err != nil {
		return nil, err
	}
	return *dst, nil
}

// Blocks is an ordered block list that deserializes through the
// discriminated block union.
type Blocks []Block

// UnmarshalJSON implements json.Unmarshaler.
func (bs *Blocks) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Blocks, 0, len(raws))
	for _, raw := range raws {
		b, err := DecodeBlock(raw)
		if err != nil {
			return err
		}
		out = append(out, b)
	}
	*bs = out
	return nil
}
