package block

import "fmt"

// ViewType discriminates top-level view containers.
type ViewType string

// Known view types.
const (
	ViewTypeModal ViewType = "modal"
	ViewTypeHome  ViewType = "home"
)

// View is a top-level modal or home tab container. A View is valid only if
// every contained block is valid, block IDs are unique, and the aggregate
// bounds hold; builders enforce this at Build.
type View struct {
	Type            ViewType `json:"type"`
	Title           *Text    `json:"title,omitempty"`
	Blocks          Blocks   `json:"blocks"`
	Close           *Text    `json:"close,omitempty"`
	Submit          *Text    `json:"submit,omitempty"`
	PrivateMetadata string   `json:"private_metadata,omitempty"`
	CallbackID      string   `json:"callback_id,omitempty"`
	ExternalID      string   `json:"external_id,omitempty"`
}

// ViewBuilder stages a view. Each chained call returns a new builder value;
// Build validates the whole container once.
type ViewBuilder struct {
	v View
}

// Modal starts a modal view builder with a plain_text title.
func Modal(title string) ViewBuilder {
	t := PlainText(title)
	return ViewBuilder{v: View{Type: ViewTypeModal, Title: &t}}
}

// HomeTab starts a home tab view builder. Home tabs carry no title, close
// or submit labels.
func HomeTab() ViewBuilder {
	return ViewBuilder{v: View{Type: ViewTypeHome}}
}

// Blocks appends blocks in order.
func (b ViewBuilder) Blocks(blocks ...Block) ViewBuilder {
	b.v.Blocks = append(b.v.Blocks[:len(b.v.Blocks):len(b.v.Blocks)], blocks...)
	return b
}

// Close sets the close button label.
func (b ViewBuilder) Close(label string) ViewBuilder {
	t := PlainText(label)
	b.v.Close = &t
	return b
}

// Submit sets the submit button label.
func (b ViewBuilder) Submit(label string) ViewBuilder {
	t := PlainText(label)
	b.v.Submit = &t
	return b
}

// PrivateMetadata attaches an opaque string echoed back in interaction
// payloads.
func (b ViewBuilder) PrivateMetadata(meta string) ViewBuilder {
	b.v.PrivateMetadata = meta
	return b
}

// CallbackID sets the identifier dispatched with view interaction payloads.
func (b ViewBuilder) CallbackID(id string) ViewBuilder {
	b.v.CallbackID = id
	return b
}

// ExternalID sets a caller-chosen unique identifier for the view.
func (b ViewBuilder) ExternalID(id string) ViewBuilder {
	b.v.ExternalID = id
	return b
}

// Build validates the accumulated configuration and returns the finished view.
func (b ViewBuilder) Build() (View, error) {
	v := b.v

	if len(v.Blocks) == 0 {
		return View{}, &ValidationError{
			Field:      "view.blocks",
			Constraint: ConstraintTooFew,
			Detail:     "at least one block required",
		}
	}
	if len(v.Blocks) > maxViewBlocks {
		return View{}, &ValidationError{
			Field:      "view.blocks",
			Constraint: ConstraintTooMany,
			Detail:     fmt.Sprintf("at most %d blocks allowed, got %d", maxViewBlocks, len(v.Blocks)),
		}
	}

	hasInput := false
	seen := make(map[string]struct{})
	for i, blk := range v.Blocks {
		if blk.BlockType() == BlockTypeInput {
			hasInput = true
		}
		id := blockID(blk)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			return View{}, &ValidationError{
				Field:      fmt.Sprintf("view.blocks[%d].block_id", i),
				Constraint: ConstraintIncompatible,
				Detail:     fmt.Sprintf("block_id %q is not unique within the view", id),
			}
		}
		seen[id] = struct{}{}
	}

	switch v.Type {
	case ViewTypeModal:
		if v.Title == nil {
			return View{}, &ValidationError{Field: "view.title", Constraint: ConstraintRequired}
		}
		if err := checkText("view.title", *v.Title, maxViewTitleLength, true); err != nil {
			return View{}, err
		}
		if v.Close != nil {
			if err := checkText("view.close", *v.Close, maxViewLabelLength, true); err != nil {
				return View{}, err
			}
		}
		if v.Submit != nil {
			if err := checkText("view.submit", *v.Submit, maxViewLabelLength, true); err != nil {
				return View{}, err
			}
		}
		if hasInput && v.Submit == nil {
			return View{}, &ValidationError{
				Field:      "view.submit",
				Constraint: ConstraintRequired,
				Detail:     "modals containing input blocks must define a submit label",
			}
		}
	case ViewTypeHome:
		if v.Title != nil || v.Close != nil || v.Submit != nil {
			return View{}, &ValidationError{
				Field:      "view",
				Constraint: ConstraintIncompatible,
				Detail:     "home tabs cannot carry title, close or submit labels",
			}
		}
		if hasInput {
			return View{}, &ValidationError{
				Field:      "view.blocks",
				Constraint: ConstraintIncompatible,
				Detail:     "input blocks are only valid inside modals",
			}
		}
	default:
		return View{}, &ValidationError{
			Field:      "view.type",
			Constraint: ConstraintBadFormat,
			Detail:     fmt.Sprintf("unknown view type %q", v.Type),
		}
	}

	if err := checkLen("view.private_metadata", v.PrivateMetadata, maxPrivateMetadataLength); err != nil {
		return View{}, err
	}
	if err := checkLen("view.callback_id", v.CallbackID, maxCallbackIDLength); err != nil {
		return View{}, err
	}
	return v, nil
}

// blockID extracts the optional block identifier from any known block kind.
func blockID(b Block) string {
	switch blk := b.(type) {
	case SectionBlock:
		return blk.BlockID
	case DividerBlock:
		return blk.BlockID
	case HeaderBlock:
		return blk.BlockID
	case ActionsBlock:
		return blk.BlockID
	case InputBlock:
		return blk.BlockID
	case ContextBlock:
		return blk.BlockID
	case ImageBlock:
		return blk.BlockID
	}
	return ""
}
