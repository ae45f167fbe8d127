package block

// Option is a selectable entry inside select, checkbox and overflow elements.
type Option struct {
	Text        Text   `json:"text"`
	Value       string `json:"value"`
	Description *Text  `json:"description,omitempty"`
}

// NewOption creates an option with a plain_text label and a value.
func NewOption(text, value string) Option {
	return Option{Text: PlainText(text), Value: value}
}

// Describe returns a copy of the option with a plain_text description attached.
func (o Option) Describe(desc string) Option {
	d := PlainText(desc)
	o.Description = &d
	return o
}

func (o Option) validate(field string) *ValidationError {
	if err := checkText(field+".text", o.Text, maxOptionTextLength, true); err != nil {
		return err
	}
	if err := checkRequired(field+".value", o.Value, maxOptionValueLength); err != nil {
		return err
	}
	if o.Description != nil {
		if err := checkText(field+".description", *o.Description, maxOptionDescLength, true); err != nil {
			return err
		}
	}
	return nil
}

// ConfirmDialog asks the user to confirm a destructive or significant action
// before it is dispatched.
type ConfirmDialog struct {
	Title   Text  `json:"title"`
	Text    Text  `json:"text"`
	Confirm Text  `json:"confirm"`
	Deny    Text  `json:"deny"`
	Style   Style `json:"style,omitempty"`
}

// ConfirmBuilder stages an immutable confirmation dialog. Each chained call
// returns a new builder value; Build validates the final combination once.
type ConfirmBuilder struct {
	dialog ConfirmDialog
}

// Confirm starts a confirmation dialog builder. The title, confirm and deny
// labels are plain text; text may be markdown.
func Confirm(title, text, confirmLabel, denyLabel string) ConfirmBuilder {
	return ConfirmBuilder{dialog: ConfirmDialog{
		Title:   PlainText(title),
		Text:    Markdown(text),
		Confirm: PlainText(confirmLabel),
		Deny:    PlainText(denyLabel),
	}}
}

// Style sets the confirm button style.
func (b ConfirmBuilder) Style(s Style) ConfirmBuilder {
	b.dialog.Style = s
	return b
}

// Build validates the dialog and returns the finished value.
func (b ConfirmBuilder) Build() (ConfirmDialog, error) {
	d := b.dialog
	if err := checkText("confirm.title", d.Title, maxConfirmTitleLength, true); err != nil {
		return ConfirmDialog{}, err
	}
	if err := checkText("confirm.text", d.Text, maxConfirmTextLength, false); err != nil {
		return ConfirmDialog{}, err
	}
	if err := checkText("confirm.confirm", d.Confirm, maxConfirmLabelLength, true); err != nil {
		return ConfirmDialog{}, err
	}
	if err := checkText("confirm.deny", d.Deny, maxConfirmLabelLength, true); err != nil {
		return ConfirmDialog{}, err
	}
	if err := checkStyle("confirm.style", d.Style); err != nil {
		return ConfirmDialog{}, err
	}
	return d, nil
}
