package block

// ObjectType discriminates text object flavors.
type ObjectType string

// Text object types.
const (
	ObjectTypePlainText ObjectType = "plain_text"
	ObjectTypeMarkdown  ObjectType = "mrkdwn"
)

// Text is a composition text object, either plain text or markdown.
// Length limits depend on the slot the text occupies and are enforced by
// the containing builder's Build.
type Text struct {
	Type     ObjectType `json:"type"`
	Text     string     `json:"text"`
	Emoji    bool       `json:"emoji,omitempty"`
	Verbatim bool       `json:"verbatim,omitempty"`
}

// PlainText creates a plain_text object with emoji rendering enabled.
func PlainText(text string) Text {
	return Text{Type: ObjectTypePlainText, Text: text, Emoji: true}
}

// Markdown creates a mrkdwn text object.
func Markdown(text string) Text {
	return Text{Type: ObjectTypeMarkdown, Text: text}
}

// contextElement marks Text as a valid context block element.
func (Text) contextElement() {}

// isZero reports whether the text object was never set.
func (t Text) isZero() bool {
	return t.Type == "" && t.Text == ""
}
