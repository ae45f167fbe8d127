package block

import (
	"strings"
	"testing"
)

func TestSectionBuild(t *testing.T) {
	t.Parallel()

	btn, err := Button("View", "view").Build()
	if err != nil {
		t.Fatalf("Button Build() error: %v", err)
	}

	sec, err := Section().
		Text(Markdown("*Deploy finished*")).
		Fields(PlainText("env: prod"), PlainText("took: 41s")).
		Accessory(btn).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if sec.Accessory == nil || sec.Accessory.ElementType() != ElementTypeButton {
		t.Errorf("Accessory = %#v, want a button", sec.Accessory)
	}
}

func TestSectionRequiresTextOrFields(t *testing.T) {
	t.Parallel()

	_, err := Section().Build()
	wantViolation(t, err, "section", ConstraintRequired)

	if _, err := Section().Fields(PlainText("only fields")).Build(); err != nil {
		t.Errorf("fields-only section rejected: %v", err)
	}
}

func TestSectionFieldBoundary(t *testing.T) {
	t.Parallel()

	// 2000 characters is the inclusive field limit.
	if _, err := Section().Fields(PlainText(strings.Repeat("f", 2000))).Build(); err != nil {
		t.Fatalf("2000-char field rejected: %v", err)
	}

	_, err := Section().Fields(PlainText(strings.Repeat("f", 2001))).Build()
	wantViolation(t, err, "section.fields[0]", ConstraintTooLong)
}

func TestHeaderBuild(t *testing.T) {
	t.Parallel()

	if _, err := Header("Release 1.4"); err != nil {
		t.Fatalf("Header() error: %v", err)
	}

	_, err := Header(strings.Repeat("h", 151))
	wantViolation(t, err, "header.text", ConstraintTooLong)

	_, err = Header("")
	wantViolation(t, err, "header.text", ConstraintRequired)
}

func TestActionsBuild(t *testing.T) {
	t.Parallel()

	approve, _ := Button("Approve", "approve").Build()
	reject, _ := Button("Reject", "reject").Build()

	act, err := Actions().Elements(approve, reject).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(act.Elements) != 2 {
		t.Errorf("len(Elements) = %d, want 2", len(act.Elements))
	}

	_, err = Actions().Build()
	wantViolation(t, err, "actions.elements", ConstraintTooFew)
}

func TestActionsElementCap(t *testing.T) {
	t.Parallel()

	els := make([]Element, 26)
	for i := range els {
		btn, err := Button("B", "act").Value(strings.Repeat("v", i+1)).Build()
		if err != nil {
			t.Fatalf("Button Build() error: %v", err)
		}
		els[i] = btn
	}

	if _, err := Actions().Elements(els[:25]...).Build(); err != nil {
		t.Fatalf("25 elements rejected: %v", err)
	}

	_, err := Actions().Elements(els...).Build()
	wantViolation(t, err, "actions.elements", ConstraintTooMany)
}

func TestActionsRejectsImageElement(t *testing.T) {
	t.Parallel()

	img, err := Image("https://example.com/x.png", "x")
	if err != nil {
		t.Fatalf("Image() error: %v", err)
	}
	_, err = Actions().Elements(img).Build()
	wantViolation(t, err, "actions.elements[0]", ConstraintIncompatible)
}

func TestInputBuild(t *testing.T) {
	t.Parallel()

	field, err := PlainTextInput("notes").Build()
	if err != nil {
		t.Fatalf("PlainTextInput Build() error: %v", err)
	}

	in, err := Input("Notes", field).Hint("Optional context").Optional().Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !in.Optional {
		t.Error("Optional = false, want true")
	}
}

func TestInputLabelBoundary(t *testing.T) {
	t.Parallel()

	field, _ := PlainTextInput("notes").Build()

	if _, err := Input(strings.Repeat("l", 2000), field).Build(); err != nil {
		t.Fatalf("2000-char label rejected: %v", err)
	}

	_, err := Input(strings.Repeat("l", 2001), field).Build()
	wantViolation(t, err, "input.label", ConstraintTooLong)
}

func TestInputRejectsNonInputElement(t *testing.T) {
	t.Parallel()

	btn, _ := Button("Go", "act").Build()
	_, err := Input("Label", btn).Build()
	wantViolation(t, err, "input.element", ConstraintIncompatible)

	_, err = Input("Label", nil).Build()
	wantViolation(t, err, "input.element", ConstraintRequired)
}

func TestContextBuild(t *testing.T) {
	t.Parallel()

	img, _ := Image("https://example.com/avatar.png", "avatar")

	ctx, err := Context().Elements(img, Markdown("posted by *renee*")).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(ctx.Elements) != 2 {
		t.Errorf("len(Elements) = %d, want 2", len(ctx.Elements))
	}

	_, err = Context().Build()
	wantViolation(t, err, "context.elements", ConstraintTooFew)

	els := make([]ContextElement, 11)
	for i := range els {
		els[i] = PlainText("x")
	}
	_, err = Context().Elements(els...).Build()
	wantViolation(t, err, "context.elements", ConstraintTooMany)
}

func TestImageBlockBuild(t *testing.T) {
	t.Parallel()

	blk, err := NewImageBlock("https://example.com/chart.png", "weekly chart").
		Title("Throughput").
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if blk.Title == nil || blk.Title.Text != "Throughput" {
		t.Errorf("Title = %#v, want Throughput", blk.Title)
	}

	_, err = NewImageBlock("", "alt").Build()
	wantViolation(t, err, "image.image_url", ConstraintRequired)
}

func TestBlockIDLength(t *testing.T) {
	t.Parallel()

	_, err := Section().Text(PlainText("x")).BlockID(strings.Repeat("b", 256)).Build()
	wantViolation(t, err, "section.block_id", ConstraintTooLong)
}
