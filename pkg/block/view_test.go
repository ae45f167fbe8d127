package block

import (
	"strings"
	"testing"
)

func demoSection(t *testing.T, id string) SectionBlock {
	t.Helper()
	b := Section().Text(PlainText("hello"))
	if id != "" {
		b = b.BlockID(id)
	}
	sec, err := b.Build()
	if err != nil {
		t.Fatalf("Section Build() error: %v", err)
	}
	return sec
}

func TestModalBuild(t *testing.T) {
	t.Parallel()

	field, err := PlainTextInput("reason").Build()
	if err != nil {
		t.Fatalf("PlainTextInput Build() error: %v", err)
	}
	in, err := Input("Reason", field).Build()
	if err != nil {
		t.Fatalf("Input Build() error: %v", err)
	}

	v, err := Modal("Request access").
		Blocks(demoSection(t, ""), in).
		Submit("Send").
		Close("Cancel").
		CallbackID("access-request").
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if v.Type != ViewTypeModal {
		t.Errorf("Type = %q, want modal", v.Type)
	}
	if len(v.Blocks) != 2 {
		t.Errorf("len(Blocks) = %d, want 2", len(v.Blocks))
	}
}

func TestModalWithInputRequiresSubmit(t *testing.T) {
	t.Parallel()

	field, _ := PlainTextInput("reason").Build()
	in, _ := Input("Reason", field).Build()

	_, err := Modal("Request access").Blocks(in).Build()
	wantViolation(t, err, "view.submit", ConstraintRequired)
}

func TestModalTitleBoundary(t *testing.T) {
	t.Parallel()

	if _, err := Modal(strings.Repeat("t", 24)).Blocks(demoSection(t, "")).Build(); err != nil {
		t.Fatalf("24-char title rejected: %v", err)
	}

	_, err := Modal(strings.Repeat("t", 25)).Blocks(demoSection(t, "")).Build()
	wantViolation(t, err, "view.title", ConstraintTooLong)
}

func TestHomeTabForbidsModalChrome(t *testing.T) {
	t.Parallel()

	_, err := HomeTab().Blocks(demoSection(t, "")).Submit("Send").Build()
	wantViolation(t, err, "view", ConstraintIncompatible)

	field, _ := PlainTextInput("reason").Build()
	in, _ := Input("Reason", field).Build()
	_, err = HomeTab().Blocks(in).Build()
	wantViolation(t, err, "view.blocks", ConstraintIncompatible)

	if _, err := HomeTab().Blocks(demoSection(t, "")).Build(); err != nil {
		t.Fatalf("plain home tab rejected: %v", err)
	}
}

func TestViewBlockCap(t *testing.T) {
	t.Parallel()

	blocks := make([]Block, 101)
	for i := range blocks {
		blocks[i] = Divider()
	}

	if _, err := HomeTab().Blocks(blocks[:100]...).Build(); err != nil {
		t.Fatalf("100 blocks rejected: %v", err)
	}

	_, err := HomeTab().Blocks(blocks...).Build()
	wantViolation(t, err, "view.blocks", ConstraintTooMany)

	_, err = HomeTab().Build()
	wantViolation(t, err, "view.blocks", ConstraintTooFew)
}

func TestViewDuplicateBlockIDs(t *testing.T) {
	t.Parallel()

	_, err := HomeTab().
		Blocks(demoSection(t, "dup"), demoSection(t, "dup")).
		Build()
	wantViolation(t, err, "view.blocks[1].block_id", ConstraintIncompatible)
}

func TestViewPrivateMetadataBoundary(t *testing.T) {
	t.Parallel()

	if _, err := HomeTab().
		Blocks(demoSection(t, "")).
		PrivateMetadata(strings.Repeat("m", 3000)).
		Build(); err != nil {
		t.Fatalf("3000-char metadata rejected: %v", err)
	}

	_, err := HomeTab().
		Blocks(demoSection(t, "")).
		PrivateMetadata(strings.Repeat("m", 3001)).
		Build()
	wantViolation(t, err, "view.private_metadata", ConstraintTooLong)
}

func TestViewBuilderIsTemplate(t *testing.T) {
	t.Parallel()

	base := Modal("Settings").Blocks(demoSection(t, ""))

	withSubmit, err := base.Submit("Save").Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	plain, err := base.Build()
	if err != nil {
		t.Fatalf("template Build() error: %v", err)
	}
	if withSubmit.Submit == nil {
		t.Error("Submit missing on derived view")
	}
	if plain.Submit != nil {
		t.Error("Submit leaked into template view")
	}
}
