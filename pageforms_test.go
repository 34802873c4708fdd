package pageforms_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	pageforms "github.com/goliatone/go-pageforms"
	"github.com/goliatone/go-pageforms/pkg/formdef"
	"github.com/goliatone/go-pageforms/pkg/submission"
	"github.com/goliatone/go-pageforms/pkg/wikipage"
)

func TestGeneratePage(t *testing.T) {
	sub := submission.New()
	sub.AddInstance("Cite", submission.Values{"1": {"Menabrea"}, "2": {"Sketch"}})

	result, err := pageforms.GeneratePage(context.Background(), "Citation", sub)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := "{{Cite|Menabrea|Sketch}}\n<onlyinclude></onlyinclude>\n"
	if diff := cmp.Diff(want, result.Text); diff != "" {
		t.Fatalf("page text mismatch (-want +got):\n%s", diff)
	}
}

func TestGeneratePageFromDefinition(t *testing.T) {
	form := formdef.Form{
		Name: "Note",
		Items: []formdef.Item{
			{Section: &formdef.SectionDef{Name: "Summary", Level: 2}},
		},
	}
	sub := submission.New()
	sub.SetSection("Summary", "Short.")

	result, err := pageforms.GeneratePageFromDefinition(context.Background(), form, sub)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Text != "==Summary==\nShort.\n\n" {
		t.Fatalf("unexpected text %q", result.Text)
	}
}

func TestLoadEmbeddedForms(t *testing.T) {
	store, err := pageforms.LoadForms(pageforms.EmbeddedForms())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"Citation", "Person"}, store.Names()); diff != "" {
		t.Fatalf("form names mismatch (-want +got):\n%s", diff)
	}
}

func TestNewPage(t *testing.T) {
	page := pageforms.NewPage()
	page.AddFreeText(wikipage.FreeTextOptions{})
	page.SetFreeText("Hello", true)
	if page.Text() != "Hello\n" {
		t.Fatalf("unexpected text %q", page.Text())
	}
}
