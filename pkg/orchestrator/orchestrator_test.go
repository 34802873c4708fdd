package orchestrator_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-pageforms/pkg/formdef"
	"github.com/goliatone/go-pageforms/pkg/orchestrator"
	"github.com/goliatone/go-pageforms/pkg/render"
	"github.com/goliatone/go-pageforms/pkg/renderers/jsonpage"
	"github.com/goliatone/go-pageforms/pkg/submission"
	"github.com/goliatone/go-pageforms/pkg/testsupport"
	"github.com/goliatone/go-pageforms/pkg/wikipage"
)

func TestOrchestrator_GeneratePersonGolden(t *testing.T) {
	ctx := testsupport.Context()
	orch := orchestrator.New()

	result, err := orch.Generate(ctx, orchestrator.Request{
		Form:       "Person",
		Submission: testsupport.MustLoadSubmission(t, filepath.Join("testdata", "person_submission.yaml")),
		Submitted:  true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if result.PageName != "People/Ada Lovelace" {
		t.Fatalf("unexpected page name %q", result.PageName)
	}
	if result.ContentType != "text/x-wiki; charset=utf-8" {
		t.Fatalf("unexpected content type %q", result.ContentType)
	}
	if string(result.Output) != result.Text {
		t.Fatalf("wikitext output should equal page text")
	}

	goldenPath := filepath.Join("testdata", "person_page.golden.txt")
	if testsupport.WriteMaybeGolden(t, goldenPath, result.Output) {
		return
	}
	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := testsupport.CompareGolden(want, result.Text); diff != "" {
		t.Fatalf("golden mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_CitationTranslation(t *testing.T) {
	sub := submission.New()
	sub.AddInstance("Cite", submission.Values{
		"1":             {"Menabrea"},
		"3":             {"1843"},
		"peer-reviewed": {"on"},
	})
	sub.SetFreeText("<translate>\nTranslated text\n</translate>")

	orch := orchestrator.New(orchestrator.WithPageOptions(wikipage.WithTranslationAvailable(true)))

	saved, err := orch.Generate(context.Background(), orchestrator.Request{
		Form:       "Citation",
		Submission: sub,
		Submitted:  true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	wantText := "{{Cite|Menabrea||1843\n|peer-reviewed=Yes\n}}\n" +
		"<onlyinclude><translate>Translated text</translate></onlyinclude>\n"
	if diff := cmp.Diff(wantText, saved.Text); diff != "" {
		t.Fatalf("page text mismatch (-want +got):\n%s", diff)
	}
	if saved.PageName != "Citations/Menabrea" {
		t.Fatalf("unexpected page name %q", saved.PageName)
	}
	if saved.FreeText != "<translate>Translated text</translate>" {
		t.Fatalf("expected stored free text to be wrapped, got %q", saved.FreeText)
	}

	display, err := orch.Generate(context.Background(), orchestrator.Request{
		Form:       "Citation",
		Submission: sub,
	})
	if err != nil {
		t.Fatalf("generate display: %v", err)
	}
	if display.FreeText != "Translated text" {
		t.Fatalf("expected unwrapped free text for display, got %q", display.FreeText)
	}
}

func TestOrchestrator_MandatoryFields(t *testing.T) {
	sub := submission.New()
	sub.AddInstance("Person", submission.Values{"Born": {"1815"}})
	sub.AddInstance("Publication", submission.Values{"Year": {"1843"}})

	orch := orchestrator.New()
	_, err := orch.Generate(context.Background(), orchestrator.Request{Form: "Person", Submission: sub})
	if !errors.Is(err, orchestrator.ErrMandatoryField) {
		t.Fatalf("expected ErrMandatoryField, got %v", err)
	}

	var missing orchestrator.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %T", err)
	}
	for _, want := range []string{"Person[0][Name]", "Publication[0][Title]"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %s, got %v", want, err)
		}
	}
}

func TestOrchestrator_DefinitionDefaultsAndSanitize(t *testing.T) {
	form := testsupport.MustLoadForm(t, filepath.Join("testdata", "event_form.yaml"))

	sub := submission.New()
	sub.AddInstance("Event", submission.Values{
		"Title":  {"<b>launch</b> day"},
		"Tags":   {"go", "", "wiki"},
		"Public": {"0"},
	})

	core, logs := observer.New(zapcore.DebugLevel)
	orch := orchestrator.New(
		orchestrator.WithFormsFS(nil),
		orchestrator.WithLogger(zap.New(core)),
	)

	result, err := orch.Generate(context.Background(), orchestrator.Request{Definition: &form, Submission: sub})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := "{{Event\n|Title=launch day\n|Status=Planned\n|Tags=go,wiki\n|Public=No\n}}\n===Agenda===\nTBD\n\n"
	if diff := cmp.Diff(want, result.Text); diff != "" {
		t.Fatalf("page text mismatch (-want +got):\n%s", diff)
	}
	if result.PageName != "Events/Launch day" {
		t.Fatalf("unexpected page name %q", result.PageName)
	}
	if logs.FilterMessage("Sanitized field value").Len() != 1 {
		t.Fatalf("expected one sanitize warning, got %v", logs.All())
	}
}

func TestOrchestrator_RendererSelection(t *testing.T) {
	sub := submission.New()
	sub.AddInstance("Cite", submission.Values{"1": {"Menabrea"}})

	orch := orchestrator.New()
	result, err := orch.Generate(context.Background(), orchestrator.Request{
		Form:       "Citation",
		Submission: sub,
		PageName:   "Custom page",
		Renderer:   jsonpage.Name,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var page render.Page
	if err := json.Unmarshal(result.Output, &page); err != nil {
		t.Fatalf("decode json output: %v", err)
	}
	want := render.Page{Form: "Citation", Title: "Custom page", Text: "{{Cite|Menabrea}}\n<onlyinclude></onlyinclude>\n"}
	if diff := cmp.Diff(want, page); diff != "" {
		t.Fatalf("json page mismatch (-want +got):\n%s", diff)
	}

	if _, err := orch.Generate(context.Background(), orchestrator.Request{Form: "Citation", Submission: sub, Renderer: "html"}); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestOrchestrator_PresetTransformer(t *testing.T) {
	fsys := fstest.MapFS{"preset.yaml": {Data: testsupport.MustReadGolden(t, filepath.Join("testdata", "preset.yaml"))}}
	preset, err := orchestrator.NewPresetTransformerFromFS(fsys, "preset.yaml")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}

	sub := submission.New()
	sub.AddInstance("Person", submission.Values{"Name": {"Ada"}, "Born": {"1815"}})

	orch := orchestrator.New(orchestrator.WithTransformer(preset))
	result, err := orch.Generate(context.Background(), orchestrator.Request{Form: "Person", Submission: sub})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := "{{Person\n|Name=Ada\n|Born=1815\n|Status=Living\n}}\n==Biography==\n\n==Notes==\nTo be reviewed.\n\n\n"
	if diff := cmp.Diff(want, result.Text); diff != "" {
		t.Fatalf("page text mismatch (-want +got):\n%s", diff)
	}
	if got := sub.Instances("Person")[0]; len(got) != 2 {
		t.Fatalf("transformer must not mutate the caller's submission, got %v", got)
	}
}

func TestOrchestrator_PresetTransformerUnknownTemplate(t *testing.T) {
	preset, err := orchestrator.NewPresetTransformer([]byte("templates:\n  Missing: {a: b}\n"))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	orch := orchestrator.New(orchestrator.WithTransformer(preset))
	_, err = orch.Generate(context.Background(), orchestrator.Request{Form: "Person", Submission: submission.New()})
	if err == nil || !strings.Contains(err.Error(), `template "Missing"`) {
		t.Fatalf("expected unknown template error, got %v", err)
	}
}

func TestOrchestrator_FormErrors(t *testing.T) {
	orch := orchestrator.New()

	if _, err := orch.Generate(context.Background(), orchestrator.Request{Form: "Nope"}); !errors.Is(err, formdef.ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
	if _, err := orch.Generate(context.Background(), orchestrator.Request{}); err == nil {
		t.Fatalf("expected missing form error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orch.Generate(ctx, orchestrator.Request{Form: "Person"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	broken := orchestrator.New(orchestrator.WithFormsFS(fstest.MapFS{
		"bad.yaml": {Data: []byte("forms:\n  Bad:\n    items:\n      - {}\n")},
	}))
	if _, err := broken.Store(); !errors.Is(err, formdef.ErrInvalidDefinition) {
		t.Fatalf("expected ErrInvalidDefinition from Store, got %v", err)
	}
}

func TestOrchestrator_TransformerFunc(t *testing.T) {
	called := false
	transformer := orchestrator.TransformerFunc(func(_ context.Context, form *formdef.Form, sub *submission.Submission) error {
		called = true
		sub.AddInstance("Cite", submission.Values{"1": {form.Name}})
		return nil
	})

	orch := orchestrator.New(orchestrator.WithTransformer(transformer))
	result, err := orch.Generate(context.Background(), orchestrator.Request{Form: "Citation", Submission: submission.New()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !called {
		t.Fatalf("expected transformer to run")
	}
	if !strings.HasPrefix(result.Text, "{{Cite|Citation}}") {
		t.Fatalf("unexpected text %q", result.Text)
	}
}

func TestOrchestrator_PageNameWithNonIdentifierTemplate(t *testing.T) {
	form := formdef.Form{
		Name:     "Review",
		PageName: `Reviews/{{ field("Book review", "Book title")|pagetitle }} ({{ form.name }})`,
		Items: []formdef.Item{
			{Template: &formdef.TemplateDef{
				Name:   "Book review",
				Fields: []formdef.FieldDef{{Name: "Book title"}},
			}},
		},
	}
	sub := submission.New()
	sub.AddInstance("Book review", submission.Values{"Book title": {"the_difference engine"}})

	orch := orchestrator.New(orchestrator.WithFormsFS(nil))
	result, err := orch.Generate(context.Background(), orchestrator.Request{Definition: &form, Submission: sub})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.PageName != "Reviews/The difference engine (Review)" {
		t.Fatalf("unexpected page name %q", result.PageName)
	}
}

func TestOrchestrator_PageNameListFieldsAndDescription(t *testing.T) {
	form := formdef.Form{
		Name:        "Talk",
		Description: "Conference talks",
		PageName:    `{{ form.description }}/{{ Talk.Speakers|first }} of {{ Talk.Speakers|length }} ({{ field("Talk", "Speakers") }})`,
		Items: []formdef.Item{
			{Template: &formdef.TemplateDef{
				Name:   "Talk",
				Fields: []formdef.FieldDef{{Name: "Speakers", Input: formdef.InputList, Delimiter: ";"}},
			}},
		},
	}
	sub := submission.New()
	sub.AddInstance("Talk", submission.Values{"Speakers": {"Ada; Charles", "Mary"}})

	orch := orchestrator.New(orchestrator.WithFormsFS(nil))
	result, err := orch.Generate(context.Background(), orchestrator.Request{Definition: &form, Submission: sub})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if want := "Conference talks/Ada of 3 (Ada; Charles;Mary)"; result.PageName != want {
		t.Fatalf("unexpected page name: want %q got %q", want, result.PageName)
	}
}
