package gotemplate_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/goliatone/go-pageforms/pkg/render/template/gotemplate"
	"github.com/goliatone/go-pageforms/pkg/testsupport"
)

func TestEngine_RenderStringPageTitle(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	data := map[string]any{
		"Person": map[string]any{"Name": "  ada_lovelace [draft] "},
	}

	got, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderString("People/{{ Person.Name|pagetitle }}", data, w)
	})
	if want := "People/Ada lovelace draft"; got != want {
		t.Fatalf("unexpected output: want %q got %q", want, got)
	}
	if written != got {
		t.Fatalf("writer received %q, want %q", written, got)
	}
}

func TestEngine_TemplateFuncsAndGlobals(t *testing.T) {
	field := func(template, name string) string {
		return template + ":" + name
	}

	engine, err := gotemplate.New(
		gotemplate.WithTemplateFunc(map[string]any{"field": field}),
		gotemplate.WithGlobalData(map[string]any{"site": "Wiki"}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderString(`{{ site }}/{{ field("Cite", "1")|trim }}`, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "Wiki/Cite:1"; got != want {
		t.Fatalf("unexpected output: want %q got %q", want, got)
	}

	if err := engine.GlobalContext(map[string]any{"site": "Other"}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err = engine.RenderString(`{{ site }}`, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Other" {
		t.Fatalf("expected updated global, got %q", got)
	}
}

func TestEngine_RejectsNonCallableTemplateFunc(t *testing.T) {
	_, err := gotemplate.New(gotemplate.WithTemplateFunc(map[string]any{"broken": 42}))
	if err == nil || !strings.Contains(err.Error(), "not callable") {
		t.Fatalf("expected not callable error, got %v", err)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	err = engine.RegisterFilter("pageforms_shout", func(input any, _ any) (any, error) {
		s, _ := input.(string)
		if s == "" {
			return nil, errors.New("empty input")
		}
		return strings.ToUpper(s) + "!", nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	got, err := engine.RenderString(`{{ name|pageforms_shout }}`, map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("unexpected output %q", got)
	}

	if _, err := engine.RenderString(`{{ name|pageforms_shout }}`, map[string]any{"name": ""}); err == nil {
		t.Fatalf("expected filter error to surface")
	}

	if err := engine.RegisterFilter("pageforms_shout", func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}
}

func TestEngine_ParseError(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.RenderString("{{ unclosed", nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestEngine_AutoescapeOffByDefault(t *testing.T) {
	data := map[string]any{"name": "Tom & Jerry"}

	plain, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	got, err := plain.RenderString("{{ name }}", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Tom & Jerry" {
		t.Fatalf("expected unescaped output, got %q", got)
	}

	escaping, err := gotemplate.New(gotemplate.WithAutoescape(true))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	got, err = escaping.RenderString("{{ name }}", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Tom &amp; Jerry" {
		t.Fatalf("expected escaped output, got %q", got)
	}
}

func TestEngine_ConvertsStructsAndLists(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	type author struct {
		Name string `json:"name"`
	}
	type book struct {
		Title   string   `json:"title"`
		Authors []author `json:"authors"`
	}

	got, err := engine.RenderString(`{{ title }} by {{ authors.0.name }}`, book{
		Title:   "Sketch",
		Authors: []author{{Name: "Ada"}},
	})
	if err != nil {
		t.Fatalf("render struct: %v", err)
	}
	if got != "Sketch by Ada" {
		t.Fatalf("unexpected struct output %q", got)
	}

	data := map[string]any{
		"tags": []any{"a", author{Name: "b"}, []any{"c"}},
	}
	got, err = engine.RenderString(`{{ tags|first }}-{{ tags.1.name }}-{{ tags|last|first }}`, data)
	if err != nil {
		t.Fatalf("render list: %v", err)
	}
	if got != "a-b-c" {
		t.Fatalf("unexpected list output %q", got)
	}
}

func TestEngine_TrimFilterFormatsNonStrings(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderString(`[{{ year|trim }}][{{ missing|trim }}][{{ name|trim }}]`, map[string]any{
		"year": 1843,
		"name": "  Ada ",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "[1843][][Ada]"; got != want {
		t.Fatalf("unexpected output: want %q got %q", want, got)
	}
}
