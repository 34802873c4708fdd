package jsonpage_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pageforms/pkg/render"
	"github.com/goliatone/go-pageforms/pkg/renderers/jsonpage"
)

func TestRenderer_RoundTrip(t *testing.T) {
	page := render.Page{Form: "Citation", Title: "Citations/Menabrea", Text: "{{Cite|Menabrea}}\n"}

	out, err := jsonpage.New().Render(context.Background(), page)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got render.Page
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if diff := cmp.Diff(page, got); diff != "" {
		t.Fatalf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_Compact(t *testing.T) {
	out, err := jsonpage.New(jsonpage.WithIndent("")).Render(context.Background(), render.Page{Form: "F", Text: "x"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `{"form":"F","text":"x"}` + "\n"; string(out) != want {
		t.Fatalf("unexpected output: want %q got %q", want, out)
	}
}
