package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-pageforms/pkg/formdef"
	"github.com/goliatone/go-pageforms/pkg/submission"
)

// Transformer adjusts a submission before the page is assembled.
// Implementations can fill in values, rename fields or drop instances.
type Transformer interface {
	Transform(ctx context.Context, form *formdef.Form, sub *submission.Submission) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *formdef.Form, sub *submission.Submission) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *formdef.Form, sub *submission.Submission) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form, sub)
}

// PresetTransformer fills values the submission leaves out from a preset
// document in the submission document format:
//
//	templates:
//	  Person: {Status: Living}
//	sections:
//	  Notes: To be reviewed.
//
// Preset fields only apply when the field is absent from an instance. A
// preset template without submitted instances becomes the first instance.
type PresetTransformer struct {
	preset submission.Submission
}

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	preset, err := submission.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{preset: preset}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform merges the preset into sub.
func (t *PresetTransformer) Transform(ctx context.Context, form *formdef.Form, sub *submission.Submission) error {
	if form == nil || sub == nil {
		return errors.New("preset transformer: form and submission are required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, name := range t.preset.TemplateNames() {
		def, ok := form.Template(name)
		if !ok {
			return fmt.Errorf("preset transformer: template %q not in form %q", name, form.Name)
		}
		preset := t.preset.Instances(name)
		if len(preset) == 0 {
			continue
		}
		for field := range preset[0] {
			if _, ok := def.Field(field); !ok {
				return fmt.Errorf("preset transformer: field %q not in template %q", field, name)
			}
		}

		instances := sub.Instances(name)
		if len(instances) == 0 {
			sub.AddInstance(name, copyValues(preset[0]))
			continue
		}
		for _, values := range instances {
			mergeValues(values, preset[0])
		}
	}

	for name, text := range t.preset.Sections {
		if _, ok := sub.Section(name); !ok {
			sub.SetSection(name, text)
		}
	}
	if t.preset.FreeText != nil && sub.FreeText == nil {
		sub.SetFreeText(*t.preset.FreeText)
	}
	return nil
}

func mergeValues(dst, src submission.Values) {
	for field, values := range src {
		if _, ok := dst[field]; ok {
			continue
		}
		dst[field] = append([]string(nil), values...)
	}
}

func copyValues(src submission.Values) submission.Values {
	out := make(submission.Values, len(src))
	mergeValues(out, src)
	return out
}
