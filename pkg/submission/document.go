package submission

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode reads a submission document in YAML or JSON:
//
//	templates:
//	  Person: {Name: Ada, Occupation: [Mathematician, Writer]}
//	  Publication:
//	    - {Title: Notes}
//	sections:
//	  Biography: Ada was...
//	freeText: More text.
//
// A template maps either to one instance or to a list of instances. Scalar
// values are kept as written; lists become list values.
func Decode(data []byte) (Submission, error) {
	var doc document
	if len(strings.TrimSpace(string(data))) == 0 {
		return New(), nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Submission{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	sub := New()
	for template, instances := range doc.Templates {
		for _, values := range instances {
			sub.AddInstance(template, values)
		}
	}
	for name, text := range doc.Sections {
		sub.SetSection(name, text)
	}
	if doc.FreeText != nil {
		sub.SetFreeText(*doc.FreeText)
	}
	return sub, nil
}

type document struct {
	Templates map[string]instanceList `yaml:"templates"`
	Sections  map[string]string       `yaml:"sections"`
	FreeText  *string                 `yaml:"freeText"`
}

type instanceList []Values

func (l *instanceList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		values, err := decodeValues(node)
		if err != nil {
			return err
		}
		*l = instanceList{values}
	case yaml.SequenceNode:
		out := make(instanceList, 0, len(node.Content))
		for _, child := range node.Content {
			if child.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: template instance must be a mapping", child.Line)
			}
			values, err := decodeValues(child)
			if err != nil {
				return err
			}
			out = append(out, values)
		}
		*l = out
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			return fmt.Errorf("line %d: template must map to an instance or a list of instances", node.Line)
		}
		*l = nil
	default:
		return fmt.Errorf("line %d: template must map to an instance or a list of instances", node.Line)
	}
	return nil
}

func decodeValues(node *yaml.Node) (Values, error) {
	values := make(Values, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: field name must be a scalar", key.Line)
		}
		switch value.Kind {
		case yaml.ScalarNode:
			if value.Tag == "!!null" {
				values[key.Value] = []string{""}
				continue
			}
			values[key.Value] = []string{value.Value}
		case yaml.SequenceNode:
			list := make([]string, 0, len(value.Content))
			for _, item := range value.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("line %d: list values must be scalars", item.Line)
				}
				list = append(list, item.Value)
			}
			values[key.Value] = list
		default:
			return nil, fmt.Errorf("line %d: field %q must be a scalar or a list", value.Line, key.Value)
		}
	}
	return values, nil
}

// Encode writes sub as a YAML submission document that Decode reads back.
// Single-valued fields become scalars and templates with one instance become
// a mapping.
func Encode(sub Submission) ([]byte, error) {
	doc := encodedDocument{
		Sections: sub.Sections,
		FreeText: sub.FreeText,
	}
	if len(sub.Templates) > 0 {
		doc.Templates = make(map[string]any, len(sub.Templates))
	}
	for name, instances := range sub.Templates {
		encoded := make([]map[string]any, 0, len(instances))
		for _, values := range instances {
			encoded = append(encoded, encodeValues(values))
		}
		if len(encoded) == 1 {
			doc.Templates[name] = encoded[0]
			continue
		}
		doc.Templates[name] = encoded
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("submission: encode document: %w", err)
	}
	return out, nil
}

type encodedDocument struct {
	Templates map[string]any    `yaml:"templates,omitempty"`
	Sections  map[string]string `yaml:"sections,omitempty"`
	FreeText  *string           `yaml:"freeText,omitempty"`
}

func encodeValues(values Values) map[string]any {
	out := make(map[string]any, len(values))
	for field, list := range values {
		if len(list) == 1 {
			out[field] = list[0]
			continue
		}
		out[field] = list
	}
	return out
}
