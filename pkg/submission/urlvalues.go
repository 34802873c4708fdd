package submission

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Reserved input names of a submitted page form.
const (
	FreeTextKey   = "pf_free_text"
	SectionPrefix = "_section"
	// instancePlaceholder is the index used by the hidden starter instance a
	// form page clones for multiple-instance templates.
	instancePlaceholder = "num"
)

// FromURLValues decodes a submitted page form. Template fields use the
// Template[field] naming, multiple-instance templates Template[index][field],
// and list inputs append "[]". Sections are submitted as _section[Name] and
// the free text as pf_free_text. Keys without brackets are ignored.
func FromURLValues(form url.Values) (Submission, error) {
	sub := New()
	indexed := make(map[string]map[int]Values)

	keys := make([]string, 0, len(form))
	for key := range form {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		values := form[key]
		if len(values) == 0 {
			continue
		}
		if key == FreeTextKey {
			sub.SetFreeText(values[0])
			continue
		}

		base, segments, err := parseKey(key)
		if err != nil {
			return Submission{}, err
		}
		if len(segments) == 0 {
			continue
		}

		if base == SectionPrefix {
			if len(segments) != 1 || segments[0] == "" {
				return Submission{}, fmt.Errorf("submission: key %q: %w", key, ErrInvalidKey)
			}
			sub.SetSection(segments[0], values[0])
			continue
		}

		index, field, list, err := fieldAddress(key, segments)
		if err != nil {
			return Submission{}, err
		}
		if index < 0 {
			continue
		}
		if indexed[base] == nil {
			indexed[base] = make(map[int]Values)
		}
		instance := indexed[base][index]
		if instance == nil {
			instance = Values{}
			indexed[base][index] = instance
		}
		if list {
			instance[field] = append(instance[field], trimAll(values)...)
		} else {
			instance[field] = []string{strings.TrimSpace(values[0])}
		}
	}

	for template, instances := range indexed {
		indices := make([]int, 0, len(instances))
		for index := range instances {
			indices = append(indices, index)
		}
		sort.Ints(indices)
		for _, index := range indices {
			sub.AddInstance(template, instances[index])
		}
	}
	return sub, nil
}

// fieldAddress interprets the bracket segments of a template key. A negative
// index marks the placeholder instance, which is skipped.
func fieldAddress(key string, segments []string) (index int, field string, list bool, err error) {
	if len(segments) > 0 && segments[len(segments)-1] == "" {
		list = true
		segments = segments[:len(segments)-1]
	}

	switch len(segments) {
	case 1:
		field = segments[0]
	case 2:
		if segments[0] == instancePlaceholder {
			return -1, "", false, nil
		}
		index, err = strconv.Atoi(segments[0])
		if err != nil || index < 0 {
			return 0, "", false, fmt.Errorf("submission: key %q: instance %q: %w", key, segments[0], ErrInvalidKey)
		}
		field = segments[1]
	default:
		return 0, "", false, fmt.Errorf("submission: key %q: %w", key, ErrInvalidKey)
	}

	if field == "" {
		return 0, "", false, fmt.Errorf("submission: key %q: empty field: %w", key, ErrInvalidKey)
	}
	return index, field, list, nil
}

// parseKey splits "Base[a][b]" into "Base" and ["a", "b"]. Keys without
// brackets return no segments.
func parseKey(key string) (string, []string, error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, nil, nil
	}
	base := strings.TrimSpace(key[:open])
	if base == "" {
		return "", nil, fmt.Errorf("submission: key %q: missing template name: %w", key, ErrInvalidKey)
	}

	var segments []string
	rest := key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, fmt.Errorf("submission: key %q: unexpected %q: %w", key, rest, ErrInvalidKey)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, fmt.Errorf("submission: key %q: unclosed bracket: %w", key, ErrInvalidKey)
		}
		segments = append(segments, strings.TrimSpace(rest[1:end]))
		rest = rest[end+1:]
	}
	return base, segments, nil
}
