package section

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// ErrUnknownComponent is returned when a tag is not in the registry.
var ErrUnknownComponent = errors.New("unknown section component")

type decodeFunc func(data []byte, strict bool) (Section, error)

var registry = map[string]decodeFunc{
	TagHero:         decodeAs[Hero],
	TagFeatures:     decodeAs[Features],
	TagTestimonials: decodeAs[Testimonials],
	TagContact:      decodeAs[Contact],
	TagGallery:      decodeAs[Gallery],
	TagFAQ:          decodeAs[FAQ],
	TagPricing:      decodeAs[Pricing],
}

// Tags returns the registered component tags in alphabetical order.
func Tags() []string {
	tags := make([]string, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// IsKnown reports whether tag names a registered section variant.
func IsKnown(tag string) bool {
	_, ok := registry[normalizeTag(tag)]
	return ok
}

// Decode validates data against the schema registered for component and
// returns the typed section. Unknown tags and unknown fields are rejected.
func Decode(component string, data json.RawMessage) (Section, error) {
	tag := normalizeTag(component)
	decode, ok := registry[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, component)
	}
	section, err := decode(data, true)
	if err != nil {
		return nil, fmt.Errorf("invalid %s section: %w", tag, err)
	}
	return section, nil
}

// Parse decodes stored section data for rendering. It never fails: anything
// that cannot be decoded becomes an Unknown placeholder.
func Parse(component string, data json.RawMessage) Section {
	tag := normalizeTag(component)
	decode, ok := registry[tag]
	if !ok {
		return Unknown{Component: component, Reason: "component not found"}
	}
	section, err := decode(data, false)
	if err != nil {
		return Unknown{Component: component, Reason: err.Error()}
	}
	return section
}

func decodeAs[T Section](data []byte, strict bool) (Section, error) {
	var value T
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return value, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after section payload")
	}
	return value, nil
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
