package huek

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary/huek250.yaml
var defaultVocabularyYAML []byte

// SharedCategory names a category that every attribute field carries
// (waterbody and no data). Each extractor reports it separately and the
// aggregator collapses the six values into one column.
type SharedCategory string

const (
	Waterbody SharedCategory = "waterbody"
	NoData    SharedCategory = "no_data"
)

// Category maps a label of the base map to an output column.
type Category struct {
	Label  string `yaml:"label"`
	Column string `yaml:"column"`
}

// SharedCategories declares the shared categories once for all attributes.
type SharedCategories struct {
	Waterbody Category `yaml:"waterbody"`
	NoData    Category `yaml:"no_data"`
}

// Keys returns the shared categories in output order.
func (s SharedCategories) Keys() []SharedCategory {
	return []SharedCategory{Waterbody, NoData}
}

// Get returns the declaration of a shared category.
func (s SharedCategories) Get(key SharedCategory) Category {
	if key == NoData {
		return s.NoData
	}
	return s.Waterbody
}

// Attribute is one categorical field of the base map.
type Attribute struct {
	// Name prefixes diagnostics and the per-attribute shared columns ("kf").
	Name string `yaml:"name"`
	// Field is the attribute field in the base map ("kf_bez").
	Field       string     `yaml:"field"`
	Description string     `yaml:"description"`
	Categories  []Category `yaml:"categories"`
}

// SharedColumn returns the attribute's own column for a shared category,
// e.g. "kf_waterbody_perc". These columns only exist before collapsing.
func (a Attribute) SharedColumn(key SharedCategory) string {
	return a.Name + "_" + string(key) + "_perc"
}

// Columns returns the attribute-specific output columns in vocabulary order.
func (a Attribute) Columns() []string {
	cols := make([]string, len(a.Categories))
	for i, c := range a.Categories {
		cols[i] = c.Column
	}
	return cols
}

// Vocabulary is the versioned mapping from base-map labels to output columns.
type Vocabulary struct {
	Product    string           `yaml:"product"`
	Version    string           `yaml:"version"`
	Shared     SharedCategories `yaml:"shared"`
	Attributes []Attribute      `yaml:"attributes"`
}

// DefaultVocabulary returns the built-in HÜK250 vocabulary.
func DefaultVocabulary() *Vocabulary {
	v, err := ParseVocabulary(defaultVocabularyYAML)
	if err != nil {
		panic(fmt.Sprintf("huek: embedded vocabulary is invalid: %v", err))
	}
	return v
}

// ParseVocabulary decodes and validates a YAML vocabulary document.
// Unknown keys are rejected so typos do not silently drop categories.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var v Vocabulary
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

// LoadVocabulary reads a vocabulary file.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided vocabulary path is intentional
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	v, err := ParseVocabulary(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Validate checks that labels are unique per attribute, that no attribute
// redeclares a shared label, and that every output column is unique.
func (v *Vocabulary) Validate() error {
	if v.Version == "" {
		return errors.New("vocabulary has no version")
	}
	if len(v.Attributes) == 0 {
		return errors.New("vocabulary has no attributes")
	}

	columns := make(map[string]string)
	addColumn := func(col, owner string) error {
		if col == "" {
			return fmt.Errorf("%s: empty column name", owner)
		}
		if prev, ok := columns[col]; ok {
			return fmt.Errorf("column %q declared by both %s and %s", col, prev, owner)
		}
		columns[col] = owner
		return nil
	}

	sharedLabels := make(map[string]SharedCategory)
	for _, key := range v.Shared.Keys() {
		c := v.Shared.Get(key)
		if c.Label == "" {
			return fmt.Errorf("shared category %s has no label", key)
		}
		if err := addColumn(c.Column, "shared "+string(key)); err != nil {
			return err
		}
		sharedLabels[c.Label] = key
	}

	names := make(map[string]bool)
	for i, a := range v.Attributes {
		if a.Name == "" || a.Field == "" {
			return fmt.Errorf("attribute %d needs name and field", i)
		}
		if names[a.Name] {
			return fmt.Errorf("attribute %q declared twice", a.Name)
		}
		names[a.Name] = true

		if len(a.Categories) == 0 {
			return fmt.Errorf("attribute %s has no categories", a.Name)
		}

		labels := make(map[string]bool)
		for _, c := range a.Categories {
			if c.Label == "" {
				return fmt.Errorf("attribute %s: category %q has no label", a.Name, c.Column)
			}
			if key, ok := sharedLabels[c.Label]; ok {
				return fmt.Errorf("attribute %s: label %q is the shared %s label", a.Name, c.Label, key)
			}
			if labels[c.Label] {
				return fmt.Errorf("attribute %s: label %q declared twice", a.Name, c.Label)
			}
			labels[c.Label] = true
			if err := addColumn(c.Column, "attribute "+a.Name); err != nil {
				return err
			}
		}
	}

	return nil
}

// Attribute returns the attribute with the given name.
func (v *Vocabulary) Attribute(name string) (Attribute, bool) {
	for _, a := range v.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Columns returns the merged output columns: every attribute-specific
// column in attribute order, then one column per shared category.
func (v *Vocabulary) Columns() []string {
	var cols []string
	for _, a := range v.Attributes {
		cols = append(cols, a.Columns()...)
	}
	for _, key := range v.Shared.Keys() {
		cols = append(cols, v.Shared.Get(key).Column)
	}
	return cols
}

// UnknownLabel is a base-map label outside the vocabulary.
type UnknownLabel struct {
	Field string
	Label string
	Count int
}

// Audit compares the labels used in a layer against the vocabulary.
//
// Unknown labels would contribute to the clipped area of a catchment but to
// no column, so the consistency check would fail later with a less helpful
// message. A field missing from the layer is returned as *MissingFieldError.
func (v *Vocabulary) Audit(l *Layer) ([]UnknownLabel, error) {
	var unknown []UnknownLabel

	for _, a := range v.Attributes {
		if !l.HasField(a.Field) {
			return nil, &MissingFieldError{Layer: l.Name(), Field: a.Field}
		}

		known := make(map[string]bool, len(a.Categories)+2)
		for _, c := range a.Categories {
			known[c.Label] = true
		}
		for _, key := range v.Shared.Keys() {
			known[v.Shared.Get(key).Label] = true
		}

		counts := make(map[string]int)
		for _, f := range l.Features() {
			label, _ := f.Attribute(a.Field)
			if !known[label] {
				counts[label]++
			}
		}

		labels := make([]string, 0, len(counts))
		for label := range counts {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			unknown = append(unknown, UnknownLabel{Field: a.Field, Label: label, Count: counts[label]})
		}
	}

	return unknown, nil
}
