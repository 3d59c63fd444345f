package contentfile

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Module is the parsed form of one topic directory: the required content
// file plus the optional examples and quiz files.
type Module struct {
	Dir      string
	Topic    TopicRecord
	Lessons  []LessonRecord
	Examples map[string][]ExampleRecord
	Quiz     map[string][]QuestionRecord
}

// contentFile mirrors content.yaml. Decoded strictly: unknown fields on the
// topic or lesson records are parse errors.
type contentFile struct {
	Topic   TopicRecord    `yaml:"topic"`
	Lessons []LessonRecord `yaml:"lessons"`
}

// TopicRecord is the authored topic declaration.
type TopicRecord struct {
	Slug             string `yaml:"slug"`
	Name             string `yaml:"name"`
	Description      string `yaml:"description"`
	EstimatedMinutes int    `yaml:"estimated_minutes"`
	OrderIndex       int    `yaml:"order_index"`
}

// LessonRecord is the authored lesson declaration. Difficulty and
// OrderIndex are optional; the normalizer fills them in.
type LessonRecord struct {
	Slug             string   `yaml:"slug"`
	Title            string   `yaml:"title"`
	Summary          string   `yaml:"summary"`
	Content          string   `yaml:"content"`
	Difficulty       string   `yaml:"difficulty"`
	EstimatedMinutes int      `yaml:"estimated_minutes"`
	OrderIndex       int      `yaml:"order_index"`
	KeyPoints        []string `yaml:"key_points"`
}

// ExampleRecord is an authored code example, keyed to a lesson slug by the
// enclosing examples.yaml map. Decoded leniently for forward compatibility.
type ExampleRecord struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Language    string `yaml:"language"`
	Code        string `yaml:"code"`
	Explanation string `yaml:"explanation"`
	OrderIndex  int    `yaml:"order_index"`
}

// QuestionRecord is an authored quiz question. Decoded leniently.
type QuestionRecord struct {
	Question      string       `yaml:"question"`
	Kind          string       `yaml:"kind"`
	Options       OptionsValue `yaml:"options"`
	CorrectAnswer string       `yaml:"correct_answer"`
	Explanation   string       `yaml:"explanation"`
	Difficulty    string       `yaml:"difficulty"`
	Points        int          `yaml:"points"`
	OrderIndex    int          `yaml:"order_index"`
}

// OptionsValue is the polymorphic options field of a quiz question. Authors
// may write a pre-serialized string, a list of option texts, or a mapping
// from option key to text. Canonical() folds all three into one stored form.
type OptionsValue struct {
	raw   string
	isRaw bool
	byKey map[string]string
	isSet bool
}

// UnmarshalYAML accepts a scalar string, a sequence, or a mapping.
func (o *OptionsValue) UnmarshalYAML(node *yaml.Node) error {
	o.isSet = true

	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return fmt.Errorf("options: %w", err)
		}
		o.raw = s
		o.isRaw = true
		return nil

	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("options: %w", err)
		}
		o.byKey = make(map[string]string, len(list))
		for i, text := range list {
			o.byKey[optionKey(i)] = text
		}
		return nil

	case yaml.MappingNode:
		var m map[string]string
		if err := node.Decode(&m); err != nil {
			return fmt.Errorf("options: %w", err)
		}
		o.byKey = m
		return nil
	}

	return fmt.Errorf("options: unsupported YAML node kind %d", node.Kind)
}

// IsZero reports whether the field was absent from the source.
func (o OptionsValue) IsZero() bool { return !o.isSet }

// Canonical returns the store's canonical textual encoding: a JSON object
// mapping option key to option text, keys sorted. A pre-serialized string
// passes through untouched.
func (o OptionsValue) Canonical() string {
	if !o.isSet {
		return ""
	}
	if o.isRaw {
		return o.raw
	}
	// json.Marshal writes map keys in sorted order, which is the
	// canonical form for all structured inputs.
	b, err := json.Marshal(o.byKey)
	if err != nil {
		return ""
	}
	return string(b)
}

// optionKey maps a 0-based position to "a", "b", ..., "z", "aa", ...
func optionKey(i int) string {
	var b []byte
	for {
		b = append([]byte{byte('a' + i%26)}, b...)
		i = i/26 - 1
		if i < 0 {
			return string(b)
		}
	}
}
