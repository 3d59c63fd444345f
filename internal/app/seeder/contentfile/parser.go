package contentfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ContentFileName marks a directory as a content module.
	ContentFileName = "content.yaml"
	// ExamplesFileName holds code examples keyed by lesson slug.
	ExamplesFileName = "examples.yaml"
	// QuizFileName holds quiz questions keyed by lesson slug.
	QuizFileName = "quiz.yaml"
)

// ErrNotModule is returned by ParseDir when the directory has no content
// file. The walker normally filters these out before the loader runs.
var ErrNotModule = errors.New("directory is not a content module")

// ParseDir reads one topic directory into a Module. The content file is
// decoded strictly: an unknown field on the topic or a lesson aborts the
// parse. The examples and quiz files are optional and decoded leniently.
func ParseDir(dir string) (*Module, error) {
	raw, err := os.ReadFile(filepath.Join(dir, ContentFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotModule
		}
		return nil, fmt.Errorf("read %s: %w", ContentFileName, err)
	}

	var cf contentFile
	if err := decodeStrict(raw, &cf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ContentFileName, err)
	}

	m := &Module{
		Dir:     dir,
		Topic:   cf.Topic,
		Lessons: cf.Lessons,
	}

	if err := parseOptional(filepath.Join(dir, ExamplesFileName), &m.Examples); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ExamplesFileName, err)
	}
	if err := parseOptional(filepath.Join(dir, QuizFileName), &m.Quiz); err != nil {
		return nil, fmt.Errorf("parse %s: %w", QuizFileName, err)
	}
	return m, nil
}

// decodeStrict rejects unknown fields anywhere in the document.
func decodeStrict(raw []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

// parseOptional decodes a child file if it exists. Unknown fields on child
// records are tolerated so authors can annotate freely.
func parseOptional(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(raw, out)
}
