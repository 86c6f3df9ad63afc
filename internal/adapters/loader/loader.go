// Package loader provides knowledge source adapters.
// Clean Architecture: Adapters implementing ports.KnowledgeSource.
package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/entities"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/knowledge"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/ports"
)

// BuiltinName is the source name reported for the compiled-in knowledge base.
const BuiltinName = "builtin"

var validate = validator.New(validator.WithRequiredStructEnabled())

// knowledgeFile is the on-disk layout of a knowledge file.
type knowledgeFile struct {
	Fallback string      `yaml:"fallback,omitempty"`
	Entries  []entryFile `yaml:"entries" validate:"required,min=1,dive"`
}

type entryFile struct {
	Topic    string   `yaml:"topic,omitempty"`
	Keywords []string `yaml:"keywords" validate:"required,min=1,dive,required"`
	Answer   string   `yaml:"answer" validate:"required"`
}

// BuiltinSource serves the compiled-in AssessIQ knowledge base.
type BuiltinSource struct{}

// NewBuiltinSource creates a source for the built-in knowledge base.
func NewBuiltinSource() *BuiltinSource {
	return &BuiltinSource{}
}

// Load returns the shared built-in knowledge base.
func (s *BuiltinSource) Load(ctx context.Context) (*entities.KnowledgeBase, error) {
	return knowledge.Default(), nil
}

// Name returns BuiltinName.
func (s *BuiltinSource) Name() string {
	return BuiltinName
}

// YAMLSource loads a knowledge base from a YAML (or JSON) file.
type YAMLSource struct {
	path string
}

// NewYAMLSource creates a source reading the file at path.
func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{path: path}
}

// Load reads, validates and builds the knowledge base.
func (s *YAMLSource) Load(ctx context.Context) (*entities.KnowledgeBase, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Decode(file)
}

// Name returns the file path.
func (s *YAMLSource) Name() string {
	return s.path
}

// SupportedExtensions returns file extensions this loader handles.
func (s *YAMLSource) SupportedExtensions() []string {
	return []string{".yaml", ".yml", ".json"}
}

// NewSource picks a source for path: the built-in base when path is empty,
// a YAMLSource for supported extensions.
func NewSource(path string) (ports.KnowledgeSource, error) {
	if path == "" {
		return NewBuiltinSource(), nil
	}

	src := NewYAMLSource(path)
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range src.SupportedExtensions() {
		if ext == e {
			return src, nil
		}
	}
	return nil, fmt.Errorf("unsupported knowledge file extension %q", ext)
}

// Decode parses a knowledge file. Unknown fields are rejected. A missing
// fallback uses knowledge.FallbackText.
func Decode(r io.Reader) (*entities.KnowledgeBase, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f knowledgeFile
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, entities.ErrNoEntries
		}
		return nil, fmt.Errorf("decoding knowledge file: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("validating knowledge file: %w", err)
	}

	fallback := f.Fallback
	if strings.TrimSpace(fallback) == "" {
		fallback = knowledge.FallbackText
	}

	entries := make([]entities.KnowledgeEntry, len(f.Entries))
	for i, e := range f.Entries {
		entries[i] = entities.KnowledgeEntry{
			Topic:    e.Topic,
			Keywords: e.Keywords,
			Answer:   e.Answer,
		}
	}
	return entities.NewKnowledgeBase(entries, fallback)
}

// Encode writes kb in the knowledge file layout accepted by Decode.
func Encode(w io.Writer, kb *entities.KnowledgeBase) error {
	f := knowledgeFile{
		Fallback: kb.Fallback(),
		Entries:  make([]entryFile, 0, kb.Len()),
	}
	for i := 0; i < kb.Len(); i++ {
		e := kb.Entry(i)
		f.Entries = append(f.Entries, entryFile{
			Topic:    e.Topic,
			Keywords: e.Keywords,
			Answer:   e.Answer,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return fmt.Errorf("encoding knowledge file: %w", err)
	}
	return enc.Close()
}
