package typedb

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/replicanet/internal/core/replica/component"
)

// Static is an in-memory table, typically loaded from a YAML file of the form
//
//	templates:
//	  1: [4, 7, 48]
//	  6326: [1, 2, 7]
type Static struct {
	mu        sync.RWMutex
	templates map[int32][]component.Kind
}

type staticFile struct {
	Templates map[int32][]uint32 `yaml:"templates"`
}

func NewStatic(templates map[int32][]component.Kind) *Static {
	s := &Static{templates: make(map[int32][]component.Kind, len(templates))}
	for id, kinds := range templates {
		s.templates[id] = slices.Clone(kinds)
	}
	return s
}

// LoadYAML reads a static table from r.
func LoadYAML(r io.Reader) (*Static, error) {
	var f staticFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode type table: %w", err)
	}
	s := &Static{templates: make(map[int32][]component.Kind, len(f.Templates))}
	for id, raw := range f.Templates {
		kinds := make([]component.Kind, len(raw))
		for i, k := range raw {
			kinds[i] = component.Kind(k)
		}
		s.templates[id] = kinds
	}
	return s, nil
}

// LoadYAMLFile reads a static table from the file at path.
func LoadYAMLFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadYAML(f)
}

// Set replaces the kinds of one template.
func (s *Static) Set(templateID int32, kinds ...component.Kind) {
	s.mu.Lock()
	s.templates[templateID] = slices.Clone(kinds)
	s.mu.Unlock()
}

func (s *Static) ComponentKinds(ctx context.Context, templateID int32) ([]component.Kind, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	kinds, ok := s.templates[templateID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrTemplateNotFound, templateID)
	}
	return slices.Clone(kinds), nil
}
