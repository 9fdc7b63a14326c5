package domain

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stage is one entry of the status catalog.
type Stage struct {
	ID          string   `yaml:"id" json:"id"`
	Label       string   `yaml:"label" json:"label"`
	Terminal    bool     `yaml:"isTerminal" json:"isTerminal"`
	AllowedNext []string `yaml:"allowedNext,omitempty" json:"allowedNext,omitempty"`
}

type catalogFile struct {
	Stages []Stage `yaml:"stages"`
}

//go:embed catalogs/default.yaml
var defaultCatalogYAML []byte

// StatusCatalog is the ordered, immutable set of pipeline stages.
// The first stage is the initial status of every new lead.
type StatusCatalog struct {
	stages []Stage
	index  map[string]int
}

// ErrInvalidCatalog is returned when a catalog fails validation.
var ErrInvalidCatalog = errors.New("invalid status catalog")

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (*StatusCatalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return NewCatalog(file.Stages)
}

// LoadCatalog reads a catalog from path, or returns the embedded default
// when path is empty.
func LoadCatalog(path string) (*StatusCatalog, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read status catalog: %w", err)
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the embedded New -> Contacted -> Qualified ->
// Proposal -> Won | Lost catalog.
func DefaultCatalog() *StatusCatalog {
	catalog, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(err)
	}
	return catalog
}

// NewCatalog validates stages and builds a catalog from them.
func NewCatalog(stages []Stage) (*StatusCatalog, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("%w: no stages", ErrInvalidCatalog)
	}

	index := make(map[string]int, len(stages))
	copied := make([]Stage, len(stages))
	hasTerminal := false
	for i, stage := range stages {
		id := strings.TrimSpace(stage.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: stage %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("%w: duplicate stage %q", ErrInvalidCatalog, id)
		}
		stage.ID = id
		if stage.Label == "" {
			stage.Label = id
		}
		stage.AllowedNext = append([]string(nil), stage.AllowedNext...)
		index[id] = i
		copied[i] = stage
		hasTerminal = hasTerminal || stage.Terminal
	}

	if copied[0].Terminal {
		return nil, fmt.Errorf("%w: initial stage %q is terminal", ErrInvalidCatalog, copied[0].ID)
	}
	if !hasTerminal {
		return nil, fmt.Errorf("%w: no terminal stage", ErrInvalidCatalog)
	}
	for _, stage := range copied {
		if stage.Terminal && len(stage.AllowedNext) > 0 {
			return nil, fmt.Errorf("%w: terminal stage %q lists allowedNext", ErrInvalidCatalog, stage.ID)
		}
		for _, next := range stage.AllowedNext {
			if _, ok := index[next]; !ok {
				return nil, fmt.Errorf("%w: stage %q allows unknown stage %q", ErrInvalidCatalog, stage.ID, next)
			}
		}
	}

	return &StatusCatalog{stages: copied, index: index}, nil
}

// Initial returns the status assigned to newly created leads.
func (c *StatusCatalog) Initial() string {
	return c.stages[0].ID
}

// Stages returns a copy of the stages in catalog order.
func (c *StatusCatalog) Stages() []Stage {
	out := make([]Stage, len(c.stages))
	for i, stage := range c.stages {
		stage.AllowedNext = append([]string(nil), stage.AllowedNext...)
		out[i] = stage
	}
	return out
}

// Lookup returns the stage with the given id.
func (c *StatusCatalog) Lookup(id string) (Stage, bool) {
	i, ok := c.index[id]
	if !ok {
		return Stage{}, false
	}
	return c.stages[i], true
}

// IsKnown reports whether id is a catalog stage.
func (c *StatusCatalog) IsKnown(id string) bool {
	_, ok := c.index[id]
	return ok
}

// IsTerminal reports whether id is a terminal stage. Unknown ids are not terminal.
func (c *StatusCatalog) IsTerminal(id string) bool {
	stage, ok := c.Lookup(id)
	return ok && stage.Terminal
}
