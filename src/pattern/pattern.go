package pattern

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

// Vertex is a pattern vertex. TagID is query-local and distinct from
// dataset vertex ids.
type Vertex struct {
	TagID   int `json:"tag_id"`
	LabelID int `json:"label_id"`
}

// Edge connects two pattern vertices by their tag ids.
type Edge struct {
	TagID   int `json:"tag_id"`
	Src     int `json:"src"`
	Dst     int `json:"dst"`
	LabelID int `json:"label_id"`
}

// Pattern is a small query graph whose match count is being estimated.
// Count, when present, is the ground-truth or estimated cardinality.
type Pattern struct {
	Vertices []Vertex `json:"vertices"`
	Edges    []Edge   `json:"edges"`
	Count    *float64 `json:"count,omitempty"`
}

func Load(fs afero.Fs, path string) (*Pattern, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", err)
	}

	var p Pattern
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse pattern file: %w", err)
	}

	return &p, nil
}

func (p *Pattern) Save(fs afero.Fs, path string) error {
	data, err := json.MarshalIndent(p, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to serialize pattern: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write pattern file: %w", err)
	}

	return nil
}

// WithCount returns a copy of the pattern carrying the given count.
func (p *Pattern) WithCount(count float64) *Pattern {
	out := *p
	out.Count = &count

	return &out
}
