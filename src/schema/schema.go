package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/afero"
)

// Cardinality of an edge label, as declared by a gCard schema.
type Cardinality string

const (
	OneToOne   Cardinality = "OneToOne"
	OneToMany  Cardinality = "OneToMany"
	ManyToOne  Cardinality = "ManyToOne"
	ManyToMany Cardinality = "ManyToMany"
)

type Vertex struct {
	Label    int  `json:"label"`
	Discrete bool `json:"discrete"`
}

type Edge struct {
	Card  Cardinality `json:"card"`
	From  int         `json:"from"`
	Label int         `json:"label"`
	To    int         `json:"to"`
}

// Schema is a gCard schema: label names mapped to numeric ids plus
// per-label metadata. It is loaded once per run and never mutated.
type Schema struct {
	VertexLabels map[string]int `json:"vertex_labels"`
	EdgeLabels   map[string]int `json:"edge_labels"`
	Vertices     []Vertex       `json:"vertices"`
	Edges        []Edge         `json:"edges"`
}

// Label pairs a label name with its numeric id.
type Label struct {
	Name string
	ID   int
}

func Load(fs afero.Fs, path string) (*Schema, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}

	return &s, nil
}

// Save writes the schema atomically: a temp file is written first and
// then renamed over the target path.
func (s *Schema) Save(fs afero.Fs, path string) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to serialize schema: %w", err)
	}

	tmpPath := path + ".tmp"

	err = afero.WriteFile(fs, tmpPath, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write temp schema file: %w", err)
	}

	err = fs.Rename(tmpPath, path)
	if err != nil {
		return fmt.Errorf("failed to rename temp schema file: %w", err)
	}

	return nil
}

// SortedVertexLabels returns vertex labels ordered by label id. All
// label iteration in this repository goes through this order so that
// runs are deterministic.
func (s *Schema) SortedVertexLabels() []Label {
	return sortedLabels(s.VertexLabels)
}

// SortedEdgeLabels returns edge labels ordered by label id.
func (s *Schema) SortedEdgeLabels() []Label {
	return sortedLabels(s.EdgeLabels)
}

func sortedLabels(m map[string]int) []Label {
	labels := make([]Label, 0, len(m))
	for name, id := range m {
		labels = append(labels, Label{Name: name, ID: id})
	}

	sort.Slice(labels, func(i, j int) bool {
		if labels[i].ID != labels[j].ID {
			return labels[i].ID < labels[j].ID
		}

		return labels[i].Name < labels[j].Name
	})

	return labels
}

// VertexLabelNames inverts the vertex label mapping.
func (s *Schema) VertexLabelNames() map[int]string {
	names := make(map[int]string, len(s.VertexLabels))
	for name, id := range s.VertexLabels {
		names[id] = name
	}

	return names
}

// EdgeLabelNames inverts the edge label mapping.
func (s *Schema) EdgeLabelNames() map[int]string {
	names := make(map[int]string, len(s.EdgeLabels))
	for name, id := range s.EdgeLabels {
		names[id] = name
	}

	return names
}

// EndpointLabels resolves an edge label id to the vertex label ids of
// its declared endpoints.
func (s *Schema) EndpointLabels(edgeLabelID int) (from int, to int, err error) {
	for _, e := range s.Edges {
		if e.Label == edgeLabelID {
			return e.From, e.To, nil
		}
	}

	return 0, 0, fmt.Errorf("edge label %d has no endpoint declaration", edgeLabelID)
}
