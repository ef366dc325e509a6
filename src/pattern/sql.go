package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cardbench/benchconv/src/schema"
)

var ErrEmptyPattern = errors.New("empty pattern is not allowed")

// SQL renders the pattern as a counting join query. Every vertex
// becomes a table reference aliased v{tag_id}, every edge a table
// reference aliased e{tag_id} plus the join predicates tying it to its
// endpoints. A pattern with no vertices and no edges is an error.
func (p *Pattern) SQL(s *schema.Schema) (string, error) {
	vertexNames := s.VertexLabelNames()
	edgeNames := s.EdgeLabelNames()

	var tables []string
	var conditions []string

	for _, v := range p.Vertices {
		table, ok := vertexNames[v.LabelID]
		if !ok {
			return "", fmt.Errorf("unknown vertex label id %d", v.LabelID)
		}

		tables = append(tables, fmt.Sprintf("%s v%d", table, v.TagID))
	}

	for _, e := range p.Edges {
		table, ok := edgeNames[e.LabelID]
		if !ok {
			return "", fmt.Errorf("unknown edge label id %d", e.LabelID)
		}

		tables = append(tables, fmt.Sprintf("%s e%d", table, e.TagID))
		conditions = append(conditions, fmt.Sprintf(
			"e%d.src = v%d.id and e%d.dst = v%d.id", e.TagID, e.Src, e.TagID, e.Dst,
		))
	}

	if len(tables) == 0 {
		return "", ErrEmptyPattern
	}

	fromClause := strings.Join(tables, ", ")
	if len(conditions) == 0 {
		return "select count(*) from " + fromClause, nil
	}

	whereClause := strings.Join(conditions, " and ")

	return fmt.Sprintf("select count(*) from %s where %s", fromClause, whereClause), nil
}
