// Package kuzu builds the DDL, copy, and match statements that load a
// CSV dataset into Kuzu and count pattern matches against it. The
// database driver itself is an external collaborator hidden behind the
// Conn interface.
package kuzu

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cardbench/benchconv/src/pattern"
	"github.com/cardbench/benchconv/src/schema"
)

// Rows iterates the result of one executed statement. A nil Rows is
// valid and means the statement produced no rows.
type Rows interface {
	HasNext() bool
	Next() ([]string, error)
}

// Conn executes DDL/DML strings against a database.
type Conn interface {
	Execute(stmt string) (Rows, error)
}

var cardinalityNames = map[schema.Cardinality]string{
	schema.ManyToMany: "MANY_MANY",
	schema.ManyToOne:  "MANY_ONE",
	schema.OneToMany:  "ONE_MANY",
	schema.OneToOne:   "ONE_ONE",
}

// BuildSchemaDDL produces the node table statements (vertex label id
// order) followed by the rel table statements (schema edge declaration
// order).
func BuildSchemaDDL(s *schema.Schema) ([]string, error) {
	var stmts []string

	for _, vl := range s.SortedVertexLabels() {
		stmts = append(stmts, fmt.Sprintf(
			"create node table %s (id uint64, primary key (id))", vl.Name,
		))
	}

	vertexNames := s.VertexLabelNames()
	edgeNames := s.EdgeLabelNames()

	for _, e := range s.Edges {
		card, ok := cardinalityNames[e.Card]
		if !ok {
			return nil, fmt.Errorf("invalid cardinality %q", e.Card)
		}

		srcLabel, ok := vertexNames[e.From]
		if !ok {
			return nil, fmt.Errorf("unknown source vertex label id %d", e.From)
		}

		dstLabel, ok := vertexNames[e.To]
		if !ok {
			return nil, fmt.Errorf("unknown destination vertex label id %d", e.To)
		}

		edgeLabel, ok := edgeNames[e.Label]
		if !ok {
			return nil, fmt.Errorf("unknown edge label id %d", e.Label)
		}

		stmts = append(stmts, fmt.Sprintf(
			"create rel table %s (from %s to %s, %s)", edgeLabel, srcLabel, dstLabel, card,
		))
	}

	return stmts, nil
}

// BuildCopyStatements produces one copy statement per vertex label and
// per edge label, loading the dataset's CSV files.
func BuildCopyStatements(s *schema.Schema, datasetDir string) []string {
	var stmts []string

	for _, vl := range s.SortedVertexLabels() {
		path := filepath.Join(datasetDir, vl.Name+".csv")
		stmts = append(stmts, fmt.Sprintf("copy %s from %q (header=true)", vl.Name, path))
	}

	for _, el := range s.SortedEdgeLabels() {
		path := filepath.Join(datasetDir, el.Name+".csv")
		stmts = append(stmts, fmt.Sprintf("copy %s from %q (header=true)", el.Name, path))
	}

	return stmts
}

// CreateDatabase executes the schema DDL and the dataset copy
// statements on the given connection.
func CreateDatabase(conn Conn, s *schema.Schema, datasetDir string) error {
	stmts, err := BuildSchemaDDL(s)
	if err != nil {
		return err
	}

	stmts = append(stmts, BuildCopyStatements(s, datasetDir)...)

	for _, stmt := range stmts {
		if _, err := conn.Execute(stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}

	return nil
}

// BuildMatchQuery renders the pattern as a single match-and-count
// statement: one node clause per vertex, one relationship clause per
// edge.
func BuildMatchQuery(p *pattern.Pattern, s *schema.Schema) (string, error) {
	vertexNames := s.VertexLabelNames()
	edgeNames := s.EdgeLabelNames()

	var clauses []string

	for _, v := range p.Vertices {
		label, ok := vertexNames[v.LabelID]
		if !ok {
			return "", fmt.Errorf("unknown vertex label id %d", v.LabelID)
		}

		clauses = append(clauses, fmt.Sprintf("(v%d: %s)", v.TagID, label))
	}

	for _, e := range p.Edges {
		label, ok := edgeNames[e.LabelID]
		if !ok {
			return "", fmt.Errorf("unknown edge label id %d", e.LabelID)
		}

		clauses = append(clauses, fmt.Sprintf(
			"(v%d)-[e%d: %s]->(v%d)", e.Src, e.TagID, label, e.Dst,
		))
	}

	if len(clauses) == 0 {
		return "", pattern.ErrEmptyPattern
	}

	return fmt.Sprintf("match %s return count(*)", strings.Join(clauses, ", ")), nil
}

// Count executes the match query and returns every result row, each
// joined the way the upstream tooling prints them.
func Count(conn Conn, p *pattern.Pattern, s *schema.Schema) ([][]string, error) {
	query, err := BuildMatchQuery(p, s)
	if err != nil {
		return nil, err
	}

	rows, err := conn.Execute(query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %q: %w", query, err)
	}

	if rows == nil {
		return nil, nil
	}

	var out [][]string
	for rows.HasNext() {
		row, err := rows.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch result row: %w", err)
		}

		out = append(out, row)
	}

	return out, nil
}
