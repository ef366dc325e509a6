package schema

import (
	"fmt"
	"strings"
)

// DuckDBDDL generates the DDL that loads a CSV dataset into DuckDB:
// one "create table ... as from read_csv(...)" statement per vertex
// label and per edge label, in label id order. Every statement is
// terminated by a semicolon.
func (s *Schema) DuckDBDDL() string {
	var stmts []string

	for _, vl := range s.SortedVertexLabels() {
		stmts = append(stmts, fmt.Sprintf(
			"create table %s as from read_csv('%s.csv')", vl.Name, vl.Name,
		))
	}

	for _, el := range s.SortedEdgeLabels() {
		stmts = append(stmts, fmt.Sprintf(
			"create table %s as from read_csv('%s.csv')", el.Name, el.Name,
		))
	}

	if len(stmts) == 0 {
		return ""
	}

	return strings.Join(stmts, ";\n") + ";\n"
}
