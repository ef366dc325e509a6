package pattern

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// GNCEQuery is the JSON record the GNCE estimator trains on: the list
// of predicate URIs, the ground-truth count, the SPARQL string, and
// the raw triples.
type GNCEQuery struct {
	X       []string   `json:"x"`
	Y       int        `json:"y"`
	Query   string     `json:"query"`
	Triples [][]string `json:"triples"`
}

// GNCE renders the pattern as a GNCE query. Every edge becomes a
// triple over synthetic predicate URIs of the form http://ex.org/0{label_id}.
func (p *Pattern) GNCE() GNCEQuery {
	x := []string{}
	where := make([]string, 0, len(p.Edges))
	triples := [][]string{}

	for _, e := range p.Edges {
		predicate := fmt.Sprintf("http://ex.org/0%d", e.LabelID)
		x = append(x, predicate)
		where = append(where, fmt.Sprintf("?o%d <%s> ?o%d .", e.Src, predicate, e.Dst))
		triples = append(triples, []string{
			fmt.Sprintf("?o%d", e.Src),
			fmt.Sprintf("<%s>", predicate),
			fmt.Sprintf("?o%d", e.Dst),
		})
	}

	out := GNCEQuery{
		X:       x,
		Query:   fmt.Sprintf("SELECT * FROM WHERE { %s }", strings.Join(where, " ")),
		Triples: triples,
	}
	if p.Count != nil {
		out.Y = int(*p.Count)
	}

	return out
}

// ConvertGNCE converts a pattern file, or every ".json" pattern in a
// directory, into a single GNCE query list.
func ConvertGNCE(fs afero.Fs, inputPath, outPath string) error {
	paths, err := collectPatternPaths(fs, inputPath)
	if err != nil {
		return err
	}

	outputs := make([]GNCEQuery, 0, len(paths))
	for _, path := range paths {
		p, err := Load(fs, path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}

		outputs = append(outputs, p.GNCE())
	}

	data, err := json.MarshalIndent(outputs, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to serialize GNCE queries: %w", err)
	}

	if err := afero.WriteFile(fs, outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

func collectPatternPaths(fs afero.Fs, inputPath string) ([]string, error) {
	info, err := fs.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}

	if !info.IsDir() {
		return []string{inputPath}, nil
	}

	entries, err := afero.ReadDir(fs, inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		paths = append(paths, filepath.Join(inputPath, entry.Name()))
	}

	return paths, nil
}
