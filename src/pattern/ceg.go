package pattern

import (
	"encoding/csv"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// CEGRow serializes the pattern as one CEG CSV row: edge pairs as
// "src-dst;src-dst;...", edge labels as "label->label->...", plus a
// trailing constant 0 column. Edges are sorted by (src, dst) ascending
// and the label chain follows the same order.
func (p *Pattern) CEGRow() []string {
	edges := make([]Edge, len(p.Edges))
	copy(edges, p.Edges)

	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].Src != edges[j].Src {
			return edges[i].Src < edges[j].Src
		}

		return edges[i].Dst < edges[j].Dst
	})

	pairs := make([]string, 0, len(edges))
	labels := make([]string, 0, len(edges))
	for _, e := range edges {
		pairs = append(pairs, fmt.Sprintf("%d-%d", e.Src, e.Dst))
		labels = append(labels, strconv.Itoa(e.LabelID))
	}

	return []string{
		strings.Join(pairs, ";"),
		strings.Join(labels, "->"),
		"0",
	}
}

func (p *Pattern) SaveCEG(fs afero.Fs, path string) error {
	return writeCEGRows(fs, path, [][]string{p.CEGRow()})
}

// MergeCEG converts a directory of pattern JSON files into a single
// CEG pattern file, one row per pattern, in file name order.
func MergeCEG(fs afero.Fs, patternDir, outPath string) error {
	entries, err := afero.ReadDir(fs, patternDir)
	if err != nil {
		return fmt.Errorf("failed to read pattern directory: %w", err)
	}

	var rows [][]string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		p, err := Load(fs, filepath.Join(patternDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", entry.Name(), err)
		}

		rows = append(rows, p.CEGRow())
	}

	return writeCEGRows(fs, outPath, rows)
}

func writeCEGRows(fs afero.Fs, path string, rows [][]string) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CEG rows: %w", err)
	}

	return nil
}
