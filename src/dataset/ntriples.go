package dataset

import (
	"bufio"
	"fmt"

	"github.com/spf13/afero"

	"github.com/cardbench/benchconv/src/schema"
)

// ExportNTriples writes every edge of the dataset as an N-Triples
// statement over synthetic IRIs: vertices become http://ex.org/{id},
// edge labels become the predicate http://ex.org/0{label_id}. Edge
// labels are processed in label id order.
func ExportNTriples(fs afero.Fs, s *schema.Schema, store *Store, outPath string) error {
	f, err := fs.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	for _, el := range s.SortedEdgeLabels() {
		edges, err := store.ReadEdges(el.Name)
		if err != nil {
			return err
		}

		for _, e := range edges {
			fmt.Fprintf(w,
				"<http://ex.org/%d> <http://ex.org/0%d> <http://ex.org/%d> .\n",
				e[0], el.ID, e[1],
			)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	return nil
}
