package dataset

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/spf13/afero"

	"github.com/cardbench/benchconv/src/schema"
)

// MergeEdges concatenates every edge label file into a single CEG
// style edge list of src,label_id,dst rows, edge labels in label id
// order. The output has no header.
func MergeEdges(fs afero.Fs, s *schema.Schema, store *Store, outPath string) error {
	f, err := fs.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	for _, el := range s.SortedEdgeLabels() {
		edges, err := store.ReadEdges(el.Name)
		if err != nil {
			return err
		}

		for _, e := range edges {
			err := w.Write([]string{
				strconv.Itoa(e[0]),
				strconv.Itoa(el.ID),
				strconv.Itoa(e[1]),
			})
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	return nil
}
