// Package dataset reads and writes per-label CSV dataset files: one
// file per vertex label with an "id" column, one file per edge label
// with "src,dst" columns.
package dataset

import (
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Store gives label-addressed access to the CSV files of one dataset
// directory.
type Store struct {
	fs  afero.Fs
	dir string
}

func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

func (s *Store) Path(label string) string {
	return filepath.Join(s.dir, label+".csv")
}

// ReadVertexIDs reads the id column of a vertex label file in row order.
func (s *Store) ReadVertexIDs(label string) ([]int, error) {
	rows, err := s.readRows(label, "id")
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("%s.csv: invalid vertex id %q: %w", label, row[0], err)
		}

		ids = append(ids, id)
	}

	return ids, nil
}

// ReadEdges reads the src,dst columns of an edge label file in row order.
func (s *Store) ReadEdges(label string) ([][2]int, error) {
	rows, err := s.readRows(label, "src", "dst")
	if err != nil {
		return nil, err
	}

	edges := make([][2]int, 0, len(rows))
	for _, row := range rows {
		src, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("%s.csv: invalid src %q: %w", label, row[0], err)
		}

		dst, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("%s.csv: invalid dst %q: %w", label, row[1], err)
		}

		edges = append(edges, [2]int{src, dst})
	}

	return edges, nil
}

func (s *Store) readRows(label string, header ...string) ([][]string, error) {
	f, err := s.fs.Open(s.Path(label))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s.csv: %w", label, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s.csv: %w", label, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s.csv has no header row", label)
	}

	for i, want := range header {
		if records[0][i] != want {
			return nil, fmt.Errorf(
				"%s.csv: unexpected header %v, want %v", label, records[0], header,
			)
		}
	}

	return records[1:], nil
}

// WriteVertexIDs writes a vertex label file with an "id" header.
func (s *Store) WriteVertexIDs(label string, ids []int) error {
	rows := make([][]string, 0, len(ids)+1)
	rows = append(rows, []string{"id"})
	for _, id := range ids {
		rows = append(rows, []string{strconv.Itoa(id)})
	}

	return s.writeRows(s.Path(label), rows)
}

// WriteEdges writes an edge label file with a "src,dst" header.
func (s *Store) WriteEdges(label string, edges [][2]int) error {
	rows := make([][]string, 0, len(edges)+1)
	rows = append(rows, []string{"src", "dst"})
	for _, e := range edges {
		rows = append(rows, []string{strconv.Itoa(e[0]), strconv.Itoa(e[1])})
	}

	return s.writeRows(s.Path(label), rows)
}

func (s *Store) writeRows(path string, rows [][]string) error {
	f, err := s.fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// stagedFile is a pending atomic replacement: content is written to a
// uniquely named temp file first, Commit renames it over the target.
type stagedFile struct {
	tmpPath   string
	finalPath string
}

func (s *Store) stageRows(label string, rows [][]string) (stagedFile, error) {
	final := s.Path(label)
	tmp := fmt.Sprintf("%s.%s.tmp", final, uuid.NewString())

	if err := s.writeRows(tmp, rows); err != nil {
		return stagedFile{}, err
	}

	return stagedFile{tmpPath: tmp, finalPath: final}, nil
}

func (s *Store) commit(staged stagedFile) error {
	if err := s.fs.Rename(staged.tmpPath, staged.finalPath); err != nil {
		return fmt.Errorf("failed to rename %s: %w", staged.tmpPath, err)
	}

	return nil
}
