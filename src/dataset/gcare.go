package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/cardbench/benchconv/src/schema"
)

// G-CARE text format: whitespace-delimited rows, a "t # ..." header,
// then "v <id> <label>" vertex rows and "e <src> <dst> <label>" edge
// rows. Query files carry an extra trailing column on vertex rows.

var (
	ErrInvalidVertexRow = errors.New("invalid vertex row")
	ErrInvalidEdgeRow   = errors.New("invalid edge row")
	ErrInvalidObject    = errors.New("invalid object type")
	ErrDuplicateVertex  = errors.New("duplicate vertex id")
)

type GCareVertex struct {
	ID    int
	Label int
}

type GCareEdge struct {
	Src   int
	Dst   int
	Label int
}

type GCareGraph struct {
	Vertices []GCareVertex
	Edges    []GCareEdge
}

// ParseGCareDataset parses a G-CARE dataset file (3-column vertex
// rows). Duplicate vertex ids are an error.
func ParseGCareDataset(fs afero.Fs, path string) (*GCareGraph, error) {
	g, err := parseGCare(fs, path, 3)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(g.Vertices))
	for _, v := range g.Vertices {
		if _, ok := seen[v.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateVertex, v.ID)
		}

		seen[v.ID] = struct{}{}
	}

	return g, nil
}

// ParseGCareQuery parses a G-CARE query file (4-column vertex rows,
// label -1 meaning unconstrained).
func ParseGCareQuery(fs afero.Fs, path string) (*GCareGraph, error) {
	return parseGCare(fs, path, 4)
}

func parseGCare(fs afero.Fs, path string, vertexColumns int) (*GCareGraph, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var g GCareGraph

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if first {
			// header row: t # <n>
			first = false
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) != vertexColumns {
				return nil, fmt.Errorf("%w: %q", ErrInvalidVertexRow, line)
			}

			id, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidVertexRow, line)
			}

			label, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidVertexRow, line)
			}

			g.Vertices = append(g.Vertices, GCareVertex{ID: id, Label: label})
		case "e":
			if len(fields) != 4 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidEdgeRow, line)
			}

			src, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidEdgeRow, line)
			}

			dst, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidEdgeRow, line)
			}

			label, err := strconv.Atoi(fields[3])
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidEdgeRow, line)
			}

			g.Edges = append(g.Edges, GCareEdge{Src: src, Dst: dst, Label: label})
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidObject, fields[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return &g, nil
}

// ExportGCare writes the whole CSV dataset as one G-CARE text file:
// header, every vertex of every vertex label, then every edge of every
// edge label, both in label id order. Returns the vertex and edge
// counts written.
func ExportGCare(fs afero.Fs, s *schema.Schema, store *Store, outPath string) (vnum, enum int, err error) {
	f, err := fs.Create(outPath)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "t # 123")

	for _, vl := range s.SortedVertexLabels() {
		ids, err := store.ReadVertexIDs(vl.Name)
		if err != nil {
			return 0, 0, err
		}

		for _, id := range ids {
			fmt.Fprintf(w, "v %d %d\n", id, vl.ID)
			vnum++
		}
	}

	for _, el := range s.SortedEdgeLabels() {
		edges, err := store.ReadEdges(el.Name)
		if err != nil {
			return 0, 0, err
		}

		for _, e := range edges {
			fmt.Fprintf(w, "e %d %d %d\n", e[0], e[1], el.ID)
			enum++
		}
	}

	if err := w.Flush(); err != nil {
		return 0, 0, fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	return vnum, enum, nil
}
