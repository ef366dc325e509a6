package aids

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cardbench/benchconv/src/dataset"
	"github.com/cardbench/benchconv/src/pattern"
	"github.com/cardbench/benchconv/src/schema"
)

// ConvertQueries converts a directory of G-CARE query files, in file
// name order, to pattern JSON files named <index>.json.
//
// Merge mode converts every file; the per-file conversions are
// independent and run on an errgroup capped at workers. Regular mode
// runs the candidate-narrowing analysis on the first query file and
// stops: the upstream resolution of candidate sets to single labels
// was never finished, so the analysis stays diagnostic-only.
func ConvertQueries(
	fs afero.Fs,
	log *zap.SugaredLogger,
	s *schema.Schema,
	inputDir, outputDir string,
	mode Mode,
	workers int,
) error {
	entries, err := afero.ReadDir(fs, inputDir)
	if err != nil {
		return fmt.Errorf("failed to read query directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		paths = append(paths, filepath.Join(inputDir, entry.Name()))
	}

	if err := fs.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if mode == ModeRegular {
		if len(paths) == 0 {
			return fmt.Errorf("no query files in %s", inputDir)
		}

		return reportCandidates(fs, log, s, paths[0])
	}

	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			q, err := dataset.ParseGCareQuery(fs, path)
			if err != nil {
				return err
			}

			outPath := filepath.Join(outputDir, fmt.Sprintf("%d.json", i))
			log.Infof("write %s", outPath)

			return mergedPattern(q).Save(fs, outPath)
		})
	}

	return g.Wait()
}

// mergedPattern maps a query onto the single-vertex-label schema of
// merge mode: every vertex gets label 0 and edges are renumbered by
// input order.
func mergedPattern(q *dataset.GCareGraph) *pattern.Pattern {
	p := &pattern.Pattern{
		Vertices: []pattern.Vertex{},
		Edges:    []pattern.Edge{},
	}

	for _, v := range q.Vertices {
		p.Vertices = append(p.Vertices, pattern.Vertex{TagID: v.ID, LabelID: 0})
	}

	for i, e := range q.Edges {
		p.Edges = append(p.Edges, pattern.Edge{
			TagID:   i,
			Src:     e.Src,
			Dst:     e.Dst,
			LabelID: e.Label,
		})
	}

	return p
}

// NarrowCandidates computes, for every query edge, the schema edge
// label ids consistent with the edge's raw label and its endpoints'
// vertex label constraints. Schema edge label names carry the raw
// label as the middle underscore-delimited token. A vertex label of -1
// constrains nothing. Candidate sets are returned sorted, one per
// query edge in input order.
func NarrowCandidates(q *dataset.GCareGraph, s *schema.Schema) ([][]int, error) {
	candidates := make([]map[int]struct{}, len(q.Edges))

	for i, e := range q.Edges {
		set := make(map[int]struct{})
		for name, id := range s.EdgeLabels {
			tokens := strings.Split(name, "_")
			if len(tokens) != 3 {
				return nil, fmt.Errorf("edge label %q is not partitioned", name)
			}

			if tokens[1] == strconv.Itoa(e.Label) {
				set[id] = struct{}{}
			}
		}

		candidates[i] = set
	}

	for _, v := range q.Vertices {
		if v.Label == -1 {
			continue
		}

		for i, e := range q.Edges {
			if e.Src == v.ID {
				for id := range candidates[i] {
					from, _, err := s.EndpointLabels(id)
					if err != nil {
						return nil, err
					}

					if from != v.Label {
						delete(candidates[i], id)
					}
				}
			}

			if e.Dst == v.ID {
				for id := range candidates[i] {
					_, to, err := s.EndpointLabels(id)
					if err != nil {
						return nil, err
					}

					if to != v.Label {
						delete(candidates[i], id)
					}
				}
			}
		}
	}

	out := make([][]int, len(candidates))
	for i, set := range candidates {
		ids := make([]int, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		out[i] = ids
	}

	return out, nil
}

func reportCandidates(fs afero.Fs, log *zap.SugaredLogger, s *schema.Schema, path string) error {
	q, err := dataset.ParseGCareQuery(fs, path)
	if err != nil {
		return err
	}

	candidates, err := NarrowCandidates(q, s)
	if err != nil {
		return err
	}

	log.Infof("query %s: %d vertices, %d edges", path, len(q.Vertices), len(q.Edges))
	for i, c := range candidates {
		e := q.Edges[i]
		log.Infof("edge %d->%d raw label %d: %d candidates %v", e.Src, e.Dst, e.Label, len(c), c)
	}

	return nil
}
