// Package aids converts the AIDS benchmark dataset and queries from
// G-CARE format to the CSV + gCard schema layout the other converters
// consume.
package aids

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/cardbench/benchconv/src/dataset"
	"github.com/cardbench/benchconv/src/schema"
)

// Mode selects how vertex labels are carried into the CSV dataset.
type Mode string

const (
	// ModeRegular partitions edges by (src label, raw label, dst label)
	// and keeps one vertex file per label.
	ModeRegular Mode = "regular"
	// ModeMerge collapses all vertices into a single label.
	ModeMerge Mode = "merge"
	// ModeExtend is accepted for compatibility and behaves like merge.
	ModeExtend Mode = "extend"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRegular, ModeMerge, ModeExtend:
		return Mode(s), nil
	}

	return "", fmt.Errorf("invalid conversion type %q", s)
}

// ConvertDataset parses a G-CARE dataset file and writes the CSV
// dataset directory plus the derived gCard schema.
func ConvertDataset(
	fs afero.Fs,
	log *zap.SugaredLogger,
	inputPath, schemaPath, datasetDir string,
	mode Mode,
) error {
	g, err := dataset.ParseGCareDataset(fs, inputPath)
	if err != nil {
		return err
	}

	if err := fs.MkdirAll(datasetDir, 0755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	store := dataset.NewStore(fs, datasetDir)

	if mode == ModeRegular {
		return convertRegular(fs, log, g, store, schemaPath)
	}

	return convertMerged(fs, log, g, store, schemaPath)
}

// partitionKey identifies one partitioned edge file:
// (src vertex label, raw edge label, dst vertex label).
type partitionKey struct {
	SrcLabel int
	RawLabel int
	DstLabel int
}

func (k partitionKey) Name() string {
	return fmt.Sprintf("%d_%d_%d", k.SrcLabel, k.RawLabel, k.DstLabel)
}

func (k partitionKey) less(o partitionKey) bool {
	if k.SrcLabel != o.SrcLabel {
		return k.SrcLabel < o.SrcLabel
	}
	if k.RawLabel != o.RawLabel {
		return k.RawLabel < o.RawLabel
	}

	return k.DstLabel < o.DstLabel
}

func convertRegular(
	fs afero.Fs,
	log *zap.SugaredLogger,
	g *dataset.GCareGraph,
	store *dataset.Store,
	schemaPath string,
) error {
	vertexLabel := make(map[int]int, len(g.Vertices))
	labelVertices := make(map[int][]int)
	var labelOrder []int

	for _, v := range g.Vertices {
		vertexLabel[v.ID] = v.Label
		if _, ok := labelVertices[v.Label]; !ok {
			labelOrder = append(labelOrder, v.Label)
		}

		labelVertices[v.Label] = append(labelVertices[v.Label], v.ID)
	}

	partitions := make(map[partitionKey][][2]int)
	var partitionOrder []partitionKey

	for _, e := range g.Edges {
		srcLabel, ok := vertexLabel[e.Src]
		if !ok {
			return fmt.Errorf("edge references unknown vertex id %d", e.Src)
		}

		dstLabel, ok := vertexLabel[e.Dst]
		if !ok {
			return fmt.Errorf("edge references unknown vertex id %d", e.Dst)
		}

		key := partitionKey{SrcLabel: srcLabel, RawLabel: e.Label, DstLabel: dstLabel}
		if _, ok := partitions[key]; !ok {
			partitionOrder = append(partitionOrder, key)
		}

		partitions[key] = append(partitions[key], [2]int{e.Src, e.Dst})
	}

	for _, key := range partitionOrder {
		log.Infof("write %s", store.Path(key.Name()))
		if err := store.WriteEdges(key.Name(), partitions[key]); err != nil {
			return err
		}
	}

	// vertex labels that touch no edge partition are dropped
	for _, vl := range labelOrder {
		orphan := true
		for key := range partitions {
			if key.SrcLabel == vl || key.DstLabel == vl {
				orphan = false
				break
			}
		}

		if orphan {
			delete(labelVertices, vl)
		}
	}

	for _, vl := range labelOrder {
		ids, ok := labelVertices[vl]
		if !ok {
			continue
		}

		name := strconv.Itoa(vl)
		log.Infof("write %s", store.Path(name))
		if err := store.WriteVertexIDs(name, ids); err != nil {
			return err
		}
	}

	s := buildRegularSchema(labelVertices, partitions)

	log.Infof("write %s", schemaPath)

	return s.Save(fs, schemaPath)
}

func buildRegularSchema(
	labelVertices map[int][]int,
	partitions map[partitionKey][][2]int,
) *schema.Schema {
	s := &schema.Schema{
		VertexLabels: make(map[string]int, len(labelVertices)),
		EdgeLabels:   make(map[string]int, len(partitions)),
	}

	vertexLabels := make([]int, 0, len(labelVertices))
	for vl := range labelVertices {
		vertexLabels = append(vertexLabels, vl)
	}
	sort.Ints(vertexLabels)

	for _, vl := range vertexLabels {
		s.VertexLabels[strconv.Itoa(vl)] = vl
		s.Vertices = append(s.Vertices, schema.Vertex{Label: vl, Discrete: false})
	}

	keys := make([]partitionKey, 0, len(partitions))
	for key := range partitions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	for i, key := range keys {
		s.EdgeLabels[key.Name()] = i
		s.Edges = append(s.Edges, schema.Edge{
			Card:  schema.ManyToMany,
			From:  key.SrcLabel,
			Label: i,
			To:    key.DstLabel,
		})
	}

	return s
}

func convertMerged(
	fs afero.Fs,
	log *zap.SugaredLogger,
	g *dataset.GCareGraph,
	store *dataset.Store,
	schemaPath string,
) error {
	edgesPerLabel := make(map[int][][2]int)
	var labelOrder []int

	for _, e := range g.Edges {
		if _, ok := edgesPerLabel[e.Label]; !ok {
			labelOrder = append(labelOrder, e.Label)
		}

		edgesPerLabel[e.Label] = append(edgesPerLabel[e.Label], [2]int{e.Src, e.Dst})
	}

	for _, el := range labelOrder {
		name := strconv.Itoa(el)
		log.Infof("write %s", store.Path(name))
		if err := store.WriteEdges(name, edgesPerLabel[el]); err != nil {
			return err
		}
	}

	ids := make([]int, 0, len(g.Vertices))
	for _, v := range g.Vertices {
		ids = append(ids, v.ID)
	}

	log.Infof("write %s", store.Path("vertex"))
	if err := store.WriteVertexIDs("vertex", ids); err != nil {
		return err
	}

	edgeLabels := make([]int, 0, len(edgesPerLabel))
	for el := range edgesPerLabel {
		edgeLabels = append(edgeLabels, el)
	}
	sort.Ints(edgeLabels)

	s := &schema.Schema{
		VertexLabels: map[string]int{"vertex": 0},
		EdgeLabels:   make(map[string]int, len(edgeLabels)),
		Vertices:     []schema.Vertex{{Label: 0, Discrete: false}},
	}

	for _, el := range edgeLabels {
		s.EdgeLabels[strconv.Itoa(el)] = el
		s.Edges = append(s.Edges, schema.Edge{
			Card:  schema.ManyToMany,
			From:  0,
			Label: el,
			To:    0,
		})
	}

	log.Infof("write %s", schemaPath)

	return s.Save(fs, schemaPath)
}

