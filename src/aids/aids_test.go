package aids

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cardbench/benchconv/src/dataset"
	"github.com/cardbench/benchconv/src/pattern"
	"github.com/cardbench/benchconv/src/schema"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"regular", "merge", "extend"} {
		mode, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, Mode(s), mode)
	}

	_, err := ParseMode("bogus")
	require.Error(t, err)
}

func TestConvertDatasetRegular(t *testing.T) {
	fs := afero.NewMemMapFs()
	text := "t # 2\nv 0 3\nv 1 4\ne 0 1 7\n"
	require.NoError(t, afero.WriteFile(fs, "/aids.txt", []byte(text), 0644))

	err := ConvertDataset(fs, testLogger(), "/aids.txt", "/schema.json", "/data", ModeRegular)
	require.NoError(t, err)

	// edge file is named {src label}_{raw label}_{dst label}
	data, err := afero.ReadFile(fs, "/data/3_7_4.csv")
	require.NoError(t, err)
	assert.Equal(t, "src,dst\n0,1\n", string(data))

	data, err = afero.ReadFile(fs, "/data/3.csv")
	require.NoError(t, err)
	assert.Equal(t, "id\n0\n", string(data))

	data, err = afero.ReadFile(fs, "/data/4.csv")
	require.NoError(t, err)
	assert.Equal(t, "id\n1\n", string(data))

	s, err := schema.Load(fs, "/schema.json")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"3": 3, "4": 4}, s.VertexLabels)
	assert.Equal(t, map[string]int{"3_7_4": 0}, s.EdgeLabels)
	require.Len(t, s.Edges, 1)
	assert.Equal(t, schema.Edge{Card: schema.ManyToMany, From: 3, Label: 0, To: 4}, s.Edges[0])
}

func TestConvertDatasetRegularDropsOrphanLabels(t *testing.T) {
	fs := afero.NewMemMapFs()
	// vertex 2 with label 9 touches no edge
	text := "t # 3\nv 0 3\nv 1 4\nv 2 9\ne 0 1 7\n"
	require.NoError(t, afero.WriteFile(fs, "/aids.txt", []byte(text), 0644))

	err := ConvertDataset(fs, testLogger(), "/aids.txt", "/schema.json", "/data", ModeRegular)
	require.NoError(t, err)

	exists, err := afero.Exists(fs, "/data/9.csv")
	require.NoError(t, err)
	assert.False(t, exists)

	s, err := schema.Load(fs, "/schema.json")
	require.NoError(t, err)
	assert.NotContains(t, s.VertexLabels, "9")
}

func TestConvertDatasetRegularUnknownVertex(t *testing.T) {
	fs := afero.NewMemMapFs()
	text := "t # 1\nv 0 3\ne 0 5 7\n"
	require.NoError(t, afero.WriteFile(fs, "/aids.txt", []byte(text), 0644))

	err := ConvertDataset(fs, testLogger(), "/aids.txt", "/schema.json", "/data", ModeRegular)
	require.Error(t, err)
}

func TestConvertDatasetMerge(t *testing.T) {
	fs := afero.NewMemMapFs()
	text := "t # 2\nv 0 3\nv 1 4\ne 0 1 7\ne 1 0 2\n"
	require.NoError(t, afero.WriteFile(fs, "/aids.txt", []byte(text), 0644))

	err := ConvertDataset(fs, testLogger(), "/aids.txt", "/schema.json", "/data", ModeMerge)
	require.NoError(t, err)

	// one vertex file, labels collapsed
	data, err := afero.ReadFile(fs, "/data/vertex.csv")
	require.NoError(t, err)
	assert.Equal(t, "id\n0\n1\n", string(data))

	data, err = afero.ReadFile(fs, "/data/7.csv")
	require.NoError(t, err)
	assert.Equal(t, "src,dst\n0,1\n", string(data))

	data, err = afero.ReadFile(fs, "/data/2.csv")
	require.NoError(t, err)
	assert.Equal(t, "src,dst\n1,0\n", string(data))

	s, err := schema.Load(fs, "/schema.json")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"vertex": 0}, s.VertexLabels)
	assert.Equal(t, map[string]int{"2": 2, "7": 7}, s.EdgeLabels)
	for _, e := range s.Edges {
		assert.Equal(t, 0, e.From)
		assert.Equal(t, 0, e.To)
	}
}

func TestConvertQueriesMerge(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/queries", 0755))

	q := "t # s 1\nv 0 -1 -1\nv 1 -1 -1\ne 0 1 7\n"
	require.NoError(t, afero.WriteFile(fs, "/queries/q_a.txt", []byte(q), 0644))
	require.NoError(t, afero.WriteFile(fs, "/queries/q_b.txt", []byte(q), 0644))

	s := &schema.Schema{
		VertexLabels: map[string]int{"vertex": 0},
		EdgeLabels:   map[string]int{"7": 7},
		Edges:        []schema.Edge{{Card: schema.ManyToMany, From: 0, Label: 7, To: 0}},
	}

	err := ConvertQueries(fs, testLogger(), s, "/queries", "/patterns", ModeMerge, 2)
	require.NoError(t, err)

	for _, name := range []string{"/patterns/0.json", "/patterns/1.json"} {
		p, err := pattern.Load(fs, name)
		require.NoError(t, err)

		assert.Equal(t, []pattern.Vertex{
			{TagID: 0, LabelID: 0},
			{TagID: 1, LabelID: 0},
		}, p.Vertices)
		assert.Equal(t, []pattern.Edge{
			{TagID: 0, Src: 0, Dst: 1, LabelID: 7},
		}, p.Edges)
	}
}

func TestConvertQueriesRegularEmptyDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/queries", 0755))

	s := &schema.Schema{}
	err := ConvertQueries(fs, testLogger(), s, "/queries", "/patterns", ModeRegular, 1)
	require.Error(t, err)
}

func partitionedSchema() *schema.Schema {
	// edge labels: 3_7_4 -> 0, 3_7_5 -> 1, 4_2_3 -> 2
	return &schema.Schema{
		VertexLabels: map[string]int{"3": 3, "4": 4, "5": 5},
		EdgeLabels:   map[string]int{"3_7_4": 0, "3_7_5": 1, "4_2_3": 2},
		Edges: []schema.Edge{
			{Card: schema.ManyToMany, From: 3, Label: 0, To: 4},
			{Card: schema.ManyToMany, From: 3, Label: 1, To: 5},
			{Card: schema.ManyToMany, From: 4, Label: 2, To: 3},
		},
	}
}

func TestNarrowCandidatesByRawLabel(t *testing.T) {
	q := &dataset.GCareGraph{
		Vertices: []dataset.GCareVertex{{ID: 0, Label: -1}, {ID: 1, Label: -1}},
		Edges:    []dataset.GCareEdge{{Src: 0, Dst: 1, Label: 7}},
	}

	candidates, err := NarrowCandidates(q, partitionedSchema())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, []int{0, 1}, candidates[0])
}

func TestNarrowCandidatesByEndpointLabel(t *testing.T) {
	q := &dataset.GCareGraph{
		Vertices: []dataset.GCareVertex{{ID: 0, Label: -1}, {ID: 1, Label: 5}},
		Edges:    []dataset.GCareEdge{{Src: 0, Dst: 1, Label: 7}},
	}

	candidates, err := NarrowCandidates(q, partitionedSchema())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, []int{1}, candidates[0])
}

func TestNarrowCandidatesEmptySet(t *testing.T) {
	q := &dataset.GCareGraph{
		Vertices: []dataset.GCareVertex{{ID: 0, Label: 4}, {ID: 1, Label: -1}},
		Edges:    []dataset.GCareEdge{{Src: 0, Dst: 1, Label: 7}},
	}

	candidates, err := NarrowCandidates(q, partitionedSchema())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Empty(t, candidates[0])
}

func TestNarrowCandidatesUnpartitionedSchema(t *testing.T) {
	q := &dataset.GCareGraph{
		Edges: []dataset.GCareEdge{{Src: 0, Dst: 1, Label: 7}},
	}
	s := &schema.Schema{EdgeLabels: map[string]int{"knows": 0}}

	_, err := NarrowCandidates(q, s)
	require.Error(t, err)
}
