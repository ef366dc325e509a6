package schema

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return &Schema{
		VertexLabels: map[string]int{"person": 0, "movie": 1},
		EdgeLabels:   map[string]int{"acted_in": 0, "directed": 1},
		Vertices: []Vertex{
			{Label: 0, Discrete: false},
			{Label: 1, Discrete: false},
		},
		Edges: []Edge{
			{Card: ManyToMany, From: 0, Label: 0, To: 1},
			{Card: OneToMany, From: 0, Label: 1, To: 1},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := testSchema()

	require.NoError(t, s.Save(fs, "/schema.json"))

	// the temp file must not survive the rename
	exists, err := afero.Exists(fs, "/schema.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists)

	loaded, err := Load(fs, "/schema.json")
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Load(fs, "/nope.json")
	require.Error(t, err)
}

func TestSortedLabels(t *testing.T) {
	s := testSchema()

	assert.Equal(t, []Label{
		{Name: "person", ID: 0},
		{Name: "movie", ID: 1},
	}, s.SortedVertexLabels())

	assert.Equal(t, []Label{
		{Name: "acted_in", ID: 0},
		{Name: "directed", ID: 1},
	}, s.SortedEdgeLabels())
}

func TestEndpointLabels(t *testing.T) {
	s := testSchema()

	from, to, err := s.EndpointLabels(1)
	require.NoError(t, err)
	assert.Equal(t, 0, from)
	assert.Equal(t, 1, to)

	_, _, err = s.EndpointLabels(42)
	require.Error(t, err)
}

func TestDuckDBDDL(t *testing.T) {
	s := testSchema()

	want := "create table person as from read_csv('person.csv');\n" +
		"create table movie as from read_csv('movie.csv');\n" +
		"create table acted_in as from read_csv('acted_in.csv');\n" +
		"create table directed as from read_csv('directed.csv');\n"
	assert.Equal(t, want, s.DuckDBDDL())
}

func TestDuckDBDDLEmptySchema(t *testing.T) {
	s := &Schema{}

	assert.Equal(t, "", s.DuckDBDDL())
}

func TestGLogS(t *testing.T) {
	s := testSchema()

	glogs, err := s.GLogS()
	require.NoError(t, err)

	assert.False(t, glogs.IsColumnID)
	assert.True(t, glogs.IsTableID)

	require.Len(t, glogs.Entities, 2)
	assert.Equal(t, GLogSLabel{ID: 0, Name: "person"}, glogs.Entities[0].Label)
	assert.Equal(t, GLogSLabel{ID: 1, Name: "movie"}, glogs.Entities[1].Label)

	require.Len(t, glogs.Relations, 2)
	assert.Equal(t, GLogSLabel{ID: 0, Name: "acted_in"}, glogs.Relations[0].Label)
	require.Len(t, glogs.Relations[0].EntityPairs, 1)
	assert.Equal(t, GLogSLabel{ID: 0, Name: "person"}, glogs.Relations[0].EntityPairs[0].Src)
	assert.Equal(t, GLogSLabel{ID: 1, Name: "movie"}, glogs.Relations[0].EntityPairs[0].Dst)
}

func TestGLogSUnknownLabel(t *testing.T) {
	s := testSchema()
	s.Edges = append(s.Edges, Edge{Card: ManyToMany, From: 9, Label: 2, To: 0})

	_, err := s.GLogS()
	require.Error(t, err)
}
