package ceg

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardbench/benchconv/src/pattern"
)

// columns: 2 leading, nine estimators (all-min, all-max, all-avg,
// min-min, min-max, min-avg, max-min, max-max, max-avg), 1 trailing
const resultFile = "q1,0,1,2,3,4,5,6,7,8,9,tail\n0.25\n"

func writeResult(t *testing.T, fs afero.Fs) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, "/result.csv", []byte(resultFile), 0644))
}

func TestParseResult(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeResult(t, fs)

	res, err := ParseResult(fs, "/result.csv")
	require.NoError(t, err)

	assert.Equal(t, [9]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, res.Estimates)
	assert.Equal(t, 0.25, res.Elapsed)
}

func TestSelectPolicy(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeResult(t, fs)

	res, err := ParseResult(fs, "/result.csv")
	require.NoError(t, err)

	// max-max for acyclic, max-min for cyclic
	assert.Equal(t, 8.0, res.Select(Acyclic))
	assert.Equal(t, res.Estimates[MaxMax], res.Select(Acyclic))
	assert.Equal(t, 7.0, res.Select(Cyclic))
	assert.Equal(t, res.Estimates[MaxMin], res.Select(Cyclic))
}

func TestParseResultBadColumnCount(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/result.csv", []byte("1,2,3\n"), 0644))

	_, err := ParseResult(fs, "/result.csv")
	require.Error(t, err)
}

func TestParseResultMissingElapsedLine(t *testing.T) {
	fs := afero.NewMemMapFs()
	row := "q1,0,1,2,3,4,5,6,7,8,9,tail\n"
	require.NoError(t, afero.WriteFile(fs, "/result.csv", []byte(row), 0644))

	_, err := ParseResult(fs, "/result.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elapsed time")
}

func TestParseResultEmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/result.csv", nil, 0644))

	_, err := ParseResult(fs, "/result.csv")
	require.Error(t, err)
}

func TestParseShape(t *testing.T) {
	shape, err := ParseShape("acyclic")
	require.NoError(t, err)
	assert.Equal(t, Acyclic, shape)

	shape, err = ParseShape("cyclic")
	require.NoError(t, err)
	assert.Equal(t, Cyclic, shape)

	_, err = ParseShape("triangle")
	require.Error(t, err)
}

func TestAnnotate(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeResult(t, fs)

	p := &pattern.Pattern{
		Vertices: []pattern.Vertex{{TagID: 0, LabelID: 1}},
		Edges:    []pattern.Edge{},
	}
	require.NoError(t, p.Save(fs, "/pattern.json"))

	require.NoError(t, Annotate(fs, "/result.csv", "/pattern.json", Cyclic, "/out.json"))

	out, err := pattern.Load(fs, "/out.json")
	require.NoError(t, err)
	require.NotNil(t, out.Count)
	assert.Equal(t, 7.0, *out.Count)

	// input pattern untouched
	in, err := pattern.Load(fs, "/pattern.json")
	require.NoError(t, err)
	assert.Nil(t, in.Count)
}

func TestReport(t *testing.T) {
	res := &Result{
		Estimates: [9]float64{1, 2, 3, 4, 5, 6, 7, 8, 9},
		Elapsed:   0.25,
	}

	assert.Equal(t, "8,0.25", Report(res, Acyclic))
	assert.Equal(t, "7,0.25", Report(res, Cyclic))
}
