package imdb

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixtures = map[string]string{
	// index 7 is episode_of_id; only the second title is an episode
	"title":         "1,a,b,c,d,e,f,\n2,a,b,c,d,e,f,1\n",
	"aka_title":     "10,1\n11,0\n",
	"company_name":  "5\n",
	"movie_companies": "1,2,5\n",
	"movie_info":     "1,2,105,color\n2,2,105,color\n3,1,105,bw\n",
	"movie_info_idx": "1,2,101,8.1\n",
	"keyword":       "7\n",
	"movie_keyword": "1,2,7\n",
	"movie_link":    "1,1,2\n",
	"name":          "3\n",
	"aka_name":      "9,3\n",
	"person_info":   "1,3,22,born somewhere\n",
	"char_name":     "4\n",
	"cast_info":     "20,3,2,4\n21,3,2,\n",
	"complete_cast": "30,2\n",
}

func newTestConverter(t *testing.T) (*Converter, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/imdb", 0755))
	for name, content := range fixtures {
		path := filepath.Join("/imdb", name+".csv")
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}

	return NewConverter(fs, zap.NewNop().Sugar(), "/imdb", "/out"), fs
}

func readOutput(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, filepath.Join("/out", name+".csv"))
	require.NoError(t, err)

	return string(data)
}

func TestProcess(t *testing.T) {
	c, fs := newTestConverter(t)

	require.NoError(t, c.Process(3))

	assert.Equal(t, "id\n1\n2\n", readOutput(t, fs, "title"))
	assert.Equal(t, "src,dst\n2,1\n", readOutput(t, fs, "title_episodeOfEdge_title"))

	// aka title 11 has no owning title, so no edge
	assert.Equal(t, "id\n10\n11\n", readOutput(t, fs, "akaTitle"))
	assert.Equal(t, "src,dst\n1,10\n", readOutput(t, fs, "title_akaTitleEdge_akaTitle"))

	assert.Equal(t, "id\n5\n", readOutput(t, fs, "companyName"))
	assert.Equal(t, "src,dst\n2,5\n", readOutput(t, fs, "title_movieCompanies_companyName"))

	// "color" is deduplicated into one info vertex
	assert.Equal(t, "id\n0\n1\n", readOutput(t, fs, "infoVertex"))
	assert.Equal(t, "src,dst\n2,0\n2,0\n1,1\n", readOutput(t, fs, "title_infoEdge_infoVertex"))

	assert.Equal(t, "id\n0\n", readOutput(t, fs, "infoIdxVertex"))
	assert.Equal(t, "src,dst\n2,0\n", readOutput(t, fs, "title_infoEdge_infoIdxVertex"))

	assert.Equal(t, "id\n7\n", readOutput(t, fs, "keyword"))
	assert.Equal(t, "src,dst\n2,7\n", readOutput(t, fs, "title_keywordEdge_keyword"))
	assert.Equal(t, "src,dst\n1,2\n", readOutput(t, fs, "title_linkTypeEdge_title"))

	assert.Equal(t, "id\n3\n", readOutput(t, fs, "person"))
	assert.Equal(t, "id\n9\n", readOutput(t, fs, "akaName"))
	assert.Equal(t, "src,dst\n3,9\n", readOutput(t, fs, "person_akaNameEdge_akaName"))

	assert.Equal(t, "id\n0\n", readOutput(t, fs, "personInfoVertex"))
	assert.Equal(t, "src,dst\n3,0\n", readOutput(t, fs, "person_personInfoEdge_personInfoVertex"))

	assert.Equal(t, "id\n4\n", readOutput(t, fs, "character"))

	// cast info row 21 has no character column
	assert.Equal(t, "id\n20\n21\n", readOutput(t, fs, "castInfoVertex"))
	assert.Equal(t, "src,dst\n20,3\n21,3\n", readOutput(t, fs, "castInfoVertex_castInfoEdge_person"))
	assert.Equal(t, "src,dst\n20,2\n21,2\n", readOutput(t, fs, "castInfoVertex_castInfoEdge_title"))
	assert.Equal(t, "src,dst\n20,4\n", readOutput(t, fs, "castInfoVertex_castInfoEdge_character"))

	assert.Equal(t, "id\n30\n", readOutput(t, fs, "complCastInfoVertex"))
	assert.Equal(t, "src,dst\n30,2\n", readOutput(t, fs, "complCastInfoVertex_complCastInfoEdge_title"))
}

// fullDiskFile fails every write; the failure only surfaces when the
// buffered CSV writer flushes on close.
type fullDiskFile struct {
	afero.File
}

func (f fullDiskFile) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

type fullDiskOutputFs struct {
	afero.Fs
}

func (fs fullDiskOutputFs) Create(name string) (afero.File, error) {
	f, err := fs.Fs.Create(name)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(name, "/out") {
		return fullDiskFile{File: f}, nil
	}

	return f, nil
}

func TestProcessReportsCloseFailure(t *testing.T) {
	_, fs := newTestConverter(t)
	c := NewConverter(fullDiskOutputFs{Fs: fs}, zap.NewNop().Sugar(), "/imdb", "/out")

	err := c.Process(3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestProcessMissingInput(t *testing.T) {
	c, fs := newTestConverter(t)
	require.NoError(t, fs.Remove("/imdb/keyword.csv"))

	err := c.Process(3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keyword")
}

func TestProcessInvalidIntegerField(t *testing.T) {
	c, fs := newTestConverter(t)
	require.NoError(t, afero.WriteFile(fs, "/imdb/name.csv", []byte("oops\n"), 0644))

	err := c.Process(3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestDedup(t *testing.T) {
	d := newDedup()

	id, fresh := d.get("a")
	assert.Equal(t, 0, id)
	assert.True(t, fresh)

	id, fresh = d.get("b")
	assert.Equal(t, 1, id)
	assert.True(t, fresh)

	id, fresh = d.get("a")
	assert.Equal(t, 0, id)
	assert.False(t, fresh)
}

func TestFieldBounds(t *testing.T) {
	_, err := field([]string{"1"}, 3)
	require.Error(t, err)

	_, err = stringField([]string{"1"}, 3)
	require.Error(t, err)

	v, err := field([]string{"1", "42"}, 1)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}
