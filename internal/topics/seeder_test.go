package topics

import (
	"context"
	"errors"
	"testing"

	"certchamps/publisher/internal/testhelpers"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const mathsHigher = `path: questions/leavingcert/subjects/maths/levels/higher
topics:
  - Algebra
  - Area and Volume
subTopics:
  - Cubics
  - Indices and Logs
`

func writeSeed(t *testing.T, content string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "topics.yaml", []byte(content), 0o644))
	return fs
}

func TestLoadSeedFile(t *testing.T) {
	seed, err := LoadSeedFile(writeSeed(t, mathsHigher), "topics.yaml")
	require.NoError(t, err)

	assert.Equal(t, "questions/leavingcert/subjects/maths/levels/higher", seed.Path)
	assert.Equal(t, []string{"Algebra", "Area and Volume"}, seed.Topics)
	assert.Equal(t, []string{"Cubics", "Indices and Logs"}, seed.SubTopics)
}

func TestLoadSeedFile_Invalid(t *testing.T) {
	cases := map[string]string{
		"collection path": "path: questions\ntopics: [Algebra]\n",
		"empty segment":   "path: questions//subjects/maths\ntopics: [Algebra]\n",
		"no path":         "topics: [Algebra]\n",
		"nothing to seed": "path: questions/leavingcert\n",
		"not yaml":        "path: [oops\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSeedFile(writeSeed(t, content), "topics.yaml")
			assert.Error(t, err)
		})
	}

	_, err := LoadSeedFile(afero.NewMemMapFs(), "missing.yaml")
	assert.Error(t, err)
}

func TestDocument_AlwaysListsPapers(t *testing.T) {
	seed := &SeedFile{Path: "a/b", Topics: []string{"Algebra"}}
	doc := seed.Document()
	assert.Equal(t, []string{"papers"}, doc.Sections)
	assert.Equal(t, []string{}, doc.SubTopics)

	seed.Sections = []string{"papers", "revision"}
	assert.Equal(t, []string{"papers", "revision"}, seed.Document().Sections)

	seed.Sections = []string{"revision"}
	assert.Equal(t, []string{"revision", "papers"}, seed.Document().Sections)
	assert.Equal(t, []string{"revision"}, seed.Sections, "seed file is not modified")
}

func TestSeed(t *testing.T) {
	store := testhelpers.NewFakeStore()
	seed, err := LoadSeedFile(writeSeed(t, mathsHigher), "topics.yaml")
	require.NoError(t, err)

	require.NoError(t, NewSeeder(store, zap.NewNop()).Seed(context.Background(), seed))

	doc := store.Topics["questions/leavingcert/subjects/maths/levels/higher"]
	require.NotNil(t, doc)
	assert.Equal(t, seed.Topics, doc.Topics)
	assert.Equal(t, []string{"papers"}, doc.Sections)
}

func TestSeed_RepoError(t *testing.T) {
	store := testhelpers.NewFakeStore()
	store.FailTopics = func(string) error { return errors.New("permission denied") }

	err := NewSeeder(store, zap.NewNop()).Seed(context.Background(), &SeedFile{Path: "a/b", Topics: []string{"x"}})
	assert.Error(t, err)
}
