package github

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/microsoft/deployr-cli/internal/config"
	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestListRepos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.UserAgent())
		w.Write([]byte(`[{"name": "js-example-fraud-score"}, {"name": "docs"}]`))
	}))
	defer srv.Close()

	repos, err := NewClient().ListRepos(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "js-example-fraud-score", repos[0].Name)
}

func TestListRepos_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewClient().ListRepos(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNetwork))
	assert.Contains(t, err.Error(), "403")
}

func TestFetch_ExtractsWithoutTopLevelDir(t *testing.T) {
	archive := buildZip(t, map[string]string{
		"js-example-fraud-score-master/package.json":           `{"name": "fraud"}`,
		"js-example-fraud-score-master/analytics/fraudModel.R": "model",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/deployr/js-example-fraud-score/archive/master.zip", r.URL.Path)
		w.Write(archive)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "js-example-fraud-score")
	progress := &recordingProgress{}
	ex := &Examples{
		Client:     NewClient(),
		ArchiveURL: config.GitSettings{Example: srv.URL + "/deployr/{{example}}/archive/master.zip"}.ExampleURL,
		Progress: func(name string) Progress {
			assert.Equal(t, "js-example-fraud-score", name)
			return progress
		},
	}

	require.NoError(t, ex.Fetch(context.Background(), "js-example-fraud-score", dest))

	data, err := os.ReadFile(filepath.Join(dest, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"name": "fraud"}`, string(data))
	assert.FileExists(t, filepath.Join(dest, "analytics", "fraudModel.R"))
	assert.Equal(t, int64(len(archive)), progress.lastDone)
	assert.True(t, progress.done)
}

type recordingProgress struct {
	lastDone int64
	done     bool
}

func (p *recordingProgress) Update(done, total int64) { p.lastDone = done }
func (p *recordingProgress) Done()                    { p.done = true }

func TestExtract_RejectsTraversal(t *testing.T) {
	src := filepath.Join(t.TempDir(), "evil.zip")
	require.NoError(t, os.WriteFile(src, buildZip(t, map[string]string{
		"top/../../escape.txt": "x",
	}), 0o644))

	err := Extract(src, filepath.Join(t.TempDir(), "out"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")
}

func TestListExamples(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name": "java-example-fraud-score"}, {"name": "deployr-cli"}]`))
	}))
	defer srv.Close()

	ex := &Examples{Client: NewClient(), ReposURL: srv.URL}
	names, err := ex.ListExamples(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"java-example-fraud-score", "deployr-cli"}, names)
}

func TestStripComponents(t *testing.T) {
	assert.Equal(t, "a/b.txt", stripComponents("top/a/b.txt", 1))
	assert.Equal(t, "", stripComponents("top/", 1))
	assert.Equal(t, "top/a", stripComponents("top/a", 0))
}
