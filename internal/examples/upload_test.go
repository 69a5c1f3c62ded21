package examples

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/microsoft/deployr-cli/internal/deployr"
	fakedeployr "github.com/microsoft/deployr-cli/internal/deployr/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const uploadDescriptor = `{
	"app-install": {
		"repository": [
			{"file": {"filename": "fraudModel.rData", "directory": "example-fraud-score"},
			 "permissions": {"restricted": "", "shared": false}},
			{"file": {"filename": "ccFraudScore.R"}, "permissions": {}}
		]
	}
}`

func TestDependency_Upload(t *testing.T) {
	d, err := ParseDescriptor([]byte(uploadDescriptor))
	require.NoError(t, err)

	first := d.Install.Repository[0].Upload("/tmp/ex")
	assert.Equal(t, filepath.Join("/tmp/ex", "analytics", "fraudModel.rData"), first.Path)
	assert.Equal(t, "example-fraud-score", first.Directory)
	assert.False(t, first.Shared)
	assert.True(t, first.Published)
	assert.Equal(t, UploadMessage, first.Message)

	second := d.Install.Repository[1].Upload("/tmp/ex")
	assert.Equal(t, DefaultDirectory, second.Directory)
	assert.True(t, second.Shared)
}

func TestUploadAll(t *testing.T) {
	d, err := ParseDescriptor([]byte(uploadDescriptor))
	require.NoError(t, err)
	client := &fakedeployr.FakeClient{}
	auth := deployr.Auth{Endpoint: "http://dhost", Cookie: "abc"}

	var (
		mu    sync.Mutex
		files []string
	)
	n, err := UploadAll(context.Background(), client, auth, "/tmp/ex", d.Install.Repository, func(f *deployr.RepositoryFile) {
		mu.Lock()
		defer mu.Unlock()
		files = append(files, f.Filename)
	})

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.ElementsMatch(t, []string{"fraudModel.rData", "ccFraudScore.R"}, files)
	assert.Equal(t, 2, client.Count("UploadFile"))
	assert.Equal(t, "abc", client.Calls[0].Cookie)
}

func TestUploadAll_WaitsForEveryUploadOnFailure(t *testing.T) {
	d, err := ParseDescriptor([]byte(uploadDescriptor))
	require.NoError(t, err)
	boom := fmt.Errorf("quota exceeded")
	client := &fakedeployr.FakeClient{UploadErrs: map[string]error{"fraudModel.rData": boom}}

	n, err := UploadAll(context.Background(), client, deployr.Auth{}, "/tmp/ex", d.Install.Repository, nil)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, client.Count("UploadFile"))
}
