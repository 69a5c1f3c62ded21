package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)

	assert.Empty(t, s.Settings())
	assert.Equal(t, "", s.Endpoint())
	assert.Equal(t, "http://go.microsoft.com/fwlink/?LinkID=692163", s.Homepage())
}

func TestLoad_EmptyFileIsEmpty(t *testing.T) {
	s, err := Load(writeFile(t, "  \n"))
	require.NoError(t, err)
	assert.Empty(t, s.Settings())
}

func TestLoad_ReadsValues(t *testing.T) {
	s, err := Load(writeFile(t, `{"endpoint": "http://localhost:8000", "username": "testuser", "cookie": "abc"}`))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", s.Endpoint())
	assert.Equal(t, "testuser", s.Username())
	assert.Equal(t, "abc", s.Cookie())
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeFile(t, `{"endpoint": `)

	_, err := Load(path)
	require.Error(t, err)

	var loadErr *errors.ConfigLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, path, loadErr.Path)
}

func TestStore_Precedence(t *testing.T) {
	s, err := Load(writeFile(t, `{"endpoint": "http://file:8000", "homepage": "http://file/docs"}`))
	require.NoError(t, err)

	// file beats defaults
	assert.Equal(t, "http://file/docs", s.Homepage())

	// env beats file
	t.Setenv("DI_ENDPOINT", "http://env:8000")
	assert.Equal(t, "http://env:8000", s.Endpoint())

	// env is never persisted
	assert.Equal(t, "http://file:8000", s.Settings()["endpoint"])
}

func TestStore_GitDefaults(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), FileName))
	git := s.Git()

	assert.Contains(t, git.Repos, "api.github.com")
	assert.Equal(t, "https://github.com/deployr/js-example-fraud-score/archive/master.zip",
		git.ExampleURL("js-example-fraud-score"))
	assert.Equal(t, "http://github.com/Microsoft/deployr-cli", git.CLI)
}

func TestStore_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	s := New(path)
	s.SetEndpoint("http://localhost:8000")
	s.Set("color", true)
	s.Set("proxy.host", "corp")
	require.NoError(t, s.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", loaded.Endpoint())
	assert.Equal(t, true, loaded.Get("color"))
	assert.Equal(t, "corp", loaded.GetString("proxy.host"))

	// defaults are not written back
	_, hasGit := loaded.Settings()["git"]
	assert.False(t, hasGit)
}

func TestStore_Clear(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), FileName))
	s.Set("proxy.host", "corp")
	s.Set("proxy.port", 8080)
	s.Set("endpoint", "http://localhost:8000")

	s.Clear("proxy.host")
	assert.False(t, s.IsSet("proxy.host"))
	assert.True(t, s.IsSet("proxy.port"))

	s.Clear("proxy.port")
	_, hasProxy := s.Settings()["proxy"]
	assert.False(t, hasProxy, "empty groups are removed")

	s.Clear("missing")
	assert.Equal(t, "http://localhost:8000", s.Endpoint())
}

func TestStore_SessionIsAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	s := New(path)
	s.Set(KeyPassword, "secret")
	s.SetSession("testuser", "JSESSION-1")

	assert.Equal(t, "testuser", s.Username())
	assert.Equal(t, "JSESSION-1", s.Cookie())
	assert.False(t, s.IsSet(KeyPassword))

	s.ClearSession()
	require.NoError(t, s.Save())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.False(t, loaded.IsSet(KeyUsername))
	assert.False(t, loaded.IsSet(KeyCookie))
	assert.False(t, loaded.IsSet(KeyPassword))
}

func TestIsRestricted(t *testing.T) {
	assert.True(t, IsRestricted("git"))
	assert.True(t, IsRestricted("git.repos"))
	assert.True(t, IsRestricted("GIT"))
	assert.False(t, IsRestricted("github"))
	assert.False(t, IsRestricted("endpoint"))
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   string
		want interface{}
	}{
		{"true", true},
		{"false", false},
		{"42", int64(42)},
		{"1.5", 1.5},
		{"NaN", "NaN"},
		{"Inf", "Inf"},
		{"-infinity", "-infinity"},
		{"http://localhost:8000", "http://localhost:8000"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(tt.in))
		})
	}
}
