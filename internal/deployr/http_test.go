package deployr

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/microsoft/deployr-cli/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reply(w http.ResponseWriter, resp map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"deployr": map[string]interface{}{"response": resp},
	})
}

func newTestClient() *HTTPClient {
	c := NewHTTPClient("di-test")
	c.Log = logger.Noop()
	return c
}

func TestHTTPClient_ServerInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/deployr/r/server/info", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "json", r.PostForm.Get("format"))
		assert.Equal(t, "di-test", r.UserAgent())

		reply(w, map[string]interface{}{
			"call":    "/r/server/info",
			"success": true,
			"info":    map[string]interface{}{"version": "8.0.5", "enterprise": true, "date": "2016-01-20"},
		})
	}))
	defer srv.Close()

	info, err := newTestClient().ServerInfo(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "8.0.5", info.Version)
	assert.Equal(t, "Enterprise", info.Edition())
	assert.Equal(t, "2016-01-20", info.Date)
}

func TestHTTPClient_LoginInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "testuser", r.PostForm.Get("username"))
		assert.Equal(t, "wrong", r.PostForm.Get("password"))

		w.WriteHeader(http.StatusUnauthorized)
		reply(w, map[string]interface{}{
			"call":      "/r/user/login",
			"success":   false,
			"error":     "Invalid username or password.",
			"errorCode": 940,
		})
	}))
	defer srv.Close()

	_, err := newTestClient().Login(context.Background(), srv.URL, "testuser", "wrong")
	require.Error(t, err)

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "/r/user/login", apiErr.Call)
	assert.True(t, errors.IsInvalidCredentials(err))
}

func TestHTTPClient_LoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]interface{}{
			"call":       "/r/user/login",
			"success":    true,
			"httpcookie": "ABC123",
			"user":       map[string]interface{}{"username": "testuser"},
		})
	}))
	defer srv.Close()

	sess, err := newTestClient().Login(context.Background(), srv.URL, "TestUser", "changeme")
	require.NoError(t, err)
	assert.Equal(t, "testuser", sess.Username)
	assert.Equal(t, "ABC123", sess.Cookie)
}

func TestHTTPClient_LogoutSendsCookie(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/deployr/r/user/logout", r.URL.Path)
		if c, err := r.Cookie(SessionCookie); err == nil {
			got = c.Value
		}
		reply(w, map[string]interface{}{"call": "/r/user/logout", "success": true})
	}))
	defer srv.Close()

	require.NoError(t, newTestClient().Logout(context.Background(), Auth{Endpoint: srv.URL, Cookie: "ABC123"}))
	assert.Equal(t, "ABC123", got)
}

func TestHTTPClient_UnexpectedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<html>not found</html>", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient().ServerInfo(context.Background(), srv.URL)

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
	assert.Equal(t, CallServerInfo, apiErr.Call)
}

func TestHTTPClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient().ServerInfo(context.Background(), url)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNetwork))
}

func TestHTTPClient_UploadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fraudModel.rData")
	require.NoError(t, os.WriteFile(path, []byte("model-bytes"), 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/deployr/r/repository/file/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "fraudModel.rData", r.FormValue("filename"))
		assert.Equal(t, "example-fraud-score", r.FormValue("directory"))
		assert.Equal(t, "true", r.FormValue("shared"))
		assert.Equal(t, "true", r.FormValue("newversion"))
		assert.Equal(t, "DeployR CLI (examples) upload.", r.FormValue("newversionmsg"))

		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		body, _ := io.ReadAll(f)
		assert.Equal(t, "model-bytes", string(body))

		reply(w, map[string]interface{}{
			"call":    "/r/repository/file/upload",
			"success": true,
			"repository": map[string]interface{}{
				"file": map[string]interface{}{"filename": "fraudModel.rData", "directory": "example-fraud-score"},
			},
		})
	}))
	defer srv.Close()

	file, err := newTestClient().UploadFile(context.Background(), Auth{Endpoint: srv.URL, Cookie: "c"}, Upload{
		Path:      path,
		Filename:  "fraudModel.rData",
		Directory: "example-fraud-score",
		Shared:    true,
		Published: true,
		Message:   "DeployR CLI (examples) upload.",
	})
	require.NoError(t, err)
	assert.Equal(t, "example-fraud-score", file.Directory)
}

func TestHTTPClient_UploadMissingFile(t *testing.T) {
	_, err := newTestClient().UploadFile(context.Background(), Auth{Endpoint: "http://localhost:1"}, Upload{
		Path: filepath.Join(t.TempDir(), "missing.R"),
	})
	assert.True(t, errors.IsCode(err, errors.ErrInstall))
}

func TestAPIURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8000/deployr/r/user/login", APIURL("http://localhost:8000/", CallUserLogin))
}
