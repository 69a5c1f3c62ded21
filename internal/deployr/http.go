package deployr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/microsoft/deployr-cli/internal/logger"
)

// SessionCookie is the name of the DeployR session cookie.
const SessionCookie = "JSESSIONID"

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	HTTP      *http.Client
	UserAgent string
	Log       logger.Logger
}

// NewHTTPClient returns a client with DefaultTimeout.
func NewHTTPClient(userAgent string) *HTTPClient {
	return &HTTPClient{
		HTTP:      &http.Client{Timeout: DefaultTimeout},
		UserAgent: userAgent,
		Log:       logger.Default(),
	}
}

type envelope struct {
	Deployr struct {
		Response response `json:"response"`
	} `json:"deployr"`
}

type response struct {
	Call       string          `json:"call"`
	Success    bool            `json:"success"`
	Error      string          `json:"error"`
	ErrorCode  int             `json:"errorCode"`
	HTTPCookie string          `json:"httpcookie"`
	Info       *ServerInfo     `json:"info"`
	User       *User           `json:"user"`
	Repository json.RawMessage `json:"repository"`
}

// APIURL joins the endpoint and a call path.
func APIURL(endpoint, call string) string {
	return strings.TrimRight(endpoint, "/") + "/deployr" + call
}

func (c *HTTPClient) send(ctx context.Context, auth Auth, call, contentType string, body io.Reader) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, APIURL(auth.Endpoint, call), body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrNetwork,
			"Invalid DeployR endpoint "+auth.Endpoint,
			"Run 'di endpoint' to set a valid server address")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if auth.Cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: auth.Cookie})
	}

	c.log().Debug("deployr: POST %s", req.URL)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrNetwork,
			"Couldn't reach the DeployR server at "+auth.Endpoint,
			"Check the server is running, or run 'di endpoint' to change it")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrNetwork, "Failed to read DeployR response", "")
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &errors.APIError{
			Call:    call,
			Code:    resp.StatusCode,
			Message: fmt.Sprintf("Unexpected response from server: %s", resp.Status),
		}
	}

	r := &env.Deployr.Response
	if r.Call == "" {
		r.Call = call
	}
	if !r.Success {
		msg := r.Error
		if msg == "" {
			msg = resp.Status
		}
		return nil, &errors.APIError{Call: r.Call, Code: r.ErrorCode, Message: msg}
	}
	return r, nil
}

func (c *HTTPClient) post(ctx context.Context, auth Auth, call string, form url.Values) (*response, error) {
	if form == nil {
		form = url.Values{}
	}
	form.Set("format", "json")
	return c.send(ctx, auth, call, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

func (c *HTTPClient) log() logger.Logger {
	if c.Log == nil {
		return logger.Noop()
	}
	return c.Log
}

func (c *HTTPClient) ServerInfo(ctx context.Context, endpoint string) (*ServerInfo, error) {
	r, err := c.post(ctx, Auth{Endpoint: endpoint}, CallServerInfo, nil)
	if err != nil {
		return nil, err
	}
	if r.Info == nil {
		return &ServerInfo{}, nil
	}
	return r.Info, nil
}

func (c *HTTPClient) Login(ctx context.Context, endpoint, username, password string) (*Session, error) {
	r, err := c.post(ctx, Auth{Endpoint: endpoint}, CallUserLogin, url.Values{
		"username": {username},
		"password": {password},
	})
	if err != nil {
		return nil, err
	}

	sess := &Session{Username: username, Cookie: r.HTTPCookie}
	if r.User != nil && r.User.Username != "" {
		sess.Username = r.User.Username
	}
	return sess, nil
}

func (c *HTTPClient) Logout(ctx context.Context, auth Auth) error {
	_, err := c.post(ctx, auth, CallUserLogout, nil)
	return err
}

func (c *HTTPClient) UserAbout(ctx context.Context, auth Auth) (*User, error) {
	r, err := c.post(ctx, auth, CallUserAbout, nil)
	if err != nil {
		return nil, err
	}
	if r.User == nil {
		return &User{}, nil
	}
	return r.User, nil
}

func (c *HTTPClient) CreateDirectory(ctx context.Context, auth Auth, directory string) error {
	_, err := c.post(ctx, auth, CallDirectoryCreate, url.Values{"directory": {directory}})
	return err
}

func (c *HTTPClient) UploadFile(ctx context.Context, auth Auth, upload Upload) (*RepositoryFile, error) {
	f, err := os.Open(upload.Path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrInstall,
			"Cannot open "+upload.Path,
			"Check the example's di-config.json lists files that exist")
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fields := map[string]string{
		"format":        "json",
		"filename":      upload.Filename,
		"directory":     upload.Directory,
		"restricted":    upload.Restricted,
		"shared":        strconv.FormatBool(upload.Shared),
		"published":     strconv.FormatBool(upload.Published),
		"newversion":    "true",
		"newversionmsg": upload.Message,
	}
	for _, key := range []string{"format", "filename", "directory", "restricted", "shared", "published", "newversion", "newversionmsg"} {
		if err := mw.WriteField(key, fields[key]); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrInstall, "Failed to build upload request", "")
		}
	}
	part, err := mw.CreateFormFile("file", filepath.Base(upload.Path))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrInstall, "Failed to build upload request", "")
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrInstall, "Failed to read "+upload.Path, "")
	}
	if err := mw.Close(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrInstall, "Failed to build upload request", "")
	}

	r, err := c.send(ctx, auth, CallFileUpload, mw.FormDataContentType(), &body)
	if err != nil {
		return nil, err
	}

	var repo struct {
		File RepositoryFile `json:"file"`
	}
	if len(r.Repository) > 0 {
		if err := json.Unmarshal(r.Repository, &repo); err != nil {
			return nil, &errors.APIError{Call: CallFileUpload, Message: "Malformed repository record: " + err.Error()}
		}
	}
	if repo.File.Filename == "" {
		repo.File = RepositoryFile{Filename: upload.Filename, Directory: upload.Directory}
	}
	return &repo.File, nil
}

var _ Client = (*HTTPClient)(nil)
