// Package testing provides test doubles for the deployr package.
package testing

import (
	"context"
	"sync"

	"github.com/microsoft/deployr-cli/internal/deployr"
)

// Call records one API call made against FakeClient.
type Call struct {
	Name     string
	Endpoint string
	Cookie   string
	Arg      string
}

// FakeClient is a scripted deployr.Client. Zero value answers every call
// successfully with empty results.
type FakeClient struct {
	mu    sync.Mutex
	Calls []Call

	Info    *deployr.ServerInfo
	InfoErr error
	// InfoErrs, when set, is consumed one entry per ServerInfo call before InfoErr applies.
	InfoErrs []error

	Session *deployr.Session
	// LoginErrs is consumed one entry per Login call; a nil entry succeeds.
	LoginErrs []error

	LogoutErr error

	User     *deployr.User
	AboutErr error

	DirErr error
	// UploadErrs maps a filename to the error its upload returns.
	UploadErrs map[string]error
}

func (f *FakeClient) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, c)
}

// CallNames returns the names of every recorded call, in order.
func (f *FakeClient) CallNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		names[i] = c.Name
	}
	return names
}

// Count returns how many times the named call was made.
func (f *FakeClient) Count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

func (f *FakeClient) ServerInfo(ctx context.Context, endpoint string) (*deployr.ServerInfo, error) {
	f.record(Call{Name: "ServerInfo", Endpoint: endpoint})

	f.mu.Lock()
	var err error
	if len(f.InfoErrs) > 0 {
		err = f.InfoErrs[0]
		f.InfoErrs = f.InfoErrs[1:]
	} else {
		err = f.InfoErr
	}
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if f.Info == nil {
		return &deployr.ServerInfo{Version: "8.0.5"}, nil
	}
	return f.Info, nil
}

func (f *FakeClient) Login(ctx context.Context, endpoint, username, password string) (*deployr.Session, error) {
	f.record(Call{Name: "Login", Endpoint: endpoint, Arg: username + ":" + password})

	f.mu.Lock()
	var err error
	if len(f.LoginErrs) > 0 {
		err = f.LoginErrs[0]
		f.LoginErrs = f.LoginErrs[1:]
	}
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if f.Session != nil {
		return f.Session, nil
	}
	return &deployr.Session{Username: username, Cookie: "cookie-" + username}, nil
}

func (f *FakeClient) Logout(ctx context.Context, auth deployr.Auth) error {
	f.record(Call{Name: "Logout", Endpoint: auth.Endpoint, Cookie: auth.Cookie})
	return f.LogoutErr
}

func (f *FakeClient) UserAbout(ctx context.Context, auth deployr.Auth) (*deployr.User, error) {
	f.record(Call{Name: "UserAbout", Endpoint: auth.Endpoint, Cookie: auth.Cookie})
	if f.AboutErr != nil {
		return nil, f.AboutErr
	}
	if f.User != nil {
		return f.User, nil
	}
	return &deployr.User{Username: "testuser"}, nil
}

func (f *FakeClient) CreateDirectory(ctx context.Context, auth deployr.Auth, directory string) error {
	f.record(Call{Name: "CreateDirectory", Endpoint: auth.Endpoint, Cookie: auth.Cookie, Arg: directory})
	return f.DirErr
}

func (f *FakeClient) UploadFile(ctx context.Context, auth deployr.Auth, upload deployr.Upload) (*deployr.RepositoryFile, error) {
	f.record(Call{Name: "UploadFile", Endpoint: auth.Endpoint, Cookie: auth.Cookie, Arg: upload.Filename})
	if err, ok := f.UploadErrs[upload.Filename]; ok && err != nil {
		return nil, err
	}
	return &deployr.RepositoryFile{Filename: upload.Filename, Directory: upload.Directory}, nil
}

var _ deployr.Client = (*FakeClient)(nil)
