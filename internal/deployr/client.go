// Package deployr talks to a DeployR server's /r/* API.
//
// Every call is a form POST to <endpoint>/deployr/r/... with format=json.
// The reply is wrapped as {"deployr": {"response": {...}}} and carries a
// success flag, and on failure an error message and errorCode.
package deployr

import (
	"context"
	"time"
)

// Default API paths.
const (
	CallServerInfo      = "/r/server/info"
	CallUserLogin       = "/r/user/login"
	CallUserLogout      = "/r/user/logout"
	CallUserAbout       = "/r/user/about"
	CallDirectoryCreate = "/r/repository/directory/create"
	CallFileUpload      = "/r/repository/file/upload"
)

// DefaultTimeout bounds a single API exchange.
const DefaultTimeout = 30 * time.Second

// ServerInfo describes a DeployR server.
type ServerInfo struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Enterprise bool   `json:"enterprise"`
	Date       string `json:"date"`
}

// Edition is "Enterprise" or "Open".
func (i *ServerInfo) Edition() string {
	if i.Enterprise {
		return "Enterprise"
	}
	return "Open"
}

// Session is an authenticated user session.
type Session struct {
	Username string
	Cookie   string
}

// User is the result of /r/user/about.
type User struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayname"`
}

// Auth identifies the server and session a call runs against.
type Auth struct {
	Endpoint string
	Cookie   string
}

// Upload describes a repository file upload.
type Upload struct {
	// Path is the local file to send.
	Path       string
	Filename   string
	Directory  string
	Restricted string
	Shared     bool
	Published  bool
	// Message is recorded as the new version's description.
	Message string
}

// RepositoryFile is the server's record of an uploaded file.
type RepositoryFile struct {
	Filename  string `json:"filename"`
	Directory string `json:"directory"`
	Author    string `json:"author"`
	Version   string `json:"version"`
}

// Client is the set of DeployR calls the CLI makes.
type Client interface {
	ServerInfo(ctx context.Context, endpoint string) (*ServerInfo, error)
	Login(ctx context.Context, endpoint, username, password string) (*Session, error)
	Logout(ctx context.Context, auth Auth) error
	UserAbout(ctx context.Context, auth Auth) (*User, error)
	CreateDirectory(ctx context.Context, auth Auth, directory string) error
	UploadFile(ctx context.Context, auth Auth, upload Upload) (*RepositoryFile, error)
}
