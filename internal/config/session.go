package config

import "strings"

// Endpoint returns the configured DeployR server, or "" when none is set.
func (s *Store) Endpoint() string {
	return s.GetString(KeyEndpoint)
}

// SetEndpoint records the DeployR server location.
func (s *Store) SetEndpoint(endpoint string) {
	s.Set(KeyEndpoint, endpoint)
}

// Username returns the logged in user, or "" when there is no session.
func (s *Store) Username() string {
	return s.GetString(KeyUsername)
}

// Cookie returns the opaque session token of the logged in user.
func (s *Store) Cookie() string {
	return s.GetString(KeyCookie)
}

// Homepage is the documentation site opened from the help menu.
func (s *Store) Homepage() string {
	return s.GetString(KeyHomepage)
}

// SetSession records an authenticated session. Any stored password is dropped.
func (s *Store) SetSession(username, cookie string) {
	s.Clear(KeyPassword)
	s.Set(KeyUsername, username)
	s.Set(KeyCookie, cookie)
}

// ClearSession removes the username, cookie and password together.
func (s *Store) ClearSession() {
	s.Clear(KeyUsername)
	s.Clear(KeyCookie)
	s.Clear(KeyPassword)
}

// Git returns the source hosting settings.
func (s *Store) Git() GitSettings {
	return GitSettings{
		Repos:   s.GetString(KeyGit + ".repos"),
		Example: s.GetString(KeyGit + ".example"),
		CLI:     s.GetString(KeyGit + ".cli"),
	}
}

// ExampleURL expands the archive template for the named example.
func (g GitSettings) ExampleURL(name string) string {
	return strings.ReplaceAll(g.Example, "{{example}}", name)
}
