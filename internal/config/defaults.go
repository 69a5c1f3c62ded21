package config

const (
	// FileName is the default config file name.
	FileName = ".diconf"

	// EnvPrefix namespaces environment overrides (DI_ENDPOINT, DI_USERNAME, ...).
	EnvPrefix = "DI"
)

// Keys persisted in the config file.
const (
	KeyEndpoint = "endpoint"
	KeyUsername = "username"
	KeyPassword = "password"
	KeyCookie   = "cookie"
	KeyHomepage = "homepage"
	KeyGit      = "git"
)

// Restricted lists the key groups that the CLI never lets the user change.
var Restricted = []string{KeyGit}

// Defaults are supplied underneath the file layer and never written back.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		KeyHomepage: "http://go.microsoft.com/fwlink/?LinkID=692163",
		KeyGit: map[string]interface{}{
			"repos":   "https://api.github.com/orgs/deployr/repos?per_page=100",
			"example": "https://github.com/deployr/{{example}}/archive/master.zip",
			"cli":     "http://github.com/Microsoft/deployr-cli",
		},
	}
}

// GitSettings holds the read-only source hosting URLs.
type GitSettings struct {
	// Repos lists the repositories examples are picked from.
	Repos string
	// Example is the archive URL template; {{example}} is replaced by the example name.
	Example string
	// CLI is the project page used for issue reports.
	CLI string
}
