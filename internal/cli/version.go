package cli

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// formatVersion ensures version has a 'v' prefix for display
func formatVersion(v string) string {
	if v == "" || v == "dev" {
		return v
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// GetVersion returns the current version string.
func GetVersion() string {
	return version
}

// versionTemplate is printed by --version. Commit and date only show up
// on release builds.
func versionTemplate() string {
	if commit == "none" {
		return "{{.Version}}\n"
	}
	return "{{.Version}} (" + commit + ", built " + date + ")\n"
}
