package examples

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/tidwall/jsonc"
)

// DescriptorFile is the example descriptor at the root of an example.
const DescriptorFile = "di-config.json"

// DefaultDirectory is where artifacts go when the descriptor names none.
const DefaultDirectory = "root"

// Descriptor is the parsed di-config.json.
type Descriptor struct {
	Install struct {
		Repository []Dependency `json:"repository"`
	} `json:"app-install"`
	Run struct {
		RequireAuthentication bool     `json:"requireAuthentication"`
		Tutorial              Tutorial `json:"tutorial"`
	} `json:"app-run"`
}

// Dependency is a repository artifact uploaded during install.
type Dependency struct {
	File struct {
		Filename  string `json:"filename"`
		Directory string `json:"directory"`
	} `json:"file"`
	Permissions struct {
		Restricted string `json:"restricted"`
		Shared     *bool  `json:"shared"`
		Published  *bool  `json:"published"`
	} `json:"permissions"`
}

// Directory is the repository directory the file belongs in.
func (d Dependency) Directory() string {
	if d.File.Directory == "" {
		return DefaultDirectory
	}
	return d.File.Directory
}

// Shared defaults to true when the descriptor is silent.
func (d Dependency) Shared() bool {
	return d.Permissions.Shared == nil || *d.Permissions.Shared
}

// Published defaults to true when the descriptor is silent.
func (d Dependency) Published() bool {
	return d.Permissions.Published == nil || *d.Permissions.Published
}

// Tutorial is an optional menu of runnable variations of an example.
type Tutorial struct {
	Help   string  `json:"help"`
	Topics []Topic `json:"topics"`
}

// Topic groups tutorial entries.
type Topic struct {
	Topic string     `json:"topic"`
	Menu  []MenuItem `json:"menu"`
}

// MenuItem is one runnable tutorial entry; Args selects the test to run.
type MenuItem struct {
	Item string `json:"item"`
	Args string `json:"args"`
}

// ParseDescriptor parses di-config.json content. Comments and trailing
// commas are accepted.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(jsonc.ToJSON(data), &d); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrInstall,
			"Invalid "+DescriptorFile,
			"The example's descriptor could not be parsed")
	}
	return &d, nil
}

// LoadDescriptor reads the descriptor in dir. ok is false when there is none.
func LoadDescriptor(dir string) (d *Descriptor, ok bool, err error) {
	data, err := os.ReadFile(filepath.Join(dir, DescriptorFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.WrapWithCode(err, errors.ErrInstall, "Cannot read "+DescriptorFile, "")
	}
	d, err = ParseDescriptor(data)
	if err != nil {
		return nil, false, err
	}
	return d, true, nil
}

// Directories returns the distinct repository directories the
// dependencies need, in first-seen order.
func (d *Descriptor) Directories() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, dep := range d.Install.Repository {
		dir := dep.Directory()
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
