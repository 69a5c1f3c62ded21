package examples

import (
	"context"
	"path/filepath"

	"github.com/microsoft/deployr-cli/internal/deployr"
)

const (
	// AnalyticsDir holds an example's repository artifacts.
	AnalyticsDir = "analytics"
	// UploadMessage is recorded against every uploaded version.
	UploadMessage = "DeployR CLI (examples) upload."
)

// Repository is the part of the DeployR API an install writes to.
type Repository interface {
	CreateDirectory(ctx context.Context, auth deployr.Auth, directory string) error
	UploadFile(ctx context.Context, auth deployr.Auth, upload deployr.Upload) (*deployr.RepositoryFile, error)
}

// Upload builds the upload request for d from an example unpacked in dir.
func (d Dependency) Upload(dir string) deployr.Upload {
	return deployr.Upload{
		Path:       filepath.Join(dir, AnalyticsDir, d.File.Filename),
		Filename:   d.File.Filename,
		Directory:  d.Directory(),
		Restricted: d.Permissions.Restricted,
		Shared:     d.Shared(),
		Published:  d.Published(),
		Message:    UploadMessage,
	}
}

// UploadAll uploads every dependency concurrently and waits for all of
// them. uploaded is called once per stored file and may be called from
// several goroutines at once. The first failure is returned after every
// upload has finished.
func UploadAll(ctx context.Context, repo Repository, auth deployr.Auth, dir string, deps []Dependency, uploaded func(*deployr.RepositoryFile)) (int, error) {
	return Join(ctx, deps, func(ctx context.Context, dep Dependency) error {
		file, err := repo.UploadFile(ctx, auth, dep.Upload(dir))
		if err != nil {
			return err
		}
		if uploaded != nil {
			uploaded(file)
		}
		return nil
	})
}
