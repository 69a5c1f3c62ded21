package github

import (
	"context"
)

// Examples adapts Client to the example listing and download the install
// workflow needs.
type Examples struct {
	Client *Client
	// ReposURL is the repository listing to pick examples from.
	ReposURL string
	// ArchiveURL returns the archive location of the named example.
	ArchiveURL func(name string) string
	// Progress, when set, creates the display for one archive download.
	Progress func(name string) Progress
}

// Progress displays the progress of one download.
type Progress interface {
	Update(done, total int64)
	Done()
}

// ListExamples returns the names of every listed repository.
func (e *Examples) ListExamples(ctx context.Context) ([]string, error) {
	repos, err := e.Client.ListRepos(ctx, e.ReposURL)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(repos))
	for _, r := range repos {
		names = append(names, r.Name)
	}
	return names, nil
}

// Fetch downloads the named example and unpacks it into dest.
func (e *Examples) Fetch(ctx context.Context, name, dest string) error {
	var progress ProgressFunc
	if e.Progress != nil {
		p := e.Progress(name)
		defer p.Done()
		progress = p.Update
	}
	return e.Client.Fetch(ctx, e.ArchiveURL(name), dest, progress)
}
