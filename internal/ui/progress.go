package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
)

// DownloadProgress draws a single-line byte counter with a progress bar.
// Update matches github.ProgressFunc so it can be handed to a download
// directly.
type DownloadProgress struct {
	mu    sync.Mutex
	w     io.Writer
	label string
	bar   progress.Model
	drawn bool
}

// NewDownloadProgress creates a bar labelled with the example name.
func NewDownloadProgress(w io.Writer, label string) *DownloadProgress {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)
	bar.FullColor = string(ColorSuccess)
	bar.EmptyColor = string(ColorMuted)

	return &DownloadProgress{w: w, label: label, bar: bar}
}

// Update redraws the line. total is -1 when the size is not known, in which
// case only the byte count is shown.
func (p *DownloadProgress) Update(done, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total > 0 {
		percent := float64(done) / float64(total)
		if percent > 1 {
			percent = 1
		}
		fmt.Fprintf(p.w, "\r%s %s %s", p.label, p.bar.ViewAs(percent), MutedStyle.Render(FormatBytes(done)))
	} else {
		fmt.Fprintf(p.w, "\r%s %s", p.label, MutedStyle.Render(FormatBytes(done)))
	}
	p.drawn = true
}

// Done terminates the progress line.
func (p *DownloadProgress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.drawn {
		fmt.Fprintln(p.w)
		p.drawn = false
	}
}

// FormatBytes renders n with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
