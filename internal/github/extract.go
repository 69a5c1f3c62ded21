package github

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/microsoft/deployr-cli/internal/errors"
)

// Extract unpacks the zip archive at src into dest, dropping the first
// strip path components of every entry. Entries that would land outside
// dest are rejected.
func Extract(src, dest string, strip int) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrInstall, "Cannot open archive "+src, "The download may be corrupt; try again")
	}
	defer r.Close()

	root, err := filepath.Abs(dest)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrInstall, "Cannot resolve "+dest, "")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrInstall, "Cannot create "+dest, "Check directory permissions")
	}

	for _, f := range r.File {
		name := stripComponents(f.Name, strip)
		if name == "" {
			continue
		}

		target := filepath.Join(root, filepath.FromSlash(name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return errors.New(errors.ErrInstall, "Archive entry escapes destination: "+f.Name, "")
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.WrapWithCode(err, errors.ErrInstall, "Cannot create "+target, "")
			}
			continue
		}

		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrInstall, "Cannot create "+filepath.Dir(target), "")
	}

	rc, err := f.Open()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrInstall, "Cannot read "+f.Name, "")
	}
	defer rc.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrInstall, "Cannot write "+target, "")
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return errors.WrapWithCode(err, errors.ErrInstall, "Cannot write "+target, "")
	}
	if err := out.Close(); err != nil {
		return errors.WrapWithCode(err, errors.ErrInstall, "Cannot write "+target, "")
	}
	return nil
}

func stripComponents(name string, n int) string {
	parts := strings.Split(strings.Trim(name, "/"), "/")
	if len(parts) <= n {
		return ""
	}
	return strings.Join(parts[n:], "/")
}
