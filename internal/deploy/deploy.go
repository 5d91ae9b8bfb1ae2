// SPDX-License-Identifier: MPL-2.0

package deploy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Policy selects how a mapping is applied.
type Policy int

const (
	// OverwriteIfSourceExists refreshes the destination from the source
	// tree on every run; a missing source skips the mapping silently.
	OverwriteIfSourceExists Policy = iota
	// CreateDefaultIfAbsent writes a built-in default payload only when
	// the destination file does not exist yet. User edits survive reruns.
	CreateDefaultIfAbsent
)

// Mapping describes one source-to-destination deployment.
type Mapping struct {
	// Source is the path inside the configuration source tree. Unused
	// for CreateDefaultIfAbsent.
	Source string
	// Dest is the destination path (a directory for tree copies, a file
	// for CreateDefaultIfAbsent).
	Dest string
	// Policy selects the deployment behavior.
	Policy Policy
	// Default is the payload written under CreateDefaultIfAbsent.
	Default []byte
}

// Deployer applies config mappings.
type Deployer struct {
	logger *log.Logger
	// staleLinks are removed before any copy runs. These are the
	// conventional destinations the theme wiring turns into symlinks; a
	// copy onto a dangling or previously wired link would land wherever
	// the link points, which is never intended here.
	staleLinks []string
}

// NewDeployer creates a Deployer that clears the given stale symlink
// set before deploying.
func NewDeployer(logger *log.Logger, staleLinks []string) *Deployer {
	return &Deployer{logger: logger, staleLinks: staleLinks}
}

// Deploy applies all mappings in order. Individual file copy failures
// are logged and skipped; only structural failures (unreadable source
// root, uncreatable destination root, undeletable stale link) are
// returned.
func (d *Deployer) Deploy(mappings []Mapping) error {
	if err := d.removeStaleLinks(); err != nil {
		return err
	}

	for _, m := range mappings {
		switch m.Policy {
		case OverwriteIfSourceExists:
			if err := d.copyTree(m.Source, m.Dest); err != nil {
				return err
			}
		case CreateDefaultIfAbsent:
			if err := d.writeDefault(m.Dest, m.Default); err != nil {
				return err
			}
		}
	}
	return nil
}

// removeStaleLinks deletes the known symlink destinations when they are
// links. Regular files and directories at those paths are left alone;
// the subsequent copy overwrites them normally.
func (d *Deployer) removeStaleLinks() error {
	for _, path := range d.staleLinks {
		info, err := os.Lstat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to inspect %s: %w", path, err)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			continue
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove stale symlink %s: %w", path, err)
		}
		d.logger.Debug("removed stale symlink", "path", path)
	}
	return nil
}

// copyTree recursively copies the contents of src into dst. A missing
// src skips the mapping. Per-file errors are logged and tolerated.
func (d *Deployer) copyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			d.logger.Debug("source absent, mapping skipped", "source", src)
			return nil
		}
		return fmt.Errorf("failed to read source %s: %w", src, err)
	}
	if !info.IsDir() {
		return d.copyFileLogged(src, dst)
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("failed to create destination %s: %w", dst, err)
	}

	return filepath.WalkDir(src, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			d.logger.Warn("skipping unreadable entry", "path", path, "err", err)
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if entry.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				d.logger.Warn("failed to create directory", "path", target, "err", err)
				return filepath.SkipDir
			}
			return nil
		}
		return d.copyFileLogged(path, target)
	})
}

// copyFileLogged copies one file, downgrading failure to a warning.
func (d *Deployer) copyFileLogged(src, dst string) error {
	if err := copyFile(src, dst); err != nil {
		d.logger.Warn("failed to copy file", "source", src, "dest", dst, "err", err)
	}
	return nil
}

// writeDefault writes payload to dst unless dst already exists.
func (d *Deployer) writeDefault(dst string, payload []byte) error {
	if _, err := os.Lstat(dst); err == nil {
		d.logger.Debug("destination exists, default not written", "path", dst)
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to inspect %s: %w", dst, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}
	if err := os.WriteFile(dst, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write default %s: %w", dst, err)
	}
	d.logger.Debug("default written", "path", dst)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
