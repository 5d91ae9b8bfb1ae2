// SPDX-License-Identifier: MPL-2.0

package privilege

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"

	"hyprforge/internal/execx"
)

// DefaultGrantPath is the sudoers drop-in written for the duration of
// the run. The numeric prefix keeps it ordered after distribution
// defaults.
const DefaultGrantPath = "/etc/sudoers.d/90-hyprforge-setup"

// ErrAuthentication is returned when the supplied secret does not
// validate against the target account.
var ErrAuthentication = errors.New("authentication failed")

// ErrNotRoot is returned when the process lacks elevated privilege.
var ErrNotRoot = errors.New("elevated privilege required")

type (
	// Escalator validates credentials and installs the temporary
	// elevation grant.
	Escalator struct {
		runner    execx.Runner
		logger    *log.Logger
		grantPath string
	}

	// Grant is the cached elevation for one run. Release must be called
	// on every exit path; it is idempotent.
	Grant struct {
		path     string
		username string
		once     sync.Once
		logger   *log.Logger
	}
)

// NewEscalator creates an Escalator using the given command runner.
func NewEscalator(runner execx.Runner, logger *log.Logger) *Escalator {
	return &Escalator{runner: runner, logger: logger, grantPath: DefaultGrantPath}
}

// WithGrantPath overrides the sudoers drop-in location. Tests point it
// into a temp directory.
func (e *Escalator) WithGrantPath(path string) *Escalator {
	e.grantPath = path
	return e
}

// RequireRoot verifies the process runs with euid 0. Non-elevated
// invocation is a fatal precondition failure.
func RequireRoot() error {
	if unix.Geteuid() != 0 {
		return ErrNotRoot
	}
	return nil
}

// Acquire validates secret against the target account and, on success,
// installs the temporary elevation grant. The secret is fed to the
// validation command over stdin and never logged or echoed.
//
// Validation runs `su <username> -c true`: it proves the secret without
// granting a shell, and it works from a root parent without touching
// the sudo timestamp state of the target user's sessions.
func (e *Escalator) Acquire(ctx context.Context, username, secret string) (*Grant, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("no target user given")
	}

	result := e.runner.Run(ctx, execx.CmdSpec{
		Name:  "su",
		Args:  []string{username, "-c", "true"},
		Stdin: strings.NewReader(secret + "\n"),
	})
	if !result.Success() {
		return nil, fmt.Errorf("%w for user %s", ErrAuthentication, username)
	}
	e.logger.Info("credentials validated", "user", username)

	if err := e.writeGrant(username); err != nil {
		return nil, err
	}
	e.logger.Debug("elevation grant installed", "path", e.grantPath)

	return &Grant{path: e.grantPath, username: username, logger: e.logger}, nil
}

// writeGrant writes the passwordless-elevation drop-in with the
// restrictive permissions sudo demands of sudoers files.
func (e *Escalator) writeGrant(username string) error {
	content := fmt.Sprintf("%s ALL=(ALL) NOPASSWD: ALL\n", username)
	if err := os.WriteFile(e.grantPath, []byte(content), 0o440); err != nil {
		return fmt.Errorf("failed to write elevation grant %s: %w", e.grantPath, err)
	}
	return nil
}

// Release removes the elevation grant. Safe to call multiple times and
// from deferred paths; a missing file is not an error.
func (g *Grant) Release() {
	g.once.Do(func() {
		if err := os.Remove(g.path); err != nil && !os.IsNotExist(err) {
			g.logger.Error("failed to remove elevation grant; remove it manually", "path", g.path, "err", err)
			return
		}
		g.logger.Debug("elevation grant removed", "path", g.path)
	})
}

// Username returns the account the grant was issued for.
func (g *Grant) Username() string {
	return g.username
}

// Path returns the sudoers drop-in location.
func (g *Grant) Path() string {
	return g.path
}
