// SPDX-License-Identifier: MPL-2.0

package pkgset

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"hyprforge/internal/execx"
)

// DefaultHelper is the AUR helper used when the config does not name one.
const DefaultHelper = "yay"

var (
	// ErrInstallFailed marks package manager failures so the CLI can
	// surface the matching help card.
	ErrInstallFailed = errors.New("package installation failed")
	// ErrBootstrapFailed marks a failed AUR helper source build.
	ErrBootstrapFailed = errors.New("AUR helper bootstrap failed")
)

// bootstrapScript builds the AUR helper from source in a throwaway
// directory. makepkg refuses to run as root, so the build commands are
// re-identified as the target user; the install half of `makepkg -si`
// elevates back through the NOPASSWD grant installed at run start.
// %[1]s is the helper name, %[2]s the target user.
const bootstrapScript = `set -e
builddir=$(mktemp -d)
trap 'rm -rf "$builddir"' EXIT
chown %[2]s "$builddir"
sudo -u %[2]s git clone https://aur.archlinux.org/%[1]s.git "$builddir/%[1]s"
cd "$builddir/%[1]s"
sudo -u %[2]s makepkg -si --noconfirm
`

// Installer drives pacman and the AUR helper.
type Installer struct {
	runner  execx.Runner
	scripts execx.ScriptRunner
	logger  *log.Logger
	helper  string
	lookup  func(string) bool
}

// NewInstaller creates an Installer. helper is the AUR helper binary
// name ("" for DefaultHelper).
func NewInstaller(runner execx.Runner, scripts execx.ScriptRunner, logger *log.Logger, helper string) *Installer {
	if helper == "" {
		helper = DefaultHelper
	}
	return &Installer{
		runner:  runner,
		scripts: scripts,
		logger:  logger,
		helper:  helper,
		lookup:  execx.LookPath,
	}
}

// Helper returns the AUR helper binary name in use.
func (in *Installer) Helper() string {
	return in.helper
}

// Upgrade refreshes package databases and applies the full system
// upgrade. Always the first mutating step of a run.
func (in *Installer) Upgrade(ctx context.Context) error {
	result := in.runner.Run(ctx, execx.CmdSpec{
		Name: "pacman",
		Args: []string{"-Syu", "--noconfirm"},
	})
	if err := execx.Check("pacman -Syu", result); err != nil {
		return fmt.Errorf("%w: %w", ErrInstallFailed, err)
	}
	return nil
}

// InstallRepo installs repository packages. --needed keeps reruns
// idempotent: up-to-date packages are skipped, not reinstalled.
func (in *Installer) InstallRepo(ctx context.Context, pkgs []string) error {
	if len(pkgs) == 0 {
		return nil
	}
	args := append([]string{"-S", "--needed", "--noconfirm"}, pkgs...)
	result := in.runner.Run(ctx, execx.CmdSpec{Name: "pacman", Args: args})
	if err := execx.Check("pacman -S", result); err != nil {
		return fmt.Errorf("%w: %w", ErrInstallFailed, err)
	}
	return nil
}

// InstallFallbacks installs the supplementary fallback packages. The
// caller runs this best-effort; a failure is swallowed upstream.
func (in *Installer) InstallFallbacks(ctx context.Context, pkgs []string) error {
	return in.InstallRepo(ctx, pkgs)
}

// EnsureHelper makes sure the AUR helper exists, bootstrapping it from
// source when absent. Bootstrap failure is fatal: the theming packages
// downstream come from the AUR.
func (in *Installer) EnsureHelper(ctx context.Context, user string) error {
	if in.lookup(in.helper) {
		in.logger.Debug("AUR helper present", "helper", in.helper)
		return nil
	}

	in.logger.Info("bootstrapping AUR helper from source", "helper", in.helper, "user", user)
	result := in.scripts.RunScript(ctx, execx.ScriptSpec{
		Script: fmt.Sprintf(bootstrapScript, in.helper, user),
	})
	if err := execx.Check("bootstrap "+in.helper, result); err != nil {
		return fmt.Errorf("%w: %w", ErrBootstrapFailed, err)
	}
	return nil
}

// InstallAUR installs community packages through the helper,
// re-identified as the target user because helpers refuse to run as
// root.
func (in *Installer) InstallAUR(ctx context.Context, user string, pkgs []string) error {
	if len(pkgs) == 0 {
		return nil
	}
	args := append([]string{"-S", "--needed", "--noconfirm"}, pkgs...)
	result := in.runner.Run(ctx, execx.CmdSpec{
		Name:   in.helper,
		Args:   args,
		AsUser: user,
	})
	if err := execx.Check(in.helper+" -S", result); err != nil {
		return fmt.Errorf("%w: %w", ErrInstallFailed, err)
	}
	return nil
}
