// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"hyprforge/internal/config"
	"hyprforge/internal/deploy"
	"hyprforge/internal/execx"
	"hyprforge/internal/gpu"
	"hyprforge/internal/issue"
	"hyprforge/internal/phase"
	"hyprforge/internal/pkgset"
	"hyprforge/internal/privilege"
	"hyprforge/internal/state"
)

var installUser string

// installCmd runs the full phased provisioning.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Run the full phased provisioning",
	Long: `Provision this machine: validate credentials once, detect the GPU,
install the package set (repository and AUR), deploy the configuration
tree, write the GPU environment fragment, wire the theme symlinks and
enable services.

Must run as root. Safe to re-run: every step overwrites or skips.`,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installUser, "user", "", "target account to provision (defaults to target_user in config)")
}

func runInstall(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	if err := privilege.RequireRoot(); err != nil {
		printIssue(issue.NotRootId)
		return &ExitError{Code: 1, Err: err}
	}

	cfg, err := loadConfig()
	if err != nil {
		printIssue(issue.ConfigLoadFailedId)
		return &ExitError{Code: 1, Err: err}
	}

	username := installUser
	if username == "" {
		username = cfg.TargetUser
	}
	if username == "" {
		return &ExitError{Code: 1, Err: fmt.Errorf("no target user: pass --user or set target_user in config.cue")}
	}
	targetUser, err := user.Lookup(username)
	if err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("unknown user %s: %w", username, err)}
	}

	secret, err := promptSecret(username)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	ctx := cmd.Context()
	runner := execx.NewHostRunner()

	// Credential validation happens before any system mutation; a wrong
	// password exits here with the machine untouched.
	grant, err := privilege.NewEscalator(runner, logger).Acquire(ctx, username, secret)
	if err != nil {
		if errors.Is(err, privilege.ErrAuthentication) {
			printIssue(issue.AuthenticationFailedId)
		}
		return &ExitError{Code: 1, Err: err}
	}
	// The grant must not outlive the run on any exit path.
	defer grant.Release()

	if prev, ok, err := state.Load(state.DefaultReceiptPath); err != nil {
		logger.Warn("could not read previous receipt", "err", err)
	} else if ok {
		logger.Info("previous run found", "finished", prev.FinishedAt, "profile", prev.Profile)
	}

	profile := resolveProfile(ctx, cfg, runner, logger)

	plan, install, err := buildInstall(cfg, profile, runner, logger)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	tree := deploy.Tree{SourceDir: sourceDir(cfg), Home: targetUser.HomeDir}
	if !tree.SourceExists() {
		printIssue(issue.SourceTreeMissingId)
		return &ExitError{Code: 1, Err: fmt.Errorf("no configuration source tree under %s", tree.SourceDir)}
	}
	phases := buildPhases(installParams{
		cfg:      cfg,
		username: username,
		tree:     tree,
		profile:  profile,
		plan:     plan,
		install:  install,
		runner:   runner,
		logger:   logger,

		receiptPath: state.DefaultReceiptPath,
	})

	runErr := phase.NewRunner(newConsoleReporter(), logger).Run(ctx, phases)
	if runErr != nil {
		var stepErr *phase.StepError
		if errors.As(runErr, &stepErr) {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+stepErr.Detail())
		}
		if id := classifyInstallError(runErr); id != 0 {
			printIssue(id)
		}
		return &ExitError{Code: 1, Err: runErr}
	}
	return nil
}

// installParams bundles everything phase construction needs.
type installParams struct {
	cfg      *config.Config
	username string
	tree     deploy.Tree
	profile  gpu.Profile
	plan     pkgset.Plan
	install  *pkgset.Installer
	runner   execx.Runner
	logger   *log.Logger
	// receiptPath is where the run's receipt lands.
	receiptPath string
}

// resolveProfile honors a config override, otherwise scans hardware.
// Detection happens exactly once; the profile is immutable afterwards.
func resolveProfile(ctx context.Context, cfg *config.Config, runner execx.Runner, logger *log.Logger) gpu.Profile {
	if p, override, err := cfg.GPUOverride(); err == nil && override {
		logger.Info("GPU profile pinned by config", "profile", p)
		return p
	}
	profile := gpu.Detect(gpu.Scan(ctx, runner))
	logger.Info("GPU profile detected", "profile", profile)
	return profile
}

// buildInstall loads the package manifest and resolves the plan.
func buildInstall(cfg *config.Config, profile gpu.Profile, runner execx.Runner, logger *log.Logger) (pkgset.Plan, *pkgset.Installer, error) {
	manifest, err := pkgset.LoadManifest()
	if err != nil {
		return pkgset.Plan{}, nil, err
	}
	plan := pkgset.Resolve(manifest, profile)
	install := pkgset.NewInstaller(runner, execx.NewShellRunner(), logger, cfg.AURHelper)
	return plan, install, nil
}

// sourceDir resolves the configuration source tree root.
func sourceDir(cfg *config.Config) string {
	if cfg.SourceDir != "" {
		return cfg.SourceDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// promptSecret asks for the target account's password without echo.
func promptSecret(username string) (string, error) {
	var secret string
	input := huh.NewInput().
		Title(fmt.Sprintf("Password for %s", username)).
		Description("Used once to validate credentials; never stored or logged.").
		EchoMode(huh.EchoModePassword).
		Value(&secret)
	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("password prompt aborted: %w", err)
	}
	return secret, nil
}

// printIssue renders a known issue's help card to stderr.
func printIssue(id issue.Id) {
	is := issue.Lookup(id)
	if is == nil {
		return
	}
	card, err := is.Render("dark")
	if err != nil {
		fmt.Fprintln(os.Stderr, string(is.MarkdownMsg()))
		return
	}
	fmt.Fprintln(os.Stderr, card)
}
