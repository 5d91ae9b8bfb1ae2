// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a well-known failure class.
type Id int

const (
	// NotRootId means the tool was invoked without elevated privilege.
	NotRootId Id = iota + 1
	// AuthenticationFailedId means the supplied account secret did not validate.
	AuthenticationFailedId
	// SourceTreeMissingId means the configuration source tree is absent.
	SourceTreeMissingId
	// PackageInstallFailedId means the package manager reported a failure.
	PackageInstallFailedId
	// AurBootstrapFailedId means building the AUR helper from source failed.
	AurBootstrapFailedId
	// ConfigLoadFailedId means the tool's own config file could not be loaded.
	ConfigLoadFailedId
)

// MarkdownMsg is markdown text rendered into a help card.
type MarkdownMsg string

// HttpLink is a URL shown in the "See also" section of a card.
type HttpLink string

// Issue is a well-known failure class with operator-facing help.
type Issue struct {
	id       Id
	mdMsg    MarkdownMsg
	extLinks []HttpLink
}

// Id returns the issue identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw markdown help text.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// ExtLinks returns external links that might be useful for the user.
func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the help card markdown with the given glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.extLinks {
			extraMd += "- " + string(link) + "\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	notRootIssue = &Issue{
		id: NotRootId,
		mdMsg: `
# Elevated privilege required

hyprforge installs system packages and writes under /etc, so the
install command must run as root.

## Things you can try
~~~
$ sudo hyprforge install --user <your-account>
~~~`,
	}

	authenticationFailedIssue = &Issue{
		id: AuthenticationFailedId,
		mdMsg: `
# Credential validation failed

The password you entered did not validate against the target account.
Nothing on the system was changed.

## Things you can try
- Re-run the install and retype the password
- Confirm the account named by ` + "`--user`" + ` (or ` + "`target_user`" + ` in the
  config file) is the account whose password you are entering`,
	}

	sourceTreeMissingIssue = &Issue{
		id: SourceTreeMissingId,
		mdMsg: `
# Configuration source tree not found

The deploy step copies configs out of a source tree with conventional
subdirectories (hypr/, waybar/, dunst/, wal/templates/, wallpapers/),
and that tree is missing.

## Things you can try
- Run the install from a checkout of your dotfiles repository
- Point ` + "`source_dir`" + ` in config.cue at the tree explicitly`,
	}

	packageInstallFailedIssue = &Issue{
		id: PackageInstallFailedId,
		mdMsg: `
# Package installation failed

pacman reported a failure. The captured output above has the details;
the usual suspects are stale mirrors, partial upgrades and keyring rot.

## Things you can try
~~~
$ sudo pacman -Sy archlinux-keyring && sudo pacman -Syu
~~~
then re-run the install. Completed phases are skipped-or-overwritten,
never repeated destructively.`,
		extLinks: []HttpLink{
			"https://wiki.archlinux.org/title/Pacman",
		},
	}

	aurBootstrapFailedIssue = &Issue{
		id: AurBootstrapFailedId,
		mdMsg: `
# AUR helper bootstrap failed

No AUR helper was found, and building one from source (clone + makepkg)
failed. This is the one step with an external build dependency, so it
is the most failure-prone. The theming packages come from the AUR, so
the run cannot continue without it.

## Things you can try
- Check that ` + "`base-devel`" + ` and ` + "`git`" + ` installed in the earlier phases
- Build the helper by hand, then re-run the install:
~~~
$ git clone https://aur.archlinux.org/yay.git && cd yay && makepkg -si
~~~`,
		extLinks: []HttpLink{
			"https://wiki.archlinux.org/title/AUR_helpers",
		},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

Your config.cue contains syntax errors or values the schema rejects.

## Things you can try
- Check the CUE syntax (quotes, braces)
- Compare against ` + "`hyprforge config show`" + ` output on a clean machine
- Delete the file to fall back to defaults`,
	}

	issues = map[Id]*Issue{
		NotRootId:              notRootIssue,
		AuthenticationFailedId: authenticationFailedIssue,
		SourceTreeMissingId:    sourceTreeMissingIssue,
		PackageInstallFailedId: packageInstallFailedIssue,
		AurBootstrapFailedId:   aurBootstrapFailedIssue,
		ConfigLoadFailedId:     configLoadFailedIssue,
	}
)

// Lookup returns the Issue for an Id, or nil when the Id is unknown.
func Lookup(id Id) *Issue {
	return issues[id]
}

// Ids returns all registered issue ids in ascending order.
func Ids() []Id {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	return ids
}
