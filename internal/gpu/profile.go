// SPDX-License-Identifier: MPL-2.0

package gpu

import (
	"context"
	"strings"

	"hyprforge/internal/execx"
)

// Profile classifies the machine's display adapter. Exactly one profile
// is active per run.
type Profile int

const (
	// Generic is the fallback when no vendor keyword matches; the
	// distribution's default graphics stack is relied upon.
	Generic Profile = iota
	// Nvidia selects the open kernel module driver stack.
	Nvidia
	// AMD selects the Mesa/Vulkan RADV stack.
	AMD
	// Intel selects the Mesa/Vulkan Intel stack.
	Intel
)

// String returns the lowercase profile name used in logs, config
// overrides and the install receipt.
func (p Profile) String() string {
	switch p {
	case Nvidia:
		return "nvidia"
	case AMD:
		return "amd"
	case Intel:
		return "intel"
	default:
		return "generic"
	}
}

// ParseProfile converts a config override value into a Profile.
// Unknown values report ok=false.
func ParseProfile(s string) (Profile, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nvidia":
		return Nvidia, true
	case "amd":
		return AMD, true
	case "intel":
		return Intel, true
	case "generic":
		return Generic, true
	default:
		return Generic, false
	}
}

// Vendor keyword sets, matched case-insensitively against the hardware
// scan. The NVIDIA > AMD > INTEL priority is a policy choice carried
// over from the ordering the tool has always used; on hybrid machines
// only the first matching clause is honored.
var (
	nvidiaKeywords = []string{"nvidia", "geforce"}
	amdKeywords    = []string{"amd", "radeon", "advanced micro devices"}
	intelKeywords  = []string{"intel"}
)

// Detect classifies a hardware enumeration string. It is pure and never
// fails: no match yields Generic.
func Detect(scan string) Profile {
	s := strings.ToLower(scan)
	switch {
	case containsAny(s, nvidiaKeywords):
		return Nvidia
	case containsAny(s, amdKeywords):
		return AMD
	case containsAny(s, intelKeywords):
		return Intel
	default:
		return Generic
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// Scan runs the hardware enumeration command and returns the lines
// describing display adapters. An enumeration failure yields an empty
// scan (and therefore the Generic profile) rather than an error;
// provisioning must proceed on machines where lspci is unavailable.
func Scan(ctx context.Context, runner execx.Runner) string {
	result := runner.Run(ctx, execx.CmdSpec{Name: "lspci"})
	if !result.Success() {
		return ""
	}
	return FilterDisplayAdapters(result.Output)
}

// FilterDisplayAdapters reduces raw lspci output to the lines that
// describe display hardware.
func FilterDisplayAdapters(out string) string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		l := strings.ToLower(line)
		if strings.Contains(l, "vga") || strings.Contains(l, "3d") || strings.Contains(l, "display") {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
