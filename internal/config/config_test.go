// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"hyprforge/internal/gpu"
)

// Tests in this file mutate the package-level overrides and therefore
// must not run in parallel with each other.

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want none", path)
	}
	if cfg.GPU != "auto" {
		t.Errorf("GPU = %q, want auto default", cfg.GPU)
	}
	if cfg.AURHelper != "yay" {
		t.Errorf("AURHelper = %q, want yay default", cfg.AURHelper)
	}
	if cfg.TargetUser != "" {
		t.Errorf("TargetUser = %q, want unset", cfg.TargetUser)
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	wantPath := writeConfig(t, dir, `
target_user: "alice"
source_dir:  "/home/alice/dotfiles"
gpu:         "nvidia"
aur_helper:  "paru"
ui: verbose: true
`)

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if path != wantPath {
		t.Errorf("resolved path = %q, want %q", path, wantPath)
	}
	if cfg.TargetUser != "alice" || cfg.SourceDir != "/home/alice/dotfiles" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.AURHelper != "paru" {
		t.Errorf("AURHelper = %q, want paru", cfg.AURHelper)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true")
	}

	profile, override, err := cfg.GPUOverride()
	if err != nil || !override || profile != gpu.Nvidia {
		t.Errorf("GPUOverride() = (%v, %v, %v), want (nvidia, true, nil)", profile, override, err)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	writeConfig(t, dir, `target_user: "alice"`)

	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.TargetUser != "alice" {
		t.Errorf("TargetUser = %q, want alice", cfg.TargetUser)
	}
	if cfg.GPU != "auto" || cfg.AURHelper != "yay" {
		t.Errorf("defaults lost: gpu=%q helper=%q", cfg.GPU, cfg.AURHelper)
	}
}

func TestLoadRejectsInvalidGPU(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	// "voodoo" violates the schema's gpu disjunction.
	writeConfig(t, dir, `gpu: "voodoo"`)

	if _, _, err := Load(); err == nil {
		t.Fatal("Load() = nil for an invalid gpu value, want error")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	writeConfig(t, dir, `target_userr: "alice"`)

	if _, _, err := Load(); err == nil {
		t.Fatal("Load() = nil for an unknown field, want schema rejection")
	}
}

func TestLoadRejectsBadSyntax(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	writeConfig(t, dir, `target_user: "unterminated`)

	if _, _, err := Load(); err == nil {
		t.Fatal("Load() = nil for unparseable CUE, want error")
	}
}

func TestLoadExplicitPathMissing(t *testing.T) {
	SetConfigFilePathOverride(filepath.Join(t.TempDir(), "nope.cue"))
	t.Cleanup(Reset)

	if _, _, err := Load(); err == nil {
		t.Fatal("Load() = nil for a missing --config path, want error")
	}
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `target_user: "bob"`)
	SetConfigFilePathOverride(path)
	t.Cleanup(Reset)

	cfg, resolved, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.TargetUser != "bob" {
		t.Errorf("TargetUser = %q, want bob", cfg.TargetUser)
	}
}

func TestGPUOverrideAuto(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"auto", ""} {
		cfg := &Config{GPU: value}
		_, override, err := cfg.GPUOverride()
		if err != nil || override {
			t.Errorf("GPUOverride(%q) = (%v, %v), want no override", value, override, err)
		}
	}
}
