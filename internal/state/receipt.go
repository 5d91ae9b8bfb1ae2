// SPDX-License-Identifier: MPL-2.0

// Package state persists the install receipt: a small record of the
// last successful run. It is observability only; idempotency never
// depends on it.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

// DefaultReceiptPath is where the receipt of the last successful run
// lives.
const DefaultReceiptPath = "/var/lib/hyprforge/receipt.toml"

// Receipt records one completed provisioning run.
type Receipt struct {
	// RunID uniquely identifies the run.
	RunID string `toml:"run_id"`
	// Version is the tool version that performed the run.
	Version string `toml:"version"`
	// Profile is the GPU profile that was active.
	Profile string `toml:"profile"`
	// TargetUser is the provisioned account.
	TargetUser string `toml:"target_user"`
	// Packages is the number of packages handed to the package manager.
	Packages int `toml:"packages"`
	// FinishedAt is when the run completed.
	FinishedAt time.Time `toml:"finished_at"`
}

// New creates a receipt for the current run with a fresh run id.
func New(version, profile, targetUser string, packages int) Receipt {
	return Receipt{
		RunID:      uuid.NewString(),
		Version:    version,
		Profile:    profile,
		TargetUser: targetUser,
		Packages:   packages,
		FinishedAt: time.Now().UTC(),
	}
}

// Write persists the receipt, creating the parent directory if needed.
func Write(path string, r Receipt) error {
	data, err := toml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode receipt: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create receipt directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write receipt: %w", err)
	}
	return nil
}

// Load reads a previous receipt. A missing file reports ok=false with
// no error: first runs are normal.
func Load(path string) (Receipt, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Receipt{}, false, nil
		}
		return Receipt{}, false, fmt.Errorf("failed to read receipt: %w", err)
	}
	var r Receipt
	if err := toml.Unmarshal(data, &r); err != nil {
		return Receipt{}, false, fmt.Errorf("failed to parse receipt %s: %w", path, err)
	}
	return r, true, nil
}
