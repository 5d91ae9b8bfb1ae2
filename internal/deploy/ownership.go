// SPDX-License-Identifier: MPL-2.0

package deploy

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"golang.org/x/sys/unix"
)

// Owner identifies the target account for the ownership fix.
type Owner struct {
	UID int
	GID int
}

// LookupOwner resolves a username to its numeric ids.
func LookupOwner(username string) (Owner, error) {
	u, err := user.Lookup(username)
	if err != nil {
		return Owner{}, fmt.Errorf("failed to look up user %s: %w", username, err)
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return Owner{}, fmt.Errorf("non-numeric uid for %s: %w", username, err)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return Owner{}, fmt.Errorf("non-numeric gid for %s: %w", username, err)
	}
	return Owner{UID: uid, GID: gid}, nil
}

// ChownTree recursively re-owns root to the target account. Lchown is
// used so the theme symlinks themselves change owner rather than
// whatever they currently point at (the targets may not exist yet).
// Runs as the final provisioning step, after every earlier phase has
// finished writing as root.
func ChownTree(root string, owner Owner) error {
	if _, err := os.Lstat(root); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(root, func(path string, _ os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := unix.Lchown(path, owner.UID, owner.GID); err != nil {
			return fmt.Errorf("failed to chown %s: %w", path, err)
		}
		return nil
	})
}
