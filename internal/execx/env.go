// SPDX-License-Identifier: MPL-2.0

package execx

import "os"

// environWith returns the inherited environment with extra KEY=VALUE
// pairs appended. Later entries win for duplicate keys, which matches
// what both os/exec and the shell interpreter do.
func environWith(extra []string) []string {
	env := os.Environ()
	return append(env, extra...)
}
