// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package cmdutil

import "os/exec"

// Exists indicates if the command exists
func Exists(command string) bool {
	_, err := exec.LookPath(command)
	return err == nil
}
