// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

//go:build windows

package cleaner

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/sys/windows"
)

// isLockErr reports whether a delete failure looks like a sharing violation
// or permission problem worth escalating, as opposed to a fatal filesystem
// error.
func isLockErr(err error) bool {
	if errors.Is(err, os.ErrPermission) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case windows.ERROR_ACCESS_DENIED,
			windows.ERROR_SHARING_VIOLATION,
			windows.ERROR_LOCK_VIOLATION:
			return true
		}
	}
	return false
}
