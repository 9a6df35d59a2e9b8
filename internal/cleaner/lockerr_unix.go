// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

//go:build !windows

package cleaner

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// isLockErr reports whether a delete failure looks like a lock or
// permission problem worth escalating, as opposed to a fatal filesystem
// error.
func isLockErr(err error) bool {
	if errors.Is(err, os.ErrPermission) {
		return true
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		switch errno {
		case unix.EACCES, unix.EPERM, unix.EBUSY, unix.ETXTBSY:
			return true
		}
	}
	return false
}
