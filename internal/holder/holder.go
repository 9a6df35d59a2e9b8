// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

// Package holder finds and terminates processes that keep a file open.
//
// Discovery is inherently racy: a reported process may exit, or its PID may
// be reused, between discovery and any action taken on it. The OS offers no
// stronger guarantee, so callers must treat results as a point-in-time hint.
package holder

import (
	"os"

	"github.com/UntaDotMy/AugmentCode-Free/internal/debug"
)

// Process identifies a process that held a file open at discovery time.
// Executable is best-effort and may be empty.
type Process struct {
	PID        int
	Executable string
}

// Terminate requests forceful termination of the given process and returns
// immediately without waiting for the kill to take effect. The return value
// is advisory: a false result does not preclude the process exiting anyway,
// and callers should retry their operation regardless.
func Terminate(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		debug.Log("terminate: pid %d not found: %v", pid, err)
		return false
	}
	if err := proc.Kill(); err != nil {
		debug.Log("terminate: kill pid %d: %v", pid, err)
		return false
	}
	return true
}
