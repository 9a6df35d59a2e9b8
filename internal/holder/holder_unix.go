// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

//go:build !windows

package holder

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/UntaDotMy/AugmentCode-Free/internal/cmdutil"
	"github.com/UntaDotMy/AugmentCode-Free/internal/debug"
)

// FindHolders returns the processes that have path open, discovered via
// lsof. An empty result means "unknown", not "no holders": lsof may be
// missing from PATH, the path may not exist, or the query may fail. None of
// those cases produce an error.
func FindHolders(path string) []Process {
	if !cmdutil.Exists("lsof") {
		debug.Log("findholders: lsof not available, skipping discovery for %s", path)
		return nil
	}

	// lsof exits nonzero when nothing holds the file. Output is still
	// authoritative, so only the parsed PIDs matter.
	out, err := exec.Command("lsof", "-t", "--", path).Output()
	if err != nil && len(out) == 0 {
		return nil
	}

	var holders []Process
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		pid, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			continue
		}
		holders = append(holders, Process{PID: pid, Executable: executable(pid)})
	}
	return holders
}

// executable resolves the process image best-effort. Works on Linux via
// procfs; elsewhere the name is left empty.
func executable(pid int) string {
	exe, err := os.Readlink(fmt.Sprintf("/proc/%d/exe", pid))
	if err != nil {
		return ""
	}
	return exe
}
