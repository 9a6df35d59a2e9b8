// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

//go:build windows

package cleaner

import (
	"fmt"
	"os/exec"
	"strings"
)

// forcedMethod is one registered forced-delete technique. Errors from run
// are deliberately ignored: the driver re-checks path existence instead,
// because these utilities routinely exit zero while the file survives.
type forcedMethod struct {
	name string
	run  func(e *Engine, path string)
}

// The ladder mirrors what an administrator would try by hand, in order of
// increasing aggressiveness: del, PowerShell Remove-Item, then clearing the
// read-only/system/hidden attributes before another del.
func forcedMethods() []forcedMethod {
	return []forcedMethod{
		{
			name: "del",
			run: func(_ *Engine, path string) {
				_ = exec.Command("cmd", "/C", "del", "/F", "/Q", path).Run()
			},
		},
		{
			name: "powershell Remove-Item",
			run: func(_ *Engine, path string) {
				quoted := strings.ReplaceAll(path, "'", "''")
				script := fmt.Sprintf(
					"Remove-Item -LiteralPath '%s' -Force -ErrorAction SilentlyContinue", quoted)
				_ = exec.Command("powershell", "-NoProfile", "-Command", script).Run()
			},
		},
		{
			name: "attrib+del",
			run: func(_ *Engine, path string) {
				_ = exec.Command("cmd", "/C", "attrib", "-R", "-S", "-H", path).Run()
				_ = exec.Command("cmd", "/C", "del", "/F", "/Q", path).Run()
			},
		},
	}
}
