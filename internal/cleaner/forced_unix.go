// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

//go:build !windows

package cleaner

import "os"

// forcedMethod is one registered forced-delete technique. Errors from run
// are deliberately ignored: the driver re-checks path existence instead,
// because these techniques routinely report success spuriously.
type forcedMethod struct {
	name string
	run  func(e *Engine, path string)
}

// Unix has no dedicated forced-delete utilities; the one technique beyond a
// plain unlink is stripping the permission bits first.
func forcedMethods() []forcedMethod {
	return []forcedMethod{
		{
			name: "chmod",
			run: func(e *Engine, path string) {
				_ = os.Chmod(path, 0o777)
				_ = e.remove(path)
			},
		},
	}
}
