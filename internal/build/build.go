// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package build

// Variables in this file are set via ldflags.
var (
	IsDev      = Version == "0.0.0-dev"
	Version    = "0.0.0-dev"
	Commit     = "none"
	CommitDate = "unknown"
)
