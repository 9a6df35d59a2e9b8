// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package main

import (
	"github.com/UntaDotMy/AugmentCode-Free/internal/cli"
)

func main() {
	cli.Main()
}
