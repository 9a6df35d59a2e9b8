// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package ide

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("notepad")
	assert.Error(t, err)
}

func TestResolveIn(t *testing.T) {
	home := filepath.Join("/", "home", "dev")
	roaming := filepath.Join(home, ".config")

	tests := []struct {
		kind    Kind
		product string
		dotDir  string
	}{
		{VSCode, "Code", ".vscode"},
		{VSCodeInsiders, "Code - Insiders", ".vscode-insiders"},
		{Cursor, "Cursor", ".cursor"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			p := resolveIn(home, roaming, tt.kind)
			userDir := filepath.Join(roaming, tt.product, "User")
			assert.Equal(t, filepath.Join(userDir, "globalStorage"), p.GlobalStorage)
			assert.Equal(t, filepath.Join(userDir, "workspaceStorage"), p.WorkspaceStorage)
			assert.Equal(t, filepath.Join(userDir, "History"), p.History)
			assert.Equal(t, filepath.Join(home, tt.dotDir, "extensions"), p.ProfileExtensions)
			assert.Equal(t, filepath.Join(home, tt.dotDir, "extensions", "extensions.json"), p.ExtensionsManifest)
		})
	}
}
