// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package manifest

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "extensions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// backups returns the backup files next to the given manifest.
func backups(t *testing.T, path string) []string {
	t.Helper()
	matches, err := filepath.Glob(path + ".backup.*")
	require.NoError(t, err)
	return matches
}

func identifiers(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &records))
	var ids []string
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestSanitizeRemovesMarkedPreservingOrder(t *testing.T) {
	path := writeManifest(t, `[
		{"id": "a"},
		{"id": "b", "publisher": "Augment.vscode-augment"},
		{"id": "c"},
		{"id": "d", "publisher": "AUGMENT"},
		{"id": "e"}
	]`)

	res, err := Sanitize(path, Marked("augment"), Backup, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Removed)
	assert.FileExists(t, res.BackupPath)

	if diff := cmp.Diff([]string{"a", "c", "e"}, identifiers(t, path)); diff != "" {
		t.Errorf("kept records mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	path := writeManifest(t, `[{"id": "a"}, {"id": "augment.thing"}]`)

	first, err := Sanitize(path, Marked("augment"), Backup, io.Discard)
	require.NoError(t, err)
	require.Equal(t, 1, first.Removed)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	second, err := Sanitize(path, Marked("augment"), Backup, io.Discard)
	require.NoError(t, err)
	assert.Zero(t, second.Removed)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "second run must not mutate the manifest")
}

func TestSanitizeNothingRemovedLeavesNoBackup(t *testing.T) {
	path := writeManifest(t, `[{"id": "a"}, {"id": "b"}]`)

	res, err := Sanitize(path, Marked("augment"), Backup, io.Discard)
	require.NoError(t, err)
	assert.Zero(t, res.Removed)
	assert.Empty(t, backups(t, path))
}

func TestSanitizeAcceptsCommentsAndTrailingCommas(t *testing.T) {
	path := writeManifest(t, `[
		// installed by hand
		{"id": "a"},
		{"id": "augment.thing"},
	]`)

	res, err := Sanitize(path, Marked("augment"), Backup, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Removed)
}

func TestSanitizeBackupFailureAborts(t *testing.T) {
	original := `[{"id": "augment.thing"}]`
	path := writeManifest(t, original)

	failing := func(string) (string, error) {
		return "", errors.New("disk full")
	}
	_, err := Sanitize(path, Marked("augment"), failing, io.Discard)
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data), "manifest must not be mutated without a backup")
}

func TestSanitizeRejectsNonListManifest(t *testing.T) {
	original := `{"id": "augment.thing"}`
	path := writeManifest(t, original)

	_, err := Sanitize(path, Marked("augment"), Backup, io.Discard)
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
	assert.Empty(t, backups(t, path), "no backup residue for an untouched manifest")
}

func TestSanitizeOverwriteFailureKeepsBackup(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	original := `[{"id": "a"}, {"id": "augment.thing"}]`
	path := writeManifest(t, original)

	// The manifest turns read-only right after the backup, so the rewrite
	// fails past the point where the backup became the rollback point.
	var backupPath string
	lockingBackup := func(p string) (string, error) {
		bp, err := Backup(p)
		if err != nil {
			return "", err
		}
		backupPath = bp
		return bp, os.Chmod(p, 0o400)
	}

	_, err := Sanitize(path, Marked("augment"), lockingBackup, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), backupPath, "the error must point at the rollback copy")

	require.FileExists(t, backupPath)
	data, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, original, string(data), "the backup must hold the pre-rewrite content")
}

func TestSanitizeMissingManifestIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extensions.json")
	res, err := Sanitize(path, Marked("augment"), Backup, io.Discard)
	require.NoError(t, err)
	assert.Zero(t, res.Removed)
}

func TestSanitizeDirectoryIsNoop(t *testing.T) {
	dir := t.TempDir()
	res, err := Sanitize(dir, Marked("augment"), Backup, io.Discard)
	require.NoError(t, err)
	assert.Zero(t, res.Removed)
	assert.DirExists(t, dir)
}

func TestSanitizeScalarRecords(t *testing.T) {
	path := writeManifest(t, `["keep-me", "Augment.vscode-augment", "also-keep"]`)

	res, err := Sanitize(path, Marked("augment"), Backup, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Removed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var kept []string
	require.NoError(t, json.Unmarshal(data, &kept))
	assert.Equal(t, []string{"keep-me", "also-keep"}, kept)
}
