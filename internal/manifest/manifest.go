// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

// Package manifest removes marker-matched records from an editor's
// extensions.json while preserving the order of everything it keeps.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tailscale/hujson"

	"github.com/UntaDotMy/AugmentCode-Free/internal/cli/usererr"
	"github.com/UntaDotMy/AugmentCode-Free/internal/fileutil"
	"github.com/UntaDotMy/AugmentCode-Free/internal/ux"
)

// BackupFunc creates a pre-mutation copy of path and returns where it was
// written. Sanitize never mutates a manifest it could not back up.
type BackupFunc func(path string) (string, error)

// Backup is the default BackupFunc. The timestamp suffix keeps repeated runs
// from clobbering an earlier rollback point.
func Backup(path string) (string, error) {
	backupPath := fmt.Sprintf("%s.backup.%d", path, time.Now().Unix())
	if err := fileutil.CopyFile(path, backupPath); err != nil {
		return "", errors.WithStack(err)
	}
	return backupPath, nil
}

// Marked builds the removal predicate: a case-insensitive substring match of
// marker against the serialized form of a record.
func Marked(marker string) func(record []byte) bool {
	marker = strings.ToLower(marker)
	return func(record []byte) bool {
		return strings.Contains(strings.ToLower(string(record)), marker)
	}
}

type Result struct {
	Removed    int
	BackupPath string
}

// Sanitize drops every record matched by marked from the manifest at path.
// The manifest is only rewritten when at least one record matched; a backup
// that turned out to be unnecessary is removed again. A manifest that does
// not parse as a list is reported as an error and left untouched.
func Sanitize(path string, marked func([]byte) bool, backup BackupFunc, w io.Writer) (Result, error) {
	if !fileutil.IsFile(path) {
		// Missing, or not a regular file. Nothing to sanitize.
		return Result{}, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, errors.WithStack(err)
	}

	backupPath, err := backup(path)
	if err != nil {
		return Result{}, usererr.WithUserMessage(err,
			"unable to back up %s, leaving it untouched", path)
	}

	// The backup was created speculatively. Until the rewrite below starts,
	// nothing has changed and the backup is only litter.
	mutating := false
	defer func() {
		if !mutating {
			_ = os.Remove(backupPath)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, errors.WithStack(err)
	}

	// Editor manifests may carry comments and trailing commas.
	std, err := hujson.Standardize(data)
	if err != nil {
		return Result{}, usererr.WithUserMessage(err, "%s is not valid JSON", path)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(std, &records); err != nil {
		return Result{}, usererr.WithUserMessage(err, "%s is not a list of records", path)
	}

	kept := lo.Filter(records, func(r json.RawMessage, _ int) bool {
		return !marked(r)
	})
	removed := len(records) - len(kept)
	if removed == 0 {
		ux.Finfof(w, "no matching records in %s\n", path)
		return Result{}, nil
	}
	if kept == nil {
		kept = []json.RawMessage{}
	}

	out, err := json.MarshalIndent(kept, "", "  ")
	if err != nil {
		return Result{}, errors.WithStack(err)
	}

	// From here on the backup is the rollback point and must survive even if
	// the rewrite fails halfway.
	mutating = true
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return Result{}, usererr.WithUserMessage(err,
			"failed to rewrite %s, original preserved at %s", path, backupPath)
	}

	ux.Fsuccessf(w, "removed %d record(s) from %s (backup: %s)\n", removed, path, backupPath)
	return Result{Removed: removed, BackupPath: backupPath}, nil
}
