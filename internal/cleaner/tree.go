// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package cleaner

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/UntaDotMy/AugmentCode-Free/internal/fileutil"
	"github.com/UntaDotMy/AugmentCode-Free/internal/ux"
)

// CleanDirectory deletes each of the target filenames present directly
// under root and returns how many were actually removed. A root that does
// not exist means there is nothing to clean.
func (e *Engine) CleanDirectory(root string, targets []string, escalate bool) int {
	if !fileutil.IsDir(root) {
		ux.Fwarningf(e.w, "%s does not exist, nothing to clean\n", root)
		return 0
	}

	deleted := 0
	for _, name := range targets {
		out := e.Delete(filepath.Join(root, name), escalate)
		switch {
		case out.Deleted:
			deleted++
		case out.Err != nil:
			ux.Fwarningf(e.w, "could not delete %s: %v\n", out.Path, out.Err)
			if out.Hint != "" {
				ux.Finfof(e.w, "%s\n", out.Hint)
			}
		}
	}
	return deleted
}

// CleanWorkspaces applies CleanDirectory to every immediate child directory
// of root, each child representing one workspace. It returns the total
// number of deleted files and the number of workspaces that had at least
// one deletion.
//
// An unreadable root aborts the whole sweep with a zero result: a partial
// workspace sweep could be mistaken for a complete one.
func (e *Engine) CleanWorkspaces(root string, targets []string, escalate bool) (deleted, workspaces int) {
	if !fileutil.IsDir(root) {
		ux.Fwarningf(e.w, "%s does not exist, nothing to clean\n", root)
		return 0, 0
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		ux.Ferrorf(e.w, "cannot list %s: %v\n", root, err)
		return 0, 0
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		n := e.CleanDirectory(filepath.Join(root, entry.Name()), targets, escalate)
		if n > 0 {
			deleted += n
			workspaces++
		}
	}
	ux.Finfof(e.w, "processed %d workspace(s), deleted %d file(s)\n", workspaces, deleted)
	return deleted, workspaces
}

// RemoveTree recursively deletes the directory at path.
//
// Without escalation a failure is reported as false and the tree is left
// for the caller to retry with escalation allowed. With escalation the
// removal is a best-effort sweep that runs locked files through the
// deletion ladder and reports true unconditionally; callers needing a hard
// guarantee must verify removal themselves.
func (e *Engine) RemoveTree(path string, escalate bool) bool {
	if !fileutil.Exists(path) {
		// Already in the desired state.
		return true
	}

	if !escalate {
		if err := os.RemoveAll(path); err != nil {
			ux.Fwarningf(e.w, "could not remove %s: %v\n", path, err)
			return false
		}
		return true
	}

	if err := os.RemoveAll(path); err == nil {
		return true
	}
	// Something in the tree is locked. Escalate file by file, ignoring
	// per-entry failures, then clear whatever is left.
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		_ = e.Delete(p, true)
		return nil
	})
	_ = os.RemoveAll(path)
	return true
}
