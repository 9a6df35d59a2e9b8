// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

// Package cleaner removes an editor extension's on-disk footprint: state
// databases, local history, extension directories, and manifest records.
//
// The deletion engine escalates through increasingly invasive strategies
// when a file is held open by another process. Everything runs synchronously
// on the calling goroutine; this is a rare, interactive maintenance action
// and the waits between retries are intentional.
package cleaner

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/UntaDotMy/AugmentCode-Free/internal/fileutil"
	"github.com/UntaDotMy/AugmentCode-Free/internal/holder"
	"github.com/UntaDotMy/AugmentCode-Free/internal/ide"
	"github.com/UntaDotMy/AugmentCode-Free/internal/manifest"
	"github.com/UntaDotMy/AugmentCode-Free/internal/ux"
)

// Waits are the pauses between escalation rungs. They block the calling
// goroutine for their full duration.
type Waits struct {
	// Retry precedes the first re-attempt after a failed direct delete.
	Retry time.Duration
	// AfterKill gives the OS time to reap terminated holders and release
	// their handles.
	AfterKill time.Duration
	// Final precedes the very last attempt.
	Final time.Duration
}

func DefaultWaits() Waits {
	return Waits{
		Retry:     1 * time.Second,
		AfterKill: 2 * time.Second,
		Final:     5 * time.Second,
	}
}

// Config carries the constants of a cleanup run. Nothing here is read from
// process-wide state so tests can substitute short waits and other markers.
type Config struct {
	// TargetFiles are the state-database filenames swept from storage
	// directories.
	TargetFiles []string
	// Marker identifies the records and extension directories to purge, by
	// case-insensitive substring match.
	Marker string
	Waits  Waits
}

func DefaultConfig() Config {
	return Config{
		TargetFiles: []string{"state.vscdb", "state.vscdb.backup"},
		Marker:      "augment",
		Waits:       DefaultWaits(),
	}
}

// Engine is the escalating deletion engine. A single Engine supports one
// cleanup run at a time.
type Engine struct {
	cfg Config
	w   io.Writer

	// Injection points for tests. Production engines always use the real
	// filesystem and the holder package.
	remove      func(string) error
	findHolders func(string) []holder.Process
	terminate   func(int) bool
	forced      []forcedMethod
	backup      manifest.BackupFunc
}

func New(cfg Config, w io.Writer) *Engine {
	if cfg.Waits == (Waits{}) {
		cfg.Waits = DefaultWaits()
	}
	return &Engine{
		cfg:         cfg,
		w:           w,
		remove:      os.Remove,
		findHolders: holder.FindHolders,
		terminate:   holder.Terminate,
		forced:      forcedMethods(),
		backup:      manifest.Backup,
	}
}

// Tally counts what one cleanup run removed, per zone.
type Tally struct {
	GlobalStorage    int
	WorkspaceStorage int
	// Workspaces is how many workspace directories had at least one
	// successful deletion.
	Workspaces int
	History    int
	Profile    int
}

func (t Tally) Total() int {
	return t.GlobalStorage + t.WorkspaceStorage + t.History + t.Profile
}

// CleanIDE sweeps every zone of the given editor profile. Zones are
// isolated: a failure in one never aborts the others, so the returned tally
// always reflects a full pass.
func (e *Engine) CleanIDE(p ide.Paths, escalate bool) Tally {
	var t Tally

	ux.Finfof(e.w, "cleaning globalStorage\n")
	t.GlobalStorage = e.CleanDirectory(p.GlobalStorage, e.cfg.TargetFiles, escalate)

	ux.Finfof(e.w, "cleaning workspaceStorage\n")
	t.WorkspaceStorage, t.Workspaces = e.CleanWorkspaces(p.WorkspaceStorage, e.cfg.TargetFiles, escalate)

	if fileutil.IsDir(p.History) {
		ux.Finfof(e.w, "removing history folder %s\n", p.History)
		if e.RemoveTree(p.History, escalate) {
			t.History = 1
		} else {
			ux.Fwarningf(e.w, "history folder could not be removed\n")
		}
	}

	t.Profile = e.cleanProfile(p, escalate)
	return t
}

// cleanProfile sanitizes the extensions manifest and removes marker-matched
// extension directories. The count covers both.
func (e *Engine) cleanProfile(p ide.Paths, escalate bool) int {
	count := 0

	res, err := manifest.Sanitize(p.ExtensionsManifest, manifest.Marked(e.cfg.Marker), e.backup, e.w)
	if err != nil {
		ux.Fwarningf(e.w, "manifest not sanitized: %v\n", err)
	} else if res.Removed > 0 {
		count++
	}

	if !fileutil.IsDir(p.ProfileExtensions) {
		return count
	}
	entries, err := os.ReadDir(p.ProfileExtensions)
	if err != nil {
		ux.Ferrorf(e.w, "cannot list %s: %v\n", p.ProfileExtensions, err)
		return count
	}
	for _, entry := range entries {
		if !entry.IsDir() || !strings.Contains(strings.ToLower(entry.Name()), strings.ToLower(e.cfg.Marker)) {
			continue
		}
		dir := filepath.Join(p.ProfileExtensions, entry.Name())
		ux.Finfof(e.w, "removing extension %s\n", entry.Name())
		if e.RemoveTree(dir, escalate) {
			count++
		} else {
			ux.Fwarningf(e.w, "extension %s could not be removed\n", entry.Name())
		}
	}
	return count
}
