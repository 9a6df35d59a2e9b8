// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

// Package ide resolves where each supported editor keeps the state the
// cleaner operates on. Paths are resolved optimistically: a directory that
// does not exist simply means there is nothing to clean in that zone.
package ide

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/UntaDotMy/AugmentCode-Free/internal/cli/usererr"
)

type Kind string

const (
	VSCode         Kind = "vscode"
	VSCodeInsiders Kind = "vscode-insiders"
	Cursor         Kind = "cursor"
)

func Kinds() []Kind {
	return []Kind{VSCode, VSCodeInsiders, Cursor}
}

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case VSCode, VSCodeInsiders, Cursor:
		return Kind(s), nil
	}
	return "", usererr.New(
		"unknown IDE %q (supported: vscode, vscode-insiders, cursor)", s)
}

// Paths holds the per-editor locations the cleaner sweeps. Any field may
// point at a directory or file that does not exist.
type Paths struct {
	// GlobalStorage is the directory holding the editor-wide state database.
	GlobalStorage string
	// WorkspaceStorage contains one subdirectory per workspace, each with
	// its own state database.
	WorkspaceStorage string
	// History is the local-history folder.
	History string
	// ProfileExtensions is the installed-extensions directory under the
	// user's profile dot-directory.
	ProfileExtensions string
	// ExtensionsManifest is the extensions.json file listing installed
	// extensions.
	ExtensionsManifest string
}

// product is the application-support directory name used by the editor.
func (k Kind) product() string {
	switch k {
	case VSCodeInsiders:
		return "Code - Insiders"
	case Cursor:
		return "Cursor"
	default:
		return "Code"
	}
}

// dotDir is the editor's extensions dot-directory under $HOME.
func (k Kind) dotDir() string {
	switch k {
	case VSCodeInsiders:
		return ".vscode-insiders"
	case Cursor:
		return ".cursor"
	default:
		return ".vscode"
	}
}

func Resolve(k Kind) (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, usererr.WithUserMessage(err, "unable to determine home directory")
	}
	return resolveIn(home, roamingDir(home), k), nil
}

func resolveIn(home, roaming string, k Kind) Paths {
	userDir := filepath.Join(roaming, k.product(), "User")
	extensions := filepath.Join(home, k.dotDir(), "extensions")
	return Paths{
		GlobalStorage:      filepath.Join(userDir, "globalStorage"),
		WorkspaceStorage:   filepath.Join(userDir, "workspaceStorage"),
		History:            filepath.Join(userDir, "History"),
		ProfileExtensions:  extensions,
		ExtensionsManifest: filepath.Join(extensions, "extensions.json"),
	}
}

// roamingDir is the platform's application-support base directory.
func roamingDir(home string) string {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir
		}
		return filepath.Join(home, "AppData", "Roaming")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support")
	default:
		if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
			return dir
		}
		return filepath.Join(home, ".config")
	}
}
