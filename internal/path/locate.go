package path

import (
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// LlumName is the bare llum command used when no candidate is usable.
	LlumName = "llum"
	// ComposerName is the global composer command.
	ComposerName = "composer"
	// ComposerPhar is the project-local composer archive.
	ComposerPhar = "composer.phar"
)

// LlumCandidates returns the global composer bin locations checked for llum, in order.
func LlumCandidates(home string) []string {
	return []string{
		filepath.Join(home, ".composer", "vendor", "bin", LlumName),
		filepath.Join(home, ".config", "composer", "vendor", "bin", LlumName),
	}
}

// FindLlum returns the first usable llum candidate under the home directory,
// or the bare name so the search path decides.
// The returned path is the candidate itself, not its symlink target.
func FindLlum(env Environment) string {
	for _, candidate := range LlumCandidates(HomeDir(env)) {
		if IsExecutable(realPath(candidate)) {
			slog.Debug("found llum", "path", candidate)
			return candidate
		}
	}
	slog.Debug("llum not found in composer global bin, using search path")
	return LlumName
}

// FindComposer returns the composer command line for workDir.
// A composer.phar in workDir is run through php.
func FindComposer(workDir, php string) []string {
	if _, err := os.Stat(filepath.Join(workDir, ComposerPhar)); err == nil {
		return []string{php, ComposerPhar}
	}
	return []string{ComposerName}
}

// realPath resolves file when it is a symbolic link.
// A dangling link yields an empty path.
func realPath(file string) string {
	info, err := os.Lstat(file)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return file
	}
	resolved, err := filepath.EvalSymlinks(file)
	if err != nil {
		return ""
	}
	return resolved
}
