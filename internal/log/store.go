package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// sessionLayout names session directories; names that do not parse with it
// are never touched by Cleanup.
const sessionLayout = "20060102T150405"

// Store accumulates step output and persists logs for failed steps.
// Output is streamed to temporary files on disk to avoid unbounded memory usage.
type Store struct {
	baseDir    string
	sessionID  string
	sessionDir string
	mu         sync.Mutex
	dirCreated bool
	writers    map[string]*os.File
	commands   map[string]string
	failed     map[string]error
	written    map[string]bool
}

// NewStore creates a new Store with a new session under baseDir.
// Nothing is written until a step is started.
func NewStore(baseDir string) *Store {
	sessionID := time.Now().Format(sessionLayout)

	return &Store{
		baseDir:    baseDir,
		sessionID:  sessionID,
		sessionDir: filepath.Join(baseDir, sessionID),
		writers:    make(map[string]*os.File),
		commands:   make(map[string]string),
		failed:     make(map[string]error),
		written:    make(map[string]bool),
	}
}

func tmpFilename(step string) string {
	return ".tmp_" + step
}

// ensureSessionDir creates the session directory if it doesn't exist yet.
// Must be called with s.mu held.
func (s *Store) ensureSessionDir() error {
	if s.dirCreated {
		return nil
	}
	if err := os.MkdirAll(s.sessionDir, 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	s.dirCreated = true
	return nil
}

// RecordStart records the start of a step running command.
func (s *Store) RecordStart(step, command string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.writers[step]; ok {
		f.Close()
		os.Remove(f.Name())
	}

	if err := s.ensureSessionDir(); err != nil {
		slog.Warn("failed to create log session directory", "error", err)
		return
	}

	tmpPath := filepath.Join(s.sessionDir, tmpFilename(step))
	f, err := os.Create(tmpPath)
	if err != nil {
		slog.Warn("failed to create log temp file", "path", tmpPath, "error", err)
		return
	}

	s.writers[step] = f
	s.commands[step] = command
}

// RecordOutput appends an output line for a step, streaming directly to disk.
func (s *Store) RecordOutput(step, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.writers[step]; ok {
		if _, err := fmt.Fprintln(f, line); err != nil {
			slog.Warn("failed to write log output", "step", step, "error", err)
		}
	}
}

// RecordError marks a step as failed.
func (s *Store) RecordError(step string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failed[step] = err
}

// RecordComplete marks a step as successful, removing its temporary file.
func (s *Store) RecordComplete(step string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.writers[step]; ok {
		tmpPath := f.Name()
		f.Close()
		os.Remove(tmpPath)
		delete(s.writers, step)
	}
	delete(s.commands, step)
}

// readTmpFile reads the content of a step's temporary file.
// Must be called with s.mu held.
func (s *Store) readTmpFile(step string) (string, error) {
	f, ok := s.writers[step]
	if !ok {
		return "", nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// LogFile returns the path the log of a failed step is flushed to.
func (s *Store) LogFile(step string) string {
	return filepath.Join(s.sessionDir, step+".log")
}

// Written reports whether Flush wrote the log file of step.
func (s *Store) Written(step string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.written[step]
}

// Flush writes log files for all failed steps to disk.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.failed) == 0 {
		return nil
	}

	var errs []error
	for step, failErr := range s.failed {
		command, ok := s.commands[step]
		if !ok {
			continue
		}

		output, err := s.readTmpFile(step)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to read tmp log for %s: %w", step, err))
			continue
		}

		content := buildLogContent(step, command, failErr, output)
		if err := os.WriteFile(s.LogFile(step), []byte(content), 0644); err != nil {
			errs = append(errs, fmt.Errorf("failed to write log for %s: %w", step, err))
			continue
		}
		s.written[step] = true
	}

	s.cleanupTmpFiles()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Close closes all open temporary files and removes them.
// Should be called via defer after creating the Store.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanupTmpFiles()

	if s.dirCreated {
		s.removeIfEmpty()
	}
}

// cleanupTmpFiles closes and removes all temporary files.
// Must be called with s.mu held.
func (s *Store) cleanupTmpFiles() {
	for step, f := range s.writers {
		tmpPath := f.Name()
		f.Close()
		os.Remove(tmpPath)
		delete(s.writers, step)
	}
}

// removeIfEmpty removes the session directory if it contains no .log files.
// Must be called with s.mu held.
func (s *Store) removeIfEmpty() {
	entries, err := os.ReadDir(s.sessionDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".log") {
			return
		}
	}
	os.RemoveAll(s.sessionDir)
}

// SessionDir returns the path to the current session directory.
func (s *Store) SessionDir() string {
	return s.sessionDir
}

// Cleanup removes old session directories, keeping the most recent keepSessions.
// Other entries of the base directory are left alone.
func (s *Store) Cleanup(keepSessions int) error {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read logs directory: %w", err)
	}

	var dirs []os.DirEntry
	for _, e := range entries {
		if e.IsDir() && isSessionName(e.Name()) {
			dirs = append(dirs, e)
		}
	}

	if len(dirs) <= keepSessions {
		return nil
	}

	// timestamp names sort chronologically
	sort.Slice(dirs, func(i, j int) bool {
		return dirs[i].Name() < dirs[j].Name()
	})

	for _, d := range dirs[:len(dirs)-keepSessions] {
		dirPath := filepath.Join(s.baseDir, d.Name())
		if err := os.RemoveAll(dirPath); err != nil {
			return fmt.Errorf("failed to remove old session %s: %w", d.Name(), err)
		}
	}

	return nil
}

func isSessionName(name string) bool {
	_, err := time.Parse(sessionLayout, name)
	return err == nil
}

// buildLogContent creates the log file content with a header.
func buildLogContent(step, command string, err error, output string) string {
	var b strings.Builder
	fmt.Fprintln(&b, "# adminlte-laravel install log")
	fmt.Fprintf(&b, "# Step: %s\n", step)
	fmt.Fprintf(&b, "# Command: %s\n", command)
	fmt.Fprintf(&b, "# Timestamp: %s\n", time.Now().Format(time.RFC3339))
	if err != nil {
		fmt.Fprintf(&b, "# Error: %v\n", err)
	}
	b.WriteByte('\n')
	b.WriteString(output)
	return b.String()
}
