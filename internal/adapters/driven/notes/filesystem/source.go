// Package filesystem provides a read-only document source over directories of notes.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/relay-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// noteExtensions are the file types read as notes.
var noteExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// maxNoteSize caps the bytes read from one note.
const maxNoteSize = 1 << 20

// Source reads .md and .txt files from a set of directories.
// Hidden files and directories are skipped. Missing directories are ignored.
type Source struct {
	dirs []string
}

// New creates a notes source over dirs. A leading "~/" is expanded.
func New(dirs []string) *Source {
	expanded := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d = strings.TrimSpace(d); d != "" {
			expanded = append(expanded, expandHome(d))
		}
	}
	return &Source{dirs: expanded}
}

// Name identifies the source in logs.
func (s *Source) Name() string {
	return "notes"
}

// Dirs returns the directories scanned.
func (s *Source) Dirs() []string {
	return s.dirs
}

// Documents walks every directory and returns one document per note file.
// Order is directory order, then lexical path order within a directory.
func (s *Source) Documents(ctx context.Context) ([]domain.Document, error) {
	docs := make([]domain.Document, 0)
	for _, dir := range s.dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) && path == dir {
					logger.Debug("notes directory %s does not exist", dir)
					return filepath.SkipDir
				}
				return err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if isHidden(d.Name()) && path != dir {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !IsNote(path) {
				return nil
			}

			doc, err := ReadNote(path)
			if err != nil {
				logger.Warn("skipping note %s: %v", path, err)
				return nil
			}
			docs = append(docs, *doc)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking notes directory %s: %w", dir, err)
		}
	}
	return docs, nil
}

// IsNote reports whether path has a note extension and is not hidden.
func IsNote(path string) bool {
	if isHidden(filepath.Base(path)) {
		return false
	}
	return noteExtensions[strings.ToLower(filepath.Ext(path))]
}

// ReadNote loads a single note file.
// The title is the first Markdown heading, or the file name without extension.
func ReadNote(path string) (*domain.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxNoteSize {
		return nil, fmt.Errorf("%w: note exceeds %d bytes", domain.ErrInvalidInput, maxNoteSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := string(data)

	return &domain.Document{
		ID:        pathID(path),
		Title:     noteTitle(path, content),
		Content:   content,
		Path:      path,
		CreatedAt: info.ModTime().UTC(),
	}, nil
}

func noteTitle(path, content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if title := strings.TrimSpace(strings.TrimLeft(line, "#")); title != "" {
				return title
			}
		}
		break
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// pathID derives a stable document ID from the absolute path.
func pathID(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	sum := sha256.Sum256([]byte(path))
	return "note-" + hex.EncodeToString(sum[:8])
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
