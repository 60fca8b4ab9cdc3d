package file

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
)

var _ driven.PromptStore = (*PromptStore)(nil)

//go:embed defaults/prompts
var defaultPrompts embed.FS

const defaultPromptDir = "defaults/prompts"

// PromptStore reads prompt templates from a user-editable directory and falls
// back to the embedded defaults. The directory is seeded on the first Load,
// never in the constructor, and existing files are left alone.
type PromptStore struct {
	promptDir string
	seedOnce  sync.Once
	seedErr   error
}

// NewPromptStore creates a prompt store. An empty promptDir means ~/.relay/prompts.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".relay", "prompts")
	}
	return &PromptStore{promptDir: promptDir}, nil
}

// Load returns the named template, trimmed. Files are read on every call so
// edits apply without a restart.
func (s *PromptStore) Load(name string) (string, error) {
	s.seedOnce.Do(s.seed)

	if s.seedErr == nil {
		data, err := os.ReadFile(filepath.Join(s.promptDir, name+".txt"))
		if err == nil {
			return strings.TrimSpace(string(data)), nil
		}
	}

	data, err := defaultPrompts.ReadFile(path.Join(defaultPromptDir, name+".txt"))
	if err != nil {
		return "", fmt.Errorf("load prompt %q: %w", name, errors.Join(err, s.seedErr))
	}
	return strings.TrimSpace(string(data)), nil
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// seed copies every embedded file that is missing from the prompt directory.
func (s *PromptStore) seed() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.seedErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	entries, err := fs.ReadDir(defaultPrompts, defaultPromptDir)
	if err != nil {
		s.seedErr = err
		return
	}
	for _, entry := range entries {
		target := filepath.Join(s.promptDir, entry.Name())
		if _, err := os.Stat(target); !os.IsNotExist(err) {
			continue
		}
		data, err := defaultPrompts.ReadFile(path.Join(defaultPromptDir, entry.Name()))
		if err == nil {
			err = os.WriteFile(target, data, 0600)
		}
		if err != nil {
			s.seedErr = fmt.Errorf("create default prompt %q: %w", entry.Name(), err)
			return
		}
	}
}
