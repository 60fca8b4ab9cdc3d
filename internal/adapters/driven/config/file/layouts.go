package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/relay-cli/internal/core/domain"
	"github.com/custodia-labs/relay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/relay-cli/internal/logger"
)

// Ensure LayoutStore implements the interface.
var _ driven.LayoutStore = (*LayoutStore)(nil)

// LayoutStore serves builtin layout profiles plus user profiles read from
// YAML files in a directory. A user profile with a builtin's name replaces it.
//
// Files are read lazily on first access; Reload forces a re-read.
type LayoutStore struct {
	mu       sync.RWMutex
	dir      string
	builtins []domain.LayoutProfile
	profiles []domain.LayoutProfile
	loaded   bool
}

// NewLayoutStore creates a layout store over builtins and the YAML files in dir.
// If dir is empty, defaults to ~/.relay/layouts/.
func NewLayoutStore(dir string, builtins []domain.LayoutProfile) (*LayoutStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".relay", "layouts")
	}

	return &LayoutStore{
		dir:      dir,
		builtins: builtins,
	}, nil
}

// Dir returns the layouts directory path.
func (s *LayoutStore) Dir() string {
	return s.dir
}

// List returns every profile, builtins first, then user profiles by file name.
func (s *LayoutStore) List() ([]domain.LayoutProfile, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LayoutProfile, len(s.profiles))
	copy(out, s.profiles)
	return out, nil
}

// Get returns a profile by name.
func (s *LayoutStore) Get(name string) (*domain.LayoutProfile, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.profiles {
		if s.profiles[i].Name == name {
			p := s.profiles[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProfile, name)
}

// Reload discards loaded profiles so the next call re-reads the directory.
func (s *LayoutStore) Reload() {
	s.mu.Lock()
	s.loaded = false
	s.profiles = nil
	s.mu.Unlock()
}

func (s *LayoutStore) ensureLoaded() error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	user, err := s.readDir()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = mergeProfiles(s.builtins, user)
	s.loaded = true
	return nil
}

// readDir parses every .yaml and .yml file in the layouts directory.
// A missing directory yields no user profiles.
func (s *LayoutStore) readDir() ([]domain.LayoutProfile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading layouts directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var profiles []domain.LayoutProfile
	for _, name := range names {
		path := filepath.Join(s.dir, name)
		parsed, err := ParseLayoutFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded %d layout profile(s) from %s", len(parsed), path)
		profiles = append(profiles, parsed...)
	}
	return profiles, nil
}

// ParseLayoutFile reads one YAML file holding one or more profile documents.
// Every profile is validated.
func ParseLayoutFile(path string) ([]domain.LayoutProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening layout %s: %w", path, err)
	}
	defer f.Close()

	var profiles []domain.LayoutProfile
	dec := yaml.NewDecoder(f)
	for {
		var p domain.LayoutProfile
		if err := dec.Decode(&p); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: parsing layout %s: %w", domain.ErrInvalidInput, path, err)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("layout %s: %w", path, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// mergeProfiles returns builtins with same-named user profiles swapped in place,
// followed by the remaining user profiles. The last file wins on duplicate names.
func mergeProfiles(builtins, user []domain.LayoutProfile) []domain.LayoutProfile {
	out := make([]domain.LayoutProfile, 0, len(builtins)+len(user))
	index := make(map[string]int, len(builtins)+len(user))
	for _, p := range builtins {
		index[p.Name] = len(out)
		out = append(out, p)
	}
	for _, p := range user {
		if i, ok := index[p.Name]; ok {
			out[i] = p
			continue
		}
		index[p.Name] = len(out)
		out = append(out, p)
	}
	return out
}
